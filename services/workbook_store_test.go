package services

import (
	"path/filepath"
	"testing"

	"github.com/fenilmodi00/ipo-tracker/models"
	"github.com/xuri/excelize/v2"
)

func sampleListing(company, listingDate string) models.IPOListing {
	return models.IPOListing{
		Company:       company,
		CompanyLink:   "https://www.screener.in/company/" + company + "/",
		ListingDate:   listingDate,
		MCap:          "1,000",
		IssuePrice:    "100",
		CurrentPrice:  "110",
		PercentChange: "+10.0%",
	}
}

func TestWorkbookStoreCreatesFreshFileWithHeaderRow(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "ipo_data.xlsx")
	store := NewListingWorkbookStore(filePath)

	listings := []models.IPOListing{
		sampleListing("ACME Industries", "12 Aug 2026"),
		sampleListing("Globex Ltd", "05 Aug 2026"),
	}
	if err := store.Append(listings); err != nil {
		t.Fatalf("Failed to append to fresh workbook: %v", err)
	}

	workbook, err := excelize.OpenFile(filePath)
	if err != nil {
		t.Fatalf("Failed to reopen workbook: %v", err)
	}
	defer workbook.Close()

	rows, err := workbook.GetRows("IPO Data")
	if err != nil {
		t.Fatalf("Failed to read workbook rows: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("Expected header plus 2 data rows, got %d rows", len(rows))
	}
	for i, header := range models.WorkbookColumnHeaders {
		if rows[0][i] != header {
			t.Errorf("Header column %d: expected %q, got %q", i, header, rows[0][i])
		}
	}
	if rows[1][0] != "ACME Industries" {
		t.Errorf("First data row company: got %q", rows[1][0])
	}
	if rows[2][6] != "+10.0%" {
		t.Errorf("Second data row percent change: got %q", rows[2][6])
	}
}

func TestWorkbookStoreAppendPreservesExistingRows(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "ipo_data.xlsx")
	store := NewListingWorkbookStore(filePath)

	if err := store.Append([]models.IPOListing{sampleListing("ACME Industries", "12 Aug 2026")}); err != nil {
		t.Fatalf("Failed first append: %v", err)
	}
	if err := store.Append([]models.IPOListing{sampleListing("Globex Ltd", "05 Aug 2026")}); err != nil {
		t.Fatalf("Failed second append: %v", err)
	}

	rowCount, err := store.CountDataRows()
	if err != nil {
		t.Fatalf("Failed to count data rows: %v", err)
	}
	if rowCount != 2 {
		t.Fatalf("Expected 2 data rows after two appends, got %d", rowCount)
	}

	workbook, err := excelize.OpenFile(filePath)
	if err != nil {
		t.Fatalf("Failed to reopen workbook: %v", err)
	}
	defer workbook.Close()

	rows, err := workbook.GetRows("IPO Data")
	if err != nil {
		t.Fatalf("Failed to read workbook rows: %v", err)
	}

	// Insertion order is preserved: earlier rows stay ahead of later ones.
	if rows[1][0] != "ACME Industries" || rows[2][0] != "Globex Ltd" {
		t.Errorf("Append did not preserve insertion order: %q then %q", rows[1][0], rows[2][0])
	}
}

func TestWorkbookStoreCountDataRowsWithoutFile(t *testing.T) {
	store := NewListingWorkbookStore(filepath.Join(t.TempDir(), "missing.xlsx"))

	rowCount, err := store.CountDataRows()
	if err != nil {
		t.Fatalf("Expected no error for missing file: %v", err)
	}
	if rowCount != 0 {
		t.Errorf("Expected 0 rows for missing file, got %d", rowCount)
	}
}
