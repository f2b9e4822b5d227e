package services

import (
	"fmt"
	"os"

	"github.com/fenilmodi00/ipo-tracker/models"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// listingSheetName is the sheet holding the output table.
const listingSheetName = "IPO Data"

// ListingWorkbookStore persists scraped listings to an xlsx workbook. The
// table is append-only: existing rows are never updated or deleted, new rows
// go after the last existing one, and the file is rewritten wholesale on
// save. Workbook I/O errors propagate to the caller and end the run.
type ListingWorkbookStore struct {
	filePath string
}

// NewListingWorkbookStore creates a store backed by the given xlsx file.
func NewListingWorkbookStore(filePath string) *ListingWorkbookStore {
	return &ListingWorkbookStore{filePath: filePath}
}

// Append adds the new listings to the workbook, creating it with a header
// row when no prior file exists.
func (s *ListingWorkbookStore) Append(listings []models.IPOListing) error {
	logger := logrus.WithFields(logrus.Fields{
		"component": "ListingWorkbookStore",
		"method":    "Append",
		"file":      s.filePath,
	})

	workbook, nextRow, openError := s.openOrCreateWorkbook()
	if openError != nil {
		return openError
	}
	defer workbook.Close()

	for offset, listing := range listings {
		cellReference, cellError := excelize.CoordinatesToCellName(1, nextRow+offset)
		if cellError != nil {
			return fmt.Errorf("failed to compute cell reference for row %d: %w", nextRow+offset, cellError)
		}
		row := listing.ToRow()
		if rowError := workbook.SetSheetRow(listingSheetName, cellReference, &row); rowError != nil {
			return fmt.Errorf("failed to write listing row %d: %w", nextRow+offset, rowError)
		}
	}

	if saveError := workbook.SaveAs(s.filePath); saveError != nil {
		return fmt.Errorf("failed to save workbook %s: %w", s.filePath, saveError)
	}

	logger.WithField("appended_rows", len(listings)).Info("Appended new listings to workbook")
	return nil
}

// CountDataRows returns the number of data rows currently in the workbook,
// excluding the header. A missing file counts as zero rows.
func (s *ListingWorkbookStore) CountDataRows() (int, error) {
	if _, statError := os.Stat(s.filePath); os.IsNotExist(statError) {
		return 0, nil
	}

	workbook, openError := excelize.OpenFile(s.filePath)
	if openError != nil {
		return 0, fmt.Errorf("failed to open workbook %s: %w", s.filePath, openError)
	}
	defer workbook.Close()

	rows, rowsError := workbook.GetRows(listingSheetName)
	if rowsError != nil {
		return 0, fmt.Errorf("failed to read workbook rows: %w", rowsError)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return len(rows) - 1, nil
}

// openOrCreateWorkbook opens the existing workbook and finds the first free
// row, or creates a fresh workbook with the header row in place.
func (s *ListingWorkbookStore) openOrCreateWorkbook() (*excelize.File, int, error) {
	if _, statError := os.Stat(s.filePath); statError == nil {
		workbook, openError := excelize.OpenFile(s.filePath)
		if openError != nil {
			return nil, 0, fmt.Errorf("failed to open existing workbook %s: %w", s.filePath, openError)
		}

		rows, rowsError := workbook.GetRows(listingSheetName)
		if rowsError != nil {
			workbook.Close()
			return nil, 0, fmt.Errorf("failed to read existing workbook rows: %w", rowsError)
		}
		return workbook, len(rows) + 1, nil
	}

	workbook := excelize.NewFile()
	defaultSheet := workbook.GetSheetName(0)
	if renameError := workbook.SetSheetName(defaultSheet, listingSheetName); renameError != nil {
		workbook.Close()
		return nil, 0, fmt.Errorf("failed to name listing sheet: %w", renameError)
	}

	headerRow := make([]interface{}, len(models.WorkbookColumnHeaders))
	for i, header := range models.WorkbookColumnHeaders {
		headerRow[i] = header
	}
	if headerError := workbook.SetSheetRow(listingSheetName, "A1", &headerRow); headerError != nil {
		workbook.Close()
		return nil, 0, fmt.Errorf("failed to write workbook header row: %w", headerError)
	}

	return workbook, 2, nil
}
