package services

import (
	"testing"
)

const listingTableHTML = `
<html><body>
<div class="pagination">
  <a href="/ipo/recent/?page=1">1</a>
  <a href="/ipo/recent/?page=3">3</a>
  <a href="/ipo/recent/?page=5">5</a>
</div>
<table class="data-table">
  <thead><tr><th>Company</th><th>Listing Date</th><th>MCap</th><th>Price</th><th>Current</th><th>Change</th></tr></thead>
  <tbody>
    <tr>
      <td><a href="/company/acme-industries/">ACME Industries</a></td>
      <td>12 Aug 2026</td>
      <td>1,450</td>
      <td>₹1,234</td>
      <td>₹1,310.50</td>
      <td>⇡8.0%</td>
    </tr>
    <tr>
      <td><a href="/company/globex/">Globex Ltd</a></td>
      <td>05 Aug 2026</td>
      <td>890</td>
      <td>₹250</td>
      <td>₹218.75</td>
      <td>⇣12.5%</td>
    </tr>
    <tr>
      <td>Plain text, no link</td>
      <td>01 Aug 2026</td>
      <td>500</td>
      <td>₹100</td>
      <td>₹99</td>
      <td>⇣1.0%</td>
    </tr>
    <tr>
      <td><a href="/company/short-row/">Short Row Ltd</a></td>
      <td>01 Aug 2026</td>
    </tr>
  </tbody>
</table>
</body></html>`

func newTestParser(t *testing.T) *ListingPageParser {
	t.Helper()
	parser, err := NewListingPageParser("https://www.screener.in")
	if err != nil {
		t.Fatalf("Failed to create parser: %v", err)
	}
	return parser
}

func TestExtractTotalPageCountReturnsMaximumPageLink(t *testing.T) {
	parser := newTestParser(t)

	document, err := parser.ParseDocument(listingTableHTML)
	if err != nil {
		t.Fatalf("Failed to parse document: %v", err)
	}

	// Links to pages 1, 3 and 5 with no page-2/4 links present.
	if pageCount := parser.ExtractTotalPageCount(document); pageCount != 5 {
		t.Errorf("Expected page count 5, got %d", pageCount)
	}
}

func TestExtractTotalPageCountWithoutPaginationControl(t *testing.T) {
	parser := newTestParser(t)

	document, err := parser.ParseDocument(`<html><body><p>Nothing here</p></body></html>`)
	if err != nil {
		t.Fatalf("Failed to parse document: %v", err)
	}

	if pageCount := parser.ExtractTotalPageCount(document); pageCount != 1 {
		t.Errorf("Expected page count 1 for page without pagination control, got %d", pageCount)
	}
}

func TestExtractTotalPageCountWithUnparseableLinks(t *testing.T) {
	parser := newTestParser(t)

	document, err := parser.ParseDocument(`
		<html><body><div class="pagination">
		<a href="/ipo/recent/?page=abc">next</a>
		<a href="/ipo/recent/">first</a>
		</div></body></html>`)
	if err != nil {
		t.Fatalf("Failed to parse document: %v", err)
	}

	if pageCount := parser.ExtractTotalPageCount(document); pageCount != 1 {
		t.Errorf("Expected page count to default to 1 when no link parses, got %d", pageCount)
	}
}

func TestExtractListingRowsParsesWellFormedRows(t *testing.T) {
	parser := newTestParser(t)

	document, err := parser.ParseDocument(listingTableHTML)
	if err != nil {
		t.Fatalf("Failed to parse document: %v", err)
	}

	listings, skippedRows := parser.ExtractListingRows(document)

	if len(listings) != 2 {
		t.Fatalf("Expected 2 parsed listings, got %d", len(listings))
	}
	if skippedRows != 2 {
		t.Errorf("Expected 2 skipped rows (no link, too few cells), got %d", skippedRows)
	}

	first := listings[0].Listing
	if first.Company != "ACME Industries" {
		t.Errorf("Expected company name 'ACME Industries', got %q", first.Company)
	}
	if first.CompanyLink != "https://www.screener.in/company/acme-industries/" {
		t.Errorf("Company link not resolved against base URL: %q", first.CompanyLink)
	}
	if first.ListingDate != "12 Aug 2026" {
		t.Errorf("Unexpected listing date %q", first.ListingDate)
	}
	if first.MCap != "1,450" {
		t.Errorf("Unexpected mcap %q", first.MCap)
	}
	if first.IssuePrice != "1,234" {
		t.Errorf("Currency symbol should be stripped with no other transformation, got %q", first.IssuePrice)
	}
	if first.CurrentPrice != "1,310.50" {
		t.Errorf("Unexpected current price %q", first.CurrentPrice)
	}
	if first.PercentChange != "+8.0%" {
		t.Errorf("Up glyph should normalize to '+' prefix, got %q", first.PercentChange)
	}

	second := listings[1].Listing
	if second.PercentChange != "-12.5%" {
		t.Errorf("Down glyph should normalize to '-' prefix, got %q", second.PercentChange)
	}

	if identifier := listings[0].Key.Identifier(); identifier != "ACME Industries_12 Aug 2026" {
		t.Errorf("Identifier should be company name and listing date joined by '_', got %q", identifier)
	}
}

func TestExtractListingRowsWithoutDataTable(t *testing.T) {
	parser := newTestParser(t)

	document, err := parser.ParseDocument(`<html><body><table class="other"><tbody><tr><td>x</td></tr></tbody></table></body></html>`)
	if err != nil {
		t.Fatalf("Failed to parse document: %v", err)
	}

	listings, skippedRows := parser.ExtractListingRows(document)
	if len(listings) != 0 || skippedRows != 0 {
		t.Errorf("Expected no listings and no skips for a page without the data table, got %d listings, %d skips", len(listings), skippedRows)
	}
}
