package models

// WorkbookColumnHeaders defines the exact column layout of the output workbook.
// Order matters: existing workbooks are appended to positionally.
var WorkbookColumnHeaders = []string{
	"Company",
	"Company Link",
	"Listing Date",
	"IPO MCap (Rs. Cr)",
	"IPO Price",
	"Current Price",
	"Percent Change",
}

// IPOListing represents one company's IPO listing snapshot at scrape time.
// All fields are kept as display strings exactly as scraped; no numeric
// parsing or validation is performed on them.
type IPOListing struct {
	Company       string `json:"company"`
	CompanyLink   string `json:"company_link"`
	ListingDate   string `json:"listing_date"`
	MCap          string `json:"ipo_mcap_rs_cr"`
	IssuePrice    string `json:"ipo_price"`
	CurrentPrice  string `json:"current_price"`
	PercentChange string `json:"percent_change"`
}

// ToRow returns the listing as a positional workbook row matching
// WorkbookColumnHeaders.
func (l IPOListing) ToRow() []interface{} {
	return []interface{}{
		l.Company,
		l.CompanyLink,
		l.ListingDate,
		l.MCap,
		l.IssuePrice,
		l.CurrentPrice,
		l.PercentChange,
	}
}

// Key returns the composite deduplication key for the listing.
func (l IPOListing) Key() ListingKey {
	return ListingKey{CompanyName: l.Company, ListingDate: l.ListingDate}
}

// ListingKey is the composite deduplication key for a listing. Keeping the
// two components as separate fields avoids accidental collisions when a
// company name itself contains the separator character.
type ListingKey struct {
	CompanyName string
	ListingDate string
}

// Identifier renders the key in the flat persisted form used by the
// processed-listings file: company name and listing date joined by "_",
// with no additional normalization.
func (k ListingKey) Identifier() string {
	return k.CompanyName + "_" + k.ListingDate
}

// CompanyProfile holds optional enrichment fields scraped from a company's
// profile page. These are archived to Postgres only; the workbook column
// set is fixed.
type CompanyProfile struct {
	About   string `json:"about"`
	Website string `json:"website"`
	Sector  string `json:"sector"`
}
