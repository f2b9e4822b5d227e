package services

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fenilmodi00/ipo-tracker/models"
	"github.com/sirupsen/logrus"
)

// minimumRowCells is the cell count a data-table row needs to carry all six
// positional fields (name, listing date, mcap, issue price, current price,
// percent change).
const minimumRowCells = 6

// ListingPageParser extracts pagination bounds and listing rows from the
// recently-listed-IPO pages. Missing structure (no pagination control, no
// data table, malformed rows) is treated as "no data here", never as an
// error.
type ListingPageParser struct {
	baseURL        *url.URL
	utilityService *UtilityService
}

// ParsedListing pairs one extracted listing with its deduplication key.
type ParsedListing struct {
	Key     models.ListingKey
	Listing models.IPOListing
}

// NewListingPageParser creates a parser that resolves company links against
// the given base site URL.
func NewListingPageParser(baseURL string) (*ListingPageParser, error) {
	parsedBaseURL, parseError := url.Parse(baseURL)
	if parseError != nil {
		return nil, parseError
	}

	return &ListingPageParser{
		baseURL:        parsedBaseURL,
		utilityService: NewUtilityService(),
	}, nil
}

// ParseDocument parses raw page HTML into a goquery document.
func (p *ListingPageParser) ParseDocument(pageHTML string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
}

// ExtractTotalPageCount determines how many listing pages exist by scanning
// the pagination control for the highest page query parameter. A page with
// no pagination control is a single-page result.
func (p *ListingPageParser) ExtractTotalPageCount(document *goquery.Document) int {
	pagination := document.Find("div.pagination")
	if pagination.Length() == 0 {
		return 1
	}

	maxPage := 1
	pagination.Find("a").Each(func(_ int, link *goquery.Selection) {
		href, exists := link.Attr("href")
		if !exists || !strings.Contains(href, "page=") {
			return
		}

		pageNumber, parseError := strconv.Atoi(href[strings.Index(href, "page=")+len("page="):])
		if parseError != nil {
			return
		}
		if pageNumber > maxPage {
			maxPage = pageNumber
		}
	})

	return maxPage
}

// ExtractListingRows extracts all well-formed listing rows from the data
// table. Rows with fewer than six cells or whose first cell carries no link
// are skipped silently; skippedRows reports how many were dropped.
func (p *ListingPageParser) ExtractListingRows(document *goquery.Document) (listings []ParsedListing, skippedRows int) {
	table := document.Find("table.data-table")
	if table.Length() == 0 {
		logrus.WithFields(logrus.Fields{
			"component": "ListingPageParser",
			"method":    "ExtractListingRows",
		}).Debug("No data table found on page")
		return nil, 0
	}

	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		parsedListing, ok := p.extractListingFromRow(row)
		if !ok {
			skippedRows++
			return
		}
		listings = append(listings, parsedListing)
	})

	return listings, skippedRows
}

// extractListingFromRow maps one table row onto an IPOListing. The first
// cell must contain the company link; the remaining cells map positionally.
func (p *ListingPageParser) extractListingFromRow(row *goquery.Selection) (ParsedListing, bool) {
	cells := row.Find("td")
	if cells.Length() < minimumRowCells {
		return ParsedListing{}, false
	}

	nameLink := cells.Eq(0).Find("a")
	if nameLink.Length() == 0 {
		return ParsedListing{}, false
	}

	companyName := strings.TrimSpace(nameLink.Text())
	companyLink := p.resolveCompanyLink(nameLink.AttrOr("href", ""))
	listingDate := strings.TrimSpace(cells.Eq(1).Text())

	listing := models.IPOListing{
		Company:       companyName,
		CompanyLink:   companyLink,
		ListingDate:   listingDate,
		MCap:          strings.TrimSpace(cells.Eq(2).Text()),
		IssuePrice:    p.utilityService.StripCurrencySymbol(cells.Eq(3).Text()),
		CurrentPrice:  p.utilityService.StripCurrencySymbol(cells.Eq(4).Text()),
		PercentChange: p.utilityService.NormalizeDirectionGlyphs(cells.Eq(5).Text()),
	}

	return ParsedListing{Key: listing.Key(), Listing: listing}, true
}

// resolveCompanyLink resolves a (usually relative) company href against the
// base site URL.
func (p *ListingPageParser) resolveCompanyLink(href string) string {
	reference, parseError := url.Parse(strings.TrimSpace(href))
	if parseError != nil {
		return href
	}
	return p.baseURL.ResolveReference(reference).String()
}
