package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fenilmodi00/ipo-tracker/models"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

// listingArchiveSchema creates the archive table on first connect. The
// composite key mirrors the deduplication key of the scrape pipeline.
const listingArchiveSchema = `
CREATE TABLE IF NOT EXISTS recent_listings (
    company        VARCHAR(255) NOT NULL,
    company_link   VARCHAR(500) NOT NULL,
    listing_date   VARCHAR(100) NOT NULL,
    ipo_mcap_rs_cr VARCHAR(100) NOT NULL DEFAULT '',
    ipo_price      VARCHAR(100) NOT NULL DEFAULT '',
    current_price  VARCHAR(100) NOT NULL DEFAULT '',
    percent_change VARCHAR(100) NOT NULL DEFAULT '',
    about          TEXT,
    website        VARCHAR(500),
    sector         VARCHAR(255),
    scraped_at     TIMESTAMPTZ  NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (company, listing_date)
)`

// ListingArchive is the optional Postgres sink for scraped listings. The
// workbook remains the source of truth; archive failures are absorbed by the
// caller.
type ListingArchive struct {
	db *sql.DB
}

// Connect opens the archive database and ensures the schema exists.
func Connect(databaseURL string) (*ListingArchive, error) {
	db, openError := sql.Open("postgres", databaseURL)
	if openError != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", openError)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if pingError := db.PingContext(ctx); pingError != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", pingError)
	}

	if _, migrateError := db.ExecContext(ctx, listingArchiveSchema); migrateError != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create listing archive schema: %w", migrateError)
	}

	logrus.Info("Connected to listing archive database")
	return &ListingArchive{db: db}, nil
}

// Close releases the archive database connection.
func (a *ListingArchive) Close() {
	if a.db != nil {
		a.db.Close()
		logrus.Info("Listing archive connection closed")
	}
}

// SaveListing upserts one scraped listing, together with its optional
// profile enrichment, keyed on (company, listing_date).
func (a *ListingArchive) SaveListing(ctx context.Context, listing models.IPOListing, profile *models.CompanyProfile) error {
	var about, website, sector sql.NullString
	if profile != nil {
		about = sql.NullString{String: profile.About, Valid: profile.About != ""}
		website = sql.NullString{String: profile.Website, Valid: profile.Website != ""}
		sector = sql.NullString{String: profile.Sector, Valid: profile.Sector != ""}
	}

	const upsertQuery = `
		INSERT INTO recent_listings (
			company, company_link, listing_date, ipo_mcap_rs_cr,
			ipo_price, current_price, percent_change, about, website, sector
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (company, listing_date) DO UPDATE SET
			company_link   = EXCLUDED.company_link,
			ipo_mcap_rs_cr = EXCLUDED.ipo_mcap_rs_cr,
			ipo_price      = EXCLUDED.ipo_price,
			current_price  = EXCLUDED.current_price,
			percent_change = EXCLUDED.percent_change,
			about          = COALESCE(EXCLUDED.about, recent_listings.about),
			website        = COALESCE(EXCLUDED.website, recent_listings.website),
			sector         = COALESCE(EXCLUDED.sector, recent_listings.sector),
			scraped_at     = CURRENT_TIMESTAMP`

	if _, execError := a.db.ExecContext(ctx, upsertQuery,
		listing.Company, listing.CompanyLink, listing.ListingDate, listing.MCap,
		listing.IssuePrice, listing.CurrentPrice, listing.PercentChange,
		about, website, sector,
	); execError != nil {
		return fmt.Errorf("failed to upsert listing %s: %w", listing.Key().Identifier(), execError)
	}

	return nil
}
