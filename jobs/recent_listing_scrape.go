package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/fenilmodi00/ipo-tracker/config"
	"github.com/fenilmodi00/ipo-tracker/database"
	"github.com/fenilmodi00/ipo-tracker/models"
	"github.com/fenilmodi00/ipo-tracker/services"
	"github.com/fenilmodi00/ipo-tracker/shared"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RecentListingScrapeJob drives one full scrape-and-persist pass: fetch the
// first listing page, discover the page count, walk every page, skip rows
// already processed in earlier runs, then append the new rows to the
// workbook and persist the updated identifier set.
type RecentListingScrapeJob struct {
	Fetcher        *services.PageFetcher
	Parser         *services.ListingPageParser
	ProcessedStore *services.ProcessedListingStore
	WorkbookStore  *services.ListingWorkbookStore
	Enricher       *services.CompanyProfileEnricher
	Archive        *database.ListingArchive
	Settings       *config.ScraperSettings
	Metrics        *shared.ScrapeMetrics
}

// NewRecentListingScrapeJob wires the scrape pipeline. Enricher and Archive
// may be nil; the workbook and processed-set stores are always required.
func NewRecentListingScrapeJob(
	fetcher *services.PageFetcher,
	parser *services.ListingPageParser,
	processedStore *services.ProcessedListingStore,
	workbookStore *services.ListingWorkbookStore,
	settings *config.ScraperSettings,
) *RecentListingScrapeJob {
	return &RecentListingScrapeJob{
		Fetcher:        fetcher,
		Parser:         parser,
		ProcessedStore: processedStore,
		WorkbookStore:  workbookStore,
		Settings:       settings,
		Metrics:        shared.NewScrapeMetrics(),
	}
}

// Run executes one scrape pass. A first-page fetch failure aborts the run
// with a logged error; a workbook I/O failure is the only error returned to
// the caller. Everything else is absorbed at the point of failure.
func (j *RecentListingScrapeJob) Run() error {
	runLogger := logrus.WithFields(logrus.Fields{
		"component": "RecentListingScrapeJob",
		"run_id":    uuid.New().String(),
	})

	runLogger.Info("Starting recent listing scrape run")

	listingURL := j.Settings.BaseURL + j.Settings.RecentIPOPath

	firstPageHTML, fetchError := j.Fetcher.FetchPage(listingURL)
	if fetchError != nil {
		runLogger.WithError(fetchError).Error("Failed to fetch initial page, aborting run")
		return nil
	}
	j.Metrics.PagesFetched++

	firstPageDocument, parseError := j.Parser.ParseDocument(firstPageHTML)
	if parseError != nil {
		shared.NewScrapeError(shared.ErrorCategoryParse, "ParseInitialPage",
			"failed to parse initial listing page", false, parseError).WithURL(listingURL).LogError()
		runLogger.Error("Aborting run after initial page parse failure")
		return nil
	}

	totalPages := j.Parser.ExtractTotalPageCount(firstPageDocument)
	runLogger.Infof("Found %d pages to process", totalPages)

	processed := j.ProcessedStore.Load()
	var newListings []models.IPOListing

	for page := 1; page <= totalPages; page++ {
		pageURL := fmt.Sprintf("%s?page=%d", listingURL, page)

		pageHTML, pageFetchError := j.Fetcher.FetchPage(pageURL)
		if pageFetchError != nil {
			j.Metrics.PagesFailed++
			runLogger.WithError(pageFetchError).WithField("page", page).Error("Skipping page after fetch failure")
			continue
		}
		j.Metrics.PagesFetched++

		pageDocument, pageParseError := j.Parser.ParseDocument(pageHTML)
		if pageParseError != nil {
			runLogger.WithError(pageParseError).WithField("page", page).Error("Skipping page after parse failure")
			continue
		}

		listings, skippedRows := j.Parser.ExtractListingRows(pageDocument)
		j.Metrics.RowsParsed += len(listings)
		j.Metrics.RowsSkippedNoLink += skippedRows

		for _, parsedListing := range listings {
			if j.ProcessedStore.Contains(processed, parsedListing.Key) {
				j.Metrics.DuplicateRows++
				runLogger.Infof("Listing %s already processed, skipping...", parsedListing.Listing.Company)
				continue
			}

			newListings = append(newListings, parsedListing.Listing)
			processed[parsedListing.Key.Identifier()] = struct{}{}
			j.Metrics.NewRows++
		}

		runLogger.Infof("Processed page %d/%d", page, totalPages)

		if page < totalPages {
			time.Sleep(j.Settings.PageDelay) // Be nice to the server
		}
	}

	if len(newListings) == 0 {
		runLogger.Info("No new listings found")
		j.Metrics.LogSummary()
		return nil
	}

	if appendError := j.WorkbookStore.Append(newListings); appendError != nil {
		return fmt.Errorf("failed to append new listings to workbook: %w", appendError)
	}

	if saveError := j.ProcessedStore.Save(processed); saveError != nil {
		// This run's identifiers are lost for future runs; rows may be
		// rediscovered as duplicates next time.
		runLogger.WithError(saveError).Error("Failed to persist processed listing identifiers")
	}

	j.archiveNewListings(runLogger, newListings)

	runLogger.Infof("Added %d new listings to the workbook", len(newListings))
	j.Metrics.LogSummary()
	return nil
}

// archiveNewListings upserts each new listing into the optional Postgres
// archive, enriching it with company profile data when enrichment is
// configured. All failures here are absorbed per listing.
func (j *RecentListingScrapeJob) archiveNewListings(runLogger *logrus.Entry, newListings []models.IPOListing) {
	if j.Archive == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	for _, listing := range newListings {
		var profile *models.CompanyProfile
		if j.Enricher != nil {
			fetchedProfile, enrichError := j.Enricher.FetchProfile(listing.CompanyLink)
			if enrichError != nil {
				j.Metrics.ProfilesFailed++
				runLogger.WithError(enrichError).WithField("company", listing.Company).Warn("Profile enrichment failed")
			} else if fetchedProfile != nil {
				j.Metrics.ProfilesEnriched++
				profile = fetchedProfile
			}
		}

		if archiveError := j.Archive.SaveListing(ctx, listing, profile); archiveError != nil {
			runLogger.WithError(archiveError).WithField("company", listing.Company).Error("Failed to archive listing")
		}
	}
}
