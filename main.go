package main

import (
	"github.com/fenilmodi00/ipo-tracker/config"
	"github.com/fenilmodi00/ipo-tracker/database"
	"github.com/fenilmodi00/ipo-tracker/jobs"
	"github.com/fenilmodi00/ipo-tracker/services"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.LoadConfig()

	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	settings := cfg.ScraperSettings()

	fetcher := services.NewPageFetcher(settings.HTTPTimeout, settings.MaxFetchAttempts, settings.BackoffUnit)
	parser, err := services.NewListingPageParser(settings.BaseURL)
	if err != nil {
		logrus.Fatalf("Invalid base URL %s: %v", settings.BaseURL, err)
	}
	processedStore := services.NewProcessedListingStore(cfg.ProcessedFile)
	workbookStore := services.NewListingWorkbookStore(cfg.OutputFile)

	job := jobs.NewRecentListingScrapeJob(fetcher, parser, processedStore, workbookStore, settings)

	// Optional Postgres archive with company-profile enrichment. The scrape
	// itself never depends on either.
	if cfg.DatabaseURL != "" {
		archive, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			logrus.WithError(err).Warn("Listing archive unavailable, continuing without it")
		} else {
			defer archive.Close()
			job.Archive = archive
			if cfg.EnrichProfiles {
				job.Enricher = services.NewCompanyProfileEnricher()
			}
		}
	}

	logrus.WithFields(logrus.Fields{
		"base_url":           settings.BaseURL,
		"output_file":        cfg.OutputFile,
		"processed_file":     cfg.ProcessedFile,
		"max_fetch_attempts": settings.MaxFetchAttempts,
		"page_delay":         settings.PageDelay,
		"archive_enabled":    job.Archive != nil,
	}).Info("IPO tracker initialized")

	if err := job.Run(); err != nil {
		logrus.Fatalf("Scrape run failed: %v", err)
	}
}
