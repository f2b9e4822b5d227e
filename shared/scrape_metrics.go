package shared

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// ScrapeMetrics tracks per-run counters for the scrape pipeline.
type ScrapeMetrics struct {
	PagesFetched      int
	PagesFailed       int
	RowsParsed        int
	RowsSkippedNoLink int
	DuplicateRows     int
	NewRows           int
	ProfilesEnriched  int
	ProfilesFailed    int
}

// NewScrapeMetrics creates a new metrics tracker
func NewScrapeMetrics() *ScrapeMetrics {
	return &ScrapeMetrics{}
}

// LogSummary logs an end-of-run summary of scrape metrics.
func (m *ScrapeMetrics) LogSummary() {
	pagesAttempted := m.PagesFetched + m.PagesFailed
	pageSuccessRate := 0.0
	if pagesAttempted > 0 {
		pageSuccessRate = float64(m.PagesFetched) / float64(pagesAttempted) * 100
	}

	logrus.WithFields(logrus.Fields{
		"pages_fetched":        m.PagesFetched,
		"pages_failed":         m.PagesFailed,
		"page_success_rate":    fmt.Sprintf("%.1f%%", pageSuccessRate),
		"rows_parsed":          m.RowsParsed,
		"rows_skipped_no_link": m.RowsSkippedNoLink,
		"duplicate_rows":       m.DuplicateRows,
		"new_rows":             m.NewRows,
		"profiles_enriched":    m.ProfilesEnriched,
		"profiles_failed":      m.ProfilesFailed,
	}).Info("Scrape run metrics summary")
}
