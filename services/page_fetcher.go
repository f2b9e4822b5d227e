package services

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fenilmodi00/ipo-tracker/shared"
	"github.com/sirupsen/logrus"
)

// PageFetcher retrieves listing pages over HTTP with retry and exponential
// backoff. A page that still fails after all attempts is reported back as an
// error; the caller decides whether to skip the page or abort the run.
type PageFetcher struct {
	httpClient  *http.Client
	maxAttempts int
	backoffUnit time.Duration
}

// NewPageFetcher creates a page fetcher with explicit retry configuration.
// backoffUnit scales the exponential delays (production uses one second;
// tests shrink it).
func NewPageFetcher(timeout time.Duration, maxAttempts int, backoffUnit time.Duration) *PageFetcher {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if backoffUnit <= 0 {
		backoffUnit = 1 * time.Second
	}

	return &PageFetcher{
		httpClient:  shared.NewScraperHTTPClient(timeout),
		maxAttempts: maxAttempts,
		backoffUnit: backoffUnit,
	}
}

// FetchPage issues a GET request for the given URL with browser-like headers
// and returns the page body. All failures are logged with the URL and error
// text before the error is returned.
func (f *PageFetcher) FetchPage(url string) (string, error) {
	logger := logrus.WithFields(logrus.Fields{
		"component": "PageFetcher",
		"method":    "FetchPage",
		"url":       url,
	})

	httpRequest, requestError := http.NewRequest(http.MethodGet, url, nil)
	if requestError != nil {
		logger.WithError(requestError).Error("Failed to create HTTP request")
		return "", fmt.Errorf("failed to create HTTP request for %s: %w", url, requestError)
	}

	shared.SetBrowserLikeHeaders(httpRequest, "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	httpResponse, executionError := shared.ExecuteRequestWithRetry(f.httpClient, httpRequest, f.maxAttempts, f.backoffUnit)
	if executionError != nil {
		scrapeError := shared.NewScrapeError(shared.ErrorCategoryNetwork, "FetchPage",
			executionError.Error(), false, executionError).WithURL(url)
		scrapeError.LogError()
		return "", scrapeError
	}
	defer httpResponse.Body.Close()

	bodyBytes, readError := io.ReadAll(httpResponse.Body)
	if readError != nil {
		logger.WithError(readError).Error("Failed to read response body")
		return "", fmt.Errorf("failed to read response body for %s: %w", url, readError)
	}

	logger.WithField("body_length", len(bodyBytes)).Debug("Fetched page successfully")
	return string(bodyBytes), nil
}
