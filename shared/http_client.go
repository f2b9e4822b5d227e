package shared

import (
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// NewScraperHTTPClient creates an HTTP client tuned for polite sequential
// scraping: connection reuse across paginated requests on the same host and
// bounded timeouts so a stalled response never blocks a run indefinitely.
func NewScraperHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 2,
			IdleConnTimeout:     90 * time.Second,

			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: timeout,
			ExpectContinueTimeout: 1 * time.Second,

			DisableCompression: false,
		},
	}
}

// SetBrowserLikeHeaders configures HTTP request headers to mimic browser behavior
func SetBrowserLikeHeaders(request *http.Request, acceptHeader string) {
	request.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	request.Header.Set("Accept", acceptHeader)
	request.Header.Set("Accept-Language", "en-US,en;q=0.9")
	request.Header.Set("Cache-Control", "no-cache")
}

// ExecuteRequestWithRetry executes an HTTP request with exponential backoff.
// maxAttempts is the total attempt count. Before retry attempt n (n >= 1) it
// sleeps backoffUnit * 2^(n-1) plus a small random jitter; there is no sleep
// after the final failure. A non-2xx response counts as a failure.
func ExecuteRequestWithRetry(client *http.Client, request *http.Request, maxAttempts int, backoffUnit time.Duration) (*http.Response, error) {
	logger := logrus.WithFields(logrus.Fields{
		"component": "shared",
		"method":    "ExecuteRequestWithRetry",
		"url":       request.URL.String(),
	})

	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var httpResponse *http.Response
	var lastExecutionError error

	for attemptNumber := 0; attemptNumber < maxAttempts; attemptNumber++ {
		if attemptNumber > 0 {
			baseBackoffDuration := backoffUnit * time.Duration(1<<uint(attemptNumber-1))
			jitterDuration := time.Duration(rand.Float64() * 0.1 * float64(backoffUnit))
			totalBackoffDuration := baseBackoffDuration + jitterDuration

			logger.WithFields(logrus.Fields{
				"attempt":          attemptNumber + 1,
				"backoff_duration": totalBackoffDuration,
			}).Debug("Retrying HTTP request after backoff")

			time.Sleep(totalBackoffDuration)
		}

		httpResponse, lastExecutionError = client.Do(request)
		if lastExecutionError == nil && httpResponse.StatusCode >= 200 && httpResponse.StatusCode < 300 {
			logger.WithFields(logrus.Fields{
				"attempt":     attemptNumber + 1,
				"status_code": httpResponse.StatusCode,
			}).Debug("HTTP request successful")
			return httpResponse, nil
		}

		if lastExecutionError != nil {
			lastExecutionError = fmt.Errorf("attempt %d failed with network error: %w", attemptNumber+1, lastExecutionError)
			logger.WithError(lastExecutionError).Debug("HTTP request failed with network error")
		} else {
			lastExecutionError = fmt.Errorf("attempt %d failed with HTTP %d: %s", attemptNumber+1, httpResponse.StatusCode, http.StatusText(httpResponse.StatusCode))
			logger.WithFields(logrus.Fields{
				"attempt":     attemptNumber + 1,
				"status_code": httpResponse.StatusCode,
			}).Debug("HTTP request failed with non-success status")
			httpResponse.Body.Close() // Clean up response body before retrying
		}
	}

	logger.WithFields(logrus.Fields{
		"total_attempts": maxAttempts,
		"final_error":    lastExecutionError,
	}).Error("HTTP request failed after all retry attempts")

	return nil, fmt.Errorf("HTTP request failed after %d attempts: %w", maxAttempts, lastExecutionError)
}
