package shared

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrorCategory classifies scrape failures for logging and handling policy.
type ErrorCategory string

const (
	ErrorCategoryNetwork     ErrorCategory = "network"
	ErrorCategoryParse       ErrorCategory = "parse"
	ErrorCategoryPersistence ErrorCategory = "persistence"
)

// ScrapeError is a categorized error with the context needed to decide
// whether a failure aborts the run or just skips a unit of work.
type ScrapeError struct {
	Category  ErrorCategory `json:"category"`
	Operation string        `json:"operation"`
	URL       string        `json:"url,omitempty"`
	Message   string        `json:"message"`
	Timestamp time.Time     `json:"timestamp"`
	Retryable bool          `json:"retryable"`
	Cause     error         `json:"-"` // Original error, not serialized
}

// Error implements the error interface
func (e *ScrapeError) Error() string {
	return fmt.Sprintf("[%s:%s] %s", e.Category, e.Operation, e.Message)
}

// Unwrap returns the underlying error
func (e *ScrapeError) Unwrap() error {
	return e.Cause
}

// NewScrapeError creates a new categorized scrape error.
func NewScrapeError(category ErrorCategory, operation, message string, retryable bool, cause error) *ScrapeError {
	return &ScrapeError{
		Category:  category,
		Operation: operation,
		Message:   message,
		Timestamp: time.Now(),
		Retryable: retryable,
		Cause:     cause,
	}
}

// WithURL attaches the URL the failure relates to.
func (e *ScrapeError) WithURL(url string) *ScrapeError {
	e.URL = url
	return e
}

// LogError logs the error with structured fields.
func (e *ScrapeError) LogError() {
	logrus.WithFields(logrus.Fields{
		"error_category":   e.Category,
		"operation":        e.Operation,
		"url":              e.URL,
		"error_message":    e.Message,
		"retryable":        e.Retryable,
		"underlying_error": e.Cause,
	}).Error("Scrape error occurred")
}
