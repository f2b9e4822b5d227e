package services

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/fenilmodi00/ipo-tracker/models"
	"github.com/fenilmodi00/ipo-tracker/shared"
	"github.com/sirupsen/logrus"
)

// ProcessedListingStore persists the set of listing identifiers already
// handled by earlier runs. The on-disk format is a flat JSON array of
// identifier strings, read and rewritten wholesale once per run.
type ProcessedListingStore struct {
	filePath string
}

// NewProcessedListingStore creates a store backed by the given JSON file.
func NewProcessedListingStore(filePath string) *ProcessedListingStore {
	return &ProcessedListingStore{filePath: filePath}
}

// Load reads the processed-identifier set from disk. An absent or unreadable
// file yields an empty set: the run then proceeds and may rediscover rows,
// which the workbook append makes visible as duplicates rather than losing
// data.
func (s *ProcessedListingStore) Load() map[string]struct{} {
	processed := make(map[string]struct{})

	fileBytes, readError := os.ReadFile(s.filePath)
	if readError != nil {
		if !os.IsNotExist(readError) {
			logrus.WithError(readError).WithField("file", s.filePath).Error("Error loading processed listings")
		}
		return processed
	}

	var identifiers []string
	if unmarshalError := json.Unmarshal(fileBytes, &identifiers); unmarshalError != nil {
		logrus.WithError(unmarshalError).WithField("file", s.filePath).Error("Error parsing processed listings file")
		return processed
	}

	for _, identifier := range identifiers {
		processed[identifier] = struct{}{}
	}

	logrus.WithFields(logrus.Fields{
		"component":        "ProcessedListingStore",
		"file":             s.filePath,
		"identifier_count": len(processed),
	}).Debug("Loaded processed listing identifiers")

	return processed
}

// Save rewrites the processed-identifier set wholesale. A write failure is
// logged and returned; the caller absorbs it, accepting that this run's new
// identifiers may be reprocessed next time.
func (s *ProcessedListingStore) Save(processed map[string]struct{}) error {
	identifiers := make([]string, 0, len(processed))
	for identifier := range processed {
		identifiers = append(identifiers, identifier)
	}
	sort.Strings(identifiers) // Stable file content across runs

	fileBytes, marshalError := json.Marshal(identifiers)
	if marshalError != nil {
		saveError := shared.NewScrapeError(shared.ErrorCategoryPersistence, "SaveProcessedListings",
			"failed to encode processed listing identifiers", false, marshalError)
		saveError.LogError()
		return saveError
	}

	if writeError := os.WriteFile(s.filePath, fileBytes, 0o644); writeError != nil {
		saveError := shared.NewScrapeError(shared.ErrorCategoryPersistence, "SaveProcessedListings",
			"failed to write processed listings file "+s.filePath, true, writeError)
		saveError.LogError()
		return saveError
	}

	return nil
}

// Contains reports whether the key's identifier is already in the set.
func (s *ProcessedListingStore) Contains(processed map[string]struct{}, key models.ListingKey) bool {
	_, exists := processed[key.Identifier()]
	return exists
}
