package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fenilmodi00/ipo-tracker/models"
)

func TestProcessedStoreLoadWithoutFileReturnsEmptySet(t *testing.T) {
	store := NewProcessedListingStore(filepath.Join(t.TempDir(), "processed_ipos.json"))

	processed := store.Load()
	if len(processed) != 0 {
		t.Errorf("Expected empty set for absent file, got %d entries", len(processed))
	}
}

func TestProcessedStoreSaveAndLoadRoundTrip(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "processed_ipos.json")
	store := NewProcessedListingStore(filePath)

	processed := map[string]struct{}{
		"ACME Industries_12 Aug 2026": {},
		"Globex Ltd_05 Aug 2026":      {},
	}

	if err := store.Save(processed); err != nil {
		t.Fatalf("Failed to save processed set: %v", err)
	}

	reloaded := store.Load()
	if len(reloaded) != 2 {
		t.Fatalf("Expected 2 identifiers after reload, got %d", len(reloaded))
	}

	key := models.ListingKey{CompanyName: "ACME Industries", ListingDate: "12 Aug 2026"}
	if !store.Contains(reloaded, key) {
		t.Errorf("Expected reloaded set to contain %q", key.Identifier())
	}

	unknownKey := models.ListingKey{CompanyName: "Unknown Co", ListingDate: "01 Jan 2026"}
	if store.Contains(reloaded, unknownKey) {
		t.Errorf("Did not expect reloaded set to contain %q", unknownKey.Identifier())
	}
}

func TestProcessedStoreLoadWithCorruptFileReturnsEmptySet(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "processed_ipos.json")
	if err := os.WriteFile(filePath, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("Failed to write corrupt file: %v", err)
	}

	store := NewProcessedListingStore(filePath)

	processed := store.Load()
	if len(processed) != 0 {
		t.Errorf("Expected empty set for corrupt file, got %d entries", len(processed))
	}
}
