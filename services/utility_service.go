package services

import (
	"strings"
)

// UtilityService centralizes the text normalization applied to scraped cell
// values so every component cleans text the same way.
type UtilityService struct{}

// NewUtilityService creates a new utility service for text processing
func NewUtilityService() *UtilityService {
	return &UtilityService{}
}

// directionGlyphReplacer maps screener.in's directional glyphs onto plain
// +/- prefixes.
var directionGlyphReplacer = strings.NewReplacer("⇣", "-", "⇡", "+")

// NormalizeWhitespace collapses interior runs of whitespace to single spaces
// and trims the ends.
func (s *UtilityService) NormalizeWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// StripCurrencySymbol removes the rupee symbol from a price cell and trims
// the result. No other transformation is applied; values like "1,234" keep
// their thousands separators.
func (s *UtilityService) StripCurrencySymbol(text string) string {
	return strings.TrimSpace(strings.ReplaceAll(text, "₹", ""))
}

// NormalizeDirectionGlyphs rewrites the up/down indicators in a
// percent-change cell to "+"/"-" prefixes and trims the result.
func (s *UtilityService) NormalizeDirectionGlyphs(text string) string {
	return directionGlyphReplacer.Replace(strings.TrimSpace(text))
}
