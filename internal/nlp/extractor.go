// Package nlp implements heuristic structured-field extraction from noisy
// bilingual OCR text. Extraction degrades to defaults rather than failing:
// the returned fields are always fully populated.
package nlp

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/fra-atlas/fra-atlas-backend/types"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Plausible area range in hectares. Numbers outside it are extraction noise
// and are skipped, not clamped.
const (
	minPlausibleArea = 0.1
	maxPlausibleArea = 100.0
)

// Extractor parses recognized form text into structured claim fields.
// Stateless after construction.
type Extractor struct {
	log *zap.SugaredLogger
}

// NewExtractor creates a field extractor.
func NewExtractor(log *zap.SugaredLogger) *Extractor {
	return &Extractor{log: log}
}

// Extract cleans the text, runs the ordered pattern lists for each field, and
// substitutes defaults for anything unresolved. It never fails; degenerate
// input yields fully defaulted fields.
func (e *Extractor) Extract(text string) types.ExtractedFields {
	cleaned := cleanText(text)

	name, nameFound := e.extractName(cleaned)
	village, villageFound := e.extractVillage(cleaned)
	area, areaFound := extractArea(cleaned)
	status, statusFound := extractStatus(cleaned)

	fields := types.ExtractedFields{}

	if nameFound {
		fields.ClaimantName = e.titleCase(name)
	} else {
		fields.ClaimantName = types.DefaultClaimantName
	}
	if villageFound {
		fields.Village = e.titleCase(village)
	} else {
		fields.Village = types.DefaultVillage
	}
	if areaFound {
		fields.Area = area
	} else {
		fields.Area = types.DefaultArea
	}
	if statusFound {
		fields.Status = status
	} else {
		fields.Status = types.DefaultStatus
	}

	e.log.Infow("Extracted claim fields",
		"claimant_name", fields.ClaimantName,
		"village", fields.Village,
		"area", fields.Area,
		"status", fields.Status,
	)
	return fields
}

// cleanText collapses whitespace runs and strips characters outside letters,
// digits, whitespace, and the punctuation allow-list (. : , -).
func cleanText(text string) string {
	text = whitespaceRuns.ReplaceAllString(text, " ")
	text = disallowedRune.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// extractName searches for a Devanagari run first, then falls through the
// Latin-script heuristics in order.
func (e *Extractor) extractName(text string) (string, bool) {
	for _, match := range devanagariRun.FindAllString(text, -1) {
		candidate := strings.TrimSpace(match)
		n := utf8.RuneCountInString(candidate)
		if n > 3 && n < 50 {
			return candidate, true
		}
	}

	for _, pattern := range namePatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			candidate := strings.TrimSpace(m[1])
			if candidate != "" {
				return candidate, true
			}
		}
	}
	return "", false
}

// extractVillage runs the labeled location patterns in order. Single-character
// matches are rejected as too short.
func (e *Extractor) extractVillage(text string) (string, bool) {
	for _, pattern := range villagePatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			candidate := strings.TrimSpace(m[1])
			if utf8.RuneCountInString(candidate) > 1 {
				return candidate, true
			}
		}
	}
	return "", false
}

// extractArea scans each numeric pattern's matches in order and accepts the
// first value that parses and falls inside the plausible range.
func extractArea(text string) (float64, bool) {
	for _, pattern := range areaPatterns {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			value, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				continue
			}
			if value >= minPlausibleArea && value <= maxPlausibleArea {
				return value, true
			}
		}
	}
	return 0, false
}

// extractStatus tests the keyword sets against the lowercased text. The first
// category with any keyword present wins.
func extractStatus(text string) (types.ClaimStatus, bool) {
	lowered := strings.ToLower(text)
	for _, entry := range statusKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(lowered, keyword) {
				return types.ClaimStatus(entry.status), true
			}
		}
	}
	return "", false
}

// titleCase normalizes Latin-script names and villages; Devanagari text has
// no case and passes through unchanged. A fresh caser is built per call since
// cases.Caser values are stateful and must not be shared across goroutines.
func (e *Extractor) titleCase(s string) string {
	return strings.TrimSpace(cases.Title(language.English).String(s))
}
