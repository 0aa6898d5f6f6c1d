package nlp

import "regexp"

// The extraction heuristics below are ordered lists evaluated strictly in
// sequence; first match wins. Order is part of the observable contract, so
// do not reorder for convenience.

// Text cleaning. Keeps letters, digits, underscore, whitespace and a small
// punctuation allow-list; everything else is OCR noise.
var (
	whitespaceRuns = regexp.MustCompile(`\s+`)
	disallowedRune = regexp.MustCompile(`[^\p{L}\p{N}_\s.:,\-]`)
)

// Devanagari name run: forms are frequently filled in Devanagari and a
// contiguous run of the script is the most reliable anchor for the name.
var devanagariRun = regexp.MustCompile(`[\x{0900}-\x{097F}\s]{3,50}`)

// Latin-script name heuristics, in priority order. The labeled pattern uses a
// non-greedy capture bounded by the next known form label so it does not
// swallow the rest of the line.
var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:name|claimant|applicant)[\s:]+([A-Za-z\x{0900}-\x{097F}][A-Za-z\x{0900}-\x{097F}\s]{1,49}?)(?:\s+(?:village|gram|panchayat|area|status)|[:,.]|$)`),
	regexp.MustCompile(`(?:श्री|श्रीमती|नाम)[\s:]*([\x{0900}-\x{097F}][\x{0900}-\x{097F}\s]{1,49})`),
	regexp.MustCompile(`(?i)Mr\.?\s+([A-Za-z][A-Za-z\s]{1,29}?)(?:\s+(?:village|gram|panchayat|area|status)|[:,.]|$)`),
	regexp.MustCompile(`(?i)Mrs\.?\s+([A-Za-z][A-Za-z\s]{1,29}?)(?:\s+(?:village|gram|panchayat|area|status)|[:,.]|$)`),
	regexp.MustCompile(`([A-Z][a-z]+\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`),
}

// Village heuristics, in priority order.
var villagePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:village|gram|panchayat|गांव|ग्राम)[\s:]+([A-Za-z\x{0900}-\x{097F}][A-Za-z\x{0900}-\x{097F}\s]{0,29}?)(?:\s+(?:area|status|name|claimant|district)|[:,.]|$)`),
	regexp.MustCompile(`(?i)(?:at|in)\s+village\s+([A-Za-z\x{0900}-\x{097F}]{2,30})`),
}

// Area heuristics, in priority order: unit-suffixed numbers first, labeled
// values next, bare decimals last.
var areaPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:hectares?|ha|acres?|हेक्टेयर)`),
	regexp.MustCompile(`(?i)area[\s:]+(\d+(?:\.\d+)?)`),
	regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:sq|sqm|square)`),
	regexp.MustCompile(`(?:क्षेत्रफल|एरिया)[\s:]*(\d+(?:\.\d+)?)`),
	regexp.MustCompile(`(?i)(\d+\.\d+)\s*(?:hectare|ha)?`),
	regexp.MustCompile(`([0-9]+\.[0-9]+)`),
}

// statusKeywords maps each claim status to its synonym set. Categories are
// checked in the order granted → pending → rejected.
var statusKeywords = []struct {
	status   string
	keywords []string
}{
	{"granted", []string{"granted", "approved", "sanctioned", "accepted"}},
	{"pending", []string{"pending", "under review", "processing", "submitted"}},
	{"rejected", []string{"rejected", "denied", "declined", "cancelled"}},
}
