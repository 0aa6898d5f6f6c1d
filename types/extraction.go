package types

// ExtractedFields is the structured output of the field extractor. After
// validation every field is populated; defaults are substituted for anything
// the heuristics could not find.
type ExtractedFields struct {
	ClaimantName string      `json:"claimant_name"`
	Village      string      `json:"village"`
	Area         float64     `json:"area"`
	Status       ClaimStatus `json:"status"`
}

// Default values substituted for fields the extractor could not resolve.
const (
	DefaultClaimantName = "Unknown Claimant"
	DefaultVillage      = "Unknown Village"
	DefaultArea         = 1.0
	DefaultStatus       = ClaimStatusPending
)
