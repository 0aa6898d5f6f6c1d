package types

import "time"

// Recommendation is a scored (claim, scheme) pairing. SchemeName is
// denormalized for display.
type Recommendation struct {
	ID         int64     `json:"id"`
	ClaimID    int64     `json:"claim_id"`
	SchemeID   int64     `json:"scheme_id"`
	SchemeName string    `json:"scheme_name"`
	Score      float64   `json:"score"` // in [0,1]
	CreatedAt  time.Time `json:"created_at"`
}

// ScoredScheme is the scorer's in-memory output before persistence.
type ScoredScheme struct {
	SchemeID    int64            `json:"scheme_id"`
	SchemeName  string           `json:"scheme_name"`
	Description string           `json:"description"`
	Score       float64          `json:"score"`
	Rules       EligibilityRules `json:"eligibility_rules"`
}
