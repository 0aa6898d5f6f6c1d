package types

import "time"

// EligibilityRules define the hard filter and priority weight of a scheme.
// A nil MaxArea means the scheme has no upper area bound. An empty
// AllowedStatuses list means every claim status is allowed.
type EligibilityRules struct {
	MinArea         float64       `json:"min_area"`
	MaxArea         *float64      `json:"max_area"`
	AllowedStatuses []ClaimStatus `json:"allowed_statuses"`
	PriorityScore   float64       `json:"priority_score"` // in [0,1]
}

// AllowsStatus reports whether the rules admit the given claim status.
func (r EligibilityRules) AllowsStatus(s ClaimStatus) bool {
	if len(r.AllowedStatuses) == 0 {
		return true
	}
	for _, allowed := range r.AllowedStatuses {
		if allowed == s {
			return true
		}
	}
	return false
}

// Scheme is a support program claims can be matched against.
type Scheme struct {
	ID          int64            `json:"id"`
	SchemeName  string           `json:"scheme_name"`
	Description string           `json:"description"`
	Rules       EligibilityRules `json:"eligibility_rules"`
	CreatedAt   time.Time        `json:"created_at"`
}
