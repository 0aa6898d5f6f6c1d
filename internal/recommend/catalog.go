package recommend

import "github.com/fra-atlas/fra-atlas-backend/types"

func floatPtr(v float64) *float64 { return &v }

// DefaultCatalog returns the built-in scheme catalog used when the store has
// no schemes to offer.
func DefaultCatalog() []types.Scheme {
	return []types.Scheme{
		{
			ID:          1,
			SchemeName:  "Irrigation Support Scheme",
			Description: "Support for irrigation infrastructure for larger land holdings",
			Rules: types.EligibilityRules{
				MinArea:         2.0,
				MaxArea:         nil,
				AllowedStatuses: []types.ClaimStatus{types.ClaimStatusGranted, types.ClaimStatusPending},
				PriorityScore:   0.8,
			},
		},
		{
			ID:          2,
			SchemeName:  "Legal Aid Scheme",
			Description: "Legal assistance for pending forest rights claims",
			Rules: types.EligibilityRules{
				MinArea:         0.1,
				MaxArea:         nil,
				AllowedStatuses: []types.ClaimStatus{types.ClaimStatusPending},
				PriorityScore:   0.9,
			},
		},
		{
			ID:          3,
			SchemeName:  "Community Forest Rights Scheme",
			Description: "Support for small community forest rights holders",
			Rules: types.EligibilityRules{
				MinArea:         0.1,
				MaxArea:         floatPtr(3.0),
				AllowedStatuses: []types.ClaimStatus{types.ClaimStatusGranted},
				PriorityScore:   0.7,
			},
		},
		{
			ID:          4,
			SchemeName:  "Livelihood Enhancement Scheme",
			Description: "Support for sustainable livelihood activities on forest land",
			Rules: types.EligibilityRules{
				MinArea:         0.5,
				MaxArea:         floatPtr(5.0),
				AllowedStatuses: []types.ClaimStatus{types.ClaimStatusGranted},
				PriorityScore:   0.6,
			},
		},
		{
			ID:          5,
			SchemeName:  "Forest Conservation Scheme",
			Description: "Incentives for forest conservation activities",
			Rules: types.EligibilityRules{
				MinArea:         1.0,
				MaxArea:         nil,
				AllowedStatuses: []types.ClaimStatus{types.ClaimStatusGranted},
				PriorityScore:   0.75,
			},
		},
		{
			ID:          6,
			SchemeName:  "Tribal Welfare Scheme",
			Description: "General welfare support for tribal communities",
			Rules: types.EligibilityRules{
				MinArea:         0.1,
				MaxArea:         nil,
				AllowedStatuses: []types.ClaimStatus{types.ClaimStatusGranted, types.ClaimStatusPending, types.ClaimStatusRejected},
				PriorityScore:   0.5,
			},
		},
	}
}
