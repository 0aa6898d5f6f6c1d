package recommend

import (
	"testing"

	"github.com/fra-atlas/fra-atlas-backend/logger"
	"github.com/fra-atlas/fra-atlas-backend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.IsTest = true
}

func newTestEngine() *Engine {
	return NewEngine(0, 0, logger.GetLogger())
}

func TestRecommendLargeGrantedClaimGetsIrrigationSupport(t *testing.T) {
	claim := types.Claim{ID: 1, ClaimantName: "Ramesh Kumar", Village: "Bandhavgarh", Area: 2.5, Status: types.ClaimStatusGranted}

	results := newTestEngine().Recommend(claim, nil)

	require.NotEmpty(t, results)
	var irrigation *types.ScoredScheme
	for i := range results {
		if results[i].SchemeName == "Irrigation Support Scheme" {
			irrigation = &results[i]
		}
	}
	require.NotNil(t, irrigation, "irrigation scheme missing from results")
	assert.Greater(t, irrigation.Score, 0.3)
}

func TestRecommendTinyPendingClaimIneligibleEverywhere(t *testing.T) {
	// 0.05 hectares is below every built-in scheme's minimum area.
	claim := types.Claim{ID: 2, ClaimantName: "Sunita Devi", Village: "Kanha", Area: 0.05, Status: types.ClaimStatusPending}

	results := newTestEngine().Recommend(claim, nil)

	assert.Empty(t, results)
}

func TestRecommendSortedDescending(t *testing.T) {
	claim := types.Claim{ID: 3, ClaimantName: "Mohan Singh", Village: "Pench", Area: 2.5, Status: types.ClaimStatusGranted}

	results := newTestEngine().Recommend(claim, nil)

	require.NotEmpty(t, results)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
}

func TestRecommendCapAndFloor(t *testing.T) {
	claim := types.Claim{ID: 4, ClaimantName: "Ramesh Kumar", Village: "Bandhavgarh", Area: 2.5, Status: types.ClaimStatusGranted}

	engine := NewEngine(0.3, 2, logger.GetLogger())
	results := engine.Recommend(claim, nil)

	assert.LessOrEqual(t, len(results), 2)
	for _, r := range results {
		assert.Greater(t, r.Score, 0.3)
	}
}

func TestRecommendDedupesBySchemeID(t *testing.T) {
	claim := types.Claim{ID: 5, Area: 2.0, Status: types.ClaimStatusPending}
	scheme := types.Scheme{
		ID:         42,
		SchemeName: "Duplicate Scheme",
		Rules:      types.EligibilityRules{MinArea: 0.1, PriorityScore: 0.9},
	}

	results := newTestEngine().Recommend(claim, []types.Scheme{scheme, scheme, scheme})

	assert.Len(t, results, 1)
}

func TestScoreDeterministic(t *testing.T) {
	engine := newTestEngine()
	claim := types.Claim{ID: 7, Area: 1.7, Status: types.ClaimStatusPending}
	scheme := DefaultCatalog()[1]

	first := engine.Score(claim, scheme)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, engine.Score(claim, scheme))
	}
}

func TestScoreDistinctPairsDiffer(t *testing.T) {
	engine := newTestEngine()
	scheme := types.Scheme{ID: 6, SchemeName: "Tribal Welfare Scheme", Rules: types.EligibilityRules{MinArea: 0.1, PriorityScore: 0.5}}

	a := engine.Score(types.Claim{ID: 10, Area: 1.0, Status: types.ClaimStatusPending}, scheme)
	b := engine.Score(types.Claim{ID: 11, Area: 1.0, Status: types.ClaimStatusPending}, scheme)

	// Same area and status, different claim id: the seeded perturbation must
	// separate the two scores.
	assert.NotEqual(t, a, b)
}

func TestScoreAlwaysWithinUnitInterval(t *testing.T) {
	engine := newTestEngine()
	statuses := []types.ClaimStatus{types.ClaimStatusGranted, types.ClaimStatusPending, types.ClaimStatusRejected}
	areas := []float64{0.05, 0.1, 0.8, 1.2, 2.5, 5.0, 50.0, 100.0}

	var id int64
	for _, status := range statuses {
		for _, area := range areas {
			id++
			claim := types.Claim{ID: id, Area: area, Status: status}
			for _, scheme := range DefaultCatalog() {
				score := engine.Score(claim, scheme)
				assert.GreaterOrEqual(t, score, 0.0)
				assert.LessOrEqual(t, score, 1.0)
			}
		}
	}
}

func TestScoreIneligibleStatusIsZero(t *testing.T) {
	engine := newTestEngine()
	// Legal Aid only admits pending claims.
	legalAid := DefaultCatalog()[1]
	claim := types.Claim{ID: 20, Area: 1.0, Status: types.ClaimStatusGranted}

	assert.Zero(t, engine.Score(claim, legalAid))
}

func TestScoreBelowMinAreaIsZero(t *testing.T) {
	engine := newTestEngine()
	irrigation := DefaultCatalog()[0]
	claim := types.Claim{ID: 21, Area: 1.9, Status: types.ClaimStatusGranted}

	assert.Zero(t, engine.Score(claim, irrigation))
}

func TestScoreAboveMaxAreaIsZero(t *testing.T) {
	engine := newTestEngine()
	// Community Forest Rights caps at 3.0 hectares.
	community := DefaultCatalog()[2]
	claim := types.Claim{ID: 22, Area: 3.5, Status: types.ClaimStatusGranted}

	assert.Zero(t, engine.Score(claim, community))
}

func TestScoreMalformedRulesIsZero(t *testing.T) {
	engine := newTestEngine()
	claim := types.Claim{ID: 23, Area: 1.0, Status: types.ClaimStatusPending}

	tests := []types.EligibilityRules{
		{MinArea: -1, PriorityScore: 0.5},
		{MinArea: 5, MaxArea: floatPtr(2), PriorityScore: 0.5},
		{MinArea: 0.1, PriorityScore: 1.5},
	}
	for _, rules := range tests {
		scheme := types.Scheme{ID: 99, SchemeName: "Broken Scheme", Rules: rules}
		assert.Zero(t, engine.Score(claim, scheme), "rules %+v", rules)
	}
}

func TestScoreBoundedAreaFitPeaksAtMidpoint(t *testing.T) {
	rules := types.EligibilityRules{MinArea: 1.0, MaxArea: floatPtr(5.0)}

	atMid := areaFit(3.0, rules)
	nearEdge := areaFit(4.8, rules)

	assert.InDelta(t, boundedAreaFitMax, atMid, 1e-9)
	assert.Less(t, nearEdge, atMid)
	assert.GreaterOrEqual(t, nearEdge, 0.0)
}

func TestScoreUnboundedAreaFitCapped(t *testing.T) {
	rules := types.EligibilityRules{MinArea: 0.1}

	small := areaFit(0.2, rules)
	huge := areaFit(100.0, rules)

	assert.Greater(t, huge, small)
	assert.LessOrEqual(t, huge, unboundedAreaFitMax)
}

func TestScoreContextBonusMatchesTheme(t *testing.T) {
	engine := newTestEngine()
	// "garh" in the village name matches the forest theme group.
	forestClaim := types.Claim{ID: 30, ClaimantName: "Ramesh Kumar", Village: "Bandhavgarh", Area: 2.5, Status: types.ClaimStatusGranted}
	plainClaim := types.Claim{ID: 30, ClaimantName: "Ramesh Kumar", Village: "Indore", Area: 2.5, Status: types.ClaimStatusGranted}

	assert.Greater(t, engine.contextBonus(forestClaim, types.Scheme{SchemeName: "Forest Conservation Scheme"}), 0.0)
	assert.Zero(t, engine.contextBonus(plainClaim, types.Scheme{SchemeName: "Forest Conservation Scheme"}))
}

func TestJitterBoundedAndDeterministic(t *testing.T) {
	for claimID := int64(1); claimID <= 50; claimID++ {
		j := jitter(claimID, 3, 2.5)
		assert.GreaterOrEqual(t, j, -jitterSpan)
		assert.LessOrEqual(t, j, jitterSpan)
		assert.Equal(t, j, jitter(claimID, 3, 2.5))
	}
}

func TestDefaultCatalogShape(t *testing.T) {
	catalog := DefaultCatalog()

	require.Len(t, catalog, 6)
	seen := make(map[int64]bool)
	for _, s := range catalog {
		assert.False(t, seen[s.ID], "duplicate scheme id %d", s.ID)
		seen[s.ID] = true
		assert.NotEmpty(t, s.SchemeName)
		assert.GreaterOrEqual(t, s.Rules.PriorityScore, 0.0)
		assert.LessOrEqual(t, s.Rules.PriorityScore, 1.0)
	}
}
