// Package recommend implements the deterministic, explainable scoring engine
// that ranks support schemes for a claim.
package recommend

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"sort"
	"strings"

	"github.com/fra-atlas/fra-atlas-backend/types"
	"go.uber.org/zap"
)

// Scoring weights and output bounds.
const (
	// boundedAreaFitMax is the peak bonus for claims near the midpoint of a
	// bounded [min, max] area range.
	boundedAreaFitMax = 0.2
	// unboundedAreaFitMax caps the logarithmic reward for schemes without an
	// upper area bound.
	unboundedAreaFitMax = 0.25
	// themeBonus is added per thematic keyword overlap between the claim's
	// free text and the scheme name.
	themeBonus = 0.1
	// jitterSpan bounds the symmetric deterministic perturbation.
	jitterSpan = 0.04

	statusBonusPending  = 0.05
	statusBonusGranted  = 0.10
	statusPenaltyReject = -0.10

	defaultMinScore   = 0.3
	defaultMaxResults = 5
)

// Thematic keyword groups used for the context bonus. A scheme name
// containing the group key gets the bonus when any of the group's keywords
// appears in the claim's name or village text.
var themeKeywords = map[string][]string{
	"irrigation":   {"river", "nadi", "tank", "canal", "irrigat"},
	"forest":       {"forest", "van", "jungle", "bagh", "garh"},
	"community":    {"gram", "community", "samiti", "panchayat"},
	"tribal":       {"tribal", "adivasi", "janjati"},
	"legal":        {"dispute", "appeal", "court"},
	"conservation": {"reserve", "sanctuary", "wildlife"},
}

// Engine scores claims against scheme catalogs. Stateless after
// construction; safe for concurrent use.
type Engine struct {
	minScore   float64
	maxResults int
	log        *zap.SugaredLogger
}

// NewEngine creates a scoring engine. Non-positive bounds select defaults
// (floor 0.3, cap 5).
func NewEngine(minScore float64, maxResults int, log *zap.SugaredLogger) *Engine {
	if minScore <= 0 {
		minScore = defaultMinScore
	}
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	return &Engine{minScore: minScore, maxResults: maxResults, log: log}
}

// Recommend scores the claim against each scheme in the catalog (the built-in
// catalog when none is supplied), drops ineligible and low-relevance schemes,
// and returns a deduplicated, descending-ranked list capped at the configured
// maximum. Persistence of the results is the caller's concern.
func (e *Engine) Recommend(claim types.Claim, schemes []types.Scheme) []types.ScoredScheme {
	if len(schemes) == 0 {
		schemes = DefaultCatalog()
	}

	scored := make([]types.ScoredScheme, 0, len(schemes))
	seen := make(map[int64]bool, len(schemes))

	for _, scheme := range schemes {
		if seen[scheme.ID] {
			continue
		}
		seen[scheme.ID] = true

		score := e.Score(claim, scheme)
		if score <= e.minScore {
			continue
		}
		scored = append(scored, types.ScoredScheme{
			SchemeID:    scheme.ID,
			SchemeName:  scheme.SchemeName,
			Description: scheme.Description,
			Score:       score,
			Rules:       scheme.Rules,
		})
	}

	// Stable sort keeps catalog order among exact ties.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > e.maxResults {
		scored = scored[:e.maxResults]
	}

	e.log.Infow("Generated recommendations",
		"claim_id", claim.ID, "count", len(scored))
	return scored
}

// Score computes the compatibility score for one claim/scheme pair. Ineligible
// pairs score exactly 0. Malformed rules are caught, logged, and scored 0 so
// one bad scheme never aborts the rest of the catalog.
func (e *Engine) Score(claim types.Claim, scheme types.Scheme) (score float64) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Errorw("Scheme scoring failed",
				"scheme_id", scheme.ID, "claim_id", claim.ID, "panic", r)
			score = 0
		}
	}()

	if err := validateRules(scheme.Rules); err != nil {
		e.log.Warnw("Skipping scheme with malformed rules",
			"scheme_id", scheme.ID, "error", err)
		return 0
	}

	if !eligible(claim, scheme.Rules) {
		return 0
	}

	score = scheme.Rules.PriorityScore
	score += areaFit(claim.Area, scheme.Rules)
	score += statusAdjustment(claim.Status)
	score += e.contextBonus(claim, scheme)
	score += jitter(claim.ID, scheme.ID, claim.Area)

	// The additive terms can sum past 1 for high-priority schemes; the clamp
	// is part of the contract.
	return clamp(score, 0, 1)
}

// validateRules rejects rule sets the scorer cannot reason about.
func validateRules(rules types.EligibilityRules) error {
	if math.IsNaN(rules.MinArea) || rules.MinArea < 0 {
		return fmt.Errorf("min_area %v is invalid", rules.MinArea)
	}
	if rules.MaxArea != nil && (math.IsNaN(*rules.MaxArea) || *rules.MaxArea < rules.MinArea) {
		return fmt.Errorf("max_area %v below min_area %v", *rules.MaxArea, rules.MinArea)
	}
	if math.IsNaN(rules.PriorityScore) || rules.PriorityScore < 0 || rules.PriorityScore > 1 {
		return fmt.Errorf("priority_score %v outside [0,1]", rules.PriorityScore)
	}
	return nil
}

// eligible is the hard filter applied before any scoring.
func eligible(claim types.Claim, rules types.EligibilityRules) bool {
	if claim.Area < rules.MinArea {
		return false
	}
	if rules.MaxArea != nil && claim.Area > *rules.MaxArea {
		return false
	}
	return rules.AllowsStatus(claim.Status)
}

// areaFit rewards claims whose area suits the scheme's range. Bounded ranges
// use a bell curve around the midpoint; unbounded schemes reward larger areas
// logarithmically relative to the minimum, with diminishing returns.
func areaFit(area float64, rules types.EligibilityRules) float64 {
	if rules.MaxArea != nil {
		mid := (rules.MinArea + *rules.MaxArea) / 2
		halfRange := (*rules.MaxArea - rules.MinArea) / 2
		if halfRange <= 0 {
			return boundedAreaFitMax
		}
		// Sigma at half the half-range puts ~95% of the bonus mass inside
		// the eligible window.
		sigma := halfRange / 2
		d := area - mid
		return boundedAreaFitMax * math.Exp(-d*d/(2*sigma*sigma))
	}

	base := math.Max(rules.MinArea, 0.1)
	ratio := area / base
	if ratio < 1 {
		return 0
	}
	return math.Min(unboundedAreaFitMax, 0.1*math.Log2(1+ratio))
}

// statusAdjustment reflects differing support needs: pending claims need help
// to progress, granted claims can actually use a scheme, rejected claims get
// a small penalty even when a scheme explicitly allows them.
func statusAdjustment(status types.ClaimStatus) float64 {
	switch status {
	case types.ClaimStatusPending:
		return statusBonusPending
	case types.ClaimStatusGranted:
		return statusBonusGranted
	case types.ClaimStatusRejected:
		return statusPenaltyReject
	}
	return 0
}

// contextBonus adds a small heuristic relevance boost when the claim's free
// text shares a theme with the scheme name. Not an eligibility condition.
func (e *Engine) contextBonus(claim types.Claim, scheme types.Scheme) float64 {
	schemeName := strings.ToLower(scheme.SchemeName)
	claimText := strings.ToLower(claim.Village + " " + claim.ClaimantName)

	var bonus float64
	for theme, keywords := range themeKeywords {
		if !strings.Contains(schemeName, theme) {
			continue
		}
		for _, kw := range keywords {
			if strings.Contains(claimText, kw) {
				bonus += themeBonus
				break
			}
		}
	}
	return math.Min(bonus, 2*themeBonus)
}

// jitter derives a symmetric perturbation in [-jitterSpan, +jitterSpan] from
// the (claim id, scheme id, area) tuple. Seeded locally so repeated scoring
// of the same pair is reproducible and independent of global random state.
func jitter(claimID, schemeID int64, area float64) float64 {
	h := fnv.New64a()
	var buf [24]byte
	putInt64(buf[0:8], claimID)
	putInt64(buf[8:16], schemeID)
	putInt64(buf[16:24], int64(math.Float64bits(area)))
	_, _ = h.Write(buf[:])

	rng := rand.New(rand.NewSource(int64(h.Sum64())))
	return (rng.Float64()*2 - 1) * jitterSpan
}

func putInt64(b []byte, v int64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
