package handlers

import (
	"net/http"

	apperrors "github.com/fra-atlas/fra-atlas-backend/errors"
	"github.com/fra-atlas/fra-atlas-backend/internal/store"
	"github.com/fra-atlas/fra-atlas-backend/logger"
	"github.com/fra-atlas/fra-atlas-backend/types"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// RecommendationHandler scores claims against the scheme catalog and serves
// stored results.
type RecommendationHandler struct {
	claimStore  store.ClaimStore
	schemeStore store.SchemeStore
	recStore    store.RecommendationStore
	engine      Recommender
}

// NewRecommendationHandler creates a RecommendationHandler.
func NewRecommendationHandler(claimStore store.ClaimStore, schemeStore store.SchemeStore, recStore store.RecommendationStore, engine Recommender) *RecommendationHandler {
	return &RecommendationHandler{
		claimStore:  claimStore,
		schemeStore: schemeStore,
		recStore:    recStore,
		engine:      engine,
	}
}

// GenerateRecommendations godoc
// @Summary Generate scheme recommendations for a claim
// @Description Scores the claim against the scheme catalog, persists the ranked results, and returns them.
// @Tags recommendations
// @Produce json
// @Param id path int true "Claim ID"
// @Success 200 {array} types.Recommendation
// @Failure 400 {object} types.ErrorResponse "Invalid claim ID"
// @Failure 404 {object} types.ErrorResponse "Claim not found"
// @Router /v1/recommend/{id} [post]
func (h *RecommendationHandler) GenerateRecommendations(c *gin.Context) {
	log := logger.GetLogger()

	id, appErr := parseClaimID(c.Param("id"))
	if appErr != nil {
		if err := c.Error(appErr); err != nil {
			log.Errorw("Failed to add validation error", "error", err)
		}
		return
	}

	claim, err := h.claimStore.GetClaim(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			if err := c.Error(apperrors.ClaimNotFound(id)); err != nil {
				log.Errorw("Failed to add not-found error", "error", err)
			}
			return
		}
		if err := c.Error(apperrors.NewDatabaseError(err)); err != nil {
			log.Errorw("Failed to add database error", "error", err)
		}
		return
	}

	// A failing catalog query falls back to the built-in schemes rather than
	// aborting; the engine uses its defaults when handed an empty list.
	schemes, err := h.schemeStore.ListSchemes(c.Request.Context())
	if err != nil {
		log.Warnw("Could not fetch schemes from store, using built-in catalog", "error", err)
		schemes = nil
	}

	scored := h.engine.Recommend(*claim, schemes)
	if len(scored) == 0 {
		log.Infow("No recommendations for claim", "claim_id", id)
		c.JSON(http.StatusOK, []types.Recommendation{})
		return
	}

	saved, err := h.recStore.SaveRecommendations(c.Request.Context(), id, scored)
	if err != nil {
		if err := c.Error(apperrors.NewDatabaseError(err)); err != nil {
			log.Errorw("Failed to add database error", "error", err)
		}
		return
	}

	c.JSON(http.StatusOK, saved)
}

// GetRecommendationHistory godoc
// @Summary Get stored recommendations for a claim
// @Tags recommendations
// @Produce json
// @Param id path int true "Claim ID"
// @Success 200 {array} types.Recommendation
// @Failure 400 {object} types.ErrorResponse "Invalid claim ID"
// @Failure 404 {object} types.ErrorResponse "Claim not found"
// @Router /v1/recommend/{id}/history [get]
func (h *RecommendationHandler) GetRecommendationHistory(c *gin.Context) {
	log := logger.GetLogger()

	id, appErr := parseClaimID(c.Param("id"))
	if appErr != nil {
		if err := c.Error(appErr); err != nil {
			log.Errorw("Failed to add validation error", "error", err)
		}
		return
	}

	if _, err := h.claimStore.GetClaim(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			if err := c.Error(apperrors.ClaimNotFound(id)); err != nil {
				log.Errorw("Failed to add not-found error", "error", err)
			}
			return
		}
		if err := c.Error(apperrors.NewDatabaseError(err)); err != nil {
			log.Errorw("Failed to add database error", "error", err)
		}
		return
	}

	recs, err := h.recStore.ListRecommendations(c.Request.Context(), id)
	if err != nil {
		if err := c.Error(apperrors.NewDatabaseError(err)); err != nil {
			log.Errorw("Failed to add database error", "error", err)
		}
		return
	}

	c.JSON(http.StatusOK, recs)
}
