package handlers

import (
	"net/http"
	"strconv"

	apperrors "github.com/fra-atlas/fra-atlas-backend/errors"
	"github.com/fra-atlas/fra-atlas-backend/internal/store"
	"github.com/fra-atlas/fra-atlas-backend/logger"
	"github.com/fra-atlas/fra-atlas-backend/types"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// ClaimHandler serves claim listing and lookup.
type ClaimHandler struct {
	claimStore store.ClaimStore
}

// NewClaimHandler creates a ClaimHandler.
func NewClaimHandler(claimStore store.ClaimStore) *ClaimHandler {
	return &ClaimHandler{claimStore: claimStore}
}

// ListClaims godoc
// @Summary List claims
// @Description Returns all claims, newest first, optionally filtered by status.
// @Tags claims
// @Produce json
// @Param status query string false "Filter by status: granted, pending, or rejected"
// @Success 200 {array} types.Claim
// @Failure 400 {object} types.ErrorResponse "Invalid status filter"
// @Router /v1/claims [get]
func (h *ClaimHandler) ListClaims(c *gin.Context) {
	log := logger.GetLogger()

	var statusFilter *types.ClaimStatus
	if raw := c.Query("status"); raw != "" {
		status := types.ClaimStatus(raw)
		if !status.IsValid() {
			if err := c.Error(apperrors.ValidationFailed(
				"Invalid status filter",
				"status must be one of: granted, pending, rejected")); err != nil {
				log.Errorw("Failed to add validation error", "error", err)
			}
			return
		}
		statusFilter = &status
	}

	claims, err := h.claimStore.ListClaims(c.Request.Context(), statusFilter)
	if err != nil {
		if err := c.Error(apperrors.NewDatabaseError(err)); err != nil {
			log.Errorw("Failed to add database error", "error", err)
		}
		return
	}

	c.JSON(http.StatusOK, claims)
}

// GetClaim godoc
// @Summary Get a claim by ID
// @Tags claims
// @Produce json
// @Param id path int true "Claim ID"
// @Success 200 {object} types.Claim
// @Failure 400 {object} types.ErrorResponse "Invalid claim ID"
// @Failure 404 {object} types.ErrorResponse "Claim not found"
// @Router /v1/claims/{id} [get]
func (h *ClaimHandler) GetClaim(c *gin.Context) {
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

	c.JSON(http.StatusOK, claim)
}

// parseClaimID validates a positive integer path parameter.
func parseClaimID(raw string) (int64, *apperrors.AppError) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.ValidationFailed("Invalid claim ID", "claim id must be a positive integer")
	}
	return id, nil
}
