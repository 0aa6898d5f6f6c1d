package handlers

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/fra-atlas/fra-atlas-backend/errors"
	"github.com/fra-atlas/fra-atlas-backend/internal/geo"
	"github.com/fra-atlas/fra-atlas-backend/internal/store"
	"github.com/fra-atlas/fra-atlas-backend/logger"
	"github.com/gin-gonic/gin"
)

// MapHandler serves claims as GeoJSON for the web map.
type MapHandler struct {
	claimStore store.ClaimStore
}

// NewMapHandler creates a MapHandler.
func NewMapHandler(claimStore store.ClaimStore) *MapHandler {
	return &MapHandler{claimStore: claimStore}
}

// GetMapData godoc
// @Summary Get all claims as a GeoJSON FeatureCollection
// @Tags map
// @Produce json
// @Success 200 {object} geo.FeatureCollection
// @Router /v1/map [get]
func (h *MapHandler) GetMapData(c *gin.Context) {
	log := logger.GetLogger()

	claims, err := h.claimStore.ListClaims(c.Request.Context(), nil)
	if err != nil {
		if err := c.Error(apperrors.NewDatabaseError(err)); err != nil {
			log.Errorw("Failed to add database error", "error", err)
		}
		return
	}

	fc := geo.BuildFeatureCollection(claims)
	log.Infow("Returning GeoJSON", "features", len(fc.Features))

	body, err := json.Marshal(fc)
	if err != nil {
		if err := c.Error(apperrors.Wrap(err, apperrors.ServerError, "Failed to encode GeoJSON")); err != nil {
			log.Errorw("Failed to add server error", "error", err)
		}
		return
	}
	c.Data(http.StatusOK, geo.ContentType, body)
}
