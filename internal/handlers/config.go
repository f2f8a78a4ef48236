package handlers

import (
	"errors"
	"net/http"

	"machine_health/internal/engine"
	"machine_health/internal/models"
	"machine_health/internal/service"

	"github.com/gin-gonic/gin"
)

// Config update payload: the full replacement document, not a patch.
type configUpdateRequest struct {
	SensorMode string            `json:"sensor_mode" binding:"required"`
	Thresholds engine.Thresholds `json:"thresholds" binding:"required"`
}

// @Summary      Active threshold configuration
// @Tags         config
// @Produce      json
// @Success      200  {object}  models.SensorConfig
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/config [get]
// @Security     BearerAuth
func (h *Handler) getConfig(c *gin.Context) {
	ctx := c.Request.Context()
	cfg, err := h.services.Config.Get(ctx)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetConfig, "config_get_failed", err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// @Summary      Replace threshold configuration
// @Description  Manager-only. Replaces the sensor mode and the full threshold table; subsequent predictions score against the new values.
// @Tags         config
// @Accept       json
// @Produce      json
// @Param        body  body   configUpdateRequest  true  "New configuration"
// @Success      200   {object}  models.SensorConfig
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/config [put]
// @Security     BearerAuth
func (h *Handler) updateConfig(c *gin.Context) {
	var req configUpdateRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	ctx := c.Request.Context()
	role := currentUserRole(c)
	cfg := models.SensorConfig{
		SensorMode: engine.SensorMode(req.SensorMode),
		Thresholds: req.Thresholds,
	}

	if err := h.services.Config.Update(ctx, role, cfg); err != nil {
		switch {
		case errors.Is(err, service.ErrConfigForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrBadSensorMode), errors.Is(err, service.ErrEmptyThresholds):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logAndJSONError(c, http.StatusInternalServerError, errSaveConfig, "config_update_failed", err, "role", role)
		}
		return
	}

	// Echo back the stored document so the caller sees the stamped UpdatedAt.
	stored, err := h.services.Config.Get(ctx)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetConfig, "config_get_failed", err)
		return
	}
	c.JSON(http.StatusOK, stored)
}
