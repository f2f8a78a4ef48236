package handlers

import (
	"errors"
	"net/http"

	"machine_health/internal/service"

	"github.com/gin-gonic/gin"
)

const errIngestFailed = "failed to record sample"

// Device ingestion payload. The API key ships in the body so that simple
// edge devices only need a POST with one JSON document.
type ingestRequest struct {
	APIKey      string  `json:"api_key" binding:"required"`
	MachineType string  `json:"machine_type" binding:"required"`
	Temperature float64 `json:"temperature"`
}

// @Summary      Ingest a sensor temperature sample
// @Description  Device-facing endpoint; authenticated by a shared API key, not a JWT. Overwrites the previous sample for the machine type.
// @Tags         telemetry
// @Accept       json
// @Produce      json
// @Param        body  body   ingestRequest  true  "Sample"
// @Success      200   {object}  models.LatestTemperature
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /ingest [post]
func (h *Handler) ingestTemperature(c *gin.Context) {
	var req ingestRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	ctx := c.Request.Context()
	sample, err := h.services.Telemetry.Ingest(ctx, req.APIKey, req.MachineType, req.Temperature)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBadAPIKey):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrBadMachineType):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logAndJSONError(c, http.StatusInternalServerError, errIngestFailed, "telemetry_ingest_failed", err, "machine_type", req.MachineType)
		}
		return
	}

	c.JSON(http.StatusOK, sample)
}

// @Summary      Latest sensor sample
// @Description  Without ?machine_type returns all machine types; with it, the single sample (404 if none yet).
// @Tags         telemetry
// @Produce      json
// @Param        machine_type  query   string  false  "Machine type"  Enums(CNC,EDM,Lathe,Grinding)
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/telemetry/latest [get]
// @Security     BearerAuth
func (h *Handler) getLatestTemperature(c *gin.Context) {
	ctx := c.Request.Context()

	machineType := c.Query("machine_type")
	if machineType == "" {
		samples, err := h.services.Telemetry.Snapshot(ctx)
		if err != nil {
			h.logAndJSONError(c, http.StatusInternalServerError, "failed to load samples", "telemetry_snapshot_failed", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"count":   len(samples),
			"samples": samples,
		})
		return
	}

	sample, err := h.services.Telemetry.Latest(ctx, machineType)
	if err != nil {
		if errors.Is(err, service.ErrBadMachineType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load sample", "telemetry_latest_failed", err, "machine_type", machineType)
		return
	}
	if sample == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no sample for machine type"})
		return
	}

	c.JSON(http.StatusOK, sample)
}
