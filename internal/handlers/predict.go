package handlers

import (
	"errors"
	"net/http"

	"machine_health/internal/engine"
	"machine_health/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK = "ok"

	errPredictFailed = "failed to run prediction"
	errGetConfig     = "failed to load configuration"
	errSaveConfig    = "failed to save configuration"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// Request DTO for predictions. Temperature is optional: when omitted the
// latest device sample for the machine type is used.
type predictRequest struct {
	MachineType     string   `json:"machine_type" binding:"required"` // CNC | EDM | Lathe | Grinding
	RunningHours    float64  `json:"running_hours"`
	FeedingRate     float64  `json:"feeding_rate"` // mm/min
	Temperature     *float64 `json:"temperature,omitempty"`
	Vibration       float64  `json:"vibration"` // µm
	MaintenanceDate string   `json:"maintenance_date,omitempty"`
}

// PredictRequestDoc is an exported model for Swagger docs of the predict payload.
type PredictRequestDoc struct {
	// Machine type. Allowed: CNC, EDM, Lathe, Grinding
	MachineType string `json:"machine_type" example:"CNC"`
	// Hours of operation since last service
	RunningHours float64 `json:"running_hours" example:"1500"`
	// Feed rate in mm/min
	FeedingRate float64 `json:"feeding_rate" example:"120"`
	// Temperature in Celsius (omit to use the latest sensor sample)
	Temperature *float64 `json:"temperature,omitempty" example:"75"`
	// Vibration in micrometers
	Vibration float64 `json:"vibration" example:"3.2"`
	// Last maintenance date, informational only
	MaintenanceDate string `json:"maintenance_date,omitempty" example:"2026-05-01"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Score a machine reading
// @Description  Runs the risk engine against the reading and records the outcome. Temperature falls back to the latest ingested sensor sample when omitted.
// @Tags         predictions
// @Accept       json
// @Produce      json
// @Param        body  body   PredictRequestDoc  true  "Machine reading"
// @Success      200   {object}  map[string]interface{}  "prediction, thresholds_used"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/predict [post]
// @Security     BearerAuth
func (h *Handler) predict(c *gin.Context) {
	var req predictRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	ctx := c.Request.Context()
	outcome, err := h.services.Prediction.Predict(ctx, service.PredictRequest{
		MachineType:     req.MachineType,
		RunningHours:    req.RunningHours,
		FeedingRate:     req.FeedingRate,
		Temperature:     req.Temperature,
		Vibration:       req.Vibration,
		MaintenanceDate: req.MaintenanceDate,
	})
	if err != nil {
		h.respondPredictError(c, err, req.MachineType)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"prediction":      outcome.Record,
		"thresholds_used": outcome.ThresholdsUsed,
	})
}

// respondPredictError maps engine and service errors onto HTTP statuses.
// Caller mistakes surface as 400 with the real message; broken threshold
// configuration is a server problem and stays opaque.
func (h *Handler) respondPredictError(c *gin.Context, err error, machineType string) {
	var verr *engine.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
		return
	}
	if errors.Is(err, service.ErrNoTemperatureData) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var cerr *engine.ConfigurationError
	if errors.As(err, &cerr) {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetConfig, "predict_bad_config", err, "machine_type", machineType)
		return
	}
	h.logAndJSONError(c, http.StatusInternalServerError, errPredictFailed, "predict_failed", err, "machine_type", machineType)
}
