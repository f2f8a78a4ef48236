package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"machine_health/internal/engine"
	"machine_health/internal/metrics"
	"machine_health/internal/models"
	"machine_health/internal/repository"

	"github.com/google/uuid"
)

// ErrNoTemperatureData is returned when a prediction request omits the
// temperature and no sensor sample exists for the machine type.
var ErrNoTemperatureData = errors.New("no temperature data available; provide temperature manually or ensure the sensor is sending data")

// PredictRequest is a prediction input before temperature resolution.
// A nil Temperature means "use the latest sensor sample".
type PredictRequest struct {
	MachineType     string
	RunningHours    float64
	FeedingRate     float64
	Temperature     *float64
	Vibration       float64
	MaintenanceDate string
}

// PredictOutcome bundles the persisted record with the threshold snapshot
// the engine applied, for auditable responses.
type PredictOutcome struct {
	Record         models.Prediction
	ThresholdsUsed engine.ThresholdsUsed
}

type PredictionService struct {
	predictionRepo repository.PredictionRepo
	telemetryRepo  repository.TelemetryRepo
	config         Config
}

func NewPredictionService(predictionRepo repository.PredictionRepo, telemetryRepo repository.TelemetryRepo, config Config) *PredictionService {
	return &PredictionService{
		predictionRepo: predictionRepo,
		telemetryRepo:  telemetryRepo,
		config:         config,
	}
}

// Predict resolves the temperature, snapshots the active threshold
// configuration, runs the scoring engine, and appends the outcome to the
// prediction log. The engine itself stays pure; all I/O happens here.
func (s *PredictionService) Predict(ctx context.Context, req PredictRequest) (*PredictOutcome, error) {
	temperature, err := s.resolveTemperature(ctx, req)
	if err != nil {
		metrics.ScoringFailures.WithLabelValues("no_temperature").Inc()
		return nil, err
	}

	cfg, err := s.config.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load threshold config: %w", err)
	}

	reading := engine.MetricsReading{
		MachineType:     engine.MachineType(req.MachineType),
		RunningHours:    req.RunningHours,
		FeedingRate:     req.FeedingRate,
		Temperature:     temperature,
		Vibration:       req.Vibration,
		MaintenanceDate: req.MaintenanceDate,
	}

	result, err := engine.Score(reading, cfg.EngineConfig())
	if err != nil {
		metrics.ScoringFailures.WithLabelValues(failureReason(err)).Inc()
		return nil, err
	}

	record := models.Prediction{
		ID:              uuid.NewString(),
		MachineType:     req.MachineType,
		RunningHours:    req.RunningHours,
		FeedingRate:     req.FeedingRate,
		Temperature:     temperature,
		Vibration:       req.Vibration,
		MaintenanceDate: req.MaintenanceDate,
		PredictionDate:  time.Now().UTC(),
		RiskScore:       result.RiskScore,
		ConditionLevel:  string(result.ConditionLevel),
		Explanation:     result.Explanation,
		Alerts:          result.Alerts,
	}

	if err := s.predictionRepo.Append(ctx, record); err != nil {
		return nil, fmt.Errorf("persist prediction: %w", err)
	}

	metrics.PredictionsTotal.WithLabelValues(record.MachineType, record.ConditionLevel).Inc()

	return &PredictOutcome{Record: record, ThresholdsUsed: result.ThresholdsUsed}, nil
}

// resolveTemperature prefers the manually supplied value, else falls back
// to the latest sensor sample for the machine type.
func (s *PredictionService) resolveTemperature(ctx context.Context, req PredictRequest) (float64, error) {
	if req.Temperature != nil {
		return *req.Temperature, nil
	}
	latest, err := s.telemetryRepo.GetLatest(ctx, req.MachineType)
	if err != nil {
		return 0, fmt.Errorf("lookup latest temperature: %w", err)
	}
	if latest == nil {
		return 0, ErrNoTemperatureData
	}
	return latest.Temperature, nil
}

func failureReason(err error) string {
	var cerr *engine.ConfigurationError
	if errors.As(err, &cerr) {
		return "configuration"
	}
	return "validation"
}
