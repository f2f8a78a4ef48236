package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"machine_health/internal/engine"
	"machine_health/internal/metrics"
	"machine_health/internal/models"
	"machine_health/internal/repository"
)

// Domain errors for the device-facing ingest path.
var (
	ErrBadAPIKey      = errors.New("invalid API key")
	ErrBadMachineType = errors.New("invalid machine type")
)

type TelemetryService struct {
	telemetryRepo repository.TelemetryRepo
	apiKey        string
}

func NewTelemetryService(telemetryRepo repository.TelemetryRepo, apiKey string) *TelemetryService {
	return &TelemetryService{telemetryRepo: telemetryRepo, apiKey: apiKey}
}

// Ingest validates the shared device key and machine type, then replaces
// the latest reading for that machine.
func (s *TelemetryService) Ingest(ctx context.Context, apiKey, machineType string, temperature float64) (models.LatestTemperature, error) {
	if subtle.ConstantTimeCompare([]byte(apiKey), []byte(s.apiKey)) != 1 {
		return models.LatestTemperature{}, ErrBadAPIKey
	}
	if !engine.MachineType(machineType).Valid() {
		return models.LatestTemperature{}, ErrBadMachineType
	}

	reading := models.LatestTemperature{
		MachineType: machineType,
		Temperature: temperature,
		UpdatedAt:   time.Now().UTC(),
	}
	if err := s.telemetryRepo.Upsert(ctx, reading); err != nil {
		return models.LatestTemperature{}, err
	}

	metrics.TelemetrySamples.WithLabelValues(machineType).Inc()
	return reading, nil
}

// Latest returns the most recent reading for one machine type, or
// (nil, nil) when no sensor has reported yet.
func (s *TelemetryService) Latest(ctx context.Context, machineType string) (*models.LatestTemperature, error) {
	if !engine.MachineType(machineType).Valid() {
		return nil, ErrBadMachineType
	}
	return s.telemetryRepo.GetLatest(ctx, machineType)
}

// Snapshot returns the latest reading of every reporting machine.
func (s *TelemetryService) Snapshot(ctx context.Context) ([]models.LatestTemperature, error) {
	return s.telemetryRepo.ListAll(ctx)
}
