package service

import (
	"context"
	"time"

	"machine_health/internal/logger"
	"machine_health/internal/models"
	"machine_health/internal/repository"
)

type Authorization interface {
	SignUp(email, password, fullName, role string) (int, error)
	GenerateToken(email, password string) (string, error)
	ParseToken(accessToken string) (TokenClaims, error)
	CurrentUser(id int) (*models.User, error)
}

// Prediction runs the risk-scoring engine against a resolved reading and
// persists the outcome.
type Prediction interface {
	Predict(ctx context.Context, req PredictRequest) (*PredictOutcome, error)
}

// Telemetry accepts device temperature samples and serves the latest ones.
type Telemetry interface {
	Ingest(ctx context.Context, apiKey, machineType string, temperature float64) (models.LatestTemperature, error)
	Latest(ctx context.Context, machineType string) (*models.LatestTemperature, error)
	Snapshot(ctx context.Context) ([]models.LatestTemperature, error)
}

// Config serves the active threshold configuration and applies
// role-gated updates.
type Config interface {
	Get(ctx context.Context) (models.SensorConfig, error)
	Update(ctx context.Context, role string, cfg models.SensorConfig) error
}

// History exposes the persisted prediction log with filtering access.
type History interface {
	List(ctx context.Context, f HistoryFilter) ([]models.Prediction, error)
}

// Monitor runs the background loop that watches sensor freshness.
// Stop via context cancellation in main() for graceful shutdown.
type Monitor interface {
	Run(ctx context.Context, tick time.Duration)
}

// Options carries the secrets and tuning knobs read from configuration.
type Options struct {
	SigningKey   string
	TokenTTL     time.Duration
	IngestAPIKey string
	StaleAfter   time.Duration
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Prediction
	Telemetry
	Config
	History
	Monitor
	Authorization
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, log *logger.Logger, opts Options) *Service {
	configSvc := NewConfigService(repos.Config)
	telemetrySvc := NewTelemetryService(repos.Telemetry, opts.IngestAPIKey)
	return &Service{
		Prediction:    NewPredictionService(repos.Predictions, repos.Telemetry, configSvc),
		Telemetry:     telemetrySvc,
		Config:        configSvc,
		History:       NewHistoryService(repos.Predictions),
		Monitor:       NewStalenessMonitor(repos.Telemetry, log, opts.StaleAfter),
		Authorization: NewAuthService(repos.Auth, opts.SigningKey, opts.TokenTTL),
	}
}
