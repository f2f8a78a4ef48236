package service

import (
	"context"
	"errors"
	"time"

	"machine_health/internal/models"
	"machine_health/internal/repository"
)

// Domain errors for configuration management.
var (
	ErrConfigForbidden = errors.New("only managers can update configuration")
	ErrBadSensorMode   = errors.New("invalid sensor mode")
	ErrEmptyThresholds = errors.New("thresholds must not be empty")
)

type ConfigService struct {
	configRepo repository.ConfigRepo
}

func NewConfigService(configRepo repository.ConfigRepo) *ConfigService {
	return &ConfigService{configRepo: configRepo}
}

// Get returns the stored configuration, seeding the factory defaults on
// first use so every caller observes the same snapshot.
func (s *ConfigService) Get(ctx context.Context) (models.SensorConfig, error) {
	stored, err := s.configRepo.Load(ctx)
	if err != nil {
		return models.SensorConfig{}, err
	}
	if stored != nil {
		return *stored, nil
	}

	def := models.DefaultSensorConfig()
	if err := s.configRepo.Save(ctx, def); err != nil {
		return models.SensorConfig{}, err
	}
	return def, nil
}

// Update replaces the stored configuration. Only the Manager role may
// mutate it; the scoring engine itself never writes here.
func (s *ConfigService) Update(ctx context.Context, role string, cfg models.SensorConfig) error {
	if role != models.RoleManager {
		return ErrConfigForbidden
	}
	if !cfg.SensorMode.Valid() {
		return ErrBadSensorMode
	}
	if cfg.Thresholds.Vibration == nil || cfg.Thresholds.FeedRate == nil || cfg.Thresholds.RunningHours == nil {
		return ErrEmptyThresholds
	}

	cfg.UpdatedAt = time.Now().UTC()
	return s.configRepo.Save(ctx, cfg)
}
