package models

import (
	"time"

	"machine_health/internal/engine"
)

// SensorConfig is the persisted threshold configuration: the active sensor
// mode plus the full per-machine boundary table. The scoring engine only
// ever sees an immutable snapshot of it.
type SensorConfig struct {
	SensorMode engine.SensorMode `json:"sensor_mode"`
	Thresholds engine.Thresholds `json:"thresholds"`
	UpdatedAt  time.Time         `json:"updated_at,omitempty"`
}

// EngineConfig converts the stored record into the snapshot shape the
// engine consumes.
func (c SensorConfig) EngineConfig() engine.Config {
	return engine.Config{SensorMode: c.SensorMode, Thresholds: c.Thresholds}
}

// DefaultSensorConfig returns the factory configuration seeded on first use.
func DefaultSensorConfig() SensorConfig {
	def := engine.DefaultConfig()
	return SensorConfig{SensorMode: def.SensorMode, Thresholds: def.Thresholds}
}
