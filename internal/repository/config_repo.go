package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"machine_health/internal/models"
)

type ConfigSQLite struct {
	db *sql.DB
}

func NewConfigSQLite(db *sql.DB) *ConfigSQLite { return &ConfigSQLite{db: db} }

var _ ConfigRepo = (*ConfigSQLite)(nil)

const (
	sensorConfigRowID = 1

	upsertConfigSQL = `
		INSERT INTO sensor_config (id, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			payload=excluded.payload,
			updated_at=excluded.updated_at
	`

	selectConfigSQL = `SELECT payload, updated_at FROM sensor_config WHERE id = ?`
)

// Load fetches the single configuration row. Returns (nil, nil) if no
// configuration has been saved yet.
func (r *ConfigSQLite) Load(ctx context.Context) (*models.SensorConfig, error) {
	row := r.db.QueryRowContext(ctx, selectConfigSQL, sensorConfigRowID)

	var (
		payload   string
		updatedAt time.Time
	)
	if err := row.Scan(&payload, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	var cfg models.SensorConfig
	if err := json.Unmarshal([]byte(payload), &cfg); err != nil {
		return nil, fmt.Errorf("decode sensor config payload: %w", err)
	}
	cfg.UpdatedAt = updatedAt.UTC()
	return &cfg, nil
}

// Save replaces the single configuration row (id always 1).
func (r *ConfigSQLite) Save(ctx context.Context, cfg models.SensorConfig) error {
	tsUTC := cfg.UpdatedAt
	if tsUTC.IsZero() {
		tsUTC = time.Now().UTC()
	} else {
		tsUTC = tsUTC.UTC()
	}
	cfg.UpdatedAt = time.Time{} // stored in its own column, not the payload

	payload, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode sensor config payload: %w", err)
	}

	_, err = r.db.ExecContext(ctx, upsertConfigSQL, sensorConfigRowID, string(payload), tsUTC)
	return err
}
