package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"machine_health/internal/models"
)

type TelemetrySQLite struct {
	db *sql.DB
}

func NewTelemetrySQLite(db *sql.DB) *TelemetrySQLite {
	return &TelemetrySQLite{db: db}
}

var _ TelemetryRepo = (*TelemetrySQLite)(nil)

const (
	upsertTemperatureSQL = `
		INSERT INTO latest_temperature (machine_type, temp_c, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(machine_type) DO UPDATE SET
			temp_c=excluded.temp_c,
			updated_at=excluded.updated_at
	`

	selectTemperatureSQL = `
		SELECT machine_type, temp_c, updated_at
		FROM latest_temperature WHERE machine_type = ?
	`

	selectAllTemperaturesSQL = `
		SELECT machine_type, temp_c, updated_at
		FROM latest_temperature ORDER BY machine_type ASC
	`
)

// Upsert writes the latest reading for one machine type, replacing any
// previous one. UpdatedAt is persisted as UTC; set if zero.
func (r *TelemetrySQLite) Upsert(ctx context.Context, t models.LatestTemperature) error {
	tsUTC := t.UpdatedAt
	if tsUTC.IsZero() {
		tsUTC = time.Now().UTC()
	} else {
		tsUTC = tsUTC.UTC()
	}

	_, err := r.db.ExecContext(ctx, upsertTemperatureSQL,
		t.MachineType,
		t.Temperature,
		tsUTC,
	)
	return err
}

// GetLatest fetches the latest reading for one machine type. Returns
// (nil, nil) if no sensor has reported yet.
func (r *TelemetrySQLite) GetLatest(ctx context.Context, machineType string) (*models.LatestTemperature, error) {
	row := r.db.QueryRowContext(ctx, selectTemperatureSQL, machineType)

	var t models.LatestTemperature
	if err := row.Scan(&t.MachineType, &t.Temperature, &t.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	t.UpdatedAt = t.UpdatedAt.UTC()
	return &t, nil
}

// ListAll returns the latest reading of every machine type that has
// reported at least once.
func (r *TelemetrySQLite) ListAll(ctx context.Context) ([]models.LatestTemperature, error) {
	rows, err := r.db.QueryContext(ctx, selectAllTemperaturesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.LatestTemperature, 0, 4)
	for rows.Next() {
		var t models.LatestTemperature
		if err := rows.Scan(&t.MachineType, &t.Temperature, &t.UpdatedAt); err != nil {
			return nil, err
		}
		t.UpdatedAt = t.UpdatedAt.UTC()
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
