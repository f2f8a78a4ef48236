package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"machine_health/internal/models"

	"github.com/google/uuid"
)

type PredictionSQLite struct {
	db *sql.DB
}

func NewPredictionSQLite(db *sql.DB) *PredictionSQLite { return &PredictionSQLite{db: db} }

var _ PredictionRepo = (*PredictionSQLite)(nil)

const insertPredictionSQL = `
		INSERT INTO predictions
			(id, machine_type, running_hours, feeding_rate, temp_c, vibration_um,
			 maintenance_date, predicted_at, risk_score, condition_level, explanation, alerts)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

// marshalAlerts converts the slice to a JSON string column.
func marshalAlerts(alerts []string) (string, error) {
	b, err := json.Marshal(alerts)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// unmarshalAlerts parses the JSON column back into a slice.
func unmarshalAlerts(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	var alerts []string
	if err := json.Unmarshal([]byte(s), &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

// Append inserts a new prediction record. If ID or PredictionDate are
// empty, they’re set.
func (r *PredictionSQLite) Append(ctx context.Context, p models.Prediction) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.PredictionDate.IsZero() {
		p.PredictionDate = time.Now().UTC()
	} else {
		p.PredictionDate = p.PredictionDate.UTC()
	}

	alertsJSON, err := marshalAlerts(p.Alerts)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, insertPredictionSQL,
		p.ID,
		p.MachineType,
		p.RunningHours,
		p.FeedingRate,
		p.Temperature,
		p.Vibration,
		p.MaintenanceDate,
		p.PredictionDate,
		p.RiskScore,
		p.ConditionLevel,
		p.Explanation,
		alertsJSON,
	)
	return err
}

// List returns predictions filtered by machine type and [From, To]
// (inclusive), newest first, with limit/offset paging.
func (r *PredictionSQLite) List(ctx context.Context, f PredictionFilter) ([]models.Prediction, error) {
	var (
		conds []string
		args  []any
	)

	if mt := strings.TrimSpace(f.MachineType); mt != "" {
		conds = append(conds, "machine_type = ?")
		args = append(args, mt)
	}
	if !f.From.IsZero() {
		conds = append(conds, "predicted_at >= ?")
		args = append(args, f.From.UTC())
	}
	if !f.To.IsZero() {
		conds = append(conds, "predicted_at <= ?")
		args = append(args, f.To.UTC())
	}

	q := `SELECT id, machine_type, running_hours, feeding_rate, temp_c, vibration_um,
			maintenance_date, predicted_at, risk_score, condition_level, explanation, alerts
		FROM predictions`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY predicted_at DESC"
	if f.Limit > 0 {
		q += " LIMIT ? OFFSET ?"
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Prediction, 0, 64)
	for rows.Next() {
		var p models.Prediction
		var alertsStr sql.NullString
		if err := rows.Scan(
			&p.ID,
			&p.MachineType,
			&p.RunningHours,
			&p.FeedingRate,
			&p.Temperature,
			&p.Vibration,
			&p.MaintenanceDate,
			&p.PredictionDate,
			&p.RiskScore,
			&p.ConditionLevel,
			&p.Explanation,
			&alertsStr,
		); err != nil {
			return nil, err
		}
		p.PredictionDate = p.PredictionDate.UTC()

		if alertsStr.Valid && alertsStr.String != "" {
			alerts, err := unmarshalAlerts(alertsStr.String)
			if err != nil {
				return nil, err
			}
			p.Alerts = alerts
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
