package models

import "time"

// Prediction is a persisted machine-health evaluation: the originating
// reading plus the scored result, stamped with the evaluation time.
type Prediction struct {
	ID              string    `json:"id"`
	MachineType     string    `json:"machine_type"` // CNC | EDM | Lathe | Grinding
	RunningHours    float64   `json:"running_hours"`
	FeedingRate     float64   `json:"feeding_rate"`    // mm/min
	Temperature     float64   `json:"temperature"`     // °C
	Vibration       float64   `json:"vibration"`       // µm
	MaintenanceDate string    `json:"maintenance_date"` // informational, not scored
	PredictionDate  time.Time `json:"prediction_date"`
	RiskScore       float64   `json:"risk_score"`
	ConditionLevel  string    `json:"condition_level"` // Good | Medium | Critical
	Explanation     string    `json:"explanation"`
	Alerts          []string  `json:"alerts"`
}
