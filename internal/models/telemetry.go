package models

import "time"

// LatestTemperature is the most recent sensor reading for one machine
// type. One row per machine type; newer samples overwrite older ones.
type LatestTemperature struct {
	MachineType string    `json:"machine_type"`
	Temperature float64   `json:"temperature"` // °C
	UpdatedAt   time.Time `json:"updated_at"`
}
