package repository

import (
	"context"
	"database/sql"
	"time"

	"machine_health/internal/models"
	"machine_health/internal/repository/db"
)

type Authorization interface {
	Create(u models.User) (int, error)
	GetByEmail(email string) (*models.User, error)
	GetByID(id int) (*models.User, error)
}

// PredictionFilter narrows history listings. Zero times mean no bound;
// MachineType "" matches all machines.
type PredictionFilter struct {
	MachineType string
	From        time.Time
	To          time.Time
	Limit       int
	Offset      int
}

type PredictionRepo interface {
	Append(ctx context.Context, p models.Prediction) error
	List(ctx context.Context, f PredictionFilter) ([]models.Prediction, error)
}

type TelemetryRepo interface {
	Upsert(ctx context.Context, t models.LatestTemperature) error
	GetLatest(ctx context.Context, machineType string) (*models.LatestTemperature, error)
	ListAll(ctx context.Context) ([]models.LatestTemperature, error)
}

type ConfigRepo interface {
	Load(ctx context.Context) (*models.SensorConfig, error)
	Save(ctx context.Context, c models.SensorConfig) error
}

type Repository struct {
	Predictions PredictionRepo
	Telemetry   TelemetryRepo
	Config      ConfigRepo
	Auth        Authorization
}

func NewRepository(conn *sql.DB) *Repository {
	return &Repository{
		Predictions: NewPredictionSQLite(conn),
		Telemetry:   NewTelemetrySQLite(conn),
		Config:      NewConfigSQLite(conn),
		Auth:        NewUserRepository(conn),
	}
}

// InitDB opens the SQLite file and ensures the schema exists.
func InitDB(path string) (*sql.DB, error) {
	return db.InitDB(path)
}
