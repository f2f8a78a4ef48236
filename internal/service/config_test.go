package service

import (
	"context"
	"errors"
	"testing"

	"machine_health/internal/engine"
	"machine_health/internal/models"
)

// configRepoStub satisfies repository.ConfigRepo.
type configRepoStub struct {
	stored  *models.SensorConfig
	loadErr error
	saveErr error
	saved   []models.SensorConfig
}

func (s *configRepoStub) Load(ctx context.Context) (*models.SensorConfig, error) {
	return s.stored, s.loadErr
}

func (s *configRepoStub) Save(ctx context.Context, c models.SensorConfig) error {
	s.saved = append(s.saved, c)
	return s.saveErr
}

func TestConfigService_Get_SeedsDefaultsOnFirstUse(t *testing.T) {
	repo := &configRepoStub{}
	svc := NewConfigService(repo)

	got, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.SensorMode != engine.ModePrototypeLowTemp {
		t.Fatalf("expected factory sensor mode, got %v", got.SensorMode)
	}
	if len(repo.saved) != 1 {
		t.Fatalf("expected defaults to be persisted once, got %d saves", len(repo.saved))
	}
	if b := got.Thresholds.RunningHours[engine.MachineCNC]; b.Green != 10000 || b.Yellow != 12000 {
		t.Fatalf("unexpected default CNC running-hours bands: %+v", b)
	}
}

func TestConfigService_Get_ReturnsStoredSnapshot(t *testing.T) {
	stored := models.DefaultSensorConfig()
	stored.SensorMode = engine.ModeShopfloorHighTemp
	repo := &configRepoStub{stored: &stored}
	svc := NewConfigService(repo)

	got, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.SensorMode != engine.ModeShopfloorHighTemp {
		t.Fatalf("expected stored sensor mode, got %v", got.SensorMode)
	}
	if len(repo.saved) != 0 {
		t.Fatalf("stored config must not be re-saved, got %d saves", len(repo.saved))
	}
}

func TestConfigService_Update_RequiresManagerRole(t *testing.T) {
	repo := &configRepoStub{}
	svc := NewConfigService(repo)

	for _, role := range []string{models.RoleOperator, models.RoleEngineer, "Admin", ""} {
		err := svc.Update(context.Background(), role, models.DefaultSensorConfig())
		if !errors.Is(err, ErrConfigForbidden) {
			t.Fatalf("role %q: expected ErrConfigForbidden, got %v", role, err)
		}
	}
	if len(repo.saved) != 0 {
		t.Fatalf("forbidden updates must not persist, got %d saves", len(repo.saved))
	}
}

func TestConfigService_Update_ValidatesPayload(t *testing.T) {
	repo := &configRepoStub{}
	svc := NewConfigService(repo)

	badMode := models.DefaultSensorConfig()
	badMode.SensorMode = "turbo"
	if err := svc.Update(context.Background(), models.RoleManager, badMode); !errors.Is(err, ErrBadSensorMode) {
		t.Fatalf("expected ErrBadSensorMode, got %v", err)
	}

	empty := models.SensorConfig{SensorMode: engine.ModePrototypeLowTemp}
	if err := svc.Update(context.Background(), models.RoleManager, empty); !errors.Is(err, ErrEmptyThresholds) {
		t.Fatalf("expected ErrEmptyThresholds, got %v", err)
	}
}

func TestConfigService_Update_ManagerPersistsWithTimestamp(t *testing.T) {
	repo := &configRepoStub{}
	svc := NewConfigService(repo)

	cfg := models.DefaultSensorConfig()
	cfg.SensorMode = engine.ModeShopfloorHighTemp
	if err := svc.Update(context.Background(), models.RoleManager, cfg); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if len(repo.saved) != 1 {
		t.Fatalf("expected 1 save, got %d", len(repo.saved))
	}
	saved := repo.saved[0]
	if saved.SensorMode != engine.ModeShopfloorHighTemp {
		t.Fatalf("saved mode = %v", saved.SensorMode)
	}
	if saved.UpdatedAt.IsZero() {
		t.Fatal("expected UpdatedAt to be stamped")
	}
}
