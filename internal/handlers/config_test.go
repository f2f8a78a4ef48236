package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"machine_health/internal/engine"
	"machine_health/internal/models"
	"machine_health/internal/service"
)

func TestConfigHandler_Get(t *testing.T) {
	cfg := models.DefaultSensorConfig()
	cfg.UpdatedAt = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	conf := &mockConfig{cfg: cfg}
	s := withTestAuth(t, &service.Service{Config: conf})
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/config", nil)
	req.Header = authHeader("tok")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	var out models.SensorConfig
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.SensorMode != engine.ModePrototypeLowTemp {
		t.Fatalf("unexpected sensor mode: %q", out.SensorMode)
	}
	if !out.UpdatedAt.Equal(cfg.UpdatedAt) {
		t.Fatalf("updated_at: got %v, want %v", out.UpdatedAt, cfg.UpdatedAt)
	}
}

func TestConfigHandler_UpdateForwardsRole(t *testing.T) {
	conf := &mockConfig{cfg: models.DefaultSensorConfig()}
	auth := &mockAuth{parseClaims: service.TokenClaims{UserID: 1, Role: models.RoleManager}}
	s := &service.Service{Config: conf, Authorization: auth}
	r := newTestRouter(s)

	body := bytes.NewBufferString(`{"sensor_mode":"shopfloor_high_temp","thresholds":{"shopfloor_high_temp":{"CNC":{"green":60,"yellow":90,"red":130}},"vibration":{"CNC":{"green":3,"yellow":7}},"feed_rate":{"CNC":{"green":100,"yellow":160}},"running_hours":{"CNC":{"green":1000,"yellow":2000}}}}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/config", body)
	req.Header = authHeader("tok")
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	if conf.lastRole != models.RoleManager {
		t.Fatalf("role: got %q, want %q", conf.lastRole, models.RoleManager)
	}
	if conf.lastCfg.SensorMode != engine.ModeShopfloorHighTemp {
		t.Fatalf("sensor mode: got %q", conf.lastCfg.SensorMode)
	}
	if _, ok := conf.lastCfg.Thresholds.ShopfloorHighTemp["CNC"]; !ok {
		t.Fatalf("thresholds not forwarded: %+v", conf.lastCfg.Thresholds)
	}
}

func TestConfigHandler_UpdateErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"forbidden for non-managers", service.ErrConfigForbidden, http.StatusForbidden},
		{"bad sensor mode", service.ErrBadSensorMode, http.StatusBadRequest},
		{"empty thresholds", service.ErrEmptyThresholds, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			conf := &mockConfig{updateErr: tc.err}
			s := withTestAuth(t, &service.Service{Config: conf})
			r := newTestRouter(s)

			body := bytes.NewBufferString(`{"sensor_mode":"prototype_low_temp","thresholds":{}}`)
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPut, "/api/v1/config", body)
			req.Header = authHeader("tok")
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			if w.Code != tc.wantCode {
				t.Fatalf("status: got %d, want %d (body=%s)", w.Code, tc.wantCode, w.Body.String())
			}
		})
	}
}
