package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"machine_health/internal/engine"
	"machine_health/internal/models"
	"machine_health/internal/service"
)

func withTestAuth(t *testing.T, s *service.Service) *service.Service {
	t.Helper()
	if s.Authorization == nil {
		s.Authorization = &mockAuth{parseClaims: service.TokenClaims{UserID: 1, Role: models.RoleOperator}}
	}
	return s
}

func TestPredictHandler_Success(t *testing.T) {
	pred := &mockPrediction{outcome: &service.PredictOutcome{
		Record: models.Prediction{
			ID:             "p-1",
			MachineType:    "CNC",
			RiskScore:      42.97,
			ConditionLevel: "Medium",
			Explanation:    "Overall condition Medium with risk score 42.97",
			Alerts:         []string{"Temperature approaching limits"},
		},
	}}
	s := withTestAuth(t, &service.Service{Prediction: pred})
	r := newTestRouter(s)

	body := bytes.NewBufferString(`{"machine_type":"CNC","running_hours":1500,"feeding_rate":120,"temperature":75,"vibration":3.2}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/predict", body)
	req.Header = authHeader("tok")
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Prediction models.Prediction `json:"prediction"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Prediction.ID != "p-1" || resp.Prediction.ConditionLevel != "Medium" {
		t.Fatalf("unexpected prediction: %+v", resp.Prediction)
	}
	if pred.calls != 1 {
		t.Fatalf("expected one Predict call, got %d", pred.calls)
	}
	if pred.lastReq.Temperature == nil || *pred.lastReq.Temperature != 75 {
		t.Fatalf("temperature not forwarded: %+v", pred.lastReq.Temperature)
	}
}

func TestPredictHandler_OmittedTemperatureStaysNil(t *testing.T) {
	pred := &mockPrediction{outcome: &service.PredictOutcome{}}
	s := withTestAuth(t, &service.Service{Prediction: pred})
	r := newTestRouter(s)

	body := bytes.NewBufferString(`{"machine_type":"EDM","running_hours":10,"feeding_rate":5,"vibration":1}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/predict", body)
	req.Header = authHeader("tok")
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	if pred.lastReq.Temperature != nil {
		t.Fatalf("expected nil temperature, got %v", *pred.lastReq.Temperature)
	}
}

func TestPredictHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"validation error", &engine.ValidationError{Field: "machine_type", Reason: "unknown machine type"}, http.StatusBadRequest},
		{"no temperature data", service.ErrNoTemperatureData, http.StatusBadRequest},
		{"configuration error", &engine.ConfigurationError{Category: "vibration", Machine: "Lathe"}, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pred := &mockPrediction{err: tc.err}
			s := withTestAuth(t, &service.Service{Prediction: pred})
			r := newTestRouter(s)

			body := bytes.NewBufferString(`{"machine_type":"CNC","vibration":1}`)
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/predict", body)
			req.Header = authHeader("tok")
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			if w.Code != tc.wantCode {
				t.Fatalf("status: got %d, want %d (body=%s)", w.Code, tc.wantCode, w.Body.String())
			}
		})
	}
}

func TestPredictHandler_RequiresAuth(t *testing.T) {
	s := withTestAuth(t, &service.Service{Prediction: &mockPrediction{}})
	r := newTestRouter(s)

	body := bytes.NewBufferString(`{"machine_type":"CNC"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/predict", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
}
