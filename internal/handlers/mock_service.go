package handlers

import (
	"context"
	"net/http"
	"time"

	"machine_health/internal/models"
	"machine_health/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseClaims   service.TokenClaims
	parseErr      error
	currentUser   *models.User
	currentErr    error

	lastSignUpEmail string
	lastSignUpRole  string
	lastGenEmail    string
	lastParseToken  string
}

func (m *mockAuth) SignUp(email, password, fullName, role string) (int, error) {
	m.lastSignUpEmail = email
	m.lastSignUpRole = role
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(email, password string) (string, error) {
	m.lastGenEmail = email
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (service.TokenClaims, error) {
	m.lastParseToken = token
	return m.parseClaims, m.parseErr
}
func (m *mockAuth) CurrentUser(id int) (*models.User, error) {
	return m.currentUser, m.currentErr
}

type mockPrediction struct {
	outcome *service.PredictOutcome
	err     error
	lastReq service.PredictRequest
	calls   int
}

func (m *mockPrediction) Predict(ctx context.Context, req service.PredictRequest) (*service.PredictOutcome, error) {
	m.calls++
	m.lastReq = req
	return m.outcome, m.err
}

type mockTelemetry struct {
	ingestResp models.LatestTemperature
	ingestErr  error
	latestResp *models.LatestTemperature
	latestErr  error
	snapshot   []models.LatestTemperature
	snapErr    error

	lastAPIKey      string
	lastMachineType string
	lastTemperature float64
}

func (m *mockTelemetry) Ingest(ctx context.Context, apiKey, machineType string, temperature float64) (models.LatestTemperature, error) {
	m.lastAPIKey = apiKey
	m.lastMachineType = machineType
	m.lastTemperature = temperature
	return m.ingestResp, m.ingestErr
}
func (m *mockTelemetry) Latest(ctx context.Context, machineType string) (*models.LatestTemperature, error) {
	m.lastMachineType = machineType
	return m.latestResp, m.latestErr
}
func (m *mockTelemetry) Snapshot(ctx context.Context) ([]models.LatestTemperature, error) {
	return m.snapshot, m.snapErr
}

type mockConfig struct {
	cfg       models.SensorConfig
	getErr    error
	updateErr error

	lastRole string
	lastCfg  models.SensorConfig
}

func (m *mockConfig) Get(ctx context.Context) (models.SensorConfig, error) {
	return m.cfg, m.getErr
}
func (m *mockConfig) Update(ctx context.Context, role string, cfg models.SensorConfig) error {
	m.lastRole = role
	m.lastCfg = cfg
	return m.updateErr
}

type mockHistory struct {
	resp       []models.Prediction
	err        error
	lastFilter service.HistoryFilter
}

func (m *mockHistory) List(ctx context.Context, f service.HistoryFilter) ([]models.Prediction, error) {
	m.lastFilter = f
	return m.resp, m.err
}

type mockMonitor struct{}

func (m *mockMonitor) Run(ctx context.Context, tick time.Duration) {}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
