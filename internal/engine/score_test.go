package engine_test

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"machine_health/internal/engine"
)

func bandsWithRed(green, yellow, red float64) engine.Bands {
	return engine.Bands{Green: green, Yellow: yellow, Red: &red}
}

// cncTestConfig mirrors the reference scenario thresholds: every metric
// carries an explicit red boundary.
func cncTestConfig() engine.Config {
	return engine.Config{
		SensorMode: engine.ModeShopfloorHighTemp,
		Thresholds: engine.Thresholds{
			ShopfloorHighTemp: map[engine.MachineType]engine.Bands{
				engine.MachineCNC: bandsWithRed(40, 45, 60),
			},
			Vibration: map[engine.MachineType]engine.Bands{
				engine.MachineCNC: bandsWithRed(50, 80, 120),
			},
			FeedRate: map[engine.MachineType]engine.Bands{
				engine.MachineCNC: bandsWithRed(1000, 1500, 2000),
			},
			RunningHours: map[engine.MachineType]engine.Bands{
				engine.MachineCNC: bandsWithRed(8000, 12000, 16000),
			},
		},
	}
}

func TestSubscore_AnchorPoints(t *testing.T) {
	b := bandsWithRed(40, 45, 60)

	cases := []struct {
		name string
		v    float64
		want float64
	}{
		{"zero scores zero", 0, 0},
		{"green anchor", 40, 30},
		{"yellow anchor", 45, 70},
		{"red saturates", 60, 100},
		{"beyond red stays saturated", 500, 100},
		{"below green interpolates", 20, 15},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := engine.Subscore(tc.v, b); math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("Subscore(%v) = %v, want %v", tc.v, got, tc.want)
			}
		})
	}
}

func TestSubscore_MonotonicNonDecreasing(t *testing.T) {
	bandSets := []engine.Bands{
		bandsWithRed(40, 45, 60),
		{Green: 50, Yellow: 80}, // no red: overshoot rule
		bandsWithRed(10, 10, 10),
		{Green: 0, Yellow: 100},
	}
	for _, b := range bandSets {
		prev := math.Inf(-1)
		for v := 0.0; v <= 200; v += 0.5 {
			got := engine.Subscore(v, b)
			if got < prev-1e-9 {
				t.Fatalf("Subscore not monotonic at v=%v for bands %+v: %v < %v", v, b, got, prev)
			}
			if got < 0 || got > 100 {
				t.Fatalf("Subscore(%v) = %v out of [0,100] for bands %+v", v, got, b)
			}
			prev = got
		}
	}
}

func TestSubscore_NoRedBoundaryOvershoot(t *testing.T) {
	b := engine.Bands{Green: 50, Yellow: 80}

	// overshoot scales relative to yellow: 70 + (v-80)/80*30
	if got, want := engine.Subscore(88, b), 73.0; math.Abs(got-want) > 1e-9 {
		t.Fatalf("Subscore(88) = %v, want %v", got, want)
	}
	if got := engine.Subscore(1000, b); got != 100 {
		t.Fatalf("Subscore(1000) = %v, want saturation at 100", got)
	}
}

func TestSubscore_DegenerateBands(t *testing.T) {
	collapsed := bandsWithRed(10, 10, 10)
	if got := engine.Subscore(5, collapsed); got != 15 {
		t.Fatalf("below collapsed boundary: got %v, want 15", got)
	}
	if got := engine.Subscore(10, collapsed); got != 30 {
		t.Fatalf("at collapsed boundary: got %v, want 30", got)
	}
	if got := engine.Subscore(10.5, collapsed); got != 100 {
		t.Fatalf("beyond collapsed boundary: got %v, want immediate saturation at 100", got)
	}

	zeroGreen := engine.Bands{Green: 0, Yellow: 100}
	if got := engine.Subscore(0, zeroGreen); got != 0 {
		t.Fatalf("Subscore(0) with green=0: got %v, want 0", got)
	}
	if got := engine.Subscore(50, zeroGreen); got != 50 {
		t.Fatalf("Subscore(50) with green=0: got %v, want interpolated 50", got)
	}
}

func TestScore_ReferenceScenario(t *testing.T) {
	reading := engine.MetricsReading{
		MachineType:  engine.MachineCNC,
		Temperature:  42,
		Vibration:    60,
		FeedingRate:  1100,
		RunningHours: 9000,
	}

	res, err := engine.Score(reading, cncTestConfig())
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}

	// 0.35*46 + 0.35*43.333 + 0.15*38 + 0.15*40 = 42.9666 -> 42.97
	if res.RiskScore != 42.97 {
		t.Fatalf("RiskScore = %v, want 42.97", res.RiskScore)
	}
	if res.ConditionLevel != engine.ConditionMedium {
		t.Fatalf("ConditionLevel = %v, want Medium", res.ConditionLevel)
	}
	if res.ThresholdsUsed.SensorMode != engine.ModeShopfloorHighTemp {
		t.Fatalf("ThresholdsUsed.SensorMode = %v", res.ThresholdsUsed.SensorMode)
	}
}

func TestScore_RedZoneForcesCritical(t *testing.T) {
	// Everything green except temperature beyond yellow: the weighted score
	// stays low but the zone override still forces Critical.
	reading := engine.MetricsReading{
		MachineType:  engine.MachineCNC,
		Temperature:  65,
		Vibration:    40,
		FeedingRate:  900,
		RunningHours: 5000,
	}

	res, err := engine.Score(reading, cncTestConfig())
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if res.ConditionLevel != engine.ConditionCritical {
		t.Fatalf("ConditionLevel = %v, want Critical (red zone override)", res.ConditionLevel)
	}
	if res.RiskScore >= 70 {
		t.Fatalf("expected override case with low weighted score, got %v", res.RiskScore)
	}
}

func TestScore_ValueAtGreenBoundaryIsGreen(t *testing.T) {
	reading := engine.MetricsReading{
		MachineType:  engine.MachineCNC,
		Temperature:  30,
		Vibration:    50, // exactly the green boundary
		FeedingRate:  500,
		RunningHours: 4000,
	}

	res, err := engine.Score(reading, cncTestConfig())
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if res.ConditionLevel != engine.ConditionGood {
		t.Fatalf("ConditionLevel = %v, want Good", res.ConditionLevel)
	}
	for _, a := range res.Alerts {
		if a != "All metrics within safe bands" {
			t.Fatalf("unexpected alert for all-green reading: %q", a)
		}
	}
}

func TestScore_GoodWhenAllGreenAndLowScore(t *testing.T) {
	reading := engine.MetricsReading{
		MachineType:  engine.MachineCNC,
		Temperature:  10,
		Vibration:    10,
		FeedingRate:  100,
		RunningHours: 1000,
	}
	res, err := engine.Score(reading, cncTestConfig())
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if res.RiskScore >= 35 {
		t.Fatalf("expected low risk score, got %v", res.RiskScore)
	}
	if res.ConditionLevel != engine.ConditionGood {
		t.Fatalf("ConditionLevel = %v, want Good", res.ConditionLevel)
	}
}

func TestScore_UnknownMachineType(t *testing.T) {
	reading := engine.MetricsReading{MachineType: "Press", Temperature: 20}

	_, err := engine.Score(reading, cncTestConfig())
	var verr *engine.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Score() error = %v, want *ValidationError", err)
	}
	if verr.Field != "machine_type" {
		t.Fatalf("ValidationError field = %q, want machine_type", verr.Field)
	}
}

func TestScore_NonFiniteAndNegativeMetrics(t *testing.T) {
	base := engine.MetricsReading{
		MachineType:  engine.MachineCNC,
		Temperature:  20,
		Vibration:    10,
		FeedingRate:  100,
		RunningHours: 100,
	}

	nan := base
	nan.Temperature = math.NaN()
	if _, err := engine.Score(nan, cncTestConfig()); err == nil {
		t.Fatal("expected error for NaN temperature")
	}

	inf := base
	inf.Vibration = math.Inf(1)
	if _, err := engine.Score(inf, cncTestConfig()); err == nil {
		t.Fatal("expected error for infinite vibration")
	}

	neg := base
	neg.FeedingRate = -1
	var verr *engine.ValidationError
	if _, err := engine.Score(neg, cncTestConfig()); !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError for negative feed rate, got %v", err)
	}
}

func TestScore_MissingThresholdEntry(t *testing.T) {
	cfg := engine.DefaultConfig()
	delete(cfg.Thresholds.Vibration, engine.MachineLathe)

	reading := engine.MetricsReading{
		MachineType:  engine.MachineLathe,
		Temperature:  20,
		Vibration:    10,
		FeedingRate:  100,
		RunningHours: 100,
	}

	_, err := engine.Score(reading, cfg)
	var cerr *engine.ConfigurationError
	if !errors.As(err, &cerr) {
		t.Fatalf("Score() error = %v, want *ConfigurationError", err)
	}
	if cerr.Category != "vibration" || cerr.Machine != engine.MachineLathe {
		t.Fatalf("ConfigurationError = %+v", cerr)
	}
}

func TestScore_DefaultConfigCoversAllMachines(t *testing.T) {
	for _, machine := range engine.MachineTypes {
		reading := engine.MetricsReading{
			MachineType:  machine,
			Temperature:  30,
			Vibration:    20,
			FeedingRate:  200,
			RunningHours: 2000,
		}
		if _, err := engine.Score(reading, engine.DefaultConfig()); err != nil {
			t.Fatalf("Score() with defaults failed for %s: %v", machine, err)
		}
	}
}

func TestScore_Deterministic(t *testing.T) {
	reading := engine.MetricsReading{
		MachineType:  engine.MachineGrinding,
		Temperature:  43.5,
		Vibration:    61,
		FeedingRate:  450,
		RunningHours: 9100,
	}
	cfg := engine.DefaultConfig()

	first, err := engine.Score(reading, cfg)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	second, err := engine.Score(reading, cfg)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("results differ:\n%+v\n%+v", first, second)
	}
	if first.Explanation != second.Explanation {
		t.Fatalf("explanations differ: %q vs %q", first.Explanation, second.Explanation)
	}
}

func TestScore_RiskScoreStaysInRange(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.SensorMode = engine.ModeShopfloorHighTemp
	for _, v := range []float64{0, 1, 50, 99.9, 1000, 1e9} {
		reading := engine.MetricsReading{
			MachineType:  engine.MachineEDM,
			Temperature:  v,
			Vibration:    v,
			FeedingRate:  v,
			RunningHours: v,
		}
		res, err := engine.Score(reading, cfg)
		if err != nil {
			t.Fatalf("Score() error = %v at v=%v", err, v)
		}
		if res.RiskScore < 0 || res.RiskScore > 100 {
			t.Fatalf("RiskScore %v out of [0,100] at v=%v", res.RiskScore, v)
		}
	}
}
