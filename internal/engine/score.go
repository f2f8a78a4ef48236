package engine

import "math"

// Metric aggregation weights. Temperature and vibration dominate; feed rate
// and running hours refine.
const (
	weightTemperature  = 0.35
	weightVibration    = 0.35
	weightFeedRate     = 0.15
	weightRunningHours = 0.15
)

// Weighted-score cutoffs applied after the zone override.
const (
	scoreCriticalAt = 70.0
	scoreMediumAt   = 35.0
)

// Subscore anchor points: a value at the green boundary scores exactly 30,
// at the yellow boundary exactly 70, at or beyond red exactly 100.
const (
	subscoreAtGreen  = 30.0
	subscoreAtYellow = 70.0
	subscoreMax      = 100.0
)

// Score evaluates one resolved metrics reading against one immutable
// threshold snapshot. It is a pure function: no state, no I/O, safe for
// concurrent use. Errors are either *ValidationError or *ConfigurationError.
func Score(reading MetricsReading, cfg Config) (PredictionResult, error) {
	if err := validateReading(reading); err != nil {
		return PredictionResult{}, err
	}

	bands, err := resolveBands(reading.MachineType, cfg)
	if err != nil {
		return PredictionResult{}, err
	}

	metrics := []scoredMetric{
		newScoredMetric(metricTemperature, reading.Temperature, bands.Temperature, weightTemperature),
		newScoredMetric(metricVibration, reading.Vibration, bands.Vibration, weightVibration),
		newScoredMetric(metricFeedRate, reading.FeedingRate, bands.FeedRate, weightFeedRate),
		newScoredMetric(metricRunningHours, reading.RunningHours, bands.RunningHours, weightRunningHours),
	}

	risk := 0.0
	for _, m := range metrics {
		risk += m.weight * m.subscore
	}
	risk = round2(clamp(risk, 0, subscoreMax))

	level := classify(metrics, risk)

	return PredictionResult{
		RiskScore:      risk,
		ConditionLevel: level,
		Explanation:    buildExplanation(level, risk, metrics),
		Alerts:         buildAlerts(level, metrics),
		ThresholdsUsed: bands,
	}, nil
}

// Subscore maps a raw metric value onto [0, 100] against its boundary
// triple. Continuous and non-decreasing in v; exactly 30 at the green
// boundary and 70 at yellow; saturates at 100 at or beyond red. Zero-width
// bands collapse onto the upper anchor instead of dividing by zero.
func Subscore(v float64, b Bands) float64 {
	switch {
	case v <= b.Green:
		// A green boundary collapsed at zero only matches non-positive
		// values here; anything positive exceeds it and takes the branches
		// below, so no division by zero is possible.
		if b.Green <= 0 {
			return 0
		}
		return clamp(v/b.Green*subscoreAtGreen, 0, subscoreAtGreen)
	case v <= b.Yellow:
		if b.Yellow-b.Green <= 0 {
			return subscoreAtYellow
		}
		return subscoreAtGreen + (v-b.Green)/(b.Yellow-b.Green)*(subscoreAtYellow-subscoreAtGreen)
	}
	return redZoneSubscore(v, b)
}

// redZoneSubscore handles v beyond the yellow boundary. With a red boundary
// the function interpolates from 70 at yellow to 100 at red; without one it
// scales the overshoot relative to yellow, capped at 100.
func redZoneSubscore(v float64, b Bands) float64 {
	if b.Red != nil {
		width := *b.Red - b.Yellow
		if width <= 0 {
			return subscoreMax
		}
		pos := math.Min(v-b.Yellow, width)
		return subscoreAtYellow + pos/width*(subscoreMax-subscoreAtYellow)
	}
	if b.Yellow <= 0 {
		return subscoreMax
	}
	overshoot := v - b.Yellow
	return math.Min(subscoreAtYellow+overshoot/b.Yellow*(subscoreMax-subscoreAtYellow), subscoreMax)
}

// zoneOf classifies a raw value. The yellow boundary is the red-zone
// cutoff; the red boundary only anchors subscore saturation.
func zoneOf(v float64, b Bands) zone {
	switch {
	case v <= b.Green:
		return zoneGreen
	case v <= b.Yellow:
		return zoneYellow
	}
	return zoneRed
}

// classify applies the zone override first, then the weighted-score
// cutoffs: a single red-zone metric forces Critical even when the weighted
// score is low.
func classify(metrics []scoredMetric, risk float64) ConditionLevel {
	anyRed, anyYellow := false, false
	for _, m := range metrics {
		switch m.zone {
		case zoneRed:
			anyRed = true
		case zoneYellow:
			anyYellow = true
		}
	}
	switch {
	case anyRed || risk >= scoreCriticalAt:
		return ConditionCritical
	case anyYellow || risk >= scoreMediumAt:
		return ConditionMedium
	}
	return ConditionGood
}

func validateReading(r MetricsReading) error {
	if !r.MachineType.Valid() {
		return &ValidationError{Field: "machine_type", Reason: "unknown machine type " + string(r.MachineType)}
	}
	for _, check := range []struct {
		field       string
		value       float64
		nonNegative bool
	}{
		{"temperature", r.Temperature, false},
		{"vibration", r.Vibration, true},
		{"feeding_rate", r.FeedingRate, true},
		{"running_hours", r.RunningHours, true},
	} {
		if math.IsNaN(check.value) || math.IsInf(check.value, 0) {
			return &ValidationError{Field: check.field, Reason: "value is not a finite number"}
		}
		if check.nonNegative && check.value < 0 {
			return &ValidationError{Field: check.field, Reason: "value must be non-negative"}
		}
	}
	return nil
}

// resolveBands selects the boundary triples for the reading's machine type
// under the active sensor mode.
func resolveBands(machine MachineType, cfg Config) (ThresholdsUsed, error) {
	var temp Bands
	switch cfg.SensorMode {
	case ModeShopfloorHighTemp:
		b, ok := cfg.Thresholds.ShopfloorHighTemp[machine]
		if !ok {
			return ThresholdsUsed{}, &ConfigurationError{Category: "temperature", Machine: machine}
		}
		temp = b
	default:
		// prototype mode applies one machine-independent temperature band
		temp = cfg.Thresholds.PrototypeLowTemp.Temperature
		if temp.zero() {
			return ThresholdsUsed{}, &ConfigurationError{Category: "temperature", Machine: machine}
		}
	}

	vib, ok := cfg.Thresholds.Vibration[machine]
	if !ok {
		return ThresholdsUsed{}, &ConfigurationError{Category: "vibration", Machine: machine}
	}
	feed, ok := cfg.Thresholds.FeedRate[machine]
	if !ok {
		return ThresholdsUsed{}, &ConfigurationError{Category: "feed_rate", Machine: machine}
	}
	hours, ok := cfg.Thresholds.RunningHours[machine]
	if !ok {
		return ThresholdsUsed{}, &ConfigurationError{Category: "running_hours", Machine: machine}
	}

	return ThresholdsUsed{
		SensorMode:   cfg.SensorMode,
		Temperature:  temp,
		Vibration:    vib,
		FeedRate:     feed,
		RunningHours: hours,
	}, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// round2 rounds to two decimals, the documented precision of RiskScore.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
