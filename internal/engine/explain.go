package engine

import (
	"fmt"
	"strings"
)

// metricName identifies one scored metric in the fixed reporting order:
// temperature, vibration, feed rate, running hours. Alert and explanation
// output always follows this order so identical inputs yield identical text.
type metricName int

const (
	metricTemperature metricName = iota
	metricVibration
	metricFeedRate
	metricRunningHours
)

func (m metricName) label() string {
	switch m {
	case metricVibration:
		return "Vibration"
	case metricFeedRate:
		return "Feed rate"
	case metricRunningHours:
		return "Running hours"
	default:
		return "Temperature"
	}
}

func (m metricName) unit() string {
	switch m {
	case metricVibration:
		return " µm"
	case metricFeedRate:
		return " mm/min"
	case metricRunningHours:
		return " h"
	default:
		return "°C"
	}
}

// scoredMetric bundles one metric's value, boundaries, derived subscore and
// zone for aggregation and text generation.
type scoredMetric struct {
	name     metricName
	value    float64
	bands    Bands
	weight   float64
	subscore float64
	zone     zone
}

func newScoredMetric(name metricName, value float64, bands Bands, weight float64) scoredMetric {
	return scoredMetric{
		name:     name,
		value:    value,
		bands:    bands,
		weight:   weight,
		subscore: Subscore(value, bands),
		zone:     zoneOf(value, bands),
	}
}

// Per-metric alert lines, one per non-green zone.
var alertText = map[metricName]map[zone]string{
	metricTemperature: {
		zoneYellow: "Temperature approaching limits",
		zoneRed:    "CRITICAL: Temperature exceeds safe limits",
	},
	metricVibration: {
		zoneYellow: "Vibration caution",
		zoneRed:    "Vibration exceeds normal range",
	},
	metricFeedRate: {
		zoneYellow: "Feed rate elevated",
		zoneRed:    "Feed rate too high",
	},
	metricRunningHours: {
		zoneYellow: "Service window approaching",
		zoneRed:    "Service window exceeded",
	},
}

// Fallback alert lines when no per-metric alert fired.
const (
	alertAllClear       = "All metrics within safe bands"
	alertRepairNow      = "Immediate repair recommended"
	alertSchedulesCheck = "Schedule inspection"
)

// buildAlerts emits one alert per metric outside the green zone, in fixed
// metric order. A level-appropriate fallback line is used when every metric
// is green.
func buildAlerts(level ConditionLevel, metrics []scoredMetric) []string {
	alerts := make([]string, 0, len(metrics))
	for _, m := range metrics {
		if m.zone == zoneGreen {
			continue
		}
		alerts = append(alerts, alertText[m.name][m.zone])
	}
	if len(alerts) > 0 {
		return alerts
	}
	switch level {
	case ConditionCritical:
		return []string{alertRepairNow}
	case ConditionMedium:
		return []string{alertSchedulesCheck}
	}
	return []string{alertAllClear}
}

// buildExplanation renders the overall condition followed by one zone
// sentence per metric, joined with ". " and terminated with ".". The output
// is byte-identical for identical inputs.
func buildExplanation(level ConditionLevel, risk float64, metrics []scoredMetric) string {
	parts := make([]string, 0, len(metrics)+1)
	parts = append(parts, fmt.Sprintf("Overall condition %s with risk score %.2f", level, risk))
	for _, m := range metrics {
		parts = append(parts, zoneSentence(m))
	}
	return strings.Join(parts, ". ") + "."
}

func zoneSentence(m scoredMetric) string {
	switch m.zone {
	case zoneRed:
		return fmt.Sprintf("%s %g%s is in RED zone (>%g%s)", m.name.label(), m.value, m.name.unit(), m.bands.Yellow, m.name.unit())
	case zoneYellow:
		return fmt.Sprintf("%s %g%s is in YELLOW zone (>%g%s)", m.name.label(), m.value, m.name.unit(), m.bands.Green, m.name.unit())
	}
	return fmt.Sprintf("%s %g%s is in GREEN zone (<=%g%s)", m.name.label(), m.value, m.name.unit(), m.bands.Green, m.name.unit())
}
