package engine

// MachineType identifies a supported machine class.
type MachineType string

const (
	MachineCNC      MachineType = "CNC"
	MachineEDM      MachineType = "EDM"
	MachineLathe    MachineType = "Lathe"
	MachineGrinding MachineType = "Grinding"
)

// MachineTypes lists every supported machine class in a fixed order.
var MachineTypes = []MachineType{MachineCNC, MachineEDM, MachineLathe, MachineGrinding}

// Valid reports whether m is one of the supported machine classes.
func (m MachineType) Valid() bool {
	for _, known := range MachineTypes {
		if m == known {
			return true
		}
	}
	return false
}

// SensorMode selects which temperature band set is active.
type SensorMode string

const (
	ModePrototypeLowTemp  SensorMode = "prototype_low_temp"
	ModeShopfloorHighTemp SensorMode = "shopfloor_high_temp"
)

// Valid reports whether the mode is a known preset.
func (m SensorMode) Valid() bool {
	return m == ModePrototypeLowTemp || m == ModeShopfloorHighTemp
}

// ConditionLevel is the final three-tier health classification.
type ConditionLevel string

const (
	ConditionGood     ConditionLevel = "Good"
	ConditionMedium   ConditionLevel = "Medium"
	ConditionCritical ConditionLevel = "Critical"
)

// zone is the boundary band a raw metric value falls into.
type zone int

const (
	zoneGreen zone = iota
	zoneYellow
	zoneRed
)

func (z zone) String() string {
	switch z {
	case zoneYellow:
		return "YELLOW"
	case zoneRed:
		return "RED"
	default:
		return "GREEN"
	}
}

// Bands holds the green/yellow boundaries for one metric, plus an optional
// red boundary. Metrics without a red boundary saturate via the overshoot
// rule instead.
type Bands struct {
	Green  float64  `json:"green"`
	Yellow float64  `json:"yellow"`
	Red    *float64 `json:"red,omitempty"`
}

// zeroBands reports whether b carries no boundary information at all,
// which is how a missing map-less config entry shows up.
func (b Bands) zero() bool {
	return b.Green == 0 && b.Yellow == 0 && b.Red == nil
}

// LowTempThresholds holds the machine-independent temperature bands used in
// prototype (low range) sensor mode.
type LowTempThresholds struct {
	Temperature Bands `json:"temperature"`
}

// Thresholds is the full boundary table: temperature bands per sensor mode,
// and per-machine vibration, feed-rate and running-hours bands.
type Thresholds struct {
	PrototypeLowTemp  LowTempThresholds     `json:"prototype_low_temp"`
	ShopfloorHighTemp map[MachineType]Bands `json:"shopfloor_high_temp"`
	Vibration         map[MachineType]Bands `json:"vibration"`
	FeedRate          map[MachineType]Bands `json:"feed_rate"`
	RunningHours      map[MachineType]Bands `json:"running_hours"`
}

// Config is the immutable threshold snapshot consumed by one evaluation.
type Config struct {
	SensorMode SensorMode `json:"sensor_mode"`
	Thresholds Thresholds `json:"thresholds"`
}

// MetricsReading is a fully resolved set of machine metrics. Temperature
// must already be resolved by the caller (sensor or manual); the engine
// never fetches it. MaintenanceDate is informational and is not scored.
type MetricsReading struct {
	MachineType     MachineType `json:"machine_type"`
	RunningHours    float64     `json:"running_hours"`
	FeedingRate     float64     `json:"feeding_rate"`
	Temperature     float64     `json:"temperature"`
	Vibration       float64     `json:"vibration"`
	MaintenanceDate string      `json:"maintenance_date,omitempty"`
}

// ThresholdsUsed is the boundary snapshot applied to one evaluation, kept
// on the result for auditability.
type ThresholdsUsed struct {
	SensorMode   SensorMode `json:"sensor_mode"`
	Temperature  Bands      `json:"temperature"`
	Vibration    Bands      `json:"vibration"`
	FeedRate     Bands      `json:"feed_rate"`
	RunningHours Bands      `json:"running_hours"`
}

// PredictionResult is the outcome of one evaluation. RiskScore is rounded
// to two decimals and clamped to [0, 100]. Results are immutable once
// returned and byte-reproducible for identical inputs.
type PredictionResult struct {
	RiskScore      float64        `json:"risk_score"`
	ConditionLevel ConditionLevel `json:"condition_level"`
	Explanation    string         `json:"explanation"`
	Alerts         []string       `json:"alerts"`
	ThresholdsUsed ThresholdsUsed `json:"thresholds_used"`
}
