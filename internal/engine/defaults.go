package engine

// redAt builds an optional red boundary value.
func redAt(v float64) *float64 { return &v }

// DefaultConfig returns the factory threshold table seeded at first start.
// Temperature carries a red boundary; vibration, feed rate and running
// hours saturate via the overshoot rule instead.
func DefaultConfig() Config {
	return Config{
		SensorMode: ModePrototypeLowTemp,
		Thresholds: Thresholds{
			PrototypeLowTemp: LowTempThresholds{
				Temperature: Bands{Green: 40, Yellow: 45, Red: redAt(120)},
			},
			ShopfloorHighTemp: map[MachineType]Bands{
				MachineCNC:      {Green: 75, Yellow: 95, Red: redAt(120)},
				MachineEDM:      {Green: 70, Yellow: 90, Red: redAt(120)},
				MachineLathe:    {Green: 70, Yellow: 90, Red: redAt(120)},
				MachineGrinding: {Green: 65, Yellow: 85, Red: redAt(120)},
			},
			Vibration: map[MachineType]Bands{
				MachineCNC:      {Green: 70, Yellow: 100},
				MachineEDM:      {Green: 60, Yellow: 90},
				MachineLathe:    {Green: 70, Yellow: 100},
				MachineGrinding: {Green: 50, Yellow: 80},
			},
			FeedRate: map[MachineType]Bands{
				MachineCNC:      {Green: 1500, Yellow: 2000},
				MachineEDM:      {Green: 500, Yellow: 700},
				MachineLathe:    {Green: 900, Yellow: 1200},
				MachineGrinding: {Green: 400, Yellow: 600},
			},
			RunningHours: map[MachineType]Bands{
				MachineCNC:      {Green: 10000, Yellow: 12000},
				MachineEDM:      {Green: 9000, Yellow: 11000},
				MachineLathe:    {Green: 11000, Yellow: 13000},
				MachineGrinding: {Green: 8000, Yellow: 10000},
			},
		},
	}
}
