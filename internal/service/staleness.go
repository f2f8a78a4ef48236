package service

import (
	"context"
	"time"

	"machine_health/internal/logger"
	"machine_health/internal/metrics"
	"machine_health/internal/repository"
)

const defaultStaleAfter = 10 * time.Minute

// StalenessMonitor periodically checks how old each machine's latest
// temperature sample is. Predictions fall back to these samples, so a
// silent sensor quietly degrades scoring input quality; this loop makes
// that visible in logs and metrics.
type StalenessMonitor struct {
	telemetryRepo repository.TelemetryRepo
	log           *logger.Logger
	staleAfter    time.Duration
}

func NewStalenessMonitor(telemetryRepo repository.TelemetryRepo, log *logger.Logger, staleAfter time.Duration) *StalenessMonitor {
	if staleAfter <= 0 {
		staleAfter = defaultStaleAfter
	}
	return &StalenessMonitor{
		telemetryRepo: telemetryRepo,
		log:           log,
		staleAfter:    staleAfter,
	}
}

// Run ticks at the given interval until ctx is canceled.
func (s *StalenessMonitor) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			s.sweep(ctx, now.UTC())
		}
	}
}

// sweep counts machines with outdated samples and reports them.
func (s *StalenessMonitor) sweep(ctx context.Context, now time.Time) {
	readings, err := s.telemetryRepo.ListAll(ctx)
	if err != nil {
		if s.log != nil {
			s.log.Errorw("telemetry_staleness_sweep_failed", "err", err)
		}
		return
	}

	stale := 0
	for _, r := range readings {
		age := now.Sub(r.UpdatedAt)
		if age <= s.staleAfter {
			continue
		}
		stale++
		if s.log != nil {
			s.log.Warnw("telemetry_stale_sensor",
				"machine_type", r.MachineType,
				"age", age.Round(time.Second).String(),
				"max_age", s.staleAfter.String(),
			)
		}
	}
	metrics.StaleSensors.Set(float64(stale))
}
