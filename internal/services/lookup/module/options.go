package module

import (
	"time"

	"lotlens/internal/platform/config"
	"lotlens/internal/services/lookup/service"
)

// Options holds configuration settings for the lookup module
type Options struct {
	Deadline       time.Duration
	TickEvery      time.Duration
	ResolveHold    time.Duration
	ProgressFactor float64
	ProgressCap    float64
	EventBuffer    int
}

// FromConfig extracts Options from the given config.Conf
func FromConfig(cfg config.Conf) Options {
	lf := cfg.Prefix("LOOKUP_")
	return Options{
		Deadline:       lf.MayDuration("DEADLINE", 50*time.Second),
		TickEvery:      lf.MayDuration("TICK_EVERY", 300*time.Millisecond),
		ResolveHold:    lf.MayDuration("RESOLVE_HOLD", 500*time.Millisecond),
		ProgressFactor: lf.MayFloat64("PROGRESS_FACTOR", 0.03),
		ProgressCap:    lf.MayFloat64("PROGRESS_CAP", 95),
		EventBuffer:    lf.MayInt("EVENT_BUFFER", 16),
	}
}

// ServiceConfig converts Options into the service timing knobs
func (o Options) ServiceConfig() service.Config {
	return service.Config{
		Deadline:       o.Deadline,
		TickEvery:      o.TickEvery,
		ResolveHold:    o.ResolveHold,
		ProgressFactor: o.ProgressFactor,
		ProgressCap:    o.ProgressCap,
		EventBuffer:    o.EventBuffer,
	}
}
