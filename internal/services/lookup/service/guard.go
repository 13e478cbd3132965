package service

import (
	"sync"
	"time"

	"lotlens/internal/platform/clock"
)

// TimeoutGuard arms one deadline per attempt generation. Disarm is
// idempotent and racing Disarm against expiry never double-fires: the
// entry is removed under the mutex before the callback runs
type TimeoutGuard struct {
	mu    sync.Mutex
	clk   clock.Clock
	armed map[uint64]*guardEntry
}

type guardEntry struct {
	timer clock.Timer
	stop  chan struct{}
}

// NewTimeoutGuard builds a guard over the given clock
func NewTimeoutGuard(clk clock.Clock) *TimeoutGuard {
	return &TimeoutGuard{clk: clk, armed: make(map[uint64]*guardEntry)}
}

// Arm schedules onExpire to run once after d unless Disarm(gen) happens
// first. Re-arming a generation replaces its previous deadline
func (g *TimeoutGuard) Arm(gen uint64, d time.Duration, onExpire func()) {
	g.mu.Lock()
	if old, ok := g.armed[gen]; ok {
		old.timer.Stop()
		close(old.stop)
	}
	e := &guardEntry{timer: g.clk.NewTimer(d), stop: make(chan struct{})}
	g.armed[gen] = e
	g.mu.Unlock()

	go func() {
		select {
		case <-e.timer.C():
		case <-e.stop:
			return
		}
		g.mu.Lock()
		cur, ok := g.armed[gen]
		if !ok || cur != e {
			g.mu.Unlock()
			return
		}
		delete(g.armed, gen)
		g.mu.Unlock()
		onExpire()
	}()
}

// Disarm cancels the deadline for gen if it has not expired yet
func (g *TimeoutGuard) Disarm(gen uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	e, ok := g.armed[gen]
	if !ok {
		return
	}
	delete(g.armed, gen)
	e.timer.Stop()
	close(e.stop)
}
