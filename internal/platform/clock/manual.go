package clock

import (
	"sort"
	"sync"
	"time"
)

// Manual is a virtual clock for tests. Time only moves when Advance is
// called; due timers and tickers fire in due order (creation order breaks
// ties) so runs are deterministic
type Manual struct {
	mu      sync.Mutex
	now     time.Time
	seq     uint64
	waiters []*waiter
}

type waiter struct {
	seq     uint64
	due     time.Time
	period  time.Duration // 0 for one-shot timers
	ch      chan time.Time
	stopped bool
}

// NewManual returns a Manual clock starting at start
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the virtual time
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// NewTimer schedules a one-shot waiter at now+d
func (m *Manual) NewTimer(d time.Duration) Timer {
	return manualTimer{m: m, w: m.add(d, 0)}
}

// NewTicker schedules a repeating waiter with period d
func (m *Manual) NewTicker(d time.Duration) Ticker {
	return manualTicker{m: m, w: m.add(d, d)}
}

func (m *Manual) add(d, period time.Duration) *waiter {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	w := &waiter{
		seq:    m.seq,
		due:    m.now.Add(d),
		period: period,
		// buffered like time.Timer so Advance never blocks on a slow consumer
		ch: make(chan time.Time, 1),
	}
	m.waiters = append(m.waiters, w)
	return w
}

// Advance moves the clock forward by d, firing every waiter that comes due
// along the way. A tick that is not consumed before the next one is due is
// dropped, mirroring time.Ticker
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	for {
		w := m.nextDueLocked(target)
		if w == nil {
			break
		}
		m.now = w.due
		select {
		case w.ch <- w.due:
		default:
		}
		if w.period > 0 {
			w.due = w.due.Add(w.period)
		} else {
			w.stopped = true
		}
	}
	m.now = target
	m.compactLocked()
	m.mu.Unlock()
}

// nextDueLocked returns the earliest live waiter due at or before target
func (m *Manual) nextDueLocked(target time.Time) *waiter {
	var best *waiter
	for _, w := range m.waiters {
		if w.stopped || w.due.After(target) {
			continue
		}
		if best == nil || w.due.Before(best.due) || (w.due.Equal(best.due) && w.seq < best.seq) {
			best = w
		}
	}
	return best
}

func (m *Manual) compactLocked() {
	live := m.waiters[:0]
	for _, w := range m.waiters {
		if !w.stopped {
			live = append(live, w)
		}
	}
	m.waiters = live
	sort.Slice(m.waiters, func(i, j int) bool { return m.waiters[i].seq < m.waiters[j].seq })
}

func (m *Manual) stop(w *waiter) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	was := !w.stopped
	w.stopped = true
	return was
}

type manualTimer struct {
	m *Manual
	w *waiter
}

func (t manualTimer) C() <-chan time.Time { return t.w.ch }
func (t manualTimer) Stop() bool          { return t.m.stop(t.w) }

type manualTicker struct {
	m *Manual
	w *waiter
}

func (t manualTicker) C() <-chan time.Time { return t.w.ch }
func (t manualTicker) Stop()               { t.m.stop(t.w) }
