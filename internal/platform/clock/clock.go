// Package clock abstracts time so timer-driven logic can run against a
// virtual clock in tests. Production code takes a Clock and never touches
// package time for scheduling directly
package clock

import "time"

// Clock creates timers and tickers and reports the current time
type Clock interface {
	Now() time.Time
	NewTimer(d time.Duration) Timer
	NewTicker(d time.Duration) Ticker
}

// Timer fires once on C after its duration elapses
type Timer interface {
	C() <-chan time.Time
	// Stop prevents the timer from firing; reports whether it was still pending
	Stop() bool
}

// Ticker fires on C every period until stopped
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// System returns the wall clock
func System() Clock { return systemClock{} }

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) NewTimer(d time.Duration) Timer { return sysTimer{t: time.NewTimer(d)} }

func (systemClock) NewTicker(d time.Duration) Ticker { return sysTicker{t: time.NewTicker(d)} }

type sysTimer struct{ t *time.Timer }

func (s sysTimer) C() <-chan time.Time { return s.t.C }
func (s sysTimer) Stop() bool          { return s.t.Stop() }

type sysTicker struct{ t *time.Ticker }

func (s sysTicker) C() <-chan time.Time { return s.t.C }
func (s sysTicker) Stop()               { s.t.Stop() }
