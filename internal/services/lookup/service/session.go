// Package service runs lookup attempts against the cadastral dispatcher.
// A Session owns one query slot: starting a new attempt supersedes the
// previous one, and a superseded attempt's outcome is never delivered
package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"lotlens/internal/core/potrecord"
	"lotlens/internal/platform/clock"
	perr "lotlens/internal/platform/errors"
	"lotlens/internal/platform/logger"
	"lotlens/internal/services/lookup/domain"
)

// Config are the session timing knobs
type Config struct {
	// Deadline is the hard cap on one attempt, dispatch included
	Deadline time.Duration
	// TickEvery is the progress tick period
	TickEvery time.Duration
	// ResolveHold keeps the event channel open briefly after resolution
	// so slow consumers still drain the terminal pair
	ResolveHold time.Duration
	// ProgressFactor is the per-tick fraction of the remaining gap
	ProgressFactor float64
	// ProgressCap is the ceiling synthetic progress may reach
	ProgressCap float64
	// EventBuffer sizes each attempt's event channel
	EventBuffer int
}

// DefaultConfig returns the production timings
func DefaultConfig() Config {
	return Config{
		Deadline:       50 * time.Second,
		TickEvery:      300 * time.Millisecond,
		ResolveHold:    500 * time.Millisecond,
		ProgressFactor: 0.03,
		ProgressCap:    95,
		EventBuffer:    16,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Deadline <= 0 {
		c.Deadline = d.Deadline
	}
	if c.TickEvery <= 0 {
		c.TickEvery = d.TickEvery
	}
	if c.ResolveHold <= 0 {
		c.ResolveHold = d.ResolveHold
	}
	if c.ProgressFactor <= 0 {
		c.ProgressFactor = d.ProgressFactor
	}
	if c.ProgressCap <= 0 {
		c.ProgressCap = d.ProgressCap
	}
	if c.EventBuffer < 4 {
		c.EventBuffer = d.EventBuffer
	}
	return c
}

// Session is the lookup state machine. Safe for concurrent use
type Session struct {
	mu         sync.Mutex
	clk        clock.Clock
	dispatcher domain.DispatcherPort
	guard      *TimeoutGuard
	cfg        Config
	log        *logger.Logger

	gen   uint64
	state domain.State
	cur   *attempt
}

type attempt struct {
	id     uuid.UUID
	gen    uint64
	events chan domain.Event
	stop   chan struct{}
	cancel context.CancelFunc
	est    *Estimator

	done    bool
	stopped bool
	closed  bool
}

var _ domain.StarterPort = (*Session)(nil)

// NewSession builds a session over the given dispatcher and clock
func NewSession(dispatcher domain.DispatcherPort, clk clock.Clock, cfg Config) *Session {
	cfg = cfg.withDefaults()
	return &Session{
		clk:        clk,
		dispatcher: dispatcher,
		guard:      NewTimeoutGuard(clk),
		cfg:        cfg,
		log:        logger.Named("lookup.session"),
		state:      domain.StateIdle,
	}
}

// State returns the current lifecycle phase
func (s *Session) State() domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Generation returns the current attempt counter
func (s *Session) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// Start begins a lookup attempt and returns its handle immediately.
// An invalid request resolves on the handle without dispatching and
// without disturbing any attempt already in flight
func (s *Session) Start(ctx context.Context, req domain.Request) domain.Handle {
	if err := req.Validate(); err != nil {
		return s.preResolved(domain.Invalid(err.Error()))
	}

	s.mu.Lock()
	s.supersedeLocked()
	s.gen++
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	a := &attempt{
		id:     uuid.New(),
		gen:    s.gen,
		events: make(chan domain.Event, s.cfg.EventBuffer),
		stop:   make(chan struct{}),
		cancel: cancel,
		est:    NewEstimator(s.cfg.ProgressFactor, s.cfg.ProgressCap),
	}
	s.cur = a
	s.state = domain.StateSubmitting
	s.mu.Unlock()

	s.log.Debug().
		Str("attempt_id", a.id.String()).
		Uint64("generation", a.gen).
		Str("kind", string(req.Kind)).
		Msg("lookup started")

	go s.run(runCtx, a, req)

	return domain.Handle{ID: a.id, Generation: a.gen, Events: a.events}
}

// preResolved builds a handle that already carries its terminal events
func (s *Session) preResolved(out domain.Outcome) domain.Handle {
	ch := make(chan domain.Event, 2)
	ch <- domain.Event{Kind: domain.EventProgress, Progress: 100}
	ch <- domain.Event{Kind: domain.EventResolved, Outcome: &out}
	close(ch)
	return domain.Handle{ID: uuid.New(), Events: ch}
}

func (s *Session) run(ctx context.Context, a *attempt, req domain.Request) {
	respCh := make(chan dispatchResult, 1)
	go func() {
		raw, err := s.dispatcher.Dispatch(ctx, req)
		respCh <- dispatchResult{raw: raw, err: err}
	}()

	s.mu.Lock()
	if s.cur == a && !a.done {
		s.state = domain.StateWaiting
	}
	s.mu.Unlock()

	s.guard.Arm(a.gen, s.cfg.Deadline, func() {
		s.resolve(a, domain.TimedOut(), domain.StateTimedOut)
	})

	ticker := s.clk.NewTicker(s.cfg.TickEvery)
	defer ticker.Stop()

	for {
		select {
		case <-a.stop:
			return
		case <-ticker.C():
			s.emitProgress(a)
		case res := <-respCh:
			out, st := s.outcomeOf(res)
			s.resolve(a, out, st)
			return
		}
	}
}

type dispatchResult struct {
	raw domain.RawResult
	err error
}

// outcomeOf maps a dispatch result onto the outcome taxonomy
func (s *Session) outcomeOf(res dispatchResult) (domain.Outcome, domain.State) {
	if res.err != nil {
		switch perr.CodeOf(res.err) {
		case perr.ErrorCodeUpstream:
			return domain.ServerFailure(perr.StatusOf(res.err), res.err.Error()), domain.StateResolved
		case perr.ErrorCodeParse, perr.ErrorCodeJSON:
			return domain.ParseFailure(res.err.Error()), domain.StateResolved
		default:
			return domain.NetworkFailure(res.err.Error()), domain.StateResolved
		}
	}
	if !res.raw.Found {
		return domain.NotFound(), domain.StateResolved
	}
	rec := potrecord.Normalize(potrecord.Raw{Payload: res.raw.Payload, Text: res.raw.Text})
	if rec.IsEmpty() {
		return domain.NotFound(), domain.StateResolved
	}
	return domain.Found(rec), domain.StateResolved
}

// emitProgress advances the synthetic curve and sends a progress event.
// Two buffer slots stay reserved for the terminal pair, and the event is
// dropped rather than blocking a slow consumer
func (s *Session) emitProgress(a *attempt) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.done || a.closed {
		return
	}
	p := a.est.Tick()
	if len(a.events) >= cap(a.events)-2 {
		return
	}
	a.events <- domain.Event{Kind: domain.EventProgress, Generation: a.gen, Progress: p}
}

// resolve delivers the terminal pair for a if it is still the current
// attempt. Superseded or already resolved attempts are ignored, which is
// what keeps stale outcomes from ever reaching the caller
func (s *Session) resolve(a *attempt, out domain.Outcome, st domain.State) {
	s.mu.Lock()
	if s.cur != a || a.done {
		s.mu.Unlock()
		return
	}
	a.done = true
	s.state = st
	s.guard.Disarm(a.gen)
	a.cancel()
	if !a.stopped {
		a.stopped = true
		close(a.stop)
	}
	// Room is guaranteed: emitProgress reserves these two slots
	a.events <- domain.Event{Kind: domain.EventProgress, Generation: a.gen, Progress: 100}
	a.events <- domain.Event{Kind: domain.EventResolved, Generation: a.gen, Outcome: &out}
	s.mu.Unlock()

	s.log.Debug().
		Str("attempt_id", a.id.String()).
		Uint64("generation", a.gen).
		Str("outcome", string(out.Kind)).
		Msg("lookup resolved")

	// Keep the channel open briefly so the consumer drains the pair
	hold := s.clk.NewTimer(s.cfg.ResolveHold)
	go func() {
		<-hold.C()
		s.closeEvents(a)
	}()
}

// supersedeLocked retires the in-flight attempt, if any. Its events
// channel closes immediately with no terminal outcome
func (s *Session) supersedeLocked() {
	a := s.cur
	if a == nil || a.done {
		return
	}
	a.done = true
	s.state = domain.StateSuperseded
	s.guard.Disarm(a.gen)
	a.cancel()
	if !a.stopped {
		a.stopped = true
		close(a.stop)
	}
	if !a.closed {
		a.closed = true
		close(a.events)
	}
	s.log.Debug().
		Str("attempt_id", a.id.String()).
		Uint64("generation", a.gen).
		Msg("lookup superseded")
}

func (s *Session) closeEvents(a *attempt) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.closed {
		return
	}
	a.closed = true
	close(a.events)
}
