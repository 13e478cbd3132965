// Package domain defines the lookup service types: the query shapes the
// caller may submit, the session lifecycle, and the outcome taxonomy
package domain

import (
	"context"

	"github.com/google/uuid"

	"lotlens/internal/core/potrecord"
	perr "lotlens/internal/platform/errors"
)

// Kind is the query type of a lookup request
type Kind string

// Query kinds accepted by the lookup service
const (
	KindCadastralCode      Kind = "cadastral_code"
	KindRegistrationNumber Kind = "registration_number"
	KindAddress            Kind = "address"
)

// Request is one lookup query
type Request struct {
	Kind  Kind   `json:"kind"`
	Value string `json:"value"`
}

// Validate checks the request shape before any dispatch happens.
// Invalid requests never reach the upstream source
func (r Request) Validate() error {
	switch r.Kind {
	case KindCadastralCode:
		if len(r.Value) < 10 || !allDigits(r.Value) {
			return perr.WithField(perr.Validationf("cadastral code must be at least 10 digits"), "value")
		}
	case KindRegistrationNumber:
		if len(r.Value) < 5 {
			return perr.WithField(perr.Validationf("registration number must be at least 5 characters"), "value")
		}
	case KindAddress:
		if len(r.Value) < 10 {
			return perr.WithField(perr.Validationf("address must be at least 10 characters"), "value")
		}
	default:
		return perr.WithField(perr.Validationf("unknown query kind %q", string(r.Kind)), "kind")
	}
	return nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// State is the lifecycle phase of a lookup attempt
type State string

// Session states
const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateWaiting    State = "waiting"
	StateResolved   State = "resolved"
	StateTimedOut   State = "timed_out"
	StateSuperseded State = "superseded"
)

// OutcomeKind classifies how an attempt ended
type OutcomeKind string

// Outcome kinds
const (
	OutcomeFound           OutcomeKind = "found"
	OutcomeNotFound        OutcomeKind = "not_found"
	OutcomeValidationError OutcomeKind = "validation_error"
	OutcomeNetworkError    OutcomeKind = "network_error"
	OutcomeServerError     OutcomeKind = "server_error"
	OutcomeParseError      OutcomeKind = "parse_error"
	OutcomeTimedOut        OutcomeKind = "timed_out"
)

// Outcome is the terminal result of one lookup attempt
type Outcome struct {
	Kind   OutcomeKind               `json:"kind"`
	Record *potrecord.PlanningRecord `json:"record,omitempty"`
	Status int                       `json:"status,omitempty"`
	Reason string                    `json:"reason,omitempty"`
}

// Outcome constructors keep callers from building inconsistent shapes

// Found wraps a normalized record
func Found(rec potrecord.PlanningRecord) Outcome {
	return Outcome{Kind: OutcomeFound, Record: &rec}
}

// NotFound marks a clean miss
func NotFound() Outcome { return Outcome{Kind: OutcomeNotFound} }

// Invalid marks a request rejected before dispatch
func Invalid(reason string) Outcome {
	return Outcome{Kind: OutcomeValidationError, Reason: reason}
}

// NetworkFailure marks a transport-level failure
func NetworkFailure(reason string) Outcome {
	return Outcome{Kind: OutcomeNetworkError, Reason: reason}
}

// ServerFailure marks an upstream non-2xx response
func ServerFailure(status int, reason string) Outcome {
	return Outcome{Kind: OutcomeServerError, Status: status, Reason: reason}
}

// ParseFailure marks an unreadable upstream body
func ParseFailure(reason string) Outcome {
	return Outcome{Kind: OutcomeParseError, Reason: reason}
}

// TimedOut marks an attempt that exhausted its deadline
func TimedOut() Outcome { return Outcome{Kind: OutcomeTimedOut} }

// Terminal reports whether the outcome resolves the attempt
func (o Outcome) Terminal() bool { return o.Kind != "" }

// EventKind tags session events
type EventKind string

// Event kinds delivered on a handle
const (
	EventProgress EventKind = "progress"
	EventResolved EventKind = "resolved"
)

// Event is one notification from a running lookup attempt
type Event struct {
	Kind       EventKind
	Generation uint64
	Progress   float64
	Outcome    *Outcome
}

// Handle is the caller's view of one started attempt. Events carries
// progress updates and exactly one resolved event, then closes
type Handle struct {
	ID         uuid.UUID
	Generation uint64
	Events     <-chan Event
}

// Wait drains events until the attempt resolves. A closed channel with no
// resolved event means the attempt was superseded
func (h Handle) Wait(ctx context.Context) (Outcome, error) {
	for {
		select {
		case <-ctx.Done():
			return Outcome{}, ctx.Err()
		case ev, ok := <-h.Events:
			if !ok {
				return Outcome{}, perr.Conflictf("lookup superseded by a newer request")
			}
			if ev.Kind == EventResolved && ev.Outcome != nil {
				return *ev.Outcome, nil
			}
		}
	}
}

// RawResult is what the dispatcher returns on a successful exchange
type RawResult struct {
	Found   bool
	Payload *potrecord.Payload
	Text    string
}
