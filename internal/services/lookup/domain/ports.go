package domain

import (
	"context"

	"lotlens/internal/core/potrecord"
	"lotlens/internal/core/sellability"
	"lotlens/internal/core/treatment"
)

// DispatcherPort sends a validated query to the cadastral source and
// returns its raw response. Implementations do not retry; the session
// owns all timing
type DispatcherPort interface {
	Dispatch(ctx context.Context, req Request) (RawResult, error)
}

// StarterPort starts lookup attempts. Starting while an attempt is in
// flight supersedes it: the old attempt's outcome is never delivered
type StarterPort interface {
	Start(ctx context.Context, req Request) Handle
	State() State
}

// EvaluatorPort scores a planning record
type EvaluatorPort interface {
	Evaluate(rec potrecord.PlanningRecord) sellability.Result
}

// CatalogPort exposes the treatment catalog read side
type CatalogPort interface {
	All() []treatment.Info
	Lookup(text string) (treatment.Info, bool)
}

// Ports are dependencies injected into the lookup module
type Ports struct {
	Dispatcher DispatcherPort // required
}
