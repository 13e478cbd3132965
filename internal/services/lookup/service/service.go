package service

import (
	"context"

	"lotlens/internal/core/potrecord"
	"lotlens/internal/core/sellability"
	"lotlens/internal/core/treatment"
	"lotlens/internal/platform/clock"
	perr "lotlens/internal/platform/errors"
	"lotlens/internal/platform/logger"
	"lotlens/internal/services/lookup/domain"
)

// Service is the lookup read side consumed by transport
type Service interface {
	Lookup(ctx context.Context, req domain.Request) (domain.LookupResponse, error)
	Score(ctx context.Context, in domain.ScoreInput) (domain.ScoreResponse, error)
	Treatments(ctx context.Context) (domain.TreatmentList, error)
	Treatment(ctx context.Context, code string) (treatment.Info, error)
}

type service struct {
	dispatcher domain.DispatcherPort
	clk        clock.Clock
	cfg        Config
	eval       *sellability.Evaluator
	catalog    *treatment.Catalog
	log        *logger.Logger
}

// New builds the lookup service
func New(dispatcher domain.DispatcherPort, clk clock.Clock, cfg Config) Service {
	catalog := treatment.MustLoad()
	return &service{
		dispatcher: dispatcher,
		clk:        clk,
		cfg:        cfg.withDefaults(),
		eval:       sellability.New(catalog),
		catalog:    catalog,
		log:        logger.Named("lookup"),
	}
}

// Lookup runs one attempt to completion. Each call gets its own session,
// so concurrent requests never supersede each other; supersession applies
// within a session, which interactive callers drive directly
func (s *service) Lookup(ctx context.Context, req domain.Request) (domain.LookupResponse, error) {
	sess := NewSession(s.dispatcher, s.clk, s.cfg)
	h := sess.Start(ctx, req)
	out, err := h.Wait(ctx)
	if err != nil {
		return domain.LookupResponse{}, err
	}
	resp := domain.LookupResponse{Outcome: out}
	if out.Kind == domain.OutcomeFound && out.Record != nil {
		r := s.eval.Evaluate(*out.Record)
		resp.Sellability = &r
	}
	return resp, nil
}

// Score evaluates caller-supplied POT data without any dispatch
func (s *service) Score(_ context.Context, in domain.ScoreInput) (domain.ScoreResponse, error) {
	rec := potrecord.Normalize(potrecord.Raw{Payload: in.Payload, Text: in.Text})
	return domain.ScoreResponse{
		Record:      rec,
		Sellability: s.eval.Evaluate(rec),
	}, nil
}

// Treatments lists the catalog sorted by code
func (s *service) Treatments(context.Context) (domain.TreatmentList, error) {
	return domain.TreatmentList{Treatments: s.catalog.All()}, nil
}

// Treatment resolves one catalog entry by code, name, or alias
func (s *service) Treatment(_ context.Context, code string) (treatment.Info, error) {
	info, ok := s.catalog.Lookup(code)
	if !ok {
		return treatment.Info{}, perr.NotFoundf("treatment %q not in catalog", code)
	}
	return info, nil
}
