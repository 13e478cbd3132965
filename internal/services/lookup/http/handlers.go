// Package http provides http transport for lookup
package http

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"

	"lotlens/internal/modkit/httpkit"
	"lotlens/internal/services/lookup/domain"
	svc "lotlens/internal/services/lookup/service"
)

// Register mounts lookup endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.Request](r, "/", h.lookup)
	httpkit.PostJSON[domain.ScoreInput](r, "/score", h.score)
	httpkit.Get(r, "/treatments", h.treatments)
	httpkit.Get(r, "/treatments/{code}", h.treatment)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /lookup Lookup lookupRun
// @Summary Run a cadastral lookup and score the parcel
// @Tags Lookup
// @Accept json
// @Produce json
// @Param payload body domain.Request true "Query"
// @Success 200 {object} domain.LookupResponse "ok"
// @Router /lookup [post]
func (h *handlers) lookup(r *stdhttp.Request, in domain.Request) (any, error) {
	return h.svc.Lookup(r.Context(), in)
}

// swagger:route POST /lookup/score Lookup lookupScore
// @Summary Score POT data the caller already holds
// @Tags Lookup
// @Accept json
// @Produce json
// @Param payload body domain.ScoreInput true "POT data"
// @Success 200 {object} domain.ScoreResponse "ok"
// @Router /lookup/score [post]
func (h *handlers) score(r *stdhttp.Request, in domain.ScoreInput) (any, error) {
	return h.svc.Score(r.Context(), in)
}

// swagger:route GET /lookup/treatments Lookup lookupTreatments
// @Summary List the urban treatment catalog
// @Tags Lookup
// @Produce json
// @Success 200 {object} domain.TreatmentList "ok"
// @Router /lookup/treatments [get]
func (h *handlers) treatments(r *stdhttp.Request) (any, error) {
	return h.svc.Treatments(r.Context())
}

// swagger:route GET /lookup/treatments/{code} Lookup lookupTreatment
// @Summary Resolve one treatment by code, name, or alias
// @Tags Lookup
// @Produce json
// @Param code path string true "Treatment code"
// @Success 200 {object} treatment.Info "ok"
// @Router /lookup/treatments/{code} [get]
func (h *handlers) treatment(r *stdhttp.Request) (any, error) {
	return h.svc.Treatment(r.Context(), chi.URLParam(r, "code"))
}
