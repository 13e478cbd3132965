package domain

import (
	"lotlens/internal/core/potrecord"
	"lotlens/internal/core/sellability"
	"lotlens/internal/core/treatment"
)

// LookupResponse is the wire shape for a completed lookup
type LookupResponse struct {
	Outcome     Outcome             `json:"outcome"`
	Sellability *sellability.Result `json:"sellability,omitempty"`
}

// ScoreInput scores POT data the caller already holds. Payload wins over
// Text when both are present; both empty scores as a no-data record
type ScoreInput struct {
	Payload *potrecord.Payload `json:"payload,omitempty"`
	Text    string             `json:"text,omitempty"`
}

// ScoreResponse is the wire shape for a standalone scoring call
type ScoreResponse struct {
	Record      potrecord.PlanningRecord `json:"record"`
	Sellability sellability.Result       `json:"sellability"`
}

// TreatmentList is the wire shape for the catalog listing
type TreatmentList struct {
	Treatments []treatment.Info `json:"treatments"`
}
