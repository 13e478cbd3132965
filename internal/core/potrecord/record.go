// Package potrecord defines the canonical land-use planning record for a
// parcel and the normalizer that produces it from upstream cadastral
// responses. Fields are pointers on purpose: absent means the POT said
// nothing, which the sellability engine treats differently from zero
package potrecord

// Classification is the POT soil classification of a parcel
type Classification string

// Soil classifications recognized by the scoring engine
const (
	ClassificationUrban     Classification = "urban"
	ClassificationRural     Classification = "rural"
	ClassificationExpansion Classification = "expansion"
)

// PlanningRecord is the canonical POT extract for one parcel.
// Nil fields are unknown, never zero
type PlanningRecord struct {
	Area               *float64        `json:"area,omitempty"`
	Classification     *Classification `json:"classification,omitempty"`
	LandUse            *string         `json:"land_use,omitempty"`
	TreatmentCode      *string         `json:"treatment_code,omitempty"`
	Density            *float64        `json:"density,omitempty"`
	RestrictionCount   *int            `json:"restriction_count,omitempty"`
	RestrictionDetails []string        `json:"restriction_details,omitempty"`
}

// IsEmpty reports whether the record carries no POT data at all
func (r PlanningRecord) IsEmpty() bool {
	return r.Area == nil &&
		r.Classification == nil &&
		r.LandUse == nil &&
		r.TreatmentCode == nil &&
		r.Density == nil &&
		r.RestrictionCount == nil &&
		len(r.RestrictionDetails) == 0
}

// ptr helpers for building records in mappings and tests

// Float returns a pointer to v
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v
func Int(v int) *int { return &v }

// Class returns a pointer to c
func Class(c Classification) *Classification { return &c }
