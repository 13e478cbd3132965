package potrecord

import (
	str "lotlens/internal/platform/strings"
)

// Payload is the structured shape the cadastral source returns under its
// data key. Keys the source omitted stay nil through the mapping
type Payload struct {
	Area               *float64 `json:"area,omitempty"`
	Classification     *string  `json:"clasificacion,omitempty"`
	LandUse            *string  `json:"uso_suelo,omitempty"`
	TreatmentCode      *string  `json:"tratamiento,omitempty"`
	Density            *float64 `json:"densidad,omitempty"`
	RestrictionCount   *int     `json:"restricciones,omitempty"`
	RestrictionDetails []string `json:"restricciones_detalle,omitempty"`
}

// Raw is the normalizer input: a structured payload, a free-form text
// blob, or neither (both zero yields an empty record, which is valid)
type Raw struct {
	Payload *Payload
	Text    string
}

// Normalize converts an upstream response into a canonical PlanningRecord.
// Structured data wins over text when both are present
func Normalize(in Raw) PlanningRecord {
	if in.Payload != nil {
		return FromPayload(*in.Payload)
	}
	if in.Text != "" {
		return FromText(in.Text)
	}
	return PlanningRecord{}
}

// FromPayload maps a structured payload field by field
func FromPayload(p Payload) PlanningRecord {
	rec := PlanningRecord{
		Area:             p.Area,
		LandUse:          trimmedPtr(p.LandUse),
		TreatmentCode:    trimmedPtr(p.TreatmentCode),
		Density:          p.Density,
		RestrictionCount: p.RestrictionCount,
	}
	if p.Classification != nil {
		rec.Classification = parseClassification(*p.Classification)
	}
	for _, d := range p.RestrictionDetails {
		if t := trimmed(d); t != "" {
			rec.RestrictionDetails = append(rec.RestrictionDetails, t)
		}
	}
	return rec
}

// parseClassification maps free-spelling classification text onto the enum.
// "expansion" is checked first because "expansión urbana" also contains
// "urban". Unrecognized text stays unknown rather than guessing
func parseClassification(s string) *Classification {
	f := str.Fold(s)
	switch {
	case f == "":
		return nil
	case contains(f, "expansion"):
		return Class(ClassificationExpansion)
	case contains(f, "rural"):
		return Class(ClassificationRural)
	case contains(f, "urban"):
		return Class(ClassificationUrban)
	default:
		return nil
	}
}
