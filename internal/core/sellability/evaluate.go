// Package sellability scores a planning record for commercial viability.
// Evaluation is pure and deterministic: same record, same catalog, same result
package sellability

import (
	"fmt"

	"lotlens/internal/core/potrecord"
	"lotlens/internal/core/treatment"
	str "lotlens/internal/platform/strings"
)

// Result is the scoring output for one parcel
type Result struct {
	CanSell         bool            `json:"can_sell"`
	Score           int             `json:"score"`
	Reasons         []string        `json:"reasons"`
	Recommendations []string        `json:"recommendations"`
	Treatment       *treatment.Info `json:"treatment,omitempty"`
}

// criticalKeywords are restriction phrases that make a parcel unsellable
// outright. Matching is folded, so accents and case never matter
var criticalKeywords = []string{
	"zona de proteccion",
	"reserva forestal",
	"riesgo no mitigable",
	"ronda hidrica",
	"humedal",
	"area protegida",
}

// Evaluator scores planning records against a treatment catalog
type Evaluator struct {
	catalog *treatment.Catalog
}

// New builds an Evaluator over the given catalog
func New(catalog *treatment.Catalog) *Evaluator {
	return &Evaluator{catalog: catalog}
}

// Evaluate scores rec. The baseline is 100 and every rule below adjusts it;
// the final score is clamped to [0,100]
func (e *Evaluator) Evaluate(rec potrecord.PlanningRecord) Result {
	if rec.IsEmpty() {
		return Result{
			CanSell:         true,
			Score:           50,
			Reasons:         []string{"no POT data available"},
			Recommendations: []string{"request a detailed POT study"},
		}
	}

	res := Result{CanSell: true}
	score := 100

	score -= e.applyRestrictions(rec, &res)
	score += e.applyTreatment(rec, &res)
	score += applyLandUse(rec, &res)
	score += applyClassification(rec, &res)
	score += applyDensity(rec, &res)

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	res.Score = score

	if res.Score < 30 && res.CanSell {
		res.CanSell = false
		res.Reasons = append(res.Reasons, "viability score too low")
	}
	if !res.CanSell && len(res.Reasons) == 0 {
		res.Reasons = append(res.Reasons, "unfavorable combination of factors")
	}
	if res.CanSell && res.Score < 50 {
		res.Recommendations = append(res.Recommendations, "sellable but with significant conditions to consider")
	}
	return res
}

// applyRestrictions returns the total penalty from restriction count and
// details, and mutates res with reasons and the critical-restriction veto
func (e *Evaluator) applyRestrictions(rec potrecord.PlanningRecord, res *Result) int {
	if rec.RestrictionCount == nil || *rec.RestrictionCount <= 0 {
		return 0
	}
	n := *rec.RestrictionCount
	penalty := n * 20

	if len(rec.RestrictionDetails) == 0 {
		res.Reasons = append(res.Reasons, fmt.Sprintf("has %d undetailed restrictions", n))
		res.Recommendations = append(res.Recommendations, "request the detail of each restriction before proceeding")
		return penalty
	}
	for _, d := range rec.RestrictionDetails {
		if isCritical(d) {
			res.CanSell = false
			penalty += 50
			res.Reasons = append(res.Reasons, "critical restriction: "+d)
			continue
		}
		res.Reasons = append(res.Reasons, "restriction: "+d)
	}
	return penalty
}

func isCritical(detail string) bool {
	f := str.Fold(detail)
	for _, kw := range criticalKeywords {
		if str.FoldContains(f, kw) {
			return true
		}
	}
	return false
}

// applyTreatment resolves the treatment code against the catalog and
// returns its score delta. Unknown codes resolve to a neutral entry
func (e *Evaluator) applyTreatment(rec potrecord.PlanningRecord, res *Result) int {
	if rec.TreatmentCode == nil {
		res.Recommendations = append(res.Recommendations, "verify the urban treatment applicable to the parcel")
		return 0
	}
	info, _ := e.catalog.Lookup(*rec.TreatmentCode)
	res.Treatment = &info
	if info.Recommendation != "" {
		res.Recommendations = append(res.Recommendations, info.Recommendation)
	}
	return info.ScoreDelta
}

func applyLandUse(rec potrecord.PlanningRecord, res *Result) int {
	if rec.LandUse == nil {
		return 0
	}
	use := *rec.LandUse
	switch {
	case str.FoldContains(use, "dotacional"), str.FoldContains(use, "institucional"):
		res.Recommendations = append(res.Recommendations, "institutional land use limits the buyer pool, confirm permitted uses")
		return -15
	case str.FoldContains(use, "residencial"):
		res.Recommendations = append(res.Recommendations, "residential land use broadens demand for the parcel")
		return 10
	case str.FoldContains(use, "comercial"):
		res.Recommendations = append(res.Recommendations, "commercial land use adds value for investor buyers")
		return 5
	case str.FoldContains(use, "industrial"):
		res.Recommendations = append(res.Recommendations, "verify environmental permits required for industrial use")
		return 0
	}
	return 0
}

func applyClassification(rec potrecord.PlanningRecord, res *Result) int {
	if rec.Classification == nil {
		return 0
	}
	switch *rec.Classification {
	case potrecord.ClassificationUrban:
		return 5
	case potrecord.ClassificationRural:
		res.Recommendations = append(res.Recommendations, "rural classification restricts subdivision and urban development")
		return -10
	case potrecord.ClassificationExpansion:
		res.Recommendations = append(res.Recommendations, "expansion soil requires an approved partial plan before development")
		return 0
	}
	return 0
}

func applyDensity(rec potrecord.PlanningRecord, res *Result) int {
	if rec.Density == nil {
		return 0
	}
	switch {
	case *rec.Density > 200:
		res.Recommendations = append(res.Recommendations, "high permitted density is attractive for multifamily projects")
		return 10
	case *rec.Density < 50:
		res.Recommendations = append(res.Recommendations, "low permitted density limits the development potential")
		return -5
	}
	return 0
}
