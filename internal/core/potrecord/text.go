package potrecord

import (
	"strconv"
	"strings"

	str "lotlens/internal/platform/strings"
)

// Free-text POT extracts arrive as labeled lines, e.g.
//
//	Área: 1.250 m²
//	Clasificación: Suelo Urbano
//	Uso del suelo: Residencial Tipo 2
//	Tratamiento: Consolidación
//	Densidad: 120 viv/ha
//	Restricciones: 2 tipos identificados
//	- Zona de protección ambiental
//	- Ronda hídrica
//
// Labels are matched accent- and case-insensitively. A label that does not
// appear leaves its field nil; nothing defaults to zero

// FromText extracts a PlanningRecord from a labeled text blob
func FromText(s string) PlanningRecord {
	var rec PlanningRecord

	lines := strings.Split(s, "\n")
	for i := 0; i < len(lines); i++ {
		label, value, ok := splitLabeled(lines[i])
		if !ok {
			continue
		}
		switch label {
		case "area":
			rec.Area = parseNumber(value)
		case "clasificacion":
			rec.Classification = parseClassification(value)
		case "uso del suelo", "uso de suelo":
			if t := trimmed(value); t != "" {
				rec.LandUse = &t
			}
		case "tratamiento":
			if t := trimmed(value); t != "" {
				rec.TreatmentCode = &t
			}
		case "densidad":
			rec.Density = parseNumber(value)
		case "restricciones":
			rec.RestrictionCount = parseCount(value)
			rec.RestrictionDetails = collectDetails(lines[i+1:])
		}
	}
	return rec
}

// splitLabeled splits "Label: value" and folds the label
func splitLabeled(line string) (label, value string, ok bool) {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return "", "", false
	}
	return str.Fold(line[:idx]), line[idx+1:], true
}

// collectDetails gathers the dash/bullet lines that follow a Restricciones
// line, stopping at the first line that is neither
func collectDetails(rest []string) []string {
	var out []string
	for _, line := range rest {
		t := strings.TrimSpace(line)
		if t == "" {
			continue
		}
		var detail string
		switch {
		case strings.HasPrefix(t, "- "):
			detail = strings.TrimSpace(t[2:])
		case strings.HasPrefix(t, "• "):
			detail = strings.TrimSpace(t[len("• "):])
		default:
			return out
		}
		if detail != "" {
			out = append(out, detail)
		}
	}
	return out
}

// parseNumber pulls the first numeric token out of a value like
// "1.250,75 m²". Dots are thousands separators and the comma is the
// decimal mark in upstream text, so both are rewritten before parsing
func parseNumber(s string) *float64 {
	tok := firstNumericToken(s)
	if tok == "" {
		return nil
	}
	tok = strings.ReplaceAll(tok, ".", "")
	tok = strings.ReplaceAll(tok, ",", ".")
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return nil
	}
	return &v
}

// parseCount pulls the first integer out of a value like "2 tipos identificados"
func parseCount(s string) *int {
	tok := firstNumericToken(s)
	if tok == "" {
		return nil
	}
	tok = strings.ReplaceAll(tok, ".", "")
	if idx := strings.IndexByte(tok, ','); idx >= 0 {
		tok = tok[:idx]
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return nil
	}
	return &v
}

// firstNumericToken returns the first run of digits, dots, and commas
func firstNumericToken(s string) string {
	start := -1
	for i, r := range s {
		isNum := r >= '0' && r <= '9'
		if start < 0 {
			if isNum {
				start = i
			}
			continue
		}
		if !isNum && r != '.' && r != ',' {
			return strings.Trim(s[start:i], ".,")
		}
	}
	if start < 0 {
		return ""
	}
	return strings.Trim(s[start:], ".,")
}

func trimmed(s string) string { return strings.TrimSpace(s) }

func trimmedPtr(p *string) *string {
	if p == nil {
		return nil
	}
	t := strings.TrimSpace(*p)
	if t == "" {
		return nil
	}
	return &t
}

func contains(s, sub string) bool { return strings.Contains(s, sub) }
