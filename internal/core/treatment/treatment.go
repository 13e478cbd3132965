// Package treatment loads the catalog of POT urban treatments from the
// embedded treatments.json and resolves free-spelling treatment text onto it
package treatment

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"

	str "lotlens/internal/platform/strings"
)

//go:embed treatments.json
var embedded []byte

type rawCatalog struct {
	Version    int    `json:"version"`
	Treatments []Info `json:"treatments"`
}

// Info describes one urban treatment: what it means for a parcel, what it
// demands, and how it moves the sellability score
type Info struct {
	Code           string   `json:"code"`
	Name           string   `json:"name"`
	Aliases        []string `json:"aliases,omitempty"`
	Description    string   `json:"description"`
	Implications   []string `json:"implications,omitempty"`
	Requirements   []string `json:"requirements,omitempty"`
	Opportunities  []string `json:"opportunities,omitempty"`
	ScoreDelta     int      `json:"score_delta"`
	Recommendation string   `json:"recommendation,omitempty"`
}

// Catalog is the loaded treatment catalog with a folded alias index
type Catalog struct {
	Version int
	entries []Info
	byAlias map[string]int // folded alias -> index into entries
}

// Load parses the embedded treatments.json and builds the alias index
func Load() (*Catalog, error) {
	var raw rawCatalog
	if err := json.Unmarshal(embedded, &raw); err != nil {
		return nil, fmt.Errorf("treatment: parse treatments.json: %w", err)
	}
	c := &Catalog{
		Version: raw.Version,
		entries: raw.Treatments,
		byAlias: make(map[string]int, len(raw.Treatments)*2),
	}
	for i, e := range raw.Treatments {
		c.byAlias[str.Fold(e.Code)] = i
		c.byAlias[str.Fold(e.Name)] = i
		for _, a := range e.Aliases {
			c.byAlias[str.Fold(a)] = i
		}
	}
	return c, nil
}

// MustLoad is Load for wiring paths where a broken embed is a programmer error
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// All returns the catalog entries sorted by code
func (c *Catalog) All() []Info {
	out := make([]Info, len(c.entries))
	copy(out, c.entries)
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Lookup resolves free-spelling treatment text to a catalog entry.
// It tries an exact folded match first, then a substring match so that
// "Tratamiento de Renovación Urbana TR-2" still resolves. Unknown text
// returns a neutral entry carrying the original name and a zero delta
func (c *Catalog) Lookup(text string) (Info, bool) {
	f := str.Fold(text)
	if f == "" {
		return Info{}, false
	}
	if i, ok := c.byAlias[f]; ok {
		return c.entries[i], true
	}
	for alias, i := range c.byAlias {
		if str.FoldContains(f, alias) {
			return c.entries[i], true
		}
	}
	return Info{
		Code:        f,
		Name:        text,
		Description: "treatment not present in the catalog",
	}, false
}
