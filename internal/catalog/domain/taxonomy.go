package domain

import (
	"encoding/json"
	"fmt"
	"os"
)

// Taxonomy maps rubrique -> sous-rubrique -> categories. Loaded once at
// startup and read-only afterwards. Products are expected, but not
// forced, to reference combinations present here.
type Taxonomy map[string]map[string][]string

// LoadTaxonomy reads the static taxonomy document. A missing or
// unparsable document is a hard startup failure.
func LoadTaxonomy(path string) (Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load taxonomy: %w", err)
	}
	var t Taxonomy
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse taxonomy: %w", err)
	}
	return t, nil
}

// SousRubriques lists the sub-levels under a rubrique.
func (t Taxonomy) SousRubriques(rubrique string) []string {
	out := make([]string, 0, len(t[rubrique]))
	for s := range t[rubrique] {
		out = append(out, s)
	}
	return out
}

// Categories lists the leaf categories under a rubrique/sous-rubrique
// pair. Unknown combinations yield an empty list, not an error.
func (t Taxonomy) Categories(rubrique, sous string) []string {
	return t[rubrique][sous]
}
