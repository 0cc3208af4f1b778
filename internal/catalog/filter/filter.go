// Package filter derives the visible product list from the full
// catalog and the shopper's current criteria. All functions are pure:
// inputs are never mutated and identical inputs yield identical output.
package filter

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/belledame/storefront/internal/catalog/domain"
)

// Criteria holds the current filter state. Empty fields mean "no
// constraint"; categorical fields are exact-equality, Query is a
// diacritic- and case-insensitive substring match.
type Criteria struct {
	Query        string
	Rubrique     string
	SousRubrique string
	Categorie    string
	Brand        string
}

// Fold strips diacritics and case-folds s, so that "Crème" matches
// "creme" and "CREME".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

func matchesQuery(p domain.Product, query string) bool {
	if query == "" {
		return true
	}
	needle := Fold(query)
	hay := Fold(strings.Join([]string{
		p.Name, p.Brand, p.Description, p.Rubrique, p.SousRubrique, p.Categorie,
	}, " "))
	return strings.Contains(hay, needle)
}

// Apply filters the catalog by c, drops inactive products and returns
// a new slice sorted by (rubrique, brand, name) under French collation.
func Apply(catalog []domain.Product, c Criteria) []domain.Product {
	out := make([]domain.Product, 0, len(catalog))
	for _, p := range catalog {
		if !p.Active {
			continue
		}
		if !matchesQuery(p, c.Query) {
			continue
		}
		if c.Rubrique != "" && p.Rubrique != c.Rubrique {
			continue
		}
		if c.SousRubrique != "" && p.SousRubrique != c.SousRubrique {
			continue
		}
		if c.Categorie != "" && p.Categorie != c.Categorie {
			continue
		}
		if c.Brand != "" && p.Brand != c.Brand {
			continue
		}
		out = append(out, p)
	}
	Sort(out)
	return out
}

// Sort orders products in place by (rubrique, brand, name) using
// locale-aware French comparison, ties keeping input order.
func Sort(products []domain.Product) {
	coll := collate.New(language.French)
	sort.SliceStable(products, func(i, j int) bool {
		a, b := products[i], products[j]
		if c := coll.CompareString(a.Rubrique, b.Rubrique); c != 0 {
			return c < 0
		}
		if c := coll.CompareString(a.Brand, b.Brand); c != 0 {
			return c < 0
		}
		return coll.CompareString(a.Name, b.Name) < 0
	})
}

// Brands returns the distinct non-empty brands of the catalog, sorted
// for display in the brand facet.
func Brands(catalog []domain.Product) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, p := range catalog {
		b := strings.TrimSpace(p.Brand)
		if b == "" || seen[b] {
			continue
		}
		seen[b] = true
		out = append(out, b)
	}
	coll := collate.New(language.French)
	coll.SortStrings(out)
	return out
}
