package filter

import (
	"reflect"
	"testing"

	"github.com/belledame/storefront/internal/catalog/domain"
)

func sampleCatalog() []domain.Product {
	return []domain.Product{
		{ID: "p1", Name: "Crème Hydratante", Brand: "Nivéa", Rubrique: "Soins du visage", SousRubrique: "Hydratation", Categorie: "Crèmes hydratantes", Price: 3500, Active: true},
		{ID: "p2", Name: "Lait Corporel", Brand: "Palmer's", Rubrique: "Soins du corps", SousRubrique: "Hydratation", Categorie: "Laits corporels", Price: 4500, Active: true},
		{ID: "p3", Name: "Huile Capillaire", Brand: "Dabur", Rubrique: "Cheveux", SousRubrique: "Coiffure", Categorie: "Huiles capillaires", Price: 2000, Active: true},
		{ID: "p4", Name: "Ancien Savon", Brand: "Dabur", Rubrique: "Soins du visage", SousRubrique: "Nettoyage", Categorie: "Savons", Price: 1000, Active: false},
	}
}

func ids(products []domain.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestApplyEmptyCriteria(t *testing.T) {
	got := Apply(sampleCatalog(), Criteria{})

	// Every active product, sorted by rubrique then brand then name;
	// the inactive p4 never appears.
	want := []string{"p3", "p2", "p1"}
	if !reflect.DeepEqual(ids(got), want) {
		t.Errorf("Apply() order = %v, want %v", ids(got), want)
	}
}

func TestApplyTextSearchAccentAndCaseInsensitive(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"accented query", "créme", []string{"p1"}},
		{"plain query", "creme", []string{"p1"}},
		{"upper case query", "CREME", []string{"p1"}},
		{"matches brand", "dabur", []string{"p3"}},
		{"matches categorie", "laits corporels", []string{"p2"}},
		{"no match", "introuvable", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(sampleCatalog(), Criteria{Query: tt.query})
			if !reflect.DeepEqual(ids(got), tt.want) {
				t.Errorf("Apply(%q) = %v, want %v", tt.query, ids(got), tt.want)
			}
		})
	}
}

func TestApplyCategoricalFilters(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{"rubrique only", Criteria{Rubrique: "Soins du visage"}, []string{"p1"}},
		{"rubrique and sous", Criteria{Rubrique: "Soins du corps", SousRubrique: "Hydratation"}, []string{"p2"}},
		{"brand only", Criteria{Brand: "Dabur"}, []string{"p3"}},
		{"and-combined mismatch", Criteria{Rubrique: "Cheveux", Brand: "Nivéa"}, []string{}},
		{"unknown taxonomy combination", Criteria{Rubrique: "Maquillage", SousRubrique: "Teint"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(sampleCatalog(), tt.criteria)
			if !reflect.DeepEqual(ids(got), tt.want) {
				t.Errorf("Apply(%+v) = %v, want %v", tt.criteria, ids(got), tt.want)
			}
		})
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	catalog := sampleCatalog()
	snapshot := sampleCatalog()

	first := Apply(catalog, Criteria{Query: "a"})
	second := Apply(catalog, Criteria{Query: "a"})

	if !reflect.DeepEqual(catalog, snapshot) {
		t.Error("Apply() mutated its input catalog")
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("Apply() is not deterministic for identical inputs")
	}
}

func TestSortFrenchCollation(t *testing.T) {
	// Accented characters collate next to their base letter, not after z.
	products := []domain.Product{
		{ID: "z", Name: "zeste", Active: true},
		{ID: "e2", Name: "été", Active: true},
		{ID: "e1", Name: "escale", Active: true},
	}
	Sort(products)

	want := []string{"e1", "e2", "z"}
	if !reflect.DeepEqual(ids(products), want) {
		t.Errorf("Sort() order = %v, want %v", ids(products), want)
	}
}

func TestBrands(t *testing.T) {
	catalog := append(sampleCatalog(), domain.Product{ID: "p5", Brand: "  ", Active: true})
	got := Brands(catalog)

	want := []string{"Dabur", "Nivéa", "Palmer's"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Brands() = %v, want %v", got, want)
	}
}

func TestFold(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Crème Hydratante", "creme hydratante"},
		{"ÉTÉ", "ete"},
		{"  déjà  ", "deja"},
		{"sans accent", "sans accent"},
	}
	for _, tt := range tests {
		if got := Fold(tt.in); got != tt.want {
			t.Errorf("Fold(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
