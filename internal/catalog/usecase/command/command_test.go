package command

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/belledame/storefront/internal/catalog/domain"
	"github.com/belledame/storefront/internal/catalog/repository"
)

func newTestRepo(t *testing.T) domain.ProductRepository {
	t.Helper()
	repo, err := repository.NewJSONFileRepository(filepath.Join(t.TempDir(), "db.json"))
	if err != nil {
		t.Fatalf("NewJSONFileRepository() error = %v", err)
	}
	return repo
}

func boolPtr(b bool) *bool    { return &b }
func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

func TestUpsertRequiresIDNameBrand(t *testing.T) {
	handler := NewUpsertProductHandler(newTestRepo(t))

	tests := []struct {
		name  string
		input domain.ProductInput
	}{
		{"missing id", domain.ProductInput{Name: "Savon", Brand: "Dudu"}},
		{"missing name", domain.ProductInput{ID: "X", Brand: "Dudu"}},
		{"missing brand", domain.ProductInput{ID: "X", Name: "Savon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := handler.Handle(context.Background(), UpsertProductCommand{Input: tt.input})
			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("Handle() error = %v, want ValidationError", err)
			}
		})
	}
}

func TestUpsertNormalizesDefaults(t *testing.T) {
	repo := newTestRepo(t)
	handler := NewUpsertProductHandler(repo)

	got, err := handler.Handle(context.Background(), UpsertProductCommand{
		Input: domain.ProductInput{
			ID:    "BD-0001",
			Name:  "Savon Noir",
			Brand: "Dudu",
			Price: 1500,
			Image: "assets/savon.svg",
		},
	})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	if got.Currency != domain.DefaultCurrency {
		t.Errorf("currency = %q, want %q", got.Currency, domain.DefaultCurrency)
	}
	if !got.Active {
		t.Error("absent active flag must default to true")
	}
	if got.Image() != "assets/savon.svg" {
		t.Errorf("singular image field not collapsed into images: %v", got.Images)
	}
	if got.UpdatedAt.IsZero() {
		t.Error("updated_at not stamped")
	}

	stored, err := repo.FindByID(context.Background(), "BD-0001")
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if stored.Name != "Savon Noir" {
		t.Errorf("stored record = %+v", stored)
	}
}

func TestUpsertExplicitInactive(t *testing.T) {
	handler := NewUpsertProductHandler(newTestRepo(t))

	got, err := handler.Handle(context.Background(), UpsertProductCommand{
		Input: domain.ProductInput{ID: "X", Name: "N", Brand: "B", Active: boolPtr(false)},
	})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if got.Active {
		t.Error("explicit active=false was not honored")
	}
}

func TestUpsertFullyReplacesRecord(t *testing.T) {
	repo := newTestRepo(t)
	handler := NewUpsertProductHandler(repo)
	ctx := context.Background()

	first := domain.ProductInput{ID: "X", Name: "Savon", Brand: "Dudu", Price: 1500, Description: "ancien"}
	if _, err := handler.Handle(ctx, UpsertProductCommand{Input: first}); err != nil {
		t.Fatal(err)
	}

	// No partial merge on this path: a second upsert without the
	// description loses it.
	second := domain.ProductInput{ID: "X", Name: "Savon", Brand: "Dudu", Price: 1800}
	got, err := handler.Handle(ctx, UpsertProductCommand{Input: second})
	if err != nil {
		t.Fatal(err)
	}
	if got.Price != 1800 {
		t.Errorf("price = %d, want 1800", got.Price)
	}
	if got.Description != "" {
		t.Errorf("description = %q, want empty after full replace", got.Description)
	}
}

func TestPatchTouchesOnlyPatchableFields(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	seed := domain.Product{
		ID: "X", Name: "Savon", Brand: "Dudu", Price: 1500,
		Rubrique: "Soins du corps", Description: "ancien",
		Images: []string{"assets/old.svg"}, Active: true,
	}
	if err := repo.Save(ctx, &seed); err != nil {
		t.Fatal(err)
	}

	handler := NewPatchProductHandler(repo)
	got, err := handler.Handle(ctx, PatchProductCommand{
		ID: "X",
		Patch: domain.ProductPatch{
			Price:       intPtr(1800),
			Description: strPtr("nouveau"),
			Image:       strPtr("assets/new.svg"),
			Active:      boolPtr(false),
		},
	})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	if got.Price != 1800 || got.Description != "nouveau" || got.Image() != "assets/new.svg" || got.Active {
		t.Errorf("patched fields wrong: %+v", got)
	}
	if got.Name != "Savon" || got.Brand != "Dudu" || got.Rubrique != "Soins du corps" {
		t.Errorf("patch touched protected fields: %+v", got)
	}
	if !got.UpdatedAt.After(seed.UpdatedAt) {
		t.Error("updated_at not restamped")
	}
}

func TestPatchUnknownIDReturnsNotFound(t *testing.T) {
	handler := NewPatchProductHandler(newTestRepo(t))

	_, err := handler.Handle(context.Background(), PatchProductCommand{ID: "missing"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Handle() error = %v, want ErrNotFound", err)
	}
}

func TestDeleteSoftDeletePreservesFields(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	seed := domain.Product{ID: "X", Name: "Savon", Brand: "Dudu", Price: 1500, Active: true}
	if err := repo.Save(ctx, &seed); err != nil {
		t.Fatal(err)
	}

	handler := NewDeleteProductHandler(repo)
	if err := handler.Handle(ctx, DeleteProductCommand{ID: "X"}); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	got, err := repo.FindByID(ctx, "X")
	if err != nil {
		t.Fatalf("record gone after soft delete: %v", err)
	}
	if got.Active {
		t.Error("record still active after delete")
	}
	if got.Name != "Savon" || got.Price != 1500 {
		t.Errorf("soft delete changed other fields: %+v", got)
	}
}

func TestDeleteUnknownIDIsIdempotent(t *testing.T) {
	handler := NewDeleteProductHandler(newTestRepo(t))

	if err := handler.Handle(context.Background(), DeleteProductCommand{ID: "missing"}); err != nil {
		t.Errorf("Handle(missing) error = %v, want nil", err)
	}
}

func TestSeedUnionByID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	seed := domain.Product{ID: "A", Name: "Ancien", Brand: "B", Price: 100, Active: true}
	if err := repo.Save(ctx, &seed); err != nil {
		t.Fatal(err)
	}

	handler := NewSeedCatalogHandler(repo)
	count, err := handler.Handle(ctx, SeedCatalogCommand{
		Inputs: []domain.ProductInput{
			{ID: "A", Name: "Remplacé", Brand: "B", Price: 200},
			{ID: "B", Name: "Nouveau", Brand: "B", Price: 300},
		},
	})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}

	total, err := repo.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 {
		t.Errorf("Count() = %d, want 2 (union by id)", total)
	}
	got, err := repo.FindByID(ctx, "A")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Remplacé" {
		t.Errorf("record A not replaced wholesale: %+v", got)
	}
	if !got.Active {
		t.Error("seeded record without active flag must default to active")
	}
}
