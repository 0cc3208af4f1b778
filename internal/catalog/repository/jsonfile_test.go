package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/belledame/storefront/internal/catalog/domain"
)

func newTestRepo(t *testing.T) *JSONFileRepository {
	t.Helper()
	repo, err := NewJSONFileRepository(filepath.Join(t.TempDir(), "db.json"))
	if err != nil {
		t.Fatalf("NewJSONFileRepository() error = %v", err)
	}
	return repo
}

func TestNewJSONFileRepositoryCreatesEmptyTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "db.json")

	repo, err := NewJSONFileRepository(path)
	if err != nil {
		t.Fatalf("NewJSONFileRepository() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("table file not created: %v", err)
	}

	products, err := repo.FindAll(context.Background())
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if len(products) != 0 {
		t.Errorf("fresh table has %d products, want 0", len(products))
	}
}

func TestSaveThenFindByID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	p := domain.Product{ID: "BD-0001", Name: "Savon Noir", Brand: "Dudu", Price: 1500, Active: true}
	if err := repo.Save(ctx, &p); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := repo.FindByID(ctx, "BD-0001")
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if got.Name != "Savon Noir" || got.Price != 1500 {
		t.Errorf("FindByID() = %+v", got)
	}
}

func TestSaveReplacesExistingRecord(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := domain.Product{ID: "BD-0001", Name: "Savon Noir", Price: 1500}
	second := domain.Product{ID: "BD-0001", Name: "Savon Noir", Price: 1800}
	if err := repo.Save(ctx, &first); err != nil {
		t.Fatal(err)
	}
	if err := repo.Save(ctx, &second); err != nil {
		t.Fatal(err)
	}

	got, err := repo.FindByID(ctx, "BD-0001")
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if got.Price != 1800 {
		t.Errorf("price = %d, want 1800 (replaced)", got.Price)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 1 {
		t.Errorf("Count() = %d, want 1", count)
	}
}

func TestFindByIDNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.FindByID(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("FindByID(missing) error = %v, want ErrNotFound", err)
	}
}

func TestSaveAllUpsertsBatch(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	seed := domain.Product{ID: "A", Name: "Ancien", Price: 100}
	if err := repo.Save(ctx, &seed); err != nil {
		t.Fatal(err)
	}

	batch := []domain.Product{
		{ID: "A", Name: "Remplacé", Price: 200},
		{ID: "B", Name: "Nouveau", Price: 300},
	}
	if err := repo.SaveAll(ctx, batch); err != nil {
		t.Fatalf("SaveAll() error = %v", err)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("Count() = %d, want 2", count)
	}
	got, err := repo.FindByID(ctx, "A")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Remplacé" {
		t.Errorf("record A not replaced: %+v", got)
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	ctx := context.Background()

	repo, err := NewJSONFileRepository(path)
	if err != nil {
		t.Fatal(err)
	}
	p := domain.Product{ID: "BD-0001", Name: "Savon Noir", Price: 1500}
	if err := repo.Save(ctx, &p); err != nil {
		t.Fatal(err)
	}

	reopened, err := NewJSONFileRepository(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	got, err := reopened.FindByID(ctx, "BD-0001")
	if err != nil {
		t.Fatalf("FindByID() after reopen error = %v", err)
	}
	if got.Name != "Savon Noir" {
		t.Errorf("FindByID() after reopen = %+v", got)
	}
}
