package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/belledame/storefront/internal/catalog/domain"
)

// table is the on-disk document: one JSON object holding the whole
// product list, rewritten on every mutation.
type table struct {
	Products []domain.Product `json:"products"`
}

// JSONFileRepository keeps the catalog in a single JSON file. Every
// operation reads the full table, mutates an in-memory copy and writes
// the whole file back; the mutex serializes concurrent requests, last
// write wins beyond that.
type JSONFileRepository struct {
	mu   sync.Mutex
	path string
}

// NewJSONFileRepository creates the data directory and an empty table
// file if none exists yet.
func NewJSONFileRepository(path string) (*JSONFileRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	r := &JSONFileRepository{path: path}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := r.write(table{Products: []domain.Product{}}); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	return r, nil
}

func (r *JSONFileRepository) read() (table, error) {
	var t table
	data, err := os.ReadFile(r.path)
	if err != nil {
		return t, fmt.Errorf("read table: %w", err)
	}
	if err := json.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("parse table: %w", err)
	}
	if t.Products == nil {
		t.Products = []domain.Product{}
	}
	return t, nil
}

func (r *JSONFileRepository) write(t table) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("encode table: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	return nil
}

func (r *JSONFileRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, err := r.read()
	if err != nil {
		return nil, err
	}
	return t.Products, nil
}

func (r *JSONFileRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, err := r.read()
	if err != nil {
		return nil, err
	}
	for i := range t.Products {
		if t.Products[i].ID == id {
			p := t.Products[i]
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *JSONFileRepository) Save(ctx context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, err := r.read()
	if err != nil {
		return err
	}
	t.Products = upsertInto(t.Products, *product)
	return r.write(t)
}

func (r *JSONFileRepository) SaveAll(ctx context.Context, products []domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, err := r.read()
	if err != nil {
		return err
	}
	for _, p := range products {
		t.Products = upsertInto(t.Products, p)
	}
	return r.write(t)
}

func (r *JSONFileRepository) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, err := r.read()
	if err != nil {
		return 0, err
	}
	return int64(len(t.Products)), nil
}

func upsertInto(list []domain.Product, p domain.Product) []domain.Product {
	for i := range list {
		if list[i].ID == p.ID {
			list[i] = p
			return list
		}
	}
	return append(list, p)
}
