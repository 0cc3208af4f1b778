// Package shop is the storefront client: a local product store with
// remote-first loading, the filtering facade, the cart engine and the
// admin merge logic with best-effort remote mirroring.
package shop

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/belledame/storefront/internal/catalog/domain"
)

// State persists the client-side keys (catalog snapshot, cart, admin
// record) as JSON files under one directory, one file per key. It is
// the durable equivalent of the browser-local storage of a web client.
type State struct {
	dir string
}

const (
	keyProducts = "products"
	keyCart     = "cart"
	keyAdmin    = "admin"
)

func NewState(dir string) (*State, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &State{dir: dir}, nil
}

func (s *State) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// get loads a key into v, reporting whether the key exists.
func (s *State) get(key string, v interface{}) (bool, error) {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read state %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("parse state %s: %w", key, err)
	}
	return true, nil
}

func (s *State) put(key string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state %s: %w", key, err)
	}
	if err := os.WriteFile(s.path(key), data, 0o644); err != nil {
		return fmt.Errorf("write state %s: %w", key, err)
	}
	return nil
}

// Products returns the persisted catalog snapshot, if any.
func (s *State) Products() ([]domain.Product, bool, error) {
	var products []domain.Product
	ok, err := s.get(keyProducts, &products)
	return products, ok, err
}

func (s *State) SaveProducts(products []domain.Product) error {
	return s.put(keyProducts, products)
}

// Cart returns the persisted cart, empty when none was saved yet.
func (s *State) Cart() (Cart, error) {
	cart := Cart{}
	if _, err := s.get(keyCart, &cart); err != nil {
		return Cart{}, err
	}
	if cart == nil {
		cart = Cart{}
	}
	return cart, nil
}

func (s *State) SaveCart(cart Cart) error {
	return s.put(keyCart, cart)
}

// AdminRecord is the locally stored PIN: a UX gate set on first use and
// compared afterwards, not a security boundary.
type AdminRecord struct {
	PIN string `json:"pin"`
}

func (s *State) Admin() (AdminRecord, error) {
	var rec AdminRecord
	if _, err := s.get(keyAdmin, &rec); err != nil {
		return AdminRecord{}, err
	}
	return rec, nil
}

func (s *State) SaveAdmin(rec AdminRecord) error {
	return s.put(keyAdmin, rec)
}
