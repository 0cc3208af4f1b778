package shop

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/belledame/storefront/internal/catalog/domain"
	"github.com/belledame/storefront/internal/catalog/filter"
	"github.com/belledame/storefront/pkg/logger"
)

// FieldMask is the set of product fields an edit is allowed to touch.
type FieldMask map[string]struct{}

func (m FieldMask) Has(field string) bool {
	_, ok := m[field]
	return ok
}

// LockedEditMask is the quick-edit policy for existing records: only
// price, the single image and the description may change.
var LockedEditMask = FieldMask{
	"price":       {},
	"image":       {},
	"description": {},
}

// UpsertOptions controls the merge mode. Locked is the default when
// editing an existing record; an explicit unlock allows a full replace.
type UpsertOptions struct {
	Locked bool
}

// Store owns the client-side catalog. Mutations commit locally first
// and are then mirrored best-effort to the remote client, when one is
// configured; a failed mirror never unwinds the local commit.
type Store struct {
	state    *State
	remote   *RemoteClient
	taxonomy domain.Taxonomy
	products []domain.Product
}

// NewStore builds a store around persisted state. remote may be nil
// for local-only operation.
func NewStore(state *State, remote *RemoteClient, taxonomy domain.Taxonomy) *Store {
	return &Store{state: state, remote: remote, taxonomy: taxonomy}
}

// Load fills the catalog, trying remote first, then the local
// snapshot, then the static seed file. Each failure is demoted to the
// next tier; only all three failing returns an error, with an empty
// catalog in place.
func (s *Store) Load(ctx context.Context, seedPath string) error {
	if s.remote != nil {
		products, err := s.remote.FetchProducts(ctx)
		if err == nil {
			s.products = products
			return s.state.SaveProducts(s.products)
		}
		logger.Logger.Warn().Err(err).Msg("Remote catalog unavailable, falling back to local")
	}

	products, ok, err := s.state.Products()
	if err == nil && ok {
		s.products = products
		return nil
	}

	data, err := os.ReadFile(seedPath)
	if err == nil {
		var seeded []domain.Product
		if jerr := json.Unmarshal(data, &seeded); jerr == nil {
			s.products = seeded
			return s.state.SaveProducts(s.products)
		}
	}

	s.products = []domain.Product{}
	return fmt.Errorf("no catalog source available (remote, snapshot, seed all failed)")
}

// Products returns a copy of the current catalog.
func (s *Store) Products() []domain.Product {
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Taxonomy returns the static taxonomy loaded at startup.
func (s *Store) Taxonomy() domain.Taxonomy {
	return s.taxonomy
}

// Filter applies the current criteria over the catalog.
func (s *Store) Filter(c filter.Criteria) []domain.Product {
	return filter.Apply(s.products, c)
}

// Brands returns the distinct brand facet of the catalog.
func (s *Store) Brands() []string {
	return filter.Brands(s.products)
}

// Find resolves a product by id.
func (s *Store) Find(id string) (*domain.Product, bool) {
	for i := range s.products {
		if s.products[i].ID == id {
			p := s.products[i]
			return &p, true
		}
	}
	return nil, false
}

func mergeMasked(current, incoming domain.Product, mask FieldMask) domain.Product {
	out := current
	if mask.Has("price") {
		out.Price = incoming.Price
	}
	if mask.Has("image") {
		if img := incoming.Image(); img != "" {
			out.Images = []string{img}
		} else {
			out.Images = []string{}
		}
	}
	if mask.Has("description") {
		out.Description = incoming.Description
	}
	return out
}

// Upsert validates and merges one record into the catalog. A new id is
// generated when none is supplied. With Locked set and an existing
// record, only the LockedEditMask fields are applied; unlocked, the
// incoming record replaces the stored one except for the id. The local
// commit always stands; a failed remote mirror is reported as a
// RemoteSyncError alongside the committed record.
func (s *Store) Upsert(ctx context.Context, p domain.Product, opts UpsertOptions) (domain.Product, error) {
	if err := domain.Validate(p); err != nil {
		return domain.Product{}, err
	}

	if p.ID == "" {
		p.ID = domain.NewProductID()
	}

	merged := p
	found := false
	for i := range s.products {
		if s.products[i].ID != p.ID {
			continue
		}
		found = true
		if opts.Locked {
			merged = mergeMasked(s.products[i], p, LockedEditMask)
		} else {
			merged = p
			merged.ID = s.products[i].ID
		}
		s.products[i] = merged
		break
	}
	if !found {
		s.products = append(s.products, merged)
	}

	if err := s.state.SaveProducts(s.products); err != nil {
		return merged, err
	}

	return merged, s.mirror(ctx, "upsert", func() error {
		return s.remote.UpsertProduct(ctx, merged)
	})
}

// Seed bulk-imports records with unlocked full-replace-by-id
// semantics: the result is the union by id, incoming records winning
// wholesale on conflicts. Records are normalized the way the server
// normalizes them; an absent active flag means active.
func (s *Store) Seed(ctx context.Context, incoming []domain.ProductInput) (int, error) {
	now := time.Now()
	for _, in := range incoming {
		np := domain.Normalize(in, now)
		replaced := false
		for i := range s.products {
			if s.products[i].ID == np.ID {
				s.products[i] = np
				replaced = true
				break
			}
		}
		if !replaced {
			s.products = append(s.products, np)
		}
	}

	if err := s.state.SaveProducts(s.products); err != nil {
		return len(incoming), err
	}

	return len(incoming), s.mirror(ctx, "seed", func() error {
		return s.remote.SeedProducts(ctx, s.products)
	})
}

// Delete removes the record from the local catalog outright. The
// remote mirror soft-deletes instead, keeping server-side history; the
// divergence is intentional.
func (s *Store) Delete(ctx context.Context, id string) error {
	kept := s.products[:0]
	for _, p := range s.products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.products = kept

	if err := s.state.SaveProducts(s.products); err != nil {
		return err
	}

	return s.mirror(ctx, "delete", func() error {
		return s.remote.DeleteProduct(ctx, id)
	})
}

// PullRemote replaces the local catalog with the server's public view.
func (s *Store) PullRemote(ctx context.Context) error {
	if s.remote == nil {
		return &domain.RemoteSyncError{Op: "pull", Err: errors.New("no remote configured")}
	}
	products, err := s.remote.FetchProducts(ctx)
	if err != nil {
		return err
	}
	s.products = products
	return s.state.SaveProducts(s.products)
}

// PushAll mirrors the whole local catalog to the server. This is the
// manual retry entry point after a failed best-effort sync.
func (s *Store) PushAll(ctx context.Context) error {
	if s.remote == nil {
		return &domain.RemoteSyncError{Op: "push", Err: errors.New("no remote configured")}
	}
	return s.remote.SeedProducts(ctx, s.products)
}

// Export writes the catalog as indented JSON.
func (s *Store) Export(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s.products)
}

// Import replaces the catalog with a JSON array and mirrors it via the
// seed path.
func (s *Store) Import(ctx context.Context, r io.Reader) (int, error) {
	var incoming []domain.ProductInput
	if err := json.NewDecoder(r).Decode(&incoming); err != nil {
		return 0, &domain.ValidationError{Message: "import must be a JSON array of products"}
	}
	s.products = []domain.Product{}
	return s.Seed(ctx, incoming)
}

// SetPIN stores the local admin PIN on first use.
func (s *Store) SetPIN(pin string) error {
	if len(pin) < 4 {
		return &domain.ValidationError{Message: "PIN too short (min 4)"}
	}
	return s.state.SaveAdmin(AdminRecord{PIN: pin})
}

// CheckPIN reports whether pin matches the stored record. An unset
// record matches nothing; callers offer SetPIN in that case.
func (s *Store) CheckPIN(pin string) (bool, error) {
	rec, err := s.state.Admin()
	if err != nil {
		return false, err
	}
	return rec.PIN != "" && rec.PIN == pin, nil
}

// mirror runs the remote leg of a committed local mutation. No remote
// configured means nothing to do; failures come back as
// RemoteSyncError for the caller to report, local state untouched.
func (s *Store) mirror(ctx context.Context, op string, call func() error) error {
	if s.remote == nil {
		return nil
	}
	if err := call(); err != nil {
		logger.Logger.Warn().Err(err).Str("op", op).Msg("Remote mirror failed, local change kept")
		var rerr *domain.RemoteSyncError
		if errors.As(err, &rerr) {
			return err
		}
		return &domain.RemoteSyncError{Op: op, Err: err}
	}
	return nil
}
