package shop

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/belledame/storefront/internal/catalog/domain"
)

// RemoteClient talks to the catalog API. Mutating calls carry the
// shared admin PIN; every failure is wrapped as a RemoteSyncError so
// callers can treat it as a best-effort mirror outcome.
type RemoteClient struct {
	base string
	pin  string
	http *http.Client
}

func NewRemoteClient(base, pin string) *RemoteClient {
	return &RemoteClient{
		base: strings.TrimRight(base, "/"),
		pin:  pin,
		http: &http.Client{Timeout: 15 * time.Second},
	}
}

// FetchProducts reads the public (active, sorted) catalog.
func (c *RemoteClient) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/api/products", nil)
	if err != nil {
		return nil, &domain.RemoteSyncError{Op: "fetch", Err: err}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &domain.RemoteSyncError{Op: "fetch", Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &domain.RemoteSyncError{Op: "fetch", Err: statusError(resp.StatusCode)}
	}
	var products []domain.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, &domain.RemoteSyncError{Op: "fetch", Err: err}
	}
	return products, nil
}

// UpsertProduct mirrors a single record to the server.
func (c *RemoteClient) UpsertProduct(ctx context.Context, p domain.Product) error {
	return c.admin(ctx, "upsert", http.MethodPost, "/api/admin/products", p)
}

// SeedProducts mirrors the whole catalog to the server in one bulk
// upsert.
func (c *RemoteClient) SeedProducts(ctx context.Context, products []domain.Product) error {
	body := map[string]interface{}{"products": products}
	return c.admin(ctx, "seed", http.MethodPost, "/api/admin/seed", body)
}

// DeleteProduct asks the server to soft-delete the record. The server
// keeps the row with active=false while the local catalog drops it.
func (c *RemoteClient) DeleteProduct(ctx context.Context, id string) error {
	return c.admin(ctx, "delete", http.MethodDelete, "/api/admin/products/"+id, nil)
}

func (c *RemoteClient) admin(ctx context.Context, op, method, path string, body interface{}) error {
	var buf *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &domain.RemoteSyncError{Op: op, Err: err}
		}
		buf = bytes.NewBuffer(data)
	} else {
		buf = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, buf)
	if err != nil {
		return &domain.RemoteSyncError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-admin-pin", c.pin)

	resp, err := c.http.Do(req)
	if err != nil {
		return &domain.RemoteSyncError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return &domain.RemoteSyncError{Op: op, Err: domain.ErrUnauthorized}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &domain.RemoteSyncError{Op: op, Err: statusError(resp.StatusCode)}
	}
	return nil
}

func statusError(code int) error {
	return fmt.Errorf("server returned %d", code)
}
