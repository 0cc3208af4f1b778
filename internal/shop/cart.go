package shop

import "github.com/belledame/storefront/internal/catalog/domain"

// CartEntry maps a product id to a quantity. Qty is always >= 1; an
// entry that would drop to zero must be removed instead.
type CartEntry struct {
	ID  string `json:"id"`
	Qty int    `json:"qty"`
}

// Cart is the persisted cart state, keyed by product id.
type Cart map[string]CartEntry

// CartLine is a cart entry resolved against the catalog for rendering
// and totals.
type CartLine struct {
	Product   domain.Product
	Qty       int
	LineTotal int
}

// CartStore owns the cart and writes it back to local state after
// every mutation.
type CartStore struct {
	state *State
	items Cart
}

func NewCartStore(state *State) (*CartStore, error) {
	items, err := state.Cart()
	if err != nil {
		return nil, err
	}
	return &CartStore{state: state, items: items}, nil
}

// Add creates an entry with qty 1, or bumps an existing one.
func (c *CartStore) Add(id string) error {
	e, ok := c.items[id]
	if !ok {
		e = CartEntry{ID: id}
	}
	e.Qty++
	c.items[id] = e
	return c.state.SaveCart(c.items)
}

// Increment bumps the quantity of an existing entry. Unknown ids are
// ignored.
func (c *CartStore) Increment(id string) error {
	e, ok := c.items[id]
	if !ok {
		return nil
	}
	e.Qty++
	c.items[id] = e
	return c.state.SaveCart(c.items)
}

// Decrement lowers the quantity, never below 1. Removing the last unit
// requires an explicit Remove.
func (c *CartStore) Decrement(id string) error {
	e, ok := c.items[id]
	if !ok {
		return nil
	}
	if e.Qty > 1 {
		e.Qty--
	}
	c.items[id] = e
	return c.state.SaveCart(c.items)
}

// Remove deletes the entry.
func (c *CartStore) Remove(id string) error {
	delete(c.items, id)
	return c.state.SaveCart(c.items)
}

// Clear empties the cart wholesale.
func (c *CartStore) Clear() error {
	c.items = Cart{}
	return c.state.SaveCart(c.items)
}

// Count returns the total number of units across entries, for the cart
// badge.
func (c *CartStore) Count() int {
	n := 0
	for _, e := range c.items {
		n += e.Qty
	}
	return n
}

// Entries returns a copy of the raw cart state.
func (c *CartStore) Entries() Cart {
	out := make(Cart, len(c.items))
	for k, v := range c.items {
		out[k] = v
	}
	return out
}

// Lines resolves entries against the catalog. Entries whose product no
// longer exists are skipped, not treated as an error: the cart holds a
// weak reference by id only.
func (c *CartStore) Lines(catalog []domain.Product) []CartLine {
	byID := make(map[string]domain.Product, len(catalog))
	for _, p := range catalog {
		byID[p.ID] = p
	}
	lines := make([]CartLine, 0, len(c.items))
	for _, e := range c.items {
		p, ok := byID[e.ID]
		if !ok {
			continue
		}
		lines = append(lines, CartLine{Product: p, Qty: e.Qty, LineTotal: p.Price * e.Qty})
	}
	return lines
}

// Total sums the line totals. Single currency assumed; there are no
// taxes, discounts or conversions.
func (c *CartStore) Total(catalog []domain.Product) int {
	total := 0
	for _, line := range c.Lines(catalog) {
		total += line.LineTotal
	}
	return total
}
