// Package cart keeps the session's selected items and their totals.
package cart

import (
	"context"
	"sync"

	"github.com/ariefcatur/lawfirm-shop/internal/catalog"
	"github.com/ariefcatur/lawfirm-shop/internal/storage"
	"github.com/shopspring/decimal"
)

type Item struct {
	ID       string       `json:"id"`
	Type     catalog.Type `json:"type"`
	Title    string       `json:"title"`
	Category string       `json:"category"`
	Image    string       `json:"image"`
	Price    float64      `json:"price"`
	Quantity int          `json:"quantity"`
}

// FromCatalog copies the billing attributes of a catalog item.
func FromCatalog(ci catalog.Item) Item {
	return Item{
		ID:       ci.ID,
		Type:     ci.Type,
		Title:    ci.Title,
		Category: ci.Category,
		Image:    ci.Image,
		Price:    ci.Price,
		Quantity: 1,
	}
}

// EffectiveQuantity is the quantity used for totals: always 1 for
// non-quantifiable types.
func (it Item) EffectiveQuantity() int {
	if !catalog.Quantifiable(it.Type) || it.Quantity < 1 {
		return 1
	}
	return it.Quantity
}

func (it Item) Subtotal() decimal.Decimal {
	return decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.EffectiveQuantity())))
}

// Cart is bound to one session bucket. Every mutation rewrites the "cart" key.
type Cart struct {
	mu     sync.Mutex
	bucket storage.Bucket
	items  []Item
}

// Open rehydrates the cart. Missing or unreadable data yields an empty cart;
// only backend failures are returned.
func Open(ctx context.Context, b storage.Bucket) (*Cart, error) {
	c := &Cart{bucket: b}
	var items []Item
	ok, err := storage.LoadJSON(ctx, b, storage.KeyCart, &items)
	if err != nil {
		return nil, err
	}
	if ok {
		c.items = items
	}
	return c, nil
}

func (c *Cart) Add(ctx context.Context, item Item) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.find(item.ID, item.Type); i >= 0 {
		if catalog.Quantifiable(item.Type) {
			c.items[i].Quantity++
		}
	} else {
		item.Quantity = 1
		c.items = append(c.items, item)
	}
	return c.persist(ctx)
}

// UpdateQuantity sets the quantity of an entry; n <= 0 removes it.
// Non-quantifiable entries stay at 1. Unknown entries are ignored.
func (c *Cart) UpdateQuantity(ctx context.Context, id string, t catalog.Type, n int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.find(id, t)
	if i < 0 {
		return nil
	}
	switch {
	case n <= 0:
		c.items = append(c.items[:i], c.items[i+1:]...)
	case !catalog.Quantifiable(t):
		c.items[i].Quantity = 1
	default:
		c.items[i].Quantity = n
	}
	return c.persist(ctx)
}

func (c *Cart) Remove(ctx context.Context, id string, t catalog.Type) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.find(id, t)
	if i < 0 {
		return nil
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	return c.persist(ctx)
}

func (c *Cart) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	return c.persist(ctx)
}

func (c *Cart) Contains(id string, t catalog.Type) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.find(id, t) >= 0
}

// Items returns a copy in insertion order, never nil.
func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Total() float64 {
	return Total(c.Items())
}

func (c *Cart) ItemCount() int {
	return ItemCount(c.Items())
}

// Total sums price × effective quantity.
func Total(items []Item) float64 {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Subtotal())
	}
	return sum.InexactFloat64()
}

func ItemCount(items []Item) int {
	n := 0
	for _, it := range items {
		n += it.EffectiveQuantity()
	}
	return n
}

// Without returns items minus what was ordered: a matching entry loses the
// ordered quantity and is dropped when none is left. Never nil.
func Without(items, ordered []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		for _, o := range ordered {
			if o.ID == it.ID && o.Type == it.Type {
				it.Quantity = it.EffectiveQuantity() - o.EffectiveQuantity()
				break
			}
		}
		if it.Quantity > 0 {
			out = append(out, it)
		}
	}
	return out
}

func (c *Cart) find(id string, t catalog.Type) int {
	for i, it := range c.items {
		if it.ID == id && it.Type == t {
			return i
		}
	}
	return -1
}

func (c *Cart) persist(ctx context.Context) error {
	items := c.items
	if items == nil {
		items = []Item{}
	}
	return storage.SaveJSON(ctx, c.bucket, storage.KeyCart, items)
}
