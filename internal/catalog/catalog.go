// Package catalog is the read-only list of things the firm sells.
package catalog

import (
	"errors"
	"sort"
	"strings"
)

type Type string

const (
	TypeEbook       Type = "ebook"
	TypeCourse      Type = "course"
	TypeMasterclass Type = "masterclass"
	TypeProduct     Type = "product"
	TypeService     Type = "service"
)

// Quantifiable reports whether more than one unit of the type can be bought.
// Courses and ebooks are single-seat licences.
func Quantifiable(t Type) bool {
	return t != TypeCourse && t != TypeEbook
}

var ErrItemNotFound = errors.New("catalog item not found")

type Item struct {
	ID            string  `json:"id"`
	Type          Type    `json:"type"`
	Title         string  `json:"title"`
	Category      string  `json:"category"`
	Image         string  `json:"image"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"originalPrice,omitempty"`
	Description   string  `json:"description,omitempty"`
}

type Filter struct {
	Type     Type
	Category string
	MinPrice float64
	MaxPrice float64 // 0 means unbounded
	Query    string  // case-insensitive match on title or description
}

type Catalog struct {
	items []Item
	index map[string]int
}

func New(items []Item) *Catalog {
	c := &Catalog{items: items, index: make(map[string]int, len(items))}
	for i, it := range items {
		c.index[key(it.ID, it.Type)] = i
	}
	return c
}

// Default returns the catalog seeded with the site's fixtures.
func Default() *Catalog { return New(fixtures()) }

func (c *Catalog) All() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Catalog) Get(id string, t Type) (Item, error) {
	i, ok := c.index[key(id, t)]
	if !ok {
		return Item{}, ErrItemNotFound
	}
	return c.items[i], nil
}

func (c *Catalog) Find(f Filter) []Item {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]Item, 0, len(c.items))
	for _, it := range c.items {
		if f.Type != "" && it.Type != f.Type {
			continue
		}
		if f.Category != "" && !strings.EqualFold(it.Category, f.Category) {
			continue
		}
		if it.Price < f.MinPrice {
			continue
		}
		if f.MaxPrice > 0 && it.Price > f.MaxPrice {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(it.Title), q) &&
			!strings.Contains(strings.ToLower(it.Description), q) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// Categories lists the distinct categories, sorted.
func (c *Catalog) Categories() []string {
	seen := map[string]bool{}
	var out []string
	for _, it := range c.items {
		if !seen[it.Category] {
			seen[it.Category] = true
			out = append(out, it.Category)
		}
	}
	sort.Strings(out)
	return out
}

func key(id string, t Type) string { return string(t) + "/" + id }
