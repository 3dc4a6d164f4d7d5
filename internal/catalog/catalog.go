package catalog

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"langpedia/internal/domain"
)

// Catalog is the immutable, validated set of languages. All accessors return copies.
type Catalog struct {
	items []domain.CatalogItem
	byID  map[string]int
}

// New validates items and builds a Catalog. Ids and names must be unique and non-empty;
// quiz answers are matched by name, so a duplicate name would yield two correct choices.
func New(items []domain.CatalogItem) (*Catalog, error) {
	c := &Catalog{
		items: make([]domain.CatalogItem, 0, len(items)),
		byID:  make(map[string]int, len(items)),
	}
	names := make(map[string]string, len(items))
	for i, item := range items {
		item.ID = strings.TrimSpace(item.ID)
		item.Name = strings.TrimSpace(item.Name)
		if item.ID == "" {
			return nil, fmt.Errorf("item %d: %w", i, domain.ErrEmptyID)
		}
		if item.Name == "" {
			return nil, fmt.Errorf("item %q: %w", item.ID, domain.ErrEmptyName)
		}
		if _, ok := c.byID[item.ID]; ok {
			return nil, fmt.Errorf("item %q: %w", item.ID, domain.ErrDuplicateID)
		}
		if other, ok := names[item.Name]; ok {
			return nil, fmt.Errorf("items %q and %q share name %q: %w", other, item.ID, item.Name, domain.ErrDuplicateName)
		}
		names[item.Name] = item.ID
		item.Color = resolveColor(item)
		c.byID[item.ID] = len(c.items)
		c.items = append(c.items, item)
	}
	return c, nil
}

// MustNew is New for static data known to be valid.
func MustNew(items []domain.CatalogItem) *Catalog {
	c, err := New(items)
	if err != nil {
		panic(err)
	}
	return c
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Items returns the items in catalog order.
func (c *Catalog) Items() []domain.CatalogItem {
	out := make([]domain.CatalogItem, len(c.items))
	copy(out, c.items)
	return out
}

// Get looks up an item by id.
func (c *Catalog) Get(id string) (domain.CatalogItem, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return domain.CatalogItem{}, false
	}
	return c.items[idx], true
}

// Has reports whether id names a catalog item.
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Filter returns the items whose id is in ids, in catalog order.
func (c *Catalog) Filter(ids []string) []domain.CatalogItem {
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	out := make([]domain.CatalogItem, 0, len(ids))
	for _, item := range c.items {
		if _, ok := want[item.ID]; ok {
			out = append(out, item)
		}
	}
	return out
}

// Search returns the items whose name contains query, ignoring case.
// An empty query yields no hits.
func (c *Catalog) Search(query string) []domain.SearchHit {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	fold := cases.Fold()
	needle := fold.String(query)
	var hits []domain.SearchHit
	for _, item := range c.items {
		if strings.Contains(fold.String(item.Name), needle) {
			hits = append(hits, domain.SearchHit{ID: item.ID, Name: item.Name})
		}
	}
	return hits
}

// Position returns the catalog index of id, or Len() for unknown ids.
func (c *Catalog) Position(id string) int {
	if idx, ok := c.byID[id]; ok {
		return idx
	}
	return len(c.items)
}
