package app

import (
	"sort"

	"langpedia/internal/domain"
)

// MaxCompared is the capacity of the comparison selection.
const MaxCompared = 3

// Favorites is the set of favorite language ids. IDs are reported in catalog order so that
// toggling an id twice always restores the exact previous list.
type Favorites struct {
	ids  map[string]struct{}
	rank func(string) int
}

func NewFavorites(ids []string, rank func(string) int) *Favorites {
	f := &Favorites{ids: make(map[string]struct{}, len(ids)), rank: rank}
	for _, id := range ids {
		f.ids[id] = struct{}{}
	}
	return f
}

// Toggle adds id if absent and removes it otherwise. It reports whether id is now a favorite.
func (f *Favorites) Toggle(id string) bool {
	if _, ok := f.ids[id]; ok {
		delete(f.ids, id)
		return false
	}
	f.ids[id] = struct{}{}
	return true
}

func (f *Favorites) Has(id string) bool {
	_, ok := f.ids[id]
	return ok
}

func (f *Favorites) IDs() []string {
	return ordered(f.ids, f.rank)
}

// Comparison is the session-only selection of up to MaxCompared languages.
type Comparison struct {
	ids  map[string]struct{}
	rank func(string) int
}

func NewComparison(rank func(string) int) *Comparison {
	return &Comparison{ids: make(map[string]struct{}, MaxCompared), rank: rank}
}

// Toggle removes id when selected, otherwise adds it. Adding beyond capacity fails with
// domain.ErrComparisonFull and leaves the selection untouched.
func (c *Comparison) Toggle(id string) (bool, error) {
	if _, ok := c.ids[id]; ok {
		delete(c.ids, id)
		return false, nil
	}
	if len(c.ids) >= MaxCompared {
		return false, domain.ErrComparisonFull
	}
	c.ids[id] = struct{}{}
	return true, nil
}

func (c *Comparison) Has(id string) bool {
	_, ok := c.ids[id]
	return ok
}

func (c *Comparison) Len() int {
	return len(c.ids)
}

func (c *Comparison) Clear() {
	clear(c.ids)
}

func (c *Comparison) IDs() []string {
	return ordered(c.ids, c.rank)
}

func ordered(set map[string]struct{}, rank func(string) int) []string {
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool {
		ri, rj := rank(out[i]), rank(out[j])
		if ri != rj {
			return ri < rj
		}
		return out[i] < out[j]
	})
	return out
}
