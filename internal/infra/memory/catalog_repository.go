package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"langpedia/internal/catalog"
	"langpedia/internal/domain"
)

// CatalogLoader fetches catalog items from a backing store (file, Postgres, embedded data).
type CatalogLoader interface {
	LoadCatalog(ctx context.Context) ([]domain.CatalogItem, error)
}

const catalogKey = "catalog"

// CatalogRepository caches the validated catalog with a TTL to avoid repeated loads.
type CatalogRepository struct {
	loader CatalogLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu        sync.RWMutex
	cached    *catalog.Catalog
	expiresAt time.Time
}

// NewCatalogRepository caches loader results for ttl. A ttl of zero or less caches forever.
func NewCatalogRepository(loader CatalogLoader, ttl time.Duration) *CatalogRepository {
	return &CatalogRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *CatalogRepository) GetCatalog(ctx context.Context) (*catalog.Catalog, error) {
	if c, ok := r.fresh(r.clock()); ok {
		return c, nil
	}

	result, err, _ := r.sf.Do(catalogKey, func() (interface{}, error) {
		now := r.clock()
		if c, ok := r.fresh(now); ok {
			return c, nil
		}

		items, err := r.loader.LoadCatalog(ctx)
		if err != nil {
			return nil, err
		}
		c, err := catalog.New(items)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.cached = c
		r.expiresAt = now.Add(r.ttlWithJitter())
		r.mu.Unlock()
		return c, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*catalog.Catalog), nil
}

func (r *CatalogRepository) fresh(now time.Time) (*catalog.Catalog, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.cached == nil {
		return nil, false
	}
	if r.ttl > 0 && !r.expiresAt.After(now) {
		return nil, false
	}
	return r.cached, true
}

// StaticCatalogLoader serves a fixed item list (bundled data, tests).
type StaticCatalogLoader struct {
	items []domain.CatalogItem
}

func NewStaticCatalogLoader(items []domain.CatalogItem) *StaticCatalogLoader {
	return &StaticCatalogLoader{items: items}
}

// NewDefaultCatalogLoader serves the catalog bundled with the binary.
func NewDefaultCatalogLoader() *StaticCatalogLoader {
	return NewStaticCatalogLoader(catalog.Default().Items())
}

func (l *StaticCatalogLoader) LoadCatalog(_ context.Context) ([]domain.CatalogItem, error) {
	out := make([]domain.CatalogItem, len(l.items))
	copy(out, l.items)
	return out, nil
}

// FileCatalogLoader reads a YAML or JSON catalog from disk on every load.
type FileCatalogLoader struct {
	path string
}

func NewFileCatalogLoader(path string) *FileCatalogLoader {
	return &FileCatalogLoader{path: path}
}

func (l *FileCatalogLoader) LoadCatalog(_ context.Context) ([]domain.CatalogItem, error) {
	c, err := catalog.ParseFile(l.path)
	if err != nil {
		return nil, err
	}
	return c.Items(), nil
}

func (r *CatalogRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
