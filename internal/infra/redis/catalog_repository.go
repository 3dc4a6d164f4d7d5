package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
	"langpedia/internal/catalog"
	"langpedia/internal/domain"
)

// CatalogLoader fetches catalog items from a backing store (file, Postgres, embedded data).
type CatalogLoader interface {
	LoadCatalog(ctx context.Context) ([]domain.CatalogItem, error)
}

// CatalogRepository caches the catalog in Redis as one JSON document and falls back to a
// loader on cache miss. Every instance behind the same Redis shares the cached copy:
//
//	SET langpedia:catalog <json items> EX <ttl>
type CatalogRepository struct {
	client *redis.Client
	loader CatalogLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

const catalogKey = "langpedia:catalog"

func NewCatalogRepository(client *redis.Client, loader CatalogLoader, ttl time.Duration) *CatalogRepository {
	return &CatalogRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *CatalogRepository) GetCatalog(ctx context.Context) (*catalog.Catalog, error) {
	if c, ok := r.cached(ctx); ok {
		return c, nil
	}

	result, err, _ := r.sf.Do(catalogKey, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if c, ok := r.cached(ctx); ok {
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

		if data, err := json.Marshal(c.Items()); err == nil {
			_ = r.client.Set(ctx, catalogKey, data, r.ttlWithJitter()).Err()
		}
		return c, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*catalog.Catalog), nil
}

// Invalidate drops the cached copy so the next read reloads from the loader.
func (r *CatalogRepository) Invalidate(ctx context.Context) error {
	return r.client.Del(ctx, catalogKey).Err()
}

func (r *CatalogRepository) cached(ctx context.Context) (*catalog.Catalog, bool) {
	data, err := r.client.Get(ctx, catalogKey).Bytes()
	if err != nil {
		return nil, false
	}
	var items []domain.CatalogItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, false
	}
	c, err := catalog.New(items)
	if err != nil {
		return nil, false
	}
	return c, true
}

func (r *CatalogRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
