package memory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"langpedia/internal/domain"
)

func TestCatalogRepositoryCaches(t *testing.T) {
	loader := &countingLoader{
		CatalogLoader: NewStaticCatalogLoader(sampleItems()),
	}
	repo := NewCatalogRepository(loader, time.Minute)

	if _, err := repo.GetCatalog(context.Background()); err != nil {
		t.Fatalf("get catalog: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	if _, err := repo.GetCatalog(context.Background()); err != nil {
		t.Fatalf("get catalog 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
}

func TestCatalogRepositoryExpires(t *testing.T) {
	loader := &countingLoader{
		CatalogLoader: NewStaticCatalogLoader(sampleItems()),
	}
	repo := NewCatalogRepository(loader, time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.clock = func() time.Time { return now }

	_, _ = repo.GetCatalog(context.Background())
	now = now.Add(30 * time.Second)
	_, _ = repo.GetCatalog(context.Background())
	if loader.calls != 1 {
		t.Fatalf("expected cache hit inside ttl, loader calls %d", loader.calls)
	}

	// past ttl plus the maximum jitter
	now = now.Add(2 * time.Minute)
	_, _ = repo.GetCatalog(context.Background())
	if loader.calls != 2 {
		t.Fatalf("expected reload after ttl, loader calls %d", loader.calls)
	}
}

func TestCatalogRepositoryDoesNotCacheErrors(t *testing.T) {
	loader := &failingLoader{err: errors.New("boom")}
	repo := NewCatalogRepository(loader, time.Minute)

	if _, err := repo.GetCatalog(context.Background()); err == nil {
		t.Fatalf("expected loader error")
	}
	loader.err = nil
	c, err := repo.GetCatalog(context.Background())
	if err != nil {
		t.Fatalf("expected recovery, got %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", c.Len())
	}
}

func TestDefaultCatalogLoaderServesBundledData(t *testing.T) {
	items, err := NewDefaultCatalogLoader().LoadCatalog(context.Background())
	if err != nil {
		t.Fatalf("load default: %v", err)
	}
	if len(items) == 0 {
		t.Fatalf("expected bundled languages")
	}
	items[0].Name = "changed"
	again, _ := NewDefaultCatalogLoader().LoadCatalog(context.Background())
	if again[0].Name == "changed" {
		t.Fatalf("loader must hand out copies")
	}
}

func TestFileCatalogLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data := []byte("languages:\n  - id: go\n    name: Go\n    type: compiled\n    usage: cloud\n    traits: simple\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	items, err := NewFileCatalogLoader(path).LoadCatalog(context.Background())
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if len(items) != 1 || items[0].ID != "go" {
		t.Fatalf("unexpected items %+v", items)
	}

	if _, err := NewFileCatalogLoader(filepath.Join(t.TempDir(), "missing.yaml")).LoadCatalog(context.Background()); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

type countingLoader struct {
	CatalogLoader
	calls int
}

func (l *countingLoader) LoadCatalog(ctx context.Context) ([]domain.CatalogItem, error) {
	l.calls++
	return l.CatalogLoader.LoadCatalog(ctx)
}

type failingLoader struct {
	err error
}

func (l *failingLoader) LoadCatalog(context.Context) ([]domain.CatalogItem, error) {
	if l.err != nil {
		return nil, l.err
	}
	return sampleItems(), nil
}

func sampleItems() []domain.CatalogItem {
	return []domain.CatalogItem{
		{ID: "go", Name: "Go", Type: "compiled", Usage: "cloud, cli", Traits: "concurrent, simple"},
		{ID: "python", Name: "Python", Type: "interpreted", Usage: "data science, web", Traits: "readable"},
	}
}
