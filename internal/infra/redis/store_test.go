package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"langpedia/internal/app"
)

func TestStoreRoundTripsValuesPerClient(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	provider := NewStoreProvider(newClient(mr), time.Hour)
	ctx := context.Background()
	alice := provider.StoreFor("alice")
	bob := provider.StoreFor("bob")

	if _, ok, err := alice.Get(ctx, app.KeyTheme); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}
	if err := alice.Set(ctx, app.KeyTheme, "dark"); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := alice.Get(ctx, app.KeyTheme)
	if err != nil || !ok || v != "dark" {
		t.Fatalf("expected dark, got %q ok=%v err=%v", v, ok, err)
	}
	if _, ok, _ := bob.Get(ctx, app.KeyTheme); ok {
		t.Fatalf("stores must be scoped per client")
	}

	if got := mr.HGet("langpedia:client:alice:storage", app.KeyTheme); got != "dark" {
		t.Fatalf("expected hash field to be written, got %q", got)
	}
	if ttl := mr.TTL("langpedia:client:alice:storage"); ttl != time.Hour {
		t.Fatalf("expected ttl refresh to 1h, got %v", ttl)
	}

	if err := alice.Delete(ctx, app.KeyTheme); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := alice.Get(ctx, app.KeyTheme); ok {
		t.Fatalf("expected key to be deleted")
	}
}

func TestStorePersistsPreferencesAcrossProviders(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	first := app.NewPreferences(NewStoreProvider(newClient(mr), 0).StoreFor("c1"), nil)
	first.SaveFavorites(ctx, []string{"go", "rust"})

	second := app.NewPreferences(NewStoreProvider(newClient(mr), 0).StoreFor("c1"), nil)
	got := second.Favorites(ctx)
	if len(got) != 2 || got[0] != "go" || got[1] != "rust" {
		t.Fatalf("expected favorites to survive, got %v", got)
	}
}
