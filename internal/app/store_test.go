package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"langpedia/internal/domain"
)

func TestPreferencesRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newMapStore()
	prefs := NewPreferences(store, nil)

	assert.Nil(t, prefs.Favorites(ctx))
	assert.Equal(t, domain.ThemeLight, prefs.Theme(ctx))
	assert.Empty(t, prefs.LastVisited(ctx))

	prefs.SaveFavorites(ctx, []string{"python", "go"})
	raw, _ := store.value(KeyFavorites)
	assert.JSONEq(t, `["python","go"]`, raw)
	assert.Equal(t, []string{"python", "go"}, prefs.Favorites(ctx))

	prefs.SaveFavorites(ctx, nil)
	raw, _ = store.value(KeyFavorites)
	assert.Equal(t, "[]", raw)

	prefs.SetTheme(ctx, domain.ThemeDark)
	assert.Equal(t, domain.ThemeDark, prefs.Theme(ctx))

	prefs.SetLastVisited(ctx, "rust")
	assert.Equal(t, "rust", prefs.LastVisited(ctx))
	prefs.ClearLastVisited(ctx)
	_, ok := store.value(KeyLastVisited)
	assert.False(t, ok)
}

func TestPreferencesMalformedFavorites(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	store := newMapStore()
	store.values[KeyFavorites] = "{not json"

	prefs := NewPreferences(store, zap.New(core))
	assert.Nil(t, prefs.Favorites(context.Background()))
	require.Equal(t, 1, logs.FilterMessage("malformed favorites, starting empty").Len())
}

func TestPreferencesStoreFailuresDegrade(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zapcore.WarnLevel)
	store := newMapStore()
	store.values[KeyTheme] = "dark"
	store.failGet = true
	store.failSet = true

	prefs := NewPreferences(store, zap.New(core))
	assert.Equal(t, domain.ThemeLight, prefs.Theme(ctx))
	prefs.SetLastVisited(ctx, "go")
	prefs.ClearLastVisited(ctx)

	assert.Equal(t, 3, logs.Len())
}
