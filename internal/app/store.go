package app

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
	"langpedia/internal/domain"
)

// Store is the per-client key-value storage the browser core persists preferences in.
// Implementations live in infra (memory, redis).
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// StoreProvider hands out the Store scoped to one client.
type StoreProvider interface {
	StoreFor(clientID string) Store
}

// Persisted keys.
const (
	KeyFavorites   = "favoriteLanguages"
	KeyLastVisited = "lastVisitedLanguage"
	KeyTheme       = "theme"
)

// Preferences wraps a Store with typed accessors. Read failures and malformed values fall
// back to defaults; write failures are logged and swallowed so a flaky store never blocks
// navigation.
type Preferences struct {
	store  Store
	logger *zap.Logger
}

func NewPreferences(store Store, logger *zap.Logger) Preferences {
	if logger == nil {
		logger = zap.NewNop()
	}
	return Preferences{store: store, logger: logger}
}

func (p Preferences) Favorites(ctx context.Context) []string {
	raw, ok := p.get(ctx, KeyFavorites)
	if !ok {
		return nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		p.logger.Warn("malformed favorites, starting empty", zap.Error(err))
		return nil
	}
	return ids
}

func (p Preferences) SaveFavorites(ctx context.Context, ids []string) {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		p.logger.Error("encode favorites", zap.Error(err))
		return
	}
	p.set(ctx, KeyFavorites, string(data))
}

func (p Preferences) LastVisited(ctx context.Context) string {
	id, _ := p.get(ctx, KeyLastVisited)
	return id
}

func (p Preferences) SetLastVisited(ctx context.Context, id string) {
	p.set(ctx, KeyLastVisited, id)
}

func (p Preferences) ClearLastVisited(ctx context.Context) {
	if err := p.store.Delete(ctx, KeyLastVisited); err != nil {
		p.logger.Warn("clear last visited", zap.Error(err))
	}
}

// Theme returns the stored theme, light unless dark was saved.
func (p Preferences) Theme(ctx context.Context) domain.Theme {
	raw, _ := p.get(ctx, KeyTheme)
	if domain.Theme(raw) == domain.ThemeDark {
		return domain.ThemeDark
	}
	return domain.ThemeLight
}

func (p Preferences) SetTheme(ctx context.Context, theme domain.Theme) {
	p.set(ctx, KeyTheme, string(theme))
}

func (p Preferences) get(ctx context.Context, key string) (string, bool) {
	value, ok, err := p.store.Get(ctx, key)
	if err != nil {
		p.logger.Warn("store read failed, using default", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return value, ok
}

func (p Preferences) set(ctx context.Context, key, value string) {
	if err := p.store.Set(ctx, key, value); err != nil {
		p.logger.Warn("store write failed", zap.String("key", key), zap.Error(err))
	}
}
