package cli

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"langpedia/internal/app"
	"langpedia/internal/config"
	"langpedia/internal/infra/memory"
	pgloader "langpedia/internal/infra/postgres"
	infraredis "langpedia/internal/infra/redis"
	"langpedia/internal/logger"
)

func loadConfig(path string) (config.Config, error) {
	cfg, err := config.LoadOptional(path)
	if err != nil {
		return cfg, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	return cfg, nil
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	return logger.New(cfg.Log.Env, cfg.Log.Level)
}

// catalogLoader picks the catalog source: Postgres when configured, then a file, then the
// bundled data. The returned close function releases the pool, if any.
func catalogLoader(ctx context.Context, cfg config.Config) (memory.CatalogLoader, func(), error) {
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, nil, err
		}
		return pgloader.NewCatalogLoader(pool), pool.Close, nil
	}
	if cfg.Catalog.Path != "" {
		return memory.NewFileCatalogLoader(cfg.Catalog.Path), func() {}, nil
	}
	return memory.NewDefaultCatalogLoader(), func() {}, nil
}

// buildService wires the browser service against Redis when configured, in memory otherwise.
func buildService(ctx context.Context, cfg config.Config, log *zap.Logger) (*app.BrowserService, func(), error) {
	loader, closeLoader, err := catalogLoader(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	catalogTTL := config.Duration(cfg.Catalog.TTL, 10*time.Minute)

	var (
		catalogs app.CatalogRepository
		sessions app.SessionRepository
		stores   app.StoreProvider
	)
	cleanup := closeLoader
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		redisTTL := config.Duration(cfg.Redis.TTL, 30*24*time.Hour)
		catalogs = infraredis.NewCatalogRepository(client, loader, catalogTTL)
		sessions = infraredis.NewSessionStore(client, redisTTL)
		stores = infraredis.NewStoreProvider(client, redisTTL)
		cleanup = func() {
			_ = client.Close()
			closeLoader()
		}
		log.Info("using redis", zap.String("addr", cfg.Redis.Addr))
	} else {
		catalogs = memory.NewCatalogRepository(loader, catalogTTL)
		sessions = memory.NewSessionStore()
		stores = memory.NewStoreProvider()
	}

	service := app.NewBrowserService(sessions, catalogs, stores, app.ServiceOptions{
		Session: app.SessionOptions{
			FeedbackDelay: config.Duration(cfg.Quiz.FeedbackDelay, app.DefaultFeedbackDelay),
			NoticeTTL:     config.Duration(cfg.Notices.Duration, app.DefaultNoticeTTL),
		},
		Logger: log,
	})
	return service, cleanup, nil
}
