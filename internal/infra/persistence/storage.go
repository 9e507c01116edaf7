// Package persistence selects the storage engine and ties its lifecycle to fx.
package persistence

import (
	"context"
	"log/slog"

	"hbnb/config"
	"hbnb/internal/domain/lifecycle"
	"hbnb/internal/domain/repository"
	"hbnb/internal/infra/persistence/filestore"
	"hbnb/internal/infra/persistence/postgres"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// Params holds dependencies for the storage engine, injected by Fx
type Params struct {
	fx.In
	fx.Lifecycle

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// New builds the engine named by storage.type. The engine is reloaded from
// its durable medium when the application starts; a reload failure (an
// unreadable document or an unknown record class) aborts startup.
func New(params Params) (repository.Storage, error) {
	cfg := params.Config.Storage
	logger := params.Logger.With(slog.String("storage", cfg.Type))

	var (
		store   repository.Storage
		release func() error
	)
	switch cfg.Type {
	case config.StorageTypeFile:
		medium, err := newMedium(params.Ctx, params.Config)
		if err != nil {
			return nil, err
		}
		store, release = filestore.New(medium, logger), medium.Close

	case config.StorageTypeDB:
		db, err := postgres.New(postgres.Params{
			Lifecycle: params.Lifecycle,
			Config:    params.Config,
			Logger:    logger,
		})
		if err != nil {
			return nil, err
		}
		store = postgres.NewDBStorage(db, logger)

	default:
		return nil, errors.Errorf("unknown storage type: %s", cfg.Type)
	}

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.ReloadTimeout)
			defer cancel()

			if err := store.Reload(ctx); err != nil {
				return errors.Wrap(err, "failed to reload storage")
			}
			logger.Info("Storage reloaded")

			return nil
		},
		OnStop: func(_ context.Context) error {
			if release == nil {
				return nil
			}

			return release()
		},
	})

	return store, nil
}

func newMedium(ctx context.Context, cfg *config.Config) (filestore.Medium, error) {
	file := cfg.Storage.File

	switch file.Medium {
	case config.MediumRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		return filestore.NewRedisMedium(client, file.Key), nil

	case config.MediumBlob:
		medium, err := filestore.OpenBlobMedium(ctx, file.URL, file.Key)
		if err != nil {
			return nil, err
		}

		return medium, nil

	default:
		return nil, errors.Errorf("unknown storage medium: %s", file.Medium)
	}
}

// Module provides the storage FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(New),
)
