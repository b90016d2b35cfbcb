// Package sqlite contains the concrete implementation of the persistence layer using GORM and SQLite.
package sqlite

import (
	"context"
	"log/slog"

	"taskboard/config"
	"taskboard/internal/domain/lifecycle"
	"taskboard/internal/errors"
	"taskboard/internal/infra/persistence/model"

	"go.uber.org/fx"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New creates the SQLite-backed GORM client and registers lifecycle hooks.
func New(params Params) (*gorm.DB, error) {
	db, err := Open(params.Config)
	if err != nil {
		return nil, err
	}

	db = db.Session(&gorm.Session{
		Logger: newGormSlogLogger(params.Logger, params.Config),
	})

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get SQLite sql.DB")
	}

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "failed to ping SQLite")
			}

			return nil
		},
		OnStop: func(_ context.Context) error {
			return sqlDB.Close()
		},
	})

	return db, nil
}

// Open connects to the configured database file and migrates the schema.
// Split out from New so tests can run against a throwaway database without fx.
func Open(cfg *config.Config) (*gorm.DB, error) {
	path := cfg.Database.Path
	if path == "" {
		path = "taskboard.db"
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		// Surface driver constraint violations as gorm.ErrDuplicatedKey and
		// friends so repositories can map them to domain errors.
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open SQLite database")
	}

	if err := db.AutoMigrate(
		&model.UserModel{},
		&model.TaskModel{},
		&model.RevokedTokenModel{},
	); err != nil {
		return nil, errors.Wrap(err, "failed to migrate database schema")
	}

	return db, nil
}
