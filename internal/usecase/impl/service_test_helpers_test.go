package impl

import (
	"io"
	"log/slog"
	"testing"

	"taskboard/config"
	"taskboard/internal/infra/auth"
	"taskboard/internal/infra/persistence/sqlite"
	"taskboard/internal/usecase"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testConfig() *config.Config {
	cfg := &config.Config{Auth: &config.AuthConfig{BcryptCost: 4}}
	cfg.Database.Path = ":memory:"
	cfg.SecretKey.Signing = "test_signing_secret_key_very_long_for_testing"

	return cfg
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestDB(t *testing.T, cfg *config.Config) *gorm.DB {
	t.Helper()

	db, err := sqlite.Open(cfg)
	require.NoError(t, err)

	return db
}

func newTestAccountService(t *testing.T) (usecase.AccountUsecase, *gorm.DB) {
	t.Helper()

	cfg := testConfig()
	db := newTestDB(t, cfg)

	tokenSvc, err := auth.NewJWTService(cfg, sqlite.NewRevocationRepository(db))
	require.NoError(t, err)

	svc := NewAccountService(AccountServiceParams{
		TxManager:    sqlite.NewTransactionManager(db),
		UserRepo:     sqlite.NewUserRepository(db),
		Hasher:       auth.NewBcryptHasher(cfg),
		TokenService: tokenSvc,
		Logger:       testLogger(),
	})

	return svc, db
}

func newTestTaskService(t *testing.T) usecase.TaskUsecase {
	t.Helper()

	cfg := testConfig()
	db := newTestDB(t, cfg)

	return NewTaskService(TaskServiceParams{
		TaskRepo: sqlite.NewTaskRepository(db),
		Logger:   testLogger(),
	})
}
