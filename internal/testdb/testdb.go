//go:build integration

// Package testdb connects integration tests to a migrated Postgres.
package testdb

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/config"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/db"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/repository"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/repository/postgresql"
)

const tables = "storage_items, reservation_history, outbox_tasks, reservations, customers, stores, staff_users"

type TDB struct {
	DB *db.Database
}

// NewFromEnv connects to TEST_DB_* (falling back to a local "test" database)
// and applies migrations.
func NewFromEnv(t *testing.T) *TDB {
	t.Helper()

	cfg := config.DB{
		Host:     envOr("TEST_DB_HOST", "localhost"),
		Port:     5432,
		User:     envOr("TEST_DB_USER", "postgres"),
		Password: envOr("TEST_DB_PASSWORD", "postgres"),
		Name:     envOr("TEST_DB_NAME", "test"),
		SSLMode:  "disable",
		MaxConns: 20,
	}
	require.NoError(t, db.Migrate(cfg.DSN()))

	database, err := db.NewDb(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(database.Close)

	tdb := &TDB{DB: database}
	tdb.SetUp(t)
	t.Cleanup(func() { tdb.TearDown(t) })
	return tdb
}

func (tdb *TDB) SetUp(t *testing.T) {
	t.Helper()
	_, err := tdb.DB.Exec(context.Background(), "TRUNCATE "+tables+" RESTART IDENTITY CASCADE")
	require.NoError(t, err)
}

func (tdb *TDB) TearDown(t *testing.T) {
	t.Helper()
	_, err := tdb.DB.Exec(context.Background(), "TRUNCATE "+tables+" CASCADE")
	require.NoError(t, err)
}

// CreateStore inserts an approved store with the given capacity.
func (tdb *TDB) CreateStore(t *testing.T, capacity repository.BagCounts, graceMinutes int) *repository.Store {
	t.Helper()
	store := &repository.Store{
		Name:           "Central Station",
		Address:        "1 Main St",
		SmallCapacity:  capacity.Small,
		MediumCapacity: capacity.Medium,
		LargeCapacity:  capacity.Large,
		Approved:       true,
		GraceMinutes:   graceMinutes,
	}
	require.NoError(t, postgresql.NewStoreRepo(tdb.DB).Create(context.Background(), store))
	return store
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
