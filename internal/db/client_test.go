package db_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/db"
	mock_database "gitlab.ozon.dev/pupkingeorgij/luggage/internal/db/mocks"
)

func TestRunInTx(t *testing.T) {
	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)

		mockDB.EXPECT().BeginTx(gomock.Any()).Return(mockTx, nil)
		mockTx.EXPECT().Commit(gomock.Any()).Return(nil)

		called := false
		err := db.RunInTx(ctx, mockDB, func(tx db.Tx) error {
			called = true
			assert.Equal(t, mockTx, tx)
			return nil
		})
		require.NoError(t, err)
		assert.True(t, called)
	})

	t.Run("rolls back on error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)

		fnErr := errors.New("boom")
		mockDB.EXPECT().BeginTx(gomock.Any()).Return(mockTx, nil)
		mockTx.EXPECT().Rollback(gomock.Any()).Return(nil)

		err := db.RunInTx(ctx, mockDB, func(db.Tx) error { return fnErr })
		assert.ErrorIs(t, err, fnErr)
	})

	t.Run("begin failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockDB := mock_database.NewMockDB(ctrl)

		mockDB.EXPECT().BeginTx(gomock.Any()).Return(nil, errors.New("pool closed"))

		err := db.RunInTx(ctx, mockDB, func(db.Tx) error {
			t.Fatal("fn must not run")
			return nil
		})
		assert.ErrorContains(t, err, "failed to begin transaction")
	})

	t.Run("commit failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)

		mockDB.EXPECT().BeginTx(gomock.Any()).Return(mockTx, nil)
		mockTx.EXPECT().Commit(gomock.Any()).Return(errors.New("serialization failure"))

		err := db.RunInTx(ctx, mockDB, func(db.Tx) error { return nil })
		assert.ErrorContains(t, err, "failed to commit transaction")
	})
}

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "storage_items_reservation_id_key"}
	wrapped := fmt.Errorf("failed to insert: %w", pgErr)

	assert.True(t, db.IsUniqueViolation(wrapped, "storage_items_reservation_id_key"))
	assert.True(t, db.IsUniqueViolation(wrapped, ""))
	assert.False(t, db.IsUniqueViolation(wrapped, "storage_items_storage_code_key"))
	assert.False(t, db.IsUniqueViolation(&pgconn.PgError{Code: "23503"}, ""))
	assert.False(t, db.IsUniqueViolation(errors.New("plain"), ""))
}
