package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_database "gitlab.ozon.dev/pupkingeorgij/luggage/internal/db/mocks"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/repository"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/repository/postgresql"
)

func TestStorageItemRepo_CreateTx(t *testing.T) {
	ctx := context.Background()
	checkIn := time.Date(2025, 3, 2, 9, 30, 0, 0, time.UTC)

	anyArgs := func() []interface{} {
		args := make([]interface{}, 12)
		for i := range args {
			args[i] = gomock.Any()
		}
		return args
	}

	t.Run("nil photos stored as empty array", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewStorageItemRepo(mock_database.NewMockDB(ctrl))

		item := &repository.StorageItem{
			ReservationID:   1,
			StorageCode:     "ABCD1234",
			ActualSmallBags: 1,
			Status:          repository.StorageStored,
			CheckInTime:     checkIn,
		}
		mockTx.EXPECT().Get(
			gomock.Any(), gomock.Eq(item), gomock.Any(),
			gomock.Eq(int64(1)), gomock.Eq("ABCD1234"), gomock.Eq(1), gomock.Eq(0), gomock.Eq(0),
			gomock.Eq([]string{}), gomock.Eq("STORED"), gomock.Eq(checkIn), gomock.Eq(""),
		).Return(nil)

		require.NoError(t, repo.CreateTx(ctx, mockTx, item))
	})

	t.Run("second item for reservation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewStorageItemRepo(mock_database.NewMockDB(ctrl))

		pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "storage_items_reservation_id_key"}
		mockTx.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), anyArgs()[3:]...).Return(pgErr)

		err := repo.CreateTx(ctx, mockTx, &repository.StorageItem{ReservationID: 1})
		assert.ErrorIs(t, err, repository.ErrItemExists)
	})

	t.Run("storage code collision", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewStorageItemRepo(mock_database.NewMockDB(ctrl))

		pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "storage_items_storage_code_key"}
		mockTx.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), anyArgs()[3:]...).Return(pgErr)

		err := repo.CreateTx(ctx, mockTx, &repository.StorageItem{ReservationID: 1})
		assert.ErrorIs(t, err, repository.ErrDuplicate)
	})
}

func TestStorageItemRepo_CheckOutTx(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2025, 3, 3, 17, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewStorageItemRepo(mock_database.NewMockDB(ctrl))

		mockTx.EXPECT().Exec(gomock.Any(), gomock.Any(),
			gomock.Eq(int64(9)), gomock.Eq("RETRIEVED"), gomock.Eq(at), gomock.Eq("picked up"), gomock.Eq("STORED")).
			Return(pgconn.CommandTag("UPDATE 1"), nil)

		assert.NoError(t, repo.CheckOutTx(ctx, mockTx, 9, at, "picked up"))
	})

	t.Run("already retrieved", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewStorageItemRepo(mock_database.NewMockDB(ctrl))

		mockTx.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pgconn.CommandTag("UPDATE 0"), nil)

		assert.ErrorIs(t, repo.CheckOutTx(ctx, mockTx, 9, at, ""), repository.ErrObjectNotFound)
	})
}

func TestStorageItemRepo_GetByReservationID(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewStorageItemRepo(mockDB)

		mockDB.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq(int64(5))).
			DoAndReturn(func(_ context.Context, dest interface{}, _ string, _ ...interface{}) error {
				*dest.(*repository.StorageItem) = repository.StorageItem{ID: 3, ReservationID: 5}
				return nil
			})

		item, err := repo.GetByReservationID(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, int64(3), item.ID)
	})

	t.Run("missing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewStorageItemRepo(mockDB)

		mockDB.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq(int64(5))).Return(pgx.ErrNoRows)

		_, err := repo.GetByReservationID(ctx, 5)
		assert.ErrorIs(t, err, repository.ErrObjectNotFound)
	})
}
