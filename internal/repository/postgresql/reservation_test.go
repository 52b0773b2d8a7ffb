package postgresql_test

import (
	"context"
	"errors"
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

func TestReservationRepo_CreateTx(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	newReservation := func() *repository.Reservation {
		return &repository.Reservation{
			ReservationNumber: "R-20250301-ABCDEF12",
			StoreID:           7,
			UserID:            "user-1",
			StorageDate:       time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
			StorageEndDate:    time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
			StartTime:         9 * 60,
			EndTime:           18 * 60,
			SmallBags:         1,
			MediumBags:        2,
			Status:            repository.StatusReserved,
			TotalPrice:        22000,
			CreatedAt:         now,
		}
	}

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewReservationRepo(mock_database.NewMockDB(ctrl))
		res := newReservation()

		mockTx.EXPECT().Get(
			gomock.Any(), gomock.Eq(res), gomock.Any(),
			gomock.Eq(res.ReservationNumber),
			gomock.Eq(int64(7)),
			gomock.Eq("user-1"),
			gomock.Eq(res.StorageDate),
			gomock.Eq(res.StorageEndDate),
			gomock.Eq(540),
			gomock.Eq(1080),
			gomock.Eq(1),
			gomock.Eq(2),
			gomock.Eq(0),
			gomock.Eq("RESERVED"),
			gomock.Eq(int64(22000)),
			gomock.Eq(now),
		).DoAndReturn(func(_ context.Context, dest interface{}, _ string, _ ...interface{}) error {
			dest.(*repository.Reservation).ID = 42
			return nil
		})

		err := repo.CreateTx(ctx, mockTx, res)
		require.NoError(t, err)
		assert.Equal(t, int64(42), res.ID)
	})

	t.Run("duplicate number", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewReservationRepo(mock_database.NewMockDB(ctrl))

		pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "reservations_reservation_number_key"}
		mockTx.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(),
			gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(),
			gomock.Any(), gomock.Any(), gomock.Any()).Return(pgErr)

		err := repo.CreateTx(ctx, mockTx, newReservation())
		assert.ErrorIs(t, err, repository.ErrDuplicate)
	})
}

func TestReservationRepo_GetByNumberTx(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewReservationRepo(mock_database.NewMockDB(ctrl))

		mockTx.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq("R-missing")).Return(pgx.ErrNoRows)

		res, err := repo.GetByNumberTx(ctx, mockTx, "R-missing")
		assert.Nil(t, res)
		assert.ErrorIs(t, err, repository.ErrObjectNotFound)
	})

	t.Run("locks the row", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewReservationRepo(mock_database.NewMockDB(ctrl))

		mockTx.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq("R-1")).
			DoAndReturn(func(_ context.Context, dest interface{}, query string, _ ...interface{}) error {
				assert.Contains(t, query, "FOR UPDATE")
				dest.(*repository.Reservation).Status = repository.StatusStored
				return nil
			})

		res, err := repo.GetByNumberTx(ctx, mockTx, "R-1")
		require.NoError(t, err)
		assert.Equal(t, repository.StatusStored, res.Status)
	})
}

func TestReservationRepo_UpdateStatusTx(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewReservationRepo(mock_database.NewMockDB(ctrl))

		mockTx.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Eq(int64(5)), gomock.Eq("RESERVED"), gomock.Eq("STORED"), gomock.Eq(at)).
			Return(pgconn.CommandTag("UPDATE 1"), nil)

		err := repo.UpdateStatusTx(ctx, mockTx, 5, repository.StatusReserved, repository.StatusStored, at)
		assert.NoError(t, err)
	})

	t.Run("status moved underneath", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewReservationRepo(mock_database.NewMockDB(ctrl))

		mockTx.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pgconn.CommandTag("UPDATE 0"), nil)

		err := repo.UpdateStatusTx(ctx, mockTx, 5, repository.StatusReserved, repository.StatusStored, at)
		assert.ErrorIs(t, err, repository.ErrObjectNotFound)
	})

	t.Run("database error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewReservationRepo(mock_database.NewMockDB(ctrl))

		expectedErr := errors.New("database error")
		mockTx.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, expectedErr)

		err := repo.UpdateStatusTx(ctx, mockTx, 5, repository.StatusReserved, repository.StatusStored, at)
		assert.ErrorIs(t, err, expectedErr)
	})
}

func TestReservationRepo_CommittedByDayTx(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	mockTx := mock_database.NewMockTx(ctrl)
	repo := postgresql.NewReservationRepo(mock_database.NewMockDB(ctrl))

	rng := repository.NewDateRange(
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
	)
	mockTx.EXPECT().Select(gomock.Any(), gomock.Any(), gomock.Any(),
		gomock.Eq(int64(3)), gomock.Eq(rng.Start), gomock.Eq(rng.End), gomock.Eq([]string{"RESERVED", "STORED"})).
		DoAndReturn(func(_ context.Context, dest interface{}, _ string, _ ...interface{}) error {
			*dest.(*[]repository.DayCommitment) = []repository.DayCommitment{
				{Day: rng.Start, Small: 2},
				{Day: rng.End, Medium: 1},
			}
			return nil
		})

	days, err := repo.CommittedByDayTx(ctx, mockTx, 3, rng)
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, 2, days[0].Small)
	assert.Equal(t, 1, days[1].Medium)
}
