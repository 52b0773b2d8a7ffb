package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	mock_database "gitlab.ozon.dev/pupkingeorgij/luggage/internal/db/mocks"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/repository"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/repository/postgresql"
)

func TestHistoryRepo_CreateTx(t *testing.T) {
	ctx := context.Background()
	changedAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewHistoryRepo(mock_database.NewMockDB(ctrl))

		entry := &repository.HistoryEntry{
			ReservationID: 11,
			OldStatus:     repository.StatusReserved,
			NewStatus:     repository.StatusCancelled,
			Reason:        "customer request",
			ChangedAt:     changedAt,
		}
		mockTx.EXPECT().Exec(gomock.Any(), gomock.Any(),
			gomock.Eq(int64(11)), gomock.Eq("RESERVED"), gomock.Eq("CANCELLED"), gomock.Eq("customer request"), gomock.Eq(changedAt)).
			Return(nil, nil)

		assert.NoError(t, repo.CreateTx(ctx, mockTx, entry))
	})

	t.Run("database error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewHistoryRepo(mock_database.NewMockDB(ctrl))

		expectedErr := errors.New("database error")
		mockTx.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, expectedErr)

		err := repo.CreateTx(ctx, mockTx, &repository.HistoryEntry{ReservationID: 11})
		assert.ErrorIs(t, err, expectedErr)
	})
}

func TestHistoryRepo_GetByReservationID(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	mockDB := mock_database.NewMockDB(ctrl)
	repo := postgresql.NewHistoryRepo(mockDB)

	mockDB.EXPECT().Select(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq(int64(11))).
		DoAndReturn(func(_ context.Context, dest interface{}, _ string, _ ...interface{}) error {
			*dest.(*[]*repository.HistoryEntry) = []*repository.HistoryEntry{
				{NewStatus: repository.StatusReserved},
				{OldStatus: repository.StatusReserved, NewStatus: repository.StatusStored},
			}
			return nil
		})

	entries, err := repo.GetByReservationID(ctx, 11)
	assert.NoError(t, err)
	assert.Len(t, entries, 2)
}
