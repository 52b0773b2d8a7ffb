//go:generate mockgen -source=deps.go -destination=mocks/deps.go -package=mock_reservation
package reservation

import (
	"context"
	"time"

	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/db"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/repository"
)

type StoreRepository interface {
	GetByIDForUpdateTx(ctx context.Context, tx db.Tx, id int64) (*repository.Store, error)
}

type ReservationRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, res *repository.Reservation) error
	GetByID(ctx context.Context, id int64) (*repository.Reservation, error)
	GetByNumber(ctx context.Context, number string) (*repository.Reservation, error)
	GetByIDTx(ctx context.Context, tx db.Tx, id int64) (*repository.Reservation, error)
	GetByNumberTx(ctx context.Context, tx db.Tx, number string) (*repository.Reservation, error)
	UpdateStatusTx(ctx context.Context, tx db.Tx, id int64, from, to repository.ReservationStatus, at time.Time) error
	SetPaymentID(ctx context.Context, number, paymentID string) error
	ListExpiryCandidatesTx(ctx context.Context, tx db.Tx, storeID int64, lastDay time.Time) ([]*repository.Reservation, error)
	NextEndDateTx(ctx context.Context, tx db.Tx, storeID int64, day time.Time) (*time.Time, error)
}

type HistoryRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, entry *repository.HistoryEntry) error
	GetByReservationID(ctx context.Context, reservationID int64) ([]*repository.HistoryEntry, error)
}

type OutboxRepository interface {
	EnqueueTx(ctx context.Context, tx db.Tx, topic string, payload interface{}, at time.Time) error
}

// Admission decides whether a store can take the requested bags.
type Admission interface {
	CheckAndReserve(ctx context.Context, tx db.Tx, store *repository.Store, rng repository.DateRange, requested repository.BagCounts) error
}

type TokenIssuer interface {
	Issue(reservationNumber, userID string, validUntil time.Time) (string, error)
}

// SweepInvalidator is told about stores whose expiry schedule changed.
type SweepInvalidator interface {
	Invalidate(storeID int64)
}
