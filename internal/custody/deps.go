//go:generate mockgen -source=deps.go -destination=mocks/deps.go -package=mock_custody
package custody

import (
	"context"
	"time"

	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/db"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/repository"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/token"
)

// Lifecycle is the part of the reservation service custody drives.
type Lifecycle interface {
	Get(ctx context.Context, key string) (*repository.Reservation, error)
	LockTx(ctx context.Context, tx db.Tx, key string) (*repository.Reservation, error)
	LockByIDTx(ctx context.Context, tx db.Tx, id int64) (*repository.Reservation, error)
	TransitionWithCodeTx(ctx context.Context, tx db.Tx, res *repository.Reservation, to repository.ReservationStatus, reason, storageCode string) error
	ExpireTx(ctx context.Context, tx db.Tx, res *repository.Reservation, reason string) (bool, error)
}

type StorageItemRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, item *repository.StorageItem) error
	GetByCode(ctx context.Context, code string) (*repository.StorageItem, error)
	GetByCodeTx(ctx context.Context, tx db.Tx, code string) (*repository.StorageItem, error)
	GetByReservationID(ctx context.Context, reservationID int64) (*repository.StorageItem, error)
	GetByReservationIDTx(ctx context.Context, tx db.Tx, reservationID int64) (*repository.StorageItem, error)
	CheckOutTx(ctx context.Context, tx db.Tx, id int64, at time.Time, notes string) error
	ListStoredByStore(ctx context.Context, storeID int64) ([]*repository.OccupancyItem, error)
}

// FileStore persists photo bytes and returns a reference string.
type FileStore interface {
	Upload(ctx context.Context, name string, data []byte) (string, error)
}

// UserDirectory resolves the owner profile of a reservation.
type UserDirectory interface {
	GetByID(ctx context.Context, id string) (*repository.Customer, error)
}

type TokenVerifier interface {
	Verify(raw, reservationNumber string) (*token.PickupClaims, error)
}

type StoreCatalog interface {
	GetStore(ctx context.Context, id int64) (*repository.Store, error)
}
