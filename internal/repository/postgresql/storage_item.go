package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"

	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/db"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/repository"
)

const storageItemColumns = `id, reservation_id, storage_code, actual_small_bags, actual_medium_bags, actual_large_bags,
            photos, status, check_in_time, check_out_time, notes, created_at, updated_at`

type StorageItemRepo struct {
	db db.DB
}

func NewStorageItemRepo(db db.DB) *StorageItemRepo {
	return &StorageItemRepo{db: db}
}

func (r *StorageItemRepo) CreateTx(ctx context.Context, tx db.Tx, item *repository.StorageItem) error {
	photos := item.Photos
	if photos == nil {
		photos = []string{}
	}
	err := tx.Get(ctx, item, `
        INSERT INTO storage_items (
            reservation_id, storage_code, actual_small_bags, actual_medium_bags, actual_large_bags,
            photos, status, check_in_time, notes, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $8, $8)
        RETURNING `+storageItemColumns,
		item.ReservationID, item.StorageCode, item.ActualSmallBags, item.ActualMediumBags, item.ActualLargeBags,
		photos, string(item.Status), item.CheckInTime, item.Notes)
	if err != nil {
		switch {
		case db.IsUniqueViolation(err, "storage_items_reservation_id_key"):
			return repository.ErrItemExists
		case db.IsUniqueViolation(err, "storage_items_storage_code_key"):
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to insert storage item: %w", err)
	}
	return nil
}

func (r *StorageItemRepo) GetByCode(ctx context.Context, code string) (*repository.StorageItem, error) {
	return r.get(ctx, r.db, "SELECT "+storageItemColumns+" FROM storage_items WHERE storage_code = $1", code)
}

func (r *StorageItemRepo) GetByCodeTx(ctx context.Context, tx db.Tx, code string) (*repository.StorageItem, error) {
	return r.get(ctx, tx, "SELECT "+storageItemColumns+" FROM storage_items WHERE storage_code = $1 FOR UPDATE", code)
}

func (r *StorageItemRepo) GetByReservationID(ctx context.Context, reservationID int64) (*repository.StorageItem, error) {
	return r.get(ctx, r.db, "SELECT "+storageItemColumns+" FROM storage_items WHERE reservation_id = $1", reservationID)
}

func (r *StorageItemRepo) GetByReservationIDTx(ctx context.Context, tx db.Tx, reservationID int64) (*repository.StorageItem, error) {
	return r.get(ctx, tx, "SELECT "+storageItemColumns+" FROM storage_items WHERE reservation_id = $1 FOR UPDATE", reservationID)
}

func (r *StorageItemRepo) get(ctx context.Context, q db.Querier, query string, arg interface{}) (*repository.StorageItem, error) {
	var item repository.StorageItem
	err := q.Get(ctx, &item, query, arg)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &item, nil
}

// CheckOutTx marks a stored item as retrieved.
func (r *StorageItemRepo) CheckOutTx(ctx context.Context, tx db.Tx, id int64, at time.Time, notes string) error {
	tag, err := tx.Exec(ctx, `
        UPDATE storage_items
        SET status = $2, check_out_time = $3, notes = $4
        WHERE id = $1 AND status = $5
    `, id, string(repository.StorageRetrieved), at, notes, string(repository.StorageStored))
	if err != nil {
		return fmt.Errorf("failed to check out storage item %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}

// ListStoredByStore returns the items physically held at the store.
func (r *StorageItemRepo) ListStoredByStore(ctx context.Context, storeID int64) ([]*repository.OccupancyItem, error) {
	var items []*repository.OccupancyItem
	err := r.db.Select(ctx, &items, `
        SELECT i.storage_code, r.reservation_number, r.user_id,
               i.actual_small_bags, i.actual_medium_bags, i.actual_large_bags,
               i.check_in_time, r.storage_end_date
        FROM storage_items i
        JOIN reservations r ON r.id = i.reservation_id
        WHERE r.store_id = $1 AND i.status = $2
        ORDER BY i.check_in_time
    `, storeID, string(repository.StorageStored))
	if err != nil {
		return nil, fmt.Errorf("failed to list stored items: %w", err)
	}
	return items, nil
}
