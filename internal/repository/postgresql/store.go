package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"

	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/db"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/repository"
)

const storeColumns = `id, name, address, small_capacity, medium_capacity, large_capacity, approved, grace_minutes, created_at`

type StoreRepo struct {
	db db.DB
}

func NewStoreRepo(db db.DB) *StoreRepo {
	return &StoreRepo{db: db}
}

func (r *StoreRepo) Create(ctx context.Context, store *repository.Store) error {
	err := r.db.Get(ctx, store, `
        INSERT INTO stores (
            name, address, small_capacity, medium_capacity, large_capacity, approved, grace_minutes
        ) VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING `+storeColumns,
		store.Name, store.Address, store.SmallCapacity, store.MediumCapacity, store.LargeCapacity, store.Approved, store.GraceMinutes)
	if err != nil {
		return fmt.Errorf("failed to insert store: %w", err)
	}
	return nil
}

func (r *StoreRepo) GetByID(ctx context.Context, id int64) (*repository.Store, error) {
	var store repository.Store
	err := r.db.Get(ctx, &store, "SELECT "+storeColumns+" FROM stores WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &store, nil
}

// GetByIDForUpdateTx locks the store row. Every admission for the store
// queues behind this lock until the transaction ends.
func (r *StoreRepo) GetByIDForUpdateTx(ctx context.Context, tx db.Tx, id int64) (*repository.Store, error) {
	var store repository.Store
	err := tx.Get(ctx, &store, "SELECT "+storeColumns+" FROM stores WHERE id = $1 FOR UPDATE", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &store, nil
}

func (r *StoreRepo) ListApproved(ctx context.Context) ([]*repository.Store, error) {
	var stores []*repository.Store
	err := r.db.Select(ctx, &stores, "SELECT "+storeColumns+" FROM stores WHERE approved ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list approved stores: %w", err)
	}
	return stores, nil
}
