package postgresql

import (
	"context"
	"fmt"

	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/db"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/repository"
)

type HistoryRepo struct {
	db db.DB
}

func NewHistoryRepo(db db.DB) *HistoryRepo {
	return &HistoryRepo{db: db}
}

func (r *HistoryRepo) CreateTx(ctx context.Context, tx db.Tx, entry *repository.HistoryEntry) error {
	_, err := tx.Exec(ctx, `
        INSERT INTO reservation_history (
            reservation_id, old_status, new_status, reason, changed_at
        ) VALUES ($1, $2, $3, $4, $5)
    `, entry.ReservationID, string(entry.OldStatus), string(entry.NewStatus), entry.Reason, entry.ChangedAt)
	if err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}
	return nil
}

func (r *HistoryRepo) GetByReservationID(ctx context.Context, reservationID int64) ([]*repository.HistoryEntry, error) {
	var entries []*repository.HistoryEntry
	err := r.db.Select(ctx, &entries, `
        SELECT id, reservation_id, old_status, new_status, reason, changed_at
        FROM reservation_history
        WHERE reservation_id = $1
        ORDER BY changed_at ASC, id ASC
    `, reservationID)
	return entries, err
}
