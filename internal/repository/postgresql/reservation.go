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

const reservationColumns = `id, reservation_number, store_id, user_id, storage_date, storage_end_date,
            start_time, end_time, small_bags, medium_bags, large_bags, status, total_price, payment_id,
            created_at, updated_at`

type ReservationRepo struct {
	db db.DB
}

func NewReservationRepo(db db.DB) *ReservationRepo {
	return &ReservationRepo{db: db}
}

// CreateTx inserts res and fills its generated fields.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx db.Tx, res *repository.Reservation) error {
	err := tx.Get(ctx, res, `
        INSERT INTO reservations (
            reservation_number, store_id, user_id, storage_date, storage_end_date,
            start_time, end_time, small_bags, medium_bags, large_bags, status, total_price,
            created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13)
        RETURNING `+reservationColumns,
		res.ReservationNumber, res.StoreID, res.UserID, res.StorageDate, res.StorageEndDate,
		int(res.StartTime), int(res.EndTime), res.SmallBags, res.MediumBags, res.LargeBags,
		string(res.Status), res.TotalPrice, res.CreatedAt)
	if err != nil {
		if db.IsUniqueViolation(err, "reservations_reservation_number_key") {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to insert reservation: %w", err)
	}
	return nil
}

func (r *ReservationRepo) GetByID(ctx context.Context, id int64) (*repository.Reservation, error) {
	return r.get(ctx, r.db, "SELECT "+reservationColumns+" FROM reservations WHERE id = $1", id)
}

func (r *ReservationRepo) GetByNumber(ctx context.Context, number string) (*repository.Reservation, error) {
	return r.get(ctx, r.db, "SELECT "+reservationColumns+" FROM reservations WHERE reservation_number = $1", number)
}

func (r *ReservationRepo) GetByIDTx(ctx context.Context, tx db.Tx, id int64) (*repository.Reservation, error) {
	return r.get(ctx, tx, "SELECT "+reservationColumns+" FROM reservations WHERE id = $1 FOR UPDATE", id)
}

func (r *ReservationRepo) GetByNumberTx(ctx context.Context, tx db.Tx, number string) (*repository.Reservation, error) {
	return r.get(ctx, tx, "SELECT "+reservationColumns+" FROM reservations WHERE reservation_number = $1 FOR UPDATE", number)
}

func (r *ReservationRepo) get(ctx context.Context, q db.Querier, query string, arg interface{}) (*repository.Reservation, error) {
	var res repository.Reservation
	err := q.Get(ctx, &res, query, arg)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &res, nil
}

// UpdateStatusTx moves the reservation from one status to another.
// It reports ErrObjectNotFound when the row is not in the expected status.
func (r *ReservationRepo) UpdateStatusTx(ctx context.Context, tx db.Tx, id int64, from, to repository.ReservationStatus, at time.Time) error {
	tag, err := tx.Exec(ctx, `
        UPDATE reservations
        SET status = $3, updated_at = $4
        WHERE id = $1 AND status = $2
    `, id, string(from), string(to), at)
	if err != nil {
		return fmt.Errorf("failed to update reservation %d status: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}

func (r *ReservationRepo) SetPaymentID(ctx context.Context, number, paymentID string) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE reservations SET payment_id = $2 WHERE reservation_number = $1
    `, number, paymentID)
	if err != nil {
		return fmt.Errorf("failed to set payment id: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}

// CommittedByDayTx sums the bags of active reservations overlapping each
// day of rng. Every day of the range is present in the result.
func (r *ReservationRepo) CommittedByDayTx(ctx context.Context, tx db.Tx, storeID int64, rng repository.DateRange) ([]repository.DayCommitment, error) {
	var days []repository.DayCommitment
	err := tx.Select(ctx, &days, `
        SELECT g.day::date                        AS day,
               COALESCE(SUM(r.small_bags), 0)::int  AS small,
               COALESCE(SUM(r.medium_bags), 0)::int AS medium,
               COALESCE(SUM(r.large_bags), 0)::int  AS large
        FROM generate_series($2::date, $3::date, interval '1 day') AS g(day)
        LEFT JOIN reservations r
               ON r.store_id = $1
              AND r.status = ANY($4)
              AND r.storage_date <= g.day::date
              AND r.storage_end_date >= g.day::date
        GROUP BY g.day
        ORDER BY g.day
    `, storeID, rng.Start, rng.End, repository.ActiveStatuses)
	if err != nil {
		return nil, fmt.Errorf("failed to load committed capacity: %w", err)
	}
	return days, nil
}

// ListExpiryCandidatesTx locks active reservations of the store whose end
// date is on or before lastDay.
func (r *ReservationRepo) ListExpiryCandidatesTx(ctx context.Context, tx db.Tx, storeID int64, lastDay time.Time) ([]*repository.Reservation, error) {
	var list []*repository.Reservation
	err := tx.Select(ctx, &list, `
        SELECT `+reservationColumns+`
        FROM reservations
        WHERE store_id = $1 AND status = ANY($2) AND storage_end_date <= $3
        ORDER BY storage_end_date, id
        FOR UPDATE
    `, storeID, repository.ActiveStatuses, lastDay)
	if err != nil {
		return nil, fmt.Errorf("failed to list expiry candidates: %w", err)
	}
	return list, nil
}

// NextEndDateTx returns the earliest end date after day among active
// reservations of the store, or nil when there is none.
func (r *ReservationRepo) NextEndDateTx(ctx context.Context, tx db.Tx, storeID int64, day time.Time) (*time.Time, error) {
	var row struct {
		Next *time.Time `db:"next"`
	}
	err := tx.Get(ctx, &row, `
        SELECT MIN(storage_end_date) AS next
        FROM reservations
        WHERE store_id = $1 AND status = ANY($2) AND storage_end_date > $3
    `, storeID, repository.ActiveStatuses, day)
	if err != nil {
		return nil, fmt.Errorf("failed to load next end date: %w", err)
	}
	return row.Next, nil
}
