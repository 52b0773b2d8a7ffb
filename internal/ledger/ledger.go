//go:generate mockgen -source=ledger.go -destination=mocks/ledger.go -package=mock_ledger
package ledger

import (
	"context"
	"fmt"

	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/apperrors"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/db"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/repository"
)

// CommitmentReader loads per-day committed bag counts of a store.
type CommitmentReader interface {
	CommittedByDayTx(ctx context.Context, tx db.Tx, storeID int64, rng repository.DateRange) ([]repository.DayCommitment, error)
}

// Ledger is the admission authority for store capacity. It only reads:
// the caller persists the reservation in the same transaction, while
// holding the store row lock.
type Ledger struct {
	reader CommitmentReader
}

func New(reader CommitmentReader) *Ledger {
	return &Ledger{reader: reader}
}

// CheckAndReserve admits requested bags for every day of rng or returns
// CapacityExceeded for the first day and size that would overflow.
func (l *Ledger) CheckAndReserve(ctx context.Context, tx db.Tx, store *repository.Store, rng repository.DateRange, requested repository.BagCounts) error {
	if err := ValidateRequest(rng, requested); err != nil {
		return err
	}

	days, err := l.reader.CommittedByDayTx(ctx, tx, store.ID, rng)
	if err != nil {
		return fmt.Errorf("failed to read committed capacity for store %d: %w", store.ID, err)
	}
	return Evaluate(store.Capacity(), rng, days, requested)
}

func ValidateRequest(rng repository.DateRange, requested repository.BagCounts) error {
	if err := rng.Validate(); err != nil {
		return apperrors.NewInvalidRequest(err.Error())
	}
	if err := requested.Validate(); err != nil {
		return apperrors.NewInvalidRequest(err.Error())
	}
	return nil
}

// Evaluate checks committed+requested against capacity on every day of rng,
// sizes in order small, medium, large. Days absent from committed count as empty.
// Sizes not requested are not checked.
func Evaluate(capacity repository.BagCounts, rng repository.DateRange, committed []repository.DayCommitment, requested repository.BagCounts) error {
	byDay := make(map[string]repository.BagCounts, len(committed))
	for _, c := range committed {
		byDay[repository.FormatDate(c.Day)] = c.Counts()
	}

	for _, day := range rng.Days() {
		key := repository.FormatDate(day)
		used := byDay[key]
		for _, size := range repository.Sizes {
			req := requested.Get(size)
			if req == 0 {
				continue
			}
			if used.Get(size)+req > capacity.Get(size) {
				return apperrors.NewCapacityExceeded(key, string(size), used.Get(size), req, capacity.Get(size))
			}
		}
	}
	return nil
}
