package reservation

import (
	"crypto/rand"
	"encoding/base32"
	"errors"
	"fmt"
	"strings"
	"time"

	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/repository"
)

type CreateRequest struct {
	UserID  string
	StoreID int64
	Range   repository.DateRange
	Window  repository.TimeWindow
	Bags    repository.BagCounts
}

// DefaultMaxDays caps the length of a reservation when no limit is configured.
const DefaultMaxDays = 90

// Validate checks the request. A range longer than maxDays days is rejected.
func (r CreateRequest) Validate(maxDays int) error {
	if strings.TrimSpace(r.UserID) == "" {
		return errors.New("user id is required")
	}
	if r.StoreID <= 0 {
		return errors.New("store id is required")
	}
	if err := r.Range.Validate(); err != nil {
		return err
	}
	if days := r.Range.DayCount(); days > maxDays {
		return fmt.Errorf("reservation covers %d days, at most %d allowed", days, maxDays)
	}
	if err := r.Window.Validate(r.Range); err != nil {
		return err
	}
	return r.Bags.Validate()
}

type CreateResult struct {
	Reservation *repository.Reservation
	// PickupToken is empty when signing failed; the reservation stands regardless.
	PickupToken string
}

// SweepOutcome is the result of expiring one store.
type SweepOutcome struct {
	Expired int
	// NextBoundary is a lower bound of the earliest end boundary still
	// active in the store, nil when nothing is active.
	NextBoundary *time.Time
}

var numberEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// NewReservationNumber returns R-YYYYMMDD-XXXXXXXX for the given local date.
func NewReservationNumber(localNow time.Time) (string, error) {
	b := make([]byte, 5)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return "R-" + localNow.Format("20060102") + "-" + numberEncoding.EncodeToString(b), nil
}
