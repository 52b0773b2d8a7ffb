package repository

import (
	"errors"
	"time"
)

var ErrObjectNotFound = errors.New("not found")

// ErrDuplicate is returned when a unique constraint rejects an insert.
var ErrDuplicate = errors.New("duplicate")

// ErrItemExists is returned when a reservation already has a storage item.
var ErrItemExists = errors.New("reservation already has a storage item")

type Store struct {
	ID             int64     `db:"id"`
	Name           string    `db:"name"`
	Address        string    `db:"address"`
	SmallCapacity  int       `db:"small_capacity"`
	MediumCapacity int       `db:"medium_capacity"`
	LargeCapacity  int       `db:"large_capacity"`
	Approved       bool      `db:"approved"`
	GraceMinutes   int       `db:"grace_minutes"`
	CreatedAt      time.Time `db:"created_at"`
}

func (s *Store) Capacity() BagCounts {
	return BagCounts{Small: s.SmallCapacity, Medium: s.MediumCapacity, Large: s.LargeCapacity}
}

func (s *Store) Grace() time.Duration {
	return time.Duration(s.GraceMinutes) * time.Minute
}

type Reservation struct {
	ID                int64             `db:"id"`
	ReservationNumber string            `db:"reservation_number"`
	StoreID           int64             `db:"store_id"`
	UserID            string            `db:"user_id"`
	StorageDate       time.Time         `db:"storage_date"`
	StorageEndDate    time.Time         `db:"storage_end_date"`
	StartTime         TimeOfDay         `db:"start_time"`
	EndTime           TimeOfDay         `db:"end_time"`
	SmallBags         int               `db:"small_bags"`
	MediumBags        int               `db:"medium_bags"`
	LargeBags         int               `db:"large_bags"`
	Status            ReservationStatus `db:"status"`
	TotalPrice        int64             `db:"total_price"`
	PaymentID         *string           `db:"payment_id"`
	CreatedAt         time.Time         `db:"created_at"`
	UpdatedAt         time.Time         `db:"updated_at"`
}

func (r *Reservation) Bags() BagCounts {
	return BagCounts{Small: r.SmallBags, Medium: r.MediumBags, Large: r.LargeBags}
}

func (r *Reservation) Range() DateRange {
	return DateRange{Start: r.StorageDate, End: r.StorageEndDate}
}

// EndBoundary is the instant after which the reservation is overdue:
// storageEndDate at endTime in loc, plus the store grace.
func (r *Reservation) EndBoundary(loc *time.Location, grace time.Duration) time.Time {
	y, m, d := r.StorageEndDate.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc).Add(r.EndTime.Duration()).Add(grace)
}

type StorageItem struct {
	ID               int64         `db:"id"`
	ReservationID    int64         `db:"reservation_id"`
	StorageCode      string        `db:"storage_code"`
	ActualSmallBags  int           `db:"actual_small_bags"`
	ActualMediumBags int           `db:"actual_medium_bags"`
	ActualLargeBags  int           `db:"actual_large_bags"`
	Photos           []string      `db:"photos"`
	Status           StorageStatus `db:"status"`
	CheckInTime      time.Time     `db:"check_in_time"`
	CheckOutTime     *time.Time    `db:"check_out_time"`
	Notes            string        `db:"notes"`
	CreatedAt        time.Time     `db:"created_at"`
	UpdatedAt        time.Time     `db:"updated_at"`
}

func (i *StorageItem) ActualBags() BagCounts {
	return BagCounts{Small: i.ActualSmallBags, Medium: i.ActualMediumBags, Large: i.ActualLargeBags}
}

// OccupancyItem is a stored item joined with its reservation for staff screens.
type OccupancyItem struct {
	StorageCode       string    `db:"storage_code" json:"storage_code"`
	ReservationNumber string    `db:"reservation_number" json:"reservation_number"`
	UserID            string    `db:"user_id" json:"user_id"`
	ActualSmallBags   int       `db:"actual_small_bags" json:"small_bags"`
	ActualMediumBags  int       `db:"actual_medium_bags" json:"medium_bags"`
	ActualLargeBags   int       `db:"actual_large_bags" json:"large_bags"`
	CheckInTime       time.Time `db:"check_in_time" json:"check_in_time"`
	StorageEndDate    time.Time `db:"storage_end_date" json:"storage_end_date"`
}

type HistoryEntry struct {
	ID            int64             `db:"id"`
	ReservationID int64             `db:"reservation_id"`
	OldStatus     ReservationStatus `db:"old_status"`
	NewStatus     ReservationStatus `db:"new_status"`
	Reason        string            `db:"reason"`
	ChangedAt     time.Time         `db:"changed_at"`
}

// DayCommitment is the committed bag count of a store on one calendar day.
type DayCommitment struct {
	Day    time.Time `db:"day"`
	Small  int       `db:"small"`
	Medium int       `db:"medium"`
	Large  int       `db:"large"`
}

func (d DayCommitment) Counts() BagCounts {
	return BagCounts{Small: d.Small, Medium: d.Medium, Large: d.Large}
}

type Customer struct {
	ID       string `db:"id"`
	FullName string `db:"full_name"`
	Phone    string `db:"phone"`
	Email    string `db:"email"`
}
