package repository

import (
	"errors"
	"fmt"
	"time"
)

type BagSize string

const (
	SizeSmall  BagSize = "small"
	SizeMedium BagSize = "medium"
	SizeLarge  BagSize = "large"
)

// Sizes lists bag sizes in the order capacity is checked.
var Sizes = []BagSize{SizeSmall, SizeMedium, SizeLarge}

type BagCounts struct {
	Small  int `json:"small"`
	Medium int `json:"medium"`
	Large  int `json:"large"`
}

func (b BagCounts) Get(size BagSize) int {
	switch size {
	case SizeSmall:
		return b.Small
	case SizeMedium:
		return b.Medium
	case SizeLarge:
		return b.Large
	}
	return 0
}

func (b BagCounts) Total() int {
	return b.Small + b.Medium + b.Large
}

func (b BagCounts) Add(o BagCounts) BagCounts {
	return BagCounts{Small: b.Small + o.Small, Medium: b.Medium + o.Medium, Large: b.Large + o.Large}
}

// Validate rejects negative counts and an empty request.
func (b BagCounts) Validate() error {
	if b.Small < 0 || b.Medium < 0 || b.Large < 0 {
		return errors.New("bag counts must not be negative")
	}
	if b.Total() == 0 {
		return errors.New("at least one bag is required")
	}
	return nil
}

const dateLayout = "2006-01-02"

// DateRange is an inclusive range of calendar days. Times are truncated to UTC midnight.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: TruncateDay(start), End: TruncateDay(end)}
}

func ParseDateRange(start, end string) (DateRange, error) {
	s, err := time.Parse(dateLayout, start)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	e, err := time.Parse(dateLayout, end)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid end date %q: %w", end, err)
	}
	return NewDateRange(s, e), nil
}

func (r DateRange) Validate() error {
	if r.Start.IsZero() || r.End.IsZero() {
		return errors.New("storage dates are required")
	}
	if r.End.Before(r.Start) {
		return fmt.Errorf("end date %s is before start date %s", FormatDate(r.End), FormatDate(r.Start))
	}
	return nil
}

// Days returns every day of the range, both ends included.
func (r DateRange) Days() []time.Time {
	var days []time.Time
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func (r DateRange) DayCount() int {
	if r.End.Before(r.Start) {
		return 0
	}
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// TimeOfDay is minutes since midnight.
type TimeOfDay int

const minutesPerDay = 24 * 60

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

func (t TimeOfDay) Valid() bool {
	return t >= 0 && t < minutesPerDay
}

func (t TimeOfDay) Duration() time.Duration {
	return time.Duration(t) * time.Minute
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TimeOfDay) UnmarshalText(b []byte) error {
	v, err := ParseTimeOfDay(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// TimeWindow is the drop-off/pick-up window of a reservation.
type TimeWindow struct {
	Start TimeOfDay `json:"start_time"`
	End   TimeOfDay `json:"end_time"`
}

func (w TimeWindow) Validate(r DateRange) error {
	if !w.Start.Valid() || !w.End.Valid() {
		return errors.New("time of day out of range")
	}
	if r.Start.Equal(r.End) && w.End <= w.Start {
		return fmt.Errorf("end time %s must be after start time %s on a single-day reservation", w.End, w.Start)
	}
	return nil
}
