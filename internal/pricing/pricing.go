package pricing

import (
	"fmt"

	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/repository"
)

// Pricer computes the total price of a reservation in minor currency units.
type Pricer interface {
	Price(bags repository.BagCounts, rng repository.DateRange) int64
}

// Tariff charges a flat rate per bag per calendar day, by bag size.
type Tariff struct {
	Small  int64
	Medium int64
	Large  int64
}

func NewTariff(small, medium, large int64) (*Tariff, error) {
	if small < 0 || medium < 0 || large < 0 {
		return nil, fmt.Errorf("tariff rates must not be negative: %d/%d/%d", small, medium, large)
	}
	return &Tariff{Small: small, Medium: medium, Large: large}, nil
}

func (t Tariff) Rate(size repository.BagSize) int64 {
	switch size {
	case repository.SizeSmall:
		return t.Small
	case repository.SizeMedium:
		return t.Medium
	case repository.SizeLarge:
		return t.Large
	}
	return 0
}

func (t Tariff) Price(bags repository.BagCounts, rng repository.DateRange) int64 {
	days := int64(rng.DayCount())
	var perDay int64
	for _, size := range repository.Sizes {
		perDay += int64(bags.Get(size)) * t.Rate(size)
	}
	return perDay * days
}
