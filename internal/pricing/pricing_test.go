package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/repository"
)

func TestTariff_Price(t *testing.T) {
	tariff, err := NewTariff(3000, 4000, 5000)
	require.NoError(t, err)

	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		bags repository.BagCounts
		days int
		want int64
	}{
		{"single small for one day", repository.BagCounts{Small: 1}, 1, 3000},
		{"mixed bags over three days", repository.BagCounts{Small: 2, Medium: 1, Large: 1}, 3, (6000 + 4000 + 5000) * 3},
		{"no bags", repository.BagCounts{}, 2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := repository.NewDateRange(start, start.AddDate(0, 0, tt.days-1))
			assert.Equal(t, tt.want, tariff.Price(tt.bags, rng))
		})
	}
}

func TestNewTariff_Negative(t *testing.T) {
	_, err := NewTariff(-1, 0, 0)
	assert.Error(t, err)
}
