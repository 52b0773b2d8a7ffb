package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/apperrors"
	mock_catalog "gitlab.ozon.dev/pupkingeorgij/luggage/internal/catalog/mocks"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/config"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/repository"
)

type brokenCache struct{}

func (brokenCache) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("connection refused")
}

func (brokenCache) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("connection refused")
}

func (brokenCache) Delete(context.Context, ...string) error {
	return errors.New("connection refused")
}

func TestCatalog_GetStore(t *testing.T) {
	ctx := context.Background()
	store := &repository.Store{ID: 7, Name: "Central", SmallCapacity: 4, MediumCapacity: 2, Approved: true}

	t.Run("second read served from cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		reader := mock_catalog.NewMockStoreReader(ctrl)
		c := New(reader, NewMemoryCache(), time.Minute, nil)

		reader.EXPECT().GetByID(gomock.Any(), int64(7)).Return(store, nil).Times(1)

		first, err := c.GetStore(ctx, 7)
		require.NoError(t, err)
		second, err := c.GetStore(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, first.Name, second.Name)
		assert.Equal(t, store.Capacity(), second.Capacity())
	})

	t.Run("invalidate forces a reload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		reader := mock_catalog.NewMockStoreReader(ctrl)
		c := New(reader, NewMemoryCache(), time.Minute, nil)

		reader.EXPECT().GetByID(gomock.Any(), int64(7)).Return(store, nil).Times(2)

		_, err := c.GetStore(ctx, 7)
		require.NoError(t, err)
		c.Invalidate(ctx, 7)
		_, err = c.GetStore(ctx, 7)
		require.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		reader := mock_catalog.NewMockStoreReader(ctrl)
		c := New(reader, NewMemoryCache(), time.Minute, nil)

		reader.EXPECT().GetByID(gomock.Any(), int64(8)).Return(nil, repository.ErrObjectNotFound)

		_, err := c.GetStore(ctx, 8)
		assert.ErrorIs(t, err, apperrors.ErrStoreNotFound)
	})

	t.Run("broken cache falls through to the database", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		reader := mock_catalog.NewMockStoreReader(ctrl)
		c := New(reader, brokenCache{}, time.Minute, zap.NewNop())

		reader.EXPECT().GetByID(gomock.Any(), int64(7)).Return(store, nil).Times(2)

		for i := 0; i < 2; i++ {
			got, err := c.GetStore(ctx, 7)
			require.NoError(t, err)
			assert.Equal(t, int64(7), got.ID)
		}
	})
}

func TestCatalog_GetCapacity(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := mock_catalog.NewMockStoreReader(ctrl)
	c := New(reader, NewMemoryCache(), time.Minute, nil)

	reader.EXPECT().GetByID(gomock.Any(), int64(7)).
		Return(&repository.Store{ID: 7, SmallCapacity: 1, MediumCapacity: 2, LargeCapacity: 3}, nil)

	got, err := c.GetCapacity(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, repository.BagCounts{Small: 1, Medium: 2, Large: 3}, got)
}

func TestCatalog_GetApprovedStores(t *testing.T) {
	ctx := context.Background()

	t.Run("cached list", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		reader := mock_catalog.NewMockStoreReader(ctrl)
		c := New(reader, NewMemoryCache(), time.Minute, nil)

		reader.EXPECT().ListApproved(gomock.Any()).
			Return([]*repository.Store{{ID: 1, Approved: true}, {ID: 2, Approved: true}}, nil).Times(1)

		for i := 0; i < 3; i++ {
			stores, err := c.GetApprovedStores(ctx)
			require.NoError(t, err)
			assert.Len(t, stores, 2)
		}
	})

	t.Run("database error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		reader := mock_catalog.NewMockStoreReader(ctrl)
		c := New(reader, NewMemoryCache(), time.Minute, nil)

		reader.EXPECT().ListApproved(gomock.Any()).Return(nil, errors.New("boom"))

		_, err := c.GetApprovedStores(ctx)
		assert.Error(t, err)
	})
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	c := NewMemoryCache()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	now = now.Add(time.Minute)
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	require.NoError(t, c.Delete(ctx, "k"))
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestNewCache_FallsBackWithoutRedis(t *testing.T) {
	c := NewCache(context.Background(), config.Redis{}, zap.NewNop())
	_, ok := c.(*MemoryCache)
	assert.True(t, ok)

	c = NewCache(context.Background(), config.Redis{Addr: "127.0.0.1:1"}, zap.NewNop())
	_, ok = c.(*MemoryCache)
	assert.True(t, ok)
}
