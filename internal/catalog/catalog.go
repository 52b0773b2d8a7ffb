//go:generate mockgen -source=catalog.go -destination=mocks/catalog.go -package=mock_catalog
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/apperrors"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/repository"
)

const (
	approvedKey    = "luggage:stores:approved"
	storeKeyPrefix = "luggage:store:"
)

type StoreReader interface {
	GetByID(ctx context.Context, id int64) (*repository.Store, error)
	ListApproved(ctx context.Context) ([]*repository.Store, error)
}

// Catalog is the read path for partner stores. Cache failures only degrade
// to database reads. Admission does not use it: capacity checks read the
// locked row.
type Catalog struct {
	stores StoreReader
	cache  Cache
	ttl    time.Duration
	logger *zap.Logger
}

func New(stores StoreReader, cache Cache, ttl time.Duration, logger *zap.Logger) *Catalog {
	if cache == nil {
		cache = NewMemoryCache()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{stores: stores, cache: cache, ttl: ttl, logger: logger}
}

func storeKey(id int64) string {
	return storeKeyPrefix + strconv.FormatInt(id, 10)
}

func (c *Catalog) GetApprovedStores(ctx context.Context) ([]*repository.Store, error) {
	var stores []*repository.Store
	if c.load(ctx, approvedKey, &stores) {
		return stores, nil
	}

	stores, err := c.stores.ListApproved(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved stores: %w", err)
	}
	c.save(ctx, approvedKey, stores)
	return stores, nil
}

func (c *Catalog) GetStore(ctx context.Context, id int64) (*repository.Store, error) {
	key := storeKey(id)
	var store repository.Store
	if c.load(ctx, key, &store) {
		return &store, nil
	}

	s, err := c.stores.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, apperrors.NewStoreNotFound(id)
		}
		return nil, fmt.Errorf("failed to get store: %w", err)
	}
	c.save(ctx, key, s)
	return s, nil
}

func (c *Catalog) GetCapacity(ctx context.Context, id int64) (repository.BagCounts, error) {
	s, err := c.GetStore(ctx, id)
	if err != nil {
		return repository.BagCounts{}, err
	}
	return s.Capacity(), nil
}

// Invalidate drops cached entries after a store record changes.
func (c *Catalog) Invalidate(ctx context.Context, id int64) {
	if err := c.cache.Delete(ctx, storeKey(id), approvedKey); err != nil {
		c.logger.Warn("catalog cache delete failed", zap.Int64("store_id", id), zap.Error(err))
	}
}

func (c *Catalog) load(ctx context.Context, key string, dst interface{}) bool {
	raw, err := c.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			c.logger.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		c.logger.Warn("catalog cache entry corrupted", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (c *Catalog) save(ctx context.Context, key string, v interface{}) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, key, raw, c.ttl); err != nil {
		c.logger.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
}
