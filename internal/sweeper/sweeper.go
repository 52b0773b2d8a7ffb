//go:generate mockgen -source=sweeper.go -destination=mocks/sweeper.go -package=mock_sweeper
package sweeper

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/clock"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/metrics"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/repository"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/reservation"
)

type Mode string

const (
	ModeFrequent Mode = "frequent"
	ModeFull     Mode = "full"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeFrequent, ModeFull:
		return Mode(s), nil
	case "":
		return ModeFull, nil
	}
	return "", fmt.Errorf("unknown sweep mode %q", s)
}

type StoreSource interface {
	GetApprovedStores(ctx context.Context) ([]*repository.Store, error)
}

type Expirer interface {
	ExpireOverdue(ctx context.Context, store *repository.Store, now time.Time) (reservation.SweepOutcome, error)
}

type SkipCache interface {
	CanSkip(storeID int64, now time.Time) bool
	Generation(storeID int64) uint64
	Set(storeID int64, gen uint64, next *time.Time, now time.Time) bool
}

type Config struct {
	FrequentInterval time.Duration
	FullInterval     time.Duration
	StoreTimeout     time.Duration
	Workers          int
}

type Report struct {
	Mode    Mode `json:"mode"`
	Stores  int  `json:"stores"`
	Skipped int  `json:"skipped"`
	Expired int  `json:"expired"`
	Failed  int  `json:"failed"`
}

// Sweeper completes overdue reservations store by store. A store that fails
// or times out is skipped until the next sweep.
type Sweeper struct {
	stores  StoreSource
	expirer Expirer
	cache   SkipCache
	clock   clock.Clock
	cfg     Config
	logger  *zap.Logger

	mu sync.Mutex
}

func New(stores StoreSource, expirer Expirer, cache SkipCache, clk clock.Clock, cfg Config, logger *zap.Logger) *Sweeper {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.StoreTimeout <= 0 {
		cfg.StoreTimeout = 30 * time.Second
	}
	if clk == nil {
		clk = clock.Real{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sweeper{
		stores:  stores,
		expirer: expirer,
		cache:   cache,
		clock:   clk,
		cfg:     cfg,
		logger:  logger.With(zap.String("component", "sweeper")),
	}
}

// Sweep runs one pass over every approved store. Sweeps never overlap.
func (s *Sweeper) Sweep(ctx context.Context, mode Mode) (Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	defer func() {
		metrics.SweepDuration.WithLabelValues(string(mode)).Observe(time.Since(start).Seconds())
	}()

	report := Report{Mode: mode}
	stores, err := s.stores.GetApprovedStores(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to list stores: %w", err)
	}
	report.Stores = len(stores)

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(s.cfg.Workers)

	for _, store := range stores {
		store := store
		now := s.clock.Now()
		if mode == ModeFrequent && s.cache != nil && s.cache.CanSkip(store.ID, now) {
			metrics.SweepStoresSkippedTotal.Inc()
			report.Skipped++
			continue
		}

		g.Go(func() error {
			expired, err := s.sweepStore(ctx, store, mode)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				report.Failed++
				return nil
			}
			report.Expired += expired
			return nil
		})
	}
	_ = g.Wait()

	s.logger.Info("sweep finished",
		zap.String("mode", string(mode)),
		zap.Int("stores", report.Stores),
		zap.Int("skipped", report.Skipped),
		zap.Int("expired", report.Expired),
		zap.Int("failed", report.Failed),
		zap.Duration("took", time.Since(start)),
	)
	return report, ctx.Err()
}

func (s *Sweeper) sweepStore(ctx context.Context, store *repository.Store, mode Mode) (int, error) {
	storeCtx, cancel := context.WithTimeout(ctx, s.cfg.StoreTimeout)
	defer cancel()

	var gen uint64
	if s.cache != nil {
		gen = s.cache.Generation(store.ID)
	}
	now := s.clock.Now()
	out, err := s.expirer.ExpireOverdue(storeCtx, store, now)
	if err != nil {
		metrics.SweepStoreFailuresTotal.WithLabelValues(string(mode)).Inc()
		s.logger.Error("store sweep failed", zap.Int64("store_id", store.ID), zap.Error(err))
		return 0, err
	}
	if s.cache != nil {
		if !s.cache.Set(store.ID, gen, out.NextBoundary, now) {
			s.logger.Debug("store changed during sweep, bound not cached", zap.Int64("store_id", store.ID))
		}
	}
	if out.Expired > 0 {
		s.logger.Info("reservations expired", zap.Int64("store_id", store.ID), zap.Int("count", out.Expired))
	}
	return out.Expired, nil
}

// Run sweeps fully once, then on the frequent and full cadences until ctx
// is cancelled. Failed sweeps are logged and the loop continues.
func (s *Sweeper) Run(ctx context.Context) error {
	s.logger.Info("starting sweeper",
		zap.Duration("frequent", s.cfg.FrequentInterval),
		zap.Duration("full", s.cfg.FullInterval),
		zap.Int("workers", s.cfg.Workers),
	)
	s.runOnce(ctx, ModeFull)

	frequent := time.NewTicker(s.cfg.FrequentInterval)
	defer frequent.Stop()
	full := time.NewTicker(s.cfg.FullInterval)
	defer full.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("sweeper stopped")
			return nil
		case <-full.C:
			s.runOnce(ctx, ModeFull)
		case <-frequent.C:
			s.runOnce(ctx, ModeFrequent)
		}
	}
}

func (s *Sweeper) runOnce(ctx context.Context, mode Mode) {
	if _, err := s.Sweep(ctx, mode); err != nil && ctx.Err() == nil {
		s.logger.Error("sweep failed", zap.String("mode", string(mode)), zap.Error(err))
	}
}
