package main

import (
	"context"
	"errors"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/cache"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/catalog"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/clock"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/config"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/custody"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/db"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/filestore"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/grpcserver"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/kafka"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/ledger"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/logger"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/pricing"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/repository/postgresql"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/reservation"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/server"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/sweeper"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/token"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/users"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		logger.New("error", "console", "luggage").Fatal("Config load error", zap.Error(err))
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format, "luggage")
	defer func() { _ = log.Sync() }()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("Service stopped with error", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
	log.Info("Service gracefully stopped")
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	if err := db.Migrate(cfg.DB.DSN()); err != nil {
		return err
	}

	database, err := db.NewDb(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer database.Close()

	if cfg.AdminPassword == "" {
		log.Warn("ADMIN_PASSWORD is empty, skipping admin bootstrap")
	} else if err := db.InitAdmin(ctx, database, cfg.AdminUsername, cfg.AdminPassword, log); err != nil {
		return err
	}

	clk := clock.Real{}

	storeRepo := postgresql.NewStoreRepo(database)
	reservationRepo := postgresql.NewReservationRepo(database)
	historyRepo := postgresql.NewHistoryRepo(database)
	itemRepo := postgresql.NewStorageItemRepo(database)
	customerRepo := postgresql.NewCustomerRepo(database)
	staffRepo := postgresql.NewStaffUserRepo(database)
	outboxRepo := postgresql.NewOutboxTaskRepo()

	storeCache := catalog.NewCache(ctx, cfg.Redis, log)
	defer func() {
		if c, ok := storeCache.(interface{ Close() error }); ok {
			_ = c.Close()
		}
	}()
	stores := catalog.New(storeRepo, storeCache, cfg.Redis.TTL, log)

	tariff, err := pricing.NewTariff(cfg.Tariff.Small, cfg.Tariff.Medium, cfg.Tariff.Large)
	if err != nil {
		return err
	}
	tokens, err := token.NewManager(cfg.TokenSecret, cfg.TokenTTL, clk)
	if err != nil {
		return err
	}
	sweepCache := cache.NewSweepCache(cfg.Sweeper.CacheTTL)

	reservations := reservation.New(reservation.Deps{
		DB:           database,
		Stores:       storeRepo,
		Reservations: reservationRepo,
		History:      historyRepo,
		Outbox:       outboxRepo,
		Ledger:       ledger.New(reservationRepo),
		Pricer:       tariff,
		Tokens:       tokens,
		Sweep:        sweepCache,
		Clock:        clk,
		Location:     cfg.Location,
		MaxDays:      cfg.MaxReservationDays,
		Logger:       log,
	})

	directory := users.NewDirectory(customerRepo)

	var files custody.FileStore
	if cfg.FileStoreURL != "" {
		files = filestore.NewHTTPStore(cfg.FileStoreURL, cfg.FileStoreTimeout, log)
	} else {
		log.Warn("FILESTORE_URL is empty, check-in photos will be dropped")
	}

	custodian := custody.New(custody.Deps{
		DB:           database,
		Reservations: reservations,
		Items:        itemRepo,
		Files:        files,
		Users:        directory,
		Tokens:       tokens,
		Catalog:      stores,
		Clock:        clk,
		Logger:       log,
	})

	sweep := sweeper.New(stores, reservations, sweepCache, clk, sweeper.Config{
		FrequentInterval: cfg.Sweeper.FrequentInterval,
		FullInterval:     cfg.Sweeper.FullInterval,
		StoreTimeout:     cfg.Sweeper.StoreTimeout,
		Workers:          cfg.Sweeper.Workers,
	}, log)

	var producer kafka.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		producer = kafka.NewWriterProducer(cfg.Kafka.Brokers, log)
	} else {
		producer = kafka.NewLogProducer(log)
	}
	publisher := kafka.NewPublisher(database, outboxRepo, producer, kafka.PublisherConfig{
		PollInterval: cfg.Kafka.PublishInterval,
		BatchSize:    cfg.Kafka.PublishBatchSize,
		MaxAttempts:  cfg.Kafka.PublishMaxAttempts,
	}, clk, log)

	audit := server.NewAuditManager(cfg.AuditWorkers, cfg.AuditBatchSize, cfg.AuditFlushInterval,
		server.NewOutboxAuditWriter(database, outboxRepo), log)

	httpServer := server.New(server.Deps{
		Reservations: reservations,
		Custody:      custodian,
		Sweeper:      sweep,
		Customers:    directory,
		Users:        staffRepo,
		Health:       database,
		Audit:        audit,
		Logger:       log,
	})

	grpcServer := grpcserver.NewServer(reservations, custodian, staffRepo, log).NewGRPCServer()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpServer.Run(gctx, cfg.HTTPPort)
	})
	g.Go(func() error {
		return serveGRPC(gctx, grpcServer, cfg.GRPCPort, log)
	})
	g.Go(func() error {
		return sweep.Run(gctx)
	})
	g.Go(func() error {
		publisher.Run(gctx)
		return nil
	})

	log.Info("Service started", zap.String("http_port", cfg.HTTPPort), zap.String("grpc_port", cfg.GRPCPort))

	err = g.Wait()
	publisher.Shutdown()
	return err
}

func serveGRPC(ctx context.Context, srv *grpc.Server, port string, log *zap.Logger) error {
	lis, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("grpc server starting", zap.String("port", port))
		if err := srv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	stopped := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(30 * time.Second):
		log.Warn("grpc graceful stop timed out")
		srv.Stop()
	}
	log.Info("grpc server stopped")
	return nil
}
