//go:generate mockgen -source=publisher.go -destination=mocks/publisher.go -package=mock_kafka
package kafka

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/clock"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/db"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/metrics"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/repository"
)

type OutboxRepository interface {
	GetProcessableTasksTx(ctx context.Context, tx db.Tx, limit, maxAttempts int) ([]*repository.OutboxTask, error)
	UpdateTaskStatusTx(ctx context.Context, tx db.Tx, id uuid.UUID, status repository.TaskStatus, attempts int, lastError *string, completedAt *time.Time) error
}

type PublisherConfig struct {
	PollInterval time.Duration
	BatchSize    int
	MaxAttempts  int
}

// Publisher relays outbox rows to Kafka. Rows stay locked while a batch is
// sent so that concurrent publishers never deliver the same task twice, and
// a crash mid-batch leaves the rows pending.
type Publisher struct {
	db       db.DB
	repo     OutboxRepository
	producer Producer
	config   PublisherConfig
	clock    clock.Clock
	logger   *zap.Logger

	wg             sync.WaitGroup
	shutdownSignal chan struct{}
	stopOnce       sync.Once
}

func NewPublisher(database db.DB, repo OutboxRepository, producer Producer, config PublisherConfig, clk clock.Clock, logger *zap.Logger) *Publisher {
	if config.PollInterval <= 0 {
		config.PollInterval = time.Second
	}
	if config.BatchSize <= 0 {
		config.BatchSize = 50
	}
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 5
	}
	if clk == nil {
		clk = clock.Real{}
	}
	return &Publisher{
		db:             database,
		repo:           repo,
		producer:       producer,
		config:         config,
		clock:          clk,
		logger:         logger.With(zap.String("component", "outbox_publisher")),
		shutdownSignal: make(chan struct{}),
	}
}

func (p *Publisher) Run(ctx context.Context) {
	p.logger.Info("starting outbox publisher", zap.Duration("interval", p.config.PollInterval))
	p.wg.Add(1)
	defer p.wg.Done()

	ticker := time.NewTicker(p.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := p.ProcessBatch(ctx); err != nil {
				p.logger.Error("failed to process outbox batch", zap.Error(err))
			}
		case <-p.shutdownSignal:
			p.logger.Info("outbox publisher stopped")
			return
		case <-ctx.Done():
			p.logger.Info("outbox publisher context cancelled")
			return
		}
	}
}

// Shutdown stops Run, waits for the current batch and closes the producer.
func (p *Publisher) Shutdown() {
	p.stopOnce.Do(func() {
		close(p.shutdownSignal)
		done := make(chan struct{})
		go func() {
			p.wg.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(30 * time.Second):
			p.logger.Warn("outbox publisher shutdown timed out")
		}

		if err := p.producer.Close(); err != nil {
			p.logger.Error("failed to close producer", zap.Error(err))
		}
	})
}

// ProcessBatch delivers one batch and returns the number of tasks sent.
// A failed send only marks its task FAILED; the rest of the batch goes on.
func (p *Publisher) ProcessBatch(ctx context.Context) (int, error) {
	sent := 0
	err := db.RunInTx(ctx, p.db, func(tx db.Tx) error {
		tasks, err := p.repo.GetProcessableTasksTx(ctx, tx, p.config.BatchSize, p.config.MaxAttempts)
		if err != nil {
			return err
		}
		for _, task := range tasks {
			if err := ctx.Err(); err != nil {
				return err
			}
			ok, err := p.deliver(ctx, tx, task)
			if err != nil {
				return err
			}
			if ok {
				sent++
			}
		}
		return nil
	})
	return sent, err
}

func (p *Publisher) deliver(ctx context.Context, tx db.Tx, task *repository.OutboxTask) (bool, error) {
	l := p.logger.With(zap.String("task_id", task.ID.String()), zap.String("topic", task.Topic))

	sendErr := p.producer.SendMessage(ctx, task.Topic, []byte(task.ID.String()), task.Payload)
	if sendErr != nil {
		attempts := task.Attempts + 1
		msg := sendErr.Error()
		if attempts >= p.config.MaxAttempts {
			l.Error("outbox task gave up", zap.Int("attempts", attempts), zap.Error(sendErr))
		} else {
			l.Warn("outbox task send failed", zap.Int("attempts", attempts), zap.Error(sendErr))
		}
		return false, p.repo.UpdateTaskStatusTx(ctx, tx, task.ID, repository.TaskStatusFailed, attempts, &msg, nil)
	}

	now := p.clock.Now()
	if err := p.repo.UpdateTaskStatusTx(ctx, tx, task.ID, repository.TaskStatusDone, task.Attempts, nil, &now); err != nil {
		return false, err
	}
	metrics.OutboxPublishedTotal.WithLabelValues(task.Topic).Inc()
	l.Debug("outbox task delivered")
	return true, nil
}
