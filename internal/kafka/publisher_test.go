package kafka_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/clock"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/db"
	mock_database "gitlab.ozon.dev/pupkingeorgij/luggage/internal/db/mocks"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/kafka"
	mock_kafka "gitlab.ozon.dev/pupkingeorgij/luggage/internal/kafka/mocks"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/repository"
)

var fixedNow = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

type publisherFixture struct {
	db       *mock_database.MockDB
	tx       *mock_database.MockTx
	repo     *mock_kafka.MockOutboxRepository
	producer *mock_kafka.MockProducer
	pub      *kafka.Publisher
}

func newPublisherFixture(t *testing.T, maxAttempts int) *publisherFixture {
	ctrl := gomock.NewController(t)
	f := &publisherFixture{
		db:       mock_database.NewMockDB(ctrl),
		tx:       mock_database.NewMockTx(ctrl),
		repo:     mock_kafka.NewMockOutboxRepository(ctrl),
		producer: mock_kafka.NewMockProducer(ctrl),
	}
	f.pub = kafka.NewPublisher(f.db, f.repo, f.producer, kafka.PublisherConfig{
		PollInterval: time.Millisecond,
		BatchSize:    10,
		MaxAttempts:  maxAttempts,
	}, clock.Func(func() time.Time { return fixedNow }), zap.NewNop())
	return f
}

func task(topic string, attempts int) *repository.OutboxTask {
	return &repository.OutboxTask{
		ID:       uuid.New(),
		Status:   repository.TaskStatusCreated,
		Topic:    topic,
		Payload:  []byte(`{"reservation_number":"R-1"}`),
		Attempts: attempts,
	}
}

func TestPublisher_ProcessBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers and marks done", func(t *testing.T) {
		f := newPublisherFixture(t, 5)
		t1 := task(repository.TopicReservationEvents, 0)
		t2 := task(repository.TopicAuditLogs, 2)

		f.db.EXPECT().BeginTx(gomock.Any()).Return(f.tx, nil)
		f.repo.EXPECT().GetProcessableTasksTx(gomock.Any(), f.tx, 10, 5).Return([]*repository.OutboxTask{t1, t2}, nil)
		f.producer.EXPECT().SendMessage(gomock.Any(), t1.Topic, []byte(t1.ID.String()), []byte(t1.Payload)).Return(nil)
		f.repo.EXPECT().UpdateTaskStatusTx(gomock.Any(), f.tx, t1.ID, repository.TaskStatusDone, 0, nil, &fixedNow).Return(nil)
		f.producer.EXPECT().SendMessage(gomock.Any(), t2.Topic, []byte(t2.ID.String()), []byte(t2.Payload)).Return(nil)
		f.repo.EXPECT().UpdateTaskStatusTx(gomock.Any(), f.tx, t2.ID, repository.TaskStatusDone, 2, nil, &fixedNow).Return(nil)
		f.tx.EXPECT().Commit(gomock.Any()).Return(nil)

		sent, err := f.pub.ProcessBatch(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, sent)
	})

	t.Run("failed send is recorded and the batch goes on", func(t *testing.T) {
		f := newPublisherFixture(t, 5)
		t1 := task(repository.TopicReservationEvents, 1)
		t2 := task(repository.TopicReservationEvents, 0)

		f.db.EXPECT().BeginTx(gomock.Any()).Return(f.tx, nil)
		f.repo.EXPECT().GetProcessableTasksTx(gomock.Any(), f.tx, 10, 5).Return([]*repository.OutboxTask{t1, t2}, nil)
		f.producer.EXPECT().SendMessage(gomock.Any(), t1.Topic, gomock.Any(), gomock.Any()).Return(errors.New("broker down"))
		f.repo.EXPECT().UpdateTaskStatusTx(gomock.Any(), f.tx, t1.ID, repository.TaskStatusFailed, 2, gomock.Any(), nil).
			DoAndReturn(func(_ context.Context, _ db.Tx, _ uuid.UUID, _ repository.TaskStatus, _ int, lastError *string, _ *time.Time) error {
				if lastError == nil || *lastError != "broker down" {
					return errors.New("unexpected last error")
				}
				return nil
			})
		f.producer.EXPECT().SendMessage(gomock.Any(), t2.Topic, gomock.Any(), gomock.Any()).Return(nil)
		f.repo.EXPECT().UpdateTaskStatusTx(gomock.Any(), f.tx, t2.ID, repository.TaskStatusDone, 0, nil, gomock.Any()).Return(nil)
		f.tx.EXPECT().Commit(gomock.Any()).Return(nil)

		sent, err := f.pub.ProcessBatch(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, sent)
	})

	t.Run("empty batch", func(t *testing.T) {
		f := newPublisherFixture(t, 5)

		f.db.EXPECT().BeginTx(gomock.Any()).Return(f.tx, nil)
		f.repo.EXPECT().GetProcessableTasksTx(gomock.Any(), f.tx, 10, 5).Return(nil, nil)
		f.tx.EXPECT().Commit(gomock.Any()).Return(nil)

		sent, err := f.pub.ProcessBatch(ctx)
		require.NoError(t, err)
		assert.Zero(t, sent)
	})

	t.Run("configured attempt limit reaches the query", func(t *testing.T) {
		f := newPublisherFixture(t, 3)

		f.db.EXPECT().BeginTx(gomock.Any()).Return(f.tx, nil)
		f.repo.EXPECT().GetProcessableTasksTx(gomock.Any(), f.tx, 10, 3).Return(nil, nil)
		f.tx.EXPECT().Commit(gomock.Any()).Return(nil)

		_, err := f.pub.ProcessBatch(ctx)
		require.NoError(t, err)
	})

	t.Run("status update failure rolls back", func(t *testing.T) {
		f := newPublisherFixture(t, 5)
		t1 := task(repository.TopicReservationEvents, 0)

		f.db.EXPECT().BeginTx(gomock.Any()).Return(f.tx, nil)
		f.repo.EXPECT().GetProcessableTasksTx(gomock.Any(), f.tx, 10, 5).Return([]*repository.OutboxTask{t1}, nil)
		f.producer.EXPECT().SendMessage(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.repo.EXPECT().UpdateTaskStatusTx(gomock.Any(), f.tx, t1.ID, repository.TaskStatusDone, 0, nil, gomock.Any()).
			Return(errors.New("conn reset"))
		f.tx.EXPECT().Rollback(gomock.Any()).Return(nil)

		_, err := f.pub.ProcessBatch(ctx)
		assert.Error(t, err)
	})

	t.Run("begin failure", func(t *testing.T) {
		f := newPublisherFixture(t, 5)
		f.db.EXPECT().BeginTx(gomock.Any()).Return(nil, errors.New("pool closed"))

		_, err := f.pub.ProcessBatch(ctx)
		assert.Error(t, err)
	})
}

func TestPublisher_RunStopsOnShutdown(t *testing.T) {
	f := newPublisherFixture(t, 5)
	f.db.EXPECT().BeginTx(gomock.Any()).Return(f.tx, nil).AnyTimes()
	f.repo.EXPECT().GetProcessableTasksTx(gomock.Any(), f.tx, 10, 5).Return(nil, nil).AnyTimes()
	f.tx.EXPECT().Commit(gomock.Any()).Return(nil).AnyTimes()
	f.producer.EXPECT().Close().Return(nil)

	done := make(chan struct{})
	go func() {
		f.pub.Run(context.Background())
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	f.pub.Shutdown()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publisher did not stop")
	}
}
