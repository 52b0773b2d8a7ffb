package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/repository"
)

// Consumer reads reservation events and audit records and logs them.
type Consumer struct {
	reader *kafka.Reader
	logger *zap.Logger
}

func NewConsumer(brokers []string, groupID string, logger *zap.Logger) *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		GroupID:        groupID,
		GroupTopics:    []string{repository.TopicReservationEvents, repository.TopicAuditLogs},
		MinBytes:       10e3,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		MaxWait:        3 * time.Second,
	})
	return &Consumer{reader: r, logger: logger.With(zap.String("component", "consumer"))}
}

// Run reads until ctx is cancelled. Undecodable messages are logged and skipped.
func (c *Consumer) Run(ctx context.Context) error {
	c.logger.Info("consumer started", zap.Strings("topics", c.reader.Config().GroupTopics))
	for {
		m, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.logger.Error("failed to read message", zap.Error(err))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(5 * time.Second):
			}
			continue
		}
		if err := Handle(c.logger, m); err != nil {
			c.logger.Warn("skipping message", zap.String("topic", m.Topic), zap.Int64("offset", m.Offset), zap.Error(err))
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}

var errUnknownTopic = errors.New("unknown topic")

// Handle decodes one message by topic and logs its fields.
func Handle(logger *zap.Logger, m kafka.Message) error {
	switch m.Topic {
	case repository.TopicReservationEvents:
		var ev repository.ReservationEvent
		if err := json.Unmarshal(m.Value, &ev); err != nil {
			return fmt.Errorf("decode reservation event: %w", err)
		}
		logger.Info("reservation event",
			zap.String("reservation_number", ev.ReservationNumber),
			zap.Int64("store_id", ev.StoreID),
			zap.String("old_status", string(ev.OldStatus)),
			zap.String("new_status", string(ev.NewStatus)),
			zap.String("reason", ev.Reason),
			zap.Time("occurred_at", ev.OccurredAt),
		)
	case repository.TopicAuditLogs:
		var entry repository.AuditLogPayload
		if err := json.Unmarshal(m.Value, &entry); err != nil {
			return fmt.Errorf("decode audit entry: %w", err)
		}
		logger.Info("audit entry",
			zap.String("action", entry.Action),
			zap.String("entity_type", entry.EntityType),
			zap.String("entity_id", entry.EntityID),
			zap.String("staff_user", entry.StaffUser),
			zap.Int("status_code", entry.StatusCode),
			zap.Time("timestamp", entry.Timestamp),
		)
	default:
		return fmt.Errorf("%w: %s", errUnknownTopic, m.Topic)
	}
	return nil
}
