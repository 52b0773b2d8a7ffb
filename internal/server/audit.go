package server

import (
	"context"
	"fmt"
	"time"

	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/db"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/repository"
)

type AuditLogEntry = repository.AuditLogPayload

// AuditWriter persists one batch of audit entries.
type AuditWriter interface {
	WriteBatch(ctx context.Context, batch []AuditLogEntry) error
}

type AuditEnqueuer interface {
	EnqueueTx(ctx context.Context, tx db.Tx, topic string, payload interface{}, at time.Time) error
}

// OutboxAuditWriter stores each batch as audit_logs outbox tasks in one
// transaction; the outbox publisher delivers them to Kafka.
type OutboxAuditWriter struct {
	db     db.DB
	outbox AuditEnqueuer
}

func NewOutboxAuditWriter(database db.DB, outbox AuditEnqueuer) *OutboxAuditWriter {
	return &OutboxAuditWriter{db: database, outbox: outbox}
}

func (w *OutboxAuditWriter) WriteBatch(ctx context.Context, batch []AuditLogEntry) error {
	if len(batch) == 0 {
		return nil
	}
	return db.RunInTx(ctx, w.db, func(tx db.Tx) error {
		for _, entry := range batch {
			if err := w.outbox.EnqueueTx(ctx, tx, repository.TopicAuditLogs, entry, entry.Timestamp); err != nil {
				return fmt.Errorf("failed to enqueue audit entry: %w", err)
			}
		}
		return nil
	})
}
