package repository

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	TaskStatusCreated    TaskStatus = "CREATED"
	TaskStatusProcessing TaskStatus = "PROCESSING"
	TaskStatusFailed     TaskStatus = "FAILED"
	TaskStatusDone       TaskStatus = "DONE"
)

const (
	TopicReservationEvents = "reservation_events"
	TopicAuditLogs         = "audit_logs"
)

type OutboxTask struct {
	ID          uuid.UUID       `db:"id"`
	Status      TaskStatus      `db:"status"`
	Payload     json.RawMessage `db:"payload"`
	Topic       string          `db:"topic"`
	Attempts    int             `db:"attempts"`
	LastError   *string         `db:"last_error"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
	CompletedAt *time.Time      `db:"completed_at"`
}

// ReservationEvent is published for every reservation status change.
// Subscribers (notifications, analytics) must not be able to block it.
type ReservationEvent struct {
	ReservationNumber string            `json:"reservation_number"`
	StoreID           int64             `json:"store_id"`
	UserID            string            `json:"user_id"`
	OldStatus         ReservationStatus `json:"old_status,omitempty"`
	NewStatus         ReservationStatus `json:"new_status"`
	Reason            string            `json:"reason,omitempty"`
	StorageCode       string            `json:"storage_code,omitempty"`
	OccurredAt        time.Time         `json:"occurred_at"`
}

type AuditLogPayload struct {
	Timestamp         time.Time `json:"timestamp"`
	StaffUser         string    `json:"staff_user,omitempty"`
	UserID            string    `json:"user_id,omitempty"`
	ReservationNumber string    `json:"reservation_number,omitempty"`
	StorageCode       string    `json:"storage_code,omitempty"`
	Method            string    `json:"method"`
	Path              string    `json:"path"`
	Handler           string    `json:"handler"`
	StatusCode        int       `json:"status_code"`
	Request           string    `json:"request,omitempty"`
	Response          string    `json:"response,omitempty"`
	Action            string    `json:"action"`
	EntityID          string    `json:"entity_id"`
	EntityType        string    `json:"entity_type"`
}
