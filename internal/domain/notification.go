package domain

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationJobApplied               NotificationType = "job_applied"
	NotificationApplicationStatusChanged NotificationType = "application_status_changed"
	NotificationInterviewScheduled       NotificationType = "interview_scheduled"
	NotificationInterviewUpdated         NotificationType = "interview_updated"
)

// Notification is a persisted, recipient-scoped event. Only ReadAt ever changes.
type Notification struct {
	ID          uuid.UUID        `json:"id"`
	RecipientID int64            `json:"recipient_id"`
	SenderID    int64            `json:"sender_id"`
	Type        NotificationType `json:"type"`
	Message     string           `json:"message"`
	Data        json.RawMessage  `json:"data"`
	ReadAt      *time.Time       `json:"read_at"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// NotificationIntent is the decision that a notification is due, before it is recorded
type NotificationIntent struct {
	RecipientID int64
	SenderID    int64
	Type        NotificationType
	Message     string
	Data        map[string]any
}

// NotificationInbox splits a recipient's notifications by read state
type NotificationInbox struct {
	Unread []Notification `json:"unread"`
	Read   []Notification `json:"read"`
}

type NotificationRepository interface {
	Create(ctx context.Context, n *Notification) error
	ListByRecipient(ctx context.Context, recipientID int64) ([]Notification, error)
	CountUnread(ctx context.Context, recipientID int64) (int64, error)
	// MarkRead returns ErrNotFound when id does not belong to recipientID
	MarkRead(ctx context.Context, id uuid.UUID, recipientID int64, at time.Time) error
	MarkAllRead(ctx context.Context, recipientID int64, at time.Time) (int64, error)
}

// NotificationDispatcher records notifications inside the caller's transaction
// and delivers them once that transaction has committed.
type NotificationDispatcher interface {
	Record(ctx context.Context, intent NotificationIntent) (*Notification, error)
	// Deliver is best effort and never reports failure to the caller
	Deliver(n *Notification)
}

type NotificationUsecase interface {
	Inbox(ctx context.Context, actor Actor) (*NotificationInbox, error)
	UnreadCount(ctx context.Context, actor Actor) (int64, error)
	MarkRead(ctx context.Context, actor Actor, id uuid.UUID) error
	MarkAllRead(ctx context.Context, actor Actor) (int64, error)
}
