package domain

import (
	"context"
	"io"
	"time"
)

// Transactor runs fn inside a single database transaction. Repositories
// called with the ctx handed to fn take part in that transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// FileStorage keeps uploaded resume files
type FileStorage interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	PresignGet(ctx context.Context, key, downloadName string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

// Broadcaster pushes a serialized event to a recipient's real-time channel
type Broadcaster interface {
	Publish(ctx context.Context, recipientID int64, payload []byte) error
}

// Mailer sends a plain notification email
type Mailer interface {
	IsConfigured() bool
	SendNotificationEmail(to, recipientName, subject, message string) error
}

// AuditEvent describes a workflow action worth keeping an audit trail of
type AuditEvent struct {
	Action    string
	ActorID   int64
	Subject   string
	SubjectID int64
	Details   map[string]any
}

type AuditRecorder interface {
	Record(ctx context.Context, event AuditEvent)
}
