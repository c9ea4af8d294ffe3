package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/JawherBalti/HiredIn-Back/internal/domain"
	"github.com/JawherBalti/HiredIn-Back/pkg/audit"
	"github.com/JawherBalti/HiredIn-Back/pkg/logger"
	"github.com/JawherBalti/HiredIn-Back/pkg/realtime"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const deliveryTimeout = 15 * time.Second

var emailSubjects = map[domain.NotificationType]string{
	domain.NotificationJobApplied:               "New application received",
	domain.NotificationApplicationStatusChanged: "Your application was updated",
	domain.NotificationInterviewScheduled:       "Interview scheduled",
	domain.NotificationInterviewUpdated:         "Interview updated",
}

// NotificationDispatcher persists notifications in the caller's transaction
// and pushes them to the recipient once the transaction has committed.
type NotificationDispatcher struct {
	repo        domain.NotificationRepository
	users       domain.UserRepository
	broadcaster domain.Broadcaster
	mailer      domain.Mailer
	audit       domain.AuditRecorder
	wg          sync.WaitGroup
}

// NewNotificationDispatcher wires the delivery channels. mailer may be nil.
func NewNotificationDispatcher(
	repo domain.NotificationRepository,
	users domain.UserRepository,
	broadcaster domain.Broadcaster,
	mailer domain.Mailer,
	auditor domain.AuditRecorder,
) *NotificationDispatcher {
	return &NotificationDispatcher{
		repo:        repo,
		users:       users,
		broadcaster: broadcaster,
		mailer:      mailer,
		audit:       auditor,
	}
}

func (d *NotificationDispatcher) Record(ctx context.Context, intent domain.NotificationIntent) (*domain.Notification, error) {
	data, err := json.Marshal(intent.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode notification data: %w", err)
	}
	n := &domain.Notification{
		ID:          uuid.New(),
		RecipientID: intent.RecipientID,
		SenderID:    intent.SenderID,
		Type:        intent.Type,
		Message:     intent.Message,
		Data:        data,
	}
	if err := d.repo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to record notification: %w", err)
	}
	return n, nil
}

func (d *NotificationDispatcher) Deliver(n *domain.Notification) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
		defer cancel()
		d.deliver(ctx, n)
	}()
}

// Wait blocks until every pending delivery has finished
func (d *NotificationDispatcher) Wait() {
	d.wg.Wait()
}

func (d *NotificationDispatcher) deliver(ctx context.Context, n *domain.Notification) {
	// no WithContext: a failed push must not cancel the email
	var g errgroup.Group
	g.Go(func() error {
		if err := d.push(ctx, n); err != nil {
			d.reportFailure(ctx, n, "push", err)
			return err
		}
		return nil
	})
	g.Go(func() error {
		if err := d.email(ctx, n); err != nil {
			d.reportFailure(ctx, n, "email", err)
			return err
		}
		return nil
	})
	_ = g.Wait()
}

func (d *NotificationDispatcher) push(ctx context.Context, n *domain.Notification) error {
	if d.broadcaster == nil {
		return nil
	}
	return d.broadcaster.Publish(ctx, n.RecipientID, Envelope(n))
}

func (d *NotificationDispatcher) email(ctx context.Context, n *domain.Notification) error {
	if d.mailer == nil || !d.mailer.IsConfigured() {
		return nil
	}
	recipient, err := d.users.GetByID(ctx, n.RecipientID)
	if err != nil {
		return fmt.Errorf("failed to load recipient: %w", err)
	}
	if !recipient.Settings.Notifications.EmailNotifications {
		return nil
	}
	subject := emailSubjects[n.Type]
	if subject == "" {
		subject = "New notification"
	}
	return d.mailer.SendNotificationEmail(recipient.Email, recipient.Name, subject, n.Message)
}

func (d *NotificationDispatcher) reportFailure(ctx context.Context, n *domain.Notification, channel string, err error) {
	logger.Log.Warn("Notification delivery failed",
		"channel", channel,
		"notification_id", n.ID.String(),
		"recipient_id", n.RecipientID,
		"error", err,
	)
	d.audit.Record(ctx, domain.AuditEvent{
		Action:    audit.ActionNotificationDeliveryFailed,
		ActorID:   n.SenderID,
		Subject:   "user",
		SubjectID: n.RecipientID,
		Details: map[string]any{
			"channel":         channel,
			"notification_id": n.ID.String(),
			"type":            string(n.Type),
			"error":           err.Error(),
		},
	})
}

// Envelope is the real-time payload for a recorded notification
func Envelope(n *domain.Notification) []byte {
	id := n.ID
	b, _ := json.Marshal(realtime.Event{
		Type:           string(n.Type),
		Version:        realtime.EventVersion,
		At:             n.CreatedAt.UTC(),
		RecipientID:    n.RecipientID,
		SenderID:       n.SenderID,
		Message:        n.Message,
		NotificationID: &id,
		Data:           n.Data,
	})
	return b
}

// commitAndDeliver runs fn in a transaction and hands every notification it
// recorded to the dispatcher once the transaction has committed.
func commitAndDeliver(ctx context.Context, tx domain.Transactor, notifier domain.NotificationDispatcher, fn func(ctx context.Context, record func(domain.NotificationIntent) error) error) error {
	var recorded []*domain.Notification
	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		recorded = recorded[:0]
		return fn(ctx, func(intent domain.NotificationIntent) error {
			n, err := notifier.Record(ctx, intent)
			if err != nil {
				return err
			}
			recorded = append(recorded, n)
			return nil
		})
	})
	if err != nil {
		return err
	}
	for _, n := range recorded {
		notifier.Deliver(n)
	}
	return nil
}
