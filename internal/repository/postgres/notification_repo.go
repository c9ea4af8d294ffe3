package postgres

import (
	"context"
	"time"

	"github.com/JawherBalti/HiredIn-Back/internal/domain"
	"github.com/JawherBalti/HiredIn-Back/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// sender_id is nulled when the sender account is deleted
const notificationColumns = `id, recipient_id, COALESCE(sender_id, 0), type, message, data, read_at, created_at, updated_at`

type notificationRepo struct {
	db *pgxpool.Pool
}

func NewNotificationRepository(db *pgxpool.Pool) domain.NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	now := time.Now()
	n.CreatedAt = now
	n.UpdatedAt = now
	if len(n.Data) == 0 {
		n.Data = []byte("{}")
	}

	var sender interface{}
	if n.SenderID != 0 {
		sender = n.SenderID
	}
	query := `
		INSERT INTO notifications (id, recipient_id, sender_id, type, message, data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7, $8)`
	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		n.ID, n.RecipientID, sender, n.Type, n.Message, string(n.Data), n.CreatedAt, n.UpdatedAt,
	)
	return err
}

// ListByRecipient returns every notification of the recipient, newest first
func (r *notificationRepo) ListByRecipient(ctx context.Context, recipientID int64) ([]domain.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE recipient_id = $1 ORDER BY created_at DESC, id`
	rows, err := database.Conn(ctx, r.db).Query(ctx, query, recipientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var data []byte
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.SenderID, &n.Type, &n.Message, &data, &n.ReadAt, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		n.Data = data
		list = append(list, n)
	}
	return list, rows.Err()
}

func (r *notificationRepo) CountUnread(ctx context.Context, recipientID int64) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND read_at IS NULL`
	err := database.Conn(ctx, r.db).QueryRow(ctx, query, recipientID).Scan(&count)
	return count, err
}

// MarkRead keeps the first read timestamp when called again
func (r *notificationRepo) MarkRead(ctx context.Context, id uuid.UUID, recipientID int64, at time.Time) error {
	query := `
		UPDATE notifications SET read_at = COALESCE(read_at, $3), updated_at = $3
		WHERE id = $1 AND recipient_id = $2`
	result, err := database.Conn(ctx, r.db).Exec(ctx, query, id, recipientID, at)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, recipientID int64, at time.Time) (int64, error) {
	query := `UPDATE notifications SET read_at = $2, updated_at = $2 WHERE recipient_id = $1 AND read_at IS NULL`
	result, err := database.Conn(ctx, r.db).Exec(ctx, query, recipientID, at)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
