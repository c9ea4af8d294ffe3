package usecase

import (
	"context"
	"time"

	"github.com/JawherBalti/HiredIn-Back/internal/domain"

	"github.com/google/uuid"
)

type notificationUsecase struct {
	repo domain.NotificationRepository
}

func NewNotificationUsecase(repo domain.NotificationRepository) domain.NotificationUsecase {
	return &notificationUsecase{repo: repo}
}

// Inbox splits the actor's notifications into unread and read, newest first
func (uc *notificationUsecase) Inbox(ctx context.Context, actor domain.Actor) (*domain.NotificationInbox, error) {
	list, err := uc.repo.ListByRecipient(ctx, actor.UserID)
	if err != nil {
		return nil, fail(err, "")
	}
	inbox := &domain.NotificationInbox{
		Unread: []domain.Notification{},
		Read:   []domain.Notification{},
	}
	for _, n := range list {
		if n.ReadAt == nil {
			inbox.Unread = append(inbox.Unread, n)
		} else {
			inbox.Read = append(inbox.Read, n)
		}
	}
	return inbox, nil
}

func (uc *notificationUsecase) UnreadCount(ctx context.Context, actor domain.Actor) (int64, error) {
	count, err := uc.repo.CountUnread(ctx, actor.UserID)
	if err != nil {
		return 0, fail(err, "")
	}
	return count, nil
}

func (uc *notificationUsecase) MarkRead(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	if err := uc.repo.MarkRead(ctx, id, actor.UserID, time.Now()); err != nil {
		return fail(err, "Notification not found")
	}
	return nil
}

func (uc *notificationUsecase) MarkAllRead(ctx context.Context, actor domain.Actor) (int64, error) {
	n, err := uc.repo.MarkAllRead(ctx, actor.UserID, time.Now())
	if err != nil {
		return 0, fail(err, "")
	}
	return n, nil
}
