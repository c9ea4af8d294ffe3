package v1

import (
	"io"
	"net/http"
	"time"

	"github.com/JawherBalti/HiredIn-Back/internal/delivery/http/response"
	"github.com/JawherBalti/HiredIn-Back/internal/domain"
	"github.com/JawherBalti/HiredIn-Back/pkg/apperror"
	"github.com/JawherBalti/HiredIn-Back/pkg/realtime"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const streamKeepAlive = 25 * time.Second

// Subscriptions hands out per-recipient event channels
type Subscriptions interface {
	Subscribe(recipientID int64) chan []byte
	Unsubscribe(recipientID int64, ch chan []byte)
}

type NotificationHandler struct {
	notificationUC domain.NotificationUsecase
	hub            Subscriptions
}

func NewNotificationHandler(protected *gin.RouterGroup, notificationUC domain.NotificationUsecase, hub Subscriptions) {
	handler := &NotificationHandler{notificationUC: notificationUC, hub: hub}

	notifications := protected.Group("/notifications")
	{
		notifications.GET("", handler.Inbox)
		notifications.GET("/unread-count", handler.UnreadCount)
		notifications.POST("/:id/read", handler.MarkRead)
		notifications.POST("/mark-all-read", handler.MarkAllRead)
		notifications.GET("/stream", handler.Stream)
	}
}

// Inbox godoc
// @Summary      Get the caller's notifications
// @Description  Unread and read notifications, newest first
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /notifications [get]
// @Security     BearerAuth
func (h *NotificationHandler) Inbox(c *gin.Context) {
	a, err := actor(c)
	if err != nil {
		c.Error(err)
		return
	}
	inbox, err := h.notificationUC.Inbox(c.Request.Context(), a)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Notifications retrieved", inbox)
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	a, err := actor(c)
	if err != nil {
		c.Error(err)
		return
	}
	count, err := h.notificationUC.UnreadCount(c.Request.Context(), a)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Unread count retrieved", gin.H{"count": count})
}

// MarkRead godoc
// @Summary      Mark one notification as read
// @Tags         notifications
// @Produce      json
// @Param        id   path      string  true  "Notification ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /notifications/{id}/read [post]
// @Security     BearerAuth
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	a, err := actor(c)
	if err != nil {
		c.Error(err)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NotFound("Notification not found"))
		return
	}
	if err := h.notificationUC.MarkRead(c.Request.Context(), a, id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Notification marked as read", nil)
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	a, err := actor(c)
	if err != nil {
		c.Error(err)
		return
	}
	updated, err := h.notificationUC.MarkAllRead(c.Request.Context(), a)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "All notifications marked as read", gin.H{"updated": updated})
}

// Stream godoc
// @Summary      Subscribe to live notifications
// @Description  Server-sent events. Browsers may pass the token as access_token.
// @Tags         notifications
// @Produce      text/event-stream
// @Router       /notifications/stream [get]
// @Security     BearerAuth
func (h *NotificationHandler) Stream(c *gin.Context) {
	a, err := actor(c)
	if err != nil {
		c.Error(err)
		return
	}

	ch := h.hub.Subscribe(a.UserID)
	defer h.hub.Unsubscribe(a.UserID, ch)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	c.SSEvent("ping", string(realtime.MakeEvent("ping", nil)))
	c.Writer.Flush()

	ticker := time.NewTicker(streamKeepAlive)
	defer ticker.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case payload, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("notification", string(payload))
			return true
		case <-ticker.C:
			c.SSEvent("ping", string(realtime.MakeEvent("ping", nil)))
			return true
		}
	})
}
