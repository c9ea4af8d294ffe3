package realtime

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const EventVersion = 1

// Event is the envelope pushed to subscribers
type Event struct {
	Type           string          `json:"type"`
	Version        int             `json:"v"`
	At             time.Time       `json:"at"`
	RecipientID    int64           `json:"recipient_id,omitempty"`
	SenderID       int64           `json:"sender_id,omitempty"`
	Message        string          `json:"message,omitempty"`
	NotificationID *uuid.UUID      `json:"notification_id,omitempty"`
	Data           json.RawMessage `json:"data,omitempty"`
}

// MakeEvent builds a bare envelope, used for pings
func MakeEvent(typ string, data any) []byte {
	var raw json.RawMessage
	if data != nil {
		b, _ := json.Marshal(data)
		raw = b
	}
	b, _ := json.Marshal(Event{
		Type:    typ,
		Version: EventVersion,
		At:      time.Now().UTC(),
		Data:    raw,
	})
	return b
}
