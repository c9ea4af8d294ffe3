package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/JawherBalti/HiredIn-Back/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const channelPrefix = "notifications:user:"

// Channel is the pub/sub channel carrying one recipient's events
func Channel(recipientID int64) string {
	return channelPrefix + strconv.FormatInt(recipientID, 10)
}

// RecipientFromChannel reverses Channel
func RecipientFromChannel(channel string) (int64, error) {
	if !strings.HasPrefix(channel, channelPrefix) {
		return 0, fmt.Errorf("redis: unexpected channel %q", channel)
	}
	return strconv.ParseInt(strings.TrimPrefix(channel, channelPrefix), 10, 64)
}

// Broadcaster publishes events to Redis so every API instance can
// forward them to its locally connected streams.
type Broadcaster struct {
	client *redis.Client
}

func NewBroadcaster(client *redis.Client) *Broadcaster {
	return &Broadcaster{client: client}
}

func (b *Broadcaster) Publish(ctx context.Context, recipientID int64, payload []byte) error {
	if err := b.client.Publish(ctx, Channel(recipientID), payload).Err(); err != nil {
		return fmt.Errorf("redis: publish failed: %w", err)
	}
	return nil
}

// LocalPublisher receives relayed events; *realtime.Hub satisfies it
type LocalPublisher interface {
	Publish(ctx context.Context, recipientID int64, payload []byte) error
}

// Relay forwards every recipient channel into local until ctx is done
func Relay(ctx context.Context, client *redis.Client, local LocalPublisher) error {
	sub := client.PSubscribe(ctx, channelPrefix+"*")
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("redis: subscribe failed: %w", err)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			recipientID, err := RecipientFromChannel(msg.Channel)
			if err != nil {
				logger.Log.Warn("Dropping relayed event", "channel", msg.Channel, "error", err)
				continue
			}
			_ = local.Publish(ctx, recipientID, []byte(msg.Payload))
		}
	}
}
