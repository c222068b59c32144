package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"runtime/debug"

	"dananglover/internal/observability"

	"github.com/redis/go-redis/v9"
)

const (
	broadcastChannel  = "events:broadcast"
	userChannelPrefix = "events:user:"
)

// Event types pushed over the stream.
const (
	EventReviewCreated   = "review.created"
	EventCommentCreated  = "comment.created"
	EventFavoriteToggled = "favorite.toggled"
	EventPostPublished   = "post.published"
	EventPlaceCreated    = "place.created"
)

// Event is the wire shape of one stream message.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Notifier publishes events into Redis channels so every server instance
// can fan them out to its own websocket clients.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

func marshalEvent(eventType string, payload interface{}) (string, error) {
	data, err := json.Marshal(Event{Type: eventType, Payload: payload})
	if err != nil {
		return "", fmt.Errorf("marshal event: %w", err)
	}
	return string(data), nil
}

// PublishUser sends an event to one user's channel.
func (n *Notifier) PublishUser(ctx context.Context, userID uint, eventType string, payload interface{}) error {
	if n.rdb == nil {
		return nil
	}
	msg, err := marshalEvent(eventType, payload)
	if err != nil {
		return err
	}
	observability.WebsocketEvents.WithLabelValues(eventType).Inc()
	channel := fmt.Sprintf("%s%d", userChannelPrefix, userID)
	return n.rdb.Publish(ctx, channel, msg).Err()
}

// PublishBroadcast sends an event to all connected users.
func (n *Notifier) PublishBroadcast(ctx context.Context, eventType string, payload interface{}) error {
	if n.rdb == nil {
		return nil
	}
	msg, err := marshalEvent(eventType, payload)
	if err != nil {
		return err
	}
	observability.WebsocketEvents.WithLabelValues(eventType).Inc()
	return n.rdb.Publish(ctx, broadcastChannel, msg).Err()
}

// StartSubscriber subscribes to the event channels and calls onMessage for
// each incoming message. onMessage receives channel and payload.
func (n *Notifier) StartSubscriber(ctx context.Context, onMessage func(channel, payload string)) error {
	if n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, userChannelPrefix+"*", broadcastChannel)
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("PANIC in event subscriber: %v\n%s", r, debug.Stack())
						}
					}()
					onMessage(msg.Channel, msg.Payload)
				}()
			}
		}
	}()

	return nil
}
