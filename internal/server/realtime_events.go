package server

import (
	"context"
	"encoding/json"
	"log"

	"dananglover/internal/notifications"
)

// Event type aliases keep handler code free of the notifications import.
const (
	EventPlaceCreated    = notifications.EventPlaceCreated
	EventReviewCreated   = notifications.EventReviewCreated
	EventCommentCreated  = notifications.EventCommentCreated
	EventFavoriteToggled = notifications.EventFavoriteToggled
	EventPostPublished   = notifications.EventPostPublished
)

// publishUserEvent delivers an event to one user's connections. When Redis is
// available the event goes through pub/sub so every instance's hub sees it;
// the local hub only gets a direct broadcast when there is no notifier,
// otherwise the wired subscription would deliver the event twice.
func (s *Server) publishUserEvent(userID uint, eventType string, payload map[string]interface{}) {
	if s.notifier != nil {
		if err := s.notifier.PublishUser(context.Background(), userID, eventType, payload); err != nil {
			log.Printf("failed to publish %s event to user %d: %v", eventType, userID, err)
		}
		return
	}
	if s.hub != nil {
		s.hub.Broadcast(userID, marshalLocalEvent(eventType, payload))
	}
}

func (s *Server) publishBroadcastEvent(eventType string, payload map[string]interface{}) {
	if s.notifier != nil {
		if err := s.notifier.PublishBroadcast(context.Background(), eventType, payload); err != nil {
			log.Printf("failed to publish %s broadcast event: %v", eventType, err)
		}
		return
	}
	if s.hub != nil {
		s.hub.BroadcastAll(marshalLocalEvent(eventType, payload))
	}
}

func marshalLocalEvent(eventType string, payload map[string]interface{}) string {
	msg, err := json.Marshal(notifications.Event{
		Type:    eventType,
		Payload: payload,
	})
	if err != nil {
		log.Printf("failed to marshal %s event: %v", eventType, err)
		return ""
	}
	return string(msg)
}
