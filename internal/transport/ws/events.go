package ws

import (
	"encoding/json"
	"time"

	"github.com/abdulrafay-07/slack/internal/domain"
	"github.com/google/uuid"
)

// A topic is what clients subscribe to: a channel ID or a conversation ID.

// Event types - Client → Server
const (
	EventTypeTopicSubscribe   = "topic.subscribe"
	EventTypeTopicUnsubscribe = "topic.unsubscribe"
	EventTypeTypingStart      = "typing.start"
	EventTypeTypingStop       = "typing.stop"
	EventTypePing             = "ping"
)

// Event types - Server → Client
const (
	EventTypeMessageNew      = "message.new"
	EventTypeMessageEdited   = "message.edited"
	EventTypeMessageDeleted  = "message.deleted"
	EventTypeReactionToggled = "reaction.toggled"
	EventTypeTyping          = "typing"
	EventTypePresence        = "presence"
	EventTypePong            = "pong"
	EventTypeError           = "error"
)

// Event is the base envelope for all WebSocket messages.
type Event struct {
	Type      string          `json:"type"`
	TopicID   *uuid.UUID      `json:"topic_id,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"ts,omitempty"`
}

// --- Client → Server payloads ---

type TopicPayload struct {
	TopicID uuid.UUID `json:"topic_id"`
}

// --- Server → Client payloads ---

type MessagePayload struct {
	Message domain.Message `json:"message"`
}

type MessageDeletedPayload struct {
	ID uuid.UUID `json:"id"`
}

type ReactionPayload struct {
	MessageID uuid.UUID `json:"message_id"`
	Reaction  domain.Reaction `json:"reaction"`
	Added     bool      `json:"added"`
}

type TypingPayload struct {
	UserID uuid.UUID `json:"user_id"`
}

type PresencePayload struct {
	UserID uuid.UUID `json:"user_id"`
	Status string    `json:"status"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewEvent(eventType string, topicID *uuid.UUID, payload any) (*Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Event{
		Type:      eventType,
		TopicID:   topicID,
		Payload:   data,
		Timestamp: time.Now().UnixMilli(),
	}, nil
}
