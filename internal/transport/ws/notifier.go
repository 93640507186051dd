package ws

import (
	"log"

	"github.com/abdulrafay-07/slack/internal/domain"
	"github.com/abdulrafay-07/slack/internal/service"
	"github.com/google/uuid"
)

// HubNotifier implements service.Notifier using the WebSocket Hub.
type HubNotifier struct {
	hub *Hub
}

func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) NotifyNewMessage(msg *domain.Message) {
	topicID := service.MessageTopic(msg)
	evt, err := NewEvent(EventTypeMessageNew, &topicID, MessagePayload{Message: *msg})
	if err != nil {
		log.Printf("ws notifier: marshal error: %v", err)
		return
	}
	n.hub.BroadcastToTopic(topicID, evt, nil)
}

func (n *HubNotifier) NotifyEditedMessage(msg *domain.Message) {
	topicID := service.MessageTopic(msg)
	evt, err := NewEvent(EventTypeMessageEdited, &topicID, MessagePayload{Message: *msg})
	if err != nil {
		log.Printf("ws notifier: marshal error: %v", err)
		return
	}
	n.hub.BroadcastToTopic(topicID, evt, nil)
}

func (n *HubNotifier) NotifyDeletedMessage(topicID, messageID uuid.UUID) {
	evt, err := NewEvent(EventTypeMessageDeleted, &topicID, MessageDeletedPayload{ID: messageID})
	if err != nil {
		log.Printf("ws notifier: marshal error: %v", err)
		return
	}
	n.hub.BroadcastToTopic(topicID, evt, nil)
}

func (n *HubNotifier) NotifyReactionToggled(msg *domain.Message, reaction *domain.Reaction, added bool) {
	topicID := service.MessageTopic(msg)
	evt, err := NewEvent(EventTypeReactionToggled, &topicID, ReactionPayload{
		MessageID: msg.ID,
		Reaction:  *reaction,
		Added:     added,
	})
	if err != nil {
		log.Printf("ws notifier: marshal error: %v", err)
		return
	}
	n.hub.BroadcastToTopic(topicID, evt, nil)
}
