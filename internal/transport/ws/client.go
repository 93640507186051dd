package ws

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

const (
	writeWait    = 10 * time.Second
	pingInterval = 30 * time.Second
	sendBufSize  = 256
)

// Client represents a single WebSocket connection.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	userID uuid.UUID

	// topics tracks which channels/conversations this client listens to.
	topics map[uuid.UUID]struct{}
	mu     sync.RWMutex

	send chan []byte
	done chan struct{}
}

func NewClient(hub *Hub, conn *websocket.Conn, userID uuid.UUID) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		userID: userID,
		topics: make(map[uuid.UUID]struct{}),
		send:   make(chan []byte, sendBufSize),
		done:   make(chan struct{}),
	}
}

// IsSubscribed checks if this client is subscribed to a topic.
func (c *Client) IsSubscribed(topicID uuid.UUID) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.topics[topicID]
	return ok
}

// Subscribe adds a topic subscription.
func (c *Client) Subscribe(topicID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.topics[topicID] = struct{}{}
}

// Unsubscribe removes a topic subscription.
func (c *Client) Unsubscribe(topicID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.topics, topicID)
}

// ReadPump reads messages from the WebSocket and routes them to the Hub.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		var event Event
		err := wsjson.Read(context.Background(), c.conn, &event)
		if err != nil {
			if websocket.CloseStatus(err) != -1 {
				log.Printf("ws: client %s disconnected", c.userID)
			} else {
				log.Printf("ws: read error from %s: %v", c.userID, err)
			}
			return
		}

		c.handleEvent(&event)
	}
}

// WritePump writes messages from the send channel to the WebSocket.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				return
			}
			ctx, cancel := context.WithTimeout(context.Background(), writeWait)
			err := c.conn.Write(ctx, websocket.MessageText, message)
			cancel()
			if err != nil {
				log.Printf("ws: write error to %s: %v", c.userID, err)
				return
			}

		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), writeWait)
			err := c.conn.Ping(ctx)
			cancel()
			if err != nil {
				log.Printf("ws: ping error to %s: %v", c.userID, err)
				return
			}

		case <-c.done:
			return
		}
	}
}

// handleEvent routes an incoming client event.
func (c *Client) handleEvent(event *Event) {
	switch event.Type {
	case EventTypeTopicSubscribe:
		var p TopicPayload
		if err := json.Unmarshal(event.Payload, &p); err != nil {
			c.sendError("INVALID_PAYLOAD", "invalid topic_subscribe payload")
			return
		}
		c.Subscribe(p.TopicID)
		log.Printf("ws: %s subscribed to topic %s", c.userID, p.TopicID)

	case EventTypeTopicUnsubscribe:
		var p TopicPayload
		if err := json.Unmarshal(event.Payload, &p); err != nil {
			c.sendError("INVALID_PAYLOAD", "invalid topic_unsubscribe payload")
			return
		}
		c.Unsubscribe(p.TopicID)
		log.Printf("ws: %s unsubscribed from topic %s", c.userID, p.TopicID)

	case EventTypeTypingStart, EventTypeTypingStop:
		if event.TopicID == nil {
			c.sendError("INVALID_PAYLOAD", "topic_id required for typing events")
			return
		}
		c.hub.HandleTyping(c, event)

	case EventTypePing:
		c.sendPong()

	default:
		c.sendError("UNKNOWN_EVENT", "unknown event type: "+event.Type)
	}
}

func (c *Client) sendPong() {
	data, _ := json.Marshal(Event{Type: EventTypePong})
	select {
	case c.send <- data:
	default:
	}
}

func (c *Client) sendError(code, message string) {
	evt, err := NewEvent(EventTypeError, nil, ErrorPayload{Code: code, Message: message})
	if err != nil {
		return
	}
	data, err := json.Marshal(evt)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}
