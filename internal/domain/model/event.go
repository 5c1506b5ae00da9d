package model

import (
	"encoding/json"
	"time"
)

// EventOrderCreated is emitted once an order is recorded locally.
const EventOrderCreated = "order.created"

// OutboxEvent is a message waiting to be relayed to the event bus.
type OutboxEvent struct {
	ID        int64
	EventID   string
	Topic     string
	Key       string
	Payload   json.RawMessage
	CreatedAt time.Time
	SentAt    *time.Time
}
