package websocket

import "encoding/json"

// OutgoingMessage is the envelope pushed to connected class members. Payload
// carries the event body produced by the services.
type OutgoingMessage struct {
	Type      string          `json:"type"`
	ClassID   string          `json:"class_id"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"timestamp"`
}
