package websocket

import (
	"encoding/json"
	"time"

	"github.com/podcastsite/backend/internal/domain"
)

type MessageType string

const (
	// Server to Client
	MessageTypeCarouselUpdated MessageType = "CAROUSEL_UPDATED"
)

type Message struct {
	Type      MessageType     `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp int64           `json:"timestamp"`
	Seq       int64           `json:"seq,omitempty"`
}

func NewMessage(msgType MessageType, payload interface{}) (*Message, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      msgType,
		Payload:   payloadBytes,
		Timestamp: time.Now().UnixMilli(),
	}, nil
}

type CarouselUpdatedPayload struct {
	Slots []*domain.Slot `json:"slots"`
}
