// Package protocol defines the network message types for client-server communication.
package protocol

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// MessageType identifies the type of message.
type MessageType string

// Grid message types
const (
	TypeGenerate  MessageType = "generate"
	TypeRecolor   MessageType = "recolor"
	TypeGridState MessageType = "grid_state"
)

// History message types
const (
	TypeListRuns MessageType = "list_runs"
	TypeRunList  MessageType = "run_list"
)

// System message types
const (
	TypeWelcome MessageType = "welcome"
	TypeError   MessageType = "error"
)

// Message is the envelope for all messages.
type Message struct {
	Type      MessageType     `json:"type"`
	ID        string          `json:"id"`
	Timestamp int64           `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// NewMessage creates a new message with the given type and payload.
func NewMessage(msgType MessageType, payload interface{}) (*Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      msgType,
		ID:        uuid.New().String(),
		Timestamp: time.Now().UnixMilli(),
		Payload:   data,
	}, nil
}

// ParsePayload unmarshals the payload into the given type.
func (m *Message) ParsePayload(v interface{}) error {
	return json.Unmarshal(m.Payload, v)
}

// ErrorCode represents an error type.
type ErrorCode string

const (
	ErrCodeInvalidMessage  ErrorCode = "invalid_message"
	ErrCodeOutOfBounds     ErrorCode = "out_of_bounds"
	ErrCodeInvalidColor    ErrorCode = "invalid_color"
	ErrCodeInvalidSettings ErrorCode = "invalid_settings"
	ErrCodeNoGrid          ErrorCode = "no_grid"
	ErrCodeColorsExhausted ErrorCode = "colors_exhausted"
	ErrCodeInternalError   ErrorCode = "internal_error"
)

// ErrorPayload is the payload for error messages.
type ErrorPayload struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}
