// Package stream ingests the handheld device's sensor and frame feed over a
// websocket. Text messages carry a JSON envelope; binary messages carry JPEG
// frames at the most recently advertised format.
package stream

import (
	"encoding/json"
	"fmt"
	"time"
)

// MessageType identifies the type of websocket envelope message
type MessageType string

const (
	// Device → pipeline messages
	TypeAccel  MessageType = "accel"  // Accelerometer vector
	TypeMag    MessageType = "mag"    // Magnetometer vector
	TypeFormat MessageType = "format" // Frame dimensions for subsequent binary frames

	// Bidirectional
	TypePing MessageType = "ping" // Health check
	TypePong MessageType = "pong" // Health check response
)

// Message is the base wrapper for all websocket envelope messages
type Message struct {
	Type      MessageType     `json:"type"`
	Timestamp int64           `json:"ts,omitempty"` // Unix milliseconds
	Data      json.RawMessage `json:"data,omitempty"`
}

// VectorData is a raw 3-axis sensor reading.
type VectorData struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// FormatData advertises the dimensions of subsequent binary frames.
type FormatData struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(msgType MessageType, data interface{}) (*Message, error) {
	var rawData json.RawMessage
	if data != nil {
		var err error
		rawData, err = json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal message data: %w", err)
		}
	}

	return &Message{
		Type:      msgType,
		Timestamp: time.Now().UnixMilli(),
		Data:      rawData,
	}, nil
}

// ParseData unmarshals the message data into the provided struct
func (m *Message) ParseData(v interface{}) error {
	if m.Data == nil {
		return nil
	}
	return json.Unmarshal(m.Data, v)
}

// Bytes returns the JSON-encoded message
func (m *Message) Bytes() ([]byte, error) {
	return json.Marshal(m)
}

// ParseMessage parses a JSON envelope from bytes
func ParseMessage(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}
	if msg.Type == "" {
		return nil, fmt.Errorf("message missing type")
	}
	return &msg, nil
}
