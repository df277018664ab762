// Package webui provides the dashboard web server for the life status
// backend. This file contains WebSocket message types and constants.
package webui

import (
	"encoding/json"
	"time"
)

// Message type constants for WebSocket communication.
// These define the types of real-time updates sent to connected clients.
const (
	// MessageTypeStatusUpdate carries a fresh status evaluation.
	MessageTypeStatusUpdate = "status_update"

	// MessageTypeHeartRateUpdate carries a fresh heart-rate reading.
	MessageTypeHeartRateUpdate = "heartrate_update"

	// MessageTypeSystemStatus indicates overall system health status change.
	MessageTypeSystemStatus = "system_status"

	// MessageTypeError indicates a server-side error message.
	MessageTypeError = "error"

	// MessageTypePing is a keep-alive message from the server.
	MessageTypePing = "ping"

	// MessageTypePong is a keep-alive response from the client.
	MessageTypePong = "pong"

	// MessageTypeInitial contains the initial state snapshot on connection.
	MessageTypeInitial = "initial"
)

// WSMessage is the base structure for all WebSocket messages.
// It uses a common envelope format with type-specific data in the Data field.
//
// This is a pure data structure atom with no behavior beyond JSON marshaling.
type WSMessage struct {
	// Type identifies the message kind (use MessageType* constants)
	Type string `json:"type"`

	// Timestamp is when the message was created
	Timestamp time.Time `json:"timestamp"`

	// Data contains the type-specific payload (decoded based on Type)
	Data interface{} `json:"data,omitempty"`
}

// NewWSMessage creates a new WebSocket message with the current timestamp.
//
// Parameters:
//   - msgType: The message type (use MessageType* constants)
//   - data: The type-specific payload
//
// Returns:
//   - WSMessage: Ready-to-send message
func NewWSMessage(msgType string, data interface{}) WSMessage {
	return WSMessage{
		Type:      msgType,
		Timestamp: time.Now(),
		Data:      data,
	}
}

// MarshalJSON serializes the message to JSON bytes.
// This is a convenience method for sending messages over WebSocket.
func (m WSMessage) MarshalJSON() ([]byte, error) {
	type Alias WSMessage
	return json.Marshal(Alias(m))
}

// HeartRateUpdateData contains the newest heart-rate reading.
type HeartRateUpdateData struct {
	// HeartRate is the last observed non-zero heart rate in bpm
	HeartRate int `json:"heart_rate"`

	// SampledAt is when the sample was taken, epoch milliseconds
	SampledAt int64 `json:"sampled_at"`

	// WatchOff indicates the wearable is off-wrist
	WatchOff bool `json:"watch_off"`
}

// SystemStatusData contains overall system health information.
type SystemStatusData struct {
	// Status indicates system state: "running", "error", "stopped"
	Status string `json:"status"`

	// Uptime is how long the system has been running
	Uptime time.Duration `json:"uptime"`

	// TotalPolls is the total count of poll cycles since start
	TotalPolls int64 `json:"total_polls"`

	// ErrorRate is the percentage of failed poll cycles (0-100)
	ErrorRate float64 `json:"error_rate"`

	// Version is the application version string
	Version string `json:"version,omitempty"`
}

// ErrorData contains error information sent to clients.
type ErrorData struct {
	// Code is an application-specific error code
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`
}

// InitialData contains the complete state snapshot sent on connection.
type InitialData struct {
	// System contains current system status
	System SystemStatusData `json:"system"`

	// Status contains the newest status evaluation (nil before the first
	// poll cycle completes)
	Status *StatusSnapshot `json:"status,omitempty"`
}

// Helper functions for creating common messages

// NewStatusUpdateMessage creates a status evaluation update message.
func NewStatusUpdateMessage(snapshot StatusSnapshot) WSMessage {
	return NewWSMessage(MessageTypeStatusUpdate, snapshot)
}

// NewHeartRateUpdateMessage creates a heart-rate update message.
func NewHeartRateUpdateMessage(data HeartRateUpdateData) WSMessage {
	return NewWSMessage(MessageTypeHeartRateUpdate, data)
}

// NewSystemStatusMessage creates a system status message.
func NewSystemStatusMessage(data SystemStatusData) WSMessage {
	return NewWSMessage(MessageTypeSystemStatus, data)
}

// NewErrorMessage creates an error message.
func NewErrorMessage(code, message string) WSMessage {
	return NewWSMessage(MessageTypeError, ErrorData{Code: code, Message: message})
}

// NewPingMessage creates a ping keep-alive message.
func NewPingMessage() WSMessage {
	return NewWSMessage(MessageTypePing, nil)
}

// NewInitialMessage creates the initial state snapshot message.
func NewInitialMessage(data InitialData) WSMessage {
	return NewWSMessage(MessageTypeInitial, data)
}
