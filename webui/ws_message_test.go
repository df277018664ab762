package webui

import (
	"encoding/json"
	"testing"
	"time"

	"status_backend/activity"
)

func TestNewWSMessage(t *testing.T) {
	before := time.Now()
	msg := NewWSMessage(MessageTypeStatusUpdate, "test-data")
	after := time.Now()

	if msg.Type != MessageTypeStatusUpdate {
		t.Errorf("Type = %q, want %q", msg.Type, MessageTypeStatusUpdate)
	}
	if msg.Timestamp.Before(before) || msg.Timestamp.After(after) {
		t.Error("Timestamp should be between before and after test")
	}
	if msg.Data != "test-data" {
		t.Errorf("Data = %v, want 'test-data'", msg.Data)
	}
}

func TestWSMessage_MarshalJSON(t *testing.T) {
	msg := WSMessage{
		Type:      MessageTypeStatusUpdate,
		Timestamp: time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC),
		Data:      map[string]string{"key": "value"},
	}

	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}

	// Verify it's valid JSON
	var parsed map[string]interface{}
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("Result is not valid JSON: %v", err)
	}

	if parsed["type"] != MessageTypeStatusUpdate {
		t.Errorf("Parsed type = %v, want %q", parsed["type"], MessageTypeStatusUpdate)
	}
}

func TestStatusSnapshot_JSON(t *testing.T) {
	snapshot := StatusSnapshot{
		CorrelationID: "corr-123",
		Telemetry: activity.TelemetrySnapshot{
			WindowTitle:      "vim - monitor.go",
			ProcessName:      "nvim",
			MouseIdleSeconds: 5,
		},
		Activity: activity.ActivityDetails{
			Type:        activity.TypeWorking,
			Description: "Writing code",
		},
		Availability: activity.AvailabilityStatus{
			Status: "Busy",
			Reason: "Deep in work",
			Color:  "red",
		},
		EvaluatedAt: time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC),
	}

	bytes, err := json.Marshal(snapshot)
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}

	var parsed StatusSnapshot
	if err := json.Unmarshal(bytes, &parsed); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}

	if parsed.CorrelationID != snapshot.CorrelationID {
		t.Errorf("CorrelationID = %q, want %q", parsed.CorrelationID, snapshot.CorrelationID)
	}
	if parsed.Activity.Type != activity.TypeWorking {
		t.Errorf("Activity.Type = %q, want 'working'", parsed.Activity.Type)
	}
	if parsed.Availability.Status != "Busy" {
		t.Errorf("Availability.Status = %q, want 'Busy'", parsed.Availability.Status)
	}
}

func TestHeartRateUpdateData_JSON(t *testing.T) {
	data := HeartRateUpdateData{
		HeartRate: 72,
		SampledAt: 1700000000000,
		WatchOff:  false,
	}

	bytes, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}

	var parsed HeartRateUpdateData
	if err := json.Unmarshal(bytes, &parsed); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}

	if parsed.HeartRate != data.HeartRate {
		t.Errorf("HeartRate = %v, want %v", parsed.HeartRate, data.HeartRate)
	}
	if parsed.SampledAt != data.SampledAt {
		t.Errorf("SampledAt = %v, want %v", parsed.SampledAt, data.SampledAt)
	}
}

func TestSystemStatusData_JSON(t *testing.T) {
	data := SystemStatusData{
		Status:     "running",
		Uptime:     24 * time.Hour,
		TotalPolls: 1000,
		ErrorRate:  2.5,
		Version:    "1.0.0",
	}

	bytes, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}

	var parsed SystemStatusData
	if err := json.Unmarshal(bytes, &parsed); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}

	if parsed.Status != data.Status {
		t.Errorf("Status = %q, want %q", parsed.Status, data.Status)
	}
	if parsed.TotalPolls != data.TotalPolls {
		t.Errorf("TotalPolls = %v, want %v", parsed.TotalPolls, data.TotalPolls)
	}
}

func TestMessageTypeConstants(t *testing.T) {
	// Verify constants are distinct and non-empty
	types := []string{
		MessageTypeStatusUpdate,
		MessageTypeHeartRateUpdate,
		MessageTypeSystemStatus,
		MessageTypeError,
		MessageTypePing,
		MessageTypePong,
		MessageTypeInitial,
	}

	seen := make(map[string]bool)
	for _, msgType := range types {
		if msgType == "" {
			t.Error("Message type constant is empty")
		}
		if seen[msgType] {
			t.Errorf("Duplicate message type: %q", msgType)
		}
		seen[msgType] = true
	}
}

func TestNewStatusUpdateMessage(t *testing.T) {
	snapshot := StatusSnapshot{CorrelationID: "corr-1"}
	msg := NewStatusUpdateMessage(snapshot)

	if msg.Type != MessageTypeStatusUpdate {
		t.Errorf("Type = %q, want %q", msg.Type, MessageTypeStatusUpdate)
	}
	if msg.Data.(StatusSnapshot).CorrelationID != "corr-1" {
		t.Error("Data not correctly set")
	}
}

func TestNewHeartRateUpdateMessage(t *testing.T) {
	data := HeartRateUpdateData{HeartRate: 72}
	msg := NewHeartRateUpdateMessage(data)

	if msg.Type != MessageTypeHeartRateUpdate {
		t.Errorf("Type = %q, want %q", msg.Type, MessageTypeHeartRateUpdate)
	}
}

func TestNewSystemStatusMessage(t *testing.T) {
	data := SystemStatusData{Status: "running"}
	msg := NewSystemStatusMessage(data)

	if msg.Type != MessageTypeSystemStatus {
		t.Errorf("Type = %q, want %q", msg.Type, MessageTypeSystemStatus)
	}
}

func TestNewErrorMessage(t *testing.T) {
	msg := NewErrorMessage("ERR_001", "Something went wrong")

	if msg.Type != MessageTypeError {
		t.Errorf("Type = %q, want %q", msg.Type, MessageTypeError)
	}
	errData, ok := msg.Data.(ErrorData)
	if !ok {
		t.Fatal("Data is not ErrorData")
	}
	if errData.Code != "ERR_001" {
		t.Errorf("Code = %q, want 'ERR_001'", errData.Code)
	}
	if errData.Message != "Something went wrong" {
		t.Errorf("Message = %q, want 'Something went wrong'", errData.Message)
	}
}

func TestNewPingMessage(t *testing.T) {
	msg := NewPingMessage()

	if msg.Type != MessageTypePing {
		t.Errorf("Type = %q, want %q", msg.Type, MessageTypePing)
	}
	if msg.Data != nil {
		t.Errorf("Data = %v, want nil", msg.Data)
	}
}

func TestNewInitialMessage(t *testing.T) {
	data := InitialData{
		System: SystemStatusData{Status: "running"},
		Status: &StatusSnapshot{CorrelationID: "corr-1"},
	}
	msg := NewInitialMessage(data)

	if msg.Type != MessageTypeInitial {
		t.Errorf("Type = %q, want %q", msg.Type, MessageTypeInitial)
	}
}

func TestInitialData_JSON(t *testing.T) {
	data := InitialData{
		System: SystemStatusData{
			Status: "running",
			Uptime: 24 * time.Hour,
		},
		Status: &StatusSnapshot{
			CorrelationID: "corr-1",
			Availability:  activity.AvailabilityStatus{Status: "Free"},
		},
	}

	bytes, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}

	var parsed InitialData
	if err := json.Unmarshal(bytes, &parsed); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}

	if parsed.System.Status != "running" {
		t.Errorf("System.Status = %q, want 'running'", parsed.System.Status)
	}
	if parsed.Status == nil {
		t.Fatal("Status should not be nil")
	}
	if parsed.Status.Availability.Status != "Free" {
		t.Errorf("Availability.Status = %q, want 'Free'", parsed.Status.Availability.Status)
	}
}

func TestInitialData_NilStatus(t *testing.T) {
	data := InitialData{
		System: SystemStatusData{Status: "running"},
		Status: nil, // no poll cycle completed yet
	}

	bytes, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}

	// Status field should be omitted from JSON
	var parsed map[string]interface{}
	if err := json.Unmarshal(bytes, &parsed); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}

	if _, exists := parsed["status"]; exists {
		t.Error("status field should be omitted when nil")
	}
}
