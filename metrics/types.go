// Package metrics provides pure data types for the web UI metrics system.
// This file contains atom-level type definitions with no behavior.
package metrics

import "time"

// PollRecord represents a single poll cycle execution record.
// This is a pure data structure for tracking individual telemetry poll cycles.
type PollRecord struct {
	// ID is the correlation ID for this poll cycle
	ID string `json:"id"`

	// ActivityType is the classified activity type for this cycle
	// (e.g., "gaming", "working", "sleeping")
	ActivityType string `json:"activity_type"`

	// Status indicates the current state: "success", "error", "running"
	Status string `json:"status"`

	// StartTime is when the poll cycle began
	StartTime time.Time `json:"start_time"`

	// EndTime is when the poll cycle completed (zero value if still running)
	EndTime time.Time `json:"end_time,omitempty"`

	// Duration is the total cycle time (fetch + classify + persist)
	Duration time.Duration `json:"duration"`

	// ErrorMsg contains error details if Status is "error"
	ErrorMsg string `json:"error_msg,omitempty"`
}

// UpstreamStatus represents the connection health of an upstream telemetry endpoint.
// This is a pure data structure with no behavior.
type UpstreamStatus struct {
	// ID is the unique identifier for the endpoint (e.g., "activity", "heartrate")
	ID string `json:"id"`

	// URL is the upstream endpoint URL
	URL string `json:"url"`

	// Connected indicates if the last poll against this endpoint succeeded
	Connected bool `json:"connected"`

	// LastUpdate is the timestamp of the last successful response
	LastUpdate time.Time `json:"last_update"`

	// RequestsToday is the count of requests issued today
	RequestsToday int64 `json:"requests_today"`

	// SuccessRate is the percentage of successful requests (0-100)
	SuccessRate float64 `json:"success_rate"`

	// Errors contains recent error messages (limited to last N errors)
	Errors []string `json:"errors,omitempty"`
}

// SystemStatus represents the overall system health and status.
// This is a pure data structure with no behavior.
type SystemStatus struct {
	// Health indicates the system state: "running", "error", "stopped"
	Health string `json:"health"`

	// Version is the application version string
	Version string `json:"version"`

	// Uptime is the duration since the application started
	Uptime time.Duration `json:"uptime"`

	// LastCheck is the timestamp of the last health check
	LastCheck time.Time `json:"last_check"`
}

// PollMetrics represents aggregated poll cycle statistics.
// This is a pure data structure with no behavior.
type PollMetrics struct {
	// TotalPolls is the total number of poll cycles executed
	TotalPolls int64 `json:"total_polls"`

	// TotalSuccess is the count of successfully completed cycles
	TotalSuccess int64 `json:"total_success"`

	// TotalErrors is the count of failed cycles
	TotalErrors int64 `json:"total_errors"`

	// ByActivity contains per-activity-type statistics
	ByActivity map[string]*ActivityTypeMetrics `json:"by_activity"`
}

// ActivityTypeMetrics represents statistics for a classified activity type.
// This is a pure data structure with no behavior.
type ActivityTypeMetrics struct {
	// Count is the total number of cycles classified as this type
	Count int64 `json:"count"`

	// SuccessRate is the percentage of successful cycles (0-100)
	SuccessRate float64 `json:"success_rate"`

	// AvgDuration is the average cycle time for this activity type
	AvgDuration time.Duration `json:"avg_duration"`
}

// Status constants for PollRecord
const (
	PollStatusSuccess = "success"
	PollStatusError   = "error"
	PollStatusRunning = "running"
)

// Health constants for SystemStatus
const (
	SystemHealthRunning = "running"
	SystemHealthError   = "error"
	SystemHealthStopped = "stopped"
)

// Upstream endpoint identifiers
const (
	UpstreamActivity  = "activity"
	UpstreamHeartRate = "heartrate"
)
