// Package metrics provides the MetricsStore organism for in-memory metrics storage.
// This file contains the MetricsStore which implements the MetricsCollector interface.
package metrics

import (
	"sync"
	"time"
)

// MetricsStore is an in-memory storage organism for all dashboard metrics.
// It implements the MetricsCollector interface and provides thread-safe
// access to poll records, upstream endpoint statuses, and system health.
//
// This is an organism-level component that composes:
// - a ring buffer for poll history
// - sync.RWMutex for thread-safety
// - metrics types (PollRecord, UpstreamStatus, etc.)
//
// Usage:
//
//	store := NewMetricsStore(config, time.Now()) // 100 poll history capacity
//	store.RecordPoll(record)
//	metrics := store.GetPollMetrics()
type MetricsStore struct {
	mu sync.RWMutex

	// Poll tracking
	pollHistory []PollRecord // Ring buffer of recent poll cycles
	pollCap     int          // Maximum polls to retain
	pollHead    int          // Write index
	pollSize    int          // Current number of polls

	// Poll aggregation
	totalPolls   int64
	totalSuccess int64
	totalErrors  int64
	byActivity   map[string]*activityTypeStats // Per-activity statistics

	// Upstream endpoint statuses (keyed by endpoint ID)
	upstreamStatuses map[string]UpstreamStatus

	// System metadata
	startTime time.Time
	version   string
}

// activityTypeStats holds per-activity aggregation data
type activityTypeStats struct {
	count         int64
	successCount  int64
	totalDuration time.Duration
}

// StoreConfig configures the MetricsStore behavior.
type StoreConfig struct {
	// PollHistoryCapacity is the max number of poll records to retain in history
	PollHistoryCapacity int
	// Version is the application version string
	Version string
}

// DefaultStoreConfig returns a default configuration.
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		PollHistoryCapacity: 100,
		Version:             "0.0.0",
	}
}

// NewMetricsStore creates a new MetricsStore with the specified configuration.
// The startTime is used to calculate uptime.
func NewMetricsStore(config StoreConfig, startTime time.Time) *MetricsStore {
	cap := config.PollHistoryCapacity
	if cap < 1 {
		cap = 100
	}

	return &MetricsStore{
		pollHistory:      make([]PollRecord, cap),
		pollCap:          cap,
		pollHead:         0,
		pollSize:         0,
		byActivity:       make(map[string]*activityTypeStats),
		upstreamStatuses: make(map[string]UpstreamStatus),
		startTime:        startTime,
		version:          config.Version,
	}
}

// RecordPoll logs a completed poll cycle.
// This implements part of the MetricsCollector interface.
func (s *MetricsStore) RecordPoll(record PollRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Add to ring buffer
	s.pollHistory[s.pollHead] = record
	s.pollHead = (s.pollHead + 1) % s.pollCap
	if s.pollSize < s.pollCap {
		s.pollSize++
	}

	// Update aggregations
	s.totalPolls++

	if record.Status == PollStatusSuccess {
		s.totalSuccess++
	} else if record.Status == PollStatusError {
		s.totalErrors++
	}

	// Update per-activity stats
	stats, ok := s.byActivity[record.ActivityType]
	if !ok {
		stats = &activityTypeStats{}
		s.byActivity[record.ActivityType] = stats
	}
	stats.count++
	if record.Status == PollStatusSuccess {
		stats.successCount++
	}
	stats.totalDuration += record.Duration
}

// GetPollMetrics returns aggregated poll cycle statistics.
// This implements part of the MetricsCollector interface.
func (s *MetricsStore) GetPollMetrics() PollMetrics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	metrics := PollMetrics{
		TotalPolls:   s.totalPolls,
		TotalSuccess: s.totalSuccess,
		TotalErrors:  s.totalErrors,
		ByActivity:   make(map[string]*ActivityTypeMetrics),
	}

	for activityType, stats := range s.byActivity {
		var successRate float64
		if stats.count > 0 {
			successRate = float64(stats.successCount) / float64(stats.count) * 100
		}

		var avgDuration time.Duration
		if stats.count > 0 {
			avgDuration = stats.totalDuration / time.Duration(stats.count)
		}

		metrics.ByActivity[activityType] = &ActivityTypeMetrics{
			Count:       stats.count,
			SuccessRate: successRate,
			AvgDuration: avgDuration,
		}
	}

	return metrics
}

// GetRecentPolls returns the N most recent poll records.
// If limit exceeds available records, all available are returned.
// This implements part of the MetricsCollector interface.
func (s *MetricsStore) GetRecentPolls(limit int) []PollRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || s.pollSize == 0 {
		return []PollRecord{}
	}

	if limit > s.pollSize {
		limit = s.pollSize
	}

	// Calculate the starting index for the most recent 'limit' items
	result := make([]PollRecord, limit)
	for i := 0; i < limit; i++ {
		// Work backwards from head to get most recent first
		idx := (s.pollHead - limit + i + s.pollCap) % s.pollCap
		result[i] = s.pollHistory[idx]
	}

	return result
}

// UpdateUpstreamStatus updates the status for an upstream endpoint.
// This implements part of the MetricsCollector interface.
func (s *MetricsStore) UpdateUpstreamStatus(status UpstreamStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upstreamStatuses[status.ID] = status
}

// GetUpstreamStatus returns the status for an upstream endpoint by ID.
// This implements part of the MetricsCollector interface.
func (s *MetricsStore) GetUpstreamStatus(id string) (UpstreamStatus, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	status, ok := s.upstreamStatuses[id]
	return status, ok
}

// GetAllUpstreamStatuses returns status for all tracked upstream endpoints.
// This implements part of the MetricsCollector interface.
func (s *MetricsStore) GetAllUpstreamStatuses() []UpstreamStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]UpstreamStatus, 0, len(s.upstreamStatuses))
	for _, status := range s.upstreamStatuses {
		result = append(result, status)
	}
	return result
}

// GetSystemStatus returns the overall system health status.
// This implements part of the MetricsCollector interface.
func (s *MetricsStore) GetSystemStatus() SystemStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Determine health based on connected upstream endpoints
	health := SystemHealthRunning
	hasConnected := false
	for _, upstream := range s.upstreamStatuses {
		if upstream.Connected {
			hasConnected = true
			break
		}
	}

	// If endpoints are registered but none are reachable, report error
	if len(s.upstreamStatuses) > 0 && !hasConnected {
		health = SystemHealthError
	}

	return SystemStatus{
		Health:    health,
		Version:   s.version,
		Uptime:    time.Since(s.startTime),
		LastCheck: time.Now(),
	}
}

// Verify MetricsStore implements MetricsCollector interface
var _ MetricsCollector = (*MetricsStore)(nil)
