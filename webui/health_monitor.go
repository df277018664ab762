// Package webui provides the dashboard web server for the life status
// backend. This file contains the UpstreamHealthMonitor organism for
// tracking the telemetry API endpoint connection status.
package webui

import (
	"context"
	"sync"
	"time"

	"status_backend/metrics"
)

// UpstreamChecker defines the interface for checking one upstream telemetry
// endpoint. This abstraction allows for testing without real network calls.
type UpstreamChecker interface {
	// Check performs a lightweight request against the endpoint.
	// Returns nil error if the endpoint is reachable and answering.
	Check(ctx context.Context) error

	// EndpointID returns the endpoint identifier (metrics.Upstream*).
	EndpointID() string

	// EndpointURL returns the endpoint URL for display.
	EndpointURL() string
}

// UpstreamHealthMonitor is an organism that tracks upstream endpoint
// connection status. It periodically performs health checks and updates the
// MetricsStore with per-endpoint status information.
//
// This organism composes:
// - metrics.MetricsCollector for storing health status
// - UpstreamChecker implementations for performing health checks
// - sync.RWMutex for thread-safe endpoint management
//
// Usage:
//
//	monitor := NewUpstreamHealthMonitor(metricsStore, DefaultHealthMonitorConfig())
//	monitor.RegisterUpstream(checker)
//	ctx, cancel := context.WithCancel(context.Background())
//	go monitor.Start(ctx)
//	// ... later ...
//	cancel() // Stop the monitor
type UpstreamHealthMonitor struct {
	mu             sync.RWMutex
	store          metrics.MetricsCollector
	upstreams      map[string]UpstreamChecker
	checkInterval  time.Duration
	onStatusChange func(endpointID string, connected bool) // Optional callback
	logger         Logger
}

// HealthMonitorConfig configures the UpstreamHealthMonitor behavior.
type HealthMonitorConfig struct {
	// CheckInterval is how often to perform health checks (default: 30s)
	CheckInterval time.Duration
	// OnStatusChange is called when an endpoint connection status changes
	OnStatusChange func(endpointID string, connected bool)
	// Logger for diagnostic output
	Logger Logger
}

// DefaultHealthMonitorConfig returns a default configuration.
func DefaultHealthMonitorConfig() HealthMonitorConfig {
	return HealthMonitorConfig{
		CheckInterval: 30 * time.Second,
		Logger:        &defaultLogger{},
	}
}

// NewUpstreamHealthMonitor creates a new UpstreamHealthMonitor with the
// specified metrics store and configuration.
func NewUpstreamHealthMonitor(store metrics.MetricsCollector, config HealthMonitorConfig) *UpstreamHealthMonitor {
	interval := config.CheckInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}

	logger := config.Logger
	if logger == nil {
		logger = &defaultLogger{}
	}

	return &UpstreamHealthMonitor{
		store:          store,
		upstreams:      make(map[string]UpstreamChecker),
		checkInterval:  interval,
		onStatusChange: config.OnStatusChange,
		logger:         logger,
	}
}

// RegisterUpstream adds an endpoint to be monitored.
// The endpoint will be checked on the next health check cycle.
func (m *UpstreamHealthMonitor) RegisterUpstream(upstream UpstreamChecker) {
	m.mu.Lock()
	defer m.mu.Unlock()

	endpointID := upstream.EndpointID()
	m.upstreams[endpointID] = upstream

	// Initialize status as disconnected until first check
	m.store.UpdateUpstreamStatus(metrics.UpstreamStatus{
		ID:         endpointID,
		URL:        upstream.EndpointURL(),
		Connected:  false,
		LastUpdate: time.Now(),
	})
}

// UnregisterUpstream removes an endpoint from monitoring.
func (m *UpstreamHealthMonitor) UnregisterUpstream(endpointID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.upstreams, endpointID)
}

// GetRegisteredUpstreams returns the IDs of all registered endpoints.
func (m *UpstreamHealthMonitor) GetRegisteredUpstreams() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.upstreams))
	for id := range m.upstreams {
		ids = append(ids, id)
	}
	return ids
}

// Start begins the periodic health check loop.
// It runs until the context is cancelled.
// This method blocks, so it should typically be run in a goroutine.
func (m *UpstreamHealthMonitor) Start(ctx context.Context) {
	// Perform initial check immediately
	m.checkAllUpstreams(ctx)

	ticker := time.NewTicker(m.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.Printf("UpstreamHealthMonitor: stopping due to context cancellation")
			return
		case <-ticker.C:
			m.checkAllUpstreams(ctx)
		}
	}
}

// CheckNow performs an immediate health check on all registered endpoints.
// This can be called manually in addition to the periodic checks.
func (m *UpstreamHealthMonitor) CheckNow(ctx context.Context) {
	m.checkAllUpstreams(ctx)
}

// checkAllUpstreams performs health checks on all registered endpoints.
func (m *UpstreamHealthMonitor) checkAllUpstreams(ctx context.Context) {
	m.mu.RLock()
	upstreams := make([]UpstreamChecker, 0, len(m.upstreams))
	for _, u := range m.upstreams {
		upstreams = append(upstreams, u)
	}
	m.mu.RUnlock()

	for _, upstream := range upstreams {
		m.checkUpstream(ctx, upstream)
	}
}

// checkUpstream performs a health check on a single endpoint.
func (m *UpstreamHealthMonitor) checkUpstream(ctx context.Context, upstream UpstreamChecker) {
	endpointID := upstream.EndpointID()

	// Get previous status for comparison
	prevStatus, hasPrev := m.store.GetUpstreamStatus(endpointID)

	// Perform health check
	err := upstream.Check(ctx)
	connected := err == nil

	// Build updated status
	status := metrics.UpstreamStatus{
		ID:         endpointID,
		URL:        upstream.EndpointURL(),
		Connected:  connected,
		LastUpdate: time.Now(),
	}

	// Preserve counters from previous status if they exist
	if hasPrev {
		status.RequestsToday = prevStatus.RequestsToday
		status.SuccessRate = prevStatus.SuccessRate

		// If disconnected, add error to list
		if !connected && err != nil {
			errMsg := err.Error()
			// Limit error history to last 5 errors
			errors := prevStatus.Errors
			if len(errors) >= 5 {
				errors = errors[1:]
			}
			status.Errors = append(errors, errMsg)
		} else if connected {
			// Clear errors on reconnection
			status.Errors = nil
		}
	}

	// Update the store
	m.store.UpdateUpstreamStatus(status)

	// Call status change callback if status changed
	if m.onStatusChange != nil {
		if !hasPrev || prevStatus.Connected != connected {
			m.onStatusChange(endpointID, connected)
		}
	}

	// Log status changes
	if hasPrev && prevStatus.Connected != connected {
		if connected {
			m.logger.Printf("UpstreamHealthMonitor: endpoint %s reconnected", endpointID)
		} else {
			m.logger.Printf("UpstreamHealthMonitor: endpoint %s disconnected: %v", endpointID, err)
		}
	}
}

// UpdateRequestMetrics updates the request counters for an endpoint.
// This should be called by the polling monitor after each poll cycle.
func (m *UpstreamHealthMonitor) UpdateRequestMetrics(endpointID string, requestsToday int64, successRate float64) {
	status, ok := m.store.GetUpstreamStatus(endpointID)
	if !ok {
		return
	}

	status.RequestsToday = requestsToday
	status.SuccessRate = successRate
	status.LastUpdate = time.Now()

	m.store.UpdateUpstreamStatus(status)
}
