// Package metrics provides the MetricsCollector interface for aggregating metrics.
// This is a molecule that composes the atom-level types from types.go.
package metrics

// MetricsCollector defines the interface for collecting metrics from various sources.
// This molecule aggregates PollRecord and UpstreamStatus atoms to provide
// a unified interface for metric collection.
//
// Implementation strategy:
// - Implementations should aggregate data from poll cycles and upstream endpoint health
// - Methods should be concurrency-safe
// - Zero values should be returned for unavailable metrics
type MetricsCollector interface {
	// RecordPoll logs a completed poll cycle.
	// Aggregates PollRecord atoms into the metrics system.
	RecordPoll(record PollRecord)

	// GetPollMetrics returns aggregated poll cycle statistics.
	// Composes multiple PollRecord atoms into a PollMetrics summary.
	GetPollMetrics() PollMetrics

	// GetRecentPolls returns the N most recent poll records.
	// Provides access to individual PollRecord atoms.
	GetRecentPolls(limit int) []PollRecord

	// UpdateUpstreamStatus updates the status for an upstream endpoint.
	// Records the current UpstreamStatus atom for an endpoint.
	UpdateUpstreamStatus(status UpstreamStatus)

	// GetUpstreamStatus returns the status for an upstream endpoint by ID.
	// Retrieves the UpstreamStatus atom for a given endpoint.
	GetUpstreamStatus(id string) (UpstreamStatus, bool)

	// GetAllUpstreamStatuses returns status for all tracked upstream endpoints.
	// Provides access to all UpstreamStatus atoms.
	GetAllUpstreamStatuses() []UpstreamStatus

	// GetSystemStatus returns the overall system health status.
	// Composes SystemStatus atom from collected metrics.
	GetSystemStatus() SystemStatus
}
