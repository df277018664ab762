// Package logging provides structured logging utilities for the life status
// backend.
//
// metrics_logger.go is an organism that provides a unified API for poll cycle
// and heart-rate metrics logging. It composes:
//   - HeartRateMetrics atom (heart-rate reading)
//   - PollCycleMetrics atom (poll cycle metrics)
//   - PollFields, HeartRateFields, ActivityFields, TimingFields molecules
//
// This organism provides high-level functions for logging poll cycles with
// automatic timing capture and structured output.
package logging

import (
	"time"

	"go.uber.org/zap"
)

// MetricsLogger provides structured logging for poll cycle and heart-rate
// metrics. It wraps a Logger and provides convenience methods for poll
// cycle logging.
//
// Example:
//
//	logger, _ := NewLogger(true, "app.log")
//	ml := NewMetricsLogger(logger)
//
//	timer := ml.StartPoll("a1b2c3d4")
//	// ... fetch, classify, predict ...
//	ml.EndPoll(timer, "working", "Busy", true)
type MetricsLogger struct {
	logger *Logger
}

// NewMetricsLogger creates a MetricsLogger wrapping the given Logger.
func NewMetricsLogger(logger *Logger) *MetricsLogger {
	return &MetricsLogger{logger: logger}
}

// PollTimer tracks timing for one poll cycle.
// Use StartPoll to create and EndPoll to complete.
type PollTimer struct {
	CorrelationID string
	StartTime     time.Time
	HeartRate     HeartRateMetrics
}

// StartPoll begins timing a poll cycle.
// Call EndPoll when the cycle completes.
//
// Example:
//
//	timer := ml.StartPoll("a1b2c3d4")
//	// ... fetch, classify, predict ...
//	ml.EndPoll(timer, activityType, availability, true)
func (ml *MetricsLogger) StartPoll(correlationID string) *PollTimer {
	return &PollTimer{
		CorrelationID: correlationID,
		StartTime:     time.Now(),
	}
}

// EndPoll completes timing and logs the poll cycle metrics.
// Returns the completed PollCycleMetrics for further use if needed.
func (ml *MetricsLogger) EndPoll(timer *PollTimer, activityType, availability string, success bool) PollCycleMetrics {
	return ml.EndPollWithHeartRate(timer, activityType, availability, success, timer.HeartRate)
}

// EndPollWithHeartRate completes timing with the heart-rate reading observed
// during the cycle.
func (ml *MetricsLogger) EndPollWithHeartRate(timer *PollTimer, activityType, availability string, success bool, hr HeartRateMetrics) PollCycleMetrics {
	metrics := PollCycleMetrics{
		CorrelationID: timer.CorrelationID,
		ActivityType:  activityType,
		Availability:  availability,
		Duration:      time.Since(timer.StartTime),
		Success:       success,
		HeartRate:     hr,
	}

	ml.logger.Info("poll cycle complete", PollFields(metrics))
	return metrics
}

// LogPoll logs a complete poll cycle in a single call.
// Use this when you have all metrics available at once.
//
// Example:
//
//	ml.LogPoll("a1b2c3d4", "gaming", "Do Not Disturb", 120*time.Millisecond, true, hr)
func (ml *MetricsLogger) LogPoll(correlationID, activityType, availability string, duration time.Duration, success bool, hr HeartRateMetrics) PollCycleMetrics {
	metrics := PollCycleMetrics{
		CorrelationID: correlationID,
		ActivityType:  activityType,
		Availability:  availability,
		Duration:      duration,
		Success:       success,
		HeartRate:     hr,
	}

	ml.logger.Info("poll cycle complete", PollFields(metrics))
	return metrics
}

// LogHeartRate logs the current heart-rate reading.
//
// Example:
//
//	ml.LogHeartRate(logging.HeartRateMetrics{
//	    BPM:             72,
//	    SampledAtMillis: 1700000000000,
//	})
func (ml *MetricsLogger) LogHeartRate(hr HeartRateMetrics) {
	ml.logger.Info("heart rate", HeartRateFields(hr))
}

// LogHeartRateWarn logs a heart-rate reading at warn level (for stale or
// anomalous readings).
//
// Example:
//
//	if logging.IsSampleStale(hr.SampledAtMillis, 10*time.Minute) {
//	    ml.LogHeartRateWarn(hr, "stale heart rate sample")
//	}
func (ml *MetricsLogger) LogHeartRateWarn(hr HeartRateMetrics, msg string) {
	ml.logger.Warn(msg, HeartRateFields(hr))
}

// LogActivity logs a classification result without full poll metrics.
// Useful for intermediate steps within a cycle.
func (ml *MetricsLogger) LogActivity(msg, activityType, subType, description string) {
	ml.logger.Info(msg, ActivityFields(activityType, subType, description)...)
}

// Debug logs a debug message with poll context.
func (ml *MetricsLogger) Debug(msg string, fields ...zap.Field) {
	ml.logger.Debug(msg, fields...)
}

// Info logs an info message with poll context.
func (ml *MetricsLogger) Info(msg string, fields ...zap.Field) {
	ml.logger.Info(msg, fields...)
}

// Warn logs a warning message with poll context.
func (ml *MetricsLogger) Warn(msg string, fields ...zap.Field) {
	ml.logger.Warn(msg, fields...)
}

// Error logs an error message with poll context.
func (ml *MetricsLogger) Error(msg string, fields ...zap.Field) {
	ml.logger.Error(msg, fields...)
}

// WithUpstream returns a MetricsLogger with upstream endpoint context.
// All subsequent logs will include the endpoint ID.
//
// Example:
//
//	hrLogger := ml.WithUpstream("heartrate")
//	hrLogger.Info("fetching")
func (ml *MetricsLogger) WithUpstream(endpointID string) *MetricsLogger {
	return &MetricsLogger{
		logger: ml.logger.With(zap.String("upstream", endpointID)),
	}
}

// WithCorrelation returns a MetricsLogger with correlation ID.
// Use for tracing all log lines of one poll cycle.
//
// Example:
//
//	cycleLogger := ml.WithCorrelation("a1b2c3d4")
//	cycleLogger.Info("cycle started")
func (ml *MetricsLogger) WithCorrelation(correlationID string) *MetricsLogger {
	return &MetricsLogger{
		logger: ml.logger.With(zap.String("correlation_id", correlationID)),
	}
}

// Logger returns the underlying Logger for direct access.
func (ml *MetricsLogger) Logger() *Logger {
	return ml.logger
}

// Utility functions for creating metrics without MetricsLogger

// NewPollCycleMetrics creates PollCycleMetrics with the given fields.
// This is a convenience function for creating metrics outside of MetricsLogger.
func NewPollCycleMetrics(correlationID, activityType, availability string, duration time.Duration, success bool, hr HeartRateMetrics) PollCycleMetrics {
	return PollCycleMetrics{
		CorrelationID: correlationID,
		ActivityType:  activityType,
		Availability:  availability,
		Duration:      duration,
		Success:       success,
		HeartRate:     hr,
	}
}

// IsSampleStale returns true if the heart-rate sample is older than maxAge.
// A zero timestamp always counts as stale.
func IsSampleStale(sampledAtMillis int64, maxAge time.Duration) bool {
	if sampledAtMillis <= 0 {
		return true
	}
	sampled := time.UnixMilli(sampledAtMillis)
	return time.Since(sampled) > maxAge
}

// IsHeartRateElevated returns true if the reading exceeds threshold.
// Default threshold is 100 bpm.
func IsHeartRateElevated(hr HeartRateMetrics, threshold ...int) bool {
	t := 100
	if len(threshold) > 0 {
		t = threshold[0]
	}
	return hr.BPM > t
}

// IsHeartRateResting returns true if the reading is at or below threshold.
// Zero readings do not count as resting. Default threshold is 60 bpm.
func IsHeartRateResting(hr HeartRateMetrics, threshold ...int) bool {
	t := 60
	if len(threshold) > 0 {
		t = threshold[0]
	}
	return hr.BPM > 0 && hr.BPM <= t
}
