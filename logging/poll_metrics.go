package logging

import (
	"time"

	"go.uber.org/zap/zapcore"
)

// HeartRateMetrics represents a heart-rate reading attached to a poll cycle.
// Implements zapcore.ObjectMarshaler for structured logging.
//
// This is a pure data structure with no dependencies on other logging atoms.
type HeartRateMetrics struct {
	// BPM is the last observed non-zero heart rate in beats per minute
	BPM int `json:"bpm"`

	// SampledAtMillis is when the sample was taken, epoch milliseconds
	SampledAtMillis int64 `json:"sampled_at_millis"`

	// WatchOff reports whether the wearable was off-wrist
	WatchOff bool `json:"watch_off"`
}

// MarshalLogObject implements zapcore.ObjectMarshaler for structured logging.
func (m HeartRateMetrics) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt64("bpm", int64(m.BPM))
	enc.AddInt64("sampled_at_millis", m.SampledAtMillis)
	enc.AddBool("watch_off", m.WatchOff)
	return nil
}

// PollCycleMetrics represents metrics collected during one poll cycle.
// Implements zapcore.ObjectMarshaler for structured logging.
//
// It embeds HeartRateMetrics to capture the heart-rate reading observed
// during the cycle.
//
// Example:
//
//	metrics := PollCycleMetrics{
//		CorrelationID: "a1b2c3d4",
//		ActivityType:  "gaming",
//		Availability:  "Do Not Disturb",
//		Duration:      120 * time.Millisecond,
//		Success:       true,
//		HeartRate: HeartRateMetrics{
//			BPM:             72,
//			SampledAtMillis: 1700000000000,
//		},
//	}
//	logger.Info("poll cycle complete", zap.Object("metrics", metrics))
type PollCycleMetrics struct {
	// CorrelationID ties the poll cycle's log lines together
	CorrelationID string `json:"correlation_id"`

	// ActivityType is the classified activity for this cycle
	ActivityType string `json:"activity_type"`

	// Availability is the predicted availability status for this cycle
	Availability string `json:"availability"`

	// Duration is the total time taken for the poll cycle
	Duration time.Duration `json:"duration"`

	// Success reports whether both upstream fetches succeeded
	Success bool `json:"success"`

	// HeartRate contains the heart-rate reading observed during the cycle
	HeartRate HeartRateMetrics `json:"heart_rate"`
}

// MarshalLogObject implements zapcore.ObjectMarshaler for structured logging.
// This allows PollCycleMetrics to be logged as a nested JSON object in zap logs.
//
// The method encodes all fields with consistent JSON key names matching the
// struct tags. Duration is encoded in milliseconds for readability.
func (m PollCycleMetrics) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("correlation_id", m.CorrelationID)
	enc.AddString("activity_type", m.ActivityType)
	enc.AddString("availability", m.Availability)
	enc.AddInt64("duration_ms", m.Duration.Milliseconds())
	enc.AddBool("success", m.Success)

	// Embed heart-rate metrics using its own ObjectMarshaler
	if err := enc.AddObject("heart_rate", m.HeartRate); err != nil {
		return err
	}

	return nil
}
