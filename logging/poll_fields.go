// Package logging provides structured logging utilities for the life status
// backend. This file contains molecule-level helper functions that compose
// PollCycleMetrics and HeartRateMetrics atoms into convenient zap.Field
// helpers for structured logging.
package logging

import (
	"time"

	"go.uber.org/zap"
)

// PollFields creates a structured zap field from poll cycle metrics.
// This is a molecule that composes the PollCycleMetrics atom into a
// ready-to-use zap.Field.
//
// Example:
//
//	metrics := logging.PollCycleMetrics{
//		CorrelationID: "a1b2c3d4",
//		ActivityType:  "working",
//		Availability:  "Busy",
//		Duration:      80 * time.Millisecond,
//		Success:       true,
//	}
//	logger.Info("poll cycle complete", logging.PollFields(metrics))
func PollFields(metrics PollCycleMetrics) zap.Field {
	return zap.Object("poll", metrics)
}

// HeartRateFields creates a structured zap field from heart-rate metrics.
// This is a molecule that composes the HeartRateMetrics atom into a
// ready-to-use zap.Field.
//
// Example:
//
//	hr := logging.HeartRateMetrics{
//		BPM:             72,
//		SampledAtMillis: 1700000000000,
//	}
//	logger.Info("heart rate", logging.HeartRateFields(hr))
func HeartRateFields(metrics HeartRateMetrics) zap.Field {
	return zap.Object("heart_rate", metrics)
}

// ActivityFields creates a slice of zap fields for a classified activity.
// This is a convenience function for logging classification results without
// a full PollCycleMetrics struct.
//
// Example:
//
//	logger.Info("classified", logging.ActivityFields("gaming", "minecraft", "Playing Minecraft")...)
func ActivityFields(activityType, subType, description string) []zap.Field {
	return []zap.Field{
		zap.String("activity_type", activityType),
		zap.String("activity_sub_type", subType),
		zap.String("description", description),
	}
}

// TimingFields creates a slice of zap fields for poll cycle timing.
// This is a convenience function for logging timing metrics with automatic
// duration calculation.
//
// Example:
//
//	start := time.Now()
//	// ... fetch and classify ...
//	logger.Info("timing", logging.TimingFields(start, time.Now())...)
func TimingFields(startTime, endTime time.Time) []zap.Field {
	return []zap.Field{
		zap.Time("start_time", startTime),
		zap.Time("end_time", endTime),
		zap.Duration("duration", endTime.Sub(startTime)),
	}
}
