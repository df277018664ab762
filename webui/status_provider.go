// Package webui provides the dashboard web server for the life status
// backend. This file defines the data-source contracts the dashboard API
// consumes: the latest-status provider fed by the polling monitor, and the
// subset of the database repository the handlers query.
package webui

import (
	"context"
	"time"

	"status_backend/activity"
	"status_backend/db"
)

// StatusSnapshot is one complete status evaluation: the raw telemetry that
// went in, the classifier and predictor verdicts that came out, and the
// correlation ID tying the evaluation to its log lines and DB row.
type StatusSnapshot struct {
	CorrelationID string                      `json:"correlation_id"`
	Telemetry     activity.TelemetrySnapshot  `json:"telemetry"`
	HeartRate     activity.HeartRateSnapshot  `json:"heart_rate"`
	Activity      activity.ActivityDetails    `json:"activity"`
	Availability  activity.AvailabilityStatus `json:"availability"`
	EvaluatedAt   time.Time                   `json:"evaluated_at"`
}

// StatusProvider supplies the most recent status evaluation. The polling
// monitor implements this; the dashboard API and the websocket initial
// payload read from it.
type StatusProvider interface {
	// LatestStatus returns the newest snapshot and true, or a zero value
	// and false when no poll cycle has completed yet.
	LatestStatus() (StatusSnapshot, bool)
}

// StatusRepository is the subset of db.Repository the dashboard API needs.
// Declared here so handler tests can substitute an in-memory fake.
type StatusRepository interface {
	QuerySportsPage(ctx context.Context, page int) (db.SportsPage, error)
	QuerySportsActivity(ctx context.Context, id string) (*db.SportsActivityDetail, error)
	QuerySportsStats(ctx context.Context) (db.SportsStats, error)
	QueryHeartRateDay(ctx context.Context, date string) (db.HeartRateDay, error)
}
