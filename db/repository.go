// Package db provides database utilities including repository methods for CRUD operations.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// SportsPageSize is the number of sports activities returned per page.
const SportsPageSize = 10

// StatusRecord represents a record in the status_history table.
// One row is written per poll cycle with the predicted life status.
type StatusRecord struct {
	ID               int64     // Auto-incremented primary key
	CorrelationID    string    // Unique identifier tracing one poll cycle
	Status           string    // Short status line (e.g., "Playing Minecraft")
	Description      string    // Longer human-readable description
	Color            string    // Color class for the dashboard
	ActivityType     string    // Classified activity type (e.g., "gaming")
	ActivitySubType  string    // Classified subtype (may be empty)
	ProcessName      string    // Foreground process at poll time
	WindowTitle      string    // Foreground window title at poll time
	HeartRate        int       // Heart rate in BPM (0 if unavailable)
	HeartRateStampMS int64     // Heart rate sample time, epoch milliseconds
	MouseIdleSeconds int       // Seconds since last input
	CreatedAt        time.Time // Timestamp when record was created
}

// SportsActivity represents a record in the activities table.
// These are synced outdoor sports sessions (runs, rides, hikes).
type SportsActivity struct {
	ID               string  // Upstream activity ID
	Type             string  // Sport type (e.g., "running", "cycling")
	StartTime        string  // RFC 3339 UTC
	EndTime          string  // RFC 3339 UTC
	TotalTime        float64 // Seconds
	TotalDistance    float64 // Meters
	StartLatitude    float64
	StartLongitude   float64
	MovingTime       float64 // Seconds
	AverageSpeed     float64 // Meters per second
	AverageHeartRate float64 // BPM
	ElevationGain    float64 // Meters
	SyncTime         string  // RFC 3339 UTC, when the record was synced
}

// TrackPoint is a single GPS sample belonging to a sports activity.
type TrackPoint struct {
	Latitude  float64
	Longitude float64
	Timestamp string // RFC 3339 UTC
	Altitude  float64
}

// SportsActivityDetail is a sports activity with its GPS track.
type SportsActivityDetail struct {
	SportsActivity
	TrackPoints []TrackPoint
}

// SportsPage is one page of sports activities with pagination info.
type SportsPage struct {
	Activities []SportsActivity
	TotalCount int64
	// NextPage is the next page number, or nil when this is the last page.
	NextPage *int
}

// PeriodStats aggregates sports activities over a time period.
type PeriodStats struct {
	TotalActivities int64
	TotalDistance   float64
	TotalTime       float64
}

// SportsStats holds aggregates for the all-time, current-year, and
// current-month periods.
type SportsStats struct {
	AllTime PeriodStats
	Year    PeriodStats
	Month   PeriodStats
}

// HourlyHeartRate is the per-hour heart rate aggregate for one hour slot.
// MinHR and MaxHR are nil for hours with no samples.
type HourlyHeartRate struct {
	Hour  int
	MinHR *int
	MaxHR *int
}

// HeartRateStats summarizes a day of heart rate data.
// Avg is the rounded mean of each hour's min and max.
type HeartRateStats struct {
	Min int
	Max int
	Avg int
}

// HeartRateDay is a full day of hourly heart rate data, always 24 slots.
type HeartRateDay struct {
	Date   string // YYYYMMDD
	Hourly []HourlyHeartRate
	Stats  HeartRateStats
}

// ErrorLogEntry represents a record in the error_log table.
// This captures errors with context for debugging.
type ErrorLogEntry struct {
	ID            int64     // Auto-incremented primary key
	CorrelationID string    // Optional correlation ID linking to a status record
	ErrorType     string    // Category of error (e.g., "poll_error", "db_error")
	ErrorMessage  string    // Error description
	Context       string    // JSON-encoded additional context
	CreatedAt     time.Time // Timestamp when error was logged
}

// Repository provides CRUD operations for the database tables.
// It wraps a Database instance and provides type-safe methods
// for inserting and querying records.
//
// The Repository is designed to work with both synchronous and
// asynchronous writes via the AsyncWriter.
type Repository struct {
	db          *Database
	asyncWriter *AsyncWriter
}

// NewRepository creates a new Repository instance.
// The asyncWriter parameter is optional; if nil, all writes will be synchronous.
func NewRepository(db *Database, asyncWriter *AsyncWriter) *Repository {
	return &Repository{
		db:          db,
		asyncWriter: asyncWriter,
	}
}

// InsertStatusHistory inserts a status history record.
// If an asyncWriter is configured, the write is queued asynchronously.
// Returns the inserted record ID (0 for async writes).
func (r *Repository) InsertStatusHistory(ctx context.Context, record StatusRecord) (int64, error) {
	if r.db == nil {
		return 0, fmt.Errorf("database connection is nil")
	}

	query := `
		INSERT INTO status_history (
			correlation_id, status, description, color,
			activity_type, activity_sub_type, process_name, window_title,
			heart_rate, heart_rate_timestamp, mouse_idle_seconds
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	args := []interface{}{
		record.CorrelationID,
		record.Status,
		record.Description,
		record.Color,
		record.ActivityType,
		record.ActivitySubType,
		record.ProcessName,
		record.WindowTitle,
		record.HeartRate,
		record.HeartRateStampMS,
		record.MouseIdleSeconds,
	}

	// Use async writer if available
	if r.asyncWriter != nil && r.asyncWriter.IsStarted() {
		op := asyncInsertOp{
			query: query,
			args:  args,
		}
		if r.asyncWriter.Write(op) {
			return 0, nil // Async write queued successfully
		}
		// Fall through to sync write if channel is full
	}

	// Synchronous write
	result, err := r.db.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to insert status history: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return id, nil
}

func scanStatusRows(rows *sql.Rows) ([]StatusRecord, error) {
	var records []StatusRecord
	for rows.Next() {
		var rec StatusRecord

		// The driver materializes DATETIME columns as time.Time; scan
		// into the field directly instead of re-parsing a string.
		err := rows.Scan(
			&rec.ID,
			&rec.CorrelationID,
			&rec.Status,
			&rec.Description,
			&rec.Color,
			&rec.ActivityType,
			&rec.ActivitySubType,
			&rec.ProcessName,
			&rec.WindowTitle,
			&rec.HeartRate,
			&rec.HeartRateStampMS,
			&rec.MouseIdleSeconds,
			&rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan status history row: %w", err)
		}

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating status history rows: %w", err)
	}

	return records, nil
}

const statusSelectColumns = `
		SELECT id, correlation_id, status, COALESCE(description, ''),
			   COALESCE(color, ''), COALESCE(activity_type, ''),
			   COALESCE(activity_sub_type, ''), COALESCE(process_name, ''),
			   COALESCE(window_title, ''), COALESCE(heart_rate, 0),
			   COALESCE(heart_rate_timestamp, 0), COALESCE(mouse_idle_seconds, 0),
			   created_at
		FROM status_history`

// QueryRecentStatusHistory retrieves the most recent status records.
// Results are ordered by created_at DESC.
func (r *Repository) QueryRecentStatusHistory(ctx context.Context, limit int) ([]StatusRecord, error) {
	if r.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	if limit <= 0 {
		limit = 10 // Default limit
	}

	query := statusSelectColumns + `
		ORDER BY created_at DESC, id DESC
		LIMIT ?`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query status history: %w", err)
	}
	defer rows.Close()

	return scanStatusRows(rows)
}

// QueryLatestStatus returns the most recently written status record.
// Returns ErrNotFound if no status has been recorded yet.
func (r *Repository) QueryLatestStatus(ctx context.Context) (*StatusRecord, error) {
	records, err := r.QueryRecentStatusHistory(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	return &records[0], nil
}

// QueryStatusHistoryByCorrelationID retrieves status records for a specific
// correlation ID.
func (r *Repository) QueryStatusHistoryByCorrelationID(ctx context.Context, correlationID string) ([]StatusRecord, error) {
	if r.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	query := statusSelectColumns + `
		WHERE correlation_id = ?
		ORDER BY created_at DESC, id DESC`

	rows, err := r.db.Query(query, correlationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query status history: %w", err)
	}
	defer rows.Close()

	return scanStatusRows(rows)
}

// CountStatusHistory returns the total count of status history records.
func (r *Repository) CountStatusHistory(ctx context.Context) (int64, error) {
	if r.db == nil {
		return 0, fmt.Errorf("database connection is nil")
	}

	var count int64
	err := r.db.QueryRow("SELECT COUNT(*) FROM status_history").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count status history: %w", err)
	}

	return count, nil
}

// UpsertSportsActivity inserts or replaces a sports activity record.
// Upstream syncs may deliver the same activity more than once, so the
// activity ID is the conflict key.
func (r *Repository) UpsertSportsActivity(ctx context.Context, activity SportsActivity) error {
	if r.db == nil {
		return fmt.Errorf("database connection is nil")
	}

	query := `
		INSERT OR REPLACE INTO activities (
			id, type, start_time, end_time, total_time, total_distance,
			start_latitude, start_longitude, moving_time, average_speed,
			average_heartrate, elevation_gain, sync_time
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.Exec(query,
		activity.ID,
		activity.Type,
		activity.StartTime,
		activity.EndTime,
		activity.TotalTime,
		activity.TotalDistance,
		activity.StartLatitude,
		activity.StartLongitude,
		activity.MovingTime,
		activity.AverageSpeed,
		activity.AverageHeartRate,
		activity.ElevationGain,
		activity.SyncTime,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert sports activity: %w", err)
	}

	return nil
}

// ReplaceTrackPoints replaces the GPS track for an activity.
// Existing points are deleted first so re-syncs stay idempotent.
func (r *Repository) ReplaceTrackPoints(ctx context.Context, activityID string, points []TrackPoint) error {
	if r.db == nil {
		return fmt.Errorf("database connection is nil")
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if tx != nil {
			tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM activity_track_points WHERE activity_id = ?", activityID); err != nil {
		return fmt.Errorf("failed to clear track points: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO activity_track_points (activity_id, latitude, longitude, timestamp, altitude)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare track point insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range points {
		if _, err := stmt.ExecContext(ctx, activityID, p.Latitude, p.Longitude, p.Timestamp, p.Altitude); err != nil {
			return fmt.Errorf("failed to insert track point: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit track points: %w", err)
	}
	tx = nil

	return nil
}

const sportsSelectColumns = `
		SELECT id, type, start_time, COALESCE(end_time, ''),
			   COALESCE(total_time, 0), COALESCE(total_distance, 0),
			   COALESCE(start_latitude, 0), COALESCE(start_longitude, 0),
			   COALESCE(moving_time, 0), COALESCE(average_speed, 0),
			   COALESCE(average_heartrate, 0), COALESCE(elevation_gain, 0),
			   COALESCE(sync_time, '')
		FROM activities`

func scanSportsRows(rows *sql.Rows) ([]SportsActivity, error) {
	var activities []SportsActivity
	for rows.Next() {
		var act SportsActivity
		err := rows.Scan(
			&act.ID,
			&act.Type,
			&act.StartTime,
			&act.EndTime,
			&act.TotalTime,
			&act.TotalDistance,
			&act.StartLatitude,
			&act.StartLongitude,
			&act.MovingTime,
			&act.AverageSpeed,
			&act.AverageHeartRate,
			&act.ElevationGain,
			&act.SyncTime,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sports activity row: %w", err)
		}
		activities = append(activities, act)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sports activity rows: %w", err)
	}

	return activities, nil
}

// QuerySportsPage retrieves one page of sports activities ordered by
// start_time DESC. Page numbers start at 0. NextPage is nil on the last page.
func (r *Repository) QuerySportsPage(ctx context.Context, page int) (SportsPage, error) {
	result := SportsPage{Activities: []SportsActivity{}}

	if r.db == nil {
		return result, fmt.Errorf("database connection is nil")
	}
	if page < 0 {
		page = 0
	}

	if err := r.db.QueryRow("SELECT COUNT(*) FROM activities").Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("failed to count sports activities: %w", err)
	}

	query := sportsSelectColumns + `
		ORDER BY start_time DESC
		LIMIT ? OFFSET ?`

	rows, err := r.db.Query(query, SportsPageSize, page*SportsPageSize)
	if err != nil {
		return result, fmt.Errorf("failed to query sports activities: %w", err)
	}
	defer rows.Close()

	activities, err := scanSportsRows(rows)
	if err != nil {
		return result, err
	}
	if activities != nil {
		result.Activities = activities
	}

	if int64((page+1)*SportsPageSize) < result.TotalCount {
		next := page + 1
		result.NextPage = &next
	}

	return result, nil
}

// QuerySportsActivity retrieves one sports activity with its GPS track.
// Returns ErrNotFound if the activity does not exist. A track point query
// failure is tolerated; the activity is returned with an empty track.
func (r *Repository) QuerySportsActivity(ctx context.Context, id string) (*SportsActivityDetail, error) {
	if r.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	query := sportsSelectColumns + ` WHERE id = ?`

	rows, err := r.db.Query(query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query sports activity: %w", err)
	}
	defer rows.Close()

	activities, err := scanSportsRows(rows)
	if err != nil {
		return nil, err
	}
	if len(activities) == 0 {
		return nil, ErrNotFound
	}

	detail := &SportsActivityDetail{
		SportsActivity: activities[0],
		TrackPoints:    []TrackPoint{},
	}

	points, err := r.QueryTrackPoints(ctx, id)
	if err == nil && points != nil {
		detail.TrackPoints = points
	}

	return detail, nil
}

// QueryTrackPoints retrieves the GPS track for an activity, ordered by
// timestamp ascending.
func (r *Repository) QueryTrackPoints(ctx context.Context, activityID string) ([]TrackPoint, error) {
	if r.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	query := `
		SELECT latitude, longitude, timestamp, COALESCE(altitude, 0)
		FROM activity_track_points
		WHERE activity_id = ?
		ORDER BY timestamp ASC`

	rows, err := r.db.Query(query, activityID)
	if err != nil {
		return nil, fmt.Errorf("failed to query track points: %w", err)
	}
	defer rows.Close()

	var points []TrackPoint
	for rows.Next() {
		var p TrackPoint
		if err := rows.Scan(&p.Latitude, &p.Longitude, &p.Timestamp, &p.Altitude); err != nil {
			return nil, fmt.Errorf("failed to scan track point row: %w", err)
		}
		points = append(points, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating track point rows: %w", err)
	}

	return points, nil
}

// QuerySportsStats returns activity aggregates for all time, the current
// year, and the current month. Period boundaries are UTC midnight.
func (r *Repository) QuerySportsStats(ctx context.Context) (SportsStats, error) {
	return r.QuerySportsStatsAt(ctx, time.Now().UTC())
}

// QuerySportsStatsAt computes sports stats relative to a reference time.
// Exposed for deterministic testing.
func (r *Repository) QuerySportsStatsAt(ctx context.Context, now time.Time) (SportsStats, error) {
	var stats SportsStats

	if r.db == nil {
		return stats, fmt.Errorf("database connection is nil")
	}

	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	var err error
	if stats.AllTime, err = r.queryPeriodStats(ctx, ""); err != nil {
		return stats, err
	}
	if stats.Year, err = r.queryPeriodStats(ctx, yearStart.Format(time.RFC3339)); err != nil {
		return stats, err
	}
	if stats.Month, err = r.queryPeriodStats(ctx, monthStart.Format(time.RFC3339)); err != nil {
		return stats, err
	}

	return stats, nil
}

func (r *Repository) queryPeriodStats(ctx context.Context, startTime string) (PeriodStats, error) {
	var stats PeriodStats

	query := `
		SELECT COUNT(*), COALESCE(SUM(total_distance), 0), COALESCE(SUM(total_time), 0)
		FROM activities`
	args := []interface{}{}
	if startTime != "" {
		query += " WHERE start_time >= ?"
		args = append(args, startTime)
	}

	err := r.db.QueryRow(query, args...).Scan(&stats.TotalActivities, &stats.TotalDistance, &stats.TotalTime)
	if err != nil {
		return stats, fmt.Errorf("failed to query sports stats: %w", err)
	}

	return stats, nil
}

// UpsertHourlyHeartRate records a heart rate sample into the hourly
// aggregate for the given date (YYYYMMDD) and hour. The stored min and max
// widen to cover the new sample.
func (r *Repository) UpsertHourlyHeartRate(ctx context.Context, date string, hour, bpm int) error {
	if r.db == nil {
		return fmt.Errorf("database connection is nil")
	}
	if hour < 0 || hour > 23 {
		return fmt.Errorf("hour must be 0-23, got %d", hour)
	}

	query := `
		INSERT INTO daily_heart_rate_hourly (date, hour, min_hr, max_hr)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(date, hour) DO UPDATE SET
			min_hr = MIN(min_hr, excluded.min_hr),
			max_hr = MAX(max_hr, excluded.max_hr)`

	if _, err := r.db.Exec(query, date, hour, bpm, bpm); err != nil {
		return fmt.Errorf("failed to upsert hourly heart rate: %w", err)
	}

	return nil
}

// QueryHeartRateDay retrieves one day of hourly heart rate aggregates.
// The result always has 24 hour slots; hours without samples have nil
// min/max. The average is the rounded mean of every hour's min and max.
func (r *Repository) QueryHeartRateDay(ctx context.Context, date string) (HeartRateDay, error) {
	day := HeartRateDay{
		Date:   date,
		Hourly: make([]HourlyHeartRate, 24),
	}
	for i := range day.Hourly {
		day.Hourly[i].Hour = i
	}

	if r.db == nil {
		return day, fmt.Errorf("database connection is nil")
	}

	query := `
		SELECT hour, min_hr, max_hr
		FROM daily_heart_rate_hourly
		WHERE date = ?
		ORDER BY hour ASC`

	rows, err := r.db.Query(query, date)
	if err != nil {
		return day, fmt.Errorf("failed to query heart rate day: %w", err)
	}
	defer rows.Close()

	var totalMin, totalMax, count int
	minHR, maxHR := 0, 0

	for rows.Next() {
		var hour, lo, hi int
		if err := rows.Scan(&hour, &lo, &hi); err != nil {
			return day, fmt.Errorf("failed to scan heart rate row: %w", err)
		}
		if hour < 0 || hour > 23 {
			continue
		}

		loCopy, hiCopy := lo, hi
		day.Hourly[hour].MinHR = &loCopy
		day.Hourly[hour].MaxHR = &hiCopy

		totalMin += lo
		totalMax += hi
		if count == 0 || lo < minHR {
			minHR = lo
		}
		if count == 0 || hi > maxHR {
			maxHR = hi
		}
		count++
	}

	if err := rows.Err(); err != nil {
		return day, fmt.Errorf("error iterating heart rate rows: %w", err)
	}

	if count > 0 {
		day.Stats.Min = minHR
		day.Stats.Max = maxHR
		day.Stats.Avg = int(float64(totalMin+totalMax)/float64(count*2) + 0.5)
	}

	return day, nil
}

// InsertErrorLog inserts an error log entry.
// If an asyncWriter is configured, the write is queued asynchronously.
func (r *Repository) InsertErrorLog(ctx context.Context, entry ErrorLogEntry) (int64, error) {
	if r.db == nil {
		return 0, fmt.Errorf("database connection is nil")
	}

	query := `
		INSERT INTO error_log (
			correlation_id, error_type, error_message, context
		) VALUES (?, ?, ?, ?)`

	args := []interface{}{
		nullString(entry.CorrelationID),
		entry.ErrorType,
		entry.ErrorMessage,
		nullString(entry.Context),
	}

	// Use async writer if available
	if r.asyncWriter != nil && r.asyncWriter.IsStarted() {
		op := asyncInsertOp{
			query: query,
			args:  args,
		}
		if r.asyncWriter.Write(op) {
			return 0, nil // Async write queued successfully
		}
		// Fall through to sync write if channel is full
	}

	// Synchronous write
	result, err := r.db.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to insert error log: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return id, nil
}

// QueryRecentErrorLogs retrieves the most recent error log entries.
// Results are ordered by created_at DESC.
func (r *Repository) QueryRecentErrorLogs(ctx context.Context, limit int) ([]ErrorLogEntry, error) {
	if r.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT id, COALESCE(correlation_id, ''), error_type, error_message,
			   COALESCE(context, ''), created_at
		FROM error_log
		ORDER BY created_at DESC, id DESC
		LIMIT ?`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query error logs: %w", err)
	}
	defer rows.Close()

	return scanErrorLogRows(rows)
}

// QueryErrorLogsByType retrieves error logs filtered by error type.
func (r *Repository) QueryErrorLogsByType(ctx context.Context, errorType string, limit int) ([]ErrorLogEntry, error) {
	if r.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT id, COALESCE(correlation_id, ''), error_type, error_message,
			   COALESCE(context, ''), created_at
		FROM error_log
		WHERE error_type = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?`

	rows, err := r.db.Query(query, errorType, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query error logs: %w", err)
	}
	defer rows.Close()

	return scanErrorLogRows(rows)
}

func scanErrorLogRows(rows *sql.Rows) ([]ErrorLogEntry, error) {
	var entries []ErrorLogEntry
	for rows.Next() {
		var entry ErrorLogEntry

		err := rows.Scan(
			&entry.ID,
			&entry.CorrelationID,
			&entry.ErrorType,
			&entry.ErrorMessage,
			&entry.Context,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan error log row: %w", err)
		}

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating error log rows: %w", err)
	}

	return entries, nil
}

// CountErrorLogs returns the total count of error log entries.
func (r *Repository) CountErrorLogs(ctx context.Context) (int64, error) {
	if r.db == nil {
		return 0, fmt.Errorf("database connection is nil")
	}

	var count int64
	err := r.db.QueryRow("SELECT COUNT(*) FROM error_log").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count error logs: %w", err)
	}

	return count, nil
}

// asyncInsertOp is an internal type for async insert operations.
type asyncInsertOp struct {
	query string
	args  []interface{}
}

// CreateAsyncWriteHandler creates a WriteHandler for the Repository.
// This handler processes asyncInsertOp operations.
func (r *Repository) CreateAsyncWriteHandler() WriteHandler {
	return func(op WriteOperation) error {
		insertOp, ok := op.Data.(asyncInsertOp)
		if !ok {
			return fmt.Errorf("invalid operation type: expected asyncInsertOp")
		}

		_, err := r.db.Exec(insertOp.query, insertOp.args...)
		return err
	}
}

// nullString converts an empty string to sql.NullString for NULL storage.
func nullString(s string) interface{} {
	if s == "" {
		return sql.NullString{String: "", Valid: false}
	}
	return s
}
