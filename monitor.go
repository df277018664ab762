package main

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"status_backend/activity"
	"status_backend/db"
	"status_backend/healthapi"
	"status_backend/logging"
	"status_backend/metrics"
	"status_backend/webui"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StatusMonitor is the polling organism at the heart of the backend.
// On each tick it fetches telemetry from the upstream device API,
// classifies the activity, predicts availability, persists the result,
// and pushes the fresh snapshot to dashboard clients.
//
// It implements webui.StatusProvider so the dashboard API can serve the
// most recent evaluation without touching the database.
type StatusMonitor struct {
	client      *healthapi.Client
	classifier  *activity.Classifier
	predictor   *activity.Predictor
	repo        *db.Repository
	store       *metrics.MetricsStore
	broadcaster *webui.WebSocketBroadcaster
	logger      *logging.Logger
	metricsLog  *logging.MetricsLogger
	interval    time.Duration
	done        chan struct{}

	mu        sync.RWMutex
	latest    webui.StatusSnapshot
	hasLatest bool

	counters map[string]*upstreamCounter
}

// upstreamCounter tracks per-endpoint request statistics for the current day.
type upstreamCounter struct {
	day       string
	requests  int64
	successes int64
}

func (c *upstreamCounter) record(now time.Time, ok bool) {
	day := now.Format("20060102")
	if day != c.day {
		c.day = day
		c.requests = 0
		c.successes = 0
	}
	c.requests++
	if ok {
		c.successes++
	}
}

func (c *upstreamCounter) successRate() float64 {
	if c.requests == 0 {
		return 0
	}
	return float64(c.successes) / float64(c.requests) * 100
}

// MonitorConfig bundles the dependencies of a StatusMonitor.
type MonitorConfig struct {
	Client      *healthapi.Client
	Classifier  *activity.Classifier
	Predictor   *activity.Predictor
	Repository  *db.Repository
	Metrics     *metrics.MetricsStore
	Broadcaster *webui.WebSocketBroadcaster
	Logger      *logging.Logger
	Interval    time.Duration
}

// NewStatusMonitor creates a StatusMonitor from the given configuration.
// Interval defaults to 10 seconds when unset.
func NewStatusMonitor(cfg MonitorConfig) *StatusMonitor {
	if cfg.Interval <= 0 {
		cfg.Interval = 10 * time.Second
	}
	return &StatusMonitor{
		client:      cfg.Client,
		classifier:  cfg.Classifier,
		predictor:   cfg.Predictor,
		repo:        cfg.Repository,
		store:       cfg.Metrics,
		broadcaster: cfg.Broadcaster,
		logger:      cfg.Logger,
		metricsLog:  logging.NewMetricsLogger(cfg.Logger),
		interval:    cfg.Interval,
		done:        make(chan struct{}),
		counters: map[string]*upstreamCounter{
			metrics.UpstreamActivity:  {},
			metrics.UpstreamHeartRate: {},
		},
	}
}

// SetBroadcaster attaches the dashboard websocket broadcaster. Must be
// called before Start; a nil broadcaster disables push updates.
func (m *StatusMonitor) SetBroadcaster(b *webui.WebSocketBroadcaster) {
	m.broadcaster = b
}

// Done returns a channel that's closed when the monitor has stopped.
func (m *StatusMonitor) Done() <-chan struct{} {
	return m.done
}

// LatestStatus returns the most recent snapshot. The boolean is false
// until the first poll cycle has completed.
func (m *StatusMonitor) LatestStatus() (webui.StatusSnapshot, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.latest, m.hasLatest
}

// Start runs the poll loop until the context is cancelled.
// The first poll happens immediately, not after the first tick.
func (m *StatusMonitor) Start(ctx context.Context) {
	defer close(m.done)

	m.logger.Info("Status monitor starting",
		zap.Duration("interval", m.interval))

	m.pollOnce(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("Status monitor stopping")
			return
		case <-ticker.C:
			m.pollOnce(ctx)
		}
	}
}

// pollOnce executes one poll cycle: fetch, classify, predict, persist,
// broadcast. An activity fetch failure aborts the cycle; a heart-rate
// fetch failure degrades it (the predictor handles a nil reading).
func (m *StatusMonitor) pollOnce(ctx context.Context) {
	correlationID := newCorrelationID()
	start := time.Now()
	log := m.logger.With(zap.String("correlation_id", correlationID))

	telemetry, err := m.client.GetActivity(ctx)
	m.recordUpstream(metrics.UpstreamActivity, m.client.ActivityProbe().EndpointURL(), err == nil, start)
	if err != nil {
		log.Error("Activity fetch failed", zap.Error(err))
		m.recordFailure(ctx, correlationID, start, "poll_error", err)
		return
	}

	heartRate, hrErr := m.client.GetHeartRate(ctx)
	m.recordUpstream(metrics.UpstreamHeartRate, m.client.HeartRateProbe().EndpointURL(), hrErr == nil, time.Now())
	if hrErr != nil {
		log.Warn("Heart rate fetch failed, predicting without it", zap.Error(hrErr))
		m.logError(ctx, correlationID, "heartrate_error", hrErr)
	}

	details := m.classifier.Classify(telemetry.WindowTitle, telemetry.ProcessName)
	availability := m.predictor.Predict(heartRate, &details, telemetry.MouseIdleSeconds)

	snapshot := webui.StatusSnapshot{
		CorrelationID: correlationID,
		Telemetry:     *telemetry,
		Activity:      details,
		Availability:  availability,
		EvaluatedAt:   time.Now().UTC(),
	}
	if heartRate != nil {
		snapshot.HeartRate = *heartRate
	}

	m.mu.Lock()
	m.latest = snapshot
	m.hasLatest = true
	m.mu.Unlock()

	m.persist(ctx, snapshot, heartRate)
	m.broadcast(snapshot, heartRate)

	duration := time.Since(start)
	m.store.RecordPoll(metrics.PollRecord{
		ID:           correlationID,
		ActivityType: string(details.Type),
		Status:       metrics.PollStatusSuccess,
		StartTime:    start,
		EndTime:      start.Add(duration),
		Duration:     duration,
	})

	hrMetrics := logging.HeartRateMetrics{}
	if heartRate != nil {
		hrMetrics = logging.HeartRateMetrics{
			BPM:             heartRate.LastNonZeroHR,
			SampledAtMillis: heartRate.LastTimestampMillis,
			WatchOff:        heartRate.IsWatchOff,
		}
	}
	m.metricsLog.LogPoll(correlationID, string(details.Type), availability.Status,
		duration, hrErr == nil, hrMetrics)
}

// persist writes the status record and, when a fresh heart-rate sample is
// present, folds it into the hourly aggregate.
func (m *StatusMonitor) persist(ctx context.Context, snapshot webui.StatusSnapshot, heartRate *activity.HeartRateSnapshot) {
	record := db.StatusRecord{
		CorrelationID:    snapshot.CorrelationID,
		Status:           snapshot.Availability.Status,
		Description:      snapshot.Activity.Description,
		Color:            snapshot.Availability.Color,
		ActivityType:     string(snapshot.Activity.Type),
		ActivitySubType:  string(snapshot.Activity.SubType),
		ProcessName:      snapshot.Telemetry.ProcessName,
		WindowTitle:      snapshot.Telemetry.WindowTitle,
		MouseIdleSeconds: snapshot.Telemetry.MouseIdleSeconds,
	}
	if heartRate != nil {
		record.HeartRate = heartRate.LastNonZeroHR
		record.HeartRateStampMS = heartRate.LastTimestampMillis
	}

	if _, err := m.repo.InsertStatusHistory(ctx, record); err != nil {
		m.logger.Error("Failed to persist status record",
			zap.String("correlation_id", snapshot.CorrelationID),
			zap.Error(err))
	}

	if heartRate == nil || heartRate.LastNonZeroHR <= 0 || heartRate.LastTimestampMillis <= 0 {
		return
	}

	sampled := time.UnixMilli(heartRate.LastTimestampMillis).UTC()
	date := sampled.Format("20060102")
	if err := m.repo.UpsertHourlyHeartRate(ctx, date, sampled.Hour(), heartRate.LastNonZeroHR); err != nil {
		m.logger.Error("Failed to persist hourly heart rate",
			zap.String("correlation_id", snapshot.CorrelationID),
			zap.String("date", date),
			zap.Error(err))
	}
}

// broadcast pushes the fresh snapshot to connected dashboard clients.
func (m *StatusMonitor) broadcast(snapshot webui.StatusSnapshot, heartRate *activity.HeartRateSnapshot) {
	if m.broadcaster == nil {
		return
	}

	m.broadcaster.BroadcastStatusUpdate(snapshot)

	if heartRate != nil && heartRate.LastNonZeroHR > 0 {
		m.broadcaster.BroadcastHeartRateUpdate(webui.HeartRateUpdateData{
			HeartRate: heartRate.LastNonZeroHR,
			SampledAt: heartRate.LastTimestampMillis,
			WatchOff:  heartRate.IsWatchOff,
		})
	}
}

// recordFailure logs the error, persists it, and records a failed poll cycle.
func (m *StatusMonitor) recordFailure(ctx context.Context, correlationID string, start time.Time, errorType string, err error) {
	m.logError(ctx, correlationID, errorType, err)

	duration := time.Since(start)
	m.store.RecordPoll(metrics.PollRecord{
		ID:        correlationID,
		Status:    metrics.PollStatusError,
		StartTime: start,
		EndTime:   start.Add(duration),
		Duration:  duration,
		ErrorMsg:  err.Error(),
	})
}

// logError persists an error-log entry; persistence failures are logged only.
func (m *StatusMonitor) logError(ctx context.Context, correlationID, errorType string, cause error) {
	contextJSON, _ := json.Marshal(map[string]string{
		"interval": m.interval.String(),
	})

	entry := db.ErrorLogEntry{
		CorrelationID: correlationID,
		ErrorType:     errorType,
		ErrorMessage:  cause.Error(),
		Context:       string(contextJSON),
	}
	if _, err := m.repo.InsertErrorLog(ctx, entry); err != nil {
		m.logger.Error("Failed to persist error log",
			zap.String("correlation_id", correlationID),
			zap.Error(err))
	}
}

// recordUpstream updates the per-endpoint connection status and counters.
func (m *StatusMonitor) recordUpstream(id, url string, ok bool, now time.Time) {
	counter := m.counters[id]
	if counter == nil {
		counter = &upstreamCounter{}
		m.counters[id] = counter
	}
	counter.record(now, ok)

	status := metrics.UpstreamStatus{
		ID:            id,
		URL:           url,
		Connected:     ok,
		RequestsToday: counter.requests,
		SuccessRate:   counter.successRate(),
	}
	if ok {
		status.LastUpdate = now
	} else if prev, found := m.store.GetUpstreamStatus(id); found {
		status.LastUpdate = prev.LastUpdate
		status.Errors = prev.Errors
	}
	m.store.UpdateUpstreamStatus(status)
}

// newCorrelationID returns a short identifier tying one poll cycle's
// records and log lines together.
func newCorrelationID() string {
	return strings.SplitN(uuid.NewString(), "-", 2)[0]
}
