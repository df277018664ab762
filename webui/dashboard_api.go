// Package webui provides the dashboard web server for the life status
// backend. This file contains the REST handlers that serve the current
// status, heart-rate history, and sports records to the dashboard frontend.
package webui

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"status_backend/db"
	"status_backend/metrics"
)

// DashboardAPI is an organism that provides REST API handlers for the
// dashboard. It composes the latest-status provider, the database
// repository, and the metrics store.
//
// Endpoints:
//   - GET /api/status       - latest status evaluation + system health
//   - GET /api/activity     - latest raw telemetry snapshot
//   - GET /api/heartrate    - hourly heart-rate aggregates for one day
//   - GET /api/sports       - paginated sports activities
//   - GET /api/sports/{id}  - single sports activity with GPS track
//   - GET /api/sports/stats - all-time / year / month sports totals
//   - GET /api/metrics      - poll metrics and upstream endpoint statuses
//   - GET /api/polls        - recent poll records (with limit param)
type DashboardAPI struct {
	status       StatusProvider
	repo         StatusRepository
	store        metrics.MetricsCollector
	defaultLimit int
	maxLimit     int
	versionInfo  VersionInfo
}

// VersionInfo contains version metadata for the status endpoint.
type VersionInfo struct {
	Version   string `json:"version"`
	BuildDate string `json:"build_date,omitempty"`
	GitCommit string `json:"git_commit,omitempty"`
}

// DashboardAPIConfig configures the DashboardAPI behavior.
type DashboardAPIConfig struct {
	// DefaultLimit is the default number of items to return in list endpoints
	DefaultLimit int

	// MaxLimit is the maximum number of items that can be requested
	MaxLimit int

	// VersionInfo contains application version metadata
	VersionInfo VersionInfo
}

// DefaultDashboardAPIConfig returns a default configuration.
func DefaultDashboardAPIConfig() DashboardAPIConfig {
	return DashboardAPIConfig{
		DefaultLimit: 20,
		MaxLimit:     100,
		VersionInfo: VersionInfo{
			Version: "0.0.0",
		},
	}
}

// NewDashboardAPI creates a new DashboardAPI with the specified configuration.
// The status provider and repository may be nil during early startup; the
// affected endpoints then answer 503.
func NewDashboardAPI(status StatusProvider, repo StatusRepository, store metrics.MetricsCollector, config DashboardAPIConfig) *DashboardAPI {
	if config.DefaultLimit < 1 {
		config.DefaultLimit = 20
	}
	if config.MaxLimit < 1 {
		config.MaxLimit = 100
	}

	return &DashboardAPI{
		status:       status,
		repo:         repo,
		store:        store,
		defaultLimit: config.DefaultLimit,
		maxLimit:     config.MaxLimit,
		versionInfo:  config.VersionInfo,
	}
}

// SystemInfo is the system sub-object of the status response.
type SystemInfo struct {
	Health     string    `json:"health"`
	Version    string    `json:"version"`
	BuildDate  string    `json:"build_date,omitempty"`
	GitCommit  string    `json:"git_commit,omitempty"`
	Uptime     string    `json:"uptime"`
	UptimeSecs float64   `json:"uptime_secs"`
	LastCheck  time.Time `json:"last_check"`
}

// StatusResponse represents the JSON response for /api/status.
type StatusResponse struct {
	StatusSnapshot
	System SystemInfo `json:"system"`
}

// HandleStatus handles GET /api/status requests. It returns the newest
// status evaluation together with process-level health information.
func (api *DashboardAPI) HandleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	snapshot, ok := api.latestSnapshot()
	if !ok {
		api.writeError(w, http.StatusServiceUnavailable, "no status evaluated yet")
		return
	}

	system := api.store.GetSystemStatus()

	response := StatusResponse{
		StatusSnapshot: snapshot,
		System: SystemInfo{
			Health:     system.Health,
			Version:    api.versionInfo.Version,
			BuildDate:  api.versionInfo.BuildDate,
			GitCommit:  api.versionInfo.GitCommit,
			Uptime:     FormatDuration(system.Uptime),
			UptimeSecs: system.Uptime.Seconds(),
			LastCheck:  system.LastCheck,
		},
	}

	api.writeJSON(w, http.StatusOK, response)
}

// ActivityResponse represents the JSON response for /api/activity.
type ActivityResponse struct {
	WindowTitle      string    `json:"window_title"`
	ProcessName      string    `json:"process_name"`
	MouseIdleSeconds int       `json:"mouse_idle_seconds"`
	EvaluatedAt      time.Time `json:"evaluated_at"`
}

// HandleActivity handles GET /api/activity requests, returning the raw
// telemetry of the newest poll cycle without the classifier verdict.
func (api *DashboardAPI) HandleActivity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	snapshot, ok := api.latestSnapshot()
	if !ok {
		api.writeError(w, http.StatusServiceUnavailable, "no telemetry received yet")
		return
	}

	response := ActivityResponse{
		WindowTitle:      snapshot.Telemetry.WindowTitle,
		ProcessName:      snapshot.Telemetry.ProcessName,
		MouseIdleSeconds: snapshot.Telemetry.MouseIdleSeconds,
		EvaluatedAt:      snapshot.EvaluatedAt,
	}

	api.writeJSON(w, http.StatusOK, response)
}

// HourlyHeartRateJSON is one hour slot of the heart-rate response.
// MinHR and MaxHR are null for hours without samples.
type HourlyHeartRateJSON struct {
	Hour  int  `json:"hour"`
	MinHR *int `json:"min_hr"`
	MaxHR *int `json:"max_hr"`
}

// HeartRateResponse represents the JSON response for /api/heartrate.
type HeartRateResponse struct {
	Date   string                `json:"date"`
	Hourly []HourlyHeartRateJSON `json:"hourly"`
	Stats  struct {
		Min int `json:"min"`
		Max int `json:"max"`
		Avg int `json:"avg"`
	} `json:"stats"`
}

// HandleHeartRate handles GET /api/heartrate requests.
// Query parameters:
//   - date: day to query, YYYYMMDD (default: today, UTC)
func (api *DashboardAPI) HandleHeartRate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if api.repo == nil {
		api.writeError(w, http.StatusServiceUnavailable, "database not available")
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().UTC().Format("20060102")
	}
	if _, err := time.Parse("20060102", date); err != nil {
		api.writeError(w, http.StatusBadRequest, "date must be YYYYMMDD")
		return
	}

	day, err := api.repo.QueryHeartRateDay(r.Context(), date)
	if err != nil {
		api.writeError(w, http.StatusInternalServerError, "querying heart rate: "+err.Error())
		return
	}

	response := HeartRateResponse{
		Date:   day.Date,
		Hourly: make([]HourlyHeartRateJSON, 0, len(day.Hourly)),
	}
	for _, h := range day.Hourly {
		response.Hourly = append(response.Hourly, HourlyHeartRateJSON{
			Hour:  h.Hour,
			MinHR: h.MinHR,
			MaxHR: h.MaxHR,
		})
	}
	response.Stats.Min = day.Stats.Min
	response.Stats.Max = day.Stats.Max
	response.Stats.Avg = day.Stats.Avg

	api.writeJSON(w, http.StatusOK, response)
}

// SportsActivityJSON is the wire shape of one sports activity.
type SportsActivityJSON struct {
	ID               string  `json:"id"`
	Type             string  `json:"type"`
	StartTime        string  `json:"start_time"`
	EndTime          string  `json:"end_time"`
	TotalTime        float64 `json:"total_time"`
	TotalDistance    float64 `json:"total_distance"`
	StartLatitude    float64 `json:"start_latitude"`
	StartLongitude   float64 `json:"start_longitude"`
	MovingTime       float64 `json:"moving_time"`
	AverageSpeed     float64 `json:"average_speed"`
	AverageHeartRate float64 `json:"average_heart_rate"`
	ElevationGain    float64 `json:"elevation_gain"`
	SyncTime         string  `json:"sync_time"`
}

// TrackPointJSON is one GPS sample of a sports activity track.
type TrackPointJSON struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timestamp string  `json:"timestamp"`
	Altitude  float64 `json:"altitude"`
}

// SportsPageResponse represents the JSON response for /api/sports.
type SportsPageResponse struct {
	Activities []SportsActivityJSON `json:"activities"`
	TotalCount int64                `json:"total_count"`
	Page       int                  `json:"page"`
	NextPage   *int                 `json:"next_page"`
}

// HandleSports handles GET /api/sports requests.
// Query parameters:
//   - page: zero-based page number (default: 0), 10 activities per page,
//     newest first
func (api *DashboardAPI) HandleSports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if api.repo == nil {
		api.writeError(w, http.StatusServiceUnavailable, "database not available")
		return
	}

	page := 0
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		parsed, err := strconv.Atoi(pageStr)
		if err != nil || parsed < 0 {
			api.writeError(w, http.StatusBadRequest, "page must be a non-negative integer")
			return
		}
		page = parsed
	}

	result, err := api.repo.QuerySportsPage(r.Context(), page)
	if err != nil {
		api.writeError(w, http.StatusInternalServerError, "querying sports activities: "+err.Error())
		return
	}

	response := SportsPageResponse{
		Activities: make([]SportsActivityJSON, 0, len(result.Activities)),
		TotalCount: result.TotalCount,
		Page:       page,
		NextPage:   result.NextPage,
	}
	for _, a := range result.Activities {
		response.Activities = append(response.Activities, sportsActivityJSON(a))
	}

	api.writeJSON(w, http.StatusOK, response)
}

// SportsDetailResponse represents the JSON response for /api/sports/{id}.
type SportsDetailResponse struct {
	SportsActivityJSON
	TrackPoints []TrackPointJSON `json:"track_points"`
}

// HandleSportsDetail handles GET /api/sports/{id} requests. Unknown IDs
// answer 404.
func (api *DashboardAPI) HandleSportsDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if api.repo == nil {
		api.writeError(w, http.StatusServiceUnavailable, "database not available")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/sports/")
	if id == "" || strings.Contains(id, "/") {
		api.writeError(w, http.StatusNotFound, "sports activity not found")
		return
	}

	detail, err := api.repo.QuerySportsActivity(r.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			api.writeError(w, http.StatusNotFound, "sports activity not found")
			return
		}
		api.writeError(w, http.StatusInternalServerError, "querying sports activity: "+err.Error())
		return
	}

	response := SportsDetailResponse{
		SportsActivityJSON: sportsActivityJSON(detail.SportsActivity),
		TrackPoints:        make([]TrackPointJSON, 0, len(detail.TrackPoints)),
	}
	for _, p := range detail.TrackPoints {
		response.TrackPoints = append(response.TrackPoints, TrackPointJSON{
			Latitude:  p.Latitude,
			Longitude: p.Longitude,
			Timestamp: p.Timestamp,
			Altitude:  p.Altitude,
		})
	}

	api.writeJSON(w, http.StatusOK, response)
}

// PeriodStatsJSON is one aggregation period of the sports stats response.
type PeriodStatsJSON struct {
	TotalActivities int64   `json:"total_activities"`
	TotalDistance   float64 `json:"total_distance"`
	TotalTime       float64 `json:"total_time"`
}

// SportsStatsResponse represents the JSON response for /api/sports/stats.
type SportsStatsResponse struct {
	AllTime PeriodStatsJSON `json:"all_time"`
	Year    PeriodStatsJSON `json:"year"`
	Month   PeriodStatsJSON `json:"month"`
}

// HandleSportsStats handles GET /api/sports/stats requests.
func (api *DashboardAPI) HandleSportsStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if api.repo == nil {
		api.writeError(w, http.StatusServiceUnavailable, "database not available")
		return
	}

	stats, err := api.repo.QuerySportsStats(r.Context())
	if err != nil {
		api.writeError(w, http.StatusInternalServerError, "querying sports stats: "+err.Error())
		return
	}

	response := SportsStatsResponse{
		AllTime: periodStatsJSON(stats.AllTime),
		Year:    periodStatsJSON(stats.Year),
		Month:   periodStatsJSON(stats.Month),
	}

	api.writeJSON(w, http.StatusOK, response)
}

// MetricsResponse represents the JSON response for /api/metrics.
type MetricsResponse struct {
	TotalPolls   int64                                   `json:"total_polls"`
	TotalSuccess int64                                   `json:"total_success"`
	TotalErrors  int64                                   `json:"total_errors"`
	SuccessRate  float64                                 `json:"success_rate"`
	ByActivity   map[string]*metrics.ActivityTypeMetrics `json:"by_activity"`
	Upstreams    []metrics.UpstreamStatus                `json:"upstreams"`
}

// HandleMetrics handles GET /api/metrics requests.
func (api *DashboardAPI) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	pollMetrics := api.store.GetPollMetrics()

	var successRate float64
	if pollMetrics.TotalPolls > 0 {
		successRate = float64(pollMetrics.TotalSuccess) / float64(pollMetrics.TotalPolls) * 100
	}

	response := MetricsResponse{
		TotalPolls:   pollMetrics.TotalPolls,
		TotalSuccess: pollMetrics.TotalSuccess,
		TotalErrors:  pollMetrics.TotalErrors,
		SuccessRate:  successRate,
		ByActivity:   pollMetrics.ByActivity,
		Upstreams:    api.store.GetAllUpstreamStatuses(),
	}

	api.writeJSON(w, http.StatusOK, response)
}

// PollsResponse represents the JSON response for /api/polls.
type PollsResponse struct {
	Polls []metrics.PollRecord `json:"polls"`
	Count int                  `json:"count"`
	Limit int                  `json:"limit"`
}

// HandlePolls handles GET /api/polls requests.
// Query parameters:
//   - limit: number of poll records to return (default: 20, max: 100)
func (api *DashboardAPI) HandlePolls(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	limit := api.defaultLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	if limit > api.maxLimit {
		limit = api.maxLimit
	}

	polls := api.store.GetRecentPolls(limit)

	response := PollsResponse{
		Polls: polls,
		Count: len(polls),
		Limit: limit,
	}

	api.writeJSON(w, http.StatusOK, response)
}

// RegisterRoutes registers all API routes on the given ServeMux.
func (api *DashboardAPI) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/status", api.HandleStatus)
	mux.HandleFunc("/api/activity", api.HandleActivity)
	mux.HandleFunc("/api/heartrate", api.HandleHeartRate)
	mux.HandleFunc("/api/sports", api.HandleSports)
	mux.HandleFunc("/api/sports/stats", api.HandleSportsStats)
	mux.HandleFunc("/api/sports/", api.HandleSportsDetail)
	mux.HandleFunc("/api/metrics", api.HandleMetrics)
	mux.HandleFunc("/api/polls", api.HandlePolls)
}

// latestSnapshot reads the provider, tolerating a nil provider during
// startup.
func (api *DashboardAPI) latestSnapshot() (StatusSnapshot, bool) {
	if api.status == nil {
		return StatusSnapshot{}, false
	}
	return api.status.LatestStatus()
}

func sportsActivityJSON(a db.SportsActivity) SportsActivityJSON {
	return SportsActivityJSON{
		ID:               a.ID,
		Type:             a.Type,
		StartTime:        a.StartTime,
		EndTime:          a.EndTime,
		TotalTime:        a.TotalTime,
		TotalDistance:    a.TotalDistance,
		StartLatitude:    a.StartLatitude,
		StartLongitude:   a.StartLongitude,
		MovingTime:       a.MovingTime,
		AverageSpeed:     a.AverageSpeed,
		AverageHeartRate: a.AverageHeartRate,
		ElevationGain:    a.ElevationGain,
		SyncTime:         a.SyncTime,
	}
}

func periodStatsJSON(p db.PeriodStats) PeriodStatsJSON {
	return PeriodStatsJSON{
		TotalActivities: p.TotalActivities,
		TotalDistance:   p.TotalDistance,
		TotalTime:       p.TotalTime,
	}
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func (api *DashboardAPI) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Best effort - headers already written
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// writeError writes an error response.
func (api *DashboardAPI) writeError(w http.ResponseWriter, status int, message string) {
	response := ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	}
	api.writeJSON(w, status, response)
}
