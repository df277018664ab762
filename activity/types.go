// Package activity implements the activity classification and availability
// prediction core. It maps raw window-title/process-name telemetry into a
// semantic activity category, then combines the classification with heart
// rate, mouse idle time, and time of day to produce a human-readable
// availability verdict.
//
// Both entry points (Classifier.Classify and Predictor.Predict) are pure,
// total functions: they never fail, never perform I/O, and read only the
// immutable rule table built at startup. They are safe for concurrent use.
package activity

// ActivityType is the top-level classification of what the monitored user
// is doing. The set is closed; the predictor switches exhaustively over it.
type ActivityType string

const (
	TypeGaming        ActivityType = "gaming"
	TypeWorking       ActivityType = "working"
	TypeLearning      ActivityType = "learning"
	TypeEntertainment ActivityType = "entertainment"
	TypeSocial        ActivityType = "social"
	TypeAIInteraction ActivityType = "ai_interaction"
	TypeBrowsing      ActivityType = "browsing"
	TypeMeeting       ActivityType = "meeting"
	TypeNoteTaking    ActivityType = "note_taking"
	TypePlanning      ActivityType = "planning"
	TypeSystemTask    ActivityType = "system_task"
	TypeIdle          ActivityType = "idle"
	TypeUnknown       ActivityType = "unknown"
)

// AllActivityTypes lists every ActivityType value. Used by tests to verify
// exhaustive branch coverage in the predictor.
var AllActivityTypes = []ActivityType{
	TypeGaming, TypeWorking, TypeLearning, TypeEntertainment, TypeSocial,
	TypeAIInteraction, TypeBrowsing, TypeMeeting, TypeNoteTaking,
	TypePlanning, TypeSystemTask, TypeIdle, TypeUnknown,
}

// ActivitySubType is a finer-grained tag nested under an ActivityType.
// The zero value means "no subtype".
type ActivitySubType string

const (
	SubTypeNone ActivitySubType = ""

	// Gaming
	SubGamingIntense  ActivitySubType = "gaming_intense"
	SubGamingCasual   ActivitySubType = "gaming_casual"
	SubGamingStrategy ActivitySubType = "gaming_strategy"

	// Working
	SubCodingActive       ActivitySubType = "coding_active"
	SubCodingDebugging    ActivitySubType = "coding_debugging"
	SubWritingDocs        ActivitySubType = "writing_docs"
	SubDesigningUIUX      ActivitySubType = "designing_uiux"
	SubProjectManagement  ActivitySubType = "project_management"
	SubAndroidDevelopment ActivitySubType = "android_development"
	SubWebDevelopment     ActivitySubType = "web_development"

	// Learning
	SubLearningVideoCourse    ActivitySubType = "learning_video_course"
	SubLearningReadingDocs    ActivitySubType = "learning_reading_docs"
	SubLearningCodingPractice ActivitySubType = "learning_coding_practice"

	// Entertainment
	SubWatchingMovieSeries ActivitySubType = "watching_movie_series"
	SubWatchingShortVideo  ActivitySubType = "watching_short_video"
	SubListeningMusic      ActivitySubType = "listening_music"
	SubReadingNovelComic   ActivitySubType = "reading_novel_comic"

	// Social
	SubChattingIM          ActivitySubType = "chatting_im"
	SubBrowsingSocialMedia ActivitySubType = "browsing_social_media"
	SubVoiceVideoCall      ActivitySubType = "voice_video_call"

	// AI interaction
	SubAIChattingAssistant ActivitySubType = "ai_chatting_assistant"
	SubAICodeGeneration    ActivitySubType = "ai_code_generation"
	SubAIImageGeneration   ActivitySubType = "ai_image_generation"

	// Browsing
	SubBrowsingNews     ActivitySubType = "browsing_news"
	SubBrowsingForum    ActivitySubType = "browsing_forum"
	SubBrowsingShopping ActivitySubType = "browsing_shopping"
	SubBrowsingResearch ActivitySubType = "browsing_research"
	SubBrowsingGeneral  ActivitySubType = "browsing_general"

	// Meeting
	SubMeetingOnlineConference ActivitySubType = "meeting_online_conference"
	SubMeetingPresenting       ActivitySubType = "meeting_presenting"

	// Note taking
	SubNoteTakingQuick      ActivitySubType = "note_taking_quick"
	SubNoteTakingOrganizing ActivitySubType = "note_taking_organizing"

	// Planning
	SubPlanningTaskManagement ActivitySubType = "planning_task_management"
	SubPlanningBrainstorming  ActivitySubType = "planning_brainstorming"

	// System tasks
	SubSystemCompiling ActivitySubType = "system_compiling"
	SubSystemRendering ActivitySubType = "system_rendering"
	SubSystemUpdating  ActivitySubType = "system_updating"
)

// Level grades focus or physical intensity. The zero value means "unset".
type Level string

const (
	LevelNone   Level = ""
	LevelHigh   Level = "high"
	LevelMedium Level = "medium"
	LevelLow    Level = "low"
)

// TelemetrySnapshot is a point-in-time view of the monitored device,
// produced by the device-monitoring collaborator.
type TelemetrySnapshot struct {
	// WindowTitle is the raw foreground window title. May be mixed case
	// and may contain compatibility unicode variants.
	WindowTitle string `json:"window_title"`

	// ProcessName is the raw foreground process name, possibly a full
	// POSIX or Windows path.
	ProcessName string `json:"process_name"`

	// MouseIdleSeconds is the number of seconds since the mouse last moved.
	MouseIdleSeconds int `json:"mouse_idle_seconds"`
}

// HeartRateSnapshot is the latest heart-rate reading from the wearable.
//
// LastTimestampMillis is epoch milliseconds. Callers receiving nanosecond
// timestamps from upstream producers must convert before passing the
// snapshot in; see healthapi for the conversion at the API boundary.
type HeartRateSnapshot struct {
	// LastNonZeroHR is the last observed non-zero heart rate in bpm.
	// Zero means the sensor has never reported (or is off).
	LastNonZeroHR int `json:"last_non_zero_hr"`

	// LastTimestampMillis is when the last sample was taken, epoch ms.
	LastTimestampMillis int64 `json:"last_timestamp_millis"`

	// IsWatchOff reports whether the watch is currently off-wrist.
	IsWatchOff bool `json:"is_watch_off"`
}

// ActivityDetails is the classifier's verdict for one telemetry snapshot.
// Values are freshly constructed per call and never mutated afterwards.
type ActivityDetails struct {
	Type        ActivityType    `json:"type"`
	SubType     ActivitySubType `json:"sub_type,omitempty"`
	Description string          `json:"description"`
	RawTitle    string          `json:"raw_title"`
	RawProcess  string          `json:"raw_process"`
	FocusLevel  Level           `json:"focus_level,omitempty"`
	Intensity   Level           `json:"intensity,omitempty"`
}

// AvailabilityStatus is the predictor's verdict: whether the person is
// likely reachable right now, and why. The presentation layer displays
// these fields verbatim.
type AvailabilityStatus struct {
	Status     string `json:"status"`
	Reason     string `json:"reason"`
	Color      string `json:"color"`
	Suggestion string `json:"suggestion,omitempty"`
}
