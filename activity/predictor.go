package activity

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// MaxHeartRateStaleness is the freshness window: samples older than this
// are ignored for exertion and rest inference.
const MaxHeartRateStaleness = 5 * time.Minute

// Predictor turns a classification plus heart-rate and idle signals into
// an availability verdict. The only ambient input is the wall clock, which
// is injectable for deterministic tests.
type Predictor struct {
	now func() time.Time
}

// NewPredictor returns a Predictor using the system clock.
func NewPredictor() *Predictor {
	return NewPredictorWithClock(time.Now)
}

// NewPredictorWithClock returns a Predictor with a custom clock. Tests use
// this to pin time-of-day branches.
func NewPredictorWithClock(now func() time.Time) *Predictor {
	if now == nil {
		now = time.Now
	}
	return &Predictor{now: now}
}

// timeInfo holds the time-of-day flags the cascade consults.
type timeInfo struct {
	hours              int
	isWeekend          bool
	isTypicalSleepTime bool
	isTypicalWorkTime  bool
	isLunchBreakTime   bool
}

func timeInfoAt(t time.Time) timeInfo {
	hours := t.Hour()
	day := t.Weekday()
	return timeInfo{
		hours:              hours,
		isWeekend:          day == time.Sunday || day == time.Saturday,
		isTypicalSleepTime: hours >= 22 || hours < 7,
		isTypicalWorkTime:  hours >= 9 && hours < 18 && day >= time.Monday && day <= time.Friday,
		isLunchBreakTime:   hours >= 12 && hours < 14,
	}
}

// heartRateFresh reports whether the sample is recent enough to trust.
func heartRateFresh(hr *HeartRateSnapshot, now time.Time) bool {
	if hr == nil || hr.LastTimestampMillis == 0 {
		return false
	}
	staleness := now.UnixMilli() - hr.LastTimestampMillis
	return staleness <= MaxHeartRateStaleness.Milliseconds()
}

// Color tags for each semantic family. The dashboard consumes these
// verbatim as styling classes; the family assignment (red for gaming,
// green for learning, blue/indigo for away/resting, and so on) is part of
// the contract even though the exact shades are presentation data.
const (
	colorNeutral    = "text-neutral-500 dark:text-neutral-400"
	colorNeutralDim = "text-neutral-400 dark:text-neutral-500"
	colorPurple     = "text-purple-500 dark:text-purple-400"
	colorIndigo     = "text-indigo-500 dark:text-indigo-400"
	colorEmerald    = "text-emerald-600 dark:text-emerald-500"
	colorEmeraldSub = "text-emerald-500 dark:text-emerald-400"
	colorTeal       = "text-teal-500 dark:text-teal-400"
	colorTealDeep   = "text-teal-600 dark:text-teal-500"
	colorBlue       = "text-blue-500 dark:text-blue-400"
	colorBlueDeep   = "text-blue-600 dark:text-blue-500"
	colorSky        = "text-sky-500 dark:text-sky-400"
	colorRed        = "text-red-500 dark:text-red-400"
	colorRedDeep    = "text-red-600 dark:text-red-500"
	colorOrange     = "text-orange-500 dark:text-orange-400"
	colorGreen      = "text-green-600 dark:text-green-500"
	colorCyan       = "text-cyan-500 dark:text-cyan-400"
	colorLime       = "text-lime-500 dark:text-lime-400"
	colorPink       = "text-pink-500 dark:text-pink-400"
	colorViolet     = "text-violet-500 dark:text-violet-400"
	colorGray       = "text-gray-500 dark:text-gray-400"
	colorGrayDim    = "text-gray-400 dark:text-gray-500"
	colorYellow     = "text-yellow-500 dark:text-yellow-400"
	colorYellowSoft = "text-yellow-400 dark:text-yellow-300"
)

// Predict combines heart rate, the activity classification, and mouse idle
// time into an availability verdict.
//
// Total function: nil heartRate and nil details are valid and degrade to
// generic verdicts, never an error.
//
// The cascade is evaluated top to bottom and the first matching branch
// wins. The guards are deliberately not mutually exclusive; precedence
// fully determines the outcome, so branch order must not be rearranged:
//
//  1. no classification at all
//  2. low heart rate + long idle (sleep/rest family)
//  3. elevated fresh heart rate + idle (exertion family)
//  4. idle > 45 min (away, with a system-task carve-out)
//  5. idle > 20 min (shorter absence, same carve-out, napping hint)
//  6. dispatch on the activity category
func (p *Predictor) Predict(heartRate *HeartRateSnapshot, details *ActivityDetails, mouseIdleSeconds int) AvailabilityStatus {
	now := p.now()
	ti := timeInfoAt(now)
	idleMinutes := mouseIdleSeconds / 60

	if details == nil {
		return AvailabilityStatus{
			Status:     "Hard to say",
			Reason:     "Can't quite tell what they're up to right now",
			Color:      colorNeutral,
			Suggestion: "Things may be clearer in a little while",
		}
	}

	hrFresh := heartRateFresh(heartRate, now)
	hrValue := 0
	if heartRate != nil && heartRate.LastNonZeroHR > 0 {
		hrValue = heartRate.LastNonZeroHR
	}
	desc := details.Description

	// Sleep / rest
	if hrValue > 0 && hrValue < 60 && hrFresh && idleMinutes >= 20 {
		if ti.isTypicalSleepTime {
			return AvailabilityStatus{
				Status:     "Asleep",
				Reason:     fmt.Sprintf("Heart rate %d...", hrValue),
				Color:      colorPurple,
				Suggestion: "Shh, let them get some rest",
			}
		}
		if ti.isLunchBreakTime && details.Type != TypeWorking {
			return AvailabilityStatus{
				Status:     "Lunch nap",
				Reason:     fmt.Sprintf("Heart rate %d, probably an after-lunch nap?", hrValue),
				Color:      colorPurple,
				Suggestion: "Let them rest quietly for a bit",
			}
		}
		return AvailabilityStatus{
			Status:     "Resting",
			Reason:     fmt.Sprintf("Heart rate %d and the mouse hasn't moved in %d minutes, maybe a nap?", hrValue, idleMinutes),
			Color:      colorIndigo,
			Suggestion: "Looks like a break, reach out later if it can wait",
		}
	}

	// Elevated heart rate + long idle: probably out exercising
	if hrFresh && hrValue > 0 {
		if hrValue >= 110 && idleMinutes >= 15 {
			if hrValue >= 140 {
				return AvailabilityStatus{
					Status:     "Working out",
					Reason:     fmt.Sprintf("Heart rate %d, probably going hard", hrValue),
					Color:      colorEmerald,
					Suggestion: "Hard to reply mid-workout, try again later",
				}
			}
			if hrValue >= 120 {
				return AvailabilityStatus{
					Status:     "Out running",
					Reason:     fmt.Sprintf("Heart rate %d, probably on a run?", hrValue),
					Color:      colorEmeraldSub,
					Suggestion: "Hard to reply while exercising, try later",
				}
			}
			return AvailabilityStatus{
				Status:     "Possibly out",
				Reason:     fmt.Sprintf("Heart rate %d is elevated and the mouse hasn't moved in %d minutes, probably out and about", hrValue, idleMinutes),
				Color:      colorTealDeep,
				Suggestion: "Maybe try another way to reach them?",
			}
		}
		if hrValue >= 80 && hrValue < 110 && idleMinutes >= 20 {
			return AvailabilityStatus{
				Status:     "Probably stepped out",
				Reason:     fmt.Sprintf("Heart rate %d, mouse idle for %d minutes, maybe out for a walk", hrValue, idleMinutes),
				Color:      colorBlue,
				Suggestion: "Away from the computer for now, try again later",
			}
		}
	}

	// Long idle: probably away from the computer
	if idleMinutes > 45 {
		if isLongRunningSystemTask(details) {
			return AvailabilityStatus{
				Status:     "Computer hard at work",
				Reason:     fmt.Sprintf("The computer is %s, they may be waiting on it", desc),
				Color:      colorTeal,
				Suggestion: "If it can wait, give it a moment",
			}
		}
		return AvailabilityStatus{
			Status:     "Seems to be out",
			Reason:     fmt.Sprintf("Mouse hasn't moved in %d minutes, most likely not at the computer", idleMinutes),
			Color:      colorBlueDeep,
			Suggestion: "Check back later or try another channel",
		}
	}
	if idleMinutes > 20 {
		if isLongRunningSystemTask(details) {
			return AvailabilityStatus{
				Status:     "Computer hard at work",
				Reason:     fmt.Sprintf("The computer is %s, they're probably waiting nearby", desc),
				Color:      colorTeal,
				Suggestion: "Leave a message for now",
			}
		}
		if hrFresh && hrValue > 0 && hrValue < 65 {
			return AvailabilityStatus{
				Status:     "Possibly napping",
				Reason:     fmt.Sprintf("Mouse idle for %d minutes and heart rate %d is calm", idleMinutes, hrValue),
				Color:      colorIndigo,
				Suggestion: "Maybe resting their eyes, give it a moment",
			}
		}
		return AvailabilityStatus{
			Status:     "Probably stepped away",
			Reason:     fmt.Sprintf("Mouse hasn't moved in %d minutes, may not be around", idleMinutes),
			Color:      colorSky,
			Suggestion: "Leave a message or check back later",
		}
	}

	return p.predictByActivity(details, idleMinutes, mouseIdleSeconds)
}

// isLongRunningSystemTask reports whether the machine, not the human, is
// the busy one (compiling, rendering).
func isLongRunningSystemTask(details *ActivityDetails) bool {
	return details.Type == TypeSystemTask &&
		(details.SubType == SubSystemCompiling || details.SubType == SubSystemRendering)
}

var (
	gameTitleSplit  = regexp.MustCompile(`(?i)[-–|—]|steam`)
	movieTitleSplit = regexp.MustCompile(`[-–|—]`)
	newTabPattern   = regexp.MustCompile(`(?i)\b(new tab|新标签页)\b`)
	aiStudioPattern = regexp.MustCompile(`(?i)studio`)
)

// predictByActivity handles the final cascade stage: a category-specific
// narrative branch per activity type.
func (p *Predictor) predictByActivity(details *ActivityDetails, idleMinutes, idleSeconds int) AvailabilityStatus {
	desc := details.Description

	switch details.Type {
	case TypeGaming:
		name := strings.TrimSpace(gameTitleSplit.Split(details.RawTitle, 2)[0])
		if len(name) > 30 || strings.Contains(strings.ToLower(name), "exe") {
			name = "some game"
		}
		playDesc := desc
		if !strings.HasPrefix(strings.ToLower(desc), "playing") {
			playDesc = fmt.Sprintf("Playing %s", name)
		}
		if details.Intensity == LevelHigh || details.SubType == SubGamingIntense {
			return AvailabilityStatus{
				Status:     "Deep in a game",
				Reason:     fmt.Sprintf("%s and looking fully locked in", playDesc),
				Color:      colorRedDeep,
				Suggestion: "Interrupting now might ruin a clutch moment",
			}
		}
		return AvailabilityStatus{
			Status:     "Gaming",
			Reason:     playDesc,
			Color:      colorRed,
			Suggestion: "Game time, replies may be slow",
		}

	case TypeWorking:
		status := "Busy"
		reason := fmt.Sprintf("Currently %s", desc)
		suggestion := "Leave a message if it's not urgent"
		if details.FocusLevel == LevelHigh {
			status = "Writing code"
			reason = fmt.Sprintf("Deep in %s, what else would it be", desc)
			suggestion = "They need to concentrate, better to reach out later"
		}
		if details.SubType == SubCodingDebugging {
			status = "Debugging"
			reason = "Seems locked onto a bug"
			suggestion = "Never interrupt a debugging session, try again later"
		}
		if idleMinutes > 5 && idleMinutes <= 15 {
			status = "Working"
			reason = fmt.Sprintf("Currently %s, but the mouse has been still for %d minutes, possibly thinking", desc, idleMinutes)
			suggestion = "A message is fine, just be patient about the reply"
		}
		return AvailabilityStatus{
			Status:     status,
			Reason:     reason,
			Color:      colorOrange,
			Suggestion: suggestion,
		}

	case TypeLearning:
		status := "Studying"
		reason := fmt.Sprintf("Currently %s", desc)
		suggestion := "They're studying, best not to disturb"
		if details.FocusLevel == LevelHigh ||
			details.SubType == SubLearningReadingDocs ||
			details.SubType == SubLearningVideoCourse {
			status = "Deep in study"
			reason = fmt.Sprintf("Currently %s and looking serious about it", desc)
			suggestion = "Let them study in peace for a while"
		}
		if idleMinutes > 8 && idleMinutes <= 20 && details.SubType == SubLearningVideoCourse {
			reason = fmt.Sprintf("Currently %s, mouse idle for %d minutes, probably watching closely or taking notes", desc, idleMinutes)
		} else if idleMinutes > 5 && idleMinutes <= 10 {
			reason = fmt.Sprintf("Currently %s, %d minutes without input, probably letting it sink in", desc, idleMinutes)
		}
		return AvailabilityStatus{
			Status:     status,
			Reason:     reason,
			Color:      colorGreen,
			Suggestion: suggestion,
		}

	case TypeMeeting:
		status := "Probably in a meeting?"
		reason := desc
		if details.SubType == SubMeetingPresenting {
			status = "Possibly presenting"
			reason = "Focused on presenting"
		}
		return AvailabilityStatus{
			Status:     status,
			Reason:     reason,
			Color:      colorCyan,
			Suggestion: "Leave a message",
		}

	case TypeEntertainment:
		status := "Relaxing"
		reason := desc
		switch details.SubType {
		case SubWatchingMovieSeries:
			status = "Watching a show"
			title := strings.TrimSpace(movieTitleSplit.Split(details.RawTitle, 2)[0])
			lower := strings.ToLower(title)
			if len(title) > 30 || strings.Contains(lower, "potplayer") || strings.Contains(lower, "vlc") {
				title = "a movie"
			}
			reason = fmt.Sprintf("Watching %q", title)
			if idleMinutes > 5 && idleMinutes <= 15 {
				reason += ", and watching closely"
			}
		case SubListeningMusic:
			status = "Listening to music"
			reason = "Relaxing with some music"
		case SubWatchingShortVideo:
			status = "Scrolling short videos"
			reason = "Watching some fun short videos"
		}
		return AvailabilityStatus{
			Status:     status,
			Reason:     reason,
			Color:      colorLime,
			Suggestion: "Everyone needs a break",
		}

	case TypeSocial:
		status := "Chatting"
		reason := desc
		switch details.SubType {
		case SubChattingIM:
			reason = fmt.Sprintf("Currently %s", desc)
		case SubBrowsingSocialMedia:
			status = "Browsing feeds"
			reason = fmt.Sprintf("Currently %s", desc)
		}
		if idleSeconds > 0 && idleSeconds <= 15 {
			reason += ", probably typing or reading messages"
		}
		return AvailabilityStatus{
			Status:     status,
			Reason:     reason,
			Color:      colorPink,
			Suggestion: "Send a message and see",
		}

	case TypeAIInteraction:
		reason := fmt.Sprintf("Currently %s", desc)
		if aiStudioPattern.MatchString(desc) {
			reason = fmt.Sprintf("Trying new things while %s", desc)
		}
		return AvailabilityStatus{
			Status:     "Talking to an AI",
			Reason:     reason,
			Color:      colorViolet,
			Suggestion: "They might be mid-thought, hang on a moment",
		}

	case TypeBrowsing:
		status := "Browsing the web"
		partial := details.RawTitle
		// Truncate on runes, not bytes: CJK titles must not be cut
		// mid-character.
		if runes := []rune(partial); len(runes) > 40 {
			partial = string(runes[:37]) + "..."
		}
		if newTabPattern.MatchString(partial) {
			partial = "a web page"
		}
		reason := fmt.Sprintf("Looking at %s", partial)
		suggestion := "Worth a try, but replies may be slow"

		switch details.SubType {
		case SubBrowsingResearch:
			status = "Looking things up"
			reason = fmt.Sprintf("Researching %q online", partial)
			if idleMinutes > 5 && idleMinutes <= 15 {
				reason += ", seems to have paused for a moment"
			}
		case SubBrowsingNews:
			status = "Reading news"
			reason = fmt.Sprintf("Reading the news about %q", partial)
		case SubBrowsingGeneral:
			reason = fmt.Sprintf("Casually browsing %s", partial)
		}

		if idleMinutes > 8 && details.SubType != SubBrowsingResearch {
			status = "Possibly distracted"
			reason = fmt.Sprintf("Browser open on %q, mouse idle for %d minutes", partial, idleMinutes)
			suggestion = "Might have stepped away or zoned out"
		} else if idleMinutes > 3 {
			reason += ", maybe reading closely"
		}
		return AvailabilityStatus{
			Status:     status,
			Reason:     reason,
			Color:      colorSky,
			Suggestion: suggestion,
		}

	case TypeNoteTaking, TypePlanning:
		status := "Organizing thoughts"
		if details.Type == TypePlanning {
			status = "Planning things"
		}
		return AvailabilityStatus{
			Status:     status,
			Reason:     fmt.Sprintf("Currently %s", desc),
			Color:      colorGray,
			Suggestion: "Probably thinking quietly",
		}

	case TypeSystemTask:
		return AvailabilityStatus{
			Status:     "Computer busy",
			Reason:     fmt.Sprintf("The computer is %s", desc),
			Color:      colorTeal,
			Suggestion: "Leave a message for now",
		}

	case TypeIdle:
		switch {
		case idleMinutes > 40:
			return AvailabilityStatus{
				Status:     "Thoroughly bored",
				Reason:     fmt.Sprintf("Mouse hasn't moved in %d minutes", idleMinutes),
				Color:      colorYellow,
				Suggestion: "Could be a good time to chat",
			}
		case idleMinutes > 30:
			return AvailabilityStatus{
				Status:     "Pretty bored",
				Reason:     fmt.Sprintf("Mouse hasn't moved in %d minutes", idleMinutes),
				Color:      colorYellow,
				Suggestion: "Might be up for a chat",
			}
		case idleMinutes > 15:
			return AvailabilityStatus{
				Status:     "Spacing out",
				Reason:     fmt.Sprintf("Mouse hasn't moved in %d minutes", idleMinutes),
				Color:      colorYellow,
				Suggestion: "Maybe say hi",
			}
		case idleMinutes > 5:
			return AvailabilityStatus{
				Status:     "Slacking off",
				Reason:     fmt.Sprintf("Idle for %d minutes", idleMinutes),
				Color:      colorYellowSoft,
				Suggestion: "Very likely free",
			}
		}
		return AvailabilityStatus{
			Status:     "Taking a breather",
			Reason:     "Nothing much going on",
			Color:      colorGrayDim,
			Suggestion: "Worth a try",
		}

	case TypeUnknown:
		fallthrough
	default:
		return AvailabilityStatus{
			Status:     "Unknown",
			Reason:     "Up to something unknown",
			Color:      colorNeutralDim,
			Suggestion: "Worth trying to reach out",
		}
	}
}
