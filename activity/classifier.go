package activity

import (
	"regexp"
	"strings"
)

// UnknownDescription is the fixed description returned when no rule matches.
const UnknownDescription = "unknown activity"

// Classifier matches telemetry snapshots against an immutable,
// priority-ordered rule table. Construct once, share freely: Classify
// only reads the table and allocates its return value.
type Classifier struct {
	rules []Rule
}

// NewClassifier builds a classifier from the bundled rule table.
func NewClassifier() *Classifier {
	return NewClassifierWithRules(nil)
}

// NewClassifierWithRules builds a classifier from the bundled rule table
// plus any extra rules (for example, rules loaded from a RULES_FILE).
// Extra rules are merged before sorting, so their priorities slot them
// into the combined table and declaration-order tie-breaking places them
// after the builtin rules of equal priority.
func NewClassifierWithRules(extra []Rule) *Classifier {
	rules := builtinRules()
	rules = append(rules, extra...)
	return &Classifier{rules: sortRules(rules)}
}

// RuleCount returns the number of rules in the table.
func (c *Classifier) RuleCount() int {
	return len(c.rules)
}

// Classify maps a raw window title and process name to an ActivityDetails.
//
// It is a total function: any input, including empty strings, yields a
// well-defined result. When no rule matches it returns TypeUnknown with
// UnknownDescription and no focus/intensity hints.
//
// Matching walks the priority-sorted table and stops at the first rule
// that fires (first-match-wins, not best-match). Ambiguous browsing and
// short-video/movie matches then go through a keyword refinement pass
// over the title.
func (c *Classifier) Classify(windowTitle, processName string) ActivityDetails {
	titleClean := Normalize(windowTitle)
	processBase := ExtractProcessBaseName(processName)

	for i := range c.rules {
		rule := &c.rules[i]
		if !rule.matches(titleClean, processBase) {
			continue
		}

		activityType := rule.Type
		activitySubType := rule.SubType
		description := rule.DescriptionTemplate

		if refined, ok := refineByKeywords(activityType, activitySubType, titleClean); ok {
			activityType = refined.activityType
			activitySubType = refined.subType
			description = refined.description
		}

		// Placeholders are filled with the original strings, not the
		// normalized forms, so the description reads naturally.
		description = strings.ReplaceAll(description, "{title}", windowTitle)
		description = strings.ReplaceAll(description, "{process}", processName)

		return ActivityDetails{
			Type:        activityType,
			SubType:     activitySubType,
			Description: description,
			RawTitle:    windowTitle,
			RawProcess:  processName,
			FocusLevel:  rule.FocusLevel,
			Intensity:   rule.Intensity,
		}
	}

	return ActivityDetails{
		Type:        TypeUnknown,
		Description: UnknownDescription,
		RawTitle:    windowTitle,
		RawProcess:  processName,
	}
}

// refinement is the result of the keyword refinement pass.
type refinement struct {
	activityType ActivityType
	subType      ActivitySubType
	description  string
}

// Keyword groups for the refinement pass, checked in fixed precedence.
var (
	learningKeywords = regexp.MustCompile(`(?i)\b(教程|课程|学习|指南|tutorial|course|docs|lecture|how to|可汗学院|khan academy)\b`)
	newsKeywords     = regexp.MustCompile(`(?i)\b(新闻|资讯|报道|news|report)\b`)
	shoppingKeywords = regexp.MustCompile(`(?i)\b(购物|商城|淘宝|京东|amazon|ebay)\b`)
	movieKeywords    = regexp.MustCompile(`(?i)\b(电影|剧集|番剧|movie|series|episode|anime)\b`)
)

// refineByKeywords sharpens an ambiguous base classification by scanning
// the normalized title for override keyword groups. It applies only when
// the base is browsing, or entertainment with a short-video or
// movie/series subtype; every other classification passes through
// untouched.
//
// Groups are checked in fixed precedence and the first hit wins:
// learning terms, then news, then shopping, then movie/series (the last
// only when the base was entertainment). No hit leaves the base result
// unchanged.
func refineByKeywords(baseType ActivityType, baseSub ActivitySubType, cleanedTitle string) (refinement, bool) {
	refinable := baseType == TypeBrowsing ||
		(baseType == TypeEntertainment &&
			(baseSub == SubWatchingShortVideo || baseSub == SubWatchingMovieSeries))
	if !refinable {
		return refinement{}, false
	}

	if learningKeywords.MatchString(cleanedTitle) {
		return refinement{
			activityType: TypeLearning,
			subType:      SubLearningVideoCourse,
			description:  "studying",
		}, true
	}

	if newsKeywords.MatchString(cleanedTitle) {
		return refinement{
			activityType: baseType,
			subType:      SubBrowsingNews,
			description:  "reading the news",
		}, true
	}

	if shoppingKeywords.MatchString(cleanedTitle) {
		return refinement{
			activityType: TypeBrowsing,
			subType:      SubBrowsingShopping,
			description:  "shopping online",
		}, true
	}

	if movieKeywords.MatchString(cleanedTitle) && baseType == TypeEntertainment {
		return refinement{
			activityType: TypeEntertainment,
			subType:      SubWatchingMovieSeries,
			description:  "watching a movie or series",
		}, true
	}

	return refinement{}, false
}
