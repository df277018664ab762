package activity

import (
	"regexp"
	"sort"
)

// Rule maps window/process patterns to an activity classification.
//
// A rule fires when ANY of its ProcessMatchers matches the normalized
// process base name OR ANY of its TitleMatchers matches the normalized
// window title. Matching across the two matcher families is a logical OR:
// a rule can fire on process identity alone, title content alone, or either.
type Rule struct {
	// ProcessMatchers test the normalized process base name.
	ProcessMatchers []*regexp.Regexp

	// TitleMatchers test the normalized window title.
	TitleMatchers []*regexp.Regexp

	// Type and SubType are the classification assigned on match.
	Type    ActivityType
	SubType ActivitySubType

	// DescriptionTemplate is the human description. It may contain
	// {title} and {process} placeholders, substituted with the original
	// un-normalized strings.
	DescriptionTemplate string

	// FocusLevel and Intensity hint at how engaged the user likely is.
	FocusLevel Level
	Intensity  Level

	// Priority orders evaluation: higher first. Ties keep declaration
	// order. Several rules overlap on purpose (broad catch-alls below
	// specific rules for the same process family), so priority values
	// are load-bearing and must not be renumbered.
	Priority int
}

// matches reports whether the rule fires for the given normalized title
// and process base name.
//
// A bare `.*` matcher means "any value in this family is acceptable"; it
// is a fallback within the rule's other matcher family (the browser
// fallback rule fires for any title, but only for a browser process), not
// a standalone trigger. Under OR semantics that makes it a no-op here:
// the rule already fires when the other family matches, and a wildcard
// alone must not claim unrelated input, or the unknown fallback would be
// unreachable.
func (r *Rule) matches(titleClean, processBase string) bool {
	for _, m := range r.ProcessMatchers {
		if isWildcard(m) {
			continue
		}
		if m.MatchString(processBase) {
			return true
		}
	}
	for _, m := range r.TitleMatchers {
		if isWildcard(m) {
			continue
		}
		if m.MatchString(titleClean) {
			return true
		}
	}
	return false
}

func isWildcard(m *regexp.Regexp) bool {
	return m.String() == "(?i).*"
}

// sortRules returns a new slice sorted descending by priority. The sort is
// stable so that rules with equal priority keep their declaration order.
// Sorting happens exactly once, at table construction; the result is never
// mutated afterwards, which is what makes the classifier safe to call from
// multiple goroutines without locking.
func sortRules(rules []Rule) []Rule {
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority > sorted[j].Priority
	})
	return sorted
}

// procs compiles a set of case-insensitive process matchers.
func procs(patterns ...string) []*regexp.Regexp {
	return compileAll(patterns)
}

// titles compiles a set of case-insensitive title matchers.
func titles(patterns ...string) []*regexp.Regexp {
	return compileAll(patterns)
}

func compileAll(patterns []string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		compiled[i] = regexp.MustCompile(`(?i)` + p)
	}
	return compiled
}
