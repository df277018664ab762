package activity

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// ruleFile is the on-disk shape of a user rules file. Users can add their
// own matchers without recompiling; loaded rules are merged into the
// builtin table and ordered by the same priority scheme.
type ruleFile struct {
	Rules []ruleSpec `yaml:"rules"`
}

type ruleSpec struct {
	ProcessPatterns []string `yaml:"process_patterns"`
	TitlePatterns   []string `yaml:"title_patterns"`
	Type            string   `yaml:"type"`
	SubType         string   `yaml:"sub_type"`
	Description     string   `yaml:"description"`
	FocusLevel      string   `yaml:"focus_level"`
	Intensity       string   `yaml:"intensity"`
	Priority        int      `yaml:"priority"`
}

// LoadRulesFile parses a YAML rules file into compiled rules. Patterns are
// compiled case-insensitive, matching the builtin table. An unknown
// activity type or a malformed pattern fails the whole load; a partially
// applied rules file would silently misclassify.
func LoadRulesFile(path string) ([]Rule, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file: %w", err)
	}

	var rf ruleFile
	if err := yaml.Unmarshal(raw, &rf); err != nil {
		return nil, fmt.Errorf("parsing rules file %s: %w", path, err)
	}

	rules := make([]Rule, 0, len(rf.Rules))
	for i, spec := range rf.Rules {
		rule, err := compileRuleSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("rules file %s, rule %d: %w", path, i, err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func compileRuleSpec(spec ruleSpec) (Rule, error) {
	typ := ActivityType(spec.Type)
	if !validActivityType(typ) {
		return Rule{}, fmt.Errorf("unknown activity type %q", spec.Type)
	}
	if len(spec.ProcessPatterns) == 0 && len(spec.TitlePatterns) == 0 {
		return Rule{}, fmt.Errorf("rule has no process or title patterns")
	}

	procMatchers, err := compileChecked(spec.ProcessPatterns)
	if err != nil {
		return Rule{}, fmt.Errorf("process pattern: %w", err)
	}
	titleMatchers, err := compileChecked(spec.TitlePatterns)
	if err != nil {
		return Rule{}, fmt.Errorf("title pattern: %w", err)
	}

	return Rule{
		ProcessMatchers:     procMatchers,
		TitleMatchers:       titleMatchers,
		Type:                typ,
		SubType:             ActivitySubType(spec.SubType),
		DescriptionTemplate: spec.Description,
		FocusLevel:          Level(spec.FocusLevel),
		Intensity:           Level(spec.Intensity),
		Priority:            spec.Priority,
	}, nil
}

func compileChecked(patterns []string) ([]*regexp.Regexp, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", p, err)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

func validActivityType(t ActivityType) bool {
	for _, known := range AllActivityTypes {
		if t == known {
			return true
		}
	}
	return false
}
