package scheduler

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ShiftTemplate is one canonical daily shift period with fixed clock times.
type ShiftTemplate struct {
	Key   string `yaml:"key"`
	Start string `yaml:"start"`
	End   string `yaml:"end"`
	Label string `yaml:"label"`
}

// Rules is the scheduling configuration: shift templates in priority
// order, the alias table used for shift-key normalization and the keyword
// tables the constraint classifier matches against. Construct it once and
// pass it in; the engine never mutates it.
type Rules struct {
	Templates []ShiftTemplate   `yaml:"templates"`
	Aliases   map[string]string `yaml:"aliases"`

	// Map-key classification vocabulary, matched as substrings of
	// lower-cased keys. AllowedKeyWords/BlockedKeyWords catch keys such
	// as "allowed_dates" that carry no shift word of their own.
	AllowWords      []string `yaml:"allow_words"`
	BlockWords      []string `yaml:"block_words"`
	AllowedKeyWords []string `yaml:"allowed_key_words"`
	BlockedKeyWords []string `yaml:"blocked_key_words"`
	DateWords       []string `yaml:"date_words"`
	ShiftWords      []string `yaml:"shift_words"`
	ListValueKeys   []string `yaml:"list_value_keys"`

	// NegationTokens flip a list or scalar record from allow to block
	// when any of them appears inside the record's kind tag.
	NegationTokens []string `yaml:"negation_tokens"`

	// Priority vocabulary, matched as whole words.
	RequiredWords  []string `yaml:"required_words"`
	PreferredWords []string `yaml:"preferred_words"`
	DislikedWords  []string `yaml:"disliked_words"`
}

// Priority buckets a classified rule can be routed into on top of its
// allow/block polarity.
const (
	PriorityRequired  = "required"
	PriorityPreferred = "preferred"
	PriorityDisliked  = "disliked"
)

// DefaultRules returns the built-in configuration: the three canonical
// shift kinds and the English/Hebrew vocabulary the previous system
// recognized.
func DefaultRules() *Rules {
	return &Rules{
		Templates: []ShiftTemplate{
			{Key: "morning", Start: "06:00", End: "14:00", Label: "Morning"},
			{Key: "afternoon", Start: "14:00", End: "22:00", Label: "Afternoon"},
			{Key: "night", Start: "22:00", End: "06:00", Label: "Night"},
		},
		Aliases: map[string]string{
			"morning":   "morning",
			"בוקר":      "morning",
			"afternoon": "afternoon",
			"noon":      "afternoon",
			"צהריים":    "afternoon",
			"evening":   "afternoon",
			"night":     "night",
			"overnight": "night",
			"לילה":      "night",
		},
		AllowWords:      []string{"allow", "מותר"},
		BlockWords:      []string{"block", "not", "אסור"},
		AllowedKeyWords: []string{"allowed"},
		BlockedKeyWords: []string{"blocked"},
		DateWords:       []string{"date"},
		ShiftWords:      []string{"shift"},
		ListValueKeys:   []string{"values", "shifts"},
		NegationTokens:  []string{"un", "לא", "אסור", "block"},
		RequiredWords:   []string{"required", "must"},
		PreferredWords:  []string{"preferred", "like", "pref"},
		DislikedWords:   []string{"avoid", "dislike"},
	}
}

// LoadRules reads a YAML rules file over the defaults, so a deployment can
// extend aliases or vocabulary without redefining the whole table.
func LoadRules(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	rules := DefaultRules()
	if err := yaml.Unmarshal(data, rules); err != nil {
		return nil, fmt.Errorf("parse rules file %s: %w", path, err)
	}
	if len(rules.Templates) == 0 {
		return nil, fmt.Errorf("rules file %s defines no shift templates", path)
	}
	return rules, nil
}

// Normalize resolves a shift key to its canonical form: trimmed,
// lower-cased and run through the alias table. Unknown keys pass through
// lower-cased so they simply never match a real shift kind.
func (r *Rules) Normalize(key string) string {
	if key == "" {
		return key
	}
	lowered := strings.ToLower(strings.TrimSpace(key))
	if canonical, ok := r.Aliases[lowered]; ok {
		return canonical
	}
	return lowered
}

// Template looks up the template for a canonical shift key.
func (r *Rules) Template(key string) (ShiftTemplate, bool) {
	for _, tpl := range r.Templates {
		if tpl.Key == key {
			return tpl, true
		}
	}
	return ShiftTemplate{}, false
}

// PriorityBucket maps a priority tag to one of the named buckets, or ""
// when the tag carries no ranking signal.
func (r *Rules) PriorityBucket(tag string) string {
	switch {
	case wordIn(tag, r.RequiredWords):
		return PriorityRequired
	case wordIn(tag, r.PreferredWords):
		return PriorityPreferred
	case wordIn(tag, r.DislikedWords):
		return PriorityDisliked
	}
	return ""
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if w != "" && strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func wordIn(s string, words []string) bool {
	for _, w := range words {
		if s == w {
			return true
		}
	}
	return false
}
