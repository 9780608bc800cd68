package scheduler

import (
	"fmt"
	"strings"

	"github.com/liorhadad/staffing-api-go/pkg/models"
)

// RuleKind tags the effect a classified constraint fragment has on a
// profile.
type RuleKind int

const (
	RuleShiftAllow RuleKind = iota
	RuleShiftBlock
	RuleDateAllow
	RuleDateBlock
)

// Rule is one normalized directive extracted from a raw constraint
// record: canonical shift keys or dates, plus an optional priority bucket
// for shift rules.
type Rule struct {
	Kind     RuleKind
	Values   []string
	Priority string
}

// Classifier turns shape-varying raw constraint records into tagged
// rules, using the vocabulary tables in Rules. Fragments it cannot
// classify are dropped silently; classification never fails.
type Classifier struct {
	rules *Rules
}

// NewClassifier builds a classifier over the given rules.
func NewClassifier(rules *Rules) *Classifier {
	return &Classifier{rules: rules}
}

// Classify extracts every recognizable directive from one record.
func (c *Classifier) Classify(rec models.RawConstraint) []Rule {
	value := DecodeValue(rec.Value)
	kind := strings.ToLower(rec.Kind)
	scope := strings.ToLower(rec.Scope)
	hint := strings.ToLower(rec.Priority)

	switch value.Kind() {
	case ValueMap:
		return c.classifyMap(value.doc, kind, scope, hint)
	case ValueList:
		return c.classifyList(value.list, kind, scope, hint)
	case ValueScalar:
		return c.classifyList([]string{value.text}, kind, scope, hint)
	}
	return nil
}

func (c *Classifier) classifyMap(doc map[string]any, kind, scope, hint string) []Rule {
	priority := firstNonEmpty(docString(doc, "priority"), hint, kind)

	var out []Rule
	emit := func(rule Rule, ok bool) {
		if ok {
			out = append(out, rule)
		}
	}

	for key, raw := range doc {
		lk := strings.ToLower(key)
		values, isList := toStringList(raw)
		if !isList {
			continue
		}
		switch {
		case containsAny(lk, c.rules.ShiftWords):
			if containsAny(lk, c.rules.AllowWords) {
				emit(c.shiftRule(RuleShiftAllow, values, priority))
			} else if containsAny(lk, c.rules.BlockWords) {
				emit(c.shiftRule(RuleShiftBlock, values, priority))
			}
		case containsAny(lk, c.rules.AllowedKeyWords):
			if containsAny(lk, c.rules.DateWords) {
				emit(c.dateRule(RuleDateAllow, values))
			} else {
				emit(c.shiftRule(RuleShiftAllow, values, priority))
			}
		case containsAny(lk, c.rules.BlockedKeyWords):
			if containsAny(lk, c.rules.DateWords) {
				emit(c.dateRule(RuleDateBlock, values))
			} else {
				emit(c.shiftRule(RuleShiftBlock, values, priority))
			}
		case wordIn(lk, c.rules.ListValueKeys):
			action := strings.ToLower(firstNonEmpty(docString(doc, "action"), docString(doc, "type"), scope, "allow"))
			if containsAny(action, c.rules.BlockWords) {
				emit(c.shiftRule(RuleShiftBlock, values, priority))
			} else {
				emit(c.shiftRule(RuleShiftAllow, values, priority))
			}
		}
	}
	return out
}

func (c *Classifier) classifyList(values []string, kind, scope, hint string) []Rule {
	negated := containsAny(kind, c.rules.NegationTokens)

	var rule Rule
	var ok bool
	switch {
	case containsAny(scope, c.rules.ShiftWords):
		ruleKind := RuleShiftAllow
		if negated {
			ruleKind = RuleShiftBlock
		}
		rule, ok = c.shiftRule(ruleKind, values, firstNonEmpty(hint, kind))
	case containsAny(scope, c.rules.DateWords):
		ruleKind := RuleDateAllow
		if negated {
			ruleKind = RuleDateBlock
		}
		rule, ok = c.dateRule(ruleKind, values)
	}
	if !ok {
		return nil
	}
	return []Rule{rule}
}

func (c *Classifier) shiftRule(kind RuleKind, values []string, priorityTag string) (Rule, bool) {
	normalized := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		normalized = append(normalized, c.rules.Normalize(v))
	}
	if len(normalized) == 0 {
		return Rule{}, false
	}
	return Rule{Kind: kind, Values: normalized, Priority: c.rules.PriorityBucket(priorityTag)}, true
}

func (c *Classifier) dateRule(kind RuleKind, values []string) (Rule, bool) {
	dates := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		dates = append(dates, v)
	}
	if len(dates) == 0 {
		return Rule{}, false
	}
	return Rule{Kind: kind, Values: dates}, true
}

// toStringList accepts only genuine list payloads; scalars inside a map
// carry no directive of their own.
func toStringList(raw any) ([]string, bool) {
	items, ok := raw.([]any)
	if !ok {
		return nil, false
	}
	return stringItems(items), true
}

func docString(doc map[string]any, key string) string {
	raw, ok := doc[key]
	if !ok || raw == nil {
		return ""
	}
	if s, ok := raw.(string); ok {
		return strings.ToLower(s)
	}
	return strings.ToLower(fmt.Sprint(raw))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
