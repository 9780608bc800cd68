package scheduler

import "github.com/liorhadad/staffing-api-go/pkg/models"

// Profile is an employee's normalized availability for one generation
// run. Allowed and required sets are nil when the employee carries no
// such restriction. A profile is purely a function of that employee's
// constraint records at build time.
type Profile struct {
	AllowedShifts   map[string]bool
	BlockedShifts   map[string]bool
	PreferredShifts map[string]bool
	DislikedShifts  map[string]bool
	RequiredShifts  map[string]bool
	AllowedDates    map[string]bool
	BlockedDates    map[string]bool
}

// Builder folds raw constraint records into profiles. Accumulation is
// purely additive; an explicit block for a value already allowed lands in
// both sets and eligibility treats the block as dominant.
type Builder struct {
	classifier *Classifier
}

// NewBuilder builds a profile builder over the given rules.
func NewBuilder(rules *Rules) *Builder {
	return &Builder{classifier: NewClassifier(rules)}
}

// Build produces the profile for one employee's records, in read order.
func (b *Builder) Build(records []models.RawConstraint) *Profile {
	profile := &Profile{
		BlockedShifts:   make(map[string]bool),
		PreferredShifts: make(map[string]bool),
		DislikedShifts:  make(map[string]bool),
		BlockedDates:    make(map[string]bool),
	}
	for _, rec := range records {
		for _, rule := range b.classifier.Classify(rec) {
			profile.apply(rule)
		}
	}
	return profile
}

func (p *Profile) apply(rule Rule) {
	switch rule.Kind {
	case RuleShiftAllow:
		p.AllowedShifts = addAll(p.AllowedShifts, rule.Values)
	case RuleShiftBlock:
		addInto(p.BlockedShifts, rule.Values)
	case RuleDateAllow:
		p.AllowedDates = addAll(p.AllowedDates, rule.Values)
	case RuleDateBlock:
		addInto(p.BlockedDates, rule.Values)
	}

	if rule.Kind != RuleShiftAllow && rule.Kind != RuleShiftBlock {
		return
	}
	switch rule.Priority {
	case PriorityRequired:
		p.RequiredShifts = addAll(p.RequiredShifts, rule.Values)
	case PriorityPreferred:
		addInto(p.PreferredShifts, rule.Values)
	case PriorityDisliked:
		addInto(p.DislikedShifts, rule.Values)
	}
}

func addAll(set map[string]bool, values []string) map[string]bool {
	if set == nil {
		set = make(map[string]bool, len(values))
	}
	addInto(set, values)
	return set
}

func addInto(set map[string]bool, values []string) {
	for _, v := range values {
		set[v] = true
	}
}
