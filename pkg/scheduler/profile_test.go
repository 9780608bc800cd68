package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liorhadad/staffing-api-go/pkg/models"
)

func TestNormalizeShiftKey(t *testing.T) {
	rules := DefaultRules()

	assert.Equal(t, "morning", rules.Normalize("  Morning "))
	assert.Equal(t, "morning", rules.Normalize("בוקר"))
	assert.Equal(t, "afternoon", rules.Normalize("noon"))
	assert.Equal(t, "afternoon", rules.Normalize("evening"))
	assert.Equal(t, "night", rules.Normalize("Overnight"))
	assert.Equal(t, "night", rules.Normalize("לילה"))
	// Unknown keys pass through lower-cased.
	assert.Equal(t, "graveyard", rules.Normalize("Graveyard"))
}

func TestBuildProfileFromMapValue(t *testing.T) {
	builder := NewBuilder(DefaultRules())

	profile := builder.Build([]models.RawConstraint{
		{Kind: "shift", Scope: "shift", Value: `{"allowed_shifts":["Morning","noon"]}`},
		{Kind: "shift", Scope: "shift", Value: `{"blocked_shifts":["לילה"]}`},
		{Kind: "date", Scope: "date", Value: `{"blocked_dates":["2025-11-06"],"allowed_dates":["2025-11-04","2025-11-05"]}`},
	})

	assert.Equal(t, map[string]bool{"morning": true, "afternoon": true}, profile.AllowedShifts)
	assert.Equal(t, map[string]bool{"night": true}, profile.BlockedShifts)
	assert.Equal(t, map[string]bool{"2025-11-04": true, "2025-11-05": true}, profile.AllowedDates)
	assert.Equal(t, map[string]bool{"2025-11-06": true}, profile.BlockedDates)
	assert.Nil(t, profile.RequiredShifts)
}

func TestBuildProfilePriorityRouting(t *testing.T) {
	builder := NewBuilder(DefaultRules())

	profile := builder.Build([]models.RawConstraint{
		{Kind: "shift", Scope: "shift", Value: `{"type":"shift","values":["morning"],"priority":"preferred"}`},
		{Kind: "shift", Scope: "shift", Value: `{"type":"shift","values":["night"],"priority":"avoid"}`},
		{Kind: "shift", Scope: "shift", Value: `{"type":"shift","values":["afternoon"],"priority":"must"}`},
	})

	// The priority buckets stack on top of the allow polarity.
	assert.Equal(t, map[string]bool{"morning": true, "night": true, "afternoon": true}, profile.AllowedShifts)
	assert.Equal(t, map[string]bool{"morning": true}, profile.PreferredShifts)
	assert.Equal(t, map[string]bool{"night": true}, profile.DislikedShifts)
	assert.Equal(t, map[string]bool{"afternoon": true}, profile.RequiredShifts)
}

func TestBuildProfileFromListValue(t *testing.T) {
	builder := NewBuilder(DefaultRules())

	profile := builder.Build([]models.RawConstraint{
		{Kind: "available", Scope: "shift", Value: `["morning","afternoon"]`},
		{Kind: "unavailable", Scope: "shift", Value: `["night"]`},
		{Kind: "unavailable", Scope: "date", Value: `["2025-11-07"]`},
	})

	assert.Equal(t, map[string]bool{"morning": true, "afternoon": true}, profile.AllowedShifts)
	assert.Equal(t, map[string]bool{"night": true}, profile.BlockedShifts)
	assert.Equal(t, map[string]bool{"2025-11-07": true}, profile.BlockedDates)
	assert.Nil(t, profile.AllowedDates)
}

func TestBuildProfileKindActsAsPriorityHint(t *testing.T) {
	builder := NewBuilder(DefaultRules())

	profile := builder.Build([]models.RawConstraint{
		{Kind: "preferred", Scope: "shift", Value: `["morning"]`},
	})

	assert.Equal(t, map[string]bool{"morning": true}, profile.AllowedShifts)
	assert.Equal(t, map[string]bool{"morning": true}, profile.PreferredShifts)
}

func TestBuildProfileScalarAndMalformedValues(t *testing.T) {
	builder := NewBuilder(DefaultRules())

	profile := builder.Build([]models.RawConstraint{
		// A JSON string literal and a malformed document both read as a
		// singleton list.
		{Kind: "shift", Scope: "shift", Value: `"בוקר"`},
		{Kind: "unshift", Scope: "shift", Value: `night`},
		// Values with no usable shape are dropped silently.
		{Kind: "shift", Scope: "shift", Value: `42`},
		{Kind: "shift", Scope: "shift", Value: ``},
	})

	assert.Equal(t, map[string]bool{"morning": true}, profile.AllowedShifts)
	assert.Equal(t, map[string]bool{"night": true}, profile.BlockedShifts)
}

func TestBuildProfileBlockAndAllowBothRecorded(t *testing.T) {
	builder := NewBuilder(DefaultRules())

	profile := builder.Build([]models.RawConstraint{
		{Kind: "shift", Scope: "shift", Value: `["morning"]`},
		{Kind: "blocked", Scope: "shift", Value: `["morning"]`},
	})

	// Later records never retract earlier ones; both sets hold the value
	// and eligibility treats the block as dominant.
	assert.True(t, profile.AllowedShifts["morning"])
	assert.True(t, profile.BlockedShifts["morning"])
	assert.False(t, profile.Allows("2025-11-04", "morning"))
}

func TestAllowsCheckOrder(t *testing.T) {
	builder := NewBuilder(DefaultRules())

	t.Run("allowed dates restrict", func(t *testing.T) {
		p := builder.Build([]models.RawConstraint{
			{Kind: "date", Scope: "date", Value: `["2025-11-04"]`},
		})
		assert.True(t, p.Allows("2025-11-04", "morning"))
		assert.False(t, p.Allows("2025-11-05", "morning"))
	})

	t.Run("blocked date rejects", func(t *testing.T) {
		p := builder.Build([]models.RawConstraint{
			{Kind: "unavailable", Scope: "date", Value: `["2025-11-04"]`},
		})
		assert.False(t, p.Allows("2025-11-04", "morning"))
		assert.True(t, p.Allows("2025-11-05", "morning"))
	})

	t.Run("allow list restricts shifts", func(t *testing.T) {
		p := builder.Build([]models.RawConstraint{
			{Kind: "shift", Scope: "shift", Value: `["morning"]`},
		})
		assert.True(t, p.Allows("2025-11-04", "morning"))
		assert.False(t, p.Allows("2025-11-04", "night"))
	})

	t.Run("required list rejects everything else", func(t *testing.T) {
		p := builder.Build([]models.RawConstraint{
			{Kind: "shift", Scope: "shift", Value: `["morning","night"]`},
			{Kind: "shift", Scope: "shift", Value: `{"type":"shift","values":["night"],"priority":"required"}`},
		})
		require.NotNil(t, p.RequiredShifts)
		assert.True(t, p.Allows("2025-11-04", "night"))
		// Morning is on the allow list but fails the hard requirement.
		assert.False(t, p.Allows("2025-11-04", "morning"))
	})

	t.Run("empty profile allows all", func(t *testing.T) {
		p := builder.Build(nil)
		assert.True(t, p.Allows("2025-11-04", "morning"))
	})
}
