package scheduler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRulesOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `
aliases:
  morning: morning
  afternoon: afternoon
  night: night
  sunrise: morning
  graveyard: night
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rules, err := LoadRules(path)
	require.NoError(t, err)

	assert.Equal(t, "morning", rules.Normalize("Sunrise"))
	assert.Equal(t, "night", rules.Normalize("graveyard"))
	// Untouched sections keep their defaults.
	assert.Len(t, rules.Templates, 3)
	assert.Equal(t, "06:00", rules.Templates[0].Start)
}

func TestLoadRulesMissingFile(t *testing.T) {
	_, err := LoadRules(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestPriorityBucket(t *testing.T) {
	rules := DefaultRules()

	assert.Equal(t, PriorityRequired, rules.PriorityBucket("must"))
	assert.Equal(t, PriorityPreferred, rules.PriorityBucket("pref"))
	assert.Equal(t, PriorityDisliked, rules.PriorityBucket("dislike"))
	assert.Equal(t, "", rules.PriorityBucket("shift"))
	assert.Equal(t, "", rules.PriorityBucket(""))
}
