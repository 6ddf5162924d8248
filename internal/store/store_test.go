package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pvillar/hogarfin/internal/models"
	"pvillar/hogarfin/internal/store"
)

func writeRulesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "categories.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadRulesFromFile(t *testing.T) {
	path := writeRulesFile(t, `categories:
  - name: "Groceries"
    patterns:
      - "mercadona"
      - "lidl"
  - name: "Transport"
    patterns:
      - "renfe"
`)

	s := store.NewRuleStore(path)
	rules, err := s.LoadRules()
	require.NoError(t, err)

	require.Len(t, rules, 2)
	assert.Equal(t, "Groceries", rules[0].Name)
	assert.Equal(t, []string{"mercadona", "lidl"}, rules[0].Patterns)
	assert.Equal(t, "Transport", rules[1].Name)
}

func TestLoadRulesBareArray(t *testing.T) {
	path := writeRulesFile(t, `- name: "Groceries"
  patterns: ["mercadona"]
`)

	s := store.NewRuleStore(path)
	rules, err := s.LoadRules()
	require.NoError(t, err)

	require.Len(t, rules, 1)
	assert.Equal(t, "Groceries", rules[0].Name)
}

func TestLoadRulesMissingFileUsesDefaults(t *testing.T) {
	s := store.NewRuleStore(filepath.Join(t.TempDir(), "does-not-exist.yaml"))

	rules, err := s.LoadRules()
	require.NoError(t, err)
	assert.Equal(t, store.DefaultRules(), rules)
}

func TestLoadRulesUnrecognizedContent(t *testing.T) {
	path := writeRulesFile(t, `just a scalar`)

	s := store.NewRuleStore(path)
	_, err := s.LoadRules()
	assert.Error(t, err)
}

func TestSaveRulesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules", "categories.yaml")

	rules := []models.CategoryRule{
		{Name: "Groceries", Patterns: []string{"mercadona", "consum"}},
	}

	s := store.NewRuleStore(path)
	require.NoError(t, s.SaveRules(rules))

	loaded, err := s.LoadRules()
	require.NoError(t, err)
	assert.Equal(t, rules, loaded)
}

func TestDefaultRulesTable(t *testing.T) {
	rules := store.DefaultRules()

	require.NotEmpty(t, rules)
	assert.Equal(t, models.CategoryHousing, rules[0].Name, "housing rules match first")

	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.Name
		assert.NotEmpty(t, r.Patterns, "rule %s has no patterns", r.Name)
	}
	assert.Contains(t, names, models.CategoryGroceries)
	assert.Contains(t, names, models.CategoryFinancial)
	assert.NotContains(t, names, models.CategoryIncome, "income is sign-derived, not pattern-matched")
	assert.NotContains(t, names, models.CategoryUncategorized)

	assert.Empty(t, store.ShadowedTriggers(rules), "built-in table has no dead patterns")
}

func TestShadowedTriggers(t *testing.T) {
	rules := []models.CategoryRule{
		{Name: "Subscriptions", Patterns: []string{"gimnasio", "netflix"}},
		{Name: "Health & Wellness", Patterns: []string{"gimnasio", "farmacia"}},
	}

	shadows := store.ShadowedTriggers(rules)
	require.Len(t, shadows, 1)
	assert.Equal(t, "gimnasio", shadows[0].Pattern)
	assert.Equal(t, "Subscriptions", shadows[0].WinningCategory)
	assert.Equal(t, "Health & Wellness", shadows[0].ShadowedCategory)
}
