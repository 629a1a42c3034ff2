package pf2e_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KirkDiggler/pf2e-sheet/internal/domain/rulebook/pf2e"
	"github.com/KirkDiggler/pf2e-sheet/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRules(t *testing.T) {
	rules := pf2e.DefaultRules()

	assert.Len(t, rules.Saves, 3)
	assert.Len(t, rules.Skills, 16)
	assert.Equal(t, shared.AttributeWisdom, rules.PerceptionAbility)
	assert.Equal(t, shared.AttributeIntelligence, rules.LoreAbility)

	fort, ok := rules.FindSave(pf2e.SaveFortitude)
	require.True(t, ok)
	assert.Equal(t, "Fortitude", fort.Label)
	assert.Equal(t, shared.AttributeConstitution, fort.Ability)

	var penalized []string
	for _, skill := range rules.Skills {
		if skill.ArmorPenalty {
			penalized = append(penalized, skill.Key)
		}
	}
	assert.ElementsMatch(t, []string{"acrobatics", "athletics", "stealth", "thievery"}, penalized)

	_, ok = rules.FindSkill("basket-weaving")
	assert.False(t, ok)

	heavy, ok := rules.FindMartial("heavy")
	require.True(t, ok)
	assert.Equal(t, shared.AttributeNone, heavy.Ability)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Sleight Of Hand", pf2e.Label("sleight-of-hand"))
	assert.Equal(t, "Spell Attack", pf2e.Label("spell_attack"))
}

func TestDefaultChoices(t *testing.T) {
	table := pf2e.DefaultChoices()

	for _, category := range shared.TraitCategories {
		assert.NotEmpty(t, table[category], "category %s should have choices", category)
	}

	key, ok := table.Lookup(shared.TraitDamageResistance, "FIRE")
	assert.True(t, ok)
	assert.Equal(t, "fire", key)

	key, ok = table.Lookup(shared.TraitConditionImmunity, "Flat-Footed")
	assert.True(t, ok)
	assert.Equal(t, "flat-footed", key)

	_, ok = table.Lookup(shared.TraitLanguages, "klingon")
	assert.False(t, ok)
}

func TestParseChoices(t *testing.T) {
	t.Run("fills missing labels", func(t *testing.T) {
		table, err := pf2e.ParseChoices(strings.NewReader(`
categories:
  languages:
    - key: deep-speech
`))
		require.NoError(t, err)
		require.Len(t, table[shared.TraitLanguages], 1)
		assert.Equal(t, "Deep Speech", table[shared.TraitLanguages][0].Label)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		_, err := pf2e.ParseChoices(strings.NewReader("categories:\n  smells:\n    - key: rose\n"))
		assert.Error(t, err)
	})

	t.Run("rejects missing key", func(t *testing.T) {
		_, err := pf2e.ParseChoices(strings.NewReader("categories:\n  ci:\n    - label: Prone\n"))
		assert.Error(t, err)
	})
}

func TestLoadChoices(t *testing.T) {
	path := filepath.Join(t.TempDir(), "choices.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories:\n  dr:\n    - {key: fire, label: Fire}\n"), 0o600))

	table, err := pf2e.LoadChoices(path)
	require.NoError(t, err)
	assert.Len(t, table[shared.TraitDamageResistance], 1)

	_, err = pf2e.LoadChoices(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
