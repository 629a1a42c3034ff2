package sheet_test

import (
	"encoding/json"
	"testing"

	"github.com/KirkDiggler/pf2e-sheet/internal/domain/shared"
	"github.com/KirkDiggler/pf2e-sheet/internal/domain/sheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want sheet.Number
	}{
		{name: "integer", raw: `7`, want: 7},
		{name: "negative", raw: `-2`, want: -2},
		{name: "float truncates", raw: `3.9`, want: 3},
		{name: "numeric string", raw: `"12"`, want: 12},
		{name: "leading integer string", raw: `"3rd"`, want: 3},
		{name: "empty string", raw: `""`, want: 0},
		{name: "garbage string", raw: `"abc"`, want: 0},
		{name: "null", raw: `null`, want: 0},
		{name: "object", raw: `{}`, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n sheet.Number
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &n))
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestTraitValue_JSON(t *testing.T) {
	t.Run("list round trips as array", func(t *testing.T) {
		var trait sheet.Trait
		require.NoError(t, json.Unmarshal([]byte(`{"value":["fire","cold"]}`), &trait))
		assert.True(t, trait.Value.IsList)
		assert.Equal(t, []string{"fire", "cold"}, trait.Value.List)

		out, err := json.Marshal(trait)
		require.NoError(t, err)
		assert.JSONEq(t, `{"value":["fire","cold"]}`, string(out))
	})

	t.Run("legacy string stays scalar", func(t *testing.T) {
		var trait sheet.Trait
		require.NoError(t, json.Unmarshal([]byte(`{"value":"Fire, Cold"}`), &trait))
		assert.False(t, trait.Value.IsList)
		assert.Equal(t, "Fire, Cold", trait.Value.Legacy)
	})

	t.Run("legacy number", func(t *testing.T) {
		var trait sheet.Trait
		require.NoError(t, json.Unmarshal([]byte(`{"value":5}`), &trait))
		assert.False(t, trait.Value.IsList)
		assert.Equal(t, "5", trait.Value.Legacy)
	})

	t.Run("empty list marshals as array", func(t *testing.T) {
		out, err := json.Marshal(sheet.ListValue())
		require.NoError(t, err)
		assert.Equal(t, `[]`, string(out))
	})
}

func TestSheet_CloneIsDeep(t *testing.T) {
	original := &sheet.Sheet{
		ID:   "sheet-1",
		Kind: shared.SheetKindCharacter,
		Abilities: map[shared.Attribute]*sheet.AbilityScore{
			shared.AttributeStrength: {Score: 16},
		},
		Skills: map[string]*sheet.Statistic{
			"athletics": {Rank: 1, Ability: shared.AttributeStrength},
		},
		Perception: &sheet.Statistic{Rank: 1},
		Lore:       []*sheet.LoreSkill{{ID: "lore-1", Name: "Sailing Lore"}},
		Traits: map[shared.TraitCategory]*sheet.Trait{
			shared.TraitLanguages: {Value: sheet.ListValue("common")},
		},
		SpellDC: &sheet.SpellDC{DC: 20},
	}

	clone := original.Clone()
	clone.Abilities[shared.AttributeStrength].Score = 8
	clone.Skills["athletics"].Rank = 4
	clone.Perception.Rank = 3
	clone.Lore[0].Name = "changed"
	clone.Traits[shared.TraitLanguages].Value.List[0] = "draconic"
	clone.SpellDC.DC = 1

	assert.Equal(t, sheet.Number(16), original.Abilities[shared.AttributeStrength].Score)
	assert.Equal(t, sheet.Number(1), original.Skills["athletics"].Rank)
	assert.Equal(t, sheet.Number(1), original.Perception.Rank)
	assert.Equal(t, "Sailing Lore", original.Lore[0].Name)
	assert.Equal(t, "common", original.Traits[shared.TraitLanguages].Value.List[0])
	assert.Equal(t, sheet.Number(20), original.SpellDC.DC)
}

func TestSheet_FindLore(t *testing.T) {
	s := &sheet.Sheet{Lore: []*sheet.LoreSkill{
		{ID: "lore-1", Name: "Sailing Lore"},
		{ID: "lore-2", Name: "Warfare Lore"},
	}}

	assert.Equal(t, "lore-2", s.FindLore("lore-2").ID)
	assert.Equal(t, "lore-1", s.FindLore("Sailing Lore").ID)
	assert.Nil(t, s.FindLore("missing"))
}

func TestStatistic_ProficiencyRank(t *testing.T) {
	assert.Equal(t, shared.RankUntrained, (&sheet.Statistic{Rank: -1}).ProficiencyRank())
	assert.Equal(t, shared.RankExpert, (&sheet.Statistic{Rank: 2}).ProficiencyRank())
	assert.Equal(t, shared.RankLegendary, (&sheet.Statistic{Rank: 9}).ProficiencyRank())
}
