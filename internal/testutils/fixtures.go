package testutils

import (
	"time"

	"github.com/KirkDiggler/pf2e-sheet/internal/domain/combat"
	"github.com/KirkDiggler/pf2e-sheet/internal/domain/shared"
	"github.com/KirkDiggler/pf2e-sheet/internal/domain/sheet"
)

// FixedTime is the timestamp fixtures are created at
var FixedTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// CreateTestCharacterSheet creates a level 5 rogue-ish character with base data only
func CreateTestCharacterSheet(id, ownerID, name string) *sheet.Sheet {
	return &sheet.Sheet{
		ID:         id,
		OwnerID:    ownerID,
		Name:       name,
		Kind:       shared.SheetKindCharacter,
		Level:      5,
		Experience: sheet.Experience{Value: 450},
		Abilities: map[shared.Attribute]*sheet.AbilityScore{
			shared.AttributeStrength:     {Score: 10},
			shared.AttributeDexterity:    {Score: 18},
			shared.AttributeConstitution: {Score: 14},
			shared.AttributeIntelligence: {Score: 12},
			shared.AttributeWisdom:       {Score: 13},
			shared.AttributeCharisma:     {Score: 8},
		},
		Saves: map[string]*sheet.Statistic{
			"fortitude": {Rank: 1},
			"reflex":    {Rank: 2, ItemBonus: 1},
			"will":      {Rank: 1},
		},
		Skills: map[string]*sheet.Statistic{
			"acrobatics": {Rank: 2},
			"stealth":    {Rank: 3, ItemBonus: 1},
			"thievery":   {Rank: 2},
		},
		Martial: map[string]*sheet.Statistic{
			"light":  {Rank: 1},
			"simple": {Rank: 1},
		},
		Perception: &sheet.Statistic{Rank: 2},
		Lore: []*sheet.LoreSkill{
			{ID: "lore-underworld", Name: "Underworld Lore", Rank: 1},
		},
		ArmorClass: sheet.ArmorClass{Value: 22, CheckPenalty: -1},
		HitPoints:  sheet.HitPoints{Value: 60, Temp: 0, Max: 68},
		Traits: map[shared.TraitCategory]*sheet.Trait{
			shared.TraitLanguages: {Value: sheet.ListValue("common")},
		},
		CreatedAt: FixedTime,
		UpdatedAt: FixedTime,
	}
}

// CreateTestNPCSheet creates a monster sheet with flat modifiers
func CreateTestNPCSheet(id, ownerID, name string) *sheet.Sheet {
	return &sheet.Sheet{
		ID:      id,
		OwnerID: ownerID,
		Name:    name,
		Kind:    shared.SheetKindNPC,
		Level:   3,
		Abilities: map[shared.Attribute]*sheet.AbilityScore{
			shared.AttributeStrength:  {Modifier: 4},
			shared.AttributeDexterity: {Modifier: 2},
			shared.AttributeWisdom:    {Modifier: -1},
		},
		Saves: map[string]*sheet.Statistic{
			"fortitude": {Modifier: 11},
			"reflex":    {Modifier: 8},
			"will":      {Modifier: 5},
		},
		Perception: &sheet.Statistic{Modifier: 6},
		Lore: []*sheet.LoreSkill{
			{ID: "lore-warfare", Name: "Warfare Lore", Modifier: 9},
		},
		ArmorClass: sheet.ArmorClass{Value: 18},
		HitPoints:  sheet.HitPoints{Value: 45, Temp: 5, Max: 45},
		SpellDC:    &sheet.SpellDC{DC: 21},
		CreatedAt:  FixedTime,
		UpdatedAt:  FixedTime,
	}
}

// CreateTestEncounter creates an encounter with one combatant per token
func CreateTestEncounter(id, channelID string, tokens map[string]string) *combat.Encounter {
	enc := combat.NewEncounter(id, channelID, "Test Encounter", "gm")
	enc.CreatedAt = FixedTime
	for tokenID, sheetID := range tokens {
		enc.AddCombatant(&combat.Combatant{
			ID:      "combatant-" + tokenID,
			TokenID: tokenID,
			SheetID: sheetID,
			Name:    tokenID,
			Type:    combat.CombatantTypeMonster,
		})
	}
	return enc
}
