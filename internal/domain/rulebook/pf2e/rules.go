// Package pf2e holds the rule tables the sheet calculators iterate over.
package pf2e

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/KirkDiggler/pf2e-sheet/internal/domain/shared"
)

// StatisticDefinition describes one entry of a fixed statistic set
type StatisticDefinition struct {
	Key          string
	Label        string
	Ability      shared.Attribute
	ArmorPenalty bool
}

// Rules is the explicit key set for every derived field family
type Rules struct {
	Saves             []StatisticDefinition
	Skills            []StatisticDefinition
	Martial           []StatisticDefinition
	PerceptionAbility shared.Attribute
	LoreAbility       shared.Attribute
}

// Save keys
const (
	SaveFortitude = "fortitude"
	SaveReflex    = "reflex"
	SaveWill      = "will"
)

// Attribute keys accepted by attribute rolls
const (
	AttributePerception  = "perception"
	AttributeSpellAttack = "spell-attack"
)

// DefaultRules returns the core rulebook tables
func DefaultRules() *Rules {
	return &Rules{
		Saves: statisticDefinitions{
			{Key: SaveFortitude, Ability: shared.AttributeConstitution},
			{Key: SaveReflex, Ability: shared.AttributeDexterity},
			{Key: SaveWill, Ability: shared.AttributeWisdom},
		}.withLabels(),
		Skills: statisticDefinitions{
			{Key: "acrobatics", Ability: shared.AttributeDexterity, ArmorPenalty: true},
			{Key: "arcana", Ability: shared.AttributeIntelligence},
			{Key: "athletics", Ability: shared.AttributeStrength, ArmorPenalty: true},
			{Key: "crafting", Ability: shared.AttributeIntelligence},
			{Key: "deception", Ability: shared.AttributeCharisma},
			{Key: "diplomacy", Ability: shared.AttributeCharisma},
			{Key: "intimidation", Ability: shared.AttributeCharisma},
			{Key: "medicine", Ability: shared.AttributeWisdom},
			{Key: "nature", Ability: shared.AttributeWisdom},
			{Key: "occultism", Ability: shared.AttributeIntelligence},
			{Key: "performance", Ability: shared.AttributeCharisma},
			{Key: "religion", Ability: shared.AttributeWisdom},
			{Key: "society", Ability: shared.AttributeIntelligence},
			{Key: "stealth", Ability: shared.AttributeDexterity, ArmorPenalty: true},
			{Key: "survival", Ability: shared.AttributeWisdom},
			{Key: "thievery", Ability: shared.AttributeDexterity, ArmorPenalty: true},
		}.withLabels(),
		Martial: statisticDefinitions{
			{Key: "unarmored"},
			{Key: "light"},
			{Key: "medium"},
			{Key: "heavy"},
			{Key: "unarmed"},
			{Key: "simple"},
			{Key: "martial"},
			{Key: "advanced"},
		}.withLabels(),
		PerceptionAbility: shared.AttributeWisdom,
		LoreAbility:       shared.AttributeIntelligence,
	}
}

type statisticDefinitions []StatisticDefinition

func (defs statisticDefinitions) withLabels() []StatisticDefinition {
	out := make([]StatisticDefinition, len(defs))
	for i, def := range defs {
		if def.Label == "" {
			def.Label = Label(def.Key)
		}
		out[i] = def
	}
	return out
}

// Label turns a key like "sleight-of-hand" into "Sleight Of Hand"
func Label(key string) string {
	words := []rune(key)
	for i, r := range words {
		if r == '-' || r == '_' {
			words[i] = ' '
		}
	}
	return cases.Title(language.English).String(string(words))
}

// FindSave returns the definition for a save key
func (r *Rules) FindSave(key string) (StatisticDefinition, bool) {
	return find(r.Saves, key)
}

// FindSkill returns the definition for a skill key
func (r *Rules) FindSkill(key string) (StatisticDefinition, bool) {
	return find(r.Skills, key)
}

// FindMartial returns the definition for a martial proficiency key
func (r *Rules) FindMartial(key string) (StatisticDefinition, bool) {
	return find(r.Martial, key)
}

func find(defs []StatisticDefinition, key string) (StatisticDefinition, bool) {
	for _, def := range defs {
		if def.Key == key {
			return def, true
		}
	}
	return StatisticDefinition{}, false
}
