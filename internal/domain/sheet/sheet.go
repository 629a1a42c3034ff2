package sheet

import (
	"time"

	"github.com/KirkDiggler/pf2e-sheet/internal/domain/shared"
)

// Field paths written by roll application. They address the JSON document a
// store keeps for a sheet.
const (
	FieldHitPointsValue = "hit_points.value"
	FieldHitPointsTemp  = "hit_points.temp"
)

// Sheet is a character or monster sheet: authored base data plus the
// derived values a recompute fills in.
type Sheet struct {
	ID      string           `json:"id"`
	OwnerID string           `json:"owner_id"`
	Name    string           `json:"name"`
	Kind    shared.SheetKind `json:"kind"`

	Level      Number     `json:"level"`
	Experience Experience `json:"experience"`

	Abilities  map[shared.Attribute]*AbilityScore `json:"abilities"`
	Saves      map[string]*Statistic              `json:"saves"`
	Skills     map[string]*Statistic              `json:"skills"`
	Martial    map[string]*Statistic              `json:"martial"`
	Perception *Statistic                         `json:"perception"`
	Lore       []*LoreSkill                       `json:"lore,omitempty"`

	ArmorClass ArmorClass `json:"armor_class"`
	HitPoints  HitPoints  `json:"hit_points"`

	Traits map[shared.TraitCategory]*Trait `json:"traits"`

	// SpellDC is only authored on npc sheets
	SpellDC *SpellDC `json:"spell_dc,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Revision counts stored writes. A whole-sheet update must carry the
	// revision it was read at.
	Revision int64 `json:"revision"`
}

type AbilityScore struct {
	Score    Number `json:"score"`
	Modifier Number `json:"modifier"`
}

// Experience.Max and Percent are derived for characters
type Experience struct {
	Value   Number  `json:"value"`
	Max     int     `json:"max"`
	Percent float64 `json:"percent"`
}

type ArmorClass struct {
	Value        Number `json:"value"`
	CheckPenalty Number `json:"check_penalty"`
}

type HitPoints struct {
	Value Number `json:"value"`
	Temp  Number `json:"temp"`
	Max   Number `json:"max"`
}

type SpellDC struct {
	DC          Number `json:"dc"`
	AttackBonus int    `json:"attack_bonus"`
}

// Computed is the derived total and its human readable breakdown
type Computed struct {
	Total     int    `json:"total"`
	Breakdown string `json:"breakdown"`
}

// Statistic is the shared shape of saves, skills, martial proficiencies and perception.
// Modifier is the flat value authored on npc sheets.
type Statistic struct {
	Label            string           `json:"label,omitempty"`
	Rank             Number           `json:"rank"`
	Ability          shared.Attribute `json:"ability,omitempty"`
	ItemBonus        Number           `json:"item_bonus"`
	Modifier         Number           `json:"modifier,omitempty"`
	UsesArmorPenalty bool             `json:"uses_armor_penalty,omitempty"`
	Computed         Computed         `json:"computed"`
}

// ProficiencyRank returns the rank clamped to the known tiers
func (s *Statistic) ProficiencyRank() shared.ProficiencyRank {
	return clampRank(s.Rank)
}

// LoreSkill is a freely named skill kept outside the fixed skill set.
// Modifier is the flat value authored on npc sheets.
type LoreSkill struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Rank      Number   `json:"rank"`
	ItemBonus Number   `json:"item_bonus"`
	Modifier  Number   `json:"modifier"`
	Computed  Computed `json:"computed"`
}

func clampRank(n Number) shared.ProficiencyRank {
	switch {
	case n <= 0:
		return shared.RankUntrained
	case n >= Number(shared.RankLegendary):
		return shared.RankLegendary
	default:
		return shared.ProficiencyRank(n)
	}
}

// Ability returns the ability record or nil when it was never authored
func (s *Sheet) Ability(attr shared.Attribute) *AbilityScore {
	if s == nil || s.Abilities == nil {
		return nil
	}
	return s.Abilities[attr]
}

// AbilityModifier reads a stored modifier, treating a missing ability as 0
func (s *Sheet) AbilityModifier(attr shared.Attribute) int {
	if ability := s.Ability(attr); ability != nil {
		return ability.Modifier.Int()
	}
	return 0
}

// FindLore looks a lore skill up by id, falling back to its name
func (s *Sheet) FindLore(key string) *LoreSkill {
	for _, lore := range s.Lore {
		if lore != nil && lore.ID == key {
			return lore
		}
	}
	for _, lore := range s.Lore {
		if lore != nil && lore.Name == key {
			return lore
		}
	}
	return nil
}
