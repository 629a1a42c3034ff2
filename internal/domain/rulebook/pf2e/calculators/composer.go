package calculators

import (
	"fmt"
	"sort"
	"strings"

	"github.com/KirkDiggler/pf2e-sheet/internal/domain/rulebook/pf2e"
	"github.com/KirkDiggler/pf2e-sheet/internal/domain/shared"
	"github.com/KirkDiggler/pf2e-sheet/internal/domain/sheet"
)

// term is one additive part of a breakdown, rendered as "label(value)"
type term struct {
	label string
	value int
}

func total(terms ...term) sheet.Computed {
	sum := 0
	parts := make([]string, len(terms))
	for i, t := range terms {
		sum += t.value
		parts[i] = fmt.Sprintf("%s(%d)", t.label, t.value)
	}
	return sheet.Computed{
		Total:     sum,
		Breakdown: strings.Join(parts, " + "),
	}
}

// checkTerms are the ability, proficiency and item terms in their fixed order
func checkTerms(s *sheet.Sheet, ability shared.Attribute, rank, itemBonus sheet.Number) []term {
	return []term{
		{label: fmt.Sprintf("%s modifier", ability), value: s.AbilityModifier(ability)},
		{label: "proficiency", value: Proficiency(rank.Int(), s.Level.Int())},
		{label: "item bonus", value: itemBonus.Int()},
	}
}

// ComposeCheck totals a save or perception: ability + proficiency + item bonus
func ComposeCheck(s *sheet.Sheet, stat *sheet.Statistic) sheet.Computed {
	return total(checkTerms(s, stat.Ability, stat.Rank, stat.ItemBonus)...)
}

// ComposeSkill totals a skill. The armor check penalty is a fourth term only
// when the skill uses it; otherwise it is left out of the breakdown entirely.
func ComposeSkill(s *sheet.Sheet, stat *sheet.Statistic) sheet.Computed {
	terms := checkTerms(s, stat.Ability, stat.Rank, stat.ItemBonus)
	if stat.UsesArmorPenalty {
		terms = append(terms, term{label: "armor check penalty", value: s.ArmorClass.CheckPenalty.Int()})
	}
	return total(terms...)
}

// ComposeMartial totals a weapon or armor proficiency, which has no ability or item term
func ComposeMartial(s *sheet.Sheet, stat *sheet.Statistic) sheet.Computed {
	return total(term{label: "proficiency", value: Proficiency(stat.Rank.Int(), s.Level.Int())})
}

// ComposeLore totals a lore skill against the fixed lore ability.
// Monster lore is authored as a flat modifier and bypasses the formula.
func ComposeLore(s *sheet.Sheet, lore *sheet.LoreSkill, ability shared.Attribute) sheet.Computed {
	if s.Kind.IsNPC() {
		return ComposeFlat(lore.Modifier)
	}
	return total(checkTerms(s, ability, lore.Rank, lore.ItemBonus)...)
}

// ComposeFlat totals an npc statistic, which is authored as a single modifier
func ComposeFlat(modifier sheet.Number) sheet.Computed {
	return total(term{label: "modifier", value: modifier.Int()})
}

// SpellAttackBonus is the fixed offset monsters derive from their spell DC
func SpellAttackBonus(dc int) int {
	return dc - 10
}

// seedStatistics fills a statistic family from its definitions. Defined keys
// come first in rulebook order, followed by any extra stored keys sorted.
func seedStatistics(stored map[string]*sheet.Statistic, defs []pf2e.StatisticDefinition) (map[string]*sheet.Statistic, []string) {
	if stored == nil {
		stored = make(map[string]*sheet.Statistic, len(defs))
	}

	keys := make([]string, 0, len(stored)+len(defs))
	defined := make(map[string]bool, len(defs))
	for _, def := range defs {
		defined[def.Key] = true
		keys = append(keys, def.Key)

		stat := stored[def.Key]
		if stat == nil {
			stat = &sheet.Statistic{}
			stored[def.Key] = stat
		}
		if stat.Ability == shared.AttributeNone {
			stat.Ability = def.Ability
		}
		if stat.Label == "" {
			stat.Label = def.Label
		}
		stat.UsesArmorPenalty = def.ArmorPenalty
	}

	var extra []string
	for key, stat := range stored {
		if defined[key] {
			continue
		}
		if stat == nil {
			stat = &sheet.Statistic{}
			stored[key] = stat
		}
		if stat.Label == "" {
			stat.Label = pf2e.Label(key)
		}
		extra = append(extra, key)
	}
	sort.Strings(extra)

	return stored, append(keys, extra...)
}
