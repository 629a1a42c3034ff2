package sheet

import "github.com/KirkDiggler/pf2e-sheet/internal/domain/shared"

// Clone returns a deep copy so derived snapshots never alias stored data
func (s *Sheet) Clone() *Sheet {
	if s == nil {
		return nil
	}

	out := *s

	if s.Abilities != nil {
		out.Abilities = make(map[shared.Attribute]*AbilityScore, len(s.Abilities))
		for k, v := range s.Abilities {
			if v == nil {
				out.Abilities[k] = nil
				continue
			}
			ability := *v
			out.Abilities[k] = &ability
		}
	}

	out.Saves = cloneStatistics(s.Saves)
	out.Skills = cloneStatistics(s.Skills)
	out.Martial = cloneStatistics(s.Martial)
	out.Perception = cloneStatistic(s.Perception)

	if s.Lore != nil {
		out.Lore = make([]*LoreSkill, len(s.Lore))
		for i, lore := range s.Lore {
			if lore == nil {
				continue
			}
			l := *lore
			out.Lore[i] = &l
		}
	}

	if s.Traits != nil {
		out.Traits = make(map[shared.TraitCategory]*Trait, len(s.Traits))
		for k, v := range s.Traits {
			if v == nil {
				out.Traits[k] = nil
				continue
			}
			trait := *v
			if v.Value.List != nil {
				trait.Value.List = append([]string{}, v.Value.List...)
			}
			out.Traits[k] = &trait
		}
	}

	if s.SpellDC != nil {
		dc := *s.SpellDC
		out.SpellDC = &dc
	}

	return &out
}

func cloneStatistics(in map[string]*Statistic) map[string]*Statistic {
	if in == nil {
		return nil
	}
	out := make(map[string]*Statistic, len(in))
	for k, v := range in {
		out[k] = cloneStatistic(v)
	}
	return out
}

func cloneStatistic(in *Statistic) *Statistic {
	if in == nil {
		return nil
	}
	stat := *in
	return &stat
}
