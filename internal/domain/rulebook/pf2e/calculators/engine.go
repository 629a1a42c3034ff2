package calculators

import (
	"github.com/KirkDiggler/pf2e-sheet/internal/domain/rulebook/pf2e"
	"github.com/KirkDiggler/pf2e-sheet/internal/domain/sheet"
)

// Engine recomputes every derived field of a sheet
type Engine struct {
	rules    *pf2e.Rules
	migrator *TraitMigrator
}

// EngineConfig holds the rule tables the engine runs against
type EngineConfig struct {
	Rules   *pf2e.Rules
	Choices pf2e.ChoiceTable
}

// NewEngine creates an engine, falling back to the default tables
func NewEngine(cfg *EngineConfig) *Engine {
	if cfg == nil {
		cfg = &EngineConfig{}
	}

	rules := cfg.Rules
	if rules == nil {
		rules = pf2e.DefaultRules()
	}

	choices := cfg.Choices
	if choices == nil {
		choices = pf2e.DefaultChoices()
	}

	return &Engine{
		rules:    rules,
		migrator: NewTraitMigrator(choices),
	}
}

// Rules returns the tables this engine composes against
func (e *Engine) Rules() *pf2e.Rules {
	return e.rules
}

// Recompute returns a derived snapshot of s. The input is never modified.
// Abilities are resolved first, then the variant's composer pass runs, then
// trait storage is migrated.
func (e *Engine) Recompute(s *sheet.Sheet) *sheet.Sheet {
	if s == nil {
		return nil
	}

	derived := s.Clone()

	v := variantFor(derived.Kind)
	v.resolveAbilities(derived)
	v.compose(derived, e.rules)

	derived.Traits = e.migrator.Migrate(derived.Traits)

	return derived
}

// Lore computes a lore skill's current total on a derived sheet
func (e *Engine) Lore(s *sheet.Sheet, lore *sheet.LoreSkill) sheet.Computed {
	return ComposeLore(s, lore, e.rules.LoreAbility)
}
