package roll

//go:generate mockgen -destination=mock/mock_service.go -package=mockroll -source=service.go

import (
	"context"
	"fmt"

	"github.com/KirkDiggler/pf2e-sheet/internal/dice"
	"github.com/KirkDiggler/pf2e-sheet/internal/domain/rulebook/pf2e"
	"github.com/KirkDiggler/pf2e-sheet/internal/domain/rulebook/pf2e/calculators"
	"github.com/KirkDiggler/pf2e-sheet/internal/domain/shared"
	"github.com/KirkDiggler/pf2e-sheet/internal/domain/sheet"
	dnderr "github.com/KirkDiggler/pf2e-sheet/internal/errors"
)

// modKey is the data key every check formula reads its modifier from
const modKey = "mod"

// Service rolls checks against a sheet's derived values
type Service interface {
	// RollSkill rolls a skill from the fixed skill set
	RollSkill(ctx context.Context, s *sheet.Sheet, key string) (*dice.Outcome, error)

	// RollLoreSkill rolls a lore skill by id or name
	RollLoreSkill(ctx context.Context, s *sheet.Sheet, key string) (*dice.Outcome, error)

	// RollSave rolls fortitude, reflex or will
	RollSave(ctx context.Context, s *sheet.Sheet, key string) (*dice.Outcome, error)

	// RollAbility rolls a flat ability check
	RollAbility(ctx context.Context, s *sheet.Sheet, key string) (*dice.Outcome, error)

	// RollAttribute rolls perception, or spell attack on npc sheets
	RollAttribute(ctx context.Context, s *sheet.Sheet, key string) (*dice.Outcome, error)

	// RollDamage rolls a free damage or healing formula such as "2d6+4"
	RollDamage(ctx context.Context, s *sheet.Sheet, formula string) (*dice.Outcome, error)
}

type service struct {
	checkRoller dice.CheckRoller
	roller      dice.Roller
	engine      *calculators.Engine
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	CheckRoller dice.CheckRoller
	Roller      dice.Roller
	Engine      *calculators.Engine
}

// NewService creates a new roll service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		cfg = &ServiceConfig{}
	}

	svc := &service{
		checkRoller: cfg.CheckRoller,
		roller:      cfg.Roller,
		engine:      cfg.Engine,
	}

	if svc.roller == nil {
		svc.roller = dice.NewRandomRoller()
	}
	if svc.checkRoller == nil {
		svc.checkRoller = dice.NewCheckRoller(svc.roller)
	}
	if svc.engine == nil {
		svc.engine = calculators.NewEngine(nil)
	}

	return svc
}

func (svc *service) RollSkill(ctx context.Context, s *sheet.Sheet, key string) (*dice.Outcome, error) {
	derived, err := svc.derive(s)
	if err != nil {
		return nil, err
	}

	skill, ok := derived.Skills[key]
	if !ok || skill == nil {
		return nil, notRollable(derived, "skill", key)
	}

	title := fmt.Sprintf("%s %s Skill Check", skill.ProficiencyRank(), label(skill.Label, key))
	return svc.check(ctx, derived, title, skill.Computed.Total)
}

func (svc *service) RollLoreSkill(ctx context.Context, s *sheet.Sheet, key string) (*dice.Outcome, error) {
	derived, err := svc.derive(s)
	if err != nil {
		return nil, err
	}

	lore := derived.FindLore(key)
	if lore == nil {
		return nil, notRollable(derived, "lore", key)
	}

	// composed at roll time, npc flat modifiers included
	mod := svc.engine.Lore(derived, lore).Total
	return svc.check(ctx, derived, fmt.Sprintf("%s Skill Check", lore.Name), mod)
}

func (svc *service) RollSave(ctx context.Context, s *sheet.Sheet, key string) (*dice.Outcome, error) {
	derived, err := svc.derive(s)
	if err != nil {
		return nil, err
	}

	save, ok := derived.Saves[key]
	if !ok || save == nil {
		return nil, notRollable(derived, "save", key)
	}

	title := fmt.Sprintf("%s Save Check", label(save.Label, key))
	return svc.check(ctx, derived, title, save.Computed.Total)
}

func (svc *service) RollAbility(ctx context.Context, s *sheet.Sheet, key string) (*dice.Outcome, error) {
	derived, err := svc.derive(s)
	if err != nil {
		return nil, err
	}

	attr, ok := shared.ParseAttribute(key)
	if !ok {
		return nil, notRollable(derived, "ability", key)
	}

	title := fmt.Sprintf("%s Check", attr.Label())
	return svc.check(ctx, derived, title, derived.AbilityModifier(attr))
}

func (svc *service) RollAttribute(ctx context.Context, s *sheet.Sheet, key string) (*dice.Outcome, error) {
	derived, err := svc.derive(s)
	if err != nil {
		return nil, err
	}

	var name string
	var mod int
	switch {
	case key == pf2e.AttributePerception && derived.Perception != nil:
		name = label(derived.Perception.Label, key)
		mod = derived.Perception.Computed.Total
	case key == pf2e.AttributeSpellAttack && derived.Kind.IsNPC() && derived.SpellDC != nil:
		name = pf2e.Label(key)
		mod = derived.SpellDC.AttackBonus
	default:
		return nil, notRollable(derived, "attribute", key)
	}

	return svc.check(ctx, derived, fmt.Sprintf("%s Skill Check", name), mod)
}

func (svc *service) RollDamage(ctx context.Context, s *sheet.Sheet, formula string) (*dice.Outcome, error) {
	if s == nil {
		return nil, dnderr.InvalidArgument("sheet is required")
	}

	outcome, err := dice.RollFormula(ctx, svc.roller, formula, "Damage Roll", speakerFor(s))
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to roll %q", formula)
	}
	return outcome, nil
}

func (svc *service) derive(s *sheet.Sheet) (*sheet.Sheet, error) {
	if s == nil {
		return nil, dnderr.InvalidArgument("sheet is required")
	}
	return svc.engine.Recompute(s), nil
}

func (svc *service) check(ctx context.Context, s *sheet.Sheet, title string, mod int) (*dice.Outcome, error) {
	outcome, err := svc.checkRoller.RollCheck(ctx, &dice.CheckRequest{
		Parts:   []string{"@" + modKey},
		Data:    map[string]int{modKey: mod},
		Title:   title,
		Speaker: speakerFor(s),
	})
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to roll %s", title)
	}
	return outcome, nil
}

func speakerFor(s *sheet.Sheet) dice.Speaker {
	return dice.Speaker{SheetID: s.ID, Name: s.Name}
}

func label(stored, key string) string {
	if stored != "" {
		return stored
	}
	return pf2e.Label(key)
}

func notRollable(s *sheet.Sheet, family, key string) *dnderr.Error {
	return dnderr.NotFoundf("%s '%s' not found on sheet %s", family, key, s.Name).
		WithMeta("sheet_id", s.ID).
		WithMeta(family, key)
}
