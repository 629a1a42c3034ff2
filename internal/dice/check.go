package dice

import (
	"context"
	"strings"

	dnderr "github.com/KirkDiggler/pf2e-sheet/internal/errors"
)

//go:generate mockgen -destination=mock/mock_check_roller.go -package=mockdice -source=check.go

// CheckRoller rolls a d20 check from formula parts
type CheckRoller interface {
	RollCheck(ctx context.Context, req *CheckRequest) (*Outcome, error)
}

// RollMode selects how the d20 is kept
type RollMode int

const (
	RollModeNormal RollMode = iota
	RollModeFortune
	RollModeMisfortune
)

// Speaker identifies who a roll is posted as
type Speaker struct {
	SheetID string `json:"sheet_id"`
	Name    string `json:"name"`
}

// CheckRequest is a d20 check. Parts are added to the d20, e.g. ["@mod"]
// with Data {"mod": 7}.
type CheckRequest struct {
	Parts   []string
	Data    map[string]int
	Title   string
	Speaker Speaker
	Mode    RollMode
}

// Outcome is the completed roll handed to the outcome applier
type Outcome struct {
	Total   int     `json:"total"`
	Natural int     `json:"natural"`
	Formula string  `json:"formula"`
	Result  string  `json:"result"`
	Rolls   []int   `json:"rolls"`
	Title   string  `json:"title"`
	Speaker Speaker `json:"speaker"`
}

// IsCrit reports a natural 20
func (o *Outcome) IsCrit() bool {
	return o.Natural == 20
}

// IsFumble reports a natural 1
func (o *Outcome) IsFumble() bool {
	return o.Natural == 1
}

type d20Roller struct {
	roller Roller
}

// NewCheckRoller creates a CheckRoller backed by roller, or a random roller when nil
func NewCheckRoller(roller Roller) CheckRoller {
	if roller == nil {
		roller = NewRandomRoller()
	}
	return &d20Roller{roller: roller}
}

// RollCheck implements CheckRoller.RollCheck
func (r *d20Roller) RollCheck(ctx context.Context, req *CheckRequest) (*Outcome, error) {
	if req == nil {
		return nil, dnderr.InvalidArgument("check request is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, dnderr.Wrap(err, "roll canceled")
	}

	d20, err := r.rollD20(req.Mode)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to roll d20")
	}

	outcome := &Outcome{
		Total:   d20.RawTotal,
		Natural: d20.RawTotal,
		Rolls:   append([]int{}, d20.Rolls...),
		Title:   req.Title,
		Speaker: req.Speaker,
	}

	formula := []string{"1d20"}
	result := []string{formatRolls(d20.Rolls)}

	for _, part := range req.Parts {
		terms, err := splitTerms(part)
		if err != nil {
			return nil, err
		}
		for _, term := range terms {
			resolved, err := resolveTerm(r.roller, term.text, req.Data)
			if err != nil {
				return nil, err
			}

			op := "+"
			if term.sign < 0 {
				op = "-"
			}
			formula = append(formula, op, term.text)
			result = append(result, op, resolved.text)

			outcome.Total += term.sign * resolved.value
			outcome.Rolls = append(outcome.Rolls, resolved.rolls...)
		}
	}

	outcome.Formula = strings.Join(formula, " ")
	outcome.Result = strings.Join(result, " ")

	return outcome, nil
}

func (r *d20Roller) rollD20(mode RollMode) (*RollResult, error) {
	switch mode {
	case RollModeFortune:
		return r.roller.RollFortune(20, 0)
	case RollModeMisfortune:
		return r.roller.RollMisfortune(20, 0)
	default:
		return r.roller.Roll(1, 20, 0)
	}
}
