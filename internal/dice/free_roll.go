package dice

import (
	"context"
	"strings"

	dnderr "github.com/KirkDiggler/pf2e-sheet/internal/errors"
)

// RollFormula rolls a free formula such as "2d6+4" for damage or healing.
// There is no d20 so Natural stays 0 and @ references resolve to 0.
func RollFormula(ctx context.Context, roller Roller, formula, title string, speaker Speaker) (*Outcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, dnderr.Wrap(err, "roll canceled")
	}
	if roller == nil {
		roller = NewRandomRoller()
	}

	terms, err := splitTerms(formula)
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{
		Rolls:   []int{},
		Title:   title,
		Speaker: speaker,
	}

	var formulaText, resultText []string
	for i, term := range terms {
		resolved, err := resolveTerm(roller, term.text, nil)
		if err != nil {
			return nil, err
		}

		switch {
		case i == 0 && term.sign < 0:
			formulaText = append(formulaText, "-"+term.text)
			resultText = append(resultText, "-"+resolved.text)
		case i == 0:
			formulaText = append(formulaText, term.text)
			resultText = append(resultText, resolved.text)
		default:
			op := "+"
			if term.sign < 0 {
				op = "-"
			}
			formulaText = append(formulaText, op, term.text)
			resultText = append(resultText, op, resolved.text)
		}

		outcome.Total += term.sign * resolved.value
		outcome.Rolls = append(outcome.Rolls, resolved.rolls...)
	}

	outcome.Formula = strings.Join(formulaText, " ")
	outcome.Result = strings.Join(resultText, " ")

	return outcome, nil
}
