package dice

import (
	"regexp"
	"strconv"
	"strings"

	dnderr "github.com/KirkDiggler/pf2e-sheet/internal/errors"
)

var diceTermPattern = regexp.MustCompile(`^(\d*)[dD](\d+)$`)

// formulaTerm is one signed operand of a formula part
type formulaTerm struct {
	sign int
	text string
}

// splitTerms breaks "1d20+@mod-2" into signed operands
func splitTerms(expr string) ([]formulaTerm, error) {
	expr = strings.Join(strings.Fields(expr), "")
	if expr == "" {
		return nil, dnderr.InvalidArgument("empty formula term")
	}

	var terms []formulaTerm
	sign := 1
	start := 0
	for i := 0; i <= len(expr); i++ {
		if i < len(expr) && expr[i] != '+' && expr[i] != '-' {
			continue
		}
		if i == start {
			if i == len(expr) {
				return nil, dnderr.InvalidArgumentf("formula %q ends with an operator", expr)
			}
			if expr[i] == '-' {
				sign = -sign
			}
			start = i + 1
			continue
		}

		terms = append(terms, formulaTerm{sign: sign, text: expr[start:i]})
		sign = 1
		if i < len(expr) && expr[i] == '-' {
			sign = -1
		}
		start = i + 1
	}

	return terms, nil
}

// resolvedTerm is an operand after data lookups and dice rolls
type resolvedTerm struct {
	value int
	rolls []int
	text  string
}

// resolveTerm evaluates a single operand. @key reads data (missing keys are 0),
// integers are literal and NdM rolls dice.
func resolveTerm(roller Roller, text string, data map[string]int) (*resolvedTerm, error) {
	if strings.HasPrefix(text, "@") {
		key := strings.TrimPrefix(text, "@")
		if key == "" {
			return nil, dnderr.InvalidArgument("formula reference has no key")
		}
		value := data[key]
		return &resolvedTerm{value: value, text: strconv.Itoa(value)}, nil
	}

	if n, err := strconv.Atoi(text); err == nil {
		return &resolvedTerm{value: n, text: text}, nil
	}

	match := diceTermPattern.FindStringSubmatch(text)
	if match == nil {
		return nil, dnderr.InvalidArgumentf("unsupported formula term %q", text)
	}

	count := 1
	if match[1] != "" {
		n, err := strconv.Atoi(match[1])
		if err != nil || n > MaxDiceCount {
			return nil, dnderr.InvalidArgumentf("dice count in %q must be at most %d", text, MaxDiceCount).
				WithMeta("term", text)
		}
		count = n
	}
	sides, err := strconv.Atoi(match[2])
	if err != nil || sides > MaxDiceSides {
		return nil, dnderr.InvalidArgumentf("dice size in %q must be at most %d", text, MaxDiceSides).
			WithMeta("term", text)
	}

	result, err := roller.Roll(count, sides, 0)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to roll %s", text)
	}

	return &resolvedTerm{
		value: result.Total,
		rolls: result.Rolls,
		text:  strings.ReplaceAll(formatRolls(result.Rolls), " ", ""),
	}, nil
}

func formatRolls(rolls []int) string {
	parts := make([]string, len(rolls))
	for i, r := range rolls {
		parts[i] = strconv.Itoa(r)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
