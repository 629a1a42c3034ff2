package dice

import (
	"fmt"
	"log"
	"math/rand"
	"strings"

	dnderr "github.com/KirkDiggler/pf2e-sheet/internal/errors"
)

// Limits on a single dice term
const (
	MaxDiceCount = 100
	MaxDiceSides = 1000
)

// RollResult contains detailed information about a dice roll
type RollResult struct {
	Total    int   // Sum of kept dice plus bonus
	Rolls    []int // Individual die results
	Bonus    int
	Count    int
	Sides    int
	RawTotal int // Total before the bonus
	IsCrit   bool
	IsFumble bool
}

// Roll rolls count dice of size sides and adds bonus
func Roll(count, size, bonus int) (*RollResult, error) {
	if count < 1 || count > MaxDiceCount {
		return nil, dnderr.InvalidArgumentf("invalid dice count %d", count)
	}

	if size < 1 || size > MaxDiceSides {
		return nil, dnderr.InvalidArgumentf("invalid dice size %d", size)
	}

	total := 0
	out := make([]int, count)
	for i := 0; i < count; i++ {
		roll := rand.Intn(size) + 1
		total += roll
		out[i] = roll
	}

	log.Println("Rolling", count, "d", size, ":", out, "total:", total)
	return &RollResult{
		Total:    total + bonus,
		Rolls:    out,
		Bonus:    bonus,
		Count:    count,
		Sides:    size,
		RawTotal: total,
	}, nil
}

func (r *RollResult) String() string {
	compact := strings.ReplaceAll(fmt.Sprintf("%v", r.Rolls), " ", "")
	return fmt.Sprintf("**%d** : %s", r.Total, compact)
}
