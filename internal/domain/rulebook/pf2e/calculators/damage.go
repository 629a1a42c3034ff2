package calculators

import (
	"math"

	"github.com/KirkDiggler/pf2e-sheet/internal/domain/sheet"
)

// DamageValue scales a rolled total by a multiplier and floors the result.
// Negative multipliers produce healing.
func DamageValue(rollTotal int, multiplier float64) int {
	return int(math.Floor(float64(rollTotal) * multiplier))
}

// ApplyDamage returns the hit points after value is applied and how much
// temporary hit points absorbed. Healing never touches temporary hit points
// and the result is clamped to [0, max].
func ApplyDamage(hp sheet.HitPoints, value int) (sheet.HitPoints, int) {
	temp := hp.Temp.Int()

	absorbed := 0
	if value > 0 {
		absorbed = min(temp, value)
	}

	remaining := hp.Value.Int() - (value - absorbed)
	remaining = min(max(remaining, 0), hp.Max.Int())

	return sheet.HitPoints{
		Value: sheet.Number(remaining),
		Temp:  sheet.Number(temp - absorbed),
		Max:   hp.Max,
	}, absorbed
}
