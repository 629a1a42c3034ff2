package dice

// randomRoller implements Roller with math/rand
type randomRoller struct{}

// NewRandomRoller creates a new random dice roller
func NewRandomRoller() Roller {
	return &randomRoller{}
}

// Roll implements Roller.Roll
func (r *randomRoller) Roll(count, sides, bonus int) (*RollResult, error) {
	result, err := Roll(count, sides, bonus)
	if err != nil {
		return nil, err
	}

	markD20(result, count, sides, result.RawTotal)
	return result, nil
}

// RollFortune implements Roller.RollFortune
func (r *randomRoller) RollFortune(sides, bonus int) (*RollResult, error) {
	return r.rollTwice(sides, bonus, func(a, b int) int { return max(a, b) })
}

// RollMisfortune implements Roller.RollMisfortune
func (r *randomRoller) RollMisfortune(sides, bonus int) (*RollResult, error) {
	return r.rollTwice(sides, bonus, func(a, b int) int { return min(a, b) })
}

func (r *randomRoller) rollTwice(sides, bonus int, keep func(a, b int) int) (*RollResult, error) {
	first, err := Roll(1, sides, 0)
	if err != nil {
		return nil, err
	}

	second, err := Roll(1, sides, 0)
	if err != nil {
		return nil, err
	}

	roll1 := first.Rolls[0]
	roll2 := second.Rolls[0]
	kept := keep(roll1, roll2)

	result := &RollResult{
		Total:    kept + bonus,
		Rolls:    []int{roll1, roll2}, // Show both rolls
		Bonus:    bonus,
		Count:    1,
		Sides:    sides,
		RawTotal: kept,
	}
	markD20(result, 1, sides, kept)

	return result, nil
}

// markD20 flags natural 20s and 1s on a single d20
func markD20(result *RollResult, count, sides, natural int) {
	if count != 1 || sides != 20 {
		return
	}
	result.IsCrit = natural == 20
	result.IsFumble = natural == 1
}
