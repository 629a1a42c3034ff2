package mockdice

import (
	"fmt"
	"sync"

	"github.com/KirkDiggler/pf2e-sheet/internal/dice"
)

// ManualMockRoller implements dice.Roller for testing with predetermined results
type ManualMockRoller struct {
	mu        sync.Mutex
	rolls     []int
	rollIndex int
}

// NewManualMockRoller creates a new mock dice roller
func NewManualMockRoller() *ManualMockRoller {
	return &ManualMockRoller{
		rolls: []int{},
	}
}

// SetNextRoll queues one more roll result
func (m *ManualMockRoller) SetNextRoll(roll int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = append(m.rolls, roll)
}

// SetRolls replaces the queued rolls
func (m *ManualMockRoller) SetRolls(rolls []int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = rolls
	m.rollIndex = 0
}

// Remaining reports how many queued rolls have not been used
func (m *ManualMockRoller) Remaining() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rolls) - m.rollIndex
}

func (m *ManualMockRoller) nextRoll(sides int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.rollIndex >= len(m.rolls) {
		return 0, fmt.Errorf("no more predetermined rolls available (used %d of %d)", m.rollIndex, len(m.rolls))
	}

	roll := m.rolls[m.rollIndex]
	if roll < 1 || roll > sides {
		return 0, fmt.Errorf("invalid roll %d for d%d", roll, sides)
	}
	m.rollIndex++
	return roll, nil
}

// Roll implements dice.Roller.Roll
func (m *ManualMockRoller) Roll(count, sides, bonus int) (*dice.RollResult, error) {
	rolls := make([]int, count)
	raw := 0

	for i := 0; i < count; i++ {
		roll, err := m.nextRoll(sides)
		if err != nil {
			return nil, err
		}
		rolls[i] = roll
		raw += roll
	}

	result := &dice.RollResult{
		Total:    raw + bonus,
		Rolls:    rolls,
		Bonus:    bonus,
		Count:    count,
		Sides:    sides,
		RawTotal: raw,
	}
	if count == 1 && sides == 20 {
		result.IsCrit = raw == 20
		result.IsFumble = raw == 1
	}

	return result, nil
}

// RollFortune implements dice.Roller.RollFortune
func (m *ManualMockRoller) RollFortune(sides, bonus int) (*dice.RollResult, error) {
	return m.rollTwice(sides, bonus, true)
}

// RollMisfortune implements dice.Roller.RollMisfortune
func (m *ManualMockRoller) RollMisfortune(sides, bonus int) (*dice.RollResult, error) {
	return m.rollTwice(sides, bonus, false)
}

func (m *ManualMockRoller) rollTwice(sides, bonus int, keepHigher bool) (*dice.RollResult, error) {
	roll1, err := m.nextRoll(sides)
	if err != nil {
		return nil, err
	}

	roll2, err := m.nextRoll(sides)
	if err != nil {
		return nil, err
	}

	kept := min(roll1, roll2)
	if keepHigher {
		kept = max(roll1, roll2)
	}

	result := &dice.RollResult{
		Total:    kept + bonus,
		Rolls:    []int{roll1, roll2},
		Bonus:    bonus,
		Count:    1,
		Sides:    sides,
		RawTotal: kept,
	}
	if sides == 20 {
		result.IsCrit = kept == 20
		result.IsFumble = kept == 1
	}

	return result, nil
}
