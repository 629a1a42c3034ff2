package combat

import (
	"sort"
	"time"
)

// EncounterStatus represents the current state of an encounter
type EncounterStatus string

const (
	EncounterStatusSetup     EncounterStatus = "setup"     // Adding combatants and rolling initiative
	EncounterStatusActive    EncounterStatus = "active"    // Combat in progress
	EncounterStatusCompleted EncounterStatus = "completed" // Encounter finished
)

// CombatantType represents the type of combatant
type CombatantType string

const (
	CombatantTypePlayer  CombatantType = "player"
	CombatantTypeMonster CombatantType = "monster"
)

// Encounter is a combat tracked in one channel
type Encounter struct {
	ID         string                `json:"id"`
	ChannelID  string                `json:"channel_id"`
	Name       string                `json:"name"`
	Status     EncounterStatus       `json:"status"`
	Round      int                   `json:"round"`
	Turn       int                   `json:"turn"`       // index into TurnOrder
	Combatants map[string]*Combatant `json:"combatants"` // ID -> Combatant
	TurnOrder  []string              `json:"turn_order"`
	CreatedBy  string                `json:"created_by"`
	CreatedAt  time.Time             `json:"created_at"`
}

// Combatant is one token placed in an encounter. Several tokens may share a sheet.
type Combatant struct {
	ID         string        `json:"id"`
	TokenID    string        `json:"token_id"`
	SheetID    string        `json:"sheet_id"`
	Name       string        `json:"name"`
	Type       CombatantType `json:"type"`
	Initiative *int          `json:"initiative,omitempty"`
}

// HasInitiative reports whether initiative has been assigned
func (c *Combatant) HasInitiative() bool {
	return c.Initiative != nil
}

// NewEncounter creates a new encounter
func NewEncounter(id, channelID, name, createdBy string) *Encounter {
	return &Encounter{
		ID:         id,
		ChannelID:  channelID,
		Name:       name,
		Status:     EncounterStatusSetup,
		Combatants: make(map[string]*Combatant),
		TurnOrder:  []string{},
		CreatedBy:  createdBy,
		CreatedAt:  time.Now().UTC(),
	}
}

// AddCombatant adds a new combatant to the encounter
func (e *Encounter) AddCombatant(combatant *Combatant) {
	if e.Combatants == nil {
		e.Combatants = make(map[string]*Combatant)
	}
	e.Combatants[combatant.ID] = combatant
}

// RemoveCombatant removes a combatant and its place in the turn order
func (e *Encounter) RemoveCombatant(id string) {
	delete(e.Combatants, id)
	newOrder := []string{}
	for _, cid := range e.TurnOrder {
		if cid != id {
			newOrder = append(newOrder, cid)
		}
	}
	e.TurnOrder = newOrder
	if e.Turn >= len(e.TurnOrder) {
		e.Turn = 0
	}
}

// CombatantByToken finds the combatant placed for a token
func (e *Encounter) CombatantByToken(tokenID string) *Combatant {
	for _, c := range e.Combatants {
		if c.TokenID == tokenID {
			return c
		}
	}
	return nil
}

// SortTurnOrder orders combatants by initiative, highest first. Monsters win
// ties against players, then names break the remaining ties. Combatants
// without initiative go last.
func (e *Encounter) SortTurnOrder() {
	order := make([]*Combatant, 0, len(e.Combatants))
	for _, c := range e.Combatants {
		order = append(order, c)
	}

	sort.SliceStable(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if a.HasInitiative() != b.HasInitiative() {
			return a.HasInitiative()
		}
		if a.HasInitiative() && *a.Initiative != *b.Initiative {
			return *a.Initiative > *b.Initiative
		}
		if a.Type != b.Type {
			return a.Type == CombatantTypeMonster
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})

	e.TurnOrder = make([]string, len(order))
	for i, c := range order {
		e.TurnOrder[i] = c.ID
	}
}

// Start begins the encounter once every combatant has initiative
func (e *Encounter) Start() bool {
	if e.Status != EncounterStatusSetup || len(e.Combatants) == 0 {
		return false
	}
	for _, c := range e.Combatants {
		if !c.HasInitiative() {
			return false
		}
	}

	e.SortTurnOrder()
	e.Status = EncounterStatusActive
	e.Round = 1
	e.Turn = 0
	return true
}

// NextTurn advances to the next combatant, starting a new round after the last
func (e *Encounter) NextTurn() {
	if e.Status != EncounterStatusActive || len(e.TurnOrder) == 0 {
		return
	}

	e.Turn++
	if e.Turn >= len(e.TurnOrder) {
		e.Turn = 0
		e.Round++
	}
}

// Current returns the combatant whose turn it is
func (e *Encounter) Current() *Combatant {
	if e.Status != EncounterStatusActive || e.Turn >= len(e.TurnOrder) {
		return nil
	}
	return e.Combatants[e.TurnOrder[e.Turn]]
}

// End finishes the encounter
func (e *Encounter) End() {
	e.Status = EncounterStatusCompleted
}

// Clone returns a deep copy
func (e *Encounter) Clone() *Encounter {
	if e == nil {
		return nil
	}
	out := *e
	out.Combatants = make(map[string]*Combatant, len(e.Combatants))
	for id, c := range e.Combatants {
		combatant := *c
		if c.Initiative != nil {
			initiative := *c.Initiative
			combatant.Initiative = &initiative
		}
		out.Combatants[id] = &combatant
	}
	out.TurnOrder = append([]string{}, e.TurnOrder...)
	return &out
}
