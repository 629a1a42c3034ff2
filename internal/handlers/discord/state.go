package discord

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/KirkDiggler/pf2e-sheet/internal/dice"
)

// OutcomeState is the part of a roll outcome carried on its buttons. It has
// to fit a component custom id, so only the total and roller survive.
type OutcomeState struct {
	Total   int    `json:"t"`
	SheetID string `json:"s,omitempty"`
}

// NewOutcomeState keeps what the appliers need from an outcome
func NewOutcomeState(outcome *dice.Outcome) *OutcomeState {
	return &OutcomeState{
		Total:   outcome.Total,
		SheetID: outcome.Speaker.SheetID,
	}
}

// Outcome rebuilds the outcome the buttons were attached to
func (s *OutcomeState) Outcome() *dice.Outcome {
	return &dice.Outcome{
		Total:   s.Total,
		Speaker: dice.Speaker{SheetID: s.SheetID},
	}
}

// Encode encodes the state to a base64 string
func (s *OutcomeState) Encode() (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to marshal state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// DecodeOutcomeState decodes a base64 string to state
func DecodeOutcomeState(encoded string) (*OutcomeState, error) {
	data, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}

	var state OutcomeState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state: %w", err)
	}

	return &state, nil
}
