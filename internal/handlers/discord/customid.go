package discord

import "strings"

// Component custom ids are "<context>:<action>:<data>"
const customIDSeparator = ":"

const contextOutcome = "outcome"

// Outcome button actions
const (
	actionDamage     = "damage"
	actionDouble     = "double"
	actionHalf       = "half"
	actionHeal       = "heal"
	actionInitiative = "initiative"
)

func buildCustomID(ctx, action, data string) string {
	return strings.Join([]string{ctx, action, data}, customIDSeparator)
}

func splitCustomID(customID string) (ctx, action, data string) {
	parts := strings.SplitN(customID, customIDSeparator, 3)
	switch len(parts) {
	case 3:
		return parts[0], parts[1], parts[2]
	case 2:
		return parts[0], parts[1], ""
	default:
		return parts[0], "", ""
	}
}
