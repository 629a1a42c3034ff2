package calculators

import (
	"log"
	"strings"

	"github.com/KirkDiggler/pf2e-sheet/internal/domain/rulebook/pf2e"
	"github.com/KirkDiggler/pf2e-sheet/internal/domain/shared"
	"github.com/KirkDiggler/pf2e-sheet/internal/domain/sheet"
)

// TraitMigrator normalizes legacy scalar trait storage into lists of choice keys
type TraitMigrator struct {
	choices pf2e.ChoiceTable
}

func NewTraitMigrator(choices pf2e.ChoiceTable) *TraitMigrator {
	if choices == nil {
		choices = pf2e.ChoiceTable{}
	}
	return &TraitMigrator{choices: choices}
}

// Migrate converts every category in place. Values that are already lists
// are left alone, so running it again is a no-op. Missing categories are
// created empty.
func (m *TraitMigrator) Migrate(traits map[shared.TraitCategory]*sheet.Trait) map[shared.TraitCategory]*sheet.Trait {
	if traits == nil {
		traits = make(map[shared.TraitCategory]*sheet.Trait, len(shared.TraitCategories))
	}

	for _, category := range shared.TraitCategories {
		trait := traits[category]
		if trait == nil {
			trait = &sheet.Trait{}
			traits[category] = trait
		}
		trait.Value = m.MigrateValue(category, trait.Value)
	}

	return traits
}

// MigrateValue parses one legacy value. Tokens are separated by commas or
// semicolons; a token that is not a known label is retried word by word.
// Unrecognized tokens are dropped.
func (m *TraitMigrator) MigrateValue(category shared.TraitCategory, value sheet.TraitValue) sheet.TraitValue {
	if value.IsList {
		return value
	}

	keys := []string{}
	seen := map[string]bool{}
	add := func(key string) {
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}

	for _, token := range strings.FieldsFunc(value.Legacy, isListSeparator) {
		if key, ok := m.choices.Lookup(category, token); ok {
			add(key)
			continue
		}
		for _, word := range strings.Fields(token) {
			if key, ok := m.choices.Lookup(category, word); ok {
				add(key)
				continue
			}
			log.Printf("Dropping unrecognized %s trait value %q", category, word)
		}
	}

	return sheet.ListValue(keys...)
}

func isListSeparator(r rune) bool {
	return r == ',' || r == ';' || r == '\n'
}
