package pf2e

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/pf2e-sheet/internal/domain/shared"
)

//go:embed choices.yaml
var defaultChoicesYAML []byte

// Choice is one recognized value of a trait category
type Choice struct {
	Key   string `yaml:"key"`
	Label string `yaml:"label"`
}

// ChoiceTable maps each trait category to its recognized values
type ChoiceTable map[shared.TraitCategory][]Choice

type choicesFile struct {
	Categories map[string][]Choice `yaml:"categories"`
}

// DefaultChoices returns the embedded choice table
func DefaultChoices() ChoiceTable {
	table, err := ParseChoices(strings.NewReader(string(defaultChoicesYAML)))
	if err != nil {
		panic(fmt.Sprintf("embedded choices.yaml is invalid: %v", err))
	}
	return table
}

// LoadChoices reads a choice table from a YAML file
func LoadChoices(path string) (ChoiceTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open choices file: %w", err)
	}
	defer f.Close()

	return ParseChoices(f)
}

// ParseChoices decodes a choice table. Categories outside the known trait
// categories are rejected so a typo does not silently disable migration.
func ParseChoices(r io.Reader) (ChoiceTable, error) {
	var file choicesFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode choices: %w", err)
	}

	known := make(map[shared.TraitCategory]bool, len(shared.TraitCategories))
	for _, category := range shared.TraitCategories {
		known[category] = true
	}

	table := make(ChoiceTable, len(file.Categories))
	for name, choices := range file.Categories {
		category := shared.TraitCategory(name)
		if !known[category] {
			return nil, fmt.Errorf("unknown trait category %q", name)
		}
		for i, choice := range choices {
			if choice.Key == "" {
				return nil, fmt.Errorf("category %q choice %d has no key", name, i)
			}
			if choice.Label == "" {
				choices[i].Label = Label(choice.Key)
			}
		}
		table[category] = choices
	}

	return table, nil
}

// Lookup resolves a token against a category by label or key, ignoring case
func (t ChoiceTable) Lookup(category shared.TraitCategory, token string) (string, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	for _, choice := range t[category] {
		if strings.EqualFold(choice.Label, token) || strings.EqualFold(choice.Key, token) {
			return choice.Key, true
		}
	}
	return "", false
}
