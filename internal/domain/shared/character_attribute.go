package shared

import "strings"

// Attribute is one of the six ability keys stored on a sheet
type Attribute string

var Attributes = []Attribute{AttributeStrength, AttributeDexterity, AttributeConstitution, AttributeIntelligence, AttributeWisdom, AttributeCharisma}

const (
	AttributeNone         Attribute = ""
	AttributeStrength     Attribute = "str"
	AttributeDexterity    Attribute = "dex"
	AttributeConstitution Attribute = "con"
	AttributeIntelligence Attribute = "int"
	AttributeWisdom       Attribute = "wis"
	AttributeCharisma     Attribute = "cha"
)

var attributeLabels = map[Attribute]string{
	AttributeStrength:     "Strength",
	AttributeDexterity:    "Dexterity",
	AttributeConstitution: "Constitution",
	AttributeIntelligence: "Intelligence",
	AttributeWisdom:       "Wisdom",
	AttributeCharisma:     "Charisma",
}

// Label returns the display name, e.g. "Dexterity"
func (a Attribute) Label() string {
	if label, ok := attributeLabels[a]; ok {
		return label
	}
	return string(a)
}

func (a Attribute) Short() string {
	return strings.ToUpper(string(a))
}

// ParseAttribute accepts either the key ("dex") or the label ("Dexterity")
func ParseAttribute(s string) (Attribute, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, attr := range Attributes {
		if string(attr) == s || strings.ToLower(attr.Label()) == s {
			return attr, true
		}
	}
	return AttributeNone, false
}
