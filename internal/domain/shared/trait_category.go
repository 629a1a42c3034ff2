package shared

// TraitCategory names a trait list stored on a sheet
type TraitCategory string

const (
	TraitDamageResistance    TraitCategory = "dr"
	TraitDamageImmunity      TraitCategory = "di"
	TraitDamageVulnerability TraitCategory = "dv"
	TraitConditionImmunity   TraitCategory = "ci"
	TraitLanguages           TraitCategory = "languages"
)

// TraitCategories is the fixed migration order
var TraitCategories = []TraitCategory{
	TraitDamageResistance,
	TraitDamageImmunity,
	TraitDamageVulnerability,
	TraitConditionImmunity,
	TraitLanguages,
}
