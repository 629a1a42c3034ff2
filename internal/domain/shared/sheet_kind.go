package shared

// SheetKind tags which variant of sheet is stored
type SheetKind string

const (
	SheetKindCharacter SheetKind = "character"
	SheetKindNPC       SheetKind = "npc"
)

func (k SheetKind) IsNPC() bool {
	return k == SheetKindNPC
}
