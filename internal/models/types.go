package models

// OfficialMaxID is the highest id in the official catalog; custom ids
// begin at CustomBaseID and are assigned by the database sequence.
const (
	OfficialMaxID = 1025
	CustomBaseID  = 1026
)

// Pokemon type names accepted for custom entries
const (
	TypeNormal   = "normal"
	TypeFire     = "fire"
	TypeWater    = "water"
	TypeGrass    = "grass"
	TypeElectric = "electric"
	TypeIce      = "ice"
	TypeFighting = "fighting"
	TypePoison   = "poison"
	TypeGround   = "ground"
	TypeFlying   = "flying"
	TypePsychic  = "psychic"
	TypeBug      = "bug"
	TypeRock     = "rock"
	TypeGhost    = "ghost"
	TypeDragon   = "dragon"
	TypeDark     = "dark"
	TypeSteel    = "steel"
	TypeFairy    = "fairy"
)

// ValidTypes is a map of accepted Pokemon type names
var ValidTypes = map[string]bool{
	TypeNormal:   true,
	TypeFire:     true,
	TypeWater:    true,
	TypeGrass:    true,
	TypeElectric: true,
	TypeIce:      true,
	TypeFighting: true,
	TypePoison:   true,
	TypeGround:   true,
	TypeFlying:   true,
	TypePsychic:  true,
	TypeBug:      true,
	TypeRock:     true,
	TypeGhost:    true,
	TypeDragon:   true,
	TypeDark:     true,
	TypeSteel:    true,
	TypeFairy:    true,
}

// IsValidType checks if a type name is a known Pokemon type
func IsValidType(name string) bool {
	return ValidTypes[name]
}
