package engine

import (
	"fmt"
	"strings"
)

// Team identifies which side a character fights for
type Team string

const (
	Powerlifters Team = "powerlifters"
	Crossfitters Team = "crossfitters"
)

// CharacterType is the closed set of unit variants
type CharacterType string

const (
	Soldier CharacterType = "soldier"
	Sniper  CharacterType = "sniper"
	Medic   CharacterType = "medic"
)

const (
	SoldierMovementRange = 3
	SoldierReloadAmount  = 3
	SoldierAttackCost    = 1

	SniperMovementRange = 4
	SniperReloadAmount  = 2
	SniperAttackCost    = 1

	MedicMovementRange = 5
	MedicReloadAmount  = 5
	MedicAttackCost    = 1

	// Glyphs used by the row-major rendering. Powerlifters are upper-cased.
	SoldierGlyph = 's'
	SniperGlyph  = 'n'
	MedicGlyph   = 'm'
	EmptyGlyph   = ' '
)

// GridPoint is a board coordinate. Row 0 is the top row.
type GridPoint struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Point is shorthand for GridPoint{Row: row, Col: col}
func Point(row, col int) GridPoint {
	return GridPoint{Row: row, Col: col}
}

func (p GridPoint) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Less reports whether p comes before other in row-major order
func (p GridPoint) Less(other GridPoint) bool {
	if p.Row == other.Row {
		return p.Col < other.Col
	}
	return p.Row < other.Row
}

// Stats is a read-only view of a character's combat numbers
type Stats struct {
	Health        int `json:"health"`
	Ammo          int `json:"ammo"`
	Range         int `json:"range"`
	Power         int `json:"power"`
	MovementRange int `json:"movement_range"`
	ReloadAmount  int `json:"reload_amount"`
	AttackCost    int `json:"attack_cost"`
}

// Placement describes an occupied cell
type Placement struct {
	Position GridPoint     `json:"position"`
	Type     CharacterType `json:"type"`
	Team     Team          `json:"team"`
	Stats    Stats         `json:"stats"`
}

// ParseTeam converts a user supplied team name
func ParseTeam(s string) (Team, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(Powerlifters), "p":
		return Powerlifters, nil
	case string(Crossfitters), "c":
		return Crossfitters, nil
	}
	return "", fmt.Errorf("%w: unknown team %q", ErrIllegalArgument, s)
}

// ParseCharacterType converts a user supplied character type name
func ParseCharacterType(s string) (CharacterType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(Soldier):
		return Soldier, nil
	case string(Sniper):
		return Sniper, nil
	case string(Medic):
		return Medic, nil
	}
	return "", fmt.Errorf("%w: unknown character type %q", ErrIllegalArgument, s)
}

// Glyph returns the rendering letter for a character type and team
func Glyph(t CharacterType, team Team) rune {
	var g rune
	switch t {
	case Soldier:
		g = SoldierGlyph
	case Sniper:
		g = SniperGlyph
	case Medic:
		g = MedicGlyph
	default:
		return EmptyGlyph
	}
	if team == Powerlifters {
		g -= 'a' - 'A'
	}
	return g
}
