package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Scenario is a starting position loaded from JSON
type Scenario struct {
	Name        string     `json:"name" validate:"required"`
	Description string     `json:"description" validate:"required"`
	Height      int        `json:"height" validate:"min=1,max=100"`
	Width       int        `json:"width" validate:"min=1,max=100"`
	Units       []UnitSpec `json:"units" validate:"dive"`
}

// Clone returns a copy that shares no memory with s
func (s *Scenario) Clone() *Scenario {
	if s == nil {
		return nil
	}
	c := *s
	c.Units = append([]UnitSpec(nil), s.Units...)
	return &c
}

// ScenarioFromGame describes the current position of game as a scenario.
// Sniper shot counters are not part of a scenario and start again from zero.
func ScenarioFromGame(game *Game, name, description string) *Scenario {
	s := &Scenario{
		Name:        name,
		Description: description,
		Height:      game.Height(),
		Width:       game.Width(),
		Units:       []UnitSpec{},
	}
	for _, u := range game.Units() {
		s.Units = append(s.Units, UnitSpec{
			Type:   u.Type,
			Team:   u.Team,
			Row:    u.Position.Row,
			Col:    u.Position.Col,
			Health: u.Stats.Health,
			Ammo:   u.Stats.Ammo,
			Range:  u.Stats.Range,
			Power:  u.Stats.Power,
		})
	}
	return s
}

// UnitSpec places one character in a scenario
type UnitSpec struct {
	Type   CharacterType `json:"type" validate:"required,oneof=soldier sniper medic"`
	Team   Team          `json:"team" validate:"required,oneof=powerlifters crossfitters"`
	Row    int           `json:"row" validate:"min=0"`
	Col    int           `json:"col" validate:"min=0"`
	Health int           `json:"health" validate:"min=1"`
	Ammo   int           `json:"ammo" validate:"min=0"`
	Range  int           `json:"range" validate:"min=0"`
	Power  int           `json:"power" validate:"min=0"`
}

// Position returns the cell the unit starts on
func (u UnitSpec) Position() GridPoint {
	return Point(u.Row, u.Col)
}

var scenarioValidator = validator.New(validator.WithRequiredStructEnabled())

// ValidateScenario validates a scenario for correctness and playability
func ValidateScenario(s *Scenario) error {
	if s == nil {
		return fmt.Errorf("scenario validation: scenario is nil")
	}
	if err := scenarioValidator.Struct(s); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("scenario validation: %s failed on '%s' (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("scenario validation: %w", err)
	}

	seen := make(map[GridPoint]int, len(s.Units))
	for i, u := range s.Units {
		p := u.Position()
		if p.Row >= s.Height || p.Col >= s.Width {
			return fmt.Errorf("scenario validation: unit %d at %s is outside the %dx%d board", i+1, p, s.Height, s.Width)
		}
		if prev, ok := seen[p]; ok {
			return fmt.Errorf("scenario validation: units %d and %d both occupy %s", prev+1, i+1, p)
		}
		seen[p] = i
	}
	return nil
}

// LoadScenario loads and validates a scenario from a JSON file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data, filepath.Base(path))
}

// ParseScenario decodes and validates scenario JSON. source names the data in errors.
func ParseScenario(data []byte, source string) (*Scenario, error) {
	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario '%s': %w", source, err)
	}
	if err := ValidateScenario(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// NewGameFromScenario builds a game with every unit of the scenario in place
func NewGameFromScenario(s *Scenario) (*Game, error) {
	if err := ValidateScenario(s); err != nil {
		return nil, err
	}
	game, err := NewGame(s.Height, s.Width)
	if err != nil {
		return nil, err
	}
	for _, u := range s.Units {
		c, err := NewCharacter(u.Type, u.Team, u.Health, u.Ammo, u.Range, u.Power)
		if err != nil {
			return nil, fmt.Errorf("unit at %s: %w", u.Position(), err)
		}
		if err := game.AddCharacter(u.Position(), c); err != nil {
			return nil, err
		}
	}
	return game, nil
}

// DefaultScenario is the 5x5 skirmish used when no scenario files are available
func DefaultScenario() *Scenario {
	return &Scenario{
		Name:        "skirmish",
		Description: "A soldier and a sniper against a medic and a soldier on a 5x5 board",
		Height:      5,
		Width:       5,
		Units: []UnitSpec{
			{Type: Soldier, Team: Powerlifters, Row: 2, Col: 2, Health: 10, Ammo: 3, Range: 3, Power: 4},
			{Type: Sniper, Team: Powerlifters, Row: 4, Col: 0, Health: 6, Ammo: 2, Range: 4, Power: 3},
			{Type: Medic, Team: Crossfitters, Row: 2, Col: 3, Health: 5, Ammo: 1, Range: 1, Power: 2},
			{Type: Soldier, Team: Crossfitters, Row: 0, Col: 4, Health: 8, Ammo: 3, Range: 3, Power: 3},
		},
	}
}

// ScenarioFileName appends the .json extension when missing
func ScenarioFileName(name string) string {
	if strings.HasSuffix(name, ".json") {
		return name
	}
	return name + ".json"
}
