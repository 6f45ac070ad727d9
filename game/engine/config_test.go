package engine

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateScenario_Default(t *testing.T) {
	if err := ValidateScenario(DefaultScenario()); err != nil {
		t.Fatalf("Default scenario should be valid: %v", err)
	}
}

func TestValidateScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *Scenario)
		message string
	}{
		{"missing name", func(s *Scenario) { s.Name = "" }, "Name"},
		{"missing description", func(s *Scenario) { s.Description = "" }, "Description"},
		{"zero height", func(s *Scenario) { s.Height = 0 }, "Height"},
		{"huge width", func(s *Scenario) { s.Width = 101 }, "Width"},
		{"unknown type", func(s *Scenario) { s.Units[0].Type = "tank" }, "Type"},
		{"unknown team", func(s *Scenario) { s.Units[0].Team = "yoga" }, "Team"},
		{"zero health", func(s *Scenario) { s.Units[1].Health = 0 }, "Health"},
		{"negative ammo", func(s *Scenario) { s.Units[1].Ammo = -1 }, "Ammo"},
		{"negative row", func(s *Scenario) { s.Units[2].Row = -1 }, "Row"},
		{"outside board", func(s *Scenario) { s.Units[2].Col = 5 }, "outside"},
		{"duplicate cell", func(s *Scenario) { s.Units[3].Row, s.Units[3].Col = 2, 2 }, "both occupy"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s := DefaultScenario()
			test.mutate(s)
			err := ValidateScenario(s)
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), test.message) {
				t.Errorf("Expected error mentioning %q, got %v", test.message, err)
			}
		})
	}
}

func TestValidateScenario_Nil(t *testing.T) {
	if err := ValidateScenario(nil); err == nil {
		t.Error("Expected error for nil scenario")
	}
}

func TestNewGameFromScenario(t *testing.T) {
	game, err := NewGameFromScenario(DefaultScenario())
	if err != nil {
		t.Fatalf("Failed to build game: %v", err)
	}
	if game.Height() != 5 || game.Width() != 5 {
		t.Errorf("Expected 5x5 board, got %dx%d", game.Height(), game.Width())
	}
	if len(game.Units()) != 4 {
		t.Errorf("Expected 4 units, got %d", len(game.Units()))
	}
	expected := []string{"    s", "     ", "  Sm ", "     ", "N    "}
	for i, row := range game.Rows() {
		if row != expected[i] {
			t.Errorf("Row %d: expected %q, got %q", i, expected[i], row)
		}
	}

	// Soldier at (2,2) hits the adjacent medic at (2,3)
	if err := game.Attack(Point(2, 2), Point(2, 3)); err != nil {
		t.Fatalf("Expected attack to succeed: %v", err)
	}
	medic, _ := game.CharacterAt(Point(2, 3))
	if medic.Stats().Health != 1 {
		t.Errorf("Expected medic health 1, got %d", medic.Stats().Health)
	}
}

func TestLoadScenario(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "skirmish.json")
	data, err := json.MarshalIndent(DefaultScenario(), "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal scenario: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write scenario: %v", err)
	}

	s, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("Failed to load scenario: %v", err)
	}
	if s.Name != "skirmish" || len(s.Units) != 4 {
		t.Errorf("Unexpected scenario %+v", s)
	}
}

func TestLoadScenario_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadScenario(filepath.Join(dir, "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected not-exist error, got %v", err)
	}

	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte("{not json"), 0644)
	if _, err := LoadScenario(bad); err == nil {
		t.Error("Expected parse error")
	}

	invalid := filepath.Join(dir, "invalid.json")
	os.WriteFile(invalid, []byte(`{"name":"x","description":"y","height":0,"width":3}`), 0644)
	if _, err := LoadScenario(invalid); err == nil {
		t.Error("Expected validation error")
	}
}

func TestParseScenario(t *testing.T) {
	s, err := ParseScenario([]byte(`{"name":"tiny","description":"one each","height":1,"width":2,"units":[
		{"type":"medic","team":"powerlifters","row":0,"col":0,"health":2,"ammo":1,"range":1,"power":1},
		{"type":"medic","team":"crossfitters","row":0,"col":1,"health":2,"ammo":1,"range":1,"power":1}]}`), "tiny.json")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if s.Width != 2 || len(s.Units) != 2 {
		t.Errorf("Unexpected scenario %+v", s)
	}

	_, err = ParseScenario([]byte("["), "broken.json")
	if err == nil || !strings.Contains(err.Error(), "broken.json") {
		t.Errorf("Expected parse error naming the source, got %v", err)
	}
}

func TestScenarioFileName(t *testing.T) {
	if ScenarioFileName("classic") != "classic.json" {
		t.Error("Expected .json to be appended")
	}
	if ScenarioFileName("classic.json") != "classic.json" {
		t.Error("Expected existing extension to be kept")
	}
}

func TestScenario_Clone(t *testing.T) {
	original := DefaultScenario()
	clone := original.Clone()

	clone.Name = "changed"
	clone.Units[0].Health = 99
	clone.Units = append(clone.Units, UnitSpec{Type: Medic})

	if original.Name != "skirmish" || original.Units[0].Health != 10 || len(original.Units) != 4 {
		t.Errorf("Changing the clone leaked into the original: %+v", original)
	}

	var nilScenario *Scenario
	if nilScenario.Clone() != nil {
		t.Error("Expected nil clone of a nil scenario")
	}
}

func TestScenarioFromGame(t *testing.T) {
	game, err := NewGameFromScenario(DefaultScenario())
	if err != nil {
		t.Fatalf("Failed to build game: %v", err)
	}
	if err := game.Attack(Point(2, 2), Point(2, 3)); err != nil {
		t.Fatalf("Attack failed: %v", err)
	}

	s := ScenarioFromGame(game, "after", "one shot in")
	if err := ValidateScenario(s); err != nil {
		t.Fatalf("Expected a valid scenario, got %v", err)
	}
	if s.Height != 5 || s.Width != 5 || len(s.Units) != 4 {
		t.Fatalf("Unexpected scenario %+v", s)
	}

	// Row-major: crossfitters soldier (0,4), powerlifters soldier (2,2), medic (2,3), sniper (4,0)
	soldier, medic := s.Units[1], s.Units[2]
	if soldier.Ammo != 2 {
		t.Errorf("Expected the soldier's spent ammo to be kept, got %d", soldier.Ammo)
	}
	if medic.Type != Medic || medic.Health != 1 {
		t.Errorf("Expected the damaged medic at health 1, got %+v", medic)
	}

	rebuilt, err := NewGameFromScenario(s)
	if err != nil {
		t.Fatalf("Failed to rebuild game: %v", err)
	}
	if rebuilt.String() != game.String() {
		t.Errorf("Rebuilt board %q differs from %q", rebuilt.String(), game.String())
	}
}
