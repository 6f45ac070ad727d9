// Command validate provides a small CLI that validates scenario JSON files
// in a configs directory (../configs by default, or the first argument). It checks:
//   - JSON structure, rejecting unknown fields
//   - Field rules: board size, unit types, teams and stats
//   - Every unit on the board and on its own cell
//   - Both teams present, so the scenario is not won before it starts
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/mcp-training/gridcombat/game/engine"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Messages contains informational lines; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File     string
	Valid    bool
	Messages []string
}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Messages = append(r.Messages, fmt.Sprintf(format, args...))
}

// validateScenario loads and validates a single scenario JSON file
func validateScenario(filePath string) ValidationResult {
	result := ValidationResult{
		File:     filepath.Base(filePath),
		Valid:    true,
		Messages: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	var s engine.Scenario
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		result.fail("Invalid JSON: %v", err)
		return result
	}

	if id := strings.TrimSuffix(result.File, ".json"); strings.ContainsAny(id, " \t") {
		result.fail("File name %q cannot be used as a scenario ID", id)
	}

	if err := engine.ValidateScenario(&s); err != nil {
		result.fail("%v", err)
		return result
	}

	game, err := engine.NewGameFromScenario(&s)
	if err != nil {
		result.fail("Failed to build game: %v", err)
		return result
	}

	counts := map[engine.Team]int{}
	for _, u := range game.Units() {
		counts[u.Team]++
	}
	for _, team := range []engine.Team{engine.Powerlifters, engine.Crossfitters} {
		if counts[team] == 0 {
			result.fail("No %s units, the game would be over before the first command", team)
		}
	}

	if result.Valid {
		result.Messages = append(result.Messages, fmt.Sprintf("✓ Name: %s", s.Name))
		result.Messages = append(result.Messages, fmt.Sprintf("✓ Board: %dx%d", s.Height, s.Width))
		caser := cases.Title(language.English)
		for _, team := range []engine.Team{engine.Powerlifters, engine.Crossfitters} {
			result.Messages = append(result.Messages, fmt.Sprintf("✓ %s: %d units", caser.String(string(team)), counts[team]))
		}
	}

	return result
}

// run validates every *.json file in dir, prints a report to w and
// reports whether all of them are valid
func run(dir string, w io.Writer) bool {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		fmt.Fprintf(w, "Error finding scenario files: %v\n", err)
		return false
	}
	if len(files) == 0 {
		fmt.Fprintf(w, "No scenario files found in %s\n", dir)
		return false
	}

	allValid := true
	for _, file := range files {
		result := validateScenario(file)

		fmt.Fprintf(w, "\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Fprintln(w, "✅ VALID")
			for _, info := range result.Messages {
				fmt.Fprintln(w, "  "+info)
			}
		} else {
			fmt.Fprintln(w, "❌ INVALID")
			allValid = false
			for _, msg := range result.Messages {
				fmt.Fprintln(w, "  ❌ "+msg)
			}
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Fprintln(w, "✅ All scenarios are valid!")
	} else {
		fmt.Fprintln(w, "❌ Some scenarios have errors")
	}
	return allValid
}

func main() {
	dir := "../configs"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}
	if !run(dir, os.Stdout) {
		os.Exit(1)
	}
}
