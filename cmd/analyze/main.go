// Command analyze prints quick, human-readable summaries of the scenario
// files in a configs directory: board size, units and health per team, and
// every attack that is already legal in the starting position.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/mcp-training/gridcombat/game/engine"
)

// Threat is an attack the attacker can make without moving
type Threat struct {
	Attacker     engine.GridPoint
	AttackerType engine.CharacterType
	Target       engine.GridPoint
	TargetType   engine.CharacterType
}

// Analysis summarizes one scenario
type Analysis struct {
	Name    string
	Height  int
	Width   int
	Units   map[engine.Team]int
	Health  map[engine.Team]int
	Threats map[engine.Team][]Threat
}

func main() {
	cmd := &cli.Command{
		Name:      "analyze",
		Usage:     "summarize scenario files",
		ArgsUsage: "[scenario files...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "directory scanned when no files are given",
				Sources: cli.EnvVars("GRIDCOMBAT_CONFIG_DIR"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			files := cmd.Args().Slice()
			if len(files) == 0 {
				var err error
				if files, err = scenarioFiles(cmd.String("config-dir")); err != nil {
					return err
				}
			}
			for _, file := range files {
				fmt.Printf("\n=== Analyzing %s ===\n", filepath.Base(file))
				analyzeFile(os.Stdout, file)
			}
			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// scenarioFiles lists the .json files of dir in name order
func scenarioFiles(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no scenario files in %s", dir)
	}
	sort.Strings(files)
	return files, nil
}

func analyzeFile(w io.Writer, path string) {
	s, err := engine.LoadScenario(path)
	if err != nil {
		fmt.Fprintf(w, "Error loading scenario: %v\n", err)
		return
	}
	a, err := analyzeScenario(s)
	if err != nil {
		fmt.Fprintf(w, "Error building game: %v\n", err)
		return
	}
	printAnalysis(w, a)
}

// analyzeScenario builds the starting position and tries every attacker
// against every enemy on a throwaway copy of the game
func analyzeScenario(s *engine.Scenario) (*Analysis, error) {
	game, err := engine.NewGameFromScenario(s)
	if err != nil {
		return nil, err
	}

	a := &Analysis{
		Name:    s.Name,
		Height:  s.Height,
		Width:   s.Width,
		Units:   map[engine.Team]int{},
		Health:  map[engine.Team]int{},
		Threats: map[engine.Team][]Threat{},
	}

	units := game.Units()
	for _, u := range units {
		a.Units[u.Team]++
		a.Health[u.Team] += u.Stats.Health
	}

	for _, attacker := range units {
		for _, target := range units {
			if attacker.Team == target.Team {
				continue
			}
			if err := game.Clone().Attack(attacker.Position, target.Position); err != nil {
				continue
			}
			a.Threats[attacker.Team] = append(a.Threats[attacker.Team], Threat{
				Attacker:     attacker.Position,
				AttackerType: attacker.Type,
				Target:       target.Position,
				TargetType:   target.Type,
			})
		}
	}
	return a, nil
}

func printAnalysis(w io.Writer, a *Analysis) {
	fmt.Fprintf(w, "Name: %s\n", a.Name)
	fmt.Fprintf(w, "Board: %d x %d\n", a.Height, a.Width)

	for _, team := range []engine.Team{engine.Powerlifters, engine.Crossfitters} {
		fmt.Fprintf(w, "%s: %d units, %d total health\n", team, a.Units[team], a.Health[team])
	}

	if a.Units[engine.Powerlifters] == 0 || a.Units[engine.Crossfitters] == 0 {
		fmt.Fprintf(w, "⚠️  WARNING: only one team is on the board, the game is already over\n")
	}

	for _, team := range []engine.Team{engine.Powerlifters, engine.Crossfitters} {
		threats := a.Threats[team]
		if len(threats) == 0 {
			fmt.Fprintf(w, "✅ %s have no attack available from the start\n", team)
			continue
		}
		fmt.Fprintf(w, "⚠️  %s can attack %d time(s) from the start:\n", team, len(threats))
		for _, th := range threats {
			fmt.Fprintf(w, "   %s %s -> %s %s\n", th.AttackerType, th.Attacker, th.TargetType, th.Target)
		}
	}
}
