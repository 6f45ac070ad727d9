package mcp

import (
	"fmt"
	"strings"

	"github.com/wricardo/mcp-training/gridcombat/game/engine"
	"github.com/wricardo/mcp-training/gridcombat/game/service"
)

func scenarioLabel(name string) string {
	if name == "" {
		return "empty board"
	}
	return name
}

func formatSessionInfo(info *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nScenario: %s\nCreated: %s\n\n%s",
		info.ID, scenarioLabel(info.Scenario),
		info.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(info.GameState))
}

func formatGameState(state *service.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var result strings.Builder

	result.WriteString(fmt.Sprintf("Board: %dx%d | %s: %d | %s: %d | Commands: %d\n\n",
		state.Height, state.Width,
		engine.Powerlifters, state.UnitCounts[engine.Powerlifters],
		engine.Crossfitters, state.UnitCounts[engine.Crossfitters],
		state.TotalCommands))

	result.WriteString(formatBoard(state.Rows))

	if len(state.Units) > 0 {
		result.WriteString("\nUnits:\n")
		for _, u := range state.Units {
			result.WriteString(fmt.Sprintf("• %s %c %s %s: health %d, ammo %d, range %d, power %d\n",
				u.Position, engine.Glyph(u.Type, u.Team), u.Team, u.Type,
				u.Stats.Health, u.Stats.Ammo, u.Stats.Range, u.Stats.Power))
		}
	}

	if state.GameOver {
		result.WriteString(fmt.Sprintf("\n🏆 GAME OVER: %s win", state.Winner))
	}

	return result.String()
}

// formatBoard renders rows with column indexes on top and row indexes on the left
func formatBoard(rows []string) string {
	if len(rows) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("    ")
	for col := range rows[0] {
		b.WriteString(fmt.Sprintf("%d", col%10))
	}
	b.WriteString("\n")
	for row, line := range rows {
		b.WriteString(fmt.Sprintf("%3d|%s|\n", row, strings.ReplaceAll(line, " ", ".")))
	}
	return b.String()
}

func formatCommandResult(result *service.CommandResult) string {
	var b strings.Builder
	if result.Success {
		b.WriteString(fmt.Sprintf("✅ %s: %s\n", result.Command, result.Message))
		for _, e := range result.Events {
			b.WriteString(fmt.Sprintf("  - [%s] %s\n", e.Type, e.Message))
		}
	} else {
		b.WriteString(fmt.Sprintf("❌ %s rejected (%s): %s\nThe board is unchanged.\n",
			result.Command, result.ErrorKind, result.Message))
	}
	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	result := fmt.Sprintf("Command History (Page %d/%d), Total: %d\n\n",
		history.Page, history.TotalPages, history.TotalCommands)

	if len(history.Commands) == 0 {
		return result + "(no commands)"
	}

	for _, rec := range history.Commands {
		status := "✓"
		if !rec.Success {
			status = "✗ " + rec.ErrorKind
		}
		result += fmt.Sprintf("%d. %s%s %s\n", rec.Number, rec.Command, formatCells(rec.From, rec.To), status)
	}
	return result
}

func formatCells(from, to *engine.GridPoint) string {
	switch {
	case from != nil && to != nil:
		return fmt.Sprintf(" %s -> %s", *from, *to)
	case from != nil:
		return " " + from.String()
	case to != nil:
		return " " + to.String()
	}
	return ""
}

func formatScenarios(scenarios []*service.ScenarioInfo) string {
	if len(scenarios) == 0 {
		return "No scenarios available"
	}
	result := "Available Scenarios:\n\n"
	for _, s := range scenarios {
		result += fmt.Sprintf("• %s\n  %s\n  Board: %dx%d, Units: %d\n\n",
			s.ScenarioID, s.Description, s.Height, s.Width, s.Units)
	}
	return result
}
