package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/wricardo/mcp-training/gridcombat/game/engine"
	"github.com/wricardo/mcp-training/gridcombat/game/service"
)

const borderGlyph = "*"

// PrintBoard writes the rendered rows inside a border of asterisks
func PrintBoard(w io.Writer, rows []string) {
	width := 0
	if len(rows) > 0 {
		width = len(rows[0])
	}
	border := strings.Repeat(borderGlyph, width+2)

	fmt.Fprintln(w, border)
	for _, row := range rows {
		fmt.Fprintln(w, borderGlyph+row+borderGlyph)
	}
	fmt.Fprintln(w, border)
}

// PrintResult writes the outcome of a command followed by the board
func PrintResult(w io.Writer, result *service.CommandResult) {
	if !result.Success {
		fmt.Fprintf(w, "%s rejected (%s): %s\n", result.Command, result.ErrorKind, result.Message)
		return
	}

	for _, e := range result.Events {
		fmt.Fprintf(w, "  %s\n", e.Message)
	}
	if result.GameState != nil {
		PrintBoard(w, result.GameState.Rows)
		if result.GameState.GameOver {
			fmt.Fprintf(w, "Game over, %s win\n", result.GameState.Winner)
		}
	}
}

// PrintUnits writes one line per unit in row-major order
func PrintUnits(w io.Writer, units []engine.Placement) {
	if len(units) == 0 {
		fmt.Fprintln(w, "No units on the board")
		return
	}
	fmt.Fprintf(w, "%-8s %-5s %-7s %-12s %3s %4s %5s %5s\n",
		"CELL", "GLYPH", "TYPE", "TEAM", "HP", "AMMO", "RANGE", "POWER")
	for _, u := range units {
		fmt.Fprintf(w, "%-8s %-5c %-7s %-12s %3d %4d %5d %5d\n",
			u.Position, engine.Glyph(u.Type, u.Team), u.Type, u.Team,
			u.Stats.Health, u.Stats.Ammo, u.Stats.Range, u.Stats.Power)
	}
}

// PrintStatus writes a short summary of a session's game
func PrintStatus(w io.Writer, sessionID string, state *service.GameState) {
	fmt.Fprintf(w, "Session %s | Board %dx%d | Commands: %d\n",
		sessionID, state.Height, state.Width, state.TotalCommands)
	fmt.Fprintf(w, "%s: %d units | %s: %d units\n",
		engine.Powerlifters, state.UnitCounts[engine.Powerlifters],
		engine.Crossfitters, state.UnitCounts[engine.Crossfitters])
	if state.GameOver {
		fmt.Fprintf(w, "Game over, %s win\n", state.Winner)
	}
}

// PrintHistory writes one page of the command history
func PrintHistory(w io.Writer, history *service.HistoryResponse) {
	fmt.Fprintf(w, "Command History (Page %d/%d), Total: %d\n",
		history.Page, history.TotalPages, history.TotalCommands)
	for _, rec := range history.Commands {
		status := "ok"
		if !rec.Success {
			status = "rejected: " + rec.ErrorKind
		}
		fmt.Fprintf(w, "%3d. %s%s [%s]\n", rec.Number, rec.Command, formatCells(rec.From, rec.To), status)
	}
}

// PrintSessions lists sessions and marks the active one
func PrintSessions(w io.Writer, sessions []*service.SessionInfo, current string) {
	if len(sessions) == 0 {
		fmt.Fprintln(w, "No sessions")
		return
	}
	for _, s := range sessions {
		marker := " "
		if strings.EqualFold(s.ID, current) {
			marker = "*"
		}
		scenario := s.Scenario
		if scenario == "" {
			scenario = "(empty board)"
		}
		status := "in progress"
		if s.GameState.GameOver {
			status = fmt.Sprintf("won by %s", s.GameState.Winner)
		}
		fmt.Fprintf(w, "%s %s  %-16s %2d units, %s\n", marker, s.ID, scenario, len(s.GameState.Units), status)
	}
}

// PrintScenarios lists the available scenarios
func PrintScenarios(w io.Writer, scenarios []*service.ScenarioInfo) {
	if len(scenarios) == 0 {
		fmt.Fprintln(w, "No scenarios found")
		return
	}
	for _, s := range scenarios {
		fmt.Fprintf(w, "%-16s %dx%d, %d units\n  %s\n", s.ScenarioID, s.Height, s.Width, s.Units, s.Description)
	}
}

// PrintHelp writes the command reference
func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `Commands:
  new <height> <width>                  start a session on an empty board
  load [scenario]                       start a session from a scenario
  add <type> <team> <row> <col> <health> <ammo> <range> <power>
                                        place a unit (types: soldier, sniper, medic;
                                        teams: powerlifters, crossfitters)
  move <row> <col> <row> <col>          move a unit
  attack <row> <col> <row> <col>        attack a cell
  reload <row> <col>                    reload a unit
  board                                 show the board
  units                                 list units and their stats
  status                                show unit counts and winner
  history [page] [limit]                show past commands
  fork                                  copy the session and switch to the copy
  save <name> [description]             save the board as a scenario file
  switch <session>                      change the active session
  sessions                              list sessions
  scenarios                             list scenarios
  quit                                  leave
Upper-case glyphs are powerlifters: S/s soldier, N/n sniper, M/m medic.
`)
}

func formatCells(from, to *engine.GridPoint) string {
	var b strings.Builder
	if from != nil {
		b.WriteString(" " + from.String())
	}
	if to != nil {
		if from != nil {
			b.WriteString(" ->")
		}
		b.WriteString(" " + to.String())
	}
	return b.String()
}
