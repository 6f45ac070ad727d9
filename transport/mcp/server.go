package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/wricardo/mcp-training/gridcombat/game/engine"
	"github.com/wricardo/mcp-training/gridcombat/game/service"
)

// Server exposes a GameService as MCP tools
type Server struct {
	svc       service.GameService
	logger    zerolog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates an MCP server backed by svc
func NewServer(svc service.GameService, version string, logger zerolog.Logger) *Server {
	s := &Server{
		svc:    svc,
		logger: logger.With().Str("component", "mcp").Logger(),
	}

	s.mcpServer = server.NewMCPServer(
		"Grid Combat",
		version,
		server.WithToolCapabilities(true),
		server.WithInstructions(`Grid Combat - MCP Interface

Two teams, powerlifters and crossfitters, fight on a rectangular grid.
A team wins when it is the only one with units left on the board.

AVAILABLE TOOLS:
- list_scenarios: List scenario files that can start a session
- create_session: Start a session from a scenario
- new_session: Start a session on an empty board
- list_sessions / get_session: Inspect sessions
- fork_session: Copy a session to try moves without touching the original
- add_unit: Place a soldier, sniper or medic
- move / attack / reload: Play a command; rejected commands leave the board unchanged
- game_state: Board, units and winner
- history: Past commands with pagination
- game_rules: Full rules of every unit

Coordinates are zero-based (row, col) with row 0 at the top.`),
	)

	s.registerTools()
	return s
}

// MCPServer returns the underlying mcp-go server
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves MCP over stdin/stdout until the input closes
func (s *Server) ServeStdio() error {
	s.logger.Info().Msg("serving MCP over stdio")
	return server.ServeStdio(s.mcpServer)
}

func sessionProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

func intProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": description,
	}
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	// Scenarios and sessions
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_scenarios",
		Description: "List the scenarios available for create_session",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListScenarios)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session from a scenario (default scenario when omitted)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"scenario": map[string]interface{}{
					"type":        "string",
					"description": "Scenario ID from list_scenarios (optional)",
				},
			},
		},
	}, s.handleCreateSession)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "new_session",
		Description: "Create a new game session with an empty board",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"height": intProperty("Number of rows"),
				"width":  intProperty("Number of columns"),
			},
			Required: []string{"height", "width"},
		},
	}, s.handleNewSession)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListSessions)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, s.handleGetSession)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "fork_session",
		Description: "Copy a session into a new independent session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, s.handleForkSession)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "save_scenario",
		Description: "Save the current board of a session as a scenario file usable by create_session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Scenario ID to write (file name without .json)",
				},
				"description": map[string]interface{}{
					"type":        "string",
					"description": "Scenario description (optional)",
				},
			},
			Required: []string{"session_id", "name"},
		},
	}, s.handleSaveScenario)

	// Game commands
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "add_unit",
		Description: "Place a new unit on an empty cell",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"type": map[string]interface{}{
					"type":        "string",
					"enum":        []string{string(engine.Soldier), string(engine.Sniper), string(engine.Medic)},
					"description": "Unit type",
				},
				"team": map[string]interface{}{
					"type":        "string",
					"enum":        []string{string(engine.Powerlifters), string(engine.Crossfitters)},
					"description": "Team",
				},
				"row":    intProperty("Row of the cell"),
				"col":    intProperty("Column of the cell"),
				"health": intProperty("Starting health, at least 1"),
				"ammo":   intProperty("Starting ammo"),
				"range":  intProperty("Attack range"),
				"power":  intProperty("Attack power"),
			},
			Required: []string{"session_id", "type", "team", "row", "col", "health", "ammo", "range", "power"},
		},
	}, s.handleAddUnit)

	pairProperties := map[string]interface{}{
		"session_id": sessionProperty(),
		"from_row":   intProperty("Row of the acting unit"),
		"from_col":   intProperty("Column of the acting unit"),
		"to_row":     intProperty("Target row"),
		"to_col":     intProperty("Target column"),
	}
	pairRequired := []string{"session_id", "from_row", "from_col", "to_row", "to_col"}

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Move a unit to an empty cell within its movement range",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: pairProperties,
			Required:   pairRequired,
		},
	}, s.handleMove)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "attack",
		Description: "Attack a cell with the unit at from_row/from_col",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: pairProperties,
			Required:   pairRequired,
		},
	}, s.handleAttack)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "reload",
		Description: "Reload the ammo of a unit",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"row":        intProperty("Row of the unit"),
				"col":        intProperty("Column of the unit"),
			},
			Required: []string{"session_id", "row", "col"},
		},
	}, s.handleReload)

	// Queries
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the board, units and winner of a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, s.handleGameState)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "history",
		Description: "Get the command history of a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"page":       intProperty("Page number (default 1)"),
				"limit":      intProperty("Commands per page (default 20, max 100)"),
				"order": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"asc", "desc"},
					"description": "Sort order (default desc)",
				},
			},
			Required: []string{"session_id"},
		},
	}, s.handleHistory)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_rules",
		Description: "Get the complete rules of the game",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleGameRules)
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return map[string]interface{}{}
	}
	return args
}

func stringArg(args map[string]interface{}, name string) string {
	v, _ := args[name].(string)
	return v
}

// intArg reads a required integer; JSON numbers arrive as float64
func intArg(args map[string]interface{}, name string) (int, error) {
	switch v := args[name].(type) {
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("%s must be a whole number", name)
		}
		return int(v), nil
	case int:
		return v, nil
	case nil:
		return 0, fmt.Errorf("missing required argument %s", name)
	}
	return 0, fmt.Errorf("%s must be a number", name)
}

func intArgs(args map[string]interface{}, names ...string) ([]int, error) {
	values := make([]int, len(names))
	for i, name := range names {
		v, err := intArg(args, name)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

func (s *Server) handleListScenarios(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	scenarios, err := s.svc.ListScenarios(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatScenarios(scenarios)), nil
}

func (s *Server) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	info, err := s.svc.CreateSession(ctx, stringArg(args, "scenario"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatSessionInfo(info)), nil
}

func (s *Server) handleNewSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dims, err := intArgs(arguments(request), "height", "width")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	info, err := s.svc.NewSession(ctx, dims[0], dims[1])
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatSessionInfo(info)), nil
}

func (s *Server) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions, err := s.svc.ListSessions(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(sessions) == 0 {
		return mcp.NewToolResultText("No active sessions"), nil
	}

	var b strings.Builder
	b.WriteString("Active Sessions:\n\n")
	for _, info := range sessions {
		status := "in progress"
		if info.GameState.GameOver {
			status = fmt.Sprintf("won by %s", info.GameState.Winner)
		}
		b.WriteString(fmt.Sprintf("• %s (%s) %dx%d, %d units, %s\n",
			info.ID, scenarioLabel(info.Scenario), info.GameState.Height, info.GameState.Width,
			len(info.GameState.Units), status))
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	info, err := s.svc.GetSession(ctx, stringArg(arguments(request), "session_id"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatSessionInfo(info)), nil
}

func (s *Server) handleForkSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	parentID := stringArg(arguments(request), "session_id")
	info, err := s.svc.ForkSession(ctx, parentID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Forked %s\n\n%s", parentID, formatSessionInfo(info))), nil
}

func (s *Server) handleSaveScenario(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	info, err := s.svc.SaveScenario(ctx, stringArg(args, "session_id"), stringArg(args, "name"), stringArg(args, "description"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Saved %s\n\n%s", info.Filename, formatScenarios([]*service.ScenarioInfo{info}))), nil
}

func (s *Server) handleAddUnit(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	charType, err := engine.ParseCharacterType(stringArg(args, "type"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	team, err := engine.ParseTeam(stringArg(args, "team"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	nums, err := intArgs(args, "row", "col", "health", "ammo", "range", "power")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.svc.AddUnit(ctx, stringArg(args, "session_id"), service.AddUnitRequest{
		Type:     charType,
		Team:     team,
		Position: engine.Point(nums[0], nums[1]),
		Health:   nums[2],
		Ammo:     nums[3],
		Range:    nums[4],
		Power:    nums[5],
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatCommandResult(result)), nil
}

func (s *Server) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.pairCommand(ctx, request, s.svc.Move)
}

func (s *Server) handleAttack(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.pairCommand(ctx, request, s.svc.Attack)
}

func (s *Server) pairCommand(ctx context.Context, request mcp.CallToolRequest,
	run func(context.Context, string, engine.GridPoint, engine.GridPoint) (*service.CommandResult, error)) (*mcp.CallToolResult, error) {
	args := arguments(request)
	nums, err := intArgs(args, "from_row", "from_col", "to_row", "to_col")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := run(ctx, stringArg(args, "session_id"), engine.Point(nums[0], nums[1]), engine.Point(nums[2], nums[3]))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatCommandResult(result)), nil
}

func (s *Server) handleReload(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	nums, err := intArgs(args, "row", "col")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := s.svc.Reload(ctx, stringArg(args, "session_id"), engine.Point(nums[0], nums[1]))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatCommandResult(result)), nil
}

func (s *Server) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state, err := s.svc.GetGameState(ctx, stringArg(arguments(request), "session_id"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatGameState(state)), nil
}

func (s *Server) handleHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	opts := service.HistoryOptions{Order: stringArg(args, "order")}
	if page, ok := args["page"].(float64); ok {
		opts.Page = int(page)
	}
	if limit, ok := args["limit"].(float64); ok {
		opts.Limit = int(limit)
	}

	history, err := s.svc.GetHistory(ctx, stringArg(args, "session_id"), opts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatHistory(history)), nil
}

func (s *Server) handleGameRules(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rules := fmt.Sprintf(`Grid Combat - Complete Rules

BOARD:
• Rectangular grid, cells addressed as (row, col) starting at (0,0) top-left
• At most one unit per cell
• Distance between cells is |row1-row2| + |col1-col2|

TEAMS:
• powerlifters (upper-case glyphs) and crossfitters (lower-case glyphs)
• A team wins when the other team has no units left

UNITS (glyph, movement range, reload amount):
• Soldier  S/s  moves %d, reloads %d
  Attacks cells in its own row or column within range. The target takes full
  power; every enemy within ceil(range/3) of the target takes ceil(power/2).
  Costs 1 ammo. The target cell may be empty.
• Sniper   N/n  moves %d, reloads %d
  Attacks enemies between ceil(range/2) and range cells away. Every %drd
  shot deals double damage. Costs 1 ammo.
• Medic    M/m  moves %d, reloads %d
  Heals a friendly unit by power for free, or damages an enemy for 1 ammo.
  Cannot target itself or an empty cell.

COMMANDS:
• move: destination must be empty and within movement range
• attack: checks run in the order range, ammo, target
• reload: adds the unit's reload amount to its ammo
• Units reaching 0 health are removed from the board
• Rejected commands change nothing and report one of:
  IllegalArgument, IllegalCell, CellEmpty, CellOccupied, MoveTooFar,
  OutOfRange, OutOfAmmo, IllegalTarget

TIPS:
• Use fork_session to try a line of play without losing your position
• game_state lists every unit with health and ammo`,
		engine.SoldierMovementRange, engine.SoldierReloadAmount,
		engine.SniperMovementRange, engine.SniperReloadAmount, engine.ShotCadence,
		engine.MedicMovementRange, engine.MedicReloadAmount)

	return mcp.NewToolResultText(rules), nil
}
