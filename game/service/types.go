package service

import (
	"time"

	"github.com/wricardo/mcp-training/gridcombat/game/engine"
)

// Command names used in results and history
const (
	CommandAdd    = "add"
	CommandMove   = "move"
	CommandAttack = "attack"
	CommandReload = "reload"
)

// Event types emitted by commands
const (
	EventPlaced  = "placed"
	EventMove    = "move"
	EventAttack  = "attack"
	EventDamage  = "damage"
	EventHeal    = "heal"
	EventKill    = "kill"
	EventReload  = "reload"
	EventVictory = "victory"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string     `json:"id"`
	Scenario       string     `json:"scenario"`
	CreatedAt      time.Time  `json:"created_at"`
	LastAccessedAt time.Time  `json:"last_accessed_at"`
	GameState      *GameState `json:"game_state"`
}

// GameState is a serializable snapshot of a game
type GameState struct {
	Height        int                 `json:"height"`
	Width         int                 `json:"width"`
	Rows          []string            `json:"rows"`
	Units         []engine.Placement  `json:"units"`
	UnitCounts    map[engine.Team]int `json:"unit_counts"`
	GameOver      bool                `json:"game_over"`
	Winner        engine.Team         `json:"winner,omitempty"`
	TotalCommands int                 `json:"total_commands"`
}

// AddUnitRequest describes a character to place on the board
type AddUnitRequest struct {
	Type     engine.CharacterType `json:"type"`
	Team     engine.Team          `json:"team"`
	Position engine.GridPoint     `json:"position"`
	Health   int                  `json:"health"`
	Ammo     int                  `json:"ammo"`
	Range    int                  `json:"range"`
	Power    int                  `json:"power"`
}

// CommandResult contains the result of a game command. A rejected command
// has Success false and ErrorKind set; the game is unchanged.
type CommandResult struct {
	Success   bool        `json:"success"`
	Command   string      `json:"command"`
	ErrorKind string      `json:"error_kind,omitempty"`
	Message   string      `json:"message"`
	Events    []GameEvent `json:"events,omitempty"`
	GameState *GameState  `json:"game_state"`
}

// GameEvent represents something that happened during a command
type GameEvent struct {
	Type      string               `json:"type"`
	Message   string               `json:"message"`
	Timestamp time.Time            `json:"timestamp"`
	Position  *engine.GridPoint    `json:"position,omitempty"`
	Unit      engine.CharacterType `json:"unit,omitempty"`
	Team      engine.Team          `json:"team,omitempty"`
	Amount    int                  `json:"amount,omitempty"`
}

// CommandRecord is one entry of a session's command history
type CommandRecord struct {
	Number    int               `json:"number"`
	Command   string            `json:"command"`
	From      *engine.GridPoint `json:"from,omitempty"`
	To        *engine.GridPoint `json:"to,omitempty"`
	Success   bool              `json:"success"`
	ErrorKind string            `json:"error_kind,omitempty"`
	Timestamp int64             `json:"timestamp"`
}

// HistoryOptions configures command history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated command history
type HistoryResponse struct {
	Commands      []CommandRecord `json:"commands"`
	TotalCommands int             `json:"total_commands"`
	Page          int             `json:"page"`
	PageSize      int             `json:"page_size"`
	TotalPages    int             `json:"total_pages"`
	HasNext       bool            `json:"has_next"`
	HasPrevious   bool            `json:"has_previous"`
}

// ScenarioInfo provides information about a scenario file
type ScenarioInfo struct {
	Filename    string `json:"filename"`
	ScenarioID  string `json:"scenario_id"` // The identifier to use for session creation
	Name        string `json:"name"`
	Description string `json:"description"`
	Height      int    `json:"height"`
	Width       int    `json:"width"`
	Units       int    `json:"units"`
}
