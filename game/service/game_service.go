package service

import (
	"context"
	"errors"
	"time"

	"github.com/wricardo/mcp-training/gridcombat/game/engine"
)

var (
	ErrScenarioNotFound    = errors.New("scenario not found")
	ErrInvalidScenario     = errors.New("invalid scenario")
	ErrInvalidHistoryOrder = errors.New("invalid history order")
)

// History orders accepted by GetHistory
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, scenarioName string) (*SessionInfo, error)
	NewSession(ctx context.Context, height, width int) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error
	ForkSession(ctx context.Context, sessionID string) (*SessionInfo, error)

	// Game Operations
	AddUnit(ctx context.Context, sessionID string, req AddUnitRequest) (*CommandResult, error)
	Move(ctx context.Context, sessionID string, src, dst engine.GridPoint) (*CommandResult, error)
	Attack(ctx context.Context, sessionID string, src, dst engine.GridPoint) (*CommandResult, error)
	Reload(ctx context.Context, sessionID string, at engine.GridPoint) (*CommandResult, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*GameState, error)
	GetHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Scenarios
	ListScenarios(ctx context.Context) ([]*ScenarioInfo, error)
	LoadScenario(ctx context.Context, name string) (*engine.Scenario, error)
	SaveScenario(ctx context.Context, sessionID, name, description string) (*ScenarioInfo, error)
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, game *engine.Game, scenario string) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// ScenarioManager handles scenario loading
type ScenarioManager interface {
	LoadScenario(name string) (*engine.Scenario, error)
	ListScenarios() ([]*ScenarioInfo, error)
	GetDefault() *engine.Scenario
	SaveScenario(name string, scenario *engine.Scenario) error
}

// Session represents an active game session
type Session struct {
	ID             string
	Game           *engine.Game
	Scenario       string
	History        []CommandRecord
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
