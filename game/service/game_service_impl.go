package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/wricardo/mcp-training/gridcombat/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions  SessionManager
	scenarios ScenarioManager
	logger    zerolog.Logger
	mu        sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, scenarios ScenarioManager, logger zerolog.Logger) GameService {
	return &gameServiceImpl{
		sessions:  sessions,
		scenarios: scenarios,
		logger:    logger.With().Str("component", "game_service").Logger(),
	}
}

// CreateSession creates a new session from a scenario. An empty name uses the default scenario.
func (s *gameServiceImpl) CreateSession(ctx context.Context, scenarioName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var scenario *engine.Scenario
	if scenarioName != "" {
		var err error
		scenario, err = s.scenarios.LoadScenario(scenarioName)
		if err != nil {
			if errors.Is(err, ErrScenarioNotFound) {
				available, listErr := s.scenarios.ListScenarios()
				if listErr == nil && len(available) > 0 {
					ids := make([]string, 0, len(available))
					for _, info := range available {
						ids = append(ids, info.ScenarioID)
					}
					return nil, fmt.Errorf("scenario '%s' not found. Available scenarios: %v: %w", scenarioName, ids, err)
				}
			}
			return nil, fmt.Errorf("failed to load scenario %s: %w", scenarioName, err)
		}
	} else {
		scenario = s.scenarios.GetDefault()
		scenarioName = scenario.Name
	}

	game, err := engine.NewGameFromScenario(scenario)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}

	sess, err := s.sessions.Create("", game, scenarioName)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.Info().Str("session", sess.ID).Str("scenario", scenarioName).Msg("session created")
	return s.sessionInfo(sess), nil
}

// NewSession creates a session with an empty board
func (s *gameServiceImpl) NewSession(ctx context.Context, height, width int) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, err := engine.NewGame(height, width)
	if err != nil {
		return nil, fmt.Errorf("invalid board %dx%d: %w", height, width, err)
	}

	sess, err := s.sessions.Create("", game, "")
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.Info().Str("session", sess.ID).Int("height", height).Int("width", width).Msg("empty session created")
	return s.sessionInfo(sess), nil
}

// GetSession retrieves session information. It takes the write lock because
// it touches the session's access time.
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return s.sessionInfo(sess), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return err
	}
	s.logger.Info().Str("session", sessionID).Msg("session deleted")
	return nil
}

// ForkSession copies a session's game into a new, independent session
func (s *gameServiceImpl) ForkSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	parent, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	fork, err := s.sessions.Create("", parent.Game.Clone(), parent.Scenario)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	fork.History = append([]CommandRecord(nil), parent.History...)

	s.logger.Info().Str("session", fork.ID).Str("parent", parent.ID).Msg("session forked")
	return s.sessionInfo(fork), nil
}

// AddUnit places a new character on the board
func (s *gameServiceImpl) AddUnit(ctx context.Context, sessionID string, req AddUnitRequest) (*CommandResult, error) {
	return s.execute(sessionID, CommandAdd, nil, &req.Position, func(game *engine.Game) error {
		c, err := engine.NewCharacter(req.Type, req.Team, req.Health, req.Ammo, req.Range, req.Power)
		if err != nil {
			return err
		}
		return game.AddCharacter(req.Position, c)
	})
}

// Move relocates the character at src to dst
func (s *gameServiceImpl) Move(ctx context.Context, sessionID string, src, dst engine.GridPoint) (*CommandResult, error) {
	return s.execute(sessionID, CommandMove, &src, &dst, func(game *engine.Game) error {
		return game.Move(src, dst)
	})
}

// Attack lets the character at src attack dst
func (s *gameServiceImpl) Attack(ctx context.Context, sessionID string, src, dst engine.GridPoint) (*CommandResult, error) {
	return s.execute(sessionID, CommandAttack, &src, &dst, func(game *engine.Game) error {
		return game.Attack(src, dst)
	})
}

// Reload refills the ammo of the character at the given cell
func (s *gameServiceImpl) Reload(ctx context.Context, sessionID string, at engine.GridPoint) (*CommandResult, error) {
	return s.execute(sessionID, CommandReload, &at, nil, func(game *engine.Game) error {
		return game.Reload(at)
	})
}

// GetGameState returns the current state of a session's game
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return buildGameState(sess), nil
}

// GetHistory returns paginated command history
func (s *gameServiceImpl) GetHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	history := sess.History
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	switch opts.Order = strings.ToLower(strings.TrimSpace(opts.Order)); opts.Order {
	case "":
		opts.Order = OrderDesc
	case OrderAsc, OrderDesc:
	default:
		return nil, fmt.Errorf("%w: %q, use %s or %s", ErrInvalidHistoryOrder, opts.Order, OrderAsc, OrderDesc)
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	commands := []CommandRecord{}
	if start < total {
		if opts.Order == OrderDesc {
			// Most recent first
			for i := total - 1 - start; i >= total-end; i-- {
				commands = append(commands, history[i])
			}
		} else {
			commands = append(commands, history[start:end]...)
		}
	}

	return &HistoryResponse{
		Commands:      commands,
		TotalCommands: total,
		Page:          opts.Page,
		PageSize:      opts.Limit,
		TotalPages:    totalPages,
		HasNext:       opts.Page < totalPages,
		HasPrevious:   opts.Page > 1,
	}, nil
}

// ListScenarios returns available scenarios
func (s *gameServiceImpl) ListScenarios(ctx context.Context) ([]*ScenarioInfo, error) {
	return s.scenarios.ListScenarios()
}

// LoadScenario loads a specific scenario. The caller owns the returned copy.
func (s *gameServiceImpl) LoadScenario(ctx context.Context, name string) (*engine.Scenario, error) {
	scenario, err := s.scenarios.LoadScenario(name)
	if err != nil {
		return nil, err
	}
	return scenario.Clone(), nil
}

// SaveScenario writes the current position of a session as a scenario file
func (s *gameServiceImpl) SaveScenario(ctx context.Context, sessionID, name, description string) (*ScenarioInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSuffix(strings.TrimSpace(name), ".json")
	if description == "" {
		description = fmt.Sprintf("Saved from session %s", sess.ID)
	}
	scenario := engine.ScenarioFromGame(sess.Game, name, description)
	if err := s.scenarios.SaveScenario(name, scenario); err != nil {
		return nil, err
	}

	s.sessions.UpdateLastAccessed(sessionID)
	s.logger.Info().Str("session", sess.ID).Str("scenario", name).Int("units", len(scenario.Units)).Msg("scenario saved")
	return &ScenarioInfo{
		Filename:    engine.ScenarioFileName(name),
		ScenarioID:  name,
		Name:        scenario.Name,
		Description: scenario.Description,
		Height:      scenario.Height,
		Width:       scenario.Width,
		Units:       len(scenario.Units),
	}, nil
}

// execute runs one game command against a session, records it in the
// history and derives the resulting events. Engine failures are reported in
// the result; only session lookup failures are returned as errors.
func (s *gameServiceImpl) execute(sessionID, command string, from, to *engine.GridPoint, run func(game *engine.Game) error) (*CommandResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	s.sessions.UpdateLastAccessed(sessionID)

	_, wasOver := sess.Game.IsOver()
	before := indexUnits(sess.Game.Units())

	runErr := run(sess.Game)

	record := CommandRecord{
		Number:    len(sess.History) + 1,
		Command:   command,
		From:      from,
		To:        to,
		Success:   runErr == nil,
		Timestamp: time.Now().Unix(),
	}

	log := s.logger.With().
		Str("session", sess.ID).
		Str("command", command).
		Int("number", record.Number).
		Logger()

	result := &CommandResult{
		Success: runErr == nil,
		Command: command,
	}

	if runErr != nil {
		kind := engine.KindOf(runErr)
		record.ErrorKind = kind.String()
		result.ErrorKind = kind.String()
		result.Message = runErr.Error()
		log.Info().Str("error_kind", kind.String()).Err(runErr).Msg("command rejected")
	} else {
		after := indexUnits(sess.Game.Units())
		result.Events = diffEvents(command, from, to, before, after)
		if winner, over := sess.Game.IsOver(); command == CommandAttack && over && !wasOver {
			result.Events = append(result.Events, GameEvent{
				Type:      EventVictory,
				Message:   fmt.Sprintf("%s win: no enemies left on the board", winner),
				Timestamp: time.Now(),
				Team:      winner,
			})
		}
		result.Message = summarize(command, result.Events)
		log.Debug().Int("events", len(result.Events)).Msg("command executed")
	}

	sess.History = append(sess.History, record)
	result.GameState = buildGameState(sess)
	return result, nil
}

// sessionInfo converts a session into its public view
func (s *gameServiceImpl) sessionInfo(sess *Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		Scenario:       sess.Scenario,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      buildGameState(sess),
	}
}

func buildGameState(sess *Session) *GameState {
	game := sess.Game
	units := game.Units()
	counts := map[engine.Team]int{
		engine.Powerlifters: 0,
		engine.Crossfitters: 0,
	}
	for _, u := range units {
		counts[u.Team]++
	}
	winner, over := game.IsOver()
	return &GameState{
		Height:        game.Height(),
		Width:         game.Width(),
		Rows:          game.Rows(),
		Units:         units,
		UnitCounts:    counts,
		GameOver:      over,
		Winner:        winner,
		TotalCommands: len(sess.History),
	}
}

func indexUnits(units []engine.Placement) map[engine.GridPoint]engine.Placement {
	index := make(map[engine.GridPoint]engine.Placement, len(units))
	for _, u := range units {
		index[u.Position] = u
	}
	return index
}

// diffEvents compares the board before and after a successful command
func diffEvents(command string, from, to *engine.GridPoint, before, after map[engine.GridPoint]engine.Placement) []GameEvent {
	now := time.Now()
	events := []GameEvent{}

	switch command {
	case CommandAdd:
		if u, ok := after[*to]; ok {
			events = append(events, GameEvent{
				Type:      EventPlaced,
				Message:   fmt.Sprintf("%s %s placed at %s", u.Team, u.Type, *to),
				Timestamp: now,
				Position:  to,
				Unit:      u.Type,
				Team:      u.Team,
			})
		}
		return events

	case CommandMove:
		u := after[*to]
		return append(events, GameEvent{
			Type:      EventMove,
			Message:   fmt.Sprintf("%s %s moved from %s to %s", u.Team, u.Type, *from, *to),
			Timestamp: now,
			Position:  to,
			Unit:      u.Type,
			Team:      u.Team,
		})

	case CommandReload:
		b, a := before[*from], after[*from]
		return append(events, GameEvent{
			Type:      EventReload,
			Message:   fmt.Sprintf("%s %s at %s reloaded to %d ammo", a.Team, a.Type, *from, a.Stats.Ammo),
			Timestamp: now,
			Position:  from,
			Unit:      a.Type,
			Team:      a.Team,
			Amount:    a.Stats.Ammo - b.Stats.Ammo,
		})
	}

	attacker := before[*from]
	events = append(events, GameEvent{
		Type:      EventAttack,
		Message:   fmt.Sprintf("%s %s at %s attacked %s", attacker.Team, attacker.Type, *from, *to),
		Timestamp: now,
		Position:  to,
		Unit:      attacker.Type,
		Team:      attacker.Team,
	})

	points := make([]engine.GridPoint, 0, len(before))
	for p := range before {
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Less(points[j]) })

	for _, p := range points {
		b := before[p]
		pos := p
		a, alive := after[p]
		switch {
		case !alive:
			events = append(events, GameEvent{
				Type:      EventKill,
				Message:   fmt.Sprintf("%s %s at %s was killed", b.Team, b.Type, p),
				Timestamp: now,
				Position:  &pos,
				Unit:      b.Type,
				Team:      b.Team,
				Amount:    b.Stats.Health,
			})
		case a.Stats.Health < b.Stats.Health:
			events = append(events, GameEvent{
				Type:      EventDamage,
				Message:   fmt.Sprintf("%s %s at %s took %d damage", b.Team, b.Type, p, b.Stats.Health-a.Stats.Health),
				Timestamp: now,
				Position:  &pos,
				Unit:      b.Type,
				Team:      b.Team,
				Amount:    b.Stats.Health - a.Stats.Health,
			})
		case a.Stats.Health > b.Stats.Health:
			events = append(events, GameEvent{
				Type:      EventHeal,
				Message:   fmt.Sprintf("%s %s at %s healed for %d", b.Team, b.Type, p, a.Stats.Health-b.Stats.Health),
				Timestamp: now,
				Position:  &pos,
				Unit:      b.Type,
				Team:      b.Team,
				Amount:    a.Stats.Health - b.Stats.Health,
			})
		}
	}
	return events
}

// summarize builds the one-line message of a successful command
func summarize(command string, events []GameEvent) string {
	if len(events) == 0 {
		return fmt.Sprintf("%s succeeded", command)
	}
	msg := events[0].Message
	kills := 0
	for _, e := range events {
		if e.Type == EventKill {
			kills++
		}
	}
	if kills > 0 {
		msg = fmt.Sprintf("%s (%d killed)", msg, kills)
	}
	return msg
}
