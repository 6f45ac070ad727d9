package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/wricardo/mcp-training/gridcombat/game/engine"
	"github.com/wricardo/mcp-training/gridcombat/game/service"
)

var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionAlreadyExists = errors.New("session already exists")
	ErrInvalidSessionID     = errors.New("invalid session ID")
	ErrNilGame              = errors.New("session requires a game")
)

// idBytes random bytes give a 4 character hex ID
const idBytes = 2

// Manager keeps game sessions in memory, keyed by lower-cased ID
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*service.Session
	now      func() time.Time
}

var _ service.SessionManager = (*Manager)(nil)

// NewManager creates an empty session manager
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*service.Session),
		now:      time.Now,
	}
}

func key(id string) string {
	return strings.ToLower(id)
}

// Create registers game under id, or under a fresh random ID when id is empty
func (m *Manager) Create(id string, game *engine.Game, scenario string) (*service.Session, error) {
	if game == nil {
		return nil, ErrNilGame
	}
	if strings.ContainsAny(id, " \t\r\n") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSessionID, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	switch {
	case id == "":
		id = m.unusedID()
	case m.sessions[key(id)] != nil:
		return nil, fmt.Errorf("%w: %s", ErrSessionAlreadyExists, id)
	}

	created := m.now()
	sess := &service.Session{
		ID:             id,
		Game:           game,
		Scenario:       scenario,
		CreatedAt:      created,
		LastAccessedAt: created,
	}
	m.sessions[key(id)] = sess
	return sess, nil
}

func (m *Manager) Get(id string) (*service.Session, error) {
	m.mu.RLock()
	sess := m.sessions[key(id)]
	m.mu.RUnlock()

	if sess == nil {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return sess, nil
}

// List returns every session ordered by creation time, then ID
func (m *Manager) List() []*service.Session {
	m.mu.RLock()
	list := make([]*service.Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		list = append(list, sess)
	}
	m.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return list
}

func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sessions[key(id)] == nil {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(m.sessions, key(id))
	return nil
}

// UpdateLastAccessed marks the session as used now
func (m *Manager) UpdateLastAccessed(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess := m.sessions[key(id)]
	if sess == nil {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	sess.LastAccessedAt = m.now()
	return nil
}

// CleanupExpiredSessions drops sessions idle for longer than maxAge and
// returns their IDs in sorted order
func (m *Manager) CleanupExpiredSessions(maxAge time.Duration) []string {
	cutoff := m.now().Add(-maxAge)

	m.mu.Lock()
	var removed []string
	for k, sess := range m.sessions {
		if sess.LastAccessedAt.Before(cutoff) {
			removed = append(removed, sess.ID)
			delete(m.sessions, k)
		}
	}
	m.mu.Unlock()

	sort.Strings(removed)
	return removed
}

func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// unusedID draws random IDs until one is free. m.mu must be held for writing.
func (m *Manager) unusedID() string {
	buf := make([]byte, idBytes)
	for {
		if _, err := rand.Read(buf); err != nil {
			panic(fmt.Sprintf("session: reading random bytes: %v", err))
		}
		id := hex.EncodeToString(buf)
		if m.sessions[id] == nil {
			return id
		}
	}
}
