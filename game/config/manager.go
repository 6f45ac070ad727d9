package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/wricardo/mcp-training/gridcombat/game/engine"
	"github.com/wricardo/mcp-training/gridcombat/game/service"
)

// DefaultScenarioName is tried first when picking the default scenario
const DefaultScenarioName = "skirmish"

// Manager handles scenario loading and caching
type Manager struct {
	fs              afero.Fs
	configDir       string
	defaultScenario *engine.Scenario
	defaultName     string
	scenarios       map[string]*engine.Scenario
	mu              sync.RWMutex
}

var _ service.ScenarioManager = (*Manager)(nil)

// NewManager creates a new scenario manager over configDir on the OS filesystem
func NewManager(configDir string) (*Manager, error) {
	return NewManagerFs(afero.NewOsFs(), configDir)
}

// NewManagerFs creates a scenario manager reading configDir from fs
func NewManagerFs(fs afero.Fs, configDir string) (*Manager, error) {
	info, err := fs.Stat(configDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config directory does not exist: %s", configDir)
		}
		return nil, fmt.Errorf("failed to stat config directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("config path is not a directory: %s", configDir)
	}

	m := &Manager{
		fs:        fs,
		configDir: configDir,
		scenarios: make(map[string]*engine.Scenario),
	}
	m.loadDefaultScenario()
	return m, nil
}

// Dir returns the directory scenarios are read from
func (m *Manager) Dir() string {
	return m.configDir
}

// LoadScenario loads a scenario by name, with or without the .json extension
func (m *Manager) LoadScenario(name string) (*engine.Scenario, error) {
	s, err := m.cached(strings.TrimSuffix(name, ".json"))
	if err != nil {
		return nil, err
	}
	return s.Clone(), nil
}

// cached returns the shared cache entry for name, reading the file on a miss.
// Callers must not hand the result out without cloning it.
func (m *Manager) cached(name string) (*engine.Scenario, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("%w: %q", service.ErrScenarioNotFound, name)
	}

	m.mu.RLock()
	if s, exists := m.scenarios[name]; exists {
		m.mu.RUnlock()
		return s, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if s, exists := m.scenarios[name]; exists {
		return s, nil
	}

	fileName := engine.ScenarioFileName(name)
	data, err := afero.ReadFile(m.fs, filepath.Join(m.configDir, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", service.ErrScenarioNotFound, name)
		}
		return nil, fmt.Errorf("%w: %v", service.ErrInvalidScenario, err)
	}

	s, err := engine.ParseScenario(data, fileName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", service.ErrInvalidScenario, err)
	}

	m.scenarios[name] = s
	return s, nil
}

// ListScenarios returns information about every valid scenario file, sorted by ID
func (m *Manager) ListScenarios() ([]*service.ScenarioInfo, error) {
	entries, err := afero.ReadDir(m.fs, m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	scenarios := []*service.ScenarioInfo{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		id := strings.TrimSuffix(entry.Name(), ".json")
		s, err := m.cached(id)
		if err != nil {
			// Skip invalid scenarios
			continue
		}

		scenarios = append(scenarios, &service.ScenarioInfo{
			Filename:    entry.Name(),
			ScenarioID:  id,
			Name:        s.Name,
			Description: s.Description,
			Height:      s.Height,
			Width:       s.Width,
			Units:       len(s.Units),
		})
	}

	sort.Slice(scenarios, func(i, j int) bool {
		return scenarios[i].ScenarioID < scenarios[j].ScenarioID
	})
	return scenarios, nil
}

// GetDefault returns a copy of the default scenario
func (m *Manager) GetDefault() *engine.Scenario {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultScenario.Clone()
}

// SetDefault makes name the default scenario. The choice survives
// RefreshCache as long as the file stays loadable.
func (m *Manager) SetDefault(name string) error {
	name = strings.TrimSuffix(name, ".json")
	s, err := m.cached(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultScenario = s
	m.defaultName = name
	return nil
}

// SaveScenario validates a scenario and writes it to disk
func (m *Manager) SaveScenario(name string, scenario *engine.Scenario) error {
	if err := engine.ValidateScenario(scenario); err != nil {
		return fmt.Errorf("%w: %v", service.ErrInvalidScenario, err)
	}

	name = strings.TrimSuffix(name, ".json")
	if name == "" || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: bad scenario name %q", service.ErrInvalidScenario, name)
	}

	data, err := json.MarshalIndent(scenario, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal scenario: %w", err)
	}

	path := filepath.Join(m.configDir, engine.ScenarioFileName(name))
	if err := afero.WriteFile(m.fs, path, data, 0644); err != nil {
		return fmt.Errorf("failed to write scenario file: %w", err)
	}

	m.mu.Lock()
	m.scenarios[name] = scenario.Clone()
	m.mu.Unlock()

	return nil
}

// RefreshCache drops every cached scenario and picks the default again
func (m *Manager) RefreshCache() {
	m.mu.Lock()
	m.scenarios = make(map[string]*engine.Scenario)
	m.mu.Unlock()

	m.loadDefaultScenario()
}

// Watch refreshes the cache whenever a scenario file in the config directory
// is written, created, removed or renamed, until ctx is done. It needs the
// directory to exist on the OS filesystem.
func (m *Manager) Watch(ctx context.Context, logger zerolog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file system watcher: %w", err)
	}
	if err := watcher.Add(m.configDir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", m.configDir, err)
	}

	logger.Debug().Str("config_dir", m.configDir).Msg("watching scenario files")
	go m.watchFiles(ctx, watcher, logger)
	return nil
}

func (m *Manager) watchFiles(ctx context.Context, watcher *fsnotify.Watcher, logger zerolog.Logger) {
	defer watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !strings.HasSuffix(event.Name, ".json") {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				logger.Info().Str("file", filepath.Base(event.Name)).Str("op", event.Op.String()).Msg("scenario file changed, refreshing cache")
				m.RefreshCache()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Error().Err(err).Msg("scenario watcher error")
		}
	}
}

// loadDefaultScenario prefers the name given to SetDefault, then skirmish,
// then the first valid file, then the built-in scenario
func (m *Manager) loadDefaultScenario() {
	m.mu.RLock()
	chosen := m.defaultName
	m.mu.RUnlock()

	var s *engine.Scenario
	for _, name := range []string{chosen, DefaultScenarioName} {
		if name == "" {
			continue
		}
		if found, err := m.cached(name); err == nil {
			s = found
			break
		}
	}
	if s == nil {
		s = engine.DefaultScenario()
		if available, listErr := m.ListScenarios(); listErr == nil && len(available) > 0 {
			if first, loadErr := m.cached(available[0].ScenarioID); loadErr == nil {
				s = first
			}
		}
	}

	m.mu.Lock()
	m.defaultScenario = s
	m.mu.Unlock()
}
