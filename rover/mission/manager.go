package mission

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
)

var (
	ErrMissionNotFound = errors.New("mission not found")
	ErrInvalidMission  = errors.New("invalid mission")
)

// extensions are tried in order when resolving a mission ID to a file
var extensions = []string{".json", ".yaml", ".yml"}

// Manager handles mission loading and caching
type Manager struct {
	missionDir string
	logger     *zap.Logger
	missions   map[string]*Mission
	mu         sync.RWMutex
}

// NewManager creates a new mission manager over dir. A nil logger disables logging.
func NewManager(dir string, logger *zap.Logger) (*Manager, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("missions directory does not exist: %s", dir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat missions directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("missions path is not a directory: %s", dir)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Manager{
		missionDir: dir,
		logger:     logger,
		missions:   make(map[string]*Mission),
	}, nil
}

// Dir returns the directory the manager reads from
func (m *Manager) Dir() string {
	return m.missionDir
}

// LoadMission loads a mission by ID (the file name without extension).
// A file name with its extension is accepted too.
func (m *Manager) LoadMission(id string) (*Mission, error) {
	id = strings.TrimSpace(id)
	if id == "" || strings.ContainsAny(id, `/\`) {
		return nil, ErrMissionNotFound
	}
	if isMissionFile(id) {
		id = strings.TrimSuffix(id, filepath.Ext(id))
	}

	m.mu.RLock()
	if mission, exists := m.missions[id]; exists {
		m.mu.RUnlock()
		return mission, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if mission, exists := m.missions[id]; exists {
		return mission, nil
	}

	filename, err := m.resolve(id)
	if err != nil {
		return nil, err
	}

	mission, err := m.readFile(filename)
	if err != nil {
		return nil, err
	}

	m.missions[id] = mission
	m.logger.Debug("loaded mission", zap.String("id", id), zap.String("file", filename))
	return mission, nil
}

// ListMissions returns information about all valid missions, sorted by ID.
// Invalid files are skipped with a warning.
func (m *Manager) ListMissions() ([]*Info, error) {
	entries, err := m.missionFiles()
	if err != nil {
		return nil, err
	}

	var infos []*Info
	seen := make(map[string]bool)

	for _, name := range entries {
		id := strings.TrimSuffix(name, filepath.Ext(name))
		if seen[id] {
			continue
		}

		mission, err := m.LoadMission(id)
		if err != nil {
			m.logger.Warn("skipping mission", zap.String("file", name), zap.Error(err))
			continue
		}
		seen[id] = true

		_, cmds, _ := mission.Parse()
		infos = append(infos, &Info{
			Filename:     name,
			MissionID:    id,
			Name:         mission.Name,
			Description:  mission.Description,
			Start:        mission.Start,
			CommandCount: len(cmds),
		})
	}

	return infos, nil
}

// Validate checks every mission file in the directory, bypassing the cache.
// Unlike LoadMission it also runs each mission against its expected state.
func (m *Manager) Validate() ([]ValidationResult, error) {
	entries, err := m.missionFiles()
	if err != nil {
		return nil, err
	}

	results := make([]ValidationResult, 0, len(entries))
	for _, name := range entries {
		result := ValidationResult{File: name, Valid: true}
		mission, err := m.readFile(filepath.Join(m.missionDir, name))
		if err == nil {
			err = VerifyMission(mission)
		}
		if err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, err.Error())
		}
		results = append(results, result)
	}
	return results, nil
}

// RefreshCache drops all cached missions so the next load rereads disk
func (m *Manager) RefreshCache() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.missions = make(map[string]*Mission)
}

// resolve finds the file backing a mission ID
func (m *Manager) resolve(id string) (string, error) {
	for _, ext := range extensions {
		path := filepath.Join(m.missionDir, id+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", ErrMissionNotFound
}

// readFile decodes and validates a single mission file
func (m *Manager) readFile(path string) (*Mission, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrMissionNotFound
		}
		return nil, fmt.Errorf("failed to read mission file: %w", err)
	}

	mission, err := decodeMission(path, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMission, err)
	}

	if err := ValidateMission(mission); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMission, err)
	}

	return mission, nil
}

// missionFiles lists supported files in the missions directory, sorted by name
func (m *Manager) missionFiles() ([]string, error) {
	entries, err := os.ReadDir(m.missionDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read missions directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !isMissionFile(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}
