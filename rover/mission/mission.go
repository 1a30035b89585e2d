package mission

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wricardo/mars-rover/rover/engine"
)

// Mission is a named start state and instruction string
type Mission struct {
	Name         string `json:"name" yaml:"name"`
	Description  string `json:"description" yaml:"description"`
	Start        string `json:"start" yaml:"start"`
	Instructions string `json:"instructions" yaml:"instructions"`
	Expected     string `json:"expected,omitempty" yaml:"expected,omitempty"`
}

// Info summarizes a mission file for listings
type Info struct {
	Filename     string `json:"filename"`
	MissionID    string `json:"mission_id"` // identifier to pass to LoadMission
	Name         string `json:"name"`
	Description  string `json:"description"`
	Start        string `json:"start"`
	CommandCount int    `json:"command_count"`
}

// ValidationResult captures the outcome of validating a single file
type ValidationResult struct {
	File   string   `json:"file"`
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// Parse returns the parsed start state and instructions of the mission
func (m *Mission) Parse() (engine.State, engine.Instructions, error) {
	start, err := engine.ParseStart(m.Start)
	if err != nil {
		return engine.State{}, nil, err
	}
	cmds, err := engine.ParseInstructions(m.Instructions)
	if err != nil {
		return engine.State{}, nil, err
	}
	return start, cmds, nil
}

// ValidateMission checks that a mission is well formed: it has a name and
// every text field parses. It does not run the mission.
func ValidateMission(m *Mission) error {
	if m == nil {
		return fmt.Errorf("mission validation: mission is nil")
	}
	if m.Name == "" {
		return fmt.Errorf("mission validation: name is required")
	}
	if _, _, err := m.Parse(); err != nil {
		return fmt.Errorf("mission validation: %w", err)
	}
	if m.Expected != "" {
		if _, err := engine.ParseState(m.Expected); err != nil {
			return fmt.Errorf("mission validation: expected: %w", err)
		}
	}
	return nil
}

// VerifyMission validates the mission and, when an expected state is given,
// runs it and checks that it finishes there
func VerifyMission(m *Mission) error {
	if err := ValidateMission(m); err != nil {
		return err
	}
	if m.Expected == "" {
		return nil
	}

	start, cmds, _ := m.Parse()
	expected, _ := engine.ParseState(m.Expected)
	if final := engine.Run(start, cmds); final != expected {
		return fmt.Errorf("mission verification: expected final state %q but run ends at %q", m.Expected, final)
	}
	return nil
}

// isMissionFile reports whether the file name has a supported extension
func isMissionFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

// decodeMission decodes file contents according to the file extension
func decodeMission(filename string, data []byte) (*Mission, error) {
	var m Mission
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to parse mission: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to parse mission: %w", err)
		}
	}
	return &m, nil
}
