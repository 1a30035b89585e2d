package service

import (
	"context"
	"errors"

	"github.com/wricardo/mars-rover/rover/engine"
	"github.com/wricardo/mars-rover/rover/mission"
)

var ErrNoMissions = errors.New("no mission source configured")

// RoverService defines all rover operations
type RoverService interface {
	// Driving
	Drive(ctx context.Context, req DriveRequest) (*DriveResult, error)

	// Missions
	RunMission(ctx context.Context, missionID string, trace bool) (*MissionResult, error)
	ListMissions(ctx context.Context) ([]*mission.Info, error)
	ValidateMissions(ctx context.Context) ([]mission.ValidationResult, error)
}

// MissionSource loads missions by ID
type MissionSource interface {
	LoadMission(id string) (*mission.Mission, error)
	ListMissions() ([]*mission.Info, error)
	Validate() ([]mission.ValidationResult, error)
}

// DriveRequest carries the text inputs of a single run
type DriveRequest struct {
	Start        string `json:"start"`
	Instructions string `json:"instructions"`
	Trace        bool   `json:"trace,omitempty"`
}

// DriveResult contains the outcome of a run
type DriveResult struct {
	Start        engine.State        `json:"start"`
	Final        engine.State        `json:"final"`
	Rendered     string              `json:"rendered"`
	CommandCount int                 `json:"command_count"`
	Moves        int                 `json:"moves"`
	Turns        int                 `json:"turns"`
	Displacement int                 `json:"displacement"` // Manhattan distance from start to final
	Steps        []engine.TraceEntry `json:"steps,omitempty"`
}

// MissionResult contains the outcome of running a mission
type MissionResult struct {
	MissionID   string       `json:"mission_id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Expected    string       `json:"expected,omitempty"`
	Checked     bool         `json:"checked"` // false when the mission has no expected state
	Passed      bool         `json:"passed"`
	Drive       *DriveResult `json:"drive"`
}
