package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/wricardo/mars-rover/rover/engine"
	"github.com/wricardo/mars-rover/rover/mission"
)

// roverServiceImpl implements the RoverService interface
type roverServiceImpl struct {
	missions MissionSource
	logger   *zap.Logger
}

// NewRoverService creates a new rover service. missions may be nil, in which
// case mission operations return ErrNoMissions.
func NewRoverService(missions MissionSource, logger *zap.Logger) RoverService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &roverServiceImpl{
		missions: missions,
		logger:   logger,
	}
}

// Drive parses the inputs and runs the instructions
func (s *roverServiceImpl) Drive(ctx context.Context, req DriveRequest) (*DriveResult, error) {
	start, err := engine.ParseStart(req.Start)
	if err != nil {
		return nil, err
	}
	cmds, err := engine.ParseInstructions(req.Instructions)
	if err != nil {
		return nil, err
	}

	result := buildDriveResult(start, cmds, req.Trace)
	s.logger.Debug("drive",
		zap.String("start", req.Start),
		zap.String("instructions", req.Instructions),
		zap.String("final", result.Rendered))
	return result, nil
}

// RunMission drives a mission and compares the result with its expected state
func (s *roverServiceImpl) RunMission(ctx context.Context, missionID string, trace bool) (*MissionResult, error) {
	if s.missions == nil {
		return nil, ErrNoMissions
	}

	m, err := s.missions.LoadMission(missionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load mission %s: %w", missionID, err)
	}

	start, cmds, err := m.Parse()
	if err != nil {
		return nil, fmt.Errorf("mission %s: %w", missionID, err)
	}

	drive := buildDriveResult(start, cmds, trace)
	result := &MissionResult{
		MissionID:   missionID,
		Name:        m.Name,
		Description: m.Description,
		Expected:    m.Expected,
		Drive:       drive,
	}

	if m.Expected != "" {
		expected, err := engine.ParseState(m.Expected)
		if err != nil {
			return nil, fmt.Errorf("mission %s: expected: %w", missionID, err)
		}
		result.Checked = true
		result.Passed = expected == drive.Final
	}

	s.logger.Info("mission run",
		zap.String("mission", missionID),
		zap.String("final", drive.Rendered),
		zap.Bool("checked", result.Checked),
		zap.Bool("passed", result.Passed))
	return result, nil
}

// ListMissions returns the available missions
func (s *roverServiceImpl) ListMissions(ctx context.Context) ([]*mission.Info, error) {
	if s.missions == nil {
		return nil, ErrNoMissions
	}
	return s.missions.ListMissions()
}

// ValidateMissions validates every mission file
func (s *roverServiceImpl) ValidateMissions(ctx context.Context) ([]mission.ValidationResult, error) {
	if s.missions == nil {
		return nil, ErrNoMissions
	}

	results, err := s.missions.Validate()
	if err != nil {
		return nil, err
	}
	for _, r := range results {
		if !r.Valid {
			s.logger.Warn("invalid mission", zap.String("file", r.File), zap.Strings("errors", r.Errors))
		}
	}
	return results, nil
}

// buildDriveResult runs the commands and fills in the summary fields
func buildDriveResult(start engine.State, cmds engine.Instructions, trace bool) *DriveResult {
	final := engine.Run(start, cmds)
	result := &DriveResult{
		Start:        start,
		Final:        final,
		Rendered:     engine.Render(final),
		CommandCount: len(cmds),
		Moves:        cmds.Count(engine.Move),
		Turns:        cmds.Count(engine.TurnLeft) + cmds.Count(engine.TurnRight),
		Displacement: engine.ManhattanDistance(start.Position, final.Position),
	}
	if trace {
		result.Steps = engine.Trace(start, cmds)
	}
	return result
}
