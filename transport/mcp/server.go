package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/wricardo/mars-rover/rover/engine"
	"github.com/wricardo/mars-rover/rover/service"
)

const (
	serverName    = "Mars Rover"
	serverVersion = "1.0.0"
)

// Server exposes the rover service as MCP tools
type Server struct {
	service   service.RoverService
	logger    *zap.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server backed by svc
func NewServer(svc service.RoverService, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		service: svc,
		logger:  logger,
	}

	s.initMCPServer()
	return s
}

// MCPServer returns the underlying mcp-go server
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves the tools over stdin/stdout until the input is closed
func (s *Server) ServeStdio() error {
	s.logger.Info("serving MCP over stdio")
	return server.ServeStdio(s.mcpServer)
}

// initMCPServer initializes the MCP server with all tools
func (s *Server) initMCPServer() {
	s.mcpServer = server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(true),
		server.WithInstructions(instructions),
	)

	s.registerTools()
}

const instructions = `Mars Rover - MCP Interface

The rover sits on an unbounded integer grid facing N, E, S or W.

TEXT FORMATS:
- Start state: "<x> <y> <heading>", non-negative integers, e.g. "0 0 N"
- Instructions: letters L (turn left), R (turn right), M (move forward), e.g. "LMLMM"
- Result: same shape as the start state, coordinates may be negative

AVAILABLE TOOLS:
- drive: Run instructions from a start state
- parse_start: Check a start state and describe it
- list_missions: List stored missions
- run_mission: Run a stored mission and compare with its expected finish
- validate_missions: Validate every mission file
- rover_instructions: Show these rules`

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "drive",
		Description: "Apply an instruction string to a start state and return the final state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"start": map[string]interface{}{
					"type":        "string",
					"description": `Start state, e.g. "0 0 N"`,
				},
				"instructions": map[string]interface{}{
					"type":        "string",
					"description": "Commands made of L, R and M (may be empty)",
				},
				"trace": map[string]interface{}{
					"type":        "boolean",
					"description": "Include every intermediate step",
				},
			},
			Required: []string{"start"},
		},
	}, s.handleDrive)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "parse_start",
		Description: "Validate a start state string",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"start": map[string]interface{}{
					"type":        "string",
					"description": `Start state, e.g. "0 0 N"`,
				},
			},
			Required: []string{"start"},
		},
	}, s.handleParseStart)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_missions",
		Description: "List available missions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListMissions)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "run_mission",
		Description: "Run a stored mission by ID",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"mission_id": map[string]interface{}{
					"type":        "string",
					"description": "Mission ID as returned by list_missions",
				},
				"trace": map[string]interface{}{
					"type":        "boolean",
					"description": "Include every intermediate step",
				},
			},
			Required: []string{"mission_id"},
		},
	}, s.handleRunMission)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "validate_missions",
		Description: "Validate all mission files",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleValidateMissions)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "rover_instructions",
		Description: "Get the rover rules and text formats",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleInstructions)
}

// Tool handlers

func (s *Server) handleDrive(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	start, _ := args["start"].(string)
	cmds, _ := args["instructions"].(string)
	trace, _ := args["trace"].(bool)

	result, err := s.service.Drive(ctx, service.DriveRequest{
		Start:        start,
		Instructions: cmds,
		Trace:        trace,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatDriveResult(result)), nil
}

func (s *Server) handleParseStart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	start, _ := args["start"].(string)

	state, err := engine.ParseStart(start)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Valid start state: %s\nPosition: (%d,%d)\nHeading: %s\n",
		state, state.Position.X, state.Position.Y, state.Heading.Name())
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleListMissions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	missions, err := s.service.ListMissions(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Missions (%d):\n\n", len(missions))
	for _, m := range missions {
		fmt.Fprintf(&b, "- %s: %s (start %s, %d commands)\n", m.MissionID, m.Name, m.Start, m.CommandCount)
		if m.Description != "" {
			fmt.Fprintf(&b, "  %s\n", m.Description)
		}
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleRunMission(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	missionID, _ := args["mission_id"].(string)
	trace, _ := args["trace"].(bool)

	result, err := s.service.RunMission(ctx, missionID, trace)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Mission: %s (%s)\n", result.Name, result.MissionID)
	switch {
	case !result.Checked:
		b.WriteString("Status: no expected state recorded\n")
	case result.Passed:
		fmt.Fprintf(&b, "Status: PASSED (expected %s)\n", result.Expected)
	default:
		fmt.Fprintf(&b, "Status: FAILED (expected %s)\n", result.Expected)
	}
	b.WriteString(formatDriveResult(result.Drive))
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleValidateMissions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	results, err := s.service.ValidateMissions(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(instructions), nil
}

// arguments returns the request arguments as a map, empty when absent
func arguments(request mcp.CallToolRequest) map[string]interface{} {
	if args, ok := request.Params.Arguments.(map[string]interface{}); ok {
		return args
	}
	return map[string]interface{}{}
}

// formatDriveResult renders a drive result for tool output
func formatDriveResult(r *service.DriveResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Start: %s\n", r.Start)
	fmt.Fprintf(&b, "Final: %s\n", r.Rendered)
	fmt.Fprintf(&b, "Commands: %d (moves %d, turns %d)\n", r.CommandCount, r.Moves, r.Turns)
	fmt.Fprintf(&b, "Displacement: %d\n", r.Displacement)
	if len(r.Steps) > 0 {
		b.WriteString("\nSteps:\n")
		for _, step := range r.Steps {
			fmt.Fprintf(&b, "%3d. %s  %s -> %s\n", step.MoveNumber, step.Command, step.From, step.To)
		}
	}
	return b.String()
}
