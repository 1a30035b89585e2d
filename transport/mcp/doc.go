// Package mcp provides a Model Context Protocol tool server for the rover command engine.
//
// The mcp package implements:
//   - Tool definitions for driving the rover and working with missions
//   - A stdio transport for local MCP clients
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - drive: Apply an instruction string to a start state
//   - parse_start: Validate a start state
//   - list_missions: List stored missions
//   - run_mission: Run a mission and report pass/fail
//   - validate_missions: Validate every mission file
//   - rover_instructions: Rules and text formats
//
// Tools are stateless: every call carries its full input, and malformed
// input is reported as a tool error rather than a protocol error.
//
// Usage:
//
//	srv := mcp.NewServer(roverService, logger)
//	if err := srv.ServeStdio(); err != nil {
//		log.Fatal(err)
//	}
package mcp
