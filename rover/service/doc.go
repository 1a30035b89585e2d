// Package service provides the application layer for the rover command engine.
//
// RoverService is the single entry point used by the CLI and the MCP tool
// server. It turns text inputs into engine calls, resolves missions through
// a MissionSource, and shapes the results into DTOs suitable for printing or
// JSON encoding.
//
// Usage:
//
//	missions, _ := mission.NewManager("missions", logger)
//	svc := service.NewRoverService(missions, logger)
//
//	result, err := svc.Drive(ctx, service.DriveRequest{
//		Start:        "0 0 N",
//		Instructions: "LMLMLMLMM",
//	})
//	fmt.Println(result.Rendered) // 0 1 N
//
// The service holds no rover state between calls.
package service
