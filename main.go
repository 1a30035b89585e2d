// Command rover drives a Mars rover from a start state through a string of
// L/R/M instructions and prints where it ends up.
//
// Subcommands:
//  1. "drive" – run instructions from a start state given on the command line
//  2. "mission" – list or run the missions stored in the missions directory
//  3. "validate" – validate every mission file
//  4. "mcp" – serve the same operations as MCP tools over stdio
//
// Flags control the missions directory and debug logging. A .env file in the
// working directory is loaded first when present.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wricardo/mars-rover/rover/mission"
	"github.com/wricardo/mars-rover/rover/service"
	"github.com/wricardo/mars-rover/transport/mcp"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "rover"
)

// errMissionFailed is returned when a mission does not finish at its expected state
var errMissionFailed = errors.New("mission did not reach its expected state")

// app holds the lazily built dependencies shared by subcommands
type app struct {
	logger  *zap.Logger
	service service.RoverService
}

func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
	}

	a := &app{}
	defer a.sync()

	if err := a.command().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", AppName, err)
		os.Exit(1)
	}
}

// command builds the CLI definition
func (a *app) command() *cli.Command {
	return &cli.Command{
		Name:    AppName,
		Usage:   "drive a Mars rover with L/R/M instructions",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "missions-dir",
				Usage:   "directory containing mission files",
				Value:   "missions",
				Sources: cli.EnvVars("ROVER_MISSIONS_DIR"),
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "enable debug logging",
				Sources: cli.EnvVars("ROVER_DEBUG"),
			},
		},
		Before: a.before,
		Commands: []*cli.Command{
			a.driveCommand(),
			a.missionCommand(),
			a.validateCommand(),
			a.mcpCommand(),
		},
	}
}

// before initializes logging and services once flags are parsed
func (a *app) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if a.logger == nil {
		logger, err := newLogger(cmd.Bool("debug"))
		if err != nil {
			return ctx, fmt.Errorf("failed to initialize logger: %w", err)
		}
		a.logger = logger
	}

	if a.service == nil {
		svc, err := initializeService(cmd.String("missions-dir"), a.logger)
		if err != nil {
			return ctx, err
		}
		a.service = svc
	}
	return ctx, nil
}

// newLogger builds a production zap logger writing to stderr
func newLogger(debug bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if debug {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	return config.Build()
}

// initializeService wires the mission manager and rover service. A missing
// missions directory is not fatal: drive still works, mission commands
// report ErrNoMissions.
func initializeService(missionsDir string, logger *zap.Logger) (service.RoverService, error) {
	manager, err := mission.NewManager(missionsDir, logger)
	if err != nil {
		if _, statErr := os.Stat(missionsDir); os.IsNotExist(statErr) {
			logger.Debug("missions directory not found", zap.String("dir", missionsDir))
			return service.NewRoverService(nil, logger), nil
		}
		return nil, fmt.Errorf("failed to create mission manager: %w", err)
	}
	return service.NewRoverService(manager, logger), nil
}

func (a *app) sync() {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func (a *app) driveCommand() *cli.Command {
	return &cli.Command{
		Name:  "drive",
		Usage: "run instructions from a start state",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "start", Aliases: []string{"s"}, Usage: `start state, e.g. "0 0 N"`, Required: true},
			&cli.StringFlag{Name: "instructions", Aliases: []string{"i"}, Usage: "commands made of L, R and M"},
			&cli.BoolFlag{Name: "trace", Usage: "print every step"},
			&cli.BoolFlag{Name: "json", Usage: "print the full result as JSON"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			result, err := a.service.Drive(ctx, service.DriveRequest{
				Start:        cmd.String("start"),
				Instructions: cmd.String("instructions"),
				Trace:        cmd.Bool("trace"),
			})
			if err != nil {
				return err
			}

			out := cmd.Root().Writer
			if cmd.Bool("json") {
				return writeJSON(out, result)
			}
			printSteps(out, result)
			fmt.Fprintln(out, result.Rendered)
			return nil
		},
	}
}

func (a *app) missionCommand() *cli.Command {
	return &cli.Command{
		Name:  "mission",
		Usage: "work with stored missions",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list available missions",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					missions, err := a.service.ListMissions(ctx)
					if err != nil {
						return err
					}
					out := cmd.Root().Writer
					for _, m := range missions {
						fmt.Fprintf(out, "%-20s %-24s start %-10s %d commands\n", m.MissionID, m.Name, m.Start, m.CommandCount)
					}
					return nil
				},
			},
			{
				Name:      "run",
				Usage:     "run a mission and compare with its expected finish",
				ArgsUsage: "<mission-id>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "trace", Usage: "print every step"},
					&cli.BoolFlag{Name: "json", Usage: "print the full result as JSON"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id := cmd.Args().First()
					if id == "" {
						return fmt.Errorf("mission run: missing mission ID")
					}

					result, err := a.service.RunMission(ctx, id, cmd.Bool("trace"))
					if err != nil {
						return err
					}

					out := cmd.Root().Writer
					if cmd.Bool("json") {
						if err := writeJSON(out, result); err != nil {
							return err
						}
					} else {
						printSteps(out, result.Drive)
						fmt.Fprintln(out, result.Drive.Rendered)
					}

					if result.Checked && !result.Passed {
						return fmt.Errorf("%w: %s expected %q, got %q", errMissionFailed, id, result.Expected, result.Drive.Rendered)
					}
					return nil
				},
			},
		},
	}
}

func (a *app) validateCommand() *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "validate every mission file",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			results, err := a.service.ValidateMissions(ctx)
			if err != nil {
				return err
			}

			out := cmd.Root().Writer
			invalid := 0
			for _, r := range results {
				if r.Valid {
					fmt.Fprintf(out, "✓ %s\n", r.File)
					continue
				}
				invalid++
				fmt.Fprintf(out, "✗ %s\n", r.File)
				for _, e := range r.Errors {
					fmt.Fprintf(out, "    %s\n", e)
				}
			}

			if invalid > 0 {
				return fmt.Errorf("%d of %d mission files are invalid", invalid, len(results))
			}
			return nil
		},
	}
}

func (a *app) mcpCommand() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "serve rover tools over MCP stdio",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return mcp.NewServer(a.service, a.logger).ServeStdio()
		},
	}
}

// printSteps prints the trace of a result when one was recorded
func printSteps(out io.Writer, result *service.DriveResult) {
	for _, step := range result.Steps {
		fmt.Fprintf(out, "%3d. %s  %s -> %s\n", step.MoveNumber, step.Command, step.From, step.To)
	}
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
