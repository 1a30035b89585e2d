// Command analyze prints quick, human-readable statistics about the mission
// files in the project's missions directory. For each mission it reports the
// final state, the movement mix, the distance covered and the bounding box of
// every cell the rover visits, and flags missions that miss their expected
// finish or return to their start.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/wricardo/mars-rover/rover/engine"
	"github.com/wricardo/mars-rover/rover/mission"
)

// Analysis holds the figures printed for a single mission
type Analysis struct {
	Name         string
	Start        engine.State
	Final        engine.State
	Moves        int
	Turns        int
	Displacement int
	Min, Max     engine.Position
	Revisits     int
	Expected     string
	Passed       bool
}

func main() {
	dir := "missions"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	if err := run(os.Stdout, dir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(out io.Writer, dir string) error {
	manager, err := mission.NewManager(dir, nil)
	if err != nil {
		return err
	}

	infos, err := manager.ListMissions()
	if err != nil {
		return err
	}

	for _, info := range infos {
		fmt.Fprintf(out, "\n=== Analyzing %s ===\n", info.Filename)
		m, err := manager.LoadMission(info.MissionID)
		if err != nil {
			fmt.Fprintf(out, "Error loading mission: %v\n", err)
			continue
		}
		a, err := analyzeMission(m)
		if err != nil {
			fmt.Fprintf(out, "Error analyzing mission: %v\n", err)
			continue
		}
		printAnalysis(out, a)
	}
	return nil
}

func analyzeMission(m *mission.Mission) (*Analysis, error) {
	start, cmds, err := m.Parse()
	if err != nil {
		return nil, err
	}

	trace := engine.Trace(start, cmds)
	final := engine.Run(start, cmds)
	min, max := engine.Bounds(start, trace)

	a := &Analysis{
		Name:         m.Name,
		Start:        start,
		Final:        final,
		Moves:        cmds.Count(engine.Move),
		Turns:        cmds.Count(engine.TurnLeft) + cmds.Count(engine.TurnRight),
		Displacement: engine.ManhattanDistance(start.Position, final.Position),
		Min:          min,
		Max:          max,
		Revisits:     countRevisits(start, trace),
		Expected:     m.Expected,
	}

	if m.Expected != "" {
		expected, err := engine.ParseState(m.Expected)
		if err != nil {
			return nil, err
		}
		a.Passed = expected == final
	}
	return a, nil
}

// countRevisits counts moves that land on a cell the rover already occupied
func countRevisits(start engine.State, trace []engine.TraceEntry) int {
	visited := map[engine.Position]bool{start.Position: true}
	revisits := 0
	for _, entry := range trace {
		if entry.Command != engine.Move {
			continue
		}
		if visited[entry.To.Position] {
			revisits++
		}
		visited[entry.To.Position] = true
	}
	return revisits
}

func printAnalysis(out io.Writer, a *Analysis) {
	fmt.Fprintf(out, "Name: %s\n", a.Name)
	fmt.Fprintf(out, "Start: %s\n", a.Start)
	fmt.Fprintf(out, "Final: %s\n", a.Final)
	fmt.Fprintf(out, "Moves: %d, Turns: %d\n", a.Moves, a.Turns)
	fmt.Fprintf(out, "Displacement: %d (path length %d)\n", a.Displacement, a.Moves)
	fmt.Fprintf(out, "Bounding Box: (%d, %d) to (%d, %d), %d x %d\n",
		a.Min.X, a.Min.Y, a.Max.X, a.Max.Y, a.Max.X-a.Min.X+1, a.Max.Y-a.Min.Y+1)

	if a.Revisits > 0 {
		fmt.Fprintf(out, "Revisited cells: %d\n", a.Revisits)
	}
	if a.Start == a.Final {
		fmt.Fprintf(out, "🔁 Rover returns to its start state\n")
	}

	switch {
	case a.Expected == "":
		fmt.Fprintf(out, "No expected state recorded\n")
	case a.Passed:
		fmt.Fprintf(out, "✅ Reaches expected state %s\n", a.Expected)
	default:
		fmt.Fprintf(out, "⚠️  WARNING: expected %s but ends at %s\n", a.Expected, a.Final)
	}
}
