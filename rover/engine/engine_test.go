package engine

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDrive_Scenarios(t *testing.T) {
	tests := []struct {
		name         string
		start        string
		instructions string
		expected     string
	}{
		{"single move north", "0 0 N", "M", "0 1 N"},
		{"square traversal", "0 0 N", "LMLMLMLMM", "0 1 N"},
		{"move east", "1 2 E", "M", "2 2 E"},
		{"no instructions", "3 3 S", "", "3 3 S"},
		{"into negative space", "0 0 S", "MMRMM", "-2 -2 W"},
		{"classic kata", "3 3 E", "MMRMMRMRRM", "5 1 E"},
		{"spin in place", "7 7 W", "RRRRLLLL", "7 7 W"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			final, err := Drive(test.start, test.instructions)
			if err != nil {
				t.Fatalf("Drive(%q, %q): unexpected error: %v", test.start, test.instructions, err)
			}
			if got := Render(final); got != test.expected {
				t.Errorf("Drive(%q, %q): expected %q, got %q", test.start, test.instructions, test.expected, got)
			}
		})
	}
}

func TestDrive_AllOrNothing(t *testing.T) {
	state, err := Drive("0 0 N", "MMX")
	if !errors.Is(err, ErrInvalidInstructionFormat) {
		t.Fatalf("Expected ErrInvalidInstructionFormat, got %v", err)
	}
	if state != (State{}) {
		t.Errorf("Expected zero state on failure, got %+v", state)
	}

	state, err = Drive("0 0 X", "MM")
	if !errors.Is(err, ErrInvalidStartFormat) {
		t.Fatalf("Expected ErrInvalidStartFormat, got %v", err)
	}
	if state != (State{}) {
		t.Errorf("Expected zero state on failure, got %+v", state)
	}
}

func TestRun_EmptyIsIdentity(t *testing.T) {
	states := []State{
		{},
		{Position: Position{X: -4, Y: 9}, Heading: South},
		{Position: Position{X: 100, Y: 0}, Heading: West},
	}

	for _, s := range states {
		if got := Run(s, nil); got != s {
			t.Errorf("Run(%v, nil) = %v", s, got)
		}
		if got := Run(s, Instructions{}); got != s {
			t.Errorf("Run(%v, {}) = %v", s, got)
		}
	}
}

func TestRun_Deterministic(t *testing.T) {
	start := State{Position: Position{X: 1, Y: 1}, Heading: East}
	cmds := Instructions{Move, TurnLeft, Move, Move, TurnRight, Move}

	first := Run(start, cmds)
	for i := 0; i < 10; i++ {
		if got := Run(start, cmds); got != first {
			t.Fatalf("Run returned %v, previously %v", got, first)
		}
	}
}

func TestRun_MatchesSequentialSteps(t *testing.T) {
	start := State{Heading: North}
	cmds := Instructions{Move, TurnRight, Move, Move, TurnLeft, TurnLeft, Move}

	expected := start
	for _, c := range cmds {
		expected = Step(expected, c)
	}

	if got := Run(start, cmds); got != expected {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestTrace(t *testing.T) {
	start := State{Position: Position{X: 0, Y: 0}, Heading: North}
	cmds := Instructions{Move, TurnRight, Move}

	trace := Trace(start, cmds)

	expected := []TraceEntry{
		{
			MoveNumber: 1,
			Command:    Move,
			From:       State{Position: Position{X: 0, Y: 0}, Heading: North},
			To:         State{Position: Position{X: 0, Y: 1}, Heading: North},
		},
		{
			MoveNumber: 2,
			Command:    TurnRight,
			From:       State{Position: Position{X: 0, Y: 1}, Heading: North},
			To:         State{Position: Position{X: 0, Y: 1}, Heading: East},
		},
		{
			MoveNumber: 3,
			Command:    Move,
			From:       State{Position: Position{X: 0, Y: 1}, Heading: East},
			To:         State{Position: Position{X: 1, Y: 1}, Heading: East},
		},
	}

	if diff := cmp.Diff(expected, trace); diff != "" {
		t.Errorf("Trace mismatch (-want +got):\n%s", diff)
	}

	if last := trace[len(trace)-1].To; last != Run(start, cmds) {
		t.Errorf("Last trace entry %v disagrees with Run", last)
	}
}

func TestTrace_Empty(t *testing.T) {
	trace := Trace(State{}, nil)
	if trace == nil || len(trace) != 0 {
		t.Errorf("Expected empty non-nil trace, got %#v", trace)
	}
}

func TestManhattanDistance(t *testing.T) {
	tests := []struct {
		from, to Position
		expected int
	}{
		{Position{0, 0}, Position{0, 0}, 0},
		{Position{0, 0}, Position{3, 4}, 7},
		{Position{-2, -2}, Position{2, 2}, 8},
		{Position{5, 1}, Position{1, 5}, 8},
	}

	for _, test := range tests {
		if got := ManhattanDistance(test.from, test.to); got != test.expected {
			t.Errorf("ManhattanDistance(%v, %v): expected %d, got %d", test.from, test.to, test.expected, got)
		}
	}
}

func TestBounds(t *testing.T) {
	start := State{Heading: North}
	cmds, err := ParseInstructions("MMLMMMLMMMMM")
	if err != nil {
		t.Fatalf("Failed to parse instructions: %v", err)
	}

	min, max := Bounds(start, Trace(start, cmds))

	if diff := cmp.Diff(Position{X: -3, Y: -3}, min); diff != "" {
		t.Errorf("min mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Position{X: 0, Y: 2}, max); diff != "" {
		t.Errorf("max mismatch (-want +got):\n%s", diff)
	}
}
