// Package engine provides the core rover logic for the Mars Rover command engine.
//
// The engine package implements:
//   - Parsing of start states ("0 0 N") and instruction strings ("LMLMM")
//   - A pure reducer that applies TurnLeft, TurnRight and Move commands
//   - Rendering of rover state back to its textual form
//   - Step-by-step traces of an instruction run
//
// Core Types:
//
// State is an immutable value made of a Position on an unbounded integer grid
// and a Heading (North, East, South or West). Command is one of the three
// single-letter instructions. Every transition returns a new State; nothing in
// this package mutates its inputs or holds shared state, so all functions are
// safe for concurrent use.
//
// Usage:
//
//	start, err := engine.ParseStart("1 2 N")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	cmds, err := engine.ParseInstructions("LMLMLMLMM")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	final := engine.Run(start, cmds)
//	fmt.Println(engine.Render(final)) // 1 3 N
//
// Text Formats:
//
// A start state must match `^\d+ \d+ [NESW]$`. A rendered state has the same
// shape but may carry negative coordinates, since movement is unbounded; use
// ParseState to read a rendered state back. ParseStart keeps the
// stricter grammar.
package engine
