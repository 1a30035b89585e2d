package engine

// Run applies the instructions to the initial state from left to right and
// returns the final state. An empty sequence returns initial unchanged.
func Run(initial State, instructions Instructions) State {
	state := initial
	for _, c := range instructions {
		state = Step(state, c)
	}
	return state
}

// Trace runs the instructions like Run and records every step
func Trace(initial State, instructions Instructions) []TraceEntry {
	entries := make([]TraceEntry, 0, len(instructions))
	state := initial
	for i, c := range instructions {
		next := Step(state, c)
		entries = append(entries, TraceEntry{
			MoveNumber: i + 1,
			Command:    c,
			From:       state,
			To:         next,
		})
		state = next
	}
	return entries
}

// Drive parses a start state and an instruction string and runs them.
// If either input is malformed no state is produced.
func Drive(start, instructions string) (State, error) {
	initial, err := ParseStart(start)
	if err != nil {
		return State{}, err
	}
	cmds, err := ParseInstructions(instructions)
	if err != nil {
		return State{}, err
	}
	return Run(initial, cmds), nil
}
