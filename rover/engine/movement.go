package engine

// Transition tables indexed by heading ordinal. Each is total over the four
// headings.
var (
	turnLeft = [headingCount]Heading{
		North: West,
		West:  South,
		South: East,
		East:  North,
	}
	turnRight = [headingCount]Heading{
		North: East,
		East:  South,
		South: West,
		West:  North,
	}
	moveVectors = [headingCount]Position{
		North: {X: 0, Y: 1},
		East:  {X: 1, Y: 0},
		South: {X: 0, Y: -1},
		West:  {X: -1, Y: 0},
	}
)

// Left returns the counter-clockwise neighbour of h
func (h Heading) Left() Heading {
	if !h.IsValid() {
		return h
	}
	return turnLeft[h]
}

// Right returns the clockwise neighbour of h
func (h Heading) Right() Heading {
	if !h.IsValid() {
		return h
	}
	return turnRight[h]
}

// Vector returns the unit step taken when moving while facing h
func (h Heading) Vector() Position {
	if !h.IsValid() {
		return Position{}
	}
	return moveVectors[h]
}

// Step applies a single command to s and returns the resulting state.
// Turning leaves the position unchanged; Move leaves the heading unchanged
// and shifts exactly one axis by one unit. Unknown commands are no-ops.
func Step(s State, c Command) State {
	switch c {
	case TurnLeft:
		s.Heading = s.Heading.Left()
	case TurnRight:
		s.Heading = s.Heading.Right()
	case Move:
		s.Position = s.Position.Add(s.Heading.Vector())
	}
	return s
}

// Apply is Step with the state as receiver
func (s State) Apply(c Command) State {
	return Step(s, c)
}
