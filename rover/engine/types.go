package engine

import "fmt"

// Heading represents the direction the rover is facing
type Heading int

const (
	North Heading = iota
	East
	South
	West
)

const headingCount = 4

var (
	headingLetters = [headingCount]byte{North: 'N', East: 'E', South: 'S', West: 'W'}
	headingNames   = [headingCount]string{North: "North", East: "East", South: "South", West: "West"}
)

// AllHeadings returns the headings in clockwise order starting at North
func AllHeadings() []Heading {
	return []Heading{North, East, South, West}
}

// IsValid reports whether h is one of the four cardinal headings
func (h Heading) IsValid() bool {
	return h >= North && h <= West
}

// String returns the single-letter form used in the text format
func (h Heading) String() string {
	if !h.IsValid() {
		return fmt.Sprintf("Heading(%d)", int(h))
	}
	return string(headingLetters[h])
}

// Name returns the full compass name
func (h Heading) Name() string {
	if !h.IsValid() {
		return "Unknown"
	}
	return headingNames[h]
}

// ParseHeading maps a heading letter to its Heading
func ParseHeading(r rune) (Heading, bool) {
	switch r {
	case 'N':
		return North, true
	case 'E':
		return East, true
	case 'S':
		return South, true
	case 'W':
		return West, true
	}
	return 0, false
}

// MarshalText encodes the heading as its letter
func (h Heading) MarshalText() ([]byte, error) {
	if !h.IsValid() {
		return nil, fmt.Errorf("invalid heading %d", int(h))
	}
	return []byte{headingLetters[h]}, nil
}

// UnmarshalText decodes a heading letter
func (h *Heading) UnmarshalText(text []byte) error {
	if len(text) != 1 {
		return fmt.Errorf("invalid heading %q", text)
	}
	parsed, ok := ParseHeading(rune(text[0]))
	if !ok {
		return fmt.Errorf("invalid heading %q", text)
	}
	*h = parsed
	return nil
}

// Command is a single rover instruction
type Command int

const (
	TurnLeft Command = iota
	TurnRight
	Move
)

var commandLetters = [...]byte{TurnLeft: 'L', TurnRight: 'R', Move: 'M'}

// IsValid reports whether c is a known command
func (c Command) IsValid() bool {
	return c >= TurnLeft && c <= Move
}

// String returns the instruction letter
func (c Command) String() string {
	if !c.IsValid() {
		return fmt.Sprintf("Command(%d)", int(c))
	}
	return string(commandLetters[c])
}

// ParseCommand maps an instruction letter to its Command
func ParseCommand(r rune) (Command, bool) {
	switch r {
	case 'L':
		return TurnLeft, true
	case 'R':
		return TurnRight, true
	case 'M':
		return Move, true
	}
	return 0, false
}

// MarshalText encodes the command as its letter
func (c Command) MarshalText() ([]byte, error) {
	if !c.IsValid() {
		return nil, fmt.Errorf("invalid command %d", int(c))
	}
	return []byte{commandLetters[c]}, nil
}

// UnmarshalText decodes an instruction letter
func (c *Command) UnmarshalText(text []byte) error {
	if len(text) != 1 {
		return fmt.Errorf("invalid command %q", text)
	}
	parsed, ok := ParseCommand(rune(text[0]))
	if !ok {
		return fmt.Errorf("invalid command %q", text)
	}
	*c = parsed
	return nil
}

// Instructions is an ordered sequence of commands
type Instructions []Command

// String encodes the sequence back to its letters
func (in Instructions) String() string {
	buf := make([]byte, 0, len(in))
	for _, c := range in {
		if c.IsValid() {
			buf = append(buf, commandLetters[c])
		}
	}
	return string(buf)
}

// Count returns how many times c appears in the sequence
func (in Instructions) Count(c Command) int {
	n := 0
	for _, cmd := range in {
		if cmd == c {
			n++
		}
	}
	return n
}

// Position represents x,y coordinates on the unbounded grid
type Position struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Add returns the position shifted by d
func (p Position) Add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

// State is the rover's position and heading. It is a value: transitions
// return a new State and never modify the receiver.
type State struct {
	Position Position `json:"position"`
	Heading  Heading  `json:"heading"`
}

// String renders the state in the "<x> <y> <heading>" text format
func (s State) String() string {
	return Render(s)
}

// TraceEntry records a single step of an instruction run
type TraceEntry struct {
	MoveNumber int     `json:"move_number"`
	Command    Command `json:"command"`
	From       State   `json:"from"`
	To         State   `json:"to"`
}
