package engine

import (
	"errors"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// stateSyntax is the grammar shared by start and rendered states. Spaces are
// real tokens, not elided, so exactly one space must separate the fields.
type stateSyntax struct {
	X       string `parser:"@Int Space"`
	Y       string `parser:"@Int Space"`
	Heading string `parser:"@Heading"`
}

type instructionSyntax struct {
	Commands []string `parser:"@Command*"`
}

var (
	startLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Int", Pattern: `[0-9]+`},
		{Name: "Heading", Pattern: `[NESW]`},
		{Name: "Space", Pattern: ` `},
	})
	// Rendered states may carry negative coordinates.
	stateLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Int", Pattern: `-?[0-9]+`},
		{Name: "Heading", Pattern: `[NESW]`},
		{Name: "Space", Pattern: ` `},
	})
	instructionLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Command", Pattern: `[LRM]`},
	})

	startParser       = participle.MustBuild[stateSyntax](participle.Lexer(startLexer))
	stateParser       = participle.MustBuild[stateSyntax](participle.Lexer(stateLexer))
	instructionParser = participle.MustBuild[instructionSyntax](participle.Lexer(instructionLexer))
)

// ParseStart parses a start state of the form "<x> <y> <N|E|S|W>" where both
// coordinates are non-negative decimal integers
func ParseStart(text string) (State, error) {
	return parseState(startParser, ErrInvalidStartFormat, text)
}

// ParseState parses a rendered state. It accepts everything ParseStart
// accepts plus negative coordinates, so ParseState(Render(s)) == s for any s.
func ParseState(text string) (State, error) {
	return parseState(stateParser, ErrInvalidStateFormat, text)
}

// ParseInstructions parses a string made only of the letters L, R and M.
// The empty string yields an empty sequence.
func ParseInstructions(text string) (Instructions, error) {
	if text == "" {
		return Instructions{}, nil
	}

	syntax, err := instructionParser.ParseString("instructions", text)
	if err != nil {
		return nil, newParseError(ErrInvalidInstructionFormat, text, err)
	}

	cmds := make(Instructions, 0, len(syntax.Commands))
	for _, letter := range syntax.Commands {
		c, ok := ParseCommand(rune(letter[0]))
		if !ok {
			return nil, &ParseError{Kind: ErrInvalidInstructionFormat, Input: text, Offset: -1}
		}
		cmds = append(cmds, c)
	}
	return cmds, nil
}

// Render produces "<x> <y> <heading>" in base 10, with a leading '-' for
// negative coordinates
func Render(s State) string {
	return strconv.Itoa(s.Position.X) + " " + strconv.Itoa(s.Position.Y) + " " + s.Heading.String()
}

func parseState(p *participle.Parser[stateSyntax], kind error, text string) (State, error) {
	syntax, err := p.ParseString("state", text)
	if err != nil {
		return State{}, newParseError(kind, text, err)
	}

	x, err := strconv.Atoi(syntax.X)
	if err != nil {
		return State{}, &ParseError{Kind: kind, Input: text, Offset: -1, Err: err}
	}
	y, err := strconv.Atoi(syntax.Y)
	if err != nil {
		return State{}, &ParseError{Kind: kind, Input: text, Offset: -1, Err: err}
	}
	heading, ok := ParseHeading(rune(syntax.Heading[0]))
	if !ok {
		return State{}, &ParseError{Kind: kind, Input: text, Offset: -1}
	}

	return State{Position: Position{X: x, Y: y}, Heading: heading}, nil
}

func newParseError(kind error, text string, cause error) *ParseError {
	offset := -1
	var perr participle.Error
	if errors.As(cause, &perr) {
		offset = perr.Position().Offset
	}
	return &ParseError{Kind: kind, Input: text, Offset: offset, Err: cause}
}
