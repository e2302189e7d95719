// Package shell implements the interactive repolist prompt: reading and
// tokenizing input lines and dispatching them against a store.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/justrnr500/repolist/internal/repo"
)

// ErrLineTooLong is returned for input that does not end in a newline,
// either because it overflowed the line buffer or the input ended mid-line.
var ErrLineTooLong = errors.New("input line too long or not terminated by a newline")

// Position is the index of a token after the command; the command itself
// sits at PosCommand.
type Position int

const (
	PosCommand  Position = -1
	PosAlias    Position = 0
	PosLink     Position = 1
	PosOverflow Position = 2
)

func (p Position) String() string {
	switch {
	case p == PosCommand:
		return "command"
	case p == PosAlias:
		return "alias"
	case p == PosLink:
		return "link"
	default:
		return fmt.Sprintf("argument %d", int(p)+1)
	}
}

// ArgumentOverflowError reports a token longer than its position allows.
type ArgumentOverflowError struct {
	Position Position
	Length   int
	Limit    int
}

func (e *ArgumentOverflowError) Error() string {
	return fmt.Sprintf("%s too long: %d bytes, max %d", e.Position, e.Length, e.Limit)
}

// Input is one parsed command line.
type Input struct {
	Command  string
	ArgCount int // tokens after the command, including any overflow
	Alias    string
	Link     string
}

// Empty reports whether the line held no command.
func (in Input) Empty() bool {
	return in.Command == ""
}

// ReadLine reads one line of at most max bytes including the newline.
// When the line is longer, the rest of it is discarded from r and the
// truncated text is returned without a newline, so the next call starts on
// a fresh line. A zero max reads whole lines.
func ReadLine(r *bufio.Reader, max int) (string, error) {
	var buf []byte
	for {
		b, err := r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) && len(buf) > 0 {
				return string(buf), nil
			}
			return "", err
		}
		buf = append(buf, b)
		if b == '\n' {
			return string(buf), nil
		}
		if max > 0 && len(buf) >= max {
			drainLine(r)
			return string(buf), nil
		}
	}
}

func drainLine(r *bufio.Reader) {
	for {
		_, err := r.ReadSlice('\n')
		if !errors.Is(err, bufio.ErrBufferFull) {
			return
		}
	}
}

// ParseInput splits a raw line (which must end in a newline) into a command
// and its arguments. Runs of whitespace separate tokens. Each token is
// checked against its bound as it is read and parsing stops at the first
// token that is too long.
func ParseInput(raw string, limits repo.Limits) (Input, error) {
	body, ok := strings.CutSuffix(raw, "\n")
	if !ok {
		return Input{}, ErrLineTooLong
	}

	var in Input
	pos := PosCommand
	for _, tok := range strings.Fields(body) {
		if err := ValidateLength(tok, pos, limits); err != nil {
			return Input{}, err
		}
		switch pos {
		case PosCommand:
			in.Command = tok
		case PosAlias:
			in.Alias = tok
		case PosLink:
			in.Link = tok
		}
		if pos >= PosAlias {
			in.ArgCount++
		}
		pos++
	}
	return in, nil
}

// ValidateLength checks a token against the bound for its position.
// Tokens past the link share the link bound.
func ValidateLength(token string, pos Position, limits repo.Limits) error {
	var max int
	switch {
	case pos == PosCommand:
		max = limits.Command
	case pos == PosAlias:
		max = limits.Alias
	default:
		max = limits.Link
	}
	if max > 0 && len(token) > max {
		return &ArgumentOverflowError{Position: pos, Length: len(token), Limit: max}
	}
	return nil
}
