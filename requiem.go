package requiem

import (
	"fmt"
	"strings"
)

// --- Tokens ----------------------------------------------------------------

// TokType is a category type for a Token. Constants are defined by the
// language packages (see package sabi).
type TokType int

// TokTypeStringer is a type to be provided by a language package to be able
// to print out token categories.
type TokTypeStringer func(TokType) string

// Token represents an input token. Tokens are produced by a scanner and
// reflect terminals of a grammar.
//
// An example would be a token for a string literal:
//
//    TokType = String        // category of this token (language specific)
//    Lexeme  = `"Hello"`     // lexeme as it appeared in the input
//    Value   = nil           // set by a scanner, if it cares to
//    Span    = 67…74         // byte offsets within the script
//
type Token interface {
	TokType() TokType
	Lexeme() string
	Value() interface{}
	Span() Span
}

// --- Spans -----------------------------------------------------------------

// Span captures a run of input bytes. Parse tree nodes track which input
// positions they cover. A span denotes a start position and the position
// just behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) IsNull() bool {
	return s == Span{}
}

// Extend returns the smallest span covering s and other.
// Empty spans do not contribute.
func (s Span) Extend(other Span) Span {
	if other.Len() == 0 {
		return s
	}
	if s.Len() == 0 {
		return other
	}
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

// Text returns the part of source which s covers, clipped to the length of
// source.
func (s Span) Text(source string) string {
	from, to := clip(s[0], source), clip(s[1], source)
	if from > to {
		return ""
	}
	return source[from:to]
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}

func clip(pos uint64, source string) int {
	if pos > uint64(len(source)) {
		return len(source)
	}
	return int(pos)
}

// --- Positions -------------------------------------------------------------

// Position is a human readable location within a named source.
type Position struct {
	Source string // name of the script, usually a file path
	Line   int    // 1-based
	Column int    // 1-based, counting bytes
}

// PositionOf converts a byte offset within source into line and column.
func PositionOf(sourceID, source string, offset uint64) Position {
	off := clip(offset, source)
	before := source[:off]
	line := strings.Count(before, "\n") + 1
	col := off - strings.LastIndexByte(before, '\n')
	return Position{Source: sourceID, Line: line, Column: col}
}

func (p Position) String() string {
	if p.Source == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.Source, p.Line, p.Column)
}
