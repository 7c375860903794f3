package requiem

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies errors by the stage at which they occur.
type ErrorKind int

// Error kinds. Syntax, Build and Load errors abort startup. Evaluation and
// Navigation errors happen while playing and are recoverable.
const (
	UnknownError ErrorKind = iota
	SyntaxError
	BuildError
	LoadError
	EvaluationError
	NavigationError
)

func (k ErrorKind) String() string {
	switch k {
	case SyntaxError:
		return "syntax error"
	case BuildError:
		return "build error"
	case LoadError:
		return "load error"
	case EvaluationError:
		return "evaluation error"
	case NavigationError:
		return "navigation error"
	}
	return "error"
}

// Error is the error type used throughout requiem. It carries the kind of
// error, the operation which has been attempted, an optional location and
// the underlying cause.
type Error struct {
	Kind ErrorKind
	Op   string   // operation being attempted, e.g. "change to scene 'x'"
	Pos  Position // optional location, zero if unknown
	Err  error    // cause
}

// Errorf creates an error of kind k for operation op, wrapping err.
func Errorf(k ErrorKind, op string, err error) *Error {
	return &Error{Kind: k, Op: op, Err: err}
}

// At returns a copy of e located at pos.
func (e *Error) At(pos Position) *Error {
	located := *e
	located.Pos = pos
	return &located
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Pos.Line > 0 {
		fmt.Fprintf(&b, " at %s", e.Pos)
	}
	if e.Op != "" {
		b.WriteString(": ")
		b.WriteString(e.Op)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the outermost requiem error within err's chain,
// or UnknownError.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return UnknownError
}
