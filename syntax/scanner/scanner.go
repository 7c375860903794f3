/*
Package scanner defines an interface for scanners to be used with parsers of
package syntax/ll.

Two scanner implementations are provided: (1) a thin wrapper over the Go std
lib 'text/scanner', handy for small test grammars, and (2) an adapter for
lexmachine, which is what the sabi language uses.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2024–2025 The Requiem Authors

*/
package scanner

import (
	"io"
	"text/scanner"

	"github.com/hiibolt/requiem"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'requiem.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("requiem.scanner")
}

// EOF is identical to text/scanner.EOF.
// Token types are replicated here for practical reasons.
const (
	EOF     = scanner.EOF
	Ident   = scanner.Ident
	Int     = scanner.Int
	Float   = scanner.Float
	String  = scanner.String
	Comment = scanner.Comment
)

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() requiem.Token
	SetErrorHandler(func(error))
}

// GoTokenizer is a tokenizer backed by scanner.Scanner.
// Create one with NewGoTokenizer.
type GoTokenizer struct {
	scanner.Scanner
	Error func(error) // error handler
}

var _ Tokenizer = (*GoTokenizer)(nil)

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// NewGoTokenizer creates a tokenizer accepting tokens similar to the Go language.
// Comments are skipped.
func NewGoTokenizer(sourceID string, input io.Reader) *GoTokenizer {
	t := &GoTokenizer{Error: logError}
	t.Init(input)
	t.Filename = sourceID
	t.Mode |= scanner.SkipComments
	return t
}

// SetErrorHandler sets an error handler for the scanner.
func (t *GoTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = logError
		return
	}
	t.Error = h
}

// NextToken is part of the Tokenizer interface.
func (t *GoTokenizer) NextToken() requiem.Token {
	tok := t.Scan()
	if tok == scanner.EOF {
		tracer().Debugf("GoTokenizer reached end of input")
	}
	return DefaultToken{
		kind:   requiem.TokType(tok),
		lexeme: t.TokenText(),
		span:   requiem.Span{uint64(t.Position.Offset), uint64(t.Pos().Offset)},
	}
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used by the Go
// tokenizer as well as the lexmachine scanner.
type DefaultToken struct {
	kind   requiem.TokType
	lexeme string
	Val    interface{}
	span   requiem.Span
}

// MakeDefaultToken creates a token without a value.
func MakeDefaultToken(typ requiem.TokType, lexeme string, span requiem.Span) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
	}
}

func (t DefaultToken) TokType() requiem.TokType {
	return t.kind
}

func (t DefaultToken) Value() interface{} {
	return t.Val
}

func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

func (t DefaultToken) Span() requiem.Span {
	return t.span
}
