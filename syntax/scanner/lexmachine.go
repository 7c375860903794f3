package scanner

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/hiibolt/requiem"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

/*
Lexmachine has to be initialized by providing keywords, literals and regular
expressions:

	var literals []string       // The tokens representing literal strings
	var keywords []string       // The keyword tokens
	var tokenIds map[string]int // A map from the token names to their int IDs

	init := func(lexer *lexmachine.Lexer) {
		// Skip      is a pre-defined action which ignores the scanned match
		// MakeToken is a pre-defined action which wraps a scanned match into
		//           a token
	}
	LM, err := NewLMAdapter(init, literals, keywords, tokenIds)

Keywords match case-insensitively and are added before the patterns of init,
so an identifier pattern will not shadow a keyword of equal length.
*/

// LMAdapter is a lexmachine adapter to use lexmachine as a scanner.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
}

// NewLMAdapter creates a new lexmachine adapter. It receives a list of
// literals ('[', ';', …), a list of keywords ("scene", "act", …) and a
// map for translating token strings to their values.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(init func(*lexmachine.Lexer), literals []string, keywords []string,
	tokenIds map[string]int) (*LMAdapter, error) {
	//
	adapter := &LMAdapter{}
	adapter.Lexer = lexmachine.NewLexer()
	for _, name := range keywords {
		id, ok := tokenIds[name]
		if !ok {
			return nil, fmt.Errorf("no token id for keyword %q", name)
		}
		adapter.Lexer.Add([]byte(caseless(name)), MakeToken(name, id))
	}
	init(adapter.Lexer)
	for _, lit := range literals {
		id, ok := tokenIds[lit]
		if !ok {
			return nil, fmt.Errorf("no token id for literal %q", lit)
		}
		r := "\\" + strings.Join(strings.Split(lit, ""), "\\")
		adapter.Lexer.Add([]byte(r), MakeToken(lit, id))
	}
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// caseless turns a keyword into a regular expression matching it without
// regard to case, e.g. "act" ⇒ "[aA][cC][tT]".
func caseless(keyword string) string {
	var b strings.Builder
	for _, r := range keyword {
		lower, upper := unicode.ToLower(r), unicode.ToUpper(r)
		if lower == upper {
			b.WriteRune(r)
			continue
		}
		b.WriteByte('[')
		b.WriteRune(lower)
		b.WriteRune(upper)
		b.WriteByte(']')
	}
	return b.String()
}

// Scanner creates a scanner for a given input. The scanner will implement the
// Tokenizer interface.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return &LMScanner{}, err
	}
	return &LMScanner{scanner: s, Error: logError}, nil
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// Tokenizer interface.
type LMScanner struct {
	scanner *lexmachine.Scanner
	Error   func(error)
	done    bool
}

var _ Tokenizer = (*LMScanner)(nil)

// SetErrorHandler sets an error handler for the scanner.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = logError
		return
	}
	lms.Error = h
}

// NextToken is part of the Tokenizer interface.
//
// Unconsumed input is reported to the error handler and skipped. After the
// end of input, NextToken keeps returning EOF.
func (lms *LMScanner) NextToken() requiem.Token {
	if lms.done || lms.scanner == nil {
		return lms.eof()
	}
	tok, err, eof := lms.scanner.Next()
	for err != nil {
		lms.Error(err)
		ui, is := err.(*machines.UnconsumedInput)
		if !is {
			lms.done = true
			return lms.eof()
		}
		next := ui.FailTC
		if next <= ui.StartTC {
			next = ui.StartTC + 1
		}
		lms.scanner.TC = next
		tok, err, eof = lms.scanner.Next()
	}
	if eof {
		lms.done = true
		return lms.eof()
	}
	token := tok.(*lexmachine.Token)
	tracer().Debugf("token %d | %q", token.Type, token.Lexeme)
	from := uint64(token.TC)
	return MakeDefaultToken(
		requiem.TokType(token.Type),
		string(token.Lexeme),
		requiem.Span{from, from + uint64(len(token.Lexeme))},
	)
}

func (lms *LMScanner) eof() requiem.Token {
	var at uint64
	if lms.scanner != nil {
		at = uint64(lms.scanner.TC)
	}
	return MakeDefaultToken(EOF, "", requiem.Span{at, at})
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
func MakeToken(name string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}
