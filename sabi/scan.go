package sabi

import (
	"fmt"
	"sync"

	"github.com/hiibolt/requiem/syntax/scanner"
	"github.com/timtadh/lexmachine"
)

// The tokens representing literal one-char lexemes
var literals = []string{"{", "}", "(", ")", "[", "]", ":", ",", "=", "+", ";"}

// The keyword tokens
var keywords = []string{"scene", "act", "log", "set", "background", "gui", "character"}

// tokenIds will be set in initTokens()
var tokenIds map[string]int // A map from the token names to their token types

var initOnce sync.Once // monitors one-time initialization
func initTokens() {
	initOnce.Do(func() {
		tokenIds = make(map[string]int)
		tokenIds["NL"] = int('\n')
		tokenIds["ID"] = scanner.Ident
		tokenIds["NUM"] = scanner.Float
		tokenIds["STRING"] = scanner.String
		for i, kw := range keywords {
			tokenIds[kw] = i + 1
		}
		for _, lit := range literals {
			r := lit[0]
			tokenIds[lit] = int(r)
		}
	})
}

// Token returns a token name and its value.
func Token(t string) (string, int) {
	initTokens()
	id, ok := tokenIds[t]
	if !ok {
		panic(fmt.Errorf("unknown token: %s", t))
	}
	return t, id
}

// TokenName returns the name of a token type, suitable for error messages.
func TokenName(id int) string {
	initTokens()
	for name, tid := range tokenIds {
		if tid == id {
			return name
		}
	}
	if id == scanner.EOF {
		return "#eof"
	}
	return fmt.Sprintf("token(%d)", id)
}

// Lexer creates a new lexmachine lexer for sabi.
func Lexer() (*scanner.LMAdapter, error) {
	initTokens()
	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`//[^\n]*`), scanner.Skip) // skip comments
		lexer.Add([]byte(`( |\t|\r)+`), scanner.Skip)
		lexer.Add([]byte(`\n`), makeToken("NL"))
		lexer.Add([]byte(`\"[^"]*\"`), makeToken("STRING"))
		lexer.Add([]byte(`[0-9]+(\.[0-9]+)?`), makeToken("NUM"))
		lexer.Add([]byte(`([a-z]|[A-Z]|_)([a-z]|[A-Z]|[0-9]|_)*`), makeToken("ID"))
	}
	adapter, err := scanner.NewLMAdapter(init, literals, keywords, tokenIds)
	if err != nil {
		return nil, err
	}
	return adapter, nil
}

func makeToken(s string) lexmachine.Action {
	id, ok := tokenIds[s]
	if !ok {
		panic(fmt.Errorf("unknown token: %s", s))
	}
	return scanner.MakeToken(s, id)
}
