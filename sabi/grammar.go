package sabi

import (
	"sync"

	"github.com/hiibolt/requiem/syntax"
	"github.com/hiibolt/requiem/syntax/ll"
	"github.com/hiibolt/requiem/syntax/scanner"
)

// --- Grammar ---------------------------------------------------------------

// Program     ::=  Seps Scenes
// Scenes      ::=  Scene Seps Scenes  |  ε
// Scene       ::=  'scene' SceneID '{' Body '}'
// SceneID     ::=  string  |  id
// Seps        ::=  Sep Seps  |  ε
// Sep         ::=  newline  |  ';'
// Body        ::=  Sep Body  |  Statement StmtEnd  |  ε
// StmtEnd     ::=  Sep Body  |  ε
// Statement   ::=  Code  |  Stage  |  Dialogue
// Code        ::=  Log  |  Set
// Log         ::=  'log' '(' Expr ExprList ')'
// ExprList    ::=  ',' Expr ExprList  |  ε
// Set         ::=  'set' id '=' Expr
// Stage       ::=  Background  |  GUI  |  SceneChange  |  ActChange  |  Character
// Background  ::=  'background' Expr
// GUI         ::=  'gui' id Expr
// SceneChange ::=  'scene' Expr
// ActChange   ::=  'act' Expr
// Character   ::=  'character' Actor Words
// Actor       ::=  id  |  string  |  keyword
// Words       ::=  Word Words  |  ε
// Word        ::=  id  |  '[' id ']'
// Dialogue    ::=  Speaker Emotion ':' Line
// Speaker     ::=  id  |  string
// Emotion     ::=  '[' id ']'  |  ε
// Line        ::=  Part Parts
// Parts       ::=  Part Parts  |  ε
// Part        ::=  Expr  |  '{' Stage '}'
// Expr        ::=  Term ExprTail
// ExprTail    ::=  Infix Term ExprTail  |  ε
// Infix       ::=  '+'
// Term        ::=  string  |  number  |  id  |  '(' Expr ')'
//
// Comments starting with '//' will be filtered by the scanner.
//
func makeSabiGrammar() (*syntax.LLAnalysis, error) {
	b := syntax.NewGrammarBuilder("sabi")
	b.LHS("Program").N("Seps").N("Scenes").End()
	b.LHS("Scenes").N("Scene").N("Seps").N("Scenes").End()
	b.LHS("Scenes").Epsilon()
	b.LHS("Scene").T(Token("scene")).N("SceneID").T(Token("{")).N("Body").T(Token("}")).End()
	b.LHS("SceneID").T(Token("STRING")).End()
	b.LHS("SceneID").T(Token("ID")).End()
	b.LHS("Seps").N("Sep").N("Seps").End()
	b.LHS("Seps").Epsilon()
	b.LHS("Sep").T(Token("NL")).End()
	b.LHS("Sep").T(Token(";")).End()
	b.LHS("Body").N("Sep").N("Body").End()
	b.LHS("Body").N("Statement").N("StmtEnd").End()
	b.LHS("Body").Epsilon()
	b.LHS("StmtEnd").N("Sep").N("Body").End()
	b.LHS("StmtEnd").Epsilon()
	b.LHS("Statement").N("Code").End()
	b.LHS("Statement").N("Stage").End()
	b.LHS("Statement").N("Dialogue").End()
	b.LHS("Code").N("Log").End()
	b.LHS("Code").N("Set").End()
	b.LHS("Log").T(Token("log")).T(Token("(")).N("Expr").N("ExprList").T(Token(")")).End()
	b.LHS("ExprList").T(Token(",")).N("Expr").N("ExprList").End()
	b.LHS("ExprList").Epsilon()
	b.LHS("Set").T(Token("set")).T(Token("ID")).T(Token("=")).N("Expr").End()
	b.LHS("Stage").N("Background").End()
	b.LHS("Stage").N("GUI").End()
	b.LHS("Stage").N("SceneChange").End()
	b.LHS("Stage").N("ActChange").End()
	b.LHS("Stage").N("Character").End()
	b.LHS("Background").T(Token("background")).N("Expr").End()
	b.LHS("GUI").T(Token("gui")).T(Token("ID")).N("Expr").End()
	b.LHS("SceneChange").T(Token("scene")).N("Expr").End()
	b.LHS("ActChange").T(Token("act")).N("Expr").End()
	b.LHS("Character").T(Token("character")).N("Actor").N("Words").End()
	b.LHS("Actor").T(Token("ID")).End()
	b.LHS("Actor").T(Token("STRING")).End()
	for _, kw := range keywords {
		b.LHS("Actor").T(Token(kw)).End()
	}
	b.LHS("Words").N("Word").N("Words").End()
	b.LHS("Words").Epsilon()
	b.LHS("Word").T(Token("ID")).End()
	b.LHS("Word").T(Token("[")).T(Token("ID")).T(Token("]")).End()
	b.LHS("Dialogue").N("Speaker").N("Emotion").T(Token(":")).N("Line").End()
	b.LHS("Speaker").T(Token("ID")).End()
	b.LHS("Speaker").T(Token("STRING")).End()
	b.LHS("Emotion").T(Token("[")).T(Token("ID")).T(Token("]")).End()
	b.LHS("Emotion").Epsilon()
	b.LHS("Line").N("Part").N("Parts").End()
	b.LHS("Parts").N("Part").N("Parts").End()
	b.LHS("Parts").Epsilon()
	b.LHS("Part").N("Expr").End()
	b.LHS("Part").T(Token("{")).N("Stage").T(Token("}")).End()
	b.LHS("Expr").N("Term").N("ExprTail").End()
	b.LHS("ExprTail").N("Infix").N("Term").N("ExprTail").End()
	b.LHS("ExprTail").Epsilon()
	b.LHS("Infix").T(Token("+")).End()
	b.LHS("Term").T(Token("STRING")).End()
	b.LHS("Term").T(Token("NUM")).End()
	b.LHS("Term").T(Token("ID")).End()
	b.LHS("Term").T(Token("(")).N("Expr").T(Token(")")).End()
	g, err := b.Grammar()
	if err != nil {
		return nil, err
	}
	return syntax.Analysis(g), nil
}

var grammar *syntax.LLAnalysis
var lexer *scanner.LMAdapter
var startErr error // error creating grammar, lexer or parser, if any

var startOnce sync.Once // monitors one-time creation of grammar and lexer

// setup creates the lexer and the grammar for sabi, once, and returns a
// fresh parser for it.
func setup() (*ll.Parser, error) {
	startOnce.Do(func() {
		tracer().Infof("Creating lexer")
		if lexer, startErr = Lexer(); startErr != nil { // MUST be called before grammar building !
			tracer().Errorf("Cannot create lexer: %v", startErr)
			return
		}
		tracer().Infof("Creating grammar")
		if grammar, startErr = makeSabiGrammar(); startErr != nil {
			tracer().Errorf("Cannot create grammar: %v", startErr)
			return
		}
		if startErr = grammar.Table().Err(); startErr != nil {
			tracer().Errorf("%v", startErr)
		}
	})
	if startErr != nil {
		return nil, startErr
	}
	return ll.NewParser(grammar)
}

// Grammar returns the analysed sabi grammar.
func Grammar() (*syntax.LLAnalysis, error) {
	if _, err := setup(); err != nil {
		return nil, err
	}
	return grammar, nil
}
