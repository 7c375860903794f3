package sabi

import (
	"errors"
	"fmt"

	"github.com/hiibolt/requiem"
	"github.com/hiibolt/requiem/ast"
	"github.com/hiibolt/requiem/syntax/ll"
	"github.com/hiibolt/requiem/syntax/ptree"
	"github.com/timtadh/lexmachine/machines"
	"golang.org/x/text/unicode/norm"
)

// Parse parses a sabi script and returns its parse tree. sourceID names the
// script in error messages, usually by its file path.
//
// Unrecognized input and input not conforming to the grammar are reported as
// *requiem.Error of kind SyntaxError, located at the offending input.
func Parse(sourceID, input string) (*ptree.Node, error) {
	parser, err := setup()
	if err != nil {
		return nil, err
	}
	scan, err := lexer.Scanner(input)
	if err != nil {
		return nil, requiem.Errorf(requiem.SyntaxError, "scanning "+sourceID, err)
	}
	var lexErr error
	scan.SetErrorHandler(func(e error) {
		tracer().Debugf("lexer: %v", e)
		if lexErr == nil {
			lexErr = e
		}
	})
	tree, err := parser.Parse(scan)
	if lexErr != nil {
		return nil, lexerError(sourceID, input, lexErr)
	}
	if err != nil {
		var perr *ll.ParseError
		if errors.As(err, &perr) {
			pos := requiem.PositionOf(sourceID, input, perr.Span().From())
			return nil, requiem.Errorf(requiem.SyntaxError, "", perr).At(pos)
		}
		return nil, requiem.Errorf(requiem.SyntaxError, "parsing "+sourceID, err)
	}
	return tree, nil
}

func lexerError(sourceID, input string, err error) error {
	var ui *machines.UnconsumedInput
	if errors.As(err, &ui) {
		pos := requiem.PositionOf(sourceID, input, uint64(ui.StartTC))
		at := uint64(ui.StartTC)
		cause := fmt.Errorf("unrecognized input %q", requiem.Span{at, at + 1}.Text(input))
		return requiem.Errorf(requiem.SyntaxError, "", cause).At(pos)
	}
	return requiem.Errorf(requiem.SyntaxError, "scanning "+sourceID, err)
}

// Compile parses a sabi script and builds an act from it. The script text is
// normalized to Unicode NFC before parsing.
//
// A script without scenes is an error wrapping ast.ErrEmptyAct; duplicate
// scene identifiers yield an error wrapping ast.ErrDuplicateScene. Both are
// of kind BuildError.
func Compile(sourceID, input string) (*ast.Act, error) {
	input = norm.NFC.String(input)
	tree, err := Parse(sourceID, input)
	if err != nil {
		return nil, err
	}
	value, err := newASTBuilder(sourceID, input).Build(tree)
	if err != nil {
		return nil, err
	}
	act, ok := value.(*ast.Act)
	if !ok {
		return nil, requiem.Errorf(requiem.BuildError, "building "+sourceID,
			fmt.Errorf("unexpected result of type %T", value))
	}
	tracer().Infof("compiled %s: %d scenes, %d statements, entrypoint '%s'",
		sourceID, len(act.Scenes), act.StatementCount(), act.Entrypoint)
	return act, nil
}
