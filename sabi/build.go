package sabi

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hiibolt/requiem"
	"github.com/hiibolt/requiem/ast"
	"github.com/hiibolt/requiem/syntax/ptree"
)

// linePart is either a piece of dialogue text or an embedded stage command.
// Bare words of a dialogue line are literal text.
type linePart struct {
	text  ast.Expr
	word  bool
	stage ast.Statement
}

// sceneNode is a built scene together with the input it stems from.
type sceneNode struct {
	scene *ast.Scene
	span  requiem.Span
}

// newASTBuilder returns an AST builder for sabi parse trees. Rewriters are
// registered per non-terminal; Code, Stage, Seps and Sep pass their values
// through.
func newASTBuilder(sourceID, source string) *ast.Builder {
	ab := ast.NewBuilder(sourceID, source)
	// expressions
	ab.AddRewriter("Term", rewriteTerm)
	ab.AddRewriter("ExprTail", rewriteExprTail)
	ab.AddRewriter("Expr", rewriteExpr)
	ab.AddRewriter("ExprList", rewriteExprList)
	// code statements
	ab.AddRewriter("Log", rewriteLog)
	ab.AddRewriter("Set", rewriteSet)
	// stage commands
	ab.AddRewriter("Background", rewriteBackground)
	ab.AddRewriter("GUI", rewriteGUI)
	ab.AddRewriter("SceneChange", rewriteSceneChange)
	ab.AddRewriter("ActChange", rewriteActChange)
	ab.AddRewriter("Character", rewriteCharacter)
	ab.AddRewriter("Words", rewriteWords)
	ab.AddRewriter("Word", rewriteWord)
	// dialogue
	ab.AddRewriter("Dialogue", rewriteDialogue)
	ab.AddRewriter("Speaker", rewriteName)
	ab.AddRewriter("Actor", rewriteName)
	ab.AddRewriter("Emotion", rewriteEmotion)
	ab.AddRewriter("Line", rewriteParts)
	ab.AddRewriter("Parts", rewriteParts)
	ab.AddRewriter("Part", rewritePart)
	// structure
	ab.AddRewriter("Statement", rewriteStatement)
	ab.AddRewriter("Body", rewriteBody)
	ab.AddRewriter("StmtEnd", rewriteBody)
	ab.AddRewriter("SceneID", rewriteName)
	ab.AddRewriter("Scene", rewriteScene)
	ab.AddRewriter("Scenes", rewriteScenes)
	ab.AddRewriter("Program", func(rhs []*ptree.RuleNode, ctxt ptree.RuleCtxt) (interface{}, error) {
		return buildAct(sourceID, source, rhs[1].Value)
	})
	ab.AddRewriter("S'", func(rhs []*ptree.RuleNode, ctxt ptree.RuleCtxt) (interface{}, error) {
		return rhs[0].Value, nil // drop #eof
	})
	return ab
}

// --- Expressions -----------------------------------------------------------

// Term ::= string | number | id | '(' Expr ')'
func rewriteTerm(rhs []*ptree.RuleNode, ctxt ptree.RuleCtxt) (interface{}, error) {
	if len(rhs) == 3 {
		return rhs[1].Value, nil
	}
	tok := rhs[0].Token()
	_, num := Token("NUM")
	_, str := Token("STRING")
	switch int(tok.TokType()) {
	case num:
		n, err := strconv.ParseFloat(tok.Lexeme(), 64)
		if err != nil {
			return nil, fmt.Errorf("malformed number %q: %w", tok.Lexeme(), err)
		}
		return ast.Number(n), nil
	case str:
		return ast.String(unquote(tok.Lexeme())), nil
	}
	return ast.Variable(tok.Lexeme()), nil
}

// ExprTail ::= Infix Term ExprTail | ε
func rewriteExprTail(rhs []*ptree.RuleNode, ctxt ptree.RuleCtxt) (interface{}, error) {
	if len(rhs) == 0 {
		return []ast.Operation(nil), nil
	}
	op := ast.Operation{Operator: lexeme(rhs[0].Value), Operand: asExpr(rhs[1].Value)}
	rest, _ := rhs[2].Value.([]ast.Operation)
	return append([]ast.Operation{op}, rest...), nil
}

// Expr ::= Term ExprTail
func rewriteExpr(rhs []*ptree.RuleNode, ctxt ptree.RuleCtxt) (interface{}, error) {
	tail, _ := rhs[1].Value.([]ast.Operation)
	return ast.Climb(asExpr(rhs[0].Value), tail)
}

// ExprList ::= ',' Expr ExprList | ε
func rewriteExprList(rhs []*ptree.RuleNode, ctxt ptree.RuleCtxt) (interface{}, error) {
	if len(rhs) == 0 {
		return []ast.Expr(nil), nil
	}
	rest, _ := rhs[2].Value.([]ast.Expr)
	return append([]ast.Expr{asExpr(rhs[1].Value)}, rest...), nil
}

// --- Code statements -------------------------------------------------------

// Log ::= 'log' '(' Expr ExprList ')'
func rewriteLog(rhs []*ptree.RuleNode, ctxt ptree.RuleCtxt) (interface{}, error) {
	rest, _ := rhs[3].Value.([]ast.Expr)
	return ast.Log{Exprs: append([]ast.Expr{asExpr(rhs[2].Value)}, rest...)}, nil
}

// Set ::= 'set' id '=' Expr
func rewriteSet(rhs []*ptree.RuleNode, ctxt ptree.RuleCtxt) (interface{}, error) {
	return ast.Assign{Name: rhs[1].Token().Lexeme(), Value: asExpr(rhs[3].Value)}, nil
}

// --- Stage commands --------------------------------------------------------

func rewriteBackground(rhs []*ptree.RuleNode, ctxt ptree.RuleCtxt) (interface{}, error) {
	return ast.BackgroundChange{Background: asExpr(rhs[1].Value)}, nil
}

// GUI ::= 'gui' id Expr
func rewriteGUI(rhs []*ptree.RuleNode, ctxt ptree.RuleCtxt) (interface{}, error) {
	target, err := ast.GUITargetByName(rhs[1].Token().Lexeme())
	if err != nil {
		return nil, err
	}
	return ast.GUIChange{Target: target, Sprite: asExpr(rhs[2].Value)}, nil
}

func rewriteSceneChange(rhs []*ptree.RuleNode, ctxt ptree.RuleCtxt) (interface{}, error) {
	return ast.SceneChange{Scene: asExpr(rhs[1].Value)}, nil
}

func rewriteActChange(rhs []*ptree.RuleNode, ctxt ptree.RuleCtxt) (interface{}, error) {
	return ast.ActChange{Act: asExpr(rhs[1].Value)}, nil
}

// Character ::= 'character' Actor Words
func rewriteCharacter(rhs []*ptree.RuleNode, ctxt ptree.RuleCtxt) (interface{}, error) {
	name, _ := rhs[1].Value.(string)
	words, _ := rhs[2].Value.([]ast.Word)
	op, err := ast.CharacterOperationFrom(words)
	if err != nil {
		return nil, fmt.Errorf("character %s: %w", name, err)
	}
	return ast.CharacterChange{Character: name, Operation: op}, nil
}

// Words ::= Word Words | ε
func rewriteWords(rhs []*ptree.RuleNode, ctxt ptree.RuleCtxt) (interface{}, error) {
	if len(rhs) == 0 {
		return []ast.Word(nil), nil
	}
	w, _ := rhs[0].Value.(ast.Word)
	rest, _ := rhs[1].Value.([]ast.Word)
	return append([]ast.Word{w}, rest...), nil
}

// Word ::= id | '[' id ']'
func rewriteWord(rhs []*ptree.RuleNode, ctxt ptree.RuleCtxt) (interface{}, error) {
	if len(rhs) == 3 {
		return ast.Word{Text: rhs[1].Token().Lexeme(), Bracketed: true}, nil
	}
	return ast.Word{Text: rhs[0].Token().Lexeme()}, nil
}

// --- Dialogue --------------------------------------------------------------

// Dialogue ::= Speaker Emotion ':' Line
//
// A dialogue line results in a sequence of statements: an emotion change if
// the line is annotated with an emotion, then a Dialogue statement for every
// run of text parts, interleaved with the embedded stage commands.
func rewriteDialogue(rhs []*ptree.RuleNode, ctxt ptree.RuleCtxt) (interface{}, error) {
	speaker, _ := rhs[0].Value.(string)
	emotion, _ := rhs[1].Value.(string)
	parts, _ := rhs[3].Value.([]linePart)
	var stmts []ast.Statement
	if emotion != "" {
		stmts = append(stmts, ast.CharacterChange{
			Character: speaker,
			Operation: ast.EmotionChange{Emotion: emotion},
		})
	}
	var run []linePart
	flush := func() {
		if len(run) > 0 {
			stmts = append(stmts, ast.Dialogue{Character: speaker, Text: joinRun(run)})
			run = nil
		}
	}
	for _, part := range parts {
		if part.stage != nil {
			flush()
			stmts = append(stmts, part.stage)
			continue
		}
		run = append(run, part)
	}
	flush()
	return stmts, nil
}

// joinRun concatenates adjacent text parts. Words are separated from their
// neighbours by a single space, expressions are concatenated as they are.
func joinRun(run []linePart) ast.Expr {
	var merged []linePart
	for _, p := range run {
		if n := len(merged); n > 0 && p.word && merged[n-1].word {
			prev := merged[n-1].text.(ast.String)
			merged[n-1].text = prev + " " + p.text.(ast.String)
			continue
		}
		merged = append(merged, p)
	}
	text := merged[0].text
	for i := 1; i < len(merged); i++ {
		if merged[i-1].word || merged[i].word {
			text = ast.Add{LHS: text, RHS: ast.String(" ")}
		}
		text = ast.Add{LHS: text, RHS: merged[i].text}
	}
	return text
}

// rewriteName rewrites an identifier or a string to plain text.
func rewriteName(rhs []*ptree.RuleNode, ctxt ptree.RuleCtxt) (interface{}, error) {
	tok := rhs[0].Token()
	if _, str := Token("STRING"); int(tok.TokType()) == str {
		return unquote(tok.Lexeme()), nil
	}
	return tok.Lexeme(), nil
}

// Emotion ::= '[' id ']' | ε
func rewriteEmotion(rhs []*ptree.RuleNode, ctxt ptree.RuleCtxt) (interface{}, error) {
	if len(rhs) == 0 {
		return "", nil
	}
	return rhs[1].Token().Lexeme(), nil
}

// Line ::= Part Parts   and   Parts ::= Part Parts | ε
func rewriteParts(rhs []*ptree.RuleNode, ctxt ptree.RuleCtxt) (interface{}, error) {
	if len(rhs) == 0 {
		return []linePart(nil), nil
	}
	p, _ := rhs[0].Value.(linePart)
	rest, _ := rhs[1].Value.([]linePart)
	return append([]linePart{p}, rest...), nil
}

// Part ::= Expr | '{' Stage '}'
//
// An expression consisting of nothing but an identifier is a word of text.
// Variables in dialogue lines have to be part of an operation or
// parenthesized.
func rewritePart(rhs []*ptree.RuleNode, ctxt ptree.RuleCtxt) (interface{}, error) {
	if len(rhs) == 3 {
		st, ok := rhs[1].Value.(ast.Statement)
		if !ok {
			return nil, fmt.Errorf("embedded stage command expected")
		}
		return linePart{stage: st}, nil
	}
	e := asExpr(rhs[0].Value)
	if v, ok := e.(ast.Variable); ok && rhs[0].Span().Len() == uint64(len(v)) {
		return linePart{text: ast.String(v), word: true}, nil
	}
	return linePart{text: e}, nil
}

// --- Structure -------------------------------------------------------------

// Statement ::= Code | Stage | Dialogue
func rewriteStatement(rhs []*ptree.RuleNode, ctxt ptree.RuleCtxt) (interface{}, error) {
	switch v := rhs[0].Value.(type) {
	case []ast.Statement:
		return v, nil
	case ast.Statement:
		return []ast.Statement{v}, nil
	}
	return nil, fmt.Errorf("statement expected, have %T", rhs[0].Value)
}

// Body ::= Sep Body | Statement StmtEnd | ε   and   StmtEnd ::= Sep Body | ε
func rewriteBody(rhs []*ptree.RuleNode, ctxt ptree.RuleCtxt) (interface{}, error) {
	if len(rhs) == 0 {
		return []ast.Statement(nil), nil
	}
	rest, _ := rhs[1].Value.([]ast.Statement)
	if rhs[0].Symbol().Name == "Sep" {
		return rest, nil
	}
	stmts, _ := rhs[0].Value.([]ast.Statement)
	return append(append([]ast.Statement(nil), stmts...), rest...), nil
}

// Scene ::= 'scene' SceneID '{' Body '}'
func rewriteScene(rhs []*ptree.RuleNode, ctxt ptree.RuleCtxt) (interface{}, error) {
	id, _ := rhs[1].Value.(string)
	stmts, _ := rhs[3].Value.([]ast.Statement)
	tracer().Debugf("scene '%s' with %d statements", id, len(stmts))
	return sceneNode{scene: &ast.Scene{ID: id, Statements: stmts}, span: ctxt.Span}, nil
}

// Scenes ::= Scene Seps Scenes | ε
func rewriteScenes(rhs []*ptree.RuleNode, ctxt ptree.RuleCtxt) (interface{}, error) {
	if len(rhs) == 0 {
		return []sceneNode(nil), nil
	}
	s, _ := rhs[0].Value.(sceneNode)
	rest, _ := rhs[2].Value.([]sceneNode)
	return append([]sceneNode{s}, rest...), nil
}

// buildAct assembles the scenes of a program into an act. The first scene
// becomes the entrypoint.
func buildAct(sourceID, source string, v interface{}) (interface{}, error) {
	scenes, _ := v.([]sceneNode)
	if len(scenes) == 0 {
		return nil, ast.ErrEmptyAct
	}
	act := ast.NewAct()
	for _, sn := range scenes {
		if err := act.AddScene(sn.scene); err != nil {
			pos := requiem.PositionOf(sourceID, source, sn.span.From())
			op := fmt.Sprintf("building Scene %q", sn.scene.ID)
			return nil, requiem.Errorf(requiem.BuildError, op, err).At(pos)
		}
	}
	return act, nil
}

// --- Helpers ---------------------------------------------------------------

func asExpr(v interface{}) ast.Expr {
	e, _ := v.(ast.Expr)
	return e
}

func lexeme(v interface{}) string {
	if tok, ok := v.(requiem.Token); ok {
		return tok.Lexeme()
	}
	return ""
}

func unquote(s string) string {
	return strings.TrimSuffix(strings.TrimPrefix(s, `"`), `"`)
}
