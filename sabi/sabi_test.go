package sabi

import (
	"errors"
	"strings"
	"testing"

	"github.com/hiibolt/requiem"
	"github.com/hiibolt/requiem/ast"
	"github.com/hiibolt/requiem/syntax/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

const introScript = `// the first act
scene "intro" {
    set name = "World"
    background "school_gate"
    character Nayu fade in [happy]
    Nayu [happy]: "Hello " + name {background "classroom"} "Shall we go in?"
    log("visited intro", 1)
    scene "hallway"
}

scene hallway {
    gui textbox "blue"; act "act_two"
}
`

func TestTokens(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "requiem.sabi")
	defer teardown()
	//
	lm, err := Lexer()
	if err != nil {
		t.Fatal(err)
	}
	scan, err := lm.Scanner("SCENE scenes 1.5 \"a b\" [x]: // comment\n+")
	if err != nil {
		t.Fatal(err)
	}
	expected := []string{"scene", "ID", "NUM", "STRING", "[", "ID", "]", ":", "NL", "+"}
	for i, name := range expected {
		tok := scan.NextToken()
		if _, id := Token(name); int(tok.TokType()) != id {
			t.Errorf("token #%d: expected %s, have %s (%q)", i, name, TokenName(int(tok.TokType())), tok.Lexeme())
		}
	}
	if tok := scan.NextToken(); tok.TokType() != scanner.EOF {
		t.Errorf("expected end of input, have %q", tok.Lexeme())
	}
}

func TestGrammarIsLL1(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "requiem.sabi")
	defer teardown()
	//
	ga, err := Grammar()
	if err != nil {
		t.Fatal(err)
	}
	if n := len(ga.Table().Conflicts()); n != 0 {
		t.Fatalf("expected sabi grammar to be LL(1), has %d conflicts", n)
	}
	first := ga.First(ga.Grammar().NonTerminal("Statement"))
	for _, name := range []string{"log", "set", "background", "gui", "scene", "act", "character", "ID", "STRING"} {
		if _, id := Token(name); !first.Contains(id) {
			t.Errorf("expected %s in FIRST(Statement)", name)
		}
	}
	if _, id := Token("NUM"); first.Contains(id) {
		t.Errorf("did not expect a number to start a statement")
	}
}

func TestParse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "requiem.sabi")
	defer teardown()
	//
	inputs := []string{
		"",
		"\n\n",
		`scene a {}`,
		"scene a {\n}\n\nscene b { log(1) }",
		`Scene a { BACKGROUND "x" ; Gui namebox "y" }`,
		introScript,
	}
	for _, input := range inputs {
		tree, err := Parse("test.sabi", input)
		if err != nil {
			t.Errorf("parsing %q: %v", input, err)
			continue
		}
		if tree.Extent.To() > uint64(len(input)) {
			t.Errorf("parse tree extent %v exceeds input", tree.Extent)
		}
	}
}

func TestSyntaxErrorPosition(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "requiem.sabi")
	defer teardown()
	//
	_, err := Parse("broken.sabi", "scene \"a\" {\n    background\n}")
	if requiem.KindOf(err) != requiem.SyntaxError {
		t.Fatalf("expected syntax error, have %v", err)
	}
	var rerr *requiem.Error
	if !errors.As(err, &rerr) {
		t.Fatalf("expected requiem error, have %T", err)
	}
	if rerr.Pos.Source != "broken.sabi" || rerr.Pos.Line != 2 || rerr.Pos.Column != 15 {
		t.Errorf("expected error at broken.sabi:2:15, is at %s", rerr.Pos)
	}
	_, err = Parse("lex.sabi", "scene \"a\" {\n  @\n}")
	if !errors.As(err, &rerr) || rerr.Kind != requiem.SyntaxError {
		t.Fatalf("expected syntax error for unrecognized input, have %v", err)
	}
	if rerr.Pos.Line != 2 || rerr.Pos.Column != 3 {
		t.Errorf("expected lexer error at 2:3, is at %s", rerr.Pos)
	}
	inputs := []string{
		`scene a { log() }`,
		`scene { }`,
		`scene a { Nayu "hi" }`,
		`scene a { background "x" "y" }`,
		`scene a { set = 1 }`,
		`scene a { log(1 + ) }`,
		`scene a {`,
	}
	for _, input := range inputs {
		if _, err := Parse("test.sabi", input); requiem.KindOf(err) != requiem.SyntaxError {
			t.Errorf("expected syntax error for %q, have %v", input, err)
		}
	}
}

func TestCompile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "requiem.sabi")
	defer teardown()
	//
	act, err := Compile("intro.sabi", introScript)
	if err != nil {
		t.Fatal(err)
	}
	if act.Entrypoint != "intro" || len(act.Scenes) != 2 {
		t.Fatalf("expected 2 scenes with entrypoint 'intro', have %v", act.SceneIDs())
	}
	expected := []string{
		`Assign(name = "World")`,
		`BackgroundChange("school_gate")`,
		`CharacterChange(Nayu, Spawn(happy, fading=true))`,
		`CharacterChange(Nayu, EmotionChange(happy))`,
		`Dialogue(Nayu: "Hello " + name)`,
		`BackgroundChange("classroom")`,
		`Dialogue(Nayu: "Shall we go in?")`,
		`Log("visited intro", 1)`,
		`SceneChange("hallway")`,
	}
	checkStatements(t, act.Scenes["intro"], expected)
	checkStatements(t, act.Scenes["hallway"], []string{
		`GUIChange(textbox-background, "blue")`,
		`ActChange("act_two")`,
	})
}

func TestCompileExpressions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "requiem.sabi")
	defer teardown()
	//
	act, err := Compile("expr.sabi", `scene s { log(1 + 2 + "x", ("a" + 1) + 0.5) }`)
	if err != nil {
		t.Fatal(err)
	}
	log := act.Scenes["s"].Statements[0].(ast.Log)
	if len(log.Exprs) != 2 {
		t.Fatalf("expected 2 log expressions, have %d", len(log.Exprs))
	}
	l := ast.Add{LHS: ast.Add{LHS: ast.Number(1), RHS: ast.Number(2)}, RHS: ast.String("x")}
	if log.Exprs[0] != l {
		t.Errorf("expected left-associative addition, have %#v", log.Exprs[0])
	}
	if v, _ := ast.EvaluateToText(log.Exprs[0], nil); v != "3x" {
		t.Errorf("expected 1 + 2 + \"x\" to evaluate to \"3x\", is %q", v)
	}
	if v, _ := ast.EvaluateToText(log.Exprs[1], nil); v != "a10.5" {
		t.Errorf("expected (\"a\" + 1) + 0.5 to evaluate to \"a10.5\", is %q", v)
	}
}

func TestCharacterCommands(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "requiem.sabi")
	defer teardown()
	//
	script := `scene s {
    character Nayu appears [sad]
    character "Mr. Tanaka" appears
    character Nayu fade out
    character Nayu disappears
    character Nayu [angry]
}`
	act, err := Compile("chars.sabi", script)
	if err != nil {
		t.Fatal(err)
	}
	checkStatements(t, act.Scenes["s"], []string{
		`CharacterChange(Nayu, Spawn(sad, fading=false))`,
		`CharacterChange(Mr. Tanaka, Spawn(None, fading=false))`,
		`CharacterChange(Nayu, Despawn(fading=true))`,
		`CharacterChange(Nayu, Despawn(fading=false))`,
		`CharacterChange(Nayu, EmotionChange(angry))`,
	})
}

func TestDialogueRuns(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "requiem.sabi")
	defer teardown()
	//
	script := `scene s {
    Nayu: "a" "b" {background "x"} "c"
    Nayu: some text
    Nayu [sad]: I have (count) apples
    Nayu: "Hi" there
}`
	act, err := Compile("runs.sabi", script)
	if err != nil {
		t.Fatal(err)
	}
	checkStatements(t, act.Scenes["s"], []string{
		`Dialogue(Nayu: "a" + "b")`,
		`BackgroundChange("x")`,
		`Dialogue(Nayu: "c")`,
		`Dialogue(Nayu: "some text")`,
		`CharacterChange(Nayu, EmotionChange(sad))`,
		`Dialogue(Nayu: "I have" + " " + count + " " + "apples")`,
		`Dialogue(Nayu: "Hi" + " " + "there")`,
	})
	text, err := ast.EvaluateToText(act.Scenes["s"].Statements[3].(ast.Dialogue).Text, nil)
	if err != nil || text != "some text" {
		t.Errorf("expected free-form text to need no variables, have %q (%v)", text, err)
	}
}

func TestKeywordNamedCharacters(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "requiem.sabi")
	defer teardown()
	//
	script := `scene s {
    character Act appears
    character SCENE fade out
    "Act": hello
}`
	act, err := Compile("names.sabi", script)
	if err != nil {
		t.Fatal(err)
	}
	checkStatements(t, act.Scenes["s"], []string{
		`CharacterChange(Act, Spawn(None, fading=false))`,
		`CharacterChange(SCENE, Despawn(fading=true))`,
		`Dialogue(Act: "hello")`,
	})
	if _, err := Parse("names.sabi", "scene s {\n    Act: hello\n}"); requiem.KindOf(err) != requiem.SyntaxError {
		t.Errorf("expected unquoted keyword speaker to be a syntax error, have %v", err)
	}
}

func TestBuildErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "requiem.sabi")
	defer teardown()
	//
	inputs := []string{
		"scene a {}\nscene b {}\nscene a {}",
		"// nothing here\n",
		`scene a { gui sidebar "x" }`,
		`scene a { character Nayu dances }`,
	}
	causes := []error{ast.ErrDuplicateScene, ast.ErrEmptyAct, ast.ErrUnknownGUITarget, ast.ErrUnknownVerb}
	for i, input := range inputs {
		_, err := Compile("bad.sabi", input)
		if requiem.KindOf(err) != requiem.BuildError {
			t.Errorf("expected build error for %q, have %v", input, err)
		}
		if !errors.Is(err, causes[i]) {
			t.Errorf("expected error %q for %q, have %v", causes[i], input, err)
		}
	}
	_, err := Compile("dup.sabi", "scene a {}\nscene b {}\nscene a {}")
	var rerr *requiem.Error
	if errors.As(err, &rerr) && rerr.Pos.Line != 3 {
		t.Errorf("expected duplicate scene to be reported at line 3, is at %s", rerr.Pos)
	}
}

func TestCompileIsStable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "requiem.sabi")
	defer teardown()
	//
	act1, err := Compile("intro.sabi", introScript)
	if err != nil {
		t.Fatal(err)
	}
	act2, _ := Compile("intro.sabi", introScript)
	if act1.StatementCount() != act2.StatementCount() || act1.StatementCount() != 11 {
		t.Errorf("expected 11 statements in both compiles, have %d and %d",
			act1.StatementCount(), act2.StatementCount())
	}
	fp1, _ := ast.Fingerprint(act1)
	fp2, _ := ast.Fingerprint(act2)
	if fp1 != fp2 || fp1 == "" {
		t.Errorf("expected stable fingerprints, have %q and %q", fp1, fp2)
	}
	act3, _ := Compile("intro.sabi", strings.Replace(introScript, "classroom", "library", 1))
	if fp3, _ := ast.Fingerprint(act3); fp3 == fp1 {
		t.Errorf("expected fingerprint to change with script content")
	}
}

func checkStatements(t *testing.T, scene *ast.Scene, expected []string) {
	t.Helper()
	if scene == nil {
		t.Fatalf("scene missing")
	}
	if scene.Len() != len(expected) {
		t.Errorf("expected %d statements in scene '%s', have %d", len(expected), scene.ID, scene.Len())
	}
	for i, st := range scene.Statements {
		if i < len(expected) && st.String() != expected[i] {
			t.Errorf("statement #%d of '%s': expected %s, have %s", i, scene.ID, expected[i], st)
		}
	}
}
