package ast

import (
	"fmt"
	"strings"
)

// Statement is one compiled instruction of a scene. It is either a
// CodeStatement, a StageCommand or a Dialogue.
type Statement interface {
	String() string
	statement()
}

// --- Code statements -------------------------------------------------------

// CodeStatement is a statement which is not visible to the player.
type CodeStatement interface {
	Statement
	code()
}

// Log writes its evaluated expressions, joined by single spaces, to the
// diagnostic channel.
type Log struct {
	Exprs []Expr
}

// Assign binds the evaluated value of an expression to a variable name.
type Assign struct {
	Name  string
	Value Expr
}

func (Log) statement()    {}
func (Log) code()         {}
func (Assign) statement() {}
func (Assign) code()      {}

func (l Log) String() string {
	parts := make([]string, len(l.Exprs))
	for i, e := range l.Exprs {
		parts[i] = exprString(e)
	}
	return "Log(" + strings.Join(parts, ", ") + ")"
}

func (a Assign) String() string {
	return fmt.Sprintf("Assign(%s = %s)", a.Name, exprString(a.Value))
}

// --- Stage commands --------------------------------------------------------

// StageCommand is a directive altering background, GUI assets, character
// presence or the current scene or act.
type StageCommand interface {
	Statement
	stage()
}

// BackgroundChange switches the background image.
type BackgroundChange struct {
	Background Expr
}

// GUIChange switches the sprite of a GUI element.
type GUIChange struct {
	Target GUITarget
	Sprite Expr
}

// SceneChange redirects the runtime to another scene of the current act.
type SceneChange struct {
	Scene Expr
}

// ActChange redirects the runtime to the entrypoint of another act.
type ActChange struct {
	Act Expr
}

// CharacterChange alters the presence or the emotion of a character.
type CharacterChange struct {
	Character string
	Operation CharacterOperation
}

func (BackgroundChange) statement() {}
func (BackgroundChange) stage()     {}
func (GUIChange) statement()        {}
func (GUIChange) stage()            {}
func (SceneChange) statement()      {}
func (SceneChange) stage()          {}
func (ActChange) statement()        {}
func (ActChange) stage()            {}
func (CharacterChange) statement()  {}
func (CharacterChange) stage()      {}

func (c BackgroundChange) String() string {
	return "BackgroundChange(" + exprString(c.Background) + ")"
}

func (c GUIChange) String() string {
	return fmt.Sprintf("GUIChange(%s, %s)", c.Target, exprString(c.Sprite))
}

func (c SceneChange) String() string {
	return "SceneChange(" + exprString(c.Scene) + ")"
}

func (c ActChange) String() string {
	return "ActChange(" + exprString(c.Act) + ")"
}

func (c CharacterChange) String() string {
	return fmt.Sprintf("CharacterChange(%s, %v)", c.Character, c.Operation)
}

// --- Dialogue --------------------------------------------------------------

// Dialogue attributes a line of text to a character.
type Dialogue struct {
	Character string
	Text      Expr
}

func (Dialogue) statement() {}

func (d Dialogue) String() string {
	return fmt.Sprintf("Dialogue(%s: %s)", d.Character, exprString(d.Text))
}

// --- Character operations --------------------------------------------------

// CharacterOperation is one of Spawn, EmotionChange or Despawn.
type CharacterOperation interface {
	String() string
	// IsBlocking is true for operations which run an animation the
	// runtime has to wait for.
	IsBlocking() bool
	characterOp()
}

// Spawn brings a character on stage. Emotion may be empty.
type Spawn struct {
	Emotion string
	Fading  bool
}

// EmotionChange changes the emotion a character shows.
type EmotionChange struct {
	Emotion string
}

// Despawn removes a character from stage.
type Despawn struct {
	Fading bool
}

func (Spawn) characterOp()         {}
func (EmotionChange) characterOp() {}
func (Despawn) characterOp()       {}

func (op Spawn) IsBlocking() bool         { return op.Fading }
func (op EmotionChange) IsBlocking() bool { return false }
func (op Despawn) IsBlocking() bool       { return op.Fading }

func (op Spawn) String() string {
	emotion := "None"
	if op.Emotion != "" {
		emotion = op.Emotion
	}
	return fmt.Sprintf("Spawn(%s, fading=%v)", emotion, op.Fading)
}

func (op EmotionChange) String() string {
	return "EmotionChange(" + op.Emotion + ")"
}

func (op Despawn) String() string {
	return fmt.Sprintf("Despawn(fading=%v)", op.Fading)
}

// --- GUI targets -----------------------------------------------------------

// GUITarget enumerates the GUI elements a script may re-skin.
type GUITarget int

// GUI elements
const (
	TextboxBackground GUITarget = iota
	NameboxBackground
)

func (t GUITarget) String() string {
	switch t {
	case TextboxBackground:
		return "textbox-background"
	case NameboxBackground:
		return "namebox-background"
	}
	return fmt.Sprintf("GUITarget(%d)", int(t))
}
