package engine

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hiibolt/requiem"
	"github.com/hiibolt/requiem/ast"
)

// Variables is a variable store statements read from and assign to.
type Variables interface {
	ast.Resolver
	Set(name string, value ast.Expr) error
}

// Context is the mutable state a statement is invoked with: the outbound
// queues, the blocking flag, the variables and the diagnostic channel.
type Context struct {
	Outbox   *Outbox
	Blocking *bool
	Vars     Variables
	Diag     io.Writer // receives Log output
	Scenes   *Queue[SceneChangeMessage]
	Acts     *Queue[ActChangeMessage]
}

// Invoke executes a single statement.
//
//    Dialogue          ⇒ say message, blocks
//    Log               ⇒ "[ Log ] text" written to Diag
//    Assign            ⇒ variable bound to the evaluated value
//    BackgroundChange  ⇒ background message
//    GUIChange         ⇒ GUI message
//    SceneChange       ⇒ scene change message, for the engine itself
//    ActChange         ⇒ act change message, for the engine itself
//    CharacterChange   ⇒ character message, blocks if fading
//
// Evaluation errors are returned as *requiem.Error of kind EvaluationError.
func Invoke(st ast.Statement, ctx *Context) error {
	tracer().Debugf("invoke %s", st)
	switch st := st.(type) {
	case ast.Dialogue:
		text, err := evalText(st.Text, ctx, "dialogue")
		if err != nil {
			return err
		}
		ctx.Outbox.Say.Write(SayMessage{Character: st.Character, Text: text})
		*ctx.Blocking = true
	case ast.Log:
		parts := make([]string, len(st.Exprs))
		for i, e := range st.Exprs {
			text, err := evalText(e, ctx, "log")
			if err != nil {
				return err
			}
			parts[i] = text
		}
		if ctx.Diag != nil {
			fmt.Fprintf(ctx.Diag, "[ Log ] %s\n", strings.Join(parts, " "))
		}
	case ast.Assign:
		if ctx.Vars == nil {
			return evalError("assignment", errors.New("no variable store"))
		}
		v, err := ast.Evaluate(st.Value, ctx.Vars)
		if err != nil {
			return evalError("assignment", err)
		}
		if err := ctx.Vars.Set(st.Name, v); err != nil {
			return evalError("assignment", err)
		}
	case ast.BackgroundChange:
		bg, err := evalText(st.Background, ctx, "background")
		if err != nil {
			return err
		}
		ctx.Outbox.Background.Write(BackgroundMessage{Background: bg})
	case ast.GUIChange:
		sprite, err := evalText(st.Sprite, ctx, "GUI sprite")
		if err != nil {
			return err
		}
		ctx.Outbox.GUI.Write(GUIMessage{Target: st.Target, Sprite: sprite})
	case ast.SceneChange:
		id, err := evalText(st.Scene, ctx, "scene change")
		if err != nil {
			return err
		}
		ctx.Scenes.Write(SceneChangeMessage{Scene: id})
	case ast.ActChange:
		id, err := evalText(st.Act, ctx, "act change")
		if err != nil {
			return err
		}
		ctx.Acts.Write(ActChangeMessage{Act: id})
	case ast.CharacterChange:
		ctx.Outbox.Character.Write(CharacterMessage{Character: st.Character, Operation: st.Operation})
		if st.Operation != nil && st.Operation.IsBlocking() {
			*ctx.Blocking = true
		}
	default:
		return requiem.Errorf(requiem.EvaluationError, "invoking statement",
			fmt.Errorf("unsupported statement type %T", st))
	}
	return nil
}

func evalText(e ast.Expr, ctx *Context, what string) (string, error) {
	text, err := ast.EvaluateToText(e, ctx.Vars)
	if err != nil {
		return "", evalError(what, err)
	}
	return text, nil
}

func evalError(what string, err error) error {
	return requiem.Errorf(requiem.EvaluationError, "while evaluating "+what+" expression", err)
}
