/*
Package engine drives compiled acts: it invokes statements and emits the
resulting messages to the presentation subsystems of a host.

The engine is tick-driven. A host calls Tick once per frame, then drains the
queues of the engine's Outbox and hands the messages to its subsystems:

    e, err := engine.New(prog.Acts, engine.WithStartAct(prog.StartAct))
    e.Ready(engine.BackgroundSubsystem)   // once per required subsystem
    …
    for frame := range frames {
        if err := e.Tick(); err != nil {
            // navigation or evaluation fault; the engine keeps running
        }
        for _, msg := range e.Outbox().Say.Read() {
            …
        }
        if playerAdvanced {
            e.Acknowledge()
        }
    }

The engine starts waiting for all required subsystems to report ready.
Then it emits a single BeginMessage and starts running the entrypoint scene
of the start act. Statements are invoked until one of them blocks (dialogue
lines and fading characters do), or the scene is exhausted. Blocking is
cleared by Acknowledge.

Scene and act changes discard the remainder of the current scene. Failed
navigation leaves the engine where it was.

The engine is not safe for concurrent use.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2024–2025 The Requiem Authors

*/
package engine

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/hiibolt/requiem"
	"github.com/hiibolt/requiem/ast"
	"github.com/hiibolt/requiem/runtime"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'requiem.engine'.
func tracer() tracing.Trace {
	return tracing.Select("requiem.engine")
}

// State is the state of an engine.
type State int

// States of an engine
const (
	WaitingForReadiness State = iota
	Running
)

func (s State) String() string {
	switch s {
	case WaitingForReadiness:
		return "waiting-for-readiness"
	case Running:
		return "running"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Subsystem identifies a presentation subsystem of a host.
type Subsystem int

// Presentation subsystems
const (
	BackgroundSubsystem Subsystem = iota
	CharacterSubsystem
	ChatSubsystem
)

var subsystemNames = []string{"background", "character", "chat"}

func (s Subsystem) String() string {
	if int(s) >= 0 && int(s) < len(subsystemNames) {
		return subsystemNames[s]
	}
	return fmt.Sprintf("Subsystem(%d)", int(s))
}

// ParseSubsystem returns the subsystem of a given name.
func ParseSubsystem(name string) (Subsystem, error) {
	for i, n := range subsystemNames {
		if strings.EqualFold(n, name) {
			return Subsystem(i), nil
		}
	}
	return 0, fmt.Errorf("unknown subsystem %q", name)
}

// Cursor is the position of an engine within the statements of a scene.
type Cursor struct {
	ActID    string
	Act      *ast.Act
	SceneID  string
	Scene    *ast.Scene
	Position int // index of the next statement
}

// Done is true if all statements of the scene have been invoked.
func (c Cursor) Done() bool {
	return c.Scene == nil || c.Position >= c.Scene.Len()
}

func (c Cursor) String() string {
	return fmt.Sprintf("%s/%s@%d", c.ActID, c.SceneID, c.Position)
}

// Engine is the runtime driver of a program.
type Engine struct {
	acts       *ast.Acts
	state      State
	required   map[Subsystem]bool
	ready      map[Subsystem]bool
	signals    []Subsystem // ready signals not yet consumed
	cursor     Cursor
	blocking   bool
	outbox     *Outbox
	scenes     Queue[SceneChangeMessage]
	actChanges Queue[ActChangeMessage]
	defaults   *runtime.Scope
	vars       *runtime.Scope
	diag       io.Writer
	session    string
	startAct   string
}

// Option configures an engine.
type Option func(*Engine)

// WithStartAct sets the act to start with. By default, the engine starts
// with the minimum act id.
func WithStartAct(id string) Option {
	return func(e *Engine) {
		e.startAct = id
	}
}

// WithRequiredSubsystems sets the subsystems which have to report ready
// before the narrative begins. By default, all subsystems are required.
func WithRequiredSubsystems(subsystems ...Subsystem) Option {
	return func(e *Engine) {
		e.required = make(map[Subsystem]bool, len(subsystems))
		for _, s := range subsystems {
			e.required[s] = true
		}
	}
}

// WithDiagnostics sets the writer for output of log statements. By default,
// log output is traced.
func WithDiagnostics(w io.Writer) Option {
	return func(e *Engine) {
		if w != nil {
			e.diag = w
		}
	}
}

// WithVariables pre-defines variables. Assignments of scripts shadow them.
func WithVariables(vars map[string]ast.Expr) Option {
	return func(e *Engine) {
		for name, v := range vars {
			e.defaults.Set(name, v)
		}
	}
}

// New creates an engine for a table of acts, positioned at the entrypoint
// scene of the start act.
func New(acts *ast.Acts, opts ...Option) (*Engine, error) {
	if acts == nil || acts.Len() == 0 {
		return nil, requiem.Errorf(requiem.LoadError, "create engine", ast.ErrNoActs)
	}
	e := &Engine{
		acts:    acts,
		state:   WaitingForReadiness,
		ready:   make(map[Subsystem]bool),
		outbox:  &Outbox{},
		session: uuid.New().String()[:8],
	}
	e.defaults = runtime.NewScope("defaults", nil)
	e.vars = runtime.NewScope("session", e.defaults)
	e.diag = traceWriter{e}
	WithRequiredSubsystems(BackgroundSubsystem, CharacterSubsystem, ChatSubsystem)(e)
	for _, opt := range opts {
		opt(e)
	}
	if e.startAct == "" {
		first, err := acts.First()
		if err != nil {
			return nil, requiem.Errorf(requiem.LoadError, "create engine", err)
		}
		e.startAct = first
	}
	cursor, err := e.actCursor(e.startAct)
	if err != nil {
		return nil, requiem.Errorf(requiem.NavigationError, fmt.Sprintf("start with act '%s'", e.startAct), err)
	}
	e.cursor = cursor
	e.trace().Infof("engine created, starting at %s", e.cursor)
	return e, nil
}

func (e *Engine) trace() tracing.Trace {
	return tracer().P("run", e.session)
}

// Session returns the run id of the engine, which prefixes its traces.
func (e *Engine) Session() string {
	return e.session
}

// State returns the state of the engine.
func (e *Engine) State() State {
	return e.state
}

// Cursor returns a copy of the current cursor.
func (e *Engine) Cursor() Cursor {
	return e.cursor
}

// Blocking is true while the engine waits for an acknowledgement.
func (e *Engine) Blocking() bool {
	return e.blocking
}

// Outbox returns the queues of outbound messages. Hosts drain them after
// every tick.
func (e *Engine) Outbox() *Outbox {
	return e.outbox
}

// Acts returns the table of acts the engine runs.
func (e *Engine) Acts() *ast.Acts {
	return e.acts
}

// Variables returns the variable scope of scripts.
func (e *Engine) Variables() *runtime.Scope {
	return e.vars
}

// Ready signals that a subsystem is ready. Signals are consumed on the next
// tick while waiting for readiness, and ignored afterwards.
func (e *Engine) Ready(s Subsystem) {
	e.signals = append(e.signals, s)
}

// Acknowledge clears the blocking flag. Presentation subsystems call it
// once a blocking action has completed.
func (e *Engine) Acknowledge() {
	e.blocking = false
}

// ChangeScene requests a change to another scene of the current act, to be
// handled on the next tick.
func (e *Engine) ChangeScene(id string) {
	e.scenes.Write(SceneChangeMessage{Scene: id})
}

// ChangeAct requests a change to the entrypoint of another act, to be
// handled on the next tick.
func (e *Engine) ChangeAct(id string) {
	e.actChanges.Write(ActChangeMessage{Act: id})
}

// Tick runs one turn of the engine.
//
// While waiting for readiness, Tick consumes ready signals. Once all required
// subsystems are ready, it emits a BeginMessage and the engine is running.
// A running engine first handles pending navigation, then invokes statements
// until one of them blocks, the scene is exhausted or a statement requests
// navigation. Navigation requested by a statement is applied immediately and
// ends the tick.
//
// Errors are of kind NavigationError or EvaluationError. They leave the
// engine in a consistent state: a failed navigation does not move the
// cursor, a failed statement is skipped.
func (e *Engine) Tick() error {
	if e.state == WaitingForReadiness {
		e.consumeSignals()
		return nil
	}
	if err := e.navigate(); err != nil {
		return err
	}
	for !e.blocking && !e.cursor.Done() {
		st := e.cursor.Scene.Statements[e.cursor.Position]
		e.cursor.Position++
		if err := Invoke(st, e.context()); err != nil {
			e.trace().Errorf("%s: %v", e.cursor, err)
			return fmt.Errorf("scene '%s' of act '%s', statement %d: %w",
				e.cursor.SceneID, e.cursor.ActID, e.cursor.Position, err)
		}
		if e.scenes.Len() > 0 || e.actChanges.Len() > 0 {
			return e.navigate()
		}
	}
	return nil
}

func (e *Engine) context() *Context {
	return &Context{
		Outbox:   e.outbox,
		Blocking: &e.blocking,
		Vars:     e.vars,
		Diag:     e.diag,
		Scenes:   &e.scenes,
		Acts:     &e.actChanges,
	}
}

func (e *Engine) consumeSignals() {
	for _, s := range e.signals {
		if e.required[s] && !e.ready[s] {
			e.trace().Debugf("subsystem %s is ready", s)
		}
		e.ready[s] = true
	}
	e.signals = nil
	for s := range e.required {
		if !e.ready[s] {
			return
		}
	}
	e.state = Running
	e.outbox.Begin.Write(BeginMessage{})
	e.trace().Infof("all subsystems ready, beginning at %s", e.cursor)
}

// navigate handles pending scene and act changes in order of arrival per
// kind, scene changes first. It returns the first error encountered.
func (e *Engine) navigate() error {
	var first error
	for _, m := range e.scenes.Read() {
		if err := e.changeScene(m.Scene); err != nil && first == nil {
			first = err
		}
	}
	for _, m := range e.actChanges.Read() {
		if err := e.changeAct(m.Act); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (e *Engine) changeScene(id string) error {
	scene, ok := e.cursor.Act.Scene(id)
	if !ok {
		err := requiem.Errorf(requiem.NavigationError,
			fmt.Sprintf("change to scene '%s' in act '%s'", id, e.cursor.ActID),
			fmt.Errorf("%w '%s'", ast.ErrUnknownScene, id))
		e.trace().Errorf("%v", err)
		return err
	}
	e.cursor = Cursor{
		ActID:   e.cursor.ActID,
		Act:     e.cursor.Act,
		SceneID: id,
		Scene:   scene,
	}
	e.blocking = false
	e.trace().Infof("changed to scene %s", e.cursor)
	return nil
}

func (e *Engine) changeAct(id string) error {
	cursor, err := e.actCursor(id)
	if err != nil {
		err = requiem.Errorf(requiem.NavigationError,
			fmt.Sprintf("change to act '%s' from act '%s'", id, e.cursor.ActID), err)
		e.trace().Errorf("%v", err)
		return err
	}
	e.cursor = cursor
	e.blocking = false
	e.trace().Infof("changed to act %s", e.cursor)
	return nil
}

func (e *Engine) actCursor(id string) (Cursor, error) {
	act, ok := e.acts.Get(id)
	if !ok {
		return Cursor{}, fmt.Errorf("%w '%s'", ast.ErrUnknownAct, id)
	}
	scene, err := act.EntryScene()
	if err != nil {
		return Cursor{}, err
	}
	return Cursor{ActID: id, Act: act, SceneID: scene.ID, Scene: scene}, nil
}

// traceWriter writes diagnostic output of scripts to the engine tracer.
type traceWriter struct {
	e *Engine
}

func (w traceWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		w.e.trace().Infof("%s", line)
	}
	return len(p), nil
}
