package main

import (
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/hiibolt/requiem/ast"
	"github.com/hiibolt/requiem/engine"
	"github.com/hiibolt/requiem/runtime"
	"github.com/pterm/pterm"
)

// maxUnattendedTicks limits the number of ticks run without user input, for
// scripts changing scenes in a loop.
const maxUnattendedTicks = 100

// Player is our stand-in for the presentation subsystems of a host.
type Player struct {
	engine     *engine.Engine
	subsystems []engine.Subsystem // subsystems we report ready for
	repl       *readline.Instance
	speaker    pterm.Style
}

// NewPlayer creates a player for an engine.
func NewPlayer(e *engine.Engine, subsystems []engine.Subsystem) *Player {
	return &Player{
		engine:     e,
		subsystems: subsystems,
		speaker:    pterm.Style{pterm.FgCyan, pterm.Bold},
	}
}

// Play runs the engine until the user quits.
func (p *Player) Play() {
	for {
		p.advance()
		if p.engine.Blocking() {
			p.repl.SetPrompt("  ⏎ ")
		} else {
			p.repl.SetPrompt("splay> ")
		}
		line, err := p.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		quit, err := p.Execute(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
}

// advance ticks the engine until it waits for user input, i.e. it blocks
// or has exhausted its scene.
func (p *Player) advance() {
	for i := 0; i < maxUnattendedTicks; i++ {
		p.Tick()
		if p.engine.State() == engine.Running && (p.engine.Blocking() || p.engine.Cursor().Done()) {
			return
		}
	}
	tracer().Errorf("no input requested after %d ticks, at %s", maxUnattendedTicks, p.engine.Cursor())
}

// Tick runs one turn of the engine and presents its output.
func (p *Player) Tick() {
	if p.engine.State() == engine.WaitingForReadiness {
		for _, s := range p.subsystems {
			p.engine.Ready(s)
		}
	}
	if err := p.engine.Tick(); err != nil {
		pterm.Error.Println(err.Error())
	}
	p.present()
}

// present drains the outbox of the engine. Fading characters complete
// instantly on a terminal, so we acknowledge them right away.
func (p *Player) present() {
	out := p.engine.Outbox()
	for range out.Begin.Read() {
		pterm.Info.Println(fmt.Sprintf("Playing %s (run %s)", p.engine.Cursor().ActID, p.engine.Session()))
	}
	for _, m := range out.Background.Read() {
		pterm.Info.Println("background " + m.Background)
	}
	for _, m := range out.GUI.Read() {
		pterm.Info.Println(fmt.Sprintf("%s is now %s", m.Target, m.Sprite))
	}
	for _, m := range out.Character.Read() {
		pterm.Info.Println(m.String())
		if m.Operation.IsBlocking() {
			p.engine.Acknowledge()
		}
	}
	for _, m := range out.Say.Read() {
		pterm.Println(p.speaker.Sprint(m.Character) + "  " + m.Text)
	}
}

// Execute handles a line of user input. An empty line acknowledges a
// dialogue line.
func (p *Player) Execute(line string) (bool, error) {
	cmd, arg := parseCommand(line)
	tracer().Debugf("command %q, arg %q", cmd, arg)
	switch cmd {
	case "":
		p.engine.Acknowledge()
	case "quit", "q":
		return true, nil
	case "help":
		pterm.Info.Println("commands: :scene <id>  :act <id>  :acts  :vars  :quit")
	case "scene":
		if arg == "" {
			return false, fmt.Errorf("usage: :scene <id>")
		}
		p.engine.ChangeScene(arg)
	case "act":
		if arg == "" {
			return false, fmt.Errorf("usage: :act <id>")
		}
		p.engine.ChangeAct(arg)
	case "acts":
		root := pterm.NewTreeFromLeveledList(actList(p.engine.Acts()))
		pterm.DefaultTree.WithRoot(root).Render()
	case "vars":
		for _, line := range variableList(p.engine.Variables()) {
			pterm.Println(line)
		}
	default:
		return false, fmt.Errorf("unknown command '%s', try :help", cmd)
	}
	return false, nil
}

// parseCommand splits an input line into a command and its argument.
// Commands start with a colon, anything else is an empty command.
func parseCommand(line string) (string, string) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, ":") {
		return "", ""
	}
	fields := strings.Fields(line[1:])
	if len(fields) == 0 {
		return "", ""
	}
	return strings.ToLower(fields[0]), strings.Join(fields[1:], " ")
}

// actList lists acts with their fingerprints and scenes, for display as a
// tree.
func actList(acts *ast.Acts) pterm.LeveledList {
	ll := pterm.LeveledList{}
	acts.Each(func(id string, act *ast.Act) {
		text := id
		if fp, err := ast.Fingerprint(act); err == nil {
			text += "  " + fp
		}
		ll = append(ll, pterm.LeveledListItem{Level: 0, Text: text})
		for _, sid := range act.SceneIDs() {
			text := fmt.Sprintf("%s (%d statements)", sid, act.Scenes[sid].Len())
			if sid == act.Entrypoint {
				text += " ⇐ entrypoint"
			}
			ll = append(ll, pterm.LeveledListItem{Level: 1, Text: text})
		}
	})
	return ll
}

func variableList(vars *runtime.Scope) []string {
	var lines []string
	vars.Each(func(name string, value ast.Expr, owner *runtime.Scope) {
		lines = append(lines, fmt.Sprintf("%s = %s   [%s]", name, value, owner.Name))
	})
	if len(lines) == 0 {
		lines = append(lines, "no variables")
	}
	return lines
}
