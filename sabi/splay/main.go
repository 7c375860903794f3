package main

import (
	"flag"
	"os"

	"github.com/chzyer/readline"
	"github.com/hiibolt/requiem/config"
	"github.com/hiibolt/requiem/engine"
	"github.com/hiibolt/requiem/loader"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	"gopkg.in/natefinch/lumberjack.v2"
)

// traceKeys are the tracers of all packages of the player.
var traceKeys = []string{
	"requiem.scanner",
	"requiem.syntax",
	"requiem.ast",
	"requiem.sabi",
	"requiem.loader",
	"requiem.engine",
	"requiem.config",
	"requiem.splay",
}

// main() starts the console player. The project file is read first, flags
// override its settings. Exit codes are 1 for configuration errors, 2 for
// scripts which fail to load and 3 for terminal errors.
func main() {
	// set up logging
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	cfgfile := flag.String("config", config.DefaultFile, "Project file")
	actsdir := flag.String("acts", "", "Directory of act scripts")
	startAct := flag.String("start", "", "Act to start with")
	tlevel := flag.String("trace", "", "Trace level [Debug|Info|Error]")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelInfo) // will set the correct level later
	pterm.Info.Println("Welcome to SPLAY")
	//
	// configuration
	cfg, err := config.Load(*cfgfile)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
	if *actsdir != "" {
		cfg.ActsDir = *actsdir
	}
	if *startAct != "" {
		cfg.StartAct = *startAct
	}
	if *tlevel != "" {
		cfg.Trace.Level = *tlevel
	}
	setTraceLevel(cfg.TraceLevel())
	tracer().Infof("Trace level is %s", cfg.Trace.Level)
	//
	// load acts and create the engine
	prog, err := loader.Load(cfg.ActsDir,
		loader.WithExtensions(cfg.Extensions...),
		loader.WithStartAct(cfg.StartAct))
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(2)
	}
	opts, subsystems, err := engineOptions(cfg)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
	opts = append(opts, engine.WithStartAct(prog.StartAct))
	eng, err := engine.New(prog.Acts, opts...)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(2)
	}
	//
	// set up REPL
	repl, err := readline.New("splay> ")
	if err != nil {
		tracer().Errorf("%v", err)
		os.Exit(3)
	}
	defer repl.Close()
	player := NewPlayer(eng, subsystems)
	player.repl = repl
	tracer().Infof("Quit with <ctrl>D") // inform user how to stop the CLI
	player.Play()
	println("Good bye!")
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func setTraceLevel(level tracing.TraceLevel) {
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(level)
	}
}

// engineOptions translates a project configuration into engine options and
// the subsystems the player has to stand in for. Log output of scripts goes
// to a rotating file if one is configured.
func engineOptions(cfg config.Config) ([]engine.Option, []engine.Subsystem, error) {
	var subsystems []engine.Subsystem
	for _, name := range cfg.Subsystems {
		s, err := engine.ParseSubsystem(name)
		if err != nil {
			return nil, nil, err
		}
		subsystems = append(subsystems, s)
	}
	vars, err := cfg.InitialVariables()
	if err != nil {
		return nil, nil, err
	}
	opts := []engine.Option{
		engine.WithRequiredSubsystems(subsystems...),
		engine.WithVariables(vars),
	}
	if cfg.Trace.Diagnostics != "" {
		tracer().Infof("Script log output goes to %s", cfg.Trace.Diagnostics)
		opts = append(opts, engine.WithDiagnostics(&lumberjack.Logger{
			Filename:   cfg.Trace.Diagnostics,
			MaxSize:    1, // megabytes
			MaxBackups: 3,
		}))
	}
	return opts, subsystems, nil
}
