package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hiibolt/requiem/ast"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func writeProject(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFile)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "requiem.config")
	defer teardown()
	//
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ActsDir != "assets/acts" || len(cfg.Extensions) != 1 || cfg.Extensions[0] != ".sabi" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if len(cfg.Subsystems) != 3 || cfg.StartAct != "" || cfg.Trace.Level != "Info" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
}

func TestYAMLOverridesDefaults(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "requiem.config")
	defer teardown()
	//
	path := writeProject(t, `
acts_dir: scripts
extensions: [.sabi, .txt]
start_act: prologue
variables:
  player: Sora
  coins: 3
  ratio: 0.5
trace:
  level: Debug
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ActsDir != "scripts" || len(cfg.Extensions) != 2 || cfg.StartAct != "prologue" {
		t.Errorf("expected project file to override defaults, have %+v", cfg)
	}
	if len(cfg.Subsystems) != 3 {
		t.Errorf("expected subsystems to keep their default, have %v", cfg.Subsystems)
	}
	vars, err := cfg.InitialVariables()
	if err != nil {
		t.Fatal(err)
	}
	if vars["player"] != ast.String("Sora") || vars["coins"] != ast.Number(3) || vars["ratio"] != ast.Number(0.5) {
		t.Errorf("unexpected variables %v", vars)
	}
}

func TestEnvOverridesYAML(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "requiem.config")
	defer teardown()
	//
	path := writeProject(t, "acts_dir: scripts\nstart_act: prologue\n")
	t.Setenv("REQUIEM_START_ACT", "epilogue")
	t.Setenv("REQUIEM_SUBSYSTEMS", "chat,background")
	t.Setenv("REQUIEM_DIAGNOSTICS_FILE", "diag.log")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ActsDir != "scripts" || cfg.StartAct != "epilogue" {
		t.Errorf("expected env to override project file, have %+v", cfg)
	}
	if len(cfg.Subsystems) != 2 || cfg.Subsystems[0] != "chat" {
		t.Errorf("expected subsystems from env, have %v", cfg.Subsystems)
	}
	if cfg.Trace.Diagnostics != "diag.log" {
		t.Errorf("expected diagnostics file from env, have %q", cfg.Trace.Diagnostics)
	}
}

func TestInvalidConfig(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "requiem.config")
	defer teardown()
	//
	inputs := []string{
		"extensions: [sabi]\n",
		"extensions: []\n",
		"subsystems: [audio]\n",
		"unknown_key: 1\n",
		"trace:\n  level: Verbose\n",
		"variables:\n  flag: true\n",
	}
	for _, input := range inputs {
		if _, err := Load(writeProject(t, input)); err == nil {
			t.Errorf("expected configuration error for %q", input)
		}
	}
}
