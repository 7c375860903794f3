/*
Package config holds the configuration of a Requiem project.

Configuration is layered. Defaults are overridden by a YAML project file,
which is in turn overridden by environment variables:

    acts_dir           REQUIEM_ACTS_DIR           assets/acts
    extensions         REQUIEM_EXTENSIONS         [.sabi]
    start_act          REQUIEM_START_ACT          (minimum act id)
    subsystems         REQUIEM_SUBSYSTEMS         [background, character, chat]
    variables          (none)                     {}
    trace.level        REQUIEM_TRACE_LEVEL        Info
    trace.diagnostics  REQUIEM_DIAGNOSTICS_FILE   (trace only)

Lists in environment variables are separated by commas.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2024–2025 The Requiem Authors

*/
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/hiibolt/requiem/ast"
	"github.com/npillmayer/schuko/tracing"
	"gopkg.in/yaml.v3"
)

// tracer traces with key 'requiem.config'.
func tracer() tracing.Trace {
	return tracing.Select("requiem.config")
}

// DefaultFile is the name of the project file, relative to the project root.
const DefaultFile = "requiem.yaml"

// Config is the configuration of a project.
type Config struct {
	ActsDir    string                 `yaml:"acts_dir" env:"REQUIEM_ACTS_DIR"`
	Extensions []string               `yaml:"extensions" env:"REQUIEM_EXTENSIONS" envSeparator:","`
	StartAct   string                 `yaml:"start_act" env:"REQUIEM_START_ACT"`
	Subsystems []string               `yaml:"subsystems" env:"REQUIEM_SUBSYSTEMS" envSeparator:","`
	Variables  map[string]interface{} `yaml:"variables"`
	Trace      TraceConfig            `yaml:"trace"`
}

// TraceConfig configures tracing and the diagnostic channel of scripts.
type TraceConfig struct {
	Level       string `yaml:"level" env:"REQUIEM_TRACE_LEVEL"`
	Diagnostics string `yaml:"diagnostics" env:"REQUIEM_DIAGNOSTICS_FILE"`
}

// Subsystem names known to the engine.
var knownSubsystems = []string{"background", "character", "chat"}

// Defaults returns the configuration defaults.
func Defaults() Config {
	return Config{
		ActsDir:    "assets/acts",
		Extensions: []string{".sabi"},
		Subsystems: append([]string(nil), knownSubsystems...),
		Variables:  map[string]interface{}{},
		Trace:      TraceConfig{Level: "Info"},
	}
}

// Load reads a project file (if present), applies it on top of the
// defaults and merges environment overrides. An empty path or a missing file
// yields the defaults, still subject to environment overrides.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			tracer().Infof("no project file %s, using defaults", path)
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		default:
			if err := decode(data, &cfg); err != nil {
				return cfg, fmt.Errorf("config %s: %w", path, err)
			}
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// decode unmarshals YAML onto cfg. Keys not present in the file keep their
// values, unknown keys are an error.
func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks a configuration for consistency.
func (c Config) Validate() error {
	if strings.TrimSpace(c.ActsDir) == "" {
		return errors.New("config: acts_dir must not be empty")
	}
	if len(c.Extensions) == 0 {
		return errors.New("config: at least one script extension required")
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("config: extension %q must start with a dot", ext)
		}
	}
	for _, s := range c.Subsystems {
		if !isKnownSubsystem(s) {
			return fmt.Errorf("config: unknown subsystem %q", s)
		}
	}
	switch strings.ToLower(c.Trace.Level) {
	case "debug", "info", "error":
	default:
		return fmt.Errorf("config: unknown trace level %q", c.Trace.Level)
	}
	_, err := c.InitialVariables()
	return err
}

func isKnownSubsystem(name string) bool {
	for _, s := range knownSubsystems {
		if s == name {
			return true
		}
	}
	return false
}

// InitialVariables converts the variables of the configuration to script
// values. Numbers become ast.Number, strings become ast.String; other types
// are an error.
func (c Config) InitialVariables() (map[string]ast.Expr, error) {
	vars := make(map[string]ast.Expr, len(c.Variables))
	for name, v := range c.Variables {
		switch x := v.(type) {
		case string:
			vars[name] = ast.String(x)
		case int:
			vars[name] = ast.Number(float64(x))
		case float64:
			vars[name] = ast.Number(x)
		default:
			return nil, fmt.Errorf("config: variable %q has unsupported type %T", name, v)
		}
	}
	return vars, nil
}

// TraceLevel returns the configured trace level.
func (c Config) TraceLevel() tracing.TraceLevel {
	return tracing.TraceLevelFromString(c.Trace.Level)
}
