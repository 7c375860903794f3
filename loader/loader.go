/*
Package loader discovers sabi scripts below a directory and compiles them
into the acts of a program.

Every script file is one act; its act identifier is the file's base name
without extension, normalized to Unicode NFC:

    assets/acts/
        prologue.sabi        ⇒ act "prologue"
        chapter1/
            school.sabi      ⇒ act "school"

Directory entries are visited in name order. Files with unrecognized
extensions are skipped. Symbolic links, devices and other special entries
are an error, as are duplicate act identifiers.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2024–2025 The Requiem Authors

*/
package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hiibolt/requiem"
	"github.com/hiibolt/requiem/ast"
	"github.com/hiibolt/requiem/sabi"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/text/unicode/norm"
)

// tracer traces with key 'requiem.loader'.
func tracer() tracing.Trace {
	return tracing.Select("requiem.loader")
}

// ErrUnsupportedEntry is returned for directory entries which are neither
// regular files nor directories.
var ErrUnsupportedEntry = errors.New("unsupported directory entry")

// Program is a loaded set of acts together with the act to start with.
type Program struct {
	Acts     *ast.Acts
	StartAct string
	Sources  map[string]string // act id ⇒ file path

	// Fingerprints are content hashes of the compiled acts, by act id.
	// Identical scripts have identical fingerprints.
	Fingerprints map[string]string
}

// Option configures loading.
type Option func(*loader)

// WithExtensions sets the file extensions of scripts, including the leading
// dot. The default is ".sabi".
func WithExtensions(exts ...string) Option {
	return func(l *loader) {
		if len(exts) > 0 {
			l.extensions = exts
		}
	}
}

// WithStartAct sets the act to start with. It must be one of the loaded
// acts. By default, the minimum act id is used.
func WithStartAct(id string) Option {
	return func(l *loader) {
		l.startAct = id
	}
}

type loader struct {
	extensions []string
	startAct   string
	prog       *Program
}

// Load walks the directory tree below root and compiles every script found.
// Errors are of kind requiem.LoadError, or the syntax or build error of
// the first failing script, annotated with its path.
func Load(root string, opts ...Option) (*Program, error) {
	l := &loader{extensions: []string{".sabi"}}
	for _, opt := range opts {
		opt(l)
	}
	l.prog = &Program{
		Acts:         ast.NewActs(),
		Sources:      make(map[string]string),
		Fingerprints: make(map[string]string),
	}
	tracer().Infof("loading acts from %s", root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, requiem.Errorf(requiem.LoadError, "open acts directory", err)
	}
	if !info.IsDir() {
		return nil, requiem.Errorf(requiem.LoadError, "open acts directory",
			fmt.Errorf("%s is not a directory", root))
	}
	if err := l.walk(root); err != nil {
		return nil, err
	}
	if err := l.selectStartAct(); err != nil {
		return nil, err
	}
	tracer().Infof("loaded %d acts, starting with '%s'", l.prog.Acts.Len(), l.prog.StartAct)
	return l.prog, nil
}

func (l *loader) walk(dir string) error {
	entries, err := os.ReadDir(dir) // sorted by file name
	if err != nil {
		return requiem.Errorf(requiem.LoadError, "read directory "+dir, err)
	}
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		switch mode := entry.Type(); {
		case mode.IsDir():
			if err := l.walk(path); err != nil {
				return err
			}
		case mode.IsRegular():
			if err := l.loadFile(path); err != nil {
				return err
			}
		default:
			return requiem.Errorf(requiem.LoadError, "load "+path,
				fmt.Errorf("%w (%s)", ErrUnsupportedEntry, mode.Type()))
		}
	}
	return nil
}

func (l *loader) loadFile(path string) error {
	ext := filepath.Ext(path)
	if !l.isScript(ext) {
		tracer().Debugf("skipping %s", path)
		return nil
	}
	id := ActID(path)
	if prev, exists := l.prog.Sources[id]; exists {
		return requiem.Errorf(requiem.LoadError, "load "+path,
			fmt.Errorf("act '%s' already defined in %s: %w", id, prev, ast.ErrDuplicateAct))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return requiem.Errorf(requiem.LoadError, "read "+path, err)
	}
	act, err := sabi.Compile(path, string(data))
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	if err := l.prog.Acts.Insert(id, act); err != nil {
		return requiem.Errorf(requiem.LoadError, "load "+path, err)
	}
	fp, err := ast.Fingerprint(act)
	if err != nil {
		return requiem.Errorf(requiem.LoadError, "fingerprint "+path, err)
	}
	l.prog.Sources[id] = path
	l.prog.Fingerprints[id] = fp
	tracer().Debugf("act '%s' from %s with %d scenes, fingerprint %s", id, path, len(act.Scenes), fp)
	return nil
}

func (l *loader) isScript(ext string) bool {
	for _, e := range l.extensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

func (l *loader) selectStartAct() error {
	if l.prog.Acts.Len() == 0 {
		return requiem.Errorf(requiem.LoadError, "select start act", ast.ErrNoActs)
	}
	if l.startAct == "" {
		first, err := l.prog.Acts.First()
		if err != nil {
			return requiem.Errorf(requiem.LoadError, "select start act", err)
		}
		l.prog.StartAct = first
		return nil
	}
	id := norm.NFC.String(l.startAct)
	if _, ok := l.prog.Acts.Get(id); !ok {
		return requiem.Errorf(requiem.LoadError, "select start act",
			fmt.Errorf("%w '%s'", ast.ErrUnknownAct, id))
	}
	l.prog.StartAct = id
	return nil
}

// ActID returns the act identifier of a script file: its base name without
// extension, normalized to NFC.
func ActID(path string) string {
	base := filepath.Base(path)
	return norm.NFC.String(strings.TrimSuffix(base, filepath.Ext(base)))
}
