/*
Package ast holds the typed program representation of sabi scripts.

A compiled script is an Act. Acts consist of named Scenes, and every Scene is
an ordered sequence of Statements. Statements are dialogue lines, stage
commands and code statements; they carry expressions (Expr), which the
evaluator of this package reduces to scalars:

    Act ─┬─ Scene "intro" ─┬─ CharacterChange{Nayu, Spawn{happy, fading}}
         │                 ├─ Dialogue{Nayu, Add{"Hello ", name}}
         │                 └─ SceneChange{"hallway"}
         └─ Scene "hallway" ─ …

All of the types are immutable once built. A Scene may be shared between
any number of execution cursors.

Acts are created from parse trees by a Builder. The Builder walks a parse
tree and applies rewriters, registered per grammar symbol by a language
package (see package sabi). Helpers for precedence climbing and for resolving
stage-command words live in this package, too, as they do not depend on the
concrete grammar.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2024–2025 The Requiem Authors

*/
package ast

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'requiem.ast'.
func tracer() tracing.Trace {
	return tracing.Select("requiem.ast")
}

// Errors of package ast. They are wrapped with context information and
// should be tested for with errors.Is.
var (
	ErrDuplicateScene    = errors.New("duplicate scene")
	ErrEmptyAct          = errors.New("act has no scenes")
	ErrDuplicateAct      = errors.New("duplicate act")
	ErrNoActs            = errors.New("no acts loaded")
	ErrUnknownScene      = errors.New("unknown scene")
	ErrUnknownAct        = errors.New("unknown act")
	ErrMissingEntrypoint = errors.New("entrypoint scene missing")
	ErrUnknownGUITarget  = errors.New("unknown GUI element")
	ErrUnknownVerb       = errors.New("unknown character verb")
	ErrUnknownOperator   = errors.New("unknown operator")
	ErrUnboundVariable   = errors.New("unbound variable")
	ErrMissingExpression = errors.New("missing expression")
)
