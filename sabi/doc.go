/*
Package sabi implements the sabi scripting language: its lexer, its LL(1)
grammar and the compilation of scripts into acts.

A sabi script is a sequence of scenes. Every scene holds statements, one per
line (or separated by ';'):

    scene "intro" {
        set name = "World"
        background "school_gate"
        gui textbox "textbox_blue"
        character Nayu fade in [happy]
        Nayu [happy]: "Hello " + name {background "classroom"} "Shall we go in?"
        log("visited intro", 1)
        scene "hallway"
    }

Keywords are case-insensitive. Comments run from '//' to the end of a line.

Dialogue text may be free-form: bare words are literal text, separated by
single spaces, and adjacent parts of a line form one Dialogue statement up to
the next embedded stage command. A variable within a dialogue line has to be
part of an operation or parenthesized:

    Nayu: Nice to meet you (name) {background "park"} "Shall we walk?"

Punctuation and words which are keywords have to be quoted. Characters whose
names are keywords may be written unquoted after 'character', but have to be
quoted as speakers of dialogue lines ("Act": hello).

Parse returns the parse tree of a script; Compile builds an ast.Act from it.
Errors are of type *requiem.Error, of kind SyntaxError or BuildError, and
carry the position of the offending input:

    act, err := sabi.Compile("intro.sabi", script)
    if requiem.KindOf(err) == requiem.SyntaxError {
        …
    }

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2024–2025 The Requiem Authors

*/
package sabi

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'requiem.sabi'.
func tracer() tracing.Trace {
	return tracing.Select("requiem.sabi")
}
