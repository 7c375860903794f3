/*
Package requiem is a compiler and runtime for sabi, a small scripting language
for visual novels.

Sabi scripts describe scenes, dialogue lines and stage directions. They are
compiled into Acts, and Acts are played back by a cooperative, tick-paced
engine that emits narrative messages to presentation subsystems. Package
structure is as follows:

■ syntax: Package syntax implements grammars, grammar analysis and LL(1)
prediction tables, together with a scanner layer, parse trees and an LL(1)
parser in sub-packages.

■ sabi: Package sabi defines the sabi language: tokens, lexer, grammar and
parsing entry points.

■ ast: Package ast holds the typed program representation (Acts, Scenes,
Statements, Expressions), the builders driven by parse trees, and the
expression evaluator.

■ loader: Package loader walks a directory of scripts and assembles the table
of Acts.

■ engine: Package engine invokes statements and drives the runtime state
machine.

The base package contains data types which are used throughout all the other
packages: tokens, spans and error kinds.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2024–2025 The Requiem Authors

*/
package requiem
