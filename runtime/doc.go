/*
Package runtime implements the variable store of running scripts, consisting
of scopes and symbol tables of tags (variable bindings).

Scripts bind variables with 'set name = expr' and read them in expressions.
A Scope resolves names within its own symbol table first, then within its
parent scopes. The engine uses a scope of pre-defined variables (e.g., from
the project file) as the parent of a session scope, which receives all
assignments:

    defaults := runtime.NewScope("defaults", nil)
    defaults.Set("player", ast.String("Sora"))
    session := runtime.NewScope("session", defaults)
    session.Set("score", ast.Number(0))
    v, ok := session.Resolve("player")   // ⇒ "Sora", true

Scopes implement ast.Resolver.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2024–2025 The Requiem Authors

*/
package runtime

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'requiem.engine'.
func tracer() tracing.Trace {
	return tracing.Select("requiem.engine")
}
