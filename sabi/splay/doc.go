/*
Command splay is a console player for Requiem projects.

Splay loads the acts of a project and plays them on a terminal. It stands in
for all presentation subsystems of a host: backgrounds, GUI changes,
characters and dialogue are printed as they arrive. Dialogue lines wait for
<Enter>, fading characters complete on the next tick.

Usage:

    splay [-config requiem.yaml] [-acts dir] [-start act] [-trace Debug|Info|Error]

Flags override the project file, which overrides the defaults. While
playing, the following commands are accepted:

    :scene <id>   change to a scene of the current act
    :act <id>     change to the entrypoint scene of an act
    :acts         show all acts and scenes as a tree
    :vars         show all visible variables
    :help         show commands
    :quit         leave the player (or <ctrl>D)

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2024–2025 The Requiem Authors

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'requiem.splay'.
func tracer() tracing.Trace {
	return tracing.Select("requiem.splay")
}
