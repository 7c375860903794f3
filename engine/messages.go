package engine

import (
	"fmt"

	"github.com/hiibolt/requiem/ast"
)

// Queue is an in-order message queue. Messages written during one tick are
// read by their consumer on a subsequent tick.
type Queue[T any] struct {
	items []T
}

// Write appends a message to the queue.
func (q *Queue[T]) Write(m T) {
	q.items = append(q.items, m)
}

// Read drains the queue and returns its messages in order of writing.
func (q *Queue[T]) Read() []T {
	items := q.items
	q.items = nil
	return items
}

// Len returns the number of unread messages.
func (q *Queue[T]) Len() int {
	return len(q.items)
}

// --- Messages --------------------------------------------------------------

// SayMessage asks the chat subsystem to display a line of dialogue.
type SayMessage struct {
	Character string
	Text      string
}

// BackgroundMessage asks the background subsystem to switch images.
type BackgroundMessage struct {
	Background string
}

// GUIMessage asks for a GUI element to be re-skinned.
type GUIMessage struct {
	Target ast.GUITarget
	Sprite string
}

// CharacterMessage asks the character subsystem to alter a character.
type CharacterMessage struct {
	Character string
	Operation ast.CharacterOperation
}

// SceneChangeMessage redirects the engine to another scene of the current act.
type SceneChangeMessage struct {
	Scene string
}

// ActChangeMessage redirects the engine to the entrypoint of another act.
type ActChangeMessage struct {
	Act string
}

// BeginMessage signals that all required subsystems are ready and the
// narrative starts.
type BeginMessage struct{}

func (m SayMessage) String() string        { return fmt.Sprintf("say(%s: %q)", m.Character, m.Text) }
func (m BackgroundMessage) String() string { return fmt.Sprintf("background(%s)", m.Background) }
func (m GUIMessage) String() string        { return fmt.Sprintf("gui(%s, %s)", m.Target, m.Sprite) }
func (m CharacterMessage) String() string {
	return fmt.Sprintf("character(%s, %s)", m.Character, m.Operation)
}

// Outbox holds the queues of messages for the presentation subsystems.
type Outbox struct {
	Say        Queue[SayMessage]
	Background Queue[BackgroundMessage]
	GUI        Queue[GUIMessage]
	Character  Queue[CharacterMessage]
	Begin      Queue[BeginMessage]
}

// Len returns the number of unread messages of all queues.
func (o *Outbox) Len() int {
	return o.Say.Len() + o.Background.Len() + o.GUI.Len() + o.Character.Len() + o.Begin.Len()
}
