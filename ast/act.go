package ast

import (
	"fmt"
	"sort"

	"github.com/emirpasic/gods/maps/treemap"
)

// Scene is an ordered sequence of statements. Scenes are immutable after
// compilation.
type Scene struct {
	ID         string
	Statements []Statement
}

// Len returns the number of statements of a scene.
func (s *Scene) Len() int {
	return len(s.Statements)
}

// --- Acts ------------------------------------------------------------------

// Act is a compiled script: a set of uniquely named scenes, one of them
// being the entrypoint.
type Act struct {
	Scenes     map[string]*Scene
	Entrypoint string
	order      []string // scene IDs in order of insertion
}

// NewAct creates an empty act.
func NewAct() *Act {
	return &Act{Scenes: make(map[string]*Scene)}
}

// AddScene inserts a scene. The first scene added becomes the entrypoint
// of the act. Inserting a scene ID twice is an error.
func (a *Act) AddScene(s *Scene) error {
	if a.Scenes == nil {
		a.Scenes = make(map[string]*Scene)
	}
	if _, exists := a.Scenes[s.ID]; exists {
		return fmt.Errorf("scene '%s': %w", s.ID, ErrDuplicateScene)
	}
	a.Scenes[s.ID] = s
	a.order = append(a.order, s.ID)
	if a.Entrypoint == "" && len(a.order) == 1 {
		a.Entrypoint = s.ID
	}
	return nil
}

// Scene returns the scene with a given ID.
func (a *Act) Scene(id string) (*Scene, bool) {
	s, ok := a.Scenes[id]
	return s, ok
}

// EntryScene returns the entrypoint scene of an act. It returns an error
// wrapping ErrMissingEntrypoint if no scene with the entrypoint's ID
// exists.
func (a *Act) EntryScene() (*Scene, error) {
	s, ok := a.Scenes[a.Entrypoint]
	if !ok {
		return nil, fmt.Errorf("entrypoint scene '%s': %w", a.Entrypoint, ErrMissingEntrypoint)
	}
	return s, nil
}

// SceneIDs returns the IDs of all scenes, in order of insertion. Scenes which
// have been put into the Scenes map directly follow in lexical order.
func (a *Act) SceneIDs() []string {
	ids := make([]string, 0, len(a.Scenes))
	seen := make(map[string]bool, len(a.order))
	for _, id := range a.order {
		if _, ok := a.Scenes[id]; ok && !seen[id] {
			ids = append(ids, id)
			seen[id] = true
		}
	}
	var rest []string
	for id := range a.Scenes {
		if !seen[id] {
			rest = append(rest, id)
		}
	}
	sort.Strings(rest)
	return append(ids, rest...)
}

// StatementCount returns the number of statements in all scenes.
func (a *Act) StatementCount() int {
	n := 0
	for _, s := range a.Scenes {
		n += s.Len()
	}
	return n
}

// --- Acts table ------------------------------------------------------------

// Acts is the table of all acts of a program, ordered by act ID.
type Acts struct {
	m *treemap.Map
}

// NewActs creates an empty table of acts.
func NewActs() *Acts {
	return &Acts{m: treemap.NewWithStringComparator()}
}

// Insert puts an act into the table. Inserting an act ID twice is an error.
func (t *Acts) Insert(id string, act *Act) error {
	if _, exists := t.m.Get(id); exists {
		return fmt.Errorf("act '%s': %w", id, ErrDuplicateAct)
	}
	t.m.Put(id, act)
	return nil
}

// Get returns the act with a given ID.
func (t *Acts) Get(id string) (*Act, bool) {
	act, ok := t.m.Get(id)
	if !ok {
		return nil, false
	}
	return act.(*Act), true
}

// Len returns the number of acts.
func (t *Acts) Len() int {
	return t.m.Size()
}

// IDs returns all act IDs in ascending order.
func (t *Acts) IDs() []string {
	keys := t.m.Keys()
	ids := make([]string, len(keys))
	for i, k := range keys {
		ids[i] = k.(string)
	}
	return ids
}

// First returns the minimum act ID, which is the default starting act of
// a program. It returns an error wrapping ErrNoActs for an empty table.
func (t *Acts) First() (string, error) {
	if t.m.Empty() {
		return "", ErrNoActs
	}
	return t.IDs()[0], nil
}

// Each calls f for every act, in ascending order of act IDs.
func (t *Acts) Each(f func(id string, act *Act)) {
	it := t.m.Iterator()
	for it.Next() {
		f(it.Key().(string), it.Value().(*Act))
	}
}
