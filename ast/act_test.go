package ast

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func makeAct(t *testing.T, ids ...string) *Act {
	act := NewAct()
	for _, id := range ids {
		s := &Scene{ID: id, Statements: []Statement{Dialogue{Character: "Nayu", Text: String("in " + id)}}}
		if err := act.AddScene(s); err != nil {
			t.Fatal(err)
		}
	}
	return act
}

func TestActScenes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "requiem.ast")
	defer teardown()
	//
	act := makeAct(t, "intro", "hallway", "end")
	if act.Entrypoint != "intro" {
		t.Errorf("expected first scene to be entrypoint, is %q", act.Entrypoint)
	}
	if strings.Join(act.SceneIDs(), ",") != "intro,hallway,end" {
		t.Errorf("expected scenes in insertion order, have %v", act.SceneIDs())
	}
	if act.StatementCount() != 3 {
		t.Errorf("expected 3 statements, have %d", act.StatementCount())
	}
	err := act.AddScene(&Scene{ID: "hallway"})
	if !errors.Is(err, ErrDuplicateScene) {
		t.Errorf("expected duplicate scene error, have %v", err)
	}
	if s, err := act.EntryScene(); err != nil || s.ID != "intro" {
		t.Errorf("expected entry scene 'intro', have %v (%v)", s, err)
	}
	act.Entrypoint = "nowhere"
	if _, err := act.EntryScene(); !errors.Is(err, ErrMissingEntrypoint) {
		t.Errorf("expected missing entrypoint error, have %v", err)
	}
}

func TestActsTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "requiem.ast")
	defer teardown()
	//
	acts := NewActs()
	if _, err := acts.First(); !errors.Is(err, ErrNoActs) {
		t.Errorf("expected no acts error for empty table, have %v", err)
	}
	for _, id := range []string{"b_act", "a_act", "c_act"} {
		if err := acts.Insert(id, makeAct(t, "s")); err != nil {
			t.Fatal(err)
		}
	}
	if first, err := acts.First(); err != nil || first != "a_act" {
		t.Errorf("expected first act 'a_act', have %q (%v)", first, err)
	}
	if err := acts.Insert("b_act", NewAct()); !errors.Is(err, ErrDuplicateAct) {
		t.Errorf("expected duplicate act error, have %v", err)
	}
	var visited []string
	acts.Each(func(id string, act *Act) {
		visited = append(visited, id)
	})
	if strings.Join(visited, ",") != "a_act,b_act,c_act" || acts.Len() != 3 {
		t.Errorf("expected acts in ascending order, have %v", visited)
	}
	if _, ok := acts.Get("d_act"); ok {
		t.Errorf("did not expect to find act 'd_act'")
	}
}

func TestFingerprint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "requiem.ast")
	defer teardown()
	//
	fp1, err := Fingerprint(makeAct(t, "intro", "end"))
	if err != nil {
		t.Fatal(err)
	}
	fp2, _ := Fingerprint(makeAct(t, "intro", "end"))
	if fp1 != fp2 {
		t.Errorf("expected equal acts to have equal fingerprints")
	}
	fp3, _ := Fingerprint(makeAct(t, "intro", "finale"))
	if fp1 == fp3 {
		t.Errorf("expected different acts to have different fingerprints")
	}
}
