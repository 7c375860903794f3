package ast

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func words(ws ...string) []Word {
	r := make([]Word, len(ws))
	for i, w := range ws {
		if len(w) > 2 && w[0] == '[' && w[len(w)-1] == ']' {
			r[i] = Word{Text: w[1 : len(w)-1], Bracketed: true}
			continue
		}
		r[i] = Word{Text: w}
	}
	return r
}

func TestCharacterOperations(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "requiem.ast")
	defer teardown()
	//
	inputs := [][]Word{
		words("appears", "[happy]"),
		words("appears"),
		words("appears", "happy"),
		words("fade", "in", "[sad]"),
		words("Fade", "In"),
		words("disappears"),
		words("fade", "out"),
		words("[angry]"),
	}
	outputs := []CharacterOperation{
		Spawn{Emotion: "happy"},
		Spawn{},
		Spawn{Emotion: "happy"},
		Spawn{Emotion: "sad", Fading: true},
		Spawn{Fading: true},
		Despawn{},
		Despawn{Fading: true},
		EmotionChange{Emotion: "angry"},
	}
	for i, input := range inputs {
		op, err := CharacterOperationFrom(input)
		if err != nil {
			t.Fatalf("words %v: %v", input, err)
		}
		if op != outputs[i] {
			t.Errorf("expected %s for %v, have %s", outputs[i], input, op)
		}
	}
}

func TestCharacterOperationBlocking(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "requiem.ast")
	defer teardown()
	//
	if !(Spawn{Fading: true}).IsBlocking() || (Spawn{}).IsBlocking() {
		t.Errorf("expected only fading spawns to block")
	}
	if !(Despawn{Fading: true}).IsBlocking() || (Despawn{}).IsBlocking() {
		t.Errorf("expected only fading despawns to block")
	}
	if (EmotionChange{Emotion: "x"}).IsBlocking() {
		t.Errorf("expected emotion changes not to block")
	}
}

func TestCharacterOperationErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "requiem.ast")
	defer teardown()
	//
	inputs := [][]Word{
		words("dances"),
		words("disappears", "[sad]"),
		words("[happy]", "[sad]"),
		words("fade", "sideways"),
		nil,
	}
	for _, input := range inputs {
		if _, err := CharacterOperationFrom(input); !errors.Is(err, ErrUnknownVerb) {
			t.Errorf("expected unknown verb error for %v, have %v", input, err)
		}
	}
}

func TestGUITargets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "requiem.ast")
	defer teardown()
	//
	if g, err := GUITargetByName("textbox"); err != nil || g != TextboxBackground {
		t.Errorf("expected textbox background, have %v (%v)", g, err)
	}
	if g, err := GUITargetByName("namebox"); err != nil || g != NameboxBackground {
		t.Errorf("expected namebox background, have %v (%v)", g, err)
	}
	if _, err := GUITargetByName("sidebar"); !errors.Is(err, ErrUnknownGUITarget) {
		t.Errorf("expected unknown GUI element error, have %v", err)
	}
	if NameboxBackground.String() != "namebox-background" {
		t.Errorf("unexpected name %s", NameboxBackground)
	}
}
