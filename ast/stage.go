package ast

import (
	"fmt"
	"strings"
)

// GUITargetByName resolves the symbolic name of a GUI element.
//
//    textbox ⇒ TextboxBackground
//    namebox ⇒ NameboxBackground
//
func GUITargetByName(name string) (GUITarget, error) {
	switch name {
	case "textbox":
		return TextboxBackground, nil
	case "namebox":
		return NameboxBackground, nil
	}
	return 0, fmt.Errorf("%w '%s'", ErrUnknownGUITarget, name)
}

// Word is a word of a character command. Bracketed words denote emotions.
type Word struct {
	Text      string
	Bracketed bool
}

// CharacterOperationFrom resolves the words following the character name of
// a character command:
//
//    appears [emotion]      ⇒ Spawn(emotion, fading=false)
//    appears emotion        ⇒ Spawn(emotion, fading=false)
//    fade in [emotion]      ⇒ Spawn(emotion, fading=true)
//    disappears             ⇒ Despawn(fading=false)
//    fade out               ⇒ Despawn(fading=true)
//    [emotion]              ⇒ EmotionChange(emotion)
//
// Emotions are optional for spawning. Verbs are matched case-insensitively.
// Anything else is an error wrapping ErrUnknownVerb.
func CharacterOperationFrom(words []Word) (CharacterOperation, error) {
	var verbs []string
	emotion := ""
	for _, w := range words {
		if !w.Bracketed {
			verbs = append(verbs, strings.ToLower(w.Text))
			continue
		}
		if emotion != "" {
			return nil, fmt.Errorf("%w: more than one emotion given", ErrUnknownVerb)
		}
		emotion = w.Text
	}
	verb := strings.Join(verbs, " ")
	switch verb {
	case "":
		if emotion == "" {
			return nil, fmt.Errorf("%w: missing verb", ErrUnknownVerb)
		}
		return EmotionChange{Emotion: emotion}, nil
	case "appears":
		return Spawn{Emotion: emotion}, nil
	case "fade in":
		return Spawn{Emotion: emotion, Fading: true}, nil
	case "disappears", "fade out":
		if emotion != "" {
			return nil, fmt.Errorf("%w: '%s' takes no emotion", ErrUnknownVerb, verb)
		}
		return Despawn{Fading: verb == "fade out"}, nil
	}
	// spawning verbs may be followed by a plain emotion word
	if emotion == "" && len(verbs) > 1 {
		last := len(verbs) - 1
		emotion = words[indexOfWord(words, last)].Text
		switch strings.Join(verbs[:last], " ") {
		case "appears":
			return Spawn{Emotion: emotion}, nil
		case "fade in":
			return Spawn{Emotion: emotion, Fading: true}, nil
		}
	}
	return nil, fmt.Errorf("%w '%s'", ErrUnknownVerb, verb)
}

// indexOfWord returns the index within words of the n-th unbracketed word.
func indexOfWord(words []Word, n int) int {
	for i, w := range words {
		if w.Bracketed {
			continue
		}
		if n == 0 {
			return i
		}
		n--
	}
	return len(words) - 1
}
