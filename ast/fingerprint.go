package ast

import (
	"github.com/cnf/structhash"
)

type actDigest struct {
	Entrypoint string
	Scenes     []sceneDigest
}

type sceneDigest struct {
	ID         string
	Statements []string
}

// Fingerprint returns a content hash of an act. Compiling the same script
// twice yields the same fingerprint; any change to a scene or statement
// changes it.
func Fingerprint(act *Act) (string, error) {
	d := actDigest{Entrypoint: act.Entrypoint}
	for _, id := range act.SceneIDs() {
		scene := act.Scenes[id]
		sd := sceneDigest{ID: id, Statements: make([]string, len(scene.Statements))}
		for i, st := range scene.Statements {
			sd.Statements[i] = st.String()
		}
		d.Scenes = append(d.Scenes, sd)
	}
	return structhash.Hash(d, 1)
}
