package loader

import (
	"bytes"
	_ "embed"

	"github.com/projecthamburgresearch/resuscitation-health-app/pkg/model"
)

//go:embed default_algorithm.json
var defaultAlgorithmJSON []byte

// Default returns the embedded fallback algorithm. The navigation engine
// must always have a valid graph to operate on, so loading failures fall
// back to this rather than leaving the state machine empty.
func Default() *model.Algorithm {
	alg, err := LoadFromReader(bytes.NewReader(defaultAlgorithmJSON))
	if err != nil {
		// The embedded file ships with the binary; failing to parse it is
		// a build defect, not a runtime condition.
		panic("embedded default algorithm is invalid: " + err.Error())
	}
	return alg
}
