package maze

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrUnknownAlgorithm is returned for an unrecognised algorithm name
var ErrUnknownAlgorithm = errors.New("maze: unknown algorithm")

// Algorithm names a generation strategy
type Algorithm string

const (
	// AlgorithmCarve is the dual-frontier cell carver
	AlgorithmCarve Algorithm = "carve"

	// Room lattice generators: rooms sit on odd coordinates and are joined
	// through the wall cell between them. Each yields a perfect maze.
	AlgorithmBacktracker Algorithm = "backtracker"
	AlgorithmGrowingTree Algorithm = "growing-tree"
	AlgorithmPrim        Algorithm = "prim"
	AlgorithmKruskal     Algorithm = "kruskal"
	AlgorithmWilson      Algorithm = "wilson"
	AlgorithmEller       Algorithm = "eller"
)

// Algorithms lists every supported algorithm, default first
var Algorithms = []Algorithm{
	AlgorithmCarve,
	AlgorithmBacktracker,
	AlgorithmGrowingTree,
	AlgorithmPrim,
	AlgorithmKruskal,
	AlgorithmWilson,
	AlgorithmEller,
}

// ParseAlgorithm resolves a case-insensitive name. Empty means AlgorithmCarve.
func ParseAlgorithm(name string) (Algorithm, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return AlgorithmCarve, nil
	}
	for _, a := range Algorithms {
		if string(a) == name {
			return a, nil
		}
	}
	return "", errors.Wrapf(ErrUnknownAlgorithm, "%q", name)
}
