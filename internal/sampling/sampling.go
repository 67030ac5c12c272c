// Package sampling draws bounded uniform random subsets of record identifiers.
package sampling

import (
	"fmt"
	mathrand "math/rand/v2"

	"github.com/registrar-tools/tally/pkg/query"
)

// Source provides the randomness for sampling. It is injectable so tests
// can supply a seeded source without touching the drawing logic.
type Source interface {
	// IntN returns a uniform random int in [0, n). n must be positive.
	IntN(n int) int
}

type systemSource struct{}

func (systemSource) IntN(n int) int { return mathrand.IntN(n) }

// SystemSource returns a non-reproducible source backed by the runtime's
// auto-seeded generator.
func SystemSource() Source {
	return systemSource{}
}

type seededSource struct {
	r *mathrand.Rand
}

func (s seededSource) IntN(n int) int { return s.r.IntN(n) }

// SeededSource returns a reproducible source. Identical seeds yield
// identical draw sequences.
func SeededSource(seed uint64) Source {
	return seededSource{r: mathrand.New(mathrand.NewPCG(seed, seed))}
}

// Sample is a drawn subset of a population.
type Sample struct {
	IDs []int64
}

// InclusionPredicate returns a SQL fragment restricting column to exactly
// this sample's identifiers, or an empty string for an empty sample.
func (s Sample) InclusionPredicate(column string) string {
	if len(s.IDs) == 0 {
		return ""
	}
	return fmt.Sprintf("%s IN (%s)", column, query.JoinInt64(s.IDs, ", "))
}

// Engine draws samples from populations using its randomness source.
type Engine struct {
	src Source
}

// New creates an Engine backed by src.
func New(src Source) *Engine {
	return &Engine{src: src}
}

// Draw selects exactly quota distinct identifiers uniformly at random
// without replacement from population. A quota of zero yields an empty
// sample; that is a valid state, not an error. The input slice is not
// modified.
func (e *Engine) Draw(population []int64, quota int) (Sample, error) {
	if quota < 0 {
		return Sample{}, fmt.Errorf("%w: quota %d", ErrInvalidQuota, quota)
	}
	if quota > len(population) {
		return Sample{}, fmt.Errorf(
			"%w: quota %d exceeds population size %d",
			ErrInvalidQuota, quota, len(population),
		)
	}

	if quota == 0 {
		return Sample{IDs: []int64{}}, nil
	}

	// Partial Fisher-Yates: only the first quota positions need settling.
	ids := make([]int64, len(population))
	copy(ids, population)

	for i := 0; i < quota; i++ {
		j := i + e.src.IntN(len(ids)-i)
		ids[i], ids[j] = ids[j], ids[i]
	}

	return Sample{IDs: ids[:quota:quota]}, nil
}
