package sampling_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/registrar-tools/tally/internal/sampling"
)

func population(n int) []int64 {
	ids := make([]int64, n)
	for i := range ids {
		ids[i] = int64(i + 1)
	}
	return ids
}

func TestDrawExactQuotaDistinct(t *testing.T) {
	pop := population(100)
	engine := sampling.New(sampling.SeededSource(7))

	sample, err := engine.Draw(pop, 10)
	if err != nil {
		t.Fatalf("Draw failed: %v", err)
	}

	if len(sample.IDs) != 10 {
		t.Fatalf("len(IDs) = %d, want 10", len(sample.IDs))
	}

	seen := make(map[int64]bool)
	for _, id := range sample.IDs {
		if seen[id] {
			t.Errorf("identifier %d drawn twice", id)
		}
		seen[id] = true
		if !slices.Contains(pop, id) {
			t.Errorf("identifier %d not in population", id)
		}
	}
}

func TestDrawDeterministicWithSeed(t *testing.T) {
	pop := population(500)

	first, err := sampling.New(sampling.SeededSource(42)).Draw(pop, 50)
	if err != nil {
		t.Fatalf("first draw failed: %v", err)
	}
	second, err := sampling.New(sampling.SeededSource(42)).Draw(pop, 50)
	if err != nil {
		t.Fatalf("second draw failed: %v", err)
	}

	if !slices.Equal(first.IDs, second.IDs) {
		t.Errorf("identical seeds produced different samples:\n%v\n%v", first.IDs, second.IDs)
	}
}

func TestDrawDifferentSeedsDiverge(t *testing.T) {
	pop := population(500)

	a, _ := sampling.New(sampling.SeededSource(1)).Draw(pop, 50)
	b, _ := sampling.New(sampling.SeededSource(2)).Draw(pop, 50)

	if slices.Equal(a.IDs, b.IDs) {
		t.Error("different seeds produced identical samples")
	}
}

func TestDrawZeroQuota(t *testing.T) {
	engine := sampling.New(sampling.SeededSource(1))

	sample, err := engine.Draw(population(10), 0)
	if err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	if len(sample.IDs) != 0 {
		t.Errorf("len(IDs) = %d, want 0", len(sample.IDs))
	}
	if sample.InclusionPredicate("r.id") != "" {
		t.Errorf("empty sample predicate = %q, want empty", sample.InclusionPredicate("r.id"))
	}
}

func TestDrawFullPopulation(t *testing.T) {
	pop := population(25)
	sample, err := sampling.New(sampling.SeededSource(9)).Draw(pop, 25)
	if err != nil {
		t.Fatalf("Draw failed: %v", err)
	}

	got := slices.Clone(sample.IDs)
	slices.Sort(got)
	if !slices.Equal(got, pop) {
		t.Errorf("full draw is not a permutation of the population")
	}
}

func TestDrawInvalidQuota(t *testing.T) {
	engine := sampling.New(sampling.SeededSource(1))

	if _, err := engine.Draw(population(5), 6); !errors.Is(err, sampling.ErrInvalidQuota) {
		t.Errorf("quota above population: error = %v, want ErrInvalidQuota", err)
	}
	if _, err := engine.Draw(population(5), -1); !errors.Is(err, sampling.ErrInvalidQuota) {
		t.Errorf("negative quota: error = %v, want ErrInvalidQuota", err)
	}
}

func TestDrawDoesNotMutateInput(t *testing.T) {
	pop := population(50)
	original := slices.Clone(pop)

	if _, err := sampling.New(sampling.SeededSource(3)).Draw(pop, 20); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}

	if !slices.Equal(pop, original) {
		t.Error("Draw mutated the population slice")
	}
}

func TestInclusionPredicate(t *testing.T) {
	sample := sampling.Sample{IDs: []int64{3, 1, 7}}
	got := sample.InclusionPredicate("r.id")
	want := "r.id IN (3, 1, 7)"
	if got != want {
		t.Errorf("InclusionPredicate = %q, want %q", got, want)
	}
}
