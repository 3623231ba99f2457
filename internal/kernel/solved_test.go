package kernel

import (
	"math/rand"
	"testing"

	"sudokuforge/internal/board"
	"sudokuforge/internal/geometry"
)

func assertValidSolution(t *testing.T, topo *geometry.Topology, b *board.Board) {
	t.Helper()
	if !b.IsComplete() {
		t.Fatalf("board not complete")
	}
	for h := 0; h < 3*topo.N; h++ {
		start, end := topo.HouseOffsets[h], topo.HouseOffsets[h+1]
		var seen board.Mask
		for _, cell := range topo.HousesFlat[start:end] {
			d := b.Values[cell]
			if seen.Has(d) {
				t.Fatalf("house %d repeats digit %d", h, d)
			}
			seen = seen.Set(d)
		}
	}
}

func TestSolvedKernel_RecomputeVariantProducesValidGrid(t *testing.T) {
	topo, err := geometry.Build(3, 3) // n=9, below the cache threshold
	if err != nil {
		t.Fatalf("geometry.Build: %v", err)
	}
	k := NewSolvedKernel(topo, BackendScalar)
	b := board.Reset(topo)
	rng := rand.New(rand.NewSource(42))

	if !k.Generate(b, rng, Unbounded()) {
		t.Fatalf("Generate returned false on an unbounded budget")
	}
	assertValidSolution(t, topo, b)
}

func TestSolvedKernel_CacheVariantProducesValidGrid(t *testing.T) {
	topo, err := geometry.Build(5, 6) // n=30, above the cache threshold
	if err != nil {
		t.Fatalf("geometry.Build: %v", err)
	}
	k := NewSolvedKernel(topo, BackendScalar)
	b := board.Reset(topo)
	rng := rand.New(rand.NewSource(7))

	if !k.Generate(b, rng, Unbounded()) {
		t.Fatalf("Generate returned false on an unbounded budget")
	}
	assertValidSolution(t, topo, b)
}

func TestSolvedKernel_NodeBudgetCanAbort(t *testing.T) {
	topo, err := geometry.Build(3, 3)
	if err != nil {
		t.Fatalf("geometry.Build: %v", err)
	}
	k := NewSolvedKernel(topo, BackendScalar)
	b := board.Reset(topo)
	rng := rand.New(rand.NewSource(1))

	ac := NewAbortControl(0, 1, SharedFlags{})
	// A budget of a single search-tree node cannot possibly complete a
	// 9x9 grid; Generate must report failure rather than returning a
	// partially-filled board as if it were a solution.
	ok := k.Generate(b, rng, ac)
	if ok && !b.IsComplete() {
		t.Fatalf("Generate reported success without a complete board")
	}
}
