package dlx

import (
	"testing"

	"sudokuforge/internal/geometry"
	"sudokuforge/internal/kernel"
)

// A fully solved 4x4 (2x2 boxes) grid, rows are houses 0..3.
var solved4 = []int{
	1, 2, 3, 4,
	3, 4, 1, 2,
	2, 1, 4, 3,
	4, 3, 2, 1,
}

func TestCountSolutionsLimit_FullGridIsUniqueSolution(t *testing.T) {
	topo, err := geometry.Build(2, 2)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	static := BuildStatic(topo)

	got := CountSolutionsLimit(static, solved4, 2, kernel.Unbounded())
	if got != 1 {
		t.Fatalf("fully filled grid: got %d solutions, want 1", got)
	}
}

func TestCountSolutionsLimit_EmptyGridHasManySolutions(t *testing.T) {
	topo, err := geometry.Build(2, 2)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	static := BuildStatic(topo)

	empty := make([]int, topo.NN)
	got := CountSolutionsLimit(static, empty, 2, kernel.Unbounded())
	if got != 2 {
		t.Fatalf("empty grid: got %d, want limit-capped 2", got)
	}
}

func TestCountSolutionsLimit_ConflictingCluesAreUnsolvable(t *testing.T) {
	topo, err := geometry.Build(2, 2)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	static := BuildStatic(topo)

	puzzle := make([]int, topo.NN)
	puzzle[0] = 1 // row 0, col 0
	puzzle[1] = 1 // same row, same digit: direct conflict

	got := CountSolutionsLimit(static, puzzle, 5, kernel.Unbounded())
	if got != 0 {
		t.Fatalf("conflicting clues: got %d, want 0", got)
	}
}

func TestCountSolutionsLimit_SingleMissingCellIsUnique(t *testing.T) {
	topo, err := geometry.Build(2, 2)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	static := BuildStatic(topo)

	puzzle := append([]int(nil), solved4...)
	puzzle[0] = 0

	got := CountSolutionsLimit(static, puzzle, 2, kernel.Unbounded())
	if got != 1 {
		t.Fatalf("single missing cell: got %d, want 1", got)
	}
}

func TestCountSolutionsLimit_NodeBudgetAborts(t *testing.T) {
	topo, err := geometry.Build(2, 2)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	static := BuildStatic(topo)

	empty := make([]int, topo.NN)
	ac := kernel.NewAbortControl(0, 1, kernel.SharedFlags{})
	got := CountSolutionsLimit(static, empty, 1000, ac)
	if got != -1 {
		t.Fatalf("node-starved search: got %d, want -1 (aborted)", got)
	}
	if !ac.Aborted() || !ac.AbortedByNodes {
		t.Fatalf("expected AbortedByNodes, got %+v", ac)
	}
}
