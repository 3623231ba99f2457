package dig

import (
	"math/rand"
	"testing"

	"sudokuforge/internal/geometry"
)

func solved4x4() []int {
	return []int{
		1, 2, 3, 4,
		3, 4, 1, 2,
		2, 1, 4, 3,
		4, 3, 2, 1,
	}
}

func TestDig_ReachesRequestedRange(t *testing.T) {
	topo, err := geometry.Build(2, 2)
	if err != nil {
		t.Fatalf("geometry.Build: %v", err)
	}
	k := NewKernel(topo)
	rng := rand.New(rand.NewSource(5))

	puzzle := k.Dig(solved4x4(), 6, 6, false, rng)
	if got := countClues(puzzle); got != 6 {
		t.Fatalf("clue count = %d, want 6", got)
	}
}

func TestDig_PreservesSolvedCellsAsSubset(t *testing.T) {
	topo, err := geometry.Build(2, 2)
	if err != nil {
		t.Fatalf("geometry.Build: %v", err)
	}
	solved := solved4x4()
	k := NewKernel(topo)
	rng := rand.New(rand.NewSource(11))

	puzzle := k.Dig(solved, 8, 8, false, rng)
	for i, v := range puzzle {
		if v != 0 && v != solved[i] {
			t.Fatalf("cell %d = %d, want 0 or %d", i, v, solved[i])
		}
	}
}

func TestDig_SymmetryCenterKeepsPairsTogether(t *testing.T) {
	topo, err := geometry.Build(2, 2)
	if err != nil {
		t.Fatalf("geometry.Build: %v", err)
	}
	k := NewKernel(topo)
	rng := rand.New(rand.NewSource(23))

	puzzle := k.Dig(solved4x4(), 8, 8, true, rng)
	for i, v := range puzzle {
		s := topo.CellCenterSym[i]
		if s == i {
			continue
		}
		isEmpty := v == 0
		partnerEmpty := puzzle[s] == 0
		if isEmpty != partnerEmpty {
			t.Fatalf("cell %d empty=%v but its center-symmetric partner %d empty=%v", i, isEmpty, s, partnerEmpty)
		}
	}
}

func TestDig_NeverDigsBelowMinClues(t *testing.T) {
	topo, err := geometry.Build(2, 2)
	if err != nil {
		t.Fatalf("geometry.Build: %v", err)
	}
	k := NewKernel(topo)
	rng := rand.New(rand.NewSource(99))

	puzzle := k.Dig(solved4x4(), 10, 16, false, rng)
	if got := countClues(puzzle); got < 10 {
		t.Fatalf("clue count = %d, want >= 10", got)
	}
}

func TestToBoard_RejectsAConflictingPuzzle(t *testing.T) {
	topo, err := geometry.Build(2, 2)
	if err != nil {
		t.Fatalf("geometry.Build: %v", err)
	}
	bad := make([]int, topo.NN)
	bad[0], bad[1] = 1, 1
	if _, err := ToBoard(topo, bad); err == nil {
		t.Fatalf("ToBoard: want conflict error, got nil")
	}
}
