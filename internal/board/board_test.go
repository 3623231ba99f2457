package board

import (
	"testing"

	"sudokuforge/internal/geometry"
)

func buildTopo(t *testing.T, boxRows, boxCols int) *geometry.Topology {
	t.Helper()
	topo, err := geometry.Build(boxRows, boxCols)
	if err != nil {
		t.Fatalf("geometry.Build(%d,%d): %v", boxRows, boxCols, err)
	}
	return topo
}

func TestPlaceUnplace_RoundTrips(t *testing.T) {
	topo := buildTopo(t, 2, 2)
	b := Reset(topo)
	if b.EmptyCells != topo.NN {
		t.Fatalf("EmptyCells = %d, want %d", b.EmptyCells, topo.NN)
	}

	before := b.CandidateMaskForIdx(0)
	if !before.Has(1) {
		t.Fatalf("cell 0 should allow digit 1 on an empty board")
	}

	b.Place(0, 1)
	if b.Values[0] != 1 {
		t.Fatalf("Values[0] = %d, want 1", b.Values[0])
	}
	if b.EmptyCells != topo.NN-1 {
		t.Fatalf("EmptyCells = %d, want %d", b.EmptyCells, topo.NN-1)
	}
	if b.CandidateMaskForIdx(0) != 0 {
		t.Fatalf("filled cell should report empty candidate mask")
	}
	// A row peer must no longer be able to take digit 1.
	peerIdx := 1
	if b.CandidateMaskForIdx(peerIdx).Has(1) {
		t.Fatalf("row peer of a placed 1 still offers digit 1 as a candidate")
	}

	b.Unplace(0, 1)
	if b.Values[0] != 0 {
		t.Fatalf("Values[0] = %d after Unplace, want 0", b.Values[0])
	}
	if b.EmptyCells != topo.NN {
		t.Fatalf("EmptyCells = %d after Unplace, want %d", b.EmptyCells, topo.NN)
	}
	if got := b.CandidateMaskForIdx(peerIdx); !got.Has(1) {
		t.Fatalf("row peer should regain digit 1 after Unplace, got %v", got.Digits())
	}
}

func TestInitFromPuzzle_DetectsConflict(t *testing.T) {
	topo := buildTopo(t, 2, 2)
	values := make([]int, topo.NN)
	values[0] = 1
	values[1] = 1 // same row, duplicate digit

	_, err := InitFromPuzzle(topo, values)
	if err == nil {
		t.Fatalf("InitFromPuzzle: want conflict error, got nil")
	}
	if _, ok := err.(*ConflictError); !ok {
		t.Fatalf("InitFromPuzzle error type = %T, want *ConflictError", err)
	}
}

func TestInitFromPuzzle_AcceptsConsistentClues(t *testing.T) {
	topo := buildTopo(t, 2, 2)
	values := make([]int, topo.NN)
	values[0] = 1
	values[5] = 2 // distinct row and column from cell 0 (same box, different digit)

	b, err := InitFromPuzzle(topo, values)
	if err != nil {
		t.Fatalf("InitFromPuzzle: %v", err)
	}
	if b.Values[0] != 1 || b.Values[5] != 2 {
		t.Fatalf("InitFromPuzzle did not place the given clues")
	}
	if b.EmptyCells != topo.NN-2 {
		t.Fatalf("EmptyCells = %d, want %d", b.EmptyCells, topo.NN-2)
	}
}

func TestIsComplete(t *testing.T) {
	topo := buildTopo(t, 2, 2)
	b := Reset(topo)
	if b.IsComplete() {
		t.Fatalf("empty board reported complete")
	}

	// A valid solved 4x4 grid (2x2 boxes).
	solved := []int{
		1, 2, 3, 4,
		3, 4, 1, 2,
		2, 1, 4, 3,
		4, 3, 2, 1,
	}
	for i, d := range solved {
		b.Place(i, d)
	}
	if !b.IsComplete() {
		t.Fatalf("fully-placed board not reported complete")
	}
}

func TestClone_IsIndependent(t *testing.T) {
	topo := buildTopo(t, 2, 2)
	b := Reset(topo)
	b.Place(0, 1)

	clone := b.Clone()
	clone.Place(1, 2)

	if b.Values[1] != 0 {
		t.Fatalf("mutating the clone affected the original board")
	}
	if clone.Values[0] != 1 {
		t.Fatalf("clone lost the original's placement")
	}
}

func TestPressure_IncreasesAsHousesFillUp(t *testing.T) {
	topo := buildTopo(t, 2, 2)
	b := Reset(topo)
	before := b.Pressure(3)
	b.Place(0, 1) // shares a row with cell 3 in a 4x4 grid (cells 0-3)
	after := b.Pressure(3)
	if after <= before {
		t.Fatalf("Pressure(3) = %d after a row placement, want > %d", after, before)
	}
}
