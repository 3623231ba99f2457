package board

import (
	"fmt"

	"sudokuforge/internal/geometry"
)

// Board is the mutable per-cell value / per-house used-mask state for one
// Topology. It carries no candidate cache of its own -- that is
// CandidateCache's job (internal/kernel) for the hot MRV path; Board's
// CandidateMaskForIdx recomputes on demand, which is all LogicCertify,
// StrategyEngine, DigKernel, and the DLX row-builder need.
//
// Generalized from a fixed 81-cell/9-digit board to an arbitrary
// Topology.
type Board struct {
	Topo *geometry.Topology

	Values []int // 0 = empty, else digit in [1,n]

	RowUsed []Mask
	ColUsed []Mask
	BoxUsed []Mask

	EmptyCells int
	FullMask   Mask
}

// Reset returns a new, empty Board over topo.
func Reset(topo *geometry.Topology) *Board {
	return &Board{
		Topo:       topo,
		Values:     make([]int, topo.NN),
		RowUsed:    make([]Mask, topo.N),
		ColUsed:    make([]Mask, topo.N),
		BoxUsed:    make([]Mask, topo.N),
		EmptyCells: topo.NN,
		FullMask:   FullMask(topo.N),
	}
}

// ConflictError reports a clue in InitFromPuzzle that collides with an
// earlier placement.
type ConflictError struct {
	Idx, Digit int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("cell %d: digit %d conflicts with an earlier clue", e.Idx, e.Digit)
}

// InitFromPuzzle bulk-places the nonzero cells of values (len == topo.NN).
// Fails on the first conflicting clue, returning a nil Board and a
// *ConflictError.
func InitFromPuzzle(topo *geometry.Topology, values []int) (*Board, error) {
	b := Reset(topo)
	for idx, d := range values {
		if d == 0 {
			continue
		}
		if b.CandidateMaskForIdx(idx)&Bit(d) == 0 {
			return nil, &ConflictError{Idx: idx, Digit: d}
		}
		b.Place(idx, d)
	}
	return b, nil
}

// CandidateMaskForIdx returns 0 for a filled cell, else the digits not
// already used in idx's row, column, or box.
func (b *Board) CandidateMaskForIdx(idx int) Mask {
	if b.Values[idx] != 0 {
		return 0
	}
	r, c, box := b.Topo.CellRow[idx], b.Topo.CellCol[idx], b.Topo.CellBox[idx]
	used := b.RowUsed[r].Union(b.ColUsed[c]).Union(b.BoxUsed[box])
	return used.Complement(b.FullMask)
}

// Place sets idx to digit d. Precondition: CandidateMaskForIdx(idx) has
// bit d set (the caller is responsible for checking; Place does not).
func (b *Board) Place(idx, d int) {
	b.Values[idx] = d
	r, c, box := b.Topo.CellRow[idx], b.Topo.CellCol[idx], b.Topo.CellBox[idx]
	b.RowUsed[r] = b.RowUsed[r].Set(d)
	b.ColUsed[c] = b.ColUsed[c].Set(d)
	b.BoxUsed[box] = b.BoxUsed[box].Set(d)
	b.EmptyCells--
}

// Unplace reverses Place. Precondition: the current value at idx is d.
func (b *Board) Unplace(idx, d int) {
	b.Values[idx] = 0
	r, c, box := b.Topo.CellRow[idx], b.Topo.CellCol[idx], b.Topo.CellBox[idx]
	b.RowUsed[r] = b.RowUsed[r].Clear(d)
	b.ColUsed[c] = b.ColUsed[c].Clear(d)
	b.BoxUsed[box] = b.BoxUsed[box].Clear(d)
	b.EmptyCells++
}

// IsComplete reports whether every cell is filled.
func (b *Board) IsComplete() bool { return b.EmptyCells == 0 }

// Clone returns a deep copy, used by strategies/analyzers that must
// simulate tentative placements without disturbing the original board.
func (b *Board) Clone() *Board {
	nb := &Board{
		Topo:       b.Topo,
		Values:     append([]int(nil), b.Values...),
		RowUsed:    append([]Mask(nil), b.RowUsed...),
		ColUsed:    append([]Mask(nil), b.ColUsed...),
		BoxUsed:    append([]Mask(nil), b.BoxUsed...),
		EmptyCells: b.EmptyCells,
		FullMask:   b.FullMask,
	}
	return nb
}

// Pressure returns the popcount of the union of idx's three house-used
// masks -- the MRV tie-break metric: prefer cells whose row/col/box are
// already dense.
func (b *Board) Pressure(idx int) int {
	r, c, box := b.Topo.CellRow[idx], b.Topo.CellCol[idx], b.Topo.CellBox[idx]
	return b.RowUsed[r].Union(b.ColUsed[c]).Union(b.BoxUsed[box]).Count()
}
