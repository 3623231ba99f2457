// Package dlx implements a solution-uniqueness counter: an exact-cover
// solution counter over bitset Dancing Links, bounded by a limit and a
// kernel.AbortControl budget.
//
// The static exact-cover incidence (column set = 4*nn constraints:
// cell-filled, row-has-digit, col-has-digit, box-has-digit; row set =
// n*n*n entries of (row,col,digit)) depends only on Topology, so it is
// built once per Topology and cached, the same way geometry.Build
// caches Topology itself.
//
// A recursive constraint-propagation backtracking uniqueness check is
// replaced here with dancing-links exact cover over bitset row/column
// incidence. The static column-to-rows incidence uses
// github.com/bits-and-blooms/bitset, a good fit for this kind of large
// fixed-universe bitset; the mutable active-row/uncovered-column search
// state is a raw []uint64 word array with an explicit
// (word_index, old_word) undo log.
package dlx

import (
	"sync"

	"github.com/bits-and-blooms/bitset"

	"sudokuforge/internal/geometry"
)

// Static is the puzzle-independent exact-cover incidence for one
// Topology: which of the 4 constraint columns each (cell,digit) row
// covers, and which rows cover each column.
type Static struct {
	N, NN      int
	TotalRows  int // nn*n
	TotalCols  int // 4*nn
	RowCols    [][4]int
	ColRows    []*bitset.BitSet // len TotalCols, each sized TotalRows
}

var (
	staticMu    sync.Mutex
	staticCache = map[*geometry.Topology]*Static{}
)

// BuildStatic returns the (cached) Static incidence for topo.
func BuildStatic(topo *geometry.Topology) *Static {
	staticMu.Lock()
	defer staticMu.Unlock()
	if s, ok := staticCache[topo]; ok {
		return s
	}
	s := buildStatic(topo)
	staticCache[topo] = s
	return s
}

func buildStatic(topo *geometry.Topology) *Static {
	n, nn := topo.N, topo.NN
	totalRows := nn * n
	totalCols := 4 * nn

	s := &Static{N: n, NN: nn, TotalRows: totalRows, TotalCols: totalCols}
	s.RowCols = make([][4]int, totalRows)
	s.ColRows = make([]*bitset.BitSet, totalCols)
	for i := range s.ColRows {
		s.ColRows[i] = bitset.New(uint(totalRows))
	}

	for cell := 0; cell < nn; cell++ {
		r, c, box := topo.CellRow[cell], topo.CellCol[cell], topo.CellBox[cell]
		for d := 1; d <= n; d++ {
			row := cell*n + (d - 1)
			cols := [4]int{
				cell,                     // cell-filled
				nn + r*n + (d - 1),       // row-has-digit
				2*nn + c*n + (d - 1),     // col-has-digit
				3*nn + box*n + (d - 1),   // box-has-digit
			}
			s.RowCols[row] = cols
			for _, col := range cols {
				s.ColRows[col].Set(uint(row))
			}
		}
	}
	return s
}

// RowFor returns the exact-cover row index for placing digit d (1..n)
// at cell index `cell`.
func (s *Static) RowFor(cell, d int) int { return cell*s.N + (d - 1) }
