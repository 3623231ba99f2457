package dlx

import "sudokuforge/internal/kernel"

// searchState is the mutable per-call exact-cover state: which rows and
// columns are still active, plus the undo stacks that let cover/uncover
// be exact inverses. Never shared across calls or goroutines -- one is
// built fresh per CountSolutionsLimit invocation.
type searchState struct {
	static *Static

	activeRows    wordSet
	uncoveredCols wordSet

	rowUndo []undoEntry
	colUndo []undoEntry
}

func newSearchState(s *Static) *searchState {
	ss := &searchState{
		static:        s,
		activeRows:    newWordSet(s.TotalRows),
		uncoveredCols: newWordSet(s.TotalCols),
	}
	ss.activeRows.setAll()
	ss.uncoveredCols.setAll()
	return ss
}

// coverRow selects row as part of the solution: every column it touches
// leaves the uncovered set, and every other active row sharing any of
// those columns is deactivated (it would conflict). Returns markers into
// the undo stacks so uncoverRow can restore exactly this call's effect,
// in LIFO order relative to any nested coverRow calls.
func (s *searchState) coverRow(row int) (rowMark, colMark int) {
	rowMark = len(s.rowUndo)
	colMark = len(s.colUndo)

	for _, col := range s.static.RowCols[row] {
		if e, ok := s.uncoveredCols.clearRecording(col); ok {
			s.colUndo = append(s.colUndo, e)
		}

		conflicting := s.activeRows.asBitSet().Intersection(s.static.ColRows[col])
		for i, ok := conflicting.NextSet(0); ok; i, ok = conflicting.NextSet(i + 1) {
			r := int(i)
			if r == row {
				continue
			}
			if e, ok2 := s.activeRows.clearRecording(r); ok2 {
				s.rowUndo = append(s.rowUndo, e)
			}
		}
	}

	if e, ok := s.activeRows.clearRecording(row); ok {
		s.rowUndo = append(s.rowUndo, e)
	}
	return rowMark, colMark
}

// uncoverRow exactly reverses the coverRow call that produced rowMark
// and colMark, unwinding both undo stacks in strict LIFO order.
func (s *searchState) uncoverRow(rowMark, colMark int) {
	for i := len(s.rowUndo) - 1; i >= rowMark; i-- {
		s.activeRows.restore(s.rowUndo[i])
	}
	s.rowUndo = s.rowUndo[:rowMark]

	for i := len(s.colUndo) - 1; i >= colMark; i-- {
		s.uncoveredCols.restore(s.colUndo[i])
	}
	s.colUndo = s.colUndo[:colMark]
}

// selection describes the outcome of picking the next branch column.
type selection struct {
	solved bool  // no uncovered columns remain: current partial solution is complete
	dead   bool  // some uncovered column has zero active rows: this branch is unsatisfiable
	col    int   // chosen column, valid when !solved && !dead
	rows   []int // active rows covering col, valid when !solved && !dead
}

// selectColumn picks the uncovered column with the fewest active rows
// (ties broken by lowest column id, since uncoveredCols is scanned in
// ascending order), the standard Dancing Links "S heuristic" that
// minimizes branching factor.
func (s *searchState) selectColumn() selection {
	uncovered := s.uncoveredCols.asBitSet()
	activeBS := s.activeRows.asBitSet()

	best := -1
	bestCount := -1
	for i, ok := uncovered.NextSet(0); ok; i, ok = uncovered.NextSet(i + 1) {
		col := int(i)
		cnt := int(activeBS.IntersectionCardinality(s.static.ColRows[col]))
		if cnt == 0 {
			return selection{dead: true}
		}
		if best == -1 || cnt < bestCount {
			best = col
			bestCount = cnt
		}
	}
	if best == -1 {
		return selection{solved: true}
	}

	rowsBS := activeBS.Intersection(s.static.ColRows[best])
	rows := make([]int, 0, bestCount)
	for i, ok := rowsBS.NextSet(0); ok; i, ok = rowsBS.NextSet(i + 1) {
		rows = append(rows, int(i))
	}
	return selection{col: best, rows: rows}
}

// CountSolutionsLimit counts completions of puzzle (0 = empty cell) up
// to limit: returns -1 if ac aborts mid-search, 0 if unsolvable, the
// exact count if it is <= limit, otherwise limit.
func CountSolutionsLimit(static *Static, puzzle []int, limit int, ac *kernel.AbortControl) int {
	s := newSearchState(static)

	marks := make([][2]int, 0, static.TotalRows)
	for cell, d := range puzzle {
		if d == 0 {
			continue
		}
		row := static.RowFor(cell, d)
		if !s.activeRows.test(row) {
			// A clue's row was already excluded by an earlier clue:
			// two givens conflict directly, so the puzzle is unsolvable.
			return 0
		}
		rm, cm := s.coverRow(row)
		marks = append(marks, [2]int{rm, cm})
	}

	count := countRecursive(s, limit, ac)

	for i := len(marks) - 1; i >= 0; i-- {
		s.uncoverRow(marks[i][0], marks[i][1])
	}
	return count
}

// countRecursive implements the branch-and-count: pick the most
// constrained uncovered column, try each of its active rows, and sum
// completions across the subtree, stopping early once limit is reached.
func countRecursive(s *searchState, limit int, ac *kernel.AbortControl) int {
	if !ac.Step() {
		return -1
	}

	sel := s.selectColumn()
	if sel.solved {
		return 1
	}
	if sel.dead {
		return 0
	}

	total := 0
	for _, row := range sel.rows {
		rm, cm := s.coverRow(row)
		sub := countRecursive(s, limit-total, ac)
		s.uncoverRow(rm, cm)

		if sub < 0 {
			return -1
		}
		total += sub
		if total >= limit {
			return limit
		}
	}
	return total
}
