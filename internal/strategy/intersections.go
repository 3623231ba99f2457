package strategy

import "sudokuforge/internal/board"

// pointingPair finds, for some box and digit d, every empty cell in the
// box still admitting d; if they all share a row or column, d is
// eliminated from the rest of that row/column outside the box.
func pointingPair(e *Engine, b *board.Board) (bool, int, int) {
	n := e.topo.N
	for box := 0; box < n; box++ {
		cells := e.houseCells(2*n + box)
		for d := 1; d <= n; d++ {
			var rows, cols = map[int]bool{}, map[int]bool{}
			var members []int
			for _, c := range cells {
				if b.Values[c] != 0 || !e.cand[c].Has(d) {
					continue
				}
				members = append(members, c)
				rows[e.topo.CellRow[c]] = true
				cols[e.topo.CellCol[c]] = true
			}
			if len(members) < 2 {
				continue
			}

			elim := 0
			if len(rows) == 1 {
				for r := range rows {
					elim += eliminateFromHouseExcept(e, r, members, d)
				}
			} else if len(cols) == 1 {
				for c := range cols {
					elim += eliminateFromHouseExcept(e, n+c, members, d)
				}
			}
			if elim > 0 {
				return true, 0, elim
			}
		}
	}
	return false, 0, 0
}

// boxLineReduction finds, for some row or column and digit d, every
// empty cell in that line still admitting d; if they all share a box,
// d is eliminated from the rest of that box outside the line.
func boxLineReduction(e *Engine, b *board.Board) (bool, int, int) {
	n := e.topo.N
	for h := 0; h < 2*n; h++ { // rows then cols
		cells := e.houseCells(h)
		for d := 1; d <= n; d++ {
			var boxes = map[int]bool{}
			var members []int
			for _, c := range cells {
				if b.Values[c] != 0 || !e.cand[c].Has(d) {
					continue
				}
				members = append(members, c)
				boxes[e.topo.CellBox[c]] = true
			}
			if len(members) < 2 || len(boxes) != 1 {
				continue
			}
			var box int
			for bx := range boxes {
				box = bx
			}
			elim := eliminateFromHouseExcept(e, 2*n+box, members, d)
			if elim > 0 {
				return true, 0, elim
			}
		}
	}
	return false, 0, 0
}

// eliminateFromHouseExcept clears digit d from every cell of house h
// that is not in except, returning the number of eliminations made.
func eliminateFromHouseExcept(e *Engine, h int, except []int, d int) int {
	count := 0
	for _, c := range e.houseCells(h) {
		if containsInt(except, c) {
			continue
		}
		if e.eliminate(c, d) {
			count++
		}
	}
	return count
}

// eliminateMaskFromHouseExcept clears every digit in mask from every
// cell of house h that is not in except, returning the total number of
// eliminations made.
func eliminateMaskFromHouseExcept(e *Engine, h int, except []int, mask board.Mask) int {
	count := 0
	for _, c := range e.houseCells(h) {
		if containsInt(except, c) {
			continue
		}
		mask.ForEach(func(d int) {
			if e.eliminate(c, d) {
				count++
			}
		})
	}
	return count
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
