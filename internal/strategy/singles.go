package strategy

import "sudokuforge/internal/board"

// nakedSingle places the digit of any empty cell with exactly one
// remaining candidate.
func nakedSingle(e *Engine, b *board.Board) (bool, int, int) {
	for i := 0; i < e.topo.NN; i++ {
		if b.Values[i] != 0 {
			continue
		}
		if d, ok := e.cand[i].Only(); ok {
			e.place(b, i, d)
			return true, 1, 0
		}
	}
	return false, 0, 0
}

// hiddenSingle places the digit of any house/digit pair with exactly one
// admitting empty cell.
func hiddenSingle(e *Engine, b *board.Board) (bool, int, int) {
	for h := 0; h < 3*e.topo.N; h++ {
		cells := e.houseCells(h)
		for d := 1; d <= e.topo.N; d++ {
			count := 0
			last := -1
			for _, c := range cells {
				if b.Values[c] != 0 {
					continue
				}
				if e.cand[c].Has(d) {
					count++
					last = c
					if count > 1 {
						break
					}
				}
			}
			if count == 1 {
				e.place(b, last, d)
				return true, 1, 0
			}
		}
	}
	return false, 0, 0
}
