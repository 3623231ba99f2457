package strategy

import "sudokuforge/internal/board"

// fish looks for, given digit d, k base houses (rows, or columns when
// transposed) whose candidate cells for d all lie within the same k
// cover houses (columns, or rows); d is then eliminated from every
// other cell of those cover houses. Covers X-Wing (k=2), Swordfish
// (k=3), and Jellyfish (k=4) in both orientations.
func fish(k int, rowsAreBase bool) func(e *Engine, b *board.Board) (bool, int, int) {
	return func(e *Engine, b *board.Board) (bool, int, int) {
		n := e.topo.N
		for d := 1; d <= n; d++ {
			var baseHouses []int
			coverSets := make(map[int][]int, n) // base house -> cover indices holding d

			for h := 0; h < n; h++ {
				houseIdx := h
				if !rowsAreBase {
					houseIdx = n + h
				}
				var covers []int
				for _, c := range e.houseCells(houseIdx) {
					if b.Values[c] != 0 || !e.cand[c].Has(d) {
						continue
					}
					cover := e.topo.CellCol[c]
					if !rowsAreBase {
						cover = e.topo.CellRow[c]
					}
					covers = append(covers, cover)
				}
				if len(covers) >= 2 && len(covers) <= k {
					baseHouses = append(baseHouses, h)
					coverSets[h] = covers
				}
			}
			if len(baseHouses) < k {
				continue
			}

			found := false
			var elim int
			combinations(len(baseHouses), k, func(idxs []int) bool {
				union := map[int]bool{}
				bases := make([]int, k)
				for i, bi := range idxs {
					bases[i] = baseHouses[bi]
					for _, cv := range coverSets[baseHouses[bi]] {
						union[cv] = true
					}
				}
				if len(union) != k {
					return true
				}

				n2 := 0
				for cv := range union {
					houseIdx := cv
					if rowsAreBase {
						houseIdx = n + cv
					}
					for _, c := range e.houseCells(houseIdx) {
						rowOf := e.topo.CellRow[c]
						if !rowsAreBase {
							rowOf = e.topo.CellCol[c]
						}
						if containsInt(bases, rowOf) {
							continue
						}
						if e.eliminate(c, d) {
							n2++
						}
					}
				}
				if n2 > 0 {
					elim = n2
					found = true
					return false
				}
				return true
			})
			if found {
				return true, 0, elim
			}
		}
		return false, 0, 0
	}
}
