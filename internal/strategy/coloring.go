package strategy

import "sudokuforge/internal/board"

// simpleColoring builds, for one digit d, the graph of conjugate pairs
// (houses where d has exactly two candidate cells) and two-colors each
// connected component by alternating along edges. If two same-colored
// cells of one component see each other, that color is contradictory: d
// is eliminated from every cell of that component holding it.
func simpleColoring(e *Engine, b *board.Board) (bool, int, int) {
	n := e.topo.N
	nn := e.topo.NN
	for d := 1; d <= n; d++ {
		adj := make(map[int][]int, nn)
		for h := 0; h < 3*n; h++ {
			var cells []int
			for _, c := range e.houseCells(h) {
				if b.Values[c] == 0 && e.cand[c].Has(d) {
					cells = append(cells, c)
				}
			}
			if len(cells) == 2 {
				adj[cells[0]] = append(adj[cells[0]], cells[1])
				adj[cells[1]] = append(adj[cells[1]], cells[0])
			}
		}
		if len(adj) == 0 {
			continue
		}

		color := make(map[int]int, len(adj))
		comp := make(map[int]int, len(adj))
		for start := range adj {
			if _, seen := color[start]; seen {
				continue
			}
			color[start] = 0
			comp[start] = start
			queue := []int{start}
			for len(queue) > 0 {
				cur := queue[0]
				queue = queue[1:]
				for _, nb := range adj[cur] {
					if _, seen := color[nb]; seen {
						continue
					}
					color[nb] = 1 - color[cur]
					comp[nb] = start
					queue = append(queue, nb)
				}
			}
		}

		for cell, col := range color {
			for _, other := range e.topo.Peers(cell) {
				ocol, ok := color[other]
				if !ok || other <= cell || ocol != col || comp[other] != comp[cell] {
					continue
				}
				elim := 0
				for c, cc := range color {
					if cc != col || comp[c] != comp[cell] {
						continue
					}
					if e.eliminate(c, d) {
						elim++
					}
				}
				if elim > 0 {
					return true, 0, elim
				}
			}
		}
	}
	return false, 0, 0
}

// forcingChains tries, for each bivalue cell, assuming each of its two
// candidates in turn and propagating singles to exhaustion on a cloned
// board. If one assumption reaches a contradiction (some cell left with
// no candidates), the other candidate is forced.
func forcingChains(e *Engine, b *board.Board) (bool, int, int) {
	nn := e.topo.NN
	for p := 0; p < nn; p++ {
		if b.Values[p] != 0 || e.cand[p].Count() != 2 {
			continue
		}
		a, c := splitPair(e.cand[p])

		if !hasLogicalSupportWithAssignment(e, b, p, a) {
			e.place(b, p, c)
			return true, 1, 0
		}
		if !hasLogicalSupportWithAssignment(e, b, p, c) {
			e.place(b, p, a)
			return true, 1, 0
		}
	}
	return false, 0, 0
}

// hasLogicalSupportWithAssignment reports whether tentatively placing d
// at idx, then propagating naked/hidden singles to exhaustion on a
// cloned board, avoids any contradiction (an empty cell left with zero
// candidates). A false result means the assumption is refuted: d cannot
// be idx's value.
func hasLogicalSupportWithAssignment(e *Engine, b *board.Board, idx, d int) bool {
	trial := b.Clone()
	cand := append([]board.Mask(nil), e.cand...)

	trial.Place(idx, d)
	cand[idx] = 0
	for _, p := range e.topo.Peers(idx) {
		cand[p] = cand[p].Clear(d)
	}

	te := &Engine{topo: e.topo, cand: cand}
	for {
		for i := 0; i < e.topo.NN; i++ {
			if trial.Values[i] == 0 && te.cand[i].IsEmpty() {
				return false
			}
		}
		if applied, _, _ := nakedSingle(te, trial); applied {
			continue
		}
		if applied, _, _ := hiddenSingle(te, trial); applied {
			continue
		}
		break
	}
	return true
}
