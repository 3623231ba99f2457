package strategy

import "sudokuforge/internal/board"

func isPeer(e *Engine, a, b int) bool {
	for _, p := range e.topo.Peers(a) {
		if p == b {
			return true
		}
	}
	return false
}

// yWing looks for a bivalue pivot {a,b} with two bivalue pincers {a,c}
// and {b,c} each seeing the pivot, then eliminates c from every cell
// that sees both pincers.
func yWing(e *Engine, b *board.Board) (bool, int, int) {
	n := e.topo.NN
	for p := 0; p < n; p++ {
		if b.Values[p] != 0 || e.cand[p].Count() != 2 {
			continue
		}
		pa, pb := splitPair(e.cand[p])

		for x := 0; x < n; x++ {
			if x == p || b.Values[x] != 0 || e.cand[x].Count() != 2 || !isPeer(e, p, x) {
				continue
			}
			if !e.cand[x].Has(pa) || e.cand[x].Has(pb) {
				continue
			}
			c, _ := e.cand[x].Clear(pa).Lowest()
			if c == 0 {
				continue
			}

			for y := 0; y < n; y++ {
				if y == p || y == x || b.Values[y] != 0 || e.cand[y].Count() != 2 || !isPeer(e, p, y) {
					continue
				}
				if !e.cand[y].Has(pb) || !e.cand[y].Has(c) || e.cand[y].Has(pa) {
					continue
				}

				elim := 0
				for z := 0; z < n; z++ {
					if z == p || z == x || z == y || b.Values[z] != 0 {
						continue
					}
					if !isPeer(e, z, x) || !isPeer(e, z, y) {
						continue
					}
					if e.eliminate(z, c) {
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

// xyzWing looks for a trivalue pivot {a,b,c} with bivalue pincers {a,c}
// and {b,c} each seeing the pivot, then eliminates c from every cell
// that sees the pivot and both pincers.
func xyzWing(e *Engine, b *board.Board) (bool, int, int) {
	n := e.topo.NN
	for p := 0; p < n; p++ {
		if b.Values[p] != 0 || e.cand[p].Count() != 3 {
			continue
		}

		for x := 0; x < n; x++ {
			if x == p || b.Values[x] != 0 || e.cand[x].Count() != 2 || !isPeer(e, p, x) {
				continue
			}
			if e.cand[x].Intersect(e.cand[p]) != e.cand[x] {
				continue
			}

			for y := 0; y < n; y++ {
				if y == p || y == x || b.Values[y] != 0 || e.cand[y].Count() != 2 || !isPeer(e, p, y) {
					continue
				}
				if e.cand[y].Intersect(e.cand[p]) != e.cand[y] {
					continue
				}
				common := e.cand[x].Intersect(e.cand[y])
				c, ok := common.Only()
				if !ok {
					continue
				}
				union := e.cand[x].Union(e.cand[y])
				if union != e.cand[p] {
					continue
				}

				elim := 0
				for z := 0; z < n; z++ {
					if z == p || z == x || z == y || b.Values[z] != 0 {
						continue
					}
					if !isPeer(e, z, p) || !isPeer(e, z, x) || !isPeer(e, z, y) {
						continue
					}
					if e.eliminate(z, c) {
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

// splitPair returns the two digits set in a 2-bit mask.
func splitPair(m board.Mask) (int, int) {
	a, _ := m.Lowest()
	rest := m.Clear(a)
	bd, _ := rest.Lowest()
	return a, bd
}
