package strategy

import "sudokuforge/internal/board"

// nakedSubset looks for k empty cells in some house whose candidate
// masks union to exactly k digits, then eliminates those digits from
// every other cell in the house. Covers Naked Pair/Triple/Quad for
// k=2,3,4.
func nakedSubset(k int) func(e *Engine, b *board.Board) (bool, int, int) {
	return func(e *Engine, b *board.Board) (bool, int, int) {
		for h := 0; h < 3*e.topo.N; h++ {
			cells := e.houseCells(h)

			var candidates []int
			for _, c := range cells {
				if b.Values[c] == 0 {
					cnt := e.cand[c].Count()
					if cnt >= 2 && cnt <= k {
						candidates = append(candidates, c)
					}
				}
			}
			if len(candidates) < k {
				continue
			}

			found := false
			var elim int
			combinations(len(candidates), k, func(idxs []int) bool {
				var union board.Mask
				members := make([]int, k)
				for i, ci := range idxs {
					members[i] = candidates[ci]
					union = union.Union(e.cand[candidates[ci]])
				}
				if union.Count() != k {
					return true
				}
				n := eliminateMaskFromHouseExcept(e, h, members, union)
				if n > 0 {
					elim = n
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

// hiddenSubset looks for k digits in some house whose admitting empty
// cells number exactly k, then restricts those cells to only those k
// digits (eliminating every other candidate from them). Covers Hidden
// Pair/Triple/Quad for k=2,3,4.
func hiddenSubset(k int) func(e *Engine, b *board.Board) (bool, int, int) {
	return func(e *Engine, b *board.Board) (bool, int, int) {
		for h := 0; h < 3*e.topo.N; h++ {
			cells := e.houseCells(h)

			digitCells := make(map[int][]int, e.topo.N)
			for d := 1; d <= e.topo.N; d++ {
				for _, c := range cells {
					if b.Values[c] == 0 && e.cand[c].Has(d) {
						digitCells[d] = append(digitCells[d], c)
					}
				}
			}
			var digits []int
			for d, cs := range digitCells {
				if len(cs) >= 1 && len(cs) <= k {
					digits = append(digits, d)
				}
			}
			if len(digits) < k {
				continue
			}

			found := false
			var elim int
			combinations(len(digits), k, func(idxs []int) bool {
				cellSet := map[int]bool{}
				ds := make([]int, k)
				for i, di := range idxs {
					ds[i] = digits[di]
					for _, c := range digitCells[digits[di]] {
						cellSet[c] = true
					}
				}
				if len(cellSet) != k {
					return true
				}
				restrict := board.NewMask(ds)
				n := 0
				for c := range cellSet {
					before := e.cand[c]
					after := before.Intersect(restrict)
					if after != before {
						n += before.Count() - after.Count()
						e.cand[c] = after
					}
				}
				if n > 0 {
					elim = n
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

// combinations calls fn once per k-combination of indices in [0,n), in
// lexicographic order, stopping early if fn returns false.
func combinations(n, k int, fn func(idxs []int) bool) {
	if k > n {
		return
	}
	idxs := make([]int, k)
	for i := range idxs {
		idxs[i] = i
	}
	for {
		if !fn(idxs) {
			return
		}
		i := k - 1
		for i >= 0 && idxs[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idxs[i]++
		for j := i + 1; j < k; j++ {
			idxs[j] = idxs[j-1] + 1
		}
	}
}
