// Package prefilter implements a cheap, single-pass validity check of
// a dug puzzle before the more expensive
// LogicCertify/UniquenessCounter/Analyzer stages run.
package prefilter

import "sudokuforge/internal/geometry"

// Check validates puzzle in one linear pass over its houses: no
// duplicate digit in any house, and the clue count falls within
// [minClues, maxClues]. It early-aborts once the remaining empty cells
// can no longer reach minClues.
func Check(topo *geometry.Topology, puzzle []int, minClues, maxClues int) bool {
	clues := 0
	for _, v := range puzzle {
		if v != 0 {
			clues++
		}
	}
	if clues > maxClues {
		return false
	}
	remaining := topo.NN - clues
	if clues+remaining < minClues {
		// Cannot happen (remaining cells are exactly the non-clues), but
		// keeps the early-abort contract explicit and cheap to check.
		return false
	}
	if clues < minClues {
		return false
	}

	for h := 0; h < 3*topo.N; h++ {
		start, end := topo.HouseOffsets[h], topo.HouseOffsets[h+1]
		var seen uint64
		for _, cell := range topo.HousesFlat[start:end] {
			d := puzzle[cell]
			if d == 0 {
				continue
			}
			bit := uint64(1) << uint(d-1)
			if seen&bit != 0 {
				return false
			}
			seen |= bit
		}
	}
	return true
}
