// Package certify implements LogicCertify: Naked Single and Hidden
// Single applied to exhaustion, with contradiction detection. It runs as
// the first stage of Analyzer; Generator has no standalone certify stage
// of its own.
//
// Generalized from a fixed 9x9 candidate bitmask to board.Mask over an
// arbitrary Topology, and reshaped around board.Board/geometry.Topology
// instead of fixed-size package-level globals.
package certify

import "sudokuforge/internal/board"
import "sudokuforge/internal/geometry"

// Status is the outcome of a certification run.
type Status int

const (
	Stalled Status = iota
	Solved
	Contradiction
)

// StrategyStats accumulates per-strategy usage: count, hits and
// placements. No elapsed time is recorded.
type StrategyStats struct {
	UseCount   int
	HitCount   int
	Placements int
}

// Report is the outcome of Run.
type Report struct {
	Status     Status
	Steps      int
	NakedSingle StrategyStats
	HiddenSingle StrategyStats
	// Grid holds the fully solved values iff Status == Solved.
	Grid []int
}

// Run applies Naked Single and Hidden Single to b (a Board already
// initialized from a puzzle) until no further progress or a
// contradiction is detected. b is mutated in place.
func Run(topo *geometry.Topology, b *board.Board) Report {
	rep := Report{}

	// Candidate masks are not cached: every check recomputes them from
	// b's house-used masks via CandidateMaskForIdx, which keeps this
	// package independent of kernel.CandidateCache.
	for {
		if con := firstContradiction(topo, b); con {
			rep.Status = Contradiction
			return rep
		}

		if idx, d, ok := findNakedSingle(topo, b); ok {
			rep.NakedSingle.UseCount++
			rep.NakedSingle.HitCount++
			rep.NakedSingle.Placements++
			b.Place(idx, d)
			rep.Steps++
			continue
		}
		rep.NakedSingle.UseCount++

		if idx, d, ok := findHiddenSingle(topo, b); ok {
			rep.HiddenSingle.UseCount++
			rep.HiddenSingle.HitCount++
			rep.HiddenSingle.Placements++
			b.Place(idx, d)
			rep.Steps++
			continue
		}
		rep.HiddenSingle.UseCount++

		break
	}

	if b.IsComplete() {
		rep.Status = Solved
		rep.Grid = append([]int(nil), b.Values...)
		return rep
	}
	rep.Status = Stalled
	return rep
}

// firstContradiction reports whether any empty cell has zero candidates.
func firstContradiction(topo *geometry.Topology, b *board.Board) bool {
	for i := 0; i < topo.NN; i++ {
		if b.Values[i] == 0 && b.CandidateMaskForIdx(i).IsEmpty() {
			return true
		}
	}
	return false
}

// findNakedSingle returns the first empty cell whose candidate mask has
// exactly one bit.
func findNakedSingle(topo *geometry.Topology, b *board.Board) (idx, digit int, ok bool) {
	for i := 0; i < topo.NN; i++ {
		if b.Values[i] != 0 {
			continue
		}
		if d, only := b.CandidateMaskForIdx(i).Only(); only {
			return i, d, true
		}
	}
	return 0, 0, false
}

// findHiddenSingle scans every house/digit pair for a digit with
// exactly one admitting empty cell in that house.
func findHiddenSingle(topo *geometry.Topology, b *board.Board) (idx, digit int, ok bool) {
	for h := 0; h < 3*topo.N; h++ {
		start, end := topo.HouseOffsets[h], topo.HouseOffsets[h+1]
		cells := topo.HousesFlat[start:end]
		for d := 1; d <= topo.N; d++ {
			count := 0
			last := -1
			for _, c := range cells {
				if b.Values[c] != 0 {
					continue
				}
				if b.CandidateMaskForIdx(c).Has(d) {
					count++
					last = c
					if count > 1 {
						break
					}
				}
			}
			if count == 1 {
				return last, d, true
			}
		}
	}
	return 0, 0, false
}
