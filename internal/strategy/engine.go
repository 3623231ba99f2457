// Package strategy implements StrategyEngine: a fixed, rank-ordered
// list of human Sudoku solving techniques applied round-robin,
// restarting from rank 1 after every successful application. The
// highest rank ever used becomes the puzzle's reported difficulty.
//
// A dispatch table walks named strategies in a fixed priority order
// using a candidate-bitmask elimination style, widened from a fixed
// 9x9/9-bit board to an arbitrary Topology/board.Mask and from a
// handful of named techniques to a full rank 1-9 catalogue. Every
// technique here either eliminates candidates from Engine's own
// pencil-mark layer or places a digit via board.Board.Place; neither
// board.Board nor kernel.CandidateCache track soft eliminations
// (pencil-mark removal without placement), so Engine keeps its own
// per-cell candidate array seeded from board.Board.CandidateMaskForIdx
// and kept current as techniques fire.
package strategy

import (
	"sudokuforge/internal/board"
	"sudokuforge/internal/geometry"
)

// Rank is a position on the 1-9 difficulty scale.
const (
	RankSingles            = 1
	RankIntersections      = 2
	RankSubsets            = 3
	RankFishBasic          = 4
	RankWingsSimpleFish    = 5
	RankFishAdvanced       = 6
	RankUniquenessColoring = 7
	RankChainsALS          = 8
	RankForcingBacktrack   = 9
)

// TechniqueStats mirrors certify.StrategyStats, one per named technique.
type TechniqueStats struct {
	UseCount     int
	HitCount     int
	Placements   int
	Eliminations int
}

// Report is StrategyEngine's output.
type Report struct {
	Solved      bool
	Stalled     bool
	HardestRank int
	HardestName string
	Stats       map[string]*TechniqueStats
	Grid        []int
}

// technique is one entry in the rank-ordered registry. Detect attempts a
// single application of the technique against the engine's current
// candidate state and the board; it returns true iff it made progress
// (a placement or at least one elimination), in which case the caller
// restarts scanning from rank 1.
type technique struct {
	Rank int
	Name string
	// Detect may mutate e (candidates) and b (placements). The returned
	// placements and eliminations counts are informational only, used
	// to bucket Placements vs Eliminations in TechniqueStats.
	Detect func(e *Engine, b *board.Board) (applied bool, placements, eliminations int)
}

// Engine holds the pencil-mark candidate layer and the fixed technique
// registry for one Topology. Stateless across puzzles beyond the
// per-Topology registry, so one Engine is reused as thread-local
// scratch across every attempt a worker makes.
type Engine struct {
	topo *geometry.Topology
	cand []board.Mask

	registry []technique
}

// NewEngine builds an Engine for topo with the rank 1-8 technique
// registry (rank 9 has no entry; see buildRegistry).
func NewEngine(topo *geometry.Topology) *Engine {
	e := &Engine{topo: topo, cand: make([]board.Mask, topo.NN)}
	e.registry = buildRegistry()
	return e
}

// buildRegistry returns the fixed, rank-ordered technique list. Rank 9
// (pure Backtracking) deliberately has no entry here: it belongs to
// Analyzer's own optional backtracking-solver stage, run only after
// StrategyEngine stalls, so a puzzle that needs it is rank-9 by virtue
// of Analyzer's own bookkeeping rather than a registry entry.
func buildRegistry() []technique {
	return []technique{
		{Rank: RankSingles, Name: "NakedSingle", Detect: nakedSingle},
		{Rank: RankSingles, Name: "HiddenSingle", Detect: hiddenSingle},

		{Rank: RankIntersections, Name: "PointingPair", Detect: pointingPair},
		{Rank: RankIntersections, Name: "BoxLineReduction", Detect: boxLineReduction},

		{Rank: RankSubsets, Name: "NakedPair", Detect: nakedSubset(2)},
		{Rank: RankSubsets, Name: "HiddenPair", Detect: hiddenSubset(2)},
		{Rank: RankSubsets, Name: "NakedTriple", Detect: nakedSubset(3)},
		{Rank: RankSubsets, Name: "HiddenTriple", Detect: hiddenSubset(3)},

		{Rank: RankFishBasic, Name: "XWingRows", Detect: fish(2, true)},
		{Rank: RankFishBasic, Name: "XWingCols", Detect: fish(2, false)},

		{Rank: RankWingsSimpleFish, Name: "YWing", Detect: yWing},
		{Rank: RankWingsSimpleFish, Name: "SwordfishRows", Detect: fish(3, true)},
		{Rank: RankWingsSimpleFish, Name: "SwordfishCols", Detect: fish(3, false)},

		{Rank: RankFishAdvanced, Name: "XYZWing", Detect: xyzWing},
		{Rank: RankFishAdvanced, Name: "NakedQuad", Detect: nakedSubset(4)},
		{Rank: RankFishAdvanced, Name: "HiddenQuad", Detect: hiddenSubset(4)},
		{Rank: RankFishAdvanced, Name: "JellyfishRows", Detect: fish(4, true)},
		{Rank: RankFishAdvanced, Name: "JellyfishCols", Detect: fish(4, false)},

		{Rank: RankUniquenessColoring, Name: "SimpleColoring", Detect: simpleColoring},

		{Rank: RankChainsALS, Name: "ForcingChains", Detect: forcingChains},
	}
}

func (e *Engine) seed(b *board.Board) {
	for i := 0; i < e.topo.NN; i++ {
		if b.Values[i] != 0 {
			e.cand[i] = 0
			continue
		}
		e.cand[i] = b.CandidateMaskForIdx(i)
	}
}

// place commits digit d at idx: updates the board (house-used masks)
// and this engine's candidate layer (idx cleared, peers lose bit d).
func (e *Engine) place(b *board.Board, idx, d int) {
	b.Place(idx, d)
	e.cand[idx] = 0
	for _, p := range e.topo.Peers(idx) {
		e.cand[p] = e.cand[p].Clear(d)
	}
}

// eliminate clears digit d as a candidate of cell idx, reporting whether
// it was actually present (i.e. whether this counts as progress).
func (e *Engine) eliminate(idx, d int) bool {
	if !e.cand[idx].Has(d) {
		return false
	}
	e.cand[idx] = e.cand[idx].Clear(d)
	return true
}

// houseCells returns the cell indices of house h (0..n-1 rows, n..2n-1
// cols, 2n..3n-1 boxes).
func (e *Engine) houseCells(h int) []int {
	start, end := e.topo.HouseOffsets[h], e.topo.HouseOffsets[h+1]
	return e.topo.HousesFlat[start:end]
}

// Run applies the rank-ordered registry to b (already initialized from a
// puzzle) until no technique makes progress, b is complete, or a
// contradiction (some empty cell has zero candidates) is found.
func Run(e *Engine, b *board.Board) Report {
	e.seed(b)

	rep := Report{Stats: make(map[string]*TechniqueStats, len(e.registry))}
	for _, t := range e.registry {
		rep.Stats[t.Name] = &TechniqueStats{}
	}

	for {
		if e.hasContradiction(b) {
			rep.Stalled = true
			return rep
		}
		if b.IsComplete() {
			break
		}

		progressed := false
		for _, t := range e.registry {
			stats := rep.Stats[t.Name]
			stats.UseCount++

			applied, placements, eliminations := t.Detect(e, b)
			if !applied {
				continue
			}
			stats.HitCount++
			stats.Placements += placements
			stats.Eliminations += eliminations

			if t.Rank > rep.HardestRank {
				rep.HardestRank = t.Rank
				rep.HardestName = t.Name
			}
			progressed = true
			break
		}
		if !progressed {
			break
		}
	}

	if b.IsComplete() {
		rep.Solved = true
		rep.Grid = append([]int(nil), b.Values...)
	} else {
		rep.Stalled = true
	}
	return rep
}

func (e *Engine) hasContradiction(b *board.Board) bool {
	for i := 0; i < e.topo.NN; i++ {
		if b.Values[i] == 0 && e.cand[i].IsEmpty() {
			return true
		}
	}
	return false
}
