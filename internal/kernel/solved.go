package kernel

import (
	"math/rand"

	"sudokuforge/internal/board"
	"sudokuforge/internal/geometry"
)

// cacheVariantThreshold is the board size at which SolvedKernel switches
// from the recompute variant to the CandidateCache variant: n < 25 uses
// recompute, n >= 25 uses candidate-cache.
const cacheVariantThreshold = 25

// SolvedKernel generates a full valid grid by randomized MRV
// backtracking, generalized to an arbitrary Topology and reshaped
// around an explicit AbortControl threaded through every recursive call.
type SolvedKernel struct {
	Topo    *geometry.Topology
	Scanner *Scanner

	// digitScratch holds one scratch slice of length Topo.N per recursion
	// depth (depth bounded by Topo.NN, the most cells that can ever be
	// filled), owned by this SolvedKernel (one per worker) and reused
	// across attempts -- no per-call allocation. Each depth gets its own
	// backing array so a deeper recursive call's ShuffledDigits write
	// never clobbers an ancestor frame's still-in-progress digits slice.
	digitScratch [][]int
	cache        *CandidateCache
}

// NewSolvedKernel builds a kernel for topo using the given scan backend
// preference (downgraded to what the CPU actually supports).
func NewSolvedKernel(topo *geometry.Topology, preferred Backend) *SolvedKernel {
	scratch := make([][]int, topo.NN)
	for i := range scratch {
		scratch[i] = make([]int, topo.N)
	}
	return &SolvedKernel{
		Topo:         topo,
		Scanner:      NewScanner(SelectBackend(preferred)),
		digitScratch: scratch,
		cache:        NewCandidateCache(topo),
	}
}

// Generate fills b (expected empty) with a random valid completion.
// Returns false iff the abort control fired before a solution was found
// or the search proved the empty board has no completion (which cannot
// happen for a valid Topology, but the return value still matters for
// a budget-exhausted case).
func (k *SolvedKernel) Generate(b *board.Board, rng *rand.Rand, ac *AbortControl) bool {
	if k.Topo.N < cacheVariantThreshold {
		return k.fillRecompute(b, rng, ac, 0)
	}
	k.cache.BuildFromBoard(b)
	return k.fillCache(b, rng, ac, 0)
}

// fillRecompute is the n<25 variant: candidate masks are recomputed
// straight from Board on every visited cell. depth is the recursion
// depth (number of cells already placed on this path), used to select
// this frame's private scratch slice out of k.digitScratch.
func (k *SolvedKernel) fillRecompute(b *board.Board, rng *rand.Rand, ac *AbortControl, depth int) bool {
	if !ac.Step() {
		return false
	}
	res := k.Scanner.Scan(b)
	if b.IsComplete() {
		return true
	}
	if res.Zero || !res.Found {
		return false
	}

	digits := ShuffledDigits(b.CandidateMaskForIdx(res.Idx), rng, k.digitScratch[depth])
	for _, d := range digits {
		b.Place(res.Idx, d)
		if k.fillRecompute(b, rng, ac, depth+1) {
			return true
		}
		b.Unplace(res.Idx, d)
	}
	return false
}

// fillCache is the n>=25 variant: CandidateCache tracks incremental
// propagation with an undo log instead of recomputing masks. depth
// selects this frame's private scratch slice, the same as fillRecompute.
func (k *SolvedKernel) fillCache(b *board.Board, rng *rand.Rand, ac *AbortControl, depth int) bool {
	if !ac.Step() {
		return false
	}
	if b.IsComplete() {
		return true
	}

	res := k.Scanner.ScanCache(k.cache, k.Topo, b.Values)
	if res.Zero || !res.Found {
		return false
	}

	digits := ShuffledDigits(k.cache.Candidates[res.Idx], rng, k.digitScratch[depth])
	for _, d := range digits {
		mark := k.cache.Mark()
		b.Place(res.Idx, d)
		ok := k.cache.Place(res.Idx, d)
		if ok && k.fillCache(b, rng, ac, depth+1) {
			return true
		}
		k.cache.Rollback(mark)
		b.Unplace(res.Idx, d)
	}
	return false
}
