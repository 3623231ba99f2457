package kernel

import (
	"github.com/bits-and-blooms/bitset"

	"sudokuforge/internal/board"
	"sudokuforge/internal/geometry"
)

// CandidateCache is the per-thread incremental candidate-mask cache used
// by the n>=25 SolvedKernel variant. It is rebuilt once per generation
// attempt and then mutated in place via Place/Unplace, which is far
// cheaper than Board.CandidateMaskForIdx's per-cell recompute once most
// cells have many peers.
//
// singletonWords is a bits-and-blooms/bitset.BitSet, one bit per cell,
// set iff that cell's candidate mask currently has exactly one bit --
// it lets the MRV scan find a forced cell via the singleton bitmap
// first, without scanning every popcount.
type CandidateCache struct {
	topo *geometry.Topology

	Candidates      []board.Mask
	CandidatePopcnt []int
	singletonWords  *bitset.BitSet

	undoIdx      []int
	undoOld      []board.Mask
	undoOldCount []int
}

// NewCandidateCache allocates a cache sized for topo. Call BuildFromBoard
// before first use.
func NewCandidateCache(topo *geometry.Topology) *CandidateCache {
	return &CandidateCache{
		topo:            topo,
		Candidates:      make([]board.Mask, topo.NN),
		CandidatePopcnt: make([]int, topo.NN),
		singletonWords:  bitset.New(uint(topo.NN)),
		undoIdx:         make([]int, 0, topo.NN*4),
		undoOld:         make([]board.Mask, 0, topo.NN*4),
		undoOldCount:    make([]int, 0, topo.NN*4),
	}
}

// BuildFromBoard recomputes every cell's candidate mask from b and
// resets the undo log. Call once per attempt before searching.
func (c *CandidateCache) BuildFromBoard(b *board.Board) {
	c.undoIdx = c.undoIdx[:0]
	c.undoOld = c.undoOld[:0]
	c.undoOldCount = c.undoOldCount[:0]
	for i := 0; i < c.topo.NN; i++ {
		m := b.CandidateMaskForIdx(i)
		c.Candidates[i] = m
		n := m.Count()
		c.CandidatePopcnt[i] = n
		c.singletonWords.SetTo(uint(i), n == 1)
	}
}

// Mark returns a marker for the current undo-log position; pass it to
// Rollback to unwind everything recorded since.
func (c *CandidateCache) Mark() int { return len(c.undoIdx) }

// Rollback pops undo entries in LIFO order until the log is back to
// length mark.
func (c *CandidateCache) Rollback(mark int) {
	for i := len(c.undoIdx) - 1; i >= mark; i-- {
		idx := c.undoIdx[i]
		c.Candidates[idx] = c.undoOld[i]
		c.CandidatePopcnt[idx] = c.undoOldCount[i]
		c.singletonWords.SetTo(uint(idx), c.undoOldCount[i] == 1)
	}
	c.undoIdx = c.undoIdx[:mark]
	c.undoOld = c.undoOld[:mark]
	c.undoOldCount = c.undoOldCount[:mark]
}

func (c *CandidateCache) record(idx int) {
	c.undoIdx = append(c.undoIdx, idx)
	c.undoOld = append(c.undoOld, c.Candidates[idx])
	c.undoOldCount = append(c.undoOldCount, c.CandidatePopcnt[idx])
}

// Place records the placement of digit d at idx, clearing d from every
// peer's candidate mask. Returns false (a conflict) iff some peer's mask
// became empty as a result -- the caller must Rollback to mark on false.
func (c *CandidateCache) Place(idx, d int) bool {
	c.record(idx)
	c.Candidates[idx] = 0
	c.CandidatePopcnt[idx] = 0
	c.singletonWords.SetTo(uint(idx), false)

	bit := board.Bit(d)
	ok := true
	for _, p := range c.topo.Peers(idx) {
		if c.Candidates[p]&bit == 0 {
			continue
		}
		c.record(p)
		c.Candidates[p] = c.Candidates[p].Clear(d)
		c.CandidatePopcnt[p]--
		c.singletonWords.SetTo(uint(p), c.CandidatePopcnt[p] == 1)
		if c.CandidatePopcnt[p] == 0 {
			ok = false
		}
	}
	return ok
}

// IsSingleton reports whether cell idx currently has exactly one candidate.
func (c *CandidateCache) IsSingleton(idx int) bool {
	return c.singletonWords.Test(uint(idx))
}

// NextSingleton scans for any cell with exactly one candidate, returning
// its index and true, or (0, false) if none exists.
func (c *CandidateCache) NextSingleton() (int, bool) {
	idx, ok := c.singletonWords.NextSet(0)
	if !ok {
		return 0, false
	}
	return int(idx), true
}
