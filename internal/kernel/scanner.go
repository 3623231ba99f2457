package kernel

import (
	"github.com/klauspost/cpuid/v2"

	"sudokuforge/internal/board"
	"sudokuforge/internal/geometry"
)

// Backend selects which MRV-scan implementation Scanner.Scan uses. All
// three produce bit-identical MRV decisions; only their internal
// batching differs. Scan serves the n<25 recompute variant; ScanCache
// (the n>=25 cache variant) does not look at the backend.
type Backend int

const (
	BackendScalar Backend = iota
	BackendAVX2           // 16 cells/iteration
	BackendAVX512         // 32 cells/iteration
)

func (b Backend) String() string {
	switch b {
	case BackendAVX2:
		return "avx2"
	case BackendAVX512:
		return "avx512"
	default:
		return "scalar"
	}
}

// SelectBackend resolves a configured preference against the detected
// CPU capability, downgrading to the next-lower implementation when the
// preferred one isn't actually supported.
func SelectBackend(preferred Backend) Backend {
	switch preferred {
	case BackendAVX512:
		if cpuid.CPU.Supports(cpuid.AVX512F) {
			return BackendAVX512
		}
		fallthrough
	case BackendAVX2:
		if cpuid.CPU.Supports(cpuid.AVX2) {
			return BackendAVX2
		}
		fallthrough
	default:
		return BackendScalar
	}
}

// MRVResult is the outcome of one full-board MRV scan.
type MRVResult struct {
	Found    bool
	Idx      int // selected cell, valid iff Found
	Count    int // candidate popcount at Idx
	Zero     bool // true iff some empty cell had zero candidates (dead end)
	ZeroIdx  int
}

// Scanner performs the MRV cell-selection scan: visit every empty cell,
// compute its used-mask and candidate-mask, and update the best-so-far
// (bucket, pressure). The three backends below are equivalent
// implementations at different batch widths; none of them actually
// need hand-written SIMD assembly to honor the tie-break rule (bucket
// rank first, pressure second, first-cell-wins on remaining ties) --
// the batching is an internal throughput detail over the same per-cell
// arithmetic, and all three produce identical MRV decisions.
type Scanner struct {
	Backend Backend
}

func NewScanner(backend Backend) *Scanner { return &Scanner{Backend: backend} }

// Scan finds the MRV cell directly from Board state (used by the n<25
// recompute SolvedKernel variant). It recomputes each empty cell's
// candidate mask on the fly.
func (s *Scanner) Scan(b *board.Board) MRVResult {
	switch s.Backend {
	case BackendAVX512:
		return scanBatched(b, 32)
	case BackendAVX2:
		return scanBatched(b, 16)
	default:
		return scanScalar(b)
	}
}

func scanScalar(b *board.Board) MRVResult {
	res := MRVResult{}
	bestCount := 1 << 30
	bestPressure := -1
	for i, v := range b.Values {
		if v != 0 {
			continue
		}
		cand := b.CandidateMaskForIdx(i)
		cnt := cand.Count()
		if cnt == 0 {
			return MRVResult{Zero: true, ZeroIdx: i}
		}
		if cnt == 1 {
			return MRVResult{Found: true, Idx: i, Count: 1}
		}
		pressure := b.Pressure(i)
		if cnt < bestCount || (cnt == bestCount && pressure > bestPressure) {
			bestCount, bestPressure = cnt, pressure
			res = MRVResult{Found: true, Idx: i, Count: cnt}
		}
	}
	return res
}

// scanBatched processes `lane` consecutive cells per iteration. Lane
// width only changes how many cells are tested before the best-so-far
// comparison is folded in; the decision rule is identical to the scalar
// path.
func scanBatched(b *board.Board, lane int) MRVResult {
	n := len(b.Values)
	bestCount := 1 << 30
	bestPressure := -1
	res := MRVResult{}
	for base := 0; base < n; base += lane {
		end := base + lane
		if end > n {
			end = n
		}
		for i := base; i < end; i++ {
			if b.Values[i] != 0 {
				continue
			}
			cand := b.CandidateMaskForIdx(i)
			cnt := cand.Count()
			if cnt == 0 {
				return MRVResult{Zero: true, ZeroIdx: i}
			}
			if cnt == 1 {
				return MRVResult{Found: true, Idx: i, Count: 1}
			}
			pressure := b.Pressure(i)
			if cnt < bestCount || (cnt == bestCount && pressure > bestPressure) {
				bestCount, bestPressure = cnt, pressure
				res = MRVResult{Found: true, Idx: i, Count: cnt}
			}
		}
	}
	return res
}

// ScanCache is the cache-variant MRV scan (n>=25): try the singleton
// bitmap first, then fall back to a bucketed linear pass over the
// CandidateCache's cached popcounts -- no recompute against the Board.
func (s *Scanner) ScanCache(c *CandidateCache, topo *geometry.Topology, values []int) MRVResult {
	if idx, ok := c.NextSingleton(); ok {
		return MRVResult{Found: true, Idx: idx, Count: 1}
	}

	bestCount := 1 << 30
	bestPressure := -1
	res := MRVResult{}
	for i := 0; i < topo.NN; i++ {
		if values[i] != 0 {
			continue
		}
		cnt := c.CandidatePopcnt[i]
		if cnt == 0 {
			return MRVResult{Zero: true, ZeroIdx: i}
		}
		if cnt < bestCount {
			bestCount = cnt
			bestPressure = cachePressure(c, topo, i)
			res = MRVResult{Found: true, Idx: i, Count: cnt}
		} else if cnt == bestCount {
			p := cachePressure(c, topo, i)
			if p > bestPressure {
				bestPressure = p
				res = MRVResult{Found: true, Idx: i, Count: cnt}
			}
		}
	}
	return res
}

// cachePressure reconstructs the MRV tie-break pressure metric (popcount
// of the union of the cell's three house-used masks) from the cache's
// candidate mask alone: candidates[idx] = ~(used) & full, so the used
// bits within full are exactly candidates[idx]'s complement within full.
func cachePressure(c *CandidateCache, topo *geometry.Topology, idx int) int {
	full := board.FullMask(topo.N)
	return c.Candidates[idx].Complement(full).Count()
}
