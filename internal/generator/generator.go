// Package generator implements a single puzzle-generation attempt's
// pipeline: solve -> dig -> prefilter -> uniqueness -> analyze -> match,
// with precise reject-reason mapping at each stage. There is no separate
// certify stage: LogicCertify runs only as the first step inside
// analyzer.Analyze, after the uniqueness check.
//
// The attempt loop (solve a full grid, carve givens, verify, retry) is
// reshaped into an explicit Attempt object holding thread-local scratch
// buffers as per-worker owned structs, so Runner can give one Attempt
// to each worker and loop it without per-attempt heap churn beyond the
// emitted candidate itself.
package generator

import (
	"math/rand"

	"sudokuforge/internal/analyzer"
	"sudokuforge/internal/board"
	"sudokuforge/internal/dig"
	"sudokuforge/internal/dlx"
	"sudokuforge/internal/geometry"
	"sudokuforge/internal/kernel"
	"sudokuforge/internal/prefilter"
	"sudokuforge/internal/runconfig"
)

// RejectReason names why a generation attempt was rejected.
type RejectReason int

const (
	RejectNone RejectReason = iota
	RejectPrefilter
	RejectLogic
	RejectUniqueness
	RejectStrategy
	RejectReplay
	RejectDistributionBias
	RejectUniquenessBudget
)

func (r RejectReason) String() string {
	switch r {
	case RejectNone:
		return "None"
	case RejectPrefilter:
		return "Prefilter"
	case RejectLogic:
		return "Logic"
	case RejectUniqueness:
		return "Uniqueness"
	case RejectStrategy:
		return "Strategy"
	case RejectReplay:
		return "Replay"
	case RejectDistributionBias:
		return "DistributionBias"
	case RejectUniquenessBudget:
		return "UniquenessBudget"
	default:
		return "Unknown"
	}
}

// Candidate is an accepted puzzle ready for output.
type Candidate struct {
	Puzzle       []int
	Solution     []int
	Clues        int
	Difficulty   int
	StrategyName string
}

// Attempt bundles every per-thread scratch object one generation attempt
// touches: the solved-grid kernel, the digging kernel, the DLX static
// incidence, and an Analyzer. One Attempt is built per worker and reused
// across every attempt that worker makes (never shared across workers).
type Attempt struct {
	topo *geometry.Topology

	solver *kernel.SolvedKernel
	digger *dig.Kernel
	static *dlx.Static
	anlz   *analyzer.Analyzer
}

// NewAttempt builds the per-worker scratch for topo.
func NewAttempt(topo *geometry.Topology, backend kernel.Backend, requireUnique bool) *Attempt {
	return &Attempt{
		topo:   topo,
		solver: kernel.NewSolvedKernel(topo, backend),
		digger: dig.NewKernel(topo),
		static: dlx.BuildStatic(topo),
		anlz:   analyzer.New(topo, requireUnique),
	}
}

// GenerateOne runs the full single-attempt pipeline, returning either an
// accepted Candidate or a RejectReason explaining why not.
func (a *Attempt) GenerateOne(cfg runconfig.Config, rng *rand.Rand, ac *kernel.AbortControl) (Candidate, RejectReason) {
	solved := make([]int, a.topo.NN)
	solvedBoard := boardForSolve(a.topo)
	if !a.solver.Generate(solvedBoard, rng, ac) {
		return Candidate{}, RejectLogic
	}
	copy(solved, solvedBoard.Values)

	minClues, maxClues := cfg.EffectiveClueRange()
	puzzle := a.digger.Dig(solved, minClues, maxClues, cfg.SymmetryCenter, rng)

	if !prefilter.Check(a.topo, puzzle, minClues, maxClues) {
		return Candidate{}, RejectPrefilter
	}

	if cfg.RequireUnique {
		count := dlx.CountSolutionsLimit(a.static, puzzle, 2, ac)
		if count < 0 {
			return Candidate{}, RejectUniquenessBudget
		}
		if count == 0 {
			return Candidate{}, RejectLogic
		}
		if count >= 2 {
			return Candidate{}, RejectUniqueness
		}
	}

	rep, err := a.anlz.Analyze(puzzle, ac)
	if err != nil {
		return Candidate{}, RejectLogic
	}
	switch rep.Outcome {
	case analyzer.OutcomeContradiction:
		return Candidate{}, RejectLogic
	case analyzer.OutcomeAborted:
		return Candidate{}, RejectUniquenessBudget
	case analyzer.OutcomeUnsolved:
		return Candidate{}, RejectLogic
	}
	if cfg.StrictLogical && rep.Outcome == analyzer.OutcomeSolvedByBacktracking {
		return Candidate{}, RejectLogic
	}

	difficulty := rep.HardestRank
	if difficulty == 0 {
		difficulty = 1 // solved by singles alone: rank 1, not "no rank"
	}
	if difficulty != cfg.DifficultyLevelRequired {
		return Candidate{}, RejectStrategy
	}
	if cfg.RequiredStrategy != "" {
		stats, ok := rep.StrategyStats[cfg.RequiredStrategy]
		if !ok || stats.HitCount == 0 {
			if cfg.RequiredStrategy != "Backtracking" || rep.Outcome != analyzer.OutcomeSolvedByBacktracking {
				return Candidate{}, RejectStrategy
			}
		}
	}

	clues := 0
	for _, v := range puzzle {
		if v != 0 {
			clues++
		}
	}

	return Candidate{
		Puzzle:       puzzle,
		Solution:     rep.Grid,
		Clues:        clues,
		Difficulty:   difficulty,
		StrategyName: rep.HardestName,
	}, RejectNone
}

func boardForSolve(topo *geometry.Topology) *board.Board {
	return board.Reset(topo)
}
