package generator

import (
	"math/rand"
	"testing"

	"sudokuforge/internal/geometry"
	"sudokuforge/internal/kernel"
	"sudokuforge/internal/runconfig"
)

func TestGenerateOne_AcceptsAPuzzleMatchingTheRequestedDifficulty(t *testing.T) {
	topo, err := geometry.Build(2, 2)
	if err != nil {
		t.Fatalf("geometry.Build: %v", err)
	}
	cfg := runconfig.Default()
	cfg.BoxRows, cfg.BoxCols = 2, 2
	cfg.DifficultyLevelRequired = 1 // singles-only is always rank 1
	cfg.MinClues, cfg.MaxClues = 10, 14
	cfg.RequireUnique = false // keep this a fast, deterministic unit test

	attempt := NewAttempt(topo, kernel.BackendScalar, cfg.RequireUnique)
	rng := rand.New(rand.NewSource(1))

	var cand Candidate
	var reason RejectReason
	// A handful of seeded attempts should find at least one match; this
	// is a property the generation pipeline guarantees for a small,
	// permissive geometry/difficulty combination like this one.
	for i := 0; i < 50; i++ {
		ac := kernel.NewAbortControl(0, 500_000, kernel.SharedFlags{})
		cand, reason = attempt.GenerateOne(cfg, rng, ac)
		if reason == RejectNone {
			break
		}
	}
	if reason != RejectNone {
		t.Fatalf("GenerateOne: no accepted candidate in 50 attempts, last reject = %v", reason)
	}
	if cand.Clues < cfg.MinClues || cand.Clues > cfg.MaxClues {
		t.Fatalf("Clues = %d, want in [%d,%d]", cand.Clues, cfg.MinClues, cfg.MaxClues)
	}
	if cand.Difficulty != cfg.DifficultyLevelRequired {
		t.Fatalf("Difficulty = %d, want %d", cand.Difficulty, cfg.DifficultyLevelRequired)
	}
	if len(cand.Puzzle) != topo.NN || len(cand.Solution) != topo.NN {
		t.Fatalf("Puzzle/Solution length mismatch: %d/%d, want %d", len(cand.Puzzle), len(cand.Solution), topo.NN)
	}
}

func TestRejectReason_StringNamesEveryReason(t *testing.T) {
	reasons := []RejectReason{
		RejectNone, RejectPrefilter, RejectLogic, RejectUniqueness,
		RejectStrategy, RejectReplay, RejectDistributionBias, RejectUniquenessBudget,
	}
	seen := make(map[string]bool, len(reasons))
	for _, r := range reasons {
		s := r.String()
		if s == "" || s == "Unknown" {
			t.Errorf("RejectReason(%d).String() = %q, want a real name", r, s)
		}
		if seen[s] {
			t.Errorf("duplicate RejectReason name %q", s)
		}
		seen[s] = true
	}
}

func TestGenerateOne_MismatchedDifficultyIsRejectedAsStrategy(t *testing.T) {
	topo, err := geometry.Build(2, 2)
	if err != nil {
		t.Fatalf("geometry.Build: %v", err)
	}
	cfg := runconfig.Default()
	cfg.BoxRows, cfg.BoxCols = 2, 2
	cfg.DifficultyLevelRequired = 9 // a 4x4 puzzle will essentially never need rank 9
	cfg.MinClues, cfg.MaxClues = 14, 15
	cfg.RequireUnique = false

	attempt := NewAttempt(topo, kernel.BackendScalar, cfg.RequireUnique)
	rng := rand.New(rand.NewSource(2))
	ac := kernel.NewAbortControl(0, 500_000, kernel.SharedFlags{})

	_, reason := attempt.GenerateOne(cfg, rng, ac)
	if reason != RejectStrategy {
		t.Fatalf("GenerateOne reason = %v, want Strategy: a 14-15 clue 4x4 puzzle is solved by singles at rank 1, not 9", reason)
	}
}
