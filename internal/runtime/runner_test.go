package runtime

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"sudokuforge/internal/geometry"
	"sudokuforge/internal/ioformat"
	"sudokuforge/internal/obs"
	"sudokuforge/internal/runconfig"
)

func TestRunner_ReachesTargetAndEmitsParsableLines(t *testing.T) {
	topo, err := geometry.Build(2, 2)
	if err != nil {
		t.Fatalf("geometry.Build: %v", err)
	}

	cfg := runconfig.Default()
	cfg.BoxRows, cfg.BoxCols = 2, 2
	cfg.TargetPuzzles = 3
	cfg.DifficultyLevelRequired = 1
	cfg.MinClues, cfg.MaxClues = 10, 14
	cfg.RequireUnique = false
	cfg.Seed = 42
	cfg.AttemptNodeBudget = 500_000
	cfg.AttemptTimeBudgetS = 1
	cfg.MaxAttempts = 200_000

	var out bytes.Buffer
	runner := NewRunner(cfg, topo, obs.Nop(), &out, Flags{}, nil, nil, nil)

	res, err := runner.Run(2)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Accepted != uint64(cfg.TargetPuzzles) {
		t.Fatalf("Accepted = %d, want %d", res.Accepted, cfg.TargetPuzzles)
	}
	if res.Written != res.Accepted {
		t.Fatalf("Written = %d, want == Accepted (%d)", res.Written, res.Accepted)
	}

	scanner := bufio.NewScanner(strings.NewReader(out.String()))
	lineCount := 0
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if _, err := ioformat.Parse(line); err != nil {
			t.Fatalf("ioformat.Parse(%q): %v", line, err)
		}
		lineCount++
	}
	if lineCount != int(cfg.TargetPuzzles) {
		t.Fatalf("wrote %d parsable lines, want %d", lineCount, cfg.TargetPuzzles)
	}
}

func TestParseBackend(t *testing.T) {
	cases := map[runconfig.CPUBackend]bool{
		runconfig.BackendScalar: true,
		runconfig.BackendAVX2:   true,
		runconfig.BackendAVX512: true,
		runconfig.BackendAuto:   true,
	}
	for backend := range cases {
		// Must not panic for any recognized backend value.
		_ = parseBackend(backend)
	}
}
