// Package runtime implements Runner: a fixed-size pool of worker
// goroutines that repeatedly call generator.Attempt.GenerateOne under a
// fresh per-attempt budget, coordinating termination via atomic
// counters, a CAS-protected accepted-slot reservation, and cooperative
// cancel/pause flags.
//
// The worker pool is a fixed goroutine count over a shared output
// writer with atomic progress counters, structured with
// golang.org/x/sync/errgroup for worker-goroutine lifetime management,
// tracking the full reject-reason counter taxonomy generator.RejectReason
// defines.
package runtime

import (
	"io"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"sudokuforge/internal/generator"
	"sudokuforge/internal/geometry"
	"sudokuforge/internal/ioformat"
	"sudokuforge/internal/kernel"
	"sudokuforge/internal/runconfig"

	"github.com/rs/zerolog"
)

// goldenRatioConstant mixes into each worker's RNG seed (config seed XOR
// worker index XOR this constant), the standard 64-bit golden-ratio
// mixing constant used for exactly this kind of seed diffusion.
const goldenRatioConstant = 0x9E3779B97F4A7C15

// counters is every atomic u64 a Runner tracks across its worker pool.
type counters struct {
	accepted atomic.Uint64
	written  atomic.Uint64
	attempts atomic.Uint64

	rejectPrefilter        atomic.Uint64
	rejectLogic            atomic.Uint64
	rejectUniqueness       atomic.Uint64
	rejectStrategy         atomic.Uint64
	rejectReplay           atomic.Uint64
	rejectDistributionBias atomic.Uint64
	rejectUniquenessBudget atomic.Uint64
}

func (c *counters) bump(r generator.RejectReason) {
	switch r {
	case generator.RejectPrefilter:
		c.rejectPrefilter.Add(1)
	case generator.RejectLogic:
		c.rejectLogic.Add(1)
	case generator.RejectUniqueness:
		c.rejectUniqueness.Add(1)
	case generator.RejectStrategy:
		c.rejectStrategy.Add(1)
	case generator.RejectReplay:
		c.rejectReplay.Add(1)
	case generator.RejectDistributionBias:
		c.rejectDistributionBias.Add(1)
	case generator.RejectUniquenessBudget:
		c.rejectUniquenessBudget.Add(1)
	}
}

// Result summarizes a completed run's counters and throughput.
type Result struct {
	Accepted, Written, Attempts uint64

	Rejected               uint64
	RejectPrefilter        uint64
	RejectLogic            uint64
	RejectUniqueness       uint64
	RejectStrategy         uint64
	RejectReplay           uint64
	RejectDistributionBias uint64
	RejectUniquenessBudget uint64

	ElapsedS       float64
	AcceptedPerSec float64
}

// Flags are the cooperative cancel/pause signals a caller may share
// across an entire run (and, via SharedFlags, down into every search).
type Flags struct {
	Cancel *atomic.Bool
	Pause  *atomic.Bool
}

// ProgressCallback is invoked after every accepted puzzle.
type ProgressCallback func(accepted, target uint64)

// LogCallback is invoked with the formatted output line of every
// accepted puzzle, independent of the structured zerolog output. It is
// not called for rejects.
type LogCallback func(string)

// Runner is RuntimeRunner.
type Runner struct {
	cfg  runconfig.Config
	topo *geometry.Topology
	log  zerolog.Logger

	out     io.Writer
	writeMu sync.Mutex

	flags Flags

	monitor *Monitor

	progressCB ProgressCallback
	logCB      LogCallback

	c counters
}

// NewRunner builds a Runner. flags/monitor/progressCB/logCB may be the
// zero value to disable that collaborator -- all four are optional.
func NewRunner(cfg runconfig.Config, topo *geometry.Topology, log zerolog.Logger, out io.Writer, flags Flags, monitor *Monitor, progressCB ProgressCallback, logCB LogCallback) *Runner {
	if flags.Cancel == nil {
		flags.Cancel = new(atomic.Bool)
	}
	if flags.Pause == nil {
		flags.Pause = new(atomic.Bool)
	}
	return &Runner{
		cfg: cfg, topo: topo, log: log, out: out,
		flags: flags, monitor: monitor,
		progressCB: progressCB, logCB: logCB,
	}
}

// Run parallelises the attempt loop across EffectiveThreads(hwConcurrency)
// workers and blocks until the target is reached, cancellation is
// requested, or max_attempts/max_total_time_s is hit. Workers report no
// errors, so the returned error is always nil.
func (r *Runner) Run(hwConcurrency int) (Result, error) {
	start := time.Now()
	threads := r.cfg.EffectiveThreads(hwConcurrency)
	target := uint64(r.cfg.TargetPuzzles)
	seed := r.cfg.EffectiveSeed(start)

	var deadline time.Time
	hasDeadline := r.cfg.MaxTotalTimeS > 0
	if hasDeadline {
		deadline = start.Add(time.Duration(r.cfg.MaxTotalTimeS * float64(time.Second)))
	}

	backend := kernel.SelectBackend(parseBackend(r.cfg.CPUBackend))

	g := new(errgroup.Group)
	for w := 0; w < threads; w++ {
		w := w
		g.Go(func() error {
			r.workerLoop(w, threads, seed, target, hasDeadline, deadline, backend)
			return nil
		})
	}
	g.Wait()

	elapsed := time.Since(start).Seconds()
	res := Result{
		Accepted:               r.c.accepted.Load(),
		Written:                r.c.written.Load(),
		Attempts:               r.c.attempts.Load(),
		RejectPrefilter:        r.c.rejectPrefilter.Load(),
		RejectLogic:            r.c.rejectLogic.Load(),
		RejectUniqueness:       r.c.rejectUniqueness.Load(),
		RejectStrategy:         r.c.rejectStrategy.Load(),
		RejectReplay:           r.c.rejectReplay.Load(),
		RejectDistributionBias: r.c.rejectDistributionBias.Load(),
		RejectUniquenessBudget: r.c.rejectUniquenessBudget.Load(),
		ElapsedS:               elapsed,
	}
	res.Rejected = res.RejectPrefilter + res.RejectLogic + res.RejectUniqueness +
		res.RejectStrategy + res.RejectReplay + res.RejectDistributionBias + res.RejectUniquenessBudget
	if elapsed > 0 {
		res.AcceptedPerSec = float64(res.Accepted) / elapsed
	}
	return res, nil
}

func (r *Runner) workerLoop(workerIdx, totalWorkers int, seed uint64, target uint64, hasDeadline bool, deadline time.Time, backend kernel.Backend) {
	workerSeed := seed ^ uint64(workerIdx) ^ uint64(goldenRatioConstant)
	rng := rand.New(rand.NewSource(int64(workerSeed)))

	attempt := generator.NewAttempt(r.topo, backend, r.cfg.RequireUnique)
	flags := kernel.SharedFlags{Cancel: r.flags.Cancel, Pause: r.flags.Pause}

	var localAttempts uint64
	for {
		if r.flags.Cancel.Load() {
			return
		}
		if hasDeadline && time.Now().After(deadline) {
			return
		}
		if r.c.accepted.Load() >= target {
			return
		}
		if r.cfg.MaxAttempts > 0 && r.c.attempts.Load() >= r.cfg.MaxAttempts {
			return
		}

		for r.flags.Pause.Load() && !r.flags.Cancel.Load() {
			time.Sleep(20 * time.Millisecond)
		}
		if r.flags.Cancel.Load() {
			return
		}

		r.c.attempts.Add(1)
		localAttempts++

		ac := kernel.NewAbortControl(
			time.Duration(r.cfg.AttemptTimeBudgetS*float64(time.Second)),
			r.cfg.AttemptNodeBudget,
			flags,
		)

		cand, reason := attempt.GenerateOne(r.cfg, rng, ac)
		if reason != generator.RejectNone {
			r.c.bump(reason)
			r.publishMonitor(workerIdx, totalWorkers, localAttempts, target)
			continue
		}

		if !r.reserveAcceptedSlot(target) {
			// Another worker filled the last slot between our check and
			// this one: discard this candidate, we are done.
			return
		}

		line := ioformat.Format(ioformat.Line{
			Seed: seed, BoxRows: r.topo.BoxRows, BoxCols: r.topo.BoxCols,
			Clues: cand.Clues, Puzzle: cand.Puzzle, Solution: cand.Solution,
			Difficulty: cand.Difficulty, Strategy: cand.StrategyName,
		})
		r.writeLine(line)
		r.c.written.Add(1)

		if r.progressCB != nil {
			r.progressCB(r.c.accepted.Load(), target)
		}
		if r.logCB != nil {
			r.logCB(line)
		}
		r.log.Info().Uint64("accepted", r.c.accepted.Load()).Uint64("target", target).Msg("puzzle accepted")

		r.publishMonitor(workerIdx, totalWorkers, localAttempts, target)
	}
}

// reserveAcceptedSlot CAS-loops accepted up by one iff it is still below
// target, so two workers racing on the last slot never both write it.
func (r *Runner) reserveAcceptedSlot(target uint64) bool {
	for {
		cur := r.c.accepted.Load()
		if cur >= target {
			return false
		}
		if r.c.accepted.CompareAndSwap(cur, cur+1) {
			return true
		}
	}
}

func (r *Runner) writeLine(line string) {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()
	io.WriteString(r.out, line)
	io.WriteString(r.out, "\n")
}

func (r *Runner) publishMonitor(workerIdx, totalWorkers int, localAttempts uint64, target uint64) {
	if r.monitor == nil {
		return
	}
	r.monitor.updateWorker(workerIdx, localAttempts, 0)
	r.monitor.Publish(Snapshot{
		Target:        target,
		Accepted:      r.c.accepted.Load(),
		Written:       r.c.written.Load(),
		Attempts:      r.c.attempts.Load(),
		Rejected:      r.c.rejectPrefilter.Load() + r.c.rejectLogic.Load() + r.c.rejectUniqueness.Load() + r.c.rejectStrategy.Load() + r.c.rejectReplay.Load() + r.c.rejectDistributionBias.Load() + r.c.rejectUniquenessBudget.Load(),
		ActiveWorkers: totalWorkers,
	})
}

func parseBackend(b runconfig.CPUBackend) kernel.Backend {
	switch b {
	case runconfig.BackendScalar:
		return kernel.BackendScalar
	case runconfig.BackendAVX2:
		return kernel.BackendAVX2
	case runconfig.BackendAVX512:
		return kernel.BackendAVX512
	default:
		return kernel.BackendAVX512
	}
}
