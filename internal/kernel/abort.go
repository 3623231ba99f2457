// Package kernel implements the randomized MRV solved-grid generator
// (SolvedKernel) and the shared recursive-search budget object every
// kernel's hot path carries (AbortControl).
//
// Cooperative abort polling is reshaped into an explicit value passed
// down through every recursive search call, rather than read from
// ambient/global state.
package kernel

import (
	"sync/atomic"
	"time"
)

// checkInterval is how many Step() calls elapse between deadline/flag
// checks: every call increments the node count, but the deadline and
// shared flags are only polled every checkInterval calls.
const checkInterval = 512

// SharedFlags are optional cooperative signals owned by the caller
// (typically runtime.Runner) and shared across every worker's searches.
// A nil flag is simply never set.
type SharedFlags struct {
	ForceAbort *atomic.Bool
	Cancel     *atomic.Bool
	Pause      *atomic.Bool
}

// AbortControl is the per-attempt recursive-search budget. It is cheap
// to construct and must be created fresh per attempt: nothing in it is
// safe to share across attempts run by different goroutines.
type AbortControl struct {
	timeEnabled bool
	deadline    time.Time

	nodeEnabled bool
	nodeLimit   uint64
	nodes       uint64

	flags SharedFlags

	AbortedByTime  bool
	AbortedByNodes bool
	AbortedByForce bool
	AbortedByPause bool
}

// NewAbortControl builds a budget. A zero timeBudget/nodeBudget disables
// that dimension. flags may be the zero SharedFlags{} to disable all
// cooperative signals.
func NewAbortControl(timeBudget time.Duration, nodeBudget uint64, flags SharedFlags) *AbortControl {
	ac := &AbortControl{flags: flags}
	if timeBudget > 0 {
		ac.timeEnabled = true
		ac.deadline = time.Now().Add(timeBudget)
	}
	if nodeBudget > 0 {
		ac.nodeEnabled = true
		ac.nodeLimit = nodeBudget
	}
	return ac
}

// Unbounded returns a budget with every dimension disabled -- used by
// standalone tests and tools that want unconditional search.
func Unbounded() *AbortControl { return &AbortControl{} }

// Step is called at every recursion frame. It returns false to request
// cooperative unwind; every recursive search must check the return value
// and abandon its branch (returning false itself) when it is false.
func (a *AbortControl) Step() bool {
	a.nodes++

	if a.nodeEnabled && a.nodes > a.nodeLimit {
		a.AbortedByNodes = true
		return false
	}

	if a.nodes%checkInterval != 0 {
		return true
	}

	if a.timeEnabled && time.Now().After(a.deadline) {
		a.AbortedByTime = true
		return false
	}
	if a.flags.ForceAbort != nil && a.flags.ForceAbort.Load() {
		a.AbortedByForce = true
		return false
	}
	if a.flags.Cancel != nil && a.flags.Cancel.Load() {
		a.AbortedByForce = true
		return false
	}
	if a.flags.Pause != nil && a.flags.Pause.Load() {
		a.AbortedByPause = true
		// Pause is handled by the worker loop, not mid-search: a paused
		// search still needs to unwind so the worker can sleep, and
		// re-attempt once resumed.
		return false
	}
	return true
}

// Aborted reports whether any abort condition fired.
func (a *AbortControl) Aborted() bool {
	return a.AbortedByTime || a.AbortedByNodes || a.AbortedByForce || a.AbortedByPause
}

// Nodes returns the number of Step() calls so far, for reporting.
func (a *AbortControl) Nodes() uint64 { return a.nodes }
