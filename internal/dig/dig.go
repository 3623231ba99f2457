// Package dig implements Kernel: removing clues from a solved grid
// toward a target clue count, optionally preserving 180deg center
// symmetry. No uniqueness check happens here -- that is Analyzer's job.
//
// The digit-removal loop is reshaped into an explicit, reusable
// per-thread scratch object, so a worker can reuse one Kernel across
// every attempt it makes.
package dig

import (
	"math/rand"

	"sudokuforge/internal/board"
	"sudokuforge/internal/geometry"
)

// Kernel owns the per-thread permutation scratch buffer for Dig.
type Kernel struct {
	topo *geometry.Topology
	perm []int
}

func NewKernel(topo *geometry.Topology) *Kernel {
	return &Kernel{topo: topo, perm: make([]int, topo.NN)}
}

// Dig removes clues from solved (a complete grid) down to a clue count
// drawn uniformly from [minClues, maxClues], honoring symmetryCenter if
// set, and returns the resulting puzzle as a fresh []int (0 = empty).
func (k *Kernel) Dig(solved []int, minClues, maxClues int, symmetryCenter bool, rng *rand.Rand) []int {
	puzzle := append([]int(nil), solved...)

	target := minClues
	if maxClues > minClues {
		target = minClues + rng.Intn(maxClues-minClues+1)
	}

	for i := range k.perm {
		k.perm[i] = i
	}
	rng.Shuffle(len(k.perm), func(i, j int) { k.perm[i], k.perm[j] = k.perm[j], k.perm[i] })

	current := countClues(puzzle)

	for _, i := range k.perm {
		if current <= target {
			break
		}
		if puzzle[i] == 0 {
			continue
		}

		if symmetryCenter {
			s := k.topo.CellCenterSym[i]
			if s != i && puzzle[s] != 0 {
				// Clearing both must not drop below target.
				if current-2 >= target {
					puzzle[i] = 0
					puzzle[s] = 0
					current -= 2
				}
				continue
			}
			if s == i {
				if current-1 >= target {
					puzzle[i] = 0
					current--
				}
			}
			continue
		}

		puzzle[i] = 0
		current--
	}

	return puzzle
}

func countClues(values []int) int {
	n := 0
	for _, v := range values {
		if v != 0 {
			n++
		}
	}
	return n
}

// ToBoard is a convenience used by callers that need candidate masks
// over the dug puzzle immediately (prefilter, certify).
func ToBoard(topo *geometry.Topology, puzzle []int) (*board.Board, error) {
	return board.InitFromPuzzle(topo, puzzle)
}
