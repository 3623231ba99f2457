package kernel

import (
	"math/rand"

	"sudokuforge/internal/board"
)

// ShuffledDigits writes a uniformly random permutation of the digits set
// in mask into scratch[:k] and returns that subslice, where k =
// mask.Count(). scratch must have capacity >= n; callers own one
// scratch buffer per worker/recursion-frame and reuse it across calls,
// so there is no allocation on the MRV hot path.
//
// Fisher-Yates shuffles the collected k-array, with shortcuts for k=1
// and k=2 (both of which are already O(1) without shuffling, but k=2
// still needs a single coin flip to be order-uniform).
func ShuffledDigits(mask board.Mask, rng *rand.Rand, scratch []int) []int {
	k := 0
	mask.ForEach(func(d int) {
		scratch[k] = d
		k++
	})
	digits := scratch[:k]

	switch k {
	case 0, 1:
		return digits
	case 2:
		if rng.Intn(2) == 1 {
			digits[0], digits[1] = digits[1], digits[0]
		}
		return digits
	default:
		for i := k - 1; i > 0; i-- {
			j := rng.Intn(i + 1)
			digits[i], digits[j] = digits[j], digits[i]
		}
		return digits
	}
}
