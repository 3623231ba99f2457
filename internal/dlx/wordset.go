package dlx

import "github.com/bits-and-blooms/bitset"

// wordSet is a raw 64-bit-word bitset used for the mutable active-row
// and uncovered-column search state. Every mutation is paired with an
// undoEntry recording (wordIndex, oldWord) so rollback can restore the
// exact prior word in O(1).
//
// asBitSet wraps the same backing words (no copy, per bits-and-blooms/
// bitset.From's contract) so the intersection queries against the
// static per-Topology column incidence can reuse the library's
// IntersectionCardinality/Intersection rather than hand-rolled AND
// loops.
type wordSet struct {
	words []uint64
	nbits int
}

func newWordSet(nbits int) wordSet {
	return wordSet{words: make([]uint64, (nbits+63)/64), nbits: nbits}
}

func (w *wordSet) setAll() {
	for i := range w.words {
		w.words[i] = ^uint64(0)
	}
	w.maskTail()
}

func (w *wordSet) maskTail() {
	rem := w.nbits % 64
	if rem == 0 || len(w.words) == 0 {
		return
	}
	w.words[len(w.words)-1] &= (uint64(1) << uint(rem)) - 1
}

func (w *wordSet) test(i int) bool {
	return w.words[i/64]&(uint64(1)<<uint(i%64)) != 0
}

// clearRecording clears bit i and returns the undoEntry needed to
// restore it, or ok=false if the bit was already clear (no-op, no entry
// needed).
func (w *wordSet) clearRecording(i int) (entry undoEntry, ok bool) {
	wi := i / 64
	mask := uint64(1) << uint(i%64)
	if w.words[wi]&mask == 0 {
		return undoEntry{}, false
	}
	old := w.words[wi]
	w.words[wi] &^= mask
	return undoEntry{wordIdx: wi, oldWord: old}, true
}

func (w *wordSet) restore(e undoEntry) {
	w.words[e.wordIdx] = e.oldWord
}

// asBitSet exposes the current words as a *bitset.BitSet view, sharing
// the backing array, for use with the static incidence's library-backed
// bitset operations.
func (w *wordSet) asBitSet() *bitset.BitSet {
	return bitset.From(w.words)
}

// undoEntry is one (word_index, old_word) pair.
type undoEntry struct {
	wordIdx int
	oldWord uint64
}
