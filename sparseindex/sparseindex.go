// Package sparseindex implements a rank/select index over an immutable
// bit-vector: both rank1/select1 (on the set bits) and rank0/select0 (on
// the clear bits) are supported in amortized O(1), at the cost of a
// two-level quantum sample array recording the absolute bit position of
// every (2^Q)-th one and every (2^Q)-th zero.
//
// Bits are addressed LSB-in-word: bit j of words[i] is (words[i] >> j) & 1.
// This is a separate, simpler convention from the MSB-first archival bit
// stream used by package bitio for universal codes — see DESIGN.md.
package sparseindex

import "errors"

// ErrOutOfRange is returned by Select1/Select0 when the requested rank
// exceeds the number of set/clear bits.
var ErrOutOfRange = errors.New("sparseindex: index out of range")

// ErrCountMismatch is returned by a concurrent builder's Build when the
// number of bits actually set does not match the count declared at
// construction time.
var ErrCountMismatch = errors.New("sparseindex: unexpected number of set bits")

const wordBits = 64
const wordShift = 6
const wordMask = wordBits - 1

// Index is a finalized, immutable Sparse Index.
type Index struct {
	bits         []uint64
	nBits        uint64
	onesSamples  []uint64
	zerosSamples []uint64
	nOnes        uint64
	nZeros       uint64
	q            uint
}

// Len returns the number of bits in the indexed vector.
func (idx *Index) Len() uint64 { return idx.nBits }

// CountOnes returns the number of set bits.
func (idx *Index) CountOnes() uint64 { return idx.nOnes }

// CountZeros returns the number of clear bits.
func (idx *Index) CountZeros() uint64 { return idx.nZeros }

// Quantum returns the quantum log2 (Q) the index was built with.
func (idx *Index) Quantum() uint { return idx.q }

// Get returns the value of the bit at the given position.
func (idx *Index) Get(index uint64) bool {
	wordIdx := index >> wordShift
	bitIdx := index & wordMask
	return (idx.bits[wordIdx]>>bitIdx)&1 == 1
}

// Bits exposes the raw backing words, for on-disk serialization. The
// returned slice must not be mutated by the caller.
func (idx *Index) Bits() []uint64 { return idx.bits }

// OnesSamples exposes the raw quantum sample array for the set bits, for
// on-disk serialization. The returned slice must not be mutated.
func (idx *Index) OnesSamples() []uint64 { return idx.onesSamples }

// ZerosSamples exposes the raw quantum sample array for the clear bits,
// for on-disk serialization. The returned slice must not be mutated.
func (idx *Index) ZerosSamples() []uint64 { return idx.zerosSamples }

// FromParts reconstructs a finalized Index from its raw components, as
// read back from an on-disk serialization. The caller is responsible for
// the components being mutually consistent; FromParts does not
// recompute or validate them.
func FromParts(bits []uint64, nBits, nOnes, nZeros uint64, onesSamples, zerosSamples []uint64, q uint) *Index {
	return &Index{
		bits:         bits,
		nBits:        nBits,
		onesSamples:  onesSamples,
		zerosSamples: zerosSamples,
		nOnes:        nOnes,
		nZeros:       nZeros,
		q:            q,
	}
}

func quantumMask(q uint) uint64 { return uint64(1)<<q - 1 }
