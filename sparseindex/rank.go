package sparseindex

import (
	"math/bits"
	"sort"
)

// Rank1 returns the number of set bits in [0, index).
func (idx *Index) Rank1(index uint64) uint64 {
	if index >= idx.nBits {
		return idx.nOnes
	}
	if idx.nOnes == 0 {
		return 0
	}
	return rankOn(idx.bits, idx.onesSamples, idx.q, index, false)
}

// Rank0 returns the number of clear bits in [0, index).
func (idx *Index) Rank0(index uint64) uint64 {
	if index >= idx.nBits {
		return idx.nZeros
	}
	if idx.nZeros == 0 {
		return 0
	}
	return rankOn(idx.bits, idx.zerosSamples, idx.q, index, true)
}

// rankOn implements rank1/rank0 against either sample array; complement
// selects whether words are inverted before popcounting (rank0).
func rankOn(words []uint64, samples []uint64, q uint, index uint64, complement bool) uint64 {
	pos, found := sort.Find(len(samples), func(i int) int {
		if samples[i] < index {
			return 1
		}
		if samples[i] > index {
			return -1
		}
		return 0
	})
	if found {
		return uint64(pos) << q
	}
	sampleIdx := pos
	if sampleIdx > 0 {
		sampleIdx--
	} else {
		// no sample at or before index: nothing counted yet.
		return rankScan(words, 0, index, complement)
	}
	res := uint64(sampleIdx) << q
	bitPos := samples[sampleIdx]
	res += rankScan(words, bitPos, index, complement)
	return res
}

func rankScan(words []uint64, from, to uint64, complement bool) uint64 {
	wordIdx := from >> wordShift
	bitsToIgnore := from & wordMask
	word := func(i uint64) uint64 {
		if complement {
			return ^words[i]
		}
		return words[i]
	}

	current := word(wordIdx) & (^uint64(0) << bitsToIgnore)
	var bitsLeft uint64
	if to+bitsToIgnore >= from {
		bitsLeft = to + bitsToIgnore - from
	}

	var res uint64
	for bitsLeft >= wordBits {
		res += uint64(bits.OnesCount64(current))
		bitsLeft -= wordBits
		wordIdx++
		current = word(wordIdx)
	}
	res += uint64(bits.OnesCount64(current &^ (^uint64(0) << bitsLeft)))
	return res
}
