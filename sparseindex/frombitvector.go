package sparseindex

import (
	"math/bits"

	"golang.org/x/sync/errgroup"
)

// FromBitVectorParallel builds an Index over an already-complete bit
// vector, sampling the ones and the zeros in two independent passes that
// run concurrently: one walks the set bits via repeated TrailingZeros64 +
// BLSR, the other walks the clear bits via the complement. Both passes run
// as goroutines of one errgroup.Group and are joined before the Index is
// assembled. Use this when the full bit-vector is
// already known up front (e.g. decoded from a serialized high-bits array)
// instead of pushing bits one at a time through Builder.
func FromBitVectorParallel(bits []uint64, nBits uint64, quantumLog2 uint) *Index {
	var onesSamples, zerosSamples []uint64
	var nOnes, nZeros uint64

	var g errgroup.Group
	g.Go(func() error {
		onesSamples, nOnes = sampleBits(bits, nBits, quantumLog2, false)
		return nil
	})
	g.Go(func() error {
		zerosSamples, nZeros = sampleBits(bits, nBits, quantumLog2, true)
		return nil
	})
	_ = g.Wait() // both passes are infallible; Wait only joins them

	return &Index{
		bits:         bits,
		nBits:        nBits,
		onesSamples:  onesSamples,
		zerosSamples: zerosSamples,
		nOnes:        nOnes,
		nZeros:       nZeros,
		q:            quantumLog2,
	}
}

// sampleBits walks bits word by word, sampling the absolute position of
// every (2^quantumLog2)-th set bit of the requested polarity (complement
// selects the zeros) and returns the sample array alongside the total
// count of that polarity within [0, nBits).
func sampleBits(bits []uint64, nBits uint64, quantumLog2 uint, complement bool) ([]uint64, uint64) {
	var samples []uint64
	var count uint64
	qMask := quantumMask(quantumLog2)

	fullWords := nBits / wordBits
	for wordIdx := uint64(0); wordIdx < fullWords; wordIdx++ {
		w := bits[wordIdx]
		if complement {
			w = ^w
		}
		count = consumeWord(w, wordIdx, qMask, count, &samples)
	}

	if tail := nBits % wordBits; tail != 0 {
		w := bits[fullWords]
		if complement {
			w = ^w
		}
		w &= uint64(1)<<tail - 1
		count = consumeWord(w, fullWords, qMask, count, &samples)
	}

	return samples, count
}

// consumeWord samples every (2^q)-th set bit of w (w's own polarity has
// already been chosen by the caller) using repeated trailing-zero extract
// plus clear-lowest-set-bit, and returns the updated running count.
func consumeWord(w uint64, wordIdx uint64, qMask uint64, count uint64, samples *[]uint64) uint64 {
	for w != 0 {
		tz := uint64(bits.TrailingZeros64(w))
		pos := wordIdx*wordBits + tz
		if count&qMask == 0 {
			*samples = append(*samples, pos)
		}
		count++
		w &= w - 1
	}
	return count
}
