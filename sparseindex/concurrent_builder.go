package sparseindex

import (
	"sync/atomic"

	"k8s.io/klog/v2"
)

// ConcurrentBuilder constructs an Index over a bit-vector of known size
// where many goroutines each call Set on a disjoint subset of positions.
// Build validates that exactly the declared number of bits ended up set
// before computing the quantum samples; this is the construction path
// package eliasfano uses when building the high-bits vector in parallel.
type ConcurrentBuilder struct {
	bits    []uint64
	nBits   uint64
	q       uint
	wantSet uint64
}

// NewConcurrentBuilder returns a ConcurrentBuilder for an index of nBits
// bits, sampling every 2^quantumLog2-th one/zero, and expecting exactly
// expectedOnes bits to have been set by the time Build is called.
func NewConcurrentBuilder(nBits uint64, quantumLog2 uint, expectedOnes uint64) *ConcurrentBuilder {
	return &ConcurrentBuilder{
		bits:    make([]uint64, nBits/wordBits+2),
		nBits:   nBits,
		q:       quantumLog2,
		wantSet: expectedOnes,
	}
}

// Set marks the bit at the given position. Safe to call concurrently from
// multiple goroutines, provided each position is set at most once overall.
func (b *ConcurrentBuilder) Set(index uint64) {
	wordIdx := index >> wordShift
	mask := uint64(1) << (index & wordMask)
	addr := &b.bits[wordIdx]
	for {
		old := atomic.LoadUint64(addr)
		if old&mask == mask {
			return
		}
		if atomic.CompareAndSwapUint64(addr, old, old|mask) {
			return
		}
	}
}

// Build validates the number of bits set via Set and, if it matches the
// count declared at construction, scans the backing words once to compute
// quantum samples and returns the finalized Index. Otherwise it returns
// ErrCountMismatch.
func (b *ConcurrentBuilder) Build() (*Index, error) {
	var onesSamples, zerosSamples []uint64
	var nOnes, nZeros uint64
	qMask := quantumMask(b.q)

	for pos := uint64(0); pos < b.nBits; pos++ {
		wordIdx := pos >> wordShift
		inWord := pos & wordMask
		if (b.bits[wordIdx]>>inWord)&1 == 1 {
			if nOnes&qMask == 0 {
				onesSamples = append(onesSamples, pos)
			}
			nOnes++
		} else {
			if nZeros&qMask == 0 {
				zerosSamples = append(zerosSamples, pos)
			}
			nZeros++
		}
	}

	if nOnes != b.wantSet {
		klog.Errorf("sparseindex: concurrent builder expected %d set bits, observed %d", b.wantSet, nOnes)
		return nil, ErrCountMismatch
	}

	return &Index{
		bits:         b.bits,
		nBits:        b.nBits,
		onesSamples:  onesSamples,
		zerosSamples: zerosSamples,
		nOnes:        nOnes,
		nZeros:       nZeros,
		q:            b.q,
	}, nil
}
