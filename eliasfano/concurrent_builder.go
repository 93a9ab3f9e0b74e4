package eliasfano

import (
	"time"

	"github.com/rpcpool/sux-go/compactarray"
	"github.com/rpcpool/sux-go/metrics"
	"github.com/rpcpool/sux-go/sparseindex"
)

// ConcurrentBuilder constructs an EliasFano sequence from many goroutines
// calling Set concurrently, each at a distinct, pre-known index. This is
// the fan-out path used when the final sorted positions of every value
// are already known (for instance, they were computed by an external
// sort), so no goroutine needs to coordinate with any other beyond the
// disjoint index ranges they each own.
type ConcurrentBuilder struct {
	lowBits          *compactarray.Array
	highBits         *sparseindex.ConcurrentBuilder
	universe         uint64
	numberOfElements uint64
	lowBitCount      int
	startedAt        time.Time
}

// NewConcurrentBuilder returns a ConcurrentBuilder tuned for a sequence of
// numberOfElements values bounded by universe.
func NewConcurrentBuilder(universe, numberOfElements uint64) (*ConcurrentBuilder, error) {
	if numberOfElements == 0 {
		return &ConcurrentBuilder{
			lowBits:   compactarray.New(0, 0),
			highBits:  sparseindex.NewConcurrentBuilder(0, QuantumLog2, 0),
			startedAt: time.Now(),
		}, nil
	}

	l, err := lowBitCount(universe, numberOfElements)
	if err != nil {
		return nil, err
	}

	maxHigh := universe >> uint(l)
	highBitsLen := numberOfElements + maxHigh

	return &ConcurrentBuilder{
		universe:         universe,
		numberOfElements: numberOfElements,
		lowBitCount:      l,
		lowBits:          compactarray.New(l, numberOfElements),
		highBits:         sparseindex.NewConcurrentBuilder(highBitsLen, QuantumLog2, numberOfElements),
		startedAt:        time.Now(),
	}, nil
}

// Set writes value at the given index. Safe to call concurrently from
// many goroutines, provided each index is set at most once overall and
// the caller has already established that the full set of values, in
// index order, is non-decreasing.
func (b *ConcurrentBuilder) Set(index, value uint64) {
	high := value >> uint(b.lowBitCount)
	low := value & b.lowBits.WordMask()

	b.lowBits.ConcurrentWrite(index, low)
	b.highBits.Set(high + index)
}

// Build finalizes the sequence. It scans the high-bits vector once to
// build the rank/select samples and validates that exactly
// numberOfElements bits ended up set; a mismatch means some index was
// never written, or was written more than once.
func (b *ConcurrentBuilder) Build() (*EliasFano, error) {
	highBits, err := b.highBits.Build()
	if err != nil {
		return nil, err
	}
	metrics.ObserveBuild("eliasfano.ConcurrentBuilder", b.numberOfElements, time.Since(b.startedAt))
	return &EliasFano{
		lowBits:          b.lowBits,
		highBits:         highBits,
		universe:         b.universe,
		numberOfElements: b.numberOfElements,
	}, nil
}
