package eliasfano

import (
	"time"

	"github.com/rpcpool/sux-go/compactarray"
	"github.com/rpcpool/sux-go/continuity"
	"github.com/rpcpool/sux-go/metrics"
	"github.com/rpcpool/sux-go/sparseindex"
)

// Builder constructs an EliasFano sequence by pushing values one at a
// time, in non-decreasing order.
type Builder struct {
	lowBits          *compactarray.Array
	highBits         *sparseindex.Builder
	universe         uint64
	numberOfElements uint64
	lowBitCount      int

	lastHighValue           uint64
	lastValue               uint64
	lastIndex               uint64
	currentNumberOfElements uint64
	startedAt               time.Time
}

// NewBuilder returns a Builder tuned for a sequence of numberOfElements
// values bounded by universe.
func NewBuilder(universe, numberOfElements uint64) (*Builder, error) {
	if numberOfElements == 0 {
		return &Builder{
			universe:  universe,
			lowBits:   compactarray.New(0, 0),
			highBits:  sparseindex.NewBuilder(0, QuantumLog2),
			startedAt: time.Now(),
		}, nil
	}

	l, err := lowBitCount(universe, numberOfElements)
	if err != nil {
		return nil, err
	}

	return &Builder{
		universe:         universe,
		numberOfElements: numberOfElements,
		lowBitCount:      l,
		lowBits:          compactarray.New(l, numberOfElements),
		highBits:         sparseindex.NewBuilder(2*numberOfElements, QuantumLog2),
		startedAt:        time.Now(),
	}, nil
}

// UncheckedPush appends value without verifying that the sequence stays
// sorted or that the builder has not already reached its declared
// capacity.
func (b *Builder) UncheckedPush(value uint64) {
	b.lastValue = value
	b.currentNumberOfElements++

	high := value >> uint(b.lowBitCount)
	low := value & b.lowBits.WordMask()

	for v := b.lastHighValue; v < high; v++ {
		b.highBits.Push(false)
	}
	b.highBits.Push(true)

	b.lowBits.Write(b.lastIndex, low)

	b.lastHighValue = high
	b.lastIndex++
}

// Push appends value, which must be greater than or equal to the last
// value pushed. It returns ErrUnsorted or ErrFull if that invariant, or
// the declared element count, would be violated.
func (b *Builder) Push(value uint64) error {
	if b.currentNumberOfElements > 0 && b.lastValue > value {
		return ErrUnsorted
	}
	if b.currentNumberOfElements >= b.numberOfElements {
		return ErrFull
	}
	b.UncheckedPush(value)
	return nil
}

// Build finalizes the sequence pushed so far.
func (b *Builder) Build() *EliasFano {
	metrics.ObserveBuild("eliasfano.Builder", b.currentNumberOfElements, time.Since(b.startedAt))
	return &EliasFano{
		lowBits:          b.lowBits,
		highBits:         b.highBits.Build(),
		universe:         b.universe,
		numberOfElements: b.currentNumberOfElements,
	}
}

// FromSorted builds a complete EliasFano sequence from an in-memory slice
// of non-decreasing values. The allocation and push phases are chained
// through package continuity so the first failure anywhere in the
// sequence short-circuits the rest without threading extra error-returning
// plumbing through the loop.
func FromSorted(values []uint64) (*EliasFano, error) {
	var universe uint64
	if len(values) > 0 {
		universe = values[len(values)-1]
	}

	var b *Builder
	err := continuity.New().
		Thenf("allocate builder", func() error {
			built, err := NewBuilder(universe, uint64(len(values)))
			b = built
			return err
		}).
		Thenf("push values", func() error {
			for _, v := range values {
				if err := b.Push(v); err != nil {
					return err
				}
			}
			return nil
		}).Err()
	if err != nil {
		return nil, err
	}
	return b.Build(), nil
}
