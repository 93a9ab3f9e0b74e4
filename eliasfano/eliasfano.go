// Package eliasfano implements Sebastiano Vigna's Elias-Fano quasi-succinct
// encoding of a non-decreasing sequence of non-negative integers.
//
// Given n values bounded by a universe u, the encoding splits every value
// into a low part of l = floor(log2(u/n)) bits, stored contiguously in a
// package compactarray fixed-width array, and a high part, stored as a
// unary-coded bit-vector indexed by package sparseindex for O(1) rank and
// select. Total size is close to the information-theoretic minimum of
// n*log2(u/n) + O(n) bits.
package eliasfano

import (
	"errors"
	"fmt"

	"github.com/rpcpool/sux-go/compactarray"
	"github.com/rpcpool/sux-go/sparseindex"
)

// QuantumLog2 is the sparse-index sampling quantum used throughout this
// package's high-bits index: every 2^QuantumLog2-th one and zero is
// sampled, trading ~1.5% extra space for O(1) rank/select.
const QuantumLog2 = 8

// EliasFano is a finalized, immutable Elias-Fano encoded sequence.
type EliasFano struct {
	lowBits          *compactarray.Array
	highBits         *sparseindex.Index
	universe         uint64
	numberOfElements uint64
}

// Universe returns the maximum encodable value, as declared at
// construction time.
func (ef *EliasFano) Universe() uint64 { return ef.universe }

// Len returns the number of elements encoded.
func (ef *EliasFano) Len() uint64 { return ef.numberOfElements }

// IsEmpty reports whether the sequence holds no elements.
func (ef *EliasFano) IsEmpty() bool { return ef.numberOfElements == 0 }

// LowBitCount returns the width, in bits, of the low-bits field.
func (ef *EliasFano) LowBitCount() int { return ef.lowBits.WordSize() }

func (ef *EliasFano) extractHighBits(value uint64) uint64 {
	return value >> uint(ef.lowBits.WordSize())
}

func (ef *EliasFano) extractLowBits(value uint64) uint64 {
	return value & ef.lowBits.WordMask()
}

func (ef *EliasFano) extractHighLowBits(value uint64) (high, low uint64) {
	return ef.extractHighBits(value), ef.extractLowBits(value)
}

// ErrUnsorted is returned by Push when the pushed value is smaller than
// the last value pushed.
var ErrUnsorted = errors.New("eliasfano: values must be pushed in non-decreasing order")

// ErrFull is returned by Push when the builder already holds as many
// elements as it was sized for.
var ErrFull = errors.New("eliasfano: builder already holds the declared number of elements")

// ErrUniverseTooNarrow is returned by NewBuilder and NewConcurrentBuilder
// when the computed low-bit width would exceed 64 bits.
var ErrUniverseTooNarrow = errors.New("eliasfano: low-bit width exceeds 64 bits")

// ErrOutOfRange is returned by Select when the requested index is not
// smaller than the number of elements actually stored.
var ErrOutOfRange = errors.New("eliasfano: index out of range")

// lowBitCount returns l = floor(log2(universe/numberOfElements)), the
// width of the low-bits field, or 0 when there are no elements or the
// universe is smaller than the element count.
func lowBitCount(universe, numberOfElements uint64) (int, error) {
	if numberOfElements == 0 || universe < numberOfElements {
		return 0, nil
	}
	l := log2Floor(universe / numberOfElements)
	if l > 64 {
		return 0, fmt.Errorf("%w: universe %d, elements %d", ErrUniverseTooNarrow, universe, numberOfElements)
	}
	return l, nil
}

func log2Floor(v uint64) int {
	if v == 0 {
		return 0
	}
	n := -1
	for v > 0 {
		v >>= 1
		n++
	}
	return n
}
