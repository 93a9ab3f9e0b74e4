package eliasfano

import "github.com/rpcpool/sux-go/sparseindex"

// Iterator walks an EliasFano sequence in ascending order, reconstructing
// each value from the high-bits position and the parallel low-bits slot.
type Iterator struct {
	ef   *EliasFano
	high *sparseindex.Iterator
	ones uint64
}

// Iter returns an iterator over every stored value, in ascending order.
func (ef *EliasFano) Iter() *Iterator {
	return &Iterator{ef: ef, high: ef.highBits.Iter()}
}

// Next returns the next value and true, or (0, false) once exhausted.
func (it *Iterator) Next() (uint64, bool) {
	pos, ok := it.high.Next()
	if !ok {
		return 0, false
	}
	high := pos - it.ones
	low := it.ef.lowBits.Read(it.ones)
	it.ones++
	return high<<uint(it.ef.lowBits.WordSize()) | low, true
}

// RangeIterator walks the stored values whose value falls in [lo, hi), in
// ascending order. It is strictly faster than filtering Iter, since it
// maps the value range to a high-bits bit-position range with a binary
// search over Select instead of testing every element.
type RangeIterator struct {
	ef   *EliasFano
	high *sparseindex.RangeIterator
	ones uint64
}

// IterInRange returns an iterator over the stored values in [lo, hi).
func (ef *EliasFano) IterInRange(lo, hi uint64) *RangeIterator {
	if ef.IsEmpty() {
		return &RangeIterator{ef: ef, high: ef.highBits.IterRange(0, 0)}
	}

	startOnes := firstIndexAtLeast(ef, lo)
	endOnes := firstIndexAtLeast(ef, hi)

	startPos := uint64(0)
	if startOnes < ef.numberOfElements {
		p, err := ef.highBits.Select1(startOnes)
		if err == nil {
			startPos = p
		} else {
			startPos = ef.highBits.Len()
		}
	} else {
		startPos = ef.highBits.Len()
	}
	endPos := ef.highBits.Len()
	if endOnes < ef.numberOfElements {
		p, err := ef.highBits.Select1(endOnes)
		if err == nil {
			endPos = p
		}
	}

	return &RangeIterator{ef: ef, high: ef.highBits.IterRange(startPos, endPos), ones: startOnes}
}

// firstIndexAtLeast returns the smallest index i such that Select(i) >= v,
// or ef.Len() if every stored value is less than v. This is a simple
// binary search over the index space; EliasFano's select is O(1), so this
// costs O(log n) select calls.
func firstIndexAtLeast(ef *EliasFano, v uint64) uint64 {
	lo, hi := uint64(0), ef.numberOfElements
	for lo < hi {
		mid := lo + (hi-lo)/2
		val := ef.UncheckedSelect(mid)
		if val < v {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// Next returns the next value in the range and true, or (0, false) once
// exhausted.
func (it *RangeIterator) Next() (uint64, bool) {
	pos, ok := it.high.Next()
	if !ok {
		return 0, false
	}
	high := pos - it.ones
	low := it.ef.lowBits.Read(it.ones)
	it.ones++
	return high<<uint(it.ef.lowBits.WordSize()) | low, true
}
