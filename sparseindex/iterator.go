package sparseindex

import "math/bits"

// Iterator yields the positions of set bits in ascending order.
type Iterator struct {
	idx     *Index
	wordIdx uint64
	word    uint64
}

// Iter returns a forward iterator over the positions of set bits.
func (idx *Index) Iter() *Iterator {
	it := &Iterator{idx: idx}
	if len(idx.bits) > 0 {
		it.word = idx.bits[0]
	}
	return it
}

// Next returns the next set bit position and true, or (0, false) once
// exhausted.
func (it *Iterator) Next() (uint64, bool) {
	for it.word == 0 {
		it.wordIdx++
		if it.wordIdx >= uint64(len(it.idx.bits)) {
			return 0, false
		}
		it.word = it.idx.bits[it.wordIdx]
	}
	tz := uint64(bits.TrailingZeros64(it.word))
	pos := it.wordIdx*wordBits + tz
	it.word &= it.word - 1
	if pos >= it.idx.nBits {
		return 0, false
	}
	return pos, true
}

// RangeIterator yields the positions of set bits within [start, end).
type RangeIterator struct {
	idx *Index
	pos uint64
	end uint64
}

// IterRange returns an iterator over the positions of set bits in
// [start, end).
func (idx *Index) IterRange(start, end uint64) *RangeIterator {
	if end > idx.nBits {
		end = idx.nBits
	}
	return &RangeIterator{idx: idx, pos: start, end: end}
}

// Next returns the next set bit position within the range and true, or
// (0, false) once exhausted.
func (it *RangeIterator) Next() (uint64, bool) {
	for it.pos < it.end {
		pos := it.pos
		it.pos++
		if it.idx.Get(pos) {
			return pos, true
		}
	}
	return 0, false
}
