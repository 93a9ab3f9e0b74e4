package sparseindex

// DoubleEndedIterator yields the positions of set bits and can be drained
// from either end, meeting in the middle; grounded in the original sparse
// index's double-ended iterator, which lets a caller consume matches
// symmetrically from both sides of a range without buffering them.
type DoubleEndedIterator struct {
	idx    *Index
	front  uint64
	back   uint64
	empty  bool
}

// IterDoubleEnded returns a double-ended iterator over the positions of
// set bits.
func (idx *Index) IterDoubleEnded() *DoubleEndedIterator {
	it := &DoubleEndedIterator{idx: idx}
	if idx.nBits == 0 {
		it.empty = true
		return it
	}
	it.front = 0
	it.back = idx.nBits - 1
	return it
}

// Next returns the next set bit position from the front and true, or
// (0, false) once the iterator is exhausted.
func (it *DoubleEndedIterator) Next() (uint64, bool) {
	for !it.empty && it.front <= it.back {
		pos := it.front
		atEnd := pos == it.back
		it.front++
		if atEnd {
			it.empty = true
		}
		if it.idx.Get(pos) {
			return pos, true
		}
	}
	return 0, false
}

// NextBack returns the next set bit position from the back and true, or
// (0, false) once the iterator is exhausted.
func (it *DoubleEndedIterator) NextBack() (uint64, bool) {
	for !it.empty && it.back >= it.front {
		pos := it.back
		atStart := pos == it.front
		if pos == 0 {
			it.empty = true
		} else {
			it.back--
		}
		if atStart {
			it.empty = true
		}
		if it.idx.Get(pos) {
			return pos, true
		}
	}
	return 0, false
}
