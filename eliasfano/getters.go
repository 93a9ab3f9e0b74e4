package eliasfano

// Rank returns the index of value in the sequence, which is the number of
// elements strictly less than value, or false if value is not in the
// sequence or exceeds the largest value stored. If the sequence contains
// duplicates, the returned index is always that of the first occurrence.
func (ef *EliasFano) Rank(value uint64) (uint64, bool) {
	if ef.IsEmpty() {
		return 0, false
	}
	last, _ := ef.Select(ef.numberOfElements - 1)
	if value > last {
		return 0, false
	}

	high, low := ef.extractHighLowBits(value)
	var index uint64
	if high > 0 {
		p, err := ef.highBits.Select0(high - 1)
		if err != nil {
			return 0, false
		}
		index = p + 1
	}
	ones := index - high

	for ef.highBits.Get(index) && ef.lowBits.Read(ones) < low {
		ones++
		index++
	}

	if ef.highBits.Get(index) && ef.lowBits.Read(ones) == low {
		return ones, true
	}
	return 0, false
}

// UncheckedRank returns the number of elements strictly less than value,
// without checking whether value is actually present. If value
// exceeds the largest value stored, it returns Len().
func (ef *EliasFano) UncheckedRank(value uint64) uint64 {
	if ef.IsEmpty() {
		return 0
	}
	last := ef.UncheckedSelect(ef.numberOfElements - 1)
	if value > last {
		return ef.numberOfElements
	}

	high, low := ef.extractHighLowBits(value)
	var index uint64
	if high > 0 {
		p, err := ef.highBits.Select0(high - 1)
		if err == nil {
			index = p + 1
		}
	}
	ones := index - high

	for ef.highBits.Get(index) && ef.lowBits.Read(ones) < low {
		ones++
		index++
	}
	return ones
}

// Select returns the value at the given index, or ErrOutOfRange if index
// is not smaller than Len().
func (ef *EliasFano) Select(index uint64) (uint64, error) {
	if index >= ef.numberOfElements {
		return 0, ErrOutOfRange
	}
	return ef.UncheckedSelect(index), nil
}

// UncheckedSelect returns the value at the given index without bounds
// checking; it panics if index is out of range.
func (ef *EliasFano) UncheckedSelect(index uint64) uint64 {
	highPos, err := ef.highBits.Select1(index)
	if err != nil {
		panic(err)
	}
	high := highPos - index
	low := ef.lowBits.Read(index)
	return high<<uint(ef.lowBits.WordSize()) | low
}

// Contains reports whether value is present in the sequence.
func (ef *EliasFano) Contains(value uint64) bool {
	if ef.IsEmpty() {
		return false
	}
	last := ef.UncheckedSelect(ef.numberOfElements - 1)
	if value > last {
		return false
	}

	high, low := ef.extractHighLowBits(value)
	var index uint64
	if high > 0 {
		p, err := ef.highBits.Select0(high - 1)
		if err != nil {
			return false
		}
		index = p + 1
	}
	ones := index - high

	for ef.highBits.Get(index) && ef.lowBits.Read(ones) < low {
		ones++
		index++
	}

	return ef.highBits.Get(index) && ef.lowBits.Read(ones) == low
}
