package compactarray

// ShrinkToFit trims the backing word store to the minimum size the
// declared length requires, releasing any extra build-time capacity.
func (a *Array) ShrinkToFit() {
	need := vecSize(a.n, a.wordSize)
	if uint64(len(a.words)) <= need {
		return
	}
	trimmed := make([]uint64, need)
	copy(trimmed, a.words[:need])
	a.words = trimmed
}
