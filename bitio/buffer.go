package bitio

// Buffer is a growable, word-granular, MSB-first bit store. It is the
// backing storage used by Writer during construction; Reader operates on
// any []uint64 slice, including one obtained from a memory-mapped file via
// package mmapbuf.
type Buffer struct {
	words []uint64
	nBits uint64
}

// NewBuffer returns an empty buffer with room pre-reserved for at least
// bitCapacity bits.
func NewBuffer(bitCapacity uint64) *Buffer {
	nWords := (bitCapacity+63)/64 + 1 // +1 sentinel word
	return &Buffer{words: make([]uint64, 1, nWords)}
}

// Len returns the number of bits logically written so far.
func (b *Buffer) Len() uint64 { return b.nBits }

// Words returns the raw backing words, including the trailing sentinel
// word(s). The returned slice must not be mutated by the caller.
func (b *Buffer) Words() []uint64 { return b.words }

// growTo ensures that words holds at least enough words to address bitPos,
// plus one sentinel word past it.
func (b *Buffer) growTo(bitPos uint64) {
	need := wordIndex(bitPos) + 2 // the word itself, plus one sentinel
	for uint64(len(b.words)) < need {
		b.words = append(b.words, 0)
	}
}
