package bitio

import "math/bits"

// Reader is a cursor over an immutable MSB-first word buffer. A Reader is
// cheap to copy and is owned exclusively by whichever goroutine holds it;
// multiple independent Readers may read the same backing words concurrently.
type Reader struct {
	words []uint64
	nBits uint64
	pos   uint64
}

// NewReader returns a Reader positioned at bit 0 of words, which must carry
// at least one sentinel word past the last bit addressable up to nBits.
func NewReader(words []uint64, nBits uint64) *Reader {
	return &Reader{words: words, nBits: nBits}
}

// Tell returns the current bit offset.
func (r *Reader) Tell() uint64 { return r.pos }

// Seek moves the cursor to an absolute bit offset.
func (r *Reader) Seek(bitOffset uint64) { r.pos = bitOffset }

// Skip advances the cursor by n bits.
func (r *Reader) Skip(n uint64) { r.pos += n }

// Rewind moves the cursor back by n bits, saturating at 0.
func (r *Reader) Rewind(n uint64) {
	if n >= r.pos {
		r.pos = 0
		return
	}
	r.pos -= n
}

// ReadBit reads a single bit and advances the cursor by one.
func (r *Reader) ReadBit() (bool, error) {
	if r.pos >= r.nBits {
		return false, ErrEndOfStream
	}
	v, err := r.readFixedLengthAt(r.pos, 1)
	if err != nil {
		return false, err
	}
	r.pos++
	return v == 1, nil
}

// PeekByte returns the 8 bits starting at the cursor without advancing it.
// The backing buffer must provide at least one sentinel byte past the last
// written bit, which NewBuffer guarantees.
func (r *Reader) PeekByte() uint8 {
	wordIdx := wordIndex(r.pos)
	inWord := inWordOffset(r.pos)
	hi := uint64(0)
	if int(wordIdx) < len(r.words) {
		hi = r.words[wordIdx]
	}
	avail := 64 - inWord
	if avail >= 8 {
		return uint8(hi >> (avail - 8))
	}
	lo := uint64(0)
	if int(wordIdx)+1 < len(r.words) {
		lo = r.words[wordIdx+1]
	}
	bitsFromHi := avail
	bitsFromLo := 8 - bitsFromHi
	partHi := hi & (1<<bitsFromHi - 1)
	partLo := lo >> (64 - bitsFromLo)
	return uint8(partHi<<bitsFromLo | partLo)
}

// ReadFixedLength reads k bits, MSB first, as a right-aligned integer.
// k must be in [0, MaxFixedLength].
func (r *Reader) ReadFixedLength(k int) (uint64, error) {
	if k < 0 || k > MaxFixedLength {
		return 0, ErrOutOfRange
	}
	if k == 0 {
		return 0, nil
	}
	if r.pos+uint64(k) > r.nBits {
		return 0, ErrEndOfStream
	}
	v, err := r.readFixedLengthAt(r.pos, k)
	if err != nil {
		return 0, err
	}
	r.pos += uint64(k)
	return v, nil
}

// readFixedLengthAt reads k bits starting at bitPos without touching the
// cursor or checking the logical end; it relies on the sentinel word for
// safety against reading one word past the last used word.
func (r *Reader) readFixedLengthAt(bitPos uint64, k int) (uint64, error) {
	wordIdx := wordIndex(bitPos)
	if int(wordIdx) >= len(r.words) {
		return 0, ErrEndOfStream
	}
	inWord := inWordOffset(bitPos)
	hi := r.words[wordIdx]
	avail := 64 - inWord
	if uint64(k) <= avail {
		shift := avail - uint64(k)
		mask := uint64(1)<<uint(k) - 1
		return (hi >> shift) & mask, nil
	}
	var lo uint64
	if int(wordIdx)+1 < len(r.words) {
		lo = r.words[wordIdx+1]
	}
	bitsFromHi := avail
	bitsFromLo := uint64(k) - bitsFromHi
	partHi := hi & (1<<bitsFromHi - 1)
	partLo := lo >> (64 - bitsFromLo)
	return partHi<<bitsFromLo | partLo, nil
}

// ReadUnary reads a unary code: a run of v zero bits terminated by a one
// bit, returning v.
func (r *Reader) ReadUnary() (uint64, error) {
	pos := r.pos
	var count uint64
	for {
		wordIdx := wordIndex(pos)
		if int(wordIdx) >= len(r.words) {
			return 0, ErrEndOfStream
		}
		inWord := inWordOffset(pos)
		w := r.words[wordIdx] << inWord
		if w == 0 {
			consumed := 64 - inWord
			count += consumed
			pos += consumed
			if pos >= r.nBits {
				return 0, ErrEndOfStream
			}
			continue
		}
		lz := uint64(bits.LeadingZeros64(w))
		count += lz
		pos += lz + 1
		break
	}
	r.pos = pos
	return count, nil
}

// AtEnd reports whether the cursor has reached the logical end of the
// stream.
func (r *Reader) AtEnd() bool { return r.pos >= r.nBits }

// Len returns the logical length of the stream in bits.
func (r *Reader) Len() uint64 { return r.nBits }

// Clone returns an independent Reader over the same backing words,
// positioned at the same cursor.
func (r *Reader) Clone() *Reader {
	c := *r
	return &c
}
