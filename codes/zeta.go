package codes

import "github.com/rpcpool/sux-go/bitio"

func zetaParts(v uint64, k int) (h int, low, m uint64) {
	l := log2Floor(v + 1)
	h = l / k
	low64 := uint64(1) << uint(h*k)
	m = (uint64(1) << uint((h+1)*k)) - low64
	low = (v + 1) - low64
	return
}

// ZetaSize returns the bit length of the Boldi–Vigna ζ(v, K) code.
func ZetaSize(v uint64, k int) uint64 {
	h, low, m := zetaParts(v, k)
	return UnarySize(uint64(h)) + MinimalBinarySize(low, m)
}

// WriteZeta appends unary(h) followed by minimal-binary((v+1)-2^(hK),
// 2^((h+1)K)-2^(hK)), where h = floor(log2(v+1)) / K.
func WriteZeta(w *bitio.Writer, v uint64, k int) error {
	h, low, m := zetaParts(v, k)
	w.WriteUnary(uint64(h))
	return WriteMinimalBinary(w, low, m)
}

// ReadZeta is the inverse of WriteZeta.
func ReadZeta(r *bitio.Reader, k int) (uint64, error) {
	h, err := ReadUnary(r)
	if err != nil {
		return 0, err
	}
	low64 := uint64(1) << uint(int(h)*k)
	m := (uint64(1) << uint((int(h)+1)*k)) - low64
	rest, err := ReadMinimalBinary(r, m)
	if err != nil {
		return 0, err
	}
	return low64 + rest - 1, nil
}

// zetaDecodeEntry is the acceleration table entry for ζ(·,3), keyed by the
// next peeked byte, populated only for codes short enough to fit entirely
// in one byte.
type zetaDecodeEntry struct {
	value   uint64
	consume uint8
	ok      bool
}

var zeta3DecodeTable [256]zetaDecodeEntry

func init() {
	for b := 0; b < 256; b++ {
		word := []uint64{uint64(b) << 56}
		r := bitio.NewReader(word, 8)
		v, err := ReadZeta(r, 3)
		if err == nil && r.Tell() <= 8 {
			zeta3DecodeTable[b] = zetaDecodeEntry{value: v, consume: uint8(r.Tell()), ok: true}
		}
	}
}

// ReadZeta3 reads a ζ(·,3) code, consulting a byte-indexed decode table
// when the whole code fits in the next byte, matching ReadZeta(r, 3) bit
// for bit in every case.
func ReadZeta3(r *bitio.Reader) (uint64, error) {
	b := r.PeekByte()
	entry := zeta3DecodeTable[b]
	if entry.ok {
		r.Skip(uint64(entry.consume))
		return entry.value, nil
	}
	return ReadZeta(r, 3)
}
