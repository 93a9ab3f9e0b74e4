package codes

import "github.com/rpcpool/sux-go/bitio"

// unaryDecodeTable maps a peeked byte to (value, consumedBits) when the
// entire unary code for that value fits within the byte. Entry 0 (the
// all-zeros byte) is not populated: it always falls through to the scalar
// ReadUnary path, since the code's terminating one bit lies outside the
// peeked byte.
var unaryDecodeTable [256]struct {
	value   uint8
	consume uint8
}

func init() {
	for b := 1; b < 256; b++ {
		v := uint8(0)
		for (b>>(7-v))&1 == 0 {
			v++
		}
		unaryDecodeTable[b] = struct {
			value   uint8
			consume uint8
		}{value: v, consume: v + 1}
	}
}

// UnarySize returns the bit length of the unary code for v.
func UnarySize(v uint64) uint64 { return v + 1 }

// WriteUnary appends the unary code for v.
func WriteUnary(w *bitio.Writer, v uint64) { w.WriteUnary(v) }

// ReadUnary reads a unary code, using the byte decode table when the whole
// code fits in the next byte and falling back to bitio's word-scanning
// Reader.ReadUnary otherwise.
func ReadUnary(r *bitio.Reader) (uint64, error) {
	b := r.PeekByte()
	if b != 0 {
		entry := unaryDecodeTable[b]
		r.Skip(uint64(entry.consume))
		return uint64(entry.value), nil
	}
	return r.ReadUnary()
}
