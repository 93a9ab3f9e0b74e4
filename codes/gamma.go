package codes

import "github.com/rpcpool/sux-go/bitio"

// GammaSize returns the bit length of the Elias γ code for v.
func GammaSize(v uint64) uint64 {
	l := uint64(log2Floor(v + 1))
	return 2*l + 1
}

// WriteGamma appends unary(L) followed by the low L bits of (v+1)-2^L,
// where L = floor(log2(v+1)).
func WriteGamma(w *bitio.Writer, v uint64) error {
	l := log2Floor(v + 1)
	w.WriteUnary(uint64(l))
	return WriteFixedWide(w, l, (v+1)-(uint64(1)<<uint(l)))
}

// ReadGamma is the inverse of WriteGamma.
func ReadGamma(r *bitio.Reader) (uint64, error) {
	l, err := ReadUnary(r)
	if err != nil {
		return 0, err
	}
	rest, err := ReadFixedWide(r, int(l))
	if err != nil {
		return 0, err
	}
	return (uint64(1)<<l | rest) - 1, nil
}
