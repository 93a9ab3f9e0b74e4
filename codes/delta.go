package codes

import "github.com/rpcpool/sux-go/bitio"

// DeltaSize returns the bit length of the Elias δ code for v.
func DeltaSize(v uint64) uint64 {
	l := uint64(log2Floor(v + 1))
	return GammaSize(l) + l
}

// WriteDelta appends γ(L) followed by the low L bits of (v+1)-2^L, where
// L = floor(log2(v+1)).
func WriteDelta(w *bitio.Writer, v uint64) error {
	l := log2Floor(v + 1)
	if err := WriteGamma(w, uint64(l)); err != nil {
		return err
	}
	return WriteFixedWide(w, l, (v+1)-(uint64(1)<<uint(l)))
}

// ReadDelta is the inverse of WriteDelta.
func ReadDelta(r *bitio.Reader) (uint64, error) {
	l, err := ReadGamma(r)
	if err != nil {
		return 0, err
	}
	rest, err := ReadFixedWide(r, int(l))
	if err != nil {
		return 0, err
	}
	return (uint64(1)<<l | rest) - 1, nil
}
