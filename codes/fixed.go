package codes

import "github.com/rpcpool/sux-go/bitio"

// FixedSize returns the bit length of the fixed-length code of width k.
func FixedSize(k int) uint64 { return uint64(k) }

// WriteFixed appends v in k bits, MSB first.
func WriteFixed(w *bitio.Writer, k int, v uint64) error {
	return w.WriteFixedLength(k, v)
}

// ReadFixed reads k bits as a right-aligned integer.
func ReadFixed(r *bitio.Reader, k int) (uint64, error) {
	return r.ReadFixedLength(k)
}

// WriteFixedWide appends v in k bits for k up to 64, splitting into two
// underlying fixed-length writes when k exceeds bitio.MaxFixedLength. Used
// by codes whose field width is derived from log2 of an arbitrary uint64
// (gamma's exponent field, zeta's interval width) and so is not bounded by
// the single-primitive width restriction.
func WriteFixedWide(w *bitio.Writer, k int, v uint64) error {
	if k <= bitio.MaxFixedLength {
		return w.WriteFixedLength(k, v)
	}
	hiBits := k - bitio.MaxFixedLength
	hi := v >> uint(bitio.MaxFixedLength)
	lo := v & (uint64(1)<<uint(bitio.MaxFixedLength) - 1)
	if err := w.WriteFixedLength(hiBits, hi); err != nil {
		return err
	}
	return w.WriteFixedLength(bitio.MaxFixedLength, lo)
}

// ReadFixedWide is the inverse of WriteFixedWide.
func ReadFixedWide(r *bitio.Reader, k int) (uint64, error) {
	if k <= bitio.MaxFixedLength {
		return r.ReadFixedLength(k)
	}
	hiBits := k - bitio.MaxFixedLength
	hi, err := r.ReadFixedLength(hiBits)
	if err != nil {
		return 0, err
	}
	lo, err := r.ReadFixedLength(bitio.MaxFixedLength)
	if err != nil {
		return 0, err
	}
	return hi<<uint(bitio.MaxFixedLength) | lo, nil
}
