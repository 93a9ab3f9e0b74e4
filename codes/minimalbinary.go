package codes

import "github.com/rpcpool/sux-go/bitio"

// minimalBinaryParams derives (u, l, scarto) for a minimal-binary code of
// maximum value m: u = ceil(log2 m), l = floor(log2 m), scarto = 2^u - m.
func minimalBinaryParams(m uint64) (u, l int, scarto uint64) {
	if m <= 1 {
		return 0, 0, 0
	}
	u = log2Ceil(m)
	l = log2Floor(m)
	scarto = uint64(1)<<uint(u) - m
	return
}

// MinimalBinarySize returns the bit length of the minimal-binary code of v
// over [0, m).
func MinimalBinarySize(v, m uint64) uint64 {
	u, l, scarto := minimalBinaryParams(m)
	if m <= 1 {
		return 0
	}
	if v < scarto {
		return uint64(l)
	}
	return uint64(u)
}

// WriteMinimalBinary appends the MSB-first minimal-binary code of v over
// [0, m): values below scarto=2^u-m take the short (l-bit) code, the rest
// take the long (u-bit) code shifted by scarto.
func WriteMinimalBinary(w *bitio.Writer, v, m uint64) error {
	if m <= 1 {
		return nil
	}
	u, l, scarto := minimalBinaryParams(m)
	if v < scarto {
		return WriteFixedWide(w, l, v)
	}
	return WriteFixedWide(w, u, v+scarto)
}

// ReadMinimalBinary is the inverse of WriteMinimalBinary: it reads the
// l-bit short code first, and if the decoded value is >= scarto, reads one
// extra bit to recover the full u-bit long code.
func ReadMinimalBinary(r *bitio.Reader, m uint64) (uint64, error) {
	if m <= 1 {
		return 0, nil
	}
	u, l, scarto := minimalBinaryParams(m)
	if l == u {
		return ReadFixedWide(r, l)
	}
	short, err := ReadFixedWide(r, l)
	if err != nil {
		return 0, err
	}
	if short < scarto {
		return short, nil
	}
	extra, err := ReadFixedWide(r, u-l)
	if err != nil {
		return 0, err
	}
	return (short<<uint(u-l) | extra) - scarto, nil
}
