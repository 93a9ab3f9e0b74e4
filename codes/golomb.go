package codes

import "github.com/rpcpool/sux-go/bitio"

// GolombSize returns the bit length of the Golomb(B) code for v.
func GolombSize(v, b uint64) uint64 {
	q := v / b
	r := v % b
	return UnarySize(q) + MinimalBinarySize(r, b)
}

// WriteGolomb appends unary(v/B) followed by minimal-binary(v%B, B).
func WriteGolomb(w *bitio.Writer, v, b uint64) error {
	q := v / b
	r := v % b
	w.WriteUnary(q)
	return WriteMinimalBinary(w, r, b)
}

// ReadGolomb is the inverse of WriteGolomb.
func ReadGolomb(r *bitio.Reader, b uint64) (uint64, error) {
	q, err := ReadUnary(r)
	if err != nil {
		return 0, err
	}
	rem, err := ReadMinimalBinary(r, b)
	if err != nil {
		return 0, err
	}
	if rem >= b {
		return 0, ErrMalformedCode
	}
	return q*b + rem, nil
}

// GolombTable binds a fixed block size B so that repeated Read/Write calls
// against the same B need not pass it each time. It stores only B; every
// call still derives the minimal-binary parameters from it.
type GolombTable struct {
	b uint64
}

// NewGolombTable returns a table for block size b.
func NewGolombTable(b uint64) *GolombTable { return &GolombTable{b: b} }

// Size returns the bit length of the code for v.
func (t *GolombTable) Size(v uint64) uint64 { return GolombSize(v, t.b) }

// Write appends the code for v.
func (t *GolombTable) Write(w *bitio.Writer, v uint64) error { return WriteGolomb(w, v, t.b) }

// Read decodes the next code.
func (t *GolombTable) Read(r *bitio.Reader) (uint64, error) { return ReadGolomb(r, t.b) }

// SkewedGolombB computes the Golomb block size used by the webgraph
// reader's "skewed Golomb" residual code, whose B is derived from the
// current node's outdegree rather than fixed ahead of time: B = max(1,
// floor(0.5 + outdegree / 4)), matching the block-size heuristic used by
// BVGraph-style encoders to bias the geometric parameter towards the
// observed degree distribution.
func SkewedGolombB(outdegree uint64) uint64 {
	b := (outdegree + 2) / 4
	if b == 0 {
		b = 1
	}
	return b
}

// WriteSkewedGolomb appends a Golomb code whose block size is derived from
// outdegree.
func WriteSkewedGolomb(w *bitio.Writer, v, outdegree uint64) error {
	return WriteGolomb(w, v, SkewedGolombB(outdegree))
}

// ReadSkewedGolomb is the inverse of WriteSkewedGolomb.
func ReadSkewedGolomb(r *bitio.Reader, outdegree uint64) (uint64, error) {
	return ReadGolomb(r, SkewedGolombB(outdegree))
}
