package mmapbuf

import (
	"encoding/binary"
	"fmt"
)

// Words decodes the entire mapped region into a []uint64 slice of
// big-endian words, for callers (such as the graph data passed to
// webgraph.Open) that need a plain in-memory word slice rather than offset-addressed
// random access. The file size must be a multiple of 8 bytes.
func (b *Buffer) Words() ([]uint64, error) {
	if b.fileSize%8 != 0 {
		return nil, fmt.Errorf("mmapbuf: file size %d is not a multiple of 8", b.fileSize)
	}
	n := b.fileSize / 8
	buf := make([]byte, b.fileSize)
	if _, err := b.ra.ReadAt(buf, 0); err != nil {
		return nil, fmt.Errorf("mmapbuf: reading whole buffer: %w", err)
	}
	words := make([]uint64, n)
	for i := range words {
		words[i] = binary.BigEndian.Uint64(buf[i*8:])
	}
	return words, nil
}
