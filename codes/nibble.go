package codes

import "github.com/rpcpool/sux-go/bitio"

// NibbleSize returns the bit length of the nibble (var-length) code for v:
// groups of 4 value-bits each preceded by a continuation bit, least
// significant group first... encoded MSB-first at the stream level by
// writing the continuation bit then the 4-bit group, most significant
// group first, so no seek-back is needed while writing.
func NibbleSize(v uint64) uint64 {
	groups := uint64(1)
	for v>>uint(4*groups) != 0 {
		groups++
	}
	return groups * 5
}

// WriteNibble appends v as a sequence of 4-bit groups, most significant
// group first, each preceded by a continuation bit (1 = more groups
// follow, 0 = last group).
func WriteNibble(w *bitio.Writer, v uint64) error {
	groups := uint64(1)
	for v>>uint(4*groups) != 0 {
		groups++
	}
	for g := groups; g >= 1; g-- {
		nibble := (v >> uint(4*(g-1))) & 0xF
		cont := uint64(0)
		if g > 1 {
			cont = 1
		}
		w.WriteBit(cont == 1)
		if err := w.WriteFixedLength(4, nibble); err != nil {
			return err
		}
	}
	return nil
}

// ReadNibble is the inverse of WriteNibble.
func ReadNibble(r *bitio.Reader) (uint64, error) {
	var v uint64
	for {
		cont, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		nibble, err := r.ReadFixedLength(4)
		if err != nil {
			return 0, err
		}
		v = v<<4 | nibble
		if !cont {
			break
		}
	}
	return v, nil
}
