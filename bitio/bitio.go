// Package bitio implements a most-significant-bit-first ("M2L") bit stream
// over a word-aligned backing buffer.
//
// # Bit order
//
// Bits are addressed MSB-first within each 64-bit word: bit offset 0 of a
// word is the most significant bit. This is the byte order required to stay
// compatible with the webgraph wire format consumed by package webgraph, and
// is the archival encoding used for every on-disk layout in this module.
//
// # Sentinel padding
//
// Every backing buffer carries one extra all-zero word past the last
// logically written bit, so a two-word read that starts at the last valid
// bit position never indexes out of bounds.
package bitio

import "errors"

// ErrEndOfStream is returned when a read advances past the stream's logical
// end.
var ErrEndOfStream = errors.New("bitio: end of stream")

// ErrOutOfRange is returned when a fixed-length read or write is asked for a
// width outside [0, MaxFixedLength].
var ErrOutOfRange = errors.New("bitio: width out of range")

// WordBits is the width, in bits, of one backing word.
const WordBits = 64

// MaxFixedLength is the largest width accepted by ReadFixedLength /
// WriteFixedLength. The seven-bit gap below WordBits lets every fixed-length
// read be satisfied by a single two-word aligned load, never a three-word
// spanning read.
const MaxFixedLength = WordBits - 7

func wordIndex(bitPos uint64) uint64 { return bitPos >> 6 }

func inWordOffset(bitPos uint64) uint64 { return bitPos & 63 }
