// Package codes implements the universal integer codes used by package
// webgraph: unary,
// fixed-length, Elias γ (gamma), Elias δ (delta), minimal binary, Golomb,
// and Boldi–Vigna ζ (zeta), plus a nibble/var-length code.
//
// Every code exposes Size (a pure length function used by builders to plan
// bit offsets without encoding), Write, and Read, and round-trips bit for
// bit: Read(Write(v)) == v.
package codes

import (
	"errors"
	"math/bits"

	"github.com/rpcpool/sux-go/bitio"
)

// ErrMalformedCode is returned when a decoded value is inconsistent with
// its declared parameters, e.g. a Golomb remainder >= B.
var ErrMalformedCode = errors.New("codes: malformed code")

func log2Floor(v uint64) int {
	if v == 0 {
		return 0
	}
	return 63 - bits.LeadingZeros64(v)
}

func log2Ceil(v uint64) int {
	if v <= 1 {
		return 0
	}
	return 64 - bits.LeadingZeros64(v-1)
}
