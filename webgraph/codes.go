package webgraph

import (
	"fmt"

	"github.com/rpcpool/sux-go/bitio"
	"github.com/rpcpool/sux-go/codes"
)

// Code identifies one of the universal codes a properties file's
// compressionflags bitfield can select for a given field.
type Code uint8

const (
	CodeDelta Code = iota + 1
	CodeGamma
	CodeGolomb
	CodeSkewedGolomb
	CodeUnary
	CodeZeta
	CodeNibble
)

// defaultGolombB and defaultZetaK match the constants the BVGraph format
// assumes when a nibble only names the code family, not its parameter.
const (
	defaultGolombB = 3
	defaultZetaK   = 3
)

func codeFromNibble(v uint8) (Code, error) {
	switch Code(v) {
	case CodeDelta, CodeGamma, CodeGolomb, CodeSkewedGolomb, CodeUnary, CodeZeta, CodeNibble:
		return Code(v), nil
	default:
		return 0, fmt.Errorf("%w: invalid code nibble %d", codes.ErrMalformedCode, v)
	}
}

// CodesSettings records which code each BVGraph-style field uses, decoded
// from a properties file's compressionflags bitfield (four bits per field).
type CodesSettings struct {
	Outdegree       Code
	ReferenceOffset Code
	BlockCount      Code
	Blocks          Code
	FirstResidual   Code
	Residual        Code
	Offsets         Code

	// IntervalCount, IntervalStart and IntervalLen are always gamma per
	// the BVGraph format; compressionflags has no nibble group for them.
}

const (
	outdegreeOffset = 0
	blocksOffset    = 4
	residualsOffset = 8
	referenceOffset = 12
	blockCountOffset = 16
	offsetsOffset   = 20
)

// DefaultCodesSettings returns the codes a BVGraph-style graph uses when its
// properties file omits compressionflags.
func DefaultCodesSettings() CodesSettings {
	return CodesSettings{
		Outdegree:       CodeGamma,
		ReferenceOffset: CodeUnary,
		BlockCount:      CodeGamma,
		Blocks:          CodeGamma,
		FirstResidual:   CodeZeta,
		Residual:        CodeZeta,
		Offsets:         CodeGamma,
	}
}

// ParseCodesSettings decodes a compressionflags integer into a
// CodesSettings, as described in spec.md §6: four-bit nibble groups at
// offsets 0 (outdegree), 4 (blocks), 8 (residuals), 12 (references), 16
// (block count), 20 (offsets).
func ParseCodesSettings(flags uint64) (CodesSettings, error) {
	nibble := func(offset uint) uint8 { return uint8((flags >> offset) & 0xf) }

	var s CodesSettings
	var err error
	if s.Outdegree, err = codeFromNibble(nibble(outdegreeOffset)); err != nil {
		return s, err
	}
	if s.ReferenceOffset, err = codeFromNibble(nibble(referenceOffset)); err != nil {
		return s, err
	}
	if s.BlockCount, err = codeFromNibble(nibble(blockCountOffset)); err != nil {
		return s, err
	}
	if s.Blocks, err = codeFromNibble(nibble(blocksOffset)); err != nil {
		return s, err
	}
	residual, err := codeFromNibble(nibble(residualsOffset))
	if err != nil {
		return s, err
	}
	s.FirstResidual = residual
	s.Residual = residual
	if s.Offsets, err = codeFromNibble(nibble(offsetsOffset)); err != nil {
		return s, err
	}
	return s, nil
}

// readCode reads a single value encoded with c, dispatching at runtime to
// the matching package codes routine. outdegree is only consulted for
// CodeSkewedGolomb, whose Golomb parameter is derived from the node's own
// degree rather than fixed in the properties file.
func readCode(r *bitio.Reader, c Code, outdegree uint64) (uint64, error) {
	switch c {
	case CodeUnary:
		return codes.ReadUnary(r)
	case CodeGamma:
		return codes.ReadGamma(r)
	case CodeDelta:
		return codes.ReadDelta(r)
	case CodeGolomb:
		return codes.ReadGolomb(r, defaultGolombB)
	case CodeSkewedGolomb:
		return codes.ReadSkewedGolomb(r, outdegree)
	case CodeZeta:
		return codes.ReadZeta(r, defaultZetaK)
	case CodeNibble:
		return codes.ReadNibble(r)
	default:
		return 0, fmt.Errorf("%w: unsupported code %d", codes.ErrMalformedCode, c)
	}
}
