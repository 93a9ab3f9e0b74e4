package sparseindex

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func buildViaPush(bits []bool, quantumLog2 uint) *Index {
	b := NewBuilder(uint64(len(bits)), quantumLog2)
	for _, bit := range bits {
		b.Push(bit)
	}
	return b.Build()
}

func toWords(bits []bool) []uint64 {
	words := make([]uint64, len(bits)/64+2)
	for i, bit := range bits {
		if bit {
			words[i/64] |= uint64(1) << uint(i%64)
		}
	}
	return words
}

func TestFromBitVectorParallelMatchesSequentialBuilder(t *testing.T) {
	var bits []bool
	for i := 0; i < 500; i++ {
		bits = append(bits, i%3 == 0 || i%7 == 0)
	}

	seq := buildViaPush(bits, 4)
	par := FromBitVectorParallel(toWords(bits), uint64(len(bits)), 4)

	require.Equal(t, seq.CountOnes(), par.CountOnes())
	require.Equal(t, seq.CountZeros(), par.CountZeros())

	for i := uint64(0); i < seq.CountOnes(); i++ {
		wantPos, err := seq.Select1(i)
		require.NoError(t, err)
		gotPos, err := par.Select1(i)
		require.NoError(t, err)
		require.Equal(t, wantPos, gotPos)
	}
	for i := uint64(0); i < seq.CountZeros(); i++ {
		wantPos, err := seq.Select0(i)
		require.NoError(t, err)
		gotPos, err := par.Select0(i)
		require.NoError(t, err)
		require.Equal(t, wantPos, gotPos)
	}
	for pos := uint64(0); pos < uint64(len(bits)); pos++ {
		require.Equal(t, seq.Rank1(pos), par.Rank1(pos))
	}
}

func TestFromBitVectorParallelUnalignedTail(t *testing.T) {
	bits := []bool{true, false, true, true, false, true, true}
	seq := buildViaPush(bits, 2)
	par := FromBitVectorParallel(toWords(bits), uint64(len(bits)), 2)

	require.Equal(t, seq.CountOnes(), par.CountOnes())
	require.Equal(t, seq.CountZeros(), par.CountZeros())
	for i := uint64(0); i < seq.CountOnes(); i++ {
		want, _ := seq.Select1(i)
		got, _ := par.Select1(i)
		require.Equal(t, want, got)
	}
}
