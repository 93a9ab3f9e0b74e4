package sparseindex

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func buildFromBools(t *testing.T, bools []bool, q uint) *Index {
	t.Helper()
	b := NewBuilder(uint64(len(bools)), q)
	for _, v := range bools {
		b.Push(v)
	}
	return b.Build()
}

func TestIndexBasics(t *testing.T) {
	bools := []bool{true, false, true, true, false, false, true, false}
	idx := buildFromBools(t, bools, 1)

	require.EqualValues(t, len(bools), idx.Len())
	require.EqualValues(t, 4, idx.CountOnes())
	require.EqualValues(t, 4, idx.CountZeros())

	for i, want := range bools {
		require.Equal(t, want, idx.Get(uint64(i)), "bit %d", i)
	}
}

func TestSelect1AndSelect0(t *testing.T) {
	bools := []bool{true, false, true, true, false, false, true, false}
	idx := buildFromBools(t, bools, 1)

	onePositions := []uint64{0, 2, 3, 6}
	for k, want := range onePositions {
		got, err := idx.Select1(uint64(k))
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := idx.Select1(idx.CountOnes())
	require.ErrorIs(t, err, ErrOutOfRange)

	zeroPositions := []uint64{1, 4, 5, 7}
	for k, want := range zeroPositions {
		got, err := idx.Select0(uint64(k))
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err = idx.Select0(idx.CountZeros())
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestRank1AndRank0(t *testing.T) {
	bools := []bool{true, false, true, true, false, false, true, false}
	idx := buildFromBools(t, bools, 1)

	var onesSoFar, zerosSoFar uint64
	for i := 0; i <= len(bools); i++ {
		require.Equal(t, onesSoFar, idx.Rank1(uint64(i)), "rank1 at %d", i)
		require.Equal(t, zerosSoFar, idx.Rank0(uint64(i)), "rank0 at %d", i)
		if i < len(bools) {
			if bools[i] {
				onesSoFar++
			} else {
				zerosSoFar++
			}
		}
	}
	require.Equal(t, idx.CountOnes(), idx.Rank1(idx.Len()+10))
	require.Equal(t, idx.CountZeros(), idx.Rank0(idx.Len()+10))
}

func TestIterator(t *testing.T) {
	bools := []bool{true, false, true, true, false, false, true, false}
	idx := buildFromBools(t, bools, 2)

	var got []uint64
	it := idx.Iter()
	for {
		pos, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, pos)
	}
	require.Equal(t, []uint64{0, 2, 3, 6}, got)
}

func TestRangeIterator(t *testing.T) {
	bools := []bool{true, false, true, true, false, false, true, false}
	idx := buildFromBools(t, bools, 2)

	var got []uint64
	it := idx.IterRange(2, 7)
	for {
		pos, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, pos)
	}
	require.Equal(t, []uint64{2, 3, 6}, got)
}

func TestDoubleEndedIterator(t *testing.T) {
	bools := []bool{true, false, true, true, false, false, true, false}
	idx := buildFromBools(t, bools, 2)
	want := []uint64{0, 2, 3, 6}

	t.Run("front only", func(t *testing.T) {
		it := idx.IterDoubleEnded()
		var got []uint64
		for {
			pos, ok := it.Next()
			if !ok {
				break
			}
			got = append(got, pos)
		}
		require.Equal(t, want, got)
	})

	t.Run("back only", func(t *testing.T) {
		it := idx.IterDoubleEnded()
		var got []uint64
		for {
			pos, ok := it.NextBack()
			if !ok {
				break
			}
			got = append(got, pos)
		}
		reversed := make([]uint64, len(want))
		for i, v := range want {
			reversed[len(want)-1-i] = v
		}
		require.Equal(t, reversed, got)
	})

	t.Run("alternating meets in the middle", func(t *testing.T) {
		it := idx.IterDoubleEnded()
		var got []uint64
		fromFront := true
		for {
			var pos uint64
			var ok bool
			if fromFront {
				pos, ok = it.Next()
			} else {
				pos, ok = it.NextBack()
			}
			if !ok {
				break
			}
			got = append(got, pos)
			fromFront = !fromFront
		}
		require.ElementsMatch(t, want, got)
		require.Len(t, got, len(want))
	})
}

func TestConcurrentBuilderMatchesBuilder(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	const n = 4096
	bools := make([]bool, n)
	var nOnes uint64
	for i := range bools {
		bools[i] = rng.Intn(3) == 0
		if bools[i] {
			nOnes++
		}
	}

	seq := buildFromBools(t, bools, 6)

	cb := NewConcurrentBuilder(n, 6, nOnes)
	done := make(chan struct{})
	chunks := 8
	chunkSize := n / chunks
	for c := 0; c < chunks; c++ {
		start := c * chunkSize
		end := start + chunkSize
		if c == chunks-1 {
			end = n
		}
		go func(start, end int) {
			for i := start; i < end; i++ {
				if bools[i] {
					cb.Set(uint64(i))
				}
			}
			done <- struct{}{}
		}(start, end)
	}
	for c := 0; c < chunks; c++ {
		<-done
	}

	conc, err := cb.Build()
	require.NoError(t, err)

	require.Equal(t, seq.CountOnes(), conc.CountOnes())
	require.Equal(t, seq.CountZeros(), conc.CountZeros())
	for i := uint64(0); i < n; i++ {
		require.Equal(t, seq.Get(i), conc.Get(i), "bit %d", i)
	}
	for k := uint64(0); k < seq.CountOnes(); k++ {
		wantPos, err := seq.Select1(k)
		require.NoError(t, err)
		gotPos, err := conc.Select1(k)
		require.NoError(t, err)
		require.Equal(t, wantPos, gotPos, "select1 %d", k)
	}
}

func TestConcurrentBuilderCountMismatch(t *testing.T) {
	cb := NewConcurrentBuilder(16, 1, 5)
	cb.Set(0)
	cb.Set(1)
	_, err := cb.Build()
	require.ErrorIs(t, err, ErrCountMismatch)
}
