package eliasfano

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func buildFromSorted(t *testing.T, values []uint64) *EliasFano {
	t.Helper()
	ef, err := FromSorted(values)
	require.NoError(t, err)
	return ef
}

func TestSelectAndRank(t *testing.T) {
	values := []uint64{5, 8, 8, 15, 32}
	ef := buildFromSorted(t, values)

	require.EqualValues(t, len(values), ef.Len())

	for i, want := range values {
		got, err := ef.Select(uint64(i))
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	rank, ok := ef.Rank(15)
	require.True(t, ok)
	require.EqualValues(t, 3, rank)

	rank, ok = ef.Rank(8)
	require.True(t, ok)
	require.EqualValues(t, 1, rank)

	_, ok = ef.Rank(9)
	require.False(t, ok)

	require.EqualValues(t, 4, ef.UncheckedRank(17))
	require.EqualValues(t, 3, ef.UncheckedRank(15))
}

func TestContains(t *testing.T) {
	values := []uint64{5, 8, 8, 15, 32}
	ef := buildFromSorted(t, values)

	for _, v := range values {
		require.True(t, ef.Contains(v))
	}
	for _, v := range []uint64{0, 6, 9, 16, 33} {
		require.False(t, ef.Contains(v))
	}
}

func TestSelectOutOfRange(t *testing.T) {
	ef := buildFromSorted(t, []uint64{1, 2, 3})
	_, err := ef.Select(3)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestPushUnsortedFails(t *testing.T) {
	b, err := NewBuilder(100, 3)
	require.NoError(t, err)
	require.NoError(t, b.Push(10))
	require.NoError(t, b.Push(10))
	err = b.Push(5)
	require.ErrorIs(t, err, ErrUnsorted)
}

func TestPushBeyondCapacityFails(t *testing.T) {
	b, err := NewBuilder(100, 2)
	require.NoError(t, err)
	require.NoError(t, b.Push(1))
	require.NoError(t, b.Push(2))
	err = b.Push(3)
	require.ErrorIs(t, err, ErrFull)
}

func TestEmptySequence(t *testing.T) {
	ef := buildFromSorted(t, nil)
	require.EqualValues(t, 0, ef.Len())
	require.True(t, ef.IsEmpty())
	_, ok := ef.Rank(0)
	require.False(t, ok)
	require.False(t, ef.Contains(0))
}

func TestConcurrentBuilderMatchesSequential(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	n := 2000
	values := make([]uint64, n)
	var v uint64
	for i := range values {
		v += uint64(rng.Intn(5))
		values[i] = v
	}
	universe := values[n-1]

	seq := buildFromSorted(t, values)

	cb, err := NewConcurrentBuilder(universe, uint64(n))
	require.NoError(t, err)
	done := make(chan struct{})
	workers := 8
	chunk := n / workers
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if w == workers-1 {
			end = n
		}
		go func(start, end int) {
			for i := start; i < end; i++ {
				cb.Set(uint64(i), values[i])
			}
			done <- struct{}{}
		}(start, end)
	}
	for w := 0; w < workers; w++ {
		<-done
	}
	conc, err := cb.Build()
	require.NoError(t, err)

	require.Equal(t, seq.Len(), conc.Len())
	for i := 0; i < n; i++ {
		wantVal, err := seq.Select(uint64(i))
		require.NoError(t, err)
		gotVal, err := conc.Select(uint64(i))
		require.NoError(t, err)
		require.Equal(t, wantVal, gotVal, "select %d", i)
	}
}

func TestSerializationRoundTrip(t *testing.T) {
	values := []uint64{5, 8, 8, 15, 32, 32, 32, 100}
	ef := buildFromSorted(t, values)

	var buf bytes.Buffer
	_, err := ef.WriteTo(&buf)
	require.NoError(t, err)

	back, err := ReadFrom(&buf)
	require.NoError(t, err)

	require.Equal(t, ef.Len(), back.Len())
	require.Equal(t, ef.Universe(), back.Universe())
	for i, want := range values {
		got, err := back.Select(uint64(i))
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	for _, v := range values {
		require.True(t, back.Contains(v))
	}
}

func TestSerializationRoundTripEmpty(t *testing.T) {
	ef := buildFromSorted(t, nil)

	var buf bytes.Buffer
	_, err := ef.WriteTo(&buf)
	require.NoError(t, err)

	back, err := ReadFrom(&buf)
	require.NoError(t, err)
	require.EqualValues(t, 0, back.Len())
}
