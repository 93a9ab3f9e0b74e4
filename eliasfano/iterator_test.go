package eliasfano

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIterVisitsEveryElementInOrder(t *testing.T) {
	values := []uint64{0, 1, 4, 4, 10, 100, 1000, 1000, 12345}
	ef := buildFromSorted(t, values)

	it := ef.Iter()
	var got []uint64
	for {
		v, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, v)
	}
	require.Equal(t, values, got)
}

func TestIterEmptySequence(t *testing.T) {
	ef := buildFromSorted(t, nil)
	it := ef.Iter()
	_, ok := it.Next()
	require.False(t, ok)
}

func TestIterInRange(t *testing.T) {
	values := []uint64{0, 1, 4, 4, 10, 100, 1000, 1000, 12345}
	ef := buildFromSorted(t, values)

	it := ef.IterInRange(4, 1000)
	var got []uint64
	for {
		v, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, v)
	}
	require.Equal(t, []uint64{4, 4, 10, 100}, got)
}

func TestIterInRangeEmptyResult(t *testing.T) {
	values := []uint64{10, 20, 30}
	ef := buildFromSorted(t, values)

	it := ef.IterInRange(11, 20)
	_, ok := it.Next()
	require.False(t, ok)
}

func TestIterInRangeFullSpan(t *testing.T) {
	values := []uint64{5, 6, 7, 8}
	ef := buildFromSorted(t, values)

	it := ef.IterInRange(0, 100)
	var got []uint64
	for {
		v, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, v)
	}
	require.Equal(t, values, got)
}
