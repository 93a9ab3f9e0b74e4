package compactarray

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadWriteRoundTrip(t *testing.T) {
	for _, wordSize := range []int{0, 1, 3, 7, 13, 32, 63, 64} {
		n := uint64(50)
		a := New(wordSize, n)
		for i := uint64(0); i < n; i++ {
			v := i
			if wordSize < 64 {
				v &= (uint64(1) << uint(wordSize)) - 1
			}
			a.Write(i, v)
		}
		for i := uint64(0); i < n; i++ {
			want := i
			if wordSize < 64 {
				want &= (uint64(1) << uint(wordSize)) - 1
			}
			require.Equal(t, want, a.Read(i), "wordSize=%d i=%d", wordSize, i)
		}
	}
}

func TestConcurrentWriteMatchesScalarWrite(t *testing.T) {
	wordSize := 13
	n := uint64(2000)
	a := New(wordSize, n)

	var wg sync.WaitGroup
	for i := uint64(0); i < n; i++ {
		wg.Add(1)
		go func(i uint64) {
			defer wg.Done()
			a.ConcurrentWrite(i, i&a.WordMask())
		}(i)
	}
	wg.Wait()

	for i := uint64(0); i < n; i++ {
		require.Equal(t, i&a.WordMask(), a.Read(i))
	}
}

func TestFromWordsRoundTrip(t *testing.T) {
	wordSize := 17
	n := uint64(100)
	a := New(wordSize, n)
	for i := uint64(0); i < n; i++ {
		a.Write(i, i*7%(a.WordMask()+1))
	}

	b := FromWords(wordSize, n, a.Words())
	for i := uint64(0); i < n; i++ {
		require.Equal(t, a.Read(i), b.Read(i))
	}
}

func TestShrinkToFitPreservesContent(t *testing.T) {
	wordSize := 9
	n := uint64(10)
	a := New(wordSize, n)
	for i := uint64(0); i < n; i++ {
		a.Write(i, i)
	}
	a.words = append(a.words, 0, 0, 0, 0)

	a.ShrinkToFit()
	require.Equal(t, VecSize(wordSize, n), uint64(len(a.words)))
	for i := uint64(0); i < n; i++ {
		require.Equal(t, i, a.Read(i))
	}
}

func TestWordSizeZeroIsAlwaysZero(t *testing.T) {
	a := New(0, 5)
	a.Write(2, 123)
	require.Equal(t, uint64(0), a.Read(2))
}
