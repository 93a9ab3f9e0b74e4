package mmapbuf

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, words []uint64) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "buf.bin")
	buf := make([]byte, 8*len(words))
	for i, w := range words {
		binary.BigEndian.PutUint64(buf[i*8:], w)
	}
	require.NoError(t, os.WriteFile(path, buf, 0o644))
	return path
}

func TestOpenAndReadWord(t *testing.T) {
	path := writeTestFile(t, []uint64{1, 2, 3, 0xdeadbeef})
	b, err := Open(path)
	require.NoError(t, err)
	defer b.Close()

	require.EqualValues(t, 32, b.Len())

	v, err := b.ReadWord(8)
	require.NoError(t, err)
	require.EqualValues(t, 2, v)

	v, err = b.ReadWord(24)
	require.NoError(t, err)
	require.EqualValues(t, 0xdeadbeef, v)
}

func TestWords(t *testing.T) {
	want := []uint64{10, 20, 30}
	path := writeTestFile(t, want)
	b, err := Open(path)
	require.NoError(t, err)
	defer b.Close()

	got, err := b.Words()
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestOpenEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.bin")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := Open(path)
	require.ErrorIs(t, err, ErrEmptyFile)
}
