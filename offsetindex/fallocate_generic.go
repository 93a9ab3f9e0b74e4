//go:build !linux

package offsetindex

import (
	"fmt"
	"io"
	"os"
)

func fallocate(f *os.File, offset int64, size int64) error {
	return fake_fallocate(f, offset, size)
}

// fake_fallocate pre-sizes a file region by writing zeroes in fixed-size
// chunks, for platforms without a native fallocate syscall.
func fake_fallocate(f *os.File, offset int64, size int64) error {
	const blockSize = 4096
	var zero [blockSize]byte

	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("failure while seeking for generic fallocate: %w", err)
	}

	for size > 0 {
		step := size
		if step > blockSize {
			step = blockSize
		}

		if _, err := f.Write(zero[:step]); err != nil {
			return fmt.Errorf("failure while generic fallocate: %w", err)
		}

		offset += step
		size -= step
	}

	return nil
}
