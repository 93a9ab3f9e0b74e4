//go:build linux

package offsetindex

import (
	"fmt"
	"os"
	"syscall"
)

func fallocate(f *os.File, offset int64, size int64) error {
	err := syscall.Fallocate(int(f.Fd()), 0, offset, size)
	if err != nil {
		return fmt.Errorf("failure while linux fallocate: %w", err)
	}
	return nil
}

// fake_fallocate pre-sizes a file region by writing zeroes, for file
// systems that reject fallocate with EOPNOTSUPP.
func fake_fallocate(f *os.File, offset int64, size int64) error {
	if _, err := f.WriteAt(make([]byte, size), offset); err != nil {
		return fmt.Errorf("failure while generic fallocate: %w", err)
	}
	return nil
}
