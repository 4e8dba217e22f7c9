//go:build windows

package mmap

import (
	"io"
	"os"
)

// Windows has no unix.Mmap; fall back to reading the file into memory.
// Snapshot files are read once, so the copy is acceptable.
func mapFile(f *os.File, size int) ([]byte, error) {
	data := make([]byte, size)
	if _, err := io.ReadFull(io.NewSectionReader(f, 0, int64(size)), data); err != nil {
		return nil, err
	}
	return data, nil
}

func unmapFile(_ []byte) error {
	return nil
}
