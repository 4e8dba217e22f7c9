package starmap

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/stargo/model"
)

// SaveOptions configures snapshot encoding.
type SaveOptions struct {
	// Compression selects the codec for the record stream.
	Compression Compression
}

// DefaultSaveOptions is used when no options are supplied.
var DefaultSaveOptions = SaveOptions{
	Compression: CompressionZstd,
}

// Save encodes the given systems as a snapshot. The record order defines the
// SystemIDs a later Load will assign.
func Save(w io.Writer, systems []model.System, optFns ...func(o *SaveOptions)) error {
	opts := DefaultSaveOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	// The header carries count and checksum of the raw record stream, so the
	// stream is staged in memory before the header can be written.
	var raw bytes.Buffer
	cw := newChecksumWriter(&raw)
	for i := range systems {
		if err := writeRecord(cw, &systems[i]); err != nil {
			return err
		}
	}

	header := FileHeader{
		Magic:       MagicNumber,
		Version:     Version,
		Compression: opts.Compression,
		Count:       uint32(len(systems)),
		Checksum:    cw.Sum(),
	}
	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return err
	}

	switch opts.Compression {
	case CompressionNone:
		_, err := w.Write(raw.Bytes())
		return err
	case CompressionZstd:
		enc, err := zstd.NewWriter(w)
		if err != nil {
			return fmt.Errorf("create compressor: %w", err)
		}
		if _, err := enc.Write(raw.Bytes()); err != nil {
			_ = enc.Close()
			return err
		}
		return enc.Close()
	case CompressionLZ4:
		enc := lz4.NewWriter(w)
		if _, err := enc.Write(raw.Bytes()); err != nil {
			_ = enc.Close()
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %d", ErrUnknownCompression, uint8(opts.Compression))
	}
}

func writeRecord(w io.Writer, sys *model.System) error {
	buf := make([]byte, 21+len(sys.Name))
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(sys.Pos[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(sys.Pos[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(sys.Pos[2]))
	buf[12] = byte(sys.Category)
	binary.LittleEndian.PutUint32(buf[13:17], math.Float32bits(sys.JumpRange))
	binary.LittleEndian.PutUint32(buf[17:21], uint32(len(sys.Name)))
	copy(buf[21:], sys.Name)

	_, err := w.Write(buf)
	return err
}

// SaveBytes encodes the systems into a byte slice.
func SaveBytes(systems []model.System, optFns ...func(o *SaveOptions)) ([]byte, error) {
	var buf bytes.Buffer
	if err := Save(&buf, systems, optFns...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SaveFile writes a snapshot atomically: the bytes go to a temp file in the
// target directory which is then renamed over the destination.
func SaveFile(path string, systems []model.System, optFns ...func(o *SaveOptions)) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	tmp, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		if tmpName != "" {
			_ = os.Remove(tmpName)
		}
	}()

	_ = tmp.Chmod(0644)

	buf := bufio.NewWriterSize(tmp, 256*1024)
	if err := Save(buf, systems, optFns...); err != nil {
		return err
	}
	if err := buf.Flush(); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		return err
	}

	// Best-effort: fsync the directory so the rename is durable on POSIX.
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}

	tmpName = ""
	return nil
}
