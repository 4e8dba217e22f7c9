package starmap

import (
	"bufio"
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/stargo/blobstore"
	"github.com/hupe1980/stargo/model"
)

// maxNameLen bounds a single record's name to catch corrupt length prefixes
// before they turn into huge allocations.
const maxNameLen = 1 << 16

// Load reads a snapshot from r and returns the loaded store.
// All load failures are fatal to the run; the reader is consumed either way.
func Load(r io.Reader) (*Store, error) {
	var header FileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, truncated(err)
	}

	if header.Magic != MagicNumber {
		return nil, fmt.Errorf("%w: got 0x%08x", ErrInvalidMagic, header.Magic)
	}
	if header.Version != Version {
		return nil, fmt.Errorf("%w: got 0x%08x", ErrInvalidVersion, header.Version)
	}

	var records io.Reader
	switch header.Compression {
	case CompressionNone:
		records = r
	case CompressionZstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("create decompressor: %w", err)
		}
		defer dec.Close()
		records = dec
	case CompressionLZ4:
		records = lz4.NewReader(r)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, uint8(header.Compression))
	}

	cr := newChecksumReader(bufio.NewReaderSize(records, 256*1024))

	store := newStore(int(header.Count))
	for i := uint32(0); i < header.Count; i++ {
		sys, err := readRecord(cr)
		if err != nil {
			return nil, err
		}
		store.append(sys)
	}

	// The record stream must end exactly after Count records; bytes beyond
	// that are outside the checksum and would otherwise go unnoticed.
	var trailing [1]byte
	if n, err := io.ReadFull(cr, trailing[:]); n > 0 {
		return nil, fmt.Errorf("%w: trailing data after %d records", ErrCorrupt, header.Count)
	} else if !errors.Is(err, io.EOF) {
		return nil, err
	}

	if err := cr.Verify(header.Checksum); err != nil {
		return nil, err
	}

	return store, nil
}

func readRecord(r io.Reader) (model.System, error) {
	var fixed [17]byte // x, y, z, category, jump range
	if _, err := io.ReadFull(r, fixed[:]); err != nil {
		return model.System{}, truncated(err)
	}

	var sys model.System
	sys.Pos[0] = math.Float32frombits(binary.LittleEndian.Uint32(fixed[0:4]))
	sys.Pos[1] = math.Float32frombits(binary.LittleEndian.Uint32(fixed[4:8]))
	sys.Pos[2] = math.Float32frombits(binary.LittleEndian.Uint32(fixed[8:12]))
	sys.Category = model.Category(fixed[12])
	sys.JumpRange = math.Float32frombits(binary.LittleEndian.Uint32(fixed[13:17]))

	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return model.System{}, truncated(err)
	}
	nameLen := binary.LittleEndian.Uint32(lenBuf[:])
	if nameLen > maxNameLen {
		return model.System{}, fmt.Errorf("%w: name length %d", ErrCorrupt, nameLen)
	}

	name := make([]byte, nameLen)
	if _, err := io.ReadFull(r, name); err != nil {
		return model.System{}, truncated(err)
	}
	sys.Name = string(name)

	return sys, nil
}

func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %w", ErrTruncated, err)
	}
	return err
}

// LoadBytes reads a snapshot from an in-memory byte slice.
func LoadBytes(data []byte) (*Store, error) {
	return Load(bytes.NewReader(data))
}

// LoadFile reads a snapshot from the local file system.
func LoadFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Load(bufio.NewReaderSize(f, 256*1024))
}

// LoadBlob reads a snapshot from a blob store handle. Mappable blobs are
// read zero-copy.
func LoadBlob(ctx context.Context, blob blobstore.Blob) (*Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if m, ok := blob.(blobstore.Mappable); ok {
		data, err := m.Bytes()
		if err != nil {
			return nil, err
		}
		return LoadBytes(data)
	}

	return Load(io.NewSectionReader(blob, 0, blob.Size()))
}
