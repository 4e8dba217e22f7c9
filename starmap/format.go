package starmap

import "errors"

const (
	// MagicNumber identifies stargo snapshot files (ASCII: "STR1")
	MagicNumber = 0x53545231
	// Version is the current snapshot format version (v1.0.0)
	Version = 0x00010000
)

var (
	ErrInvalidMagic       = errors.New("invalid magic number")
	ErrInvalidVersion     = errors.New("unsupported version")
	ErrUnknownCompression = errors.New("unknown compression codec")
	ErrTruncated          = errors.New("truncated snapshot")
	ErrCorrupt            = errors.New("corrupt snapshot")
)

// Compression selects the codec applied to the snapshot record stream.
type Compression uint8

const (
	CompressionNone Compression = 0
	CompressionZstd Compression = 1
	CompressionLZ4  Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return "unknown"
	}
}

// FileHeader is the 24-byte header at the start of every snapshot.
//
// The record stream that follows is little-endian, per system:
// x, y, z float32, category uint8, jump range float32, name length uint32,
// name bytes. Checksum is CRC32 (IEEE) of the decompressed record stream.
type FileHeader struct {
	Magic       uint32
	Version     uint32
	Compression Compression
	Padding1    [3]byte
	Count       uint32
	Checksum    uint32
	Reserved    [4]byte
}
