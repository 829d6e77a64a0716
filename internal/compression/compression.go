// Package compression implements the pluggable per-block compression codecs
// a table can use. Every data, index, and filter block carries a one-byte
// compression type alongside its payload, so the codec is chosen freely per
// block and decoding never depends on global state.
package compression

import (
	"bytes"
	"compress/flate"
	"compress/zlib"
	"fmt"
	"io"
	"sync"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// sharedZstdEncoder and sharedZstdDecoder are created once and reused across
// calls. Both are safe for concurrent use via EncodeAll/DecodeAll; creating
// a fresh *zstd.Encoder or *zstd.Decoder per call would leak the encoder's
// background goroutines since neither is ever Closed.
var (
	zstdOnce          sync.Once
	sharedZstdEncoder *zstd.Encoder
	sharedZstdDecoder *zstd.Decoder
	zstdInitErr       error
)

func zstdCodecs() (*zstd.Encoder, *zstd.Decoder, error) {
	zstdOnce.Do(func() {
		sharedZstdEncoder, zstdInitErr = zstd.NewWriter(nil)
		if zstdInitErr != nil {
			return
		}
		sharedZstdDecoder, zstdInitErr = zstd.NewReader(nil)
	})
	return sharedZstdEncoder, sharedZstdDecoder, zstdInitErr
}

// Type identifies the compression algorithm applied to a block. The values
// of None and Snappy are fixed by the on-disk format; Zlib and Zstd are
// additional codecs a table may opt into.
type Type uint8

const (
	// None stores the block payload verbatim.
	None Type = 0x0

	// Snappy compresses with Google's Snappy algorithm. This is the default.
	Snappy Type = 0x1

	// Zlib compresses with raw DEFLATE (no zlib header).
	Zlib Type = 0x2

	// LZ4 compresses with the LZ4 raw block format.
	LZ4 Type = 0x3

	// Zstd compresses with Zstandard.
	Zstd Type = 0x4
)

// String returns the human-readable name of the compression type.
func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case Snappy:
		return "snappy"
	case Zlib:
		return "zlib"
	case LZ4:
		return "lz4"
	case Zstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", t)
	}
}

// IsSupported reports whether t is a recognized compression type.
func (t Type) IsSupported() bool {
	switch t {
	case None, Snappy, Zlib, LZ4, Zstd:
		return true
	default:
		return false
	}
}

// Compress compresses data with the given codec.
func Compress(t Type, data []byte) ([]byte, error) {
	switch t {
	case None:
		return data, nil

	case Snappy:
		return snappy.Encode(nil, data), nil

	case Zlib:
		var buf bytes.Buffer
		w, err := flate.NewWriter(&buf, flate.BestSpeed)
		if err != nil {
			return nil, fmt.Errorf("compression: raw deflate writer: %w", err)
		}
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("compression: raw deflate write: %w", err)
		}
		if err := w.Close(); err != nil {
			return nil, fmt.Errorf("compression: raw deflate close: %w", err)
		}
		return buf.Bytes(), nil

	case LZ4:
		dst := make([]byte, lz4.CompressBlockBound(len(data)))
		var ht [1 << 16]int
		n, err := lz4.CompressBlock(data, dst, ht[:])
		if err != nil {
			return nil, fmt.Errorf("compression: lz4 compress block: %w", err)
		}
		if n == 0 {
			return data, nil
		}
		return dst[:n], nil

	case Zstd:
		encoder, _, err := zstdCodecs()
		if err != nil {
			return nil, fmt.Errorf("compression: zstd encoder: %w", err)
		}
		return encoder.EncodeAll(data, nil), nil

	default:
		return nil, fmt.Errorf("compression: unsupported type: %s", t)
	}
}

// Decompress decompresses data with the given codec. For LZ4, the caller
// should prefer DecompressWithSize when the uncompressed size is known, since
// the raw block format carries no size header.
func Decompress(t Type, data []byte) ([]byte, error) {
	return DecompressWithSize(t, data, 0)
}

// DecompressWithSize decompresses data, sizing the output buffer to
// expectedSize when it is known and nonzero.
func DecompressWithSize(t Type, data []byte, expectedSize int) ([]byte, error) {
	switch t {
	case None:
		return data, nil

	case Snappy:
		return snappy.Decode(nil, data)

	case Zlib:
		r := flate.NewReader(bytes.NewReader(data))
		defer func() { _ = r.Close() }()
		out, err := io.ReadAll(r)
		if err == nil {
			return out, nil
		}
		zr, zerr := zlib.NewReader(bytes.NewReader(data))
		if zerr != nil {
			return nil, fmt.Errorf("compression: zlib decompress: %w", err)
		}
		defer func() { _ = zr.Close() }()
		return io.ReadAll(zr)

	case LZ4:
		return decompressLZ4(data, expectedSize)

	case Zstd:
		_, decoder, err := zstdCodecs()
		if err != nil {
			return nil, fmt.Errorf("compression: zstd decoder: %w", err)
		}
		return decoder.DecodeAll(data, nil)

	default:
		return nil, fmt.Errorf("compression: unsupported type: %s", t)
	}
}

func decompressLZ4(data []byte, expectedSize int) ([]byte, error) {
	if expectedSize > 0 {
		dst := make([]byte, expectedSize)
		n, err := lz4.UncompressBlock(data, dst)
		if err != nil {
			return nil, fmt.Errorf("compression: lz4 uncompress block: %w", err)
		}
		return dst[:n], nil
	}

	bufSize := max(len(data)*4, 256)
	for range 10 {
		dst := make([]byte, bufSize)
		n, err := lz4.UncompressBlock(data, dst)
		if err == nil {
			return dst[:n], nil
		}
		bufSize *= 2
	}
	return nil, fmt.Errorf("compression: lz4 uncompress block: buffer too small after retries")
}

// ShouldCompress reports whether compressedSize is worth keeping over
// storing rawSize uncompressed: the compressed form must beat 87.5% of the
// raw size, matching the classic SSTable compression heuristic.
func ShouldCompress(compressedSize, rawSize int) bool {
	return compressedSize*8 < rawSize*7
}
