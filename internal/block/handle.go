// Package block implements the on-disk block format shared by data blocks,
// the index block, and the meta-index block: a restart-indexed, prefix
// -compressed sequence of entries with a per-block checksum trailer.
package block

import (
	"errors"

	"github.com/cellarkv/sstable/internal/encoding"
)

var (
	// ErrBadBlockHandle is returned when a block handle fails to decode.
	ErrBadBlockHandle = errors.New("block: bad block handle")

	// ErrBadBlock is returned when block contents are malformed or corrupt.
	ErrBadBlock = errors.New("block: corrupted block")
)

// Handle locates the extent of a file holding a data block or meta block:
// an offset and a payload size. Size excludes the block trailer.
type Handle struct {
	Offset uint64
	Size   uint64
}

// NullHandle is the zero-value handle, representing "no block".
var NullHandle = Handle{Offset: 0, Size: 0}

// MaxEncodedLength is the maximum encoding length of a Handle: two varint64s.
const MaxEncodedLength = 2 * encoding.MaxVarint64Length

// IsNull reports whether h is the zero handle.
func (h Handle) IsNull() bool {
	return h.Offset == 0 && h.Size == 0
}

// EncodeTo appends the varint-pair encoding of h to dst.
func (h Handle) EncodeTo(dst []byte) []byte {
	dst = encoding.AppendVarint64(dst, h.Offset)
	dst = encoding.AppendVarint64(dst, h.Size)
	return dst
}

// EncodeToSlice encodes h into a freshly allocated slice.
func (h Handle) EncodeToSlice() []byte {
	return h.EncodeTo(nil)
}

// EncodedLength returns the number of bytes h.EncodeTo would write.
func (h Handle) EncodedLength() int {
	return encoding.VarintLength(h.Offset) + encoding.VarintLength(h.Size)
}

// DecodeHandle decodes a Handle from the front of data and returns the
// unconsumed remainder.
func DecodeHandle(data []byte) (Handle, []byte, error) {
	cursor := encoding.NewSlice(data)

	offset, ok := cursor.GetVarint64()
	if !ok {
		return Handle{}, nil, ErrBadBlockHandle
	}
	size, ok := cursor.GetVarint64()
	if !ok {
		return Handle{}, nil, ErrBadBlockHandle
	}

	return Handle{Offset: offset, Size: size}, cursor.Data(), nil
}

// DecodeHandleFrom decodes a Handle from data, discarding the remainder.
func DecodeHandleFrom(data []byte) (Handle, error) {
	h, _, err := DecodeHandle(data)
	return h, err
}
