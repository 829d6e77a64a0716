package block

import (
	"errors"

	"github.com/cellarkv/sstable/internal/encoding"
)

// MagicNumber identifies the footer format at the tail of every table file.
const MagicNumber uint64 = 0xdb4775248b80fb57

// FooterEncodedLength is the fixed, on-disk size of a footer: two padded
// handles (40 bytes total) followed by the 8-byte magic number.
const FooterEncodedLength = 48

const handlesEncodedLength = 40

var (
	// ErrBadFooter is returned when a footer fails to decode structurally.
	ErrBadFooter = errors.New("block: bad footer")

	// ErrBadMagicNumber is returned when the trailing magic number doesn't match.
	ErrBadMagicNumber = errors.New("block: bad magic number")
)

// Footer is the fixed-length trailer written at the end of every table
// file. It locates the meta-index block and the index block.
type Footer struct {
	MetaindexHandle Handle
	IndexHandle     Handle
}

// EncodeTo writes the 48-byte footer encoding to dst.
func (f Footer) EncodeTo(dst []byte) []byte {
	start := len(dst)
	dst = f.MetaindexHandle.EncodeTo(dst)
	dst = f.IndexHandle.EncodeTo(dst)
	// Pad the two varint-encoded handles out to a fixed 40 bytes so the
	// footer has a known length regardless of how short the varints are.
	for len(dst)-start < handlesEncodedLength {
		dst = append(dst, 0)
	}
	dst = dst[:start+handlesEncodedLength]
	return encoding.AppendFixed64(dst, MagicNumber)
}

// EncodeToSlice encodes f into a freshly allocated FooterEncodedLength-byte slice.
func (f Footer) EncodeToSlice() []byte {
	return f.EncodeTo(make([]byte, 0, FooterEncodedLength))
}

// DecodeFooter decodes a footer from the last FooterEncodedLength bytes of
// data. data must be at least FooterEncodedLength bytes; extra leading
// bytes are ignored.
func DecodeFooter(data []byte) (Footer, error) {
	if len(data) < FooterEncodedLength {
		return Footer{}, ErrBadFooter
	}
	data = data[len(data)-FooterEncodedLength:]

	magic := encoding.DecodeFixed64(data[handlesEncodedLength:])
	if magic != MagicNumber {
		return Footer{}, ErrBadMagicNumber
	}

	rest := data[:handlesEncodedLength]
	metaindexHandle, rest, err := DecodeHandle(rest)
	if err != nil {
		return Footer{}, ErrBadFooter
	}
	indexHandle, _, err := DecodeHandle(rest)
	if err != nil {
		return Footer{}, ErrBadFooter
	}

	return Footer{MetaindexHandle: metaindexHandle, IndexHandle: indexHandle}, nil
}
