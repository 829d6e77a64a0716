package sstable

import "github.com/cellarkv/sstable/internal/table"

// Error kinds returned by Writer and Reader. Test with errors.Is.
var (
	// ErrInvalidArgument covers misuse of the API: out-of-order Add, a
	// duplicate key, or a call made after Finish/Close.
	ErrInvalidArgument = table.ErrInvalidArgument

	// ErrCorruption covers malformed on-disk data: a bad footer magic, a
	// failed block checksum, a truncated block, a malformed varint, or
	// filter offsets pointing outside the filter block.
	ErrCorruption = table.ErrCorruption

	// ErrUnsupported covers a recognized-but-unimplemented feature, such
	// as an unknown compression code.
	ErrUnsupported = table.ErrUnsupported

	// ErrNotFound is returned by Reader.Get when the key is absent.
	ErrNotFound = table.ErrNotFound
)
