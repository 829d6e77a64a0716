package table

import "errors"

// Error kinds returned by the builder and reader. Use errors.Is to test
// for a kind; errors.As is not needed since these are sentinel values.
var (
	// ErrInvalidArgument covers misuse of the API: out-of-order Add, a
	// duplicate key, or a call made after Finish/Close.
	ErrInvalidArgument = errors.New("table: invalid argument")

	// ErrCorruption covers malformed on-disk data: a bad footer magic, a
	// failed block checksum, a truncated block, a malformed varint, a
	// shared-prefix length exceeding the previous key's length, or filter
	// offsets pointing outside the filter block.
	ErrCorruption = errors.New("table: corrupted data")

	// ErrUnsupported covers a recognized-but-unimplemented feature, such
	// as an unknown compression code.
	ErrUnsupported = errors.New("table: unsupported")

	// ErrNotFound is returned by Get when key is absent from the table.
	ErrNotFound = errors.New("table: key not found")
)
