package sstable

import "github.com/cellarkv/sstable/internal/table"

// Writer streams (key, value) pairs, in strictly increasing key order,
// into a finished table on sink. Keys must never repeat and must never go
// backward; Add rejects both with ErrInvalidArgument. A Writer is
// single-use: once Finish returns, the Writer must be discarded.
type Writer struct {
	b *table.Builder
}

// NewWriter creates a Writer appending to sink. opts may be nil to use
// NewOptions()'s defaults.
func NewWriter(sink Sink, opts *Options) *Writer {
	return &Writer{b: table.NewBuilder(sink, opts.toInternal())}
}

// Add appends a key-value pair. key must compare strictly greater than
// every previously added key under the Writer's comparator.
func (w *Writer) Add(key, value []byte) error {
	return w.b.Add(key, value)
}

// NumEntries returns the number of entries added so far.
func (w *Writer) NumEntries() uint64 {
	return w.b.NumEntries()
}

// FileSize returns the number of bytes written to the sink so far. It does
// not include the pending data block or anything Finish will still add.
func (w *Writer) FileSize() uint64 {
	return w.b.FileSize()
}

// Finish flushes any pending data, writes the filter, meta-index, index
// blocks and the footer, and renders the Writer unusable.
func (w *Writer) Finish() error {
	return w.b.Finish()
}

// Abandon discards the Writer without writing a footer, leaving whatever
// has been written to the sink as an invalid, partial file.
func (w *Writer) Abandon() {
	w.b.Abandon()
}
