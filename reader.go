package sstable

import "github.com/cellarkv/sstable/internal/table"

// Reader opens a finished table and serves point lookups and ordered
// iteration over it. A Reader is safe for concurrent use by multiple
// goroutines; its Iterators are not.
type Reader struct {
	r *table.Reader
}

// Open parses the footer, index block, and (if configured) filter block of
// a finished table read from source. opts may be nil to use NewOptions()'s
// defaults, but must match the Options the table was built with: the
// comparator is not recorded in the file, and a mismatched filter policy
// name simply disables filtering rather than failing.
//
// A malformed footer or index block fails Open outright.
func Open(source Source, opts *Options) (*Reader, error) {
	r, err := table.Open(source, opts.toInternal())
	if err != nil {
		return nil, err
	}
	return &Reader{r: r}, nil
}

// Get looks up key and returns its value. It returns ErrNotFound if the
// filter definitively rules the key out, if the key is absent from its
// candidate data block, or if that data block fails its checksum or won't
// decompress — in the last case the event is logged and counted in
// CorruptBlocksSkipped rather than surfaced as an error. A malformed footer
// or index block is fatal and returned as ErrCorruption, since there is no
// fallback path without them.
func (r *Reader) Get(key []byte) ([]byte, error) {
	return r.r.Get(key)
}

// NewIterator returns an Iterator over all entries in the table, initially
// positioned before the first entry.
func (r *Reader) NewIterator() *Iterator {
	return &Iterator{it: r.r.NewIterator()}
}

// CorruptBlocksSkipped returns the number of data blocks Get and iteration
// have skipped over due to a failed checksum since the Reader was opened.
func (r *Reader) CorruptBlocksSkipped() uint64 {
	return r.r.CorruptBlocksSkipped()
}

// Close releases the Reader's underlying source.
func (r *Reader) Close() error {
	return r.r.Close()
}
