package sstable

import "github.com/cellarkv/sstable/internal/table"

// Iterator walks a table's entries in comparator order. It is not safe for
// concurrent use; each goroutine scanning a table should create its own
// via Reader.NewIterator.
//
// A data block whose checksum fails to verify is skipped rather than
// treated as fatal: iteration continues with the next data block, and
// Reader.CorruptBlocksSkipped counts the skip.
type Iterator struct {
	it *table.Iterator
}

// Valid reports whether the iterator is positioned at a usable entry.
func (it *Iterator) Valid() bool { return it.it.Valid() }

// Key returns the current entry's key. Only meaningful when Valid.
func (it *Iterator) Key() []byte { return it.it.Key() }

// Value returns the current entry's value. Only meaningful when Valid.
func (it *Iterator) Value() []byte { return it.it.Value() }

// Error returns the fatal error encountered during iteration, if any.
func (it *Iterator) Error() error { return it.it.Error() }

// SeekToFirst positions the iterator at the table's first entry.
func (it *Iterator) SeekToFirst() { it.it.SeekToFirst() }

// SeekToLast positions the iterator at the table's last entry.
func (it *Iterator) SeekToLast() { it.it.SeekToLast() }

// Seek positions the iterator at the first entry with key >= target.
func (it *Iterator) Seek(target []byte) { it.it.Seek(target) }

// Next advances to the next entry. REQUIRES: Valid().
func (it *Iterator) Next() { it.it.Next() }

// Prev moves to the previous entry. REQUIRES: Valid().
func (it *Iterator) Prev() { it.it.Prev() }
