package table

import (
	"github.com/cellarkv/sstable/internal/block"
	"github.com/cellarkv/sstable/internal/logging"
)

// Iterator is a two-level iterator composing the table's index iterator
// with a lazily-loaded inner data-block iterator. It walks entries in key
// order across data block boundaries, loading each data block only as
// iteration reaches it.
//
// A data block whose checksum fails to verify is skipped rather than
// treated as fatal: iteration continues with the next data block, and the
// Reader's corrupt-block counter is incremented.
type Iterator struct {
	r         *Reader
	indexIter *block.Iterator
	dataIter  *block.Iterator
	err       error
}

// NewIterator returns an Iterator over all entries in the table, initially
// positioned before the first entry. Call SeekToFirst, SeekToLast, or Seek
// before reading.
func (r *Reader) NewIterator() *Iterator {
	return &Iterator{
		r:         r,
		indexIter: r.indexBlock.NewIterator(r.cmp),
	}
}

// Valid reports whether the iterator is positioned at a usable entry.
func (it *Iterator) Valid() bool {
	return it.err == nil && it.dataIter != nil && it.dataIter.Valid()
}

// Key returns the current entry's key. Only meaningful when Valid.
func (it *Iterator) Key() []byte {
	return it.dataIter.Key()
}

// Value returns the current entry's value. Only meaningful when Valid.
func (it *Iterator) Value() []byte {
	return it.dataIter.Value()
}

// Error returns the fatal error encountered during iteration, if any. This
// does not include corrupt data blocks skipped in the course of iterating
// — see Reader.CorruptBlocksSkipped for those.
func (it *Iterator) Error() error {
	if it.err != nil {
		return it.err
	}
	if err := it.indexIter.Error(); err != nil {
		return err
	}
	return nil
}

// SeekToFirst positions the iterator at the table's first entry.
func (it *Iterator) SeekToFirst() {
	it.indexIter.SeekToFirst()
	it.initDataBlock()
	if it.dataIter != nil {
		it.dataIter.SeekToFirst()
	}
	it.skipForward()
}

// SeekToLast positions the iterator at the table's last entry.
func (it *Iterator) SeekToLast() {
	it.indexIter.SeekToLast()
	it.initDataBlock()
	if it.dataIter != nil {
		it.dataIter.SeekToLast()
	}
	it.skipBackward()
}

// Seek positions the iterator at the first entry with key >= target.
func (it *Iterator) Seek(target []byte) {
	it.indexIter.Seek(target)
	it.initDataBlock()
	if it.dataIter != nil {
		it.dataIter.Seek(target)
	}
	it.skipForward()
}

// Next advances to the next entry. REQUIRES: Valid().
func (it *Iterator) Next() {
	it.dataIter.Next()
	it.skipForward()
}

// Prev moves to the previous entry. REQUIRES: Valid().
func (it *Iterator) Prev() {
	it.dataIter.Prev()
	it.skipBackward()
}

// initDataBlock loads the data block the index iterator currently points
// at. A decode or corruption failure leaves dataIter nil rather than
// setting a fatal error: the caller's skip loop moves past it.
func (it *Iterator) initDataBlock() {
	if !it.indexIter.Valid() {
		it.dataIter = nil
		return
	}

	handle, err := block.DecodeHandleFrom(it.indexIter.Value())
	if err != nil {
		it.r.corruptBlocksSkipped.Add(1)
		it.r.logger.Warnf(logging.NSTable+"table id=%d: bad index entry, skipping: %v", it.r.tableID, err)
		it.dataIter = nil
		return
	}

	dataBlock, err := it.r.loadDataBlock(handle)
	if err != nil {
		it.r.corruptBlocksSkipped.Add(1)
		it.r.logger.Warnf(logging.NSTable+"table id=%d: skipping corrupt data block at offset %d: %v", it.r.tableID, handle.Offset, err)
		it.dataIter = nil
		return
	}

	it.dataIter = dataBlock.NewIterator(it.r.cmp)
}

func (it *Iterator) skipForward() {
	for it.dataIter == nil || !it.dataIter.Valid() {
		if it.dataIter != nil && it.dataIter.Error() != nil {
			it.r.corruptBlocksSkipped.Add(1)
		}
		if !it.indexIter.Valid() {
			it.dataIter = nil
			return
		}
		it.indexIter.Next()
		it.initDataBlock()
		if it.dataIter != nil {
			it.dataIter.SeekToFirst()
		}
	}
}

func (it *Iterator) skipBackward() {
	for it.dataIter == nil || !it.dataIter.Valid() {
		if it.dataIter != nil && it.dataIter.Error() != nil {
			it.r.corruptBlocksSkipped.Add(1)
		}
		if !it.indexIter.Valid() {
			it.dataIter = nil
			return
		}
		it.indexIter.Prev()
		it.initDataBlock()
		if it.dataIter != nil {
			it.dataIter.SeekToLast()
		}
	}
}
