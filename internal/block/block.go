package block

import (
	"github.com/cellarkv/sstable/internal/encoding"
)

// Comparator is the subset of the key-ordering contract the block iterator
// needs to binary-search restart points and scan within them. The table
// package's full Comparator interface satisfies this.
type Comparator interface {
	Compare(a, b []byte) int
}

// Block is a parsed view over a restart-indexed, prefix-compressed sequence
// of entries:
//
//	entries: key-value pairs with prefix compression
//	restarts: uint32[num_restarts] — offsets of restart points
//	num_restarts: uint32
//
// Each entry:
//
//	shared_bytes: varint32   (shared prefix length with the previous key)
//	unshared_bytes: varint32 (length of the unshared key suffix)
//	value_length: varint32
//	key_delta: byte[unshared_bytes]
//	value: byte[value_length]
type Block struct {
	data        []byte
	restarts    int // offset of the restart array within data
	numRestarts int
}

// NewBlock parses a Block from raw payload bytes (trailer already stripped).
// data is not copied; the caller must keep it alive for the Block's lifetime.
func NewBlock(data []byte) (*Block, error) {
	if len(data) < 4 {
		return nil, ErrBadBlock
	}

	footerOffset := len(data) - 4
	numRestarts := encoding.DecodeFixed32(data[footerOffset:])
	if numRestarts == 0 {
		return nil, ErrBadBlock
	}

	restartsSize := int(numRestarts+1) * 4 // +1 for the trailing count itself
	if restartsSize > len(data) {
		return nil, ErrBadBlock
	}
	restartsOffset := len(data) - restartsSize

	return &Block{
		data:        data,
		restarts:    restartsOffset,
		numRestarts: int(numRestarts),
	}, nil
}

// Size returns the size of the underlying block payload (no trailer).
func (b *Block) Size() int {
	return len(b.data)
}

// NumRestarts returns the number of restart points in the block.
func (b *Block) NumRestarts() int {
	return b.numRestarts
}

// GetRestartPoint returns the byte offset of the i-th restart point.
func (b *Block) GetRestartPoint(i int) int {
	if i < 0 || i >= b.numRestarts {
		return -1
	}
	offset := b.restarts + i*4
	return int(encoding.DecodeFixed32(b.data[offset:]))
}

// Iterator walks the entries of a Block forward or backward, reconstructing
// prefix-compressed keys as it goes.
type Iterator struct {
	block       *Block
	cmp         Comparator
	data        []byte // alias of block.data
	restartsEnd int    // end of the entry section, start of the restart array
	current     int    // start offset of the current entry
	nextOffset  int    // offset of the entry following current
	key         []byte // current key, fully reconstructed
	value       []byte // current value, sliced into data
	valid       bool
	err         error
}

// NewIterator returns an iterator over b's entries. cmp orders keys for Seek;
// Next/Prev/SeekToFirst/SeekToLast do not need it.
func (b *Block) NewIterator(cmp Comparator) *Iterator {
	return &Iterator{
		block:       b,
		cmp:         cmp,
		data:        b.data,
		restartsEnd: b.restarts,
	}
}

// Valid reports whether the iterator is positioned at a usable entry.
func (it *Iterator) Valid() bool {
	return it.valid && it.err == nil
}

// Key returns the current key. Only meaningful when Valid.
func (it *Iterator) Key() []byte {
	return it.key
}

// Value returns the current value. Only meaningful when Valid.
func (it *Iterator) Value() []byte {
	return it.value
}

// Error returns the corruption encountered during iteration, if any.
func (it *Iterator) Error() error {
	return it.err
}

// SeekToFirst positions the iterator at the block's first entry.
func (it *Iterator) SeekToFirst() {
	it.key = it.key[:0]
	it.value = nil
	it.valid = false
	it.current = 0
	it.nextOffset = 0
	it.Next()
}

// SeekToLast positions the iterator at the block's last entry.
func (it *Iterator) SeekToLast() {
	it.seekToRestartPoint(it.block.numRestarts - 1)

	var lastKey, lastValue []byte
	var lastCurrent, lastNextOffset int
	lastValid := false

	for {
		it.Next()
		if !it.Valid() {
			break
		}
		lastKey = append(lastKey[:0], it.key...)
		lastValue = it.value
		lastCurrent = it.current
		lastNextOffset = it.nextOffset
		lastValid = true
	}

	if lastValid {
		it.key = lastKey
		it.value = lastValue
		it.current = lastCurrent
		it.nextOffset = lastNextOffset
		it.valid = true
		it.err = nil
	}
}

// Next advances the iterator by one entry.
func (it *Iterator) Next() {
	if it.err != nil {
		it.valid = false
		return
	}
	if it.nextOffset >= it.restartsEnd {
		it.valid = false
		return
	}
	it.current = it.nextOffset
	it.parseCurrentEntry()
}

// Prev moves the iterator to the entry immediately before the current one.
// REQUIRES: Valid().
func (it *Iterator) Prev() {
	if it.err != nil {
		it.valid = false
		return
	}

	original := it.current

	restartIndex := it.findRestartPointBefore(original)
	if it.block.GetRestartPoint(restartIndex) == original && restartIndex > 0 {
		restartIndex--
	}
	it.seekToRestartPoint(restartIndex)

	var prevKey, prevValue []byte
	var prevCurrent, prevNextOffset int
	found := false

	for {
		it.Next()
		if !it.Valid() || it.current >= original {
			break
		}
		prevKey = append(prevKey[:0], it.key...)
		prevValue = it.value
		prevCurrent = it.current
		prevNextOffset = it.nextOffset
		found = true
	}

	if found {
		it.key = prevKey
		it.value = prevValue
		it.current = prevCurrent
		it.nextOffset = prevNextOffset
		it.valid = true
		it.err = nil
	} else {
		it.valid = false
	}
}

// findRestartPointBefore returns the largest restart index whose offset <= target.
func (it *Iterator) findRestartPointBefore(target int) int {
	left := 0
	right := it.block.numRestarts - 1
	for left < right {
		mid := (left + right + 1) / 2
		if it.block.GetRestartPoint(mid) <= target {
			left = mid
		} else {
			right = mid - 1
		}
	}
	return left
}

// seekToRestartPoint positions the cursor at the given restart index without
// parsing an entry.
func (it *Iterator) seekToRestartPoint(index int) {
	it.key = it.key[:0]
	it.value = nil
	it.valid = false
	offset := max(it.block.GetRestartPoint(index), 0)
	it.current = offset
	it.nextOffset = offset
}

// parseCurrentEntry decodes the entry at it.current.
func (it *Iterator) parseCurrentEntry() {
	if it.current >= it.restartsEnd {
		it.valid = false
		return
	}

	entryData := it.data[it.current:it.restartsEnd]
	cursor := encoding.NewSlice(entryData)

	shared, ok := cursor.GetVarint32()
	if !ok {
		it.err = ErrBadBlock
		it.valid = false
		return
	}
	unshared, ok := cursor.GetVarint32()
	if !ok {
		it.err = ErrBadBlock
		it.valid = false
		return
	}
	valueLen, ok := cursor.GetVarint32()
	if !ok {
		it.err = ErrBadBlock
		it.valid = false
		return
	}

	if int(shared) > len(it.key) {
		it.err = ErrBadBlock
		it.valid = false
		return
	}

	keySuffix, ok := cursor.GetBytes(int(unshared))
	if !ok {
		it.err = ErrBadBlock
		it.valid = false
		return
	}
	it.key = append(it.key[:shared], keySuffix...)

	value, ok := cursor.GetBytes(int(valueLen))
	if !ok {
		it.err = ErrBadBlock
		it.valid = false
		return
	}
	it.value = value

	it.nextOffset = it.current + (len(entryData) - cursor.Remaining())
	it.valid = true
}

// Seek positions the iterator at the first key >= target: binary search over
// restart points, then a linear scan within the interval.
func (it *Iterator) Seek(target []byte) {
	left := 0
	right := it.block.numRestarts - 1

	for left < right {
		mid := (left + right + 1) / 2
		it.seekToRestartPoint(mid)
		it.Next()

		if !it.Valid() || it.cmp.Compare(it.key, target) > 0 {
			right = mid - 1
		} else {
			left = mid
		}
	}

	it.seekToRestartPoint(left)
	for {
		it.Next()
		if !it.Valid() {
			return
		}
		if it.cmp.Compare(it.key, target) >= 0 {
			return
		}
	}
}
