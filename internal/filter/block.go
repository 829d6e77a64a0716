package filter

import (
	"github.com/cellarkv/sstable/internal/encoding"
)

// blockBaseLg is the default log2 of the byte range each filter group
// covers: groups of 2^11 = 2 KiB of data block offsets share one filter.
const blockBaseLg = 11

// BlockBuilder assembles the table's filter block: one filter per group of
// data blocks, grouped by file offset. StartBlock announces the offset the
// next data block will be written at, rotating in new (possibly empty)
// groups as needed; AddKey feeds keys into the filter for the group
// currently open.
type BlockBuilder struct {
	policy Policy
	lgBase uint

	keys [][]byte

	result        []byte   // filters, concatenated
	filterOffsets []uint32 // result offset where each group's filter starts
}

// NewBlockBuilder creates a filter block builder using policy, grouping
// data blocks by the default lg_base.
func NewBlockBuilder(policy Policy) *BlockBuilder {
	return &BlockBuilder{policy: policy, lgBase: blockBaseLg}
}

// StartBlock announces the file offset a new data block starts at,
// generating filters for any group boundaries crossed since the last call.
func (b *BlockBuilder) StartBlock(blockOffset uint64) {
	index := blockOffset >> b.lgBase
	for uint64(len(b.filterOffsets)) < index {
		b.generateFilter()
	}
}

// AddKey adds a key to the filter for the currently open group.
func (b *BlockBuilder) AddKey(key []byte) {
	b.keys = append(b.keys, key)
}

// generateFilter closes out the current group: it records where its
// filter starts in result and appends the filter bytes (empty if the
// group received no keys, which still consumes a slot in filterOffsets).
func (b *BlockBuilder) generateFilter() {
	b.filterOffsets = append(b.filterOffsets, uint32(len(b.result)))
	if len(b.keys) == 0 {
		return
	}
	b.result = append(b.result, b.policy.CreateFilter(b.keys)...)
	b.keys = b.keys[:0]
}

// Finish closes the final group and appends the trailer:
// offsets_array (u32 LE each) || offsets_array_offset (u32 LE) || lg_base (u8).
func (b *BlockBuilder) Finish() []byte {
	if len(b.keys) > 0 {
		b.generateFilter()
	}

	arrayOffset := uint32(len(b.result))
	for _, off := range b.filterOffsets {
		b.result = encoding.AppendFixed32(b.result, off)
	}
	b.result = encoding.AppendFixed32(b.result, arrayOffset)
	b.result = append(b.result, byte(b.lgBase))

	return b.result
}

// BlockReader answers filter queries over a decoded filter block, routing
// each query to the group that owns the data block at a given file offset.
type BlockReader struct {
	policy       Policy
	data         []byte
	offsetsArray []byte
	arrayOffset  uint32
	numEntries   uint32
	lgBase       uint
}

// NewBlockReader parses a filter block's contents. It returns nil if the
// trailer is structurally invalid; callers should then treat the table as
// having no usable filter rather than failing outright.
func NewBlockReader(policy Policy, contents []byte) *BlockReader {
	if len(contents) < 5 {
		return nil
	}
	n := len(contents)
	lgBase := uint(contents[n-1])
	arrayOffset := encoding.DecodeFixed32(contents[n-5:])
	if arrayOffset > uint32(n-5) {
		return nil
	}
	numEntries := (uint32(n-5) - arrayOffset) / 4

	return &BlockReader{
		policy:       policy,
		data:         contents,
		offsetsArray: contents[arrayOffset : n-5],
		arrayOffset:  arrayOffset,
		numEntries:   numEntries,
		lgBase:       lgBase,
	}
}

// KeyMayMatch reports whether key may be present in the data block that
// starts at blockOffset. A true result with no usable filter data for that
// group (out-of-range index, or corrupt offsets) defaults to true: the
// caller falls through to the data block rather than wrongly skipping it.
func (r *BlockReader) KeyMayMatch(blockOffset uint64, key []byte) bool {
	if r == nil {
		return true
	}

	index := blockOffset >> r.lgBase
	if index >= uint64(r.numEntries) {
		return true
	}

	start := encoding.DecodeFixed32(r.offsetsArray[index*4:])
	var limit uint32
	if index+1 < uint64(r.numEntries) {
		limit = encoding.DecodeFixed32(r.offsetsArray[(index+1)*4:])
	} else {
		limit = r.arrayOffset
	}
	if start > limit || limit > r.arrayOffset {
		return true
	}
	if start == limit {
		return false
	}

	return r.policy.KeyMayMatch(key, r.data[start:limit])
}
