// builder.go implements block building with prefix compression.
//
// Builder generates blocks where keys are prefix-compressed with periodic
// restart points for efficient random access.
package block

import (
	"github.com/cellarkv/sstable/internal/encoding"
)

// Builder accumulates key-value pairs into a single restart-indexed,
// prefix-compressed block.
//
// When a key is added, the prefix it shares with the previous key is
// dropped. Every restartInterval entries, compression is skipped and the
// full key is stored instead — a restart point — so a reader can binary
// search without decoding every entry from the start of the block.
//
// Overall block layout:
//
//	[entry 1]
//	[entry 2]
//	...
//	[entry N]
//	[restart point 1: fixed32]
//	...
//	[restart point M: fixed32]
//	[num_restarts: fixed32]
type Builder struct {
	buffer          []byte   // serialized block data
	restarts        []uint32 // restart point offsets into buffer
	counter         int      // entries since the last restart
	restartInterval int
	lastKey         []byte
	finished        bool
}

// NewBuilder creates a block builder. restartInterval controls how often a
// restart point is emitted; a restart point is always emitted for the first
// entry. 16 is the conventional default.
func NewBuilder(restartInterval int) *Builder {
	if restartInterval < 1 {
		restartInterval = 1
	}
	return &Builder{
		buffer:          make([]byte, 0, 4096),
		restartInterval: restartInterval,
		restarts:        []uint32{0},
	}
}

// Reset clears the builder so it can be reused for the next block.
func (b *Builder) Reset() {
	b.buffer = b.buffer[:0]
	b.restarts = b.restarts[:1]
	b.restarts[0] = 0
	b.counter = 0
	b.lastKey = b.lastKey[:0]
	b.finished = false
}

// Add appends a key-value pair to the block.
// REQUIRES: Finish has not been called since the last Reset.
// REQUIRES: key is strictly greater than any previously added key.
func (b *Builder) Add(key, value []byte) {
	if b.finished {
		panic("block: Add called after Finish")
	}

	shared := 0
	if b.counter < b.restartInterval {
		shared = sharedPrefixLength(b.lastKey, key)
	} else {
		b.restarts = append(b.restarts, uint32(len(b.buffer)))
		b.counter = 0
	}

	unshared := len(key) - shared

	b.buffer = encoding.AppendVarint32(b.buffer, uint32(shared))
	b.buffer = encoding.AppendVarint32(b.buffer, uint32(unshared))
	b.buffer = encoding.AppendVarint32(b.buffer, uint32(len(value)))
	b.buffer = append(b.buffer, key[shared:]...)
	b.buffer = append(b.buffer, value...)

	b.lastKey = append(b.lastKey[:0], key...)
	b.counter++
}

// CurrentSizeEstimate returns an estimate of the block's encoded size if
// finished right now: entries written so far plus the restart array and
// trailing count.
func (b *Builder) CurrentSizeEstimate() int {
	return len(b.buffer) + len(b.restarts)*4 + 4
}

// Empty reports whether any entries have been added.
func (b *Builder) Empty() bool {
	return len(b.buffer) == 0
}

// Finish appends the restart array and restart count, and returns the
// complete block payload. The returned slice is valid until Reset is called.
func (b *Builder) Finish() []byte {
	for _, restart := range b.restarts {
		b.buffer = encoding.AppendFixed32(b.buffer, restart)
	}
	b.buffer = encoding.AppendFixed32(b.buffer, uint32(len(b.restarts)))

	b.finished = true
	return b.buffer
}

// sharedPrefixLength returns the length of the common prefix of a and b.
func sharedPrefixLength(a, b []byte) int {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}
