// Package table implements the on-disk sorted table format: streaming
// construction via Builder, and random-access lookup and ordered iteration
// via Reader.
package table

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/cellarkv/sstable/internal/block"
	"github.com/cellarkv/sstable/internal/compression"
	"github.com/cellarkv/sstable/internal/filter"
	"github.com/cellarkv/sstable/internal/logging"
	"github.com/cellarkv/sstable/internal/options"
)

// Comparator orders keys and derives short separators for the index block.
// It mirrors the root package's public Comparator interface.
type Comparator interface {
	Compare(a, b []byte) int
	Name() string
	FindShortestSeparator(a, b []byte) []byte
	FindShortSuccessor(a []byte) []byte
}

// bytewiseComparator is the default used when Options.Comparator is nil. It
// mirrors the root package's BytewiseComparator so that index-key shrinking
// (FindShortestSeparator/FindShortSuccessor) is active out of the box rather
// than only under a caller-supplied comparator.
type bytewiseComparator struct{}

func (bytewiseComparator) Compare(a, b []byte) int { return bytes.Compare(a, b) }
func (bytewiseComparator) Name() string            { return "leveldb.BytewiseComparator" }

// FindShortestSeparator finds a key k such that a <= k < b, shrinking a when
// possible. If a is a prefix of b (or vice versa), a is returned unchanged.
func (bytewiseComparator) FindShortestSeparator(a, b []byte) []byte {
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}

	diffIndex := 0
	for diffIndex < minLen && a[diffIndex] == b[diffIndex] {
		diffIndex++
	}

	if diffIndex >= minLen {
		return a
	}

	diffByte := a[diffIndex]
	if diffByte < 0xFF && diffByte+1 < b[diffIndex] {
		result := make([]byte, diffIndex+1)
		copy(result, a[:diffIndex+1])
		result[diffIndex]++
		return result
	}

	return a
}

// FindShortSuccessor finds a short key >= a by incrementing the first byte
// that is not already 0xFF and truncating after it.
func (bytewiseComparator) FindShortSuccessor(a []byte) []byte {
	for i := range a {
		if a[i] != 0xFF {
			result := make([]byte, i+1)
			copy(result, a[:i+1])
			result[i]++
			return result
		}
	}
	return a
}

type metaEntry struct {
	key   string
	value []byte
}

// Builder streams (key, value) pairs, in strictly increasing key order,
// into a finished table. Keys must never repeat and must never go
// backward; Add rejects both with ErrInvalidArgument. A Builder is
// single-use: once Finish returns (successfully or not), the Builder must
// be discarded.
type Builder struct {
	sink        io.Writer
	cmp         Comparator
	compression compression.Type
	blockSize   int
	logger      logging.Logger

	dataBlock  *block.Builder
	indexBlock *block.Builder

	filterBuilder    *filter.BlockBuilder
	filterPolicyName string

	pendingIndexEntry bool
	pendingHandle     block.Handle
	lastKey           []byte
	haveLastKey       bool

	offset     uint64
	numEntries uint64

	finished bool
	err      error
}

// NewBuilder creates a Builder writing to sink. opts may be nil, in which
// case options.Default() is used.
func NewBuilder(sink io.Writer, opts *options.Options) *Builder {
	if opts == nil {
		opts = options.Default()
	}

	cmp := Comparator(bytewiseComparator{})
	if opts.Comparator != nil {
		cmp = opts.Comparator
	}

	blockSize := opts.BlockSize
	if blockSize <= 0 {
		blockSize = 4096
	}
	restartInterval := opts.BlockRestartInterval
	if restartInterval <= 0 {
		restartInterval = 16
	}

	b := &Builder{
		sink:        sink,
		cmp:         cmp,
		compression: opts.Compression,
		blockSize:   blockSize,
		logger:      logging.OrDefault(opts.Logger),
		dataBlock:   block.NewBuilder(restartInterval),
		indexBlock:  block.NewBuilder(1),
	}

	if opts.FilterPolicy != nil {
		b.filterBuilder = filter.NewBlockBuilder(opts.FilterPolicy)
		b.filterPolicyName = opts.FilterPolicy.Name()
	}

	return b
}

// Add appends a key-value pair. key must compare strictly greater than
// every previously added key under the Builder's comparator.
func (b *Builder) Add(key, value []byte) error {
	if b.finished {
		return fmt.Errorf("%w: Add called after Finish", ErrInvalidArgument)
	}
	if b.err != nil {
		return b.err
	}
	if b.haveLastKey && b.cmp.Compare(key, b.lastKey) <= 0 {
		b.err = fmt.Errorf("%w: key not strictly greater than the previous key", ErrInvalidArgument)
		return b.err
	}

	if b.pendingIndexEntry {
		separator := b.cmp.FindShortestSeparator(b.lastKey, key)
		b.indexBlock.Add(separator, b.pendingHandle.EncodeToSlice())
		b.pendingIndexEntry = false
	}

	if b.filterBuilder != nil {
		b.filterBuilder.StartBlock(b.offset)
		b.filterBuilder.AddKey(key)
	}

	b.dataBlock.Add(key, value)
	b.numEntries++
	b.lastKey = append(b.lastKey[:0], key...)
	b.haveLastKey = true

	if b.dataBlock.CurrentSizeEstimate() >= b.blockSize {
		if err := b.flushDataBlock(); err != nil {
			b.err = err
			return err
		}
	}

	return nil
}

// NumEntries returns the number of entries added so far.
func (b *Builder) NumEntries() uint64 {
	return b.numEntries
}

// FileSize returns the number of bytes written to the sink so far.
func (b *Builder) FileSize() uint64 {
	return b.offset
}

func (b *Builder) flushDataBlock() error {
	if b.dataBlock.Empty() {
		return nil
	}
	contents := b.dataBlock.Finish()
	handle, err := b.writeBlock(contents, true)
	if err != nil {
		return err
	}
	b.pendingHandle = handle
	b.pendingIndexEntry = true
	b.dataBlock.Reset()
	return nil
}

// writeBlock writes payload to the sink, compressing it first when
// compressible is true and compression is configured and actually pays
// off, then appends the block's trailer. It returns the handle locating
// the block's written (possibly compressed) bytes.
func (b *Builder) writeBlock(payload []byte, compressible bool) (block.Handle, error) {
	out := payload
	compressionType := byte(compression.None)

	if compressible && b.compression != compression.None {
		compressed, err := compression.Compress(b.compression, payload)
		if err != nil {
			return block.Handle{}, fmt.Errorf("%w: %v", ErrUnsupported, err)
		}
		if compression.ShouldCompress(len(compressed), len(payload)) {
			out = compressed
			compressionType = byte(b.compression)
		}
	}

	handle := block.Handle{Offset: b.offset, Size: uint64(len(out))}

	if _, err := b.sink.Write(out); err != nil {
		return block.Handle{}, err
	}
	b.offset += uint64(len(out))

	trailer := block.AppendTrailer(nil, out, compressionType)
	if _, err := b.sink.Write(trailer); err != nil {
		return block.Handle{}, err
	}
	b.offset += uint64(len(trailer))

	return handle, nil
}

// Finish flushes any pending data, writes the filter, meta-index, index
// blocks and the footer, and renders the Builder unusable.
func (b *Builder) Finish() error {
	if b.finished {
		return fmt.Errorf("%w: Finish called twice", ErrInvalidArgument)
	}
	if b.err != nil {
		return b.err
	}
	b.finished = true

	if err := b.flushDataBlock(); err != nil {
		b.err = err
		return err
	}
	if b.pendingIndexEntry {
		successor := b.cmp.FindShortSuccessor(b.lastKey)
		b.indexBlock.Add(successor, b.pendingHandle.EncodeToSlice())
		b.pendingIndexEntry = false
	}

	var metaEntries []metaEntry
	if b.filterBuilder != nil {
		filterContents := b.filterBuilder.Finish()
		filterHandle, err := b.writeBlock(filterContents, false)
		if err != nil {
			b.err = err
			return err
		}
		metaEntries = append(metaEntries, metaEntry{
			key:   "filter." + b.filterPolicyName,
			value: filterHandle.EncodeToSlice(),
		})
	}

	sort.Slice(metaEntries, func(i, j int) bool { return metaEntries[i].key < metaEntries[j].key })
	metaBuilder := block.NewBuilder(1)
	for _, e := range metaEntries {
		metaBuilder.Add([]byte(e.key), e.value)
	}
	metaContents := metaBuilder.Finish()
	metaHandle, err := b.writeBlock(metaContents, true)
	if err != nil {
		b.err = err
		return err
	}

	indexContents := b.indexBlock.Finish()
	indexHandle, err := b.writeBlock(indexContents, true)
	if err != nil {
		b.err = err
		return err
	}

	footer := block.Footer{MetaindexHandle: metaHandle, IndexHandle: indexHandle}
	footerBytes := footer.EncodeToSlice()
	if _, err := b.sink.Write(footerBytes); err != nil {
		b.err = err
		return err
	}
	b.offset += uint64(len(footerBytes))

	b.logger.Infof(logging.NSTable+"finished table entries=%d size=%d", b.numEntries, b.offset)
	return nil
}

// Abandon discards the Builder without writing a footer, leaving whatever
// has been written to the sink as an invalid, partial file.
func (b *Builder) Abandon() {
	b.finished = true
}
