package table

import (
	"fmt"
	"sync/atomic"

	"github.com/cellarkv/sstable/internal/block"
	"github.com/cellarkv/sstable/internal/cache"
	"github.com/cellarkv/sstable/internal/compression"
	"github.com/cellarkv/sstable/internal/filter"
	"github.com/cellarkv/sstable/internal/logging"
	"github.com/cellarkv/sstable/internal/options"
)

// Source is the random-access byte origin a Reader opens a table from.
type Source interface {
	// ReadAt reads len(p) bytes starting at off.
	ReadAt(p []byte, off int64) (int, error)

	// Size returns the total number of readable bytes.
	Size() int64
}

var nextTableID atomic.Uint64

// Reader opens a finished table and serves point lookups and ordered
// iteration over it. A Reader is safe for concurrent use by multiple
// goroutines; its Iterators are not.
type Reader struct {
	source  Source
	tableID uint64
	cmp     Comparator

	footer     block.Footer
	indexBlock *block.Block

	filterPolicy filter.Policy
	filterReader *filter.BlockReader

	blockCache cache.Cache
	logger     logging.Logger

	corruptBlocksSkipped atomic.Uint64
}

// Open parses the footer, index block, and (if configured) filter block
// of a finished table. opts may be nil, in which case options.Default()
// is used. A malformed footer or index block fails Open outright; the
// table cannot be navigated without them.
func Open(source Source, opts *options.Options) (*Reader, error) {
	if opts == nil {
		opts = options.Default()
	}

	size := source.Size()
	if size < block.FooterEncodedLength {
		return nil, fmt.Errorf("%w: file too small to hold a footer", ErrCorruption)
	}

	footerBuf := make([]byte, block.FooterEncodedLength)
	if _, err := source.ReadAt(footerBuf, size-block.FooterEncodedLength); err != nil {
		return nil, fmt.Errorf("table: reading footer: %w", err)
	}
	footer, err := block.DecodeFooter(footerBuf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruption, err)
	}

	cmp := Comparator(bytewiseComparator{})
	if opts.Comparator != nil {
		cmp = opts.Comparator
	}

	blockCache := opts.BlockCache
	if blockCache == nil {
		capacity := opts.BlockCacheCapacity
		if capacity == 0 {
			capacity = 8 * 1024 * 1024
		}
		blockCache = cache.NewLRUCache(capacity)
	}

	r := &Reader{
		source:     source,
		tableID:    nextTableID.Add(1),
		cmp:        cmp,
		footer:     footer,
		blockCache: blockCache,
		logger:     logging.OrDefault(opts.Logger),
	}

	indexPayload, err := r.readBlock(footer.IndexHandle)
	if err != nil {
		return nil, fmt.Errorf("%w: index block: %v", ErrCorruption, err)
	}
	indexBlock, err := block.NewBlock(indexPayload)
	if err != nil {
		return nil, fmt.Errorf("%w: index block: %v", ErrCorruption, err)
	}
	r.indexBlock = indexBlock

	metaPayload, err := r.readBlock(footer.MetaindexHandle)
	if err != nil {
		return nil, fmt.Errorf("%w: meta-index block: %v", ErrCorruption, err)
	}
	metaBlock, err := block.NewBlock(metaPayload)
	if err != nil {
		return nil, fmt.Errorf("%w: meta-index block: %v", ErrCorruption, err)
	}

	if opts.FilterPolicy != nil {
		r.filterPolicy = opts.FilterPolicy
		if handle, ok := lookupMetaHandle(metaBlock, "filter."+opts.FilterPolicy.Name()); ok {
			filterPayload, err := r.readBlock(handle)
			if err == nil {
				r.filterReader = filter.NewBlockReader(opts.FilterPolicy, filterPayload)
			} else {
				r.logger.Warnf(logging.NSFilter+"table id=%d: filter block unreadable, disabling filter: %v", r.tableID, err)
			}
			// An unreadable filter block is not fatal: lookups simply fall
			// through to the data blocks.
		}
	}

	r.logger.Infof(logging.NSTable+"opened table id=%d size=%d", r.tableID, size)
	return r, nil
}

// lookupMetaHandle scans the meta-index block for name, which is always an
// ASCII identifier compared bytewise regardless of the table's configured
// comparator.
func lookupMetaHandle(metaBlock *block.Block, name string) (block.Handle, bool) {
	it := metaBlock.NewIterator(bytewiseComparator{})
	it.Seek([]byte(name))
	if !it.Valid() || string(it.Key()) != name {
		return block.Handle{}, false
	}
	handle, err := block.DecodeHandleFrom(it.Value())
	if err != nil {
		return block.Handle{}, false
	}
	return handle, true
}

// CorruptBlocksSkipped returns the number of data blocks Get and iteration
// have skipped over due to a failed checksum since the Reader was opened.
func (r *Reader) CorruptBlocksSkipped() uint64 {
	return r.corruptBlocksSkipped.Load()
}

// Close releases the Reader's underlying source.
func (r *Reader) Close() error {
	if closer, ok := r.source.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

// readBlock reads, checksum-verifies, and decompresses the block at
// handle, returning its raw payload.
func (r *Reader) readBlock(handle block.Handle) ([]byte, error) {
	sourceSize := r.source.Size()
	if handle.Size > uint64(sourceSize) || handle.Offset > uint64(sourceSize) ||
		int64(handle.Size)+int64(block.TrailerSize) > sourceSize-int64(handle.Offset) {
		return nil, fmt.Errorf("%w: block handle offset %d size %d exceeds table size %d",
			ErrCorruption, handle.Offset, handle.Size, sourceSize)
	}

	buf := make([]byte, int(handle.Size)+block.TrailerSize)
	if _, err := r.source.ReadAt(buf, int64(handle.Offset)); err != nil {
		return nil, fmt.Errorf("table: IO: %w", err)
	}

	payload := buf[:handle.Size]
	compressionType := buf[handle.Size]
	recordedChecksum := uint32(buf[handle.Size+1]) | uint32(buf[handle.Size+2])<<8 |
		uint32(buf[handle.Size+3])<<16 | uint32(buf[handle.Size+4])<<24

	if !block.VerifyTrailer(payload, compressionType, recordedChecksum) {
		r.logger.Errorf(logging.NSBlock+"checksum mismatch at offset %d size %d", handle.Offset, handle.Size)
		return nil, fmt.Errorf("%w: block checksum mismatch at offset %d", ErrCorruption, handle.Offset)
	}

	if !compression.Type(compressionType).IsSupported() {
		return nil, fmt.Errorf("%w: compression type %d", ErrUnsupported, compressionType)
	}
	if compression.Type(compressionType) == compression.None {
		return payload, nil
	}
	return compression.Decompress(compression.Type(compressionType), payload)
}

// loadDataBlock loads the data block at handle, consulting and populating
// the block cache.
func (r *Reader) loadDataBlock(handle block.Handle) (*block.Block, error) {
	key := cache.CacheKey{TableID: r.tableID, BlockOffset: handle.Offset}

	if h := r.blockCache.Lookup(key); h != nil {
		defer r.blockCache.Release(h)
		return block.NewBlock(h.Value())
	}

	payload, err := r.readBlock(handle)
	if err != nil {
		return nil, err
	}

	h := r.blockCache.Insert(key, payload, uint64(len(payload)))
	defer r.blockCache.Release(h)
	return block.NewBlock(payload)
}

// Get looks up key and returns its value. It returns ErrNotFound if the
// filter definitively rules the key out, if the key is absent from its
// candidate data block, or if that data block fails its checksum or
// decompression: a corrupt data block is logged and counted in
// CorruptBlocksSkipped rather than surfaced as a hard error, since it
// cannot be distinguished from key absence without the block's contents.
// A corrupt index entry needed to locate the candidate block is fatal and
// returned as ErrCorruption, since there is no fallback path to the data.
func (r *Reader) Get(key []byte) ([]byte, error) {
	indexIter := r.indexBlock.NewIterator(r.cmp)
	indexIter.Seek(key)
	if !indexIter.Valid() {
		if err := indexIter.Error(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruption, err)
		}
		return nil, ErrNotFound
	}

	handle, err := block.DecodeHandleFrom(indexIter.Value())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruption, err)
	}

	if r.filterReader != nil && !r.filterReader.KeyMayMatch(handle.Offset, key) {
		return nil, ErrNotFound
	}

	dataBlock, err := r.loadDataBlock(handle)
	if err != nil {
		r.corruptBlocksSkipped.Add(1)
		r.logger.Errorf(logging.NSTable+"table id=%d: data block at offset %d failed checksum, treating key as absent: %v", r.tableID, handle.Offset, err)
		return nil, ErrNotFound
	}

	dataIter := dataBlock.NewIterator(r.cmp)
	dataIter.Seek(key)
	if !dataIter.Valid() {
		if err := dataIter.Error(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruption, err)
		}
		return nil, ErrNotFound
	}
	if r.cmp.Compare(dataIter.Key(), key) != 0 {
		return nil, ErrNotFound
	}
	return dataIter.Value(), nil
}
