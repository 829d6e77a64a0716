package sstable

import (
	"github.com/cellarkv/sstable/internal/cache"
	"github.com/cellarkv/sstable/internal/compression"
	"github.com/cellarkv/sstable/internal/filter"
	"github.com/cellarkv/sstable/internal/logging"
	"github.com/cellarkv/sstable/internal/options"
)

// CompressionType selects the block compression codec. None and Snappy are
// the two codes the on-disk format assigns meaning to (0 and 1); Zlib, LZ4,
// and Zstd are additional pluggable codecs recognized by this
// implementation beyond the two the wire format requires.
type CompressionType = compression.Type

const (
	NoCompression     = compression.None
	SnappyCompression = compression.Snappy
	ZlibCompression   = compression.Zlib
	LZ4Compression    = compression.LZ4
	ZstdCompression   = compression.Zstd
)

// FilterPolicy builds an opaque per-block-group membership filter and
// answers may-match queries against it. False negatives are forbidden;
// false positives are permitted. See NewBloomPolicy for the built-in
// implementation.
type FilterPolicy = filter.Policy

// NewBloomPolicy returns a Bloom filter policy tuned to bitsPerKey bits of
// filter data per key added. 10 bits/key gives roughly a 1% false positive
// rate.
func NewBloomPolicy(bitsPerKey int) FilterPolicy {
	return filter.NewBloomPolicy(bitsPerKey)
}

// Cache is a block cache shareable across Readers opened against different
// tables, keyed internally by (table ID, block offset).
type Cache = cache.Cache

// NewCache returns an LRU block cache bounded to capacity decoded bytes.
func NewCache(capacity uint64) Cache {
	return cache.NewLRUCache(capacity)
}

// NewShardedCache returns a block cache split across independent LRU shards
// to reduce lock contention when
// many goroutines share one Reader or one cache across several Readers.
// numShards is rounded up to a power of two (16 when numShards <= 0), and
// each shard holds capacity divided by that shard count.
func NewShardedCache(capacity uint64, numShards int) Cache {
	return cache.NewShardedLRUCache(capacity, numShards)
}

// Logger receives diagnostic events emitted by a Writer or Reader: opened
// and finished tables, corrupt blocks skipped during iteration, and
// filter blocks that failed to parse. See NewLogger.
type Logger = logging.Logger

// LogLevel selects which severities NewLogger emits.
type LogLevel = logging.Level

const (
	LogLevelError = logging.LevelError
	LogLevelWarn  = logging.LevelWarn
	LogLevelInfo  = logging.LevelInfo
	LogLevelDebug = logging.LevelDebug
)

// NewLogger returns a Logger writing level and above to stderr.
func NewLogger(level LogLevel) Logger {
	return logging.NewDefaultLogger(level)
}

// DiscardLog is a Logger that discards every message.
var DiscardLog = logging.Discard

// Options configures a Writer or Reader. The zero value is not directly
// usable; construct with NewOptions, or pass nil to Open/NewWriter to use
// the package defaults.
type Options struct {
	// BlockSize is the soft threshold, in bytes, at which a data block is
	// flushed. Default 4 KiB.
	BlockSize int

	// BlockRestartInterval is the number of entries between restart points
	// within a data block. Default 16.
	BlockRestartInterval int

	// Compression selects the block compression codec. Default Snappy.
	Compression CompressionType

	// FilterPolicy, if set, causes a filter block to be built and consulted
	// on lookup. Default nil (no filter).
	FilterPolicy FilterPolicy

	// Comparator orders keys. Default lexicographic (bytewise).
	Comparator Comparator

	// BlockCache is consulted and populated by Readers opened with these
	// Options. If nil, a private cache of BlockCacheCapacity bytes is
	// created per Reader.
	BlockCache Cache

	// BlockCacheCapacity bounds a private per-Reader cache when BlockCache
	// is nil. Default 8 MiB.
	BlockCacheCapacity uint64

	// Logger receives diagnostic events. If nil, a WARN-level logger
	// writing to stderr is used.
	Logger Logger
}

// NewOptions returns an Options populated with the package defaults.
func NewOptions() *Options {
	return &Options{
		BlockSize:            4 * 1024,
		BlockRestartInterval: 16,
		Compression:          SnappyCompression,
		BlockCacheCapacity:   8 * 1024 * 1024,
	}
}

// toInternal adapts a public Options (or nil) to the internal package's
// Options shape. The comparators and filter policies it carries already
// satisfy the internal interfaces structurally.
func (o *Options) toInternal() *options.Options {
	if o == nil {
		return options.Default()
	}
	var cmp options.Comparator
	if o.Comparator != nil {
		cmp = o.Comparator
	}
	return &options.Options{
		BlockSize:            o.BlockSize,
		BlockRestartInterval: o.BlockRestartInterval,
		Compression:          o.Compression,
		FilterPolicy:         o.FilterPolicy,
		Comparator:           cmp,
		BlockCache:           o.BlockCache,
		BlockCacheCapacity:   o.BlockCacheCapacity,
		Logger:               o.Logger,
	}
}
