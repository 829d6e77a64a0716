// Package options holds the table builder/reader's tunable parameters.
package options

import (
	"github.com/cellarkv/sstable/internal/cache"
	"github.com/cellarkv/sstable/internal/compression"
	"github.com/cellarkv/sstable/internal/filter"
	"github.com/cellarkv/sstable/internal/logging"
)

// Comparator orders keys. The table package's full Comparator interface
// (compare, name, separator helpers) satisfies this; it is repeated here
// as a narrow interface so this package does not import table and create
// an import cycle.
type Comparator interface {
	Compare(a, b []byte) int
	Name() string
	FindShortestSeparator(a, b []byte) []byte
	FindShortSuccessor(a []byte) []byte
}

// Options configures a table Builder and the Reader that later opens it.
// The zero value is not ready to use; call Default and override fields.
type Options struct {
	// BlockSize is the soft threshold, in bytes, at which a pending data
	// block is flushed. Default 4 KiB.
	BlockSize int

	// BlockRestartInterval is the number of entries between restart points
	// within a data block. Default 16.
	BlockRestartInterval int

	// Compression selects the codec applied to data, index, and meta-index
	// blocks; the filter block is always stored uncompressed. Default Snappy.
	Compression compression.Type

	// FilterPolicy builds and consults the optional filter block. If nil,
	// no filter block is emitted and every lookup falls through to the
	// candidate data block.
	FilterPolicy filter.Policy

	// Comparator orders keys. Default lexicographic (byte-wise).
	Comparator Comparator

	// BlockCache is consulted and populated by the reader to avoid
	// re-decoding blocks already in memory. If nil, the reader allocates
	// one sized to BlockCacheCapacity.
	BlockCache cache.Cache

	// BlockCacheCapacity sizes a BlockCache the reader allocates for
	// itself when BlockCache is nil.
	BlockCacheCapacity uint64

	// Logger receives diagnostic events: corrupt blocks skipped during
	// iteration, filter blocks that fail to parse, and similar non-fatal
	// conditions. If nil, logging.OrDefault supplies a WARN-level logger
	// writing to stderr.
	Logger logging.Logger
}

const (
	defaultBlockSize            = 4 * 1024
	defaultBlockRestartInterval = 16
	defaultBlockCacheCapacity   = 8 * 1024 * 1024
)

// Default returns Options populated with the library's defaults: 4 KiB
// blocks, a restart every 16 entries, Snappy compression, lexicographic
// key order, no filter policy, and an 8 MiB block cache.
func Default() *Options {
	return &Options{
		BlockSize:            defaultBlockSize,
		BlockRestartInterval: defaultBlockRestartInterval,
		Compression:          compression.Snappy,
		BlockCacheCapacity:   defaultBlockCacheCapacity,
	}
}
