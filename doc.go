/*
Package sstable implements an immutable, ordered, on-disk key-value table:
a single sorted string table (SSTable) file, its writer, and its reader.

A table is built once, sequentially, by a Builder and never modified
afterward. Readers open the finished file and look up or iterate keys in
sorted order. Tables are block-structured: keys and values are grouped into
prefix-compressed data blocks, indexed by a sparse index block, and
optionally guarded by a per-table filter block for negative lookups.

# Usage

Build a table by creating a Writer over a Sink, calling Add with keys in
strictly increasing order, and calling Finish. Open a table for reading
with Open, then use NewIterator for ordered scans or Get for point
lookups.

# Concurrency

A Reader is safe for concurrent use by multiple goroutines. An Iterator
is not; each goroutine scanning a table should create its own.

# Corruption handling

A data block whose checksum fails or won't decompress is treated as a
missing key rather than a hard error: Get returns ErrNotFound, and
iteration skips the block and continues with the next. In both cases the
event is logged and counted in CorruptBlocksSkipped. Footer or index
block corruption fails Open (or the Get/iteration step that needed it)
outright, since the table cannot be navigated without them.
*/
package sstable
