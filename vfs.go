package sstable

import "github.com/cellarkv/sstable/internal/vfs"

// Sink is the sequential byte destination a Writer appends to: a buffer,
// a pipe, or a regular file opened with CreateFile.
type Sink = vfs.Sink

// Source is the random-access byte origin a Reader opens a table from: an
// in-memory byte slice, or a regular file opened with OpenFile.
type Source = vfs.Source

// CreateFile creates (or truncates) name and returns it as a Sink.
func CreateFile(name string) (Sink, error) {
	return vfs.CreateFile(name)
}

// OpenFile opens name for random-access reads and returns it as a Source.
func OpenFile(name string) (Source, error) {
	return vfs.OpenFile(name)
}
