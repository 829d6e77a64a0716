// Package vfs provides the minimal byte sink/source abstractions the table
// builder and reader consume: anything that can be written to sequentially,
// and anything that can be read from at arbitrary offsets. The specific
// storage backend (OS file, in-memory buffer, network object) is a detail
// this package deliberately does not fix.
package vfs

import (
	"io"
	"os"
)

// Sink is a sequential byte destination a table is built into.
type Sink interface {
	io.Writer

	// Sync flushes the sink's contents to stable storage.
	Sync() error

	// Close releases the sink. Closing without a preceding Finish on the
	// table builder leaves a partial, invalid file behind; the sink itself
	// is left in a well-defined, closed state.
	Close() error
}

// Source is a random-access byte origin a table is read from.
type Source interface {
	io.ReaderAt
	io.Closer

	// Size returns the total number of readable bytes.
	Size() int64
}

// CreateFile creates name on the OS filesystem, truncating it if it
// already exists, and returns it as a Sink.
func CreateFile(name string) (Sink, error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	return &osSink{f: f}, nil
}

// OpenFile opens name on the OS filesystem for random-access reads.
func OpenFile(name string) (Source, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &osSource{f: f, size: info.Size()}, nil
}

type osSink struct {
	f *os.File
}

func (s *osSink) Write(p []byte) (int, error) { return s.f.Write(p) }
func (s *osSink) Sync() error                  { return s.f.Sync() }
func (s *osSink) Close() error                 { return s.f.Close() }

type osSource struct {
	f    *os.File
	size int64
}

func (s *osSource) ReadAt(p []byte, off int64) (int, error) { return s.f.ReadAt(p, off) }
func (s *osSource) Close() error                            { return s.f.Close() }
func (s *osSource) Size() int64                             { return s.size }
