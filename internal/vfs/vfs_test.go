package vfs

import (
	"path/filepath"
	"testing"
)

func TestCreateFileOpenFileRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.sst")

	sink, err := CreateFile(path)
	if err != nil {
		t.Fatalf("CreateFile() error: %v", err)
	}
	payload := []byte("some table bytes")
	if _, err := sink.Write(payload); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if err := sink.Sync(); err != nil {
		t.Fatalf("Sync() error: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	src, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error: %v", err)
	}
	defer src.Close()

	if src.Size() != int64(len(payload)) {
		t.Errorf("Size() = %d, want %d", src.Size(), len(payload))
	}

	buf := make([]byte, len(payload))
	if _, err := src.ReadAt(buf, 0); err != nil {
		t.Fatalf("ReadAt() error: %v", err)
	}
	if string(buf) != string(payload) {
		t.Errorf("ReadAt() = %q, want %q", buf, payload)
	}
}

func TestCreateFileTruncatesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.sst")

	sink, _ := CreateFile(path)
	sink.Write([]byte("a long first payload"))
	sink.Close()

	sink2, err := CreateFile(path)
	if err != nil {
		t.Fatalf("second CreateFile() error: %v", err)
	}
	sink2.Write([]byte("short"))
	sink2.Close()

	src, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error: %v", err)
	}
	defer src.Close()
	if src.Size() != int64(len("short")) {
		t.Errorf("Size() = %d after truncating create, want %d", src.Size(), len("short"))
	}
}

func TestOpenFileMissingReturnsError(t *testing.T) {
	_, err := OpenFile(filepath.Join(t.TempDir(), "does-not-exist.sst"))
	if err == nil {
		t.Error("OpenFile() on a missing file did not error")
	}
}
