package compression

import (
	"bytes"
	"strings"
	"testing"
)

func TestCompressDecompressRoundtrip(t *testing.T) {
	payload := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog "), 50)

	types := []Type{None, Snappy, Zlib, LZ4, Zstd}
	for _, typ := range types {
		t.Run(typ.String(), func(t *testing.T) {
			compressed, err := Compress(typ, payload)
			if err != nil {
				t.Fatalf("Compress error: %v", err)
			}

			var decompressed []byte
			if typ == LZ4 {
				decompressed, err = DecompressWithSize(typ, compressed, len(payload))
			} else {
				decompressed, err = Decompress(typ, compressed)
			}
			if err != nil {
				t.Fatalf("Decompress error: %v", err)
			}
			if !bytes.Equal(decompressed, payload) {
				t.Errorf("roundtrip mismatch for %s: got %d bytes, want %d bytes", typ, len(decompressed), len(payload))
			}
		})
	}
}

func TestCompressEmptyInput(t *testing.T) {
	types := []Type{None, Snappy, Zlib, Zstd}
	for _, typ := range types {
		compressed, err := Compress(typ, []byte{})
		if err != nil {
			t.Fatalf("Compress(%s, empty) error: %v", typ, err)
		}
		decompressed, err := Decompress(typ, compressed)
		if err != nil {
			t.Fatalf("Decompress(%s, empty) error: %v", typ, err)
		}
		if len(decompressed) != 0 {
			t.Errorf("Decompress(%s, empty) = %d bytes, want 0", typ, len(decompressed))
		}
	}
}

func TestCompressUnsupportedType(t *testing.T) {
	_, err := Compress(Type(0xFF), []byte("data"))
	if err == nil {
		t.Fatal("Compress with an unsupported type did not error")
	}
}

func TestDecompressUnsupportedType(t *testing.T) {
	_, err := Decompress(Type(0xFF), []byte("data"))
	if err == nil {
		t.Fatal("Decompress with an unsupported type did not error")
	}
}

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{None, "none"},
		{Snappy, "snappy"},
		{Zlib, "zlib"},
		{LZ4, "lz4"},
		{Zstd, "zstd"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("Type(%d).String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
	if got := Type(0xFF).String(); !strings.Contains(got, "unknown") {
		t.Errorf("Type(0xFF).String() = %q, want it to mention unknown", got)
	}
}

func TestIsSupported(t *testing.T) {
	for _, typ := range []Type{None, Snappy, Zlib, LZ4, Zstd} {
		if !typ.IsSupported() {
			t.Errorf("%s.IsSupported() = false, want true", typ)
		}
	}
	if Type(0xFF).IsSupported() {
		t.Error("Type(0xFF).IsSupported() = true, want false")
	}
}

func TestShouldCompress(t *testing.T) {
	tests := []struct {
		compressedSize int
		rawSize        int
		want           bool
	}{
		{50, 100, true},   // well under 87.5%
		{90, 100, false},  // above the 87.5% threshold
		{87, 100, true},   // just under the threshold
		{100, 100, false}, // no savings at all
	}
	for _, tt := range tests {
		if got := ShouldCompress(tt.compressedSize, tt.rawSize); got != tt.want {
			t.Errorf("ShouldCompress(%d, %d) = %v, want %v", tt.compressedSize, tt.rawSize, got, tt.want)
		}
	}
}
