package block

import "testing"

func TestAppendVerifyTrailer(t *testing.T) {
	payload := []byte("some block payload bytes")
	compressionType := byte(1)

	dst := AppendTrailer(nil, payload, compressionType)
	if len(dst) != TrailerSize {
		t.Fatalf("len(trailer) = %d, want %d", len(dst), TrailerSize)
	}

	gotCompressionType := dst[0]
	if gotCompressionType != compressionType {
		t.Errorf("trailer compression type = %d, want %d", gotCompressionType, compressionType)
	}

	recordedChecksum := uint32(dst[1]) | uint32(dst[2])<<8 | uint32(dst[3])<<16 | uint32(dst[4])<<24
	if !VerifyTrailer(payload, compressionType, recordedChecksum) {
		t.Error("VerifyTrailer() = false for an untampered trailer")
	}
}

func TestVerifyTrailerDetectsCorruption(t *testing.T) {
	payload := []byte("some block payload bytes")
	compressionType := byte(0)
	dst := AppendTrailer(nil, payload, compressionType)
	recordedChecksum := uint32(dst[1]) | uint32(dst[2])<<8 | uint32(dst[3])<<16 | uint32(dst[4])<<24

	t.Run("corrupted_payload", func(t *testing.T) {
		corrupted := append([]byte{}, payload...)
		corrupted[0] ^= 0xFF
		if VerifyTrailer(corrupted, compressionType, recordedChecksum) {
			t.Error("VerifyTrailer() = true for a corrupted payload")
		}
	})

	t.Run("wrong_compression_type", func(t *testing.T) {
		if VerifyTrailer(payload, compressionType+1, recordedChecksum) {
			t.Error("VerifyTrailer() = true for a mismatched compression type")
		}
	})
}
