package encoding

import (
	"bytes"
	"errors"
	"math"
	"testing"
)

func TestFixed32(t *testing.T) {
	tests := []struct {
		name  string
		value uint32
		want  []byte
	}{
		{"zero", 0, []byte{0x00, 0x00, 0x00, 0x00}},
		{"one", 1, []byte{0x01, 0x00, 0x00, 0x00}},
		{"max", 0xFFFFFFFF, []byte{0xFF, 0xFF, 0xFF, 0xFF}},
		{"0x12345678", 0x12345678, []byte{0x78, 0x56, 0x34, 0x12}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]byte, 4)
			EncodeFixed32(buf, tt.value)
			if !bytes.Equal(buf, tt.want) {
				t.Errorf("EncodeFixed32(%d) = %v, want %v", tt.value, buf, tt.want)
			}
			if got := DecodeFixed32(tt.want); got != tt.value {
				t.Errorf("DecodeFixed32(%v) = %d, want %d", tt.want, got, tt.value)
			}
			if appended := AppendFixed32(nil, tt.value); !bytes.Equal(appended, tt.want) {
				t.Errorf("AppendFixed32(%d) = %v, want %v", tt.value, appended, tt.want)
			}
		})
	}
}

func TestFixed64(t *testing.T) {
	tests := []struct {
		name  string
		value uint64
		want  []byte
	}{
		{"zero", 0, []byte{0, 0, 0, 0, 0, 0, 0, 0}},
		{"0x123456789ABCDEF0", 0x123456789ABCDEF0, []byte{0xF0, 0xDE, 0xBC, 0x9A, 0x78, 0x56, 0x34, 0x12}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]byte, 8)
			EncodeFixed64(buf, tt.value)
			if !bytes.Equal(buf, tt.want) {
				t.Errorf("EncodeFixed64(%d) = %v, want %v", tt.value, buf, tt.want)
			}
			if got := DecodeFixed64(tt.want); got != tt.value {
				t.Errorf("DecodeFixed64(%v) = %d, want %d", tt.want, got, tt.value)
			}
		})
	}
}

func TestVarint32(t *testing.T) {
	tests := []struct {
		name  string
		value uint32
		want  []byte
	}{
		{"zero", 0, []byte{0x00}},
		{"127", 127, []byte{0x7F}},
		{"128", 128, []byte{0x80, 0x01}},
		{"300", 300, []byte{0xAC, 0x02}},
		{"max", 0xFFFFFFFF, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x0F}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]byte, MaxVarint32Length)
			n := EncodeVarint32(buf, tt.value)
			if !bytes.Equal(buf[:n], tt.want) {
				t.Errorf("EncodeVarint32(%d) = %v, want %v", tt.value, buf[:n], tt.want)
			}

			got, bytesRead, err := DecodeVarint32(tt.want)
			if err != nil {
				t.Fatalf("DecodeVarint32(%v) error: %v", tt.want, err)
			}
			if got != tt.value || bytesRead != len(tt.want) {
				t.Errorf("DecodeVarint32(%v) = %d, %d, want %d, %d", tt.want, got, bytesRead, tt.value, len(tt.want))
			}
		})
	}
}

func TestVarint32DecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   []byte
		wantErr error
	}{
		{"empty", []byte{}, ErrVarintTermination},
		{"unterminated", []byte{0x80, 0x80}, ErrVarintTermination},
		{"overflow", []byte{0x80, 0x80, 0x80, 0x80, 0x80}, ErrVarintOverflow},
		// 5th byte terminates (no continuation bit) but its payload carries
		// bits beyond the 4 that fit in a uint32 — value too large, not a
		// silently truncated one.
		{"terminated_but_too_wide", []byte{0x80, 0x80, 0x80, 0x80, 0x10}, ErrVarintOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeVarint32(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("DecodeVarint32(%v) error = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestVarint64Roundtrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, math.MaxUint32, math.MaxUint32 + 1, math.MaxUint64}
	for _, v := range values {
		encoded := AppendVarint64(nil, v)
		decoded, n, err := DecodeVarint64(encoded)
		if err != nil {
			t.Errorf("roundtrip error for %d: %v", v, err)
			continue
		}
		if decoded != v || n != len(encoded) {
			t.Errorf("roundtrip failed for %d: got %d (n=%d)", v, decoded, n)
		}
	}
}

func TestVarintLength(t *testing.T) {
	tests := []struct {
		value uint64
		want  int
	}{
		{0, 1},
		{127, 1},
		{128, 2},
		{16383, 2},
		{16384, 3},
		{math.MaxUint32, 5},
		{math.MaxUint64, 10},
	}

	for _, tt := range tests {
		if got := VarintLength(tt.value); got != tt.want {
			t.Errorf("VarintLength(%d) = %d, want %d", tt.value, got, tt.want)
		}
	}
}

func TestSlice(t *testing.T) {
	var buf []byte
	buf = AppendVarint32(buf, 300)
	buf = AppendVarint64(buf, math.MaxUint64)
	buf = append(buf, []byte("test")...)

	s := NewSlice(buf)

	if v, ok := s.GetVarint32(); !ok || v != 300 {
		t.Errorf("GetVarint32() = %d, %v", v, ok)
	}
	if v, ok := s.GetVarint64(); !ok || v != math.MaxUint64 {
		t.Errorf("GetVarint64() = %d, %v", v, ok)
	}
	if v, ok := s.GetBytes(4); !ok || string(v) != "test" {
		t.Errorf("GetBytes(4) = %q, %v", v, ok)
	}
	if s.Remaining() != 0 {
		t.Errorf("Remaining() = %d, want 0", s.Remaining())
	}
	if _, ok := s.GetBytes(1); ok {
		t.Error("GetBytes(1) on exhausted slice = ok, want false")
	}
}
