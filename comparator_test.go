package sstable

import (
	"testing"
)

func TestBytewiseComparatorCompare(t *testing.T) {
	c := BytewiseComparator{}
	tests := []struct {
		a, b string
		want int
	}{
		{"a", "b", -1},
		{"b", "a", 1},
		{"a", "a", 0},
		{"", "a", -1},
	}
	for _, tt := range tests {
		got := c.Compare([]byte(tt.a), []byte(tt.b))
		if sign(got) != tt.want {
			t.Errorf("Compare(%q, %q) = %d, want sign %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

func TestFindShortestSeparator(t *testing.T) {
	c := BytewiseComparator{}

	tests := []struct {
		a, b string
	}{
		{"abc", "abd"},
		{"a", "aa"},
		{"abc", "abc"},
		{"", "abc"},
	}

	for _, tt := range tests {
		sep := c.FindShortestSeparator([]byte(tt.a), []byte(tt.b))
		if c.Compare(sep, []byte(tt.a)) < 0 {
			t.Errorf("FindShortestSeparator(%q, %q) = %q, which is < a", tt.a, tt.b, sep)
		}
		if tt.a == tt.b {
			// No key k satisfies a <= k < b, so a comes back unchanged.
			if string(sep) != tt.a {
				t.Errorf("FindShortestSeparator(%q, %q) = %q, want a unchanged", tt.a, tt.b, sep)
			}
		} else if c.Compare(sep, []byte(tt.b)) >= 0 {
			t.Errorf("FindShortestSeparator(%q, %q) = %q, which is >= b", tt.a, tt.b, sep)
		}
	}
}

func TestFindShortSuccessor(t *testing.T) {
	c := BytewiseComparator{}

	tests := []string{"abc", "a", string([]byte{0xFF, 0xFF}), ""}
	for _, a := range tests {
		succ := c.FindShortSuccessor([]byte(a))
		if c.Compare(succ, []byte(a)) < 0 {
			t.Errorf("FindShortSuccessor(%q) = %v, which is < a", a, succ)
		}
	}
}

func TestDefaultComparatorIsBytewise(t *testing.T) {
	cmp := DefaultComparator()
	if cmp.Name() != "leveldb.BytewiseComparator" {
		t.Errorf("Name() = %q, want %q", cmp.Name(), "leveldb.BytewiseComparator")
	}
	if cmp.Compare([]byte("a"), []byte("b")) >= 0 {
		t.Error("DefaultComparator did not compare bytewise")
	}
}
