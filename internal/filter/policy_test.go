package filter

import "testing"

func TestBloomPolicyName(t *testing.T) {
	p := NewBloomPolicy(10)
	if p.Name() != "leveldb.BuiltinBloomFilter" {
		t.Errorf("Name() = %q, want %q", p.Name(), "leveldb.BuiltinBloomFilter")
	}
}

func TestBloomPolicyCreateAndMatch(t *testing.T) {
	p := NewBloomPolicy(10)
	keys := [][]byte{[]byte("x"), []byte("y"), []byte("z")}
	data := p.CreateFilter(keys)

	for _, k := range keys {
		if !p.KeyMayMatch(k, data) {
			t.Errorf("KeyMayMatch(%q) = false, want true", k)
		}
	}
}

func TestBloomPolicyDefaultBitsPerKey(t *testing.T) {
	p := NewBloomPolicy(0)
	if p.BitsPerKey != defaultBitsPerKey {
		t.Errorf("BitsPerKey = %d, want default %d", p.BitsPerKey, defaultBitsPerKey)
	}
}
