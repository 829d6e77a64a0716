package filter

// Policy is a filter algorithm, kept opaque to the table and block
// layers beyond its three operations. The serialized policy name is
// stored in the meta-index so a reader can detect a mismatched policy.
type Policy interface {
	// Name identifies the policy, e.g. "leveldb.BuiltinBloomFilter".
	Name() string

	// CreateFilter builds an opaque filter blob over keys.
	CreateFilter(keys [][]byte) []byte

	// KeyMayMatch reports whether key may be a member of filter. It must
	// never return false for a key that was in the set CreateFilter built
	// the filter from.
	KeyMayMatch(key, filter []byte) bool
}

// BloomPolicy is the default Policy: a classic Bloom filter with a
// configurable bits-per-key ratio.
type BloomPolicy struct {
	BitsPerKey int
}

// NewBloomPolicy returns a BloomPolicy targeting bitsPerKey bits of
// filter storage per key.
func NewBloomPolicy(bitsPerKey int) BloomPolicy {
	if bitsPerKey < 1 {
		bitsPerKey = defaultBitsPerKey
	}
	return BloomPolicy{BitsPerKey: bitsPerKey}
}

// Name returns the policy's registered name.
func (p BloomPolicy) Name() string {
	return "leveldb.BuiltinBloomFilter"
}

// CreateFilter builds a Bloom filter over keys.
func (p BloomPolicy) CreateFilter(keys [][]byte) []byte {
	b := NewBuilder(p.BitsPerKey)
	for _, k := range keys {
		b.AddKey(k)
	}
	return b.Finish()
}

// KeyMayMatch tests key against an encoded Bloom filter.
func (p BloomPolicy) KeyMayMatch(key, filterData []byte) bool {
	return NewReader(filterData).MayContain(key)
}
