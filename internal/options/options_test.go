package options

import "testing"

func TestDefault(t *testing.T) {
	o := Default()

	if o.BlockSize != defaultBlockSize {
		t.Errorf("BlockSize = %d, want %d", o.BlockSize, defaultBlockSize)
	}
	if o.BlockRestartInterval != defaultBlockRestartInterval {
		t.Errorf("BlockRestartInterval = %d, want %d", o.BlockRestartInterval, defaultBlockRestartInterval)
	}
	if o.BlockCacheCapacity != defaultBlockCacheCapacity {
		t.Errorf("BlockCacheCapacity = %d, want %d", o.BlockCacheCapacity, defaultBlockCacheCapacity)
	}
	if o.FilterPolicy != nil {
		t.Error("Default().FilterPolicy is non-nil, want nil")
	}
	if o.Comparator != nil {
		t.Error("Default().Comparator is non-nil, want nil")
	}
}
