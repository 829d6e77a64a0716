package checksum

// Type identifies the checksum algorithm covering a block trailer.
type Type uint8

const (
	// TypeNoChecksum means no checksum is present.
	TypeNoChecksum Type = 0
	// TypeCRC32C is CRC32C (Castagnoli), the only algorithm this package computes.
	TypeCRC32C Type = 1
)

// String returns a human-readable name for the checksum type.
func (t Type) String() string {
	switch t {
	case TypeNoChecksum:
		return "NoChecksum"
	case TypeCRC32C:
		return "CRC32C"
	default:
		return "Unknown"
	}
}

// ComputeBlockChecksum computes the masked CRC32C checksum covering a block's
// payload plus the compression type byte that follows it on disk, without
// requiring the caller to concatenate the two into one buffer first.
func ComputeBlockChecksum(payload []byte, compressionType byte) uint32 {
	crc := Value(payload)
	crc = Extend(crc, []byte{compressionType})
	return Mask(crc)
}
