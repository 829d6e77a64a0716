package block

import (
	"github.com/cellarkv/sstable/internal/checksum"
	"github.com/cellarkv/sstable/internal/encoding"
)

// TrailerSize is the fixed size of the trailer appended after every block's
// payload: a one-byte compression type followed by a 4-byte LE checksum.
const TrailerSize = 5

// AppendTrailer appends the trailer for payload (the block's on-disk bytes,
// already compressed if compressionType calls for it) to dst.
func AppendTrailer(dst []byte, payload []byte, compressionType byte) []byte {
	dst = append(dst, compressionType)
	cksum := checksum.ComputeBlockChecksum(payload, compressionType)
	return encoding.AppendFixed32(dst, cksum)
}

// VerifyTrailer checks payload+compressionType against the trailer's
// recorded checksum.
func VerifyTrailer(payload []byte, compressionType byte, recordedChecksum uint32) bool {
	return checksum.ComputeBlockChecksum(payload, compressionType) == recordedChecksum
}
