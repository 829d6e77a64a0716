// Package checksum implements the masked CRC32C checksum used to guard
// every on-disk block against silent corruption.
package checksum

import (
	"hash/crc32"
)

// table is the Castagnoli polynomial table used for CRC32C.
var table = crc32.MakeTable(crc32.Castagnoli)

// maskDelta is the additive constant applied during masking.
const maskDelta = 0xa282ead8

// Value computes the CRC32C checksum of data.
func Value(data []byte) uint32 {
	return crc32.Checksum(data, table)
}

// Extend computes the CRC32C of concat(a, data) where initCRC is the CRC32C of a.
func Extend(initCRC uint32, data []byte) uint32 {
	return crc32.Update(initCRC, table, data)
}

// Mask returns a masked representation of crc.
//
// Storing a raw CRC next to the data it covers is dangerous: a string that
// embeds its own checksum trivially satisfies many checksum functions under
// small targeted edits. Masking (rotate + add a constant) breaks that
// identity property.
func Mask(crc uint32) uint32 {
	return ((crc >> 15) | (crc << 17)) + maskDelta
}

// Unmask reverses Mask.
func Unmask(maskedCRC uint32) uint32 {
	rot := maskedCRC - maskDelta
	return (rot >> 17) | (rot << 15)
}

// MaskedValue computes the CRC32C of data and masks it in one call.
func MaskedValue(data []byte) uint32 {
	return Mask(Value(data))
}

// MaskedExtend extends an existing CRC and masks the result.
func MaskedExtend(initCRC uint32, data []byte) uint32 {
	return Mask(Extend(initCRC, data))
}
