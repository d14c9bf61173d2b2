// Package checksum provides the rolling CRC-32 used to compare secure
// strings without decoding them.
//
// The polynomial is IEEE 802.3 (reflected 0xedb88320), so Sum agrees
// bit for bit with checksums produced by other CRC-32 implementations.
package checksum

import "hash/crc32"

var table = crc32.IEEETable

// Sum returns the CRC-32 of b. The empty input sums to 0.
func Sum(b []byte) uint32 {
	return crc32.ChecksumIEEE(b)
}

// Fold extends prior with one more byte. Folding into 0 yields the
// checksum of the single byte, so Fold(b, 0) == Sum([]byte{b}).
//
// Fold works on the byte value directly and never places it in a slice.
func Fold(b byte, prior uint32) uint32 {
	crc := ^prior
	crc = table[byte(crc)^b] ^ (crc >> 8)
	return ^crc
}
