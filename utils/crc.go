package utils

import "hash/crc32"

// Checksum returns the IEEE crc32 of a slot body
func Checksum(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}

func VerifyChecksum(data []byte, want uint32) bool {
	return Checksum(data) == want
}
