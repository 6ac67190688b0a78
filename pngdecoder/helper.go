package pngdecoder

import (
	"bytes"
	"hash/crc32"
)

var pngHeader = []uint8{137, 80, 78, 71, 13, 10, 26, 10}

func isPNG(data []byte) bool {
	n := len(pngHeader)
	if len(data) < n {
		return false
	}
	return bytes.Equal(pngHeader, data[0:n])
}

// Crc32 is CRC-32/ISO-HDLC (reflected polynomial 0xEDB88320), the checksum
// every chunk carries over its tag and payload.
func Crc32(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}

// PaethPredictor returns whichever of a, b, c is closest to a+b-c, preferring
// a, then b, then c on ties.
func PaethPredictor(a, b, c int) int {
	p := a + b - c
	pa := abs(p - a)
	pb := abs(p - b)
	pc := abs(p - c)

	if pa <= pb && pa <= pc {
		return a
	} else if pb <= pc {
		return b
	}
	return c
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
