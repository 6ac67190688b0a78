package pngdecoder

import (
	"encoding/binary"
	"testing"

	"pngo/compression"

	"github.com/stretchr/testify/require"
)

// makeChunk frames one chunk with a correct CRC.
func makeChunk(tag string, data []byte) []byte {
	out := make([]byte, 4, 12+len(data))
	binary.BigEndian.PutUint32(out, uint32(len(data)))
	out = append(out, tag...)
	out = append(out, data...)
	return binary.BigEndian.AppendUint32(out, Crc32(out[4:]))
}

func ihdrData(width, height uint32, depth, colorType, interlace byte) []byte {
	data := make([]byte, 13)
	binary.BigEndian.PutUint32(data[0:4], width)
	binary.BigEndian.PutUint32(data[4:8], height)
	data[8] = depth
	data[9] = colorType
	data[12] = interlace
	return data
}

func makeIHDR(width, height uint32, depth, colorType, interlace byte) []byte {
	return makeChunk("IHDR", ihdrData(width, height, depth, colorType, interlace))
}

func makeIEND() []byte {
	return makeChunk("IEND", nil)
}

func makeIDAT(t *testing.T, raw []byte) []byte {
	t.Helper()
	compressed, err := compression.DeflateData(raw)
	require.NoError(t, err)
	return makeChunk("IDAT", compressed)
}

func buildPNG(chunks ...[]byte) []byte {
	out := append([]byte(nil), pngHeader...)
	for _, c := range chunks {
		out = append(out, c...)
	}
	return out
}

// unfilteredScanlines prefixes every row with filter type None.
func unfilteredScanlines(rows ...[]byte) []byte {
	var out []byte
	for _, row := range rows {
		out = append(out, byte(FilterNone))
		out = append(out, row...)
	}
	return out
}

func paletteData(colors ...Color) []byte {
	var out []byte
	for _, c := range colors {
		out = append(out, c.Red, c.Green, c.Blue)
	}
	return out
}

// filterScanline applies filter ft to raw, the forward direction of
// Reconstruct.
func filterScanline(ft FilterType, raw, prev []byte, bytesPerPixel int) []byte {
	out := make([]byte, len(raw))
	for i, x := range raw {
		var a, b, c int
		if i >= bytesPerPixel {
			a = int(raw[i-bytesPerPixel])
		}
		if prev != nil {
			b = int(prev[i])
			if i >= bytesPerPixel {
				c = int(prev[i-bytesPerPixel])
			}
		}
		switch ft {
		case FilterNone:
			out[i] = x
		case FilterSub:
			out[i] = x - uint8(a)
		case FilterUp:
			out[i] = x - uint8(b)
		case FilterAverage:
			out[i] = x - uint8((a+b)/2)
		case FilterPaeth:
			out[i] = x - uint8(PaethPredictor(a, b, c))
		}
	}
	return out
}
