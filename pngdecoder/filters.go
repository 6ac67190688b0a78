package pngdecoder

// FilterType is the per-scanline filter byte.
type FilterType byte

const (
	FilterNone FilterType = iota
	FilterSub
	FilterUp
	FilterAverage
	FilterPaeth
)

// Reconstruct reverses scanline filtering. inflated holds height scanlines,
// each a filter-type byte followed by BytesPerScanline filtered bytes. The
// result is the unfiltered scanlines back to back, filter bytes removed.
//
// The left (A) and upper-left (C) neighbours sit one pixel back, which is a
// single byte for every format narrower than two bytes per pixel.
func Reconstruct(inflated []byte, width, height uint32, bitDepth uint8, colorModel ColorModel) ([]byte, error) {
	stride := BytesPerScanline(width, bitDepth, colorModel)
	bytesPerPixel := (int(bitDepth)*colorModel.Channels() + 7) / 8
	rowSize := stride + 1

	if uint64(len(inflated)) < uint64(height)*uint64(rowSize) {
		return nil, wrongFormat("not enough pixel data")
	}

	rec := make([]byte, int(height)*stride)
	var previousLine []byte
	for y := 0; y < int(height); y++ {
		filtered := inflated[y*rowSize : (y+1)*rowSize]
		scanline := rec[y*stride : (y+1)*stride]
		src := filtered[1:]

		switch FilterType(filtered[0]) {
		case FilterNone:
			copy(scanline, src)
		case FilterSub:
			processLeftFilter(scanline, src, bytesPerPixel)
		case FilterUp:
			processUpFilter(previousLine, scanline, src)
		case FilterAverage:
			processAvgFilter(previousLine, scanline, src, bytesPerPixel)
		case FilterPaeth:
			processPaethFilter(previousLine, scanline, src, bytesPerPixel)
		default:
			return nil, FilterError(filtered[0])
		}
		previousLine = scanline
	}
	return rec, nil
}

func processLeftFilter(scanline, src []byte, bytesPerPixel int) {
	for i, x := range src {
		var left byte
		if i >= bytesPerPixel {
			left = scanline[i-bytesPerPixel]
		}
		scanline[i] = x + left
	}
}

func processUpFilter(previousLine, scanline, src []byte) {
	for i, x := range src {
		var above byte
		if previousLine != nil {
			above = previousLine[i]
		}
		scanline[i] = x + above
	}
}

func processAvgFilter(previousLine, scanline, src []byte, bytesPerPixel int) {
	for i, x := range src {
		var left, above int
		if i >= bytesPerPixel {
			left = int(scanline[i-bytesPerPixel])
		}
		if previousLine != nil {
			above = int(previousLine[i])
		}
		scanline[i] = x + uint8((left+above)/2)
	}
}

func processPaethFilter(previousLine, scanline, src []byte, bytesPerPixel int) {
	for i, x := range src {
		var left, above, upperLeft int
		if i >= bytesPerPixel {
			left = int(scanline[i-bytesPerPixel])
		}
		if previousLine != nil {
			above = int(previousLine[i])
			if i >= bytesPerPixel {
				upperLeft = int(previousLine[i-bytesPerPixel])
			}
		}
		scanline[i] = x + uint8(PaethPredictor(left, above, upperLeft))
	}
}
