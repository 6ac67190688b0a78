package pngdecoder

import (
	"golang.org/x/sync/errgroup"
)

// pixelDecoder turns one reconstructed scanline into width colors.
type pixelDecoder interface {
	decodeRow(dst []Color, row []byte) error
}

func newPixelDecoder(ihdr *ImageHeader, palette Palette) (pixelDecoder, error) {
	switch ihdr.ColorModel {
	case Indexed:
		if len(palette) == 0 {
			return nil, wrongFormat("PLTE chunk missing, required for indexed color")
		}
		return indexedDecoder{depth: ihdr.BitDepth, palette: palette}, nil
	case Grayscale:
		return grayscaleDecoder{depth: ihdr.BitDepth}, nil
	case Truecolor:
		return truecolorDecoder{bytesPerChannel: int(ihdr.BitDepth) / 8, channels: 3}, nil
	case TruecolorAlpha:
		return truecolorDecoder{bytesPerChannel: int(ihdr.BitDepth) / 8, channels: 4}, nil
	case GrayscaleAlpha:
		return nil, notSupported("grayscale with alpha")
	}
	return nil, wrongFormat("invalid color type %d", byte(ihdr.ColorModel))
}

// sampleAt extracts sample x of a scanline packed most significant bit
// first. 16-bit samples yield their most significant byte.
func sampleAt(row []byte, depth uint8, x int) uint8 {
	switch depth {
	case 8:
		return row[x]
	case 16:
		return row[2*x]
	}
	bit := x * int(depth)
	shift := 8 - int(depth) - bit%8
	mask := uint8(1)<<depth - 1
	return row[bit/8] >> shift & mask
}

type indexedDecoder struct {
	depth   uint8
	palette Palette
}

func (d indexedDecoder) decodeRow(dst []Color, row []byte) error {
	for x := range dst {
		idx := int(sampleAt(row, d.depth, x))
		if idx >= len(d.palette) {
			return wrongFormat("palette index %d out of range (%d entries)", idx, len(d.palette))
		}
		dst[x] = d.palette[idx]
	}
	return nil
}

type grayscaleDecoder struct {
	depth uint8
}

// grayScale maps a sample of the given depth onto 0..255.
var grayScale = map[uint8]uint8{1: 0xff, 2: 0x55, 4: 0x11, 8: 1, 16: 1}

func (d grayscaleDecoder) decodeRow(dst []Color, row []byte) error {
	mul := grayScale[d.depth]
	for x := range dst {
		v := sampleAt(row, d.depth, x) * mul
		dst[x] = Color{Red: v, Green: v, Blue: v}
	}
	return nil
}

// truecolorDecoder reads red, green and blue from byte-aligned pixels and
// skips any alpha channel.
type truecolorDecoder struct {
	bytesPerChannel int
	channels        int
}

func (d truecolorDecoder) decodeRow(dst []Color, row []byte) error {
	pixelSize := d.bytesPerChannel * d.channels
	for x := range dst {
		px := row[x*pixelSize:]
		dst[x] = Color{
			Red:   px[0],
			Green: px[d.bytesPerChannel],
			Blue:  px[2*d.bytesPerChannel],
		}
	}
	return nil
}

// DecodePixels converts reconstructed scanlines into a grid of colors. With
// workers > 1 rows are decoded concurrently, at most workers at a time.
func DecodePixels(data []byte, ihdr *ImageHeader, palette Palette, workers int) (*DecodedImage, error) {
	dec, err := newPixelDecoder(ihdr, palette)
	if err != nil {
		return nil, err
	}
	width, height := int(ihdr.Width), int(ihdr.Height)
	stride := ihdr.BytesPerScanline()
	if uint64(len(data)) < uint64(height)*uint64(stride) {
		return nil, wrongFormat("not enough pixel data")
	}

	img := newDecodedImage(width, height)
	if workers <= 1 {
		for y, row := range img.Rows {
			if err := dec.decodeRow(row, data[y*stride:(y+1)*stride]); err != nil {
				return nil, err
			}
		}
		return img, nil
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for y, row := range img.Rows {
		y, row := y, row
		g.Go(func() error {
			return dec.decodeRow(row, data[y*stride:(y+1)*stride])
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return img, nil
}
