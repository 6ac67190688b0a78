package pngdecoder

import (
	"fmt"
	"math"
	"math/bits"

	"pngo/utils"
)

type ColorModel byte

const (
	Grayscale      ColorModel = 0
	Truecolor      ColorModel = 2
	Indexed        ColorModel = 3
	GrayscaleAlpha ColorModel = 4
	TruecolorAlpha ColorModel = 6
)

// allowedDepths lists the legal bit depths per color model.
var allowedDepths = map[ColorModel][]uint8{
	Grayscale:      {1, 2, 4, 8, 16},
	Truecolor:      {8, 16},
	Indexed:        {1, 2, 4, 8},
	GrayscaleAlpha: {8, 16},
	TruecolorAlpha: {8, 16},
}

func parseColorModel(code byte) (ColorModel, error) {
	switch ColorModel(code) {
	case Grayscale, Truecolor, Indexed, GrayscaleAlpha, TruecolorAlpha:
		return ColorModel(code), nil
	}
	return 0, wrongFormat("invalid color type %d", code)
}

// Channels is the number of samples per pixel.
func (c ColorModel) Channels() int {
	switch c {
	case Truecolor:
		return 3
	case GrayscaleAlpha:
		return 2
	case TruecolorAlpha:
		return 4
	}
	return 1
}

func (c ColorModel) String() string {
	switch c {
	case Grayscale:
		return "grayscale"
	case Truecolor:
		return "truecolor"
	case Indexed:
		return "indexed"
	case GrayscaleAlpha:
		return "grayscale with alpha"
	case TruecolorAlpha:
		return "truecolor with alpha"
	}
	return fmt.Sprintf("color type %d", byte(c))
}

type CompressionMethod byte

const DeflateInflate CompressionMethod = 0

type FilterMethod byte

const FiveTypeAdaptive FilterMethod = 0

type InterlaceMethod byte

const (
	NoInterlace    InterlaceMethod = 0
	Adam7Interlace InterlaceMethod = 1
)

// ColorGate selects which color models the decoder accepts. The zero value
// accepts every non-interlaced model the pixel decoder implements.
type ColorGate int

const (
	GateAllNonInterlaced ColorGate = iota
	GateIndexedOnly
)

func ParseColorGate(s string) (ColorGate, error) {
	switch s {
	case "", "all":
		return GateAllNonInterlaced, nil
	case "indexed":
		return GateIndexedOnly, nil
	}
	return 0, fmt.Errorf("unknown color gate %q (want \"all\" or \"indexed\")", s)
}

type ImageHeader struct {
	Width             uint32
	Height            uint32
	BitDepth          uint8
	ColorModel        ColorModel
	CompressionMethod CompressionMethod
	FilterMethod      FilterMethod
	InterlaceMethod   InterlaceMethod
}

const ihdrLength = 13

// InterpretHeader decodes and validates the IHDR chunk, which must be the
// first chunk. Valid headers describing features outside gate fail with
// ErrNotSupported.
func InterpretHeader(chunks []Chunk, gate ColorGate) (*ImageHeader, error) {
	if len(chunks) == 0 || chunks[0].Tag.Kind != KindHeader {
		return nil, wrongFormat("first chunk type != IHDR")
	}
	data := chunks[0].Data
	if len(data) != ihdrLength {
		return nil, wrongFormat("IHDR chunk len %d != %d", len(data), ihdrLength)
	}

	colorModel, err := parseColorModel(data[9])
	if err != nil {
		return nil, err
	}
	if data[10] != byte(DeflateInflate) {
		return nil, wrongFormat("invalid compression method %d", data[10])
	}
	if data[11] != byte(FiveTypeAdaptive) {
		return nil, wrongFormat("invalid filter method %d", data[11])
	}
	interlace := InterlaceMethod(data[12])
	if interlace != NoInterlace && interlace != Adam7Interlace {
		return nil, wrongFormat("invalid interlace method %d", data[12])
	}

	ihdr := &ImageHeader{
		Width:             utils.BytesToLength(data[0:4]),
		Height:            utils.BytesToLength(data[4:8]),
		BitDepth:          data[8],
		ColorModel:        colorModel,
		CompressionMethod: DeflateInflate,
		FilterMethod:      FiveTypeAdaptive,
		InterlaceMethod:   interlace,
	}
	if !ihdr.validDepth() {
		return nil, wrongFormat("bit depth %d invalid for %s", ihdr.BitDepth, colorModel)
	}
	if ihdr.Width == 0 || ihdr.Height == 0 {
		return nil, wrongFormat("non-positive dimension")
	}
	if ihdr.Width > math.MaxInt32 || ihdr.Height > math.MaxInt32 {
		return nil, wrongFormat("dimension exceeds 2^31-1")
	}
	// One filter byte per scanline plus up to 8 bytes per pixel.
	hi, lo := bits.Mul64(uint64(ihdr.Height), 1+8*uint64(ihdr.Width))
	if hi != 0 || lo > math.MaxInt {
		return nil, notSupported("dimension overflow")
	}

	if interlace == Adam7Interlace {
		return nil, notSupported("interlacing")
	}
	if colorModel == GrayscaleAlpha {
		return nil, notSupported("grayscale with alpha")
	}
	if gate == GateIndexedOnly && colorModel != Indexed {
		return nil, notSupported("only indexed color supported")
	}
	return ihdr, nil
}

func (ihdr *ImageHeader) validDepth() bool {
	for _, d := range allowedDepths[ihdr.ColorModel] {
		if d == ihdr.BitDepth {
			return true
		}
	}
	return false
}

// BitsPerPixel is the width of one pixel in the reconstructed data.
func (ihdr *ImageHeader) BitsPerPixel() int {
	return int(ihdr.BitDepth) * ihdr.ColorModel.Channels()
}

// BytesPerScanline excludes the leading filter-type byte.
func (ihdr *ImageHeader) BytesPerScanline() int {
	return BytesPerScanline(ihdr.Width, ihdr.BitDepth, ihdr.ColorModel)
}

func BytesPerScanline(width uint32, bitDepth uint8, colorModel ColorModel) int {
	bits := uint64(width) * uint64(bitDepth) * uint64(colorModel.Channels())
	return int((bits + 7) / 8)
}
