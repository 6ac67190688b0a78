package pngdecoder

import (
	"github.com/teacat/noire"
)

// Color is an 8-bit RGB triple. It implements color.Color as fully opaque.
type Color struct {
	Red   uint8
	Green uint8
	Blue  uint8
}

func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.Red)
	r |= r << 8
	g = uint32(c.Green)
	g |= g << 8
	b = uint32(c.Blue)
	b |= b << 8
	return r, g, b, 0xffff
}

// Hex formats the color as a hex triplet.
func (c Color) Hex() string {
	return noire.NewRGB(float64(c.Red), float64(c.Green), float64(c.Blue)).Hex()
}

// Palette is the PLTE color table; an index is a palette entry id.
type Palette []Color

const maxPaletteEntries = 256

// ExtractPalette parses the first PLTE chunk. It returns a nil palette and
// no error when there is none.
func ExtractPalette(chunks []Chunk) (Palette, error) {
	for _, chunk := range chunks {
		if chunk.Tag.Kind != KindPalette {
			continue
		}
		colorData := chunk.Data
		if len(colorData)%3 != 0 {
			return nil, wrongFormat("PLTE length %d is not a multiple of 3", len(colorData))
		}
		np := len(colorData) / 3
		if np == 0 || np > maxPaletteEntries {
			return nil, wrongFormat("bad PLTE entry count %d", np)
		}
		palette := make(Palette, np)
		for i := range palette {
			palette[i] = Color{
				Red:   colorData[3*i],
				Green: colorData[3*i+1],
				Blue:  colorData[3*i+2],
			}
		}
		return palette, nil
	}
	return nil, nil
}
