package pngdecoder

import (
	"image"
	"image/color"
)

// DecodedImage is the row-major decoding result: len(Rows) is the image
// height and every row holds width colors. It implements image.Image.
type DecodedImage struct {
	Rows [][]Color
}

func newDecodedImage(width, height int) *DecodedImage {
	pix := make([]Color, width*height)
	rows := make([][]Color, height)
	for y := range rows {
		rows[y] = pix[y*width : (y+1)*width : (y+1)*width]
	}
	return &DecodedImage{Rows: rows}
}

func (img *DecodedImage) Width() int {
	if len(img.Rows) == 0 {
		return 0
	}
	return len(img.Rows[0])
}

func (img *DecodedImage) Height() int {
	return len(img.Rows)
}

func (img *DecodedImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, img.Width(), img.Height())
}

func (img *DecodedImage) ColorModel() color.Model {
	return color.RGBAModel
}

func (img *DecodedImage) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(img.Bounds())) {
		return Color{}
	}
	return img.Rows[y][x]
}

// ToRGBA copies the image into an opaque *image.RGBA.
func (img *DecodedImage) ToRGBA() *image.RGBA {
	dst := image.NewRGBA(img.Bounds())
	for y, row := range img.Rows {
		for x, c := range row {
			i := dst.PixOffset(x, y)
			dst.Pix[i+0] = c.Red
			dst.Pix[i+1] = c.Green
			dst.Pix[i+2] = c.Blue
			dst.Pix[i+3] = 0xff
		}
	}
	return dst
}
