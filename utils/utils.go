package utils

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"image"
	"io"
	"os"
)

func BytesToLength(data []byte) uint32 {
	return binary.BigEndian.Uint32(data)
}

// WritePPM writes img as a binary (P6) portable pixmap. Alpha is dropped.
func WritePPM(w io.Writer, img image.Image) error {
	b := img.Bounds()
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", b.Dx(), b.Dy()); err != nil {
		return err
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if _, err := bw.Write([]byte{byte(r >> 8), byte(g >> 8), byte(bl >> 8)}); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

func CreatePPM(name string, img image.Image) error {
	file, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := WritePPM(file, img); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
