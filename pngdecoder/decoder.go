// Package pngdecoder decodes non-interlaced PNG images into grids of RGB
// colors.
//
// The pipeline is: Frame (signature, chunks, CRCs) -> InterpretHeader ->
// ExtractPalette / AggregateImageData -> inflate -> Reconstruct ->
// DecodePixels. Any format violation stops the pipeline before the image
// data is inflated. A PngDecoder holds no per-image state, so one may be shared
// between goroutines.
package pngdecoder

import (
	"os"

	"pngo/compression"
	"pngo/oops"

	"github.com/rs/zerolog"
)

type Options struct {
	Gate ColorGate
	// RowWorkers > 1 decodes pixel rows concurrently.
	RowWorkers int
	// Logger defaults to a no-op logger.
	Logger *zerolog.Logger
}

// PngImage is a parsed image whose scanlines have been inflated and
// reconstructed but not yet turned into colors.
type PngImage struct {
	Header  ImageHeader
	Palette Palette
	// Data holds Header.Height scanlines of Header.BytesPerScanline() bytes.
	Data []byte
}

type PngDecoder struct {
	opts Options
	log  zerolog.Logger
}

func NewDecoder(opts Options) *PngDecoder {
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = opts.Logger.With().Str("component", "pngdecoder").Logger()
	}
	return &PngDecoder{
		opts: opts,
		log:  logger,
	}
}

// Decode decodes a PNG held in memory with default options.
func Decode(data []byte) (*DecodedImage, error) {
	return NewDecoder(Options{}).Decode(data)
}

// DecodeFile reads and decodes the PNG at path with default options.
func DecodeFile(path string) (*DecodedImage, error) {
	return NewDecoder(Options{}).DecodeFile(path)
}

// ReadFile reads a whole file; failures wrap ErrIO.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, oops.New(ErrIO, "%v", err)
	}
	return data, nil
}

func (pd *PngDecoder) DecodeFile(path string) (*DecodedImage, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, err := pd.Decode(data)
	if err != nil {
		pd.log.Debug().Err(err).Str("path", path).Msg("decode failed")
		return nil, err
	}
	return img, nil
}

func (pd *PngDecoder) Decode(data []byte) (*DecodedImage, error) {
	png, err := pd.Parse(data)
	if err != nil {
		return nil, err
	}
	img, err := DecodePixels(png.Data, &png.Header, png.Palette, pd.opts.RowWorkers)
	if err != nil {
		return nil, err
	}
	pd.log.Debug().
		Int("width", img.Width()).
		Int("height", img.Height()).
		Msg("decoded image")
	return img, nil
}

// Parse runs every stage except pixel decoding.
func (pd *PngDecoder) Parse(data []byte) (*PngImage, error) {
	chunks, err := Frame(data)
	if err != nil {
		return nil, err
	}
	pd.log.Trace().Int("chunks", len(chunks)).Msg("framed chunks")

	ihdr, err := InterpretHeader(chunks, pd.opts.Gate)
	if err != nil {
		return nil, err
	}
	pd.log.Debug().
		Uint32("width", ihdr.Width).
		Uint32("height", ihdr.Height).
		Uint8("bit_depth", ihdr.BitDepth).
		Stringer("color_model", ihdr.ColorModel).
		Msg("read IHDR")

	if err := checkChunkOrder(chunks, ihdr); err != nil {
		return nil, err
	}

	palette, err := ExtractPalette(chunks)
	if err != nil {
		return nil, err
	}
	if ihdr.ColorModel == Indexed && palette == nil {
		return nil, wrongFormat("PLTE chunk missing, required for indexed color")
	}

	compressedData := AggregateImageData(chunks)
	decompressed, err := compression.InflateData(compressedData)
	if err != nil {
		return nil, oops.New(ErrDecompressionFailed, "inflating %d bytes of IDAT: %v", len(compressedData), err)
	}

	rec, err := Reconstruct(decompressed, ihdr.Width, ihdr.Height, ihdr.BitDepth, ihdr.ColorModel)
	if err != nil {
		return nil, err
	}
	if extra := len(decompressed) - int(ihdr.Height)*(ihdr.BytesPerScanline()+1); extra > 0 {
		pd.log.Debug().Int("bytes", extra).Msg("ignoring trailing pixel data")
	}

	return &PngImage{
		Header:  *ihdr,
		Palette: palette,
		Data:    rec,
	}, nil
}

// checkChunkOrder enforces IHDR first and alone, PLTE before the first IDAT
// and only where it means something, at least one IDAT, and an empty IEND.
func checkChunkOrder(chunks []Chunk, ihdr *ImageHeader) error {
	seenIDAT := false
	for _, chunk := range chunks[1:] {
		switch chunk.Tag.Kind {
		case KindHeader:
			return wrongFormat("duplicate IHDR chunk")
		case KindPalette:
			if seenIDAT {
				return wrongFormat("PLTE chunk after IDAT")
			}
			if ihdr.ColorModel == Grayscale || ihdr.ColorModel == GrayscaleAlpha {
				return wrongFormat("PLTE chunk in %s image", ihdr.ColorModel)
			}
		case KindImageData:
			seenIDAT = true
		case KindEnd:
			if chunk.Length != 0 {
				return wrongFormat("bad IEND length %d", chunk.Length)
			}
		}
	}
	if !seenIDAT {
		return wrongFormat("no IDAT chunk")
	}
	return nil
}
