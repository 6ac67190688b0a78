package pngdecoder

import (
	"errors"
	"fmt"

	"pngo/oops"
)

// Error kinds. Every error returned by this package matches exactly one of
// them with errors.Is.
var (
	ErrNotAPng             = errors.New("file is not png format")
	ErrChecksumFailure     = errors.New("checksum incorrect")
	ErrWrongFormat         = errors.New("incorrect png format")
	ErrFilterNotSupported  = errors.New("filter type not supported")
	ErrDecompressionFailed = errors.New("decompression failed")
	ErrNotSupported        = errors.New("not supported")
	ErrIO                  = errors.New("could not read the file")
)

// FilterError reports a scanline filter type outside 0..4.
type FilterError byte

func (e FilterError) Error() string {
	return fmt.Sprintf("filter type %d not supported", byte(e))
}

func (e FilterError) Is(target error) bool {
	return target == ErrFilterNotSupported
}

func wrongFormat(format string, args ...interface{}) error {
	return oops.New(ErrWrongFormat, format, args...)
}

func notSupported(format string, args ...interface{}) error {
	return oops.New(ErrNotSupported, format, args...)
}
