// Package compression is the inflate collaborator of the decoder: it turns
// the concatenated IDAT payload back into filtered scanlines.
package compression

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"
)

// InflateData decompresses a zlib stream. Truncated streams and checksum
// mismatches are reported as errors.
func InflateData(compressedData []byte) ([]byte, error) {
	reader := bytes.NewReader(compressedData)

	zlibReader, err := zlib.NewReader(reader)
	if err != nil {
		return nil, err
	}
	defer zlibReader.Close()
	var decompressedData bytes.Buffer
	_, err = io.Copy(&decompressedData, zlibReader)
	if err != nil {
		return nil, err
	}
	return decompressedData.Bytes(), nil
}

// DeflateData is the inverse of InflateData.
func DeflateData(raw []byte) ([]byte, error) {
	var compressed bytes.Buffer
	zlibWriter := zlib.NewWriter(&compressed)
	if _, err := zlibWriter.Write(raw); err != nil {
		zlibWriter.Close()
		return nil, err
	}
	if err := zlibWriter.Close(); err != nil {
		return nil, err
	}
	return compressed.Bytes(), nil
}
