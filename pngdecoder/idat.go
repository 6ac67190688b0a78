package pngdecoder

// AggregateImageData concatenates the payloads of every IDAT chunk in file
// order into one zlib stream.
func AggregateImageData(chunks []Chunk) []uint8 {
	size := 0
	for _, chunk := range chunks {
		if chunk.Tag.Kind == KindImageData {
			size += len(chunk.Data)
		}
	}
	compressedData := make([]uint8, 0, size)
	for _, chunk := range chunks {
		if chunk.Tag.Kind == KindImageData {
			compressedData = append(compressedData, chunk.Data...)
		}
	}
	return compressedData
}
