package pngdecoder

import (
	"fmt"

	"pngo/oops"
	"pngo/utils"
)

type ChunkKind int

const (
	KindOther ChunkKind = iota
	KindHeader
	KindPalette
	KindImageData
	KindEnd
)

// ChunkTag is the decoded 4-byte chunk type. Name always holds the raw tag,
// Kind is KindOther for anything but IHDR, PLTE, IDAT and IEND.
type ChunkTag struct {
	Kind ChunkKind
	Name string
}

func parseChunkTag(raw []byte) ChunkTag {
	name := string(raw)
	switch name {
	case "IHDR":
		return ChunkTag{KindHeader, name}
	case "PLTE":
		return ChunkTag{KindPalette, name}
	case "IDAT":
		return ChunkTag{KindImageData, name}
	case "IEND":
		return ChunkTag{KindEnd, name}
	}
	return ChunkTag{KindOther, name}
}

func (t ChunkTag) String() string {
	return t.Name
}

type Chunk struct {
	Length uint32
	Tag    ChunkTag
	// Data is nil for zero-length chunks.
	Data []uint8
}

// Critical reports whether the decoder must understand the chunk, which PNG
// signals with an uppercase first tag letter.
func (c Chunk) Critical() bool {
	return len(c.Tag.Name) > 0 && c.Tag.Name[0] >= 'A' && c.Tag.Name[0] <= 'Z'
}

type chunkReader struct {
	data     []uint8
	idx      int
	finished bool
}

// Frame splits a PNG buffer into its chunks, in file order, up to and
// including IEND. Every chunk's CRC is verified.
func Frame(data []byte) ([]Chunk, error) {
	if !isPNG(data) {
		return nil, oops.New(ErrNotAPng, "signature mismatch")
	}
	p := &chunkReader{
		data: data,
		idx:  len(pngHeader),
	}
	var chunks []Chunk
	for !p.finished {
		chunk, err := p.nextChunk()
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, chunk)
	}
	return chunks, nil
}

func (p *chunkReader) nextChunk() (Chunk, error) {
	start := p.idx
	length, err := p.tryAdvance(4)
	if err != nil {
		return Chunk{}, err
	}
	chunkLength := utils.BytesToLength(length)
	chunkType, err := p.tryAdvance(4)
	if err != nil {
		return Chunk{}, err
	}
	chunkData, err := p.tryAdvance(chunkLength)
	if err != nil {
		return Chunk{}, err
	}
	crc, err := p.tryAdvance(4)
	if err != nil {
		return Chunk{}, err
	}

	if Crc32(p.data[start+4:start+8+int(chunkLength)]) != utils.BytesToLength(crc) {
		return Chunk{}, oops.New(ErrChecksumFailure, "chunk %q at offset %d", chunkType, start)
	}
	tag := parseChunkTag(chunkType)
	if tag.Kind == KindEnd {
		p.finished = true
	}
	chunk := Chunk{
		Length: chunkLength,
		Tag:    tag,
	}
	if chunkLength > 0 {
		chunk.Data = append([]uint8(nil), chunkData...)
	}
	return chunk, nil
}

func (p *chunkReader) tryAdvance(length uint32) ([]uint8, error) {
	if uint64(length) > uint64(len(p.data)-p.idx) {
		return nil, wrongFormat("truncated")
	}
	n := int(length)
	p.idx += n
	return p.data[p.idx-n : p.idx], nil
}

func (c Chunk) String() string {
	return fmt.Sprintf("%s (%d bytes)", c.Tag, c.Length)
}
