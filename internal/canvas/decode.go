package canvas

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrPartialVertex reports a stream whose length is not a whole number of
// vertex records.
var ErrPartialVertex = errors.New("canvas: partial vertex record")

// Vertex is one decoded record.
type Vertex struct {
	Pos    [3]float32
	Colour [4]float32
	UV     [2]float32
}

// VertexCount is len(buf) / VertexSize.
func VertexCount(buf []byte) int { return len(buf) / VertexSize }

// Decode parses a finalized stream back into vertices.
func Decode(buf []byte) ([]Vertex, error) {
	if len(buf)%VertexSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrPartialVertex, len(buf))
	}
	out := make([]Vertex, len(buf)/VertexSize)
	for i := range out {
		rec := buf[i*VertexSize : (i+1)*VertexSize]
		f := func(j int) float32 {
			return math.Float32frombits(binary.LittleEndian.Uint32(rec[j*4:]))
		}
		out[i] = Vertex{
			Pos:    [3]float32{f(0), f(1), f(2)},
			Colour: [4]float32{f(3), f(4), f(5), f(6)},
			UV:     [2]float32{f(7), f(8)},
		}
	}
	return out, nil
}
