// Package render submits a finalized canvas frame to ebiten. Triangles are
// drawn back to front by pen depth; triangles at equal depth keep the order
// they were emitted in.
package render

import (
	"fmt"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Scrap-Arena/internal/atlas"
	"github.com/Garsondee/Scrap-Arena/internal/canvas"
)

// MaxBatchVertices bounds a single DrawTriangles call. uint16 indices cap a
// batch at 65535 vertices; this keeps whole triangles under that.
const MaxBatchVertices = 3 * 21000

// Batch is one DrawTriangles call worth of geometry.
type Batch struct {
	Vertices []ebiten.Vertex
	Indices  []uint16
}

// Renderer owns the GPU copy of the sprite sheet.
type Renderer struct {
	sheet *ebiten.Image
	opts  ebiten.DrawTrianglesOptions
}

// NewRenderer uploads the sprite sheet. It must be called after ebiten has
// started, typically lazily from the first Draw.
func NewRenderer() *Renderer {
	return &Renderer{
		sheet: ebiten.NewImageFromImage(atlas.Image()),
		opts: ebiten.DrawTrianglesOptions{
			ColorScaleMode: ebiten.ColorScaleModeStraightAlpha,
			Filter:         ebiten.FilterNearest,
		},
	}
}

// Submit draws frame onto dst, stretching the unit square over dst's bounds.
func (r *Renderer) Submit(dst *ebiten.Image, frame []byte) error {
	tris, err := Triangles(frame)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	b := dst.Bounds()
	for _, batch := range Batches(tris, float32(b.Dx()), float32(b.Dy()), atlas.Pixels, atlas.Pixels) {
		dst.DrawTriangles(batch.Vertices, batch.Indices, r.sheet, &r.opts)
	}
	return nil
}

// Triangles decodes frame and orders its triangles by ascending depth.
func Triangles(frame []byte) ([][3]canvas.Vertex, error) {
	verts, err := canvas.Decode(frame)
	if err != nil {
		return nil, err
	}
	if len(verts)%3 != 0 {
		return nil, fmt.Errorf("%w: %d vertices is not whole triangles", canvas.ErrPartialVertex, len(verts))
	}
	tris := make([][3]canvas.Vertex, len(verts)/3)
	for i := range tris {
		copy(tris[i][:], verts[3*i:3*i+3])
	}
	sort.SliceStable(tris, func(i, j int) bool {
		return tris[i][0].Pos[2] < tris[j][0].Pos[2]
	})
	return tris, nil
}

// Batches converts triangles to ebiten vertices scaled to a w x h target and
// an atlas of atlasW x atlasH pixels.
func Batches(tris [][3]canvas.Vertex, w, h, atlasW, atlasH float32) []Batch {
	var out []Batch
	var cur Batch
	for _, tri := range tris {
		if len(cur.Vertices)+3 > MaxBatchVertices {
			out = append(out, cur)
			cur = Batch{}
		}
		for _, v := range tri {
			cur.Indices = append(cur.Indices, uint16(len(cur.Vertices)))
			cur.Vertices = append(cur.Vertices, Convert(v, w, h, atlasW, atlasH))
		}
	}
	if len(cur.Vertices) > 0 {
		out = append(out, cur)
	}
	return out
}

// Convert maps one decoded vertex into target and atlas pixel space.
func Convert(v canvas.Vertex, w, h, atlasW, atlasH float32) ebiten.Vertex {
	return ebiten.Vertex{
		DstX:   v.Pos[0] * w,
		DstY:   v.Pos[1] * h,
		SrcX:   v.UV[0] * atlasW,
		SrcY:   v.UV[1] * atlasH,
		ColorR: v.Colour[0],
		ColorG: v.Colour[1],
		ColorB: v.Colour[2],
		ColorA: v.Colour[3],
	}
}
