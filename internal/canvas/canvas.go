// Package canvas encodes immediate-mode draw calls into the flat vertex
// byte stream handed to the render backend each frame.
//
// Every vertex record is nine little-endian float32 values:
//
//	x y z | r g b a | u v
//
// where (x,y) is the position remapped from the active camera rectangle into
// the unit square, z is the pen depth, and (u,v) addresses the atlas.
package canvas

import (
	"encoding/binary"
	"math"

	"github.com/Garsondee/Scrap-Arena/internal/mathx"
)

const (
	// FloatsPerVertex is 3 position + 4 colour + 2 texture components.
	FloatsPerVertex = 9
	// VertexSize is the byte size of one vertex record.
	VertexSize = FloatsPerVertex * 4
	// TriangleSize is the byte size of one triangle.
	TriangleSize = 3 * VertexSize
	// CircleSegments is the fan size used by Circle.
	CircleSegments = 40
)

// WhiteCell is the default atlas cell; it is solid white so untextured
// primitives show only their pen colour.
var WhiteCell = mathx.R(0, 0, 1.0/20, 1.0/20)

// ndc is the device rectangle every camera maps onto.
var ndc = mathx.R(0, 0, 1, 1)

// Pen is the pipeline state applied to subsequent primitives.
type Pen struct {
	Colour mathx.Vec4
	Depth  float64
	Cell   mathx.Rect
}

// DefaultPen is opaque black at depth 1 using the white cell.
func DefaultPen() Pen {
	return Pen{Colour: mathx.RGBA(0, 0, 0, 1), Depth: 1, Cell: WhiteCell}
}

// Canvas accumulates triangles for one frame. It is not safe for concurrent
// use and is consumed by Bytes.
type Canvas struct {
	pen    Pen
	camera mathx.Rect
	buf    []byte
	done   bool
}

// New returns an empty canvas whose camera initially spans camera.
func New(camera mathx.Rect) *Canvas {
	return &Canvas{pen: DefaultPen(), camera: camera}
}

func (c *Canvas) SetColour(col mathx.Vec4) { c.pen.Colour = col }
func (c *Canvas) SetDepth(d float64)       { c.pen.Depth = d }
func (c *Canvas) SetCell(cell mathx.Rect)  { c.pen.Cell = cell }
func (c *Canvas) SetCamera(cam mathx.Rect) { c.camera = cam }
func (c *Canvas) SetPen(p Pen)             { c.pen = p }
func (c *Canvas) Pen() Pen                 { return c.pen }
func (c *Canvas) Camera() mathx.Rect       { return c.camera }

// With draws fn under p and restores the previous pen afterwards.
func (c *Canvas) With(p Pen, fn func()) {
	saved := c.pen
	c.pen = p
	fn()
	c.pen = saved
}

// Len is the number of bytes written so far.
func (c *Canvas) Len() int { return len(c.buf) }

// VertexCount is the number of vertex records written so far.
func (c *Canvas) VertexCount() int { return len(c.buf) / VertexSize }

// Triangle appends one triangle. Its texture coordinates span the
// triangle's own bounding box mapped onto the pen's atlas cell.
func (c *Canvas) Triangle(a, b, d mathx.Vec2) {
	c.emit(a, b, d, mathx.Triangle{A: a, B: b, C: d}.AABB())
}

// Rect appends two triangles covering r; texture coordinates span r as a
// whole.
func (c *Canvas) Rect(r mathx.Rect) {
	c.emit(r.TL(), r.TR(), r.BL(), r)
	c.emit(r.BL(), r.TR(), r.BR(), r)
}

// Poly appends a regular polygon with n sides as a triangle fan.
func (c *Canvas) Poly(center mathx.Vec2, radius float64, n int) {
	c.PolyPart(center, radius, 0, 2*math.Pi, n)
}

// PolyPart appends the arc [from, to] (radians) of a circle as n fan
// triangles.
func (c *Canvas) PolyPart(center mathx.Vec2, radius, from, to float64, n int) {
	if n <= 0 {
		return
	}
	step := (to - from) / float64(n)
	for i := 0; i < n; i++ {
		t1 := from + float64(i)*step
		t2 := from + float64(i+1)*step
		c.Triangle(center, center.OffsetRTheta(radius, t1), center.OffsetRTheta(radius, t2))
	}
}

// Circle is Poly with CircleSegments sides.
func (c *Canvas) Circle(center mathx.Vec2, radius float64) {
	c.Poly(center, radius, CircleSegments)
}

// Bytes finalizes the canvas and hands over its buffer. The canvas must not
// be drawn to afterwards.
func (c *Canvas) Bytes() []byte {
	if c.done {
		panic("canvas: Bytes called twice")
	}
	c.done = true
	out := c.buf
	c.buf = nil
	if out == nil {
		out = []byte{}
	}
	return out
}

// emit writes a whole triangle in one append so the buffer never holds a
// partial record.
func (c *Canvas) emit(a, b, d mathx.Vec2, uvFrom mathx.Rect) {
	if c.done {
		panic("canvas: draw after Bytes")
	}
	var rec [TriangleSize]byte
	off := 0
	put := func(x float64) {
		binary.LittleEndian.PutUint32(rec[off:], math.Float32bits(float32(x)))
		off += 4
	}
	for _, v := range [3]mathx.Vec2{a, b, d} {
		p := v.Transform(c.camera, ndc).Promote(c.pen.Depth)
		put(p.X)
		put(p.Y)
		put(p.Z)
		put(c.pen.Colour.X)
		put(c.pen.Colour.Y)
		put(c.pen.Colour.Z)
		put(c.pen.Colour.W)
		uv := v.Transform(uvFrom, c.pen.Cell)
		put(uv.X)
		put(uv.Y)
	}
	c.buf = append(c.buf, rec[:]...)
}
