// Package atlas generates the shared sprite sheet sampled by every canvas
// primitive. The sheet is a square grid of GridSize x GridSize cells; cell 0
// is solid white so flat-coloured draws are unaffected by texturing.
package atlas

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/Garsondee/Scrap-Arena/internal/mathx"
)

const (
	// GridSize is the number of cells along each axis.
	GridSize = 20
	// CellPixels is the edge length of one cell in pixels.
	CellPixels = 16
	// Pixels is the edge length of the whole sheet.
	Pixels = GridSize * CellPixels
)

// Sprite indexes a cell in row-major order.
type Sprite int

const (
	White  Sprite = iota // solid white
	Scrap                // metal shard
	Tuft                 // grass tuft
	Pebble               // small stone
	Shadow               // soft round shadow
	Brick                // wall texture
	Gear                 // turret top
	spriteCount
)

// Cell returns the UV rectangle of s on the unit-square sheet.
func Cell(s Sprite) mathx.Rect {
	const f = 1.0 / GridSize
	x := int(s) % GridSize
	y := int(s) / GridSize
	return mathx.R(float64(x)*f, float64(y)*f, f, f)
}

// Image draws the full sheet. Alpha is straight (not premultiplied) so the
// backend can use straight-alpha colour scaling.
func Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, Pixels, Pixels))
	for s := Sprite(0); s < spriteCount; s++ {
		paint(img, s)
	}
	return img
}

func cellBounds(s Sprite) image.Rectangle {
	x := (int(s) % GridSize) * CellPixels
	y := (int(s) / GridSize) * CellPixels
	return image.Rect(x, y, x+CellPixels, y+CellPixels)
}

func paint(img *image.NRGBA, s Sprite) {
	b := cellBounds(s)
	white := color.NRGBA{255, 255, 255, 255}
	switch s {
	case White:
		draw.Draw(img, b, &image.Uniform{white}, image.Point{}, draw.Src)
	case Scrap:
		// Diagonal shard, brighter along the edge.
		for y := 0; y < CellPixels; y++ {
			for x := 0; x < CellPixels; x++ {
				d := x - y
				if d >= -3 && d <= 3 && x > 2 && x < 14 {
					v := uint8(190 + 15*(3-abs(d)))
					img.SetNRGBA(b.Min.X+x, b.Min.Y+y, color.NRGBA{v, v, v, 255})
				}
			}
		}
	case Tuft:
		for _, blade := range [][2]int{{4, 5}, {7, 2}, {10, 4}, {12, 6}} {
			for y := blade[1]; y < CellPixels-2; y++ {
				img.SetNRGBA(b.Min.X+blade[0], b.Min.Y+y, white)
			}
		}
	case Pebble:
		disc(img, b, 5, 255)
	case Shadow:
		for y := 0; y < CellPixels; y++ {
			for x := 0; x < CellPixels; x++ {
				dx, dy := x-CellPixels/2, y-CellPixels/2
				r2 := dx*dx + dy*dy
				if r2 < 49 {
					img.SetNRGBA(b.Min.X+x, b.Min.Y+y, color.NRGBA{255, 255, 255, uint8(200 - r2*4)})
				}
			}
		}
	case Brick:
		for y := 0; y < CellPixels; y++ {
			for x := 0; x < CellPixels; x++ {
				mortar := y%4 == 3 || (x+(y/4%2)*4)%8 == 7
				v := uint8(255)
				if mortar {
					v = 170
				}
				img.SetNRGBA(b.Min.X+x, b.Min.Y+y, color.NRGBA{v, v, v, 255})
			}
		}
	case Gear:
		disc(img, b, 6, 255)
		disc(img, b, 2, 0)
	}
}

func disc(img *image.NRGBA, b image.Rectangle, r int, alpha uint8) {
	for y := 0; y < CellPixels; y++ {
		for x := 0; x < CellPixels; x++ {
			dx, dy := x-CellPixels/2, y-CellPixels/2
			if dx*dx+dy*dy <= r*r {
				img.SetNRGBA(b.Min.X+x, b.Min.Y+y, color.NRGBA{255, 255, 255, alpha})
			}
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
