package game

import (
	"math"

	"github.com/Garsondee/Scrap-Arena/internal/atlas"
	"github.com/Garsondee/Scrap-Arena/internal/canvas"
	"github.com/Garsondee/Scrap-Arena/internal/mathx"
)

// Draw depths, back to front.
const (
	depthGround    = 1.0
	depthDetail    = 1.5
	depthStructure = 2.0
	depthShadow    = 2.5
	depthScrap     = 3.0
	depthEnemy     = 4.0
	depthPlayer    = 5.0
	depthBolt      = 5.5
	depthSwing     = 6.0
)

const (
	scrapBobRate   = 4.0
	scrapBobHeight = 0.025
	swingSegments  = 12
)

func (l *Looter) draw(cv *canvas.Canvas, bg mathx.Vec4) {
	cam := l.camera()
	cv.SetCamera(cam)

	cv.SetPen(canvas.Pen{Colour: bg, Depth: depthGround, Cell: atlas.Cell(atlas.White)})
	cv.Rect(cam)

	l.drawDetail(cv)
	l.drawStructures(cv)
	l.drawScrap(cv)

	cv.SetPen(canvas.Pen{Colour: looterShadow, Depth: depthShadow, Cell: atlas.Cell(atlas.Shadow)})
	for _, e := range l.enemies.Pos {
		cv.Rect(shadowRect(e, l.tun.EnemyRadius))
	}
	cv.SetPen(canvas.Pen{Colour: looterEnemy, Depth: depthEnemy, Cell: atlas.Cell(atlas.White)})
	for _, e := range l.enemies.Pos {
		cv.Circle(e, l.tun.EnemyRadius)
	}

	col := healthRamp(looterHurt, looterPlayer, l.player.Health)
	if l.player.Dead {
		col = looterHurt
	}
	cv.SetPen(canvas.Pen{Colour: looterShadow, Depth: depthShadow, Cell: atlas.Cell(atlas.Shadow)})
	cv.Rect(shadowRect(l.player.Pos, l.tun.PlayerRadius))
	cv.SetPen(canvas.Pen{Colour: col, Depth: depthPlayer, Cell: atlas.Cell(atlas.White)})
	cv.Circle(l.player.Pos, l.tun.PlayerRadius)

	cv.SetPen(canvas.Pen{Colour: looterBolt, Depth: depthBolt, Cell: atlas.Cell(atlas.White)})
	for _, b := range l.bolts.Pos {
		cv.Circle(b, l.tun.BoltRadius)
	}

	if l.t < l.swingEnd {
		a := l.player.Aim.Angle()
		half := l.tun.MeleeArc / 2
		cv.SetPen(canvas.Pen{Colour: looterSwing, Depth: depthSwing, Cell: atlas.Cell(atlas.White)})
		cv.PolyPart(l.player.Pos, l.tun.MeleeRadius, a-half, a+half, swingSegments)
	}
}

// drawDetail scatters tufts and pebbles over the visible ground. Placement
// comes from a hash of the detail cell, so nothing is stored and the same
// cell always looks the same.
func (l *Looter) drawDetail(cv *canvas.Canvas) {
	cam := cv.Camera()
	size := l.tun.DetailCell
	if size <= 0 {
		return
	}
	x0, x1 := int32(math.Floor(cam.X/size)), int32(math.Floor(cam.Right()/size))
	y0, y1 := int32(math.Floor(cam.Y/size)), int32(math.Floor(cam.Bottom()/size))
	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			h := mathx.Hash2(l.tun.WorldSeed, cx, cy)
			if !mathx.Chance(h, l.tun.DetailDensity) {
				continue
			}
			sprite := atlas.Tuft
			if mathx.Hash32(h)&1 == 1 {
				sprite = atlas.Pebble
			}
			jx := mathx.Unit(mathx.Hash32(h + 1))
			jy := mathx.Unit(mathx.Hash32(h + 2))
			at := mathx.V2((float64(cx)+jx)*size, (float64(cy)+jy)*size)
			cv.SetPen(canvas.Pen{Colour: looterDetail, Depth: depthDetail, Cell: atlas.Cell(sprite)})
			cv.Rect(mathx.RectCentered(at, size*0.3, size*0.3))
		}
	}
}

// drawStructures draws the structures in view and, while a kind is
// selected, the cell under the cursor. The highlight turns red when the
// player cannot afford the selection.
func (l *Looter) drawStructures(cv *canvas.Canvas) {
	size := l.tun.CellSize
	cam := cv.Camera()
	for s, c := range l.structures.Cell {
		if !c.Rect(size).Overlaps(cam) {
			continue
		}
		base, sprite, full := looterWall, atlas.Brick, l.tun.WallHealth
		if l.structures.Kind[s] == StructureTurret {
			base, sprite, full = looterTurret, atlas.Gear, l.tun.TurretHealth
		}
		wear := 1.0
		if full > 0 {
			wear = 0.5 + 0.5*mathx.Clamp(l.structures.Health[s]/full, 0, 1)
		}
		cv.SetPen(canvas.Pen{Colour: base.Scale(wear), Depth: depthStructure, Cell: atlas.Cell(sprite)})
		cv.Rect(c.Rect(size))
	}
	if !l.player.Dead && l.player.Selected != StructureNone {
		hl := looterSelected
		if l.player.Scrap < l.buildCost(l.player.Selected) {
			hl = looterHurt.WithAlpha(looterSelected.W)
		}
		cv.SetPen(canvas.Pen{Colour: hl, Depth: depthStructure, Cell: atlas.Cell(atlas.White)})
		cv.Rect(l.hover.Rect(size))
	}
}

// drawScrap draws each pickup as a ground shadow and a sprite bobbing above
// it. The bob phase follows position so neighbouring shards drift apart.
func (l *Looter) drawScrap(cv *canvas.Canvas) {
	r := l.tun.ScrapRadius
	cv.SetPen(canvas.Pen{Colour: looterShadow, Depth: depthShadow, Cell: atlas.Cell(atlas.Shadow)})
	for _, p := range l.scrap.Pos {
		cv.Rect(shadowRect(p, r))
	}
	cv.SetPen(canvas.Pen{Colour: looterScrap, Depth: depthScrap, Cell: atlas.Cell(atlas.Scrap)})
	for _, p := range l.scrap.Pos {
		bob := scrapBobHeight * (1 + math.Sin(l.t*scrapBobRate+(p.X+p.Y)*7))
		cv.Rect(mathx.RectCentered(p.Sub(mathx.V2(0, r+bob)), 2*r, 2*r))
	}
}

// shadowRect is a flattened footprint under a circle of radius r at p.
func shadowRect(p mathx.Vec2, r float64) mathx.Rect {
	return mathx.RectCentered(p.Add(mathx.V2(0, r*0.6)), 2.2*r, r)
}
