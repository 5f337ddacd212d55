package game

import (
	"github.com/Garsondee/Scrap-Arena/internal/canvas"
	"github.com/Garsondee/Scrap-Arena/internal/mathx"
)

// draw emits the arena: background at depth 1, everything else flat in the
// foreground colour at depth 2.
func (s *Survival) draw(cv *canvas.Canvas, fg, bg mathx.Vec4) {
	cv.SetCamera(survivalArena)
	cv.SetCell(canvas.WhiteCell)

	cv.SetColour(bg)
	cv.SetDepth(1)
	cv.Rect(survivalArena)

	cv.SetColour(fg)
	cv.SetDepth(2)
	for _, w := range survivalWalls {
		cv.Rect(w)
	}
	if s.t < s.explosionEnd {
		cv.Circle(s.explosionPos, s.tun.ExplodeRadius)
	}
	for _, e := range s.enemies.Pos {
		cv.Circle(e, s.tun.EnemyRadius)
	}
	if !s.player.Dead {
		cv.Circle(s.player.Pos, s.tun.PlayerRadius)
	}
	for _, p := range s.shots.Pos {
		cv.Circle(p, s.tun.FireballRadius)
	}
}
