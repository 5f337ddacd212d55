package game

import (
	"math"

	"github.com/Garsondee/Scrap-Arena/internal/mathx"
)

// hasLineOfSight returns true if the segment a->b crosses none of the
// blocker rectangles.
func hasLineOfSight(a, b mathx.Vec2, blockers []mathx.Rect) bool {
	for _, r := range blockers {
		if _, hit := segmentRectHitT(a, b, r); hit {
			return false
		}
	}
	return true
}

// segmentRectHitT returns the first segment parameter t in [0,1] where a->b
// enters r. The bool is false when there is no hit.
func segmentRectHitT(a, b mathx.Vec2, r mathx.Rect) (float64, bool) {
	tMin, tMax := 0.0, 1.0
	slab := func(o, d, lo, hi float64) bool {
		if math.Abs(d) < 1e-12 {
			return o >= lo && o <= hi
		}
		t1, t2 := (lo-o)/d, (hi-o)/d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		return tMin <= tMax
	}
	d := b.Sub(a)
	if !slab(a.X, d.X, r.X, r.Right()) || !slab(a.Y, d.Y, r.Y, r.Bottom()) {
		return 0, false
	}
	return tMin, true
}

// nearestVisible returns the point of ps closest to origin that is nearer
// than rng and not hidden behind a blocker.
func nearestVisible(origin mathx.Vec2, ps []mathx.Vec2, rng float64, blockers []mathx.Rect) (mathx.Vec2, bool) {
	best, bestD, found := mathx.Vec2{}, rng*rng, false
	for _, p := range ps {
		d := p.Sub(origin).LenSq()
		if d >= bestD || !hasLineOfSight(origin, p, blockers) {
			continue
		}
		best, bestD, found = p, d, true
	}
	return best, found
}
