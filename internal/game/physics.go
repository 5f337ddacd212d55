package game

import (
	"math"

	"github.com/Garsondee/Scrap-Arena/internal/mathx"
)

// steer turns vel toward desired (a unit vector, or zero to slow down) with
// an exponential blend and rescales it to speed. A zero desired direction
// shrinks the heading, so the entity decelerates instead of stopping dead.
func steer(vel, desired mathx.Vec2, speed, rate, dt float64) mathx.Vec2 {
	if speed <= 0 {
		return mathx.Vec2{}
	}
	heading := vel.Div(speed)
	if heading.LenSq() > 1 {
		heading = heading.Normalize()
	}
	h := heading.Lerp(desired, mathx.ExpBlend(rate, dt))
	if !desired.IsZero() {
		h = h.Normalize()
		if h.IsZero() {
			h = desired
		}
	}
	return h.Mul(speed)
}

// approach blends vel toward target with an exponential rate.
func approach(vel, target mathx.Vec2, rate, dt float64) mathx.Vec2 {
	return vel.Lerp(target, mathx.ExpBlend(rate, dt))
}

// separationAxis is the unit vector from b toward a. Coincident centres get
// a hash-derived axis that is exactly reversed for the mirrored pair, so
// symmetric correction still separates them.
func separationAxis(a, b mathx.Vec2, i, j int) mathx.Vec2 {
	if n := a.Sub(b).Normalize(); !n.IsZero() {
		return n
	}
	lo, hi, sign := i, j, 1.0
	if lo > hi {
		lo, hi, sign = j, i, -1.0
	}
	theta := 2 * math.Pi * mathx.Unit(mathx.HashIndex(uint32(lo), hi))
	return mathx.Vec2{X: math.Cos(theta), Y: math.Sin(theta)}.Mul(sign)
}

// correction is one accumulated positional fix for subject.
type correction struct {
	subject int
	push    mathx.Vec2
}

// crowdCorrections finds every overlapping pair of equal circles. Detection
// reads positions only; nothing moves until applyCorrections.
func crowdCorrections(pos []mathx.Vec2, radius float64, mode CrowdMode) []correction {
	var out []correction
	for i := range pos {
		j0 := 0
		if mode == CrowdAsymmetric {
			j0 = i + 1
		}
		for j := j0; j < len(pos); j++ {
			if i == j {
				continue
			}
			pen := 2*radius - pos[i].Dist(pos[j])
			if pen <= 0 {
				continue
			}
			out = append(out, correction{subject: i, push: separationAxis(pos[i], pos[j], i, j).Mul(pen)})
		}
	}
	return out
}

// applyCorrections moves each subject by half its penetration vector.
func applyCorrections(pos []mathx.Vec2, cs []correction) {
	for _, c := range cs {
		pos[c.subject] = pos[c.subject].Add(c.push.Mul(0.5))
	}
}

// resolveCrowd is positional correction for a crowd of equal circles. Some
// overlap can remain after one pass; it is worked off over later ticks.
func resolveCrowd(pos []mathx.Vec2, radius float64, mode CrowdMode) int {
	cs := crowdCorrections(pos, radius, mode)
	applyCorrections(pos, cs)
	return len(cs)
}

// pushOutOfRect moves a circle out of r by its penetration depth, along the
// line from the nearest rectangle point to the centre. A centre inside r
// leaves through the nearest face.
func pushOutOfRect(p mathx.Vec2, radius float64, r mathx.Rect) (mathx.Vec2, bool) {
	snap := r.Snap(p)
	d := p.Sub(snap)
	if d.IsZero() {
		if !r.Contains(p) {
			return p, false
		}
		return exitNearestFace(p, radius, r), true
	}
	pen := radius - d.Len()
	if pen <= 0 {
		return p, false
	}
	return p.Add(d.Normalize().Mul(pen)), true
}

func exitNearestFace(p mathx.Vec2, radius float64, r mathx.Rect) mathx.Vec2 {
	left := p.X - r.X
	right := r.Right() - p.X
	top := p.Y - r.Y
	bottom := r.Bottom() - p.Y
	switch math.Min(math.Min(left, right), math.Min(top, bottom)) {
	case left:
		return mathx.V2(r.X-radius, p.Y)
	case right:
		return mathx.V2(r.Right()+radius, p.Y)
	case top:
		return mathx.V2(p.X, r.Y-radius)
	default:
		return mathx.V2(p.X, r.Bottom()+radius)
	}
}

// contact is an overlap between the player and enemy i.
type contact struct {
	enemy int
	axis  mathx.Vec2 // unit, player toward enemy
	depth float64
}

// playerContacts lists every enemy overlapping the player.
func playerContacts(player mathx.Vec2, playerRadius float64, enemies []mathx.Vec2, enemyRadius float64) []contact {
	var out []contact
	reach := playerRadius + enemyRadius
	for i, e := range enemies {
		d := e.Dist(player)
		if d >= reach {
			continue
		}
		out = append(out, contact{enemy: i, axis: e.Sub(player).Normalize(), depth: reach - d})
	}
	return out
}

// separateContacts splits each contact's depth 50/50 between player and
// enemy.
func separateContacts(player *mathx.Vec2, enemies []mathx.Vec2, cs []contact) {
	for _, c := range cs {
		half := c.axis.Mul(c.depth / 2)
		*player = player.Sub(half)
		enemies[c.enemy] = enemies[c.enemy].Add(half)
	}
}

// meleeHits reports whether an enemy at target is inside the strike: closer
// than meleeRadius+enemyRadius and within half the arc of aim.
func meleeHits(origin, aim, target mathx.Vec2, meleeRadius, enemyRadius, arc float64) bool {
	to := target.Sub(origin)
	if to.Len() >= meleeRadius+enemyRadius {
		return false
	}
	return mathx.AngleBetween(aim, to) < arc/2
}

// reconcileVelocity is the velocity that explains the motion actually
// applied this tick. dt <= 0 keeps the previous velocity.
func reconcileVelocity(prev, start, end mathx.Vec2, dt float64) mathx.Vec2 {
	if dt <= 0 {
		return prev
	}
	return end.Sub(start).Mul(1 / dt)
}

// beyond reports whether p is farther than horizon from centre.
func beyond(p, centre mathx.Vec2, horizon float64) bool {
	return p.Sub(centre).LenSq() > horizon*horizon
}
