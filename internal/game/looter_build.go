package game

import (
	"fmt"

	"github.com/Garsondee/Scrap-Arena/internal/input"
	"github.com/Garsondee/Scrap-Arena/internal/mathx"
)

// selectBuilding handles the build selection keys.
func (l *Looter) selectBuilding(in input.Snapshot) {
	switch {
	case in.JustPressed(input.Key1):
		l.player.Selected = StructureWall
	case in.JustPressed(input.Key2):
		l.player.Selected = StructureTurret
	case in.JustPressed(input.KeyQ):
		l.player.Selected = StructureNone
	}
}

// cost and health of each kind.
func (l *Looter) buildCost(k StructureKind) int {
	switch k {
	case StructureWall:
		return l.tun.WallCost
	case StructureTurret:
		return l.tun.TurretCost
	default:
		return 0
	}
}

func (l *Looter) buildHealth(k StructureKind) float64 {
	switch k {
	case StructureWall:
		return l.tun.WallHealth
	case StructureTurret:
		return l.tun.TurretHealth
	default:
		return 0
	}
}

// place builds k in cell c if the cell is free, clear of the player and
// affordable. It reports whether anything was built.
func (l *Looter) place(c Cell, k StructureKind) bool {
	if k == StructureNone {
		return false
	}
	reason := ""
	cost := l.buildCost(k)
	switch {
	case l.structures.Find(c) >= 0:
		reason = "occupied"
	case c.Rect(l.tun.CellSize).Snap(l.player.Pos).Dist(l.player.Pos) < l.tun.PlayerRadius:
		reason = "player in the way"
	case l.player.Scrap < cost:
		reason = fmt.Sprintf("need %d scrap, have %d", cost, l.player.Scrap)
	}
	if reason != "" {
		l.log.Add(l.tick, "build", "rejected", fmt.Sprintf("%s at (%d,%d): %s", k, c.X, c.Y, reason), 0)
		return false
	}
	l.player.Scrap -= cost
	l.structures.Add(c, l.buildHealth(k), k)
	l.log.Add(l.tick, "build", "placed", fmt.Sprintf("%s at (%d,%d)", k, c.X, c.Y), float64(cost))
	return true
}

// collideStructures pushes the player and enemies out of every structure.
// Enemies pressed against one gnaw it; destroyed structures are removed.
func (l *Looter) collideStructures(dt float64) {
	size := l.tun.CellSize
	var broken []int
	for s, c := range l.structures.Cell {
		r := c.Rect(size)
		l.player.Pos, _ = pushOutOfRect(l.player.Pos, l.tun.PlayerRadius, r)
		for i := range l.enemies.Pos {
			var touching bool
			l.enemies.Pos[i], touching = pushOutOfRect(l.enemies.Pos[i], l.tun.EnemyRadius, r)
			if touching {
				l.structures.Health[s] -= l.tun.GnawDamage * dt
			}
		}
		if l.structures.Health[s] <= 0 {
			broken = append(broken, s)
			l.log.Add(l.tick, "build", "destroyed", fmt.Sprintf("%s at (%d,%d)", l.structures.Kind[s], c.X, c.Y), 0)
		}
	}
	l.structures.RemoveIndices(broken)
}

// resolveBolts damages the first enemy each bolt touches. Bolts stop at
// walls; turrets let them pass.
func (l *Looter) resolveBolts() {
	reach := l.tun.EnemyRadius + l.tun.BoltRadius
	var spent []int
	for b, p := range l.bolts.Pos {
		hit := false
		for i, e := range l.enemies.Pos {
			if e.Dist(p) < reach {
				l.enemies.Health[i] -= l.tun.BoltDamage
				hit = true
				break
			}
		}
		if !hit {
			for s, c := range l.structures.Cell {
				if l.structures.Kind[s] == StructureWall && c.Rect(l.tun.CellSize).Dilate(l.tun.BoltRadius).Contains(p) {
					hit = true
					break
				}
			}
		}
		if hit {
			spent = append(spent, b)
		}
	}
	l.bolts.RemoveIndices(spent)
}

// fireTurrets lets every ready turret shoot at the nearest enemy in range
// that no wall hides.
func (l *Looter) fireTurrets() {
	var walls []mathx.Rect
	for s, c := range l.structures.Cell {
		if l.structures.Kind[s] == StructureWall {
			walls = append(walls, c.Rect(l.tun.CellSize))
		}
	}
	for s, k := range l.structures.Kind {
		if k != StructureTurret {
			continue
		}
		if l.structures.Cooldown[s] > 0 {
			continue
		}
		origin := l.structures.Cell[s].Rect(l.tun.CellSize).Center()
		target, ok := nearestVisible(origin, l.enemies.Pos, l.tun.TurretRange, walls)
		if !ok {
			continue
		}
		dir := target.Sub(origin).Normalize()
		if dir.IsZero() {
			continue
		}
		l.bolts.Add(origin, dir.Mul(l.tun.BoltSpeed), ProjectileBolt)
		l.structures.Cooldown[s] = l.tun.TurretCooldown
		l.log.AddVerbose(l.tick, "combat", "turret", fmt.Sprintf("from=(%d,%d)", l.structures.Cell[s].X, l.structures.Cell[s].Y), 0)
	}
}

// coolTurrets advances every structure's action timer.
func (l *Looter) coolTurrets(dt float64) {
	for s := range l.structures.Cooldown {
		if l.structures.Cooldown[s] > 0 {
			l.structures.Cooldown[s] -= dt
		}
	}
}
