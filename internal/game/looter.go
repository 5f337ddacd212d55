package game

import (
	"fmt"
	"math"

	"github.com/Garsondee/Scrap-Arena/internal/canvas"
	"github.com/Garsondee/Scrap-Arena/internal/input"
	"github.com/Garsondee/Scrap-Arena/internal/mathx"
)

// Looter is the open-world mode: the player scavenges scrap from enemies
// that swarm in at night and spends it on walls and turrets.
type Looter struct {
	tun LooterTuning
	log *EventLog
	counters

	world mathx.Rect

	player     Player
	enemies    Enemies
	bolts      Projectiles
	scrap      Pickups
	structures Structures

	t         float64
	nextSpawn float64
	swingEnd  float64
	hover     Cell
	quit      bool
}

// NewLooter creates an open world with the player at the origin.
func NewLooter(t LooterTuning, log *EventLog) *Looter {
	l := &Looter{tun: t, log: log}
	l.reset()
	return l
}

func (l *Looter) reset() {
	h := l.tun.WorldHalfSize
	l.world = mathx.R(-h, -h, 2*h, 2*h)
	l.player = newPlayer()
	l.enemies = Enemies{}
	l.bolts = Projectiles{}
	l.scrap = Pickups{}
	l.structures = Structures{}
	l.t = 0
	l.nextSpawn = 0
	l.swingEnd = -1
}

func (l *Looter) Mode() Mode          { return ModeLooter }
func (l *Looter) QuitRequested() bool { return l.quit }
func (l *Looter) Events() *EventLog   { return l.log }

// camera is the view rectangle, centred on the player.
func (l *Looter) camera() mathx.Rect {
	return mathx.RectCentered(l.player.Pos, l.tun.CameraSize, l.tun.CameraSize)
}

// dayPhase is the position in the day cycle: 0 is noon, 0.5 midnight.
func (l *Looter) dayPhase() float64 {
	if l.tun.DayLength <= 0 {
		return 0
	}
	p := math.Mod(l.t/l.tun.DayLength, 1)
	if p < 0 {
		p++
	}
	return p
}

// darkness is 0 at noon and 1 at midnight.
func darkness(phase float64) float64 {
	return 0.5 - 0.5*math.Cos(2*math.Pi*phase)
}

// isNight reports whether the cycle is past dusk.
func isNight(phase float64) bool { return darkness(phase) > 0.5 }

// spawnTarget returns the population target and per-attempt spawn
// probability for the time of day.
func (l *Looter) spawnTarget(night bool) (int, float64) {
	if night {
		return l.tun.PopulationNight, l.tun.SpawnChanceNight
	}
	return l.tun.PopulationDay, l.tun.SpawnChanceDay
}

// Advance runs one tick.
func (l *Looter) Advance(in input.Snapshot, cv *canvas.Canvas) {
	if in.JustPressed(input.KeyEscape) {
		l.quit = true
		return
	}
	if in.JustPressed(input.KeyR) && l.player.Dead {
		l.reset()
		l.log.Add(l.tick, "player", "reset", "world restarted", 0)
	}
	dt := in.DT
	tun := l.tun

	// clock
	wasNight := isNight(l.dayPhase())
	l.t += dt
	l.tick++

	// tunables
	phase := l.dayPhase()
	night := isNight(phase)
	if night != wasNight {
		key := "dawn"
		if night {
			key = "dusk"
		}
		l.log.Add(l.tick, "clock", key, fmt.Sprintf("phase=%.3f", phase), phase)
	}
	target, chance := l.spawnTarget(night)
	bg := looterDay.Lerp(looterNight, darkness(phase))

	// spawn
	if l.t > l.nextSpawn {
		l.nextSpawn += tun.SpawnInterval
		l.spawn(in.Seed, target, chance)
	}

	// cull
	l.cull()

	// player movement
	l.enemies.MarkStart()
	playerStart := l.player.Pos
	l.player.drive(in, tun.PlayerSpeed, tun.PlayerAccel)
	if !l.player.Dead {
		l.player.Heal(tun.PlayerRegen * dt)
	}
	l.player.AttackCooldown = math.Max(0, l.player.AttackCooldown-dt)

	// actions
	cursor := cursorWorld(in, l.camera())
	l.hover = CellAt(cursor, tun.CellSize)
	if !l.player.Dead {
		l.selectBuilding(in)
		if in.ButtonJustPressed(input.ButtonLeft) && l.player.AttackCooldown <= 0 {
			l.strike(cursor)
		}
		if in.ButtonJustPressed(input.ButtonRight) && l.player.Selected != StructureNone {
			l.place(l.hover, l.player.Selected)
		}
	}
	for i := range l.bolts.Pos {
		l.bolts.Pos[i] = l.bolts.Pos[i].Add(l.bolts.Vel[i].Mul(dt))
	}

	// enemy steering
	l.steerEnemies(dt)

	// crowd
	resolveCrowd(l.enemies.Pos, tun.EnemyRadius, tun.Crowd)

	// structures
	l.collideStructures(dt)

	// contact damage
	cs := playerContacts(l.player.Pos, tun.PlayerRadius, l.enemies.Pos, tun.EnemyRadius)
	separateContacts(&l.player.Pos, l.enemies.Pos, cs)
	if !l.player.Dead {
		for range cs {
			l.player.Damage(tun.ContactDamage)
		}
	}
	if !l.player.Dead && l.player.Health <= 0 {
		l.player.Dead = true
		l.deaths++
		l.log.Add(l.tick, "player", "died", fmt.Sprintf("scrap=%d press R to reset", l.player.Scrap), float64(l.player.Scrap))
	}

	// bolts and turrets
	l.resolveBolts()
	l.coolTurrets(dt)
	l.fireTurrets()

	// deaths and drops
	l.killEnemies(in.Seed)

	// scrap
	l.moveScrap(dt)
	l.collectScrap()

	// reconcile velocities
	for i := range l.enemies.Pos {
		l.enemies.Vel[i] = reconcileVelocity(l.enemies.Vel[i], l.enemies.Start[i], l.enemies.Pos[i], dt)
	}
	l.player.Vel = reconcileVelocity(l.player.Vel, playerStart, l.player.Pos, dt)

	// containment
	l.player.Pos = l.world.Snap(l.player.Pos)
	var gone []int
	for i, p := range l.bolts.Pos {
		if !l.world.Contains(p) {
			gone = append(gone, i)
		}
	}
	l.bolts.RemoveIndices(gone)

	l.draw(cv, bg)
}

// spawn makes up to MaxSpawnAttempts draws while the population is below
// target. Accepted enemies appear on a ring around the player.
func (l *Looter) spawn(seed uint32, target int, chance float64) {
	for i := 0; i < l.tun.MaxSpawnAttempts && l.enemies.Len() < target; i++ {
		h := mathx.HashIndex(seed, i)
		if !mathx.Chance(h, chance) {
			continue
		}
		theta := 2 * math.Pi * mathx.Unit(mathx.Hash32(h))
		p := l.world.Snap(l.player.Pos.OffsetRTheta(l.tun.SpawnDistance, theta))
		if l.blocked(p, l.tun.EnemyRadius) {
			continue
		}
		l.enemies.Add(p, l.tun.EnemyHealth)
		l.spawned++
		l.log.AddVerbose(l.tick, "spawn", "enemy", fmt.Sprintf("at=(%.2f,%.2f)", p.X, p.Y), theta)
	}
}

// blocked reports whether a circle at p would overlap a structure.
func (l *Looter) blocked(p mathx.Vec2, radius float64) bool {
	for _, c := range l.structures.Cell {
		if c.Rect(l.tun.CellSize).Dilate(radius).Contains(p) {
			return true
		}
	}
	return false
}

func (l *Looter) cull() {
	centre, horizon := l.player.Pos, l.tun.CullDistance
	var far []int
	for i, p := range l.enemies.Pos {
		if beyond(p, centre, horizon) {
			far = append(far, i)
		}
	}
	n := l.enemies.RemoveIndices(far)

	far = far[:0]
	for i, p := range l.scrap.Pos {
		if beyond(p, centre, horizon) {
			far = append(far, i)
		}
	}
	n += l.scrap.RemoveIndices(far)

	far = far[:0]
	for i, p := range l.bolts.Pos {
		if beyond(p, centre, horizon) {
			far = append(far, i)
		}
	}
	n += l.bolts.RemoveIndices(far)

	if n > 0 {
		l.culled += n
		l.log.AddVerbose(l.tick, "cull", "far", fmt.Sprintf("removed=%d", n), float64(n))
	}
}

// strike swings at the cursor. Every enemy in the arc takes damage and is
// nudged away.
func (l *Looter) strike(cursor mathx.Vec2) {
	if aim := cursor.Sub(l.player.Pos).Normalize(); !aim.IsZero() {
		l.player.Aim = aim
	}
	hits := 0
	for i, e := range l.enemies.Pos {
		if !meleeHits(l.player.Pos, l.player.Aim, e, l.tun.MeleeRadius, l.tun.EnemyRadius, l.tun.MeleeArc) {
			continue
		}
		l.enemies.Health[i] -= l.tun.MeleeDamage
		l.enemies.Pos[i] = e.Add(e.Sub(l.player.Pos).Normalize().Mul(l.tun.MeleeNudge))
		hits++
	}
	l.player.AttackCooldown = l.tun.MeleeCooldown
	l.swingEnd = l.t + l.tun.MeleeVisual
	l.log.Add(l.tick, "combat", "melee", fmt.Sprintf("hits=%d", hits), float64(hits))
}

// steerEnemies heads every enemy in acquisition range toward the player and
// lets the rest coast to a stop.
func (l *Looter) steerEnemies(dt float64) {
	for i, p := range l.enemies.Pos {
		var desired mathx.Vec2
		if !l.player.Dead && !beyond(p, l.player.Pos, l.tun.AcquireRange) {
			desired = l.player.Pos.Sub(p).Normalize()
		}
		speed := l.tun.EnemySpeed
		if desired.IsZero() {
			speed = math.Min(speed, l.enemies.Vel[i].Len())
		}
		l.enemies.Vel[i] = steer(l.enemies.Vel[i], desired, speed, l.tun.EnemySteer, dt)
	}
	for i := range l.enemies.Pos {
		l.enemies.Pos[i] = l.enemies.Pos[i].Add(l.enemies.Vel[i].Mul(dt))
	}
}

// killEnemies removes every enemy at or below zero health and drops its
// scrap, one piece plus whatever it carried, scattered around the body.
func (l *Looter) killEnemies(seed uint32) {
	var dead []int
	for i, health := range l.enemies.Health {
		if health > 0 {
			continue
		}
		dead = append(dead, i)
		drops := 1 + l.enemies.Scrap[i]
		for k := 0; k < drops; k++ {
			h := mathx.HashIndex(seed^mathx.Hash32(uint32(i)), k)
			at := l.enemies.Pos[i].OffsetRTheta(l.tun.DropScatter*mathx.Unit(mathx.Hash32(h)), 2*math.Pi*mathx.Unit(h))
			l.scrap.Add(at, mathx.Vec2{})
		}
		l.log.AddVerbose(l.tick, "combat", "kill", fmt.Sprintf("drops=%d", drops), float64(drops))
	}
	l.killed += l.enemies.RemoveIndices(dead)
}

// moveScrap pulls nearby pickups toward the living player, damps them and
// integrates.
func (l *Looter) moveScrap(dt float64) {
	for i, p := range l.scrap.Pos {
		v := approach(l.scrap.Vel[i], mathx.Vec2{}, l.tun.ScrapFriction, dt)
		if !l.player.Dead {
			to := l.player.Pos.Sub(p)
			if to.Len() < l.tun.AttractRadius {
				v = v.Add(to.Normalize().Mul(l.tun.AttractAccel * dt))
			}
		}
		l.scrap.Vel[i] = v
		l.scrap.Pos[i] = p.Add(v.Mul(dt))
	}
}

// collectScrap hands pickups to the player first, then to any enemy
// touching one.
func (l *Looter) collectScrap() {
	var taken []int
	for i, p := range l.scrap.Pos {
		if !l.player.Dead && p.Dist(l.player.Pos) < l.tun.CollectRadius {
			l.player.Scrap++
			l.collected++
			taken = append(taken, i)
			continue
		}
		reach := l.tun.EnemyRadius + l.tun.ScrapRadius
		for j, e := range l.enemies.Pos {
			if e.Dist(p) < reach {
				l.enemies.Scrap[j]++
				taken = append(taken, i)
				break
			}
		}
	}
	if n := l.scrap.RemoveIndices(taken); n > 0 {
		l.log.AddVerbose(l.tick, "pickup", "scrap", fmt.Sprintf("scrap=%d", l.player.Scrap), float64(n))
	}
}

// Stats implements Simulation.
func (l *Looter) Stats() Stats {
	phase := l.dayPhase()
	return Stats{
		Mode:        ModeLooter,
		Tick:        l.tick,
		Time:        l.t,
		DayPhase:    phase,
		Night:       isNight(phase),
		Enemies:     l.enemies.Len(),
		Projectiles: l.bolts.Len(),
		Pickups:     l.scrap.Len(),
		Structures:  l.structures.Len(),
		Spawned:     l.spawned,
		Killed:      l.killed,
		Culled:      l.culled,
		Collected:   l.collected,
		Scrap:       l.player.Scrap,
		Health:      l.player.Health,
		Dead:        l.player.Dead,
		Deaths:      l.deaths,
	}
}

// Observe implements Simulation.
func (l *Looter) Observe() Observation {
	return Observation{
		Player:  l.player.Pos,
		Dead:    l.player.Dead,
		Enemies: append([]mathx.Vec2(nil), l.enemies.Pos...),
		Pickups: append([]mathx.Vec2(nil), l.scrap.Pos...),
		Camera:  l.camera(),
	}
}
