package game

import (
	"fmt"

	"github.com/Garsondee/Scrap-Arena/internal/canvas"
	"github.com/Garsondee/Scrap-Arena/internal/input"
	"github.com/Garsondee/Scrap-Arena/internal/mathx"
)

// survivalArena is the playfield; it doubles as the camera.
var survivalArena = mathx.R(-1, -1, 2, 2)

// survivalWalls frame the arena and leave a doorway in the middle of each side.
var survivalWalls = []mathx.Rect{
	mathx.R(-1.0, -1.0, 0.9, 0.1),
	mathx.R(0.1, -1.0, 0.9, 0.1),
	mathx.R(-1.0, 0.9, 0.9, 0.1),
	mathx.R(0.1, 0.9, 0.9, 0.1),

	mathx.R(-1.0, -1.0, 0.1, 0.9),
	mathx.R(0.9, -1.0, 0.1, 0.9),
	mathx.R(-1.0, 0.1, 0.1, 0.9),
	mathx.R(0.9, 0.1, 0.1, 0.9),
}

// survivalAnchors are the doorways enemies walk in from.
var survivalAnchors = []mathx.Vec2{
	mathx.V2(-1, 0),
	mathx.V2(1, 0),
	mathx.V2(0, 1),
	mathx.V2(0, -1),
}

// Survival is the arena-clearing mode: enemies pour in through four
// doorways, the player clears them with fireballs, and each cleared arena
// raises the difficulty.
type Survival struct {
	tun SurvivalTuning
	log *EventLog
	counters

	player  Player
	enemies Enemies
	shots   Projectiles // at most one fireball in flight

	explosionPos mathx.Vec2
	explosionEnd float64

	t          float64
	nextSpawn  float64
	difficulty int
	clear      bool
	quit       bool
}

// NewSurvival creates a survival arena with the player at the centre.
func NewSurvival(t SurvivalTuning, log *EventLog) *Survival {
	s := &Survival{tun: t, log: log}
	s.reset()
	return s
}

// reset re-initialises the world. Running totals and the log survive.
func (s *Survival) reset() {
	s.player = newPlayer()
	s.enemies = Enemies{}
	s.shots = Projectiles{}
	s.explosionPos = mathx.Vec2{}
	s.explosionEnd = -0.2
	s.t = 0
	s.nextSpawn = 0
	s.difficulty = 0
	s.clear = true
}

func (s *Survival) Mode() Mode          { return ModeSurvival }
func (s *Survival) QuitRequested() bool { return s.quit }
func (s *Survival) Events() *EventLog   { return s.log }

// spawnDecision is the accept/reject draw for anchor i on a frame seeded
// with seed.
func spawnDecision(seed uint32, i int, p float64) bool {
	return mathx.Chance(mathx.HashIndex(seed, i), p)
}

// spawnChance is the per-anchor spawn probability at the current difficulty.
func (s *Survival) spawnChance() float64 {
	return s.tun.SpawnChanceBase + s.tun.SpawnChancePerLevel*float64(s.difficulty)
}

// palette returns the foreground and background colours for the current
// difficulty and health.
func (s *Survival) palette() (fg, bg mathx.Vec4) {
	i := s.difficulty % len(survivalForeground)
	fg = healthRamp(black, survivalForeground[i], s.player.Health)
	bg = healthRamp(black, survivalBackground[i], s.player.Health)
	return fg, bg
}

// Advance runs one tick.
func (s *Survival) Advance(in input.Snapshot, cv *canvas.Canvas) {
	if in.JustPressed(input.KeyEscape) {
		s.quit = true
		return
	}
	if in.JustPressed(input.KeyR) && s.player.Dead {
		s.reset()
		s.log.Add(s.tick, "player", "reset", "arena restarted", 0)
	}
	dt := in.DT
	tun := s.tun

	// 1. clock
	s.t += dt
	s.tick++

	// 2. tunables
	chance := s.spawnChance()
	fg, bg := s.palette()

	// 3. spawn
	if s.t > s.nextSpawn {
		s.nextSpawn += tun.SpawnInterval
		for i, a := range survivalAnchors {
			if !spawnDecision(in.Seed, i, chance) {
				continue
			}
			s.enemies.Add(a, 1)
			s.clear = false
			s.spawned++
			s.log.AddVerbose(s.tick, "spawn", "enemy", fmt.Sprintf("anchor=%d", i), float64(i))
		}
	}

	// 4. cull
	s.cull()

	// 5. player movement
	s.enemies.MarkStart()
	playerStart := s.player.Pos
	s.player.drive(in, tun.PlayerSpeed, tun.PlayerAccel)
	if !s.player.Dead {
		s.player.Heal(tun.PlayerRegen * dt)
	}

	// 6. fireball launch and flight
	if !s.player.Dead && s.shots.Len() == 0 && s.t > s.explosionEnd && in.ButtonJustPressed(input.ButtonLeft) {
		s.launch(cursorWorld(in, survivalArena))
	}
	for i := range s.shots.Pos {
		s.shots.Pos[i] = s.shots.Pos[i].Add(s.shots.Vel[i].Mul(dt))
	}

	// 7. enemy steering, from positions at the start of the pass
	for i := range s.enemies.Pos {
		desired := s.player.Pos.Sub(s.enemies.Pos[i]).Normalize()
		s.enemies.Vel[i] = steer(s.enemies.Vel[i], desired, tun.EnemySpeed, tun.EnemySteer, dt)
	}
	for i := range s.enemies.Pos {
		s.enemies.Pos[i] = s.enemies.Pos[i].Add(s.enemies.Vel[i].Mul(dt))
	}

	// 8. crowd
	resolveCrowd(s.enemies.Pos, tun.EnemyRadius, tun.Crowd)

	// 9. walls
	for _, w := range survivalWalls {
		s.player.Pos, _ = pushOutOfRect(s.player.Pos, tun.PlayerRadius, w)
		for i := range s.enemies.Pos {
			s.enemies.Pos[i], _ = pushOutOfRect(s.enemies.Pos[i], tun.EnemyRadius, w)
		}
	}

	// 10. contact damage
	cs := playerContacts(s.player.Pos, tun.PlayerRadius, s.enemies.Pos, tun.EnemyRadius)
	separateContacts(&s.player.Pos, s.enemies.Pos, cs)
	if !s.player.Dead {
		for range cs {
			s.player.Damage(tun.ContactDamage)
		}
	}
	s.checkDeath()

	// 11. explosion
	s.resolveShots()
	s.checkDeath()

	// 12. deaths
	var dead []int
	for i, h := range s.enemies.Health {
		if h <= 0 {
			dead = append(dead, i)
		}
	}
	if n := s.enemies.RemoveIndices(dead); n > 0 {
		s.killed += n
	}
	if !s.clear && s.enemies.Len() == 0 {
		s.clear = true
		s.difficulty++
		s.log.Add(s.tick, "clock", "arena_clear", fmt.Sprintf("difficulty=%d", s.difficulty), float64(s.difficulty))
	}

	// 13. the arena has no pickups

	// 14. reconcile velocities with the motion actually applied
	for i := range s.enemies.Pos {
		s.enemies.Vel[i] = reconcileVelocity(s.enemies.Vel[i], s.enemies.Start[i], s.enemies.Pos[i], dt)
	}
	s.player.Vel = reconcileVelocity(s.player.Vel, playerStart, s.player.Pos, dt)

	// 15. containment
	s.player.Pos = survivalArena.Snap(s.player.Pos)
	var gone []int
	for i, p := range s.shots.Pos {
		if !survivalArena.Contains(p) {
			gone = append(gone, i)
		}
	}
	s.shots.RemoveIndices(gone)

	// 16. draw
	s.draw(cv, fg, bg)
}

// cull drops enemies that wandered past the horizon.
func (s *Survival) cull() {
	var far []int
	for i, p := range s.enemies.Pos {
		if beyond(p, s.player.Pos, s.tun.CullDistance) {
			far = append(far, i)
		}
	}
	if n := s.enemies.RemoveIndices(far); n > 0 {
		s.culled += n
		s.log.Add(s.tick, "cull", "enemy", fmt.Sprintf("removed=%d", n), float64(n))
	}
}

// launch fires toward target. A cursor on top of the player reuses the
// last aim.
func (s *Survival) launch(target mathx.Vec2) {
	if aim := target.Sub(s.player.Pos).Normalize(); !aim.IsZero() {
		s.player.Aim = aim
	}
	s.shots.Add(s.player.Pos, s.player.Aim.Mul(s.tun.FireballSpeed), ProjectileFireball)
	s.log.AddVerbose(s.tick, "combat", "launch", fmt.Sprintf("aim=(%.2f,%.2f)", s.player.Aim.X, s.player.Aim.Y), 0)
}

// fireballTriggered reports whether a fireball at p touches an enemy or a
// wall dilated by its radius.
func (s *Survival) fireballTriggered(p mathx.Vec2) bool {
	reach := s.tun.EnemyRadius + s.tun.FireballRadius
	for _, e := range s.enemies.Pos {
		if e.Dist(p) < reach {
			return true
		}
	}
	for _, w := range survivalWalls {
		if w.Dilate(s.tun.FireballRadius).Contains(p) {
			return true
		}
	}
	return false
}

// resolveShots explodes every triggered fireball and clears it.
func (s *Survival) resolveShots() {
	var spent []int
	for i, p := range s.shots.Pos {
		if s.shots.Kind[i] != ProjectileFireball || !s.fireballTriggered(p) {
			continue
		}
		s.explode(p)
		spent = append(spent, i)
	}
	s.shots.RemoveIndices(spent)
}

func (s *Survival) explode(at mathx.Vec2) {
	killed := 0
	for i, e := range s.enemies.Pos {
		if e.Dist(at) < s.tun.EnemyRadius+s.tun.ExplodeRadius && s.enemies.Health[i] > 0 {
			s.enemies.Health[i] = 0
			killed++
		}
	}
	if !s.player.Dead && s.player.Pos.Dist(at) < s.tun.ExplodeRadius {
		s.player.Damage(s.tun.SelfDamage)
		s.log.Add(s.tick, "player", "self_damage", fmt.Sprintf("health=%.2f", s.player.Health), s.tun.SelfDamage)
	}
	s.explosionPos = at
	s.explosionEnd = s.t + s.tun.ExplosionDuration
	s.log.Add(s.tick, "combat", "explode", fmt.Sprintf("killed=%d", killed), float64(killed))
}

func (s *Survival) checkDeath() {
	if s.player.Dead || s.player.Health > 0 {
		return
	}
	s.player.Dead = true
	s.deaths++
	s.log.Add(s.tick, "player", "died", "press R to reset", float64(s.difficulty))
}

// Stats implements Simulation.
func (s *Survival) Stats() Stats {
	return Stats{
		Mode:        ModeSurvival,
		Tick:        s.tick,
		Time:        s.t,
		Difficulty:  s.difficulty,
		Enemies:     s.enemies.Len(),
		Projectiles: s.shots.Len(),
		Spawned:     s.spawned,
		Killed:      s.killed,
		Culled:      s.culled,
		Health:      s.player.Health,
		Dead:        s.player.Dead,
		Deaths:      s.deaths,
	}
}

// Observe implements Simulation.
func (s *Survival) Observe() Observation {
	return Observation{
		Player:  s.player.Pos,
		Dead:    s.player.Dead,
		Enemies: append([]mathx.Vec2(nil), s.enemies.Pos...),
		Camera:  survivalArena,
	}
}
