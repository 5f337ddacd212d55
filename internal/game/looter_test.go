package game

import (
	"bytes"
	"math"
	"testing"

	"github.com/Garsondee/Scrap-Arena/internal/canvas"
	"github.com/Garsondee/Scrap-Arena/internal/input"
	"github.com/Garsondee/Scrap-Arena/internal/mathx"
)

func newQuietLooter() *Looter {
	l := NewLooter(DefaultLooterTuning(), NewEventLog(true))
	l.nextSpawn = math.Inf(1)
	return l
}

// aimAt returns an idle snapshot with the cursor over world point p.
func (l *Looter) aimAt(p mathx.Vec2, seed uint32) input.Snapshot {
	return idle(seed).WithMouse(p.Transform(l.camera(), DefaultScreen))
}

func TestLooter_PickupCollectedOnce(t *testing.T) {
	l := newQuietLooter()
	l.scrap.Add(l.player.Pos.Add(mathx.V2(0.05, 0)), mathx.Vec2{})

	advance(l, idle(1))
	if l.player.Scrap != 1 {
		t.Fatalf("scrap after tick N = %d, want 1", l.player.Scrap)
	}
	if l.scrap.Len() != 0 {
		t.Fatalf("pickups after tick N = %d, want 0", l.scrap.Len())
	}

	advance(l, idle(2))
	if l.player.Scrap != 1 || l.scrap.Len() != 0 {
		t.Fatalf("tick N+1: scrap=%d pickups=%d", l.player.Scrap, l.scrap.Len())
	}
	if l.Stats().Collected != 1 {
		t.Fatalf("collected = %d, want 1", l.Stats().Collected)
	}
}

func TestLooter_ScrapDriftsTowardPlayer(t *testing.T) {
	l := newQuietLooter()
	start := mathx.V2(0.5, 0)
	l.scrap.Add(start, mathx.Vec2{})
	advance(l, idle(1))
	if l.scrap.Len() != 1 {
		t.Fatalf("pickups = %d, want 1", l.scrap.Len())
	}
	if l.scrap.Pos[0].X >= start.X {
		t.Fatalf("pickup did not move toward the player: %+v", l.scrap.Pos[0])
	}

	far := newQuietLooter()
	far.scrap.Add(mathx.V2(2, 0), mathx.Vec2{})
	advance(far, idle(1))
	if far.scrap.Pos[0] != mathx.V2(2, 0) {
		t.Fatalf("pickup outside attraction radius moved to %+v", far.scrap.Pos[0])
	}
}

func TestLooter_MeleeHitsInArcOnly(t *testing.T) {
	l := newQuietLooter()
	l.enemies.Add(mathx.V2(0.3, 0), 1)  // in front
	l.enemies.Add(mathx.V2(-0.3, 0), 1) // behind

	advance(l, l.aimAt(mathx.V2(1, 0), 1).WithButton(input.ButtonLeft, input.JustPressed))

	if got := l.enemies.Health[0]; math.Abs(got-0.5) > 1e-12 {
		t.Fatalf("front enemy health = %.3f, want 0.5", got)
	}
	if l.enemies.Health[1] != 1 {
		t.Fatalf("enemy behind was hit: %.3f", l.enemies.Health[1])
	}
	if l.player.AttackCooldown <= 0 {
		t.Fatal("cooldown not started")
	}
	if !l.Events().HasEntry("combat", "melee", "hits=1") {
		t.Fatalf("melee not logged:\n%s", l.Events().Format())
	}

	// Still cooling down: a second click does nothing.
	advance(l, l.aimAt(mathx.V2(1, 0), 2).WithButton(input.ButtonLeft, input.JustPressed))
	if got := l.enemies.Health[0]; math.Abs(got-0.5) > 1e-12 {
		t.Fatalf("strike during cooldown landed: health %.3f", got)
	}
}

func TestLooter_DeathDropsCarriedScrap(t *testing.T) {
	l := newQuietLooter()
	i := l.enemies.Add(mathx.V2(0.3, 0), 0.4)
	l.enemies.Scrap[i] = 2

	advance(l, l.aimAt(mathx.V2(1, 0), 1).WithButton(input.ButtonLeft, input.JustPressed))

	if l.enemies.Len() != 0 {
		t.Fatalf("enemies = %d, want 0", l.enemies.Len())
	}
	if l.scrap.Len() != 3 {
		t.Fatalf("pickups = %d, want 3 (one plus two carried)", l.scrap.Len())
	}
	for _, p := range l.scrap.Pos {
		if p.Dist(mathx.V2(0.3, 0)) > l.tun.MeleeNudge+l.tun.DropScatter+0.05 {
			t.Fatalf("drop landed far from the body: %+v", p)
		}
	}
	if l.Stats().Killed != 1 {
		t.Fatalf("killed = %d", l.Stats().Killed)
	}
}

func TestLooter_EnemiesScavengeScrap(t *testing.T) {
	l := newQuietLooter()
	l.player.Pos = mathx.V2(0, 0)
	l.enemies.Add(mathx.V2(2.5, 0), 1)
	l.scrap.Add(mathx.V2(2.5, 0.02), mathx.Vec2{})
	advance(l, idle(1))
	if l.scrap.Len() != 0 {
		t.Fatalf("pickups = %d, want 0", l.scrap.Len())
	}
	if l.enemies.Scrap[0] != 1 {
		t.Fatalf("enemy carries %d, want 1", l.enemies.Scrap[0])
	}
	if l.player.Scrap != 0 {
		t.Fatal("player credited with scrap an enemy took")
	}
}

func TestLooter_BuildPlacement(t *testing.T) {
	l := newQuietLooter()
	l.player.Scrap = 10
	target := mathx.V2(1.1, 1.1)
	cell := CellAt(target, l.tun.CellSize)

	in := l.aimAt(target, 1).
		WithKey(input.Key1, input.JustPressed).
		WithButton(input.ButtonRight, input.JustPressed)
	advance(l, in)

	if l.structures.Len() != 1 || l.structures.Find(cell) != 0 {
		t.Fatalf("wall not placed at %+v: %+v", cell, l.structures.Cell)
	}
	if l.structures.Kind[0] != StructureWall {
		t.Fatalf("kind = %s", l.structures.Kind[0])
	}
	if l.player.Scrap != 10-l.tun.WallCost {
		t.Fatalf("scrap = %d, want %d", l.player.Scrap, 10-l.tun.WallCost)
	}

	// Same cell again is rejected.
	advance(l, l.aimAt(target, 2).WithButton(input.ButtonRight, input.JustPressed))
	if l.structures.Len() != 1 {
		t.Fatalf("structures = %d after placing on an occupied cell", l.structures.Len())
	}
	if !l.Events().HasEntry("build", "rejected", "occupied") {
		t.Fatalf("rejection not logged:\n%s", l.Events().Format())
	}
}

func TestLooter_BuildRejections(t *testing.T) {
	l := newQuietLooter()
	l.player.Scrap = 1
	l.player.Selected = StructureTurret
	if l.place(CellAt(mathx.V2(1.1, 1.1), l.tun.CellSize), StructureTurret) {
		t.Fatal("placed a turret without enough scrap")
	}
	l.player.Scrap = 100
	if l.place(CellAt(l.player.Pos, l.tun.CellSize), StructureWall) {
		t.Fatal("placed a wall on top of the player")
	}
	if l.place(CellAt(mathx.V2(1.1, 1.1), l.tun.CellSize), StructureNone) {
		t.Fatal("placed nothing")
	}
	if l.structures.Len() != 0 || l.player.Scrap != 100 {
		t.Fatalf("rejections changed state: structures=%d scrap=%d", l.structures.Len(), l.player.Scrap)
	}
}

func TestLooter_SelectionKeys(t *testing.T) {
	l := newQuietLooter()
	advance(l, idle(1).WithKey(input.Key2, input.JustPressed))
	if l.player.Selected != StructureTurret {
		t.Fatalf("selected = %s, want turret", l.player.Selected)
	}
	advance(l, idle(2).WithKey(input.KeyQ, input.JustPressed))
	if l.player.Selected != StructureNone {
		t.Fatalf("selected = %s, want none", l.player.Selected)
	}
}

func TestLooter_StructuresBlockAndWear(t *testing.T) {
	l := newQuietLooter()
	c := Cell{X: 2, Y: 0}
	l.structures.Add(c, l.tun.WallHealth, StructureWall)
	r := c.Rect(l.tun.CellSize)
	// Enemy just right of the wall, overlapping it, heading for the player.
	l.enemies.Add(mathx.V2(r.Right()+l.tun.EnemyRadius-0.03, r.Center().Y), 1)

	advance(l, idle(1))

	if p := l.enemies.Pos[0]; r.Snap(p).Dist(p) < l.tun.EnemyRadius-1e-9 {
		t.Fatalf("enemy left inside the wall at %+v", p)
	}
	if l.structures.Health[0] >= l.tun.WallHealth {
		t.Fatal("wall took no wear")
	}
}

func TestLooter_WornOutStructureRemoved(t *testing.T) {
	l := newQuietLooter()
	c := Cell{X: 2, Y: 0}
	l.structures.Add(c, 1e-9, StructureWall)
	r := c.Rect(l.tun.CellSize)
	l.enemies.Add(mathx.V2(r.Right()+l.tun.EnemyRadius-0.03, r.Center().Y), 1)
	advance(l, idle(1))
	if l.structures.Len() != 0 {
		t.Fatal("destroyed wall still standing")
	}
	if !l.Events().HasEntry("build", "destroyed", "wall") {
		t.Fatal("destruction not logged")
	}
}

func TestLooter_TurretFiresAtNearestEnemy(t *testing.T) {
	l := newQuietLooter()
	l.tun.EnemySpeed = 0 // a sitting target
	c := Cell{X: 4, Y: 0}
	l.structures.Add(c, l.tun.TurretHealth, StructureTurret)
	origin := c.Rect(l.tun.CellSize).Center()
	l.enemies.Add(origin.Add(mathx.V2(0, 1)), 1)

	advance(l, idle(1))

	if l.bolts.Len() != 1 {
		t.Fatalf("bolts = %d, want 1", l.bolts.Len())
	}
	if l.bolts.Vel[0].Y <= 0 || math.Abs(l.bolts.Vel[0].X) > 1e-9 {
		t.Fatalf("bolt heading %+v, want toward +y", l.bolts.Vel[0])
	}
	if l.structures.Cooldown[0] <= 0 {
		t.Fatal("turret cooldown not set")
	}

	// The bolt reaches the enemy within a second and wounds it.
	for i := 0; i < 60 && l.bolts.Len() > 0; i++ {
		advance(l, idle(uint32(i+2)))
		if l.enemies.Len() == 0 || l.enemies.Health[0] < 1 {
			break
		}
	}
	if l.enemies.Len() == 1 && l.enemies.Health[0] >= 1 {
		t.Fatal("bolt never hit")
	}
}

func TestLooter_TurretHoldsFireBehindWalls(t *testing.T) {
	l := newQuietLooter()
	l.tun.EnemySpeed = 0
	c := Cell{X: 4, Y: 0}
	l.structures.Add(c, l.tun.TurretHealth, StructureTurret)
	l.structures.Add(Cell{X: 4, Y: 2}, l.tun.WallHealth, StructureWall)
	origin := c.Rect(l.tun.CellSize).Center()
	l.enemies.Add(origin.Add(mathx.V2(0, 1)), 1)

	advance(l, idle(1))

	if l.bolts.Len() != 0 {
		t.Fatalf("turret fired through a wall: bolts = %d", l.bolts.Len())
	}
	if l.structures.Cooldown[0] > 0 {
		t.Fatal("turret spent its cooldown without firing")
	}
}

func TestLooter_EnemiesOutOfRangeCoastToAStop(t *testing.T) {
	l := newQuietLooter()
	tun := l.tun
	l.enemies.Add(mathx.V2(tun.AcquireRange+1, 0), 1) // beyond acquisition
	l.enemies.Vel[0] = mathx.V2(0, tun.EnemySpeed)
	l.enemies.Add(mathx.V2(1, 0), 1) // in range, at rest

	prev := l.enemies.Vel[0].Len()
	for tick := 1; tick <= 3; tick++ {
		advance(l, idle(uint32(tick)))
		speed := l.enemies.Vel[0].Len()
		if !(speed < prev) || speed <= 0 {
			t.Fatalf("tick %d: out-of-range speed %.4f, previous %.4f", tick, speed, prev)
		}
		prev = speed
	}

	v := l.enemies.Vel[1]
	if math.Abs(v.Len()-tun.EnemySpeed) > 1e-9 {
		t.Fatalf("in-range speed = %.6f, want %.6f", v.Len(), tun.EnemySpeed)
	}
	if v.X >= 0 || math.Abs(v.Y) > 1e-9 {
		t.Fatalf("in-range enemy not heading at the player: %+v", v)
	}
}

func TestLooter_GroundDetailIsStable(t *testing.T) {
	l := newQuietLooter()
	detail := func() []byte {
		cv := canvas.New(l.camera())
		l.drawDetail(cv)
		return cv.Bytes()
	}
	a, b := detail(), detail()
	if len(a) == 0 {
		t.Fatal("no ground detail in view")
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("detail differs between frames: %d vs %d bytes", len(a), len(b))
	}
	l.tun.WorldSeed++
	if bytes.Equal(a, detail()) {
		t.Fatal("detail ignores the world seed")
	}
}

func TestLooter_OffscreenStructuresNotDrawn(t *testing.T) {
	base := advance(newQuietLooter(), idle(1))

	far := newQuietLooter()
	far.structures.Add(Cell{X: 40, Y: 0}, far.tun.WallHealth, StructureWall)
	if got := advance(far, idle(1)); len(got) != len(base) {
		t.Fatalf("offscreen wall changed the frame: %d vs %d bytes", len(got), len(base))
	}

	near := newQuietLooter()
	near.structures.Add(Cell{X: 2, Y: 2}, near.tun.WallHealth, StructureWall)
	if got := advance(near, idle(1)); len(got) != len(base)+6*canvas.VertexSize {
		t.Fatalf("visible wall: %d bytes, want %d", len(got), len(base)+6*canvas.VertexSize)
	}
}

func TestLooter_SelectionHighlightShowsAffordability(t *testing.T) {
	hasColour := func(frame []byte, c mathx.Vec4) bool {
		vs, err := canvas.Decode(frame)
		if err != nil {
			t.Fatal(err)
		}
		want := [4]float32{float32(c.X), float32(c.Y), float32(c.Z), float32(c.W)}
		for _, v := range vs {
			if v.Colour == want {
				return true
			}
		}
		return false
	}
	broke := looterHurt.WithAlpha(looterSelected.W)
	selectWall := idle(1).WithKey(input.Key1, input.JustPressed)

	l := newQuietLooter()
	frame := advance(l, selectWall)
	if !hasColour(frame, broke) || hasColour(frame, looterSelected) {
		t.Fatal("unaffordable selection not highlighted in red")
	}

	rich := newQuietLooter()
	rich.player.Scrap = rich.tun.WallCost
	frame = advance(rich, selectWall)
	if !hasColour(frame, looterSelected) || hasColour(frame, broke) {
		t.Fatal("affordable selection not highlighted normally")
	}
}

func TestLooter_CullsBeyondHorizon(t *testing.T) {
	l := newQuietLooter()
	l.enemies.Add(mathx.V2(l.tun.CullDistance+1, 0), 1)
	l.scrap.Add(mathx.V2(0, -l.tun.CullDistance-1), mathx.Vec2{})
	l.enemies.Add(mathx.V2(1, 1), 1)
	advance(l, idle(1))
	if l.enemies.Len() != 1 || l.scrap.Len() != 0 {
		t.Fatalf("after cull: enemies=%d pickups=%d", l.enemies.Len(), l.scrap.Len())
	}
	if l.Stats().Culled != 2 {
		t.Fatalf("culled = %d, want 2", l.Stats().Culled)
	}
}

func TestLooter_SpawnRingAndTarget(t *testing.T) {
	l := newQuietLooter()
	l.spawn(3, 3, 1)
	if l.enemies.Len() != 3 {
		t.Fatalf("enemies = %d, want the target of 3", l.enemies.Len())
	}
	for _, p := range l.enemies.Pos {
		if d := p.Dist(l.player.Pos); math.Abs(d-l.tun.SpawnDistance) > 1e-9 {
			t.Fatalf("spawned at distance %.4f, want %.4f", d, l.tun.SpawnDistance)
		}
	}

	m := newQuietLooter()
	m.spawn(3, 100, 1)
	if m.enemies.Len() != m.tun.MaxSpawnAttempts {
		t.Fatalf("enemies = %d, want one per attempt (%d)", m.enemies.Len(), m.tun.MaxSpawnAttempts)
	}

	n := newQuietLooter()
	n.spawn(3, 100, 0)
	if n.enemies.Len() != 0 {
		t.Fatalf("p=0 spawned %d", n.enemies.Len())
	}
}

func TestLooter_DayNightCycle(t *testing.T) {
	l := newQuietLooter()
	if isNight(l.dayPhase()) {
		t.Fatal("starts at night")
	}
	l.t = l.tun.DayLength * 0.5
	if !isNight(l.dayPhase()) {
		t.Fatal("midnight is not night")
	}
	if pop, p := l.spawnTarget(true); pop != l.tun.PopulationNight || p != l.tun.SpawnChanceNight {
		t.Fatalf("night target = %d/%.2f", pop, p)
	}
	// Half a tick before dawn.
	l.t = l.tun.DayLength*0.75 - testDT/2
	advance(l, idle(1))
	if !l.Events().HasEntry("clock", "dawn", "") {
		t.Fatalf("dawn not logged:\n%s", l.Events().Format())
	}
	if l.Stats().Night {
		t.Fatal("still night after dawn")
	}
}

func TestLooter_DeadPlayerIgnoresControls(t *testing.T) {
	l := newQuietLooter()
	l.player.Damage(1)
	l.player.Dead = true
	l.player.Scrap = 50
	in := l.aimAt(mathx.V2(1.1, 1.1), 1).
		WithKey(input.KeyD, input.Pressed).
		WithKey(input.Key1, input.JustPressed).
		WithButton(input.ButtonRight, input.JustPressed)
	advance(l, in)
	if l.player.Pos != (mathx.Vec2{}) {
		t.Fatalf("dead player moved to %+v", l.player.Pos)
	}
	if l.structures.Len() != 0 || l.player.Selected != StructureNone {
		t.Fatal("dead player built")
	}
}

func TestLooter_ContainedInWorld(t *testing.T) {
	l := newQuietLooter()
	l.player.Pos = mathx.V2(l.tun.WorldHalfSize+5, 0)
	advance(l, idle(1))
	if !l.world.Contains(l.player.Pos) {
		t.Fatalf("player outside world at %+v", l.player.Pos)
	}
}
