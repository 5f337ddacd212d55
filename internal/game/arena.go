package game

import (
	"fmt"
	"math"
	"sort"

	"github.com/Garsondee/Scrap-Arena/internal/mathx"
)

// Entity collections are stored structure-of-arrays. Every column of one
// collection always has the same length; removal is swap-with-last, so an
// index is only meaningful until the next removal.

// swapRemove overwrites s[i] with the last element and shrinks s by one.
func swapRemove[T any](s []T, i int) []T {
	if i < 0 || i >= len(s) {
		panic(fmt.Sprintf("game: swap-remove index %d out of range [0,%d)", i, len(s)))
	}
	last := len(s) - 1
	s[i] = s[last]
	var zero T
	s[last] = zero
	return s[:last]
}

// descendingUnique sorts a copy of idx high to low and drops duplicates, the
// order in which swap-removal of several indices is safe.
func descendingUnique(idx []int) []int {
	out := append([]int(nil), idx...)
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	n := 0
	for i, v := range out {
		if i > 0 && v == out[n-1] {
			continue
		}
		out[n] = v
		n++
	}
	return out[:n]
}

// Enemies is the enemy collection. Start holds each enemy's position at the
// start of the current tick so velocity reconciliation stays aligned across
// removals.
type Enemies struct {
	Pos    []mathx.Vec2
	Vel    []mathx.Vec2
	Start  []mathx.Vec2
	Health []float64
	Scrap  []int // carried scrap
}

func (e *Enemies) Len() int { return len(e.Pos) }

// Add appends an enemy at rest and returns its index.
func (e *Enemies) Add(pos mathx.Vec2, health float64) int {
	e.Pos = append(e.Pos, pos)
	e.Vel = append(e.Vel, mathx.Vec2{})
	e.Start = append(e.Start, pos)
	e.Health = append(e.Health, health)
	e.Scrap = append(e.Scrap, 0)
	return len(e.Pos) - 1
}

// SwapRemove deletes enemy i.
func (e *Enemies) SwapRemove(i int) {
	e.Pos = swapRemove(e.Pos, i)
	e.Vel = swapRemove(e.Vel, i)
	e.Start = swapRemove(e.Start, i)
	e.Health = swapRemove(e.Health, i)
	e.Scrap = swapRemove(e.Scrap, i)
}

// RemoveIndices deletes every listed enemy and returns how many went.
func (e *Enemies) RemoveIndices(idx []int) int {
	d := descendingUnique(idx)
	for _, i := range d {
		e.SwapRemove(i)
	}
	return len(d)
}

// MarkStart records the current positions as the tick-start positions.
func (e *Enemies) MarkStart() { copy(e.Start, e.Pos) }

// ProjectileKind tags what fired a projectile.
type ProjectileKind int

const (
	ProjectileFireball ProjectileKind = iota // explodes on contact
	ProjectileBolt                           // turret shot, single target
)

// Projectiles is the projectile collection.
type Projectiles struct {
	Pos  []mathx.Vec2
	Vel  []mathx.Vec2
	Kind []ProjectileKind
}

func (p *Projectiles) Len() int { return len(p.Pos) }

func (p *Projectiles) Add(pos, vel mathx.Vec2, kind ProjectileKind) int {
	p.Pos = append(p.Pos, pos)
	p.Vel = append(p.Vel, vel)
	p.Kind = append(p.Kind, kind)
	return len(p.Pos) - 1
}

func (p *Projectiles) SwapRemove(i int) {
	p.Pos = swapRemove(p.Pos, i)
	p.Vel = swapRemove(p.Vel, i)
	p.Kind = swapRemove(p.Kind, i)
}

func (p *Projectiles) RemoveIndices(idx []int) int {
	d := descendingUnique(idx)
	for _, i := range d {
		p.SwapRemove(i)
	}
	return len(d)
}

// Pickups is the scrap collection.
type Pickups struct {
	Pos []mathx.Vec2
	Vel []mathx.Vec2
}

func (p *Pickups) Len() int { return len(p.Pos) }

func (p *Pickups) Add(pos, vel mathx.Vec2) int {
	p.Pos = append(p.Pos, pos)
	p.Vel = append(p.Vel, vel)
	return len(p.Pos) - 1
}

func (p *Pickups) SwapRemove(i int) {
	p.Pos = swapRemove(p.Pos, i)
	p.Vel = swapRemove(p.Vel, i)
}

func (p *Pickups) RemoveIndices(idx []int) int {
	d := descendingUnique(idx)
	for _, i := range d {
		p.SwapRemove(i)
	}
	return len(d)
}

// StructureKind is what the player can build.
type StructureKind int

const (
	StructureNone StructureKind = iota
	StructureWall
	StructureTurret
)

func (k StructureKind) String() string {
	switch k {
	case StructureNone:
		return "none"
	case StructureWall:
		return "wall"
	case StructureTurret:
		return "turret"
	default:
		return "unknown"
	}
}

// Cell is a building grid coordinate.
type Cell struct {
	X, Y int32
}

// CellAt returns the grid cell containing p.
func CellAt(p mathx.Vec2, size float64) Cell {
	return Cell{X: int32(math.Floor(p.X / size)), Y: int32(math.Floor(p.Y / size))}
}

// Rect is the world rectangle covered by c.
func (c Cell) Rect(size float64) mathx.Rect {
	return mathx.R(float64(c.X)*size, float64(c.Y)*size, size, size)
}

// Structures is the building collection.
type Structures struct {
	Cell     []Cell
	Health   []float64
	Cooldown []float64
	Kind     []StructureKind
}

func (s *Structures) Len() int { return len(s.Cell) }

func (s *Structures) Add(c Cell, health float64, kind StructureKind) int {
	s.Cell = append(s.Cell, c)
	s.Health = append(s.Health, health)
	s.Cooldown = append(s.Cooldown, 0)
	s.Kind = append(s.Kind, kind)
	return len(s.Cell) - 1
}

func (s *Structures) SwapRemove(i int) {
	s.Cell = swapRemove(s.Cell, i)
	s.Health = swapRemove(s.Health, i)
	s.Cooldown = swapRemove(s.Cooldown, i)
	s.Kind = swapRemove(s.Kind, i)
}

func (s *Structures) RemoveIndices(idx []int) int {
	d := descendingUnique(idx)
	for _, i := range d {
		s.SwapRemove(i)
	}
	return len(d)
}

// Find returns the index of the structure occupying c, or -1.
func (s *Structures) Find(c Cell) int {
	for i, sc := range s.Cell {
		if sc == c {
			return i
		}
	}
	return -1
}
