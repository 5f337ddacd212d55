package game

import (
	"github.com/Garsondee/Scrap-Arena/internal/input"
	"github.com/Garsondee/Scrap-Arena/internal/mathx"
)

// Player is the single controllable entity.
type Player struct {
	Pos    mathx.Vec2
	Vel    mathx.Vec2
	Health float64 // in [0,1]
	Scrap  int

	AttackCooldown float64
	Selected       StructureKind
	Aim            mathx.Vec2 // unit vector toward the cursor at the last strike
	Dead           bool
}

func newPlayer() Player {
	return Player{Health: 1, Aim: mathx.V2(1, 0)}
}

// Damage lowers health, clamped into [0,1].
func (p *Player) Damage(amount float64) {
	p.Health = mathx.Clamp(p.Health-amount, 0, 1)
}

// Heal raises health, clamped into [0,1].
func (p *Player) Heal(amount float64) {
	p.Health = mathx.Clamp(p.Health+amount, 0, 1)
}

// steeringInput reads the movement keys into a unit (or zero) direction.
// Screen y grows downward, so "up" is -y.
func steeringInput(in input.Snapshot) mathx.Vec2 {
	var v mathx.Vec2
	if in.Held(input.KeyW) || in.Held(input.KeyUp) {
		v.Y = mathx.Clamp(v.Y-1, -1, 1)
	}
	if in.Held(input.KeyS) || in.Held(input.KeyDown) {
		v.Y = mathx.Clamp(v.Y+1, -1, 1)
	}
	if in.Held(input.KeyA) || in.Held(input.KeyLeft) {
		v.X = mathx.Clamp(v.X-1, -1, 1)
	}
	if in.Held(input.KeyD) || in.Held(input.KeyRight) {
		v.X = mathx.Clamp(v.X+1, -1, 1)
	}
	return v.Normalize()
}

// drive applies momentum movement: velocity eases toward the steering
// target, then position integrates. A dead player gets no steering.
func (p *Player) drive(in input.Snapshot, speed, accel float64) {
	var target mathx.Vec2
	if !p.Dead {
		target = steeringInput(in).Mul(speed)
	}
	p.Vel = approach(p.Vel, target, accel, in.DT)
	if in.DT > 0 {
		p.Pos = p.Pos.Add(p.Vel.Mul(in.DT))
	}
}

// cursorWorld converts the snapshot pointer into world space through cam.
func cursorWorld(in input.Snapshot, cam mathx.Rect) mathx.Vec2 {
	return in.Mouse.Transform(in.Screen, cam)
}
