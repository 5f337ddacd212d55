package game

import (
	"hash"
	"hash/fnv"

	"github.com/Garsondee/Scrap-Arena/internal/canvas"
	"github.com/Garsondee/Scrap-Arena/internal/input"
	"github.com/Garsondee/Scrap-Arena/internal/mathx"
)

// DefaultScreen is the viewport the harness pretends to render into.
var DefaultScreen = mathx.R(0, 0, 960, 960)

// FrameSeed is the per-tick random seed derived from a run's base seed.
// The windowed build and the harness use the same derivation, so a scripted
// run replays a recorded one.
func FrameSeed(base uint32, tick int) uint32 {
	return mathx.HashIndex(base, tick)
}

// Intent is what a scripted driver wants to do on one tick, in world terms.
// The harness turns it into raw control state.
type Intent struct {
	Move  mathx.Vec2 // only the sign of each axis matters
	Aim   mathx.Vec2 // cursor target in world space
	Fire  bool       // primary button held
	Place bool       // secondary button held
	Keys  []input.Key
}

// Script drives a harness run. It sees the world as of the previous tick.
type Script func(tick int, obs Observation) Intent

// Harness is a headless driver for a Simulation. It has no ebiten
// dependency and supports deterministic seeding, scripted input and a
// running digest of every frame's vertex stream.
type Harness struct {
	Sim      Simulation
	Log      *EventLog
	Reporter *Reporter
	Tick     int

	mode    Mode
	tuning  Tuning
	seed    uint32
	dt      float64
	screen  mathx.Rect
	verbose bool
	every   int

	script  Script
	tracker input.Tracker
	digest  hash.Hash64
	frame   []byte
}

// harnessOptionKind controls the pass in which an option is applied.
type harnessOptionKind int

const (
	harnessOptConfig harnessOptionKind = iota // mode, tuning, seed, dt; applied before the sim exists
	harnessOptDriver                          // script, reporter; applied after
)

// HarnessOption is a builder function applied to a Harness during
// construction.
type HarnessOption struct {
	kind harnessOptionKind
	fn   func(*Harness)
}

// WithMode selects the simulation variant.
func WithMode(m Mode) HarnessOption {
	return HarnessOption{harnessOptConfig, func(h *Harness) { h.mode = m }}
}

// WithSeed sets the base seed every frame seed derives from.
func WithSeed(seed uint32) HarnessOption {
	return HarnessOption{harnessOptConfig, func(h *Harness) { h.seed = seed }}
}

// WithDT sets the fixed tick length in seconds.
func WithDT(dt float64) HarnessOption {
	return HarnessOption{harnessOptConfig, func(h *Harness) { h.dt = dt }}
}

// WithTuning replaces the default constants.
func WithTuning(t Tuning) HarnessOption {
	return HarnessOption{harnessOptConfig, func(h *Harness) { h.tuning = t }}
}

// WithVerbose records per-entity events in the log.
func WithVerbose(v bool) HarnessOption {
	return HarnessOption{harnessOptConfig, func(h *Harness) { h.verbose = v }}
}

// WithScript sets the input driver. Without one every control stays Up.
func WithScript(s Script) HarnessOption {
	return HarnessOption{harnessOptDriver, func(h *Harness) { h.script = s }}
}

// WithReporter samples Stats every n ticks into a Reporter with the given
// window.
func WithReporter(every, windowTicks int) HarnessOption {
	return HarnessOption{harnessOptDriver, func(h *Harness) {
		h.every = every
		h.Reporter = NewReporter(windowTicks)
	}}
}

// NewHarness constructs a Harness in two passes: configuration, then the
// simulation, then drivers.
func NewHarness(opts ...HarnessOption) *Harness {
	h := &Harness{
		mode:   ModeSurvival,
		tuning: DefaultTuning(),
		seed:   1,
		dt:     1.0 / 60,
		screen: DefaultScreen,
		digest: fnv.New64a(),
	}
	for _, o := range opts {
		if o.kind == harnessOptConfig {
			o.fn(h)
		}
	}
	h.Log = NewEventLog(h.verbose)
	h.Sim = New(h.mode, h.tuning, h.Log)
	for _, o := range opts {
		if o.kind == harnessOptDriver {
			o.fn(h)
		}
	}
	return h
}

// Step runs one scripted tick.
func (h *Harness) Step() {
	obs := h.Sim.Observe()
	var it Intent
	if h.script != nil {
		it = h.script(h.Tick, obs)
	}
	f := it.frame(h.ScreenPoint(it.Aim, obs.Camera))
	h.Feed(h.tracker.Next(h.dt, FrameSeed(h.seed, h.Tick), h.screen, f))
}

// Feed runs one tick on a hand-built snapshot, bypassing the script.
func (h *Harness) Feed(in input.Snapshot) {
	cv := canvas.New(h.Sim.Observe().Camera)
	h.Sim.Advance(in, cv)
	h.frame = cv.Bytes()
	h.digest.Write(h.frame)
	h.Tick++
	if h.Reporter != nil && h.every > 0 && h.Tick%h.every == 0 {
		h.Reporter.Collect(h.Sim.Stats())
	}
}

// Snapshot builds an all-Up snapshot for the next tick, for use with Feed.
func (h *Harness) Snapshot() input.Snapshot {
	return input.NewSnapshot(h.dt, FrameSeed(h.seed, h.Tick), h.screen)
}

// RunTicks advances up to n ticks, stopping early on a quit request. It
// returns the number of ticks run.
func (h *Harness) RunTicks(n int) int {
	for i := 0; i < n; i++ {
		if h.Sim.QuitRequested() {
			return i
		}
		h.Step()
	}
	return n
}

// RunUntil advances up to maxTicks, stopping early when pred is satisfied.
// It returns the tick at which pred held, or -1.
func (h *Harness) RunUntil(pred func(*Harness) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		if h.Sim.QuitRequested() {
			return -1
		}
		h.Step()
		if pred(h) {
			return h.Tick
		}
	}
	return -1
}

// Frame returns the vertex stream of the last tick.
func (h *Harness) Frame() []byte { return h.frame }

// Digest is the FNV-64a hash of every frame so far, in order.
func (h *Harness) Digest() uint64 { return h.digest.Sum64() }

// ScreenPoint maps a world point to the harness viewport through cam.
func (h *Harness) ScreenPoint(p mathx.Vec2, cam mathx.Rect) mathx.Vec2 {
	return p.Transform(cam, h.screen)
}

// frame turns the intent into held control state with the pointer at mouse.
func (it Intent) frame(mouse mathx.Vec2) input.Frame {
	f := input.Frame{
		Keys:    map[input.Key]bool{},
		Buttons: map[input.Button]bool{},
		Mouse:   mouse,
	}
	switch {
	case it.Move.X < 0:
		f.Keys[input.KeyA] = true
	case it.Move.X > 0:
		f.Keys[input.KeyD] = true
	}
	switch {
	case it.Move.Y < 0:
		f.Keys[input.KeyW] = true
	case it.Move.Y > 0:
		f.Keys[input.KeyS] = true
	}
	for _, k := range it.Keys {
		f.Keys[k] = true
	}
	f.Buttons[input.ButtonLeft] = it.Fire
	f.Buttons[input.ButtonRight] = it.Place
	return f
}

// Autopilot is a simple scripted player: it backs away from close enemies,
// otherwise drifts toward scrap or the middle of the view, attacks the
// nearest enemy on a fixed rhythm, builds now and then in the looter, and
// resets after dying.
func Autopilot(mode Mode) Script {
	return func(tick int, obs Observation) Intent {
		if obs.Dead {
			if tick%2 == 0 {
				return Intent{Keys: []input.Key{input.KeyR}}
			}
			return Intent{}
		}
		var it Intent
		target, found := obs.Nearest()
		switch {
		case found && target.Dist(obs.Player) < 0.4:
			it.Move = obs.Player.Sub(target)
		case len(obs.Pickups) > 0:
			it.Move = obs.Pickups[0].Sub(obs.Player)
		default:
			it.Move = obs.Camera.Center().Sub(obs.Player)
			if mode == ModeSurvival {
				it.Move = mathx.Vec2{}.Sub(obs.Player)
			}
			if it.Move.Len() < 0.1 {
				it.Move = mathx.Vec2{}
			}
		}
		if found {
			it.Aim = target
			it.Fire = tick%20 == 0
		}
		if mode == ModeLooter {
			switch tick % 300 {
			case 148:
				it.Keys = append(it.Keys, input.Key1)
			case 150:
				it.Aim = obs.Player.Add(mathx.V2(0.5, 0.5))
				it.Place = true
				it.Fire = false
			}
		}
		return it
	}
}
