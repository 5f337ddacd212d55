// Package input defines the per-tick input record consumed by the
// simulation. Device polling lives elsewhere; this package only describes
// the already-aggregated result.
package input

import "github.com/Garsondee/Scrap-Arena/internal/mathx"

// Status is the edge-aware state of a key or button within one tick.
type Status uint8

const (
	Up           Status = iota // not held
	JustPressed                // went down this tick
	Pressed                    // held since an earlier tick
	JustReleased               // went up this tick
)

func (s Status) String() string {
	switch s {
	case Up:
		return "up"
	case JustPressed:
		return "just_pressed"
	case Pressed:
		return "pressed"
	case JustReleased:
		return "just_released"
	default:
		return "unknown"
	}
}

// Down reports whether the control is held this tick.
func (s Status) Down() bool { return s == JustPressed || s == Pressed }

// Key identifies a keyboard key the simulation cares about.
type Key int

const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyR
	KeyQ
	KeyC
	Key1
	Key2
	KeySpace
	KeyEscape
	keyCount
)

// Keys lists every identifier, in declaration order.
func Keys() []Key {
	out := make([]Key, keyCount)
	for i := range out {
		out[i] = Key(i)
	}
	return out
}

// Button identifies a pointer button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
	buttonCount
)

// Buttons lists every pointer button identifier.
func Buttons() []Button {
	return []Button{ButtonLeft, ButtonRight, ButtonMiddle}
}

// Snapshot is the immutable input record for a single tick. It is a value
// type: passing it around copies it, so the simulation cannot mutate the
// caller's view.
type Snapshot struct {
	DT      float64    // seconds since the previous tick
	Seed    uint32     // frame-unique random seed
	Mouse   mathx.Vec2 // pointer position in screen space
	Screen  mathx.Rect // viewport rectangle in screen space
	ScrollX float64
	ScrollY float64

	keys    [keyCount]Status
	buttons [buttonCount]Status
}

// NewSnapshot creates a snapshot with every control Up.
func NewSnapshot(dt float64, seed uint32, screen mathx.Rect) Snapshot {
	return Snapshot{DT: dt, Seed: seed, Screen: screen}
}

// Key returns the status of k; unknown keys are Up.
func (s Snapshot) Key(k Key) Status {
	if k < 0 || k >= keyCount {
		return Up
	}
	return s.keys[k]
}

// Button returns the status of b; unknown buttons are Up.
func (s Snapshot) Button(b Button) Status {
	if b < 0 || b >= buttonCount {
		return Up
	}
	return s.buttons[b]
}

// Held reports whether k is down this tick.
func (s Snapshot) Held(k Key) bool { return s.Key(k).Down() }

// JustPressed reports whether k went down this tick.
func (s Snapshot) JustPressed(k Key) bool { return s.Key(k) == JustPressed }

// ButtonJustPressed reports whether b went down this tick.
func (s Snapshot) ButtonJustPressed(b Button) bool { return s.Button(b) == JustPressed }

// WithKey returns a copy of s with k set to st.
func (s Snapshot) WithKey(k Key, st Status) Snapshot {
	if k >= 0 && k < keyCount {
		s.keys[k] = st
	}
	return s
}

// WithButton returns a copy of s with b set to st.
func (s Snapshot) WithButton(b Button, st Status) Snapshot {
	if b >= 0 && b < buttonCount {
		s.buttons[b] = st
	}
	return s
}

// WithMouse returns a copy of s with the pointer at p.
func (s Snapshot) WithMouse(p mathx.Vec2) Snapshot {
	s.Mouse = p
	return s
}

// WithScroll returns a copy of s with the given wheel deltas.
func (s Snapshot) WithScroll(dx, dy float64) Snapshot {
	s.ScrollX, s.ScrollY = dx, dy
	return s
}
