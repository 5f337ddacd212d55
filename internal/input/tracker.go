package input

import "github.com/Garsondee/Scrap-Arena/internal/mathx"

// Transition derives the edge-aware status from last tick's and this tick's
// raw held state.
func Transition(wasDown, isDown bool) Status {
	switch {
	case isDown && !wasDown:
		return JustPressed
	case isDown:
		return Pressed
	case wasDown:
		return JustReleased
	default:
		return Up
	}
}

// Frame is the raw, level-triggered state of every control for one tick.
type Frame struct {
	Keys    map[Key]bool
	Buttons map[Button]bool
	Mouse   mathx.Vec2
}

// Tracker turns a stream of raw Frames into Snapshots with edge states.
// The windowed build and the headless harness both feed it.
type Tracker struct {
	prevKeys    [keyCount]bool
	prevButtons [buttonCount]bool
}

// Next builds the snapshot for one tick and remembers f for the next call.
func (t *Tracker) Next(dt float64, seed uint32, screen mathx.Rect, f Frame) Snapshot {
	s := NewSnapshot(dt, seed, screen).WithMouse(f.Mouse)
	for k := Key(0); k < keyCount; k++ {
		down := f.Keys[k]
		s.keys[k] = Transition(t.prevKeys[k], down)
		t.prevKeys[k] = down
	}
	for b := Button(0); b < buttonCount; b++ {
		down := f.Buttons[b]
		s.buttons[b] = Transition(t.prevButtons[b], down)
		t.prevButtons[b] = down
	}
	return s
}
