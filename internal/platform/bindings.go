package platform

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Scrap-Arena/internal/input"
	"github.com/Garsondee/Scrap-Arena/internal/mathx"
)

// keyBindings maps each logical key to the physical keys that drive it.
// The arrow keys are separate logical keys; the simulation treats them as
// aliases for WASD.
var keyBindings = map[input.Key][]ebiten.Key{
	input.KeyW:      {ebiten.KeyW},
	input.KeyA:      {ebiten.KeyA},
	input.KeyS:      {ebiten.KeyS},
	input.KeyD:      {ebiten.KeyD},
	input.KeyUp:     {ebiten.KeyArrowUp},
	input.KeyDown:   {ebiten.KeyArrowDown},
	input.KeyLeft:   {ebiten.KeyArrowLeft},
	input.KeyRight:  {ebiten.KeyArrowRight},
	input.KeyR:      {ebiten.KeyR},
	input.KeyQ:      {ebiten.KeyQ},
	input.KeyC:      {ebiten.KeyC},
	input.Key1:      {ebiten.Key1, ebiten.KeyNumpad1},
	input.Key2:      {ebiten.Key2, ebiten.KeyNumpad2},
	input.KeySpace:  {ebiten.KeySpace},
	input.KeyEscape: {ebiten.KeyEscape},
}

var buttonBindings = map[input.Button]ebiten.MouseButton{
	input.ButtonLeft:   ebiten.MouseButtonLeft,
	input.ButtonRight:  ebiten.MouseButtonRight,
	input.ButtonMiddle: ebiten.MouseButtonMiddle,
}

// pollFrame reads the raw held state of every bound control through the
// given predicates. Edge states are derived afterwards by an input.Tracker.
func pollFrame(keyDown func(ebiten.Key) bool, buttonDown func(ebiten.MouseButton) bool, mx, my int) input.Frame {
	f := input.Frame{
		Keys:    make(map[input.Key]bool, len(keyBindings)),
		Buttons: make(map[input.Button]bool, len(buttonBindings)),
		Mouse:   mathx.V2(float64(mx), float64(my)),
	}
	for k, phys := range keyBindings {
		for _, p := range phys {
			if keyDown(p) {
				f.Keys[k] = true
				break
			}
		}
	}
	for b, mb := range buttonBindings {
		f.Buttons[b] = buttonDown(mb)
	}
	return f
}
