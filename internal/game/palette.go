package game

import "github.com/Garsondee/Scrap-Arena/internal/mathx"

// healthRamp interpolates from lo to hi by health squared, so colours stay
// bright until the player is nearly dead. Health outside [0,1] is clamped.
func healthRamp(lo, hi mathx.Vec4, health float64) mathx.Vec4 {
	k := mathx.Clamp(health, 0, 1)
	return lo.Lerp(hi, k*k).Clamp01()
}

var (
	black = mathx.RGBA(0, 0, 0, 1)

	// survival palettes cycle with the difficulty level.
	survivalForeground = []mathx.Vec4{
		mathx.RGBA(0.9, 0.0, 0.0, 1),
		mathx.RGBA(0.0, 0.9, 0.0, 1),
		mathx.RGBA(0.0, 0.0, 0.9, 1),
		mathx.RGBA(0.9, 0.9, 0.0, 1),
		mathx.RGBA(0.0, 0.9, 0.9, 1),
		mathx.RGBA(0.9, 0.0, 0.9, 1),
	}
	survivalBackground = []mathx.Vec4{
		mathx.RGBA(1.0, 0.9, 0.8, 1),
		mathx.RGBA(0.9, 1.0, 0.8, 1),
		mathx.RGBA(0.8, 0.9, 1.0, 1),
		mathx.RGBA(0.0, 0.0, 0.0, 1),
		mathx.RGBA(0.0, 0.0, 0.0, 1),
		mathx.RGBA(0.0, 0.0, 0.0, 1),
	}

	looterDay      = mathx.RGBA(0.55, 0.62, 0.38, 1)
	looterNight    = mathx.RGBA(0.08, 0.10, 0.18, 1)
	looterPlayer   = mathx.RGBA(0.95, 0.85, 0.3, 1)
	looterHurt     = mathx.RGBA(0.4, 0.05, 0.05, 1)
	looterEnemy    = mathx.RGBA(0.55, 0.15, 0.2, 1)
	looterScrap    = mathx.RGBA(0.8, 0.82, 0.88, 1)
	looterShadow   = mathx.RGBA(0, 0, 0, 0.35)
	looterWall     = mathx.RGBA(0.55, 0.45, 0.35, 1)
	looterTurret   = mathx.RGBA(0.35, 0.45, 0.6, 1)
	looterBolt     = mathx.RGBA(1, 0.9, 0.5, 1)
	looterSwing    = mathx.RGBA(1, 1, 1, 0.5)
	looterDetail   = mathx.RGBA(0, 0, 0, 0.18)
	looterSelected = mathx.RGBA(1, 1, 1, 0.25)
)
