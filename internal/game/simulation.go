package game

import (
	"fmt"
	"strings"

	"github.com/Garsondee/Scrap-Arena/internal/canvas"
	"github.com/Garsondee/Scrap-Arena/internal/input"
	"github.com/Garsondee/Scrap-Arena/internal/mathx"
)

// Mode selects a simulation variant.
type Mode int

const (
	ModeSurvival Mode = iota // fixed arena, fireballs, waves
	ModeLooter               // open world, day/night, scrap and building
)

func (m Mode) String() string {
	switch m {
	case ModeSurvival:
		return "survival"
	case ModeLooter:
		return "looter"
	default:
		return "unknown"
	}
}

// ParseMode maps a flag value onto a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "survival", "arena":
		return ModeSurvival, nil
	case "looter", "world":
		return ModeLooter, nil
	default:
		return 0, fmt.Errorf("unknown mode %q (want survival or looter)", s)
	}
}

// Simulation is one game variant. Advance is the only mutator: it runs one
// full tick against the snapshot and writes that tick's frame into cv.
type Simulation interface {
	Advance(in input.Snapshot, cv *canvas.Canvas)
	Stats() Stats
	Observe() Observation
	QuitRequested() bool
	Events() *EventLog
	Mode() Mode
}

// New builds a fresh simulation of the given mode. A nil log gets a
// non-verbose one.
func New(mode Mode, t Tuning, log *EventLog) Simulation {
	if log == nil {
		log = NewEventLog(false)
	}
	switch mode {
	case ModeLooter:
		return NewLooter(t.Looter, log)
	default:
		return NewSurvival(t.Survival, log)
	}
}

// Stats is a point-in-time summary of a simulation.
type Stats struct {
	Mode       Mode
	Tick       int
	Time       float64
	Difficulty int     // survival: arenas cleared
	DayPhase   float64 // looter: 0 noon, 0.5 midnight
	Night      bool

	Enemies     int
	Projectiles int
	Pickups     int
	Structures  int

	Spawned   int
	Killed    int
	Culled    int
	Collected int

	Scrap  int
	Health float64
	Dead   bool
	Deaths int
}

// String formats the stats as a short multi-line report.
func (s Stats) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== %s T=%d (%.2fs) ===\n", s.Mode, s.Tick, s.Time)
	switch s.Mode {
	case ModeSurvival:
		fmt.Fprintf(&sb, "  difficulty=%d\n", s.Difficulty)
	case ModeLooter:
		fmt.Fprintf(&sb, "  day_phase=%.3f night=%v\n", s.DayPhase, s.Night)
	}
	fmt.Fprintf(&sb, "  player: health=%.2f scrap=%d dead=%v deaths=%d\n", s.Health, s.Scrap, s.Dead, s.Deaths)
	fmt.Fprintf(&sb, "  live:   enemies=%d projectiles=%d pickups=%d structures=%d\n",
		s.Enemies, s.Projectiles, s.Pickups, s.Structures)
	fmt.Fprintf(&sb, "  totals: spawned=%d killed=%d culled=%d collected=%d\n",
		s.Spawned, s.Killed, s.Culled, s.Collected)
	return sb.String()
}

// Observation exposes the positions a scripted driver needs to play. The
// slices are copies.
type Observation struct {
	Player  mathx.Vec2
	Dead    bool
	Enemies []mathx.Vec2
	Pickups []mathx.Vec2
	Camera  mathx.Rect
}

// Nearest returns the enemy closest to the player, or false if none.
func (o Observation) Nearest() (mathx.Vec2, bool) {
	best, found := mathx.Vec2{}, false
	bestD := 0.0
	for _, e := range o.Enemies {
		d := e.Sub(o.Player).LenSq()
		if !found || d < bestD {
			best, bestD, found = e, d, true
		}
	}
	return best, found
}

// counters accumulates the running totals both variants report.
type counters struct {
	tick      int
	spawned   int
	killed    int
	culled    int
	collected int
	deaths    int
}
