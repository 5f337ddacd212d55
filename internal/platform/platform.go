// Package platform runs a Simulation inside an ebiten window. It polls the
// keyboard and mouse, advances one tick per ebiten update, and submits the
// resulting frame.
package platform

import (
	"fmt"
	"image/color"
	"log"
	"slices"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Scrap-Arena/internal/canvas"
	"github.com/Garsondee/Scrap-Arena/internal/game"
	"github.com/Garsondee/Scrap-Arena/internal/input"
	"github.com/Garsondee/Scrap-Arena/internal/mathx"
	"github.com/Garsondee/Scrap-Arena/internal/render"
)

// Config is everything the windowed build needs to start a run.
type Config struct {
	Mode    game.Mode
	Tuning  game.Tuning
	Width   int
	Height  int
	Seed    uint32
	TPS     int
	Verbose bool
}

const (
	statusTicks = 120 // how long a status message stays on the HUD
	feedSize    = 8
	feedTicks   = 600 // events older than this fade from the feed
	lineHeight  = 15
)

var (
	hudColour  = color.RGBA{R: 230, G: 230, B: 210, A: 255}
	feedColour = color.RGBA{R: 190, G: 200, B: 170, A: 220}
)

// Game implements ebiten.Game.
type Game struct {
	cfg     Config
	sim     game.Simulation
	events  *game.EventLog
	feed    *game.EventFeed
	tracker input.Tracker
	pressed []ebiten.Key
	tick    int

	renderer *render.Renderer
	frame    []byte
	err      error

	face        text.Face
	showHUD     bool
	status      string
	statusUntil int
}

// New builds the simulation. Its events are echoed to the standard logger
// and the most recent ones are shown on screen.
func New(cfg Config) *Game {
	if cfg.TPS <= 0 {
		cfg.TPS = ebiten.DefaultTPS
	}
	events := game.NewEventLog(cfg.Verbose)
	feed := game.NewEventFeed(feedSize)
	events.SetSink(func(e game.EventLogEntry) {
		log.Print(e.String())
		feed.Push(e)
	})
	return &Game{
		cfg:     cfg,
		sim:     game.New(cfg.Mode, cfg.Tuning, events),
		events:  events,
		feed:    feed,
		face:    text.NewGoXFace(basicfont.Face7x13),
		showHUD: true,
	}
}

func (g *Game) screen() mathx.Rect {
	return mathx.R(0, 0, float64(g.cfg.Width), float64(g.cfg.Height))
}

// Update runs exactly one simulation tick.
func (g *Game) Update() error {
	if g.err != nil {
		return g.err
	}
	g.pressed = inpututil.AppendPressedKeys(g.pressed[:0])
	mx, my := ebiten.CursorPosition()
	f := pollFrame(g.keyDown, ebiten.IsMouseButtonPressed, mx, my)
	dt := 1.0 / float64(g.cfg.TPS)
	in := g.tracker.Next(dt, game.FrameSeed(g.cfg.Seed, g.tick), g.screen(), f)
	in = in.WithScroll(ebiten.Wheel())

	if in.JustPressed(input.KeyC) {
		g.copyStats()
	}
	if in.JustPressed(input.KeySpace) {
		g.showHUD = !g.showHUD
	}

	cv := canvas.New(g.sim.Observe().Camera)
	g.sim.Advance(in, cv)
	g.frame = cv.Bytes()
	g.tick++

	if g.sim.QuitRequested() {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) keyDown(k ebiten.Key) bool { return slices.Contains(g.pressed, k) }

func (g *Game) copyStats() {
	report := g.sim.Stats().String()
	if err := clipboard.WriteAll(report); err != nil {
		log.Printf("clipboard: %v", err)
		g.setStatus("clipboard unavailable")
		return
	}
	g.setStatus("stats copied to clipboard")
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusUntil = g.tick + statusTicks
}

// Draw submits the last frame and the HUD. A malformed frame is reported
// from the next Update, since Draw cannot return an error.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.renderer == nil {
		g.renderer = render.NewRenderer()
	}
	if err := g.renderer.Submit(screen, g.frame); err != nil {
		g.err = err
		return
	}
	if !g.showHUD {
		return
	}
	status := ""
	if g.tick < g.statusUntil {
		status = g.status
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(8, 6)
	op.LineSpacing = lineHeight
	op.ColorScale.ScaleWithColor(hudColour)
	text.Draw(screen, hudText(g.sim.Stats(), status), g.face, op)

	lines := feedLines(g.feed.Since(g.tick - feedTicks))
	if len(lines) == 0 {
		return
	}
	op = &text.DrawOptions{}
	op.GeoM.Translate(8, float64(g.cfg.Height-8-lineHeight*len(lines)))
	op.LineSpacing = lineHeight
	op.ColorScale.ScaleWithColor(feedColour)
	text.Draw(screen, strings.Join(lines, "\n"), g.face, op)
}

// feedLines formats recent events for the bottom-left corner.
func feedLines(entries []game.EventLogEntry) []string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, e.String())
	}
	return lines
}

// Layout pins the logical screen to the configured size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// hudText is the overlay shown in the top-left corner.
func hudText(s game.Stats, status string) string {
	line := fmt.Sprintf("%s  T=%d  hp %3.0f%%", s.Mode, s.Tick, s.Health*100)
	switch s.Mode {
	case game.ModeSurvival:
		line += fmt.Sprintf("  level %d", s.Difficulty)
	case game.ModeLooter:
		tod := "day"
		if s.Night {
			tod = "night"
		}
		line += fmt.Sprintf("  scrap %d  %s", s.Scrap, tod)
	}
	line += fmt.Sprintf("  enemies %d  kills %d", s.Enemies, s.Killed)
	if s.Dead {
		line += "\nYOU DIED - press R to reset"
	}
	if status != "" {
		line += "\n" + status
	}
	return line
}
