package game

import (
	"math"
	"testing"

	"github.com/Garsondee/Scrap-Arena/internal/canvas"
	"github.com/Garsondee/Scrap-Arena/internal/input"
	"github.com/Garsondee/Scrap-Arena/internal/mathx"
)

// dumpLog prints the full EventLog to t.Log so it appears in `go test -v` output.
func dumpLog(t *testing.T, h *Harness) {
	t.Helper()
	entries := h.Log.Entries()
	if len(entries) == 0 {
		t.Log("(no log entries)")
		return
	}
	for _, e := range entries {
		t.Log(e.String())
	}
}

func TestHarness_RunsAreBitIdentical(t *testing.T) {
	for _, mode := range []Mode{ModeSurvival, ModeLooter} {
		run := func() (*Harness, Stats) {
			h := NewHarness(WithMode(mode), WithSeed(42), WithScript(Autopilot(mode)))
			h.RunTicks(1800)
			return h, h.Sim.Stats()
		}
		a, sa := run()
		b, sb := run()
		if a.Digest() != b.Digest() {
			t.Fatalf("%s: frame digests differ: %x vs %x", mode, a.Digest(), b.Digest())
		}
		if sa != sb {
			t.Fatalf("%s: stats differ:\n%s\n%s", mode, sa, sb)
		}
		if string(a.Frame()) != string(b.Frame()) {
			t.Fatalf("%s: last frames differ", mode)
		}
		if sa.Spawned == 0 {
			dumpLog(t, a)
			t.Fatalf("%s: nothing spawned in 1800 ticks", mode)
		}
	}
}

func TestHarness_FramesAreWellFormed(t *testing.T) {
	for _, mode := range []Mode{ModeSurvival, ModeLooter} {
		h := NewHarness(WithMode(mode), WithSeed(7), WithScript(Autopilot(mode)))
		for i := 0; i < 300; i++ {
			h.Step()
			if len(h.Frame())%canvas.VertexSize != 0 {
				t.Fatalf("%s tick %d: frame length %d", mode, h.Tick, len(h.Frame()))
			}
			if _, err := canvas.Decode(h.Frame()); err != nil {
				t.Fatalf("%s tick %d: %v", mode, h.Tick, err)
			}
		}
	}
}

func TestHarness_NoNaNUnderAutopilot(t *testing.T) {
	for _, mode := range []Mode{ModeSurvival, ModeLooter} {
		h := NewHarness(WithMode(mode), WithSeed(99), WithScript(Autopilot(mode)))
		h.RunTicks(1200)
		obs := h.Sim.Observe()
		if !finite(obs.Player) {
			t.Fatalf("%s: player at %+v", mode, obs.Player)
		}
		for i, e := range obs.Enemies {
			if !finite(e) {
				t.Fatalf("%s: enemy %d at %+v", mode, i, e)
			}
		}
		vs, err := canvas.Decode(h.Frame())
		if err != nil {
			t.Fatal(err)
		}
		for i, v := range vs {
			for _, f := range v.Pos {
				if f != f {
					t.Fatalf("%s: vertex %d has NaN position", mode, i)
				}
			}
		}
	}
}

func TestHarness_QuitEndsRun(t *testing.T) {
	quitAt := 10
	h := NewHarness(WithScript(func(tick int, _ Observation) Intent {
		if tick == quitAt {
			return Intent{Keys: []input.Key{input.KeyEscape}}
		}
		return Intent{}
	}))
	n := h.RunTicks(100)
	if !h.Sim.QuitRequested() {
		t.Fatal("quit not requested")
	}
	if n != quitAt+1 {
		t.Fatalf("ran %d ticks, want %d", n, quitAt+1)
	}
	if got := h.Sim.Stats().Tick; got != quitAt {
		t.Fatalf("simulation advanced %d ticks, want %d", got, quitAt)
	}
}

func TestHarness_RunUntilDeathThenReset(t *testing.T) {
	h := NewHarness(WithMode(ModeSurvival), WithSeed(5))
	s := h.Sim.(*Survival)
	s.nextSpawn = math.Inf(1)
	s.enemies.Add(mathx.V2(0.06, 0), 1)
	s.enemies.Add(mathx.V2(-0.06, 0), 1)
	s.enemies.Add(mathx.V2(0, 0.06), 1)
	s.clear = false

	tick := h.RunUntil(func(h *Harness) bool { return h.Sim.Stats().Dead }, 600)
	if tick < 0 {
		dumpLog(t, h)
		t.Fatal("player never died with three enemies pressed against it")
	}
	if tick != h.Tick {
		t.Fatalf("RunUntil returned %d, harness at tick %d", tick, h.Tick)
	}
	if !h.Log.HasEntry("player", "died", "") {
		t.Fatal("death not logged")
	}

	// A dead player is still drawn over: frames keep coming.
	h.Feed(h.Snapshot())
	if !h.Sim.Stats().Dead {
		t.Fatal("player revived without a reset")
	}
	h.Feed(h.Snapshot().WithKey(input.KeyR, input.JustPressed))
	st := h.Sim.Stats()
	if st.Dead || st.Health != 1 {
		t.Fatalf("after reset: dead=%v health=%.3f", st.Dead, st.Health)
	}
	if st.Deaths != 1 {
		t.Fatalf("deaths = %d, want 1 kept across the reset", st.Deaths)
	}
}

func TestHarness_ReporterSamples(t *testing.T) {
	h := NewHarness(WithMode(ModeLooter), WithSeed(3), WithScript(Autopilot(ModeLooter)), WithReporter(60, 600))
	h.RunTicks(600)
	if got := len(h.Reporter.History()); got != 10 {
		t.Fatalf("samples = %d, want 10", got)
	}
	wr := h.Reporter.WindowSummary()
	if wr == nil || wr.SampleCount != 10 {
		t.Fatalf("window summary = %+v", wr)
	}
	t.Log(wr.Format())
	if latest := h.Reporter.FormatLatest(); latest != h.Reporter.Latest().String() {
		t.Fatalf("FormatLatest = %q", latest)
	}
	if got := NewReporter(0).FormatLatest(); got != "No data.\n" {
		t.Fatalf("empty FormatLatest = %q", got)
	}
}

func TestFrameSeed_VariesByTick(t *testing.T) {
	if FrameSeed(1, 0) == FrameSeed(1, 1) {
		t.Fatal("consecutive ticks share a seed")
	}
	if FrameSeed(1, 5) != FrameSeed(1, 5) {
		t.Fatal("frame seed is not deterministic")
	}
}
