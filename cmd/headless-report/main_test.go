package main

import (
	"strings"
	"testing"

	"github.com/Garsondee/Scrap-Arena/internal/game"
)

func TestAssessRun_OverrunWhenDyingAndRarelyKilling(t *testing.T) {
	rs := runStats{deaths: 2, final: game.Stats{Spawned: 40, Killed: 5}}
	verdict, reason := assessRun(rs)
	if verdict != "overrun" {
		t.Fatalf("expected overrun, got %s (reason=%s)", verdict, reason)
	}
	if !strings.Contains(reason, "deaths=2") {
		t.Fatalf("expected reason to mention deaths, got: %s", reason)
	}
}

func TestAssessRun_DominantWithoutDeaths(t *testing.T) {
	rs := runStats{final: game.Stats{Spawned: 20, Killed: 10}}
	if verdict, reason := assessRun(rs); verdict != "dominant" {
		t.Fatalf("expected dominant, got %s (reason=%s)", verdict, reason)
	}
}

func TestAssessRun_QuietAndContested(t *testing.T) {
	if verdict, _ := assessRun(runStats{}); verdict != "quiet" {
		t.Fatalf("expected quiet for a run with no spawns, got %s", verdict)
	}
	rs := runStats{deaths: 1, final: game.Stats{Spawned: 20, Killed: 10}}
	if verdict, _ := assessRun(rs); verdict != "contested" {
		t.Fatalf("expected contested, got %s", verdict)
	}
}

func TestRunOnce_CollectsMarkers(t *testing.T) {
	h := game.NewHarness(
		game.WithMode(game.ModeSurvival),
		game.WithSeed(7),
		game.WithScript(game.Autopilot(game.ModeSurvival)),
		game.WithReporter(30, 600),
	)
	rs := runOnce(h, 1, 7, 600)
	if rs.ticks != 600 {
		t.Fatalf("ticks run = %d, want 600", rs.ticks)
	}
	if rs.windowSummary == nil || rs.windowSummary.SampleCount == 0 {
		t.Fatal("expected a window summary")
	}
	if rs.final.Tick != 600 {
		t.Fatalf("final tick = %d", rs.final.Tick)
	}
	if !strings.Contains(rs.lastSample, "T=600 ") {
		t.Fatalf("last sample should be taken at tick 600:\n%s", rs.lastSample)
	}
	if rs.firstSpawnTick >= 0 && rs.final.Spawned == 0 {
		t.Fatalf("first spawn marker %d with no spawns", rs.firstSpawnTick)
	}
}

func TestFormatHelpers(t *testing.T) {
	if got := avgTickString(nil); got != "n/a" {
		t.Fatalf("avgTickString(nil) = %q", got)
	}
	if got := avgTickString([]int{10, 20}); got != "15.0" {
		t.Fatalf("avgTickString = %q", got)
	}
	if got := formatCounts(map[string]int{"overrun": 1, "dominant": 2}); got != "dominant=2 overrun=1" {
		t.Fatalf("formatCounts = %q", got)
	}
	if got := avg(3, 0); got != 0 {
		t.Fatalf("avg with no runs = %v", got)
	}
}
