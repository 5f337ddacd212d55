package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Garsondee/Scrap-Arena/internal/config"
	"github.com/Garsondee/Scrap-Arena/internal/game"
)

type runStats struct {
	runIndex int
	seed     uint32
	ticks    int

	firstSpawnTick int
	firstKillTick  int
	firstDeathTick int
	firstNightTick int

	deaths     int
	resets     int
	explosions int
	melees     int
	built      int
	rejected   int
	destroyed  int

	final         game.Stats
	lastSample    string
	windowSummary *game.WindowReport
	digest        uint64
}

func main() {
	env, err := config.LoadEnv(".env", config.Env{Mode: "survival", Seed: 42})
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(2)
	}

	var runs, ticks, every, window int
	var seedBase, seedStep uint
	var modeName, tuningPath string
	var dt float64
	var verbose bool

	flag.IntVar(&runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&ticks, "ticks", 3600, "ticks per run")
	flag.UintVar(&seedBase, "seed-base", uint(env.Seed), "base seed for run 1")
	flag.UintVar(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&modeName, "mode", env.Mode, "game variant: survival or looter")
	flag.Float64Var(&dt, "dt", 1.0/60, "fixed tick length in seconds")
	flag.StringVar(&tuningPath, "tuning", env.Tuning, "JSON file overriding default tuning")
	flag.IntVar(&every, "sample-every", 60, "ticks between stats samples")
	flag.IntVar(&window, "window", 1800, "ticks covered by the window summary")
	flag.BoolVar(&verbose, "verbose", false, "record per-entity events")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		os.Exit(2)
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		os.Exit(2)
	}
	if dt <= 0 {
		fmt.Println("error: -dt must be > 0")
		os.Exit(2)
	}
	mode, err := game.ParseMode(modeName)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(2)
	}
	tuning, err := config.LoadTuning(tuningPath)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("=== Headless Arena Report ===\n")
	fmt.Printf("mode=%s runs=%d ticks=%d dt=%.4f seed_base=%d seed_step=%d\n\n", mode, runs, ticks, dt, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := uint32(seedBase + uint(i)*seedStep)
		h := game.NewHarness(
			game.WithMode(mode),
			game.WithSeed(seed),
			game.WithDT(dt),
			game.WithTuning(tuning),
			game.WithVerbose(verbose),
			game.WithScript(game.Autopilot(mode)),
			game.WithReporter(every, window),
		)
		rs := runOnce(h, i+1, seed, ticks)
		all = append(all, rs)
		printRun(rs)
	}

	printAggregate(all)
}

func runOnce(h *game.Harness, runIndex int, seed uint32, ticks int) runStats {
	n := h.RunTicks(ticks)
	log := h.Log
	return runStats{
		runIndex:       runIndex,
		seed:           seed,
		ticks:          n,
		firstSpawnTick: firstSample(h, func(s game.Stats) bool { return s.Spawned > 0 }),
		firstKillTick:  firstSample(h, func(s game.Stats) bool { return s.Killed > 0 }),
		firstDeathTick: log.FirstTick("player", "died"),
		firstNightTick: log.FirstTick("clock", "dusk"),
		deaths:         log.CountCategory("player", "died"),
		resets:         log.CountCategory("player", "reset"),
		explosions:     log.CountCategory("combat", "explode"),
		melees:         log.CountCategory("combat", "melee"),
		built:          log.CountCategory("build", "placed"),
		rejected:       log.CountCategory("build", "rejected"),
		destroyed:      log.CountCategory("build", "destroyed"),
		final:          h.Sim.Stats(),
		lastSample:     h.Reporter.FormatLatest(),
		windowSummary:  h.Reporter.WindowSummary(),
		digest:         h.Digest(),
	}
}

// firstSample returns the tick of the first sampled Stats satisfying pred.
// Spawns and kills are only logged per entity in verbose mode, so the
// sampled history is the reliable source.
func firstSample(h *game.Harness, pred func(game.Stats) bool) int {
	for _, s := range h.Reporter.History() {
		if pred(s) {
			return s.Tick
		}
	}
	return -1
}

// assessRun labels how the autopilot fared.
func assessRun(rs runStats) (string, string) {
	f := rs.final
	switch {
	case rs.deaths > 0 && f.Killed*4 < f.Spawned:
		return "overrun", fmt.Sprintf("deaths=%d kill_rate=%.2f", rs.deaths, ratio(f.Killed, f.Spawned))
	case rs.deaths == 0 && f.Spawned > 0 && f.Killed*2 >= f.Spawned:
		return "dominant", fmt.Sprintf("no_deaths kill_rate=%.2f", ratio(f.Killed, f.Spawned))
	case f.Spawned == 0:
		return "quiet", "no_spawns"
	default:
		return "contested", fmt.Sprintf("deaths=%d kill_rate=%.2f", rs.deaths, ratio(f.Killed, f.Spawned))
	}
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("phase_markers: first_spawn=%d first_kill=%d first_death=%d first_night=%d\n",
		rs.firstSpawnTick, rs.firstKillTick, rs.firstDeathTick, rs.firstNightTick)
	fmt.Printf("event_totals: deaths=%d resets=%d explosions=%d melee_hits=%d\n",
		rs.deaths, rs.resets, rs.explosions, rs.melees)
	if rs.final.Mode == game.ModeLooter {
		fmt.Printf("build_events: placed=%d rejected=%d destroyed=%d\n", rs.built, rs.rejected, rs.destroyed)
	}
	fmt.Print(rs.final.String())
	fmt.Print("last_sample:\n" + rs.lastSample)
	if rs.windowSummary != nil {
		fmt.Print(rs.windowSummary.Format())
	}
	verdict, reason := assessRun(rs)
	fmt.Printf("verdict=%s (%s)\n", verdict, reason)
	fmt.Printf("ticks_run=%d frame_digest=%016x\n\n", rs.ticks, rs.digest)
}

func printAggregate(all []runStats) {
	var deaths, spawned, killed, collected, built int
	var deathTicks, killTicks []int
	verdicts := map[string]int{}
	for _, rs := range all {
		deaths += rs.deaths
		spawned += rs.final.Spawned
		killed += rs.final.Killed
		collected += rs.final.Collected
		built += rs.built
		if rs.firstDeathTick >= 0 {
			deathTicks = append(deathTicks, rs.firstDeathTick)
		}
		if rs.firstKillTick >= 0 {
			killTicks = append(killTicks, rs.firstKillTick)
		}
		v, _ := assessRun(rs)
		verdicts[v]++
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d\n", len(all))
	fmt.Printf("avg_per_run: deaths=%.1f spawned=%.1f killed=%.1f collected=%.1f built=%.1f\n",
		avg(deaths, len(all)), avg(spawned, len(all)), avg(killed, len(all)), avg(collected, len(all)), avg(built, len(all)))
	fmt.Printf("phase_marker_avg_ticks: first_kill=%s first_death=%s\n", avgTickString(killTicks), avgTickString(deathTicks))
	fmt.Printf("verdicts: %s\n", formatCounts(verdicts))
}

func ratio(a, b int) float64 {
	if b <= 0 {
		return 0
	}
	return float64(a) / float64(b)
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func formatCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return "none"
	}
	var parts []string
	for _, k := range []string{"dominant", "contested", "overrun", "quiet"} {
		if n := counts[k]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", k, n))
		}
	}
	return strings.Join(parts, " ")
}
