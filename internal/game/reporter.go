package game

import (
	"fmt"
	"strings"
)

// reportWindowTicks is the window used when none is given: ten seconds at 60 TPS.
const reportWindowTicks = 600

// Reporter collects periodic Stats samples and can summarise them over a
// sliding window of ticks.
type Reporter struct {
	history     []Stats
	windowTicks int
}

// NewReporter creates a reporter with the given window size.
func NewReporter(windowTicks int) *Reporter {
	if windowTicks <= 0 {
		windowTicks = reportWindowTicks
	}
	return &Reporter{windowTicks: windowTicks}
}

// Collect appends one sample. The harness calls it every few ticks.
func (r *Reporter) Collect(s Stats) {
	r.history = append(r.history, s)
}

// Latest returns the most recent sample, or nil if none collected yet.
func (r *Reporter) Latest() *Stats {
	if len(r.history) == 0 {
		return nil
	}
	return &r.history[len(r.history)-1]
}

// History returns all collected samples.
func (r *Reporter) History() []Stats {
	return r.history
}

// WindowReport aggregates the samples that fall inside one window.
type WindowReport struct {
	FromTick, ToTick int
	SampleCount      int

	AvgEnemies  float64
	PeakEnemies int
	AvgHealth   float64
	MinHealth   float64
	NightShare  float64 // fraction of samples taken at night

	// Deltas of the running totals across the window.
	Spawned   int
	Killed    int
	Collected int
	Deaths    int
}

// WindowSummary aggregates every sample within the window ending at the
// latest one.
func (r *Reporter) WindowSummary() *WindowReport {
	if len(r.history) == 0 {
		return nil
	}

	latest := r.history[len(r.history)-1]
	cutoff := latest.Tick - r.windowTicks
	var window []Stats
	for i := len(r.history) - 1; i >= 0; i-- {
		if r.history[i].Tick < cutoff {
			break
		}
		window = append(window, r.history[i])
	}

	oldest := window[len(window)-1]
	n := float64(len(window))
	wr := &WindowReport{
		FromTick:    oldest.Tick,
		ToTick:      latest.Tick,
		SampleCount: len(window),
		MinHealth:   latest.Health,
		Spawned:     latest.Spawned - oldest.Spawned,
		Killed:      latest.Killed - oldest.Killed,
		Collected:   latest.Collected - oldest.Collected,
		Deaths:      latest.Deaths - oldest.Deaths,
	}
	for _, s := range window {
		wr.AvgEnemies += float64(s.Enemies)
		wr.AvgHealth += s.Health
		if s.Enemies > wr.PeakEnemies {
			wr.PeakEnemies = s.Enemies
		}
		if s.Health < wr.MinHealth {
			wr.MinHealth = s.Health
		}
		if s.Night {
			wr.NightShare++
		}
	}
	wr.AvgEnemies /= n
	wr.AvgHealth /= n
	wr.NightShare /= n
	return wr
}

// Format renders the report as indented lines for the headless CLI.
func (wr *WindowReport) Format() string {
	if wr == nil {
		return "No data collected yet.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Window Report (T=%d..%d, %d samples) ===\n",
		wr.FromTick, wr.ToTick, wr.SampleCount)
	fmt.Fprintf(&sb, "  enemies: avg=%.1f peak=%d  (%s)\n", wr.AvgEnemies, wr.PeakEnemies, pressureLabel(wr.AvgEnemies))
	fmt.Fprintf(&sb, "  health:  avg=%.2f min=%.2f\n", wr.AvgHealth, wr.MinHealth)
	fmt.Fprintf(&sb, "  night:   %.0f%% of samples\n", wr.NightShare*100)
	fmt.Fprintf(&sb, "  window:  spawned=%d killed=%d collected=%d deaths=%d\n",
		wr.Spawned, wr.Killed, wr.Collected, wr.Deaths)
	return sb.String()
}

func pressureLabel(avg float64) string {
	switch {
	case avg >= 20:
		return "overrun"
	case avg >= 8:
		return "heavy"
	case avg >= 2:
		return "steady"
	case avg > 0:
		return "light"
	default:
		return "quiet"
	}
}

// FormatLatest returns the most recent sample, or a placeholder.
func (r *Reporter) FormatLatest() string {
	s := r.Latest()
	if s == nil {
		return "No data.\n"
	}
	return s.String()
}
