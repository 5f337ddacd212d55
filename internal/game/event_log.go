package game

import (
	"fmt"
	"strings"
)

// EventLogEntry is one recorded simulation event.
type EventLogEntry struct {
	Tick     int
	Category string  // spawn, cull, combat, player, pickup, build, clock
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=0042] combat   explode          killed=3
func (e EventLogEntry) String() string {
	return fmt.Sprintf("[T=%04d] %-8s %-16s %s", e.Tick, e.Category, e.Key, e.Value)
}

// EventLog collects structured events from a simulation. It is unbounded
// and machine-readable; tests and the headless report query it, the window
// build echoes selected categories through its sink.
type EventLog struct {
	entries []EventLogEntry
	verbose bool
	sink    func(EventLogEntry)
}

// NewEventLog creates a log. If verbose is true, per-entity events (each
// spawn, each pickup) are recorded as well as the aggregate ones.
func NewEventLog(verbose bool) *EventLog {
	return &EventLog{verbose: verbose}
}

// SetSink registers fn to receive every entry as it is added.
func (el *EventLog) SetSink(fn func(EventLogEntry)) {
	if el == nil {
		return
	}
	el.sink = fn
}

// Add records a new entry. A nil log discards it.
func (el *EventLog) Add(tick int, category, key, value string, numVal float64) {
	if el == nil {
		return
	}
	e := EventLogEntry{Tick: tick, Category: category, Key: key, Value: value, NumVal: numVal}
	el.entries = append(el.entries, e)
	if el.sink != nil {
		el.sink(e)
	}
}

// AddVerbose records an entry only when verbose mode is on.
func (el *EventLog) AddVerbose(tick int, category, key, value string, numVal float64) {
	if el == nil || !el.verbose {
		return
	}
	el.Add(tick, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (el *EventLog) Entries() []EventLogEntry {
	if el == nil {
		return nil
	}
	return el.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (el *EventLog) Filter(category, key string) []EventLogEntry {
	var out []EventLogEntry
	for _, e := range el.Entries() {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (el *EventLog) CountCategory(category, key string) int {
	return len(el.Filter(category, key))
}

// SumCategory adds up NumVal over matching entries.
func (el *EventLog) SumCategory(category, key string) float64 {
	total := 0.0
	for _, e := range el.Filter(category, key) {
		total += e.NumVal
	}
	return total
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (el *EventLog) LastOf(category, key string) (EventLogEntry, bool) {
	entries := el.Filter(category, key)
	if len(entries) == 0 {
		return EventLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// FirstTick returns the tick of the first matching entry, or -1.
func (el *EventLog) FirstTick(category, key string) int {
	for _, e := range el.Entries() {
		if e.Category == category && e.Key == key {
			return e.Tick
		}
	}
	return -1
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (el *EventLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range el.Entries() {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (el *EventLog) Format() string {
	var sb strings.Builder
	for _, e := range el.Entries() {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
