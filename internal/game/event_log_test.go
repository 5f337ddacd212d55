package game

import (
	"strings"
	"testing"
)

func TestEventLog_Queries(t *testing.T) {
	el := NewEventLog(false)
	el.Add(1, "spawn", "enemy", "anchor=2", 2)
	el.Add(3, "combat", "explode", "killed=4", 4)
	el.Add(7, "combat", "explode", "killed=1", 1)
	el.AddVerbose(8, "pickup", "scrap", "dropped", 1)

	if n := len(el.Entries()); n != 3 {
		t.Fatalf("entries = %d, want 3 (verbose entry dropped)", n)
	}
	if n := el.CountCategory("combat", ""); n != 2 {
		t.Fatalf("combat entries = %d", n)
	}
	if sum := el.SumCategory("combat", "explode"); sum != 5 {
		t.Fatalf("kills summed = %v", sum)
	}
	last, ok := el.LastOf("combat", "explode")
	if !ok || last.Tick != 7 {
		t.Fatalf("LastOf = %+v, %v", last, ok)
	}
	if _, ok := el.LastOf("build", "placed"); ok {
		t.Fatal("LastOf found a missing entry")
	}
	if el.FirstTick("combat", "explode") != 3 || el.FirstTick("build", "placed") != -1 {
		t.Fatal("FirstTick wrong")
	}
	if !el.HasEntry("spawn", "", "anchor=2") || el.HasEntry("spawn", "", "anchor=3") {
		t.Fatal("HasEntry substring match wrong")
	}
	if lines := strings.Count(el.Format(), "\n"); lines != 3 {
		t.Fatalf("Format lines = %d", lines)
	}
}

func TestEventLog_SinkAndNil(t *testing.T) {
	var got []EventLogEntry
	el := NewEventLog(true)
	el.SetSink(func(e EventLogEntry) { got = append(got, e) })
	el.Add(1, "player", "died", "x", 0)
	el.AddVerbose(2, "spawn", "enemy", "y", 0)
	if len(got) != 2 {
		t.Fatalf("sink saw %d entries, want 2", len(got))
	}

	var nilLog *EventLog
	nilLog.Add(1, "a", "b", "c", 0)
	if nilLog.Entries() != nil || nilLog.CountCategory("a", "") != 0 {
		t.Fatal("nil log recorded something")
	}
}

func TestEventLogEntry_String(t *testing.T) {
	e := EventLogEntry{Tick: 42, Category: "combat", Key: "explode", Value: "killed=3"}
	want := "[T=0042] combat   explode          killed=3"
	if got := e.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
