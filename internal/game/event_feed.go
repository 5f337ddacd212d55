package game

// EventFeed is a fixed-capacity ring buffer of the most recent events, for
// on-screen display. Register Push as an EventLog sink.
type EventFeed struct {
	entries []EventLogEntry
	head    int
	count   int
}

// NewEventFeed creates a feed holding at most capacity entries.
func NewEventFeed(capacity int) *EventFeed {
	if capacity < 1 {
		capacity = 1
	}
	return &EventFeed{entries: make([]EventLogEntry, capacity)}
}

// Push appends an entry, overwriting the oldest when full.
func (f *EventFeed) Push(e EventLogEntry) {
	n := len(f.entries)
	f.entries[f.head] = e
	f.head = (f.head + 1) % n
	if f.count < n {
		f.count++
	}
}

// Recent returns entries in chronological order (oldest first).
func (f *EventFeed) Recent() []EventLogEntry {
	n := len(f.entries)
	result := make([]EventLogEntry, f.count)
	for i := 0; i < f.count; i++ {
		result[i] = f.entries[(f.head-f.count+i+n)%n]
	}
	return result
}

// Since returns the entries recorded at or after tick, oldest first.
func (f *EventFeed) Since(tick int) []EventLogEntry {
	all := f.Recent()
	for i, e := range all {
		if e.Tick >= tick {
			return all[i:]
		}
	}
	return nil
}
