package tournament

import (
	"fmt"
	"strings"
)

// Event log categories and keys.
const (
	CategoryRound   = "round"
	CategoryElim    = "elim"
	CategoryWarning = "warning"

	KeyRoundComplete = "complete"
	KeyEliminated    = "eliminated"
)

// EventLogEntry is one recorded tournament event.
type EventLogEntry struct {
	Step       int    // 1-based advance count
	Round      Stage  // round that produced the entry
	Competitor string // label e.g. "#12", or "--" for round-level events
	Category   string // round, elim, warning
	Key        string
	Value      string
	NumVal     float64
}

// String formats the entry as a fixed-width log line.
//
//	[S=3] #17  elim      eliminated       tug_of_war strength=0.21
func (e EventLogEntry) String() string {
	return fmt.Sprintf("[S=%d] %-5s %-9s %-16s %s",
		e.Step, e.Competitor, e.Category, e.Key, e.Value)
}

// EventLog collects structured events across a tournament run. It is
// unbounded and machine-readable; the viewer keeps its own ring buffer.
type EventLog struct {
	entries []EventLogEntry
}

// NewEventLog creates an empty log.
func NewEventLog() *EventLog {
	return &EventLog{}
}

// Add records a new entry.
func (el *EventLog) Add(step int, round Stage, competitor, category, key, value string, numVal float64) {
	el.entries = append(el.entries, EventLogEntry{
		Step:       step,
		Round:      round,
		Competitor: competitor,
		Category:   category,
		Key:        key,
		Value:      value,
		NumVal:     numVal,
	})
}

// Reset drops every entry.
func (el *EventLog) Reset() {
	el.entries = nil
}

// Entries returns a copy of all recorded entries.
func (el *EventLog) Entries() []EventLogEntry {
	out := make([]EventLogEntry, len(el.entries))
	copy(out, el.entries)
	return out
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (el *EventLog) Filter(category, key string) []EventLogEntry {
	var out []EventLogEntry
	for _, e := range el.entries {
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

// FilterCompetitor returns entries for a specific competitor label.
func (el *EventLog) FilterCompetitor(label string) []EventLogEntry {
	var out []EventLogEntry
	for _, e := range el.entries {
		if e.Competitor == label {
			out = append(out, e)
		}
	}
	return out
}

// FilterRound returns entries produced by one round.
func (el *EventLog) FilterRound(round Stage) []EventLogEntry {
	var out []EventLogEntry
	for _, e := range el.entries {
		if e.Round == round {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (el *EventLog) CountCategory(category, key string) int {
	return len(el.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (el *EventLog) LastOf(category, key string) (EventLogEntry, bool) {
	entries := el.Filter(category, key)
	if len(entries) == 0 {
		return EventLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (el *EventLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range el.entries {
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
	for _, e := range el.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
