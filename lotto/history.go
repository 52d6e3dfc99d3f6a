package lotto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

const (
	HistoryLimit = 12

	// TimestampLayout is how an entry's At is displayed and stored.
	TimestampLayout = "2006-01-02 15:04"
)

// Entry is one generation event.
type Entry struct {
	At   string `json:"at"`
	Sets []Set  `json:"sets"`
}

// History is ordered newest first.
type History []Entry

// State is everything a frontend shows: the stored history and the sets of
// the latest generation in this run.
type State struct {
	History  History
	LastSets []Set
}

// NewEntry stamps sets with t in TimestampLayout.
func NewEntry(t time.Time, sets []Set) Entry {
	return Entry{At: t.Format(TimestampLayout), Sets: sets}
}

// Record returns h with e prepended, truncated to HistoryLimit. h is not
// modified.
func Record(h History, e Entry) History {
	out := make(History, 0, min(len(h)+1, HistoryLimit))
	out = append(out, e)
	for _, old := range h {
		if len(out) == HistoryLimit {
			break
		}
		out = append(out, old)
	}
	return out
}

// Truncate returns at most the first HistoryLimit entries.
func (h History) Truncate() History {
	if len(h) > HistoryLimit {
		return h[:HistoryLimit]
	}
	return h
}

// Latest returns the newest entry.
func (h History) Latest() (Entry, bool) {
	if len(h) == 0 {
		return Entry{}, false
	}
	return h[0], true
}

// Generate produces a batch with g and records it at now.
func Generate(st State, g *Generator, n int, now time.Time) State {
	sets := g.GenerateBatch(n)
	return State{
		History:  Record(st.History, NewEntry(now, sets)),
		LastSets: sets,
	}
}

// ClearHistory drops every history entry and keeps the last sets so they
// can still be copied.
func ClearHistory(st State) State {
	return State{LastSets: st.LastSets}
}

// EncodeHistory serializes the first HistoryLimit entries.
func EncodeHistory(h History) ([]byte, error) {
	h = h.Truncate()
	if h == nil {
		h = History{}
	}
	b, err := json.Marshal(h)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal history: %w", err)
	}
	return b, nil
}

// DecodeHistory parses a stored blob. It never fails: a blob that is not a
// JSON array yields an empty history, entries without a string "at" or an
// array "sets" are dropped, invalid sets are dropped and so are entries left
// with no sets.
func DecodeHistory(blob []byte) History {
	blob = bytes.TrimSpace(blob)
	if len(blob) == 0 {
		return History{}
	}
	var items []json.RawMessage
	if err := json.Unmarshal(blob, &items); err != nil {
		return History{}
	}

	h := make(History, 0, min(len(items), HistoryLimit))
	for _, it := range items {
		if len(h) == HistoryLimit {
			break
		}
		if e, ok := decodeEntry(it); ok {
			h = append(h, e)
		}
	}
	return h
}

func decodeEntry(raw json.RawMessage) (Entry, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return Entry{}, false
	}
	var at string
	if err := json.Unmarshal(obj["at"], &at); err != nil || !isJSONString(obj["at"]) {
		return Entry{}, false
	}
	var rawSets []json.RawMessage
	if err := json.Unmarshal(obj["sets"], &rawSets); err != nil || rawSets == nil {
		return Entry{}, false
	}

	sets := make([]Set, 0, len(rawSets))
	for _, rs := range rawSets {
		if s, err := Normalize(rs); err == nil {
			sets = append(sets, s)
		}
	}
	if len(sets) == 0 {
		return Entry{}, false
	}
	return Entry{At: at, Sets: sets}, true
}

func isJSONString(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '"'
}
