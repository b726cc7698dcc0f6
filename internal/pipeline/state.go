// Package pipeline implements the structured-output pipeline engine: a
// sequential (DAG-ordered) runner that threads a shared state through
// prompt-generate-parse-fallback stages and records a run history.
package pipeline

// Record is one structured unit parsed out of free text.
type Record = any

// State maps named slots to values produced by completed stages. A stage
// may only read slots populated before it runs and writes exactly one slot,
// atomically, on completion.
type State map[string]any

// Clone returns a shallow snapshot of the state. Slot values are treated as
// immutable once committed, so a shallow copy is a faithful snapshot.
func (s State) Clone() State {
	out := make(State, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Has reports whether the slot is populated.
func (s State) Has(slot string) bool {
	_, ok := s[slot]
	return ok
}

// Get returns the slot value.
func (s State) Get(slot string) (any, bool) {
	v, ok := s[slot]
	return v, ok
}

// Set populates the slot.
func (s State) Set(slot string, value any) {
	s[slot] = value
}

// Degraded is the error marker committed to a stage's output slot when the
// completion call fails. Downstream stages treat a degraded slot as empty.
type Degraded struct {
	Stage  string
	Reason string
}

// IsDegraded reports whether the slot holds an error marker.
func IsDegraded(st State, slot string) bool {
	_, ok := st[slot].(Degraded)
	return ok
}

// SlotRecords returns the record sequence committed to a slot. Missing and
// degraded slots read as empty; non-sequence values read as a single record.
func SlotRecords(st State, slot string) []Record {
	v, ok := st[slot]
	if !ok {
		return nil
	}
	switch val := v.(type) {
	case Degraded:
		return nil
	case []Record:
		return val
	default:
		return []Record{val}
	}
}
