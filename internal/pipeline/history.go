package pipeline

// Status describes where a run is in its lifecycle.
type Status string

const (
	StatusNotStarted Status = "not-started"
	StatusRunning    Status = "running"
	StatusCompleted  Status = "completed"
	StatusAborted    Status = "aborted"
)

// Entry is one stage execution in the run history.
type Entry struct {
	Stage       string
	Input       State    // snapshot taken before the stage ran
	RawResponse string   // completion text, or the error text on degradation
	Records     []Record // committed records (parse output plus fallback padding)
}

// History is the append-only audit trail of one run. It is owned by the
// runner while the run executes and read-only to callers afterward.
type History struct {
	entries []Entry
	status  Status
}

// NewHistory returns an empty history in the not-started state.
func NewHistory() *History {
	return &History{status: StatusNotStarted}
}

func (h *History) append(e Entry) {
	h.entries = append(h.entries, e)
}

func (h *History) setStatus(s Status) {
	h.status = s
}

// Status returns the final run status.
func (h *History) Status() Status {
	return h.status
}

// Len returns the number of recorded stage executions.
func (h *History) Len() int {
	return len(h.entries)
}

// Entries returns a copy of the recorded entries in execution order.
func (h *History) Entries() []Entry {
	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	return out
}

// ByStage returns the entry recorded for the named stage.
func (h *History) ByStage(name string) (Entry, bool) {
	for _, e := range h.entries {
		if e.Stage == name {
			return e, true
		}
	}
	return Entry{}, false
}
