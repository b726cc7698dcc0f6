package pipeline

import (
	"context"

	"go.uber.org/zap"

	"ideaforge/internal/llm"
)

// Runner executes pipelines. It holds the completion client and logger;
// per-run state lives in the Run call, so one Runner may serve concurrent
// independent runs.
type Runner struct {
	client llm.CompletionClient
	logger *zap.Logger
}

// NewRunner creates a runner. A nil logger is replaced with a no-op logger.
func NewRunner(client llm.CompletionClient, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{client: client, logger: logger}
}

// Run executes the pipeline over a copy of the initial state and returns
// the final state with the run history.
//
// The initial state must populate every pipeline input slot; otherwise the
// run aborts with *MissingDependencyError before any completion call is
// made. A failed completion never aborts the run: the stage commits a
// Degraded marker and downstream stages read the slot as empty.
func (r *Runner) Run(ctx context.Context, p *Pipeline, initial State) (State, *History, error) {
	st := initial.Clone()
	hist := NewHistory()

	// Cheap precondition check before expensive I/O.
	for _, slot := range p.Inputs() {
		if !st.Has(slot) {
			hist.setStatus(StatusAborted)
			return st, hist, &MissingDependencyError{Stage: p.order[0], Slot: slot}
		}
	}

	hist.setStatus(StatusRunning)

	for _, name := range p.order {
		stage := p.stages[name]

		for _, slot := range stage.Needs {
			if !st.Has(slot) {
				hist.setStatus(StatusAborted)
				return st, hist, &MissingDependencyError{Stage: name, Slot: slot}
			}
		}

		input := st.Clone()

		prompt, err := stage.BuildPrompt(ctx, st)
		if err == nil {
			var raw string
			raw, err = r.client.Complete(ctx, prompt)
			if err == nil {
				r.commit(stage, st, hist, input, raw)
				continue
			}
		}

		// Graceful degradation: record the failure, mark the slot, move on.
		r.logger.Warn("stage degraded",
			zap.String("stage", name),
			zap.Error(err))
		st.Set(stage.Provides, Degraded{Stage: name, Reason: err.Error()})
		hist.append(Entry{
			Stage:       name,
			Input:       input,
			RawResponse: err.Error(),
		})
	}

	hist.setStatus(StatusCompleted)
	return st, hist, nil
}

// commit parses the raw response, pads shortfalls via the synthesizer, and
// atomically writes the stage's output slot.
func (r *Runner) commit(stage *Stage, st State, hist *History, input State, raw string) {
	records := stage.Parse(raw)
	parsed := len(records)

	if shortfall := stage.MinRecords - parsed; shortfall > 0 && stage.Synthesize != nil {
		synth := stage.Synthesize(shortfall, st)
		if len(synth) > shortfall {
			synth = synth[:shortfall]
		}
		records = append(records, synth...)
	}

	var value any = records
	if stage.Reduce != nil {
		value = stage.Reduce(records, st)
	}
	st.Set(stage.Provides, value)

	hist.append(Entry{
		Stage:       stage.Name,
		Input:       input,
		RawResponse: raw,
		Records:     records,
	})

	r.logger.Debug("stage committed",
		zap.String("stage", stage.Name),
		zap.String("slot", stage.Provides),
		zap.Int("parsed", parsed),
		zap.Int("committed", len(records)))
}
