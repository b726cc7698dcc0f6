package pipeline

import "context"

// PromptFunc renders a stage's prompt from the current state. Substitution
// is plain string formatting; retrieval-augmented stages may close over a
// DocumentIndex and fold its results into the template.
type PromptFunc func(ctx context.Context, st State) (string, error)

// ParseFunc converts one raw completion into records per the stage's line
// grammar. Parsers are pure and never fail: malformed input degrades to
// fewer (or partial) records, never to an error.
type ParseFunc func(raw string) []Record

// SynthesizeFunc produces exactly shortfall deterministic placeholder
// records derived from the input state. It must not call the completion
// client: fallback is offline and reproducible.
type SynthesizeFunc func(shortfall int, st State) []Record

// ReduceFunc converts the (possibly padded) record sequence into the value
// committed to the output slot. When nil, the record sequence itself is
// committed.
type ReduceFunc func(records []Record, st State) any

// Stage is one prompt-generate-parse-fallback unit of work.
type Stage struct {
	// Name identifies the stage in the graph and the run history.
	Name string

	// Needs lists the slots that must be populated before the stage runs.
	Needs []string

	// Provides is the single slot the stage commits on completion.
	Provides string

	// MinRecords is the parser shortfall threshold; when the parse yields
	// fewer records, Synthesize pads the result up to this count.
	MinRecords int

	BuildPrompt PromptFunc
	Parse       ParseFunc
	Synthesize  SynthesizeFunc
	Reduce      ReduceFunc
}

func (s *Stage) validate() error {
	if s == nil {
		return invalidf("nil stage")
	}
	if s.Name == "" {
		return invalidf("stage name is required")
	}
	if s.Provides == "" {
		return invalidf("stage %q: output slot is required", s.Name)
	}
	if s.BuildPrompt == nil {
		return invalidf("stage %q: prompt builder is required", s.Name)
	}
	if s.Parse == nil {
		return invalidf("stage %q: parser is required", s.Name)
	}
	if s.MinRecords > 0 && s.Synthesize == nil {
		return invalidf("stage %q: minimum %d records declared but no synthesizer", s.Name, s.MinRecords)
	}
	for _, slot := range s.Needs {
		if slot == s.Provides {
			return invalidf("stage %q: slot %q is both input and output", s.Name, slot)
		}
	}
	return nil
}
