package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidPipeline covers deterministic graph validation failures.
	ErrInvalidPipeline = errors.New("invalid pipeline")

	// ErrMissingDependency marks a sequencing bug: a stage ran before the
	// slot it needs was populated. Fatal, never recovered.
	ErrMissingDependency = errors.New("missing dependency")

	// ErrCyclicPipeline marks a cycle found at graph construction time.
	ErrCyclicPipeline = errors.New("cyclic pipeline")
)

// MissingDependencyError reports an unpopulated input slot.
type MissingDependencyError struct {
	Stage string
	Slot  string
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("missing dependency: stage %q requires slot %q", e.Stage, e.Slot)
}

func (e *MissingDependencyError) Is(target error) bool { return target == ErrMissingDependency }

// CyclicPipelineError reports a dependency cycle with one witness path.
type CyclicPipelineError struct {
	Cycle []string
}

func (e *CyclicPipelineError) Error() string {
	if len(e.Cycle) == 0 {
		return "cyclic pipeline"
	}
	return "cyclic pipeline: " + strings.Join(e.Cycle, " -> ")
}

func (e *CyclicPipelineError) Is(target error) bool { return target == ErrCyclicPipeline }

// InvalidPipelineError wraps non-cycle graph validation failures.
type InvalidPipelineError struct {
	Msg string
}

func (e *InvalidPipelineError) Error() string {
	return fmt.Sprintf("invalid pipeline: %s", e.Msg)
}

func (e *InvalidPipelineError) Is(target error) bool { return target == ErrInvalidPipeline }

func invalidf(format string, args ...any) error {
	return &InvalidPipelineError{Msg: fmt.Sprintf(format, args...)}
}
