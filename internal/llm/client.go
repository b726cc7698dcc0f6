// Package llm provides text completion clients for the pipeline engine.
// Clients are configured at construction (model, temperature); each call
// takes a single prompt and returns untrusted free text.
package llm

import (
	"context"
	"errors"
	"fmt"
)

// CompletionClient is the boundary to a hosted text-generation service.
// Implementations must treat every failure (network, auth, quota) as a
// *GenerationError so stages can degrade instead of aborting the run.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ErrGeneration is the sentinel kind for completion failures.
var ErrGeneration = errors.New("generation failed")

// GenerationError reports a failed completion call.
type GenerationError struct {
	Provider string
	Err      error
}

func (e *GenerationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("generation failed (%s)", e.Provider)
	}
	return fmt.Sprintf("generation failed (%s): %v", e.Provider, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrGeneration) match any generation failure.
func (e *GenerationError) Is(target error) bool { return target == ErrGeneration }

func generationErrf(provider, format string, args ...any) error {
	return &GenerationError{Provider: provider, Err: fmt.Errorf(format, args...)}
}
