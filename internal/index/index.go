// Package index provides the read-only document index consumed by
// retrieval-augmented pipeline stages. Index construction is an offline
// batch job; the pipeline only ever searches.
package index

import (
	"context"
	"errors"
	"fmt"
)

// Snippet is one ranked search result.
type Snippet struct {
	Content  string
	Citation string
}

// DocumentIndex is the retrieval boundary of the pipeline.
type DocumentIndex interface {
	// Search returns up to k snippets ranked by similarity to the query.
	Search(ctx context.Context, query string, k int) ([]Snippet, error)

	// Ready reports whether the backing index has been built. Callers
	// should check this before starting a retrieval-augmented run.
	Ready(ctx context.Context) error
}

// ErrIndexUnavailable is the sentinel kind for a missing or unbuilt index.
var ErrIndexUnavailable = errors.New("document index unavailable")

// IndexUnavailableError reports that the backing index has not been built.
type IndexUnavailableError struct {
	Path   string
	Reason string
}

func (e *IndexUnavailableError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("document index unavailable: %s", e.Reason)
	}
	return fmt.Sprintf("document index unavailable at %s: %s", e.Path, e.Reason)
}

// Is lets errors.Is(err, ErrIndexUnavailable) match.
func (e *IndexUnavailableError) Is(target error) bool { return target == ErrIndexUnavailable }
