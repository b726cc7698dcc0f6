// Package ideation implements the project-ideation workflow: brainstorm,
// cluster, challenge-detect, score, refine. Each stage binds a prompt
// template, a tolerant line-grammar parser, and a deterministic fallback
// synthesizer onto the generic pipeline engine.
package ideation

import "github.com/google/uuid"

// ProjectMetadata seeds a run. The ID tracks the project across sessions.
type ProjectMetadata struct {
	ID         string
	Title      string
	Theme      string
	Department string
}

// NewProjectMetadata assigns a fresh ID to the given project fields.
func NewProjectMetadata(title, theme, department string) ProjectMetadata {
	return ProjectMetadata{
		ID:         uuid.NewString(),
		Title:      title,
		Theme:      theme,
		Department: department,
	}
}

// IdeaRecord is one clustered idea with its tags, in emitted order.
type IdeaRecord struct {
	Text string
	Tags []string
}

// ChallengeRecord is the empathy analysis of one retained idea.
type ChallengeRecord struct {
	Idea         string
	PainPoint    string
	Stakeholders string
	Importance   string
}

// FilteredIdea records an idea dropped by the challenge stage, with the
// reason. Filtered ideas are tracked, never silently discarded.
type FilteredIdea struct {
	Idea   string
	Reason string
}

// ChallengeAnalysis partitions the input ideas: every idea ends up either
// retained as a challenge or filtered with a reason, never both.
type ChallengeAnalysis struct {
	Challenges []ChallengeRecord
	Filtered   []FilteredIdea
}

// ScoredOpportunity is one ranked idea with its scoring breakdown. Scores
// are 0-100; TotalScore is the weighted composite as emitted by the
// generation step. The engine validates shape but never recomputes the
// weighting, which lives in the scoring prompt.
type ScoredOpportunity struct {
	Rank              int
	Idea              string
	Feasibility       int
	FeasibilityReason string
	Impact            int
	ImpactReason      string
	Empathy           int
	EmpathyReason     string
	TotalScore        float64
}

// ProblemStatement is the terminal artifact: a refined statement plus the
// knowledge plan split into what is known and what must be learned.
type ProblemStatement struct {
	Statement string
	Known     []string
	Unknown   []string
}
