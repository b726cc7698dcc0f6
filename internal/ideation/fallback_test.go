package ideation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesizePrompts(t *testing.T) {
	meta := ProjectMetadata{Theme: "healthcare", Department: "Computer Science"}

	t.Run("fills the shortfall exactly", func(t *testing.T) {
		prompts := SynthesizePrompts(2, meta)
		require.Len(t, prompts, 2)
		assert.Equal(t, "Prompt: Explore a healthcare solution using AI (Source: Generic)", prompts[0])
		assert.Equal(t, "Prompt: Optimize a process in healthcare (Source: Generic)", prompts[1])
	})

	t.Run("cycles templates past three", func(t *testing.T) {
		prompts := SynthesizePrompts(4, meta)
		require.Len(t, prompts, 4)
		assert.Contains(t, prompts[2], "Computer Science")
		assert.Equal(t, prompts[0], prompts[3])
	})

	t.Run("empty metadata falls back to general", func(t *testing.T) {
		prompts := SynthesizePrompts(1, ProjectMetadata{})
		assert.Contains(t, prompts[0], "general")
	})
}

func TestSynthesizeIdeas(t *testing.T) {
	ideas := SynthesizeIdeas([]string{"Triage bot", "Wait-time dashboard"}, "Healthcare")
	require.Len(t, ideas, 2)
	assert.Equal(t, "Triage bot", ideas[0].Text)
	assert.Equal(t, []string{"generic", "healthcare"}, ideas[0].Tags)
}

func TestSynthesizeDiagramSuggestions(t *testing.T) {
	ideas := []IdeaRecord{{Text: "Triage bot"}, {Text: "Wait-time dashboard"}}

	t.Run("one generic flowchart per idea", func(t *testing.T) {
		suggestions := SynthesizeDiagramSuggestions(ideas, "healthcare")
		require.Len(t, suggestions, 2)
		assert.Equal(t,
			"Suggestion for Triage bot: A generic flowchart showing the implementation steps for a healthcare solution.",
			suggestions[0])
	})

	t.Run("empty theme falls back to general", func(t *testing.T) {
		suggestions := SynthesizeDiagramSuggestions(ideas[:1], "")
		assert.Contains(t, suggestions[0], "a general solution")
	})

	t.Run("round-trips through the parser", func(t *testing.T) {
		raw := SynthesizeDiagramSuggestions(ideas, "healthcare")
		assert.Equal(t, raw, ParseSuggestions(raw[0]+"\n"+raw[1]))
	})
}

func TestSynthesizeFiltered(t *testing.T) {
	filtered := SynthesizeFiltered([]string{"A", "B"}, "not addressed by analysis")
	require.Len(t, filtered, 2)
	assert.Equal(t, FilteredIdea{Idea: "B", Reason: "not addressed by analysis"}, filtered[1])
}

func TestSynthesizeProblemStatement(t *testing.T) {
	op := ScoredOpportunity{Idea: "Optimize triage"}

	t.Run("mentions theme and idea", func(t *testing.T) {
		ps := SynthesizeProblemStatement("healthcare", op)
		assert.Contains(t, ps.Statement, "healthcare")
		assert.Contains(t, ps.Statement, "Optimize triage")
		assert.NotEmpty(t, ps.Known)
		assert.NotEmpty(t, ps.Unknown)
	})

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t,
			SynthesizeProblemStatement("healthcare", op),
			SynthesizeProblemStatement("healthcare", op))
	})

	t.Run("handles the zero opportunity", func(t *testing.T) {
		ps := SynthesizeProblemStatement("", ScoredOpportunity{})
		assert.NotEmpty(t, ps.Statement)
	})
}
