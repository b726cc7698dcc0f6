package ideation

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrompts(t *testing.T) {
	t.Run("keeps prompt lines, skips chatter", func(t *testing.T) {
		raw := "Here are some ideas:\n" +
			"Prompt: Build a triage bot (Source: Handbook p.3)\n" +
			"\n" +
			"Prompt: Reduce wait times (Source: Case study)\n" +
			"Hope these help!"
		prompts := ParsePrompts(raw)
		require.Len(t, prompts, 2)
		assert.Equal(t, "Prompt: Build a triage bot (Source: Handbook p.3)", prompts[0])
		assert.Equal(t, "Prompt: Reduce wait times (Source: Case study)", prompts[1])
	})

	t.Run("marker matching is case and indent tolerant", func(t *testing.T) {
		prompts := ParsePrompts("  prompt: lowercase still counts (Source: x)")
		require.Len(t, prompts, 1)
	})

	t.Run("empty input yields nothing", func(t *testing.T) {
		assert.Empty(t, ParsePrompts(""))
	})
}

func TestParseSuggestions(t *testing.T) {
	t.Run("keeps suggestion lines, skips chatter", func(t *testing.T) {
		raw := "Here are the flows:\n" +
			"Suggestion for Triage assistant: Intake feeds assessment, which escalates.\n" +
			"Some commentary in between.\n" +
			"Suggestion for Appointment bot: Request, confirm, remind."
		suggestions := ParseSuggestions(raw)
		require.Len(t, suggestions, 2)
		assert.Equal(t, "Suggestion for Triage assistant: Intake feeds assessment, which escalates.", suggestions[0])
		assert.Equal(t, "Suggestion for Appointment bot: Request, confirm, remind.", suggestions[1])
	})

	t.Run("marker matching is case and indent tolerant", func(t *testing.T) {
		suggestions := ParseSuggestions("  suggestion for X: still counts")
		require.Len(t, suggestions, 1)
	})

	t.Run("empty input yields nothing", func(t *testing.T) {
		assert.Empty(t, ParseSuggestions(""))
	})
}

func TestParseIdeas(t *testing.T) {
	t.Run("theme headers are skipped, tags split", func(t *testing.T) {
		raw := "Theme: healthcare\n" +
			"- Idea: Triage assistant, Tags: [AI, triage]\n" +
			"- Idea: Appointment bot, Tags: [automation]\n"
		ideas := ParseIdeas(raw)
		require.Len(t, ideas, 2)
		assert.Equal(t, "Triage assistant", ideas[0].Text)
		assert.Equal(t, []string{"AI", "triage"}, ideas[0].Tags)
		assert.Equal(t, []string{"automation"}, ideas[1].Tags)
	})

	t.Run("missing tags drop only the tags", func(t *testing.T) {
		ideas := ParseIdeas("- Idea: Bare idea")
		require.Len(t, ideas, 1)
		assert.Equal(t, "Bare idea", ideas[0].Text)
		assert.Empty(t, ideas[0].Tags)
	})

	t.Run("empty idea text is dropped", func(t *testing.T) {
		assert.Empty(t, ParseIdeas("- Idea: , Tags: [x]"))
	})
}

func TestParseChallenges(t *testing.T) {
	t.Run("mixed retained and filtered stream", func(t *testing.T) {
		raw := "- Idea: Cut costs\n" +
			"  Pain Point: high spend\n" +
			"  Affected Users/Stakeholders: ops\n" +
			"  Importance: saves money\n" +
			"Filtered: Vague idea (Reason: too generic)"
		challenges, filtered := ParseChallenges(raw)

		require.Len(t, challenges, 1)
		assert.Equal(t, ChallengeRecord{
			Idea:         "Cut costs",
			PainPoint:    "high spend",
			Stakeholders: "ops",
			Importance:   "saves money",
		}, challenges[0])

		require.Len(t, filtered, 1)
		assert.Equal(t, FilteredIdea{Idea: "Vague idea", Reason: "too generic"}, filtered[0])
	})

	t.Run("field marker with no open record is ignored", func(t *testing.T) {
		challenges, filtered := ParseChallenges("Pain Point: orphaned\n- Idea: Real one")
		require.Len(t, challenges, 1)
		assert.Equal(t, "Real one", challenges[0].Idea)
		assert.Empty(t, challenges[0].PainPoint)
		assert.Empty(t, filtered)
	})

	t.Run("new record marker closes the previous record", func(t *testing.T) {
		raw := "- Idea: First\n  Pain Point: a\n- Idea: Second\n  Pain Point: b"
		challenges, _ := ParseChallenges(raw)
		require.Len(t, challenges, 2)
		assert.Equal(t, "a", challenges[0].PainPoint)
		assert.Equal(t, "b", challenges[1].PainPoint)
	})

	t.Run("filtered line without reason keeps the idea", func(t *testing.T) {
		_, filtered := ParseChallenges("Filtered: Half-formed entry")
		require.Len(t, filtered, 1)
		assert.Equal(t, "Half-formed entry", filtered[0].Idea)
		assert.Empty(t, filtered[0].Reason)
	})
}

func TestParseOpportunities(t *testing.T) {
	raw := "- Rank 1: Optimize triage\n" +
		"  Feasibility: 85/100 (Reason: existing frameworks)\n" +
		"  Impact: 90/100 (Reason: cuts costs)\n" +
		"  Empathy: 80/100 (Reason: addresses staff burnout)\n" +
		"  Total Score: 85.5/100\n" +
		"- Rank 2: Appointment bot\n" +
		"  Feasibility: 70/100 (Reason: off the shelf)\n" +
		"  Total Score: 60/100"

	t.Run("full records parse", func(t *testing.T) {
		ops := ParseOpportunities(raw)
		require.Len(t, ops, 2)

		assert.Equal(t, 1, ops[0].Rank)
		assert.Equal(t, "Optimize triage", ops[0].Idea)
		assert.Equal(t, 85, ops[0].Feasibility)
		assert.Equal(t, "existing frameworks", ops[0].FeasibilityReason)
		assert.Equal(t, 90, ops[0].Impact)
		assert.Equal(t, 80, ops[0].Empathy)
		assert.InDelta(t, 85.5, ops[0].TotalScore, 0.001)

		assert.Equal(t, 2, ops[1].Rank)
		assert.Zero(t, ops[1].Impact, "omitted field stays zero")
	})

	t.Run("malformed score drops the field, not the record", func(t *testing.T) {
		ops := ParseOpportunities("- Rank 1: Idea\n  Feasibility: high/100 (Reason: x)\n  Impact: 40/100 (Reason: y)")
		require.Len(t, ops, 1)
		assert.Zero(t, ops[0].Feasibility)
		assert.Empty(t, ops[0].FeasibilityReason)
		assert.Equal(t, 40, ops[0].Impact)
	})

	t.Run("unparseable rank is left at zero", func(t *testing.T) {
		ops := ParseOpportunities("- Rank one: Idea without number")
		require.Len(t, ops, 1)
		assert.Zero(t, ops[0].Rank)
		assert.Equal(t, "Idea without number", ops[0].Idea)
	})
}

func TestSplitScore(t *testing.T) {
	score, reason, ok := splitScore("85/100 (Reason: solid plan)")
	require.True(t, ok)
	assert.Equal(t, 85, score)
	assert.Equal(t, "solid plan", reason)

	_, _, ok = splitScore("eighty-five out of one hundred")
	assert.False(t, ok)

	score, reason, ok = splitScore("40/100")
	require.True(t, ok)
	assert.Equal(t, 40, score)
	assert.Empty(t, reason)
}

func TestParseProblemStatement(t *testing.T) {
	t.Run("statement and sections", func(t *testing.T) {
		raw := "Problem Statement: Clinics lack triage tooling, delaying care.\n" +
			"Knowledge Plan:\n" +
			"- What we know:\n" +
			"  - Staff are overloaded\n" +
			"  - Wait times exceed targets\n" +
			"- What we need to learn:\n" +
			"  - Data availability\n"
		ps := ParseProblemStatement(raw)
		assert.Equal(t, "Clinics lack triage tooling, delaying care.", ps.Statement)
		assert.Equal(t, []string{"Staff are overloaded", "Wait times exceed targets"}, ps.Known)
		assert.Equal(t, []string{"Data availability"}, ps.Unknown)
	})

	t.Run("bullets before any section are ignored", func(t *testing.T) {
		ps := ParseProblemStatement("- stray bullet\nProblem Statement: Something.")
		assert.Equal(t, "Something.", ps.Statement)
		assert.Empty(t, ps.Known)
	})

	t.Run("empty input yields the zero value", func(t *testing.T) {
		assert.Equal(t, ProblemStatement{}, ParseProblemStatement(""))
	})
}

// Parsing is pure: the same raw text always yields the same records.
func TestParseIdempotence(t *testing.T) {
	raw := "- Idea: A, Tags: [x]\nFiltered: B (Reason: dull)\n- Rank 1: A\n  Total Score: 50/100"

	c1, f1 := ParseChallenges(raw)
	c2, f2 := ParseChallenges(raw)
	if diff := cmp.Diff(c1, c2); diff != "" {
		t.Errorf("challenge parse not idempotent (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(f1, f2); diff != "" {
		t.Errorf("filtered parse not idempotent (-first +second):\n%s", diff)
	}

	assert.Equal(t, ParseOpportunities(raw), ParseOpportunities(raw))
	assert.Equal(t, ParseIdeas(raw), ParseIdeas(raw))
}
