package ideation

import (
	"fmt"
	"strings"
)

// Fallback synthesizers. Each is pure and offline: same inputs produce the
// same clearly-labeled placeholder records, and none of them ever calls
// the completion client.

// SynthesizePrompts produces exactly shortfall generic brainstorming
// prompts for the project, cycling the generic templates when the
// shortfall exceeds them.
func SynthesizePrompts(shortfall int, meta ProjectMetadata) []string {
	theme := orGeneral(meta.Theme)
	templates := []string{
		fmt.Sprintf("Prompt: Explore a %s solution using AI (Source: Generic)", theme),
		fmt.Sprintf("Prompt: Optimize a process in %s (Source: Generic)", theme),
		fmt.Sprintf("Prompt: Address a challenge in %s (Source: Generic)", orGeneral(meta.Department)),
	}
	out := make([]string, 0, shortfall)
	for i := 0; i < shortfall; i++ {
		out = append(out, templates[i%len(templates)])
	}
	return out
}

// SynthesizeIdeas tags every raw idea generically under the theme. Used
// when the clustering response yields nothing parseable.
func SynthesizeIdeas(ideas []string, theme string) []IdeaRecord {
	out := make([]IdeaRecord, 0, len(ideas))
	for _, idea := range ideas {
		out = append(out, IdeaRecord{
			Text: idea,
			Tags: []string{"generic", lowerOrGeneral(theme)},
		})
	}
	return out
}

// SynthesizeDiagramSuggestions produces one generic flowchart suggestion
// per idea. Used when the diagram response yields nothing parseable.
func SynthesizeDiagramSuggestions(ideas []IdeaRecord, theme string) []string {
	theme = orGeneral(theme)
	out := make([]string, 0, len(ideas))
	for _, idea := range ideas {
		out = append(out, fmt.Sprintf(
			"Suggestion for %s: A generic flowchart showing the implementation steps for a %s solution.",
			idea.Text, theme))
	}
	return out
}

// SynthesizeFiltered marks every given idea as filtered with the same
// reason. Used for ideas the challenge analysis never covered.
func SynthesizeFiltered(ideas []string, reason string) []FilteredIdea {
	out := make([]FilteredIdea, 0, len(ideas))
	for _, idea := range ideas {
		out = append(out, FilteredIdea{Idea: idea, Reason: reason})
	}
	return out
}

// SynthesizeProblemStatement produces a generic but well-formed terminal
// artifact when refinement under-produces.
func SynthesizeProblemStatement(theme string, op ScoredOpportunity) ProblemStatement {
	theme = orGeneral(theme)
	idea := op.Idea
	if idea == "" {
		idea = fmt.Sprintf("a %s opportunity", theme)
	}
	return ProblemStatement{
		Statement: fmt.Sprintf(
			"Students and stakeholders working in %s lack a well-scoped approach to %s, which limits the value the project can deliver.",
			theme, idea),
		Known: []string{
			fmt.Sprintf("The opportunity concerns %s.", idea),
			fmt.Sprintf("The project theme is %s.", theme),
		},
		Unknown: []string{
			"Which stakeholders are most affected and how they experience the problem.",
			"What technical and resource constraints bound a feasible solution.",
		},
	}
}

func orGeneral(s string) string {
	if s == "" {
		return "general"
	}
	return s
}

func lowerOrGeneral(s string) string {
	return strings.ToLower(orGeneral(s))
}
