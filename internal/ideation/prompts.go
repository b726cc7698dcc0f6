package ideation

import (
	"fmt"
	"strings"
)

const brainstormTemplate = `Based on the project metadata %s and these examples from past projects:
%s

Generate 3-5 brainstorming prompts for a student project. Each prompt must be specific to the domain, actionable, and include a citation to the source document (e.g., document page or title).
Format each prompt as: 'Prompt: [prompt text] (Source: [citation])'.`

const clusterTemplate = `Given the ideas:
%s
and theme: %s, categorize into themes (e.g., agentic AI, automation) and apply tags (e.g., AI, optimization). If ideas are vague, use generic themes and tags. Output:
Theme: [theme]
- Idea: [idea], Tags: [tag1, tag2, ...]
Ensure one theme aligns with %s.`

const diagramTemplate = `For ideas:
%s
and theme: %s, suggest text-based diagrams or use-case flows (2-3 sentences each). If ideas are vague, provide generic suggestions. Output:
Suggestion for [idea]: [description]`

const challengeTemplate = `Given clustered ideas:
%s
and theme: %s, perform empathy-based analysis:
1. Identify specific pain points for each idea.
2. List affected user types and stakeholders.
3. Explain why each problem is important.
4. Filter out shallow ideas (e.g., low human impact or feasibility).
Output for each retained idea:
- Idea: [idea]
  Pain Point: [specific problem]
  Affected Users/Stakeholders: [users]
  Importance: [reason]
Filtered ideas: 'Filtered: [idea] (Reason: [reason])'
If ideas are vague, provide generic analysis or filter them.`

const scoringTemplate = `Given challenge-mapped ideas:
%s
and theme: %s, score each idea based on:
1. Feasibility (40%%): Technical and resource feasibility (0-100).
2. Impact (30%%): Potential to address pain points and benefit stakeholders (0-100).
3. Empathy (30%%): Depth of user-centered focus and stakeholder alignment (0-100).
Survey results (if provided): %s

If survey results are provided, adjust scores based on user feedback (e.g., increase/decrease by up to 20 points per criterion).
Output only the top 3 ideas, ranked by total score, with a scoring breakdown.
If challenges are vague or invalid, provide low scores and explain.
Format:
- Rank 1: [idea]
  Feasibility: [score]/100 (Reason: [reason])
  Impact: [score]/100 (Reason: [reason])
  Empathy: [score]/100 (Reason: [reason])
  Total Score: [score]/100
- Rank 2: [idea]
  ...`

const refinerTemplate = `Given the top-ranked opportunity:
%s
and theme: %s, craft a refined problem statement and knowledge plan:
1. Problem Statement (1-2 sentences):
   - Include who (stakeholders/users), what (specific problem), and why (importance).
   - Ensure clarity and academic tone.
2. Knowledge Plan:
   - What we know: List current understanding based on the opportunity.
   - What we need to learn: List knowledge gaps to address for solution development.
Output format:
Problem Statement: [1-2 sentences]
Knowledge Plan:
- What we know:
  - [point]
  - [point]
- What we need to learn:
  - [point]
  - [point]
If the opportunity is vague, provide a generic but reasonable output.`

func formatMetadata(meta ProjectMetadata) string {
	return fmt.Sprintf("title=%q theme=%q department=%q id=%s",
		meta.Title, meta.Theme, meta.Department, meta.ID)
}

func formatIdeas(ideas []IdeaRecord) string {
	var b strings.Builder
	for _, idea := range ideas {
		fmt.Fprintf(&b, "- Idea: %s, Tags: [%s]\n", idea.Text, strings.Join(idea.Tags, ", "))
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatChallenges(challenges []ChallengeRecord) string {
	var b strings.Builder
	for _, c := range challenges {
		fmt.Fprintf(&b, "- Idea: %s\n", c.Idea)
		fmt.Fprintf(&b, "  Pain Point: %s\n", orNA(c.PainPoint))
		fmt.Fprintf(&b, "  Affected Users/Stakeholders: %s\n", orNA(c.Stakeholders))
		fmt.Fprintf(&b, "  Importance: %s\n", orNA(c.Importance))
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatOpportunity(op ScoredOpportunity) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Idea: %s\n", op.Idea)
	fmt.Fprintf(&b, "Feasibility: %d/100 (Reason: %s)\n", op.Feasibility, orNA(op.FeasibilityReason))
	fmt.Fprintf(&b, "Impact: %d/100 (Reason: %s)\n", op.Impact, orNA(op.ImpactReason))
	fmt.Fprintf(&b, "Empathy: %d/100 (Reason: %s)\n", op.Empathy, orNA(op.EmpathyReason))
	fmt.Fprintf(&b, "Total Score: %.1f/100", op.TotalScore)
	return b.String()
}

// mockSurvey produces deterministic placeholder survey ratings when the
// caller supplies none.
func mockSurvey(challenges []ChallengeRecord) string {
	lines := make([]string, 0, len(challenges))
	for _, c := range challenges {
		rating := 50
		if strings.Contains(c.Idea, "Optimize") {
			rating = 80
		}
		lines = append(lines, fmt.Sprintf("Idea: %s, User Rating: %d/100", c.Idea, rating))
	}
	return strings.Join(lines, "\n")
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
