package ideation

import (
	"strconv"
	"strings"
)

// The parsers below are pure line scanners over raw completion text. They
// are tolerant by contract: a record-start marker closes the previous
// in-progress record and opens a new one, a field marker sets a field on
// the open record (and is ignored with no record open), any other line is
// skipped, and a malformed field drops only that field. A parse never
// fails; it only under-produces, which the stage's synthesizer pads.

// matchMarker reports whether the line, after leading whitespace, begins
// with the marker (case-insensitive) and returns the trimmed remainder.
func matchMarker(line, marker string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < len(marker) {
		return "", false
	}
	if !strings.EqualFold(trimmed[:len(marker)], marker) {
		return "", false
	}
	return strings.TrimSpace(trimmed[len(marker):]), true
}

// ParsePrompts extracts brainstorming prompt lines. Each kept line retains
// its full "Prompt: ... (Source: ...)" form.
func ParsePrompts(raw string) []string {
	var prompts []string
	for _, line := range strings.Split(raw, "\n") {
		if _, ok := matchMarker(line, MarkerPrompt); ok {
			prompts = append(prompts, strings.TrimSpace(line))
		}
	}
	return prompts
}

// ParseSuggestions extracts diagram suggestion lines. Each kept line
// retains its full "Suggestion for <idea>: <description>" form.
func ParseSuggestions(raw string) []string {
	var suggestions []string
	for _, line := range strings.Split(raw, "\n") {
		if _, ok := matchMarker(line, MarkerSuggestion); ok {
			suggestions = append(suggestions, strings.TrimSpace(line))
		}
	}
	return suggestions
}

// ParseIdeas scans the cluster grammar: "Theme:" headers are skipped and
// each "- Idea: <text>, Tags: [a, b]" line yields one record. A missing
// tags segment drops only the tags, never the idea.
func ParseIdeas(raw string) []IdeaRecord {
	var ideas []IdeaRecord
	for _, line := range strings.Split(raw, "\n") {
		rest, ok := matchMarker(line, MarkerIdea)
		if !ok {
			continue
		}
		text, tagPart, found := strings.Cut(rest, ", Tags:")
		rec := IdeaRecord{Text: strings.TrimSpace(text)}
		if found {
			tagPart = strings.TrimSpace(tagPart)
			tagPart = strings.TrimPrefix(tagPart, "[")
			tagPart = strings.TrimSuffix(tagPart, "]")
			for _, tag := range strings.Split(tagPart, ",") {
				if tag = strings.TrimSpace(tag); tag != "" {
					rec.Tags = append(rec.Tags, tag)
				}
			}
		}
		if rec.Text != "" {
			ideas = append(ideas, rec)
		}
	}
	return ideas
}

// ParseChallenges scans the mixed challenge grammar: "- Idea:" opens a
// challenge record, the pain-point/stakeholders/importance field markers
// fill the open record, and "Filtered: <idea> (Reason: <reason>)" lines
// accumulate separately.
func ParseChallenges(raw string) ([]ChallengeRecord, []FilteredIdea) {
	var (
		challenges []ChallengeRecord
		filtered   []FilteredIdea
		current    *ChallengeRecord
	)
	flush := func() {
		if current != nil {
			challenges = append(challenges, *current)
			current = nil
		}
	}

	for _, line := range strings.Split(raw, "\n") {
		if rest, ok := matchMarker(line, MarkerIdea); ok {
			flush()
			current = &ChallengeRecord{Idea: rest}
			continue
		}
		if rest, ok := matchMarker(line, MarkerFiltered); ok {
			idea, reason, found := strings.Cut(rest, "(Reason:")
			fi := FilteredIdea{Idea: strings.TrimSpace(idea)}
			if found {
				fi.Reason = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(reason), ")"))
			}
			if fi.Idea != "" {
				filtered = append(filtered, fi)
			}
			continue
		}
		if current == nil {
			continue
		}
		if rest, ok := matchMarker(line, MarkerPainPoint); ok {
			current.PainPoint = rest
		} else if rest, ok := matchMarker(line, MarkerStakeholders); ok {
			current.Stakeholders = rest
		} else if rest, ok := matchMarker(line, MarkerImportance); ok {
			current.Importance = rest
		}
	}
	flush()
	return challenges, filtered
}

// splitScore parses a "<int>/100 (Reason: <text>)" field. A malformed
// field returns ok=false so the caller drops the field but keeps the
// record.
func splitScore(s string) (score int, reason string, ok bool) {
	num, rest, found := strings.Cut(s, "/100")
	if !found {
		return 0, "", false
	}
	score, err := strconv.Atoi(strings.TrimSpace(num))
	if err != nil {
		return 0, "", false
	}
	if _, r, found := strings.Cut(rest, "(Reason:"); found {
		reason = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(r), ")"))
	}
	return score, reason, true
}

// ParseOpportunities scans the ranked-scoring grammar: "- Rank N: <idea>"
// opens a record and the scoring field markers fill it. An unparseable
// rank is left at zero; the scoring stage assigns sequential ranks on
// commit.
func ParseOpportunities(raw string) []ScoredOpportunity {
	var (
		opportunities []ScoredOpportunity
		current       *ScoredOpportunity
	)
	flush := func() {
		if current != nil {
			opportunities = append(opportunities, *current)
			current = nil
		}
	}

	for _, line := range strings.Split(raw, "\n") {
		if rest, ok := matchMarker(line, MarkerRank); ok {
			flush()
			rankPart, idea, found := strings.Cut(rest, ":")
			if !found {
				idea, rankPart = rankPart, ""
			}
			current = &ScoredOpportunity{Idea: strings.TrimSpace(idea)}
			if n, err := strconv.Atoi(strings.TrimSpace(rankPart)); err == nil {
				current.Rank = n
			}
			continue
		}
		if current == nil {
			continue
		}
		if rest, ok := matchMarker(line, MarkerFeasibility); ok {
			if score, reason, ok := splitScore(rest); ok {
				current.Feasibility, current.FeasibilityReason = score, reason
			}
		} else if rest, ok := matchMarker(line, MarkerImpact); ok {
			if score, reason, ok := splitScore(rest); ok {
				current.Impact, current.ImpactReason = score, reason
			}
		} else if rest, ok := matchMarker(line, MarkerEmpathy); ok {
			if score, reason, ok := splitScore(rest); ok {
				current.Empathy, current.EmpathyReason = score, reason
			}
		} else if rest, ok := matchMarker(line, MarkerTotalScore); ok {
			num, _, _ := strings.Cut(rest, "/")
			if total, err := strconv.ParseFloat(strings.TrimSpace(num), 64); err == nil {
				current.TotalScore = total
			}
		}
	}
	flush()
	return opportunities
}

// ParseProblemStatement scans the refinement grammar: the statement line
// plus the two knowledge-plan sections, whose "- " bullets accumulate in
// order.
func ParseProblemStatement(raw string) ProblemStatement {
	var (
		ps      ProblemStatement
		section *[]string
	)
	for _, line := range strings.Split(raw, "\n") {
		if rest, ok := matchMarker(line, MarkerProblemStatement); ok {
			ps.Statement = rest
			continue
		}
		if _, ok := matchMarker(line, MarkerKnown); ok {
			section = &ps.Known
			continue
		}
		if _, ok := matchMarker(line, MarkerUnknown); ok {
			section = &ps.Unknown
			continue
		}
		if section == nil {
			continue
		}
		if rest, ok := matchMarker(line, "- "); ok && rest != "" {
			*section = append(*section, rest)
		}
	}
	return ps
}
