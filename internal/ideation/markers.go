package ideation

// Line markers recognized by the stage grammars. Matching is
// case-insensitive and tolerant of leading whitespace; each marker is a
// fixed literal prefix that either opens a record or sets a field on the
// open record.
const (
	MarkerPrompt = "Prompt:"
	MarkerTheme  = "Theme:"

	MarkerSuggestion = "Suggestion for"

	MarkerIdea         = "- Idea:"
	MarkerPainPoint    = "Pain Point:"
	MarkerStakeholders = "Affected Users/Stakeholders:"
	MarkerImportance   = "Importance:"
	MarkerFiltered     = "Filtered:"

	MarkerRank        = "- Rank"
	MarkerFeasibility = "Feasibility:"
	MarkerImpact      = "Impact:"
	MarkerEmpathy     = "Empathy:"
	MarkerTotalScore  = "Total Score:"

	MarkerProblemStatement = "Problem Statement:"
	MarkerKnown            = "- What we know:"
	MarkerUnknown          = "- What we need to learn:"
)
