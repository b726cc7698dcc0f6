package ideation

import (
	"context"
	"fmt"
	"strings"

	"ideaforge/internal/index"
	"ideaforge/internal/pipeline"
)

// State slots threaded through the workflow. metadata and ideas are
// supplied by the caller; the rest are committed by stages.
const (
	SlotMetadata      = "metadata"
	SlotIdeas         = "ideas"
	SlotPrompts       = "prompts"
	SlotClustered     = "clustered_ideas"
	SlotDiagrams      = "diagram_suggestions"
	SlotChallenges    = "challenges"
	SlotSurveyResults = "survey_results"
	SlotRanked        = "ranked_opportunities"
	SlotProblem       = "problem_statement"
)

// Stage names as they appear in the run history.
const (
	StageBrainstorm = "brainstorm"
	StageCluster    = "cluster"
	StageDiagram    = "diagram"
	StageChallenge  = "challenge"
	StageScore      = "score"
	StageRefine     = "refine"
)

// WorkflowConfig tunes the stage record thresholds. The zero value is
// replaced with the defaults.
type WorkflowConfig struct {
	// RetrievalK is how many index snippets the brainstorm stage folds
	// into its prompt.
	RetrievalK int

	// MinPrompts is the brainstorm padding floor; MaxPrompts the cap.
	MinPrompts int
	MaxPrompts int

	// MaxOpportunities caps the scored ranking.
	MaxOpportunities int
}

// DefaultWorkflowConfig returns the stock thresholds: 3-5 prompts, top-3
// opportunities, 5 retrieved snippets.
func DefaultWorkflowConfig() WorkflowConfig {
	return WorkflowConfig{
		RetrievalK:       5,
		MinPrompts:       3,
		MaxPrompts:       5,
		MaxOpportunities: 3,
	}
}

func (c WorkflowConfig) withDefaults() WorkflowConfig {
	def := DefaultWorkflowConfig()
	if c.RetrievalK <= 0 {
		c.RetrievalK = def.RetrievalK
	}
	if c.MinPrompts <= 0 {
		c.MinPrompts = def.MinPrompts
	}
	if c.MaxPrompts < c.MinPrompts {
		c.MaxPrompts = c.MinPrompts
	}
	if c.MaxOpportunities <= 0 {
		c.MaxOpportunities = def.MaxOpportunities
	}
	return c
}

// NewBrainstormStage builds the retrieval-augmented prompt generator. The
// stage searches the document index for the project theme and folds the
// top-k snippets into the brainstorming template; an unavailable index
// degrades to a no-documents note, never an error.
func NewBrainstormStage(idx index.DocumentIndex, cfg WorkflowConfig) *pipeline.Stage {
	cfg = cfg.withDefaults()
	return &pipeline.Stage{
		Name:       StageBrainstorm,
		Needs:      []string{SlotMetadata},
		Provides:   SlotPrompts,
		MinRecords: cfg.MinPrompts,
		BuildPrompt: func(ctx context.Context, st pipeline.State) (string, error) {
			meta := metadataFrom(st)
			return fmt.Sprintf(brainstormTemplate,
				formatMetadata(meta), retrieveContext(ctx, idx, meta.Theme, cfg.RetrievalK)), nil
		},
		Parse: func(raw string) []pipeline.Record {
			return toRecords(ParsePrompts(raw))
		},
		Synthesize: func(shortfall int, st pipeline.State) []pipeline.Record {
			return toRecords(SynthesizePrompts(shortfall, metadataFrom(st)))
		},
		Reduce: func(records []pipeline.Record, _ pipeline.State) any {
			prompts := make([]string, 0, len(records))
			for _, r := range records {
				if s, ok := r.(string); ok {
					prompts = append(prompts, s)
				}
			}
			if len(prompts) > cfg.MaxPrompts {
				prompts = prompts[:cfg.MaxPrompts]
			}
			return prompts
		},
	}
}

// NewClusterStage builds the idea organizer: raw ideas in, tagged records
// out. A response with no parseable ideas falls back to tagging every raw
// idea generically.
func NewClusterStage() *pipeline.Stage {
	return &pipeline.Stage{
		Name:     StageCluster,
		Needs:    []string{SlotIdeas, SlotMetadata},
		Provides: SlotClustered,
		BuildPrompt: func(_ context.Context, st pipeline.State) (string, error) {
			theme := metadataFrom(st).Theme
			return fmt.Sprintf(clusterTemplate,
				strings.Join(rawIdeasFrom(st), "\n"), theme, theme), nil
		},
		Parse: func(raw string) []pipeline.Record {
			return toRecords(ParseIdeas(raw))
		},
		Reduce: func(records []pipeline.Record, st pipeline.State) any {
			ideas := make([]IdeaRecord, 0, len(records))
			for _, r := range records {
				if idea, ok := r.(IdeaRecord); ok {
					ideas = append(ideas, idea)
				}
			}
			// The fallback replaces an empty parse with one record per
			// input idea; its size depends on the state, not a fixed
			// minimum, so it lives in the commit instead of shortfall
			// padding.
			if len(ideas) == 0 {
				return SynthesizeIdeas(rawIdeasFrom(st), metadataFrom(st).Theme)
			}
			return ideas
		},
	}
}

// NewDiagramStage builds the diagram suggester: one text-based diagram or
// use-case flow per clustered idea. Like the cluster stage, an empty parse
// falls back to one generic suggestion per input idea.
func NewDiagramStage() *pipeline.Stage {
	return &pipeline.Stage{
		Name:     StageDiagram,
		Needs:    []string{SlotClustered, SlotMetadata},
		Provides: SlotDiagrams,
		BuildPrompt: func(_ context.Context, st pipeline.State) (string, error) {
			theme := metadataFrom(st).Theme
			return fmt.Sprintf(diagramTemplate, formatIdeas(clusteredFrom(st)), theme), nil
		},
		Parse: func(raw string) []pipeline.Record {
			return toRecords(ParseSuggestions(raw))
		},
		Reduce: func(records []pipeline.Record, st pipeline.State) any {
			suggestions := make([]string, 0, len(records))
			for _, r := range records {
				if s, ok := r.(string); ok {
					suggestions = append(suggestions, s)
				}
			}
			if len(suggestions) == 0 {
				return SynthesizeDiagramSuggestions(clusteredFrom(st), metadataFrom(st).Theme)
			}
			return suggestions
		},
	}
}

// NewChallengeStage builds the empathy analyzer. The commit reconciles the
// model's output against the input ideas: an idea both retained and
// filtered stays retained, and an idea the analysis never mentioned is
// filtered with an explicit reason, so every input idea lands in exactly
// one bucket.
func NewChallengeStage() *pipeline.Stage {
	return &pipeline.Stage{
		Name:     StageChallenge,
		Needs:    []string{SlotClustered, SlotMetadata},
		Provides: SlotChallenges,
		BuildPrompt: func(_ context.Context, st pipeline.State) (string, error) {
			theme := metadataFrom(st).Theme
			block := fmt.Sprintf("Theme: %s\n%s", theme, formatIdeas(clusteredFrom(st)))
			return fmt.Sprintf(challengeTemplate, block, theme), nil
		},
		Parse: func(raw string) []pipeline.Record {
			challenges, filtered := ParseChallenges(raw)
			records := make([]pipeline.Record, 0, len(challenges)+len(filtered))
			for _, c := range challenges {
				records = append(records, c)
			}
			for _, f := range filtered {
				records = append(records, f)
			}
			return records
		},
		Reduce: func(records []pipeline.Record, st pipeline.State) any {
			var analysis ChallengeAnalysis
			retained := make(map[string]bool)
			for _, r := range records {
				if c, ok := r.(ChallengeRecord); ok {
					analysis.Challenges = append(analysis.Challenges, c)
					retained[ideaKey(c.Idea)] = true
				}
			}
			covered := make(map[string]bool)
			for k := range retained {
				covered[k] = true
			}
			for _, r := range records {
				f, ok := r.(FilteredIdea)
				if !ok || retained[ideaKey(f.Idea)] {
					continue
				}
				analysis.Filtered = append(analysis.Filtered, f)
				covered[ideaKey(f.Idea)] = true
			}
			var uncovered []string
			for _, idea := range clusteredFrom(st) {
				if !covered[ideaKey(idea.Text)] {
					uncovered = append(uncovered, idea.Text)
					covered[ideaKey(idea.Text)] = true
				}
			}
			analysis.Filtered = append(analysis.Filtered,
				SynthesizeFiltered(uncovered, "not addressed by analysis")...)
			return analysis
		},
	}
}

// NewScoreStage builds the opportunity ranker. Survey results come from
// the survey_results slot when the caller seeded one; otherwise a
// deterministic mock survey stands in. The commit caps the output at
// MaxOpportunities records and normalizes ranks to 1..n in emitted order;
// the weighted total is trusted as emitted, never recomputed.
func NewScoreStage(cfg WorkflowConfig) *pipeline.Stage {
	cfg = cfg.withDefaults()
	return &pipeline.Stage{
		Name:     StageScore,
		Needs:    []string{SlotChallenges, SlotMetadata},
		Provides: SlotRanked,
		BuildPrompt: func(_ context.Context, st pipeline.State) (string, error) {
			analysis := analysisFrom(st)
			survey := ""
			if v, ok := st.Get(SlotSurveyResults); ok {
				survey, _ = v.(string)
			}
			if survey == "" {
				survey = mockSurvey(analysis.Challenges)
			}
			return fmt.Sprintf(scoringTemplate,
				formatChallenges(analysis.Challenges), metadataFrom(st).Theme, survey), nil
		},
		Parse: func(raw string) []pipeline.Record {
			return toRecords(ParseOpportunities(raw))
		},
		Reduce: func(records []pipeline.Record, _ pipeline.State) any {
			ranked := make([]ScoredOpportunity, 0, cfg.MaxOpportunities)
			for _, r := range records {
				op, ok := r.(ScoredOpportunity)
				if !ok {
					continue
				}
				op.Rank = len(ranked) + 1
				ranked = append(ranked, op)
				if len(ranked) == cfg.MaxOpportunities {
					break
				}
			}
			return ranked
		},
	}
}

// NewRefineStage builds the terminal refiner: the top-ranked opportunity
// becomes a problem statement plus knowledge plan. An empty parse falls
// back to a generic but well-formed statement.
func NewRefineStage() *pipeline.Stage {
	return &pipeline.Stage{
		Name:       StageRefine,
		Needs:      []string{SlotRanked, SlotMetadata},
		Provides:   SlotProblem,
		MinRecords: 1,
		BuildPrompt: func(_ context.Context, st pipeline.State) (string, error) {
			return fmt.Sprintf(refinerTemplate,
				formatOpportunity(topRankedFrom(st)), metadataFrom(st).Theme), nil
		},
		Parse: func(raw string) []pipeline.Record {
			ps := ParseProblemStatement(raw)
			if ps.Statement == "" && len(ps.Known) == 0 && len(ps.Unknown) == 0 {
				return nil
			}
			return []pipeline.Record{ps}
		},
		Synthesize: func(_ int, st pipeline.State) []pipeline.Record {
			return []pipeline.Record{
				SynthesizeProblemStatement(metadataFrom(st).Theme, topRankedFrom(st)),
			}
		},
		Reduce: func(records []pipeline.Record, _ pipeline.State) any {
			return records[0]
		},
	}
}

// NewWorkflow assembles the full ideation pipeline. The graph branches
// after clustering: diagram suggestions are a leaf output while the
// challenge/score/refine chain continues. The caller seeds the metadata
// and ideas slots; survey_results is optional.
func NewWorkflow(idx index.DocumentIndex, cfg WorkflowConfig) (*pipeline.Pipeline, error) {
	stages := []*pipeline.Stage{
		NewBrainstormStage(idx, cfg),
		NewClusterStage(),
		NewDiagramStage(),
		NewChallengeStage(),
		NewScoreStage(cfg),
		NewRefineStage(),
	}
	edges := []pipeline.Edge{
		{From: StageBrainstorm, To: StageCluster},
		{From: StageCluster, To: StageDiagram},
		{From: StageCluster, To: StageChallenge},
		{From: StageChallenge, To: StageScore},
		{From: StageScore, To: StageRefine},
	}
	return pipeline.New(stages, edges)
}

// retrieveContext folds the top-k index snippets for the theme into a
// prompt block. Search failures and missing indexes degrade to a note.
func retrieveContext(ctx context.Context, idx index.DocumentIndex, theme string, k int) string {
	const none = "No relevant documents found."
	if idx == nil {
		return none
	}
	snippets, err := idx.Search(ctx, theme, k)
	if err != nil || len(snippets) == 0 {
		return none
	}
	var b strings.Builder
	for i, s := range snippets {
		citation := s.Citation
		if citation == "" {
			citation = "unknown"
		}
		fmt.Fprintf(&b, "Document %d (%s): %s\n", i+1, citation, s.Content)
	}
	return strings.TrimRight(b.String(), "\n")
}

func toRecords[T any](items []T) []pipeline.Record {
	records := make([]pipeline.Record, 0, len(items))
	for _, item := range items {
		records = append(records, item)
	}
	return records
}

func ideaKey(idea string) string {
	return strings.ToLower(strings.TrimSpace(idea))
}

func metadataFrom(st pipeline.State) ProjectMetadata {
	if v, ok := st.Get(SlotMetadata); ok {
		if meta, ok := v.(ProjectMetadata); ok {
			return meta
		}
	}
	return ProjectMetadata{}
}

func rawIdeasFrom(st pipeline.State) []string {
	if v, ok := st.Get(SlotIdeas); ok {
		if ideas, ok := v.([]string); ok {
			return ideas
		}
	}
	return nil
}

func clusteredFrom(st pipeline.State) []IdeaRecord {
	if v, ok := st.Get(SlotClustered); ok {
		if ideas, ok := v.([]IdeaRecord); ok {
			return ideas
		}
	}
	return nil
}

func analysisFrom(st pipeline.State) ChallengeAnalysis {
	if v, ok := st.Get(SlotChallenges); ok {
		if analysis, ok := v.(ChallengeAnalysis); ok {
			return analysis
		}
	}
	return ChallengeAnalysis{}
}

func topRankedFrom(st pipeline.State) ScoredOpportunity {
	if v, ok := st.Get(SlotRanked); ok {
		if ranked, ok := v.([]ScoredOpportunity); ok && len(ranked) > 0 {
			return ranked[0]
		}
	}
	return ScoredOpportunity{}
}
