package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ideaforge/internal/config"
	"ideaforge/internal/embedding"
	"ideaforge/internal/ideation"
	"ideaforge/internal/index"
	"ideaforge/internal/llm"
	"ideaforge/internal/pipeline"
)

var (
	projectTitle      string
	projectTheme      string
	projectDepartment string
	ideaInputs        []string
	surveyResults     string
	noRetrieval       bool
	showHistory       bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full ideation workflow for a project",
	Long: `Runs the six-stage workflow:
  1. brainstorm: generate 3-5 prompts, augmented with indexed documents
  2. cluster:    organize the supplied ideas into tagged records
  3. diagram:    suggest a text-based diagram per clustered idea
  4. challenge:  empathy analysis; every idea is retained or filtered
  5. score:      rank at most 3 opportunities by weighted score
  6. refine:     turn the top opportunity into a problem statement

Example:
  ideaforge run --title "AI Healthcare Solution" --theme healthcare \
    --department "Computer Science" \
    --idea "Triage assistant" --idea "Appointment bot"`,
	RunE: runWorkflow,
}

func init() {
	runCmd.Flags().StringVar(&projectTitle, "title", "", "Project title (required)")
	runCmd.Flags().StringVar(&projectTheme, "theme", "", "Project theme (required)")
	runCmd.Flags().StringVar(&projectDepartment, "department", "", "Department name (required)")
	runCmd.Flags().StringArrayVar(&ideaInputs, "idea", nil, "Project idea (repeatable, at least one required)")
	runCmd.Flags().StringVar(&surveyResults, "survey", "", "Survey results text for the scoring stage (optional)")
	runCmd.Flags().BoolVar(&noRetrieval, "no-retrieval", false, "Skip document retrieval for brainstorming")
	runCmd.Flags().BoolVar(&showHistory, "history", false, "Print the run history after the final state")
}

func runWorkflow(cmd *cobra.Command, args []string) error {
	if projectTitle == "" || projectTheme == "" || projectDepartment == "" {
		return fmt.Errorf("--title, --theme and --department are required")
	}
	if len(ideaInputs) == 0 {
		return fmt.Errorf("at least one --idea is required")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := llm.NewGeminiClientWithConfig(llm.GeminiConfig{
		APIKey:          cfg.LLM.APIKey,
		BaseURL:         cfg.LLM.BaseURL,
		Model:           cfg.LLM.Model,
		Temperature:     cfg.LLM.Temperature,
		MaxOutputTokens: cfg.LLM.MaxOutputTokens,
		Timeout:         cfg.GetLLMTimeout(),
	})

	var idx index.DocumentIndex
	if !noRetrieval {
		vecIdx, err := openIndex(ctx, cfg, embedding.TaskRetrievalQuery)
		if err != nil {
			return err
		}
		defer vecIdx.Close()

		// No stage can retrieve meaningfully from a missing index, so
		// surface that before spending any generation calls.
		if err := vecIdx.Ready(ctx); err != nil {
			return fmt.Errorf("%w (build it with 'ideaforge index build', or pass --no-retrieval)", err)
		}
		idx = vecIdx
	}

	workflow, err := ideation.NewWorkflow(idx, ideation.WorkflowConfig{
		RetrievalK:       cfg.Pipeline.RetrievalK,
		MinPrompts:       cfg.Pipeline.MinPrompts,
		MaxPrompts:       cfg.Pipeline.MaxPrompts,
		MaxOpportunities: cfg.Pipeline.MaxOpportunities,
	})
	if err != nil {
		return err
	}

	initial := pipeline.State{
		ideation.SlotMetadata: ideation.NewProjectMetadata(projectTitle, projectTheme, projectDepartment),
		ideation.SlotIdeas:    ideaInputs,
	}
	if surveyResults != "" {
		initial.Set(ideation.SlotSurveyResults, surveyResults)
	}

	logger.Info("running ideation workflow",
		zap.String("title", projectTitle),
		zap.String("theme", projectTheme),
		zap.Int("ideas", len(ideaInputs)))

	final, hist, err := pipeline.NewRunner(client, logger).Run(ctx, workflow, initial)
	if err != nil {
		return err
	}

	printFinalState(final)
	if showHistory {
		printHistory(hist)
	}
	return nil
}

func printFinalState(final pipeline.State) {
	if v, ok := final.Get(ideation.SlotPrompts); ok {
		if prompts, ok := v.([]string); ok {
			fmt.Println("Brainstorming Prompts:")
			for i, p := range prompts {
				fmt.Printf("  %d. %s\n", i+1, p)
			}
		}
	}

	if v, ok := final.Get(ideation.SlotClustered); ok {
		if ideas, ok := v.([]ideation.IdeaRecord); ok {
			fmt.Println("\nClustered Ideas:")
			for _, idea := range ideas {
				fmt.Printf("  - %s [%s]\n", idea.Text, strings.Join(idea.Tags, ", "))
			}
		}
	}

	if v, ok := final.Get(ideation.SlotDiagrams); ok {
		if suggestions, ok := v.([]string); ok {
			fmt.Println("\nDiagram Suggestions:")
			for _, s := range suggestions {
				fmt.Printf("  - %s\n", s)
			}
		}
	}

	if v, ok := final.Get(ideation.SlotChallenges); ok {
		if analysis, ok := v.(ideation.ChallengeAnalysis); ok {
			fmt.Println("\nChallenges:")
			for _, c := range analysis.Challenges {
				fmt.Printf("  - %s\n", c.Idea)
				fmt.Printf("      Pain Point: %s\n", c.PainPoint)
				fmt.Printf("      Stakeholders: %s\n", c.Stakeholders)
				fmt.Printf("      Importance: %s\n", c.Importance)
			}
			if len(analysis.Filtered) > 0 {
				fmt.Println("  Filtered:")
				for _, f := range analysis.Filtered {
					fmt.Printf("  - %s (%s)\n", f.Idea, f.Reason)
				}
			}
		}
	}

	if v, ok := final.Get(ideation.SlotRanked); ok {
		if ranked, ok := v.([]ideation.ScoredOpportunity); ok {
			fmt.Println("\nRanked Opportunities:")
			for _, op := range ranked {
				fmt.Printf("  Rank %d: %s (total %.1f/100)\n", op.Rank, op.Idea, op.TotalScore)
				fmt.Printf("      Feasibility: %d/100 (%s)\n", op.Feasibility, op.FeasibilityReason)
				fmt.Printf("      Impact: %d/100 (%s)\n", op.Impact, op.ImpactReason)
				fmt.Printf("      Empathy: %d/100 (%s)\n", op.Empathy, op.EmpathyReason)
			}
		}
	}

	if v, ok := final.Get(ideation.SlotProblem); ok {
		if ps, ok := v.(ideation.ProblemStatement); ok {
			fmt.Println("\nProblem Statement:")
			fmt.Printf("  %s\n", ps.Statement)
			fmt.Println("  What we know:")
			for _, k := range ps.Known {
				fmt.Printf("    - %s\n", k)
			}
			fmt.Println("  What we need to learn:")
			for _, u := range ps.Unknown {
				fmt.Printf("    - %s\n", u)
			}
		}
	}

	for _, slot := range []string{
		ideation.SlotPrompts, ideation.SlotClustered, ideation.SlotDiagrams,
		ideation.SlotChallenges, ideation.SlotRanked, ideation.SlotProblem,
	} {
		if pipeline.IsDegraded(final, slot) {
			v, _ := final.Get(slot)
			if d, ok := v.(pipeline.Degraded); ok {
				fmt.Printf("\nWARNING: stage %q degraded: %s\n", d.Stage, d.Reason)
			}
		}
	}
}

func printHistory(hist *pipeline.History) {
	fmt.Printf("\nRun History (%s):\n", hist.Status())
	for _, entry := range hist.Entries() {
		fmt.Printf("  [%s] %d records\n", entry.Stage, len(entry.Records))
		for _, line := range strings.Split(strings.TrimSpace(entry.RawResponse), "\n") {
			fmt.Printf("      %s\n", line)
		}
	}
}

func openIndex(ctx context.Context, cfg *config.Config, task embedding.TaskType) (*index.VecIndex, error) {
	engine, err := embedding.NewGenAIEngine(ctx, cfg.LLM.APIKey, cfg.Embedding.Model, task)
	if err != nil {
		return nil, err
	}
	return index.OpenVecIndex(cfg.Index.Path, engine, logger)
}
