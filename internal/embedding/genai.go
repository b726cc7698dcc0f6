package embedding

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// TaskType selects the embedding task the Gemini API optimizes for.
// Documents and queries use asymmetric embeddings, so the indexing and
// search sides of the pipeline must each pass their own task.
type TaskType string

const (
	TaskRetrievalDocument  TaskType = "RETRIEVAL_DOCUMENT"
	TaskRetrievalQuery     TaskType = "RETRIEVAL_QUERY"
	TaskSemanticSimilarity TaskType = "SEMANTIC_SIMILARITY"
)

func (t TaskType) genai() string {
	switch t {
	case TaskRetrievalDocument:
		return string(TaskRetrievalDocument)
	case TaskRetrievalQuery:
		return string(TaskRetrievalQuery)
	default:
		return string(TaskSemanticSimilarity)
	}
}

// defaultGenAIModel is the embedding model used when the config leaves
// one unset. It emits 768-dimensional vectors.
const defaultGenAIModel = "gemini-embedding-001"

// GenAIEngine embeds text through the Gemini embedding API.
type GenAIEngine struct {
	client *genai.Client
	model  string
	task   TaskType
}

// NewGenAIEngine builds an embedding engine bound to one task type: pass
// TaskRetrievalDocument when indexing and TaskRetrievalQuery when
// searching.
func NewGenAIEngine(ctx context.Context, apiKey, model string, task TaskType) (*GenAIEngine, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	if model == "" {
		model = defaultGenAIModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GenAIEngine{client: client, model: model, task: task}, nil
}

// Embed generates an embedding for a single text.
func (e *GenAIEngine) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch generates embeddings for multiple texts in one API call.
func (e *GenAIEngine) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	return e.embed(ctx, texts)
}

func (e *GenAIEngine) embed(ctx context.Context, texts []string) ([][]float32, error) {
	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		contents[i] = genai.NewContentFromText(text, genai.RoleUser)
	}

	result, err := e.client.Models.EmbedContent(ctx, e.model, contents,
		&genai.EmbedContentConfig{TaskType: e.task.genai()})
	if err != nil {
		return nil, fmt.Errorf("GenAI embed failed: %w", err)
	}
	if len(result.Embeddings) < len(texts) {
		return nil, fmt.Errorf("GenAI returned %d embeddings for %d texts",
			len(result.Embeddings), len(texts))
	}

	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = result.Embeddings[i].Values
	}
	return vectors, nil
}

// Dimensions returns the dimensionality of the configured model's vectors.
func (e *GenAIEngine) Dimensions() int {
	return 768
}

// Name identifies the engine in logs and index metadata.
func (e *GenAIEngine) Name() string {
	return fmt.Sprintf("genai:%s", e.model)
}
