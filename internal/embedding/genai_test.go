package embedding

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewGenAIEngine_RequiresKey(t *testing.T) {
	_, err := NewGenAIEngine(context.Background(), "", "", TaskRetrievalQuery)
	assert.ErrorContains(t, err, "API key")
}

func TestTaskType_Mapping(t *testing.T) {
	assert.Equal(t, "RETRIEVAL_DOCUMENT", TaskRetrievalDocument.genai())
	assert.Equal(t, "RETRIEVAL_QUERY", TaskRetrievalQuery.genai())
	assert.Equal(t, "SEMANTIC_SIMILARITY", TaskSemanticSimilarity.genai())
	assert.Equal(t, "SEMANTIC_SIMILARITY", TaskType("").genai(),
		"unknown tasks default to symmetric similarity")
}

func TestGenAIEngine_Name(t *testing.T) {
	e := &GenAIEngine{model: "gemini-embedding-001"}
	assert.Equal(t, "genai:gemini-embedding-001", e.Name())
}
