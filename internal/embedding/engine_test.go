package embedding

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkText(t *testing.T) {
	t.Run("short text yields single chunk", func(t *testing.T) {
		chunks := ChunkText("one two three", 10, 2)
		require.Len(t, chunks, 1)
		assert.Equal(t, "one two three", chunks[0])
	})

	t.Run("empty text yields nothing", func(t *testing.T) {
		assert.Nil(t, ChunkText("   \n\t ", 10, 2))
	})

	t.Run("long text overlaps between chunks", func(t *testing.T) {
		words := make([]string, 25)
		for i := range words {
			words[i] = string(rune('a' + i))
		}
		text := strings.Join(words, " ")

		chunks := ChunkText(text, 10, 2)
		require.True(t, len(chunks) >= 3)

		// Tail of chunk 1 reappears at the head of chunk 2.
		first := strings.Fields(chunks[0])
		second := strings.Fields(chunks[1])
		assert.Equal(t, first[len(first)-2:], second[:2])
	})

	t.Run("all words covered", func(t *testing.T) {
		text := "alpha beta gamma delta epsilon zeta eta theta iota kappa"
		chunks := ChunkText(text, 4, 1)
		joined := strings.Join(chunks, " ")
		for _, w := range strings.Fields(text) {
			assert.Contains(t, joined, w)
		}
	})
}
