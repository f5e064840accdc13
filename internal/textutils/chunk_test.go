package textutils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkText(t *testing.T) {
	t.Run("short text yields one chunk", func(t *testing.T) {
		chunks := ChunkText("one line\nanother line", 100)
		assert.Equal(t, []string{"one line\nanother line"}, chunks)
	})

	t.Run("breaks on newline boundaries", func(t *testing.T) {
		text := strings.Repeat("0123456789\n", 10)
		chunks := ChunkText(text, 25)

		assert.Greater(t, len(chunks), 1)
		for _, c := range chunks {
			assert.LessOrEqual(t, len(c), 25)
			// No chunk should start or end mid-line.
			assert.False(t, strings.HasPrefix(c, "123"))
		}
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, ChunkText("", 100))
	})

	t.Run("no content lost", func(t *testing.T) {
		text := strings.Repeat("row with amount 1,234.56\n", 40)
		chunks := ChunkText(text, 100)

		joined := strings.Join(chunks, "\n")
		assert.Equal(t, 40, strings.Count(joined, "1,234.56"))
	})

	t.Run("zero max falls back to default", func(t *testing.T) {
		chunks := ChunkText("abc", 0)
		assert.Equal(t, []string{"abc"}, chunks)
	})
}
