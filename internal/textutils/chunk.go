// Package textutils provides text manipulation helpers for the extraction
// pipeline.
package textutils

import "strings"

// DefaultChunkSize is sized so a chunk plus the extraction prompt fits
// comfortably inside the model's context window.
const DefaultChunkSize = 6000

// ChunkText splits text into chunks of at most maxChars characters, breaking
// on newline boundaries where possible so a transaction row is never split
// across two chunks.
func ChunkText(text string, maxChars int) []string {
	if maxChars <= 0 {
		maxChars = DefaultChunkSize
	}

	var chunks []string
	start := 0
	for start < len(text) {
		end := start + maxChars
		if end < len(text) {
			if newline := strings.LastIndex(text[start:end], "\n"); newline > 0 {
				end = start + newline
			}
		} else {
			end = len(text)
		}

		chunk := strings.TrimSpace(text[start:end])
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		start = end
	}

	return chunks
}
