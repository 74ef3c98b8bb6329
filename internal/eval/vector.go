package eval

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// ChunkConfig controls text chunking for the vector baseline.
type ChunkConfig struct {
	// ChunkSize is the maximum characters per chunk.
	ChunkSize int
	// ChunkOverlap is the overlap between consecutive chunks.
	ChunkOverlap int
}

// DefaultChunkConfig returns the baseline chunking parameters.
func DefaultChunkConfig() ChunkConfig {
	return ChunkConfig{ChunkSize: 512, ChunkOverlap: 50}
}

// Chunk is one segment of a chunked document.
type Chunk struct {
	Text     string `json:"text"`
	StartPos int    `json:"start_pos"`
	EndPos   int    `json:"end_pos"`
	Index    int    `json:"index"`
}

type indexEntry struct {
	chunk     Chunk
	embedding []float32
}

// VectorIndex is a flat in-memory vector index over document chunks, the
// conventional-RAG baseline the tree search is compared against.
type VectorIndex struct {
	entries  []indexEntry
	embedder Embedder
}

// BuildVectorIndex chunks the text and embeds every chunk.
func BuildVectorIndex(ctx context.Context, text string, embedder Embedder, config ChunkConfig) (*VectorIndex, error) {
	chunks := chunkText(text, config)

	idx := &VectorIndex{embedder: embedder}
	for _, chunk := range chunks {
		embedding, err := embedder.Embed(ctx, chunk.Text)
		if err != nil {
			return nil, fmt.Errorf("embedding chunk %d: %w", chunk.Index, err)
		}
		idx.entries = append(idx.entries, indexEntry{chunk: chunk, embedding: embedding})
	}
	return idx, nil
}

// Len returns the number of indexed chunks.
func (vi *VectorIndex) Len() int {
	return len(vi.entries)
}

// VectorSearchResult is one chunk matched by similarity search.
type VectorSearchResult struct {
	Chunk Chunk
	Score float32
}

// Search embeds the query and returns the topK most similar chunks.
func (vi *VectorIndex) Search(ctx context.Context, query string, topK int) ([]VectorSearchResult, error) {
	queryEmbedding, err := vi.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	results := make([]VectorSearchResult, 0, len(vi.entries))
	for _, entry := range vi.entries {
		results = append(results, VectorSearchResult{
			Chunk: entry.chunk,
			Score: CosineSimilarity(queryEmbedding, entry.embedding),
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// SearchContext joins the topK chunk texts into a single retrieval context.
func (vi *VectorIndex) SearchContext(ctx context.Context, query string, topK int) (string, error) {
	results, err := vi.Search(ctx, query, topK)
	if err != nil {
		return "", err
	}
	texts := make([]string, len(results))
	for i, r := range results {
		texts[i] = r.Chunk.Text
	}
	return strings.Join(texts, "\n\n"), nil
}

// chunkText splits text into overlapping chunks, preferring sentence
// boundaries near the chunk end. Always makes forward progress.
func chunkText(text string, config ChunkConfig) []Chunk {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	var chunks []Chunk
	start := 0
	index := 0
	for start < len(runes) {
		end := start + config.ChunkSize
		if end > len(runes) {
			end = len(runes)
		}

		// Prefer a sentence boundary in the trailing 100 runes.
		if end < len(runes) {
			searchStart := end - 100
			if searchStart < start {
				searchStart = start
			}
			for i := end - 1; i >= searchStart; i-- {
				if runes[i] == '.' || runes[i] == '!' || runes[i] == '?' {
					if i+1 > start {
						end = i + 1
					}
					break
				}
			}
		}

		if end <= start {
			end = start + 1
		}

		chunkStr := strings.TrimSpace(string(runes[start:end]))
		if chunkStr != "" {
			chunks = append(chunks, Chunk{
				Text:     chunkStr,
				StartPos: start,
				EndPos:   end,
				Index:    index,
			})
			index++
		}

		if end >= len(runes) {
			break
		}

		next := end - config.ChunkOverlap
		if next <= start {
			next = start + 1
		}
		start = next
	}
	return chunks
}
