package graph

import (
	"context"
	"errors"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// ErrEmptyQuery is returned by hybrid search when the fulltext query text
// is blank.
var ErrEmptyQuery = errors.New("fulltext query text is empty")

const chunkReturnClause = `
	RETURN node.document AS document,
	       node.splitter AS splitter,
	       node.index AS idx,
	       node.text AS text,
	       node.header_path AS header_path,
	       score
	ORDER BY score DESC`

// SearchChunks performs vector similarity search over the chunk embedding
// index. Results are ordered by descending similarity score.
// EnsureIndexes must have run before the first search.
func (s *Store) SearchChunks(ctx context.Context, embedding []float32, topK int) ([]ScoredChunk, error) {
	if len(embedding) != VectorDimension {
		return nil, fmt.Errorf("%w: query has %d dimensions, expected %d",
			ErrDimensionMismatch, len(embedding), VectorDimension)
	}
	if topK <= 0 {
		topK = 5
	}

	records, err := s.read(ctx, `
		CALL db.index.vector.queryNodes($index, $k, $embedding)
		YIELD node, score`+chunkReturnClause,
		map[string]any{
			"index":     VectorIndexName,
			"k":         topK,
			"embedding": toFloat64(embedding),
		})
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	return collectHits(records), nil
}

// SearchChunksHybrid combines vector similarity with fulltext relevance:
// both indexes are queried for topK candidates, each side's scores are
// normalized by its maximum, and a chunk found by both keeps its best
// score. query is the raw text fed to the fulltext index.
func (s *Store) SearchChunksHybrid(ctx context.Context, embedding []float32, query string, topK int) ([]ScoredChunk, error) {
	if len(embedding) != VectorDimension {
		return nil, fmt.Errorf("%w: query has %d dimensions, expected %d",
			ErrDimensionMismatch, len(embedding), VectorDimension)
	}
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if topK <= 0 {
		topK = 5
	}

	records, err := s.read(ctx, `
		CALL {
			CALL db.index.vector.queryNodes($vector_index, $k, $embedding)
			YIELD node, score
			WITH collect({node: node, score: score}) AS results, max(score) AS top
			UNWIND results AS result
			RETURN result.node AS node, result.score / top AS score
			UNION
			CALL db.index.fulltext.queryNodes($fulltext_index, $query, {limit: $k})
			YIELD node, score
			WITH collect({node: node, score: score}) AS results, max(score) AS top
			UNWIND results AS result
			RETURN result.node AS node, result.score / top AS score
		}
		WITH node, max(score) AS score`+chunkReturnClause+`
		LIMIT $k`,
		map[string]any{
			"vector_index":   VectorIndexName,
			"fulltext_index": FulltextIndexName,
			"k":              topK,
			"embedding":      toFloat64(embedding),
			"query":          query,
		})
	if err != nil {
		return nil, fmt.Errorf("hybrid search: %w", err)
	}
	return collectHits(records), nil
}

func collectHits(records []*neo4j.Record) []ScoredChunk {
	hits := make([]ScoredChunk, 0, len(records))
	for _, r := range records {
		m := r.AsMap()
		hit := ScoredChunk{
			Chunk: Chunk{
				Document: stringValue(m["document"]),
				Splitter: stringValue(m["splitter"]),
				Index:    int(int64Value(m["idx"])),
				Text:     stringValue(m["text"]),
			},
		}
		if hp, ok := m["header_path"].(string); ok {
			hit.Chunk.HeaderPath = hp
		}
		if score, ok := m["score"].(float64); ok {
			hit.Score = score
		}
		hits = append(hits, hit)
	}
	return hits
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}
