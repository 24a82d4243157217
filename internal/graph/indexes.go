package graph

import (
	"context"
	"fmt"
)

// EnsureIndexes creates the vector index over TextChunk embeddings and the
// fulltext index over TextChunk text. Both use IF NOT EXISTS, so the call is
// idempotent.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	vectorIndex := fmt.Sprintf(`
		CREATE VECTOR INDEX %s IF NOT EXISTS
		FOR (c:TextChunk) ON (c.embedding)
		OPTIONS {indexConfig: {
			`+"`vector.dimensions`"+`: %d,
			`+"`vector.similarity_function`"+`: 'cosine'
		}}`, VectorIndexName, VectorDimension)

	if err := s.writeAutocommit(ctx, vectorIndex, nil); err != nil {
		return fmt.Errorf("create vector index: %w", err)
	}

	fulltextIndex := fmt.Sprintf(`
		CREATE FULLTEXT INDEX %s IF NOT EXISTS
		FOR (c:TextChunk) ON EACH [c.text]`, FulltextIndexName)

	if err := s.writeAutocommit(ctx, fulltextIndex, nil); err != nil {
		return fmt.Errorf("create fulltext index: %w", err)
	}
	return nil
}
