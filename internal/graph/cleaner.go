package graph

import (
	"context"
	"fmt"
)

// CleanSplitter detach-deletes every TextChunk produced by one splitter
// strategy, leaving Document nodes and other chunkings in place.
func (s *Store) CleanSplitter(ctx context.Context, splitter string) (int64, error) {
	records, err := s.readWrite(ctx, `
		MATCH (c:TextChunk {splitter: $splitter})
		DETACH DELETE c
		RETURN count(c) AS deleted`,
		map[string]any{"splitter": splitter})
	if err != nil {
		return 0, fmt.Errorf("clean splitter %q: %w", splitter, err)
	}
	return deletedCount(records), nil
}

// CleanAll detach-deletes every TextChunk and Document node.
func (s *Store) CleanAll(ctx context.Context) (int64, error) {
	records, err := s.readWrite(ctx, `
		MATCH (n)
		WHERE n:TextChunk OR n:Document
		DETACH DELETE n
		RETURN count(n) AS deleted`, nil)
	if err != nil {
		return 0, fmt.Errorf("clean all: %w", err)
	}
	return deletedCount(records), nil
}

func deletedCount(records []map[string]any) int64 {
	if len(records) == 0 {
		return 0
	}
	return int64Value(records[0]["deleted"])
}
