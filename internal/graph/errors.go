package graph

import "errors"

var (
	// ErrUnreachable means the Neo4j server could not be reached. Fatal for
	// the whole batch.
	ErrUnreachable = errors.New("neo4j server unreachable")

	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)
