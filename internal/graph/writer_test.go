package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteDocument_DimensionValidation(t *testing.T) {
	// Validation runs before any graph access, so a zero-value store works.
	s := &Store{}

	chunks := []Chunk{
		{Document: "doc", Splitter: "fixed-size", Index: 0, Text: "text", Embedding: []float32{1, 2, 3}},
	}
	err := s.WriteDocument(context.Background(), Document{Name: "doc"}, chunks)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestSearchChunks_DimensionValidation(t *testing.T) {
	s := &Store{}

	_, err := s.SearchChunks(context.Background(), []float32{1, 2, 3}, 5)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestToFloat64(t *testing.T) {
	got := toFloat64([]float32{0.5, -2})
	assert.Equal(t, []float64{0.5, -2}, got)
}
