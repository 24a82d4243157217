package graph

import (
	"context"
	"fmt"
)

// chunkBatchSize bounds how many chunks go into one write transaction.
const chunkBatchSize = 100

// WriteDocument persists a document and its ordered chunks.
//
// All writes use MERGE keyed on natural identity: the document name for
// Document nodes, the (document, splitter, index) triple for TextChunk
// nodes. Reprocessing the same document with the same splitter updates
// nodes in place, so node and edge counts stay stable across reruns.
//
// Chunks are written in batches; no transaction wraps the whole document.
// A crash mid-document leaves a partial chunking behind, which the next
// successful run repairs.
func (s *Store) WriteDocument(ctx context.Context, doc Document, chunks []Chunk) error {
	for _, c := range chunks {
		if c.Embedding != nil && len(c.Embedding) != VectorDimension {
			return fmt.Errorf("%w: chunk %d has %d dimensions, expected %d",
				ErrDimensionMismatch, c.Index, len(c.Embedding), VectorDimension)
		}
	}

	err := s.write(ctx, `
		MERGE (d:Document {name: $name})
		SET d.text = $text`,
		map[string]any{"name": doc.Name, "text": doc.Text})
	if err != nil {
		return fmt.Errorf("write document %q: %w", doc.Name, err)
	}

	for start := 0; start < len(chunks); start += chunkBatchSize {
		end := min(start+chunkBatchSize, len(chunks))
		if err := s.writeChunkBatch(ctx, doc.Name, chunks[start:end]); err != nil {
			return fmt.Errorf("write chunks %d-%d of %q: %w", start, end, doc.Name, err)
		}
	}

	if len(chunks) > 1 {
		if err := s.linkChunks(ctx, doc.Name, chunks[0].Splitter, len(chunks)); err != nil {
			return fmt.Errorf("link chunks of %q: %w", doc.Name, err)
		}
	}
	return nil
}

// writeChunkBatch upserts one batch of TextChunk nodes and their
// FROM_DOCUMENT edges.
func (s *Store) writeChunkBatch(ctx context.Context, docName string, chunks []Chunk) error {
	rows := make([]map[string]any, len(chunks))
	for i, c := range chunks {
		row := map[string]any{
			"splitter":    c.Splitter,
			"index":       c.Index,
			"text":        c.Text,
			"header_path": c.HeaderPath,
			"embedding":   nil,
		}
		if c.Embedding != nil {
			row["embedding"] = toFloat64(c.Embedding)
		}
		rows[i] = row
	}

	return s.write(ctx, `
		MATCH (d:Document {name: $doc})
		UNWIND $chunks AS chunk
		MERGE (c:TextChunk {document: $doc, splitter: chunk.splitter, index: chunk.index})
		SET c.text = chunk.text,
		    c.header_path = chunk.header_path,
		    c.embedding = chunk.embedding
		MERGE (c)-[:FROM_DOCUMENT]->(d)`,
		map[string]any{"doc": docName, "chunks": rows})
}

// linkChunks merges the NEXT_CHUNK edge between each consecutive chunk pair.
// Pairs are derived from the contiguous-index invariant.
func (s *Store) linkChunks(ctx context.Context, docName, splitter string, count int) error {
	return s.write(ctx, `
		UNWIND range(0, $last - 1) AS i
		MATCH (a:TextChunk {document: $doc, splitter: $splitter, index: i})
		MATCH (b:TextChunk {document: $doc, splitter: $splitter, index: i + 1})
		MERGE (a)-[:NEXT_CHUNK]->(b)`,
		map[string]any{"doc": docName, "splitter": splitter, "last": count - 1})
}

// toFloat64 widens an embedding for the bolt protocol, which carries
// float64 lists.
func toFloat64(f32 []float32) []float64 {
	f64 := make([]float64, len(f32))
	for i, v := range f32 {
		f64[i] = float64(v)
	}
	return f64
}
