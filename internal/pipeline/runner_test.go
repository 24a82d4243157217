package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtorres/chunkgraph/internal/config"
	"github.com/dtorres/chunkgraph/internal/embedding"
	"github.com/dtorres/chunkgraph/internal/graph"
	"github.com/dtorres/chunkgraph/internal/splitter"
)

// fakeEmbedder returns deterministic vectors, or a configured error.
type fakeEmbedder struct {
	err   error
	calls int
}

func (f *fakeEmbedder) GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{float32(i), 1.0}
	}
	return out, nil
}

// fakeWriter records every write, or fails with a configured error.
type fakeWriter struct {
	err    error
	docs   []graph.Document
	chunks [][]graph.Chunk
}

func (f *fakeWriter) WriteDocument(ctx context.Context, doc graph.Document, chunks []graph.Chunk) error {
	if f.err != nil {
		return f.err
	}
	f.docs = append(f.docs, doc)
	f.chunks = append(f.chunks, chunks)
	return nil
}

func sentenceConfig(name, text string) *config.SplitterConfig {
	return &config.SplitterConfig{
		Name:     name,
		Splitter: config.SplitterParams{Strategy: config.StrategySentence},
		Documents: []config.DocumentRef{
			{Name: name + "-doc", Text: text},
		},
	}
}

func TestRunner_HappyPath(t *testing.T) {
	embedder := &fakeEmbedder{}
	writer := &fakeWriter{}
	runner := NewRunner(embedder, writer, nil)

	cfg := sentenceConfig("sentence", "The quick brown fox. It jumps high.")
	result := runner.Run(context.Background(), []*config.SplitterConfig{cfg})

	assert.True(t, result.OK())
	assert.NotEmpty(t, result.RunID)
	require.Len(t, result.Configs, 1)
	assert.Equal(t, 1, result.Configs[0].Documents)
	assert.Equal(t, 2, result.Configs[0].Chunks)

	require.Len(t, writer.docs, 1)
	assert.Equal(t, "sentence-doc", writer.docs[0].Name)

	require.Len(t, writer.chunks, 1)
	chunks := writer.chunks[0]
	require.Len(t, chunks, 2)
	for i, c := range chunks {
		assert.Equal(t, i, c.Index, "indices must be contiguous from 0")
		assert.Equal(t, "sentence", c.Splitter)
		assert.Equal(t, "sentence-doc", c.Document)
		assert.NotNil(t, c.Embedding, "every chunk carries its embedding")
	}
	assert.Equal(t, "The quick brown fox.", chunks[0].Text)
	assert.Equal(t, "It jumps high.", chunks[1].Text)
}

func TestRunner_ConfigErrorIsIsolated(t *testing.T) {
	embedder := &fakeEmbedder{}
	writer := &fakeWriter{}
	runner := NewRunner(embedder, writer, nil)

	// First config has an empty document, a per-config splitter error; the
	// second must still run.
	bad := sentenceConfig("bad", "   ")
	good := sentenceConfig("good", "One sentence here.")

	result := runner.Run(context.Background(), []*config.SplitterConfig{bad, good})

	assert.False(t, result.OK())
	assert.Nil(t, result.Fatal)
	require.Len(t, result.Configs, 2)
	assert.Error(t, result.Configs[0].Err)
	assert.NoError(t, result.Configs[1].Err)
	assert.Equal(t, 1, result.Configs[1].Chunks)
	require.Len(t, writer.docs, 1)
}

func TestRunner_AuthErrorAbortsBatch(t *testing.T) {
	embedder := &fakeEmbedder{err: embedding.ErrAuth}
	writer := &fakeWriter{}
	runner := NewRunner(embedder, writer, nil)

	configs := []*config.SplitterConfig{
		sentenceConfig("first", "A sentence."),
		sentenceConfig("second", "Another sentence."),
		sentenceConfig("third", "A third sentence."),
	}
	result := runner.Run(context.Background(), configs)

	assert.False(t, result.OK())
	require.ErrorIs(t, result.Fatal, embedding.ErrAuth)
	assert.Len(t, result.Configs, 1, "remaining configs must not run after a fatal error")
	assert.Empty(t, writer.docs, "no graph writes after auth failure")
}

func TestRunner_UnreachableGraphAbortsBatch(t *testing.T) {
	embedder := &fakeEmbedder{}
	writer := &fakeWriter{err: graph.ErrUnreachable}
	runner := NewRunner(embedder, writer, nil)

	configs := []*config.SplitterConfig{
		sentenceConfig("first", "A sentence."),
		sentenceConfig("second", "Another sentence."),
	}
	result := runner.Run(context.Background(), configs)

	assert.False(t, result.OK())
	require.ErrorIs(t, result.Fatal, graph.ErrUnreachable)
	assert.Len(t, result.Configs, 1)
}

func TestRunner_DocumentErrorContinuesWithinConfig(t *testing.T) {
	embedder := &fakeEmbedder{}
	writer := &fakeWriter{}
	runner := NewRunner(embedder, writer, nil)

	cfg := &config.SplitterConfig{
		Name:     "mixed",
		Splitter: config.SplitterParams{Strategy: config.StrategySentence},
		Documents: []config.DocumentRef{
			{Name: "empty", Text: "  "},
			{Name: "fine", Text: "Still processed."},
		},
	}
	result := runner.Run(context.Background(), []*config.SplitterConfig{cfg})

	assert.False(t, result.OK())
	require.Len(t, result.Configs, 1)
	assert.Error(t, result.Configs[0].Err)
	assert.Equal(t, 1, result.Configs[0].Documents, "second document still processed")
	require.Len(t, writer.docs, 1)
	assert.Equal(t, "fine", writer.docs[0].Name)
}

func TestRunner_AllDocumentErrorsRecorded(t *testing.T) {
	embedder := &fakeEmbedder{}
	writer := &fakeWriter{}
	runner := NewRunner(embedder, writer, nil)

	cfg := &config.SplitterConfig{
		Name:     "two-bad",
		Splitter: config.SplitterParams{Strategy: config.StrategySentence},
		Documents: []config.DocumentRef{
			{Name: "first-empty", Text: ""},
			{Name: "second-empty", Text: "  "},
			{Name: "fine", Text: "Still processed."},
		},
	}
	result := runner.Run(context.Background(), []*config.SplitterConfig{cfg})

	assert.False(t, result.OK())
	require.Len(t, result.Configs, 1)
	cr := result.Configs[0]
	require.Error(t, cr.Err)
	assert.ErrorIs(t, cr.Err, splitter.ErrEmptyDocument)
	assert.Contains(t, cr.Err.Error(), `document "first-empty"`)
	assert.Contains(t, cr.Err.Error(), `document "second-empty"`, "later failures must not drop earlier ones")
	assert.Equal(t, 1, cr.Documents)
}

func TestRunner_BadSplitterConfigSkipsConfig(t *testing.T) {
	embedder := &fakeEmbedder{}
	writer := &fakeWriter{}
	runner := NewRunner(embedder, writer, nil)

	bad := &config.SplitterConfig{
		Name:     "broken",
		Splitter: config.SplitterParams{Strategy: "recursive"},
		Documents: []config.DocumentRef{
			{Name: "doc", Text: "text"},
		},
	}
	result := runner.Run(context.Background(), []*config.SplitterConfig{bad, sentenceConfig("ok", "Fine.")})

	assert.False(t, result.OK())
	assert.Nil(t, result.Fatal, "unknown strategy in one config is not fatal for the batch")
	require.Len(t, result.Configs, 2)
	assert.True(t, errors.Is(result.Configs[0].Err, config.ErrUnknownStrategy))
	assert.NoError(t, result.Configs[1].Err)
	assert.Equal(t, 1, embedder.calls, "embedder called only for the good config")
}

func TestRunResult_OK(t *testing.T) {
	ok := &RunResult{Configs: []ConfigResult{{}, {}}}
	assert.True(t, ok.OK())

	withErr := &RunResult{Configs: []ConfigResult{{Err: errors.New("boom")}}}
	assert.False(t, withErr.OK())

	withFatal := &RunResult{Fatal: errors.New("down")}
	assert.False(t, withFatal.OK())
}
