package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSplitterConfig_FixedSize(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config_fixed_size.yaml", `
splitter:
  strategy: fixed-size
  chunk_size: 200
  chunk_overlap: 20
documents:
  - name: dune
    text: "some text"
`)

	cfg, err := LoadSplitterConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "config_fixed_size", cfg.Name)
	assert.Equal(t, StrategyFixedSize, cfg.Splitter.Strategy)
	assert.Equal(t, 200, cfg.Splitter.ChunkSize)
	assert.Equal(t, 20, cfg.Splitter.ChunkOverlap)
	require.Len(t, cfg.Documents, 1)
	assert.Equal(t, "dune", cfg.Documents[0].Name)
}

func TestLoadSplitterConfig_OverlapTooLarge(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "bad.yaml", `
splitter:
  strategy: fixed-size
  chunk_size: 10
  chunk_overlap: 10
documents:
  - name: doc
    text: "x"
`)

	_, err := LoadSplitterConfig(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidParam)
}

func TestLoadSplitterConfig_UnknownStrategy(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "bad.yaml", `
splitter:
  strategy: recursive
documents:
  - name: doc
    text: "x"
`)

	_, err := LoadSplitterConfig(path)
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestLoadSplitterConfig_NoDocuments(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "bad.yaml", `
splitter:
  strategy: sentence
`)

	_, err := LoadSplitterConfig(path)
	assert.ErrorIs(t, err, ErrNoDocuments)
}

func TestLoadSplitterConfig_DocumentWithoutSource(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "bad.yaml", `
splitter:
  strategy: sentence
documents:
  - name: doc
`)

	_, err := LoadSplitterConfig(path)
	assert.ErrorIs(t, err, ErrInvalidParam)
}

func TestLoadSplitterConfig_TokenValidation(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "bad.yaml", `
splitter:
  strategy: token
  token_limit: 16
  token_overlap: 16
documents:
  - name: doc
    text: "x"
`)

	_, err := LoadSplitterConfig(path)
	assert.ErrorIs(t, err, ErrInvalidParam)
}

func TestLoadDir_FixedStrategyOrder(t *testing.T) {
	dir := t.TempDir()
	doc := "\ndocuments:\n  - name: doc\n    text: \"x\"\n"
	// Filenames deliberately sort against the strategy order.
	writeConfig(t, dir, "a_token.yaml", "splitter:\n  strategy: token\n  token_limit: 16"+doc)
	writeConfig(t, dir, "b_markdown.yaml", "splitter:\n  strategy: markdown"+doc)
	writeConfig(t, dir, "c_sentence.yaml", "splitter:\n  strategy: sentence"+doc)
	writeConfig(t, dir, "d_character.yaml", "splitter:\n  strategy: character\n  chunk_size: 100"+doc)
	writeConfig(t, dir, "e_fixed.yaml", "splitter:\n  strategy: fixed-size\n  chunk_size: 100\n  chunk_overlap: 10"+doc)

	configs, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, configs, 5)

	got := make([]Strategy, len(configs))
	for i, c := range configs {
		got[i] = c.Splitter.Strategy
	}
	assert.Equal(t, StrategyOrder, got)
}

func TestLoadDir_Empty(t *testing.T) {
	_, err := LoadDir(t.TempDir())
	assert.Error(t, err)
}

func TestDocumentRef_Load(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("file content"), 0o644))

	fromFile := DocumentRef{Name: "f", Path: path}
	text, err := fromFile.Load()
	require.NoError(t, err)
	assert.Equal(t, "file content", text)

	inline := DocumentRef{Name: "i", Text: "inline content"}
	text, err = inline.Load()
	require.NoError(t, err)
	assert.Equal(t, "inline content", text)

	missing := DocumentRef{Name: "m", Path: filepath.Join(dir, "absent.txt")}
	_, err = missing.Load()
	assert.Error(t, err)
}
