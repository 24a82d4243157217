// Package splitter implements the five chunking strategies: fixed-size,
// character-boundary, sentence-boundary, token-count, and markdown-header.
package splitter

import (
	"errors"
	"fmt"

	"github.com/dtorres/chunkgraph/internal/config"
)

// ErrEmptyDocument is returned for empty or whitespace-only input.
// Policy: an empty document is an error, never an empty chunk list.
var ErrEmptyDocument = errors.New("document text is empty")

// Chunk is one contiguous span of a document's text. Index values within a
// document are contiguous starting at 0.
type Chunk struct {
	Index      int
	Text       string
	HeaderPath string // markdown strategy only: "# Title > ## Section"
}

// Splitter maps document text to an ordered chunk sequence.
type Splitter interface {
	Split(text string) ([]Chunk, error)
}

// New builds the Splitter for a validated configuration.
func New(p config.SplitterParams) (Splitter, error) {
	switch p.Strategy {
	case config.StrategyFixedSize:
		return NewFixedSize(p.ChunkSize, p.ChunkOverlap), nil
	case config.StrategyCharacter:
		return NewCharacter(p.Separator, p.ChunkSize), nil
	case config.StrategySentence:
		return NewSentence(p.SentencesPerChunk), nil
	case config.StrategyToken:
		return NewToken(p.Encoding, p.TokenLimit, p.TokenOverlap)
	case config.StrategyMarkdown:
		return NewMarkdown(p.MinHeaderDepth, p.MaxHeaderDepth), nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownStrategy, p.Strategy)
	}
}
