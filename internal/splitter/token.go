package splitter

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// DefaultEncoding is the tiktoken encoding used when the config leaves the
// encoding empty. cl100k_base matches the OpenAI embedding models.
const DefaultEncoding = "cl100k_base"

// Token splits text into windows of at most Limit tokens, with Overlap
// tokens shared between consecutive windows. Token boundaries come from the
// tiktoken BPE encoding, so chunk text always decodes cleanly.
type Token struct {
	Limit   int
	Overlap int
	enc     *tiktoken.Tiktoken
}

// NewToken creates a token-count splitter for the named tiktoken encoding.
func NewToken(encoding string, limit, overlap int) (*Token, error) {
	if encoding == "" {
		encoding = DefaultEncoding
	}
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("load tiktoken encoding %q: %w", encoding, err)
	}
	return &Token{Limit: limit, Overlap: overlap, enc: enc}, nil
}

func (s *Token) Split(text string) ([]Chunk, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyDocument
	}

	tokens := s.enc.Encode(text, nil, nil)
	step := s.Limit - s.Overlap

	var chunks []Chunk
	for start := 0; start < len(tokens); start += step {
		end := start + s.Limit
		if end > len(tokens) {
			end = len(tokens)
		}
		chunks = append(chunks, Chunk{
			Index: len(chunks),
			Text:  s.enc.Decode(tokens[start:end]),
		})
		if end == len(tokens) {
			break
		}
	}
	return chunks, nil
}
