package splitter

import (
	"strings"
	"unicode"
)

// Sentence splits text at sentence-ending punctuation (., !, ? followed by
// whitespace or end of text). A sentence is never divided across chunks;
// PerChunk sentences are grouped into each chunk, joined with a space.
type Sentence struct {
	PerChunk int
}

// NewSentence creates a sentence-boundary splitter. perChunk of 0 means one
// sentence per chunk.
func NewSentence(perChunk int) *Sentence {
	if perChunk <= 0 {
		perChunk = 1
	}
	return &Sentence{PerChunk: perChunk}
}

func (s *Sentence) Split(text string) ([]Chunk, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyDocument
	}

	sentences := splitSentences(text)

	var chunks []Chunk
	for i := 0; i < len(sentences); i += s.PerChunk {
		end := i + s.PerChunk
		if end > len(sentences) {
			end = len(sentences)
		}
		chunks = append(chunks, Chunk{
			Index: len(chunks),
			Text:  strings.Join(sentences[i:end], " "),
		})
	}
	return chunks, nil
}

// splitSentences breaks text into sentences, keeping terminal punctuation
// with its sentence. A boundary is one or more of . ! ? followed by
// whitespace or end of text. Text without terminal punctuation becomes a
// single trailing sentence.
func splitSentences(text string) []string {
	runes := []rune(text)
	var sentences []string
	start := 0

	for i := 0; i < len(runes); i++ {
		if !isSentenceEnd(runes[i]) {
			continue
		}
		// Absorb a run of terminal punctuation ("...", "?!").
		for i+1 < len(runes) && isSentenceEnd(runes[i+1]) {
			i++
		}
		if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			continue // mid-token period, e.g. "3.14" or "v1.2"
		}
		if sent := strings.TrimSpace(string(runes[start : i+1])); sent != "" {
			sentences = append(sentences, sent)
		}
		start = i + 1
	}

	if tail := strings.TrimSpace(string(runes[start:])); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
