package splitter

import "strings"

// FixedSize splits text into rune windows of at most Size runes where
// consecutive windows share exactly Overlap runes. The final chunk may be
// shorter when the text runs out.
type FixedSize struct {
	Size    int
	Overlap int
}

// NewFixedSize creates a fixed-size splitter. Parameters are assumed valid
// (overlap < size), enforced by config validation.
func NewFixedSize(size, overlap int) *FixedSize {
	return &FixedSize{Size: size, Overlap: overlap}
}

func (s *FixedSize) Split(text string) ([]Chunk, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyDocument
	}

	runes := []rune(text)
	step := s.Size - s.Overlap

	var chunks []Chunk
	for start := 0; start < len(runes); start += step {
		end := start + s.Size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, Chunk{
			Index: len(chunks),
			Text:  string(runes[start:end]),
		})
		if end == len(runes) {
			break
		}
	}
	return chunks, nil
}
