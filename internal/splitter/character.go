package splitter

import "strings"

// DefaultSeparator is used by the character splitter when the config leaves
// the separator empty.
const DefaultSeparator = "\n"

// Character splits text only at a separator string. Separator-delimited
// segments are packed greedily into chunks of at most MaxSize runes; a
// segment is never divided, so a single oversized segment becomes its own
// chunk. Joining the chunks with the separator reconstructs the source.
type Character struct {
	Separator string
	MaxSize   int
}

// NewCharacter creates a character-boundary splitter.
func NewCharacter(separator string, maxSize int) *Character {
	if separator == "" {
		separator = DefaultSeparator
	}
	return &Character{Separator: separator, MaxSize: maxSize}
}

func (s *Character) Split(text string) ([]Chunk, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyDocument
	}

	segments := strings.Split(text, s.Separator)
	sepLen := len([]rune(s.Separator))

	var chunks []Chunk
	var current []string
	currentLen := 0

	flush := func() {
		if len(current) == 0 {
			return
		}
		chunks = append(chunks, Chunk{
			Index: len(chunks),
			Text:  strings.Join(current, s.Separator),
		})
		current = current[:0]
		currentLen = 0
	}

	for _, seg := range segments {
		segLen := len([]rune(seg))
		joined := currentLen + segLen
		if len(current) > 0 {
			joined += sepLen
		}
		if len(current) > 0 && joined > s.MaxSize {
			flush()
			joined = segLen
		}
		current = append(current, seg)
		currentLen = joined
	}
	flush()

	return chunks, nil
}
