package splitter

import (
	"errors"
	"testing"

	"github.com/pkoukk/tiktoken-go"
)

// newTokenOrSkip builds a token splitter, skipping the test when the
// tiktoken encoding cannot be loaded (no network and no local cache).
func newTokenOrSkip(t *testing.T, limit, overlap int) *Token {
	t.Helper()
	s, err := NewToken(DefaultEncoding, limit, overlap)
	if err != nil {
		t.Skipf("tiktoken encoding unavailable: %v", err)
	}
	return s
}

func TestToken_LimitRespected(t *testing.T) {
	s := newTokenOrSkip(t, 8, 0)
	text := "The spice extends life. The spice expands consciousness. The spice is vital to space travel."

	chunks, err := s.Split(text)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("Expected multiple chunks, got %d", len(chunks))
	}

	enc, err := tiktoken.GetEncoding(DefaultEncoding)
	if err != nil {
		t.Skipf("tiktoken encoding unavailable: %v", err)
	}
	for i, c := range chunks {
		if got := len(enc.Encode(c.Text, nil, nil)); got > 8 {
			t.Errorf("Chunk %d has %d tokens, limit 8", i, got)
		}
		if c.Index != i {
			t.Errorf("Chunk %d has index %d", i, c.Index)
		}
	}
}

func TestToken_Reconstruction(t *testing.T) {
	s := newTokenOrSkip(t, 5, 0)
	text := "House Atreides accepts the stewardship of Arrakis at the Emperor's command."

	chunks, err := s.Split(text)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}

	var joined string
	for _, c := range chunks {
		joined += c.Text
	}
	if joined != text {
		t.Errorf("Concatenation without overlap got %q, want %q", joined, text)
	}
}

func TestToken_ShortInput(t *testing.T) {
	s := newTokenOrSkip(t, 100, 10)
	chunks, err := s.Split("short text")
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	if len(chunks) != 1 {
		t.Errorf("Expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != "short text" {
		t.Errorf("Chunk text: got %q", chunks[0].Text)
	}
}

func TestToken_EmptyInput(t *testing.T) {
	s := newTokenOrSkip(t, 10, 0)
	if _, err := s.Split(""); !errors.Is(err, ErrEmptyDocument) {
		t.Errorf("Expected ErrEmptyDocument, got %v", err)
	}
}
