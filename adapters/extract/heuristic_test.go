package extract

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/hanifra/studycast/server/domain"
)

func TestHeuristicTextObjectScan(t *testing.T) {
	h := NewHeuristic(zaptest.NewLogger(t))

	content := []byte("%binary\x00junk BT This sentence lives inside a text object and is plenty long ET more\x01junk " +
		"BT another run of readable content that should also be collected ET trailing")
	result, err := h.Extract(context.Background(), domain.ExtractionRequest{Document: content})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if !strings.Contains(result.Text, "This sentence lives inside a text object") {
		t.Errorf("Expected first text object content, got %q", result.Text)
	}
	if !strings.Contains(result.Text, "another run of readable content") {
		t.Errorf("Expected second text object content, got %q", result.Text)
	}
	if result.Metadata.Method != string(domain.MethodHeuristic) {
		t.Errorf("Expected method %q, got %q", domain.MethodHeuristic, result.Metadata.Method)
	}
	if result.Metadata.CharacterCount != len(result.Text) {
		t.Errorf("Metadata character count %d does not match text length %d",
			result.Metadata.CharacterCount, len(result.Text))
	}
}

func TestHeuristicShortRunsDropped(t *testing.T) {
	h := NewHeuristic(zaptest.NewLogger(t))

	// A run of 10 or fewer printable characters is operator noise.
	content := []byte("BT Tf 12 Td\x00but this particular run is long enough to keep around ET")
	result, err := h.Extract(context.Background(), domain.ExtractionRequest{Document: content})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if strings.Contains(result.Text, "Tf 12 Td") {
		t.Errorf("Expected short run dropped, got %q", result.Text)
	}
	if !strings.Contains(result.Text, "long enough to keep around") {
		t.Errorf("Expected long run kept, got %q", result.Text)
	}
}

func TestHeuristicLiteralFallback(t *testing.T) {
	h := NewHeuristic(zaptest.NewLogger(t))

	// No text objects at all: the literal scan takes over.
	content := []byte("\x00\x01(Hello) garbage (world of documents) \x02(!)")
	result, err := h.Extract(context.Background(), domain.ExtractionRequest{Document: content})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if result.Text != "Hello world of documents !" {
		t.Errorf("Expected literal contents joined by spaces, got %q", result.Text)
	}
}

func TestHeuristicLiteralFallbackWhenObjectsShort(t *testing.T) {
	h := NewHeuristic(zaptest.NewLogger(t))

	// The text object pass finds under 50 characters, so the literal pass
	// replaces it.
	content := []byte("BT a short-ish object run ET (a much better literal with actual sentence content in it)")
	result, err := h.Extract(context.Background(), domain.ExtractionRequest{Document: content})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if !strings.Contains(result.Text, "a much better literal") {
		t.Errorf("Expected literal pass result, got %q", result.Text)
	}
}

func TestHeuristicEscapedParens(t *testing.T) {
	h := NewHeuristic(zaptest.NewLogger(t))

	content := []byte(`(an escaped \) does not close the literal)`)
	result, err := h.Extract(context.Background(), domain.ExtractionRequest{Document: content})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if !strings.Contains(result.Text, "does not close the literal") {
		t.Errorf("Expected escape handled, got %q", result.Text)
	}
}

func TestHeuristicMalformedInputNeverErrors(t *testing.T) {
	h := NewHeuristic(zaptest.NewLogger(t))

	inputs := [][]byte{
		nil,
		{},
		{0x00, 0xff, 0xfe, 0x01},
		[]byte("BT never closed"),
		[]byte("(never closed either"),
		[]byte("ET before BT"),
	}
	for _, input := range inputs {
		result, err := h.Extract(context.Background(), domain.ExtractionRequest{Document: input})
		if err != nil {
			t.Errorf("Extract(%q) returned error: %v", input, err)
		}
		// Degrading to empty text is fine; the quality gate rejects it.
		_ = result
	}
}
