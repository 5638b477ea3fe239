package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/bookline/reader/backend/internal/models"
)

// mockProvider records calls and translates via a configurable function.
// The default function echoes the input, which keeps chunk boundaries
// observable in the joined output.
type mockProvider struct {
	calls     []string
	err       error
	translate func(text, targetCode string) string
}

func (m *mockProvider) Translate(_ context.Context, text, targetCode string) (string, error) {
	m.calls = append(m.calls, text)
	if m.err != nil {
		return "", m.err
	}
	if m.translate != nil {
		return m.translate(text, targetCode), nil
	}
	return text, nil
}

// repeatParagraphs builds text of n paragraphs of roughly size chars each.
// Paragraphs carry no leading or trailing whitespace, so with an echo
// translator the chunked output reconstructs the input byte for byte.
func repeatParagraphs(n, size int) string {
	paragraphs := make([]string, n)
	for i := range paragraphs {
		paragraphs[i] = strings.TrimSpace(strings.Repeat(fmt.Sprintf("p%d ", i), size/4))
	}
	return strings.Join(paragraphs, "\n\n")
}

func TestTranslateEnglishIsNoOp(t *testing.T) {
	provider := &mockProvider{err: errors.New("provider must not be called")}
	translator := NewChunkingTranslator(provider)

	text := "Hello world.\n\nSecond paragraph."
	out, err := translator.Translate(context.Background(), text, models.LanguageEnglish)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out != text {
		t.Errorf("Expected unchanged text, got %q", out)
	}
	if len(provider.calls) != 0 {
		t.Errorf("Expected zero provider calls, got %d", len(provider.calls))
	}
}

func TestTranslateUnsupportedLanguage(t *testing.T) {
	translator := NewChunkingTranslator(&mockProvider{})

	_, err := translator.Translate(context.Background(), "Hello", models.SupportedLanguage("french"))
	if !errors.Is(err, ErrUnsupportedLanguage) {
		t.Errorf("Expected ErrUnsupportedLanguage, got %v", err)
	}
}

func TestTranslateSingleCallUnderLimit(t *testing.T) {
	provider := &mockProvider{}
	translator := NewChunkingTranslator(provider)

	text := repeatParagraphs(5, 100) // well under MaxChunkSize
	out, err := translator.Translate(context.Background(), text, models.LanguageUrdu)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(provider.calls) != 1 {
		t.Fatalf("Expected exactly 1 provider call, got %d", len(provider.calls))
	}
	if provider.calls[0] != text {
		t.Error("Expected the whole text in a single provider call")
	}
	if out != text {
		t.Errorf("Echo translation should round-trip, got %q", truncateText(out, 50))
	}
}

func TestTranslateChunksLongText(t *testing.T) {
	provider := &mockProvider{}
	translator := NewChunkingTranslator(provider)

	text := repeatParagraphs(12, 1000) // ~12000 chars forces several chunks
	out, err := translator.Translate(context.Background(), text, models.LanguageUrdu)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(provider.calls) < 2 {
		t.Fatalf("Expected multiple provider calls, got %d", len(provider.calls))
	}
	for i, call := range provider.calls {
		if len(call) > MaxChunkSize {
			t.Errorf("Chunk %d exceeds MaxChunkSize: %d chars", i, len(call))
		}
	}

	// With an echo translator, rejoining chunks reconstructs the input and
	// preserves every paragraph boundary.
	if out != text {
		t.Error("Chunked echo translation should reconstruct the original text")
	}
	inParas := strings.Split(text, "\n\n")
	outParas := strings.Split(out, "\n\n")
	if len(inParas) != len(outParas) {
		t.Errorf("Paragraph count changed: %d in, %d out", len(inParas), len(outParas))
	}
}

func TestTranslateOversizedParagraph(t *testing.T) {
	provider := &mockProvider{}
	translator := NewChunkingTranslator(provider)

	// One paragraph over the limit is sent as its own oversized chunk,
	// not split further.
	text := strings.Repeat("word ", (MaxChunkSize/5)+200)
	_, err := translator.Translate(context.Background(), text, models.LanguageUrdu)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(provider.calls) != 1 {
		t.Fatalf("Expected 1 oversized call, got %d", len(provider.calls))
	}
	if len(provider.calls[0]) <= MaxChunkSize {
		t.Error("Expected the oversized paragraph to pass through intact")
	}
}

func TestTranslateProviderFailureAborts(t *testing.T) {
	provider := &mockProvider{err: errors.New("boom")}
	translator := NewChunkingTranslator(provider)

	_, err := translator.Translate(context.Background(), "Hello world.", models.LanguageUrdu)
	if !errors.Is(err, ErrTranslationFailed) {
		t.Errorf("Expected ErrTranslationFailed, got %v", err)
	}
}

func TestSplitIntoChunks(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantChunks int
	}{
		{
			name:       "Short text is one chunk",
			text:       "Hello world.",
			wantChunks: 1,
		},
		{
			name:       "Exactly at limit is one chunk",
			text:       strings.Repeat("a", MaxChunkSize),
			wantChunks: 1,
		},
		{
			name:       "Two big paragraphs become two chunks",
			text:       strings.Repeat("a", 3000) + "\n\n" + strings.Repeat("b", 3000),
			wantChunks: 2,
		},
		{
			name:       "Small paragraphs pack together",
			text:       repeatParagraphs(20, 500),
			wantChunks: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := splitIntoChunks(tt.text)
			if len(chunks) != tt.wantChunks {
				t.Errorf("Expected %d chunks, got %d", tt.wantChunks, len(chunks))
			}
		})
	}
}
