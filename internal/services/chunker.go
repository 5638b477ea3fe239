package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/bookline/reader/backend/internal/metrics"
	"github.com/bookline/reader/backend/internal/models"
)

const (
	// MaxChunkSize is the largest text we send in one provider call.
	// The provider rejects requests over ~5000 characters; 4500 leaves
	// headroom for the paragraph separators we carry along.
	MaxChunkSize = 4500

	// paragraphSeparator splits chapter text into paragraphs and rejoins
	// translated chunks.
	paragraphSeparator = "\n\n"
)

// providerLanguageCodes maps each supported language to its provider
// language code. A language missing here cannot be translated.
var providerLanguageCodes = map[models.SupportedLanguage]string{
	models.LanguageEnglish: "en",
	models.LanguageUrdu:    "ur",
}

// ChunkingTranslator translates chapter text through a provider, splitting
// text too large for a single call into paragraph-aligned chunks.
type ChunkingTranslator struct {
	provider TranslationProvider
}

// NewChunkingTranslator creates a chunking translator over the given provider.
func NewChunkingTranslator(provider TranslationProvider) *ChunkingTranslator {
	return &ChunkingTranslator{provider: provider}
}

// Translate translates text into the target language.
// English is the source language, so translating to it returns the text
// unchanged without a provider call. Any provider failure aborts the whole
// operation; no partial result is returned.
func (t *ChunkingTranslator) Translate(ctx context.Context, text string, target models.SupportedLanguage) (string, error) {
	if target == models.LanguageEnglish {
		return text, nil
	}

	langCode, ok := providerLanguageCodes[target]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, target)
	}

	chunks := splitIntoChunks(text)
	metrics.TranslationChunksPerRequest.Observe(float64(len(chunks)))
	debugLog("Translating %d chars in %d chunk(s) to %q", len(text), len(chunks), langCode)

	translated := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		out, err := t.provider.Translate(ctx, chunk, langCode)
		if err != nil {
			infoLog("Provider error on chunk %d/%d: %v", i+1, len(chunks), err)
			return "", fmt.Errorf("%w: chunk %d/%d: %v", ErrTranslationFailed, i+1, len(chunks), err)
		}
		translated = append(translated, out)
	}

	return strings.Join(translated, paragraphSeparator), nil
}

// splitIntoChunks splits text on blank-line paragraph boundaries and greedily
// packs paragraphs into chunks of at most MaxChunkSize characters. A single
// paragraph longer than MaxChunkSize becomes its own oversized chunk; the
// provider may reject it, which surfaces as a translation failure rather
// than being silently handled.
func splitIntoChunks(text string) []string {
	if len(text) <= MaxChunkSize {
		return []string{text}
	}

	paragraphs := strings.Split(text, paragraphSeparator)

	var chunks []string
	var current strings.Builder
	for _, para := range paragraphs {
		if current.Len()+len(para)+len(paragraphSeparator) <= MaxChunkSize {
			current.WriteString(para)
			current.WriteString(paragraphSeparator)
			continue
		}
		if chunk := strings.TrimSpace(current.String()); chunk != "" {
			chunks = append(chunks, chunk)
		}
		current.Reset()
		current.WriteString(para)
		current.WriteString(paragraphSeparator)
	}
	if chunk := strings.TrimSpace(current.String()); chunk != "" {
		chunks = append(chunks, chunk)
	}

	return chunks
}

// truncateText truncates text to maxLen runes with ellipsis.
// Uses rune count instead of byte count to properly handle UTF-8 (e.g., Urdu).
func truncateText(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen]) + "..."
}
