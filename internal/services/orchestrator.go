package services

import (
	"context"
	"time"

	"github.com/bookline/reader/backend/internal/metrics"
	"github.com/bookline/reader/backend/internal/models"
)

// TranslationOrchestrator composes fingerprinting, the translation cache,
// and the chunking translator into the single translate-chapter operation.
type TranslationOrchestrator struct {
	cache      *TranslationCacheService
	translator *ChunkingTranslator
}

// NewTranslationOrchestrator creates the orchestrator.
func NewTranslationOrchestrator(cache *TranslationCacheService, translator *ChunkingTranslator) *TranslationOrchestrator {
	return &TranslationOrchestrator{
		cache:      cache,
		translator: translator,
	}
}

// TranslateChapter translates chapter content into the target language,
// serving from cache when a fingerprint-valid translation exists.
//
// Returns the response and the wall-clock latency in milliseconds. The
// latency is a diagnostic value only; it carries no correctness contract.
func (o *TranslationOrchestrator) TranslateChapter(ctx context.Context, chapterID, content string, target models.SupportedLanguage) (*models.TranslationResponse, int64, error) {
	startTime := time.Now()

	fingerprint := Fingerprint(content)

	if cached, found := o.cache.Get(chapterID, target, fingerprint); found {
		metrics.TranslationRequestsTotal.WithLabelValues("cache").Inc()
		return &models.TranslationResponse{
			ChapterID:         chapterID,
			Language:          target,
			TranslatedContent: cached.TranslatedContent,
			Cached:            true,
			TranslatedAt:      cached.UpdatedAt,
		}, elapsedMs(startTime), nil
	}

	translated, err := o.translator.Translate(ctx, content, target)
	if err != nil {
		metrics.TranslationRequestsTotal.WithLabelValues("failed").Inc()
		return nil, elapsedMs(startTime), err
	}
	if target == models.LanguageEnglish {
		metrics.TranslationRequestsTotal.WithLabelValues("identity").Inc()
	} else {
		metrics.TranslationRequestsTotal.WithLabelValues("provider").Inc()
	}

	now := time.Now().UTC()
	entry, err := o.cache.Put(chapterID, target, fingerprint, translated, now)
	if err != nil {
		return nil, elapsedMs(startTime), err
	}

	infoLog("Translated chapter %s to %s: %d chars, %q...",
		chapterID, target, len(translated), truncateText(translated, 30))

	return &models.TranslationResponse{
		ChapterID:         chapterID,
		Language:          target,
		TranslatedContent: entry.TranslatedContent,
		Cached:            false,
		TranslatedAt:      entry.UpdatedAt,
	}, elapsedMs(startTime), nil
}

func elapsedMs(start time.Time) int64 {
	return time.Since(start).Milliseconds()
}
