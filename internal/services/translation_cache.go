package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/bookline/reader/backend/internal/metrics"
	"github.com/bookline/reader/backend/internal/models"
)

// TranslationCacheService maps (chapter, language) to the last translation
// and the fingerprint of the source text that produced it. A lookup with a
// fingerprint that no longer matches evicts the stale entry.
type TranslationCacheService struct {
	store TranslationStore
	mu    sync.Mutex // serializes get+evict and put (read-modify-write per key)
}

// NewTranslationCacheService creates a cache service over the given store.
func NewTranslationCacheService(store TranslationStore) *TranslationCacheService {
	return &TranslationCacheService{store: store}
}

// Get retrieves the cached translation for (chapterID, language).
//
// If expectedFingerprint is non-empty and differs from the stored
// fingerprint, the source content has changed: the stale entry is deleted
// and the call reports a miss. An empty expectedFingerprint skips
// validation and returns whatever entry exists.
func (s *TranslationCacheService) Get(chapterID string, language models.SupportedLanguage, expectedFingerprint string) (*models.ChapterTranslation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, err := s.store.Get(chapterID, language)
	if err != nil {
		infoLog("Cache lookup error for %s/%s: %v", chapterID, language, err)
		metrics.TranslationCacheMisses.Inc()
		return nil, false
	}
	if entry == nil {
		metrics.TranslationCacheMisses.Inc()
		return nil, false
	}

	if expectedFingerprint != "" && entry.SourceFingerprint != expectedFingerprint {
		// Content changed, invalidate the stale translation
		if err := s.store.Delete(chapterID, language); err != nil {
			infoLog("Cache evict error for %s/%s: %v", chapterID, language, err)
		}
		debugLog("Cache invalidated for %s/%s: fingerprint %s != %s",
			chapterID, language, truncateText(entry.SourceFingerprint, 16), truncateText(expectedFingerprint, 16))
		metrics.TranslationCacheMisses.Inc()
		return nil, false
	}

	metrics.TranslationCacheHits.Inc()
	debugLog("Cache hit for %s/%s", chapterID, language)
	return entry, true
}

// Put stores a translation, overwriting any prior entry for the key.
// The first write of a key sets CreatedAt; refreshes keep the original
// CreatedAt and bump only UpdatedAt.
func (s *TranslationCacheService) Put(chapterID string, language models.SupportedLanguage, fingerprint, translatedContent string, now time.Time) (*models.ChapterTranslation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	createdAt := now
	existing, err := s.store.Get(chapterID, language)
	if err != nil {
		return nil, fmt.Errorf("cache lookup before put: %w", err)
	}
	if existing != nil {
		createdAt = existing.CreatedAt
	}

	entry := models.ChapterTranslation{
		ChapterID:         chapterID,
		Language:          language,
		SourceFingerprint: fingerprint,
		TranslatedContent: translatedContent,
		CreatedAt:         createdAt,
		UpdatedAt:         now,
	}
	if err := s.store.Put(entry); err != nil {
		return nil, fmt.Errorf("cache put: %w", err)
	}

	stored, err := s.store.Get(chapterID, language)
	if err != nil || stored == nil {
		// The write succeeded; fall back to the value we just built.
		return &entry, nil
	}
	return stored, nil
}

// Stats returns a read-only aggregate view of the cache. It never mutates
// cache state.
func (s *TranslationCacheService) Stats() (models.CacheStats, error) {
	count, err := s.store.Count()
	if err != nil {
		return models.CacheStats{}, fmt.Errorf("cache stats: %w", err)
	}

	perLanguage, err := s.store.CountByLanguage()
	if err != nil {
		return models.CacheStats{}, fmt.Errorf("cache stats: %w", err)
	}

	return models.CacheStats{
		CachedTranslations: count,
		PerLanguage:        perLanguage,
	}, nil
}
