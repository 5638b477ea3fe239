package services

import (
	"fmt"
	"time"

	"github.com/bookline/reader/backend/internal/models"
)

// PreferenceService records the target language a session last chose for a
// chapter. Writes are last-write-wins upserts; reads report absent as a
// normal non-error outcome.
type PreferenceService struct {
	backend PreferenceBackend
}

// NewPreferenceService creates a preference service over the given backend.
func NewPreferenceService(backend PreferenceBackend) *PreferenceService {
	return &PreferenceService{backend: backend}
}

// Set stores the session's preferred language for a chapter, overwriting
// any previous choice.
func (s *PreferenceService) Set(sessionID, chapterID string, language models.SupportedLanguage, now time.Time) (*models.TranslationPreference, error) {
	pref := models.TranslationPreference{
		SessionID:         sessionID,
		ChapterID:         chapterID,
		PreferredLanguage: language,
		UpdatedAt:         now,
	}
	if err := s.backend.Put(pref); err != nil {
		return nil, fmt.Errorf("preference put: %w", err)
	}

	stored, err := s.backend.Get(sessionID, chapterID)
	if err != nil || stored == nil {
		return &pref, nil
	}
	return stored, nil
}

// Get returns the session's preference for a chapter, or nil if none is set.
func (s *PreferenceService) Get(sessionID, chapterID string) (*models.TranslationPreference, error) {
	pref, err := s.backend.Get(sessionID, chapterID)
	if err != nil {
		return nil, fmt.Errorf("preference get: %w", err)
	}
	return pref, nil
}

// Count returns how many preferences are stored.
func (s *PreferenceService) Count() (int64, error) {
	return s.backend.Count()
}
