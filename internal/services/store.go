package services

import "github.com/bookline/reader/backend/internal/models"

// TranslationStore is the key-value backend for cached translations, keyed
// by (chapter, language). A production deployment can swap the in-memory
// backend for a persistent one without touching the cache protocol.
type TranslationStore interface {
	// Get returns the entry for the key, or nil if absent.
	Get(chapterID string, language models.SupportedLanguage) (*models.ChapterTranslation, error)
	// Put overwrites any existing entry for the key.
	Put(entry models.ChapterTranslation) error
	// Delete removes the entry for the key; deleting an absent key is a no-op.
	Delete(chapterID string, language models.SupportedLanguage) error
	// Count returns the number of stored entries.
	Count() (int64, error)
	// CountByLanguage returns entry counts grouped by target language.
	CountByLanguage() (map[models.SupportedLanguage]int64, error)
}

// PreferenceBackend is the key-value backend for language preferences,
// keyed by (session, chapter).
type PreferenceBackend interface {
	// Get returns the preference for the key, or nil if absent.
	Get(sessionID, chapterID string) (*models.TranslationPreference, error)
	// Put overwrites any existing preference for the key.
	Put(pref models.TranslationPreference) error
	// Count returns the number of stored preferences.
	Count() (int64, error)
}
