package models

import "time"

// SupportedLanguage is the closed set of target languages the reader can
// request for a chapter.
type SupportedLanguage string

const (
	// LanguageEnglish is the source language of all chapters; translating
	// to it is always a no-op.
	LanguageEnglish SupportedLanguage = "english"
	LanguageUrdu    SupportedLanguage = "urdu"
)

// supportedLanguages is the authoritative membership set for the enum.
var supportedLanguages = map[SupportedLanguage]bool{
	LanguageEnglish: true,
	LanguageUrdu:    true,
}

// Valid reports whether l is a member of the supported-language set.
func (l SupportedLanguage) Valid() bool {
	return supportedLanguages[l]
}

// ChapterTranslation stores a cached translation of one chapter into one
// target language. SourceFingerprint always reflects the exact source text
// that produced TranslatedContent; when the chapter text changes the whole
// record is replaced, never partially mutated.
type ChapterTranslation struct {
	ID                uint              `gorm:"primaryKey" json:"id"`
	ChapterID         string            `gorm:"uniqueIndex:idx_translations_chapter_language;not null;size:100" json:"chapter_id"`
	Language          SupportedLanguage `gorm:"uniqueIndex:idx_translations_chapter_language;not null;size:20" json:"language"`
	SourceFingerprint string            `gorm:"not null;size:64" json:"source_fingerprint"` // SHA256 hex of the source text
	TranslatedContent string            `gorm:"not null" json:"translated_content"`
	CreatedAt         time.Time         `json:"created_at"` // first translation of this (chapter, language)
	UpdatedAt         time.Time         `json:"updated_at"` // last refresh
}

func (ChapterTranslation) TableName() string {
	return "chapter_translations"
}

// TranslationPreference records the language a session last chose for a
// chapter. Last write wins; no history is retained.
type TranslationPreference struct {
	ID                uint              `gorm:"primaryKey" json:"id"`
	SessionID         string            `gorm:"uniqueIndex:idx_preferences_session_chapter;not null;size:100" json:"session_id"`
	ChapterID         string            `gorm:"uniqueIndex:idx_preferences_session_chapter;not null;size:100" json:"chapter_id"`
	PreferredLanguage SupportedLanguage `gorm:"not null;size:20" json:"preferred_language"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

func (TranslationPreference) TableName() string {
	return "translation_preferences"
}

// TranslationResponse is what a translate-chapter call returns to the API
// layer.
type TranslationResponse struct {
	ChapterID         string            `json:"chapter_id"`
	Language          SupportedLanguage `json:"language"`
	TranslatedContent string            `json:"translated_content"`
	Cached            bool              `json:"cached"`
	TranslatedAt      time.Time         `json:"translated_at"`
}

// CacheStats is a read-only aggregate view of the translation cache and
// preference store.
type CacheStats struct {
	CachedTranslations int64                       `json:"cached_translations"`
	PerLanguage        map[SupportedLanguage]int64 `json:"per_language"`
	UserPreferences    int64                       `json:"user_preferences"`
}
