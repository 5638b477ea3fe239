package services

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bookline/reader/backend/internal/models"
)

// GormTranslationStore persists cached translations in the database. It
// implements the same TranslationStore contract as the in-memory backend,
// so translations survive process restarts.
type GormTranslationStore struct {
	db *gorm.DB
}

// NewGormTranslationStore creates a database-backed translation store.
func NewGormTranslationStore(db *gorm.DB) *GormTranslationStore {
	return &GormTranslationStore{db: db}
}

func (s *GormTranslationStore) Get(chapterID string, language models.SupportedLanguage) (*models.ChapterTranslation, error) {
	var entry models.ChapterTranslation
	err := s.db.Where("chapter_id = ? AND language = ?", chapterID, language).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (s *GormTranslationStore) Put(entry models.ChapterTranslation) error {
	// Upsert on the (chapter_id, language) key. created_at is deliberately
	// excluded from the update list: a refresh keeps the first-creation time.
	return s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "chapter_id"}, {Name: "language"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"source_fingerprint", "translated_content", "updated_at",
		}),
	}).Create(&entry).Error
}

func (s *GormTranslationStore) Delete(chapterID string, language models.SupportedLanguage) error {
	return s.db.
		Where("chapter_id = ? AND language = ?", chapterID, language).
		Delete(&models.ChapterTranslation{}).Error
}

func (s *GormTranslationStore) Count() (int64, error) {
	var count int64
	err := s.db.Model(&models.ChapterTranslation{}).Count(&count).Error
	return count, err
}

func (s *GormTranslationStore) CountByLanguage() (map[models.SupportedLanguage]int64, error) {
	type langCount struct {
		Language models.SupportedLanguage
		Count    int64
	}
	var rows []langCount
	err := s.db.Model(&models.ChapterTranslation{}).
		Select("language, COUNT(*) as count").
		Group("language").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.SupportedLanguage]int64, len(rows))
	for _, row := range rows {
		counts[row.Language] = row.Count
	}
	return counts, nil
}

// GormPreferenceBackend persists language preferences in the database.
type GormPreferenceBackend struct {
	db *gorm.DB
}

// NewGormPreferenceBackend creates a database-backed preference backend.
func NewGormPreferenceBackend(db *gorm.DB) *GormPreferenceBackend {
	return &GormPreferenceBackend{db: db}
}

func (s *GormPreferenceBackend) Get(sessionID, chapterID string) (*models.TranslationPreference, error) {
	var pref models.TranslationPreference
	err := s.db.Where("session_id = ? AND chapter_id = ?", sessionID, chapterID).First(&pref).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pref, nil
}

func (s *GormPreferenceBackend) Put(pref models.TranslationPreference) error {
	return s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "session_id"}, {Name: "chapter_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"preferred_language", "updated_at",
		}),
	}).Create(&pref).Error
}

func (s *GormPreferenceBackend) Count() (int64, error) {
	var count int64
	err := s.db.Model(&models.TranslationPreference{}).Count(&count).Error
	return count, err
}
