package services

import (
	"sync"

	"github.com/bookline/reader/backend/internal/models"
)

// MemoryTranslationStore keeps cached translations in a mutex-guarded map.
// This is the default backend for a single-process deployment; entries live
// until process restart or fingerprint eviction.
type MemoryTranslationStore struct {
	mu      sync.RWMutex
	entries map[translationKey]models.ChapterTranslation
	nextID  uint
}

type translationKey struct {
	chapterID string
	language  models.SupportedLanguage
}

// NewMemoryTranslationStore creates an empty in-memory translation store.
func NewMemoryTranslationStore() *MemoryTranslationStore {
	return &MemoryTranslationStore{
		entries: make(map[translationKey]models.ChapterTranslation),
	}
}

func (s *MemoryTranslationStore) Get(chapterID string, language models.SupportedLanguage) (*models.ChapterTranslation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[translationKey{chapterID, language}]
	if !ok {
		return nil, nil
	}
	// Return a copy so callers cannot mutate stored state.
	return &entry, nil
}

func (s *MemoryTranslationStore) Put(entry models.ChapterTranslation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := translationKey{entry.ChapterID, entry.Language}
	if existing, ok := s.entries[key]; ok {
		entry.ID = existing.ID
	} else {
		s.nextID++
		entry.ID = s.nextID
	}
	s.entries[key] = entry
	return nil
}

func (s *MemoryTranslationStore) Delete(chapterID string, language models.SupportedLanguage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, translationKey{chapterID, language})
	return nil
}

func (s *MemoryTranslationStore) Count() (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.entries)), nil
}

func (s *MemoryTranslationStore) CountByLanguage() (map[models.SupportedLanguage]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[models.SupportedLanguage]int64)
	for key := range s.entries {
		counts[key.language]++
	}
	return counts, nil
}

// MemoryPreferenceBackend keeps language preferences in a mutex-guarded map.
type MemoryPreferenceBackend struct {
	mu     sync.RWMutex
	prefs  map[preferenceKey]models.TranslationPreference
	nextID uint
}

type preferenceKey struct {
	sessionID string
	chapterID string
}

// NewMemoryPreferenceBackend creates an empty in-memory preference backend.
func NewMemoryPreferenceBackend() *MemoryPreferenceBackend {
	return &MemoryPreferenceBackend{
		prefs: make(map[preferenceKey]models.TranslationPreference),
	}
}

func (s *MemoryPreferenceBackend) Get(sessionID, chapterID string) (*models.TranslationPreference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pref, ok := s.prefs[preferenceKey{sessionID, chapterID}]
	if !ok {
		return nil, nil
	}
	return &pref, nil
}

func (s *MemoryPreferenceBackend) Put(pref models.TranslationPreference) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := preferenceKey{pref.SessionID, pref.ChapterID}
	if existing, ok := s.prefs[key]; ok {
		pref.ID = existing.ID
	} else {
		s.nextID++
		pref.ID = s.nextID
	}
	s.prefs[key] = pref
	return nil
}

func (s *MemoryPreferenceBackend) Count() (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.prefs)), nil
}
