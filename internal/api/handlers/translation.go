package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bookline/reader/backend/internal/metrics"
	"github.com/bookline/reader/backend/internal/models"
	"github.com/bookline/reader/backend/internal/services"
)

// sessionHeader carries the reader's session ID. When absent on a
// preference write, a new session ID is generated and echoed back.
const sessionHeader = "X-Session-ID"

type TranslationHandler struct {
	orchestrator *services.TranslationOrchestrator
	cache        *services.TranslationCacheService
	preferences  *services.PreferenceService
}

func NewTranslationHandler(
	orchestrator *services.TranslationOrchestrator,
	cache *services.TranslationCacheService,
	preferences *services.PreferenceService,
) *TranslationHandler {
	return &TranslationHandler{
		orchestrator: orchestrator,
		cache:        cache,
		preferences:  preferences,
	}
}

type translateChapterRequest struct {
	Content        string `json:"content" binding:"required"`
	TargetLanguage string `json:"target_language" binding:"required"`
}

// TranslateChapter translates a chapter's content into the requested language
// POST /api/chapters/:chapterId/translate
func (h *TranslationHandler) TranslateChapter(c *gin.Context) {
	chapterID := c.Param("chapterId")
	if chapterID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "chapter id is required"})
		return
	}

	var req translateChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	language := models.SupportedLanguage(req.TargetLanguage)
	if !language.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported target language: " + req.TargetLanguage})
		return
	}

	result, latencyMs, err := h.orchestrator.TranslateChapter(c.Request.Context(), chapterID, req.Content, language)
	if err != nil {
		if errors.Is(err, services.ErrUnsupportedLanguage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"chapter_id":         result.ChapterID,
		"language":           result.Language,
		"translated_content": result.TranslatedContent,
		"cached":             result.Cached,
		"translated_at":      result.TranslatedAt,
		"latency_ms":         latencyMs,
	})
}

type setPreferenceRequest struct {
	Language string `json:"language" binding:"required"`
}

// SetPreference records the session's preferred language for a chapter
// PUT /api/translation/preferences/:chapterId
func (h *TranslationHandler) SetPreference(c *gin.Context) {
	chapterID := c.Param("chapterId")
	if chapterID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "chapter id is required"})
		return
	}

	var req setPreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	language := models.SupportedLanguage(req.Language)
	if !language.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported language: " + req.Language})
		return
	}

	sessionID := c.GetHeader(sessionHeader)
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	pref, err := h.preferences.Set(sessionID, chapterID, language, time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header(sessionHeader, sessionID)
	c.JSON(http.StatusOK, pref)
}

// GetPreference returns the session's preferred language for a chapter
// GET /api/translation/preferences/:chapterId
func (h *TranslationHandler) GetPreference(c *gin.Context) {
	chapterID := c.Param("chapterId")
	sessionID := c.GetHeader(sessionHeader)
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": sessionHeader + " header is required"})
		return
	}

	pref, err := h.preferences.Get(sessionID, chapterID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if pref == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no preference set for this chapter"})
		return
	}

	c.JSON(http.StatusOK, pref)
}

// GetCacheStats returns translation cache statistics
// GET /api/admin/translation-cache/stats
func (h *TranslationHandler) GetCacheStats(c *gin.Context) {
	stats, err := h.cache.Stats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if count, err := h.preferences.Count(); err == nil {
		stats.UserPreferences = count
	}

	metrics.UpdateCacheMetrics(stats)

	c.JSON(http.StatusOK, stats)
}
