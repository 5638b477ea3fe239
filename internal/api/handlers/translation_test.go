package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/bookline/reader/backend/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// echoProvider prefixes text with the target code so tests can tell a real
// translation from the no-op path.
type echoProvider struct {
	calls int
}

func (p *echoProvider) Translate(_ context.Context, text, targetCode string) (string, error) {
	p.calls++
	return "[" + targetCode + "] " + text, nil
}

func newTestRouter() (*gin.Engine, *echoProvider) {
	provider := &echoProvider{}
	cache := services.NewTranslationCacheService(services.NewMemoryTranslationStore())
	preferences := services.NewPreferenceService(services.NewMemoryPreferenceBackend())
	orchestrator := services.NewTranslationOrchestrator(cache, services.NewChunkingTranslator(provider))
	h := NewTranslationHandler(orchestrator, cache, preferences)

	r := gin.New()
	r.POST("/api/chapters/:chapterId/translate", h.TranslateChapter)
	r.PUT("/api/translation/preferences/:chapterId", h.SetPreference)
	r.GET("/api/translation/preferences/:chapterId", h.GetPreference)
	r.GET("/api/admin/translation-cache/stats", h.GetCacheStats)
	return r, provider
}

func doJSON(t *testing.T, r *gin.Engine, method, url string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTranslateChapterEndpoint(t *testing.T) {
	router, provider := newTestRouter()

	body := map[string]string{"content": "Hello world.", "target_language": "urdu"}

	// First call: miss
	w := doJSON(t, router, http.MethodPost, "/api/chapters/ch1/translate", body, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d (body: %s)", w.Code, w.Body.String())
	}
	var first map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &first); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if first["cached"] != false {
		t.Error("First call should report cached=false")
	}
	if first["translated_content"] != "[ur] Hello world." {
		t.Errorf("Unexpected translation %q", first["translated_content"])
	}
	if first["chapter_id"] != "ch1" || first["language"] != "urdu" {
		t.Errorf("Unexpected identity fields: %v", first)
	}
	if latency, ok := first["latency_ms"].(float64); !ok || latency < 0 {
		t.Errorf("Expected non-negative latency_ms, got %v", first["latency_ms"])
	}

	// Second call: hit, same text, no extra provider call
	w = doJSON(t, router, http.MethodPost, "/api/chapters/ch1/translate", body, nil)
	var second map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &second); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if second["cached"] != true {
		t.Error("Second call should report cached=true")
	}
	if second["translated_content"] != first["translated_content"] {
		t.Error("Cached translation must match the original")
	}
	if provider.calls != 1 {
		t.Errorf("Expected 1 provider call, got %d", provider.calls)
	}
}

func TestTranslateChapterRejectsUnknownLanguage(t *testing.T) {
	router, _ := newTestRouter()

	body := map[string]string{"content": "Hello", "target_language": "french"}
	w := doJSON(t, router, http.MethodPost, "/api/chapters/ch1/translate", body, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
}

func TestTranslateChapterRequiresContent(t *testing.T) {
	router, _ := newTestRouter()

	body := map[string]string{"target_language": "urdu"}
	w := doJSON(t, router, http.MethodPost, "/api/chapters/ch1/translate", body, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing content, got %d", w.Code)
	}
}

func TestPreferenceEndpoints(t *testing.T) {
	router, _ := newTestRouter()

	// Set without a session header: one is generated and echoed back
	w := doJSON(t, router, http.MethodPut, "/api/translation/preferences/ch1",
		map[string]string{"language": "urdu"}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d (body: %s)", w.Code, w.Body.String())
	}
	sessionID := w.Header().Get("X-Session-ID")
	if sessionID == "" {
		t.Fatal("Expected a generated session ID in the response header")
	}

	// Overwrite with a new language for the same session
	w = doJSON(t, router, http.MethodPut, "/api/translation/preferences/ch1",
		map[string]string{"language": "english"}, map[string]string{"X-Session-ID": sessionID})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	// Get returns the last write
	w = doJSON(t, router, http.MethodGet, "/api/translation/preferences/ch1",
		nil, map[string]string{"X-Session-ID": sessionID})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var pref map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &pref); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if pref["preferred_language"] != "english" {
		t.Errorf("Expected last-write-wins english, got %v", pref["preferred_language"])
	}

	// Get without a session header is a bad request
	w = doJSON(t, router, http.MethodGet, "/api/translation/preferences/ch1", nil, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 without session header, got %d", w.Code)
	}

	// Get for an unknown chapter is a miss
	w = doJSON(t, router, http.MethodGet, "/api/translation/preferences/ch2",
		nil, map[string]string{"X-Session-ID": sessionID})
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unset preference, got %d", w.Code)
	}

	// Invalid language is rejected
	w = doJSON(t, router, http.MethodPut, "/api/translation/preferences/ch1",
		map[string]string{"language": "klingon"}, map[string]string{"X-Session-ID": sessionID})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown language, got %d", w.Code)
	}
}

func TestCacheStatsEndpoint(t *testing.T) {
	router, _ := newTestRouter()

	// Seed the cache through the public endpoint
	for _, chapter := range []string{"ch1", "ch2"} {
		body := map[string]string{"content": "Text for " + chapter, "target_language": "urdu"}
		if w := doJSON(t, router, http.MethodPost, "/api/chapters/"+chapter+"/translate", body, nil); w.Code != http.StatusOK {
			t.Fatalf("Seed translate failed: %d", w.Code)
		}
	}
	if w := doJSON(t, router, http.MethodPut, "/api/translation/preferences/ch1",
		map[string]string{"language": "urdu"}, nil); w.Code != http.StatusOK {
		t.Fatalf("Seed preference failed: %d", w.Code)
	}

	w := doJSON(t, router, http.MethodGet, "/api/admin/translation-cache/stats", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var stats struct {
		CachedTranslations int64            `json:"cached_translations"`
		PerLanguage        map[string]int64 `json:"per_language"`
		UserPreferences    int64            `json:"user_preferences"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("Failed to parse stats: %v", err)
	}
	if stats.CachedTranslations != 2 {
		t.Errorf("Expected 2 cached translations, got %d", stats.CachedTranslations)
	}
	if stats.PerLanguage["urdu"] != 2 {
		t.Errorf("Expected 2 urdu entries, got %d", stats.PerLanguage["urdu"])
	}
	if stats.UserPreferences != 1 {
		t.Errorf("Expected 1 preference, got %d", stats.UserPreferences)
	}
}
