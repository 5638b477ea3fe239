package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/bookline/reader/backend/internal/metrics"
)

const (
	// Google Cloud Translation API v2 endpoint (API-key auth)
	translationAPIURL = "https://translation.googleapis.com/language/translate/v2"

	// Default timeout for a single provider call
	translationTimeout = 30 * time.Second

	// Default client-side provider rate limit (requests per second)
	defaultProviderRateLimit = 5
)

// TranslationProvider is the opaque provider boundary: translate text into
// the given provider language code. Implementations may fail or rate-limit.
type TranslationProvider interface {
	Translate(ctx context.Context, text, targetCode string) (string, error)
}

// GoogleTranslateProvider calls the Google Translate REST API.
type GoogleTranslateProvider struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
	limiter    *rate.Limiter
	enabled    bool
}

// translateRequest is the request body for the translate endpoint
type translateRequest struct {
	Q      []string `json:"q"`
	Source string   `json:"source"`
	Target string   `json:"target"`
	Format string   `json:"format"`
}

// translateResponse is the response from the translate endpoint
type translateResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
	} `json:"data"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// NewGoogleTranslateProvider creates a provider client.
// It auto-enables if TRANSLATION_API_KEY is set. The provider enforces a
// request rate limit server-side, so we also throttle client-side
// (TRANSLATION_RATE_LIMIT requests per second, default 5).
func NewGoogleTranslateProvider() *GoogleTranslateProvider {
	rps := defaultProviderRateLimit
	if v := os.Getenv("TRANSLATION_RATE_LIMIT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			rps = parsed
		}
	}

	p := &GoogleTranslateProvider{
		apiKey:     os.Getenv("TRANSLATION_API_KEY"),
		endpoint:   translationAPIURL,
		httpClient: &http.Client{Timeout: translationTimeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
	}

	if p.apiKey == "" {
		infoLog("Provider: TRANSLATION_API_KEY not set, translation API disabled")
		return p
	}

	p.enabled = true
	infoLog("Provider: enabled, rate limit %d req/s", rps)
	return p
}

// IsEnabled returns whether the provider is available
func (p *GoogleTranslateProvider) IsEnabled() bool {
	return p.enabled
}

// Translate translates English text into the target provider language code.
func (p *GoogleTranslateProvider) Translate(ctx context.Context, text, targetCode string) (string, error) {
	if !p.enabled {
		return "", fmt.Errorf("translation provider not enabled")
	}

	if text == "" {
		return "", nil
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	startTime := time.Now()

	reqBody := translateRequest{
		Q:      []string{text},
		Source: "en",
		Target: targetCode,
		Format: "text",
	}
	reqJSON, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := p.endpoint + "?key=" + p.apiKey
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(reqJSON))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		metrics.TranslationErrorsTotal.WithLabelValues("network").Inc()
		return "", fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	metrics.TranslationAPILatency.Observe(time.Since(startTime).Seconds())

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.TranslationErrorsTotal.WithLabelValues("network").Inc()
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.TranslationErrorsTotal.WithLabelValues("api").Inc()
		return "", fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var result translateResponse
	if err := json.Unmarshal(body, &result); err != nil {
		metrics.TranslationErrorsTotal.WithLabelValues("api").Inc()
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if result.Error != nil {
		metrics.TranslationErrorsTotal.WithLabelValues("api").Inc()
		return "", fmt.Errorf("API error %d: %s", result.Error.Code, result.Error.Message)
	}

	if len(result.Data.Translations) == 0 {
		metrics.TranslationErrorsTotal.WithLabelValues("api").Inc()
		return "", fmt.Errorf("no translations returned")
	}

	return result.Data.Translations[0].TranslatedText, nil
}
