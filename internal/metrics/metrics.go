package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts HTTP requests by method, route pattern, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reader_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration tracks HTTP request latency by method and route pattern.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "reader_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	// TranslationCacheHits counts fingerprint-valid cache lookups.
	TranslationCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reader_translation_cache_hits_total",
		Help: "Translation cache hits",
	})

	// TranslationCacheMisses counts lookups that found no valid entry,
	// including entries evicted on fingerprint mismatch.
	TranslationCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reader_translation_cache_misses_total",
		Help: "Translation cache misses",
	})

	// TranslationRequestsTotal counts chapter translations by how they were
	// served: "cache", "provider", or "identity" (English no-op).
	TranslationRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reader_translation_requests_total",
		Help: "Chapter translation requests by source",
	}, []string{"source"})

	// TranslationErrorsTotal counts failed translations by reason.
	TranslationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reader_translation_errors_total",
		Help: "Translation errors by reason",
	}, []string{"reason"})

	// TranslationAPILatency tracks per-call provider latency.
	TranslationAPILatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "reader_translation_api_latency_seconds",
		Help:    "Translation provider call latency",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	})

	// TranslationChunksPerRequest tracks how many provider calls a single
	// chapter translation needed.
	TranslationChunksPerRequest = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "reader_translation_chunks_per_request",
		Help:    "Provider calls per chapter translation",
		Buckets: []float64{1, 2, 3, 5, 8, 13, 21, 34},
	})

	// TranslationCacheEntries is the current number of cached translations.
	TranslationCacheEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "reader_translation_cache_entries",
		Help: "Cached translations currently stored",
	})

	// TranslationCacheEntriesByLanguage breaks the cache size down by target language.
	TranslationCacheEntriesByLanguage = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "reader_translation_cache_entries_by_language",
		Help: "Cached translations by target language",
	}, []string{"language"})

	// PreferenceEntries is the current number of stored language preferences.
	PreferenceEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "reader_translation_preference_entries",
		Help: "Stored language preferences",
	})
)
