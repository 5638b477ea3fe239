package metrics

import "github.com/bookline/reader/backend/internal/models"

// UpdateCacheMetrics publishes translation-cache gauges from a stats
// snapshot. Call this after cache changes or periodically.
func UpdateCacheMetrics(stats models.CacheStats) {
	TranslationCacheEntries.Set(float64(stats.CachedTranslations))
	// Reset so a language that dropped to zero doesn't keep its last value.
	TranslationCacheEntriesByLanguage.Reset()
	for lang, count := range stats.PerLanguage {
		TranslationCacheEntriesByLanguage.WithLabelValues(string(lang)).Set(float64(count))
	}
	PreferenceEntries.Set(float64(stats.UserPreferences))
}
