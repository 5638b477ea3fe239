package services

import "errors"

var (
	// ErrUnsupportedLanguage means the target language has no provider
	// language code. The call is fatal and should not be retried.
	ErrUnsupportedLanguage = errors.New("unsupported target language")

	// ErrTranslationFailed means a provider call failed. Nothing is cached
	// and the caller may re-invoke; translate_chapter is idempotent on
	// cache state.
	ErrTranslationFailed = errors.New("translation failed")
)
