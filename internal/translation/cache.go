package translation

import (
	"context"
	"sync"
)

// TranslationCache stores translations in memory
type TranslationCache struct {
	mu           sync.RWMutex
	translations map[string]string
}

// NewTranslationCache creates a new translation cache
func NewTranslationCache() *TranslationCache {
	return &TranslationCache{
		translations: make(map[string]string),
	}
}

// Add adds a translation to the cache
func (tc *TranslationCache) Add(word, translation string) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.translations[word] = translation
}

// Get retrieves a translation from the cache
func (tc *TranslationCache) Get(word string) (string, bool) {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	translation, ok := tc.translations[word]
	return translation, ok
}

// GetAll returns all cached translations
func (tc *TranslationCache) GetAll() map[string]string {
	tc.mu.RLock()
	defer tc.mu.RUnlock()

	// Return a copy to prevent external modification
	result := make(map[string]string, len(tc.translations))
	for k, v := range tc.translations {
		result[k] = v
	}
	return result
}

// CachedTranslator memoises successful lookups of the wrapped translator.
// Failures are never cached so the next session retries them.
type CachedTranslator struct {
	next  Translator
	cache *TranslationCache
}

// NewCachedTranslator wraps next with a fresh cache
func NewCachedTranslator(next Translator) *CachedTranslator {
	return &CachedTranslator{next: next, cache: NewTranslationCache()}
}

// Translate returns the cached translation or asks the wrapped translator
func (c *CachedTranslator) Translate(ctx context.Context, text string) (string, error) {
	if t, ok := c.cache.Get(text); ok {
		return t, nil
	}
	t, err := c.next.Translate(ctx, text)
	if err != nil {
		return "", err
	}
	c.cache.Add(text, t)
	return t, nil
}

// Cache exposes the underlying cache
func (c *CachedTranslator) Cache() *TranslationCache {
	return c.cache
}
