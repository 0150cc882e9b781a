package testutil

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// ErrUnknownWord is returned by RecordingTranslator for words it has no
// entry or error for
var ErrUnknownWord = errors.New("unknown word")

// RecordingTranslator answers lookups from a dictionary and records every
// call in order
type RecordingTranslator struct {
	Dictionary map[string]string
	Errors     map[string]error

	mu    sync.Mutex
	calls []string
}

// NewRecordingTranslator creates a translator backed by dictionary
func NewRecordingTranslator(dictionary map[string]string) *RecordingTranslator {
	return &RecordingTranslator{Dictionary: dictionary, Errors: make(map[string]error)}
}

// Translate implements the translator interface
func (r *RecordingTranslator) Translate(ctx context.Context, word string) (string, error) {
	r.mu.Lock()
	r.calls = append(r.calls, word)
	r.mu.Unlock()

	if err, ok := r.Errors[word]; ok {
		return "", err
	}
	if t, ok := r.Dictionary[word]; ok {
		return t, nil
	}
	return "", ErrUnknownWord
}

// Calls returns the looked up words in call order
func (r *RecordingTranslator) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.calls))
	copy(out, r.calls)
	return out
}

// NewTranslateServer starts a fake translate_a/single endpoint answering
// from dictionary. Unknown words get a 500.
func NewTranslateServer(t *testing.T, dictionary map[string]string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/translate_a/single" {
			http.NotFound(w, r)
			return
		}
		word := r.URL.Query().Get("q")
		translated, ok := dictionary[word]
		if !ok {
			http.Error(w, "unknown word", http.StatusInternalServerError)
			return
		}

		body := []any{
			[]any{[]any{translated, word, nil, nil, 1}},
			nil,
			r.URL.Query().Get("sl"),
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(server.Close)
	return server
}
