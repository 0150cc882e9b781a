package wordbank

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// DefaultSource is the word bank file looked up when nothing is configured.
const DefaultSource = "word_bank.json"

// maxBankBytes bounds how much of a remote document is read.
const maxBankBytes = 8 << 20

// Loader reads a word bank from a local file or an HTTP(S) URL.
type Loader struct {
	source string
	client *http.Client
}

// Option configures a Loader
type Option func(*Loader)

// WithHTTPClient sets the client used for remote sources
func WithHTTPClient(client *http.Client) Option {
	return func(l *Loader) {
		if client != nil {
			l.client = client
		}
	}
}

// NewLoader creates a loader for source. An empty source means DefaultSource.
func NewLoader(source string, opts ...Option) *Loader {
	if strings.TrimSpace(source) == "" {
		source = DefaultSource
	}
	l := &Loader{
		source: source,
		client: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Source returns the configured file path or URL
func (l *Loader) Source() string {
	return l.source
}

// Load fetches and validates the word bank. Every failure is a *LoadError;
// there is no retry.
func (l *Loader) Load(ctx context.Context) (*Bank, error) {
	raw, err := l.read(ctx)
	if err != nil {
		return nil, &LoadError{Source: l.source, Err: err}
	}

	words, err := Parse(raw)
	if err != nil {
		return nil, &LoadError{Source: l.source, Err: err}
	}

	return &Bank{Source: l.source, Words: words}, nil
}

func (l *Loader) read(ctx context.Context) ([]byte, error) {
	if isRemote(l.source) {
		return l.fetch(ctx)
	}

	data, err := os.ReadFile(l.source)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}

func (l *Loader) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.source, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBankBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return data, nil
}

func isRemote(source string) bool {
	s := strings.ToLower(source)
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
