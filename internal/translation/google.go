package translation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// DefaultGoogleEndpoint is the public endpoint used by the web quiz
const DefaultGoogleEndpoint = "https://translate.googleapis.com"

// responseSchema accepts any array whose first element's first element's
// first element is a string. Everything after that is ignored.
var responseSchema = map[string]any{
	"type":     "array",
	"minItems": 1,
	"prefixItems": []any{
		map[string]any{
			"type":     "array",
			"minItems": 1,
			"prefixItems": []any{
				map[string]any{
					"type":     "array",
					"minItems": 1,
					"prefixItems": []any{
						map[string]any{"type": "string"},
					},
				},
			},
		},
	},
}

var compiledResponseSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	const id = "schema://vocabquiz/gtx_response.json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(id, responseSchema); err != nil {
		return nil, err
	}
	return c.Compile(id)
})

// GoogleTranslator queries the translate_a/single endpoint
type GoogleTranslator struct {
	endpoint   string
	sourceLang string
	targetLang string
	client     *http.Client
}

// NewGoogleTranslator creates a translator for the given language pair.
// An empty endpoint means DefaultGoogleEndpoint and a nil client gets a
// 15 second timeout.
func NewGoogleTranslator(endpoint, sourceLang, targetLang string, client *http.Client) *GoogleTranslator {
	if endpoint == "" {
		endpoint = DefaultGoogleEndpoint
	}
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &GoogleTranslator{
		endpoint:   strings.TrimRight(endpoint, "/"),
		sourceLang: sourceLang,
		targetLang: targetLang,
		client:     client,
	}
}

// requestURL builds the lookup URL for text
func (g *GoogleTranslator) requestURL(text string) string {
	q := url.Values{}
	q.Set("client", "gtx")
	q.Set("sl", g.sourceLang)
	q.Set("tl", g.targetLang)
	q.Set("dt", "t")
	q.Set("q", text)
	return g.endpoint + "/translate_a/single?" + q.Encode()
}

// Translate looks up text. Transport failures, non-2xx statuses and bodies
// that are not JSON are returned as plain errors; a JSON body of the wrong
// shape or with an empty translation yields ErrNoResult.
func (g *GoogleTranslator) Translate(ctx context.Context, text string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.requestURL(text), nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("translation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("translation request failed: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	return ParseGoogleResponse(body)
}

// ParseGoogleResponse extracts the translation from a translate_a/single
// response body.
func ParseGoogleResponse(body []byte) (string, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("invalid JSON response: %w", err)
	}

	schema, err := compiledResponseSchema()
	if err != nil {
		return "", fmt.Errorf("compile response schema: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return "", fmt.Errorf("%w: unexpected response shape: %v", ErrNoResult, err)
	}

	// The schema guarantees each level below is a non-empty array.
	var top, segments, segment []json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoResult, err)
	}
	if err := json.Unmarshal(top[0], &segments); err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoResult, err)
	}
	if err := json.Unmarshal(segments[0], &segment); err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoResult, err)
	}
	return firstString(segment[0])
}

func firstString(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoResult, err)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrNoResult
	}
	return s, nil
}
