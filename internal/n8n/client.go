package n8n

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/n8n-tools/n8n-export/internal/configs"
	kerrors "github.com/n8n-tools/n8n-export/internal/errors"
)

const (
	apiKeyHeader = "X-N8N-API-KEY"

	// How much of a 400 response body is included in the error message.
	badRequestBodyLimit = 500
)

// Client talks to a single n8n instance. It is safe for sequential use
// only, which is all the exporter needs.
type Client struct {
	baseURL *url.URL
	apiKey  string
	http    *http.Client
}

// NewClient builds a client from loaded settings.
func NewClient(settings *configs.Settings) (*Client, error) {
	base, err := url.Parse(settings.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", settings.BaseURL, err)
	}

	httpClient := &http.Client{Timeout: settings.Timeout}
	if !settings.VerifyTLS {
		// #nosec G402 -- VERIFY_TLS=false is an explicit operator opt-out.
		httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	return &Client{
		baseURL: base,
		apiKey:  settings.APIKey,
		http:    httpClient,
	}, nil
}

// BadRequestError carries the request context for a 400 response, with
// the body truncated to keep the message readable.
type BadRequestError struct {
	URL   string
	Query string
	Body  string
}

func (e *BadRequestError) Error() string {
	msg := "400 Bad Request at " + e.URL
	if e.Query != "" {
		msg += " params=" + e.Query
	}
	if e.Body != "" {
		msg += "\nResponse: " + e.Body
	}
	return msg
}

// Get issues an authenticated GET against path, resolved relative to the
// base URL, and returns the decoded JSON body. A 404 returns (nil, nil)
// so callers can fall back to the other API generation; every other
// failure is fatal to the run.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (any, error) {
	ref, err := url.Parse(strings.TrimPrefix(path, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid request path %q: %w", path, err)
	}
	u := c.baseURL.ResolveReference(ref)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", u, err)
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", u, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, kerrors.ErrUnauthorized
	case resp.StatusCode == http.StatusBadRequest:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, badRequestBodyLimit))
		return nil, &BadRequestError{URL: u.String(), Query: query.Encode(), Body: string(body)}
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("GET %s: unexpected status %s", u, resp.Status)
	}

	var payload any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding response from %s: %w", u, err)
	}
	return payload, nil
}

// getWithFallback tries the versioned endpoint first and falls back to
// the legacy one on 404. The query applies to the primary endpoint only;
// the legacy API predates the filters it expresses.
func (c *Client) getWithFallback(ctx context.Context, primary, legacy string, query url.Values) (any, error) {
	payload, err := c.Get(ctx, primary, query)
	if err != nil || payload != nil {
		return payload, err
	}
	return c.Get(ctx, legacy, nil)
}
