package sheets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultFetchTimeout bounds a single export download.
const DefaultFetchTimeout = 15 * time.Second

// Retriever downloads the raw CSV payload of an export URL. It keeps no state
// between calls; caching is the caller's business.
type Retriever struct {
	httpClient *http.Client
}

// NewRetriever creates a Retriever whose requests give up after timeout.
// A non-positive timeout falls back to DefaultFetchTimeout.
func NewRetriever(timeout time.Duration) *Retriever {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &Retriever{httpClient: &http.Client{Timeout: timeout}}
}

// NewRetrieverWithClient creates a Retriever around an existing client, for
// custom transports or TLS roots.
func NewRetrieverWithClient(client *http.Client) *Retriever {
	return &Retriever{httpClient: client}
}

// Fetch returns the body of exportURL as text.
func (r *Retriever) Fetch(ctx context.Context, exportURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, exportURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: create request: %w", ErrRetrievalFailed, err)
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRetrievalFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &RetrievalError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read body: %w", ErrRetrievalFailed, err)
	}

	text := string(body)
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyPayload
	}
	return text, nil
}
