package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxPageBytes bounds the page body read into memory.
const maxPageBytes = 10 << 20

// ErrPageTooLarge is returned when a page body exceeds the fetcher limit.
var ErrPageTooLarge = errors.New("page too large")

// PageFetcher downloads a page body.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("failed to fetch data: %s", e.Status)
}

// HTTPPageFetcher fetches pages over HTTP.
type HTTPPageFetcher struct {
	client    *http.Client
	userAgent string
	maxBytes  int64
}

// NewHTTPPageFetcher creates a fetcher with the given timeout. An empty
// userAgent leaves Go's default header.
func NewHTTPPageFetcher(timeout time.Duration, userAgent string) *HTTPPageFetcher {
	return &HTTPPageFetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		maxBytes:  maxPageBytes,
	}
}

// Fetch implements PageFetcher.
func (f *HTTPPageFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	if int64(len(body)) > f.maxBytes {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrPageTooLarge, url, f.maxBytes)
	}
	return body, nil
}
