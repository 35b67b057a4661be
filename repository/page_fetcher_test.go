package repository

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPPageFetcher_OK(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("<table></table>"))
	}))
	defer server.Close()

	fetcher := NewHTTPPageFetcher(5*time.Second, "ir-tributacao/test")
	body, err := fetcher.Fetch(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Equal(t, "<table></table>", string(body))
	assert.Equal(t, "ir-tributacao/test", gotUA)
}

func TestHTTPPageFetcher_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	fetcher := NewHTTPPageFetcher(5*time.Second, "")
	body, err := fetcher.Fetch(context.Background(), server.URL)

	assert.Nil(t, body)
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.Code)
	assert.Contains(t, err.Error(), "404 Not Found")
}

func TestHTTPPageFetcher_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewHTTPPageFetcher(5*time.Second, "").Fetch(ctx, server.URL)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTTPPageFetcher_PageTooLarge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<table><tr><td>Até R$ 2.428,80</td></tr></table>"))
	}))
	defer server.Close()

	f := NewHTTPPageFetcher(time.Second, "")
	f.maxBytes = 16

	_, err := f.Fetch(context.Background(), server.URL)
	assert.ErrorIs(t, err, ErrPageTooLarge)

	f.maxBytes = 1 << 10
	body, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Contains(t, string(body), "2.428,80")
}
