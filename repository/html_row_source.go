package repository

import (
	"bytes"
	"context"
	"iter"
	"log/slog"
	"os"

	"ir-tributacao/domain"
)

const pageCachePrefix = "ir:page:"

// HTMLRowSource fetches the Receita Federal page and reads its first
// table. When a cache is set, the raw page is cached by URL; rows are
// still parsed on every call.
type HTMLRowSource struct {
	fetcher PageFetcher
	urls    URLBuilder
	cache   CacheRepository
	logger  *slog.Logger
}

// NewHTMLRowSource creates a row source. cache may be nil.
func NewHTMLRowSource(fetcher PageFetcher, urls URLBuilder, cache CacheRepository, logger *slog.Logger) *HTMLRowSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTMLRowSource{
		fetcher: fetcher,
		urls:    urls,
		cache:   cache,
		logger:  logger.With(slog.String("component", "html_row_source")),
	}
}

// Rows implements RowSource.
func (s *HTMLRowSource) Rows(ctx context.Context) (iter.Seq2[domain.Row, error], error) {
	page, err := s.page(ctx, s.urls.URL())
	if err != nil {
		return nil, err
	}
	return ParseTable(bytes.NewReader(page))
}

func (s *HTMLRowSource) page(ctx context.Context, url string) ([]byte, error) {
	key := pageCachePrefix + url

	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, key); ok {
			s.logger.DebugContext(ctx, "page cache hit", slog.String("url", url))
			return []byte(cached), nil
		}
	}

	body, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		// Falha no cache não é crítica
		if err := s.cache.Set(ctx, key, string(body)); err != nil {
			s.logger.WarnContext(ctx, "failed to cache page",
				slog.String("url", url),
				slog.String("error", err.Error()))
		}
	}
	return body, nil
}

// FileRowSource reads the table from a saved HTML page.
type FileRowSource struct {
	Path string
}

// Rows implements RowSource.
func (s FileRowSource) Rows(_ context.Context) (iter.Seq2[domain.Row, error], error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseTable(f)
}
