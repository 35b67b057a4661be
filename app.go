package main

import (
	"fmt"
	"log/slog"

	"ir-tributacao/config"
	"ir-tributacao/infrastructure"
	"ir-tributacao/repository"
	"ir-tributacao/service"
)

// app is the wired object graph shared by the serve and tabela commands.
type app struct {
	service *service.TaxTableService
	urls    repository.URLBuilder
	offline bool
	closers []func() error
}

func newApp(cfg *config.Config, logger *slog.Logger, metrics *infrastructure.Metrics) (*app, error) {
	normalizer, err := newNormalizer(cfg.Normalization)
	if err != nil {
		return nil, err
	}

	urls := repository.NewURLBuilder()
	urls.BaseURL = cfg.Source.BaseURL
	urls.Year = cfg.Source.Year

	a := &app{urls: urls, offline: cfg.Source.File != ""}

	var source repository.RowSource
	if cfg.Source.File != "" {
		source = repository.FileRowSource{Path: cfg.Source.File}
	} else {
		var cache repository.CacheRepository
		switch cfg.Cache.Backend {
		case "memory":
			cache = repository.NewMemoryCache(cfg.Cache.TTL)
		case "redis":
			rc := repository.NewRedisCache(cfg.Cache.RedisAddr, cfg.Cache.TTL)
			a.closers = append(a.closers, rc.Close)
			cache = rc
		}

		fetcher := repository.NewHTTPPageFetcher(cfg.Source.Timeout, cfg.Source.UserAgent)
		source = repository.NewHTMLRowSource(fetcher, urls, cache, logger)
	}

	var observer service.Observer
	if metrics != nil {
		observer = metrics
	}
	a.service = service.NewTaxTableService(source, normalizer, logger, observer)
	return a, nil
}

func newNormalizer(cfg config.NormalizationConfig) (service.Normalizer, error) {
	n := service.NewNormalizer()

	rangePolicy, err := service.ParseThousandsPolicy(cfg.RangeThousands)
	if err != nil {
		return n, fmt.Errorf("range_thousands: %w", err)
	}
	deductionPolicy, err := service.ParseThousandsPolicy(cfg.DeductionThousands)
	if err != nil {
		return n, fmt.Errorf("deduction_thousands: %w", err)
	}

	n.RangeThousands = rangePolicy
	n.DeductionThousands = deductionPolicy
	return n, nil
}

// tableYear is the year reported alongside the brackets. A saved page
// carries no year of its own, so offline runs report only an explicit one.
func (a *app) tableYear() int {
	if a.offline {
		return a.urls.Year
	}
	return a.urls.TableYear()
}

func (a *app) Close() {
	for _, c := range a.closers {
		_ = c()
	}
}
