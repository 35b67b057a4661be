package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"ir-tributacao/domain"
	"ir-tributacao/repository"
)

// Observer receives pipeline measurements. infrastructure.Metrics
// implements it.
type Observer interface {
	ObserveRun(outcome string, brackets int, elapsed time.Duration)
	ObserveUnrecognized()
}

type nopObserver struct{}

func (nopObserver) ObserveRun(string, int, time.Duration) {}
func (nopObserver) ObserveUnrecognized() {}

// TaxTableService builds the IRPF monthly table from a row source.
type TaxTableService struct {
	source     repository.RowSource
	normalizer Normalizer
	logger     *slog.Logger
	observer   Observer
}

// NewTaxTableService creates a service reading from source. A nil
// logger falls back to slog.Default and a nil observer discards
// measurements.
func NewTaxTableService(
	source repository.RowSource,
	normalizer Normalizer,
	logger *slog.Logger,
	observer Observer,
) *TaxTableService {
	if logger == nil {
		logger = slog.Default()
	}
	if observer == nil {
		observer = nopObserver{}
	}
	return &TaxTableService{
		source:     source,
		normalizer: normalizer,
		logger:     logger.With(slog.String("component", "tax_table")),
		observer:   observer,
	}
}

// Tabela fetches the rows once and assembles them. Any failure of the
// row source (or a panic while parsing) is returned wrapped in
// domain.ErrRowSource; no partial table is returned.
func (s *TaxTableService) Tabela(ctx context.Context) (table domain.TaxTable, err error) {
	logger := s.logger.With(slog.String("run_id", uuid.NewString()))
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			table, err = nil, fmt.Errorf("%w: unexpected failure: %v", domain.ErrRowSource, r)
		}
		s.observer.ObserveRun(outcome(err), len(table), time.Since(start))
	}()

	rows, err := s.source.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrRowSource, err)
	}

	asm := Assembler{
		Normalizer: s.normalizer,
		OnUnrecognized: func(index int, text string) {
			logger.DebugContext(ctx, "faixa not recognized, using default range",
				slog.Int("index", index),
				slog.String("text", text))
			s.observer.ObserveUnrecognized()
		},
	}

	table, err = asm.Assemble(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrRowSource, err)
	}

	logger.InfoContext(ctx, "tax table assembled",
		slog.Int("brackets", len(table)),
		slog.Duration("elapsed", time.Since(start)))
	return table, nil
}

// Tributacao returns the tax table, or an empty table when it is not
// available for any reason. An empty result does not tell a failure
// apart from a table with no brackets; use Tabela for the cause.
func (s *TaxTableService) Tributacao(ctx context.Context) domain.TaxTable {
	table, err := s.Tabela(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load IR tax table",
			slog.String("error", err.Error()))
		return domain.TaxTable{}
	}
	return table
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
