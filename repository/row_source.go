package repository

import (
	"context"
	"iter"

	"ir-tributacao/domain"
)

// RowSource yields the rows of the published tax table.
//
// The returned sequence is lazy and may only be ranged over once. An
// error from Rows means no rows could be produced at all; an error
// yielded by the sequence aborts it.
type RowSource interface {
	Rows(ctx context.Context) (iter.Seq2[domain.Row, error], error)
}

// StaticRowSource serves fixed rows, or Err when set.
type StaticRowSource struct {
	Data []domain.Row
	Err  error
}

// NewStaticRowSource creates a source over rows.
func NewStaticRowSource(rows ...domain.Row) *StaticRowSource {
	return &StaticRowSource{Data: rows}
}

// Rows implements RowSource.
func (s *StaticRowSource) Rows(_ context.Context) (iter.Seq2[domain.Row, error], error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return func(yield func(domain.Row, error) bool) {
		for _, row := range s.Data {
			if !yield(row, nil) {
				return
			}
		}
	}, nil
}
