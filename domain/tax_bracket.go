package domain

import (
	"encoding/json"
	"math"
)

// Row is one table row: the trimmed text of each cell, in column order.
type Row []string

// BracketRange is a half-open income interval [Min, Max) in reais.
type BracketRange struct {
	Min float64
	Max float64
}

// DefaultRange is the range used when a faixa cannot be classified.
func DefaultRange() BracketRange {
	return BracketRange{Min: 0, Max: math.Inf(1)}
}

// Unbounded reports whether the range has no upper limit.
func (r BracketRange) Unbounded() bool {
	return math.IsInf(r.Max, 1)
}

// MarshalJSON encodes non-finite bounds (Inf, NaN) as null.
func (r BracketRange) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Min *float64 `json:"min"`
		Max *float64 `json:"max"`
	}{
		Min: finite(r.Min),
		Max: finite(r.Max),
	})
}

// TaxBracketRecord is one row of the monthly IRPF table.
type TaxBracketRecord struct {
	Faixa    BracketRange `json:"faixa"`
	Aliquota float64      `json:"aliquota"` // 0-100, não fração
	Deducao  float64      `json:"deducao"`
}

// MarshalJSON keeps NaN sentinels from failing the whole encoding.
func (r TaxBracketRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Faixa    BracketRange `json:"faixa"`
		Aliquota *float64     `json:"aliquota"`
		Deducao  *float64     `json:"deducao"`
	}{
		Faixa:    r.Faixa,
		Aliquota: finite(r.Aliquota),
		Deducao:  finite(r.Deducao),
	})
}

// TaxTable is the ordered list of brackets, in source row order.
type TaxTable []TaxBracketRecord

func finite(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}
