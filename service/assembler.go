package service

import (
	"iter"

	"ir-tributacao/domain"
)

// Assembler turns table rows into tax bracket records.
type Assembler struct {
	Normalizer Normalizer

	// OnUnrecognized, when set, is called for every faixa cell that
	// matched no marker. index is the position in the output table.
	OnUnrecognized func(index int, text string)
}

// Assemble consumes rows once, in order. Rows without cells are skipped;
// missing alíquota/dedução cells read as empty and default to 0. The
// first error from rows aborts the whole assembly and no partial table
// is returned.
func (a Assembler) Assemble(rows iter.Seq2[domain.Row, error]) (domain.TaxTable, error) {
	table := domain.TaxTable{}

	for row, err := range rows {
		if err != nil {
			return nil, err
		}
		if len(row) == 0 {
			continue
		}

		parsed := a.Normalizer.ParseRange(row[0])
		if !parsed.Recognized() && a.OnUnrecognized != nil {
			a.OnUnrecognized(len(table), row[0])
		}

		table = append(table, domain.TaxBracketRecord{
			Faixa:    parsed.Range,
			Aliquota: a.Normalizer.ParseRate(cell(row, 1)),
			Deducao:  a.Normalizer.ParseDeduction(cell(row, 2)),
		})
	}

	return table, nil
}

// Assemble runs an Assembler with no hooks.
func Assemble(rows iter.Seq2[domain.Row, error], n Normalizer) (domain.TaxTable, error) {
	return Assembler{Normalizer: n}.Assemble(rows)
}

func cell(row domain.Row, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
