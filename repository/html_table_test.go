package repository

import (
	"iter"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ir-tributacao/domain"
)

func collect(t *testing.T, rows iter.Seq2[domain.Row, error]) ([]domain.Row, error) {
	t.Helper()
	var out []domain.Row
	for row, err := range rows {
		if err != nil {
			return out, err
		}
		out = append(out, row)
	}
	return out, nil
}

func TestParseTable_Fixture(t *testing.T) {
	f, err := os.Open("testdata/tabela.html")
	require.NoError(t, err)
	defer f.Close()

	rows, err := ParseTable(f)
	require.NoError(t, err)

	got, err := collect(t, rows)
	require.NoError(t, err)
	require.Len(t, got, 6)

	// header row has only <th> cells
	assert.Empty(t, got[0])
	assert.Equal(t, domain.Row{"Até R$ 2.428,80", "zero", "zero"}, got[1])
	assert.Equal(t, domain.Row{"De R$ 2.428,81 até R$ 2.826,65", "7,5%", "R$ 182,16"}, got[2])
	assert.Equal(t, domain.Row{"Acima de R$ 4.664,68", "27,5%", "R$ 908,73"}, got[5])
}

func TestParseTable_NoTable(t *testing.T) {
	rows, err := ParseTable(strings.NewReader("<html><body><p>Página em manutenção</p></body></html>"))
	require.NoError(t, err)

	got, err := collect(t, rows)
	assert.Empty(t, got)
	assert.ErrorIs(t, err, domain.ErrTableNotFound)
}

func TestTableRows_StopsEarly(t *testing.T) {
	html := `<table><tr><td>a</td></tr><tr><td>b</td></tr><tr><td>c</td></tr></table>`
	rows, err := ParseTable(strings.NewReader(html))
	require.NoError(t, err)

	var seen []domain.Row
	for row := range rows {
		seen = append(seen, row)
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []domain.Row{{"a"}, {"b"}}, seen)
}

func TestTableRows_TrimsCellText(t *testing.T) {
	html := "<table><tr><td>\n  De R$ 1,00\n até R$ 2,00 </td><td> 7,5% </td></tr></table>"
	rows, err := ParseTable(strings.NewReader(html))
	require.NoError(t, err)

	got, err := collect(t, rows)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "De R$ 1,00\n até R$ 2,00", got[0][0])
	assert.Equal(t, "7,5%", got[0][1])
}
