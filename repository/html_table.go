package repository

import (
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"ir-tributacao/domain"
)

// ParseTable reads an HTML page and returns the rows of its first table.
func ParseTable(r io.Reader) (iter.Seq2[domain.Row, error], error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return TableRows(doc), nil
}

// TableRows yields one Row per <tr> of the first <table> in doc, with
// the trimmed text of its <td> cells. Header rows built only from <th>
// come out empty. A document without a table yields
// domain.ErrTableNotFound.
func TableRows(doc *goquery.Document) iter.Seq2[domain.Row, error] {
	return func(yield func(domain.Row, error) bool) {
		table := doc.Find("table").First()
		if table.Length() == 0 {
			yield(nil, domain.ErrTableNotFound)
			return
		}

		table.Find("tr").EachWithBreak(func(_ int, tr *goquery.Selection) bool {
			cells := tr.Find("td").Map(func(_ int, td *goquery.Selection) string {
				return strings.TrimSpace(td.Text())
			})
			return yield(domain.Row(cells), nil)
		})
	}
}
