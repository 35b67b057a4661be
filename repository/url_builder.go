package repository

import (
	"fmt"
	"strings"
	"time"
)

// DefaultBaseURL is where Receita Federal publishes the yearly tables.
const DefaultBaseURL = "https://www.gov.br/receitafederal/pt-br/assuntos/meu-imposto-de-renda/tabelas"

// URLBuilder resolves the page URL for the table year.
type URLBuilder struct {
	BaseURL string
	// Year overrides the current year when non-zero.
	Year int
	Now  func() time.Time
}

// NewURLBuilder returns a builder for the current year at DefaultBaseURL.
func NewURLBuilder() URLBuilder {
	return URLBuilder{BaseURL: DefaultBaseURL, Now: time.Now}
}

// TableYear is the year whose table is requested.
func (b URLBuilder) TableYear() int {
	if b.Year != 0 {
		return b.Year
	}
	now := time.Now
	if b.Now != nil {
		now = b.Now
	}
	return now().Year()
}

// URL returns the page address for TableYear.
func (b URLBuilder) URL() string {
	return ReceitaURL(b.BaseURL, b.TableYear())
}

// ReceitaURL joins base and year ("<base>/2025").
func ReceitaURL(base string, year int) string {
	if base == "" {
		base = DefaultBaseURL
	}
	return fmt.Sprintf("%s/%d", strings.TrimRight(base, "/"), year)
}
