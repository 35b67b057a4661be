package service

import "strings"

// ParseRate parses an alíquota cell ("7,5%") into a percentage (7.5).
// Cells without a percent sign, such as "-", are 0.
func (n Normalizer) ParseRate(text string) float64 {
	if !strings.Contains(text, n.Locale.Percent) {
		return 0
	}
	s := strings.Replace(text, n.Locale.Percent, "", 1)
	s = strings.Replace(s, n.Locale.Decimal, ".", 1)
	return parseLeadingFloat(strings.TrimSpace(s))
}

// ParseDeduction parses a parcela a deduzir cell ("R$ 158,40").
// Cells without the currency symbol are 0. Thousands separators follow
// DeductionThousands, which keeps them by default, so "R$ 1.000,00"
// parses as 1.
func (n Normalizer) ParseDeduction(text string) float64 {
	if !strings.Contains(text, n.Locale.Currency) {
		return 0
	}
	return n.Amount(text, n.DeductionThousands)
}
