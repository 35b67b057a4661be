package service

import (
	"math"
	"strings"

	"ir-tributacao/domain"
)

// ParseRange classifies a faixa cell and extracts its bounds.
//
// Markers are checked in order: up-to ("Até R$ X"), from/until
// ("De R$ X até R$ Y") and above ("Acima de R$ X"). Bounds of a
// from/until range are taken in textual order and never swapped.
// Text matching none of them returns DefaultRange tagged as
// RangeUnrecognized.
func (n Normalizer) ParseRange(text string) domain.ParsedRange {
	l := n.Locale

	switch {
	case strings.Contains(text, l.UpTo):
		rest := strings.Replace(text, l.UpTo, "", 1)
		return domain.ParsedRange{
			Kind:  domain.RangeUpTo,
			Range: domain.BracketRange{Min: 0, Max: n.Amount(rest, n.RangeThousands)},
		}

	case strings.Contains(text, l.From) && strings.Contains(text, l.Until):
		rest := strings.Replace(text, l.From, "", 1)
		parts := strings.SplitN(rest, l.Until, 3)

		r := domain.BracketRange{Min: n.Amount(parts[0], n.RangeThousands), Max: math.NaN()}
		if len(parts) > 1 {
			r.Max = n.Amount(parts[1], n.RangeThousands)
		}
		return domain.ParsedRange{Kind: domain.RangeBetween, Range: r}

	case strings.Contains(text, l.Above):
		rest := strings.Replace(text, l.Above, "", 1)
		return domain.ParsedRange{
			Kind:  domain.RangeAbove,
			Range: domain.BracketRange{Min: n.Amount(rest, n.RangeThousands), Max: math.Inf(1)},
		}
	}

	return domain.ParsedRange{Kind: domain.RangeUnrecognized, Range: domain.DefaultRange()}
}

// Range is ParseRange without the classification tag.
func (n Normalizer) Range(text string) domain.BracketRange {
	return n.ParseRange(text).Range
}
