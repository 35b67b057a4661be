package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"ir-tributacao/domain"
)

func TestParseRange(t *testing.T) {
	inf := math.Inf(1)

	tests := []struct {
		name     string
		text     string
		kind     domain.RangeKind
		expected domain.BracketRange
	}{
		{
			name:     "up to",
			text:     "Até R$ 2.112,00",
			kind:     domain.RangeUpTo,
			expected: domain.BracketRange{Min: 0, Max: 2112.00},
		},
		{
			name:     "between",
			text:     "De R$ 2.112,01 até R$ 2.826,65",
			kind:     domain.RangeBetween,
			expected: domain.BracketRange{Min: 2112.01, Max: 2826.65},
		},
		{
			name:     "between without thousands",
			text:     "De R$ 826,66 até R$ 999,99",
			kind:     domain.RangeBetween,
			expected: domain.BracketRange{Min: 826.66, Max: 999.99},
		},
		{
			name:     "inverted bounds are kept in textual order",
			text:     "De R$ 4.664,68 até R$ 3.751,06",
			kind:     domain.RangeBetween,
			expected: domain.BracketRange{Min: 4664.68, Max: 3751.06},
		},
		{
			name:     "above",
			text:     "Acima de R$ 4.664,68",
			kind:     domain.RangeAbove,
			expected: domain.BracketRange{Min: 4664.68, Max: inf},
		},
		{
			name:     "up to without currency symbol",
			text:     "Até 2.428,80",
			kind:     domain.RangeUpTo,
			expected: domain.BracketRange{Min: 0, Max: 2428.80},
		},
		{
			name:     "unrecognized",
			text:     "Base de cálculo (R$)",
			kind:     domain.RangeUnrecognized,
			expected: domain.BracketRange{Min: 0, Max: inf},
		},
		{
			name:     "empty",
			text:     "",
			kind:     domain.RangeUnrecognized,
			expected: domain.BracketRange{Min: 0, Max: inf},
		},
	}

	n := NewNormalizer()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := n.ParseRange(tc.text)
			assert.Equal(t, tc.kind, got.Kind)
			assert.Equal(t, tc.expected, got.Range)
			assert.Equal(t, tc.expected, n.Range(tc.text))
		})
	}
}

func TestParseRange_UpToTakesPriority(t *testing.T) {
	// "Até" is checked before the from/until and above markers.
	got := NewNormalizer().ParseRange("Até R$ 1.000,00 Acima de")
	assert.Equal(t, domain.RangeUpTo, got.Kind)
	assert.Equal(t, 1000.0, got.Range.Max)
}

func TestParseRange_NonNumericAmountIsNaN(t *testing.T) {
	n := NewNormalizer()

	got := n.ParseRange("Até R$ isento")
	assert.Equal(t, domain.RangeUpTo, got.Kind)
	assert.Equal(t, 0.0, got.Range.Min)
	assert.True(t, math.IsNaN(got.Range.Max))

	got = n.ParseRange("Acima de R$ -")
	assert.Equal(t, domain.RangeAbove, got.Kind)
	assert.True(t, math.IsNaN(got.Range.Min))
	assert.True(t, math.IsInf(got.Range.Max, 1))
}

func TestParseRange_MissingUpperBound(t *testing.T) {
	// nothing follows the until marker
	got := NewNormalizer().ParseRange("De R$ 100,00 até")
	assert.Equal(t, domain.RangeBetween, got.Kind)
	assert.Equal(t, 100.0, got.Range.Min)
	assert.True(t, math.IsNaN(got.Range.Max))
}

func TestParseRange_MillionsWithFirstOnlyStrip(t *testing.T) {
	// Only the first thousands separator is removed, so the second one
	// becomes the decimal point.
	got := NewNormalizer().Range("Acima de R$ 1.234.567,89")
	assert.Equal(t, 1234.567, got.Min)
}

func TestParseRange_MillionsWithStripAll(t *testing.T) {
	n := NewNormalizer()
	n.RangeThousands = StripAllThousands

	got := n.Range("Acima de R$ 1.234.567,89")
	assert.Equal(t, 1234567.89, got.Min)
}
