package service

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ThousandsPolicy controls how thousands separators are removed
// before an amount is parsed.
type ThousandsPolicy int

const (
	// StripFirstThousands removes only the first separator. Amounts of a
	// million or more keep a stray separator and mis-parse; this is the
	// historical behaviour for faixa values.
	StripFirstThousands ThousandsPolicy = iota
	// StripAllThousands removes every separator.
	StripAllThousands
	// KeepThousands leaves separators in place (historical behaviour for
	// the deduction column).
	KeepThousands
)

func (p ThousandsPolicy) String() string {
	switch p {
	case StripFirstThousands:
		return "first"
	case StripAllThousands:
		return "all"
	case KeepThousands:
		return "none"
	default:
		return fmt.Sprintf("ThousandsPolicy(%d)", int(p))
	}
}

// ParseThousandsPolicy maps a config value ("first", "all", "none").
func ParseThousandsPolicy(s string) (ThousandsPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "first":
		return StripFirstThousands, nil
	case "all":
		return StripAllThousands, nil
	case "none":
		return KeepThousands, nil
	default:
		return 0, fmt.Errorf("unknown thousands policy %q", s)
	}
}

// Locale holds the symbols and markers used by the published table.
type Locale struct {
	Currency  string
	Percent   string
	Thousands string
	Decimal   string

	UpTo  string // faixa aberta embaixo
	From  string
	Until string
	Above string // faixa aberta em cima
}

// PtBR is the convention used by Receita Federal pages.
func PtBR() Locale {
	return Locale{
		Currency:  "R$",
		Percent:   "%",
		Thousands: ".",
		Decimal:   ",",
		UpTo:      "Até",
		From:      "De",
		Until:     "até",
		Above:     "Acima de",
	}
}

// Normalizer turns locale-formatted cell text into numbers.
// The zero value is not usable; build it with NewNormalizer.
type Normalizer struct {
	Locale             Locale
	RangeThousands     ThousandsPolicy
	DeductionThousands ThousandsPolicy
}

// NewNormalizer returns a pt-BR normalizer with the historical
// separator handling: first-occurrence strip for faixa amounts,
// no strip for deductions.
func NewNormalizer() Normalizer {
	return Normalizer{
		Locale:             PtBR(),
		RangeThousands:     StripFirstThousands,
		DeductionThousands: KeepThousands,
	}
}

// Amount parses a currency amount such as "R$ 2.112,00".
// Text that does not start with a number yields NaN.
func (n Normalizer) Amount(text string, policy ThousandsPolicy) float64 {
	s := strings.Replace(strings.TrimSpace(text), n.Locale.Currency, "", 1)
	s = n.stripThousands(s, policy)
	s = strings.Replace(s, n.Locale.Decimal, ".", 1)
	return parseLeadingFloat(strings.TrimSpace(s))
}

func (n Normalizer) stripThousands(s string, policy ThousandsPolicy) string {
	if n.Locale.Thousands == "" {
		return s
	}
	switch policy {
	case StripFirstThousands:
		return strings.Replace(s, n.Locale.Thousands, "", 1)
	case StripAllThousands:
		return strings.ReplaceAll(s, n.Locale.Thousands, "")
	default:
		return s
	}
}

var leadingFloat = regexp.MustCompile(`^[+-]?(?:[Ii]nfinity|(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)`)

// parseLeadingFloat parses the longest numeric prefix of s, ignoring
// trailing text ("7.5 (mensal)" -> 7.5). No numeric prefix yields NaN.
func parseLeadingFloat(s string) float64 {
	m := leadingFloat.FindString(s)
	if m == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		// overflow: ParseFloat already returned ±Inf
		if errors.Is(err, strconv.ErrRange) {
			return v
		}
		return math.NaN()
	}
	return v
}
