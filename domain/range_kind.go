package domain

// RangeKind identifies which faixa pattern a cell matched.
type RangeKind int

const (
	RangeUnrecognized RangeKind = iota
	RangeUpTo                   // "Até R$ X"
	RangeBetween                // "De R$ X até R$ Y"
	RangeAbove                  // "Acima de R$ X"
)

func (k RangeKind) String() string {
	switch k {
	case RangeUpTo:
		return "up_to"
	case RangeBetween:
		return "between"
	case RangeAbove:
		return "above"
	default:
		return "unrecognized"
	}
}

// ParsedRange is the tagged result of classifying a faixa cell.
// Unrecognized text still carries DefaultRange so callers that only
// want the value can ignore Kind.
type ParsedRange struct {
	Kind  RangeKind
	Range BracketRange
}

// Recognized reports whether the text matched a known pattern.
func (p ParsedRange) Recognized() bool {
	return p.Kind != RangeUnrecognized
}
