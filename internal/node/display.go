package node

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// MaxFractionDigits bounds the precision of displayed values.
const MaxFractionDigits = 4

// ComputedValueWithSignificantDigits formats the resolved value for display
// in the graph's language, with grouping and at most four fraction digits.
// An absent value renders as "NaN".
func (n *Node) ComputedValueWithSignificantDigits() string {
	v, ok := n.ComputedValue()
	if !ok {
		return "NaN"
	}
	return FormatValue(v, n.language())
}

// FormatValue renders v the way ComputedValueWithSignificantDigits does.
func FormatValue(v float64, tag language.Tag) string {
	p := message.NewPrinter(tag)
	return p.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(MaxFractionDigits)))
}
