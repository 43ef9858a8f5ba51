package models

import (
	"fmt"
	"math"
	"strings"
)

// QuantityKind tags a numeric value with its unit so display code can
// format it without guessing from the field name.
type QuantityKind string

const (
	KindCurrency QuantityKind = "currency"
	KindCount    QuantityKind = "count"
	KindDays     QuantityKind = "days"
	KindHours    QuantityKind = "hours"
	KindPercent  QuantityKind = "percent"
)

// Quantity is a unit-tagged number used in report payloads.
type Quantity struct {
	Kind  QuantityKind `json:"kind"`
	Value float64      `json:"value"`
}

func Currency(v float64) Quantity { return Quantity{Kind: KindCurrency, Value: v} }
func Count(v float64) Quantity    { return Quantity{Kind: KindCount, Value: v} }
func Days(v float64) Quantity     { return Quantity{Kind: KindDays, Value: v} }
func Hours(v float64) Quantity    { return Quantity{Kind: KindHours, Value: v} }
func Percent(v float64) Quantity  { return Quantity{Kind: KindPercent, Value: v} }

// Format renders the quantity for report text. Currency values get a
// dollar sign and thousands separators, whole numbers drop their
// decimal part.
func (q Quantity) Format() string {
	switch q.Kind {
	case KindCurrency:
		if q.Value < 0 {
			return "-$" + groupThousands(-q.Value)
		}
		return "$" + groupThousands(q.Value)
	case KindCount:
		return groupThousands(q.Value)
	case KindDays:
		return groupThousands(q.Value) + " days"
	case KindHours:
		return groupThousands(q.Value) + " hours"
	case KindPercent:
		return trimDecimals(q.Value) + "%"
	default:
		return trimDecimals(q.Value)
	}
}

func trimDecimals(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

func groupThousands(v float64) string {
	s := trimDecimals(v)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}
	intPart := s
	frac := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + frac
}
