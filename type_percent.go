package holdings

import "github.com/shopspring/decimal"

// Percent is a percentage value. Crypto rows carry percentages at 20 decimal
// places, beyond what a float64 can represent, so it is decimal-backed like
// Quantity and Money.
type Percent struct {
	value decimal.Decimal
}

func P[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Percent {
	return Percent{value: newDecimal(value)}
}

func (p Percent) Add(q Percent) Percent { return Percent{value: p.value.Add(q.value)} }
func (p Percent) Sub(q Percent) Percent { return Percent{value: p.value.Sub(q.value)} }
func (p Percent) IsZero() bool          { return p.value.IsZero() }
func (p Percent) Equal(q Percent) bool  { return p.value.Equal(q.value) }

// Round returns the percentage rounded to the given number of decimal places.
func (p Percent) Round(places int32) Percent { return Percent{value: p.value.Round(places)} }

// Within reports whether p and q differ by less than tolerance (absolute).
func (p Percent) Within(q Percent, tolerance Percent) bool {
	return p.value.Sub(q.value).Abs().LessThan(tolerance.value)
}

func (p Percent) String() string {
	return p.value.StringFixed(2) + "%"
}

// SignedString returns the percentage with an explicit sign, and "-" for zero.
func (p Percent) SignedString() string {
	if p.value.IsZero() {
		return "-"
	}
	if p.value.IsPositive() {
		return "+" + p.String()
	}
	return p.String()
}

func (p Percent) MarshalJSON() ([]byte, error) {
	return p.value.MarshalJSON()
}

func (p *Percent) UnmarshalJSON(decimalBytes []byte) error {
	return p.value.UnmarshalJSON(decimalBytes)
}
