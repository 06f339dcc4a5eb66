package tradebook

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money is an exact amount in the ledger currency: a price, a fee, a cost
// or a profit. The currency itself is a presentation concern, see Format.
type Money struct {
	value decimal.Decimal
}

// M returns Money for value.
func M[T float64 | int | int64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value)}
}

// ParseMoney parses a decimal string such as "12.5".
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return Money{value: d}, nil
}

func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(amount Money) bool      { return m.value.LessThan(amount.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) LessThanOrEqual(n Money) bool    { return m.value.LessThanOrEqual(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg()} }
func (m Money) Add(n Money) Money               { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money               { return Money{value: m.value.Sub(n.value)} }
func (m Money) Mul(n Quantity) Money            { return Money{value: m.value.Mul(n.value)} }
func (m Money) Div(n Quantity) Money            { return Money{value: m.value.Div(n.value)} }
func (m Money) Decimal() decimal.Decimal        { return m.value }

// String returns the exact decimal representation.
func (m Money) String() string { return m.value.String() }

// Format returns the amount formatted for the given ISO currency code,
// rounded to the currency's minor unit.
func (m Money) Format(currency string) string {
	cur := money.New(0, currency).Currency()
	dec := m.value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(dec.IntPart())
}

// SignedFormat is like Format with an explicit sign. Zero is rendered as "-".
func (m Money) SignedFormat(currency string) string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.Format(currency)
	}
	return m.Format(currency)
}

// Round returns the amount rounded to the minor unit of currency.
// It is meant for exports, never for values kept by the ledger.
func (m Money) Round(currency string) Money {
	cur := money.New(0, currency).Currency()
	return Money{value: m.value.Round(int32(cur.Fraction))}
}

func (m Money) MarshalJSON() ([]byte, error) {
	return m.value.MarshalJSON()
}
func (m *Money) UnmarshalJSON(decimalBytes []byte) error {
	return m.value.UnmarshalJSON(decimalBytes)
}
