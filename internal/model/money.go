package model

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency is the single reporting currency. Multi-currency conversion is not supported.
const Currency = money.USD

// Money represents a monetary value in the reporting currency.
// All running totals are accumulated with exact decimal arithmetic; Float64 is
// only meant for the final display rounding of percentages and charts.
type Money struct {
	value decimal.Decimal
}

// Quantity represents a number of units of an asset.
type Quantity struct {
	value decimal.Decimal
}

type number interface {
	float64 | int | int64 | decimal.Decimal
}

func newDecimal[T number](v T) decimal.Decimal {
	switch x := any(v).(type) {
	case decimal.Decimal:
		return x
	case float64:
		return decimal.NewFromFloat(x)
	case int:
		return decimal.NewFromInt(int64(x))
	case int64:
		return decimal.NewFromInt(x)
	}
	panic(fmt.Sprintf("unsupported number type %T", v))
}

// M builds a Money value.
func M[T number](v T) Money { return Money{value: newDecimal(v)} }

// Q builds a Quantity value.
func Q[T number](v T) Quantity { return Quantity{value: newDecimal(v)} }

// ParseMoney parses a decimal string such as "123.45".
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Money{value: d}, nil
}

// ParseQuantity parses a decimal string such as "0.125".
func ParseQuantity(s string) (Quantity, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Quantity{}, fmt.Errorf("invalid quantity %q: %w", s, err)
	}
	return Quantity{value: d}, nil
}

// DivOrZero divides a by b, returning zero when b is zero.
func DivOrZero(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}
	return a.Div(b)
}

// PercentChange returns (to-from)/from*100 as a float, or 0 when from is not positive.
func PercentChange(from, to Money) float64 {
	if !from.IsPositive() {
		return 0
	}
	return to.value.Sub(from.value).Div(from.value).Mul(decimal.NewFromInt(100)).InexactFloat64()
}

func (m Money) Decimal() decimal.Decimal        { return m.value }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) }
func (m Money) Cmp(n Money) int                 { return m.value.Cmp(n.value) }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Add(n Money) Money               { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money               { return Money{value: m.value.Sub(n.value)} }
func (m Money) Mul(q Quantity) Money            { return Money{value: m.value.Mul(q.value)} }
func (m Money) Round(places int32) Money        { return Money{value: m.value.Round(places)} }
func (m Money) Float64() float64                { return m.value.InexactFloat64() }
func (m Money) String() string                  { return m.value.String() }

// Div divides by a quantity, returning zero for a zero quantity.
func (m Money) Div(q Quantity) Money { return Money{value: DivOrZero(m.value, q.value)} }

// Ratio returns m/n as a float, or 0 when n is zero.
func (m Money) Ratio(n Money) float64 { return DivOrZero(m.value, n.value).InexactFloat64() }

// ClampZero returns m, or zero when m is negative.
func (m Money) ClampZero() Money {
	if m.value.IsNegative() {
		return Money{}
	}
	return m
}

// Display formats the amount with the currency symbol and grouping, e.g. "$1,500.00".
func (m Money) Display() string {
	cur := money.GetCurrency(Currency)
	minor := m.value.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, Currency).Display()
}

// MarshalJSON writes the amount as a plain JSON number.
func (m Money) MarshalJSON() ([]byte, error) { return []byte(m.value.String()), nil }

// UnmarshalJSON accepts both JSON numbers and quoted decimal strings.
func (m *Money) UnmarshalJSON(data []byte) error { return m.value.UnmarshalJSON(data) }

func (q Quantity) Decimal() decimal.Decimal       { return q.value }
func (q Quantity) IsZero() bool                   { return q.value.IsZero() }
func (q Quantity) IsPositive() bool               { return q.value.IsPositive() }
func (q Quantity) IsNegative() bool               { return q.value.IsNegative() }
func (q Quantity) Equal(n Quantity) bool          { return q.value.Equal(n.value) }
func (q Quantity) LessThan(n Quantity) bool       { return q.value.LessThan(n.value) }
func (q Quantity) GreaterThan(n Quantity) bool    { return q.value.GreaterThan(n.value) }
func (q Quantity) Add(n Quantity) Quantity        { return Quantity{value: q.value.Add(n.value)} }
func (q Quantity) Sub(n Quantity) Quantity        { return Quantity{value: q.value.Sub(n.value)} }
func (q Quantity) Float64() float64               { return q.value.InexactFloat64() }
func (q Quantity) String() string                 { return q.value.String() }
func (q Quantity) MarshalJSON() ([]byte, error)   { return []byte(q.value.String()), nil }
func (q *Quantity) UnmarshalJSON(d []byte) error  { return q.value.UnmarshalJSON(d) }
func (q Quantity) Min(n Quantity) Quantity        { return Quantity{value: decimal.Min(q.value, n.value)} }
func (q Quantity) Times(price Money) Money        { return Money{value: q.value.Mul(price.value)} }
