package fixedpoint

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

const (
	// NativeDecimals is the number of base units per whole native currency unit (10^18).
	NativeDecimals = 18
	// HundredthsBase is 100.00% expressed in hundredths of a percent.
	HundredthsBase = 10000
)

var (
	ErrNegative     = errors.New("fixedpoint: negative amount")
	ErrInvalid      = errors.New("fixedpoint: invalid amount")
	ErrDivideByZero = errors.New("fixedpoint: division by zero")
)

var unit = new(big.Int).Exp(big.NewInt(10), big.NewInt(NativeDecimals), nil)

// Amount is an immutable non-negative integer count of native base units.
// The zero value is 0.
type Amount struct{ i *big.Int }

func Zero() Amount { return Amount{} }

// NewAmount panics on negative input; it is meant for constants and tests.
func NewAmount(n int64) Amount {
	if n < 0 {
		panic(ErrNegative)
	}
	return Amount{i: big.NewInt(n)}
}

// FromBig copies b.
func FromBig(b *big.Int) (Amount, error) {
	if b == nil {
		return Zero(), nil
	}
	if b.Sign() < 0 {
		return Zero(), ErrNegative
	}
	return Amount{i: new(big.Int).Set(b)}, nil
}

// ParseAmount parses a base-10 count of base units.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero(), ErrInvalid
	}
	b, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Zero(), fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	return FromBig(b)
}

// ParseUnits parses a decimal number of whole units ("1.5") into base units.
// More than NativeDecimals fractional digits is an error.
func ParseUnits(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	if len(frac) > NativeDecimals {
		return Zero(), fmt.Errorf("%w: too many decimals in %q", ErrInvalid, s)
	}
	frac += strings.Repeat("0", NativeDecimals-len(frac))
	return ParseAmount(whole + frac)
}

// MustUnits is ParseUnits for literals.
func MustUnits(s string) Amount {
	a, err := ParseUnits(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Amount) big() *big.Int {
	if a.i == nil {
		return new(big.Int)
	}
	return a.i
}

// Big returns a copy of the underlying integer.
func (a Amount) Big() *big.Int { return new(big.Int).Set(a.big()) }

func (a Amount) String() string { return a.big().String() }

func (a Amount) IsZero() bool { return a.big().Sign() == 0 }

func (a Amount) Cmp(b Amount) int { return a.big().Cmp(b.big()) }

func (a Amount) Equal(b Amount) bool { return a.Cmp(b) == 0 }

func (a Amount) Add(b Amount) Amount {
	return Amount{i: new(big.Int).Add(a.big(), b.big())}
}

// Sub fails instead of going below zero.
func (a Amount) Sub(b Amount) (Amount, error) {
	r := new(big.Int).Sub(a.big(), b.big())
	if r.Sign() < 0 {
		return Zero(), fmt.Errorf("%w: %s - %s", ErrNegative, a, b)
	}
	return Amount{i: r}, nil
}

func Min(a, b Amount) Amount {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}

// MulInt multiplies by a non-negative integer.
func (a Amount) MulInt(n int64) (Amount, error) {
	if n < 0 {
		return Zero(), ErrNegative
	}
	return Amount{i: new(big.Int).Mul(a.big(), big.NewInt(n))}, nil
}

// MulDiv returns floor(a * num / den).
func (a Amount) MulDiv(num, den int64) (Amount, error) {
	if den == 0 {
		return Zero(), ErrDivideByZero
	}
	if num < 0 || den < 0 {
		return Zero(), ErrNegative
	}
	r := new(big.Int).Mul(a.big(), big.NewInt(num))
	return Amount{i: r.Quo(r, big.NewInt(den))}, nil
}

// DivInt returns floor(a / den).
func (a Amount) DivInt(den int64) (Amount, error) { return a.MulDiv(1, den) }

// MulDivProd returns floor(a * num / (d1 * d2)). The denominator is formed without
// int64 overflow.
func (a Amount) MulDivProd(num, d1, d2 int64) (Amount, error) {
	if d1 == 0 || d2 == 0 {
		return Zero(), ErrDivideByZero
	}
	if num < 0 || d1 < 0 || d2 < 0 {
		return Zero(), ErrNegative
	}
	r := new(big.Int).Mul(a.big(), big.NewInt(num))
	den := new(big.Int).Mul(big.NewInt(d1), big.NewInt(d2))
	return Amount{i: r.Quo(r, den)}, nil
}

// Units renders the amount as whole units with trailing zeros trimmed, e.g. "1.5".
func (a Amount) Units() string {
	q, r := new(big.Int).QuoRem(a.big(), unit, new(big.Int))
	if r.Sign() == 0 {
		return q.String()
	}
	frac := r.String()
	frac = strings.Repeat("0", NativeDecimals-len(frac)) + frac
	return q.String() + "." + strings.TrimRight(frac, "0")
}

// Value stores the amount as decimal text.
func (a Amount) Value() (driver.Value, error) { return a.String(), nil }

func (a *Amount) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*a = Zero()
		return nil
	case string:
		p, err := ParseAmount(v)
		if err != nil {
			return err
		}
		*a = p
		return nil
	case []byte:
		return a.Scan(string(v))
	case int64:
		if v < 0 {
			return ErrNegative
		}
		*a = NewAmount(v)
		return nil
	default:
		return fmt.Errorf("fixedpoint: cannot scan %T", src)
	}
}

func (a Amount) MarshalJSON() ([]byte, error) { return json.Marshal(a.String()) }

// UnmarshalJSON accepts a quoted decimal string or a bare JSON integer.
func (a *Amount) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalid, b)
		}
		s = n.String()
	}
	p, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = p
	return nil
}
