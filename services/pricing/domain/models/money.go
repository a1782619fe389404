package models

import (
	"fmt"

	"github.com/shopspring/decimal"

	pricingdomain "github.com/ghuser/roomrates/services/pricing/domain"
)

// DefaultCurrency is used by constructors that do not take an explicit currency.
const DefaultCurrency = "USD"

// moneyScale is the number of fractional digits every Money amount carries.
const moneyScale = 2

// Money is an exact decimal amount in a single currency.
// Amounts are normalized to two fractional digits (half-up) at construction
// and after every operation. Immutable; operations return new values.
type Money struct {
	amount   decimal.Decimal
	currency string
}

// NewMoney returns a Money with the given amount and ISO currency code,
// rounded to two fractional digits half-up.
func NewMoney(amount decimal.Decimal, currency string) Money {
	return Money{amount: amount.Round(moneyScale), currency: currency}
}

// MoneyFromFloat returns a Money from a float amount in the given currency.
func MoneyFromFloat(amount float64, currency string) Money {
	return NewMoney(decimal.NewFromFloat(amount), currency)
}

// USD returns a Money in the default currency.
func USD(amount float64) Money {
	return MoneyFromFloat(amount, DefaultCurrency)
}

// Zero returns a zero amount in the given currency.
func Zero(currency string) Money {
	return NewMoney(decimal.Zero, currency)
}

// Amount returns the decimal amount, always at two fractional digits.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the ISO currency code.
func (m Money) Currency() string {
	return m.currency
}

// Add returns m + other. Fails with ErrCurrencyMismatch when currencies differ.
func (m Money) Add(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return NewMoney(m.amount.Add(other.amount), m.currency), nil
}

// Sub returns m - other. Fails with ErrCurrencyMismatch when currencies differ.
func (m Money) Sub(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return NewMoney(m.amount.Sub(other.amount), m.currency), nil
}

// Mul returns m scaled by factor. No currency constraint.
func (m Money) Mul(factor float64) Money {
	return NewMoney(m.amount.Mul(decimal.NewFromFloat(factor)), m.currency)
}

// MulDecimal returns m scaled by an exact decimal factor.
func (m Money) MulDecimal(factor decimal.Decimal) Money {
	return NewMoney(m.amount.Mul(factor), m.currency)
}

// Percentage returns percent% of m (e.g. Percentage(10) is a tenth of m).
func (m Money) Percentage(percent float64) Money {
	return m.Mul(percent / 100.0)
}

// GreaterThan reports m > other. Fails with ErrCurrencyMismatch when currencies differ.
func (m Money) GreaterThan(other Money) (bool, error) {
	if err := m.sameCurrency(other); err != nil {
		return false, err
	}
	return m.amount.GreaterThan(other.amount), nil
}

// LessThan reports m < other. Fails with ErrCurrencyMismatch when currencies differ.
func (m Money) LessThan(other Money) (bool, error) {
	if err := m.sameCurrency(other); err != nil {
		return false, err
	}
	return m.amount.LessThan(other.amount), nil
}

// Equal reports numeric equality (2.0 == 2.00) within the same currency.
// Fails with ErrCurrencyMismatch when currencies differ.
func (m Money) Equal(other Money) (bool, error) {
	if err := m.sameCurrency(other); err != nil {
		return false, err
	}
	return m.amount.Equal(other.amount), nil
}

// Is reports whether other has the same currency and numeric value.
// Unlike Equal it never errors; a currency mismatch is simply false.
func (m Money) Is(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

func (m Money) sameCurrency(other Money) error {
	if m.currency != other.currency {
		return fmt.Errorf("%w: %s vs %s", pricingdomain.ErrCurrencyMismatch, m.currency, other.currency)
	}
	return nil
}

// String formats the amount with its currency code, e.g. "100.00 USD".
func (m Money) String() string {
	return m.amount.StringFixed(moneyScale) + " " + m.currency
}
