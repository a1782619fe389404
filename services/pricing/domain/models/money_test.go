package models

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	pricingdomain "github.com/ghuser/roomrates/services/pricing/domain"
)

func TestNewMoney(t *testing.T) {
	t.Run("rounds to two fractional digits half-up", func(t *testing.T) {
		cases := []struct {
			in   string
			want string
		}{
			{"19.999", "20.00"},
			{"19.994", "19.99"},
			{"19.995", "20.00"},
			{"100", "100.00"},
			{"0.005", "0.01"},
			{"-1.005", "-1.01"},
		}
		for _, tc := range cases {
			m := NewMoney(decimal.RequireFromString(tc.in), "USD")
			if got := m.Amount().StringFixed(2); got != tc.want {
				t.Fatalf("NewMoney(%s) = %s, want %s", tc.in, got, tc.want)
			}
		}
	})

	t.Run("USD uses the default currency", func(t *testing.T) {
		if got := USD(50).Currency(); got != DefaultCurrency {
			t.Fatalf("expected currency %s, got %s", DefaultCurrency, got)
		}
	})

	t.Run("Zero is numerically zero", func(t *testing.T) {
		if !Zero("EUR").Amount().IsZero() {
			t.Fatal("expected zero amount")
		}
	})
}

func TestMoneyArithmetic(t *testing.T) {
	t.Run("Add sums same-currency amounts", func(t *testing.T) {
		sum, err := USD(10.50).Add(USD(4.25))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !sum.Is(USD(14.75)) {
			t.Fatalf("expected 14.75 USD, got %s", sum)
		}
	})

	t.Run("Sub subtracts same-currency amounts", func(t *testing.T) {
		diff, err := USD(10).Sub(USD(4.25))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !diff.Is(USD(5.75)) {
			t.Fatalf("expected 5.75 USD, got %s", diff)
		}
	})

	t.Run("Add fails across currencies", func(t *testing.T) {
		_, err := USD(10).Add(MoneyFromFloat(10, "EUR"))
		if !errors.Is(err, pricingdomain.ErrCurrencyMismatch) {
			t.Fatalf("expected ErrCurrencyMismatch, got %v", err)
		}
	})

	t.Run("Mul scales and rounds", func(t *testing.T) {
		got := USD(100).Mul(1.25)
		if !got.Is(USD(125)) {
			t.Fatalf("expected 125.00 USD, got %s", got)
		}

		// 33.33 * 1.15 = 38.3295 rounds to 38.33.
		got = USD(33.33).Mul(1.15)
		if want := "38.33"; got.Amount().StringFixed(2) != want {
			t.Fatalf("expected %s, got %s", want, got)
		}
	})

	t.Run("Percentage takes a fraction of the amount", func(t *testing.T) {
		got := USD(200).Percentage(10)
		if !got.Is(USD(20)) {
			t.Fatalf("expected 20.00 USD, got %s", got)
		}
	})
}

func TestMoneyComparison(t *testing.T) {
	t.Run("GreaterThan and LessThan", func(t *testing.T) {
		gt, err := USD(10).GreaterThan(USD(5))
		if err != nil || !gt {
			t.Fatalf("expected 10 > 5, got %v err %v", gt, err)
		}
		lt, err := USD(5).LessThan(USD(10))
		if err != nil || !lt {
			t.Fatalf("expected 5 < 10, got %v err %v", lt, err)
		}
	})

	t.Run("Equal ignores representation scale", func(t *testing.T) {
		a := NewMoney(decimal.RequireFromString("2.0"), "USD")
		b := NewMoney(decimal.RequireFromString("2.00"), "USD")
		eq, err := a.Equal(b)
		if err != nil || !eq {
			t.Fatalf("expected 2.0 == 2.00, got %v err %v", eq, err)
		}
	})

	t.Run("comparisons fail across currencies", func(t *testing.T) {
		if _, err := USD(1).GreaterThan(MoneyFromFloat(1, "EUR")); !errors.Is(err, pricingdomain.ErrCurrencyMismatch) {
			t.Fatalf("expected ErrCurrencyMismatch, got %v", err)
		}
		if _, err := USD(1).Equal(MoneyFromFloat(1, "EUR")); !errors.Is(err, pricingdomain.ErrCurrencyMismatch) {
			t.Fatalf("expected ErrCurrencyMismatch, got %v", err)
		}
	})

	t.Run("Is never errors and is false across currencies", func(t *testing.T) {
		if USD(1).Is(MoneyFromFloat(1, "EUR")) {
			t.Fatal("expected false for different currencies")
		}
		if !USD(1).Is(USD(1)) {
			t.Fatal("expected true for identical values")
		}
	})
}

func TestMoneyString(t *testing.T) {
	if got := USD(100).String(); got != "100.00 USD" {
		t.Fatalf("expected %q, got %q", "100.00 USD", got)
	}
}
