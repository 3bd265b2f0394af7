package symbol

import (
	"errors"
	"testing"
)

func TestBaseCurrency(t *testing.T) {
	cases := []struct {
		ticker string
		want   string
	}{
		{"BTCUSDT", "BTC"},
		{"BTCUSD", "BTC"},
		{"ETHUSDM22", "ETH"},
		{"XRPUSD0325", "XRP"},
	}

	for _, c := range cases {
		got, err := BaseCurrency(c.ticker)
		if err != nil {
			t.Errorf("BaseCurrency(%q) returned error: %v", c.ticker, err)
			continue
		}
		if got != c.want {
			t.Errorf("BaseCurrency(%q) = %q, want %q", c.ticker, got, c.want)
		}
	}
}

func TestBaseCurrencyWithoutUSDQuote(t *testing.T) {
	for _, ticker := range []string{"ETHBTC", "BTCEUR", ""} {
		if _, err := BaseCurrency(ticker); !errors.Is(err, ErrNoBaseCurrency) {
			t.Errorf("BaseCurrency(%q) error = %v, want ErrNoBaseCurrency", ticker, err)
		}
	}
}

func TestIsLinearPerpetual(t *testing.T) {
	cases := []struct {
		ticker string
		want   bool
	}{
		{"BTCUSDT", true},
		{"ETHUSDT", true},
		{"BTCUSD", false},
		{"BTCUSDM22", false},
		// exactly one USDT occurrence is required
		{"BTCUSDTUSDT", false},
		{"ETHBTC", false},
	}

	for _, c := range cases {
		if got := IsLinearPerpetual(c.ticker); got != c.want {
			t.Errorf("IsLinearPerpetual(%q) = %v, want %v", c.ticker, got, c.want)
		}
	}
}

func TestIsDatedFuture(t *testing.T) {
	cases := []struct {
		ticker string
		want   bool
	}{
		// inverse perpetual: nothing after USD
		{"BTCUSD", false},
		// dated inverse futures
		{"BTCUSDM22", true},
		{"ETHUSD0325", true},
		// linear perpetuals are never dated
		{"ETHUSDT", false},
		{"BTCUSDT", false},
		{"ETHBTC", false},
	}

	for _, c := range cases {
		if got := IsDatedFuture(c.ticker); got != c.want {
			t.Errorf("IsDatedFuture(%q) = %v, want %v", c.ticker, got, c.want)
		}
	}
}
