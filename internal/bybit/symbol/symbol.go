package symbol

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNoBaseCurrency indicates the ticker carries no "USD" quote part, so the
// base currency cannot be derived. Callers should treat this as "unknown",
// never as fatal.
var ErrNoBaseCurrency = errors.New("symbol: ticker has no USD quote")

// Dated futures keep extra characters after the USD part, e.g. BTCUSDM22 or
// ETHUSD0325. Compiled once; MatchString is safe for concurrent use.
var datedFuturePattern = regexp.MustCompile(`\S+USD\S\S+`)

// BaseCurrency returns the part of the ticker preceding the first "USD"
// occurrence. The quote can be USD, USDT, USDM22, USD0325 and so on, so
// searching for the bare "USD" covers all of them.
func BaseCurrency(ticker string) (string, error) {
	i := strings.Index(ticker, "USD")
	if i < 0 {
		return "", ErrNoBaseCurrency
	}
	return ticker[:i], nil
}

// IsLinearPerpetual reports whether the ticker names a USDT (linear)
// perpetual contract. Bybit lists three kinds of contracts: inverse
// perpetuals (BTCUSD), USDT perpetuals (BTCUSDT) and inverse futures
// (BTCUSDM22); only the USDT perpetual is linear.
//
// The check requires exactly one "USDT" occurrence: a ticker repeating the
// quote is deliberately not treated as linear.
func IsLinearPerpetual(ticker string) bool {
	return strings.Count(ticker, "USDT") == 1
}

// IsDatedFuture reports whether the ticker names a dated (non-perpetual)
// contract such as BTCUSDM22. Linear perpetuals are never dated.
func IsDatedFuture(ticker string) bool {
	if IsLinearPerpetual(ticker) {
		return false
	}
	return datedFuturePattern.MatchString(ticker)
}
