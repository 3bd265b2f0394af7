package session

import (
	"fmt"
	"math"
	"time"

	"shiprekt/internal/bybit/stream"
	"shiprekt/internal/bybit/symbol"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// unknownCurrency is displayed when the ticker yields no base currency.
const unknownCurrency = "UNKNOWN"

var enPrinter = message.NewPrinter(language.English)

// formatDecimal renders v with thousands separators and at most maxFrac
// fractional digits, trailing zeros dropped.
func formatDecimal(v float64, maxFrac int) string {
	return enPrinter.Sprint(number.Decimal(v, number.MaxFractionDigits(maxFrac)))
}

// Notification renders one liquidation event as the human-readable message
// handed to the notifier.
func Notification(ev *stream.LiquidationEvent) string {
	side := "Short"
	if ev.Side == "Buy" {
		side = "Long"
	}

	currency := unknownCurrency
	if base, err := symbol.BaseCurrency(ev.Symbol); err == nil {
		currency = base
	}
	if symbol.IsLinearPerpetual(ev.Symbol) {
		// linear contracts are margined in the stable quote, not the base
		currency = "USDT"
	}

	kind := "Perpetual futures"
	if symbol.IsDatedFuture(ev.Symbol) {
		kind = "Futures"
	}

	// bankruptcy notional, rounded to 3 decimal places
	worth := math.Round(ev.Price*float64(ev.Qty)*1000) / 1000

	sec := int64(ev.TimeMS / 1000)
	ns := int64(ev.TimeMS%1000) * int64(time.Millisecond)
	when := time.Unix(sec, ns).UTC().Format("2006-01-02 15:04:05 UTC")

	return fmt.Sprintf("Bybit shiprekt a %s position of %s %s (worth $%s) on the %s %s contract at $%s - %s",
		side,
		formatDecimal(float64(ev.Qty), 0),
		currency,
		formatDecimal(worth, 3),
		ev.Symbol,
		kind,
		formatDecimal(ev.Price, 10),
		when)
}
