// Package cli provides formatting and rendering helpers for terminal output.
package cli

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// MoneyConfig controls currency rendering. It is injected by callers; no
// formatting decision is read from ambient process state.
type MoneyConfig struct {
	Symbol            string
	Locale            string
	MinFractionDigits int
	MaxFractionDigits int
}

// DefaultMoney is the fallback used when no configuration is supplied.
var DefaultMoney = MoneyConfig{
	Symbol:            "$",
	Locale:            "en",
	MinFractionDigits: 2,
	MaxFractionDigits: 2,
}

// FormatMoney renders an amount as symbol prefix plus locale-grouped number.
// Non-finite amounts render as zero: a NaN must never reach the display
// layer. This is presentation only and carries no accounting semantics.
func FormatMoney(amount float64, cfg MoneyConfig) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	if cfg.Symbol == "" {
		cfg.Symbol = DefaultMoney.Symbol
	}
	if cfg.MaxFractionDigits < cfg.MinFractionDigits {
		cfg.MaxFractionDigits = cfg.MinFractionDigits
	}

	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		tag = language.English
	}

	p := message.NewPrinter(tag)
	formatted := p.Sprint(number.Decimal(amount,
		number.MinFractionDigits(cfg.MinFractionDigits),
		number.MaxFractionDigits(cfg.MaxFractionDigits),
	))

	return cfg.Symbol + formatted
}

// FormatMoneyPerDay renders a daily rate, e.g. "$9.86/day".
func FormatMoneyPerDay(amount float64, cfg MoneyConfig) string {
	return FormatMoney(amount, cfg) + "/day"
}

// MonthLabel renders the short month/year label used by the forecast chart.
func MonthLabel(t time.Time) string {
	return t.Format("Jan 2006")
}

// FormatDaysLeft renders a days-until-expiry cell.
func FormatDaysLeft(days int) string {
	if days < 0 {
		return "expired"
	}
	if days == 0 {
		return "today"
	}
	return fmt.Sprintf("%dd", days)
}

// FormatDelta renders a signed money delta against a previous value.
func FormatDelta(current, previous float64, cfg MoneyConfig) string {
	delta := current - previous
	if delta >= 0 {
		return "+" + FormatMoney(delta, cfg)
	}
	return "-" + FormatMoney(-delta, cfg)
}
