package cli

import (
	"math"
	"testing"
	"time"
)

func TestFormatMoney_EnglishGrouping(t *testing.T) {
	cfg := MoneyConfig{Symbol: "$", Locale: "en", MinFractionDigits: 2, MaxFractionDigits: 2}

	got := FormatMoney(1234.5, cfg)
	if got != "$1,234.50" {
		t.Errorf("FormatMoney = %q, want $1,234.50", got)
	}
}

func TestFormatMoney_GermanGrouping(t *testing.T) {
	cfg := MoneyConfig{Symbol: "€", Locale: "de", MinFractionDigits: 2, MaxFractionDigits: 2}

	got := FormatMoney(1234.5, cfg)
	if got != "€1.234,50" {
		t.Errorf("FormatMoney = %q, want €1.234,50", got)
	}
}

func TestFormatMoney_NonFiniteRendersZero(t *testing.T) {
	cfg := MoneyConfig{Symbol: "$", Locale: "en", MinFractionDigits: 2, MaxFractionDigits: 2}

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if got := FormatMoney(v, cfg); got != "$0.00" {
			t.Errorf("FormatMoney(%v) = %q, want $0.00", v, got)
		}
	}
}

func TestFormatMoney_Fallbacks(t *testing.T) {
	// Unknown locale falls back to English grouping; empty symbol to "$".
	got := FormatMoney(1000, MoneyConfig{Locale: "zz-invalid", MinFractionDigits: 2, MaxFractionDigits: 2})
	if got != "$1,000.00" {
		t.Errorf("FormatMoney = %q, want $1,000.00", got)
	}
}

func TestFormatMoney_FractionDigits(t *testing.T) {
	cfg := MoneyConfig{Symbol: "$", Locale: "en", MinFractionDigits: 0, MaxFractionDigits: 1}
	if got := FormatMoney(9.86, cfg); got != "$9.9" {
		t.Errorf("FormatMoney = %q, want $9.9", got)
	}
}

func TestMonthLabel(t *testing.T) {
	got := MonthLabel(time.Date(2026, 2, 1, 0, 0, 0, 0, time.Local))
	if got != "Feb 2026" {
		t.Errorf("MonthLabel = %q, want Feb 2026", got)
	}
}

func TestFormatDaysLeft(t *testing.T) {
	cases := []struct {
		days int
		want string
	}{
		{-3, "expired"},
		{0, "today"},
		{42, "42d"},
	}
	for _, tc := range cases {
		if got := FormatDaysLeft(tc.days); got != tc.want {
			t.Errorf("FormatDaysLeft(%d) = %q, want %q", tc.days, got, tc.want)
		}
	}
}

func TestFormatDelta(t *testing.T) {
	cfg := MoneyConfig{Symbol: "$", Locale: "en", MinFractionDigits: 2, MaxFractionDigits: 2}
	if got := FormatDelta(12, 10, cfg); got != "+$2.00" {
		t.Errorf("FormatDelta = %q, want +$2.00", got)
	}
	if got := FormatDelta(10, 12, cfg); got != "-$2.00" {
		t.Errorf("FormatDelta = %q, want -$2.00", got)
	}
}

func TestSparklineLength(t *testing.T) {
	// One block rune per value; zero peak must not divide by zero.
	got := Sparkline([]float64{0, 0, 0})
	if lineLen(got) != 3 {
		t.Errorf("sparkline rune count = %d, want 3", lineLen(got))
	}
}

// lineLen counts block runes, skipping ANSI style sequences.
func lineLen(s string) int {
	n := 0
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEscape = true
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		default:
			n++
		}
	}
	return n
}
