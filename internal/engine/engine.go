// Package engine computes spend aggregates over in-memory server lists.
// It is pure: every entry point takes the server list and reference time as
// explicit parameters and performs no I/O.
package engine

import (
	"fmt"
	"time"

	"srvburn/internal/model"
)

// AvgDaysPerMonth is the mean Gregorian month length (365.2425 / 12).
// Dividing by a flat 30 systematically over-counts across a year.
const AvgDaysPerMonth = 365.2425 / 12

// Horizon clamp bounds. The clamp keeps the bounded loops small no matter
// what a caller passes, so no cancellation mechanism is needed.
const (
	MinHorizonDays     = 1
	MaxHorizonDays     = 3660
	DefaultHorizonDays = 365
)

// Options configures one Compute call.
type Options struct {
	// Now is the reference instant. Zero means time.Now().
	Now time.Time
	// HorizonDays is clamped to [MinHorizonDays, MaxHorizonDays]. Callers
	// wanting the conventional one-year window pass DefaultHorizonDays.
	HorizonDays int
	// Mode selects the accounting convention; empty means ModeProrated.
	Mode model.Mode
}

// ClampHorizon bounds a horizon length to the supported range.
func ClampHorizon(days int) int {
	if days < MinHorizonDays {
		return MinHorizonDays
	}
	if days > MaxHorizonDays {
		return MaxHorizonDays
	}
	return days
}

// Compute aggregates the server list into a Report.
//
// Per record with MonthlyCost > 0:
//   - an unparsable expiry yields one warning naming the record and its raw
//     value, and the record contributes to no total;
//   - a record is active iff its expiry is strictly after now; active records
//     count toward ActiveServers and add monthlyCost/AvgDaysPerMonth to the
//     daily burn;
//   - the horizon total takes min(expiry, now+horizon) and charges the daily
//     rate for the days between now and that effective end.
//
// Records with MonthlyCost <= 0 are treated as free or inactive and skipped
// without a warning. An empty list produces a zeroed report with a single
// "no data" warning. Malformed individual records never abort the pass.
func Compute(servers []model.Server, opts Options) model.Report {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	horizonDays := ClampHorizon(opts.HorizonDays)
	mode := opts.Mode
	if mode == "" {
		mode = model.ModeProrated
	}

	report := model.Report{
		Mode:        mode,
		HorizonDays: horizonDays,
		GeneratedAt: now,
	}

	if len(servers) == 0 {
		report.Warnings = append(report.Warnings, "no server data")
		return report
	}

	horizonEnd := now.Add(time.Duration(horizonDays) * 24 * time.Hour)

	for _, s := range servers {
		if s.MonthlyCost <= 0 {
			continue
		}
		report.TotalServers++

		// The flat yearly figure ignores expiry entirely, so it is summed
		// before any expiry validation.
		report.YearlyTotal += s.MonthlyCost * 12

		if !s.ExpiryValid {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("server %s: unparsable expiry date %q", s.Label(), s.RawExpiry))
			continue
		}

		if s.Expiry.After(now) {
			report.ActiveServers++
			if mode == model.ModeProrated {
				report.TotalDailyCost += s.MonthlyCost / AvgDaysPerMonth
			}
		}

		if mode == model.ModeProrated {
			effectiveEnd := s.Expiry
			if horizonEnd.Before(effectiveEnd) {
				effectiveEnd = horizonEnd
			}
			if effectiveEnd.After(now) {
				days := effectiveEnd.Sub(now).Hours() / 24
				report.TotalInHorizon += days * s.MonthlyCost / AvgDaysPerMonth
			}
		}
	}

	if mode == model.ModeFlat {
		report.TotalDailyCost = report.YearlyTotal / 365
		report.TotalInHorizon = report.YearlyTotal * float64(horizonDays) / 365
	}

	return report
}

// ServerBurn returns one record's daily rate, its pro-rated contribution to
// the horizon total, and whether it is currently active. Used by the per
// server table; the aggregate path in Compute stays the source of truth.
func ServerBurn(s model.Server, now time.Time, horizonDays int) (daily, horizon float64, active bool) {
	if s.MonthlyCost <= 0 || !s.ExpiryValid {
		return 0, 0, false
	}
	horizonEnd := now.Add(time.Duration(ClampHorizon(horizonDays)) * 24 * time.Hour)

	active = s.Expiry.After(now)
	if active {
		daily = s.MonthlyCost / AvgDaysPerMonth
	}

	effectiveEnd := s.Expiry
	if horizonEnd.Before(effectiveEnd) {
		effectiveEnd = horizonEnd
	}
	if effectiveEnd.After(now) {
		days := effectiveEnd.Sub(now).Hours() / 24
		horizon = days * s.MonthlyCost / AvgDaysPerMonth
	}
	return daily, horizon, active
}
