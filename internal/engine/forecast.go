package engine

import (
	"time"

	"srvburn/internal/model"
)

// Month-count clamp bounds for ForecastMonthly.
const (
	MinForecastMonths     = 1
	MaxForecastMonths     = 120
	DefaultForecastMonths = 12
)

// ClampMonths bounds a forecast length to the supported range.
func ClampMonths(months int) int {
	if months < MinForecastMonths {
		return MinForecastMonths
	}
	if months > MaxForecastMonths {
		return MaxForecastMonths
	}
	return months
}

// ForecastMonthly produces a step-function spend forecast: for each of the
// next monthsAhead months, the sum of monthlyCost over servers whose expiry
// is strictly after the first day of that month (local midnight).
//
// This is deliberately coarser than the day-prorated horizon total in
// Compute: a server counts for its full monthly price in any month it
// survives into, and for nothing afterwards. The two conventions are not
// reconciled; the forecast feeds trend charts, the horizon total feeds the
// spend summary.
func ForecastMonthly(servers []model.Server, monthsAhead int, now time.Time) []model.ForecastPoint {
	if now.IsZero() {
		now = time.Now()
	}
	monthsAhead = ClampMonths(monthsAhead)

	points := make([]model.ForecastPoint, 0, monthsAhead)
	for i := 1; i <= monthsAhead; i++ {
		target := time.Date(now.Year(), now.Month()+time.Month(i), 1, 0, 0, 0, 0, now.Location())

		var cost float64
		for _, s := range servers {
			if s.MonthlyCost <= 0 || !s.ExpiryValid {
				continue
			}
			if s.Expiry.After(target) {
				cost += s.MonthlyCost
			}
		}
		points = append(points, model.ForecastPoint{Month: target, Cost: cost})
	}
	return points
}
