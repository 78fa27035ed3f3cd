package model

import "time"

// Mode selects the cost accounting convention.
type Mode string

const (
	// ModeProrated charges each server only for the days it is active
	// inside the horizon, using the mean Gregorian month length.
	ModeProrated Mode = "prorated"
	// ModeFlat is the legacy convention: monthly cost times twelve per
	// server, expiry ignored. It overstates cost for soon-expiring servers
	// and is kept as an explicitly selectable mode, not fixed.
	ModeFlat Mode = "flat"
)

// Report holds the aggregate figures for one computation. A fresh Report is
// produced on every call; nothing is cached or mutated in place.
type Report struct {
	TotalInHorizon float64  `json:"total_in_horizon"` // spend projected over [now, now+horizon]
	TotalDailyCost float64  `json:"total_daily_cost"` // current daily burn across active servers
	YearlyTotal    float64  `json:"yearly_total"`     // flat figure: sum of monthlyCost x 12
	ActiveServers  int      `json:"active_servers"`   // expiry strictly after the reference instant
	TotalServers   int      `json:"total_servers"`    // records considered (monthlyCost > 0)
	Warnings       []string `json:"warnings,omitempty"`

	Mode        Mode      `json:"mode"`
	HorizonDays int       `json:"horizon_days"`
	GeneratedAt time.Time `json:"generated_at"`
}

// ForecastPoint is one month in the step-function spend forecast.
type ForecastPoint struct {
	Month time.Time `json:"month"` // first day of the month, local midnight
	Cost  float64   `json:"cost"`  // sum of monthlyCost over servers active past Month
}

// Snapshot is one persisted history row of computed aggregates.
type Snapshot struct {
	At             time.Time `json:"at"`
	TotalDailyCost float64   `json:"total_daily_cost"`
	TotalInHorizon float64   `json:"total_in_horizon"`
	ActiveServers  int       `json:"active_servers"`
	HorizonDays    int       `json:"horizon_days"`
	Mode           Mode      `json:"mode"`
}
