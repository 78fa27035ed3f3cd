// Package model defines domain types for srvburn servers and reports.
package model

import (
	"encoding/json"
	"time"
)

// RawServer is the wire shape of one server record in the data source.
// Expire is left raw because sources disagree on its shape: an RFC3339-ish
// string, a plain calendar date, or an epoch number all occur in the wild.
type RawServer struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	MonthlyCost float64         `json:"monthlyCost"`
	Expire      json.RawMessage `json:"expire"`
}

// Server is a normalized record. Expiry is parsed exactly once at ingestion;
// everything downstream compares instants only.
type Server struct {
	ID          string
	Name        string
	MonthlyCost float64
	Expiry      time.Time
	ExpiryValid bool
	RawExpiry   string // original expire text, kept for warning messages
}

// Label returns the best human-readable identifier for warnings and tables.
func (s Server) Label() string {
	if s.Name != "" {
		return s.Name
	}
	if s.ID != "" {
		return s.ID
	}
	return "(unnamed)"
}

// DaysLeft returns whole days until expiry relative to now, negative if past.
func (s Server) DaysLeft(now time.Time) int {
	return int(s.Expiry.Sub(now).Hours() / 24)
}
