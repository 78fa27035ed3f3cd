package engine

import (
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"srvburn/internal/model"
)

func date(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.Local)
}

func validServer(name string, monthly float64, expiry time.Time) model.Server {
	return model.Server{
		Name:        name,
		MonthlyCost: monthly,
		Expiry:      expiry,
		ExpiryValid: true,
	}
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}

func TestCompute_ProratesToExpiryInsideHorizon(t *testing.T) {
	now := date(2025, 6, 1, 12, 0)
	servers := []model.Server{
		validServer("web-1", 300, now.Add(10*24*time.Hour)),
	}

	r := Compute(servers, Options{Now: now, HorizonDays: 365})

	wantHorizon := 300 / AvgDaysPerMonth * 10 // about 98.56
	if !approxEqual(r.TotalInHorizon, wantHorizon) {
		t.Errorf("TotalInHorizon = %.4f, want %.4f", r.TotalInHorizon, wantHorizon)
	}
	wantDaily := 300 / AvgDaysPerMonth // about 9.856
	if !approxEqual(r.TotalDailyCost, wantDaily) {
		t.Errorf("TotalDailyCost = %.4f, want %.4f", r.TotalDailyCost, wantDaily)
	}
	if r.ActiveServers != 1 {
		t.Errorf("ActiveServers = %d, want 1", r.ActiveServers)
	}
	if len(r.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", r.Warnings)
	}
}

func TestCompute_DailyBurnIsExactSumOverActive(t *testing.T) {
	now := date(2025, 6, 1, 12, 0)
	servers := []model.Server{
		validServer("a", 100, now.Add(30*24*time.Hour)),
		validServer("b", 250, now.Add(400*24*time.Hour)),
		validServer("expired", 999, now.Add(-24*time.Hour)),
	}

	r := Compute(servers, Options{Now: now, HorizonDays: 365})

	want := 100/AvgDaysPerMonth + 250/AvgDaysPerMonth
	if !approxEqual(r.TotalDailyCost, want) {
		t.Errorf("TotalDailyCost = %.4f, want %.4f", r.TotalDailyCost, want)
	}
	if r.ActiveServers != 2 {
		t.Errorf("ActiveServers = %d, want 2", r.ActiveServers)
	}
}

func TestCompute_EmptyList(t *testing.T) {
	now := date(2025, 6, 1, 12, 0)

	r := Compute(nil, Options{Now: now, HorizonDays: 365})

	if r.TotalInHorizon != 0 || r.TotalDailyCost != 0 || r.ActiveServers != 0 {
		t.Errorf("expected zeroed report, got %+v", r)
	}
	if len(r.Warnings) != 1 {
		t.Fatalf("Warnings = %v, want exactly one no-data warning", r.Warnings)
	}
}

func TestCompute_ExpiredContributesNothing(t *testing.T) {
	now := date(2025, 6, 1, 12, 0)
	servers := []model.Server{
		validServer("old", 500, now.Add(-10*24*time.Hour)),
		validServer("exactly-now", 500, now),
	}

	r := Compute(servers, Options{Now: now, HorizonDays: 365})

	if r.TotalInHorizon != 0 {
		t.Errorf("TotalInHorizon = %.4f, want 0", r.TotalInHorizon)
	}
	if r.ActiveServers != 0 {
		t.Errorf("ActiveServers = %d, want 0 (expiry must be strictly after now)", r.ActiveServers)
	}
}

func TestCompute_FreeRecordsSkippedSilently(t *testing.T) {
	now := date(2025, 6, 1, 12, 0)
	servers := []model.Server{
		validServer("free", 0, now.Add(100*24*time.Hour)),
		validServer("negative", -5, now.Add(100*24*time.Hour)),
	}

	r := Compute(servers, Options{Now: now, HorizonDays: 365})

	if r.TotalServers != 0 || r.ActiveServers != 0 || r.TotalInHorizon != 0 {
		t.Errorf("free records must be excluded, got %+v", r)
	}
	if len(r.Warnings) != 0 {
		t.Errorf("free records must not warn, got %v", r.Warnings)
	}
}

func TestCompute_UnparsableExpiryWarnsAndIsExcluded(t *testing.T) {
	now := date(2025, 6, 1, 12, 0)
	servers := []model.Server{
		{Name: "broken", MonthlyCost: 100, RawExpiry: "not-a-date"},
		validServer("good", 200, now.Add(20*24*time.Hour)),
	}

	r := Compute(servers, Options{Now: now, HorizonDays: 365})

	if len(r.Warnings) != 1 {
		t.Fatalf("Warnings = %v, want exactly one", r.Warnings)
	}
	for _, needle := range []string{"broken", "not-a-date"} {
		if !strings.Contains(r.Warnings[0], needle) {
			t.Errorf("warning %q should mention %q", r.Warnings[0], needle)
		}
	}

	// The valid record is still aggregated.
	wantDaily := 200 / AvgDaysPerMonth
	if !approxEqual(r.TotalDailyCost, wantDaily) {
		t.Errorf("TotalDailyCost = %.4f, want %.4f", r.TotalDailyCost, wantDaily)
	}
	if r.ActiveServers != 1 {
		t.Errorf("ActiveServers = %d, want 1", r.ActiveServers)
	}
}

func TestCompute_HorizonClamp(t *testing.T) {
	now := date(2025, 6, 1, 12, 0)
	servers := []model.Server{
		validServer("forever", 100, now.AddDate(100, 0, 0)),
	}

	zero := Compute(servers, Options{Now: now, HorizonDays: 0})
	one := Compute(servers, Options{Now: now, HorizonDays: 1})
	if !approxEqual(zero.TotalInHorizon, one.TotalInHorizon) {
		t.Errorf("horizon 0 (%.4f) should behave like horizon 1 (%.4f)",
			zero.TotalInHorizon, one.TotalInHorizon)
	}

	huge := Compute(servers, Options{Now: now, HorizonDays: 100000})
	capped := Compute(servers, Options{Now: now, HorizonDays: MaxHorizonDays})
	if !approxEqual(huge.TotalInHorizon, capped.TotalInHorizon) {
		t.Errorf("horizon 100000 (%.4f) should behave like horizon %d (%.4f)",
			huge.TotalInHorizon, MaxHorizonDays, capped.TotalInHorizon)
	}
}

func TestCompute_Idempotent(t *testing.T) {
	now := date(2025, 6, 1, 12, 0)
	servers := []model.Server{
		validServer("a", 120, now.Add(45*24*time.Hour)),
		{Name: "bad", MonthlyCost: 10, RawExpiry: "???"},
	}
	opts := Options{Now: now, HorizonDays: 90}

	first := Compute(servers, opts)
	second := Compute(servers, opts)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated calls diverged:\n%+v\n%+v", first, second)
	}
}

func TestCompute_MonotoneInActiveServers(t *testing.T) {
	now := date(2025, 6, 1, 12, 0)
	far := now.AddDate(2, 0, 0)

	var servers []model.Server
	prev := Compute(servers, Options{Now: now, HorizonDays: 365})
	for i := 0; i < 5; i++ {
		servers = append(servers, validServer("s", 100, far))
		r := Compute(servers, Options{Now: now, HorizonDays: 365})
		if r.TotalInHorizon < prev.TotalInHorizon || r.TotalDailyCost < prev.TotalDailyCost {
			t.Fatalf("totals decreased after adding a server: %+v -> %+v", prev, r)
		}
		prev = r
	}
}

func TestCompute_FlatMode(t *testing.T) {
	now := date(2025, 6, 1, 12, 0)
	servers := []model.Server{
		validServer("a", 100, now.Add(5*24*time.Hour)),  // expires soon
		validServer("b", 50, now.Add(-24*time.Hour)),    // already expired
		{Name: "c", MonthlyCost: 25, RawExpiry: "junk"}, // unparsable
	}

	r := Compute(servers, Options{Now: now, HorizonDays: 365, Mode: model.ModeFlat})

	// Flat mode ignores expiry entirely: all three records count.
	wantYearly := (100.0 + 50.0 + 25.0) * 12
	if !approxEqual(r.YearlyTotal, wantYearly) {
		t.Errorf("YearlyTotal = %.2f, want %.2f", r.YearlyTotal, wantYearly)
	}
	if !approxEqual(r.TotalDailyCost, wantYearly/365) {
		t.Errorf("TotalDailyCost = %.4f, want %.4f", r.TotalDailyCost, wantYearly/365)
	}
	if !approxEqual(r.TotalInHorizon, wantYearly) {
		t.Errorf("TotalInHorizon over 365d = %.2f, want %.2f", r.TotalInHorizon, wantYearly)
	}
	if r.Mode != model.ModeFlat {
		t.Errorf("Mode = %q, want %q", r.Mode, model.ModeFlat)
	}
}

func TestCompute_FlatOverstatesVsProrated(t *testing.T) {
	now := date(2025, 6, 1, 12, 0)
	servers := []model.Server{
		validServer("soon", 300, now.Add(10*24*time.Hour)),
	}

	flat := Compute(servers, Options{Now: now, HorizonDays: 365, Mode: model.ModeFlat})
	pro := Compute(servers, Options{Now: now, HorizonDays: 365, Mode: model.ModeProrated})

	if flat.TotalInHorizon <= pro.TotalInHorizon {
		t.Errorf("flat (%.2f) should overstate prorated (%.2f) for a soon-expiring server",
			flat.TotalInHorizon, pro.TotalInHorizon)
	}
}

func TestServerBurn(t *testing.T) {
	now := date(2025, 6, 1, 12, 0)
	s := validServer("web", 300, now.Add(10*24*time.Hour))

	daily, horizon, active := ServerBurn(s, now, 365)
	if !active {
		t.Error("server should be active")
	}
	if !approxEqual(daily, 300/AvgDaysPerMonth) {
		t.Errorf("daily = %.4f, want %.4f", daily, 300/AvgDaysPerMonth)
	}
	if !approxEqual(horizon, 300/AvgDaysPerMonth*10) {
		t.Errorf("horizon = %.4f, want %.4f", horizon, 300/AvgDaysPerMonth*10)
	}

	daily, horizon, active = ServerBurn(model.Server{Name: "bad", MonthlyCost: 10}, now, 365)
	if active || daily != 0 || horizon != 0 {
		t.Error("invalid expiry should contribute nothing")
	}
}
