package daemon

import (
	"context"
	"testing"
	"time"

	"srvburn/internal/model"
	"srvburn/internal/source"
)

func TestReportChanged(t *testing.T) {
	base := model.Report{TotalDailyCost: 10, TotalInHorizon: 300, ActiveServers: 3}

	if reportChanged(base, base) {
		t.Error("identical figures should not count as changed")
	}

	moved := base
	moved.TotalDailyCost = 11
	if !reportChanged(base, moved) {
		t.Error("daily cost change should count as changed")
	}

	moved = base
	moved.ActiveServers = 2
	if !reportChanged(base, moved) {
		t.Error("active server change should count as changed")
	}
}

func TestPollOnce_ComputesReport(t *testing.T) {
	svc := New(Config{ServersFile: "unused", HorizonDays: 365})
	expiry := time.Now().Add(100 * 24 * time.Hour)
	svc.fetch = func(context.Context) (*source.LoadResult, error) {
		return &source.LoadResult{Servers: []model.Server{{
			Name:        "web",
			MonthlyCost: 30,
			Expiry:      expiry,
			ExpiryValid: true,
		}}}, nil
	}

	svc.pollOnce(context.Background())

	svc.mu.RLock()
	defer svc.mu.RUnlock()
	if !svc.hasReport {
		t.Fatal("expected a report after poll")
	}
	if svc.report.ActiveServers != 1 {
		t.Errorf("ActiveServers = %d, want 1", svc.report.ActiveServers)
	}
	if svc.report.TotalDailyCost <= 0 {
		t.Errorf("TotalDailyCost = %v, want positive", svc.report.TotalDailyCost)
	}
	if svc.pollCount != 1 {
		t.Errorf("pollCount = %d, want 1", svc.pollCount)
	}
}

func TestPollOnce_NotListYieldsZeroedReport(t *testing.T) {
	svc := New(Config{ServersFile: "unused"})
	svc.fetch = func(context.Context) (*source.LoadResult, error) {
		return nil, source.ErrNotList
	}

	svc.pollOnce(context.Background())

	svc.mu.RLock()
	defer svc.mu.RUnlock()
	if !svc.hasReport {
		t.Fatal("structurally invalid input should still produce a (zeroed) report")
	}
	if svc.report.ActiveServers != 0 || svc.report.TotalDailyCost != 0 {
		t.Errorf("expected zeroed report, got %+v", svc.report)
	}
	if svc.lastError != "" {
		t.Errorf("ErrNotList is absorbed, lastError = %q", svc.lastError)
	}
}

func TestPollOnce_LoadErrorKeepsLastReport(t *testing.T) {
	svc := New(Config{ServersFile: "unused"})
	svc.fetch = func(context.Context) (*source.LoadResult, error) {
		return &source.LoadResult{}, nil
	}
	svc.pollOnce(context.Background())

	svc.fetch = func(context.Context) (*source.LoadResult, error) {
		return nil, context.DeadlineExceeded
	}
	svc.pollOnce(context.Background())

	svc.mu.RLock()
	defer svc.mu.RUnlock()
	if !svc.hasReport {
		t.Error("previous report should survive a failed poll")
	}
	if svc.lastError == "" {
		t.Error("failed poll should record lastError")
	}
	if svc.pollCount != 2 {
		t.Errorf("pollCount = %d, want 2", svc.pollCount)
	}
}
