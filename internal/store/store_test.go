package store

import (
	"path/filepath"
	"testing"
	"time"

	"srvburn/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSaveAndListSnapshots(t *testing.T) {
	s := openTestStore(t)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		err := s.SaveSnapshot(model.Snapshot{
			At:             base.Add(time.Duration(i) * time.Hour),
			TotalDailyCost: float64(10 + i),
			TotalInHorizon: float64(1000 + i),
			ActiveServers:  5 + i,
			HorizonDays:    365,
			Mode:           model.ModeProrated,
		})
		if err != nil {
			t.Fatalf("SaveSnapshot: %v", err)
		}
	}

	snaps, err := s.ListSnapshots(0)
	if err != nil {
		t.Fatalf("ListSnapshots: %v", err)
	}
	if len(snaps) != 3 {
		t.Fatalf("got %d snapshots, want 3", len(snaps))
	}

	// Most recent first.
	if !snaps[0].At.After(snaps[1].At) || !snaps[1].At.After(snaps[2].At) {
		t.Errorf("snapshots not in reverse chronological order: %v", snaps)
	}
	if snaps[0].TotalDailyCost != 12 || snaps[0].ActiveServers != 7 {
		t.Errorf("latest snapshot fields wrong: %+v", snaps[0])
	}
	if snaps[0].Mode != model.ModeProrated {
		t.Errorf("Mode = %q, want %q", snaps[0].Mode, model.ModeProrated)
	}
}

func TestListSnapshots_Limit(t *testing.T) {
	s := openTestStore(t)

	for i := 0; i < 5; i++ {
		if err := s.SaveSnapshot(model.Snapshot{TotalDailyCost: float64(i)}); err != nil {
			t.Fatalf("SaveSnapshot: %v", err)
		}
	}

	snaps, err := s.ListSnapshots(2)
	if err != nil {
		t.Fatalf("ListSnapshots: %v", err)
	}
	if len(snaps) != 2 {
		t.Errorf("got %d snapshots, want 2", len(snaps))
	}
}

func TestLatestSnapshot_Empty(t *testing.T) {
	s := openTestStore(t)

	snap, err := s.LatestSnapshot()
	if err != nil {
		t.Fatalf("LatestSnapshot: %v", err)
	}
	if snap != nil {
		t.Errorf("expected nil snapshot for empty history, got %+v", snap)
	}
}
