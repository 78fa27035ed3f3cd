// Package daemon provides the long-running spend watcher service.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"srvburn/internal/engine"
	"srvburn/internal/model"
	"srvburn/internal/source"
	"srvburn/internal/store"
)

// Config controls the daemon runtime behavior.
type Config struct {
	// ServersFile is the JSON file polled for the fleet; ServersURL takes
	// precedence when non-empty.
	ServersFile string
	ServersURL  string

	HorizonDays int
	Mode        model.Mode
	Interval    time.Duration
	Addr        string

	// StorePath is the snapshot database; empty disables history writes.
	StorePath string
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time    `json:"started_at"`
	LastPollAt      time.Time    `json:"last_poll_at"`
	PollIntervalSec int          `json:"poll_interval_sec"`
	PollCount       int64        `json:"poll_count"`
	HorizonDays     int          `json:"horizon_days"`
	Mode            model.Mode   `json:"mode"`
	Report          model.Report `json:"report"`
	LastError       string       `json:"last_error,omitempty"`
}

// Service polls the data source and exposes the latest report over HTTP.
type Service struct {
	cfg   Config
	hist  *store.Store // nil when history is disabled or unavailable
	fetch func(ctx context.Context) (*source.LoadResult, error)

	mu         sync.RWMutex
	startedAt  time.Time
	lastPollAt time.Time
	pollCount  int64
	lastError  string
	hasReport  bool
	report     model.Report
}

// New returns a daemon service with the provided config.
func New(cfg Config) *Service {
	if cfg.Interval < 2*time.Second {
		cfg.Interval = 60 * time.Second
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8766"
	}
	if cfg.Mode == "" {
		cfg.Mode = model.ModeProrated
	}

	s := &Service{
		cfg:       cfg,
		startedAt: time.Now(),
	}
	s.fetch = s.load

	if cfg.StorePath != "" {
		hist, err := store.Open(cfg.StorePath)
		if err != nil {
			// History is best-effort: polling and status stay useful
			// without it.
			log.Printf("srvburn daemon: history unavailable: %v", err)
		} else {
			s.hist = hist
		}
	}
	return s
}

// Run starts HTTP endpoints and polling until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/status", s.handleStatus)
	mux.HandleFunc("/v1/report", s.handleReport)

	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Seed an initial report so status is useful immediately.
	s.pollOnce(ctx)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if s.hist != nil {
				_ = s.hist.Close()
			}
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
			s.pollOnce(ctx)
		case err := <-errCh:
			return fmt.Errorf("daemon http server: %w", err)
		}
	}
}

func (s *Service) pollOnce(ctx context.Context) {
	result, err := s.fetch(ctx)

	now := time.Now()
	var report model.Report
	switch {
	case errors.Is(err, source.ErrNotList):
		// Structurally invalid input mirrors the empty-list case: a zeroed
		// report, not a dead daemon.
		report = engine.Compute(nil, engine.Options{
			Now: now, HorizonDays: s.cfg.HorizonDays, Mode: s.cfg.Mode,
		})
		err = nil
	case err != nil:
		s.mu.Lock()
		s.lastError = err.Error()
		s.lastPollAt = now
		s.pollCount++
		s.mu.Unlock()
		log.Printf("srvburn daemon poll error: %v", err)
		return
	default:
		report = engine.Compute(result.Servers, engine.Options{
			Now: now, HorizonDays: s.cfg.HorizonDays, Mode: s.cfg.Mode,
		})
	}

	s.mu.Lock()
	prev := s.report
	prevExists := s.hasReport
	s.hasReport = true
	s.report = report
	s.lastPollAt = now
	s.pollCount++
	s.lastError = ""
	s.mu.Unlock()

	if s.hist != nil && (!prevExists || reportChanged(prev, report)) {
		snap := model.Snapshot{
			At:             now,
			TotalDailyCost: report.TotalDailyCost,
			TotalInHorizon: report.TotalInHorizon,
			ActiveServers:  report.ActiveServers,
			HorizonDays:    report.HorizonDays,
			Mode:           report.Mode,
		}
		if err := s.hist.SaveSnapshot(snap); err != nil {
			log.Printf("srvburn daemon: snapshot save failed: %v", err)
		}
	}
}

// reportChanged reports whether the figures a subscriber cares about moved.
func reportChanged(a, b model.Report) bool {
	return a.TotalDailyCost != b.TotalDailyCost ||
		a.TotalInHorizon != b.TotalInHorizon ||
		a.ActiveServers != b.ActiveServers
}

func (s *Service) load(ctx context.Context) (*source.LoadResult, error) {
	if s.cfg.ServersURL != "" {
		return source.FetchURL(ctx, s.cfg.ServersURL)
	}
	return source.LoadFile(s.cfg.ServersFile)
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	status := Status{
		StartedAt:       s.startedAt,
		LastPollAt:      s.lastPollAt,
		PollIntervalSec: int(s.cfg.Interval.Seconds()),
		PollCount:       s.pollCount,
		HorizonDays:     s.cfg.HorizonDays,
		Mode:            s.cfg.Mode,
		Report:          s.report,
		LastError:       s.lastError,
	}
	s.mu.RUnlock()

	writeJSON(w, status)
}

func (s *Service) handleReport(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	report := s.report
	hasReport := s.hasReport
	s.mu.RUnlock()

	if !hasReport {
		http.Error(w, "no report yet", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, report)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("srvburn daemon: encoding response: %v", err)
	}
}
