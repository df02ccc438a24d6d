package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Fetcher refreshes the stored payloads for a set of cities.
type Fetcher interface {
	FetchCities(ctx context.Context, cities []string) error
}

// Scheduler refreshes the configured cities on a cron schedule. A run is
// skipped while the previous one is still in flight.
type Scheduler struct {
	fetcher  Fetcher
	logger   *zap.Logger
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	entryID  cron.EntryID
	mu       sync.Mutex
	cities   []string
	running  bool
	inFlight bool
	lastRun  time.Time
	lastErr  error
	runs     sync.WaitGroup
}

func NewScheduler(fetcher Fetcher, cities []string, schedule string, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		fetcher:  fetcher,
		logger:   logger,
		schedule: schedule,
		timeout:  60 * time.Second,
		cities:   cities,
		cron:     cron.New(),
	}
}

func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	id, err := s.cron.AddFunc(s.schedule, s.runFetch)
	if err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", s.schedule, err)
	}
	s.entryID = id
	s.cron.Start()
	s.running = true

	s.logger.Info("Scheduler started",
		zap.String("schedule", s.schedule),
		zap.Time("next_run", s.cron.Entry(id).Next))

	// Run immediately on start
	s.goFetch()
	return nil
}

// goFetch runs a refresh outside cron; Stop waits for it.
func (s *Scheduler) goFetch() {
	s.runs.Add(1)
	go func() {
		defer s.runs.Done()
		s.runFetch()
	}()
}

func (s *Scheduler) runFetch() {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		s.logger.Debug("Skipping refresh, previous run still in flight")
		return
	}
	s.inFlight = true
	cities := append([]string(nil), s.cities...)
	s.mu.Unlock()

	startTime := time.Now()
	s.logger.Info("Starting scheduled weather refresh",
		zap.Strings("cities", cities))

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	err := s.fetcher.FetchCities(ctx, cities)
	if err != nil {
		s.logger.Error("Scheduled weather refresh failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(startTime)))
	} else {
		s.logger.Info("Scheduled weather refresh completed",
			zap.Duration("duration", time.Since(startTime)))
	}

	s.mu.Lock()
	s.inFlight = false
	s.lastRun = startTime
	s.lastErr = err
	s.mu.Unlock()
}

// Stop removes the job and waits for a running refresh to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.cron.Remove(s.entryID)
	s.mu.Unlock()

	s.logger.Info("Stopping scheduler")
	<-s.cron.Stop().Done()
	s.runs.Wait()
}

func (s *Scheduler) ForceRun() {
	s.logger.Info("Manually triggering weather refresh")
	s.goFetch()
}

func (s *Scheduler) UpdateCities(cities []string) {
	s.mu.Lock()
	s.cities = cities
	s.mu.Unlock()

	s.logger.Info("Scheduler cities updated", zap.Strings("cities", cities))
}

func (s *Scheduler) GetStatus() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := map[string]interface{}{
		"running":   s.running,
		"schedule":  s.schedule,
		"last_run":  s.lastRun,
		"in_flight": s.inFlight,
		"cities":    s.cities,
	}
	if s.running {
		status["next_run"] = s.cron.Entry(s.entryID).Next
	}
	if s.lastErr != nil {
		status["last_error"] = s.lastErr.Error()
	}
	return status
}
