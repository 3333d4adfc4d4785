package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sourcegraph/conc"
	"github.com/youthscout/talent-tracker/internal/platform/logging"
	"github.com/youthscout/talent-tracker/internal/usecase"
)

// PopulationRunner executes one full population pass.
type PopulationRunner interface {
	Run(ctx context.Context) usecase.RunSummary
}

// RunStatus is the externally visible state of the scheduler.
type RunStatus struct {
	Running         bool       `json:"running"`
	LastCompletedAt *time.Time `json:"lastCompletedAt,omitempty"`
	LastSuccess     *bool      `json:"lastSuccess,omitempty"`
	LastMessage     string     `json:"lastMessage,omitempty"`
}

// Scheduler fires a population run once a day and accepts manual
// triggers. Only one run may be in flight: triggers arriving while a
// run is active are no-ops, never queued.
type Scheduler struct {
	runner PopulationRunner
	runAt  string
	logger *logging.Logger
	now    func() time.Time

	running atomic.Bool
	wg      conc.WaitGroup

	mu              sync.RWMutex
	lifetime        context.Context
	lastCompletedAt *time.Time
	lastSuccess     *bool
	lastMessage     string
}

// New builds a scheduler firing daily at runAt ("HH:MM", UTC). The
// runner is attached separately because the population service needs
// the scheduler as its completion listener first.
func New(runAt string, logger *logging.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if _, _, err := parseRunAt(runAt); err != nil {
		return nil, err
	}
	return &Scheduler{
		runAt:  runAt,
		logger: logger,
		now:    time.Now,
	}, nil
}

func (s *Scheduler) SetRunner(runner PopulationRunner) {
	s.runner = runner
}

// Start launches the daily loop. ctx bounds the scheduler's lifetime:
// every run, scheduled or manual, derives its context from it, so
// cancelling it stops an in-flight run between units of work. Start
// returns immediately; Stop waits for the loop and any in-flight run
// to finish.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	s.lifetime = ctx
	s.mu.Unlock()

	s.wg.Go(func() {
		for {
			next := s.nextFireTime()
			timer := time.NewTimer(next.Sub(s.now()))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}

			if !s.Trigger(ctx) {
				s.logger.InfoContext(ctx, "scheduled population skipped, previous run still in progress")
			}
		}
	})
}

// Stop blocks until the scheduler loop and any running population
// goroutine have returned.
func (s *Scheduler) Stop() {
	s.wg.Wait()
}

// Trigger starts a population run on a background worker. It returns
// false without side effects when a run is already in progress.
func (s *Scheduler) Trigger(ctx context.Context) bool {
	if s.runner == nil {
		return false
	}
	if !s.running.CompareAndSwap(false, true) {
		return false
	}

	s.logger.InfoContext(ctx, "population run starting")
	// The run outlives the caller's context: a finished HTTP request
	// must not abort the run it triggered, but process shutdown must.
	// So the run derives from the scheduler's lifetime, not from ctx.
	runCtx := s.lifetimeContext()
	s.wg.Go(func() {
		s.runner.Run(runCtx)
	})
	return true
}

func (s *Scheduler) lifetimeContext() context.Context {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lifetime != nil {
		return s.lifetime
	}
	return context.Background()
}

// OnPopulationComplete implements usecase.CompletionListener. It
// records the terminal status and clears the in-progress gate.
func (s *Scheduler) OnPopulationComplete(success bool, message string) {
	completedAt := s.now().UTC()

	s.mu.Lock()
	s.lastCompletedAt = &completedAt
	s.lastSuccess = &success
	s.lastMessage = message
	s.mu.Unlock()

	s.running.Store(false)
}

func (s *Scheduler) Status() RunStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := RunStatus{
		Running:     s.running.Load(),
		LastMessage: s.lastMessage,
	}
	if s.lastCompletedAt != nil {
		value := *s.lastCompletedAt
		status.LastCompletedAt = &value
	}
	if s.lastSuccess != nil {
		value := *s.lastSuccess
		status.LastSuccess = &value
	}
	return status
}

func (s *Scheduler) nextFireTime() time.Time {
	hour, minute, err := parseRunAt(s.runAt)
	if err != nil {
		hour, minute = 3, 0
	}

	now := s.now().UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next
}

func parseRunAt(raw string) (int, int, error) {
	parts := strings.SplitN(strings.TrimSpace(raw), ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("run time must be HH:MM, got %q", raw)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in run time %q", raw)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in run time %q", raw)
	}
	return hour, minute, nil
}
