package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// RecurrenceEmitter materializes debts for schedules that have come due
type RecurrenceEmitter interface {
	EmitDueDebts(ctx context.Context, now time.Time) (int, error)
}

// RecurrenceSchedulerConfig holds configuration for the recurrence scheduler
type RecurrenceSchedulerConfig struct {
	// CheckInterval is how often to look for due recurrences
	CheckInterval time.Duration
}

// DefaultRecurrenceSchedulerConfig returns default scheduler configuration
func DefaultRecurrenceSchedulerConfig() RecurrenceSchedulerConfig {
	return RecurrenceSchedulerConfig{
		CheckInterval: time.Hour,
	}
}

// RecurrenceScheduler periodically emits debts from recurring templates.
// Emission is idempotent per tick because each emitted template advances
// its next run date, so an overdue template is only materialized once.
type RecurrenceScheduler struct {
	config  RecurrenceSchedulerConfig
	emitter RecurrenceEmitter
	logger  *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewRecurrenceScheduler creates a new recurrence scheduler
func NewRecurrenceScheduler(config RecurrenceSchedulerConfig, emitter RecurrenceEmitter, logger *zap.Logger) *RecurrenceScheduler {
	if config.CheckInterval <= 0 {
		config.CheckInterval = DefaultRecurrenceSchedulerConfig().CheckInterval
	}
	return &RecurrenceScheduler{
		config:  config,
		emitter: emitter,
		logger:  logger,
	}
}

// Start starts the scheduler loop. Calling Start on a running scheduler
// is a no-op.
func (s *RecurrenceScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.runLoop(ctx)

	s.logger.Info("recurrence scheduler started",
		zap.Duration("check_interval", s.config.CheckInterval))
	return nil
}

// Stop stops the scheduler and waits for the running tick to finish
func (s *RecurrenceScheduler) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()

	s.logger.Info("recurrence scheduler stopped")
}

func (s *RecurrenceScheduler) runLoop(ctx context.Context) {
	defer s.wg.Done()

	// Run once at startup so overdue templates are not delayed by a
	// full interval after a restart.
	s.tick(ctx)

	ticker := time.NewTicker(s.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *RecurrenceScheduler) tick(ctx context.Context) {
	emitted, err := s.emitter.EmitDueDebts(ctx, time.Now().UTC())
	if err != nil {
		s.logger.Error("recurrence emission failed", zap.Error(err))
		return
	}
	if emitted > 0 {
		s.logger.Info("recurrence tick complete", zap.Int("emitted", emitted))
	}
}
