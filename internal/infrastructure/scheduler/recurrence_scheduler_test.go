package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubEmitter counts EmitDueDebts invocations
type stubEmitter struct {
	mu      sync.Mutex
	calls   int
	emitted int
	err     error
}

func (s *stubEmitter) EmitDueDebts(ctx context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.emitted, s.err
}

func (s *stubEmitter) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestNewRecurrenceScheduler_DefaultsInterval(t *testing.T) {
	s := NewRecurrenceScheduler(RecurrenceSchedulerConfig{}, &stubEmitter{}, zap.NewNop())
	assert.Equal(t, time.Hour, s.config.CheckInterval)
}

func TestRecurrenceScheduler_RunsImmediatelyOnStart(t *testing.T) {
	emitter := &stubEmitter{emitted: 2}
	s := NewRecurrenceScheduler(RecurrenceSchedulerConfig{CheckInterval: time.Hour}, emitter, zap.NewNop())

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return emitter.callCount() >= 1
	}, time.Second, 10*time.Millisecond)
}

func TestRecurrenceScheduler_TicksOnInterval(t *testing.T) {
	emitter := &stubEmitter{}
	s := NewRecurrenceScheduler(RecurrenceSchedulerConfig{CheckInterval: 20 * time.Millisecond}, emitter, zap.NewNop())

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return emitter.callCount() >= 3
	}, time.Second, 10*time.Millisecond)
}

func TestRecurrenceScheduler_KeepsTickingAfterError(t *testing.T) {
	emitter := &stubEmitter{err: errors.New("db unavailable")}
	s := NewRecurrenceScheduler(RecurrenceSchedulerConfig{CheckInterval: 20 * time.Millisecond}, emitter, zap.NewNop())

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return emitter.callCount() >= 2
	}, time.Second, 10*time.Millisecond)
}

func TestRecurrenceScheduler_StartIsIdempotent(t *testing.T) {
	emitter := &stubEmitter{}
	s := NewRecurrenceScheduler(RecurrenceSchedulerConfig{CheckInterval: time.Hour}, emitter, zap.NewNop())

	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Start(context.Background()))
	s.Stop()

	assert.Equal(t, 1, emitter.callCount())
}

func TestRecurrenceScheduler_StopWithoutStart(t *testing.T) {
	s := NewRecurrenceScheduler(RecurrenceSchedulerConfig{CheckInterval: time.Hour}, &stubEmitter{}, zap.NewNop())
	assert.NotPanics(t, func() { s.Stop() })
}
