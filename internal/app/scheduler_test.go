package app

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type countingExpirer struct {
	calls atomic.Int32
}

func (c *countingExpirer) ExpireStale(context.Context, time.Time) (int64, error) {
	c.calls.Add(1)
	return 0, nil
}

func TestScheduler_RunsImmediatelyAndOnTick(t *testing.T) {
	expirer := &countingExpirer{}
	s := NewScheduler(expirer, 10*time.Millisecond, time.UTC, zap.NewNop())

	s.Start(context.Background())
	assert.Eventually(t, func() bool { return expirer.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)

	s.Stop()
	s.Stop()

	calls := expirer.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, calls, expirer.calls.Load())
}

func TestScheduler_StopsOnContextCancel(t *testing.T) {
	expirer := &countingExpirer{}
	s := NewScheduler(expirer, time.Hour, nil, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	assert.Eventually(t, func() bool { return expirer.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	s.Stop()
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("development", "debug")
	assert.NoError(t, err)
	assert.NotNil(t, logger)

	_, err = NewLogger("production", "loud")
	assert.Error(t, err)
}
