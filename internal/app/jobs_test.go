package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCleaner struct{ calls atomic.Int32 }

func (c *countingCleaner) CleanExpiredTokens(context.Context) (int64, error) {
	c.calls.Add(1)
	return 2, nil
}

type countingPurger struct {
	calls atomic.Int32
	err   error
}

func (p *countingPurger) Purge(context.Context) (int, error) {
	p.calls.Add(1)
	return 0, p.err
}

func TestHousekeeping_RunsEnabledJobs(t *testing.T) {
	cleaner := &countingCleaner{}
	purger := &countingPurger{err: errors.New("db down")}

	jobs, err := newHousekeeping(cleaner, purger, 20*time.Millisecond, 20*time.Millisecond)
	require.NoError(t, err)
	assert.Len(t, jobs.scheduler.Jobs(), 2)

	jobs.Start()
	t.Cleanup(jobs.Stop)

	require.Eventually(t, func() bool {
		return cleaner.calls.Load() > 0 && purger.calls.Load() > 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestHousekeeping_ZeroIntervalDisablesJob(t *testing.T) {
	jobs, err := newHousekeeping(&countingCleaner{}, &countingPurger{}, time.Hour, 0)
	require.NoError(t, err)
	jobs.Start()
	t.Cleanup(jobs.Stop)

	require.Len(t, jobs.scheduler.Jobs(), 1)
	assert.Equal(t, "token-cleanup", jobs.scheduler.Jobs()[0].Name())
}
