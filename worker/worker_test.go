package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBaseJobSpec(t *testing.T) {
	_, err := NewBaseJob(time.UTC, "not a spec", func() error { return nil })
	assert.Error(t, err)

	_, err = NewBaseJob(time.UTC, "@every 30s", func() error { return nil })
	assert.NoError(t, err)

	_, err = NewBaseJob(time.UTC, "*/5 * * * *", func() error { return nil })
	assert.NoError(t, err)
}

func TestBaseJobSkipsOverlappingRuns(t *testing.T) {
	var calls int32
	release := make(chan struct{})
	started := make(chan struct{})

	job, err := NewBaseJob(time.UTC, "@every 1h", func() error {
		atomic.AddInt32(&calls, 1)
		close(started)
		<-release
		return nil
	})
	require.NoError(t, err)

	go job.Run()
	<-started
	assert.True(t, job.IsRunning())

	job.Run()
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	close(release)
	assert.Eventually(t, func() bool { return !job.IsRunning() }, time.Second, time.Millisecond)
}

func TestRunJob(t *testing.T) {
	var calls int32
	job, err := NewBaseJob(time.UTC, "@every 1s", func() error {
		atomic.AddInt32(&calls, 1)
		return nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2500*time.Millisecond)
	defer cancel()

	require.NoError(t, RunJob(ctx, job))
	assert.GreaterOrEqual(t, atomic.LoadInt32(&calls), int32(1))
}
