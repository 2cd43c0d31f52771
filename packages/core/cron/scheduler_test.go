package cron

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReaper struct {
	calls   int
	timeout time.Duration
}

func (f *fakeReaper) ReapIdle(timeout time.Duration) int {
	f.calls++
	f.timeout = timeout
	return 2
}

type fakeCleaner struct {
	calls int
	err   error
}

func (f *fakeCleaner) CleanExpiredTokens() (int64, error) {
	f.calls++
	return 3, f.err
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestRunNowTriggersEveryJob(t *testing.T) {
	reaper := &fakeReaper{}
	cleaner := &fakeCleaner{}
	cfg := DefaultConfig
	cfg.IdleTimeout = 5 * time.Minute

	s := NewScheduler(reaper, cleaner, cfg, quietLogger())
	s.RunNow()

	assert.Equal(t, 1, reaper.calls)
	assert.Equal(t, 5*time.Minute, reaper.timeout)
	assert.Equal(t, 1, cleaner.calls)
}

func TestRunNowWithoutCleaner(t *testing.T) {
	reaper := &fakeReaper{}

	s := NewScheduler(reaper, nil, DefaultConfig, quietLogger())
	s.RunNow()

	assert.Equal(t, 1, reaper.calls)
}

func TestCleanupErrorIsSwallowed(t *testing.T) {
	cleaner := &fakeCleaner{err: errors.New("db down")}

	s := NewScheduler(&fakeReaper{}, cleaner, DefaultConfig, quietLogger())
	assert.NotPanics(t, s.RunNow)
	assert.Equal(t, 1, cleaner.calls)
}

func TestStartRegistersJobs(t *testing.T) {
	s := NewScheduler(&fakeReaper{}, &fakeCleaner{}, DefaultConfig, quietLogger())
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Len(t, s.cron.Entries(), 2)
}

func TestStartRejectsBadSchedule(t *testing.T) {
	cfg := DefaultConfig
	cfg.ReaperSchedule = "every now and then"

	s := NewScheduler(&fakeReaper{}, nil, cfg, quietLogger())
	assert.Error(t, s.Start())
}
