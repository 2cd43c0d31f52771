package cron

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Reaper forfeits live matches that have been left alone too long.
type Reaper interface {
	ReapIdle(timeout time.Duration) int
}

// TokenCleaner drops refresh tokens past their expiry.
type TokenCleaner interface {
	CleanExpiredTokens() (int64, error)
}

type Config struct {
	ReaperSchedule  string
	IdleTimeout     time.Duration
	CleanupSchedule string
}

// DefaultConfig reaps every minute and cleans tokens at minute 0 of every hour.
var DefaultConfig = Config{
	ReaperSchedule:  "0 * * * * *",
	IdleTimeout:     30 * time.Minute,
	CleanupSchedule: "0 0 * * * *",
}

type Scheduler struct {
	cron    *cron.Cron
	reaper  Reaper
	cleaner TokenCleaner
	cfg     Config
	log     *logrus.Entry
}

// NewScheduler builds a scheduler with seconds precision. cleaner may be nil.
func NewScheduler(reaper Reaper, cleaner TokenCleaner, cfg Config, logger logrus.FieldLogger) *Scheduler {
	log := logger.WithField("component", "cron")
	c := cron.New(cron.WithSeconds(), cron.WithLogger(cron.VerbosePrintfLogger(log)))

	return &Scheduler{
		cron:    c,
		reaper:  reaper,
		cleaner: cleaner,
		cfg:     cfg,
		log:     log,
	}
}

// Start registers the jobs and starts the scheduler.
func (s *Scheduler) Start() error {
	s.log.Info("starting cron scheduler")

	if _, err := s.cron.AddFunc(s.cfg.ReaperSchedule, s.runReaper); err != nil {
		s.log.WithError(err).Error("could not schedule the idle match reaper")
		return err
	}

	if s.cleaner != nil {
		if _, err := s.cron.AddFunc(s.cfg.CleanupSchedule, s.runTokenCleanup); err != nil {
			s.log.WithError(err).Error("could not schedule the token cleanup")
			return err
		}
	}

	s.cron.Start()
	s.log.WithField("jobs", len(s.cron.Entries())).Info("cron scheduler started")
	return nil
}

// Stop waits for running jobs to return.
func (s *Scheduler) Stop() {
	s.log.Info("stopping cron scheduler")
	<-s.cron.Stop().Done()
	s.log.Info("cron scheduler stopped")
}

func (s *Scheduler) runReaper() {
	reaped := s.reaper.ReapIdle(s.cfg.IdleTimeout)
	s.log.WithField("reaped", reaped).Debug("idle match reaper ran")
}

func (s *Scheduler) runTokenCleanup() {
	removed, err := s.cleaner.CleanExpiredTokens()
	if err != nil {
		s.log.WithError(err).Error("token cleanup failed")
		return
	}
	s.log.WithField("removed", removed).Debug("token cleanup ran")
}

// RunNow triggers every job once, outside of its schedule.
func (s *Scheduler) RunNow() {
	s.log.Info("manually triggering scheduled jobs")
	s.runReaper()
	if s.cleaner != nil {
		s.runTokenCleanup()
	}
}
