// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the server's periodic maintenance jobs.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// parser accepts standard five-field expressions and descriptors like @daily.
var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Job is a named unit of periodic work.
type Job struct {
	Name        string
	Description string
	Schedule    string
	Run         func(ctx context.Context) error
}

type registeredJob struct {
	Job
	entryID cron.EntryID
}

// JobInfo is the public view of a registered job.
type JobInfo struct {
	Name        string
	Description string
	Schedule    string
	LastRun     time.Time
	NextRun     time.Time
}

// Scheduler wraps a cron instance. Jobs receive a context that is
// cancelled when the scheduler stops.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
	ctx    context.Context
	cancel context.CancelFunc

	mu   sync.RWMutex
	jobs map[string]*registeredJob
}

// New creates a new scheduler instance.
func New(logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	cl := cronLogger{logger: logger}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:   cron.New(cron.WithParser(parser), cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl))),
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
		jobs:   make(map[string]*registeredJob),
	}
}

// ValidateSchedule reports whether expr is a cron expression the
// scheduler accepts.
func ValidateSchedule(expr string) error {
	if _, err := parser.Parse(expr); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", expr, err)
	}
	return nil
}

// Add registers j. A job with an empty schedule is skipped and reported
// as disabled.
func (s *Scheduler) Add(j Job) error {
	if j.Schedule == "" {
		s.logger.Info("scheduled job disabled", "job", j.Name)
		return nil
	}
	if err := ValidateSchedule(j.Schedule); err != nil {
		return fmt.Errorf("job %s: %w", j.Name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[j.Name]; ok {
		return fmt.Errorf("job %s already registered", j.Name)
	}

	id, err := s.cron.AddFunc(j.Schedule, func() { _ = s.run(j) })
	if err != nil {
		return fmt.Errorf("job %s: %w", j.Name, err)
	}
	s.jobs[j.Name] = &registeredJob{Job: j, entryID: id}
	s.logger.Debug("registered scheduled job", "job", j.Name, "schedule", j.Schedule)
	return nil
}

// Start begins running registered jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop cancels running jobs and waits for them to return.
func (s *Scheduler) Stop() {
	s.cancel()
	<-s.cron.Stop().Done()
	s.logger.Info("scheduler stopped")
}

// List returns all registered jobs sorted by name.
func (s *Scheduler) List() []JobInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]JobInfo, 0, len(s.jobs))
	for _, job := range s.jobs {
		entry := s.cron.Entry(job.entryID)
		result = append(result, JobInfo{
			Name:        job.Name,
			Description: job.Description,
			Schedule:    job.Schedule,
			LastRun:     entry.Prev,
			NextRun:     entry.Next,
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// TriggerNow runs a registered job immediately and returns its error.
func (s *Scheduler) TriggerNow(name string) error {
	s.mu.RLock()
	job, ok := s.jobs[name]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("job not found: %s", name)
	}
	s.logger.Info("manually triggering job", "job", name)
	return s.run(job.Job)
}

func (s *Scheduler) run(j Job) error {
	start := time.Now()
	err := j.Run(s.ctx)
	if err != nil {
		s.logger.Error("scheduled job failed", "job", j.Name, "duration", time.Since(start), "error", err)
		return err
	}
	s.logger.Info("scheduled job finished", "job", j.Name, "duration", time.Since(start))
	return nil
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
