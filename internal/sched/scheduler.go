// HustleMap - Personalized Monetization Opportunity Discovery
// Copyright 2026 HustleMap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hustlemap/hustlemap

// Package sched runs the server's recurring maintenance jobs, such as
// the opportunity cache sweep and market snapshot refresh, on cron
// schedules under supervisor control.
package sched

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/hustlemap/hustlemap/internal/logging"
)

// Job is one recurring task.
type job struct {
	name     string
	schedule string
	run      func(context.Context) error
}

// Scheduler runs registered jobs on their cron schedules. It implements
// suture.Service: Serve blocks until the context is canceled, and a
// restart rebuilds the cron runner from the registered jobs.
type Scheduler struct {
	jobs   []job
	logger zerolog.Logger
}

// New returns an empty scheduler.
func New() *Scheduler {
	return &Scheduler{logger: logging.With("sched")}
}

// Register adds a job. The schedule accepts standard five-field cron
// expressions and descriptors like "@every 15m" or "@hourly". Register
// must be called before Serve; it returns an error for an expression
// the runner would reject.
func (s *Scheduler) Register(name, schedule string, run func(context.Context) error) error {
	if name == "" || run == nil {
		return fmt.Errorf("job needs a name and a run function")
	}
	if _, err := cron.ParseStandard(schedule); err != nil {
		return fmt.Errorf("job %s: invalid schedule %q: %w", name, schedule, err)
	}
	s.jobs = append(s.jobs, job{name: name, schedule: schedule, run: run})
	return nil
}

// Serve runs all registered jobs until ctx is canceled. Job errors are
// logged, never fatal; a broken refresh should not restart the layer.
func (s *Scheduler) Serve(ctx context.Context) error {
	runner := cron.New()
	for _, j := range s.jobs {
		j := j
		_, err := runner.AddFunc(j.schedule, func() {
			if err := j.run(ctx); err != nil {
				s.logger.Error().Err(err).Str("job", j.name).Msg("scheduled job failed")
				return
			}
			s.logger.Debug().Str("job", j.name).Msg("scheduled job completed")
		})
		if err != nil {
			return fmt.Errorf("schedule job %s: %w", j.name, err)
		}
	}

	s.logger.Info().Int("jobs", len(s.jobs)).Msg("scheduler started")
	runner.Start()
	<-ctx.Done()

	stop := runner.Stop()
	<-stop.Done()
	s.logger.Info().Msg("scheduler stopped")
	return ctx.Err()
}
