// HustleMap - Personalized Monetization Opportunity Discovery
// Copyright 2026 HustleMap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hustlemap/hustlemap

package sched

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestRegisterValidation(t *testing.T) {
	s := New()

	if err := s.Register("", "@hourly", func(context.Context) error { return nil }); err == nil {
		t.Error("empty name should be rejected")
	}
	if err := s.Register("noop", "@hourly", nil); err == nil {
		t.Error("nil run function should be rejected")
	}
	if err := s.Register("bad", "not a schedule", func(context.Context) error { return nil }); err == nil {
		t.Error("invalid cron expression should be rejected")
	}
	if err := s.Register("sweep", "@every 15m", func(context.Context) error { return nil }); err != nil {
		t.Errorf("valid descriptor rejected: %v", err)
	}
	if err := s.Register("refresh", "0 */6 * * *", func(context.Context) error { return nil }); err != nil {
		t.Errorf("valid cron expression rejected: %v", err)
	}
}

func TestServeRunsJobs(t *testing.T) {
	s := New()

	var runs atomic.Int32
	if err := s.Register("tick", "@every 100ms", func(context.Context) error {
		runs.Add(1)
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	// A failing job must not stop the scheduler.
	if err := s.Register("broken", "@every 100ms", func(context.Context) error {
		return errors.New("boom")
	}); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx) }()

	deadline := time.After(3 * time.Second)
	for runs.Load() < 2 {
		select {
		case <-deadline:
			t.Fatal("job did not run twice in time")
		case <-time.After(20 * time.Millisecond):
		}
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestServeStopsPromptlyWithNoJobs(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Serve did not stop")
	}
}
