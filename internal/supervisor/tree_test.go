// HustleMap - Personalized Monetization Opportunity Discovery
// Copyright 2026 HustleMap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hustlemap/hustlemap

package supervisor

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hustlemap/hustlemap/internal/logging"
)

// tickService counts Serve invocations and blocks until canceled.
type tickService struct {
	started atomic.Int32
}

func (s *tickService) Serve(ctx context.Context) error {
	s.started.Add(1)
	<-ctx.Done()
	return ctx.Err()
}

func TestDefaultTreeConfig(t *testing.T) {
	cfg := DefaultTreeConfig()
	if cfg.FailureThreshold != 5.0 || cfg.FailureDecay != 30.0 {
		t.Errorf("unexpected failure parameters: %+v", cfg)
	}
	if cfg.FailureBackoff != 15*time.Second || cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("unexpected timing parameters: %+v", cfg)
	}
}

func TestTreeRunsRegisteredServices(t *testing.T) {
	tree := NewTree(logging.NewSlogLogger(), TreeConfig{})

	job := &tickService{}
	api := &tickService{}
	tree.AddJobService(job)
	tree.AddAPIService(api)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := tree.ServeBackground(ctx)

	deadline := time.After(2 * time.Second)
	for job.started.Load() == 0 || api.started.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("services did not start in time")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-errCh:
	case <-time.After(2 * time.Second):
		t.Fatal("tree did not stop after cancel")
	}
}

func TestTreeZeroConfigGetsDefaults(t *testing.T) {
	// A zero TreeConfig must not build a supervisor with zero backoff.
	tree := NewTree(logging.NewSlogLogger(), TreeConfig{})
	if tree.root == nil || tree.jobs == nil || tree.api == nil {
		t.Fatal("tree layers not initialized")
	}
}
