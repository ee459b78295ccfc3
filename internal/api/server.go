// HustleMap - Personalized Monetization Opportunity Discovery
// Copyright 2026 HustleMap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hustlemap/hustlemap

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/hustlemap/hustlemap/internal/logging"
)

// Server runs the HTTP listener as a supervised service. Serve blocks
// until the context is canceled, then drains in-flight requests within
// the shutdown timeout.
type Server struct {
	addr            string
	handler         http.Handler
	readTimeout     time.Duration
	shutdownTimeout time.Duration
}

// ServerOptions configures the listener.
type ServerOptions struct {
	Addr            string
	Timeout         time.Duration
	ShutdownTimeout time.Duration
}

// NewServer wraps the handler in a supervised HTTP server.
func NewServer(handler http.Handler, opts ServerOptions) *Server {
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}
	return &Server{
		addr:            opts.Addr,
		handler:         handler,
		readTimeout:     opts.Timeout,
		shutdownTimeout: opts.ShutdownTimeout,
	}
}

// Serve implements suture.Service.
func (s *Server) Serve(ctx context.Context) error {
	logger := logging.With("api")

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       s.readTimeout,
		WriteTimeout:      s.readTimeout,
		IdleTimeout:       2 * s.readTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", s.addr).Msg("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("graceful shutdown incomplete, closing")
		_ = srv.Close()
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}
