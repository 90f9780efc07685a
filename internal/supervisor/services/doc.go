// Suasor - Slope One Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suasor

/*
Package services provides suture.Service wrappers for Suasor components.

This package adapts application components to the suture v4 supervision
model, translating their lifecycle patterns (ListenAndServe, run loops)
into suture's context-aware Serve pattern.

# Overview

Each wrapper implements the suture.Service interface:

	type Service interface {
	    Serve(ctx context.Context) error
	}

The wrappers handle:
  - Lifecycle translation into the Serve pattern
  - Graceful shutdown via context cancellation
  - Error propagation for supervisor restart decisions
  - Service identification via fmt.Stringer

# Available Services

HTTP Server (HTTPServerService):
  - Wraps *http.Server with graceful shutdown
  - Converts ListenAndServe pattern to Serve
  - Configurable shutdown timeout for draining connections

Trainer (TrainerService):
  - Drives recommendation model training on a schedule
  - Optional training pass at startup
  - Periodic retraining via configurable interval (zero disables it)

# Usage Example

Creating and registering services:

	import (
	    "net/http"
	    "time"

	    "github.com/tomtom215/suasor/internal/supervisor"
	    "github.com/tomtom215/suasor/internal/supervisor/services"
	)

	func setupSupervisor(server *http.Server, engine *recommend.Engine) {
	    tree, _ := supervisor.NewSupervisorTree(logger, config)

	    // HTTP server with 10s shutdown timeout
	    httpSvc := services.NewHTTPServerService(server, 10*time.Second)
	    tree.AddAPIService(httpSvc)

	    // Trainer with daily retraining
	    trainerSvc := services.NewTrainerService(engine, services.TrainerServiceConfig{
	        TrainOnStartup: true,
	        TrainInterval:  24 * time.Hour,
	    }, zlog)
	    tree.AddEngineService(trainerSvc)

	    // Start supervision
	    tree.Serve(ctx)
	}

# Lifecycle Patterns

ListenAndServe Pattern (HTTPServerService):

	type HTTPServer interface {
	    ListenAndServe() error
	    Shutdown(ctx context.Context) error
	}

	// Wrapped as:
	func (s *Service) Serve(ctx context.Context) error {
	    go s.server.ListenAndServe()
	    <-ctx.Done()
	    return s.server.Shutdown(shutdownCtx)
	}

Run Loop Pattern (TrainerService):

	// The wrapper owns the loop and calls the component on schedule:
	func (s *Service) Serve(ctx context.Context) error {
	    ticker := time.NewTicker(s.interval)
	    defer ticker.Stop()
	    for {
	        select {
	        case <-ctx.Done():
	            return ctx.Err()
	        case <-ticker.C:
	            s.component.Train(ctx)
	        }
	    }
	}

# Error Handling

Return values determine supervisor behavior:

	ctx.Err() after cancel -> shutdown requested, normal termination
	any other return       -> supervisor restarts the service
	suture.ErrDoNotRestart -> removed from supervision without restart

A failed training run is logged and retried on the next tick rather than
returned, so a transient database error does not restart the whole loop.

# Service Identification

All services implement fmt.Stringer for logging:

	func (s *HTTPServerService) String() string {
	    return "http-server"
	}

Suture uses this for log messages:

	INFO http-server: starting
	INFO http-server: stopped
	ERROR http-server: restarting after failure

# Testing

Services can be tested with mock components:

	type MockServer struct {
	    started  bool
	    shutdown bool
	}

	func (m *MockServer) ListenAndServe() error {
	    m.started = true
	    <-time.After(time.Hour) // Block until shutdown
	    return nil
	}

	func (m *MockServer) Shutdown(ctx context.Context) error {
	    m.shutdown = true
	    return nil
	}

	func TestHTTPService(t *testing.T) {
	    mock := &MockServer{}
	    svc := services.NewHTTPServerService(mock, time.Second)

	    ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	    defer cancel()

	    svc.Serve(ctx)

	    if !mock.started { t.Error("server not started") }
	    if !mock.shutdown { t.Error("server not shutdown") }
	}

# Thread Safety

All service wrappers are safe for concurrent use:
  - State is protected by mutexes where needed
  - Context cancellation is handled atomically
  - Multiple Serve calls are not supported (undefined behavior)

# See Also

  - internal/supervisor: SupervisorTree that manages these services
  - github.com/thejerf/suture/v4: Underlying supervision library
  - internal/recommend: Recommendation engine implementation
*/
package services
