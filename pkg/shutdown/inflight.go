package shutdown

import (
	"context"
	"net/http"
	"sync"

	"go.uber.org/zap"
)

// InFlightTracker counts running work so shutdown can wait for it. Once
// shutdown starts no new work is admitted.
type InFlightTracker struct {
	mu       sync.Mutex
	wg       sync.WaitGroup
	draining bool
	logger   *zap.Logger
	name     string
}

// NewInFlightTracker creates a new in-flight work tracker
func NewInFlightTracker(name string, logger *zap.Logger) *InFlightTracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InFlightTracker{
		logger: logger,
		name:   name,
	}
}

// Add admits one unit of work; false once shutdown has started
func (t *InFlightTracker) Add() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.draining {
		return false
	}
	t.wg.Add(1)
	return true
}

// Done releases a unit admitted by Add
func (t *InFlightTracker) Done() {
	t.wg.Done()
}

// IsShuttingDown reports whether Shutdown has been called
func (t *InFlightTracker) IsShuttingDown() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.draining
}

// Shutdown stops admitting work and waits for running work or ctx
func (t *InFlightTracker) Shutdown(ctx context.Context) error {
	t.mu.Lock()
	t.draining = true
	t.mu.Unlock()

	t.logger.Info("Waiting for in-flight work to complete", zap.String("tracker", t.name))

	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		t.logger.Info("All in-flight work completed", zap.String("tracker", t.name))
		return nil
	case <-ctx.Done():
		t.logger.Warn("Shutdown timeout - some work may be incomplete", zap.String("tracker", t.name))
		return ctx.Err()
	}
}

// Middleware tracks each request as in-flight work. Requests arriving after
// shutdown started get 503.
func (t *InFlightTracker) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !t.Add() {
			w.Header().Set("Connection", "close")
			http.Error(w, "server is shutting down", http.StatusServiceUnavailable)
			return
		}
		defer t.Done()
		next.ServeHTTP(w, r)
	})
}
