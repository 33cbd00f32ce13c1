package shutdown

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestManager_ShutdownLIFO(t *testing.T) {
	m := NewManager(zap.NewNop(), time.Second)
	var order []string
	for _, name := range []string{"store-client", "console-server", "metrics-server"} {
		name := name
		m.RegisterNoErr(name, func() { order = append(order, name) })
	}

	require.NoError(t, m.Shutdown())
	assert.Equal(t, []string{"metrics-server", "console-server", "store-client"}, order)
}

func TestManager_ContinuesAfterFailure(t *testing.T) {
	m := NewManager(zap.NewNop(), time.Second)
	boom := errors.New("boom")
	ran := false

	m.RegisterNoErr("first", func() { ran = true })
	m.Register("second", func(context.Context) error { return boom })

	err := m.Shutdown()

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "second")
	assert.True(t, ran)
}

func TestManager_ShutdownOnce(t *testing.T) {
	m := NewManager(nil, time.Second)
	calls := 0
	m.RegisterNoErr("counter", func() { calls++ })

	_ = m.Shutdown()
	_ = m.Shutdown()

	assert.Equal(t, 1, calls)
}

func TestManager_PassesDeadline(t *testing.T) {
	m := NewManager(zap.NewNop(), time.Second)
	var hasDeadline bool
	m.Register("server", func(ctx context.Context) error {
		_, hasDeadline = ctx.Deadline()
		return nil
	})

	require.NoError(t, m.Shutdown())
	assert.True(t, hasDeadline)
}

func TestManager_WaitForShutdownOnContext(t *testing.T) {
	m := NewManager(zap.NewNop(), time.Second)
	stopped := false
	m.RegisterNoErr("server", func() { stopped = true })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, m.WaitForShutdown(ctx))
	assert.True(t, stopped)
}

func TestInFlightTracker_WaitsForWork(t *testing.T) {
	tr := NewInFlightTracker("console", zap.NewNop())
	require.True(t, tr.Add())

	released := make(chan struct{})
	go func() {
		time.Sleep(20 * time.Millisecond)
		tr.Done()
		close(released)
	}()

	require.NoError(t, tr.Shutdown(context.Background()))
	<-released
	assert.True(t, tr.IsShuttingDown())
	assert.False(t, tr.Add())
}

func TestInFlightTracker_ShutdownTimeout(t *testing.T) {
	tr := NewInFlightTracker("console", nil)
	require.True(t, tr.Add())
	defer tr.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, tr.Shutdown(ctx), context.DeadlineExceeded)
}

func TestInFlightTracker_MiddlewareRejectsWhileDraining(t *testing.T) {
	tr := NewInFlightTracker("console", zap.NewNop())
	handler := tr.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/cards", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, tr.Shutdown(context.Background()))

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/cards", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
