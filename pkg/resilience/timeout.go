package resilience

import (
	"context"
	"time"
)

// TimeoutConfig defines the console's timeout hierarchy, outermost first:
//
//	HTTP handler
//	  store request (one remote call)
//	  health probe
//
// A handler may issue several store requests (activation writes every
// record back), so HTTPHandler must comfortably exceed StoreRequest.
type TimeoutConfig struct {
	HTTPHandler  time.Duration // whole console request
	StoreRequest time.Duration // single call to the payment method store
	HealthProbe  time.Duration // /health dependency check
}

// DefaultTimeoutConfig returns production timeout values
func DefaultTimeoutConfig() *TimeoutConfig {
	return &TimeoutConfig{
		HTTPHandler:  60 * time.Second,
		StoreRequest: 15 * time.Second,
		HealthProbe:  2 * time.Second,
	}
}

// TestTimeoutConfig returns shorter timeouts for testing
func TestTimeoutConfig() *TimeoutConfig {
	return &TimeoutConfig{
		HTTPHandler:  5 * time.Second,
		StoreRequest: 2 * time.Second,
		HealthProbe:  1 * time.Second,
	}
}

// HandlerContext creates a context with timeout for HTTP handlers
func (tc *TimeoutConfig) HandlerContext(parent context.Context) (context.Context, context.CancelFunc) {
	return withTimeout(parent, tc.HTTPHandler)
}

// StoreContext creates a context with timeout for one store call
func (tc *TimeoutConfig) StoreContext(parent context.Context) (context.Context, context.CancelFunc) {
	return withTimeout(parent, tc.StoreRequest)
}

// withTimeout keeps an earlier parent deadline and treats zero as no timeout
func withTimeout(parent context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(parent)
	}
	if deadline, ok := parent.Deadline(); ok && time.Until(deadline) < d {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, d)
}
