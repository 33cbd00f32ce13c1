package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Remote payment-method store calls
	storeRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "paystore_requests_total",
		Help: "Total requests sent to the payment method store",
	}, []string{
		"operation", // list, create, update, delete
		"status",    // HTTP status code, or "error" for transport failures
	})

	storeRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "paystore_request_duration_seconds",
		Help:    "Latency of payment method store requests",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"operation"})

	// Add-card form submissions
	cardFormSubmissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "card_form_submissions_total",
		Help: "Add-card form submissions by outcome",
	}, []string{
		"result", // invalid, stored, failed
	})

	// Controller-level operations on the collection
	paymentMethodOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_method_operations_total",
		Help: "Payment method list operations by outcome",
	}, []string{
		"operation", // refresh, create, set_active, delete
		"result",    // success, failed, refused
	})
)

// RecordStoreRequest records one call to the remote store
func RecordStoreRequest(operation, status string, elapsed time.Duration) {
	storeRequestsTotal.WithLabelValues(operation, status).Inc()
	storeRequestDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// RecordCardFormSubmission records the outcome of an add-card submit
func RecordCardFormSubmission(result string) {
	cardFormSubmissionsTotal.WithLabelValues(result).Inc()
}

// RecordPaymentMethodOperation records a list controller operation
func RecordPaymentMethodOperation(operation, result string) {
	paymentMethodOperationsTotal.WithLabelValues(operation, result).Inc()
}
