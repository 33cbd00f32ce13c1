package ports

import "net/http"

// HTTPClient is the subset of *http.Client used by outbound adapters.
// Tests substitute a recording fake.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
