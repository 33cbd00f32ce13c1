// Package http builds the pooled HTTP client the console uses to reach the
// payment-method store.
package http

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"
)

// HTTPClientConfig holds transport tuning for one upstream
type HTTPClientConfig struct {
	MaxIdleConnsPerHost int
	MaxConnsPerHost     int
	IdleConnTimeout     time.Duration

	DialTimeout           time.Duration
	KeepAlive             time.Duration
	TLSHandshakeTimeout   time.Duration
	ResponseHeaderTimeout time.Duration

	MinTLSVersion uint16
}

// StoreClientConfig sizes the transport for the store: one host, small JSON
// bodies and at most a handful of concurrent requests from one console.
// Response headers must arrive within requestTimeout; zero leaves them unbounded.
func StoreClientConfig(requestTimeout time.Duration) *HTTPClientConfig {
	return &HTTPClientConfig{
		MaxIdleConnsPerHost:   4,
		MaxConnsPerHost:       8,
		IdleConnTimeout:       90 * time.Second,
		DialTimeout:           5 * time.Second,
		KeepAlive:             30 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: requestTimeout,
		MinTLSVersion:         tls.VersionTLS12,
	}
}

// DefaultClientConfig returns a general-purpose configuration
func DefaultClientConfig() *HTTPClientConfig {
	return &HTTPClientConfig{
		MaxIdleConnsPerHost:   10,
		MaxConnsPerHost:       50,
		IdleConnTimeout:       90 * time.Second,
		DialTimeout:           10 * time.Second,
		KeepAlive:             60 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		MinTLSVersion:         tls.VersionTLS12,
	}
}

// NewHTTPClient creates a client from cfg. timeout bounds the whole exchange
// including the body; zero leaves that to the caller's context.
func NewHTTPClient(cfg *HTTPClientConfig, timeout time.Duration) *http.Client {
	if cfg == nil {
		cfg = DefaultClientConfig()
	}

	dialer := &net.Dialer{
		Timeout:   cfg.DialTimeout,
		KeepAlive: cfg.KeepAlive,
	}

	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DialContext:           dialer.DialContext,
			MaxIdleConns:          cfg.MaxIdleConnsPerHost,
			MaxIdleConnsPerHost:   cfg.MaxIdleConnsPerHost,
			MaxConnsPerHost:       cfg.MaxConnsPerHost,
			IdleConnTimeout:       cfg.IdleConnTimeout,
			TLSHandshakeTimeout:   cfg.TLSHandshakeTimeout,
			ResponseHeaderTimeout: cfg.ResponseHeaderTimeout,
			TLSClientConfig:       &tls.Config{MinVersion: cfg.MinTLSVersion},
			ForceAttemptHTTP2:     true,
		},
	}
}
