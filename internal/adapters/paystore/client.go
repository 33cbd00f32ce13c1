// Package paystore is the HTTP client for the remote payment-method store.
package paystore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	adapterports "github.com/kevin07696/card-wallet/internal/adapters/ports"
	"github.com/kevin07696/card-wallet/internal/domain"
	"github.com/kevin07696/card-wallet/pkg/encoding"
	"github.com/kevin07696/card-wallet/pkg/observability"
)

// ResourcePath is the collection path on the store
const ResourcePath = "/updatePayMethodDetails"

// Config contains configuration for the store client
type Config struct {
	BaseURL string // e.g. "http://localhost:8081"
	Timeout time.Duration
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		BaseURL: "http://localhost:8081",
		Timeout: 15 * time.Second,
	}
}

// StatusError is returned for any non-2xx response
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// IsNotFound reports whether err is a 404 from the store
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

// Client implements ports.PaymentMethodStore over JSON/HTTP
type Client struct {
	config     *Config
	httpClient adapterports.HTTPClient
	logger     adapterports.Logger
}

var _ adapterports.PaymentMethodStore = (*Client)(nil)

// NewClient creates a new store client
func NewClient(
	config *Config,
	httpClient adapterports.HTTPClient,
	logger adapterports.Logger,
) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	return &Client{
		config:     config,
		httpClient: httpClient,
		logger:     logger,
	}
}

// List fetches every stored payment method
func (c *Client) List(ctx context.Context) ([]domain.PaymentMethod, error) {
	var methods []domain.PaymentMethod
	if err := c.do(ctx, "list", http.MethodGet, ResourcePath, nil, &methods); err != nil {
		return nil, err
	}
	if methods == nil {
		methods = []domain.PaymentMethod{}
	}
	return methods, nil
}

// Create posts a new payment method. Any id on pm is dropped.
func (c *Client) Create(ctx context.Context, pm domain.PaymentMethod) (*domain.MutationResult, error) {
	pm.ID = ""
	var result domain.MutationResult
	if err := c.do(ctx, "create", http.MethodPost, ResourcePath, pm, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Update replaces the payment method identified by id
func (c *Client) Update(ctx context.Context, id string, pm domain.PaymentMethod) (*domain.MutationResult, error) {
	var result domain.MutationResult
	if err := c.do(ctx, "update", http.MethodPut, itemPath(id), pm, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Delete removes the payment method identified by id
func (c *Client) Delete(ctx context.Context, id string) (*domain.MutationResult, error) {
	var result domain.MutationResult
	if err := c.do(ctx, "delete", http.MethodDelete, itemPath(id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Ping checks that the store answers a list request
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.List(ctx)
	return err
}

func itemPath(id string) string {
	return ResourcePath + "/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, operation, method, path string, in, out interface{}) error {
	endpoint := strings.TrimRight(c.config.BaseURL, "/") + path

	var body io.Reader
	if in != nil {
		payload, err := encoding.EncodeJSON(in)
		if err != nil {
			return fmt.Errorf("failed to encode %s request: %w", operation, err)
		}
		body = bytes.NewReader(payload)
	}

	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		observability.RecordStoreRequest(operation, "error", time.Since(startTime))
		c.logger.Error("Payment method store request failed",
			adapterports.String("operation", operation),
			adapterports.String("url", endpoint),
			adapterports.Err(err),
			adapterports.Duration("elapsed", time.Since(startTime)),
		)
		return fmt.Errorf("%s request failed: %w", operation, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	observability.RecordStoreRequest(operation, strconv.Itoa(resp.StatusCode), time.Since(startTime))
	if err != nil {
		return fmt.Errorf("failed to read %s response body: %w", operation, err)
	}

	c.logger.Debug("Payment method store response",
		adapterports.String("operation", operation),
		adapterports.String("method", method),
		adapterports.String("path", path),
		adapterports.Int("status_code", resp.StatusCode),
		adapterports.Duration("elapsed", time.Since(startTime)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("Payment method store returned non-2xx status",
			adapterports.String("operation", operation),
			adapterports.Int("status_code", resp.StatusCode),
		)
		return &StatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse %s response: %w", operation, err)
	}
	return nil
}
