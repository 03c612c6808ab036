// Package upstream talks to the retail backend that owns invoices, suppliers and products.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"retailadmin/internal/config"
	"retailadmin/internal/model"
)

// ErrUnavailable wraps every transport failure and non-2xx response.
var ErrUnavailable = errors.New("upstream unavailable")

// maxBody caps how much of a response body is read.
const maxBody = 32 << 20

// Backend is the subset of the retail backend API used by this service.
type Backend interface {
	// Invoices fetches the full invoice collection.
	Invoices(ctx context.Context) ([]model.Invoice, error)
	// Suppliers fetches the supplier list.
	Suppliers(ctx context.Context) ([]model.Supplier, error)
	// UpdateProduct submits a product update and returns the backend's success flag.
	UpdateProduct(ctx context.Context, p model.ProductUpdate) (bool, error)
}

// Client is an HTTP implementation of Backend. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
}

var _ Backend = (*Client)(nil)

// New builds a Client for cfg.BaseURL. Outgoing requests are traced with otelhttp.
func New(cfg config.UpstreamConfig) (*Client, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		return nil, fmt.Errorf("upstream base url is required")
	}

	dialer := &net.Dialer{Timeout: 5 * time.Second, KeepAlive: 30 * time.Second}
	tr := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   20,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
	}

	return &Client{
		baseURL: base,
		http: &http.Client{
			Transport: otelhttp.NewTransport(tr),
			Timeout:   cfg.Timeout,
		},
	}, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))
		return fmt.Errorf("%w: %s %s: status %d", ErrUnavailable, method, path, resp.StatusCode)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(out); err != nil {
		return fmt.Errorf("%w: %s %s: decode: %v", ErrUnavailable, method, path, err)
	}
	return nil
}
