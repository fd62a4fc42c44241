// Package upstream holds the HTTP plumbing shared by the clients of the
// points API and the IBGE localities API.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// UserAgent identifies the service to upstream APIs.
const UserAgent = "Ecoleta-Web/1.0 (https://github.com/UnknownOlympus/ecoleta)"

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewHTTPClient returns an *http.Client with the given timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// StatusError is returned when an upstream API answers with a non-2xx status.
type StatusError struct {
	API  string // API names the upstream, e.g. "ibge".
	Code int    // Code is the HTTP status code.
	Body string // Body is the response body, as received.
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s API returned status %d: %s", e.API, e.Code, e.Body)
}

// Retryable reports whether repeating the request may succeed.
func (e *StatusError) Retryable() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= http.StatusInternalServerError
}

// IsRetryable reports whether repeating the request is safe and may succeed:
// the upstream answered with a transient status, or no connection was ever
// established. Timeouts and broken responses are not retryable, since the
// upstream may already have processed the request.
func IsRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Retryable()
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return opErr.Op == "dial"
	}

	return false
}

// Do executes req, checks the status and returns the response body.
func Do(client HTTPClient, api string, req *http.Request) ([]byte, error) {
	req.Header.Set("User-Agent", UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute %s request: %w", api, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &StatusError{API: api, Code: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}

// GetJSON performs a GET request to rawURL and decodes the JSON answer into out.
func GetJSON(ctx context.Context, client HTTPClient, api, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	body, err := Do(client, api, req)
	if err != nil {
		return err
	}

	if err = json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", api, err)
	}

	return nil
}
