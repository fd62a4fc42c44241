package upstream_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"

	"github.com/UnknownOlympus/ecoleta/internal/upstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func respond(code int, body string) *mockHTTPClient {
	return &mockHTTPClient{
		doFunc: func(_ *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: code,
				Body:       io.NopCloser(bytes.NewBufferString(body)),
			}, nil
		},
	}
}

func TestGetJSON(t *testing.T) {
	ctx := t.Context()

	t.Run("decodes body and sets headers", func(t *testing.T) {
		client := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, http.MethodGet, req.Method)
				assert.Equal(t, "application/json", req.Header.Get("Accept"))
				assert.Equal(t, upstream.UserAgent, req.Header.Get("User-Agent"))
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(`{"value":42}`)),
				}, nil
			},
		}

		var out struct {
			Value int `json:"value"`
		}
		err := upstream.GetJSON(ctx, client, "test", "http://example.test/x", &out)

		require.NoError(t, err)
		assert.Equal(t, 42, out.Value)
	})

	t.Run("status error", func(t *testing.T) {
		var out any
		err := upstream.GetJSON(ctx, respond(http.StatusBadGateway, "down"), "test", "http://example.test", &out)

		var statusErr *upstream.StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusBadGateway, statusErr.Code)
		assert.Equal(t, "test API returned status 502: down", err.Error())
	})

	t.Run("invalid json", func(t *testing.T) {
		var out []int
		err := upstream.GetJSON(ctx, respond(http.StatusOK, "invalid json"), "test", "http://example.test", &out)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode test response")
	})

	t.Run("transport error", func(t *testing.T) {
		client := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return nil, assert.AnError
			},
		}

		var out any
		err := upstream.GetJSON(ctx, client, "test", "http://example.test", &out)

		require.ErrorIs(t, err, assert.AnError)
		assert.Contains(t, err.Error(), "failed to execute test request")
	})
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "server error", err: &upstream.StatusError{Code: http.StatusInternalServerError}, want: true},
		{name: "rate limited", err: &upstream.StatusError{Code: http.StatusTooManyRequests}, want: true},
		{name: "bad request", err: &upstream.StatusError{Code: http.StatusBadRequest}, want: false},
		{name: "wrapped server error", err: fmt.Errorf("wrap: %w", &upstream.StatusError{Code: 503}), want: true},
		{name: "connection refused", err: &net.OpError{Op: "dial", Err: errors.New("refused")}, want: true},
		{name: "unknown host", err: fmt.Errorf("wrap: %w", &net.DNSError{Err: "no such host", Name: "api.test"}), want: true},
		{name: "connection reset after send", err: &net.OpError{Op: "read", Err: errors.New("reset")}, want: false},
		{name: "unexpected eof", err: io.ErrUnexpectedEOF, want: false},
		{name: "canceled", err: context.Canceled, want: false},
		{name: "timeout", err: fmt.Errorf("failed to execute points request: %w", context.DeadlineExceeded), want: false},
		{name: "plain error", err: assert.AnError, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, upstream.IsRetryable(tt.err))
		})
	}
}
