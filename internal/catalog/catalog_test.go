package catalog_test

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/UnknownOlympus/ecoleta/internal/catalog"
	"github.com/UnknownOlympus/ecoleta/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func TestListItems(t *testing.T) {
	ctx := t.Context()
	logger := slog.Default()

	t.Run("successful listing", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, http.MethodGet, req.Method)
				assert.Equal(t, "http://api.test/items", req.URL.String())

				responseBody := `[
					{"id":1,"title":"Lâmpadas","image_url":"http://api.test/uploads/lampadas.svg"},
					{"id":2,"title":"Pilhas e Baterias","image_url":"http://api.test/uploads/baterias.svg"}
				]`
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(responseBody)),
				}, nil
			},
		}

		client := catalog.NewClient(mockClient, "http://api.test/", logger)
		items, err := client.ListItems(ctx)

		require.NoError(t, err)
		assert.Equal(t, []models.Item{
			{ID: 1, Title: "Lâmpadas", ImageURL: "http://api.test/uploads/lampadas.svg"},
			{ID: 2, Title: "Pilhas e Baterias", ImageURL: "http://api.test/uploads/baterias.svg"},
		}, items)
	})

	t.Run("null body yields empty list", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(`null`)),
				}, nil
			},
		}

		items, err := catalog.NewClient(mockClient, "http://api.test", logger).ListItems(ctx)

		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("HTTP error status", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusInternalServerError,
					Body:       io.NopCloser(bytes.NewBufferString(`{"error":"boom"}`)),
				}, nil
			},
		}

		items, err := catalog.NewClient(mockClient, "http://api.test", logger).ListItems(ctx)

		require.Error(t, err)
		assert.Nil(t, items)
		assert.Contains(t, err.Error(), "items API returned status 500")
	})
}
