// Package catalog reads the collection items offered by the points API.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/UnknownOlympus/ecoleta/internal/models"
	"github.com/UnknownOlympus/ecoleta/internal/upstream"
)

const apiName = "items"

// Client lists items from the points API.
type Client struct {
	client  upstream.HTTPClient // HTTP client for making requests
	baseURL string              // Base URL of the points API
	log     *slog.Logger        // Logger for logging operations
}

// NewClient creates an items client for the points API at baseURL.
func NewClient(client upstream.HTTPClient, baseURL string, log *slog.Logger) *Client {
	return &Client{client: client, baseURL: baseURL, log: log}
}

// ListItems returns every item of the catalog in the order the API sends them.
func (c *Client) ListItems(ctx context.Context) ([]models.Item, error) {
	reqURL, err := url.JoinPath(c.baseURL, "items")
	if err != nil {
		return nil, fmt.Errorf("failed to build items URL: %w", err)
	}

	c.log.DebugContext(ctx, "Fetching items", "url", reqURL)

	var items []models.Item
	if err = upstream.GetJSON(ctx, c.client, apiName, reqURL, &items); err != nil {
		return nil, err
	}

	if items == nil {
		items = []models.Item{}
	}

	return items, nil
}
