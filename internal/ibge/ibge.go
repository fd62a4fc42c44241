// Package ibge reads Brazilian states and municipalities from the public
// IBGE localities API (https://servicodados.ibge.gov.br/api/docs/localidades).
package ibge

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/UnknownOlympus/ecoleta/internal/models"
	"github.com/UnknownOlympus/ecoleta/internal/upstream"
	"golang.org/x/time/rate"
)

// BaseURL is the public IBGE API v1 endpoint.
const BaseURL = "https://servicodados.ibge.gov.br/api/v1"

const apiName = "ibge"

// Client lists states and cities.
type Client struct {
	client  upstream.HTTPClient // HTTP client for making requests
	baseURL string              // Base URL of the IBGE API
	log     *slog.Logger        // Logger for logging operations
	limiter *rate.Limiter       // Rate limiter
}

// NewClient creates an IBGE client. A nil limiter disables rate limiting.
func NewClient(client upstream.HTTPClient, baseURL string, limiter *rate.Limiter, log *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 0)
	}

	return &Client{client: client, baseURL: baseURL, log: log, limiter: limiter}
}

// ListStates returns all states ordered by name.
func (c *Client) ListStates(ctx context.Context) ([]models.State, error) {
	reqURL, err := url.JoinPath(c.baseURL, "localidades", "estados")
	if err != nil {
		return nil, fmt.Errorf("failed to build states URL: %w", err)
	}
	reqURL += "?" + url.Values{"orderBy": {"nome"}}.Encode()

	var states []models.State
	if err = c.get(ctx, reqURL, &states); err != nil {
		return nil, err
	}
	if states == nil {
		states = []models.State{}
	}

	return states, nil
}

// ListCities returns the municipalities of the state with the given IBGE id.
// A non-positive id means no state is selected and yields an empty list.
func (c *Client) ListCities(ctx context.Context, stateID int) ([]models.City, error) {
	if stateID <= 0 {
		return []models.City{}, nil
	}

	reqURL, err := url.JoinPath(c.baseURL, "localidades", "estados", strconv.Itoa(stateID), "municipios")
	if err != nil {
		return nil, fmt.Errorf("failed to build cities URL: %w", err)
	}

	var cities []models.City
	if err = c.get(ctx, reqURL, &cities); err != nil {
		return nil, err
	}
	if cities == nil {
		cities = []models.City{}
	}

	return cities, nil
}

func (c *Client) get(ctx context.Context, reqURL string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit exceeded: %w", err)
	}

	c.log.DebugContext(ctx, "IBGE request URL", "url", reqURL)

	return upstream.GetJSON(ctx, c.client, apiName, reqURL, out)
}
