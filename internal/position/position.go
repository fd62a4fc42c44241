// Package position resolves the initial position of the create-point map.
package position

import (
	"context"
	"log/slog"

	"github.com/UnknownOlympus/ecoleta/internal/geocoding"
	"github.com/UnknownOlympus/ecoleta/internal/models"
)

// Locator picks the best known position for a page visit.
type Locator struct {
	provider   geocoding.Provider // provider may be nil, geocoding is then skipped
	fallback   models.Coordinates
	addrPrefix string
	log        *slog.Logger
}

// NewLocator creates a Locator. provider may be nil.
func NewLocator(
	provider geocoding.Provider,
	fallback models.Coordinates,
	addrPrefix string,
	log *slog.Logger,
) *Locator {
	return &Locator{provider: provider, fallback: fallback, addrPrefix: addrPrefix, log: log}
}

// Locate returns, in order of preference, the device coordinates of the hint,
// the geocoded position of the hinted city, or the fallback position.
// It never fails: geocoding errors are logged and the fallback is used.
func (l *Locator) Locate(ctx context.Context, hint models.PositionHint) models.Coordinates {
	if device, ok := hint.Device(); ok {
		return device
	}

	address := hint.Place()
	if address == "" || l.provider == nil {
		return l.fallback
	}

	address = l.addrPrefix + address
	coords, err := l.provider.Geocode(ctx, address)
	if err != nil {
		l.log.WarnContext(ctx, "Failed to geocode city, using default position", "address", address, "error", err)
		return l.fallback
	}

	return *coords
}
