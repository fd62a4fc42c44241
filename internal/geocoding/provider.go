package geocoding

import (
	"context"

	"github.com/UnknownOlympus/ecoleta/internal/models"
)

// Provider turns a place description such as "Campinas, SP" into coordinates.
type Provider interface {
	Geocode(ctx context.Context, address string) (*models.Coordinates, error)
}
