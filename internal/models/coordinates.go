package models

import "strings"

// Coordinates represents a geographical point defined by its latitude and longitude.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`  // Latitude of the geographical point.
	Longitude float64 `json:"longitude"` // Longitude of the geographical point.
}

// Valid reports whether the point lies inside the latitude/longitude ranges.
// The zero point is treated as unknown, the way a browser reports an unset position.
func (c Coordinates) Valid() bool {
	if c.Latitude == 0 && c.Longitude == 0 {
		return false
	}
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}

// PositionHint carries what the page knows about the user's position.
type PositionHint struct {
	Coords *Coordinates // Coords reported by the device, nil when unknown.
	City   string       // City name of the current selection.
	UF     string       // State initials of the current selection.
}

// Device returns the device coordinates when they are present and valid.
func (h PositionHint) Device() (Coordinates, bool) {
	if h.Coords == nil || !h.Coords.Valid() {
		return Coordinates{}, false
	}
	return *h.Coords, true
}

// Place returns the "city, uf" address to geocode, or "" unless both are known.
func (h PositionHint) Place() string {
	city := strings.TrimSpace(h.City)
	uf := strings.TrimSpace(h.UF)
	if city == "" || uf == "" {
		return ""
	}
	return city + ", " + uf
}
