package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Contact holds the free-text fields of the create-point form.
type Contact struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Whatsapp string `json:"whatsapp"`
}

// Image is the optional picture uploaded with a collection point.
type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Submission is everything sent to the points API to create a collection point.
type Submission struct {
	Contact
	City     string      // City name.
	UF       string      // State initials.
	Position Coordinates // Picked position.
	Items    []int       // Selected item ids in selection order.
	Image    *Image      // Optional image, nil when none was uploaded.
}

// JoinIDs renders ids the way the points API expects them: "1,2,3".
func JoinIDs(ids []int) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.Itoa(id))
	}

	return strings.Join(parts, ",")
}

// ParseIDs is the inverse of JoinIDs. An empty string yields no ids.
func ParseIDs(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid item id %q: %w", part, err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}
