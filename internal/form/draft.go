// Package form holds the state of a create-point form while the user fills it in.
package form

import (
	"errors"
	"fmt"
	"slices"

	"github.com/UnknownOlympus/ecoleta/internal/models"
)

// Field names of the contact section.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldWhatsapp = "whatsapp"
)

var (
	ErrUnknownField = errors.New("unknown form field")
	ErrUnknownState = errors.New("unknown state")
	ErrUnknownCity  = errors.New("unknown city")
)

// Draft is the selection state of one form visit. The zero value is an empty form.
type Draft struct {
	contact  models.Contact
	stateID  int
	uf       string
	cityID   int
	city     string
	position models.Coordinates
	items    []int
	image    *models.Image
}

// SetField updates one contact field. Markup is stripped from the value.
func (d *Draft) SetField(name, value string) error {
	value = sanitizeText(value)

	switch name {
	case FieldName:
		d.contact.Name = value
	case FieldEmail:
		d.contact.Email = value
	case FieldWhatsapp:
		d.contact.Whatsapp = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}

	return nil
}

// SelectState selects the state with the given IBGE id among states and
// remembers its initials. Choosing another state clears the city, since the
// city list belongs to the previous state. Id 0 clears the selection.
func (d *Draft) SelectState(states []models.State, id int) error {
	if id == 0 {
		d.stateID, d.uf = 0, ""
		d.clearCity()
		return nil
	}

	idx := slices.IndexFunc(states, func(s models.State) bool { return s.ID == id })
	if idx < 0 {
		return fmt.Errorf("%w: %d", ErrUnknownState, id)
	}

	if d.stateID != id {
		d.clearCity()
	}
	d.stateID = id
	d.uf = states[idx].Initials

	return nil
}

// SelectCity selects the city with the given IBGE id among cities and
// remembers its name. Id 0 clears the selection.
func (d *Draft) SelectCity(cities []models.City, id int) error {
	if id == 0 {
		d.clearCity()
		return nil
	}

	idx := slices.IndexFunc(cities, func(c models.City) bool { return c.ID == id })
	if idx < 0 {
		return fmt.Errorf("%w: %d", ErrUnknownCity, id)
	}

	d.cityID = id
	d.city = cities[idx].Name

	return nil
}

func (d *Draft) clearCity() {
	d.cityID, d.city = 0, ""
}

// ToggleItem selects the item when it is not selected and deselects it otherwise.
func (d *Draft) ToggleItem(id int) {
	if idx := slices.Index(d.items, id); idx >= 0 {
		d.items = slices.Delete(d.items, idx, idx+1)
		return
	}

	d.items = append(d.items, id)
}

// SetPosition records the point picked on the map.
func (d *Draft) SetPosition(coords models.Coordinates) {
	d.position = coords
}

// SetImage attaches the uploaded image; nil removes it.
func (d *Draft) SetImage(image *models.Image) {
	d.image = image
}

// StateID returns the selected state id, 0 when none.
func (d *Draft) StateID() int { return d.stateID }

// CityID returns the selected city id, 0 when none.
func (d *Draft) CityID() int { return d.cityID }

// Selected reports whether the item is currently selected.
func (d *Draft) Selected(id int) bool {
	return slices.Contains(d.items, id)
}

// Submission bundles the current state into the payload sent to the points API.
func (d *Draft) Submission() models.Submission {
	return models.Submission{
		Contact:  d.contact,
		City:     d.city,
		UF:       d.uf,
		Position: d.position,
		Items:    slices.Clone(d.items),
		Image:    d.image,
	}
}
