package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/UnknownOlympus/ecoleta/internal/form"
	"github.com/UnknownOlympus/ecoleta/internal/models"
)

const (
	createdMessage = "Ponto de coleta criado!"
	queuedMessage  = "Ponto de coleta criado! Ele será enviado assim que o servidor responder."
)

var errInvalidPosition = errors.New("invalid position")

type homeView struct {
	Flash string
}

type createPointView struct {
	*models.Page
	StateID int
	CityID  int
	Contact models.Contact
	Draft   *form.Draft // Draft being corrected, nil on a fresh form.
	Error   string
}

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	view := homeView{}
	switch r.URL.Query().Get("created") {
	case string(models.DeliveryDelivered):
		view.Flash = createdMessage
	case string(models.DeliveryQueued):
		view.Flash = queuedMessage
	}

	h.render(w, r, http.StatusOK, pageHome, view)
}

func (h *Handler) createPointForm(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	pageQuery := models.PageQuery{
		StateID: atoiOrZero(query.Get("uf")),
		Hint:    positionHint(query.Get("lat"), query.Get("lng")),
	}

	page, err := h.svc.LoadPage(r.Context(), pageQuery)
	if err != nil {
		h.log.ErrorContext(r.Context(), "Failed to load create-point page", "error", err)
		http.Error(w, "could not load the form, try again later", http.StatusBadGateway)
		return
	}

	h.render(w, r, http.StatusOK, pageCreatePoint, createPointView{Page: page, StateID: pageQuery.StateID})
}

func (h *Handler) createPoint(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			http.Error(w, "upload too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	stateID := atoiOrZero(r.FormValue("uf"))
	states, cities, err := h.svc.ResolveRegion(r.Context(), stateID)
	if err != nil {
		h.log.ErrorContext(r.Context(), "Failed to resolve region", "state", stateID, "error", err)
		http.Error(w, "could not reach the regions service, try again later", http.StatusBadGateway)
		return
	}

	draft, err := buildDraft(r, states, cities)
	if err != nil {
		h.renderInvalid(w, r, draft, err)
		return
	}

	delivery, err := h.svc.Submit(r.Context(), draft.Submission())
	if err != nil {
		h.log.ErrorContext(r.Context(), "Failed to create collection point", "error", err)
		http.Error(w, "could not create the collection point, try again later", http.StatusBadGateway)
		return
	}

	http.Redirect(w, r, "/?created="+string(delivery.Status), http.StatusSeeOther)
}

// renderInvalid shows the form again, filled with what was posted, along with
// the reason it was rejected.
func (h *Handler) renderInvalid(w http.ResponseWriter, r *http.Request, draft *form.Draft, cause error) {
	sub := draft.Submission()
	query := models.PageQuery{StateID: draft.StateID()}
	if sub.Position.Valid() {
		query.Hint.Coords = &sub.Position
	}

	page, err := h.svc.LoadPage(r.Context(), query)
	if err != nil {
		h.log.ErrorContext(r.Context(), "Failed to reload create-point page", "error", err)
		http.Error(w, cause.Error(), http.StatusBadRequest)
		return
	}

	h.render(w, r, http.StatusBadRequest, pageCreatePoint, createPointView{
		Page:    page,
		StateID: draft.StateID(),
		CityID:  draft.CityID(),
		Contact: sub.Contact,
		Draft:   draft,
		Error:   cause.Error(),
	})
}

// buildDraft replays the posted form onto a Draft in the order the page
// would have produced it. The draft is always returned, filled with every
// value that could be applied, so it can be shown again on error.
func buildDraft(r *http.Request, states []models.State, cities []models.City) (*form.Draft, error) {
	draft := &form.Draft{}
	var errs []error

	for _, field := range []string{form.FieldName, form.FieldEmail, form.FieldWhatsapp} {
		if err := draft.SetField(field, r.FormValue(field)); err != nil {
			errs = append(errs, err)
		}
	}

	if err := draft.SelectState(states, atoiOrZero(r.FormValue("uf"))); err != nil {
		errs = append(errs, err)
	} else if err = draft.SelectCity(cities, atoiOrZero(r.FormValue("city"))); err != nil {
		errs = append(errs, err)
	}

	for _, raw := range r.MultipartForm.Value["items"] {
		ids, err := models.ParseIDs(raw)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, id := range ids {
			draft.ToggleItem(id)
		}
	}

	position, err := parsePosition(r.FormValue("latitude"), r.FormValue("longitude"))
	if err != nil {
		errs = append(errs, err)
	} else {
		draft.SetPosition(position)
	}

	image, err := readImage(r)
	if err != nil {
		errs = append(errs, err)
	} else {
		draft.SetImage(image)
	}

	return draft, errors.Join(errs...)
}

func readImage(r *http.Request) (*models.Image, error) {
	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	return &models.Image{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// parsePosition parses the picked position. The point is sent as picked, the
// page does not validate it beyond being numeric.
func parsePosition(lat, lng string) (models.Coordinates, error) {
	latitude, errLat := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	longitude, errLng := strconv.ParseFloat(strings.TrimSpace(lng), 64)
	if errLat != nil || errLng != nil {
		return models.Coordinates{}, fmt.Errorf("%w: %q, %q", errInvalidPosition, lat, lng)
	}

	return models.Coordinates{Latitude: latitude, Longitude: longitude}, nil
}

// positionHint parses a lat/lng pair. Missing, malformed or invalid pairs
// yield a hint without coordinates.
func positionHint(lat, lng string) models.PositionHint {
	latitude, errLat := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	longitude, errLng := strconv.ParseFloat(strings.TrimSpace(lng), 64)
	if errLat != nil || errLng != nil {
		return models.PositionHint{}
	}

	coords := models.Coordinates{Latitude: latitude, Longitude: longitude}
	if !coords.Valid() {
		return models.PositionHint{}
	}

	return models.PositionHint{Coords: &coords}
}

func atoiOrZero(raw string) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}

	return value
}
